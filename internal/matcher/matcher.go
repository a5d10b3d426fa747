// Package matcher matches endpoint paths and names against glob or regex patterns.
package matcher

import (
	"path"
	"regexp"
	"strings"

	"github.com/agentstation/samidb/pkg/errors"
)

// PatternType represents the type of pattern matching to use.
type PatternType int

const (
	// Glob uses shell-style glob patterns (*, ?, []).
	Glob PatternType = iota
	// Regex uses regular expressions.
	Regex
	// Auto detects the pattern type.
	Auto
)

// String returns a string representation of the PatternType.
func (pt PatternType) String() string {
	switch pt {
	case Glob:
		return "glob"
	case Regex:
		return "regex"
	case Auto:
		return "auto"
	default:
		return "unknown"
	}
}

// Matcher reports whether inputs match a compiled pattern.
type Matcher struct {
	pattern     string
	patternType PatternType
	compiled    *regexp.Regexp
}

// New compiles pattern. Glob patterns use path.Match semantics, so "*"
// does not cross a "/"; "/img*" matches "/img" but not "/v1/img".
func New(patternType PatternType, pattern string) (*Matcher, error) {
	m := &Matcher{pattern: pattern, patternType: patternType}
	if patternType == Auto {
		m.patternType = detectPatternType(pattern)
	}

	switch m.patternType {
	case Glob:
		if _, err := path.Match(pattern, ""); err != nil {
			return nil, errors.NewParseError("glob", pattern, "invalid glob pattern", err)
		}
	case Regex:
		compiled, err := regexp.Compile(pattern)
		if err != nil {
			return nil, errors.NewParseError("regex", pattern, "invalid regex pattern", err)
		}
		m.compiled = compiled
	default:
		return nil, errors.NewValidationError("patternType", patternType, "unsupported pattern type")
	}
	return m, nil
}

// Match checks if the input matches the pattern.
func (m *Matcher) Match(input string) bool {
	if m.patternType == Regex {
		return m.compiled.MatchString(input)
	}
	ok, _ := path.Match(m.pattern, input)
	return ok
}

// MatchAny reports whether any of the inputs match.
func (m *Matcher) MatchAny(inputs ...string) bool {
	for _, input := range inputs {
		if m.Match(input) {
			return true
		}
	}
	return false
}

// Pattern returns the original pattern string.
func (m *Matcher) Pattern() string {
	return m.pattern
}

// Type returns the pattern type being used.
func (m *Matcher) Type() PatternType {
	return m.patternType
}

// detectPatternType attempts to detect if a pattern is glob or regex.
func detectPatternType(pattern string) PatternType {
	regexIndicators := []string{
		"^", "$", "\\d", "\\w", "\\s", "\\D", "\\W", "\\S",
		"(?:", "(?i)", "(?m)", "(?s)",
		"{", "}", "+", "|", "(", ")", ".*",
	}

	for _, indicator := range regexIndicators {
		if strings.Contains(pattern, indicator) {
			return Regex
		}
	}

	return Glob
}
