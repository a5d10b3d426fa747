// Package endpoint parses SamiDB endpoint descriptors.
//
// The API advertises its routes as compact descriptor strings such as
//
//	GET,OPTIONS,HEAD/img/<blush,bonk,boop>
//
// made of the accepted verbs, the route path and an optional list of
// subtypes in angle brackets. Parse turns one descriptor into an Endpoint
// without ever failing; ParseStrict additionally rejects descriptors that
// did not parse cleanly.
package endpoint

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/agentstation/samidb/pkg/constants"
	"github.com/agentstation/samidb/pkg/errors"
)

var (
	// subtypePattern reports whether a descriptor carries an angle-bracket section.
	subtypePattern = regexp.MustCompile(`<.+`)

	// subtypeNoise is stripped from the subtype section.
	subtypeNoise = strings.NewReplacer("<", "", ">", "", "'", "")
)

// Endpoint is the parsed form of a descriptor.
type Endpoint struct {
	// Type is the lowercase primary verb, "get" or "post" for routable endpoints.
	Type string `json:"type" yaml:"type"`

	// URL is the route path with the verb list and subtype section removed.
	URL string `json:"url" yaml:"url"`

	// Subtypes holds the names from the angle-bracket section, each ending in "/".
	// It is nil when the descriptor has no such section.
	Subtypes []string `json:"subtypes,omitempty" yaml:"subtypes,omitempty"`
}

// Parse converts a descriptor into an Endpoint. Malformed input is never
// rejected: the result is a best effort and may have an empty URL or odd subtypes.
func Parse(descriptor string) Endpoint {
	typ := strings.ToLower(strings.SplitN(descriptor, ",", 2)[0])
	verbs := verbListPattern(typ)

	e := Endpoint{
		Type: typ,
		URL:  urlPattern(verbs).ReplaceAllString(descriptor, ""),
	}

	if subtypePattern.MatchString(descriptor) {
		e.Subtypes = parseSubtypes(verbs.ReplaceAllString(descriptor, ""))
	}

	return e
}

// verbListPattern matches the "<VERB>,OPTIONS,HEAD" prefix and any whitespace after it.
func verbListPattern(typ string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + regexp.QuoteMeta(strings.ToUpper(typ)+constants.VerbListSuffix) + `\s*`)
}

// urlPattern matches the verb prefix or the trailing subtype section.
func urlPattern(verbs *regexp.Regexp) *regexp.Regexp {
	return regexp.MustCompile(verbs.String() + `|/?<.+`)
}

func parseSubtypes(section string) []string {
	if i := strings.LastIndex(section, "<"); i > 0 {
		section = section[i:]
	}
	section = subtypeNoise.Replace(section)
	section = strings.ReplaceAll(section, ",", constants.SubtypeSeparator+",") + constants.SubtypeSeparator
	return strings.Split(section, ",")
}

// HasSubtypes reports whether the descriptor carried a subtype section.
func (e Endpoint) HasSubtypes() bool {
	return e.Subtypes != nil
}

// SubtypeNames returns the subtypes without their trailing separator.
func (e Endpoint) SubtypeNames() []string {
	if e.Subtypes == nil {
		return nil
	}
	names := make([]string, len(e.Subtypes))
	for i, s := range e.Subtypes {
		names[i] = strings.TrimSuffix(s, constants.SubtypeSeparator)
	}
	return names
}

// Method returns the HTTP method for the endpoint.
func (e Endpoint) Method() string {
	return strings.ToUpper(e.Type)
}

// Descriptor renders the endpoint back into descriptor form.
// Parsing the result yields an equal Endpoint.
func (e Endpoint) Descriptor() string {
	var b strings.Builder
	b.WriteString(strings.ToUpper(e.Type))
	b.WriteString(constants.VerbListSuffix)
	b.WriteString(e.URL)
	if len(e.Subtypes) > 0 {
		fmt.Fprintf(&b, "/<%s>", strings.Join(e.SubtypeNames(), ","))
	}
	return b.String()
}

// String returns the endpoint path.
func (e Endpoint) String() string {
	return e.URL
}

// ParseStrict parses a descriptor and rejects results that Parse would
// silently degrade.
func ParseStrict(descriptor string) (Endpoint, error) {
	if strings.TrimSpace(descriptor) == "" {
		return Endpoint{}, errors.NewParseError("descriptor", descriptor, "empty descriptor", nil)
	}

	e := Parse(descriptor)

	if !isHTTPMethod(e.Type) {
		return e, errors.NewParseError("descriptor", descriptor, fmt.Sprintf("unsupported verb %q", e.Type), nil)
	}
	if !strings.HasPrefix(e.URL, "/") || strings.ContainsAny(e.URL, " \t<>,") {
		return e, errors.NewParseError("descriptor", descriptor, fmt.Sprintf("malformed path %q", e.URL), nil)
	}
	for _, name := range e.SubtypeNames() {
		if name == "" || strings.ContainsAny(name, " \t/") {
			return e, errors.NewParseError("descriptor", descriptor, fmt.Sprintf("malformed subtype %q", name), nil)
		}
	}

	return e, nil
}

func isHTTPMethod(typ string) bool {
	switch typ {
	case "get", "post", "put", "patch", "delete", "head", "options":
		return true
	}
	return false
}
