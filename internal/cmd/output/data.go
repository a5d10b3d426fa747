package output

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/samidb"
	"github.com/agentstation/samidb/pkg/endpoint"
)

// EndpointsToData converts registry endpoints to table format.
func EndpointsToData(endpoints []endpoint.Endpoint) Data {
	rows := make([][]string, 0, len(endpoints))
	for _, e := range endpoints {
		subtypes := "-"
		if e.HasSubtypes() {
			subtypes = strings.Join(e.SubtypeNames(), ", ")
		}
		rows = append(rows, []string{e.Method(), e.URL, subtypes})
	}

	if endpoints == nil {
		endpoints = []endpoint.Endpoint{}
	}
	return Data{
		Headers:         []string{"Method", "URL", "Subtypes"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignLeft},
		Source:          endpoints,
	}
}

// EndpointToData converts a single parsed endpoint to a key/value table.
func EndpointToData(e endpoint.Endpoint) Data {
	subtypes := "-"
	if e.HasSubtypes() {
		subtypes = strings.Join(e.SubtypeNames(), ", ")
	}
	return Data{
		Headers: []string{"Property", "Value"},
		Rows: [][]string{
			{"Type", e.Type},
			{"Method", e.Method()},
			{"URL", e.URL},
			{"Subtypes", subtypes},
			{"Descriptor", e.Descriptor()},
		},
		Source: e,
	}
}

// reactionRecord is the structured form of a reaction row.
type reactionRecord struct {
	Name        string `json:"name" yaml:"name"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

// ReactionsToData converts reactions to table format.
func ReactionsToData(reactions []samidb.Reaction) Data {
	caser := cases.Title(language.English)

	rows := make([][]string, 0, len(reactions))
	records := make([]reactionRecord, 0, len(reactions))
	for i, r := range reactions {
		rec := reactionRecord{
			Name:        r.String(),
			Title:       caser.String(r.String()),
			Description: r.Description(),
		}
		records = append(records, rec)
		rows = append(rows, []string{strconv.Itoa(i + 1), rec.Name, rec.Title, rec.Description})
	}

	return Data{
		Headers:         []string{"#", "Name", "Title", "Description"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignRight, AlignLeft, AlignLeft, AlignLeft},
		Source:          records,
	}
}

// resultRecord is the structured form of a request result.
type resultRecord struct {
	URL         string `json:"url,omitempty" yaml:"url,omitempty"`
	Body        string `json:"body,omitempty" yaml:"body,omitempty"`
	ContentType string `json:"content_type,omitempty" yaml:"content_type,omitempty"`
	StatusCode  int    `json:"status_code" yaml:"status_code"`
}

// ResultToData converts a request result to a key/value table.
func ResultToData(res *samidb.Result) Data {
	rec := resultRecord{
		URL:         res.URL,
		ContentType: res.ContentType,
		StatusCode:  res.StatusCode,
	}
	if !res.HasURL() {
		rec.Body = string(res.Body)
	}

	rows := [][]string{}
	if rec.URL != "" {
		rows = append(rows, []string{"URL", rec.URL})
	} else {
		rows = append(rows, []string{"Body", rec.Body})
	}
	rows = append(rows,
		[]string{"Content Type", rec.ContentType},
		[]string{"Status", strconv.Itoa(rec.StatusCode)},
	)

	return Data{
		Headers: []string{"Property", "Value"},
		Rows:    rows,
		Source:  rec,
	}
}
