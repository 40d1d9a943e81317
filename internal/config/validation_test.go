package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func strPtr(s string) *string { return &s }

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		doc        Document
		wantFields []string
	}{
		{
			name: "valid document",
			doc: Document{
				Indent:    strPtr("\t"),
				Callbacks: map[string]string{"eventClick": "handleClick"},
				Events: []EventConfig{
					{Title: "Launch", Start: "2026-10-20", End: "2026-10-21", AllDay: true},
					{Title: "Open ended", Start: "2026-10-20 09:00:00"},
				},
				Sources: []SourceConfig{
					{Type: SourceTypeICS, Path: "holidays.ics"},
					{Type: SourceTypeICS, URL: "https://example.com/team.ics", Timeout: "5s"},
					{Type: SourceTypeCalDAV, URL: "https://dav.example.com", Calendar: "/cal/work/"},
				},
			},
		},
		{
			name:       "bad indent",
			doc:        Document{Indent: strPtr("--")},
			wantFields: []string{"indent"},
		},
		{
			name:       "empty callbacks",
			doc:        Document{Callbacks: map[string]string{"b": " ", "a": ""}},
			wantFields: []string{"callbacks.a", "callbacks.b"},
		},
		{
			name: "broken events",
			doc: Document{Events: []EventConfig{
				{Start: "2026-10-20"},
				{Title: "No start"},
				{Title: "Bad start", Start: "tomorrow"},
				{Title: "Bad end", Start: "2026-10-20", End: "later"},
				{Title: "Backwards", Start: "2026-10-21", End: "2026-10-20"},
			}},
			wantFields: []string{
				"events[0].title",
				"events[1].start",
				"events[2].start",
				"events[3].end",
				"events[4].end",
			},
		},
		{
			name: "broken sources",
			doc: Document{Sources: []SourceConfig{
				{Name: "a", Type: SourceTypeICS},
				{Name: "b", Type: SourceTypeICS, Path: "x.ics", URL: "https://example.com/x.ics"},
				{Name: "c", Type: SourceTypeICS, URL: "ftp://example.com/x.ics"},
				{Name: "d", Type: SourceTypeCalDAV, From: intPtr(10), To: intPtr(5)},
				{Name: "e"},
				{Name: "f", Type: "google"},
				{Name: "g", Type: SourceTypeICS, Path: "g.ics", Timeout: "soon"},
				{Name: "a", Type: SourceTypeICS, Path: "a.ics"},
			}},
			wantFields: []string{
				"sources[0]",
				"sources[1]",
				"sources[2].url",
				"sources[3].url",
				"sources[3].calendar",
				"sources[3].to",
				"sources[4].type",
				"sources[5].type",
				"sources[6].timeout",
				"sources[7].name",
			},
		},
		{
			name:       "empty page assets",
			doc:        Document{Page: PageConfig{Scripts: []string{""}, Stylesheets: []string{"/a.css", " "}}},
			wantFields: []string{"page.scripts[0]", "page.stylesheets[1]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&tt.doc)
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			var collection *ConfigurationErrorCollection
			require.True(t, errors.As(err, &collection), "got %v", err)

			var fields []string
			for _, e := range collection.Errors {
				assert.Equal(t, ErrorTypeValidation, e.ErrorType)
				fields = append(fields, e.Field)
			}
			assert.Equal(t, tt.wantFields, fields)
		})
	}
}

func TestConfigurationErrorCollection(t *testing.T) {
	errs := NewConfigurationErrorCollection()
	assert.False(t, errs.HasErrors())
	assert.Equal(t, "no configuration errors", errs.Error())
	assert.Equal(t, "No configuration errors to report", errs.GetDetailedReport())

	errs.AddValidation("team.yaml", "events[0].title", "is required")
	assert.Equal(t, "team.yaml: events[0].title: is required", errs.Error())

	errs.Add(ConfigurationError{ErrorType: ErrorTypeParse, Message: "bad yaml", LineNumber: 3, Suggestions: []string{"fix it"}})
	assert.Equal(t, 2, errs.Count())
	assert.Equal(t, "2 configuration errors: team.yaml: events[0].title: is required (and 1 more)", errs.Error())

	report := errs.GetDetailedReport()
	assert.Contains(t, report, "Detailed Configuration Error Report (2 errors):")
	assert.Contains(t, report, "  Field: events[0].title")
	assert.Contains(t, report, "  Line: 3")
	assert.Contains(t, report, "    - fix it")
}
