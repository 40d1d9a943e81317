package config

import (
	"calrender/pkg/calendar"
)

// Document is a calendar definition as stored in a YAML file.
type Document struct {
	ID     string  `yaml:"id,omitempty"`     // Container id (default: random)
	ES6    bool    `yaml:"es6,omitempty"`    // Render the ES module flavour of the script
	Legacy bool    `yaml:"legacy,omitempty"` // Use the textual substitution serializer
	Indent *string `yaml:"indent,omitempty"` // Indentation of the literal; "" for compact output

	Options    OrderedOptions    `yaml:"options,omitempty"`
	Callbacks  map[string]string `yaml:"callbacks,omitempty"`
	Events     []EventConfig     `yaml:"events,omitempty"`
	Attributes map[string]any    `yaml:"attributes,omitempty"` // Custom attributes for every inline event
	Sources    []SourceConfig    `yaml:"sources,omitempty"`
	Page       PageConfig        `yaml:"page,omitempty"`

	// Path is the file the document was loaded from, empty for documents
	// built in memory.
	Path string `yaml:"-"`
}

// EventConfig is an inline event of a document.
type EventConfig struct {
	ID         string         `yaml:"id,omitempty"`
	Title      string         `yaml:"title"`
	AllDay     bool           `yaml:"allDay,omitempty"`
	Start      string         `yaml:"start"`
	End        string         `yaml:"end,omitempty"`
	Attributes map[string]any `yaml:"attributes,omitempty"` // Extra event options, e.g. color or url
}

// SourceType names a kind of event source.
type SourceType string

const (
	// SourceTypeICS reads an iCalendar file from disk or over HTTP.
	SourceTypeICS SourceType = "ics"
	// SourceTypeCalDAV queries a calendar collection on a CalDAV server.
	SourceTypeCalDAV SourceType = "caldav"
)

// SourceConfig describes an external event source.
type SourceConfig struct {
	Name string     `yaml:"name,omitempty"`
	Type SourceType `yaml:"type"`

	// ics
	Path string `yaml:"path,omitempty"`
	URL  string `yaml:"url,omitempty"` // also the CalDAV endpoint

	// caldav
	Calendar string `yaml:"calendar,omitempty"` // Calendar collection path
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"` // Falls back to CALRENDER_CALDAV_PASSWORD
	From     *int   `yaml:"from,omitempty"`     // Window start in days relative to today (default: -30)
	To       *int   `yaml:"to,omitempty"`       // Window end in days relative to today (default: 90)

	Timeout    string         `yaml:"timeout,omitempty"`    // HTTP timeout, e.g. "10s" (default: 30s)
	Attributes map[string]any `yaml:"attributes,omitempty"` // Extra options for every event of the source
}

// PageConfig describes the standalone HTML page around the calendar.
type PageConfig struct {
	Title       string   `yaml:"title,omitempty"`
	Locale      string   `yaml:"locale,omitempty"`
	Scripts     []string `yaml:"scripts,omitempty"`
	Stylesheets []string `yaml:"stylesheets,omitempty"`
}

// CalendarPage converts the page settings for calendar.RenderPage.
func (p PageConfig) CalendarPage() calendar.Page {
	return calendar.Page{
		Title:       p.Title,
		Locale:      p.Locale,
		Scripts:     p.Scripts,
		Stylesheets: p.Stylesheets,
	}
}

// DisplayName returns the configured name or a name derived from the
// source location.
func (s SourceConfig) DisplayName() string {
	switch {
	case s.Name != "":
		return s.Name
	case s.Path != "":
		return s.Path
	case s.Calendar != "":
		return s.URL + s.Calendar
	default:
		return s.URL
	}
}

// Window returns the configured CalDAV query window in days relative to
// today.
func (s SourceConfig) Window() (from, to int) {
	from, to = DefaultWindowFrom, DefaultWindowTo
	if s.From != nil {
		from = *s.From
	}
	if s.To != nil {
		to = *s.To
	}
	return from, to
}
