package config

import (
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strings"
	"time"

	"calrender/pkg/calendar"
)

// Validate checks a document before it is rendered. It returns nil or a
// *ConfigurationErrorCollection listing every problem found.
func Validate(doc *Document) error {
	errs := NewConfigurationErrorCollection()

	if doc.Indent != nil && strings.Trim(*doc.Indent, " \t") != "" {
		errs.AddValidation(doc.Path, "indent", "must contain only spaces and tabs",
			`use "" for compact output`)
	}

	for _, name := range slices.Sorted(maps.Keys(doc.Callbacks)) {
		if strings.TrimSpace(doc.Callbacks[name]) == "" {
			errs.AddValidation(doc.Path, "callbacks."+name, "callback body is empty")
		}
	}

	for i, event := range doc.Events {
		validateEvent(errs, doc.Path, fmt.Sprintf("events[%d]", i), event)
	}

	names := make(map[string]int)
	for i, source := range doc.Sources {
		field := fmt.Sprintf("sources[%d]", i)
		validateSource(errs, doc.Path, field, source)

		name := source.DisplayName()
		if first, dup := names[name]; dup {
			errs.AddValidation(doc.Path, field+".name",
				fmt.Sprintf("duplicates the name of sources[%d]", first),
				"give every source a distinct name")
			continue
		}
		names[name] = i
	}

	for i, script := range doc.Page.Scripts {
		if strings.TrimSpace(script) == "" {
			errs.AddValidation(doc.Path, fmt.Sprintf("page.scripts[%d]", i), "is empty")
		}
	}
	for i, sheet := range doc.Page.Stylesheets {
		if strings.TrimSpace(sheet) == "" {
			errs.AddValidation(doc.Path, fmt.Sprintf("page.stylesheets[%d]", i), "is empty")
		}
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func validateEvent(errs *ConfigurationErrorCollection, path, field string, event EventConfig) {
	if strings.TrimSpace(event.Title) == "" {
		errs.AddValidation(path, field+".title", "is required")
	}

	if strings.TrimSpace(event.Start) == "" {
		errs.AddValidation(path, field+".start", "is required")
		return
	}
	start, err := calendar.ParseTime(event.Start, time.Local)
	if err != nil {
		errs.AddValidation(path, field+".start", err.Error(), timeSuggestion)
		return
	}

	if strings.TrimSpace(event.End) == "" {
		return
	}
	end, err := calendar.ParseTime(event.End, time.Local)
	if err != nil {
		errs.AddValidation(path, field+".end", err.Error(), timeSuggestion)
		return
	}
	if end.Before(start) {
		errs.AddValidation(path, field+".end", "is before start")
	}
}

const timeSuggestion = "use 2006-01-02, 2006-01-02 15:04:05 or an RFC 3339 timestamp"

func validateSource(errs *ConfigurationErrorCollection, path, field string, source SourceConfig) {
	if source.Timeout != "" {
		if d, err := time.ParseDuration(source.Timeout); err != nil || d <= 0 {
			errs.AddValidation(path, field+".timeout", "must be a positive duration", `e.g. "10s"`)
		}
	}

	switch source.Type {
	case SourceTypeICS:
		switch {
		case source.Path == "" && source.URL == "":
			errs.AddValidation(path, field, "ics sources need a path or a url")
		case source.Path != "" && source.URL != "":
			errs.AddValidation(path, field, "ics sources take either a path or a url, not both")
		case source.URL != "":
			validateURL(errs, path, field+".url", source.URL)
		}

	case SourceTypeCalDAV:
		if source.URL == "" {
			errs.AddValidation(path, field+".url", "is required for caldav sources")
		} else {
			validateURL(errs, path, field+".url", source.URL)
		}
		if source.Calendar == "" {
			errs.AddValidation(path, field+".calendar", "is required for caldav sources",
				"set the path of the calendar collection, e.g. /calendars/me/work/")
		}
		if from, to := source.Window(); from >= to {
			errs.AddValidation(path, field+".to", fmt.Sprintf("window end %d must be after start %d", to, from))
		}

	case "":
		errs.AddValidation(path, field+".type", "is required",
			fmt.Sprintf("use %q or %q", SourceTypeICS, SourceTypeCalDAV))

	default:
		errs.AddValidation(path, field+".type", fmt.Sprintf("unknown source type %q", source.Type),
			fmt.Sprintf("use %q or %q", SourceTypeICS, SourceTypeCalDAV))
	}
}

func validateURL(errs *ConfigurationErrorCollection, path, field, raw string) {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs.AddValidation(path, field, fmt.Sprintf("%q is not an http(s) URL", raw))
	}
}
