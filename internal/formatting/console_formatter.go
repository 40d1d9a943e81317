package formatting

import (
	"fmt"
	"io"
	"strings"

	"calrender/pkg/calendar"
	pkgstrings "calrender/pkg/strings"
)

// literalIndent is the indentation of options printed by the console
// formatter.
const literalIndent = "    "

// ConsoleFormatter provides simple console output formatting
type ConsoleFormatter struct {
	options Options
}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter(options Options) Formatter {
	return &ConsoleFormatter{
		options: options,
	}
}

// FormatData writes options as a configuration literal and events as one
// line each. Everything else is printed as indented JSON.
func (f *ConsoleFormatter) FormatData(w io.Writer, data interface{}) error {
	switch v := data.(type) {
	case string:
		_, err := fmt.Fprintln(w, v)
		return err

	case *calendar.Options:
		literal, err := calendar.Marshal(v, literalIndent)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, literal)
		return err

	case []*calendar.Options:
		return f.formatRecords(w, v)

	case map[string]string:
		if len(v) == 0 {
			return nil
		}
		for _, key := range sortedKeys(v) {
			if _, err := fmt.Fprintf(w, "%s: %s\n", key, pkgstrings.FirstLine(v[key])); err != nil {
				return err
			}
		}
		return nil
	}

	_, err := fmt.Fprintln(w, PrettyJSON(data))
	return err
}

func (f *ConsoleFormatter) formatRecords(w io.Writer, records []*calendar.Options) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No events.")
		return err
	}

	var output []string
	if !f.options.Quiet {
		output = append(output, fmt.Sprintf("Events (%d):", len(records)))
	}
	for i, rec := range records {
		output = append(output, fmt.Sprintf("  %d. %s", i+1, eventLine(rec)))
	}
	_, err := fmt.Fprintln(w, strings.Join(output, "\n"))
	return err
}

func eventLine(rec *calendar.Options) string {
	if rec == nil {
		return ""
	}
	field := func(key string) string {
		v, _ := rec.Get(key)
		return DisplayValue(v)
	}

	when := field("start")
	if end := field("end"); end != "" {
		when += " -> " + end
	}
	line := fmt.Sprintf("%-30s %s", field("title"), when)
	if allDay, _ := rec.Get("allDay"); allDay == true {
		line += " (all day)"
	}
	return line
}

// SetOptions updates the formatter options
func (f *ConsoleFormatter) SetOptions(options Options) {
	f.options = options
}

// GetOptions returns the current formatter options
func (f *ConsoleFormatter) GetOptions() Options {
	return f.options
}
