package formatting

import (
	"fmt"
	"io"
	"reflect"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"calrender/pkg/calendar"
	pkgstrings "calrender/pkg/strings"
)

// TableFormatter provides rich table formatting
type TableFormatter struct {
	options Options
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(options Options) Formatter {
	return &TableFormatter{
		options: options,
	}
}

// FormatData writes data as a table. Option mappings become key/value rows,
// event records one row per event.
func (f *TableFormatter) FormatData(w io.Writer, data interface{}) error {
	switch v := data.(type) {
	case *calendar.Options:
		return f.formatOptions(w, v)
	case []*calendar.Options:
		return f.formatRecords(w, v)
	case map[string]string:
		return f.formatStrings(w, v)
	case map[string]interface{}:
		return f.formatObjectData(w, v)
	case []interface{}:
		return f.formatArrayData(w, v)
	}

	if rv := reflect.ValueOf(data); rv.Kind() == reflect.Slice {
		items := make([]interface{}, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		return f.formatArrayData(w, items)
	}

	_, err := fmt.Fprintln(w, DisplayValue(data))
	return err
}

// SetOptions updates the formatter options
func (f *TableFormatter) SetOptions(options Options) {
	f.options = options
}

// GetOptions returns the current formatter options
func (f *TableFormatter) GetOptions() Options {
	return f.options
}

// createTable creates a new table with standard styling
func (f *TableFormatter) createTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	return t
}

func (f *TableFormatter) header(s string) interface{} {
	if f.options.Color {
		return text.FgHiCyan.Sprint(s)
	}
	return s
}

func (f *TableFormatter) cell(v any) string {
	return pkgstrings.TruncateCell(DisplayValue(v), pkgstrings.DefaultCellMaxLen)
}

func (f *TableFormatter) formatEmptyMessage(w io.Writer, message string) error {
	if f.options.Color {
		message = text.FgYellow.Sprint(message)
	}
	_, err := fmt.Fprintln(w, message)
	return err
}

func (f *TableFormatter) formatTotal(w io.Writer, count int, noun string) {
	if f.options.Quiet {
		return
	}
	if f.options.Color {
		fmt.Fprintf(w, "\n%s %s %s\n",
			text.FgHiBlue.Sprint("Total:"),
			text.FgHiWhite.Sprint(count),
			text.FgHiBlue.Sprint(noun))
		return
	}
	fmt.Fprintf(w, "\nTotal: %d %s\n", count, noun)
}

func (f *TableFormatter) formatOptions(w io.Writer, opts *calendar.Options) error {
	if opts == nil || opts.Len() == 0 {
		return f.formatEmptyMessage(w, "No options set")
	}

	t := f.createTable(w)
	t.AppendHeader([]interface{}{f.header("OPTION"), f.header("VALUE")})
	for pair := opts.Oldest(); pair != nil; pair = pair.Next() {
		t.AppendRow([]interface{}{pair.Key, f.cell(pair.Value)})
	}
	t.Render()
	return nil
}

func (f *TableFormatter) formatRecords(w io.Writer, records []*calendar.Options) error {
	if len(records) == 0 {
		return f.formatEmptyMessage(w, "No events found")
	}

	columns := recordColumns(records)
	t := f.createTable(w)

	header := make([]interface{}, len(columns))
	for i, column := range columns {
		header[i] = f.header(column)
	}
	t.AppendHeader(header)

	for _, rec := range records {
		row := make([]interface{}, len(columns))
		for i, column := range columns {
			row[i] = ""
			if rec == nil {
				continue
			}
			if v, ok := rec.Get(column); ok {
				row[i] = f.cell(v)
			}
		}
		t.AppendRow(row)
	}
	t.Render()

	f.formatTotal(w, len(records), "events")
	return nil
}

func (f *TableFormatter) formatStrings(w io.Writer, data map[string]string) error {
	if len(data) == 0 {
		return f.formatEmptyMessage(w, "No entries found")
	}

	t := f.createTable(w)
	t.AppendHeader([]interface{}{f.header("KEY"), f.header("VALUE")})
	for _, key := range sortedKeys(data) {
		t.AppendRow([]interface{}{key, f.cell(pkgstrings.FirstLine(data[key]))})
	}
	t.Render()
	return nil
}

// formatObjectData formats object data as key-value pairs
func (f *TableFormatter) formatObjectData(w io.Writer, data map[string]interface{}) error {
	t := f.createTable(w)
	t.AppendHeader([]interface{}{f.header("KEY"), f.header("VALUE")})
	for _, key := range sortedKeys(data) {
		t.AppendRow([]interface{}{key, f.cell(data[key])})
	}
	t.Render()
	return nil
}

// formatArrayData formats array data as a numbered list
func (f *TableFormatter) formatArrayData(w io.Writer, data []interface{}) error {
	if len(data) == 0 {
		return f.formatEmptyMessage(w, "No items found")
	}

	for i, item := range data {
		fmt.Fprintf(w, "  %d. %s\n", i+1, f.cell(item))
	}
	f.formatTotal(w, len(data), "items")
	return nil
}
