package formatting

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
	sigsyaml "sigs.k8s.io/yaml"

	"calrender/pkg/calendar"
)

// YAMLFormatter provides YAML output formatting
type YAMLFormatter struct {
	options Options
}

// NewYAMLFormatter creates a new YAML formatter
func NewYAMLFormatter(options Options) Formatter {
	return &YAMLFormatter{
		options: options,
	}
}

// FormatData writes data as YAML. Option mappings and event records keep
// their key order; other values go through their JSON form so json struct
// tags apply.
func (f *YAMLFormatter) FormatData(w io.Writer, data interface{}) error {
	if ordered(data) {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return enc.Close()
	}

	out, err := sigsyaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	_, err = w.Write(out)
	return err
}

func ordered(data interface{}) bool {
	switch v := data.(type) {
	case *calendar.Options:
		return v != nil
	case []*calendar.Options:
		for _, rec := range v {
			if rec == nil {
				return false
			}
		}
		return true
	}
	return false
}

// SetOptions updates the formatter options
func (f *YAMLFormatter) SetOptions(options Options) {
	f.options = options
}

// GetOptions returns the current formatter options
func (f *YAMLFormatter) GetOptions() Options {
	return f.options
}
