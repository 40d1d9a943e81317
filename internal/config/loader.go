package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"

	"calrender/pkg/logging"

	"gopkg.in/yaml.v3"
)

var yamlLinePattern = regexp.MustCompile(`line (\d+)`)

// LoadDocument reads the calendar document at path. When required is false
// a missing file yields an empty document, so a calendar with the default
// options can still be rendered.
func LoadDocument(path string, required bool) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			logging.Info("Config", "No calendar document found at %s, using defaults", path)
			return &Document{}, nil
		}
		return nil, &ConfigurationError{
			FilePath:    path,
			ErrorType:   ErrorTypeIO,
			Message:     "failed to read calendar document",
			Details:     err.Error(),
			Suggestions: []string{"check the --config flag or CALRENDER_CONFIG"},
		}
	}

	doc, err := ParseDocument(data, path)
	if err != nil {
		return nil, err
	}
	logging.Info("Config", "Loaded calendar document from %s", path)
	return doc, nil
}

// ParseDocument decodes a calendar document. Unknown fields are rejected.
// path is only used in error messages.
func ParseDocument(data []byte, path string) (*Document, error) {
	doc := &Document{}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(doc); err != nil && !errors.Is(err, io.EOF) {
		parseErr := &ConfigurationError{
			FilePath:  path,
			ErrorType: ErrorTypeParse,
			Message:   "failed to parse calendar document",
			Details:   err.Error(),
		}
		if m := yamlLinePattern.FindStringSubmatch(err.Error()); m != nil {
			parseErr.LineNumber, _ = strconv.Atoi(m[1])
		}
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			parseErr.Suggestions = []string{"check field names and value types against the documented schema"}
		}
		return nil, parseErr
	}

	doc.Path = path
	return doc, nil
}

// Marshal encodes the document as YAML, keeping option order.
func (d *Document) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("failed to encode calendar document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
