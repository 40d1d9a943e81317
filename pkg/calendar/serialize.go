package calendar

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Raw is emitted verbatim in the configuration literal instead of as a
// quoted string. It carries function expressions and bare identifiers such
// as plugin or locale names.
type Raw string

// identifierPattern matches object keys that need no quoting in JavaScript.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// tagIdentifiers marks the values the widget expects as code rather than
// data: plugin and locale names and the click handlers of custom buttons.
// Only top-level keys are inspected. params is modified in place; nested
// values are copied before they are changed.
func tagIdentifiers(params *Options) *Options {
	for pair := params.Oldest(); pair != nil; pair = pair.Next() {
		switch strings.ToLower(pair.Key) {
		case "plugins", "locales":
			pair.Value = identifiers(pair.Value)
		case "custombuttons":
			pair.Value = rawClickHandlers(pair.Value)
		}
	}
	return params
}

func identifiers(v any) any {
	if s, ok := v.(string); ok {
		return Raw(s)
	}
	list, ok := asList(v)
	if !ok {
		return v
	}
	out := make([]any, len(list))
	for i, item := range list {
		if s, ok := item.(string); ok {
			out[i] = Raw(s)
			continue
		}
		out[i] = item
	}
	return out
}

// rawClickHandlers turns string click options of every custom button into
// Raw. Click values of any other type are left as data.
func rawClickHandlers(v any) any {
	buttons, ok := asObject(v)
	if !ok {
		return v
	}
	for button := buttons.Oldest(); button != nil; button = button.Next() {
		settings, ok := asObject(button.Value)
		if !ok {
			continue
		}
		for setting := settings.Oldest(); setting != nil; setting = setting.Next() {
			if !strings.EqualFold(setting.Key, "click") {
				continue
			}
			if s, ok := setting.Value.(string); ok {
				setting.Value = Raw(s)
			}
		}
		button.Value = settings
	}
	return buttons
}

// Marshal encodes v as a JavaScript literal. Object keys that are valid
// identifiers are left bare, strings are JSON encoded with HTML characters
// escaped, and Raw values are written as is. An empty indent produces
// compact output.
func Marshal(v any, indent string) (string, error) {
	enc := &encoder{indent: indent}
	if err := enc.encode(v, 0); err != nil {
		return "", err
	}
	return enc.buf.String(), nil
}

type encoder struct {
	buf    bytes.Buffer
	indent string
}

func (e *encoder) encode(v any, depth int) error {
	switch val := v.(type) {
	case nil:
		e.buf.WriteString("null")
		return nil
	case Raw:
		e.buf.WriteString(string(val))
		return nil
	case *Options:
		if val == nil {
			e.buf.WriteString("null")
			return nil
		}
		return e.encodeObject(val, depth)
	case json.Marshaler:
		return e.encodeJSON(val, depth)
	}

	if obj, ok := asObject(v); ok {
		return e.encodeObject(obj, depth)
	}
	if list, ok := asList(v); ok {
		return e.encodeArray(list, depth)
	}
	return e.encodeJSON(v, depth)
}

func (e *encoder) encodeObject(obj *Options, depth int) error {
	if obj.Len() == 0 {
		e.buf.WriteString("{}")
		return nil
	}

	e.buf.WriteByte('{')
	first := true
	for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
		if !first {
			e.buf.WriteByte(',')
		}
		first = false
		e.newline(depth + 1)

		if err := e.encodeKey(pair.Key); err != nil {
			return err
		}
		e.buf.WriteByte(':')
		if e.indent != "" {
			e.buf.WriteByte(' ')
		}
		if err := e.encode(pair.Value, depth+1); err != nil {
			return fmt.Errorf("%s: %w", pair.Key, err)
		}
	}
	e.newline(depth)
	e.buf.WriteByte('}')
	return nil
}

func (e *encoder) encodeArray(list []any, depth int) error {
	if len(list) == 0 {
		e.buf.WriteString("[]")
		return nil
	}

	e.buf.WriteByte('[')
	for i, item := range list {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		e.newline(depth + 1)
		if err := e.encode(item, depth+1); err != nil {
			return fmt.Errorf("[%d]: %w", i, err)
		}
	}
	e.newline(depth)
	e.buf.WriteByte(']')
	return nil
}

func (e *encoder) encodeKey(key string) error {
	if identifierPattern.MatchString(key) {
		e.buf.WriteString(key)
		return nil
	}
	data, err := json.Marshal(key)
	if err != nil {
		return err
	}
	e.buf.Write(data)
	return nil
}

// encodeJSON writes scalars and values with a JSON form of their own
// (time.Time, structs, json.Marshaler implementations).
func (e *encoder) encodeJSON(v any, depth int) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if e.indent == "" || len(data) == 0 || (data[0] != '{' && data[0] != '[') {
		e.buf.Write(data)
		return nil
	}
	return json.Indent(&e.buf, data, strings.Repeat(e.indent, depth), e.indent)
}

func (e *encoder) newline(depth int) {
	if e.indent == "" {
		return
	}
	e.buf.WriteByte('\n')
	for range depth {
		e.buf.WriteString(e.indent)
	}
}
