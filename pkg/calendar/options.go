package calendar

import (
	"reflect"
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Options is an insertion ordered mapping of option name to value.
// Values may be scalars, slices, map[string]any, nested *Options or Raw.
type Options = orderedmap.OrderedMap[string, any]

// NewOptions returns an empty option mapping.
func NewOptions() *Options {
	return orderedmap.New[string, any]()
}

// OptionsFromMap copies m into a new option mapping. Go maps carry no order,
// so keys are inserted in lexical order.
func OptionsFromMap(m map[string]any) *Options {
	out := NewOptions()
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		out.Set(key, m[key])
	}
	return out
}

// DefaultOptions returns a fresh copy of the options every calendar starts
// with. Callers may modify the result freely.
func DefaultOptions() *Options {
	toolbar := NewOptions()
	toolbar.Set("left", "prev,next today")
	toolbar.Set("center", "title")
	toolbar.Set("right", "dayGridMonth,dayGridWeek,listWeek")

	defaults := NewOptions()
	defaults.Set("initialView", "dayGridMonth")
	defaults.Set("height", "auto")
	defaults.Set("headerToolbar", toolbar)
	defaults.Set("dayMaxEventRows", true)
	return defaults
}

// MergeOptions merges layers left to right into a new mapping. Later layers
// override top-level keys of earlier ones; a key keeps the position of its
// first occurrence. Nested values are replaced, never merged.
func MergeOptions(layers ...*Options) *Options {
	out := NewOptions()
	for _, layer := range layers {
		if layer == nil {
			continue
		}
		for pair := layer.Oldest(); pair != nil; pair = pair.Next() {
			out.Set(pair.Key, pair.Value)
		}
	}
	return out
}

// asObject returns a fresh ordered copy of v when v is a string keyed
// mapping (either *Options or any Go map with string keys).
func asObject(v any) (*Options, bool) {
	switch m := v.(type) {
	case *Options:
		if m == nil {
			return nil, false
		}
		return MergeOptions(m), true
	case map[string]any:
		return OptionsFromMap(m), true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	keys := make([]string, 0, rv.Len())
	for _, key := range rv.MapKeys() {
		keys = append(keys, key.String())
	}
	sort.Strings(keys)
	out := NewOptions()
	for _, key := range keys {
		out.Set(key, rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key())).Interface())
	}
	return out, true
}

// asList returns the elements of v when v is a slice or array.
func asList(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		return l, true
	case []string:
		out := make([]any, len(l))
		for i, s := range l {
			out[i] = s
		}
		return out, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	// []byte has a JSON representation of its own.
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
