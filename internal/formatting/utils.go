package formatting

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"calrender/pkg/calendar"
)

// PrettyJSON formats any value as indented JSON for human-readable display.
// It handles marshaling errors gracefully by falling back to fmt.Sprintf.
//
// Example:
//
//	data := map[string]interface{}{"name": "test", "value": 42}
//	fmt.Println(formatting.PrettyJSON(data))
//	// Output:
//	// {
//	//   "name": "test",
//	//   "value": 42
//	// }
func PrettyJSON(v interface{}) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

// DisplayValue renders a single option value the way it appears in the
// configuration literal. Strings and raw code are shown without quotes.
func DisplayValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case calendar.Raw:
		return string(val)
	}
	s, err := calendar.Marshal(v, "")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return s
}

// recordColumns returns the union of the keys of records in order of first
// appearance.
func recordColumns(records []*calendar.Options) []string {
	seen := make(map[string]bool)
	var columns []string
	for _, rec := range records {
		if rec == nil {
			continue
		}
		for pair := rec.Oldest(); pair != nil; pair = pair.Next() {
			if !seen[pair.Key] {
				seen[pair.Key] = true
				columns = append(columns, pair.Key)
			}
		}
	}
	return columns
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
