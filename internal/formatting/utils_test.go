package formatting

import (
	"testing"
	"time"

	"calrender/pkg/calendar"
)

func TestPrettyJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected string
	}{
		{
			name:     "simple object",
			input:    map[string]interface{}{"name": "test", "value": 42},
			expected: "{\n  \"name\": \"test\",\n  \"value\": 42\n}",
		},
		{
			name:     "array",
			input:    []string{"a", "b", "c"},
			expected: "[\n  \"a\",\n  \"b\",\n  \"c\"\n]",
		},
		{
			name:     "nil",
			input:    nil,
			expected: "null",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := PrettyJSON(tt.input)
			if result != tt.expected {
				t.Errorf("PrettyJSON() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestPrettyJSONWithInvalidData(t *testing.T) {
	ch := make(chan int)
	result := PrettyJSON(ch)

	if len(result) < 5 {
		t.Errorf("PrettyJSON() fallback should provide meaningful output, got %q", result)
	}
}

func TestDisplayValue(t *testing.T) {
	nested := calendar.NewOptions()
	nested.Set("b", 1)
	nested.Set("a", []any{"x", calendar.Raw("y")})

	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"nil", nil, ""},
		{"string", "a \"quoted\" value", "a \"quoted\" value"},
		{"raw", calendar.Raw("function() {}"), "function() {}"},
		{"bool", true, "true"},
		{"number", 2.5, "2.5"},
		{"options", nested, `{b:1,a:["x",y]}`},
		{"time", time.Date(2026, 10, 20, 9, 0, 0, 0, time.UTC), `"2026-10-20T09:00:00Z"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayValue(tt.input); got != tt.expected {
				t.Errorf("DisplayValue() = %q, want %q", got, tt.expected)
			}
		})
	}
}
