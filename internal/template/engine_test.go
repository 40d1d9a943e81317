package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeContexts(t *testing.T) {
	merged := MergeContexts(
		map[string]interface{}{"ID": "a", "Options": "{}"},
		nil,
		map[string]interface{}{"ID": "b"},
	)
	assert.Equal(t, map[string]interface{}{"ID": "b", "Options": "{}"}, merged)
	assert.Empty(t, MergeContexts())
}

func TestEngine_Names(t *testing.T) {
	engine, err := New()
	require.NoError(t, err)
	assert.Equal(t, []string{PageTemplate, ScriptTemplate, ScriptES6Template}, engine.Names())
}

func TestEngine_Render(t *testing.T) {
	engine := Must(New())

	t.Run("script", func(t *testing.T) {
		out, err := engine.Render(ScriptTemplate,
			map[string]interface{}{"ID": "x1"},
			map[string]interface{}{"Options": "{\n    a: fn\n}"},
		)
		require.NoError(t, err)
		assert.Contains(t, string(out), "getElementById('calendar-x1');")
		assert.Contains(t, string(out), "(calendarEl,\n{\n    a: fn\n}\n        );")
	})

	t.Run("script-es6", func(t *testing.T) {
		out, err := engine.Render(ScriptES6Template, map[string]interface{}{"ID": "x1", "Options": "{}"})
		require.NoError(t, err)
		assert.Contains(t, string(out), "let calendarEl = document.getElementById('calendar-x1')")
		assert.Contains(t, string(out), "(calendarEl,\n{},\n        );")
	})

	t.Run("id is escaped for the script context", func(t *testing.T) {
		out, err := engine.Render(ScriptTemplate, map[string]interface{}{"ID": "x'1", "Options": "{}"})
		require.NoError(t, err)
		assert.NotContains(t, string(out), "calendar-x'1")
	})

	t.Run("unknown template", func(t *testing.T) {
		_, err := engine.Render("missing")
		assert.ErrorContains(t, err, `unknown template "missing"`)
	})
}

func TestMust(t *testing.T) {
	assert.Panics(t, func() {
		Must(nil, assert.AnError)
	})
}
