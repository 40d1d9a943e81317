package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calrender/pkg/calendar"
)

const teamDocument = `
id: team
es6: true
indent: ""
options:
  weekends: false
  initialView: timeGridWeek
  headerToolbar:
    right: timeGridWeek,listWeek
    left: prev,next
  plugins: [dayGridPlugin, timeGridPlugin]
  validRange:
    start: 2026-01-01
callbacks:
  eventClick: "function(info) { return false; }"
attributes:
  color: green
events:
  - id: launch
    title: Launch
    allDay: true
    start: 2026-10-20
    end: 2026-10-21
    attributes:
      url: /launch
sources:
  - name: holidays
    type: ics
    path: holidays.ics
page:
  title: Team
  stylesheets: [/static/app.css]
`

func optionKeys(o *calendar.Options) []string {
	var keys []string
	for pair := o.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

func TestParseDocument(t *testing.T) {
	doc, err := ParseDocument([]byte(teamDocument), "team.yaml")
	require.NoError(t, err)

	assert.Equal(t, "team.yaml", doc.Path)
	assert.Equal(t, "team", doc.ID)
	assert.True(t, doc.ES6)
	require.NotNil(t, doc.Indent)
	assert.Equal(t, "", *doc.Indent)

	require.NotNil(t, doc.Options.Options)
	assert.Equal(t, []string{"weekends", "initialView", "headerToolbar", "plugins", "validRange"}, optionKeys(doc.Options.Options))

	toolbar, _ := doc.Options.Get("headerToolbar")
	require.IsType(t, &calendar.Options{}, toolbar)
	assert.Equal(t, []string{"right", "left"}, optionKeys(toolbar.(*calendar.Options)))

	plugins, _ := doc.Options.Get("plugins")
	assert.Equal(t, []any{"dayGridPlugin", "timeGridPlugin"}, plugins)

	weekends, _ := doc.Options.Get("weekends")
	assert.Equal(t, false, weekends)

	validRange, _ := doc.Options.Get("validRange")
	start, _ := validRange.(*calendar.Options).Get("start")
	assert.Equal(t, "2026-01-01", start, "dates stay strings")

	require.Len(t, doc.Events, 1)
	assert.Equal(t, EventConfig{
		ID:         "launch",
		Title:      "Launch",
		AllDay:     true,
		Start:      "2026-10-20",
		End:        "2026-10-21",
		Attributes: map[string]any{"url": "/launch"},
	}, doc.Events[0])

	require.Len(t, doc.Sources, 1)
	assert.Equal(t, SourceTypeICS, doc.Sources[0].Type)
	assert.Equal(t, "holidays.ics", doc.Sources[0].Path)

	assert.Equal(t, "Team", doc.Page.Title)
	assert.Equal(t, []string{"/static/app.css"}, doc.Page.Stylesheets)
}

func TestParseDocument_Anchors(t *testing.T) {
	doc, err := ParseDocument([]byte(`
options:
  views:
    base: &base
      dayMaxEventRows: 2
      titleFormat: short
    timeGrid:
      <<: *base
      titleFormat: long
`), "")
	require.NoError(t, err)

	views, _ := doc.Options.Get("views")
	timeGrid, _ := views.(*calendar.Options).Get("timeGrid")
	grid := timeGrid.(*calendar.Options)

	title, _ := grid.Get("titleFormat")
	assert.Equal(t, "long", title)
	rows, _ := grid.Get("dayMaxEventRows")
	assert.Equal(t, 2, rows)
}

func TestParseDocument_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLine int
	}{
		{name: "unknown field", input: "id: team\ncolour: red\n", wantLine: 2},
		{name: "options not a mapping", input: "options: [a, b]\n", wantLine: 1},
		{name: "malformed yaml", input: "id: team\n  es6: [\n", wantLine: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDocument([]byte(tt.input), "bad.yaml")
			require.Error(t, err)

			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, ErrorTypeParse, cfgErr.ErrorType)
			assert.Equal(t, "bad.yaml", cfgErr.FilePath)
			assert.Equal(t, tt.wantLine, cfgErr.LineNumber)
		})
	}
}

func TestParseDocument_Empty(t *testing.T) {
	doc, err := ParseDocument(nil, "empty.yaml")
	require.NoError(t, err)
	assert.Nil(t, doc.Options.Options)
	assert.Empty(t, doc.Events)
}

func TestLoadDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "calendar.yaml")
	require.NoError(t, os.WriteFile(path, []byte(teamDocument), 0o644))

	doc, err := LoadDocument(path, true)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Path)
	assert.Equal(t, "team", doc.ID)

	t.Run("missing optional document", func(t *testing.T) {
		doc, err := LoadDocument(filepath.Join(dir, "missing.yaml"), false)
		require.NoError(t, err)
		assert.Equal(t, &Document{}, doc)
	})

	t.Run("missing required document", func(t *testing.T) {
		_, err := LoadDocument(filepath.Join(dir, "missing.yaml"), true)
		var cfgErr *ConfigurationError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, ErrorTypeIO, cfgErr.ErrorType)
		assert.NotEmpty(t, cfgErr.Suggestions)
	})
}

func TestDocument_Marshal(t *testing.T) {
	doc, err := ParseDocument([]byte(teamDocument), "")
	require.NoError(t, err)

	data, err := doc.Marshal()
	require.NoError(t, err)

	again, err := ParseDocument(data, "")
	require.NoError(t, err)
	assert.Equal(t, optionKeys(doc.Options.Options), optionKeys(again.Options.Options))
	assert.Equal(t, doc.Events, again.Events)
	assert.Equal(t, doc.Callbacks, again.Callbacks)
}

func TestLoadEnvironment(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		for _, name := range []string{"CALRENDER_CONFIG", "CALRENDER_LOG_LEVEL", "CALRENDER_LOG_FORMAT", "CALRENDER_ADDR", "CALRENDER_CALDAV_PASSWORD"} {
			t.Setenv(name, "")
			require.NoError(t, os.Unsetenv(name))
		}

		vars, err := LoadEnvironment()
		require.NoError(t, err)
		assert.Equal(t, Environment{
			ConfigPath: DefaultConfigFile,
			LogLevel:   "info",
			LogFormat:  "text",
			Addr:       DefaultAddr,
		}, vars)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("CALRENDER_CONFIG", "/etc/calrender/team.yaml")
		t.Setenv("CALRENDER_ADDR", ":9000")
		t.Setenv("CALRENDER_CALDAV_PASSWORD", "s3cret")

		vars, err := LoadEnvironment()
		require.NoError(t, err)
		assert.Equal(t, "/etc/calrender/team.yaml", vars.ConfigPath)
		assert.Equal(t, ":9000", vars.Addr)
		assert.Equal(t, "s3cret", vars.CalDAVPassword)
	})
}
