package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEvents(t *testing.T, data string) []map[string]any {
	t.Helper()
	var events []map[string]any
	require.NoError(t, json.Unmarshal([]byte(data), &events))
	return events
}

func TestEventsCommand(t *testing.T) {
	path := writeTeamDocument(t)

	t.Run("inline events only", func(t *testing.T) {
		stdout, _, err := execute(t, "events", "--config", path, "--no-fetch", "--output", "json")
		require.NoError(t, err)

		events := decodeEvents(t, stdout)
		require.Len(t, events, 1)
		assert.Equal(t, "kickoff", events[0]["id"])
		assert.Equal(t, "Kick-off", events[0]["title"])
		assert.Equal(t, true, events[0]["allDay"])
		assert.Equal(t, "purple", events[0]["color"])
	})

	t.Run("inline events come first", func(t *testing.T) {
		stdout, _, err := execute(t, "events", "--config", path, "--output", "json")
		require.NoError(t, err)

		events := decodeEvents(t, stdout)
		require.Len(t, events, 3)
		titles := []any{events[0]["title"], events[1]["title"], events[2]["title"]}
		assert.Equal(t, []any{"Kick-off", "Launch", "Standup"}, titles)

		// Document attributes only apply to inline events.
		assert.NotContains(t, events[1], "color")
		assert.Equal(t, "Room 1", events[2]["location"])
	})

	t.Run("table", func(t *testing.T) {
		stdout, _, err := execute(t, "events", "--config", path)
		require.NoError(t, err)
		assert.Contains(t, stdout, "TITLE")
		assert.Contains(t, stdout, "Standup")
		assert.Contains(t, stdout, "Total: 3 events")
	})

	t.Run("yaml", func(t *testing.T) {
		stdout, _, err := execute(t, "events", "--config", path, "--no-fetch", "--output", "yaml")
		require.NoError(t, err)
		assert.Contains(t, stdout, "- id: kickoff\n  title: Kick-off\n")
	})

	t.Run("unknown output format", func(t *testing.T) {
		_, _, err := execute(t, "events", "--config", path, "--output", "xml")
		assert.Error(t, err)
		assert.Equal(t, ExitCodeError, getExitCode(err))
	})
}
