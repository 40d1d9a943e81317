package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsCommand(t *testing.T) {
	path := writeTeamDocument(t)

	t.Run("console", func(t *testing.T) {
		stdout, _, err := execute(t, "options", "--config", path)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(stdout, "{\n    initialView: \"timeGridWeek\",\n"))
		assert.Contains(t, stdout, `locale: "de"`)
		assert.NotContains(t, stdout, "eventClick")
		assert.NotContains(t, stdout, "Kick-off")
	})

	t.Run("json keeps the option order", func(t *testing.T) {
		stdout, _, err := execute(t, "options", "--config", path, "--output", "json", "-q")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(stdout, `{"initialView":"timeGridWeek",`))
		assert.Less(t, strings.Index(stdout, `"initialView"`), strings.Index(stdout, `"locale"`))
	})

	t.Run("callbacks", func(t *testing.T) {
		stdout, _, err := execute(t, "options", "--config", path, "--callbacks")
		require.NoError(t, err)
		assert.Equal(t, "eventClick: function(info) { alert(info.event.title); }\n", stdout)
	})

	t.Run("unknown output format", func(t *testing.T) {
		_, _, err := execute(t, "options", "--config", path, "--output", "xml")
		assert.ErrorContains(t, err, `unsupported output format "xml"`)
	})
}
