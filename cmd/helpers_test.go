package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const teamDocument = `id: team
options:
  initialView: timeGridWeek
  locale: de
callbacks:
  eventClick: "function(info) { alert(info.event.title); }"
attributes:
  color: purple
events:
  - id: kickoff
    title: Kick-off
    allDay: true
    start: "2026-10-19"
sources:
  - name: team
    type: ics
    path: team.ics
page:
  title: Team
`

// writeTeamDocument writes the team document and its ics source into a
// temporary directory and returns the document path.
func writeTeamDocument(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	ics, err := os.ReadFile(filepath.Join("..", "internal", "source", "testdata", "team.ics"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "team.ics"), ics, 0o600))

	path := filepath.Join(dir, "calendar.yaml")
	require.NoError(t, os.WriteFile(path, []byte(teamDocument), 0o600))
	return path
}

func writeDocument(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "calendar.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// execute runs a fresh command tree with args and returns stdout and
// stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("CALRENDER_LOG_LEVEL", "info")
	t.Setenv("CALRENDER_LOG_FORMAT", "text")

	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
