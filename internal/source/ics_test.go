package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calrender/pkg/calendar"
)

func readTestdata(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/" + name)
	require.NoError(t, err)
	return data
}

func assertTeamEvents(t *testing.T, events []calendar.Event, attributes map[string]any) {
	t.Helper()
	require.Len(t, events, 2)

	launch := events[0].(*calendar.SimpleEvent)
	assert.Equal(t, "launch@example.com", launch.ID())
	assert.Equal(t, "Launch", launch.Title())
	assert.True(t, launch.IsAllDay())
	assert.True(t, time.Date(2026, 10, 20, 0, 0, 0, 0, time.Local).Equal(launch.Start()))
	assert.True(t, time.Date(2026, 10, 21, 0, 0, 0, 0, time.Local).Equal(launch.End()))
	assert.Equal(t, "https://example.com/launch", launch.EventOptions()["url"])

	standup := events[1].(*calendar.SimpleEvent)
	assert.Equal(t, "Standup", standup.Title())
	assert.False(t, standup.IsAllDay())
	assert.True(t, time.Date(2026, 10, 20, 9, 0, 0, 0, time.UTC).Equal(standup.Start()))
	assert.True(t, time.Date(2026, 10, 20, 9, 15, 0, 0, time.UTC).Equal(standup.End()))
	assert.Equal(t, "Room 1", standup.EventOptions()["location"])
	assert.Equal(t, "Daily sync", standup.EventOptions()["description"])

	for key, value := range attributes {
		assert.Equal(t, value, launch.EventOptions()[key])
		assert.Equal(t, value, standup.EventOptions()[key])
	}
}

func TestDecodeEvents(t *testing.T) {
	attributes := map[string]any{"color": "orange"}
	events, err := DecodeEvents(strings.NewReader(string(readTestdata(t, "team.ics"))), time.Local, attributes)
	require.NoError(t, err)
	assertTeamEvents(t, events, attributes)

	t.Run("attributes are not shared", func(t *testing.T) {
		events[0].(*calendar.SimpleEvent).EventOptions()["color"] = "red"
		assert.Equal(t, "orange", attributes["color"])
	})

	t.Run("missing DTSTART", func(t *testing.T) {
		ics := "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:x\r\nBEGIN:VEVENT\r\nUID:broken\r\nSUMMARY:Broken\r\nEND:VEVENT\r\nEND:VCALENDAR\r\n"
		_, err := DecodeEvents(strings.NewReader(ics), time.UTC, nil)
		assert.ErrorContains(t, err, `event "broken" has no DTSTART`)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := DecodeEvents(strings.NewReader("not a calendar"), time.UTC, nil)
		assert.Error(t, err)
	})

	t.Run("empty stream", func(t *testing.T) {
		events, err := DecodeEvents(strings.NewReader(""), time.UTC, nil)
		require.NoError(t, err)
		assert.Empty(t, events)
	})
}

func TestICSFile(t *testing.T) {
	src := NewICSFile("team", "testdata/team.ics", nil)
	assert.Equal(t, "team", src.Name())

	events, err := src.Events(context.Background())
	require.NoError(t, err)
	assertTeamEvents(t, events, nil)

	_, err = NewICSFile("missing", "testdata/missing.ics", nil).Events(context.Background())
	assert.ErrorContains(t, err, "testdata/missing.ics")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = src.Events(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestICSURL(t *testing.T) {
	feed := readTestdata(t, "team.ics")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/team.ics":
			assert.Equal(t, "text/calendar", r.Header.Get("Accept"))
			w.Header().Set("Content-Type", "text/calendar")
			_, _ = w.Write(feed)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	t.Run("fetches the feed", func(t *testing.T) {
		src := NewICSURL("team", server.URL+"/team.ics", server.Client(), map[string]any{"editable": false})
		events, err := src.Events(context.Background())
		require.NoError(t, err)
		assertTeamEvents(t, events, map[string]any{"editable": false})
	})

	t.Run("unexpected status", func(t *testing.T) {
		_, err := NewICSURL("gone", server.URL+"/gone.ics", nil, nil).Events(context.Background())
		assert.ErrorContains(t, err, "unexpected status 404")
	})

	t.Run("default client", func(t *testing.T) {
		src := NewICSURL("team", server.URL+"/team.ics", nil, nil)
		assert.Equal(t, DefaultTimeout, src.client.Timeout)
	})
}
