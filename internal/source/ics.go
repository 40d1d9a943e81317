package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"os"
	"time"

	"github.com/emersion/go-ical"

	"calrender/pkg/calendar"
)

// DecodeEvents reads every VEVENT of the iCalendar stream r. Timestamps
// without a zone are interpreted in loc. attributes are added to the options
// of every event.
func DecodeEvents(r io.Reader, loc *time.Location, attributes map[string]any) ([]calendar.Event, error) {
	dec := ical.NewDecoder(r)

	var events []calendar.Event
	for {
		cal, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode calendar: %w", err)
		}

		decoded, err := calendarEvents(cal, loc, attributes)
		if err != nil {
			return nil, err
		}
		events = append(events, decoded...)
	}
	return events, nil
}

func calendarEvents(cal *ical.Calendar, loc *time.Location, attributes map[string]any) ([]calendar.Event, error) {
	var events []calendar.Event
	for _, comp := range cal.Children {
		if comp.Name != ical.CompEvent {
			continue
		}
		event, err := componentEvent(comp, loc, attributes)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

// componentEvent maps a VEVENT onto a calendar event: SUMMARY is the title,
// UID the id, and a DTSTART of value type DATE makes the event all-day.
// DESCRIPTION, LOCATION and URL become event options.
func componentEvent(comp *ical.Component, loc *time.Location, attributes map[string]any) (*calendar.SimpleEvent, error) {
	var (
		id, title  string
		allDay     bool
		start, end time.Time
	)
	options := maps.Clone(attributes)
	if options == nil {
		options = make(map[string]any)
	}

	if prop := comp.Props.Get(ical.PropUID); prop != nil {
		id = prop.Value
	}
	if prop := comp.Props.Get(ical.PropSummary); prop != nil {
		title = prop.Value
	}

	prop := comp.Props.Get(ical.PropDateTimeStart)
	if prop == nil {
		return nil, fmt.Errorf("event %q has no DTSTART", id)
	}
	start, err := prop.DateTime(loc)
	if err != nil {
		return nil, fmt.Errorf("event %q: invalid DTSTART: %w", id, err)
	}
	if prop.Params.Get(ical.ParamValue) == string(ical.ValueDate) {
		allDay = true
	}

	if prop := comp.Props.Get(ical.PropDateTimeEnd); prop != nil {
		end, err = prop.DateTime(loc)
		if err != nil {
			return nil, fmt.Errorf("event %q: invalid DTEND: %w", id, err)
		}
	}

	for name, key := range map[string]string{
		ical.PropDescription: "description",
		ical.PropLocation:    "location",
		ical.PropURL:         "url",
	} {
		if prop := comp.Props.Get(name); prop != nil && prop.Value != "" {
			options[key] = prop.Value
		}
	}

	return calendar.NewEvent(title, allDay, start, end, id, options), nil
}

// ICSFile reads events from an iCalendar file on disk.
type ICSFile struct {
	name       string
	path       string
	attributes map[string]any
}

// NewICSFile returns a source reading path.
func NewICSFile(name, path string, attributes map[string]any) *ICSFile {
	return &ICSFile{name: name, path: path, attributes: attributes}
}

// Name returns the source name.
func (s *ICSFile) Name() string { return s.name }

// Events decodes the file. The file is read on every call.
func (s *ICSFile) Events(ctx context.Context) ([]calendar.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", s.path, err)
	}
	defer f.Close()

	return DecodeEvents(f, time.Local, s.attributes)
}

// ICSURL fetches events from an iCalendar feed over HTTP.
type ICSURL struct {
	name       string
	url        string
	client     *http.Client
	attributes map[string]any
}

// NewICSURL returns a source fetching url with client. A nil client uses a
// client with DefaultTimeout.
func NewICSURL(name, url string, client *http.Client, attributes map[string]any) *ICSURL {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &ICSURL{name: name, url: url, client: client, attributes: attributes}
}

// Name returns the source name.
func (s *ICSURL) Name() string { return s.name }

// Events fetches and decodes the feed.
func (s *ICSURL) Events(ctx context.Context) ([]calendar.Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/calendar")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", s.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: unexpected status %s", s.url, resp.Status)
	}

	return DecodeEvents(resp.Body, time.Local, s.attributes)
}
