package calendar

import (
	"fmt"
	"maps"
	"sort"
	"strings"
	"time"
)

// TimeLayout is the ISO-8601 layout used for event start and end values.
const TimeLayout = "2006-01-02T15:04:05-07:00"

// timeLayouts are the textual timestamp forms accepted by ParseTime.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Event is a single calendar entry.
type Event interface {
	ID() string
	Title() string
	IsAllDay() bool
	Start() time.Time
	End() time.Time
}

// OptionsProvider is implemented by events that carry extra attributes to be
// merged into their serialized record.
type OptionsProvider interface {
	EventOptions() map[string]any
}

// SimpleEvent is an immutable Event carrying an open set of extra attributes.
type SimpleEvent struct {
	id      string
	title   string
	allDay  bool
	start   time.Time
	end     time.Time
	options map[string]any
}

// NewEvent creates an event. id may be empty. options are copied and
// serialized next to the native fields without any allow-list.
func NewEvent(title string, allDay bool, start, end time.Time, id string, options map[string]any) *SimpleEvent {
	return &SimpleEvent{
		id:      id,
		title:   title,
		allDay:  allDay,
		start:   start,
		end:     end,
		options: maps.Clone(options),
	}
}

// ParseEvent creates an event from textual timestamps interpreted in the
// local time zone. An empty end leaves the event without an end.
func ParseEvent(title string, allDay bool, start, end string, id string, options map[string]any) (*SimpleEvent, error) {
	startTime, err := ParseTime(start, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid start of event %q: %w", title, err)
	}

	var endTime time.Time
	if strings.TrimSpace(end) != "" {
		endTime, err = ParseTime(end, time.Local)
		if err != nil {
			return nil, fmt.Errorf("invalid end of event %q: %w", title, err)
		}
	}

	return NewEvent(title, allDay, startTime, endTime, id, options), nil
}

// ParseTime parses value using the layouts the calendar widget understands.
// Values without a zone are interpreted in loc.
func ParseTime(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTime, value)
}

func (e *SimpleEvent) ID() string       { return e.id }
func (e *SimpleEvent) Title() string    { return e.title }
func (e *SimpleEvent) IsAllDay() bool   { return e.allDay }
func (e *SimpleEvent) Start() time.Time { return e.start }
func (e *SimpleEvent) End() time.Time   { return e.end }

// EventOptions returns a copy of the extra attributes.
func (e *SimpleEvent) EventOptions() map[string]any {
	return maps.Clone(e.options)
}

// Validate reports an empty title, a zero start or an end before the start.
// Serialization never calls it; invalid events are passed through to the
// widget as is.
func (e *SimpleEvent) Validate() error {
	if strings.TrimSpace(e.title) == "" {
		return ErrEmptyTitle
	}
	if e.start.IsZero() {
		return ErrMissingStart
	}
	if !e.end.IsZero() && e.end.Before(e.start) {
		return fmt.Errorf("%w: %s < %s", ErrEndBeforeStart,
			e.end.Format(TimeLayout), e.start.Format(TimeLayout))
	}
	return nil
}

// Record returns the serialized form of e. Native fields come first and
// always win; custom attributes override the event's own options.
func Record(e Event, custom map[string]any) *Options {
	rec := NewOptions()
	if id := e.ID(); id != "" {
		rec.Set("id", id)
	}
	rec.Set("title", e.Title())
	rec.Set("allDay", e.IsAllDay())
	rec.Set("start", e.Start().Format(TimeLayout))
	if end := e.End(); !end.IsZero() {
		rec.Set("end", end.Format(TimeLayout))
	}

	extra := make(map[string]any)
	if provider, ok := e.(OptionsProvider); ok {
		maps.Copy(extra, provider.EventOptions())
	}
	maps.Copy(extra, custom)

	keys := make([]string, 0, len(extra))
	for key := range extra {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if _, native := rec.Get(key); native {
			continue
		}
		rec.Set(key, extra[key])
	}
	return rec
}

type eventEntry struct {
	event  Event
	custom map[string]any
}

// EventCollection keeps events in insertion order together with the custom
// attributes they were added with.
type EventCollection struct {
	entries []eventEntry
}

// NewEventCollection returns an empty collection.
func NewEventCollection() *EventCollection {
	return &EventCollection{}
}

// Push appends an event.
func (c *EventCollection) Push(event Event, custom map[string]any) {
	c.entries = append(c.entries, eventEntry{event: event, custom: maps.Clone(custom)})
}

// Len returns the number of events.
func (c *EventCollection) Len() int {
	return len(c.entries)
}

// Records serializes every event in insertion order.
func (c *EventCollection) Records() []*Options {
	records := make([]*Options, 0, len(c.entries))
	for _, entry := range c.entries {
		records = append(records, Record(entry.event, entry.custom))
	}
	return records
}
