package config

import (
	"fmt"

	"calrender/pkg/calendar"
)

// Calendar builds the calendar described by the document. Inline events
// carry the document attributes; extra events, usually fetched from the
// configured sources, are appended after them as they are.
func (d *Document) Calendar(extra []calendar.Event) (*calendar.Calendar, error) {
	cal := calendar.New().
		SetID(d.ID).
		SetES6(d.ES6).
		SetLegacyOutput(d.Legacy).
		SetCallbacks(d.Callbacks)

	if d.Indent != nil {
		cal.SetIndent(*d.Indent)
	}
	if d.Options.Options != nil {
		cal.SetOrderedOptions(d.Options.Options)
	}

	for i, ec := range d.Events {
		event, err := calendar.ParseEvent(ec.Title, ec.AllDay, ec.Start, ec.End, ec.ID, ec.Attributes)
		if err != nil {
			return nil, fmt.Errorf("events[%d]: %w", i, err)
		}
		cal.AddEvent(event, d.Attributes)
	}
	cal.AddEvents(extra, nil)

	return cal, nil
}
