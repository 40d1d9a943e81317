package calendar

import "errors"

var (
	// ErrEmptyTitle is returned by event validation for a blank title.
	ErrEmptyTitle = errors.New("event title is empty")

	// ErrMissingStart is returned by event validation for a zero start.
	ErrMissingStart = errors.New("event has no start")

	// ErrEndBeforeStart is returned by event validation when the end
	// precedes the start.
	ErrEndBeforeStart = errors.New("event ends before it starts")

	// ErrInvalidTime is returned when a textual timestamp matches none of
	// the supported layouts.
	ErrInvalidTime = errors.New("unsupported timestamp")
)
