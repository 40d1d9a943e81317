package config

import "time"

const (
	// DefaultConfigFile is the calendar document read when no path is given.
	DefaultConfigFile = "calendar.yaml"

	// DefaultAddr is the listen address of the preview server.
	DefaultAddr = "localhost:8080"

	// DefaultWindowFrom and DefaultWindowTo bound CalDAV queries, in days
	// relative to today.
	DefaultWindowFrom = -30
	DefaultWindowTo   = 90

	// DefaultSourceTimeout applies to HTTP and CalDAV sources.
	DefaultSourceTimeout = 30 * time.Second
)
