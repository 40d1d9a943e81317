// Package source fetches calendar events from iCalendar files, iCalendar
// feeds and CalDAV servers.
package source

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"calrender/internal/config"
	"calrender/pkg/calendar"
	"calrender/pkg/logging"
)

// DefaultTimeout bounds HTTP requests of sources without a timeout.
const DefaultTimeout = config.DefaultSourceTimeout

// maxConcurrentFetches caps the number of sources fetched at once.
const maxConcurrentFetches = 4

// Source yields calendar events.
type Source interface {
	Name() string
	Events(ctx context.Context) ([]calendar.Event, error)
}

// FromConfig builds the sources of a document. Relative ics paths are
// resolved against the directory of the document. CalDAV sources without a
// password use the one from the environment.
func FromConfig(doc *config.Document, env config.Environment) ([]Source, error) {
	baseDir := ""
	if doc.Path != "" {
		baseDir = filepath.Dir(doc.Path)
	}

	sources := make([]Source, 0, len(doc.Sources))
	for i, sc := range doc.Sources {
		timeout := DefaultTimeout
		if sc.Timeout != "" {
			d, err := time.ParseDuration(sc.Timeout)
			if err != nil {
				return nil, fmt.Errorf("sources[%d]: invalid timeout: %w", i, err)
			}
			timeout = d
		}

		switch sc.Type {
		case config.SourceTypeICS:
			if sc.URL != "" {
				sources = append(sources, NewICSURL(sc.DisplayName(), sc.URL, &http.Client{Timeout: timeout}, sc.Attributes))
				continue
			}
			path := sc.Path
			if !filepath.IsAbs(path) && baseDir != "" {
				path = filepath.Join(baseDir, path)
			}
			sources = append(sources, NewICSFile(sc.DisplayName(), path, sc.Attributes))

		case config.SourceTypeCalDAV:
			password := sc.Password
			if password == "" {
				password = env.CalDAVPassword
			}
			from, to := sc.Window()
			src, err := NewCalDAV(CalDAVConfig{
				Name:       sc.DisplayName(),
				Endpoint:   sc.URL,
				Calendar:   sc.Calendar,
				Username:   sc.Username,
				Password:   password,
				From:       from,
				To:         to,
				Timeout:    timeout,
				Attributes: sc.Attributes,
			})
			if err != nil {
				return nil, fmt.Errorf("sources[%d]: %w", i, err)
			}
			sources = append(sources, src)

		default:
			return nil, fmt.Errorf("sources[%d]: unknown source type %q", i, sc.Type)
		}
	}
	return sources, nil
}

// Collect fetches all sources concurrently and returns their events in
// source order. The first failing source cancels the others.
func Collect(ctx context.Context, sources []Source) ([]calendar.Event, error) {
	results := make([][]calendar.Event, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)
	for i, src := range sources {
		g.Go(func() error {
			start := time.Now()
			events, err := src.Events(ctx)
			if err != nil {
				return fmt.Errorf("source %s: %w", src.Name(), err)
			}
			logging.Debug("Source", "Fetched %d events from %s in %s", len(events), src.Name(), time.Since(start).Round(time.Millisecond))
			results[i] = events
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var events []calendar.Event
	for _, r := range results {
		events = append(events, r...)
	}
	return events, nil
}
