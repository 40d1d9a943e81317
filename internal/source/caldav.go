package source

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/emersion/go-webdav/caldav"

	"calrender/pkg/calendar"
)

// CalDAVConfig configures a CalDAV source.
type CalDAVConfig struct {
	Name       string
	Endpoint   string // Server URL
	Calendar   string // Calendar collection path
	Username   string
	Password   string
	From, To   int // Query window in days relative to today
	Timeout    time.Duration
	Attributes map[string]any

	// Now returns the reference time of the window; defaults to time.Now.
	Now func() time.Time
	// Transport is the base transport; defaults to http.DefaultTransport.
	Transport http.RoundTripper
}

// CalDAV queries the events of one calendar collection within a time window.
type CalDAV struct {
	cfg    CalDAVConfig
	client *caldav.Client
}

// NewCalDAV creates a CalDAV source. No request is made until Events is
// called.
func NewCalDAV(cfg CalDAVConfig) (*CalDAV, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Transport == nil {
		cfg.Transport = http.DefaultTransport
	}

	httpClient := &http.Client{
		Transport: &basicAuthTransport{
			username: cfg.Username,
			password: cfg.Password,
			base:     cfg.Transport,
		},
		Timeout: cfg.Timeout,
	}

	client, err := caldav.NewClient(httpClient, cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to create CalDAV client for %s: %w", cfg.Endpoint, err)
	}
	return &CalDAV{cfg: cfg, client: client}, nil
}

// basicAuthTransport adds Basic Auth to HTTP requests
type basicAuthTransport struct {
	username string
	password string
	base     http.RoundTripper
}

func (t *basicAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.username != "" {
		req = req.Clone(req.Context())
		req.SetBasicAuth(t.username, t.password)
	}
	return t.base.RoundTrip(req)
}

// Name returns the source name.
func (s *CalDAV) Name() string { return s.cfg.Name }

// Window returns the absolute query window.
func (s *CalDAV) Window() (from, to time.Time) {
	now := s.cfg.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return today.AddDate(0, 0, s.cfg.From), today.AddDate(0, 0, s.cfg.To)
}

// Events runs a calendar-query REPORT for VEVENTs overlapping the window.
func (s *CalDAV) Events(ctx context.Context) ([]calendar.Event, error) {
	from, to := s.Window()

	query := &caldav.CalendarQuery{
		CompFilter: caldav.CompFilter{
			Name: "VCALENDAR",
			Comps: []caldav.CompFilter{
				{
					Name:  "VEVENT",
					Start: from.UTC(),
					End:   to.UTC(),
				},
			},
		},
	}

	objects, err := s.client.QueryCalendar(ctx, s.cfg.Calendar, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query calendar %s: %w", s.cfg.Calendar, err)
	}

	var events []calendar.Event
	for _, obj := range objects {
		if obj.Data == nil {
			continue
		}
		decoded, err := calendarEvents(obj.Data, time.Local, s.cfg.Attributes)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", obj.Path, err)
		}
		events = append(events, decoded...)
	}
	return events, nil
}
