package calendar

import (
	"errors"
	"fmt"
	"maps"
	"sort"
	"strings"

	"github.com/google/uuid"
)

const (
	// DefaultIndent is the indentation of the configuration literal.
	DefaultIndent = "    "

	// idLength is the length of generated container ids.
	idLength = 8
)

// Calendar accumulates options, callbacks and events for one calendar
// widget. A Calendar belongs to a single caller and is not safe for
// concurrent mutation.
type Calendar struct {
	id          string
	es6         bool
	legacy      bool
	indent      string
	userOptions *Options
	callbacks   map[string]string
	events      *EventCollection
}

// New returns an empty calendar using the default options.
func New() *Calendar {
	return &Calendar{
		indent:      DefaultIndent,
		userOptions: NewOptions(),
		callbacks:   make(map[string]string),
		events:      NewEventCollection(),
	}
}

// SetID sets the id used by the container element and the script block.
func (c *Calendar) SetID(id string) *Calendar {
	c.id = id
	return c
}

// ID returns the container id. Unless one was set, a random id is generated
// on first access and kept for the lifetime of the calendar.
func (c *Calendar) ID() string {
	if c.id == "" {
		c.id = strings.ReplaceAll(uuid.NewString(), "-", "")[:idLength]
	}
	return c.id
}

// SetES6 selects the ES module flavour of the script block.
func (c *Calendar) SetES6(es6 bool) *Calendar {
	c.es6 = es6
	return c
}

// ES6 reports whether the ES module flavour is selected.
func (c *Calendar) ES6() bool {
	return c.es6
}

// SetIndent sets the indentation of the configuration literal. An empty
// indent produces compact output.
func (c *Calendar) SetIndent(indent string) *Calendar {
	c.indent = indent
	return c
}

// SetLegacyOutput switches GetOptionsJSON to the textual substitution
// serializer, see legacy.go.
func (c *Calendar) SetLegacyOutput(legacy bool) *Calendar {
	c.legacy = legacy
	return c
}

// AddEvent appends an event. custom is merged into the event's record.
func (c *Calendar) AddEvent(event Event, custom map[string]any) *Calendar {
	c.events.Push(event, custom)
	return c
}

// AddEvents appends events in order, each with the same custom attributes.
func (c *Calendar) AddEvents(events []Event, custom map[string]any) *Calendar {
	for _, event := range events {
		c.events.Push(event, custom)
	}
	return c
}

// Events returns the serialized events in insertion order.
func (c *Calendar) Events() []*Options {
	return c.events.Records()
}

// SetOptions replaces the user options. Keys are ordered lexically; use
// SetOrderedOptions to keep a specific order.
func (c *Calendar) SetOptions(options map[string]any) *Calendar {
	c.userOptions = OptionsFromMap(options)
	return c
}

// SetOrderedOptions replaces the user options keeping their order.
func (c *Calendar) SetOrderedOptions(options *Options) *Calendar {
	c.userOptions = MergeOptions(options)
	return c
}

// GetOptions returns the default options shallow-merged with the user
// options. The events list is not included.
func (c *Calendar) GetOptions() *Options {
	return MergeOptions(DefaultOptions(), c.userOptions)
}

// SetCallbacks replaces the callback registry. Each value is a raw
// JavaScript expression emitted unquoted under its option name. A callback
// named like a literal option overrides that option.
func (c *Calendar) SetCallbacks(callbacks map[string]string) *Calendar {
	c.callbacks = maps.Clone(callbacks)
	if c.callbacks == nil {
		c.callbacks = make(map[string]string)
	}
	return c
}

// GetCallbacks returns a copy of the callback registry.
func (c *Calendar) GetCallbacks() map[string]string {
	return maps.Clone(c.callbacks)
}

// GetOptionsJSON returns the options, callbacks and events as a JavaScript
// object literal ready to be passed to the Calendar constructor.
func (c *Calendar) GetOptionsJSON() (string, error) {
	if c.legacy {
		return c.legacyOptionsJSON()
	}

	params := c.GetOptions()
	for _, name := range c.callbackNames() {
		params.Set(name, Raw(c.callbacks[name]))
	}
	c.injectEvents(params)

	return Marshal(tagIdentifiers(params), c.indent)
}

// Validate checks every event that knows how to validate itself.
func (c *Calendar) Validate() error {
	var errs []error
	for i, entry := range c.events.entries {
		v, ok := entry.event.(interface{ Validate() error })
		if !ok {
			continue
		}
		if err := v.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("event %d (%q): %w", i, entry.event.Title(), err))
		}
	}
	return errors.Join(errs...)
}

// injectEvents adds the event records unless an events option is already
// present, which lets callers point the widget at a feed URL instead. A nil
// events option counts as absent.
func (c *Calendar) injectEvents(params *Options) {
	if v, ok := params.Get("events"); ok && v != nil {
		return
	}
	params.Set("events", c.events.Records())
}

func (c *Calendar) callbackNames() []string {
	names := make([]string, 0, len(c.callbacks))
	for name := range c.callbacks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
