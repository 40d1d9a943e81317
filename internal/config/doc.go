// Package config loads calendar documents and process settings for
// calrender.
//
// # Calendar Document
//
// A calendar is described by a single YAML file (calendar.yaml unless
// --config or CALRENDER_CONFIG say otherwise):
//
//	id: team
//	es6: false
//	indent: "  "
//	options:
//	  initialView: timeGridWeek
//	  plugins: [dayGridPlugin, timeGridPlugin]
//	  customButtons:
//	    refresh:
//	      text: Refresh
//	      click: refreshCalendar
//	callbacks:
//	  eventClick: "function(info) { window.open(info.event.url); }"
//	attributes:
//	  color: "#3788d8"
//	events:
//	  - title: Launch
//	    allDay: true
//	    start: 2026-10-20
//	    end: 2026-10-21
//	    attributes:
//	      url: /launch
//	sources:
//	  - name: holidays
//	    type: ics
//	    url: https://example.com/holidays.ics
//	  - name: work
//	    type: caldav
//	    url: https://caldav.example.com
//	    calendar: /calendars/me/work/
//	    username: me
//	page:
//	  title: Team calendar
//
// The order of keys under options is preserved in the rendered literal.
// Unknown fields are rejected when the document is parsed.
//
// # Environment
//
// LoadEnvironment reads CALRENDER_CONFIG, CALRENDER_LOG_LEVEL,
// CALRENDER_LOG_FORMAT, CALRENDER_ADDR and CALRENDER_CALDAV_PASSWORD.
//
// # Errors
//
// Loading and validation report ConfigurationError values, collected in a
// ConfigurationErrorCollection by Validate, with the offending field and
// suggestions for fixing it.
package config
