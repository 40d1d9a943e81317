// Package calendar renders the server side part of a FullCalendar widget:
// the container element, the script block and the configuration literal
// passed to the Calendar constructor.
//
// # Building a calendar
//
//	cal := calendar.New().
//	    SetOptions(map[string]any{
//	        "initialView": "timeGridWeek",
//	        "plugins":     []string{"dayGridPlugin", "timeGridPlugin"},
//	    }).
//	    SetCallbacks(map[string]string{
//	        "eventClick": "function(info) { alert(info.event.title); }",
//	    }).
//	    AddEvent(calendar.NewEvent("Launch", true, start, end, "launch", nil), nil)
//
//	fmt.Println(cal.Container())
//	script, err := cal.Script()
//
// # Options
//
// User options are shallow-merged over DefaultOptions: a top-level user key
// replaces the default value entirely, nested mappings are not merged.
// SetOptions and SetCallbacks replace their previous values wholesale.
//
// # The configuration literal
//
// GetOptionsJSON produces a JavaScript object literal, not strict JSON:
//
//   - object keys that are identifiers are written without quotes;
//   - callbacks are written as raw expressions under their option name;
//   - the entries of the top-level plugins and locales options are written
//     as bare identifiers;
//   - string click handlers of top-level customButtons are written raw;
//   - unless an events option is present, the events added to the calendar
//     are injected under "events" in insertion order.
//
// Values of type Raw are written verbatim anywhere in the option tree.
//
// SetLegacyOutput selects a serializer that reaches the same shape through
// textual substitution over pretty printed JSON. It keeps the known
// limitations of that approach and exists for shape compatibility. Strings
// are escaped by encoding/json, so "<", ">" and "&" become \u003c, \u003e
// and \u0026 while "/" is left as is.
//
// Nothing in this package validates option keys or values. Calendar.Validate
// is available for callers that want event checks before rendering.
package calendar
