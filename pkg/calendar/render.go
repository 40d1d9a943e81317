package calendar

import (
	"fmt"
	"html/template"

	tmpl "calrender/internal/template"
)

var engine = tmpl.Must(tmpl.New())

// Container returns the element the calendar is mounted into.
func (c *Calendar) Container() template.HTML {
	return template.HTML(`<div id="calendar-` + template.HTMLEscapeString(c.ID()) + `"></div>`)
}

// Script returns the script block that creates and renders the calendar in
// its container.
func (c *Calendar) Script() (template.HTML, error) {
	options, err := c.GetOptionsJSON()
	if err != nil {
		return "", fmt.Errorf("failed to serialize calendar options: %w", err)
	}

	name := tmpl.ScriptTemplate
	if c.es6 {
		name = tmpl.ScriptES6Template
	}
	return engine.Render(name, map[string]interface{}{
		"ID":      c.ID(),
		"Options": options,
	})
}

// Page describes a standalone HTML document around a calendar.
type Page struct {
	Title       string
	Locale      string
	Scripts     []string
	Stylesheets []string
}

// RenderPage returns a complete HTML document containing the container and
// the script block. Without scripts the FullCalendar bundle from the CDN is
// referenced.
func (c *Calendar) RenderPage(page Page) (template.HTML, error) {
	script, err := c.Script()
	if err != nil {
		return "", err
	}

	scripts := page.Scripts
	if len(scripts) == 0 {
		scripts = []string{tmpl.DefaultScriptURL}
	}

	data := map[string]interface{}{
		"Scripts":     scripts,
		"Stylesheets": page.Stylesheets,
		"Container":   c.Container(),
		"Script":      script,
	}
	if page.Title != "" {
		data["Title"] = page.Title
	}
	if page.Locale != "" {
		data["Locale"] = page.Locale
	}
	return engine.Render(tmpl.PageTemplate, data)
}
