package template

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"sort"

	"github.com/Masterminds/sprig/v3"
)

// Names of the templates an Engine knows.
const (
	// ScriptTemplate mounts the widget through the global FullCalendar bundle.
	ScriptTemplate = "script"
	// ScriptES6Template mounts the widget through an imported Calendar class.
	ScriptES6Template = "script-es6"
	// PageTemplate is a standalone HTML document around a container and
	// its script block.
	PageTemplate = "page"
)

// DefaultScriptURL is the FullCalendar bundle referenced by pages that do
// not list scripts of their own.
const DefaultScriptURL = "https://cdn.jsdelivr.net/npm/fullcalendar@6.1.15/index.global.min.js"

//go:embed templates/*.tmpl
var templateFS embed.FS

// Engine renders the embedded calendar templates.
type Engine struct {
	templates *htmltemplate.Template
}

// New parses the embedded templates.
func New() (*Engine, error) {
	funcs := sprig.FuncMap()
	// rawJS marks text produced by the options serializer as trusted
	// script so it is not escaped again.
	funcs["rawJS"] = func(s string) htmltemplate.JS {
		return htmltemplate.JS(s)
	}

	templates, err := htmltemplate.New("calrender").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse calendar templates: %w", err)
	}
	return &Engine{templates: templates}, nil
}

// Must is a helper that wraps a call to New and panics if the error is
// non-nil. The templates are embedded, so a failure is a programming error.
func Must(e *Engine, err error) *Engine {
	if err != nil {
		panic(err)
	}
	return e
}

// Render executes the named template with the merged contexts as data.
func (e *Engine) Render(name string, contexts ...map[string]interface{}) (htmltemplate.HTML, error) {
	tmpl := e.templates.Lookup(name)
	if tmpl == nil {
		return "", fmt.Errorf("unknown template %q", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, MergeContexts(contexts...)); err != nil {
		return "", fmt.Errorf("failed to render template %q: %w", name, err)
	}
	return htmltemplate.HTML(buf.String()), nil
}

// Names returns the names of the defined templates in lexical order.
func (e *Engine) Names() []string {
	var names []string
	for _, t := range e.templates.Templates() {
		if t.Name() == ScriptTemplate || t.Name() == ScriptES6Template || t.Name() == PageTemplate {
			names = append(names, t.Name())
		}
	}
	sort.Strings(names)
	return names
}
