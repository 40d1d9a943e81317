package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"calrender/internal/config"
	"calrender/pkg/calendar"
	"calrender/pkg/logging"
)

type renderOptions struct {
	es6     bool
	id      string
	legacy  bool
	compact bool
	page    bool
	strict  bool
	noFetch bool
	output  string
}

func newRenderCmd(global *globalOptions) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the calendar container and script block",
		Long: `Renders the calendar described by the document.

By default the container element and the script block are printed. With
--page a complete HTML document is produced instead.

Flags override the corresponding document settings.

Examples:
  calrender render
  calrender render --es6 --id team
  calrender render --page -o calendar.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, global, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.es6, "es6", false, "Mount the widget through an imported Calendar class")
	cmd.Flags().StringVar(&opts.id, "id", "", "Container id (default: document id or a random id)")
	cmd.Flags().BoolVar(&opts.legacy, "legacy", false, "Use the placeholder based serializer")
	cmd.Flags().BoolVar(&opts.compact, "compact", false, "Emit the configuration literal on a single line")
	cmd.Flags().BoolVar(&opts.page, "page", false, "Render a standalone HTML page")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Fail when an event, including fetched ones, is invalid")
	cmd.Flags().BoolVar(&opts.noFetch, "no-fetch", false, "Skip the configured event sources")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write to this file instead of stdout")
	return cmd
}

// apply overrides document settings with the flags the user set.
func (o *renderOptions) apply(cmd *cobra.Command, cal *calendar.Calendar) {
	flags := cmd.Flags()
	if flags.Changed("es6") {
		cal.SetES6(o.es6)
	}
	if o.id != "" {
		cal.SetID(o.id)
	}
	if flags.Changed("legacy") {
		cal.SetLegacyOutput(o.legacy)
	}
	if o.compact {
		cal.SetIndent("")
	}
}

func runRender(cmd *cobra.Command, global *globalOptions, opts *renderOptions) error {
	doc, err := global.loadDocument()
	if err != nil {
		return err
	}

	cal, err := global.buildCalendar(cmd.Context(), doc, !opts.noFetch)
	if err != nil {
		return err
	}
	opts.apply(cmd, cal)

	if opts.strict {
		if err := cal.Validate(); err != nil {
			return fmt.Errorf("invalid events: %w", err)
		}
	}

	out, err := renderCalendar(cal, doc, opts.page)
	if err != nil {
		return err
	}

	if opts.output == "" {
		_, err = fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	}
	if err := os.WriteFile(opts.output, []byte(out), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", opts.output, err)
	}
	logging.Info("Render", "Wrote calendar %s to %s", cal.ID(), opts.output)
	return nil
}

// renderCalendar returns either a standalone page or the container
// followed by the script block.
func renderCalendar(cal *calendar.Calendar, doc *config.Document, page bool) (string, error) {
	if page {
		html, err := cal.RenderPage(doc.Page.CalendarPage())
		if err != nil {
			return "", err
		}
		return strings.TrimRight(string(html), "\n") + "\n", nil
	}

	script, err := cal.Script()
	if err != nil {
		return "", err
	}
	return string(cal.Container()) + "\n" + string(script) + "\n", nil
}
