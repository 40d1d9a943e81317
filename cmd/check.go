package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newCheckCmd creates the command that validates the calendar document.
func newCheckCmd(global *globalOptions) *cobra.Command {
	var fetch bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the calendar document",
		Long: `Validates the calendar document and reports every problem found.

With --fetch the configured sources are queried as well and every fetched
event is validated.

Exit codes:
  0  the document is valid
  1  a source could not be fetched or a fetched event is invalid
  2  the document cannot be read, parsed or is invalid`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := global.loadDocument()
			if err != nil {
				return err
			}

			cal, err := global.buildCalendar(cmd.Context(), doc, fetch)
			if err != nil {
				return err
			}
			if err := cal.Validate(); err != nil {
				return fmt.Errorf("invalid events: %w", err)
			}

			name := doc.Path
			if name == "" {
				name = "default calendar"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is valid: %d events, %d callbacks, %d sources\n",
				name, len(cal.Events()), len(doc.Callbacks), len(doc.Sources))
			return nil
		},
	}

	cmd.Flags().BoolVar(&fetch, "fetch", false, "Fetch and validate the events of the configured sources")
	return cmd
}
