package cmd

import (
	"github.com/spf13/cobra"

	"calrender/internal/formatting"
)

func newEventsCmd(global *globalOptions) *cobra.Command {
	var (
		output  string
		quiet   bool
		noFetch bool
	)

	cmd := &cobra.Command{
		Use:   "events",
		Short: "List the events of the calendar",
		Long: `Lists the events exactly as they appear in the configuration literal:
inline events of the document first, followed by the events of the
configured sources in source order.

Examples:
  calrender events
  calrender events --output json
  calrender events --no-fetch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, err := newFormatter(output, quiet)
			if err != nil {
				return err
			}

			doc, err := global.loadDocument()
			if err != nil {
				return err
			}
			cal, err := global.buildCalendar(cmd.Context(), doc, !noFetch)
			if err != nil {
				return err
			}
			return formatter.FormatData(cmd.OutOrStdout(), cal.Events())
		},
	}

	addOutputFlag(cmd, &output, formatting.FormatTable)
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress decorative output")
	cmd.Flags().BoolVar(&noFetch, "no-fetch", false, "Skip the configured event sources")
	return cmd
}
