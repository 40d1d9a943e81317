package cmd

import (
	"github.com/spf13/cobra"

	"calrender/internal/formatting"
)

// addOutputFlag registers --output with completion of the known formats.
func addOutputFlag(cmd *cobra.Command, target *string, def formatting.OutputFormat) {
	cmd.Flags().StringVar(target, "output", string(def), "Output format (console, json, yaml, table)")
	_ = cmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, len(formatting.Formats))
		for i, f := range formatting.Formats {
			names[i] = string(f)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
}

// newFormatter returns the formatter selected by an --output value.
func newFormatter(output string, quiet bool) (formatting.Formatter, error) {
	format, err := formatting.ParseFormat(output)
	if err != nil {
		return nil, err
	}
	return formatting.NewFactory().CreateFormatter(formatting.Options{
		Format: format,
		Quiet:  quiet,
	}), nil
}

func newOptionsCmd(global *globalOptions) *cobra.Command {
	var (
		output    string
		quiet     bool
		callbacks bool
	)

	cmd := &cobra.Command{
		Use:   "options",
		Short: "Show the merged calendar options",
		Long: `Shows the options the calendar is rendered with: the defaults overridden by
the options of the document. Callbacks and events are not included; use
--callbacks to list the callbacks instead.

Examples:
  calrender options
  calrender options --output yaml
  calrender options --callbacks --output table`,
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
			cal, err := doc.Calendar(nil)
			if err != nil {
				return err
			}

			if callbacks {
				return formatter.FormatData(cmd.OutOrStdout(), cal.GetCallbacks())
			}
			return formatter.FormatData(cmd.OutOrStdout(), cal.GetOptions())
		},
	}

	addOutputFlag(cmd, &output, formatting.FormatConsole)
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress decorative output")
	cmd.Flags().BoolVar(&callbacks, "callbacks", false, "Show the callbacks instead of the options")
	return cmd
}
