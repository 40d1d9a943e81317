package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/cobra"

	"calrender/internal/config"
	"calrender/pkg/calendar"
	"calrender/pkg/logging"
)

// starterDocument returns the document written by init. The sample event
// starts on the given day.
func starterDocument(day time.Time) *config.Document {
	toolbar := calendar.NewOptions()
	toolbar.Set("left", "prev,next today")
	toolbar.Set("center", "title")
	toolbar.Set("right", "dayGridMonth,timeGridWeek,listWeek")

	opts := calendar.NewOptions()
	opts.Set("initialView", "dayGridMonth")
	opts.Set("headerToolbar", toolbar)
	opts.Set("weekNumbers", true)

	return &config.Document{
		Options: config.OrderedOptions{Options: opts},
		Callbacks: map[string]string{
			"eventClick": "function(info) {\n    alert(info.event.title);\n}",
		},
		Events: []config.EventConfig{
			{
				Title:  "Kick-off",
				AllDay: true,
				Start:  day.Format(time.DateOnly),
			},
		},
		Page: config.PageConfig{Title: "Calendar"},
	}
}

func newInitCmd(global *globalOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter calendar document",
		Long: `Writes a small calendar document with a few options, a callback and one
event to the path given by --config (default ` + config.DefaultConfigFile + `).
An existing file is only replaced with --force.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := global.configPath
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite it", path)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("failed to check %s: %w", path, err)
			}

			data, err := starterDocument(time.Now()).Marshal()
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}

			logging.Info("Bootstrap", "Wrote starter document to %s", path)
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s. Run 'calrender serve' to preview it.\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing document")
	return cmd
}
