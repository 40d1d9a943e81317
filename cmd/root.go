package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"calrender/internal/config"
	"calrender/internal/source"
	"calrender/pkg/calendar"
	"calrender/pkg/logging"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeConfig indicates an unreadable, malformed or invalid calendar document.
	ExitCodeConfig = 2
)

// version is injected by main through SetVersion.
var version = "dev"

// globalOptions holds the persistent flags and the environment shared by
// all subcommands.
type globalOptions struct {
	configPath string
	debug      bool

	// requireConfig is set when the document location was given
	// explicitly, in which case a missing file is an error.
	requireConfig bool
	env           config.Environment
}

// rootCmd represents the base command for the calrender application.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:     "calrender",
		Version: version,
		Short:   "Render FullCalendar widgets from a calendar document",
		Long: `calrender turns a YAML calendar document into the markup and script that
mount a FullCalendar widget: a container element and a script block carrying
the configuration literal with options, callbacks and events.

Events come from the document itself and from the configured sources
(iCalendar files and feeds, CalDAV calendars).`,
		// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Calendar document (default $CALRENDER_CONFIG or "+config.DefaultConfigFile+")")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newSelfUpdateCmd())
	cmd.AddCommand(newRenderCmd(opts))
	cmd.AddCommand(newOptionsCmd(opts))
	cmd.AddCommand(newEventsCmd(opts))
	cmd.AddCommand(newCheckCmd(opts))
	cmd.AddCommand(newInitCmd(opts))
	cmd.AddCommand(newServeCmd(opts))

	cmd.SetVersionTemplate(`{{printf "calrender version %s\n" .Version}}`)
	return cmd
}

// setup reads the environment and initializes logging. Log output goes to
// stderr so that rendered output on stdout stays clean.
func (o *globalOptions) setup(cmd *cobra.Command) error {
	env, err := config.LoadEnvironment()
	if err != nil {
		return err
	}
	o.env = env

	level, err := logging.ParseLevel(env.LogLevel)
	if err != nil {
		return fmt.Errorf("CALRENDER_LOG_LEVEL: %w", err)
	}
	if o.debug {
		level = logging.LevelDebug
	}

	format := logging.Format(strings.ToLower(env.LogFormat))
	if format != logging.FormatText && format != logging.FormatJSON {
		return fmt.Errorf("CALRENDER_LOG_FORMAT: unknown log format %q", env.LogFormat)
	}
	logging.Init(level, format, cmd.ErrOrStderr())

	_, fromEnv := os.LookupEnv("CALRENDER_CONFIG")
	switch {
	case cmd.Flags().Changed("config"):
		o.requireConfig = true
	case fromEnv:
		o.configPath = env.ConfigPath
		o.requireConfig = true
	default:
		o.configPath = env.ConfigPath
	}
	return nil
}

// loadDocument loads and validates the calendar document.
func (o *globalOptions) loadDocument() (*config.Document, error) {
	doc, err := config.LoadDocument(o.configPath, o.requireConfig)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// buildCalendar fetches the events of the configured sources and builds
// the calendar of doc. Sources are skipped when fetch is false.
func (o *globalOptions) buildCalendar(ctx context.Context, doc *config.Document, fetch bool) (*calendar.Calendar, error) {
	var extra []calendar.Event
	if fetch && len(doc.Sources) > 0 {
		sources, err := source.FromConfig(doc, o.env)
		if err != nil {
			return nil, err
		}
		extra, err = source.Collect(ctx, sources)
		if err != nil {
			return nil, err
		}
		logging.Debug("Bootstrap", "Fetched %d events from %d sources", len(extra), len(sources))
	}
	return doc.Calendar(extra)
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return version
}

// Execute is the main entry point for the CLI application.
// This function is called by main.main().
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
		os.Exit(getExitCode(err))
	}
}

// printError writes err to w. Collections of configuration errors are
// printed as a detailed report.
func printError(w io.Writer, err error) {
	var collection *config.ConfigurationErrorCollection
	if errors.As(err, &collection) && collection.HasErrors() {
		if collection.Count() == 1 {
			fmt.Fprintln(w, collection.Errors[0].DetailedError())
		} else {
			fmt.Fprintln(w, collection.GetDetailedReport())
		}
		return
	}
	var cfgErr *config.ConfigurationError
	if errors.As(err, &cfgErr) {
		fmt.Fprintln(w, cfgErr.DetailedError())
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

// getExitCode determines the appropriate exit code based on the error type.
// This provides semantic exit codes for scripting and automation.
func getExitCode(err error) int {
	if err == nil {
		return ExitCodeSuccess
	}

	var cfgErr *config.ConfigurationError
	if errors.As(err, &cfgErr) {
		return ExitCodeConfig
	}

	var collection *config.ConfigurationErrorCollection
	if errors.As(err, &collection) {
		return ExitCodeConfig
	}

	return ExitCodeError
}
