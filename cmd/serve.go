package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"calrender/internal/config"
	"calrender/internal/preview"
	"calrender/internal/watch"
	"calrender/pkg/logging"
)

type serveOptions struct {
	addr    string
	noFetch bool
	refresh time.Duration
	poll    bool
}

func newServeCmd(global *globalOptions) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a live preview of the calendar",
		Long: `Starts an HTTP server with a preview page of the calendar.

  GET /            the rendered page
  GET /options.js  the configuration literal
  GET /healthz     reload status as JSON

The page is rebuilt whenever the calendar document changes and, with
--refresh, periodically to pick up new events from the sources. A failed
rebuild keeps the previous page and is reported by /healthz.

The listen address defaults to $CALRENDER_ADDR.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") && global.env.Addr != "" {
				opts.addr = global.env.Addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, global, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", config.DefaultAddr, "Listen address of the preview server")
	cmd.Flags().BoolVar(&opts.noFetch, "no-fetch", false, "Skip the configured event sources")
	cmd.Flags().DurationVar(&opts.refresh, "refresh", 0, "Rebuild periodically, e.g. 5m (0 disables)")
	cmd.Flags().BoolVar(&opts.poll, "poll", false, "Poll the document instead of using file system notifications")
	return cmd
}

// previewReloader rebuilds the preview content from the document.
type previewReloader struct {
	global *globalOptions
	opts   *serveOptions
	server *preview.Server

	// id keeps the container id stable across reloads of documents
	// without an id.
	id string
}

func (r *previewReloader) reload(ctx context.Context) error {
	doc, err := r.global.loadDocument()
	if err != nil {
		return err
	}
	cal, err := r.global.buildCalendar(ctx, doc, !r.opts.noFetch)
	if err != nil {
		return err
	}
	if doc.ID == "" {
		if r.id == "" {
			r.id = cal.ID()
		}
		cal.SetID(r.id)
	}

	page, err := cal.RenderPage(doc.Page.CalendarPage())
	if err != nil {
		return err
	}
	literal, err := cal.GetOptionsJSON()
	if err != nil {
		return err
	}
	r.server.Reload(page, literal)
	return nil
}

func runServe(ctx context.Context, global *globalOptions, opts *serveOptions) error {
	server := preview.NewServer()
	reloader := &previewReloader{global: global, opts: opts, server: server}

	// A broken document at startup is reported right away.
	if err := reloader.reload(ctx); err != nil {
		return err
	}

	changes := make(chan struct{}, 1)
	notify := func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	}

	watcher, err := watch.NewFileWatcher(watch.Config{
		Path:         global.configPath,
		ForcePolling: opts.poll,
		OnChange:     notify,
	})
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return server.Run(gctx, opts.addr)
	})

	g.Go(func() error {
		return watcher.Run(gctx)
	})

	g.Go(func() error {
		var tick <-chan time.Time
		if opts.refresh > 0 {
			ticker := time.NewTicker(opts.refresh)
			defer ticker.Stop()
			tick = ticker.C
		}

		for {
			select {
			case <-gctx.Done():
				return nil
			case <-changes:
				logging.Info("Preview", "Calendar document changed, reloading")
			case <-tick:
				logging.Debug("Preview", "Periodic refresh")
			}
			if err := reloader.reload(gctx); err != nil {
				server.Fail(err)
			}
		}
	})

	return g.Wait()
}
