// Package logging provides the structured logging used across calrender.
//
// It is a thin layer over log/slog: every entry carries a subsystem
// attribute and an optional error, and level filtering happens in the
// handler.
//
// # Usage
//
//	logging.Init(logging.LevelInfo, logging.FormatText, os.Stderr)
//
//	logging.Info("Config", "Loaded calendar from %s", path)
//	logging.Debug("Source", "Fetched %d events from %s", n, name)
//	logging.Error("Preview", err, "Failed to reload calendar")
//
// Init selects between text and JSON output. StdLogger adapts the logger for
// APIs that only accept a *log.Logger, such as http.Server.ErrorLog.
//
// # Subsystems
//
//   - Bootstrap: command startup and configuration of the process
//   - Config: loading and validating calendar documents
//   - Source: fetching events from ICS files, URLs and CalDAV servers
//   - Watch: file change notifications
//   - Render: writing rendered output to files
//   - Preview: the development HTTP server
package logging
