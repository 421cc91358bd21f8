// Package logging builds the process-wide structured logger.
//
// # Overview
//
// The logging package wraps Go's standard log/slog package to provide:
//   - Structured logging in JSON or text format
//   - A runtime-adjustable minimum level for config hot reload
//   - Installation as the slog default so request middleware can log
//     without carrying a logger reference
//
// # Usage
//
//	logger, err := logging.New(&cfg.Telemetry.Logging, nil)
//	if err != nil {
//	    return err
//	}
//	logger.Install()
//
//	slog.Info("server starting", "listen_address", cfg.Server.ListenAddress)
//
// # Runtime level changes
//
// The logger keeps its level in a slog.LevelVar shared by every derived
// logger, so a reload can flip the whole process to debug and back:
//
//	if err := logger.SetLevel("debug"); err != nil {
//	    slog.Warn("bad log level in reloaded config", "error", err)
//	}
package logging
