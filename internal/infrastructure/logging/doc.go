// Package logging provides structured logging for speedportmon.
//
// This package wraps Go's standard log/slog package to provide
// consistent, structured logging across the poller.
//
// # Features
//
//   - Text output by default (human-readable on a console or `docker logs`)
//   - JSON output for log shippers
//   - Default fields (service, version) on all log entries
//   - Level-based filtering (debug, info, warn, error)
//
// # Configuration
//
// Logging is configured via environment variables:
//
//	LOG_LEVEL=info     # debug, info, warn, error
//	LOG_FORMAT=text    # text, json
//
// # Usage
//
//	logger := logging.New(cfg.Logging, "1.0.0")
//	logger.Info("starting DSL monitor", "interval", cfg.Loop.Interval())
//	logger.Error("write failed", "error", err)
//
// # Security
//
// Never log the InfluxDB token or the MQTT password.
package logging
