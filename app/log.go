package app

import "github.com/decred/slog"

var log = slog.Disabled

// UseLogger sets the subsystem logs to use the provided loggers.
func UseLogger(logger slog.Logger) {
	log = logger
}
