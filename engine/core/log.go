package core

import (
	"log/slog"
	"os"
)

// logLevel is shared by every subsystem logger. Default is LevelInfo.
var logLevel = new(slog.LevelVar)

// SetVerbose enables or disables debug logging for all subsystems.
func SetVerbose(v bool) {
	if v {
		logLevel.Set(slog.LevelDebug)
	} else {
		logLevel.Set(slog.LevelInfo)
	}
}

func Verbose() bool { return logLevel.Level() <= slog.LevelDebug }

// NewLogger returns a stderr text logger tagged with the subsystem name.
func NewLogger(subsystem string) *slog.Logger {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	return slog.New(h).With("sys", subsystem)
}
