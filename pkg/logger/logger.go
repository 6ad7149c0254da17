package logger

import (
	"log/slog"
	"os"
)

// Log is usable before Init; Init swaps in the configured JSON handler.
var Log = slog.Default()

// Init sets up the process-wide JSON logger. Level defaults to info and
// can be lowered to debug through LOG_LEVEL.
func Init() {
	level := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	Log = slog.New(handler)
}
