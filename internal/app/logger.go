package app

import (
	"log/slog"
	"os"
)

// NewLogger builds the slog.Logger shared by every handler and the server
// lifecycle. LOG_FORMAT=json selects the JSON handler for log collectors;
// anything else gets the human-readable text handler.
func NewLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{AddSource: true}
	if cfg != nil && cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
