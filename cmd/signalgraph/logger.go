package main

import (
	"io"
	"log/slog"

	"github.com/vango-dev/signalgraph/internal/config"
)

// newLogger writes text logs to w. The "error" key is shortened to "err".
func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}))
}

// resolveLevel prefers the --log-level flag over the config file.
func resolveLevel(flag string, cfg *config.Config) (slog.Level, error) {
	if flag != "" {
		return config.ParseLevel(flag)
	}
	return cfg.LogLevel(), nil
}
