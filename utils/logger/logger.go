package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel/log/global"
)

const ServiceName = "newsbias"

type Options struct {
	Level      string
	Format     string
	EnableOTel bool
	Output     io.Writer
	// Secrets are masked in stdout records.
	Secrets []string
}

// New builds the process logger. Stdout records carry trace_id/span_id when a
// span is active and have Secrets masked; with OTel enabled records are also
// exported through the otelslog bridge.
func New(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	level := parseLevel(opts.Level)

	var base slog.Handler
	if strings.EqualFold(opts.Format, "text") {
		base = slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})
	} else {
		base = slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level})
	}

	var handler slog.Handler = newRecordHandler(base, opts.Secrets)
	if opts.EnableOTel {
		handler = fanoutHandler{
			handler,
			newRecordHandler(otelslog.NewHandler(
				ServiceName,
				otelslog.WithLoggerProvider(global.GetLoggerProvider()),
			), opts.Secrets),
		}
	}

	return slog.New(handler).With("service", ServiceName)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
