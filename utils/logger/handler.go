package logger

import (
	"context"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/trace"
)

const redacted = "[REDACTED]"

// recordHandler decorates stdout records: it adds trace_id/span_id under an
// active span and masks configured secret values (API keys) in the message
// and in string or error attributes.
type recordHandler struct {
	inner   slog.Handler
	secrets []string
}

func newRecordHandler(inner slog.Handler, secrets []string) *recordHandler {
	var nonEmpty []string
	for _, s := range secrets {
		if s != "" {
			nonEmpty = append(nonEmpty, s)
		}
	}
	return &recordHandler{inner: inner, secrets: nonEmpty}
}

func (h *recordHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *recordHandler) Handle(ctx context.Context, r slog.Record) error {
	out := r
	if len(h.secrets) > 0 {
		out = slog.NewRecord(r.Time, r.Level, h.mask(r.Message), r.PC)
		r.Attrs(func(a slog.Attr) bool {
			out.AddAttrs(h.maskAttr(a))
			return true
		})
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		out.AddAttrs(
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}
	return h.inner.Handle(ctx, out)
}

func (h *recordHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	masked := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		masked[i] = h.maskAttr(a)
	}
	return &recordHandler{inner: h.inner.WithAttrs(masked), secrets: h.secrets}
}

func (h *recordHandler) WithGroup(name string) slog.Handler {
	return &recordHandler{inner: h.inner.WithGroup(name), secrets: h.secrets}
}

func (h *recordHandler) mask(s string) string {
	for _, secret := range h.secrets {
		s = strings.ReplaceAll(s, secret, redacted)
	}
	return s
}

func (h *recordHandler) maskAttr(a slog.Attr) slog.Attr {
	if len(h.secrets) == 0 {
		return a
	}
	v := a.Value.Resolve()
	switch v.Kind() {
	case slog.KindString:
		return slog.String(a.Key, h.mask(v.String()))
	case slog.KindGroup:
		group := v.Group()
		masked := make([]any, len(group))
		for i, ga := range group {
			masked[i] = h.maskAttr(ga)
		}
		return slog.Group(a.Key, masked...)
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			if msg := err.Error(); msg != h.mask(msg) {
				return slog.String(a.Key, h.mask(msg))
			}
		}
	}
	return a
}
