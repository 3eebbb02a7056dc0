package middleware

import (
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// OTelStatusMiddleware annotates the request span with the final status and, for
// handler errors, the error code the client will see. Handler errors are rendered
// by the HTTP error handler only after the chain returns, so the status is taken
// from Classify rather than the response. It must run after otelecho.Middleware.
func OTelStatusMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)

			span := trace.SpanFromContext(c.Request().Context())
			if !span.SpanContext().IsValid() {
				return err
			}

			if source := c.Param("source"); source != "" {
				span.SetAttributes(attribute.String("newsbias.source", source))
			}

			status := c.Response().Status
			if err != nil {
				var detail ErrorDetail
				status, detail = Classify(err)
				span.SetAttributes(attribute.String("newsbias.error_code", detail.Code))
				if detail.UpstreamStatus != 0 {
					span.SetAttributes(attribute.Int("newsbias.upstream_status", detail.UpstreamStatus))
				}
				span.RecordError(err)
			}
			span.SetAttributes(semconv.HTTPResponseStatusCode(status))

			if status >= 500 {
				span.SetStatus(codes.Error, "request failed")
			}
			return err
		}
	}
}
