package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"newsbias/domain"
)

func runWithSpan(t *testing.T, handler echo.HandlerFunc) sdktrace.ReadOnlySpan {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/sources/cnn/articles", nil)
	ctx, span := tp.Tracer("test").Start(req.Context(), "GET /v1/sources/:source/articles")
	req = req.WithContext(ctx)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("source")
	c.SetParamValues("cnn")

	_ = OTelStatusMiddleware()(handler)(c)
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	return spans[0]
}

func spanAttrs(s sdktrace.ReadOnlySpan) map[attribute.Key]attribute.Value {
	out := map[attribute.Key]attribute.Value{}
	for _, kv := range s.Attributes() {
		out[kv.Key] = kv.Value
	}
	return out
}

func TestOTelStatusMiddleware_UpstreamError(t *testing.T) {
	span := runWithSpan(t, func(c echo.Context) error {
		return &domain.UpstreamError{Provider: "newsapi", StatusCode: 429, Code: "rateLimited"}
	})

	attrs := spanAttrs(span)
	assert.Equal(t, "cnn", attrs["newsbias.source"].AsString())
	assert.Equal(t, "UPSTREAM_UNAVAILABLE", attrs["newsbias.error_code"].AsString())
	assert.EqualValues(t, 429, attrs["newsbias.upstream_status"].AsInt64())
	assert.EqualValues(t, http.StatusBadGateway, attrs["http.response.status_code"].AsInt64())
	assert.Equal(t, codes.Error, span.Status().Code)
}

func TestOTelStatusMiddleware_ClientErrorIsNotSpanError(t *testing.T) {
	span := runWithSpan(t, func(c echo.Context) error {
		return domain.ErrSourceUnknown
	})

	attrs := spanAttrs(span)
	assert.EqualValues(t, http.StatusNotFound, attrs["http.response.status_code"].AsInt64())
	assert.NotEqual(t, codes.Error, span.Status().Code)
}

func TestOTelStatusMiddleware_Success(t *testing.T) {
	span := runWithSpan(t, func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	attrs := spanAttrs(span)
	assert.EqualValues(t, http.StatusNoContent, attrs["http.response.status_code"].AsInt64())
	assert.NotContains(t, attrs, attribute.Key("newsbias.error_code"))
}
