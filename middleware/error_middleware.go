package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"newsbias/domain"
	"newsbias/utils/logger"
)

type ErrorDetail struct {
	Code           string `json:"code"`
	Message        string `json:"message"`
	Retryable      bool   `json:"retryable"`
	RequestID      string `json:"request_id,omitempty"`
	UpstreamStatus int    `json:"upstream_status,omitempty"`
	UpstreamCode   string `json:"upstream_code,omitempty"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// Classify maps an error to its HTTP status and response body.
func Classify(err error) (int, ErrorDetail) {
	var upstream *domain.UpstreamError
	var httpErr *echo.HTTPError

	switch {
	case errors.Is(err, domain.ErrSourceUnknown):
		return http.StatusNotFound, ErrorDetail{Code: "SOURCE_UNKNOWN", Message: err.Error()}
	case errors.Is(err, domain.ErrNoArticlesFound):
		return http.StatusNotFound, ErrorDetail{Code: "NO_ARTICLES_FOUND", Message: err.Error()}
	case errors.As(err, &upstream):
		return http.StatusBadGateway, ErrorDetail{
			Code:           "UPSTREAM_UNAVAILABLE",
			Message:        upstream.Error(),
			Retryable:      upstream.StatusCode == 0 || upstream.StatusCode == http.StatusTooManyRequests || upstream.StatusCode >= 500,
			UpstreamStatus: upstream.StatusCode,
			UpstreamCode:   upstream.Code,
		}
	case errors.As(err, &httpErr):
		msg := http.StatusText(httpErr.Code)
		if m, ok := httpErr.Message.(string); ok && httpErr.Code < 500 {
			msg = m
		}
		return httpErr.Code, ErrorDetail{Code: "HTTP_ERROR", Message: msg}
	default:
		return http.StatusInternalServerError, ErrorDetail{
			Code:      "INTERNAL_ERROR",
			Message:   "An unexpected error occurred. Please try again later.",
			Retryable: true,
		}
	}
}

// CustomHTTPErrorHandler writes every handler error as an ErrorResponse.
func CustomHTTPErrorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		ctx := c.Request().Context()
		status, detail := Classify(err)
		detail.RequestID = logger.RequestIDFrom(ctx)

		l := logger.WithContext(ctx, log)
		if status >= 500 {
			l.ErrorContext(ctx, "request failed", "status", status, "code", detail.Code, "error", err)
		} else {
			l.WarnContext(ctx, "request rejected", "status", status, "code", detail.Code, "error", err)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, ErrorResponse{Error: detail})
		}
		if writeErr != nil {
			l.ErrorContext(ctx, "failed to write error response", "error", writeErr)
		}
	}
}
