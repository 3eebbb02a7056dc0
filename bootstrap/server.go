package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"newsbias/config"
	"newsbias/di"
	appmiddleware "newsbias/middleware"
	"newsbias/rest"
)

// NewHTTPServer creates and configures the Echo HTTP server.
func NewHTTPServer(container *di.ApplicationComponents, otelEnabled bool, otelServiceName string) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = appmiddleware.CustomHTTPErrorHandler(container.Logger)

	e.Use(appmiddleware.RequestIDMiddleware())

	if otelEnabled {
		e.Use(otelecho.Middleware(otelServiceName))
		e.Use(appmiddleware.OTelStatusMiddleware())
	}

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			path := c.Request().URL.Path
			return path == "/v1/health" || path == "/metrics"
		},
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ctx := c.Request().Context()
			container.Logger.InfoContext(ctx, "HTTP request completed",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"error", v.Error)
			return nil
		},
	}))
	e.Use(middleware.Recover())

	if err := rest.RegisterRoutes(e, container); err != nil {
		return nil, fmt.Errorf("failed to register routes: %w", err)
	}
	return e, nil
}

// StartHTTPServer starts the HTTP server in a goroutine. The returned channel
// receives the error if the listener stops for any reason other than shutdown.
func StartHTTPServer(e *echo.Echo, cfg config.ServerConfig, log *slog.Logger) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		server := &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		}
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := e.StartServer(server); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
			errCh <- err
		}
		close(errCh)
	}()
	return errCh
}
