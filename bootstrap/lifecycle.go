package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"newsbias/config"
	"newsbias/di"
	"newsbias/utils/logger"
	"newsbias/utils/otel"
)

// Run wires the application from cfg, serves HTTP, and blocks until ctx is
// canceled or SIGINT/SIGTERM arrives.
func Run(ctx context.Context, cfg *config.Config, version string) error {
	otelCfg := otel.Config{
		ServiceName:    cfg.Telemetry.ServiceName,
		ServiceVersion: version,
		Environment:    cfg.Telemetry.Environment,
		OTLPEndpoint:   cfg.Telemetry.OTLPEndpoint,
		Enabled:        cfg.Telemetry.Enabled,
		SampleRatio:    cfg.Telemetry.SampleRatio,
	}
	otelShutdown, err := otel.InitProvider(ctx, otelCfg)
	if err != nil {
		fmt.Printf("Failed to initialize OpenTelemetry: %v\n", err)
		otelCfg.Enabled = false
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if otelShutdown != nil {
			if err := otelShutdown(shutdownCtx); err != nil {
				fmt.Printf("Failed to shutdown OpenTelemetry: %v\n", err)
			}
		}
	}()

	log := logger.New(logger.Options{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		EnableOTel: otelCfg.Enabled,
		Secrets:    []string{cfg.NewsAPIKey, cfg.GeminiAPIKey},
	})
	slog.SetDefault(log)

	log.Info("Configuration loaded",
		"search_provider", cfg.Search.Provider,
		"cache_backend", cfg.Cache.Backend,
		"cache_ttl", cfg.Cache.TTL,
		"model", cfg.Generation.Model,
		"sources", len(cfg.Sources),
		"otel_enabled", otelCfg.Enabled)

	container, err := di.NewApplicationComponents(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}
	defer func() {
		if err := container.Close(); err != nil {
			log.Error("Error closing application components", "error", err)
		}
	}()

	e, err := NewHTTPServer(container, otelCfg.Enabled, otelCfg.ServiceName)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := StartHTTPServer(e, cfg.Server, log)
	log.Info("newsbias service started successfully")

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	log.Info("Shutting down newsbias service")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down HTTP server", "error", err)
		return err
	}
	log.Info("newsbias service stopped")
	return nil
}
