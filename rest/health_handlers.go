package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"newsbias/di"
	"newsbias/utils/logger"
)

func handleHealth(container *di.ApplicationComponents) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		if err := container.CheckCache(ctx); err != nil {
			logger.WithContext(ctx, container.Logger).WarnContext(ctx, "cache health check failed", "error", err)
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "degraded", "cache": "unreachable"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
	}
}
