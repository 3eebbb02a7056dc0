package rest

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"newsbias/di"
)

func RegisterRoutes(e *echo.Echo, container *di.ApplicationComponents) error {
	renderer, err := NewTemplateRenderer()
	if err != nil {
		return err
	}
	e.Renderer = renderer

	e.GET("/", handleDashboardPage(container))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v1 := e.Group("/v1")
	v1.GET("/health", handleHealth(container))
	v1.GET("/sources", handleListSources(container))
	v1.GET("/sources/:source/articles", handleSelectArticles(container))
	v1.GET("/sources/:source/dashboard", handleDashboard(container))
	v1.GET("/content", handleFetchContent(container))
	v1.POST("/analyze", handleAnalyze(container))

	return nil
}
