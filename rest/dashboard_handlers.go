package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"newsbias/di"
	"newsbias/domain"
	"newsbias/middleware"
	"newsbias/utils/logger"
)

func handleDashboard(container *di.ApplicationComponents) echo.HandlerFunc {
	return func(c echo.Context) error {
		source := c.Param("source")
		ctx := logger.WithSource(logger.WithOperation(c.Request().Context(), "dashboard"), source)

		dashboard, err := container.DashboardUsecase.Execute(ctx, source)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, dashboard)
	}
}

type dashboardPage struct {
	Sources   []domain.Source
	Selected  string
	Dashboard *domain.Dashboard
	Error     *middleware.ErrorDetail
}

// handleDashboardPage renders the three-column page. Without ?source= only the selector is shown.
func handleDashboardPage(container *di.ApplicationComponents) echo.HandlerFunc {
	return func(c echo.Context) error {
		page := dashboardPage{
			Sources:  container.SelectArticlesUsecase.Sources(),
			Selected: c.QueryParam("source"),
		}
		if page.Selected == "" {
			return c.Render(http.StatusOK, dashboardTemplate, page)
		}

		ctx := logger.WithSource(logger.WithOperation(c.Request().Context(), "dashboard"), page.Selected)
		dashboard, err := container.DashboardUsecase.Execute(ctx, page.Selected)
		if err != nil {
			status, detail := middleware.Classify(err)
			logger.WithContext(ctx, container.Logger).WarnContext(ctx, "dashboard page failed", "status", status, "error", err)
			page.Error = &detail
			return c.Render(status, dashboardTemplate, page)
		}

		page.Selected = dashboard.Source.Key
		page.Dashboard = dashboard
		return c.Render(http.StatusOK, dashboardTemplate, page)
	}
}
