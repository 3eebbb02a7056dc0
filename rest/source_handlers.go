package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"newsbias/di"
	"newsbias/domain"
	"newsbias/utils/logger"
)

type sourcesResponse struct {
	Sources []domain.Source `json:"sources"`
}

func handleListSources(container *di.ApplicationComponents) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, sourcesResponse{Sources: container.SelectArticlesUsecase.Sources()})
	}
}

func handleSelectArticles(container *di.ApplicationComponents) echo.HandlerFunc {
	return func(c echo.Context) error {
		source := c.Param("source")
		ctx := logger.WithSource(logger.WithOperation(c.Request().Context(), "select_articles"), source)

		batch, err := container.SelectArticlesUsecase.Execute(ctx, source)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, batch)
	}
}
