package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"newsbias/di"
	"newsbias/utils/logger"
)

type contentRequest struct {
	URL string `query:"url" validate:"required,http_url"`
}

type contentResponse struct {
	URL       string  `json:"url"`
	Available bool    `json:"available"`
	Content   *string `json:"content"`
}

func handleFetchContent(container *di.ApplicationComponents) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req contentRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
		}
		if err := validate.Struct(req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "url must be an absolute http(s) URL")
		}

		ctx := logger.WithOperation(c.Request().Context(), "fetch_content")
		content := container.FetchContentUsecase.Execute(ctx, req.URL)

		return c.JSON(http.StatusOK, contentResponse{
			URL:       req.URL,
			Available: content != nil,
			Content:   content,
		})
	}
}
