package rest

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"newsbias/di"
	"newsbias/domain"
	"newsbias/utils/logger"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type analyzeRequest struct {
	Kind   string `json:"kind" validate:"omitempty,oneof=summary bias devils_advocate"`
	Text   string `json:"text" validate:"required"`
	Source string `json:"source" validate:"required"`
}

type analyzeResponse struct {
	Analyses []domain.Analysis `json:"analyses"`
}

// handleAnalyze runs one analysis kind, or all of them when kind is omitted.
func handleAnalyze(container *di.ApplicationComponents) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req analyzeRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "text and source are required; kind must be summary, bias or devils_advocate")
		}

		// 表示名で渡されてもキーで渡されても同じソース名をプロンプトに使う
		sourceName := req.Source
		if src, err := container.Sources.Lookup(req.Source); err == nil {
			sourceName = src.Name
		}

		ctx := logger.WithSource(logger.WithOperation(c.Request().Context(), "analyze"), sourceName)

		if req.Kind == "" {
			return c.JSON(http.StatusOK, analyzeResponse{
				Analyses: container.AnalysisUsecase.Analyze(ctx, req.Text, sourceName),
			})
		}

		kind, err := domain.ParseAnalysisKind(req.Kind)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return c.JSON(http.StatusOK, analyzeResponse{
			Analyses: []domain.Analysis{container.AnalysisUsecase.AnalyzeKind(ctx, kind, req.Text, sourceName)},
		})
	}
}
