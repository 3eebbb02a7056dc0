package dashboard_usecase

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"newsbias/domain"
	"newsbias/usecase/analysis_usecase"
	"newsbias/usecase/fetch_content_usecase"
	"newsbias/usecase/select_articles_usecase"
	"newsbias/utils/logger"
	"newsbias/utils/metrics"
	"newsbias/utils/otel"
)

type DashboardUsecase interface {
	Execute(ctx context.Context, sourceKey string) (*domain.Dashboard, error)
}

type dashboardUsecase struct {
	selector select_articles_usecase.SelectArticlesUsecase
	fetcher  fetch_content_usecase.FetchContentUsecase
	analysis analysis_usecase.AnalysisUsecase
	now      func() time.Time
	logger   *slog.Logger
}

func NewDashboardUsecase(
	selector select_articles_usecase.SelectArticlesUsecase,
	fetcher fetch_content_usecase.FetchContentUsecase,
	analysis analysis_usecase.AnalysisUsecase,
	logger *slog.Logger,
) DashboardUsecase {
	if logger == nil {
		logger = slog.Default()
	}
	return &dashboardUsecase{
		selector: selector,
		fetcher:  fetcher,
		analysis: analysis,
		now:      time.Now,
		logger:   logger,
	}
}

// Execute selects the source's articles and analyzes each one in order. When the page
// cannot be fetched, the title and description stand in for the body.
func (u *dashboardUsecase) Execute(ctx context.Context, sourceKey string) (*domain.Dashboard, error) {
	start := time.Now()
	ctx, span := otel.Tracer().Start(ctx, "dashboard.Execute")
	defer span.End()

	batch, err := u.selector.Execute(ctx, sourceKey)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "article selection failed")
		return nil, err
	}
	span.SetAttributes(
		attribute.String("source.key", batch.Source.Key),
		attribute.Int("articles.count", len(batch.Articles)),
	)

	ctx = logger.WithSource(logger.WithOperation(ctx, "dashboard"), batch.Source.Key)
	log := logger.WithContext(ctx, u.logger)

	dashboard := &domain.Dashboard{
		Source:      batch.Source,
		GeneratedAt: u.now().UTC(),
		Items:       make([]domain.DashboardItem, 0, len(batch.Articles)),
	}

	for _, article := range batch.Articles {
		if err := ctx.Err(); err != nil {
			span.SetStatus(codes.Error, "canceled")
			return nil, err
		}

		item := domain.DashboardItem{Article: article, ContentOrigin: domain.ContentFromPage}

		text := ""
		if content := u.fetcher.Execute(ctx, article.URL); content != nil {
			text = *content
		} else {
			item.ContentOrigin = domain.ContentFromPreview
			text = article.PreviewText()
			metrics.RecordFallback("preview_content")
			log.InfoContext(ctx, "using article preview", "url", article.URL)
		}

		item.Analyses = u.analysis.Analyze(ctx, text, batch.Source.Name)
		dashboard.Items = append(dashboard.Items, item)
	}

	metrics.DashboardDuration.WithLabelValues(batch.Source.Key).Observe(time.Since(start).Seconds())
	log.InfoContext(ctx, "dashboard assembled", "items", len(dashboard.Items), "elapsed", time.Since(start))
	return dashboard, nil
}
