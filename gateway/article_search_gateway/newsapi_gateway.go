package article_search_gateway

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"newsbias/domain"
	"newsbias/driver/newsapi"
	"newsbias/utils/html_parser"
	"newsbias/utils/otel"
)

type NewsAPIGateway struct {
	client   *newsapi.Client
	language string
	pageSize int
	logger   *slog.Logger
}

func NewNewsAPIGateway(client *newsapi.Client, language string, pageSize int, logger *slog.Logger) *NewsAPIGateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &NewsAPIGateway{client: client, language: language, pageSize: pageSize, logger: logger}
}

// SearchArticles scopes the request to the source domain with the keyword query,
// or, for a broadened query, searches "site:<domain>" with no domain filter.
func (g *NewsAPIGateway) SearchArticles(ctx context.Context, query domain.SearchQuery) ([]domain.Article, error) {
	ctx, span := otel.Tracer().Start(ctx, "newsapi.SearchArticles")
	defer span.End()
	span.SetAttributes(
		attribute.String("search.domain", query.Domain),
		attribute.Bool("search.broadened", query.Broadened),
	)

	params := newsapi.EverythingParams{
		Language: g.language,
		SortBy:   "publishedAt",
		PageSize: g.pageSize,
	}
	if query.Limit > 0 {
		params.PageSize = query.Limit
	}
	if query.Broadened {
		params.Query = siteQuery(query.Domain)
	} else {
		params.Domains = query.Domain
		params.Query = KeywordQuery(query.Keywords)
	}

	resp, err := g.client.Everything(ctx, params)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "search failed")
		return nil, err
	}

	articles := make([]domain.Article, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		if strings.TrimSpace(a.Title) == removedTitle {
			continue
		}
		article := domain.Article{
			Title:       strings.TrimSpace(a.Title),
			URL:         strings.TrimSpace(a.URL),
			Description: html_parser.SanitizeText(a.Description),
		}
		if a.PublishedAt != "" {
			if ts, err := time.Parse(time.RFC3339, a.PublishedAt); err == nil {
				article.PublishedAt = ts
			} else {
				g.logger.DebugContext(ctx, "unparseable publishedAt", "value", a.PublishedAt)
			}
		}
		articles = append(articles, article)
	}
	return articles, nil
}
