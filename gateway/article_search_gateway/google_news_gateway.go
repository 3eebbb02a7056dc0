package article_search_gateway

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"newsbias/domain"
	"newsbias/driver/googlenews"
	"newsbias/utils/html_parser"
	"newsbias/utils/otel"
)

// GoogleNewsGateway searches the Google News RSS feed. It needs no API key.
type GoogleNewsGateway struct {
	client   *googlenews.Client
	language string
	pageSize int
}

func NewGoogleNewsGateway(client *googlenews.Client, language string, pageSize int) *GoogleNewsGateway {
	return &GoogleNewsGateway{client: client, language: language, pageSize: pageSize}
}

func (g *GoogleNewsGateway) SearchArticles(ctx context.Context, query domain.SearchQuery) ([]domain.Article, error) {
	ctx, span := otel.Tracer().Start(ctx, "googlenews.SearchArticles")
	defer span.End()
	span.SetAttributes(
		attribute.String("search.domain", query.Domain),
		attribute.Bool("search.broadened", query.Broadened),
	)

	q := siteQuery(query.Domain)
	if !query.Broadened {
		if kw := KeywordQuery(query.Keywords); kw != "" {
			q += " (" + kw + ")"
		}
	}
	limit := g.pageSize
	if query.Limit > 0 {
		limit = query.Limit
	}

	items, err := g.client.Search(ctx, q, g.language, limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "search failed")
		return nil, err
	}

	articles := make([]domain.Article, 0, len(items))
	for _, it := range items {
		articles = append(articles, domain.Article{
			Title:       it.Title,
			URL:         it.Link,
			Description: strings.TrimSpace(html_parser.StripTags(it.Description)),
			PublishedAt: it.Published,
		})
	}
	return articles, nil
}
