package article_search_port

//go:generate mockgen -source=article_search_port.go -destination=../../mocks/mock_article_search_port.go -package=mocks

import (
	"context"

	"newsbias/domain"
)

// ArticleSearchPort queries a news search provider for candidate articles.
// Failures are reported as *domain.UpstreamError.
type ArticleSearchPort interface {
	SearchArticles(ctx context.Context, query domain.SearchQuery) ([]domain.Article, error)
}
