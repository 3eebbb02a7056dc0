package select_articles_usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"newsbias/domain"
	"newsbias/port/article_search_port"
	"newsbias/utils/logger"
	"newsbias/utils/memo"
)

const operation = "select_articles"

type SelectArticlesUsecase interface {
	Execute(ctx context.Context, sourceKey string) (*domain.ArticleBatch, error)
	Sources() []domain.Source
}

type selectArticlesUsecase struct {
	sources  *domain.SourceTable
	search   article_search_port.ArticleSearchPort
	memo     *memo.Memoizer
	pageSize int
	logger   *slog.Logger
}

func NewSelectArticlesUsecase(
	sources *domain.SourceTable,
	search article_search_port.ArticleSearchPort,
	memoizer *memo.Memoizer,
	pageSize int,
	logger *slog.Logger,
) SelectArticlesUsecase {
	if logger == nil {
		logger = slog.Default()
	}
	return &selectArticlesUsecase{
		sources:  sources,
		search:   search,
		memo:     memoizer,
		pageSize: pageSize,
		logger:   logger,
	}
}

func (u *selectArticlesUsecase) Sources() []domain.Source {
	return u.sources.All()
}

// Execute returns up to five recent articles for the source, political ones first.
// Results are memoized per source; failures are not.
func (u *selectArticlesUsecase) Execute(ctx context.Context, sourceKey string) (*domain.ArticleBatch, error) {
	source, err := u.sources.Lookup(sourceKey)
	if err != nil {
		return nil, err
	}

	ctx = logger.WithSource(logger.WithOperation(ctx, operation), source.Key)
	batch, err := memo.Do(ctx, u.memo, operation, []string{source.Key}, func(ctx context.Context) (domain.ArticleBatch, error) {
		return u.selectArticles(ctx, source)
	})
	if err != nil {
		return nil, err
	}
	return &batch, nil
}

func (u *selectArticlesUsecase) selectArticles(ctx context.Context, source domain.Source) (domain.ArticleBatch, error) {
	log := logger.WithContext(ctx, u.logger)

	candidates, err := u.search.SearchArticles(ctx, domain.SearchQuery{
		Domain:   source.Domain,
		Keywords: domain.PoliticalKeywords,
		Limit:    u.pageSize,
	})
	if err != nil {
		return domain.ArticleBatch{}, asUpstream(err)
	}

	ranked := domain.RankPoliticalFirst(candidates, domain.MaxBatchSize)
	if len(ranked) == 0 {
		log.InfoContext(ctx, "domain-scoped search returned nothing, broadening", "domain", source.Domain)
		candidates, err = u.search.SearchArticles(ctx, domain.SearchQuery{
			Domain:    source.Domain,
			Broadened: true,
			Limit:     u.pageSize,
		})
		if err != nil {
			return domain.ArticleBatch{}, asUpstream(err)
		}
		ranked = domain.RankPoliticalFirst(candidates, domain.MaxBatchSize)
	}

	if len(ranked) == 0 {
		return domain.ArticleBatch{}, fmt.Errorf("%w for %s", domain.ErrNoArticlesFound, source.Name)
	}

	political := 0
	for _, a := range ranked {
		if a.Political {
			political++
		}
	}
	log.InfoContext(ctx, "selected articles", "count", len(ranked), "political", political)

	return domain.ArticleBatch{Source: source, Articles: ranked}, nil
}

func asUpstream(err error) error {
	if errors.Is(err, domain.ErrUpstreamUnavailable) {
		return err
	}
	return &domain.UpstreamError{Provider: "search", Message: err.Error(), Err: err}
}
