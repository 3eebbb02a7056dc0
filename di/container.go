package di

import (
	"context"
	"fmt"
	"log/slog"

	"newsbias/config"
	"newsbias/domain"
	"newsbias/driver/cache_driver"
	"newsbias/driver/gemini"
	"newsbias/driver/googlenews"
	"newsbias/driver/newsapi"
	"newsbias/gateway/article_search_gateway"
	"newsbias/gateway/fetch_content_gateway"
	"newsbias/gateway/text_generation_gateway"
	"newsbias/port/article_search_port"
	"newsbias/port/cache_port"
	"newsbias/port/fetch_content_port"
	"newsbias/port/text_generation_port"
	"newsbias/usecase/analysis_usecase"
	"newsbias/usecase/dashboard_usecase"
	"newsbias/usecase/fetch_content_usecase"
	"newsbias/usecase/select_articles_usecase"
	"newsbias/utils/memo"
	"newsbias/utils/rate_limiter"
)

type ApplicationComponents struct {
	Config  *config.Config
	Logger  *slog.Logger
	Sources *domain.SourceTable

	SelectArticlesUsecase select_articles_usecase.SelectArticlesUsecase
	FetchContentUsecase   fetch_content_usecase.FetchContentUsecase
	AnalysisUsecase       analysis_usecase.AnalysisUsecase
	DashboardUsecase      dashboard_usecase.DashboardUsecase

	cachePinger func(context.Context) error
	closers     []func() error
}

// Ports groups the outbound dependencies so tests can substitute them.
type Ports struct {
	Cache     cache_port.CachePort
	Search    article_search_port.ArticleSearchPort
	Fetcher   fetch_content_port.FetchContentPort
	Generator text_generation_port.TextGenerationPort
}

// NewApplicationComponents wires the production drivers selected by cfg.
func NewApplicationComponents(cfg *config.Config, logger *slog.Logger) (*ApplicationComponents, error) {
	var ports Ports
	var pinger func(context.Context) error
	var closers []func() error

	switch cfg.Cache.Backend {
	case "redis":
		store, err := cache_driver.NewRedisStoreWithURL(cfg.Cache.RedisURL, cfg.Cache.KeyPrefix)
		if err != nil {
			return nil, fmt.Errorf("failed to create redis cache: %w", err)
		}
		ports.Cache = store
		pinger = store.Ping
		closers = append(closers, store.Close)
	default:
		store := cache_driver.NewMemoryStore(cfg.Cache.Size, cfg.Cache.TTL)
		ports.Cache = store
		closers = append(closers, store.Close)
	}

	switch cfg.Search.Provider {
	case "rss":
		client := googlenews.NewClient(cfg.Search.GoogleNewsURL, cfg.Search.Timeout, logger)
		ports.Search = article_search_gateway.NewGoogleNewsGateway(client, cfg.Search.Language, cfg.Search.PageSize)
	default:
		client := newsapi.NewClient(cfg.Search.NewsAPIURL, cfg.NewsAPIKey, cfg.Search.Timeout, logger)
		ports.Search = article_search_gateway.NewNewsAPIGateway(client, cfg.Search.Language, cfg.Search.PageSize, logger)
	}

	ports.Fetcher = fetch_content_gateway.NewFetchContentGateway(
		rate_limiter.NewHostRateLimiter(cfg.Fetcher.HostInterval),
		cfg.Fetcher.Timeout,
		fetch_content_gateway.Options{
			MaxBodyBytes:       cfg.Fetcher.MaxBodyBytes,
			MinParagraphLength: cfg.Fetcher.MinParagraphLength,
			Extractor:          cfg.Fetcher.Extractor,
			UserAgent:          cfg.Fetcher.UserAgent,
		},
		logger,
	)

	ports.Generator = text_generation_gateway.NewTextGenerationGateway(
		gemini.NewClient(cfg.Generation.BaseURL, cfg.GeminiAPIKey, cfg.Generation.Model, cfg.Generation.Timeout, logger),
	)

	c := NewApplicationComponentsWithPorts(cfg, logger, ports)
	c.cachePinger = pinger
	c.closers = closers
	return c, nil
}

// NewApplicationComponentsWithPorts builds the usecases on top of the given ports.
func NewApplicationComponentsWithPorts(cfg *config.Config, logger *slog.Logger, ports Ports) *ApplicationComponents {
	if logger == nil {
		logger = slog.Default()
	}

	sources := domain.NewSourceTable(cfg.Sources)
	memoizer := memo.NewMemoizer(ports.Cache, cfg.Cache.TTL, logger)

	selectArticles := select_articles_usecase.NewSelectArticlesUsecase(sources, ports.Search, memoizer, cfg.Search.PageSize, logger)
	fetchContent := fetch_content_usecase.NewFetchContentUsecase(ports.Fetcher, memoizer, logger)
	analysis := analysis_usecase.NewAnalysisUsecase(ports.Generator, memoizer, cfg.Generation.MaxInputChars, logger)
	dashboard := dashboard_usecase.NewDashboardUsecase(selectArticles, fetchContent, analysis, logger)

	return &ApplicationComponents{
		Config:                cfg,
		Logger:                logger,
		Sources:               sources,
		SelectArticlesUsecase: selectArticles,
		FetchContentUsecase:   fetchContent,
		AnalysisUsecase:       analysis,
		DashboardUsecase:      dashboard,
	}
}

// CheckCache pings the shared cache, if one is configured.
func (c *ApplicationComponents) CheckCache(ctx context.Context) error {
	if c.cachePinger == nil {
		return nil
	}
	return c.cachePinger(ctx)
}

func (c *ApplicationComponents) Close() error {
	var firstErr error
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
