package fetch_content_usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"newsbias/port/fetch_content_port"
	"newsbias/utils/logger"
	"newsbias/utils/memo"
)

const operation = "fetch_content"

type FetchContentUsecase interface {
	// Execute returns the article body, or nil when it could not be obtained. It never fails.
	Execute(ctx context.Context, articleURL string) *string
}

type fetchContentUsecase struct {
	fetcher fetch_content_port.FetchContentPort
	memo    *memo.Memoizer
	logger  *slog.Logger
}

func NewFetchContentUsecase(fetcher fetch_content_port.FetchContentPort, memoizer *memo.Memoizer, logger *slog.Logger) FetchContentUsecase {
	if logger == nil {
		logger = slog.Default()
	}
	return &fetchContentUsecase{fetcher: fetcher, memo: memoizer, logger: logger}
}

// Execute memoizes absent results as well; fetches cut short by a cancellation
// or deadline are not stored.
func (u *fetchContentUsecase) Execute(ctx context.Context, articleURL string) *string {
	articleURL = strings.TrimSpace(articleURL)
	if articleURL == "" {
		return nil
	}

	ctx = logger.WithOperation(ctx, operation)
	content, err := memo.Do(ctx, u.memo, operation, []string{articleURL}, func(ctx context.Context) (*string, error) {
		content, err := u.fetcher.FetchContent(ctx, articleURL)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			logger.WithContext(ctx, u.logger).WarnContext(ctx, "content fetch failed", "url", articleURL, "error", err)
			return nil, nil
		}
		return content, nil
	})
	if err != nil {
		return nil
	}
	return content
}
