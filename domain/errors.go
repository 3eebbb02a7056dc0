package domain

import (
	"errors"
	"fmt"
)

var (
	// 設定関連エラー
	ErrConfigMissing = errors.New("required configuration missing")

	// ソース・記事選択関連エラー
	ErrSourceUnknown       = errors.New("source unknown")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrNoArticlesFound     = errors.New("no articles found")

	// 非致命的エラー (フォールバックあり)
	ErrContentFetchFailed = errors.New("content fetch failed")
	ErrGenerationFailed   = errors.New("generation failed")
)

// UpstreamError describes a failed call to the article search API.
// It matches ErrUpstreamUnavailable with errors.Is and keeps the transport
// error, if any, in the chain.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	msg := fmt.Sprintf("%s: upstream unavailable", e.Provider)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Code != "" {
		msg += fmt.Sprintf(" [%s]", e.Code)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

func (e *UpstreamError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrUpstreamUnavailable, e.Err}
	}
	return []error{ErrUpstreamUnavailable}
}

// ExternalHTTPError represents an unexpected HTTP status from an external site.
type ExternalHTTPError struct {
	StatusCode int
	URL        string
}

func (e *ExternalHTTPError) Error() string {
	return fmt.Sprintf("unexpected status code %d for %q", e.StatusCode, e.URL)
}

func (e *ExternalHTTPError) Unwrap() error {
	return ErrContentFetchFailed
}
