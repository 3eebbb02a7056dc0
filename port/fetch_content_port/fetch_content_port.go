package fetch_content_port

//go:generate mockgen -source=fetch_content_port.go -destination=../../mocks/mock_fetch_content_port.go -package=mocks

import "context"

type FetchContentPort interface {
	// FetchContent returns the extracted body text, or nil when the page has no usable paragraphs.
	FetchContent(ctx context.Context, articleURL string) (*string, error)
}
