package fetch_content_gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"newsbias/domain"
	"newsbias/utils/html_parser"
	"newsbias/utils/metrics"
	"newsbias/utils/otel"
	"newsbias/utils/rate_limiter"
	"newsbias/utils/security"
)

const (
	ExtractorParagraphs  = "paragraphs"
	ExtractorReadability = "readability"
)

type Options struct {
	MaxBodyBytes       int64
	MinParagraphLength int
	Extractor          string
	UserAgent          string
}

type FetchContentGateway struct {
	rateLimiter   *rate_limiter.HostRateLimiter
	httpClient    *http.Client
	ssrfValidator *security.SSRFValidator
	opts          Options
	logger        *slog.Logger
}

// NewFetchContentGateway refuses internal and metadata addresses before the request,
// on redirects and at dial time.
func NewFetchContentGateway(rateLimiter *rate_limiter.HostRateLimiter, timeout time.Duration, opts Options, logger *slog.Logger) *FetchContentGateway {
	validator := security.NewSSRFValidator()
	g := NewFetchContentGatewayWithDeps(rateLimiter, validator.SecureHTTPClient(timeout), opts, logger)
	g.ssrfValidator = validator
	return g
}

// NewFetchContentGatewayWithDeps allows a custom HTTP client and skips address checks, mainly for tests.
func NewFetchContentGatewayWithDeps(rateLimiter *rate_limiter.HostRateLimiter, httpClient *http.Client, opts Options, logger *slog.Logger) *FetchContentGateway {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 2 << 20
	}
	if opts.Extractor == "" {
		opts.Extractor = ExtractorParagraphs
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FetchContentGateway{rateLimiter: rateLimiter, httpClient: httpClient, opts: opts, logger: logger}
}

// FetchContent downloads the page and returns the text of its long paragraphs joined
// by spaces, or nil when no paragraph qualifies.
func (g *FetchContentGateway) FetchContent(ctx context.Context, articleURL string) (*string, error) {
	ctx, span := otel.Tracer().Start(ctx, "article_page.FetchContent")
	defer span.End()
	span.SetAttributes(attribute.String("url.full", articleURL))

	content, err := g.fetch(ctx, articleURL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		return nil, err
	}
	span.SetAttributes(attribute.Bool("content.available", content != nil))
	return content, nil
}

func (g *FetchContentGateway) fetch(ctx context.Context, articleURL string) (*string, error) {
	parsedURL, err := url.Parse(articleURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrContentFetchFailed, err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported scheme %q", domain.ErrContentFetchFailed, parsedURL.Scheme)
	}
	if g.ssrfValidator != nil {
		if err := g.ssrfValidator.ValidateURL(ctx, parsedURL); err != nil {
			metrics.RecordPageFetch("blocked")
			g.logger.WarnContext(ctx, "refusing to fetch address", "url", articleURL, "error", err)
			return nil, fmt.Errorf("%w: %w", domain.ErrContentFetchFailed, err)
		}
	}

	if g.rateLimiter != nil {
		if err := g.rateLimiter.WaitForHost(ctx, articleURL); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrContentFetchFailed, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsedURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrContentFetchFailed, err)
	}
	if g.opts.UserAgent != "" {
		req.Header.Set("User-Agent", g.opts.UserAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	start := time.Now()
	resp, err := g.httpClient.Do(req)
	if err != nil {
		metrics.RecordExternalRequest("article_page", "error", time.Since(start).Seconds())
		return nil, fmt.Errorf("%w: %w", domain.ErrContentFetchFailed, err)
	}
	defer resp.Body.Close()
	metrics.RecordExternalRequest("article_page", strconv.Itoa(resp.StatusCode), time.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.ExternalHTTPError{StatusCode: resp.StatusCode, URL: articleURL}
	}

	contentType := resp.Header.Get("Content-Type")
	if !isHTML(contentType) {
		metrics.RecordPageFetch("unexpected_content_type")
		g.logger.WarnContext(ctx, "parsing page with unexpected content type", "url", articleURL, "content_type", contentType)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, g.opts.MaxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrContentFetchFailed, err)
	}
	if int64(len(raw)) > g.opts.MaxBodyBytes {
		raw = raw[:g.opts.MaxBodyBytes]
		metrics.RecordPageFetch("truncated")
		g.logger.WarnContext(ctx, "page body truncated", "url", articleURL, "limit_bytes", g.opts.MaxBodyBytes)
	}

	body, err := html_parser.NewUTF8Reader(bytes.NewReader(raw), contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrContentFetchFailed, err)
	}

	var paragraphs []string
	switch g.opts.Extractor {
	case ExtractorReadability:
		paragraphs, err = html_parser.ExtractReadableParagraphs(body, parsedURL, g.opts.MinParagraphLength)
	default:
		paragraphs, err = html_parser.ExtractParagraphs(body, g.opts.MinParagraphLength)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrContentFetchFailed, err)
	}

	g.logger.DebugContext(ctx, "extracted paragraphs", "url", articleURL, "count", len(paragraphs))
	metrics.RecordPageFetch("ok")
	return html_parser.JoinParagraphs(paragraphs), nil
}

// isHTML accepts HTML and XHTML, and a missing Content-Type.
func isHTML(contentType string) bool {
	if contentType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "text/html" || mediaType == "application/xhtml+xml" || strings.HasPrefix(mediaType, "text/plain")
}
