// Package googlenews searches the public Google News RSS endpoint.
package googlenews

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"newsbias/domain"
	"newsbias/utils/metrics"
)

const providerName = "google_news_rss"

type Item struct {
	Title       string
	Link        string
	Description string
	Published   time.Time
}

type Client struct {
	endpoint   string
	httpClient *http.Client
	parser     *gofeed.Parser
	logger     *slog.Logger
}

func NewClient(endpoint string, timeout time.Duration, logger *slog.Logger) *Client {
	return NewClientWithHTTPClient(endpoint, &http.Client{Timeout: timeout}, logger)
}

func NewClientWithHTTPClient(endpoint string, httpClient *http.Client, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: httpClient,
		parser:     gofeed.NewParser(),
		logger:     logger,
	}
}

// Search returns the feed items for query, newest first, capped at limit.
func (c *Client) Search(ctx context.Context, query, language string, limit int) ([]Item, error) {
	reqURL, err := c.buildURL(query, language)
	if err != nil {
		return nil, &domain.UpstreamError{Provider: providerName, Message: "invalid endpoint", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &domain.UpstreamError{Provider: providerName, Message: "failed to create request", Err: err}
	}
	req.Header.Set("Accept", "application/rss+xml, application/xml")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordExternalRequest(providerName, "error", time.Since(start).Seconds())
		return nil, &domain.UpstreamError{Provider: providerName, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()
	metrics.RecordExternalRequest(providerName, strconv.Itoa(resp.StatusCode), time.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		c.logger.ErrorContext(ctx, "google news rss returned an error", "status", resp.StatusCode, "query", query)
		return nil, &domain.UpstreamError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("unexpected status: %s", resp.Status),
		}
	}

	feed, err := c.parser.Parse(resp.Body)
	if err != nil {
		return nil, &domain.UpstreamError{Provider: providerName, StatusCode: resp.StatusCode, Message: "invalid feed", Err: err}
	}

	items := make([]Item, 0, len(feed.Items))
	for _, fi := range feed.Items {
		item := Item{
			Title:       CleanTitle(fi.Title),
			Link:        strings.TrimSpace(fi.Link),
			Description: fi.Description,
		}
		if fi.PublishedParsed != nil {
			item.Published = *fi.PublishedParsed
		}
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Published.After(items[j].Published)
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (c *Client) buildURL(query, language string) (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", err
	}
	if language == "" {
		language = "en"
	}
	q := u.Query()
	q.Set("q", query)
	q.Set("hl", language+"-US")
	q.Set("gl", "US")
	q.Set("ceid", "US:"+language)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// CleanTitle drops the " - Outlet" suffix Google News appends to every headline.
func CleanTitle(title string) string {
	title = strings.TrimSpace(title)
	if i := strings.LastIndex(title, " - "); i > 0 {
		return strings.TrimSpace(title[:i])
	}
	return title
}
