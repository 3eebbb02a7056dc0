// Package newsapi is a minimal client for the NewsAPI /v2/everything endpoint.
package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"newsbias/domain"
	"newsbias/utils/metrics"
)

const providerName = "newsapi"

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 64 << 10

type EverythingParams struct {
	Query    string
	Domains  string
	Language string
	SortBy   string
	PageSize int
}

type ArticleSource struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Article struct {
	Source      ArticleSource `json:"source"`
	Author      string        `json:"author"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	URL         string        `json:"url"`
	URLToImage  string        `json:"urlToImage"`
	PublishedAt string        `json:"publishedAt"`
	Content     string        `json:"content"`
}

type Response struct {
	Status       string    `json:"status"`
	TotalResults int       `json:"totalResults"`
	Articles     []Article `json:"articles"`
	Code         string    `json:"code,omitempty"`
	Message      string    `json:"message,omitempty"`
}

type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(endpoint, apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	return NewClientWithHTTPClient(endpoint, apiKey, &http.Client{Timeout: timeout}, logger)
}

func NewClientWithHTTPClient(endpoint, apiKey string, httpClient *http.Client, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{endpoint: endpoint, apiKey: apiKey, httpClient: httpClient, logger: logger}
}

// Everything runs one search. Any transport failure or non-200 answer is
// returned as *domain.UpstreamError.
func (c *Client) Everything(ctx context.Context, params EverythingParams) (*Response, error) {
	reqURL, err := c.buildURL(params)
	if err != nil {
		return nil, &domain.UpstreamError{Provider: providerName, Message: "invalid endpoint", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &domain.UpstreamError{Provider: providerName, Message: "failed to create request", Err: err}
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	c.logger.DebugContext(ctx, "calling newsapi", "domains", params.Domains, "query", params.Query, "page_size", params.PageSize)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordExternalRequest(providerName, "error", time.Since(start).Seconds())
		return nil, &domain.UpstreamError{Provider: providerName, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()
	metrics.RecordExternalRequest(providerName, strconv.Itoa(resp.StatusCode), time.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		return nil, c.decodeError(ctx, resp)
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &domain.UpstreamError{Provider: providerName, StatusCode: resp.StatusCode, Message: "invalid response body", Err: err}
	}
	if out.Status == "error" {
		return nil, &domain.UpstreamError{Provider: providerName, StatusCode: resp.StatusCode, Code: out.Code, Message: out.Message}
	}
	return &out, nil
}

func (c *Client) buildURL(params EverythingParams) (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", err
	}
	q := u.Query()
	if params.Query != "" {
		q.Set("q", params.Query)
	}
	if params.Domains != "" {
		q.Set("domains", params.Domains)
	}
	if params.Language != "" {
		q.Set("language", params.Language)
	}
	if params.SortBy != "" {
		q.Set("sortBy", params.SortBy)
	}
	if params.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(params.PageSize))
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *Client) decodeError(ctx context.Context, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	upstream := &domain.UpstreamError{Provider: providerName, StatusCode: resp.StatusCode}
	var payload Response
	if err := json.Unmarshal(body, &payload); err == nil && (payload.Code != "" || payload.Message != "") {
		upstream.Code = payload.Code
		upstream.Message = payload.Message
	} else {
		upstream.Message = fmt.Sprintf("API request failed with status: %s", resp.Status)
	}

	c.logger.ErrorContext(ctx, "newsapi returned an error",
		"status", resp.StatusCode,
		"code", upstream.Code,
		"message", upstream.Message)
	return upstream
}
