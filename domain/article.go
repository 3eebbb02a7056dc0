package domain

import (
	"strings"
	"time"
)

// MaxBatchSize is the largest number of articles returned for one source.
const MaxBatchSize = 5

type Article struct {
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Description string    `json:"description,omitempty"`
	PublishedAt time.Time `json:"published_at"`
	Political   bool      `json:"political"`
}

// WellFormed reports whether the article has the fields every consumer relies on.
func (a Article) WellFormed() bool {
	return strings.TrimSpace(a.Title) != "" && strings.TrimSpace(a.URL) != ""
}

// PreviewText is the analysis input used when the full page cannot be fetched.
func (a Article) PreviewText() string {
	return a.Title + "\n" + a.Description
}

// ArticleBatch is the ranked result of one article selection.
type ArticleBatch struct {
	Source   Source    `json:"source"`
	Articles []Article `json:"articles"`
}

// SearchQuery describes one request to the article search API.
type SearchQuery struct {
	Domain    string
	Keywords  []string
	Broadened bool
	Limit     int
}
