package domain

import (
	"fmt"
	"strings"
)

// Source is a news outlet whose domain scopes article searches.
type Source struct {
	Key    string `json:"key" yaml:"key" validate:"required"`
	Name   string `json:"name" yaml:"name" validate:"required"`
	Domain string `json:"domain" yaml:"domain" validate:"required,hostname_rfc1123"`
}

// DefaultSources is the built-in source table used when no sources file is configured.
func DefaultSources() []Source {
	return []Source{
		{Key: "cnn", Name: "CNN", Domain: "cnn.com"},
		{Key: "fox-news", Name: "Fox News", Domain: "foxnews.com"},
		{Key: "politico", Name: "Politico", Domain: "politico.com"},
		{Key: "nbc-news", Name: "NBC News", Domain: "nbcnews.com"},
	}
}

// SourceKey derives a URL-safe key from a display name ("Fox News" -> "fox-news").
func SourceKey(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// SourceTable is the immutable set of configured sources, in configuration order.
type SourceTable struct {
	sources []Source
}

func NewSourceTable(sources []Source) *SourceTable {
	copied := make([]Source, len(sources))
	copy(copied, sources)
	return &SourceTable{sources: copied}
}

// Lookup finds a source by key or display name, ignoring case.
func (t *SourceTable) Lookup(key string) (Source, error) {
	needle := strings.TrimSpace(key)
	if needle != "" {
		for _, s := range t.sources {
			if strings.EqualFold(s.Key, needle) || strings.EqualFold(s.Name, needle) {
				return s, nil
			}
		}
	}
	return Source{}, fmt.Errorf("%w: %q", ErrSourceUnknown, key)
}

// All returns a copy of the configured sources.
func (t *SourceTable) All() []Source {
	out := make([]Source, len(t.sources))
	copy(out, t.sources)
	return out
}

func (t *SourceTable) Len() int {
	return len(t.sources)
}
