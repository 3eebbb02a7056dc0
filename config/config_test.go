package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsbias/domain"
)

// isolateEnv points the secrets file at an empty temp dir and sets the given variables.
func isolateEnv(t *testing.T, env map[string]string) {
	t.Helper()
	for _, k := range []string{NewsAPIKeyName, GeminiAPIKeyName, "SOURCES_FILE", "SEARCH_PROVIDER", "SERVER_PORT", "CACHE_BACKEND", "LOG_LEVEL", "OTEL_ENABLED", "OTEL_TRACE_SAMPLE_RATIO", "OTEL_EXPORTER_OTLP_ENDPOINT"} {
		t.Setenv(k, "")
	}
	t.Setenv("SECRETS_FILE", filepath.Join(t.TempDir(), "missing.env"))
	for k, v := range env {
		t.Setenv(k, v)
	}
}

func TestNewConfig_WithDefaults(t *testing.T) {
	isolateEnv(t, map[string]string{
		NewsAPIKeyName:   "news-key",
		GeminiAPIKeyName: "gemini-key",
	})

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 300*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "newsapi", cfg.Search.Provider)
	assert.Equal(t, 10, cfg.Search.PageSize)
	assert.Equal(t, 10*time.Second, cfg.Search.Timeout)
	assert.Equal(t, 10*time.Second, cfg.Fetcher.Timeout)
	assert.Equal(t, 50, cfg.Fetcher.MinParagraphLength)
	assert.Equal(t, int64(2<<20), cfg.Fetcher.MaxBodyBytes)
	assert.Equal(t, "gemini-1.5-flash", cfg.Generation.Model)
	assert.Equal(t, 4000, cfg.Generation.MaxInputChars)
	assert.Zero(t, cfg.Generation.Timeout)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Telemetry.Enabled)
	assert.Equal(t, 1.0, cfg.Telemetry.SampleRatio)
	assert.Equal(t, "http://localhost:4318", cfg.Telemetry.OTLPEndpoint)
	assert.Equal(t, domain.DefaultSources(), cfg.Sources)
	assert.Equal(t, "news-key", cfg.NewsAPIKey)
	assert.Equal(t, "gemini-key", cfg.GeminiAPIKey)
}

func TestNewConfig_Overrides(t *testing.T) {
	isolateEnv(t, map[string]string{
		NewsAPIKeyName:            "news-key",
		GeminiAPIKeyName:          "gemini-key",
		"SERVER_PORT":             "9100",
		"CACHE_BACKEND":           "redis",
		"LOG_LEVEL":               "debug",
		"OTEL_ENABLED":            "true",
		"OTEL_TRACE_SAMPLE_RATIO": "0.25",
	})

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "redis", cfg.Cache.Backend)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, 0.25, cfg.Telemetry.SampleRatio)
}

func TestNewConfig_InvalidValues(t *testing.T) {
	tests := map[string]map[string]string{
		"port out of range": {"SERVER_PORT": "70000"},
		"port not a number": {"SERVER_PORT": "abc"},
		"unknown backend":   {"CACHE_BACKEND": "memcached"},
		"unknown log level": {"LOG_LEVEL": "verbose"},
		"unknown provider":  {"SEARCH_PROVIDER": "bing"},
		"sample ratio > 1":  {"OTEL_TRACE_SAMPLE_RATIO": "7"},
		"sample ratio text": {"OTEL_TRACE_SAMPLE_RATIO": "half"},
	}

	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			env[NewsAPIKeyName] = "news-key"
			env[GeminiAPIKeyName] = "gemini-key"
			isolateEnv(t, env)

			_, err := NewConfig()
			assert.Error(t, err)
		})
	}
}

func TestNewConfig_MissingSecret(t *testing.T) {
	isolateEnv(t, map[string]string{GeminiAPIKeyName: "gemini-key"})

	_, err := NewConfig()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigMissing)

	var missing *MissingSecretError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, NewsAPIKeyName, missing.Name)
}

func TestNewConfig_RSSProviderNeedsNoNewsKey(t *testing.T) {
	isolateEnv(t, map[string]string{
		GeminiAPIKeyName:  "gemini-key",
		"SEARCH_PROVIDER": "rss",
	})

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Empty(t, cfg.NewsAPIKey)
	assert.False(t, cfg.NewsAPIRequired())
}

func TestNewConfig_SecretsFile(t *testing.T) {
	isolateEnv(t, nil)
	path := filepath.Join(t.TempDir(), "secrets.env")
	require.NoError(t, os.WriteFile(path, []byte("NEWS_API_KEY=file-news\nGEMINI_API_KEY=file-gemini\n"), 0o600))
	t.Setenv("SECRETS_FILE", path)
	t.Setenv(GeminiAPIKeyName, "env-gemini")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "file-news", cfg.NewsAPIKey)
	assert.Equal(t, "env-gemini", cfg.GeminiAPIKey, "environment wins over the secrets file")
	assert.Empty(t, os.Getenv(NewsAPIKeyName), "secrets file must not leak into the environment")
}

func TestNewConfig_SourcesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
sources:
  - name: Reuters
    domain: Reuters.com
  - key: ap
    name: Associated Press
    domain: apnews.com
`), 0o600))
	isolateEnv(t, map[string]string{
		NewsAPIKeyName:   "news-key",
		GeminiAPIKeyName: "gemini-key",
		"SOURCES_FILE":   path,
	})

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, []domain.Source{
		{Key: "reuters", Name: "Reuters", Domain: "reuters.com"},
		{Key: "ap", Name: "Associated Press", Domain: "apnews.com"},
	}, cfg.Sources)
}

func TestNewConfig_RejectsBadSources(t *testing.T) {
	tests := map[string]string{
		"empty list":     "sources: []\n",
		"missing domain": "sources:\n  - name: Reuters\n",
		"duplicate key":  "sources:\n  - name: A\n    key: x\n    domain: a.com\n  - name: B\n    key: X\n    domain: b.com\n",
		"invalid yaml":   "sources: [\n",
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "sources.yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
			isolateEnv(t, map[string]string{
				NewsAPIKeyName:   "news-key",
				GeminiAPIKeyName: "gemini-key",
				"SOURCES_FILE":   path,
			})

			_, err := NewConfig()
			assert.Error(t, err)
		})
	}
}
