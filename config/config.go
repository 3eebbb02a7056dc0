package config

import (
	"fmt"
	"time"

	"newsbias/domain"
)

type Config struct {
	Server     ServerConfig     `json:"server"`
	Search     SearchConfig     `json:"search"`
	Fetcher    FetcherConfig    `json:"fetcher"`
	Generation GenerationConfig `json:"generation"`
	Cache      CacheConfig      `json:"cache"`
	Logging    LoggingConfig    `json:"logging"`
	Telemetry  TelemetryConfig  `json:"telemetry"`

	SecretsFile string `json:"secrets_file" env:"SECRETS_FILE" default:".secrets.env"`
	SourcesFile string `json:"sources_file" env:"SOURCES_FILE"`

	// Resolved after the environment pass.
	Sources      []domain.Source `json:"sources" validate:"required,min=1,dive"`
	NewsAPIKey   string          `json:"-"`
	GeminiAPIKey string          `json:"-"`
}

type ServerConfig struct {
	Port            int           `json:"port" env:"SERVER_PORT" default:"8080" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `json:"read_timeout" env:"SERVER_READ_TIMEOUT" default:"300s" validate:"gt=0"` // dashboards run many sequential LLM calls
	WriteTimeout    time.Duration `json:"write_timeout" env:"SERVER_WRITE_TIMEOUT" default:"300s" validate:"gt=0"`
	IdleTimeout     time.Duration `json:"idle_timeout" env:"SERVER_IDLE_TIMEOUT" default:"120s" validate:"gt=0"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" default:"10s" validate:"gt=0"`
}

type SearchConfig struct {
	Provider      string        `json:"provider" env:"SEARCH_PROVIDER" default:"newsapi" validate:"oneof=newsapi rss"`
	NewsAPIURL    string        `json:"newsapi_url" env:"NEWSAPI_URL" default:"https://newsapi.org/v2/everything" validate:"required,url"`
	GoogleNewsURL string        `json:"google_news_url" env:"GOOGLE_NEWS_URL" default:"https://news.google.com/rss/search" validate:"required,url"`
	Language      string        `json:"language" env:"SEARCH_LANGUAGE" default:"en" validate:"required"`
	PageSize      int           `json:"page_size" env:"SEARCH_PAGE_SIZE" default:"10" validate:"min=1,max=100"`
	Timeout       time.Duration `json:"timeout" env:"SEARCH_TIMEOUT" default:"10s" validate:"gt=0"`
}

type FetcherConfig struct {
	Timeout            time.Duration `json:"timeout" env:"FETCH_TIMEOUT" default:"10s" validate:"gt=0"`
	HostInterval       time.Duration `json:"host_interval" env:"FETCH_HOST_INTERVAL" default:"1s"`
	MaxBodyBytes       int64         `json:"max_body_bytes" env:"FETCH_MAX_BODY_BYTES" default:"2097152" validate:"gt=0"`
	MinParagraphLength int           `json:"min_paragraph_length" env:"FETCH_MIN_PARAGRAPH_LENGTH" default:"50" validate:"min=0"`
	Extractor          string        `json:"extractor" env:"FETCH_EXTRACTOR" default:"paragraphs" validate:"oneof=paragraphs readability"`
	UserAgent          string        `json:"user_agent" env:"FETCH_USER_AGENT" default:"Mozilla/5.0 (compatible; newsbias/1.0)"`
}

type GenerationConfig struct {
	BaseURL       string        `json:"base_url" env:"GEMINI_BASE_URL" default:"https://generativelanguage.googleapis.com" validate:"required,url"`
	Model         string        `json:"model" env:"GEMINI_MODEL" default:"gemini-1.5-flash" validate:"required"`
	MaxInputChars int           `json:"max_input_chars" env:"ANALYSIS_MAX_INPUT_CHARS" default:"4000" validate:"min=1"`
	Timeout       time.Duration `json:"timeout" env:"GEMINI_TIMEOUT"` // zero means no client-side limit
}

type CacheConfig struct {
	Backend   string        `json:"backend" env:"CACHE_BACKEND" default:"memory" validate:"oneof=memory redis"`
	TTL       time.Duration `json:"ttl" env:"CACHE_TTL" default:"1h" validate:"gt=0"`
	Size      int           `json:"size" env:"CACHE_SIZE" default:"1024" validate:"min=1"`
	RedisURL  string        `json:"redis_url" env:"REDIS_URL" default:"redis://localhost:6379/0"`
	KeyPrefix string        `json:"key_prefix" env:"CACHE_KEY_PREFIX" default:"newsbias:"`
}

type LoggingConfig struct {
	Level  string `json:"level" env:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format string `json:"format" env:"LOG_FORMAT" default:"json" validate:"oneof=json text"`
}

// TelemetryConfig controls OTLP export of traces and logs.
type TelemetryConfig struct {
	Enabled      bool    `json:"enabled" env:"OTEL_ENABLED" default:"false"`
	ServiceName  string  `json:"service_name" env:"OTEL_SERVICE_NAME" default:"newsbias" validate:"required"`
	Environment  string  `json:"environment" env:"DEPLOYMENT_ENV" default:"development"`
	OTLPEndpoint string  `json:"otlp_endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT" default:"http://localhost:4318" validate:"required,url"`
	SampleRatio  float64 `json:"sample_ratio" env:"OTEL_TRACE_SAMPLE_RATIO" default:"1.0" validate:"min=0,max=1"`
}

// NewConfig loads the environment, the source table and the API keys, then validates the result.
func NewConfig() (*Config, error) {
	config := &Config{}

	if err := loadFromEnvironment(config); err != nil {
		return nil, fmt.Errorf("failed to load config from environment: %w", err)
	}

	sources, err := LoadSources(config.SourcesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load sources: %w", err)
	}
	config.Sources = sources

	if err := resolveSecrets(config, NewSecretResolver(config.SecretsFile)); err != nil {
		return nil, err
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// NewsAPIRequired reports whether the selected search provider needs a NewsAPI key.
func (c *Config) NewsAPIRequired() bool {
	return c.Search.Provider == "newsapi"
}
