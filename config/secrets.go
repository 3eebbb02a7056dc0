package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"

	"newsbias/domain"
)

const (
	NewsAPIKeyName   = "NEWS_API_KEY"
	GeminiAPIKeyName = "GEMINI_API_KEY"
)

// MissingSecretError is returned when a required key is in neither the environment nor the secrets file.
type MissingSecretError struct {
	Name string
	File string
}

func (e *MissingSecretError) Error() string {
	return fmt.Sprintf("required secret %s not found in environment or %s", e.Name, e.File)
}

func (e *MissingSecretError) Unwrap() error {
	return domain.ErrConfigMissing
}

// SecretResolver looks a key up in the environment first, then in a dotenv-format secrets file.
// The file is read once, lazily, and never written back into the process environment.
type SecretResolver struct {
	file      string
	lookupEnv func(string) (string, bool)

	once   sync.Once
	values map[string]string
	err    error
}

func NewSecretResolver(file string) *SecretResolver {
	return &SecretResolver{file: file, lookupEnv: os.LookupEnv}
}

func (r *SecretResolver) Resolve(name string) (string, error) {
	if v, ok := r.lookupEnv(name); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v), nil
	}

	r.once.Do(r.load)
	if r.err != nil {
		return "", fmt.Errorf("failed to read secrets file %s: %w", r.file, r.err)
	}

	if v := strings.TrimSpace(r.values[name]); v != "" {
		return v, nil
	}
	return "", &MissingSecretError{Name: name, File: r.file}
}

func (r *SecretResolver) load() {
	if r.file == "" {
		return
	}
	values, err := godotenv.Read(r.file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return
		}
		r.err = err
		return
	}
	r.values = values
}

func resolveSecrets(config *Config, resolver *SecretResolver) error {
	if config.NewsAPIRequired() {
		key, err := resolver.Resolve(NewsAPIKeyName)
		if err != nil {
			return err
		}
		config.NewsAPIKey = key
	}

	key, err := resolver.Resolve(GeminiAPIKeyName)
	if err != nil {
		return err
	}
	config.GeminiAPIKey = key
	return nil
}
