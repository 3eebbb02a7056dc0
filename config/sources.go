package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"newsbias/domain"
)

type sourcesDocument struct {
	Sources []domain.Source `yaml:"sources"`
}

// LoadSources returns the built-in table when path is empty, otherwise the sources listed in the YAML file.
// Entries without a key get one derived from their name.
func LoadSources(path string) ([]domain.Source, error) {
	if path == "" {
		return domain.DefaultSources(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sources file: %w", err)
	}
	return ParseSources(data)
}

func ParseSources(data []byte) ([]domain.Source, error) {
	var doc sourcesDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse sources file: %w", err)
	}

	sources := make([]domain.Source, 0, len(doc.Sources))
	for _, s := range doc.Sources {
		s.Name = strings.TrimSpace(s.Name)
		s.Domain = strings.ToLower(strings.TrimSpace(s.Domain))
		s.Key = strings.TrimSpace(s.Key)
		if s.Key == "" {
			s.Key = domain.SourceKey(s.Name)
		}
		sources = append(sources, s)
	}
	return sources, nil
}
