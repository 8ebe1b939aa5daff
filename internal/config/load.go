package config

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// LoadDocument reads a YAML or JSON document from a file.
func LoadDocument(path string) (map[string]any, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return ParseDocument(data)
}

// ParseDocument parses a YAML or JSON document into a loosely-typed map.
// Numbers are decoded as float64 and coerced later by Normalize.
func ParseDocument(data []byte) (map[string]any, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return doc, nil
}

// LoadFile reads a composite resource from a file and normalizes it.
func LoadFile(path string) (*Config, error) {
	doc, err := LoadDocument(path)
	if err != nil {
		return nil, err
	}
	return Normalize(doc)
}
