package main

import (
	"fmt"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"
)

// manifestSelector serves a single theme manifest read from disk.
type manifestSelector struct {
	manifest *theme.Manifest
}

func loadThemeSelector(path string) (*manifestSelector, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme manifest: %w", err)
	}
	manifest := &theme.Manifest{}
	if err := yaml.Unmarshal(data, manifest); err != nil {
		return nil, fmt.Errorf("parse theme manifest %s: %w", path, err)
	}
	return &manifestSelector{manifest: manifest}, nil
}

func (s *manifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if name = strings.TrimSpace(name); name != "" && s.manifest.Name != "" && name != s.manifest.Name {
		return nil, fmt.Errorf("theme %q not found (loaded %q)", name, s.manifest.Name)
	}
	if variant != "" {
		if _, ok := s.manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("theme variant %q not found", variant)
		}
	}
	return &theme.Selection{
		Theme:    s.manifest.Name,
		Variant:  variant,
		Manifest: s.manifest,
	}, nil
}
