package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formvalues/pkg/widgets"
)

// Store keeps the widget definitions parsed from configuration files. It is
// safe for concurrent readers when treated as immutable after construction.
type Store struct {
	definitions map[string]widgets.Definition
	sources     map[string]string
}

// LoadFS walks the provided filesystem and parses JSON/YAML widget files.
// When fsys is nil or no widget files are present, the returned store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := newStore()
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}
		if !isConfigFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("config: read %s: %w", path, err)
		}

		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}
		return store.add(doc.Widgets, path)
	})
	if err != nil {
		return nil, err
	}

	return store, nil
}

// Parse reads a single JSON or YAML document.
func Parse(data []byte, source string) (*Store, error) {
	doc, err := parseDocument(data, source)
	if err != nil {
		return nil, err
	}
	store := newStore()
	if err := store.add(doc.Widgets, source); err != nil {
		return nil, err
	}
	return store, nil
}

// Definition returns a copy of the named definition.
func (s *Store) Definition(name string) (widgets.Definition, bool) {
	if s == nil {
		return widgets.Definition{}, false
	}
	def, ok := s.definitions[strings.TrimSpace(name)]
	if !ok {
		return widgets.Definition{}, false
	}
	return def.Clone(), true
}

// Source returns the file a definition was loaded from.
func (s *Store) Source(name string) string {
	if s == nil {
		return ""
	}
	return s.sources[strings.TrimSpace(name)]
}

// Names returns the definition names in sorted order.
func (s *Store) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.definitions))
	for name := range s.definitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Definitions returns copies of every definition sorted by name.
func (s *Store) Definitions() []widgets.Definition {
	names := s.Names()
	out := make([]widgets.Definition, 0, len(names))
	for _, name := range names {
		out = append(out, s.definitions[name].Clone())
	}
	return out
}

// Empty reports whether the store holds any definitions.
func (s *Store) Empty() bool {
	return s == nil || len(s.definitions) == 0
}

type documentFile struct {
	Widgets []widgets.Definition `json:"widgets" yaml:"widgets"`
}

func newStore() *Store {
	return &Store{
		definitions: make(map[string]widgets.Definition),
		sources:     make(map[string]string),
	}
}

func (s *Store) add(defs []widgets.Definition, source string) error {
	for idx, def := range defs {
		def.Name = strings.TrimSpace(def.Name)
		if def.Name == "" {
			return fmt.Errorf("config: file %s defines a widget with an empty name at index %d", source, idx)
		}
		if prev, exists := s.sources[def.Name]; exists {
			return fmt.Errorf("config: duplicate widget %q (file %s, first defined in %s)", def.Name, source, prev)
		}
		if err := ValidateDefinition(def); err != nil {
			return fmt.Errorf("config: file %s: %w", source, err)
		}
		s.definitions[def.Name] = def.Clone()
		s.sources[def.Name] = source
	}
	return nil
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("config: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return documentFile{}, fmt.Errorf("config: parse %s: invalid JSON or YAML", source)
}

func isConfigFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
