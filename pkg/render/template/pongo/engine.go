package pongo

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-formvalues/pkg/render/template"
)

// Extension is appended to template names that lack it.
const Extension = ".tpl"

// Option configures the Engine before construction.
type Option func(*Engine)

// WithFS loads templates from files.
func WithFS(files fs.FS) Option {
	return func(e *Engine) {
		e.files = files
	}
}

// Engine renders pongo2 templates loaded from an fs.FS. Parsed templates are
// cached by name; the engine is safe for concurrent use.
type Engine struct {
	files fs.FS
	set   *pongo2.TemplateSet

	mu        sync.RWMutex
	templates map[string]*pongo2.Template
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New constructs an Engine. A template filesystem is required.
func New(options ...Option) (*Engine, error) {
	e := &Engine{templates: make(map[string]*pongo2.Template)}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	if e.files == nil {
		return nil, errors.New("pongo: template fs is required")
	}
	if err := registerFilters(); err != nil {
		return nil, err
	}
	e.set = pongo2.NewSet("formvalues", pongo2.NewFSLoader(e.files))
	return e, nil
}

// RenderTemplate executes the named template with data.
func (e *Engine) RenderTemplate(name string, data map[string]any) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("pongo: engine is nil")
	}
	path := name
	if !strings.HasSuffix(path, Extension) {
		path += Extension
	}
	tmpl, err := e.template(path)
	if err != nil {
		return "", err
	}
	out, err := tmpl.Execute(pongo2.Context(data))
	if err != nil {
		return "", fmt.Errorf("pongo: execute template %q: %w", path, err)
	}
	return out, nil
}

func (e *Engine) template(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.templates[path]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.templates[path]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("pongo: load template %q: %w", path, err)
	}
	e.templates[path] = tmpl
	return tmpl, nil
}

var (
	filtersOnce sync.Once
	filtersErr  error
)

// registerFilters adds the engine filters to pongo2's filter table. The table
// is process wide, so registration happens once and is shared by every
// Engine and any other pongo2 user in the binary.
func registerFilters() error {
	filtersOnce.Do(func() {
		if pongo2.FilterExists("separator_label") {
			return
		}
		filtersErr = pongo2.RegisterFilter("separator_label", filterSeparatorLabel)
	})
	return filtersErr
}

// filterSeparatorLabel spells out a separator literal for display, one entry
// per separator rune.
func filterSeparatorLabel(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	literal := in.String()
	if literal == "" {
		return pongo2.AsValue("none"), nil
	}
	var labels []string
	for i := 0; i < len(literal); {
		r, size := utf8.DecodeRuneInString(literal[i:])
		i += size
		switch {
		case r == '\\' && strings.HasPrefix(literal[i:], "n"):
			labels = append(labels, "new line")
			i++
		case r == '\\' && strings.HasPrefix(literal[i:], "t"):
			labels = append(labels, "tab")
			i++
		case r == ' ':
			labels = append(labels, "space")
		default:
			labels = append(labels, string(r))
		}
	}
	return pongo2.AsValue(strings.Join(labels, ", ")), nil
}
