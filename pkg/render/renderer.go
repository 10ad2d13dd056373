package render

import (
	"context"
	"errors"
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formvalues/pkg/render/template"
	"github.com/goliatone/go-formvalues/pkg/render/template/pongo"
	"github.com/goliatone/go-formvalues/pkg/widgets"
)

// DefaultTemplate is the built-in widget template name.
const DefaultTemplate = "widget"

// Option configures the Renderer.
type Option func(*Renderer)

// WithTemplateRenderer overrides the template engine.
func WithTemplateRenderer(engine template.TemplateRenderer) Option {
	return func(r *Renderer) {
		if engine != nil {
			r.engine = engine
		}
	}
}

// WithThemeSelector resolves theme tokens and template overrides through a
// go-theme selector before rendering.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(r *Renderer) {
		r.selector = selector
		r.themeName = strings.TrimSpace(name)
		r.themeVariant = strings.TrimSpace(variant)
	}
}

// WithTemplate overrides the template used when no theme template applies.
func WithTemplate(name string) Option {
	return func(r *Renderer) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			r.templateName = trimmed
		}
	}
}

// Renderer produces HTML fragments for widgets.
type Renderer struct {
	engine       template.TemplateRenderer
	selector     theme.ThemeSelector
	themeName    string
	themeVariant string
	templateName string
}

// New constructs a Renderer backed by the embedded templates unless another
// engine is supplied.
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{templateName: DefaultTemplate}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.engine == nil {
		engine, err := pongo.New(pongo.WithFS(Templates()))
		if err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
		r.engine = engine
	}
	return r, nil
}

// Render parses current with the widget and renders the resulting values,
// warnings and validation error. Values are escaped by the template; the
// description may carry markup and is sanitised.
func (r *Renderer) Render(ctx context.Context, w *widgets.Widget, current string) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("render: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if w == nil {
		return nil, errors.New("render: widget is nil")
	}

	themeCfg, err := r.resolveTheme()
	if err != nil {
		return nil, err
	}

	rep := w.Representation(current)
	var result widgets.Result
	if current != "" || rep.CurrentValue.String != "" {
		result = w.Parse(rep.CurrentValue.String)
	}

	data := map[string]any{
		"widget": widgetData(rep, result, w.Splits()),
		"theme":  themeData(themeCfg),
	}

	name := r.templateName
	if themeCfg != nil && themeCfg.Template != "" {
		name = themeCfg.Template
	}
	out, err := r.engine.RenderTemplate(name, data)
	if err != nil {
		return nil, fmt.Errorf("render: widget %s: %w", w.Name(), err)
	}
	return []byte(out), nil
}

func (r *Renderer) resolveTheme() (*ThemeConfig, error) {
	if r.selector == nil {
		return nil, nil
	}
	selection, err := r.selector.Select(r.themeName, r.themeVariant)
	if err != nil {
		return nil, fmt.Errorf("render: select theme %q: %w", r.themeName, err)
	}
	return themeFromSelection(selection), nil
}

func widgetData(rep widgets.Representation, result widgets.Result, multiple bool) map[string]any {
	data := map[string]any{
		"name":        rep.Name,
		"kind":        rep.Kind,
		"label":       rep.Label,
		"description": sanitizeMarkup(rep.Description),
		"required":    rep.Required,
		"multiple":    multiple,
		"separator":   rep.Separator,
		"rows":        rep.NumberVisOptions,
		"current":     rep.CurrentValue.String,
		"values":      result.Values,
		"warnings":    normalizeMessages(result.Warnings),
	}
	if !result.Outcome.Valid && result.Outcome.Message != "" {
		data["error"] = escapeMessage(result.Outcome.Message)
	}
	return data
}

func themeData(cfg *ThemeConfig) map[string]any {
	if cfg == nil {
		return map[string]any{}
	}
	return map[string]any{
		"name":    cfg.Theme,
		"variant": cfg.Variant,
		"style":   cfg.Style(),
	}
}

// normalizeMessages trims messages and removes blanks and duplicates while
// preserving order.
func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}
	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}
