package formvalues

import (
	"context"

	"github.com/goliatone/go-formvalues/pkg/render"
	"github.com/goliatone/go-formvalues/pkg/separator"
	"github.com/goliatone/go-formvalues/pkg/splitter"
	"github.com/goliatone/go-formvalues/pkg/validation"
	"github.com/goliatone/go-formvalues/pkg/widgets"
)

// Definition aliases widgets.Definition so callers can configure widgets from
// the top-level module.
type Definition = widgets.Definition

// Widget aliases widgets.Widget.
type Widget = widgets.Widget

// Result aliases widgets.Result.
type Result = widgets.Result

// Outcome aliases validation.Outcome.
type Outcome = validation.Outcome

// NewRegistry exposes the widget registry constructor with the built-in kinds.
func NewRegistry(options ...widgets.Option) *widgets.Registry {
	return widgets.NewRegistry(options...)
}

// Split converts the separator literal and splits input in one call. The
// returned warning is non-empty when the literal holds an unsupported escape,
// in which case input is not split.
func Split(input, literal string, eachCharacter, omitEmpty bool) ([]string, string, error) {
	sep := separator.Build(literal, eachCharacter)
	s, err := splitter.New(sep, splitter.WithOmitEmpty(omitEmpty))
	if err != nil {
		return nil, sep.Warning, err
	}
	return s.Split(input), sep.Warning, nil
}

// Validate checks tokens against pattern; see validation.Validate.
func Validate(tokens []string, pattern, template string) (Outcome, error) {
	return validation.Validate(tokens, pattern, template)
}

// Parse builds a widget from def and parses text with it. It is the simplest
// entry point for callers that need validated values from a single widget.
func Parse(def Definition, text string, options ...widgets.Option) (Result, error) {
	w, err := widgets.NewRegistry(options...).Build(def)
	if err != nil {
		return Result{}, err
	}
	return w.Parse(text), nil
}

// RenderHTML builds a widget from def and renders its HTML fragment with the
// current text.
func RenderHTML(ctx context.Context, def Definition, current string, options ...render.Option) ([]byte, error) {
	w, err := widgets.NewRegistry().Build(def)
	if err != nil {
		return nil, err
	}
	renderer, err := render.New(options...)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, w, current)
}
