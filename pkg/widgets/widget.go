package widgets

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/goliatone/go-formvalues/pkg/separator"
	"github.com/goliatone/go-formvalues/pkg/splitter"
	"github.com/goliatone/go-formvalues/pkg/validation"
)

// RequiredMessage is the failure message for required widgets without values.
const RequiredMessage = "Please specify at least one value."

// Result is the outcome of parsing widget input.
type Result struct {
	Values   []string           `json:"values"`
	Warnings []string           `json:"warnings,omitempty"`
	Outcome  validation.Outcome `json:"outcome"`
}

// Err returns the validation failure as an error, or nil.
func (r Result) Err() error {
	return r.Outcome.Err()
}

// Widget is a resolved definition with its splitter and validation pattern
// compiled. It is immutable and safe for concurrent use.
type Widget struct {
	def      Definition
	splits   bool
	sep      separator.Result
	splitter *splitter.Splitter
	pattern  validation.Pattern
	options  map[string]struct{}
	logger   *slog.Logger
}

func newWidget(def Definition, splits bool, logger *slog.Logger) (*Widget, error) {
	pattern, err := validation.Compile(def.Regex)
	if err != nil {
		return nil, fmt.Errorf("widgets: %s: %w", def.Name, err)
	}

	w := &Widget{
		def:     def,
		splits:  splits,
		pattern: pattern,
		logger:  logger,
	}
	if splits {
		w.sep = separator.Build(def.SeparatorLiteral(), def.SeparateEachCharacter)
	}
	w.splitter, err = splitter.New(w.sep, splitter.WithOmitEmpty(def.OmitEmptyValue()))
	if err != nil {
		return nil, fmt.Errorf("widgets: %s: %w", def.Name, err)
	}
	if len(def.Options) > 0 {
		w.options = make(map[string]struct{}, len(def.Options))
		for _, option := range def.Options {
			w.options[option] = struct{}{}
		}
	}
	return w, nil
}

// Name returns the widget name.
func (w *Widget) Name() string {
	return w.def.Name
}

// Kind returns the resolved widget kind.
func (w *Widget) Kind() string {
	return w.def.Kind
}

// Definition returns a copy of the resolved definition.
func (w *Widget) Definition() Definition {
	return w.def.Clone()
}

// Splits reports whether the widget accepts multiple values.
func (w *Widget) Splits() bool {
	return w.splits
}

// Pattern returns the compiled validation pattern.
func (w *Widget) Pattern() validation.Pattern {
	return w.pattern
}

// Warnings returns configuration warnings, such as an unsupported escape in
// the separator.
func (w *Widget) Warnings() []string {
	if w.sep.Warning == "" {
		return nil
	}
	return []string{w.sep.Warning}
}

// Parse splits text into values and validates them.
func (w *Widget) Parse(text string) Result {
	result := Result{Warnings: w.Warnings()}

	if !w.splits {
		result.Values = []string{text}
		result.Outcome = w.checkSingle(text)
		w.logWarnings(result.Warnings)
		return result
	}

	split := w.splitter
	if w.def.GuessSeparator && !w.sep.Splits() {
		if literal, ok := separator.Guess(text); ok {
			guessed, err := splitter.New(separator.Build(literal, false), splitter.WithOmitEmpty(w.def.OmitEmptyValue()))
			if err == nil {
				split = guessed
				result.Warnings = append(result.Warnings, separator.GuessWarning(literal))
			}
		}
	}

	result.Values = split.Split(text)
	result.Outcome = w.check(result.Values)
	w.logWarnings(result.Warnings)
	return result
}

// Check validates values that were collected without splitting, such as
// options picked from a list.
func (w *Widget) Check(values []string) Result {
	result := Result{
		Values:   append([]string{}, values...),
		Warnings: w.Warnings(),
	}
	if w.splits {
		result.Outcome = w.check(result.Values)
		return result
	}
	var text string
	if len(values) > 0 {
		text = values[0]
	}
	result.Values = []string{text}
	result.Outcome = w.checkSingle(text)
	return result
}

func (w *Widget) checkSingle(text string) validation.Outcome {
	if w.def.Required && text == "" {
		return validation.Invalid(1, text, RequiredMessage)
	}
	return w.pattern.CheckValue(text, w.def.ErrorMessage)
}

// check reports the first value that is not among the options or does not
// match the pattern.
func (w *Widget) check(values []string) validation.Outcome {
	if w.def.Required && len(values) == 0 {
		return validation.Invalid(0, "", RequiredMessage)
	}
	for idx, value := range values {
		template := ""
		switch {
		case !w.allowed(value):
			template = w.def.OptionErrorMessage
		case !w.pattern.Matches(value):
			template = w.def.ErrorMessage
		default:
			continue
		}
		msg := fmt.Sprintf("Value %d is not valid:\n%s", idx+1, validation.FormatMessage(template, value))
		return validation.Invalid(idx+1, value, msg)
	}
	return validation.Valid()
}

func (w *Widget) allowed(value string) bool {
	if len(w.options) == 0 {
		return true
	}
	_, ok := w.options[value]
	return ok
}

func (w *Widget) logWarnings(warnings []string) {
	if w.logger == nil {
		return
	}
	for _, warning := range warnings {
		w.logger.LogAttrs(context.Background(), slog.LevelWarn, warning,
			slog.String("widget", w.def.Name),
			slog.String("kind", w.def.Kind),
		)
	}
}

// Representation returns the view payload for the widget with current as the
// current text. An empty current falls back to the definition default.
func (w *Widget) Representation(current string) Representation {
	if current == "" {
		current = w.def.Default
	}
	rep := Representation{
		Name:                  w.def.Name,
		Kind:                  w.def.Kind,
		Label:                 w.def.Label,
		Description:           w.def.Description,
		Required:              w.def.Required,
		DefaultValue:          w.value(w.def.Default),
		CurrentValue:          w.value(current),
		Separator:             w.def.SeparatorLiteral(),
		SeparateEachCharacter: w.def.SeparateEachCharacter,
		OmitEmpty:             w.def.OmitEmptyValue(),
		Regex:                 w.def.Regex,
		ErrorMessage:          w.def.ErrorMessage,
		OptionErrorMessage:    w.def.OptionErrorMessage,
		NumberVisOptions:      w.def.VisibleOptions,
	}
	if len(w.def.Options) > 0 {
		rep.PossibleValues = append([]string(nil), w.def.Options...)
	}
	return rep
}

func (w *Widget) value(text string) Value {
	v := Value{String: text}
	if w.splits {
		v.Values = w.splitter.Split(text)
	}
	return v
}
