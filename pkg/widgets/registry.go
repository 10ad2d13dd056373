package widgets

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
)

// ErrUnknownKind is returned when a definition names a kind the registry does
// not know about.
var ErrUnknownKind = errors.New("widgets: unknown kind")

// OptionMessage is the fallback template for values that are not among a
// widget's options.
const OptionMessage = "'?' is not one of the possible values."

// Defaults holds the per-kind values applied to unset definition fields.
type Defaults struct {
	// Splits is false for single value widgets; their input is never split.
	Splits       bool
	Separator    string
	OmitEmpty    bool
	ErrorMessage string
	// OptionErrorMessage is the template for values missing from Options.
	OptionErrorMessage string
	VisibleOptions     int
}

// Matcher decides whether a kind should handle a definition that does not
// name one explicitly.
type Matcher func(def Definition) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger makes widgets built by the registry log their warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// Registry stores kind defaults and selects a kind for definitions based on
// explicit names or registered matchers. Higher priority wins; ties fall back
// to registration order.
type Registry struct {
	mu     sync.RWMutex
	rules  []rule
	kinds  map[string]Defaults
	logger *slog.Logger
}

// NewRegistry constructs a registry with the built-in kinds registered.
func NewRegistry(options ...Option) *Registry {
	reg := &Registry{kinds: make(map[string]Defaults)}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(reg)
	}
	reg.registerBuiltins()
	return reg
}

// RegisterKind adds or replaces the defaults for a kind.
func (r *Registry) RegisterKind(name string, defaults Defaults) {
	if r == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.kinds == nil {
		r.kinds = make(map[string]Defaults)
	}
	r.kinds[trimmed] = defaults
}

// Register adds a kind matcher with the provided priority. Callers should
// avoid duplicate names; the latest registration wins during resolution.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Kinds returns the registered kind names in sorted order.
func (r *Registry) Kinds() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.kinds))
	for name := range r.kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Defaults returns the defaults registered for kind.
func (r *Registry) Defaults(kind string) (Defaults, bool) {
	if r == nil {
		return Defaults{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	defaults, ok := r.kinds[strings.TrimSpace(kind)]
	return defaults, ok
}

// Resolve returns the kind for a definition. An explicit Kind is honoured
// before matcher evaluation.
func (r *Registry) Resolve(def Definition) (string, bool) {
	if explicit := strings.TrimSpace(def.Kind); explicit != "" {
		return explicit, true
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return "", false
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(def) {
			return entry.name, true
		}
	}
	return "", false
}

// Build resolves the definition's kind, applies the kind defaults and returns
// a ready to use Widget.
func (r *Registry) Build(def Definition) (*Widget, error) {
	name := strings.TrimSpace(def.Name)
	if name == "" {
		return nil, errors.New("widgets: definition name is required")
	}
	kind, ok := r.Resolve(def)
	if !ok {
		return nil, fmt.Errorf("widgets: %s: cannot resolve a kind", name)
	}
	defaults, ok := r.Defaults(kind)
	if !ok {
		return nil, fmt.Errorf("%w %q (widget %s)", ErrUnknownKind, kind, name)
	}

	resolved := def.Clone()
	resolved.Name = name
	resolved.Kind = kind
	applyDefaults(&resolved, defaults)

	var logger *slog.Logger
	if r != nil {
		logger = r.logger
	}
	return newWidget(resolved, defaults.Splits, logger)
}

// BuildAll builds every definition, stopping at the first error.
func (r *Registry) BuildAll(defs []Definition) ([]*Widget, error) {
	out := make([]*Widget, 0, len(defs))
	for _, def := range defs {
		w, err := r.Build(def)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}

func applyDefaults(def *Definition, defaults Defaults) {
	if !defaults.Splits {
		def.Separator = String("")
		def.SeparateEachCharacter = false
		def.GuessSeparator = false
	} else if def.Separator == nil && !def.GuessSeparator {
		def.Separator = String(defaults.Separator)
	}
	if def.OmitEmpty == nil {
		def.OmitEmpty = Bool(defaults.OmitEmpty)
	}
	if strings.TrimSpace(def.ErrorMessage) == "" {
		def.ErrorMessage = defaults.ErrorMessage
	}
	if len(def.Options) > 0 && strings.TrimSpace(def.OptionErrorMessage) == "" {
		def.OptionErrorMessage = defaults.OptionErrorMessage
		if def.OptionErrorMessage == "" {
			def.OptionErrorMessage = OptionMessage
		}
	}
	if def.VisibleOptions == 0 {
		def.VisibleOptions = defaults.VisibleOptions
	}
	if strings.TrimSpace(def.Label) == "" {
		def.Label = def.Name
	}
}

func (r *Registry) registerBuiltins() {
	r.RegisterKind(KindStringInput, Defaults{
		ErrorMessage: "The given input '?' is not valid.",
	})
	r.RegisterKind(KindListBox, Defaults{
		Splits:         true,
		Separator:      `\n`,
		OmitEmpty:      true,
		ErrorMessage:   "The given input '?' is not valid.",
		VisibleOptions: 5,
	})
	r.RegisterKind(KindListBoxLegacy, Defaults{
		Splits:         true,
		Separator:      `\n`,
		OmitEmpty:      false,
		ErrorMessage:   "Value '?' does not match the required pattern.",
		VisibleOptions: 5,
	})
	r.RegisterKind(KindValueFilter, Defaults{
		Splits:             true,
		Separator:          ",",
		OmitEmpty:          true,
		ErrorMessage:       "The given input '?' is not valid.",
		OptionErrorMessage: OptionMessage,
		VisibleOptions:     10,
	})

	r.Register(KindValueFilter, 90, func(def Definition) bool {
		return len(def.Options) > 0
	})

	r.Register(KindListBox, 80, func(def Definition) bool {
		return def.Separator != nil || def.SeparateEachCharacter || def.GuessSeparator
	})

	r.Register(KindStringInput, 10, func(Definition) bool {
		return true
	})
}
