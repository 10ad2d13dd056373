package widgets

// Built-in widget kinds exposed by the registry.
const (
	KindStringInput   = "string-input"
	KindListBox       = "list-box"
	KindListBoxLegacy = "list-box-legacy"
	KindValueFilter   = "value-filter"
)

// Definition is the user facing configuration of a widget as stored in
// configuration files or OpenAPI extensions. Zero values fall back to the
// defaults registered for the widget kind; pointer fields distinguish "unset"
// from an explicit empty value.
type Definition struct {
	Name                  string   `json:"name" yaml:"name" validate:"required"`
	Kind                  string   `json:"kind,omitempty" yaml:"kind,omitempty"`
	Label                 string   `json:"label,omitempty" yaml:"label,omitempty"`
	Description           string   `json:"description,omitempty" yaml:"description,omitempty"`
	Default               string   `json:"default,omitempty" yaml:"default,omitempty"`
	Separator             *string  `json:"separator,omitempty" yaml:"separator,omitempty"`
	SeparateEachCharacter bool     `json:"separateEachCharacter,omitempty" yaml:"separateEachCharacter,omitempty"`
	OmitEmpty             *bool    `json:"omitEmpty,omitempty" yaml:"omitEmpty,omitempty"`
	GuessSeparator        bool     `json:"guessSeparator,omitempty" yaml:"guessSeparator,omitempty"`
	Regex                 string   `json:"regex,omitempty" yaml:"regex,omitempty" validate:"omitempty,regexp"`
	ErrorMessage          string   `json:"errorMessage,omitempty" yaml:"errorMessage,omitempty"`
	OptionErrorMessage    string   `json:"optionErrorMessage,omitempty" yaml:"optionErrorMessage,omitempty"`
	Options               []string `json:"options,omitempty" yaml:"options,omitempty" validate:"omitempty,unique"`
	VisibleOptions        int      `json:"visibleOptions,omitempty" yaml:"visibleOptions,omitempty" validate:"omitempty,min=1,max=100"`
	Required              bool     `json:"required,omitempty" yaml:"required,omitempty"`
}

// Clone returns a deep copy of the definition.
func (d Definition) Clone() Definition {
	out := d
	if d.Separator != nil {
		sep := *d.Separator
		out.Separator = &sep
	}
	if d.OmitEmpty != nil {
		omit := *d.OmitEmpty
		out.OmitEmpty = &omit
	}
	if len(d.Options) > 0 {
		out.Options = append([]string(nil), d.Options...)
	}
	return out
}

// SeparatorLiteral returns the configured separator or an empty string.
func (d Definition) SeparatorLiteral() string {
	if d.Separator == nil {
		return ""
	}
	return *d.Separator
}

// OmitEmptyValue returns the configured omit-empty flag or false.
func (d Definition) OmitEmptyValue() bool {
	return d.OmitEmpty != nil && *d.OmitEmpty
}

// String returns a pointer to s, handy when building definitions in code.
func String(s string) *string {
	return &s
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}

// Representation is the JSON payload describing a widget to a view, including
// its default and current values.
type Representation struct {
	Name                  string   `json:"name"`
	Kind                  string   `json:"kind"`
	Label                 string   `json:"label"`
	Description           string   `json:"description,omitempty"`
	Required              bool     `json:"required"`
	DefaultValue          Value    `json:"defaultValue"`
	CurrentValue          Value    `json:"currentValue"`
	Separator             string   `json:"separator,omitempty"`
	SeparateEachCharacter bool     `json:"separateEachCharacter"`
	OmitEmpty             bool     `json:"omitEmpty"`
	Regex                 string   `json:"regex,omitempty"`
	ErrorMessage          string   `json:"errorMessage,omitempty"`
	OptionErrorMessage    string   `json:"optionErrorMessage,omitempty"`
	PossibleValues        []string `json:"possibleValues,omitempty"`
	NumberVisOptions      int      `json:"numberVisOptions,omitempty"`
}

// Value is the JSON value object of a widget: the raw text plus the tokens it
// splits into.
type Value struct {
	String string   `json:"string"`
	Values []string `json:"values,omitempty"`
}
