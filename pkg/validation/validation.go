package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidPattern is returned when a user supplied validation pattern does
// not compile.
var ErrInvalidPattern = errors.New("validation: invalid pattern")

// Placeholder is replaced by the offending value in error templates.
const Placeholder = "?"

// Outcome captures the result of validating a list of tokens. Index is 1-based
// and only set when Valid is false.
type Outcome struct {
	Valid   bool   `json:"valid"`
	Index   int    `json:"index,omitempty"`
	Value   string `json:"value,omitempty"`
	Message string `json:"message,omitempty"`
}

// Err returns the outcome as an error, or nil when valid.
func (o Outcome) Err() error {
	if o.Valid {
		return nil
	}
	return &ValueError{Index: o.Index, Value: o.Value, Message: o.Message}
}

// ValueError reports the first token that failed validation.
type ValueError struct {
	Index   int
	Value   string
	Message string
}

func (e *ValueError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// Valid is the outcome for input that passed every check.
func Valid() Outcome {
	return Outcome{Valid: true}
}

// Invalid builds a failing outcome with a preformatted message.
func Invalid(index int, value, message string) Outcome {
	return Outcome{Index: index, Value: value, Message: message}
}

// Pattern is a compiled full match validation pattern. The zero value accepts
// everything.
type Pattern struct {
	source string
	re     *regexp.Regexp
}

// Compile anchors expr so that it must match an entire value. An empty expr
// yields a Pattern that accepts everything.
func Compile(expr string) (Pattern, error) {
	if expr == "" {
		return Pattern{}, nil
	}
	re, err := regexp.Compile(`^(?:` + expr + `)$`)
	if err != nil {
		return Pattern{}, fmt.Errorf("%w %q: %v", ErrInvalidPattern, expr, err)
	}
	return Pattern{source: expr, re: re}, nil
}

// MustCompile panics if expr does not compile. Useful for tests.
func MustCompile(expr string) Pattern {
	p, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the expression the pattern was compiled from.
func (p Pattern) String() string {
	return p.source
}

// Empty reports whether the pattern accepts everything.
func (p Pattern) Empty() bool {
	return p.re == nil
}

// Matches reports whether value matches the whole pattern.
func (p Pattern) Matches(value string) bool {
	return p.re == nil || p.re.MatchString(value)
}

// Check validates tokens in order and reports the first failure.
func (p Pattern) Check(tokens []string, template string) Outcome {
	if p.re == nil {
		return Valid()
	}
	for idx, token := range tokens {
		if p.re.MatchString(token) {
			continue
		}
		return Invalid(idx+1, token, fmt.Sprintf("Value %d is not valid:\n%s", idx+1, FormatMessage(template, token)))
	}
	return Valid()
}

// CheckValue validates a single value. The failure message is the template
// alone, without an index prefix.
func (p Pattern) CheckValue(value, template string) Outcome {
	if p.Matches(value) {
		return Valid()
	}
	return Invalid(1, value, FormatMessage(template, value))
}

// Validate checks each token against pattern. An empty pattern always yields a
// valid outcome. The message of a failing outcome is prefixed with the 1-based
// position of the offending token, and every "?" in template is replaced by
// the token text.
func Validate(tokens []string, pattern, template string) (Outcome, error) {
	p, err := Compile(pattern)
	if err != nil {
		return Outcome{}, err
	}
	return p.Check(tokens, template), nil
}

// ValidateValue is Validate for single value widgets.
func ValidateValue(value, pattern, template string) (Outcome, error) {
	p, err := Compile(pattern)
	if err != nil {
		return Outcome{}, err
	}
	return p.CheckValue(value, template), nil
}

// FormatMessage replaces every placeholder in template with value. The value
// is inserted literally.
func FormatMessage(template, value string) string {
	return strings.ReplaceAll(template, Placeholder, value)
}
