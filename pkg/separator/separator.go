package separator

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedEscape is attached to a Result when the separator literal holds
// a backslash escape other than \n or \t.
var ErrUnsupportedEscape = errors.New("separator: unsupported escape")

// Spec describes how a block of text should be split. When EachCharacter is
// set the literal is ignored.
type Spec struct {
	Literal       string `json:"separator" yaml:"separator"`
	EachCharacter bool   `json:"separateEachCharacter" yaml:"separateEachCharacter"`
}

// Build converts the spec into a Result.
func (s Spec) Build() Result {
	return Build(s.Literal, s.EachCharacter)
}

// Result is the outcome of converting a separator literal into a delimiter
// pattern. An empty Pattern with EachCharacter unset means the whole input is
// a single token.
type Result struct {
	Pattern       string
	EachCharacter bool
	// Warning is a user facing message set when the literal could not be used.
	Warning string
	// Err carries the cause behind Warning, if any.
	Err error
}

// Splits reports whether the result splits input at all.
func (r Result) Splits() bool {
	return r.EachCharacter || r.Pattern != ""
}

// Build turns a user supplied separator literal into an alternation of single
// character patterns. Every rune of the literal is an independent separator,
// so ",;" splits on a comma or a semicolon. Unsupported escapes disable the
// separator and set Warning instead of failing.
func Build(literal string, eachCharacter bool) Result {
	if eachCharacter {
		return Result{EachCharacter: true}
	}
	if literal == "" {
		return Result{}
	}

	runes := []rune(literal)
	parts := make([]string, 0, len(runes))
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch c {
		case '\\':
			if i+1 >= len(runes) {
				parts = append(parts, `\\`)
				continue
			}
			i++
			switch next := runes[i]; next {
			case 'n':
				parts = append(parts, `\n`)
			case 't':
				parts = append(parts, `\t`)
			default:
				err := fmt.Errorf("%w: \\%c", ErrUnsupportedEscape, next)
				return Result{
					Warning: fmt.Sprintf("Unsupported escape sequence \\%c in separator %q; the input is not split.", next, literal),
					Err:     err,
				}
			}
		case '[', '^':
			parts = append(parts, `\`+string(c))
		default:
			parts = append(parts, "["+string(c)+"]")
		}
	}
	return Result{Pattern: strings.Join(parts, "|")}
}
