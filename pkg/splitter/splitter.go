package splitter

import (
	"fmt"
	"regexp"

	"github.com/goliatone/go-formvalues/pkg/separator"
)

// Split breaks input into tokens. With eachCharacter set every rune becomes a
// token. An empty pattern yields the whole input as the only token. Otherwise
// input is split on pattern keeping trailing empty tokens. omitEmpty removes
// zero length tokens while preserving the order of the rest.
//
// The only error is a pattern that fails to compile, which never happens for
// patterns produced by separator.Build.
func Split(input, pattern string, eachCharacter, omitEmpty bool) ([]string, error) {
	if eachCharacter {
		return splitRunes(input, omitEmpty), nil
	}
	if pattern == "" {
		return single(input, omitEmpty), nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("splitter: compile %q: %w", pattern, err)
	}
	return splitRegexp(re, input, omitEmpty), nil
}

// Splitter applies a precompiled separator to many inputs. It is safe for
// concurrent use.
type Splitter struct {
	re            *regexp.Regexp
	eachCharacter bool
	omitEmpty     bool
}

// Option configures a Splitter.
type Option func(*Splitter)

// WithOmitEmpty drops zero length tokens from every result.
func WithOmitEmpty(omit bool) Option {
	return func(s *Splitter) {
		s.omitEmpty = omit
	}
}

// New builds a Splitter from a separator result.
func New(sep separator.Result, options ...Option) (*Splitter, error) {
	s := &Splitter{eachCharacter: sep.EachCharacter}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if !s.eachCharacter && sep.Pattern != "" {
		re, err := regexp.Compile(sep.Pattern)
		if err != nil {
			return nil, fmt.Errorf("splitter: compile %q: %w", sep.Pattern, err)
		}
		s.re = re
	}
	return s, nil
}

// MustNew panics if the splitter cannot be built. Useful for tests.
func MustNew(sep separator.Result, options ...Option) *Splitter {
	s, err := New(sep, options...)
	if err != nil {
		panic(err)
	}
	return s
}

// Split tokenises input.
func (s *Splitter) Split(input string) []string {
	switch {
	case s == nil:
		return single(input, false)
	case s.eachCharacter:
		return splitRunes(input, s.omitEmpty)
	case s.re == nil:
		return single(input, s.omitEmpty)
	default:
		return splitRegexp(s.re, input, s.omitEmpty)
	}
}

// OmitEmpty reports whether empty tokens are dropped.
func (s *Splitter) OmitEmpty() bool {
	return s != nil && s.omitEmpty
}

func single(input string, omitEmpty bool) []string {
	if omitEmpty && input == "" {
		return []string{}
	}
	return []string{input}
}

func splitRunes(input string, omitEmpty bool) []string {
	if input == "" {
		return single(input, omitEmpty)
	}
	out := make([]string, 0, len(input))
	for _, r := range input {
		out = append(out, string(r))
	}
	return out
}

func splitRegexp(re *regexp.Regexp, input string, omitEmpty bool) []string {
	parts := re.Split(input, -1)
	if !omitEmpty {
		return parts
	}
	out := parts[:0]
	for _, part := range parts {
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
