// Package validation checks tokens produced by a splitter against an optional
// full match pattern and reports the first offending token with a templated,
// user facing message. Failures are values, not errors: callers decide how to
// present them.
package validation
