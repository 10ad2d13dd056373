package prompt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/goliatone/go-formvalues/pkg/widgets"
)

// Option configures a Collector.
type Option func(*Collector)

// WithPromptDriver overrides the prompt driver used by the collector.
func WithPromptDriver(driver PromptDriver) Option {
	return func(c *Collector) {
		if driver != nil {
			c.driver = driver
		}
	}
}

// WithMaxAttempts bounds how often invalid input is asked for again. Zero
// keeps asking until the input is valid or the user aborts.
func WithMaxAttempts(attempts int) Option {
	return func(c *Collector) {
		if attempts >= 0 {
			c.maxAttempts = attempts
		}
	}
}

// WithConfirmation asks the user to accept the parsed values of multi-value
// widgets before returning them.
func WithConfirmation() Option {
	return func(c *Collector) {
		c.confirm = true
	}
}

// WithLogger enables debug logging of each attempt.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Collector) {
		c.logger = logger
	}
}

// Collector asks the user for a widget value until it validates.
type Collector struct {
	driver      PromptDriver
	maxAttempts int
	confirm     bool
	logger      *slog.Logger
}

// New constructs a Collector. The survey driver is used unless another is
// supplied.
func New(options ...Option) *Collector {
	c := &Collector{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.driver == nil {
		c.driver = NewSurveyDriver(nil)
	}
	return c
}

// Collect prompts for the widget value. Value filters offer their options as
// a multi-select, splitting widgets take multi-line text and string inputs a
// single line. Invalid input is reported through Info and asked for again.
func (c *Collector) Collect(ctx context.Context, w *widgets.Widget) (widgets.Result, error) {
	if ctx == nil {
		return widgets.Result{}, errors.New("prompt: context is required")
	}
	if w == nil {
		return widgets.Result{}, errors.New("prompt: widget is nil")
	}

	announced := make(map[string]struct{})
	if err := c.announce(ctx, w.Warnings(), announced); err != nil {
		return widgets.Result{}, err
	}

	rep := w.Representation("")
	current := rep.CurrentValue
	for attempt := 1; ; attempt++ {
		result, err := c.ask(ctx, w, rep, current)
		if err != nil {
			return widgets.Result{}, err
		}
		if err := c.announce(ctx, result.Warnings, announced); err != nil {
			return widgets.Result{}, err
		}
		c.debug(ctx, w, attempt, result)

		if result.Outcome.Valid {
			accepted, err := c.accept(ctx, w, result)
			if err != nil {
				return widgets.Result{}, err
			}
			if accepted {
				return result, nil
			}
		} else if err := c.driver.Info(ctx, result.Outcome.Message); err != nil {
			return widgets.Result{}, err
		}

		if c.maxAttempts > 0 && attempt >= c.maxAttempts {
			return result, fmt.Errorf("%w (widget %s)", ErrTooManyAttempts, w.Name())
		}
		current = widgets.Value{String: strings.Join(result.Values, joinSeparator(rep.Separator)), Values: result.Values}
	}
}

func (c *Collector) ask(ctx context.Context, w *widgets.Widget, rep widgets.Representation, current widgets.Value) (widgets.Result, error) {
	message := rep.Label
	if rep.Required {
		message += " *"
	}

	switch {
	case len(rep.PossibleValues) > 0 && w.Splits():
		selected, err := c.driver.MultiSelect(ctx, SelectConfig{
			Message:  message,
			Options:  rep.PossibleValues,
			Defaults: indicesOf(rep.PossibleValues, current.Values),
			Help:     rep.Description,
			PageSize: rep.NumberVisOptions,
		})
		if err != nil {
			return widgets.Result{}, err
		}
		values := make([]string, 0, len(selected))
		for _, idx := range selected {
			if idx >= 0 && idx < len(rep.PossibleValues) {
				values = append(values, rep.PossibleValues[idx])
			}
		}
		return w.Check(values), nil
	case w.Splits():
		text, err := c.driver.TextArea(ctx, TextAreaConfig{
			Message:   message,
			Default:   current.String,
			Help:      rep.Description,
			Validator: parseValidator(w),
		})
		if err != nil {
			return widgets.Result{}, err
		}
		return w.Parse(text), nil
	default:
		text, err := c.driver.Input(ctx, InputConfig{
			Message:   message,
			Default:   current.String,
			Help:      rep.Description,
			Validator: parseValidator(w),
		})
		if err != nil {
			return widgets.Result{}, err
		}
		return w.Parse(text), nil
	}
}

// parseValidator rejects text the widget would not accept, letting drivers
// re-ask in place before the answer reaches Collect.
func parseValidator(w *widgets.Widget) func(string) error {
	return func(text string) error {
		return w.Parse(text).Err()
	}
}

func (c *Collector) accept(ctx context.Context, w *widgets.Widget, result widgets.Result) (bool, error) {
	if !c.confirm || !w.Splits() {
		return true, nil
	}
	return c.driver.Confirm(ctx, ConfirmConfig{
		Message: fmt.Sprintf("Use %d value(s): %s?", len(result.Values), strings.Join(result.Values, ", ")),
		Default: true,
	})
}

func (c *Collector) announce(ctx context.Context, warnings []string, seen map[string]struct{}) error {
	for _, warning := range warnings {
		if _, ok := seen[warning]; ok {
			continue
		}
		seen[warning] = struct{}{}
		if err := c.driver.Info(ctx, warning); err != nil {
			return err
		}
	}
	return nil
}

func (c *Collector) debug(ctx context.Context, w *widgets.Widget, attempt int, result widgets.Result) {
	if c.logger == nil {
		return
	}
	c.logger.DebugContext(ctx, "prompt attempt",
		slog.String("widget", w.Name()),
		slog.Int("attempt", attempt),
		slog.Int("values", len(result.Values)),
		slog.Bool("valid", result.Outcome.Valid),
	)
}

// joinSeparator returns the text that re-joins values so the widget splits
// them the same way on the next attempt.
func joinSeparator(literal string) string {
	switch {
	case literal == "":
		return "\n"
	case strings.HasPrefix(literal, `\n`):
		return "\n"
	case strings.HasPrefix(literal, `\t`):
		return "\t"
	case strings.HasPrefix(literal, `\`):
		return "\n"
	default:
		r := []rune(literal)
		return string(r[0])
	}
}
