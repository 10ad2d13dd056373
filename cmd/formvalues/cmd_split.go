package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formvalues/pkg/separator"
	"github.com/goliatone/go-formvalues/pkg/splitter"
	"github.com/goliatone/go-formvalues/pkg/validation"
)

// separatorFlags mirrors the separator settings of a list widget.
type separatorFlags struct {
	literal   string
	eachChar  bool
	omitEmpty bool
	guess     bool
}

func (f *separatorFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.literal, "separator", "s", `\n`, `Separator characters; \n and \t are understood`)
	cmd.Flags().BoolVar(&f.eachChar, "each-char", false, "Make every character a value")
	cmd.Flags().BoolVar(&f.omitEmpty, "omit-empty", true, "Drop empty values")
	cmd.Flags().BoolVar(&f.guess, "guess", false, "Guess the separator from the input when none splits")
}

func (f *separatorFlags) split(opts *rootOptions, text string) ([]string, error) {
	sep := separator.Build(f.literal, f.eachChar)
	if sep.Warning != "" {
		opts.log().Warn(sep.Warning)
	}
	if f.guess && !sep.Splits() {
		if literal, ok := separator.Guess(text); ok {
			opts.log().Warn(separator.GuessWarning(literal))
			sep = separator.Build(literal, false)
		}
	}
	s, err := splitter.New(sep, splitter.WithOmitEmpty(f.omitEmpty))
	if err != nil {
		return nil, err
	}
	opts.log().Debug("split input",
		"pattern", sep.Pattern,
		"each_char", sep.EachCharacter,
		"omit_empty", f.omitEmpty,
	)
	return s.Split(text), nil
}

func newSplitCmd(opts *rootOptions) *cobra.Command {
	var (
		input inputFlags
		sep   separatorFlags
	)
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split text into values and print them as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			text, err := input.read(cmd)
			if err != nil {
				return err
			}
			values, err := sep.split(opts, text)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), values)
		},
	}
	input.register(cmd)
	sep.register(cmd)
	return cmd
}

func newValidateCmd(opts *rootOptions) *cobra.Command {
	var (
		input        inputFlags
		sep          separatorFlags
		regex        string
		errorMessage string
		single       bool
	)
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Split text and validate every value against a regular expression",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			text, err := input.read(cmd)
			if err != nil {
				return err
			}
			var outcome validation.Outcome
			if single {
				outcome, err = validation.ValidateValue(text, regex, errorMessage)
			} else {
				var values []string
				if values, err = sep.split(opts, text); err != nil {
					return err
				}
				outcome, err = validation.Validate(values, regex, errorMessage)
			}
			if err != nil {
				return err
			}
			if !outcome.Valid {
				return &exitError{code: 1, message: outcome.Message}
			}
			fmt.Fprintln(cmd.OutOrStdout(), "valid")
			return nil
		},
	}
	input.register(cmd)
	sep.register(cmd)
	cmd.Flags().StringVarP(&regex, "regex", "r", "", "Regular expression every value must fully match")
	cmd.Flags().StringVar(&errorMessage, "error-message", "The given input '?' is not valid.", "Failure message; ? is replaced by the value")
	cmd.Flags().BoolVar(&single, "single", false, "Validate the whole input as one value")
	return cmd
}
