package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	verbose bool
	logger  *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "formvalues",
		Short:         "Split and validate multi-value widget input",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelInfo
			if opts.verbose {
				level = slog.LevelDebug
			}
			opts.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		},
	}
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newSplitCmd(opts),
		newValidateCmd(opts),
		newWidgetCmd(opts),
		newSchemaCmd(opts),
		newRenderCmd(opts),
		newPromptCmd(opts),
	)
	return root
}

func (o *rootOptions) log() *slog.Logger {
	if o.logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.logger
}

// inputFlags selects where command input text comes from.
type inputFlags struct {
	text     string
	file     string
	trimLast bool
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.text, "text", "", "Input text (reads --file or stdin when empty)")
	cmd.Flags().StringVar(&f.file, "file", "", "Read input text from a file")
	cmd.Flags().BoolVar(&f.trimLast, "trim-newline", true, "Drop one trailing newline from file or stdin input")
}

func (f *inputFlags) read(cmd *cobra.Command) (string, error) {
	if cmd.Flags().Changed("text") {
		return f.text, nil
	}
	var (
		data []byte
		err  error
	)
	if f.file != "" {
		data, err = os.ReadFile(f.file)
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	text := string(data)
	if f.trimLast {
		text = strings.TrimSuffix(strings.TrimSuffix(text, "\n"), "\r")
	}
	return text, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
