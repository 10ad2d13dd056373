package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formvalues/pkg/config"
	"github.com/goliatone/go-formvalues/pkg/openapi"
	"github.com/goliatone/go-formvalues/pkg/prompt"
	"github.com/goliatone/go-formvalues/pkg/render"
	"github.com/goliatone/go-formvalues/pkg/widgets"
)

// sourceFlags selects where widget definitions are loaded from.
type sourceFlags struct {
	configDir   string
	openapiFile string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.configDir, "config", "c", ".", "Directory with JSON/YAML widget files")
	cmd.Flags().StringVar(&f.openapiFile, "openapi", "", "OpenAPI document declaring widgets through x-formgen-widget")
}

func (f *sourceFlags) definitions(ctx context.Context) ([]widgets.Definition, error) {
	if f.openapiFile != "" {
		raw, err := os.ReadFile(f.openapiFile)
		if err != nil {
			return nil, fmt.Errorf("read openapi document: %w", err)
		}
		defs, err := openapi.LoadDefinitions(ctx, raw)
		if err != nil {
			return nil, err
		}
		for _, def := range defs {
			if err := config.ValidateDefinition(def); err != nil {
				return nil, err
			}
		}
		return defs, nil
	}
	store, err := config.LoadFS(os.DirFS(f.configDir))
	if err != nil {
		return nil, err
	}
	return store.Definitions(), nil
}

func (f *sourceFlags) widget(ctx context.Context, opts *rootOptions, name string) (*widgets.Widget, error) {
	defs, err := f.definitions(ctx)
	if err != nil {
		return nil, err
	}
	reg := widgets.NewRegistry(widgets.WithLogger(opts.log()))
	known := make([]string, 0, len(defs))
	for _, def := range defs {
		if def.Name == name {
			opts.log().Debug("widget definition loaded", "widget", name, "kind", def.Kind)
			return reg.Build(def)
		}
		known = append(known, def.Name)
	}
	if len(known) == 0 {
		return nil, fmt.Errorf("widget %q not found: no widgets configured", name)
	}
	return nil, fmt.Errorf("widget %q not found (known: %s)", name, strings.Join(known, ", "))
}

func newWidgetCmd(opts *rootOptions) *cobra.Command {
	var (
		input  inputFlags
		source sourceFlags
	)
	cmd := &cobra.Command{
		Use:   "widget NAME",
		Short: "Parse text with a configured widget and print the result as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := source.widget(cmd.Context(), opts, args[0])
			if err != nil {
				return err
			}
			text, err := input.read(cmd)
			if err != nil {
				return err
			}
			result := w.Parse(text)
			if err := writeJSON(cmd.OutOrStdout(), result); err != nil {
				return err
			}
			if !result.Outcome.Valid {
				return &exitError{code: 1, message: result.Outcome.Message}
			}
			return nil
		},
	}
	input.register(cmd)
	source.register(cmd)
	return cmd
}

func newSchemaCmd(opts *rootOptions) *cobra.Command {
	var (
		source sourceFlags
		format string
	)
	cmd := &cobra.Command{
		Use:   "schema NAME",
		Short: "Print the OpenAPI schema describing a widget's value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := source.widget(cmd.Context(), opts, args[0])
			if err != nil {
				return err
			}
			raw, err := json.Marshal(openapi.Schema(w))
			if err != nil {
				return fmt.Errorf("encode schema: %w", err)
			}
			switch strings.ToLower(format) {
			case "json":
				var out bytes.Buffer
				if err := json.Indent(&out, raw, "", "  "); err != nil {
					return err
				}
				out.WriteByte('\n')
				_, err = cmd.OutOrStdout().Write(out.Bytes())
				return err
			case "yaml", "yml":
				var doc map[string]any
				if err := json.Unmarshal(raw, &doc); err != nil {
					return err
				}
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				if err := enc.Encode(doc); err != nil {
					return err
				}
				return enc.Close()
			default:
				return fmt.Errorf("unsupported format %q (use json or yaml)", format)
			}
		},
	}
	source.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json or yaml")
	return cmd
}

func newRenderCmd(opts *rootOptions) *cobra.Command {
	var (
		source    sourceFlags
		value     string
		themeFile string
		themeName string
		variant   string
	)
	cmd := &cobra.Command{
		Use:   "render NAME",
		Short: "Print the HTML fragment of a configured widget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := source.widget(cmd.Context(), opts, args[0])
			if err != nil {
				return err
			}
			var options []render.Option
			if themeFile != "" {
				selector, err := loadThemeSelector(themeFile)
				if err != nil {
					return err
				}
				options = append(options, render.WithThemeSelector(selector, themeName, variant))
			}
			renderer, err := render.New(options...)
			if err != nil {
				return err
			}
			out, err := renderer.Render(cmd.Context(), w, value)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}
	source.register(cmd)
	cmd.Flags().StringVar(&value, "value", "", "Current widget text (defaults to the configured default)")
	cmd.Flags().StringVar(&themeFile, "theme-file", "", "YAML or JSON theme manifest")
	cmd.Flags().StringVar(&themeName, "theme", "", "Theme name")
	cmd.Flags().StringVar(&variant, "variant", "", "Theme variant")
	return cmd
}

func newPromptCmd(opts *rootOptions) *cobra.Command {
	var (
		source      sourceFlags
		maxAttempts int
		confirm     bool
	)
	cmd := &cobra.Command{
		Use:   "prompt NAME",
		Short: "Interactively collect a value for a configured widget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := source.widget(cmd.Context(), opts, args[0])
			if err != nil {
				return err
			}
			options := []prompt.Option{
				prompt.WithPromptDriver(prompt.NewSurveyDriver(cmd.ErrOrStderr())),
				prompt.WithMaxAttempts(maxAttempts),
				prompt.WithLogger(opts.log()),
			}
			if confirm {
				options = append(options, prompt.WithConfirmation())
			}
			result, err := prompt.New(options...).Collect(cmd.Context(), w)
			if errors.Is(err, prompt.ErrAborted) {
				return &exitError{code: 130, message: "aborted"}
			}
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}
	source.register(cmd)
	cmd.Flags().IntVar(&maxAttempts, "max-attempts", 0, "Give up after this many invalid answers (0 asks until valid)")
	cmd.Flags().BoolVar(&confirm, "confirm", false, "Ask before accepting multiple values")
	return cmd
}
