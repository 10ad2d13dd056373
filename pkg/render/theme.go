package render

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// TemplateKey is the theme template entry that overrides the widget template.
const TemplateKey = "formvalues.widget"

// ThemeConfig is the subset of a theme selection the renderer consumes.
type ThemeConfig struct {
	Theme    string
	Variant  string
	Tokens   map[string]string
	Template string
}

// CSSVars maps theme tokens to CSS custom properties.
func (c ThemeConfig) CSSVars() map[string]string {
	if len(c.Tokens) == 0 {
		return nil
	}
	out := make(map[string]string, len(c.Tokens))
	for key, value := range c.Tokens {
		name := strings.TrimSpace(key)
		if name == "" {
			continue
		}
		out["--"+strings.TrimPrefix(name, "--")] = value
	}
	return out
}

// Style renders the CSS custom properties as an inline style declaration
// with keys in sorted order.
func (c ThemeConfig) Style() string {
	vars := c.CSSVars()
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", key, vars[key]))
	}
	return strings.Join(parts, "; ")
}

// themeFromSelection merges base manifest tokens and templates with the
// selected variant; variant entries win.
func themeFromSelection(selection *theme.Selection) *ThemeConfig {
	if selection == nil {
		return nil
	}
	cfg := &ThemeConfig{
		Theme:   selection.Theme,
		Variant: selection.Variant,
		Tokens:  map[string]string{},
	}
	manifest := selection.Manifest
	if manifest == nil {
		return cfg
	}
	for key, value := range manifest.Tokens {
		cfg.Tokens[key] = value
	}
	cfg.Template = manifest.Templates[TemplateKey]
	if variant, ok := manifest.Variants[selection.Variant]; ok {
		for key, value := range variant.Tokens {
			cfg.Tokens[key] = value
		}
		if tpl := variant.Templates[TemplateKey]; tpl != "" {
			cfg.Template = tpl
		}
	}
	return cfg
}
