package render

import (
	"context"
	"errors"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formvalues/pkg/widgets"
)

func buildWidget(t *testing.T, def widgets.Definition) *widgets.Widget {
	t.Helper()
	w, err := widgets.NewRegistry().Build(def)
	if err != nil {
		t.Fatalf("build widget: %v", err)
	}
	return w
}

func TestRender_ListBox(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	w := buildWidget(t, widgets.Definition{
		Name:        "tags",
		Label:       "Tags",
		Description: `Use <em>short</em> tags<script>alert(1)</script>`,
		Kind:        widgets.KindListBox,
		Separator:   widgets.String(`\n,`),
		Regex:       "[a-z &;]+",
		Required:    true,
	})

	out, err := r.Render(context.Background(), w, "alpha,<script>alert(1)</script>beta\na & b")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)

	for _, fragment := range []string{
		`data-widget="tags"`,
		`<span class="required">*</span>`,
		`<p class="description">Use <em>short</em> tags</p>`,
		`<textarea id="fv-tags" name="tags" rows="5">`,
		"Separator: new line, ,",
		"<li>alpha</li>",
		"<li>&lt;script&gt;alert(1)&lt;/script&gt;beta</li>",
		"<li>a &amp; b</li>",
	} {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected %q in output:\n%s", fragment, html)
		}
	}
	if strings.Contains(html, "<script") {
		t.Fatalf("script markup leaked into output:\n%s", html)
	}
}

func TestRender_KeepsMarkupLikeValues(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	w := buildWidget(t, widgets.Definition{Name: "ops", Kind: widgets.KindListBox})

	out, err := r.Render(context.Background(), w, "<none>\nx<y>z")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	for _, fragment := range []string{
		`rows="5">&lt;none&gt;` + "\n" + `x&lt;y&gt;z</textarea>`,
		"<li>&lt;none&gt;</li><li>x&lt;y&gt;z</li>",
	} {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected %q in output:\n%s", fragment, html)
		}
	}
}

func TestRender_ValidationErrorAndWarnings(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	w := buildWidget(t, widgets.Definition{
		Name:      "codes",
		Kind:      widgets.KindListBox,
		Separator: widgets.String(`,\q`),
		Regex:     `\d+`,
	})

	out, err := r.Render(context.Background(), w, "12,ab")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, `<p class="warning">`) {
		t.Fatalf("expected separator warning:\n%s", html)
	}
	if !strings.Contains(html, `<p class="error">Value 1 is not valid:<br>`) {
		t.Fatalf("expected validation error:\n%s", html)
	}
}

func TestRender_StringInput(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	w := buildWidget(t, widgets.Definition{Name: "title", Default: "Hello"})

	out, err := r.Render(context.Background(), w, "")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, `<input type="text" id="fv-title" name="title" value="Hello">`) {
		t.Fatalf("expected text input with default value:\n%s", html)
	}
	if strings.Contains(html, "<textarea") {
		t.Fatalf("string input should not render a textarea:\n%s", html)
	}
}

func TestRender_ThemeTokensAndTemplateOverride(t *testing.T) {
	manifest := &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand":  "#123456",
			"radius": "4px",
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"brand": "#654321",
				},
			},
		},
	}
	selector := &stubThemeSelector{selection: &theme.Selection{
		Theme:    "acme",
		Variant:  "dark",
		Manifest: manifest,
	}}

	r, err := New(WithThemeSelector(selector, "acme", "dark"))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	w := buildWidget(t, widgets.Definition{Name: "title"})

	out, err := r.Render(context.Background(), w, "x")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), `style="--brand: #654321; --radius: 4px"`) {
		t.Fatalf("expected variant tokens as css vars:\n%s", out)
	}
	if len(selector.calls) != 1 || selector.calls[0].name != "acme" || selector.calls[0].variant != "dark" {
		t.Fatalf("unexpected selector calls: %+v", selector.calls)
	}

	manifest.Variants["dark"] = theme.Variant{
		Templates: map[string]string{TemplateKey: "themes/acme/widget"},
	}
	engine := &captureEngine{}
	r, err = New(WithThemeSelector(selector, "acme", "dark"), WithTemplateRenderer(engine))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if _, err := r.Render(context.Background(), w, "x"); err != nil {
		t.Fatalf("render: %v", err)
	}
	if engine.name != "themes/acme/widget" {
		t.Fatalf("expected theme template override, got %q", engine.name)
	}
}

func TestRender_Errors(t *testing.T) {
	selector := &stubThemeSelector{err: errors.New("boom")}
	r, err := New(WithThemeSelector(selector, "missing", ""))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	w := buildWidget(t, widgets.Definition{Name: "title"})

	if _, err := r.Render(context.Background(), w, ""); err == nil {
		t.Fatalf("expected theme selection error")
	}
	if _, err := r.Render(context.Background(), nil, ""); err == nil {
		t.Fatalf("expected nil widget error")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Render(ctx, w, ""); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}

type selectCall struct {
	name    string
	variant string
}

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
	calls     []selectCall
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, selectCall{name: name, variant: variant})
	if s.err != nil {
		return nil, s.err
	}
	return s.selection, nil
}

type captureEngine struct {
	name string
	data map[string]any
}

func (c *captureEngine) RenderTemplate(name string, data map[string]any) (string, error) {
	c.name = name
	c.data = data
	return "<div></div>", nil
}
