package pongo_test

import (
	"strings"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-formvalues/pkg/render/template/pongo"
)

func newEngine(t *testing.T, files fstest.MapFS) *pongo.Engine {
	t.Helper()
	engine, err := pongo.New(pongo.WithFS(files))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t, fstest.MapFS{
		"hello.tpl": &fstest.MapFile{Data: []byte("Hello {{ user.name }}: {% for tag in tags %}[{{ tag }}]{% endfor %}")},
	})

	data := map[string]any{
		"user": map[string]any{"name": "Ada"},
		"tags": []string{"a", "<b>"},
	}
	for _, name := range []string{"hello", "hello.tpl"} {
		got, err := engine.RenderTemplate(name, data)
		if err != nil {
			t.Fatalf("render %s: %v", name, err)
		}
		if got != "Hello Ada: [a][&lt;b&gt;]" {
			t.Fatalf("unexpected output %q", got)
		}
	}
}

func TestEngine_ConcurrentRender(t *testing.T) {
	engine := newEngine(t, fstest.MapFS{
		"count.tpl": &fstest.MapFile{Data: []byte("{{ n }}")},
	})

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			if _, err := engine.RenderTemplate("count", map[string]any{"n": n}); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("render: %v", err)
	}
}

func TestEngine_SeparatorLabelFilter(t *testing.T) {
	engine := newEngine(t, fstest.MapFS{
		"label.tpl": &fstest.MapFile{Data: []byte("{{ sep|separator_label }}")},
	})

	cases := map[string]string{
		"":    "none",
		",":   ",",
		`\n;`: "new line, ;",
		` \t`: "space, tab",
	}
	for literal, want := range cases {
		got, err := engine.RenderTemplate("label", map[string]any{"sep": literal})
		if err != nil {
			t.Fatalf("render %q: %v", literal, err)
		}
		if got != want {
			t.Fatalf("separator_label(%q) = %q, want %q", literal, got, want)
		}
	}
}

func TestEngine_Errors(t *testing.T) {
	if _, err := pongo.New(); err == nil {
		t.Fatalf("expected error without a template fs")
	}

	engine := newEngine(t, fstest.MapFS{
		"broken.tpl": &fstest.MapFile{Data: []byte("{% if %}")},
	})
	if _, err := engine.RenderTemplate("missing", nil); err == nil || !strings.Contains(err.Error(), "missing.tpl") {
		t.Fatalf("expected missing template error, got %v", err)
	}
	if _, err := engine.RenderTemplate("broken", nil); err == nil {
		t.Fatalf("expected parse error")
	}

	var nilEngine *pongo.Engine
	if _, err := nilEngine.RenderTemplate("hello", nil); err == nil {
		t.Fatalf("expected nil engine error")
	}
}
