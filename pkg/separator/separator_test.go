package separator

import (
	"errors"
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuild(t *testing.T) {
	cases := []struct {
		name    string
		literal string
		each    bool
		want    string
	}{
		{name: "empty", literal: "", want: ""},
		{name: "comma", literal: ",", want: "[,]"},
		{name: "comma and semicolon", literal: ",;", want: "[,]|[;]"},
		{name: "newline escape", literal: `\n`, want: `\n`},
		{name: "tab escape", literal: `\t`, want: `\t`},
		{name: "mixed escapes", literal: `\n,\t`, want: `\n|[,]|\t`},
		{name: "trailing backslash", literal: `,\`, want: `[,]|\\`},
		{name: "class specials", literal: "[^]", want: `\[|\^|[]]`},
		{name: "multibyte", literal: "é", want: "[é]"},
		{name: "each character ignores literal", literal: `\q`, each: true, want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Build(tc.literal, tc.each)
			if got.Pattern != tc.want {
				t.Fatalf("pattern mismatch: want %q, got %q", tc.want, got.Pattern)
			}
			if got.EachCharacter != tc.each {
				t.Fatalf("each character mismatch: want %v, got %v", tc.each, got.EachCharacter)
			}
			if got.Warning != "" || got.Err != nil {
				t.Fatalf("unexpected warning %q (%v)", got.Warning, got.Err)
			}
			if tc.want != "" {
				if _, err := regexp.Compile(got.Pattern); err != nil {
					t.Fatalf("pattern does not compile: %v", err)
				}
			}
		})
	}
}

func TestBuild_UnsupportedEscapeDisablesSeparator(t *testing.T) {
	got := Build(`,\q`, false)

	if !errors.Is(got.Err, ErrUnsupportedEscape) {
		t.Fatalf("expected ErrUnsupportedEscape, got %v", got.Err)
	}
	if got.Warning == "" {
		t.Fatalf("expected a warning")
	}

	none := Build("", false)
	got.Warning, got.Err = "", nil
	if diff := cmp.Diff(none, got); diff != "" {
		t.Fatalf("unsupported escape should behave like no separator (-want +got):\n%s", diff)
	}
}

func TestBuild_SpecialCharactersMatchLiterally(t *testing.T) {
	res := Build("[^]", false)
	re := regexp.MustCompile(res.Pattern)

	got := re.Split("a[b^c]d", -1)
	want := []string{"a", "b", "c", "d"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("split mismatch (-want +got):\n%s", diff)
	}
}

func TestSpec_Build(t *testing.T) {
	spec := Spec{Literal: ";", EachCharacter: false}
	if got := spec.Build(); got.Pattern != "[;]" || !got.Splits() {
		t.Fatalf("unexpected result %+v", got)
	}
	if (Result{}).Splits() {
		t.Fatalf("empty result should not split")
	}
}

func TestGuess(t *testing.T) {
	cases := []struct {
		text   string
		want   string
		wantOK bool
	}{
		{text: "a,b,c", want: ",", wantOK: true},
		{text: "a\nb\nc,d", want: `\n`, wantOK: true},
		{text: "a;b|c;d", want: ";", wantOK: true},
		{text: "a\tb", want: `\t`, wantOK: true},
		{text: "a,b;c", want: ",", wantOK: true},
		{text: "plain", want: "", wantOK: false},
	}
	for _, tc := range cases {
		got, ok := Guess(tc.text)
		if got != tc.want || ok != tc.wantOK {
			t.Fatalf("Guess(%q) = %q, %v; want %q, %v", tc.text, got, ok, tc.want, tc.wantOK)
		}
	}
	if msg := GuessWarning(","); msg != `No separator configured, auto-guessing separator ",".` {
		t.Fatalf("unexpected warning %q", msg)
	}
}
