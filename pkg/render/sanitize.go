package render

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	markupPolicyOnce sync.Once
	markupPolicy     *bluemonday.Policy
)

// sanitizeMarkup keeps basic formatting in configured help text and drops
// anything unsafe, making it fit for the template "safe" filter.
func sanitizeMarkup(raw string) string {
	if raw == "" {
		return ""
	}
	return markupSanitizer().Sanitize(raw)
}

// escapeMessage escapes a validation message and turns its line breaks into
// <br> elements.
func escapeMessage(raw string) string {
	return strings.ReplaceAll(html.EscapeString(raw), "\n", "<br>")
}

func markupSanitizer() *bluemonday.Policy {
	markupPolicyOnce.Do(func() {
		markupPolicy = bluemonday.UGCPolicy()
	})
	return markupPolicy
}
