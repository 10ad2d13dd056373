package formvalues

import (
	"io/fs"

	"github.com/goliatone/go-formvalues/pkg/render"
)

// EmbeddedTemplates exposes the built-in widget templates so callers can reuse
// or extend them without importing the render package directly.
func EmbeddedTemplates() fs.FS {
	return render.Templates()
}
