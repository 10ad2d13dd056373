package template

// TemplateRenderer executes a named template with the view data assembled by
// the widget renderer.
type TemplateRenderer interface {
	RenderTemplate(name string, data map[string]any) (string, error)
}
