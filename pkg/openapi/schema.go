package openapi

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formvalues/pkg/widgets"
)

// ExtensionKey is the schema extension carrying a widget definition.
const ExtensionKey = "x-formgen-widget"

// Schema describes the value a widget produces: a string for single value
// widgets, an array of strings otherwise. Validation patterns are anchored so
// they keep their full match meaning under JSON Schema rules.
func Schema(w *widgets.Widget) *openapi3.Schema {
	if w == nil {
		return nil
	}
	def := w.Definition()

	item := openapi3.NewStringSchema()
	if !w.Pattern().Empty() {
		item = item.WithPattern(anchor(def.Regex))
	}
	if len(def.Options) > 0 {
		enum := make([]any, len(def.Options))
		for i, option := range def.Options {
			enum[i] = option
		}
		item = item.WithEnum(enum...)
	}

	var schema *openapi3.Schema
	if w.Splits() {
		schema = openapi3.NewArraySchema().WithItems(item)
		if def.Required {
			schema = schema.WithMinItems(1)
		}
	} else {
		schema = item
		if def.Required {
			schema = schema.WithMinLength(1)
		}
	}

	schema.Title = def.Label
	schema.Description = def.Description
	if def.Default != "" {
		schema.Default = defaultValue(w, def.Default)
	}
	schema.Extensions = map[string]any{
		ExtensionKey: extensionPayload(def),
	}
	return schema
}

// ValidateValues checks widget values against a schema produced by Schema.
func ValidateValues(schema *openapi3.Schema, values []string) error {
	if schema == nil {
		return errors.New("openapi: schema is nil")
	}
	var value any
	if schema.Type != nil && schema.Type.Is(openapi3.TypeArray) {
		items := make([]any, len(values))
		for i, v := range values {
			items[i] = v
		}
		value = items
	} else {
		if len(values) != 1 {
			return fmt.Errorf("openapi: expected a single value, got %d", len(values))
		}
		value = values[0]
	}
	if err := schema.VisitJSON(value); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

func anchor(expr string) string {
	return "^(?:" + expr + ")$"
}

func defaultValue(w *widgets.Widget, text string) any {
	if !w.Splits() {
		return text
	}
	values := w.Representation(text).DefaultValue.Values
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func extensionPayload(def widgets.Definition) map[string]any {
	raw, err := json.Marshal(def)
	if err != nil {
		return nil
	}
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}
