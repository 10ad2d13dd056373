package openapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formvalues/pkg/widgets"
)

// LoadDefinitions parses an OpenAPI document and returns the widget
// definitions declared on component schema properties through the
// x-formgen-widget extension. A definition without a name takes the property
// name; definitions are sorted by schema then property name.
func LoadDefinitions(ctx context.Context, raw []byte) ([]widgets.Definition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if doc.Components == nil || len(doc.Components.Schemas) == 0 {
		return nil, nil
	}

	schemaNames := make([]string, 0, len(doc.Components.Schemas))
	for name := range doc.Components.Schemas {
		schemaNames = append(schemaNames, name)
	}
	sort.Strings(schemaNames)

	var out []widgets.Definition
	seen := make(map[string]string)
	for _, schemaName := range schemaNames {
		ref := doc.Components.Schemas[schemaName]
		if ref == nil || ref.Value == nil {
			continue
		}
		propNames := make([]string, 0, len(ref.Value.Properties))
		for name := range ref.Value.Properties {
			propNames = append(propNames, name)
		}
		sort.Strings(propNames)

		for _, propName := range propNames {
			prop := ref.Value.Properties[propName]
			if prop == nil || prop.Value == nil {
				continue
			}
			ext, ok := prop.Value.Extensions[ExtensionKey]
			if !ok {
				continue
			}
			def, err := decodeDefinition(ext)
			if err != nil {
				return nil, fmt.Errorf("openapi: %s.%s: %w", schemaName, propName, err)
			}
			if strings.TrimSpace(def.Name) == "" {
				def.Name = propName
			}
			if def.Label == "" {
				def.Label = prop.Value.Title
			}
			if def.Description == "" {
				def.Description = prop.Value.Description
			}
			if def.Regex == "" && prop.Value.Items != nil && prop.Value.Items.Value != nil {
				def.Regex = prop.Value.Items.Value.Pattern
			}
			if prev, exists := seen[def.Name]; exists {
				return nil, fmt.Errorf("openapi: duplicate widget %q (%s.%s, first defined in %s)", def.Name, schemaName, propName, prev)
			}
			seen[def.Name] = schemaName + "." + propName
			out = append(out, def)
		}
	}
	return out, nil
}

func decodeDefinition(value any) (widgets.Definition, error) {
	var def widgets.Definition
	raw, err := json.Marshal(value)
	if err != nil {
		return def, fmt.Errorf("encode extension: %w", err)
	}
	if err := json.Unmarshal(raw, &def); err != nil {
		return def, fmt.Errorf("decode extension: %w", err)
	}
	return def, nil
}
