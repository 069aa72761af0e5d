package story

import (
	"fmt"
	"strings"

	"github.com/flight505/storygen/pkg/component"
)

// InferControl maps a prop to the editing-control descriptor an external
// editing surface should use for it. Rules are ordered; the first match
// wins. Returns false when no control can be inferred at all.
//
// Renderable props get an explicit disabled control rather than nothing:
// such values cannot be round-tripped into a simple literal.
func InferControl(p component.PropDefinition) (string, bool) {
	name := strings.ToLower(p.Name)
	rawType := strings.ToLower(p.Type.Raw)

	// Booleans.
	if p.Type.Kind == component.KindBoolean {
		return "{ control: 'boolean' }", true
	}

	// Numbers, upgraded to a bounded range when the name suggests one.
	if p.Type.Kind == component.KindNumber {
		if nameContainsAny(name, "opacity", "progress", "percent", "ratio") {
			return "{ control: { type: 'range', min: 0, max: 1, step: 0.1 } }", true
		}
		if nameContainsAny(name, "size", "width", "height", "padding", "margin", "gap") {
			return "{ control: { type: 'range', min: 0, max: 100, step: 1 } }", true
		}
		return "{ control: 'number' }", true
	}

	// Colors, by prop name.
	if nameContainsAny(name, "color", "background", "bg", "fill", "stroke") {
		return "{ control: 'color' }", true
	}

	// Dates, by prop name.
	if strings.HasSuffix(name, "date") || strings.HasSuffix(name, "time") || strings.Contains(name, "timestamp") {
		return "{ control: 'date' }", true
	}

	// Object / record / array shaped types.
	if strings.Contains(rawType, "object") || strings.Contains(rawType, "record") ||
		strings.Contains(p.Type.Raw, "{") || strings.Contains(p.Type.Raw, "[]") ||
		strings.Contains(rawType, "array") {
		return "{ control: 'object' }", true
	}

	// File inputs, with an image-accept filter for image-ish names.
	if strings.Contains(rawType, "file") || name == "file" || name == "files" || name == "src" || name == "source" {
		if nameContainsAny(name, "image", "avatar", "photo") {
			return "{ control: { type: 'file', accept: 'image/*' } }", true
		}
		return "{ control: 'file' }", true
	}

	// Enumerated literal unions: radio for low cardinality, select beyond.
	if p.Type.IsUnion() {
		quoted := make([]string, 0, len(p.Type.Values))
		for _, v := range p.Type.Values {
			quoted = append(quoted, "'"+v+"'")
		}
		options := strings.Join(quoted, ", ")
		kind := "select"
		if len(p.Type.Values) <= 4 {
			kind = "radio"
		}
		return fmt.Sprintf("{ options: [%s], control: { type: '%s' } }", options, kind), true
	}

	// Callbacks record an action instead of editing a value.
	if p.Type.Kind == component.KindFunction || strings.HasPrefix(p.Name, "on") {
		return fmt.Sprintf("{ action: '%s' }", p.Name), true
	}

	if p.Type.Kind == component.KindString {
		return "{ control: 'text' }", true
	}

	if p.Type.Kind == component.KindRenderable {
		return "{ control: false }", true
	}

	return "", false
}

func nameContainsAny(name string, hints ...string) bool {
	for _, hint := range hints {
		if strings.Contains(name, hint) {
			return true
		}
	}
	return false
}
