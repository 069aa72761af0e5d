// Package variants derives a minimal-but-representative set of prop-value
// combinations from parsed component metadata. Four independent detection
// passes run over the prop set; a fallback "Default" variant guarantees the
// result is never empty.
package variants

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/flight505/storygen/pkg/component"
)

// Priorities order variants in generated output, lowest first.
const (
	PriorityHigh   = 1 // enum-derived and type-specific required states
	PriorityMedium = 2 // size and boolean state variants
	PriorityLow    = 3 // decorative/secondary variants
)

// Variant is one inferred prop-value combination worth exercising.
type Variant struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Args        map[string]any `json:"args"`
	Priority    int            `json:"priority"`
}

// enumAllowedValues maps recognized semantic prop names to their closed
// lists of admissible literal values. Literals extracted from source that
// fall outside the list are skipped, guarding against spurious values from
// ambiguous text extraction. Read-only configuration data.
var enumAllowedValues = map[string][]string{
	"variant":    {"primary", "secondary", "outline", "ghost", "link", "danger", "success", "warning"},
	"color":      {"primary", "secondary", "success", "warning", "danger", "info"},
	"size":       {"small", "medium", "large", "xs", "sm", "md", "lg", "xl"},
	"type":       {"button", "submit", "reset", "text", "email", "password", "number"},
	"appearance": {"filled", "outline", "ghost", "link"},
	"intent":     {"primary", "success", "warning", "danger"},
}

// stateProps is the closed list of boolean props that indicate a component
// state worth its own variant.
var stateProps = []string{"disabled", "loading", "active", "selected", "checked", "error", "readonly"}

// Infer runs all detection passes over the metadata and returns a non-empty
// variant list, stable-sorted by priority ascending. Ties keep detection
// order: enum, size, state, category-specific.
func Infer(meta *component.Metadata) []Variant {
	var out []Variant
	out = append(out, enumVariants(meta.Props)...)
	out = append(out, sizeVariants(meta.Props)...)
	out = append(out, stateVariants(meta.Props)...)
	out = append(out, categoryVariants(meta.ComponentType, meta.Props)...)

	if len(out) == 0 {
		out = append(out, Variant{
			Name:        "Default",
			Description: "Default component state",
			Args:        map[string]any{},
			Priority:    PriorityHigh,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	return out
}

// enumVariants emits one variant per admissible literal of a recognized
// semantic enum prop.
func enumVariants(props []component.PropDefinition) []Variant {
	var out []Variant
	for _, p := range props {
		allowed, ok := enumAllowedValues[p.Name]
		if !ok || !p.Type.IsUnion() {
			continue
		}
		for _, value := range p.Type.Values {
			if len(allowed) > 0 && !contains(allowed, value) {
				continue
			}
			out = append(out, Variant{
				Name:        Capitalize(value),
				Description: fmt.Sprintf("%s: %s", p.Name, value),
				Args:        map[string]any{p.Name: value},
				Priority:    PriorityHigh,
			})
		}
	}
	return out
}

// sizeVariants collapses the small-ish and large-ish literal families into
// one Small and one Large variant. Medium-equivalent literals are skipped on
// purpose: they coincide with baseline rendering and would duplicate it.
func sizeVariants(props []component.PropDefinition) []Variant {
	var out []Variant
	for _, p := range props {
		name := strings.ToLower(p.Name)
		if name != "size" && name != "fontsize" {
			continue
		}
		if !p.Type.IsUnion() {
			continue
		}
		for _, value := range p.Type.Values {
			switch strings.ToLower(value) {
			case "small", "sm", "xs":
				out = append(out, Variant{
					Name:        "Small",
					Description: "Small size variant",
					Args:        map[string]any{p.Name: value},
					Priority:    PriorityMedium,
				})
			case "large", "lg", "xl":
				out = append(out, Variant{
					Name:        "Large",
					Description: "Large size variant",
					Args:        map[string]any{p.Name: value},
					Priority:    PriorityMedium,
				})
			}
		}
	}
	return out
}

// stateVariants emits one variant per boolean state prop, setting just that
// prop to true.
func stateVariants(props []component.PropDefinition) []Variant {
	var out []Variant
	for _, p := range props {
		if p.Type.Kind != component.KindBoolean {
			continue
		}
		if !contains(stateProps, strings.ToLower(p.Name)) {
			continue
		}
		out = append(out, Variant{
			Name:        Capitalize(p.Name),
			Description: fmt.Sprintf("%s state", p.Name),
			Args:        map[string]any{p.Name: true},
			Priority:    PriorityMedium,
		})
	}
	return out
}

// categoryVariants applies fixed per-category rules. The arg keys for the
// modal and input rules are fixed literals regardless of the actual prop
// name that triggered the rule.
func categoryVariants(componentType component.ComponentType, props []component.PropDefinition) []Variant {
	hasAny := func(names ...string) bool {
		for _, p := range props {
			for _, n := range names {
				if strings.EqualFold(p.Name, n) {
					return true
				}
			}
		}
		return false
	}

	var out []Variant
	switch componentType {
	case component.TypeButton:
		if hasAny("icon", "leftIcon", "rightIcon") {
			out = append(out, Variant{
				Name:        "WithIcon",
				Description: "Button with icon",
				Args:        map[string]any{},
				Priority:    PriorityLow,
			})
		}
	case component.TypeInput:
		if hasAny("error", "isError", "hasError") {
			out = append(out, Variant{
				Name:        "WithError",
				Description: "Input with error state",
				Args:        map[string]any{"error": "This field is required"},
				Priority:    PriorityMedium,
			})
		}
	case component.TypeModal:
		out = append(out, Variant{
			Name:        "Open",
			Description: "Modal in open state",
			Args:        map[string]any{"isOpen": true},
			Priority:    PriorityHigh,
		})
	case component.TypeTable:
		out = append(out,
			Variant{
				Name:        "WithData",
				Description: "Table with sample data",
				Args:        map[string]any{},
				Priority:    PriorityHigh,
			},
			Variant{
				Name:        "Empty",
				Description: "Table with no data",
				Args:        map[string]any{},
				Priority:    PriorityMedium,
			},
		)
	}
	return out
}

// Capitalize upper-cases the first rune and lower-cases the rest, so a
// camelCase prop like readOnly names its variant Readonly.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
