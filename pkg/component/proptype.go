package component

import (
	"regexp"
	"strings"
)

var literalValueRe = regexp.MustCompile(`["']([^"']+)["']`)

// DescribeType converts raw type text into a semantic PropType descriptor.
//
// Recognition is ordered: literal unions first (quoted literals, then bare
// `a | b` unions), then callbacks, booleans, numbers, renderable child
// content, strings. Anything else passes through as KindRaw with the text
// preserved. Recognition is deliberately shallow; malformed or exotic type
// text degrades to KindRaw rather than failing.
func DescribeType(raw string) PropType {
	raw = strings.Join(strings.Fields(raw), " ")
	if raw == "" {
		return PropType{Kind: KindRaw, Raw: raw}
	}
	lower := strings.ToLower(raw)

	if strings.Contains(raw, "|") {
		if values := ParseUnionValues(raw); len(values) > 0 {
			return PropType{Kind: KindUnion, Raw: raw, Values: values}
		}
	}

	switch {
	case strings.Contains(raw, "=>") || strings.Contains(lower, "function"):
		return PropType{Kind: KindFunction, Raw: raw}
	case strings.Contains(lower, "boolean") || lower == "bool":
		return PropType{Kind: KindBoolean, Raw: raw}
	case strings.Contains(lower, "number"):
		return PropType{Kind: KindNumber, Raw: raw}
	case isRenderableType(lower):
		return PropType{Kind: KindRenderable, Raw: raw}
	case strings.Contains(lower, "string"):
		return PropType{Kind: KindString, Raw: raw}
	}
	return PropType{Kind: KindRaw, Raw: raw}
}

// ParseUnionValues extracts the literal values of a union type.
// Quoted literals win; otherwise bare `|`-separated parts are used, which
// covers TypeScript enum-member unions. Returns nil when the text is not a
// union.
func ParseUnionValues(raw string) []string {
	if matches := literalValueRe.FindAllStringSubmatch(raw, -1); len(matches) > 0 {
		values := make([]string, 0, len(matches))
		for _, m := range matches {
			values = append(values, m[1])
		}
		return values
	}
	if !strings.Contains(raw, "|") {
		return nil
	}
	// Bare unions (TypeScript enum members) count only when no part is a
	// primitive keyword: `string | undefined` is an optional string, not an
	// enumeration.
	var values []string
	for _, part := range strings.Split(raw, "|") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if primitiveKeywords[strings.ToLower(part)] {
			return nil
		}
		values = append(values, part)
	}
	return values
}

var primitiveKeywords = map[string]bool{
	"string": true, "number": true, "boolean": true, "bigint": true,
	"null": true, "undefined": true, "any": true, "unknown": true,
	"void": true, "never": true, "true": true, "false": true,
}

func isRenderableType(lower string) bool {
	for _, marker := range []string{"reactnode", "reactelement", "jsx.element", "node", "element", "slot", "snippet"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
