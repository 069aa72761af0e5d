package parser

import (
	"regexp"
	"strings"

	"github.com/flight505/storygen/pkg/component"
)

// svelteParser extracts metadata from Svelte components. Props are
// `export let` declarations; a declaration with an initializer is optional.
type svelteParser struct{}

func (svelteParser) Framework() component.Framework { return component.FrameworkSvelte }

var svelteExportLetRe = regexp.MustCompile(`(?m)export\s+let\s+(\w+)(?:\s*:\s*([^=;\n]+?))?(?:\s*=\s*([^;\n]+?))?\s*;?\s*$`)

func (p svelteParser) Parse(path string, src []byte) *component.Metadata {
	content := string(src)
	name := baseName(path)
	props := p.extractProps(content)

	return &component.Metadata{
		Name:           name,
		FilePath:       path,
		Framework:      component.FrameworkSvelte,
		Props:          props,
		ComponentType:  component.Classify(name, props),
		HasChildren:    strings.Contains(content, "<slot"),
		ExportsDefault: true,
	}
}

func (svelteParser) extractProps(content string) []component.PropDefinition {
	var props []component.PropDefinition
	seen := make(map[string]bool)
	for _, m := range svelteExportLetRe.FindAllStringSubmatch(content, -1) {
		name := m[1]
		if seen[name] {
			continue
		}
		seen[name] = true

		rawType := strings.TrimSpace(m[2])
		if rawType == "" {
			rawType = "any"
		}
		def := strings.TrimSpace(m[3])

		props = append(props, component.PropDefinition{
			Name:         name,
			Type:         component.DescribeType(rawType),
			Required:     def == "",
			DefaultValue: def,
		})
	}
	return props
}
