package parser

import (
	"regexp"
	"strings"

	"github.com/flight505/storygen/pkg/component"
)

// vueParser extracts metadata from Vue 3 single-file components.
// The component name always comes from the file name; Vue SFCs carry no
// in-source component identifier worth trusting.
type vueParser struct{}

func (vueParser) Framework() component.Framework { return component.FrameworkVue }

var (
	definePropsTypedRe   = regexp.MustCompile(`defineProps<\{([^}]+)\}>`)
	definePropsRuntimeRe = regexp.MustCompile(`defineProps\(\{((?:[^{}]|\{[^{}]*\})*)\}\)`)

	vuePropFieldRe = regexp.MustCompile(`(?m)^\s*(\w+)(\??)\s*:\s*([^;,\n]+?)[;,]?\s*$`)

	vueRuntimePropRe = regexp.MustCompile(`(\w+)\s*:\s*\{([^{}]*)\}`)
	vueRuntimeTypeRe = regexp.MustCompile(`type\s*:\s*(\w+)`)
	vueRequiredRe    = regexp.MustCompile(`required\s*:\s*(true|false)`)
	vueDefaultRe     = regexp.MustCompile(`default\s*:\s*([^,}\n]+)`)
)

func (p vueParser) Parse(path string, src []byte) *component.Metadata {
	content := string(src)
	name := baseName(path)
	props := p.extractProps(content)

	return &component.Metadata{
		Name:           name,
		FilePath:       path,
		Framework:      component.FrameworkVue,
		Props:          props,
		ComponentType:  component.Classify(name, props),
		HasChildren:    strings.Contains(content, "<slot"),
		ExportsDefault: true,
	}
}

// extractProps reads the typed defineProps generic first, falling back to a
// runtime defineProps object. Files using neither yield no props.
func (p vueParser) extractProps(content string) []component.PropDefinition {
	if m := definePropsTypedRe.FindStringSubmatch(content); m != nil {
		block := unionContinuationRe.ReplaceAllString(m[1], " |")
		var props []component.PropDefinition
		for _, fm := range vuePropFieldRe.FindAllStringSubmatch(block, -1) {
			props = append(props, component.PropDefinition{
				Name:     fm[1],
				Type:     component.DescribeType(strings.TrimSpace(fm[3])),
				Required: fm[2] != "?",
			})
		}
		if len(props) > 0 {
			return props
		}
	}

	m := definePropsRuntimeRe.FindStringSubmatch(content)
	if m == nil {
		return nil
	}
	var props []component.PropDefinition
	for _, pm := range vueRuntimePropRe.FindAllStringSubmatch(m[1], -1) {
		name, body := pm[1], pm[2]

		prop := component.PropDefinition{Name: name}
		if tm := vueRuntimeTypeRe.FindStringSubmatch(body); tm != nil {
			prop.Type = component.DescribeType(tm[1])
		} else {
			prop.Type = component.PropType{Kind: component.KindRaw}
		}
		if rm := vueRequiredRe.FindStringSubmatch(body); rm != nil {
			prop.Required = rm[1] == "true"
		}
		if dm := vueDefaultRe.FindStringSubmatch(body); dm != nil {
			prop.DefaultValue = strings.TrimSpace(dm[1])
			prop.Required = false
		}
		props = append(props, prop)
	}
	return props
}
