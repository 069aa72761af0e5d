package parser

import (
	"regexp"
	"strings"

	"github.com/flight505/storygen/pkg/component"
)

// reactParser extracts metadata from React/TypeScript sources
// (.tsx, .jsx, .ts, .js).
type reactParser struct{}

func (reactParser) Framework() component.Framework { return component.FrameworkReact }

var (
	reactFuncNameRe       = regexp.MustCompile(`function\s+([A-Z][A-Za-z0-9_]*)`)
	reactConstNameRe      = regexp.MustCompile(`const\s+([A-Z][A-Za-z0-9_]*)\s*[=:]`)
	reactExportFuncNameRe = regexp.MustCompile(`export\s+(?:default\s+)?function\s+([A-Z][A-Za-z0-9_]*)`)

	genericInterfaceRe = regexp.MustCompile(`interface\s+Props\s*\{([^}]+)\}`)
	genericTypeRe      = regexp.MustCompile(`type\s+Props\s*=\s*\{([^}]+)\}`)

	propFieldRe = regexp.MustCompile(`(?m)^\s*(?:readonly\s+)?(\w+)(\??)\s*:\s*([^;\n]+?)[;,]?\s*$`)

	// Union types written one literal per line get joined before field
	// matching.
	unionContinuationRe = regexp.MustCompile(`\n\s*\|`)
)

func (p reactParser) Parse(path string, src []byte) *component.Metadata {
	content := string(src)

	name := p.componentName(content, path)
	props := p.extractProps(content, name)

	hasChildren := false
	for _, prop := range props {
		if prop.Name == "children" {
			hasChildren = true
			break
		}
	}

	return &component.Metadata{
		Name:           name,
		FilePath:       path,
		Framework:      component.FrameworkReact,
		Props:          props,
		ComponentType:  component.Classify(name, props),
		HasChildren:    hasChildren,
		ExportsDefault: strings.Contains(content, "export default"),
	}
}

// componentName tries, in order: a declared function with an uppercase
// identifier, an uppercase const, an exported function. Later rules only
// apply when earlier ones fail; the file's base name is the last resort.
func (reactParser) componentName(content, path string) string {
	for _, re := range []*regexp.Regexp{reactFuncNameRe, reactConstNameRe, reactExportFuncNameRe} {
		if m := re.FindStringSubmatch(content); m != nil {
			return m[1]
		}
	}
	return baseName(path)
}

// extractProps locates the props declaration paired with the component
// (NameProps interface/type, then a generic Props shape) and extracts each
// field. No declaration found means no props, not a failure.
func (p reactParser) extractProps(content, componentName string) []component.PropDefinition {
	block, ok := p.propsBlock(content, componentName)
	if !ok {
		return nil
	}

	block = unionContinuationRe.ReplaceAllString(block, " |")

	var props []component.PropDefinition
	seen := make(map[string]bool)
	for _, m := range propFieldRe.FindAllStringSubmatch(block, -1) {
		name, optional, rawType := m[1], m[2] == "?", strings.TrimSpace(m[3])
		if seen[name] {
			continue
		}
		seen[name] = true
		props = append(props, component.PropDefinition{
			Name:     name,
			Type:     component.DescribeType(rawType),
			Required: !optional,
		})
	}

	p.applyDestructuredDefaults(content, componentName, props)
	return props
}

func (reactParser) propsBlock(content, componentName string) (string, bool) {
	quoted := regexp.QuoteMeta(componentName)
	patterns := []*regexp.Regexp{
		regexp.MustCompile(`interface\s+` + quoted + `Props\s*\{([^}]+)\}`),
		genericInterfaceRe,
		regexp.MustCompile(`type\s+` + quoted + `Props\s*=\s*\{([^}]+)\}`),
		genericTypeRe,
	}
	for _, re := range patterns {
		if m := re.FindStringSubmatch(content); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// applyDestructuredDefaults picks up parameter defaults from the component
// function signature, e.g. `function Button({ variant = 'primary' })`.
// A prop with a default is never required.
func (reactParser) applyDestructuredDefaults(content, componentName string, props []component.PropDefinition) {
	if len(props) == 0 {
		return
	}
	quoted := regexp.QuoteMeta(componentName)
	paramsRe := regexp.MustCompile(`(?:function\s+` + quoted + `|const\s+` + quoted + `\s*=[^(]*)\s*\(\s*\{([^}]*)\}`)
	m := paramsRe.FindStringSubmatch(content)
	if m == nil {
		return
	}
	defaultRe := regexp.MustCompile(`(\w+)\s*=\s*([^,}]+)`)
	defaults := make(map[string]string)
	for _, dm := range defaultRe.FindAllStringSubmatch(m[1], -1) {
		defaults[dm[1]] = strings.TrimSpace(dm[2])
	}
	for i := range props {
		if def, ok := defaults[props[i].Name]; ok {
			props[i].DefaultValue = def
			props[i].Required = false
		}
	}
}
