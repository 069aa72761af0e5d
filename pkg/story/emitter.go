// Package story renders component metadata and inferred variants into
// Storybook story scaffolding via placeholder templates. Templates are
// embedded per (framework, level) with an optional on-disk override
// directory; substitution is plain string replacement, no template engine.
package story

import (
	"embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/flight505/storygen/pkg/component"
	"github.com/flight505/storygen/pkg/variants"
)

//go:embed templates/*.template
var embeddedTemplates embed.FS

// Level selects how thorough the generated story file is, from most to
// least: full, standard, basic, minimal.
type Level string

const (
	LevelFull     Level = "full"
	LevelStandard Level = "standard"
	LevelBasic    Level = "basic"
	LevelMinimal  Level = "minimal"
)

// ParseLevel validates a level name.
func ParseLevel(s string) (Level, bool) {
	switch Level(s) {
	case LevelFull, LevelStandard, LevelBasic, LevelMinimal:
		return Level(s), true
	}
	return "", false
}

// TemplateNotFoundError reports that neither the requested template nor the
// framework's basic fallback exists. Fatal for that emission.
type TemplateNotFoundError struct {
	Framework component.Framework
	Level     Level
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("no template for framework %q at level %q (basic fallback also missing)", e.Framework, e.Level)
}

// Options configures an Emitter.
type Options struct {
	// Level is the testing depth; defaults to LevelFull.
	Level Level

	// TemplateDir optionally overrides embedded templates with files named
	// <framework>-<level>.template.
	TemplateDir string

	Logger *slog.Logger
}

// Emitter renders story files. Emit is deterministic: identical inputs
// produce byte-identical output.
type Emitter struct {
	level       Level
	templateDir string
	logger      *slog.Logger
}

// NewEmitter creates an emitter with defaults applied.
func NewEmitter(opts Options) *Emitter {
	if opts.Level == "" {
		opts.Level = LevelFull
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Emitter{level: opts.Level, templateDir: opts.TemplateDir, logger: opts.Logger}
}

// WithLevel returns a copy of the emitter rendering at a different level.
func (e *Emitter) WithLevel(level Level) *Emitter {
	clone := *e
	clone.level = level
	return &clone
}

// leftoverPlaceholderRe matches any placeholder the substitution map did not
// cover. Unresolved placeholders must never leak into generated output.
var leftoverPlaceholderRe = regexp.MustCompile(`\{\{[A-Z0-9_]+\}\}`)

// Emit renders the story file content for a component and its variants.
func (e *Emitter) Emit(meta *component.Metadata, vars []variants.Variant) (string, error) {
	tmpl, err := e.loadTemplate(meta.Framework, e.level)
	if err != nil {
		return "", err
	}

	replacer := strings.NewReplacer(
		"{{COMPONENT_NAME}}", meta.Name,
		"{{COMPONENT_PATH}}", meta.FilePath,
		"{{STORY_TITLE}}", "Components/"+meta.Name,
		"{{ARG_TYPES}}", buildArgTypes(meta.Props),
		"{{VARIANT_STORIES}}", buildVariantStories(meta, vars),
		"{{DEFAULT_ARGS}}", buildDefaultArgs(meta),
		"{{INTERACTION_TEST_CODE}}", interactionSnippet(meta.ComponentType),
		"{{A11Y_RULES}}", a11yRules(meta.ComponentType),
		"{{A11Y_TEST_CODE}}", a11ySnippet(meta.ComponentType),
	)
	content := replacer.Replace(tmpl)
	content = leftoverPlaceholderRe.ReplaceAllString(content, "")

	e.logger.Debug("story rendered",
		"component", meta.Name,
		"framework", meta.Framework,
		"level", e.level,
		"variants", len(vars),
		"bytes", len(content))
	return content, nil
}

// loadTemplate resolves the (framework, level) key, consulting the override
// directory first and falling back to the framework's basic template when
// the level-specific one is absent.
func (e *Emitter) loadTemplate(fw component.Framework, level Level) (string, error) {
	for _, lvl := range []Level{level, LevelBasic} {
		name := fmt.Sprintf("%s-%s.template", fw, lvl)

		if e.templateDir != "" {
			data, err := os.ReadFile(filepath.Join(e.templateDir, name))
			if err == nil {
				return string(data), nil
			}
		}
		data, err := embeddedTemplates.ReadFile("templates/" + name)
		if err == nil {
			return string(data), nil
		}
	}
	return "", &TemplateNotFoundError{Framework: fw, Level: level}
}

// buildArgTypes renders one editing-control line per prop. The children
// prop is never editable; props with no inferable control are skipped.
func buildArgTypes(props []component.PropDefinition) string {
	var lines []string
	for _, p := range props {
		if p.Name == "children" {
			continue
		}
		control, ok := InferControl(p)
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("    %s: %s,", p.Name, control))
	}
	return strings.Join(lines, "\n")
}

// buildVariantStories renders one exported story block per variant. A
// placeholder children value is injected for components that render
// children unless the variant already set one.
func buildVariantStories(meta *component.Metadata, vars []variants.Variant) string {
	blocks := make([]string, 0, len(vars))
	for _, v := range vars {
		var args []string
		for _, key := range sortedArgKeys(v.Args) {
			args = append(args, fmt.Sprintf("    %s: %s,", key, FormatArgValue(v.Args[key])))
		}
		if meta.HasChildren {
			if _, ok := v.Args["children"]; !ok {
				args = append(args, fmt.Sprintf("    children: '%s',", meta.Name))
			}
		}
		blocks = append(blocks, fmt.Sprintf("export const %s: Story = {\n  args: {\n%s\n  },\n};", v.Name, strings.Join(args, "\n")))
	}
	return strings.Join(blocks, "\n\n")
}

// buildDefaultArgs renders the shared args block used by interaction and
// accessibility stories: a children placeholder plus a no-op callback for a
// recognized primary action prop.
func buildDefaultArgs(meta *component.Metadata) string {
	var lines []string
	if meta.HasChildren {
		lines = append(lines, fmt.Sprintf("    children: '%s',", meta.Name))
	}
	if meta.ComponentType == component.TypeButton && meta.HasProp("onClick") {
		lines = append(lines, "    onClick: () => {},")
	}
	return strings.Join(lines, "\n")
}

// DefaultOutputPath derives the story file path next to the component:
// Button.tsx → Button.stories.tsx.
func DefaultOutputPath(componentPath string) string {
	ext := filepath.Ext(componentPath)
	stem := strings.TrimSuffix(filepath.Base(componentPath), ext)
	return filepath.Join(filepath.Dir(componentPath), stem+".stories"+ext)
}

// WriteStory writes generated content to path, creating intermediate
// directories. Callers invoke this last, only after generation succeeded.
func WriteStory(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write story file: %w", err)
	}
	return nil
}
