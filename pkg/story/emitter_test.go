package story

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight505/storygen/pkg/component"
	"github.com/flight505/storygen/pkg/variants"
)

func buttonMetadata() *component.Metadata {
	return &component.Metadata{
		Name:      "Button",
		FilePath:  "src/Button.tsx",
		Framework: component.FrameworkReact,
		Props: []component.PropDefinition{
			{Name: "variant", Type: component.PropType{Kind: component.KindUnion, Raw: "'primary' | 'secondary'", Values: []string{"primary", "secondary"}}},
			{Name: "disabled", Type: component.PropType{Kind: component.KindBoolean, Raw: "boolean"}},
			{Name: "onClick", Type: component.PropType{Kind: component.KindFunction, Raw: "() => void"}},
			{Name: "children", Type: component.PropType{Kind: component.KindRenderable, Raw: "React.ReactNode"}},
		},
		ComponentType:  component.TypeButton,
		HasChildren:    true,
		ExportsDefault: true,
	}
}

func buttonVariants() []variants.Variant {
	return []variants.Variant{
		{Name: "Primary", Description: "variant: primary", Args: map[string]any{"variant": "primary"}, Priority: 1},
		{Name: "Disabled", Description: "disabled state", Args: map[string]any{"disabled": true}, Priority: 2},
	}
}

func TestEmitFullStory(t *testing.T) {
	emitter := NewEmitter(Options{Level: LevelFull})
	content, err := emitter.Emit(buttonMetadata(), buttonVariants())
	require.NoError(t, err)

	assert.Contains(t, content, "import { Button } from './Button';")
	assert.Contains(t, content, "title: 'Components/Button',")
	assert.Contains(t, content, "export const Primary: Story = {")
	assert.Contains(t, content, "variant: 'primary',")
	assert.Contains(t, content, "export const Disabled: Story = {")
	assert.Contains(t, content, "disabled: true,")
	assert.Contains(t, content, "children: 'Button',", "children placeholder is injected for child-rendering components")
	assert.Contains(t, content, "onClick: () => {},", "button with onClick gets a no-op callback in default args")
	assert.Contains(t, content, "canvas.getByRole('button')", "button interaction snippet")
	assert.Contains(t, content, "{ id: 'button-name', enabled: true }", "button a11y rules")
}

func TestEmitIsDeterministic(t *testing.T) {
	emitter := NewEmitter(Options{Level: LevelFull})

	// Multi-key args exercise the sorted serialization path.
	vars := []variants.Variant{
		{Name: "Busy", Args: map[string]any{"z": 1, "a": "x", "m": true}, Priority: 1},
	}

	first, err := emitter.Emit(buttonMetadata(), vars)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := emitter.Emit(buttonMetadata(), vars)
		require.NoError(t, err)
		assert.Equal(t, first, again, "identical inputs must yield byte-identical output")
	}

	idx := strings.Index(first, "a: 'x',")
	require.GreaterOrEqual(t, idx, 0)
	assert.Less(t, idx, strings.Index(first, "m: true,"))
	assert.Less(t, strings.Index(first, "m: true,"), strings.Index(first, "z: 1,"))
}

func TestEmitLeavesNoPlaceholders(t *testing.T) {
	for _, level := range []Level{LevelFull, LevelStandard, LevelBasic, LevelMinimal} {
		emitter := NewEmitter(Options{Level: level})
		content, err := emitter.Emit(buttonMetadata(), buttonVariants())
		require.NoError(t, err, string(level))
		assert.NotRegexp(t, `\{\{[A-Z0-9_]+\}\}`, content, "level %s leaked a placeholder", level)
	}
}

func TestEmitLevelFallsBackToBasic(t *testing.T) {
	meta := buttonMetadata()
	meta.Framework = component.FrameworkVue
	meta.FilePath = "src/Button.vue"

	// No vue-standard template ships; the emitter must fall back to
	// vue-basic instead of failing.
	emitter := NewEmitter(Options{Level: LevelStandard})
	content, err := emitter.Emit(meta, buttonVariants())
	require.NoError(t, err)
	assert.Contains(t, content, "Button")
}

func TestEmitTemplateDirOverride(t *testing.T) {
	dir := t.TempDir()
	custom := "// custom for {{COMPONENT_NAME}}\n{{VARIANT_STORIES}}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "react-full.template"), []byte(custom), 0644))

	emitter := NewEmitter(Options{Level: LevelFull, TemplateDir: dir})
	content, err := emitter.Emit(buttonMetadata(), buttonVariants())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(content, "// custom for Button"), "override directory wins over embedded templates")
}

func TestEmitSkipsChildrenControl(t *testing.T) {
	emitter := NewEmitter(Options{Level: LevelFull})
	content, err := emitter.Emit(buttonMetadata(), buttonVariants())
	require.NoError(t, err)
	assert.NotContains(t, content, "children: {", "children never gets an editing control")
}

func TestDefaultOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("src", "Button.stories.tsx"), DefaultOutputPath(filepath.Join("src", "Button.tsx")))
	assert.Equal(t, filepath.Join("ui", "Input.stories.vue"), DefaultOutputPath(filepath.Join("ui", "Input.vue")))
	assert.Equal(t, "Toggle.stories.svelte", DefaultOutputPath("Toggle.svelte"))
}

func TestWriteStory(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "nested", "Button.stories.tsx")

	require.NoError(t, WriteStory(out, "export default meta;\n"))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "export default meta;\n", string(data))
}

func TestParseLevel(t *testing.T) {
	for _, name := range []string{"full", "standard", "basic", "minimal"} {
		level, ok := ParseLevel(name)
		assert.True(t, ok, name)
		assert.Equal(t, Level(name), level)
	}
	_, ok := ParseLevel("exhaustive")
	assert.False(t, ok)
}
