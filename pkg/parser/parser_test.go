package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight505/storygen/pkg/component"
)

func readTestFile(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err, "test fixture should be readable")
	return data
}

func TestParseReactTSX(t *testing.T) {
	path := filepath.Join("testdata", "Button.tsx")
	meta, err := Parse(path, readTestFile(t, "Button.tsx"))
	require.NoError(t, err, "Parse should succeed")
	require.NotNil(t, meta)

	assert.Equal(t, "Button", meta.Name)
	assert.Equal(t, component.FrameworkReact, meta.Framework)
	assert.Equal(t, component.TypeButton, meta.ComponentType)
	assert.True(t, meta.HasChildren, "children prop should set HasChildren")
	assert.True(t, meta.ExportsDefault)

	require.Len(t, meta.Props, 4)

	variant := meta.Prop("variant")
	require.NotNil(t, variant)
	assert.Equal(t, component.KindUnion, variant.Type.Kind)
	assert.Equal(t, []string{"primary", "secondary", "danger"}, variant.Type.Values)
	assert.Equal(t, "'primary'", variant.DefaultValue, "destructured default should be captured")
	assert.False(t, variant.Required, "prop with default is not required")

	disabled := meta.Prop("disabled")
	require.NotNil(t, disabled)
	assert.Equal(t, component.KindBoolean, disabled.Type.Kind)
	assert.False(t, disabled.Required)

	onClick := meta.Prop("onClick")
	require.NotNil(t, onClick)
	assert.Equal(t, component.KindFunction, onClick.Type.Kind)
	assert.True(t, onClick.Required)

	children := meta.Prop("children")
	require.NotNil(t, children)
	assert.Equal(t, component.KindRenderable, children.Type.Kind)
}

func TestParseReactNoPropsDeclaration(t *testing.T) {
	path := filepath.Join("testdata", "Card.jsx")
	meta, err := Parse(path, readTestFile(t, "Card.jsx"))
	require.NoError(t, err, "a plain JS component must still parse")
	require.NotNil(t, meta)

	assert.Equal(t, "Card", meta.Name)
	assert.Equal(t, component.TypeCard, meta.ComponentType)
	assert.Empty(t, meta.Props, "no type declaration means no props, not an error")
	assert.True(t, meta.ExportsDefault)
}

func TestParseVueTypedProps(t *testing.T) {
	path := filepath.Join("testdata", "Input.vue")
	meta, err := Parse(path, readTestFile(t, "Input.vue"))
	require.NoError(t, err)
	require.NotNil(t, meta)

	assert.Equal(t, "Input", meta.Name, "Vue component name comes from the file name")
	assert.Equal(t, component.FrameworkVue, meta.Framework)
	assert.Equal(t, component.TypeInput, meta.ComponentType)
	assert.False(t, meta.HasChildren, "no slot in template")

	require.Len(t, meta.Props, 4)

	modelValue := meta.Prop("modelValue")
	require.NotNil(t, modelValue)
	assert.Equal(t, component.KindString, modelValue.Type.Kind)
	assert.True(t, modelValue.Required)

	errProp := meta.Prop("error")
	require.NotNil(t, errProp)
	assert.False(t, errProp.Required, "optional marker should clear required")
}

func TestParseVueRuntimeProps(t *testing.T) {
	path := filepath.Join("testdata", "Badge.vue")
	meta, err := Parse(path, readTestFile(t, "Badge.vue"))
	require.NoError(t, err)
	require.NotNil(t, meta)

	assert.Equal(t, "Badge", meta.Name)
	assert.Equal(t, component.TypeBadge, meta.ComponentType)
	assert.True(t, meta.HasChildren, "slot in template should set HasChildren")

	require.Len(t, meta.Props, 2)

	label := meta.Prop("label")
	require.NotNil(t, label)
	assert.Equal(t, component.KindString, label.Type.Kind)
	assert.True(t, label.Required)

	color := meta.Prop("color")
	require.NotNil(t, color)
	assert.Equal(t, "'primary'", color.DefaultValue)
	assert.False(t, color.Required, "a default always clears required")
}

func TestParseSvelte(t *testing.T) {
	path := filepath.Join("testdata", "Toggle.svelte")
	meta, err := Parse(path, readTestFile(t, "Toggle.svelte"))
	require.NoError(t, err)
	require.NotNil(t, meta)

	assert.Equal(t, "Toggle", meta.Name)
	assert.Equal(t, component.FrameworkSvelte, meta.Framework)
	assert.Equal(t, component.TypeSwitch, meta.ComponentType)
	assert.True(t, meta.HasChildren)

	require.Len(t, meta.Props, 3)

	checked := meta.Prop("checked")
	require.NotNil(t, checked)
	assert.Equal(t, component.KindBoolean, checked.Type.Kind)
	assert.Equal(t, "false", checked.DefaultValue)
	assert.False(t, checked.Required)

	label := meta.Prop("label")
	require.NotNil(t, label)
	assert.Equal(t, component.KindString, label.Type.Kind)
	assert.True(t, label.Required, "export let without initializer is required")
}

func TestParseUnsupportedExtension(t *testing.T) {
	_, err := Parse("README.md", []byte("# readme"))
	require.Error(t, err)

	var unsupported *UnsupportedTypeError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, ".md", unsupported.Ext)
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(filepath.Join("testdata", "DoesNotExist.tsx"))
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}

// A readable file of a supported extension never errors, no matter how
// odd the content is; it degrades to partial metadata.
func TestParseDegradesGracefully(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"garbage.tsx", "%%% not even javascript {{{"},
		{"empty.vue", ""},
		{"binaryish.svelte", "\x00\x01\x02"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			meta, err := Parse(tc.name, []byte(tc.src))
			require.NoError(t, err)
			require.NotNil(t, meta)
			assert.NotEmpty(t, meta.Name, "name falls back to the file stem")
		})
	}
}

func TestFrameworkForPath(t *testing.T) {
	cases := map[string]component.Framework{
		"a/B.tsx":    component.FrameworkReact,
		"a/b.jsx":    component.FrameworkReact,
		"a/b.ts":     component.FrameworkReact,
		"a/b.js":     component.FrameworkReact,
		"a/B.vue":    component.FrameworkVue,
		"a/B.svelte": component.FrameworkSvelte,
	}
	for path, want := range cases {
		fw, ok := FrameworkForPath(path)
		assert.True(t, ok, path)
		assert.Equal(t, want, fw, path)
	}

	_, ok := FrameworkForPath("a/b.css")
	assert.False(t, ok)
}
