package scanner

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

const buttonSrc = `interface ButtonProps {
  variant: 'primary' | 'secondary';
  disabled?: boolean;
}

export function Button({ variant, disabled }: ButtonProps) {
  return <button disabled={disabled}>{variant}</button>;
}
`

const toggleSrc = `<script lang="ts">
  export let checked: boolean = false;
</script>
<input type="checkbox" bind:checked />
`

func TestScanFindsComponents(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/Button.tsx", buttonSrc)
	writeFile(t, root, "src/widgets/Toggle.svelte", toggleSrc)

	result, err := New(nil, nil).Scan(root, Options{})
	require.NoError(t, err)

	require.Len(t, result.Components, 2)
	// Output is path-sorted, independent of worker completion order.
	assert.Equal(t, "Button", result.Components[0].Name)
	assert.Equal(t, "Toggle", result.Components[1].Name)
	assert.Equal(t, 2, result.Stats.FilesParsed)
	assert.Equal(t, result.Stats.PropsExtracted, len(result.Components[0].Props)+len(result.Components[1].Props))
}

func TestScanAppliesExclusions(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/Button.tsx", buttonSrc)
	writeFile(t, root, "node_modules/lib/Button.tsx", buttonSrc)
	writeFile(t, root, "dist/Button.tsx", buttonSrc)
	writeFile(t, root, "src/Button.test.tsx", buttonSrc)
	writeFile(t, root, "src/Button.stories.tsx", buttonSrc)
	writeFile(t, root, "src/types.d.ts", "export type X = string;")

	result, err := New(nil, nil).Scan(root, Options{})
	require.NoError(t, err)

	require.Len(t, result.Components, 1, "dependency, build, test, story and declaration files are excluded")
	assert.Equal(t, filepath.Join(root, "src/Button.tsx"), result.Components[0].FilePath)
}

func TestScanComponentFileHeuristics(t *testing.T) {
	root := t.TempDir()
	// Uppercase stem, components directory, and directory index all qualify.
	writeFile(t, root, "src/Button.tsx", buttonSrc)
	writeFile(t, root, "src/components/nav.tsx", buttonSrc)
	writeFile(t, root, "src/widgets/index.tsx", buttonSrc)
	// helpers.ts matches no heuristic.
	writeFile(t, root, "src/helpers.ts", "export const x = 1;\n")

	result, err := New(nil, nil).Scan(root, Options{})
	require.NoError(t, err)
	require.Len(t, result.Components, 3)
}

func TestScanContinuesPastUnreadableFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/Button.tsx", buttonSrc)
	writeFile(t, root, "src/Broken.tsx", buttonSrc)
	require.NoError(t, os.Chmod(filepath.Join(root, "src/Broken.tsx"), 0000))
	t.Cleanup(func() { _ = os.Chmod(filepath.Join(root, "src/Broken.tsx"), 0644) })

	if os.Geteuid() == 0 {
		t.Skip("file permissions are not enforced for root")
	}

	result, err := New(nil, nil).Scan(root, Options{})
	require.NoError(t, err, "per-file failures never fail the scan")

	require.Len(t, result.Components, 1)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, filepath.Join(root, "src/Broken.tsx"), result.Errors[0].FilePath)
	assert.Equal(t, 1, result.Stats.FilesFailed)
}

func TestScanMissingRoot(t *testing.T) {
	result, err := New(nil, nil).Scan(filepath.Join(t.TempDir(), "nope"), Options{})
	// WalkDir reports the root error to the callback, which logs and skips;
	// the scan yields an empty result rather than failing outright.
	require.NoError(t, err)
	assert.Empty(t, result.Components)
}

func TestScanInvalidPattern(t *testing.T) {
	_, err := New(nil, nil).Scan(t.TempDir(), Options{Include: []string{"[bad"}})
	require.Error(t, err)
}

func TestScanProgressCallback(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/Button.tsx", buttonSrc)
	writeFile(t, root, "src/Toggle.svelte", toggleSrc)

	var mu sync.Mutex
	var calls int
	opts := Options{
		Progress: func(done, total int, filePath string) {
			mu.Lock()
			defer mu.Unlock()
			calls++
			assert.Equal(t, 2, total)
			assert.NotEmpty(t, filePath)
		},
	}

	_, err := New(nil, nil).Scan(root, opts)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 2, calls, "progress fires once per finished file")
}

func TestIsComponentFile(t *testing.T) {
	assert.True(t, isComponentFile("src/Button.tsx"))
	assert.True(t, isComponentFile("src/components/helper.ts"))
	assert.True(t, isComponentFile("src/widgets/index.vue"))
	assert.False(t, isComponentFile("src/utils.ts"))
	assert.False(t, isComponentFile("src/index.css"))
}

func TestDefaultOptionsCoverSupportedExtensions(t *testing.T) {
	opts := DefaultOptions()
	assert.Len(t, opts.Include, 6)
	for _, pattern := range opts.Include {
		assert.Contains(t, pattern, "**/*.")
	}
}
