package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateFlagNames(t *testing.T) {
	var opts generateOptions
	fs := generateFlags(&opts)
	require.NoError(t, fs.Parse([]string{
		"-level", "basic",
		"-output", "out/Button.stories.tsx",
		"-dry-run",
		"-variant", "Loading:loading=true",
		"Button.tsx",
	}))

	assert.Equal(t, "basic", opts.level)
	assert.Equal(t, "out/Button.stories.tsx", opts.output)
	assert.True(t, opts.dryRun)
	assert.Equal(t, "Loading:loading=true", opts.variantSpecs)
	assert.Equal(t, []string{"Button.tsx"}, fs.Args())
}

func TestScanFlagNames(t *testing.T) {
	var opts scanOptions
	fs := scanFlags(&opts)
	require.NoError(t, fs.Parse([]string{
		"-exclude", "dist/**",
		"-json",
		"-output", ".storygen/inventory.json",
		"src",
	}))

	assert.Equal(t, "dist/**", opts.exclude)
	assert.True(t, opts.asJSON)
	assert.Equal(t, ".storygen/inventory.json", opts.output)
	assert.Equal(t, []string{"src"}, fs.Args())
}
