package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".storygen"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".storygen", "config.yaml"), []byte(content), 0644))
}

func TestLoadProjectConfigMissing(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := loadProjectConfig()
	require.NoError(t, err, "a missing config file is not an error")
	assert.Nil(t, cfg)
}

func TestLoadProjectConfig(t *testing.T) {
	writeConfig(t, `version: "1"
level: basic
template_dir: ./templates
include:
  - "src/**/*.tsx"
exclude:
  - "src/legacy/**"
workers: 8
inventory_path: .storygen/inventory.json
mcp_log_path: .storygen/mcp.jsonl
log_level: debug
`)

	cfg, err := loadProjectConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "basic", cfg.Level)
	assert.Equal(t, "./templates", cfg.TemplateDir)
	assert.Equal(t, []string{"src/**/*.tsx"}, cfg.Include)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, ".storygen/inventory.json", cfg.InventoryPath)
}

func TestResolveChainFlagWins(t *testing.T) {
	writeConfig(t, "level: basic\n")
	assert.Equal(t, "minimal", resolveLevel("minimal"), "an explicit flag beats the config")
	assert.Equal(t, "basic", resolveLevel(""), "empty flag falls back to the config")
}

func TestResolveChainDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	assert.Equal(t, "full", resolveLevel(""))
	assert.Equal(t, "", resolveTemplateDir(""))
	assert.Equal(t, "", resolveMCPLogPath(""))
	assert.Equal(t, 0, resolveWorkers(0))
}

func TestResolveWorkers(t *testing.T) {
	writeConfig(t, "workers: 4\n")
	assert.Equal(t, 9, resolveWorkers(9))
	assert.Equal(t, 4, resolveWorkers(0))
}

func TestResolvePatterns(t *testing.T) {
	writeConfig(t, "include:\n  - \"lib/**/*.vue\"\n")
	fromConfig := func(c *ProjectConfig) []string { return c.Include }

	assert.Equal(t, []string{"a"}, resolvePatterns([]string{"a"}, fromConfig))
	assert.Equal(t, []string{"lib/**/*.vue"}, resolvePatterns(nil, fromConfig))
}
