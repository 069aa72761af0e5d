package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// ProjectConfig holds the contents of .storygen/config.yaml.
type ProjectConfig struct {
	Version       string   `yaml:"version"`
	Level         string   `yaml:"level"`
	TemplateDir   string   `yaml:"template_dir"`
	Include       []string `yaml:"include"`
	Exclude       []string `yaml:"exclude"`
	Workers       int      `yaml:"workers"`
	InventoryPath string   `yaml:"inventory_path"`
	MCPLogPath    string   `yaml:"mcp_log_path"`
	LogLevel      string   `yaml:"log_level"`
}

// loadProjectConfig reads .storygen/config.yaml from the current directory.
// Returns nil (no error) if the file does not exist.
func loadProjectConfig() (*ProjectConfig, error) {
	data, err := os.ReadFile(".storygen/config.yaml")
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// resolveString applies the fallback chain flag > config > default.
func resolveString(flagValue string, fromConfig func(*ProjectConfig) string, def string) string {
	if flagValue != "" {
		return flagValue
	}
	if cfg, err := loadProjectConfig(); err == nil && cfg != nil {
		if v := fromConfig(cfg); v != "" {
			return v
		}
	}
	return def
}

// resolveLevel returns the story level to use.
func resolveLevel(flagValue string) string {
	return resolveString(flagValue, func(c *ProjectConfig) string { return c.Level }, "full")
}

// resolveTemplateDir returns the template override directory ("" = embedded only).
func resolveTemplateDir(flagValue string) string {
	return resolveString(flagValue, func(c *ProjectConfig) string { return c.TemplateDir }, "")
}

// resolveInventoryPath returns where scan results are persisted.
func resolveInventoryPath(flagValue string) string {
	return resolveString(flagValue, func(c *ProjectConfig) string { return c.InventoryPath }, "")
}

// resolveMCPLogPath returns the MCP tool-call log path ("" = disabled).
func resolveMCPLogPath(flagValue string) string {
	return resolveString(flagValue, func(c *ProjectConfig) string { return c.MCPLogPath }, "")
}

// resolveLogLevel returns the slog level name.
func resolveLogLevel(flagValue string) string {
	return resolveString(flagValue, func(c *ProjectConfig) string { return c.LogLevel }, "")
}

// resolvePatterns merges flag patterns with config patterns; flags win.
func resolvePatterns(flagValues []string, fromConfig func(*ProjectConfig) []string) []string {
	if len(flagValues) > 0 {
		return flagValues
	}
	if cfg, err := loadProjectConfig(); err == nil && cfg != nil {
		return fromConfig(cfg)
	}
	return nil
}

// resolveWorkers returns the worker-pool override (0 = auto).
func resolveWorkers(flagValue int) int {
	if flagValue != 0 {
		return flagValue
	}
	if cfg, err := loadProjectConfig(); err == nil && cfg != nil {
		return cfg.Workers
	}
	return 0
}
