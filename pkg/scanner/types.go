package scanner

import (
	"time"

	"github.com/flight505/storygen/pkg/component"
)

// Options configures project scanning.
type Options struct {
	// Include patterns (doublestar glob syntax). Empty means the default
	// component extensions.
	Include []string

	// Exclude patterns, added to the default exclusions.
	Exclude []string

	// Workers overrides the worker pool size (0 = auto).
	Workers int

	// Progress is called as files finish parsing. May be nil.
	Progress ProgressFunc
}

// ProgressFunc receives scan progress: files done so far, total candidates,
// and the file just processed.
type ProgressFunc func(done, total int, filePath string)

// DefaultOptions returns the recommended scan options.
func DefaultOptions() Options {
	return Options{
		Include: []string{
			"**/*.tsx",
			"**/*.jsx",
			"**/*.ts",
			"**/*.js",
			"**/*.vue",
			"**/*.svelte",
		},
		Exclude: defaultExcludes(),
	}
}

func defaultExcludes() []string {
	return []string{
		"node_modules/**",
		".git/**",
		"dist/**",
		"build/**",
		"coverage/**",
		".next/**",
		".nuxt/**",
		".storybook/**",
		"test/**",
		"tests/**",
		"__tests__/**",
		"**/*.test.*",
		"**/*.spec.*",
		"**/*.stories.*",
		"**/*.d.ts",
	}
}

// FileError pairs a file path with the error it produced.
type FileError struct {
	FilePath string
	Err      error
}

// Stats describes one scan run.
type Stats struct {
	FilesDiscovered int
	FilesParsed     int
	FilesFailed     int
	PropsExtracted  int

	DiscoveryTime time.Duration
	ParseTime     time.Duration
	TotalTime     time.Duration
	WorkerCount   int

	StartTime time.Time
	EndTime   time.Time
}

// Result is the output of a scan: successfully parsed components in
// deterministic (path-sorted) order, per-file errors, and stats.
type Result struct {
	Components []*component.Metadata
	Errors     []FileError
	Stats      Stats
}
