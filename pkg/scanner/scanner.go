// Package scanner enumerates candidate component files under a project
// root and parses them in parallel. It is deliberately loose coupling
// around the parser: discovery filters by glob patterns and naming
// heuristics, parse failures are recorded and skipped, and the scan as a
// whole only fails when the root itself cannot be walked.
package scanner

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/flight505/storygen/pkg/parser"
	"github.com/flight505/storygen/pkg/util"
)

// Scanner scans project trees for UI components.
type Scanner struct {
	sources *util.SourceCache
	logger  *slog.Logger
}

// New creates a Scanner. A nil source cache gets a private one.
func New(sources *util.SourceCache, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	if sources == nil {
		sources = util.NewSourceCache(util.SourceCacheConfig{Logger: logger})
	}
	return &Scanner{sources: sources, logger: logger}
}

// Scan walks root, parses every candidate component file, and returns the
// parsed components (path-sorted), per-file errors, and stats.
func (s *Scanner) Scan(root string, opts Options) (*Result, error) {
	start := time.Now()
	result := &Result{Stats: Stats{StartTime: start}}

	if len(opts.Include) == 0 {
		opts.Include = DefaultOptions().Include
	}
	opts.Exclude = append(defaultExcludes(), opts.Exclude...)

	s.logger.Info("starting project scan", "root", root)

	discoveryStart := time.Now()
	files, err := s.discoverFiles(root, opts)
	if err != nil {
		return nil, fmt.Errorf("file discovery failed: %w", err)
	}
	result.Stats.FilesDiscovered = len(files)
	result.Stats.DiscoveryTime = time.Since(discoveryStart)

	s.logger.Info("discovery complete",
		"files_found", len(files),
		"duration_ms", result.Stats.DiscoveryTime.Milliseconds())

	if len(files) > 0 {
		parseStart := time.Now()
		s.parseParallel(files, opts, result)
		result.Stats.ParseTime = time.Since(parseStart)
	}

	sort.Slice(result.Components, func(i, j int) bool {
		return result.Components[i].FilePath < result.Components[j].FilePath
	})
	sort.Slice(result.Errors, func(i, j int) bool {
		return result.Errors[i].FilePath < result.Errors[j].FilePath
	})
	for _, meta := range result.Components {
		result.Stats.PropsExtracted += len(meta.Props)
	}

	result.Stats.EndTime = time.Now()
	result.Stats.TotalTime = time.Since(start)

	s.logger.Info("project scan complete",
		"files_parsed", result.Stats.FilesParsed,
		"files_failed", result.Stats.FilesFailed,
		"props_extracted", result.Stats.PropsExtracted,
		"duration_ms", result.Stats.TotalTime.Milliseconds())
	return result, nil
}

// discoverFiles walks the tree collecting files that match the include
// patterns, dodge the exclude patterns, and look like components.
func (s *Scanner) discoverFiles(root string, opts Options) ([]string, error) {
	for _, pattern := range append(opts.Include, opts.Exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid pattern: %s", pattern)
		}
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.logger.Warn("walk error", "path", path, "error", err)
			return nil
		}

		relPath, rerr := filepath.Rel(root, path)
		if rerr != nil {
			relPath = path
		}
		relPath = filepath.ToSlash(relPath)

		for _, pattern := range opts.Exclude {
			if matched, _ := doublestar.PathMatch(pattern, relPath); matched {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}
		if d.IsDir() {
			return nil
		}

		included := false
		for _, pattern := range opts.Include {
			if matched, _ := doublestar.PathMatch(pattern, relPath); matched {
				included = true
				break
			}
		}
		if !included || !isComponentFile(path) {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// parseParallel feeds discovered files through the worker pool, collecting
// results and errors. Failures are logged and skipped; the scan continues.
func (s *Scanner) parseParallel(files []string, opts Options, result *Result) {
	total := len(files)
	pool := newWorkerPool(opts.Workers, s.sources, s.logger)
	result.Stats.WorkerCount = pool.numWorkers
	pool.Start()

	collected := make(chan struct{})

	// The collector must run before submission: Submit blocks when the
	// jobs channel fills, and nothing would drain results otherwise. It
	// exits once both channels are closed and drained.
	go func() {
		defer close(collected)
		results, errs := pool.Results(), pool.Errors()
		finished := 0
		for results != nil || errs != nil {
			select {
			case res, ok := <-results:
				if !ok {
					results = nil
					continue
				}
				result.Components = append(result.Components, res.Meta)
				result.Stats.FilesParsed++
				finished++
				if opts.Progress != nil {
					opts.Progress(finished, total, res.FilePath)
				}
			case ferr, ok := <-errs:
				if !ok {
					errs = nil
					continue
				}
				result.Errors = append(result.Errors, ferr)
				result.Stats.FilesFailed++
				s.logger.Warn("failed to parse component", "file", ferr.FilePath, "error", ferr.Err)
				finished++
				if opts.Progress != nil {
					opts.Progress(finished, total, ferr.FilePath)
				}
			}
		}
	}()

	for i, file := range files {
		if err := pool.Submit(parseJob{FilePath: file, JobID: i}); err != nil {
			s.logger.Warn("job submission failed", "file", file, "error", err)
			result.Errors = append(result.Errors, FileError{FilePath: file, Err: err})
			result.Stats.FilesFailed++
		}
	}
	pool.FinishSubmitting()
	pool.Stop()
	<-collected
}

// isComponentFile applies the candidate-file heuristics: an uppercase file
// stem, a path mentioning components, or a directory-index file.
func isComponentFile(path string) bool {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if stem == "" {
		return false
	}
	if unicode.IsUpper([]rune(stem)[0]) {
		return true
	}
	if strings.Contains(strings.ToLower(path), "component") {
		return true
	}
	if strings.EqualFold(stem, "index") {
		if _, ok := parser.FrameworkForPath(path); ok {
			return true
		}
	}
	return false
}
