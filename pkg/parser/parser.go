// Package parser extracts component metadata from UI component source files.
//
// Extraction is structural pattern matching, one strategy per framework
// behind a shared interface. There is no grammar and no syntax tree: the
// parser recognizes the declaration shapes that matter (component names,
// props interfaces, defineProps blocks, export let statements) and returns
// partial or empty metadata for anything it cannot recognize. A readable
// file of a supported extension never fails to parse.
package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/flight505/storygen/pkg/component"
)

// UnsupportedTypeError reports a file extension with no registered strategy.
type UnsupportedTypeError struct {
	Path string
	Ext  string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported file type %q: %s", e.Ext, e.Path)
}

// ParseError reports an unreadable file or an internal inconsistency during
// extraction. It carries a diagnostic; the caller decides whether to skip
// (bulk scans) or abort (single-file mode).
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// frameworkParser is the per-framework extraction strategy. Each
// implementation returns the same metadata shape; framework-specific
// fragility stays behind this boundary.
type frameworkParser interface {
	Framework() component.Framework
	Parse(path string, src []byte) *component.Metadata
}

// FrameworkForPath maps a file extension to its framework.
// The mapping is fixed: .tsx/.jsx/.ts/.js → react, .vue → vue,
// .svelte → svelte.
func FrameworkForPath(path string) (component.Framework, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsx", ".jsx", ".ts", ".js":
		return component.FrameworkReact, true
	case ".vue":
		return component.FrameworkVue, true
	case ".svelte":
		return component.FrameworkSvelte, true
	}
	return "", false
}

// strategyFor returns the extraction strategy for a path.
func strategyFor(path string) (frameworkParser, error) {
	fw, ok := FrameworkForPath(path)
	if !ok {
		return nil, &UnsupportedTypeError{Path: path, Ext: filepath.Ext(path)}
	}
	switch fw {
	case component.FrameworkVue:
		return vueParser{}, nil
	case component.FrameworkSvelte:
		return svelteParser{}, nil
	default:
		return reactParser{}, nil
	}
}

// ParseFile reads and parses a component file.
func ParseFile(path string) (*component.Metadata, error) {
	if _, ok := FrameworkForPath(path); !ok {
		return nil, &UnsupportedTypeError{Path: path, Ext: filepath.Ext(path)}
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return Parse(path, src)
}

// Parse extracts metadata from already-read source. Odd but readable input
// yields partial metadata, never an error; an internal panic during
// extraction is converted into a *ParseError.
func Parse(path string, src []byte) (meta *component.Metadata, err error) {
	strategy, serr := strategyFor(path)
	if serr != nil {
		return nil, serr
	}
	defer func() {
		if r := recover(); r != nil {
			meta = nil
			err = &ParseError{Path: path, Err: fmt.Errorf("internal inconsistency: %v", r)}
		}
	}()
	return strategy.Parse(path, src), nil
}

// baseName returns the file name without its extension, the shared name
// fallback for all strategies.
func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
