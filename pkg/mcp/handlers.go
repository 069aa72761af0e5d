package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/flight505/storygen/pkg/component"
	"github.com/flight505/storygen/pkg/inventory"
	"github.com/flight505/storygen/pkg/parser"
	"github.com/flight505/storygen/pkg/scanner"
	"github.com/flight505/storygen/pkg/story"
	"github.com/flight505/storygen/pkg/variants"
)

// jsonResult marshals v as an indented-JSON text result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// parseAndRecord parses a file and, when an inventory is wired, records the
// result for later list_components calls.
func (s *Server) parseAndRecord(path string) (*component.Metadata, []byte, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	meta, err := parser.Parse(path, src)
	if err != nil {
		return nil, nil, err
	}
	if s.inv != nil {
		s.inv.Add(meta, src)
	}
	return meta, src, nil
}

func (s *Server) handleParseComponent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	meta, _, err := s.parseAndRecord(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(meta)
}

func (s *Server) handleInferVariants(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	meta, _, err := s.parseAndRecord(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	vars := variants.Infer(meta)
	return jsonResult(map[string]any{
		"component":      meta.Name,
		"component_type": meta.ComponentType,
		"variants":       vars,
	})
}

func (s *Server) handleGenerateStory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	meta, _, err := s.parseAndRecord(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	emitter := s.emitter
	if lvl := req.GetString("level", ""); lvl != "" {
		level, ok := story.ParseLevel(lvl)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("unknown level %q (want full, standard, basic or minimal)", lvl)), nil
		}
		emitter = emitter.WithLevel(level)
	}

	var vars []variants.Variant
	if raw := req.GetString("variants", ""); raw != "" {
		specs := strings.Split(raw, ";")
		for i := range specs {
			specs[i] = strings.TrimSpace(specs[i])
		}
		parsed, errs := variants.ParseSpecs(specs)
		if len(errs) > 0 {
			msgs := make([]string, len(errs))
			for i, e := range errs {
				msgs[i] = e.Error()
			}
			return mcp.NewToolResultError(strings.Join(msgs, "; ")), nil
		}
		vars = parsed
	} else {
		vars = variants.Infer(meta)
	}

	content, err := emitter.Emit(meta, vars)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if req.GetBool("write", false) {
		outPath := story.DefaultOutputPath(path)
		if err := story.WriteStory(outPath, content); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(map[string]any{
			"written": outPath,
			"bytes":   len(content),
		})
	}
	return mcp.NewToolResultText(content), nil
}

func (s *Server) handleScanProject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root, err := req.RequireString("root")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	opts := scanner.Options{
		Include: splitPatterns(req.GetString("include", "")),
		Exclude: splitPatterns(req.GetString("exclude", "")),
	}

	result, err := s.scanner.Scan(root, opts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if s.inv != nil {
		for _, meta := range result.Components {
			src, rerr := os.ReadFile(meta.FilePath)
			if rerr != nil {
				continue
			}
			s.inv.Add(meta, src)
		}
	}

	type fileError struct {
		File  string `json:"file"`
		Error string `json:"error"`
	}
	errs := make([]fileError, 0, len(result.Errors))
	for _, fe := range result.Errors {
		errs = append(errs, fileError{File: fe.FilePath, Error: fe.Err.Error()})
	}

	return jsonResult(map[string]any{
		"files_discovered": result.Stats.FilesDiscovered,
		"files_parsed":     result.Stats.FilesParsed,
		"files_failed":     result.Stats.FilesFailed,
		"props_extracted":  result.Stats.PropsExtracted,
		"duration_ms":      result.Stats.TotalTime.Milliseconds(),
		"components":       result.Components,
		"errors":           errs,
	})
}

func (s *Server) handleListComponents(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.inv == nil {
		return mcp.NewToolResultError("no inventory configured; run scan_project first"), nil
	}

	filter := inventory.Filter{
		Framework:     component.Framework(req.GetString("framework", "")),
		ComponentType: component.ComponentType(req.GetString("type", "")),
		Keyword:       req.GetString("keyword", ""),
	}
	metas := s.inv.List(filter)

	return jsonResult(map[string]any{
		"count":      len(metas),
		"components": metas,
	})
}

func splitPatterns(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
