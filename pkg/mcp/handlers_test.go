package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight505/storygen/pkg/inventory"
	"github.com/flight505/storygen/pkg/scanner"
	"github.com/flight505/storygen/pkg/story"
)

// --- helpers ---

func testServer() *Server {
	return NewServer(Config{
		Inventory: inventory.New(inventory.Config{}, nil),
		Scanner:   scanner.New(nil, nil),
		Emitter:   story.NewEmitter(story.Options{}),
	})
}

func callTool(t *testing.T, s *Server, req mcp.CallToolRequest) *mcp.CallToolResult {
	t.Helper()
	var handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

	switch req.Params.Name {
	case "parse_component":
		handler = s.handleParseComponent
	case "infer_variants":
		handler = s.handleInferVariants
	case "generate_story":
		handler = s.handleGenerateStory
	case "scan_project":
		handler = s.handleScanProject
	case "list_components":
		handler = s.handleListComponents
	default:
		t.Fatalf("unknown tool: %s", req.Params.Name)
	}

	result, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func makeRequest(toolName string, args map[string]any) mcp.CallToolRequest {
	var arguments any
	if args != nil {
		arguments = args
	}
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      toolName,
			Arguments: arguments,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	textContent, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])
	return textContent.Text
}

func writeButton(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "Button.tsx")
	src := `interface ButtonProps {
  variant: 'primary' | 'secondary';
  disabled?: boolean;
}

export function Button({ variant, disabled }: ButtonProps) {
  return <button disabled={disabled}>{variant}</button>;
}
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))
	return path
}

// --- parse_component ---

func TestHandleParseComponent(t *testing.T) {
	s := testServer()
	path := writeButton(t)

	result := callTool(t, s, makeRequest("parse_component", map[string]any{"path": path}))
	assert.False(t, result.IsError)

	var meta map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &meta))
	assert.Equal(t, "Button", meta["name"])
	assert.Equal(t, "react", meta["framework"])
	assert.Equal(t, "button", meta["component_type"])
}

func TestHandleParseComponentMissingPath(t *testing.T) {
	s := testServer()
	result := callTool(t, s, makeRequest("parse_component", nil))
	assert.True(t, result.IsError)
}

func TestHandleParseComponentUnsupported(t *testing.T) {
	s := testServer()
	dir := t.TempDir()
	path := filepath.Join(dir, "style.css")
	require.NoError(t, os.WriteFile(path, []byte("a{}"), 0644))

	result := callTool(t, s, makeRequest("parse_component", map[string]any{"path": path}))
	assert.True(t, result.IsError)
}

// --- infer_variants ---

func TestHandleInferVariants(t *testing.T) {
	s := testServer()
	path := writeButton(t)

	result := callTool(t, s, makeRequest("infer_variants", map[string]any{"path": path}))
	assert.False(t, result.IsError)

	var out struct {
		Component string `json:"component"`
		Variants  []struct {
			Name     string `json:"name"`
			Priority int    `json:"priority"`
		} `json:"variants"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &out))
	assert.Equal(t, "Button", out.Component)
	require.NotEmpty(t, out.Variants)
	assert.Equal(t, "Primary", out.Variants[0].Name)
}

// --- generate_story ---

func TestHandleGenerateStory(t *testing.T) {
	s := testServer()
	path := writeButton(t)

	result := callTool(t, s, makeRequest("generate_story", map[string]any{"path": path}))
	assert.False(t, result.IsError)

	content := resultText(t, result)
	assert.Contains(t, content, "export const Primary: Story = {")
	assert.NotRegexp(t, `\{\{[A-Z0-9_]+\}\}`, content)
}

func TestHandleGenerateStoryWrite(t *testing.T) {
	s := testServer()
	path := writeButton(t)

	result := callTool(t, s, makeRequest("generate_story", map[string]any{
		"path":  path,
		"write": true,
		"level": "basic",
	}))
	assert.False(t, result.IsError)

	out := story.DefaultOutputPath(path)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Button")
}

func TestHandleGenerateStoryExplicitVariants(t *testing.T) {
	s := testServer()
	path := writeButton(t)

	result := callTool(t, s, makeRequest("generate_story", map[string]any{
		"path":     path,
		"variants": "Loading:loading=true; Tiny:size=sm",
	}))
	assert.False(t, result.IsError)

	content := resultText(t, result)
	assert.Contains(t, content, "export const Loading: Story = {")
	assert.Contains(t, content, "export const Tiny: Story = {")
	assert.NotContains(t, content, "export const Primary", "explicit specs replace inference")
}

func TestHandleGenerateStoryBadLevel(t *testing.T) {
	s := testServer()
	path := writeButton(t)

	result := callTool(t, s, makeRequest("generate_story", map[string]any{
		"path":  path,
		"level": "extreme",
	}))
	assert.True(t, result.IsError)
}

// --- scan_project + list_components ---

func TestHandleScanProjectAndList(t *testing.T) {
	s := testServer()
	root := filepath.Dir(writeButton(t))

	result := callTool(t, s, makeRequest("scan_project", map[string]any{"root": root}))
	assert.False(t, result.IsError)

	var summary struct {
		FilesParsed int `json:"files_parsed"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &summary))
	assert.Equal(t, 1, summary.FilesParsed)

	listResult := callTool(t, s, makeRequest("list_components", map[string]any{"keyword": "but"}))
	assert.False(t, listResult.IsError)

	var listing struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, listResult)), &listing))
	assert.Equal(t, 1, listing.Count)
}

func TestRegisteredToolNames(t *testing.T) {
	names := []string{
		parseComponentTool().Name,
		inferVariantsTool().Name,
		generateStoryTool().Name,
		scanProjectTool().Name,
		listComponentsTool().Name,
	}
	assert.Equal(t, []string{
		"parse_component",
		"infer_variants",
		"generate_story",
		"scan_project",
		"list_components",
	}, names)
}
