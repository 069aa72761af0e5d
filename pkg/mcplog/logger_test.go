package mcplog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerEmptyPathDisabled(t *testing.T) {
	logger, err := NewLogger("")
	require.NoError(t, err)
	assert.Nil(t, logger, "empty path means logging disabled")
}

func TestWriteAppendsJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tools.jsonl")
	logger, err := NewLogger(path)
	require.NoError(t, err)
	require.NotNil(t, logger)
	defer logger.Close()

	require.NoError(t, logger.Write(LogEntry{Ts: "2026-01-01T00:00:00Z", Tool: "parse_component", DurationMs: 3}))
	require.NoError(t, logger.Write(LogEntry{Ts: "2026-01-01T00:00:01Z", Tool: "generate_story", IsError: true}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2, "one JSON object per line")

	var first LogEntry
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "parse_component", first.Tool)
	assert.Equal(t, int64(3), first.DurationMs)

	var second LogEntry
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.True(t, second.IsError)
}

func TestSanitizeParams(t *testing.T) {
	long := strings.Repeat("x", 200)
	out := SanitizeParams(map[string]any{
		"path":   "src/Button.tsx",
		"source": long,
		"write":  true,
	})

	assert.Equal(t, "src/Button.tsx", out["path"])
	assert.Equal(t, true, out["write"])
	assert.NotContains(t, out, "source", "long strings never land in the log")
	assert.Equal(t, 200, out["source_len"])
}

func TestResponseBytes(t *testing.T) {
	assert.Equal(t, 0, ResponseBytes(nil))

	result := mcp.NewToolResultText("hello")
	assert.Greater(t, ResponseBytes(result), 0)
}
