package cli

// Test Plan:
// 1. "nova analyze <dir> -o <file>" writes a decodable graph JSON file.
// 2. A missing directory surfaces as a command error.
// 3. "nova snippet" demands the language flag.
// 4. Filter mode parsing is validated before any scanning happens.

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tanmay-Kondhekar/Project-Nova/internal/graph"
)

// runCommand executes the root command with args, restoring flag defaults
// afterwards so tests don't leak state into each other.
func runCommand(t *testing.T, args ...string) error {
	t.Helper()
	t.Cleanup(func() {
		analyzeLanguage, analyzeOutput, analyzeSearch = "", "", ""
		analyzeFilter = "all"
		analyzeMaxNodes = 0
		quietFlag = false
	})
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestAnalyzeCommand_WritesGraphFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.py"),
		[]byte("def main():\n    helper()\n\ndef helper():\n    pass\n"), 0o644))
	out := filepath.Join(t.TempDir(), "graph.json")

	require.NoError(t, runCommand(t, "analyze", dir, "--output", out, "--quiet"))

	raw, err := os.ReadFile(out)
	require.NoError(t, err)

	var g graph.ProjectGraph
	require.NoError(t, json.Unmarshal(raw, &g))
	assert.Len(t, g.Nodes, 2)
	assert.Len(t, g.Edges, 1)
	assert.Equal(t, 2, g.Stats.TotalFunctions)
}

func TestAnalyzeCommand_MissingDirectory(t *testing.T) {
	err := runCommand(t, "analyze", "/no/such/project", "--quiet")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to analyze")
}

func TestAnalyzeCommand_RejectsBadFilter(t *testing.T) {
	err := runCommand(t, "analyze", t.TempDir(), "--filter", "private-only", "--quiet")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown filter mode")
}

func TestSnippetCommand_RequiresLanguage(t *testing.T) {
	err := runCommand(t, "snippet", filepath.Join(t.TempDir(), "x.py"))
	require.Error(t, err)
}

func TestMetadataCommand_MissingDirectory(t *testing.T) {
	err := runCommand(t, "metadata", "/no/such/project")
	require.Error(t, err)
}
