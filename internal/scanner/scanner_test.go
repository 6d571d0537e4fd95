package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tanmay-Kondhekar/Project-Nova/internal/config"
	"github.com/Tanmay-Kondhekar/Project-Nova/internal/lang"
)

// Test Plan for Scanner:
// - Detect the project language from the extension census
// - Extract every eligible file and sort results by path
// - Skip configured directory names and record them once
// - Honor a root .gitignore for files and directories
// - Honor ignore glob patterns
// - Enforce the max-file cap with a warning, not an error
// - Respect an explicit language override
// - Fail on a missing or non-directory root
// - Stop between files when the context is canceled

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func newScanner(cfg config.ScannerConfig) *Scanner {
	return New(cfg, lang.NewRegistry())
}

func TestScanner_GoProject(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, map[string]string{
		"a.go":                "package a\n\nfunc A() {}\n",
		"sub/b.go":            "package b\n\nfunc B() {}\n",
		"node_modules/c.go":   "package c\n",
		"README.md":           "# readme\n",
		"assets/logo.min.js":  "function x(){}",
	})

	s := newScanner(config.Default().Scanner)
	res, err := s.Scan(context.Background(), dir, "")
	require.NoError(t, err)

	assert.Equal(t, lang.LangGo, res.Language)
	require.Len(t, res.Extractions, 2)
	assert.Contains(t, res.Extractions[0].File, "a.go")
	assert.Contains(t, res.Extractions[1].File, "b.go")
	assert.Equal(t, 2, res.FilesProcessed)
	assert.Equal(t, []string{"node_modules"}, res.SkippedDirs)
	assert.Empty(t, res.ParseErrors)
}

func TestScanner_Gitignore(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, map[string]string{
		".gitignore":   "secret/\nskipme.go\n",
		"keep.go":      "package keep\n",
		"skipme.go":    "package skipme\n",
		"secret/s.go":  "package secret\n",
	})

	s := newScanner(config.Default().Scanner)
	res, err := s.Scan(context.Background(), dir, "")
	require.NoError(t, err)

	require.Len(t, res.Extractions, 1)
	assert.Contains(t, res.Extractions[0].File, "keep.go")
}

func TestScanner_DetectionPriority(t *testing.T) {
	t.Parallel()

	// one C++ file outranks many Python files
	dir := writeTree(t, map[string]string{
		"one.cpp": "int main() { return 0; }\n",
		"a.py":    "def a():\n    pass\n",
		"b.py":    "def b():\n    pass\n",
	})

	s := newScanner(config.Default().Scanner)
	res, err := s.Scan(context.Background(), dir, "")
	require.NoError(t, err)

	assert.Equal(t, lang.LangCPP, res.Language)
	require.Len(t, res.Extractions, 1)
	assert.Equal(t, 2, res.Extensions[".py"], "census still counts unselected languages")
	require.NotEmpty(t, res.Warnings)
	assert.Contains(t, res.Warnings[len(res.Warnings)-1], "skipping python")
}

func TestScanner_LanguageOverride(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, map[string]string{
		"one.cpp": "int main() { return 0; }\n",
		"a.py":    "def a():\n    pass\n",
	})

	s := newScanner(config.Default().Scanner)
	res, err := s.Scan(context.Background(), dir, lang.LangPython)
	require.NoError(t, err)

	assert.Equal(t, lang.LangPython, res.Language)
	require.Len(t, res.Extractions, 1)
	assert.Contains(t, res.Extractions[0].File, "a.py")
}

func TestScanner_MaxFilesCap(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, map[string]string{
		"a.go": "package a\n",
		"b.go": "package b\n",
		"c.go": "package c\n",
	})

	cfg := config.Default().Scanner
	cfg.MaxFiles = 2
	s := newScanner(cfg)

	res, err := s.Scan(context.Background(), dir, "")
	require.NoError(t, err)

	assert.Len(t, res.Extractions, 2)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "first 2 of 3")
}

func TestScanner_MissingRoot(t *testing.T) {
	t.Parallel()

	s := newScanner(config.Default().Scanner)
	_, err := s.Scan(context.Background(), filepath.Join(t.TempDir(), "nope"), "")
	require.Error(t, err)
}

func TestScanner_CanceledContext(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, map[string]string{"a.go": "package a\n"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := newScanner(config.Default().Scanner)
	_, err := s.Scan(ctx, dir, "")
	require.ErrorIs(t, err, context.Canceled)
}

func TestScanner_EmptyProject(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, map[string]string{"README.md": "# nothing here\n"})

	s := newScanner(config.Default().Scanner)
	res, err := s.Scan(context.Background(), dir, "")
	require.NoError(t, err)

	assert.Empty(t, res.Language)
	assert.Empty(t, res.Extractions)
}
