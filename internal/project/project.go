// Package project detects what kind of codebase a directory holds:
// languages present, declared dependencies, framework, test files, and a
// rendered structure tree, plus aggregate text metrics for the source files.
package project

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Tanmay-Kondhekar/Project-Nova/internal/metrics"
)

// Metadata is the full detection result for one project root.
type Metadata struct {
	Root         string          `json:"root"`
	Languages    []string        `json:"languages"`
	Framework    string          `json:"framework,omitempty"`
	Dependencies []string        `json:"dependencies"`
	TestFiles    []string        `json:"test_files"`
	Tree         string          `json:"tree"`
	Metrics      metrics.Summary `json:"metrics"`
}

// skipDirs mirrors the scanner's vendored/derived-output directory set so
// metadata and analysis describe the same tree.
var skipDirs = map[string]bool{
	"node_modules": true, "vendor": true, ".git": true, ".hg": true,
	".svn": true, "dist": true, "build": true, "out": true, "target": true,
	"__pycache__": true, ".venv": true, "venv": true, ".tox": true,
	".idea": true, ".vscode": true, ".nova": true, "coverage": true,
	".next": true, ".nuxt": true,
}

const treeMaxDepth = 3

// Detect walks rootDir once and builds the metadata. Unreadable files are
// skipped silently; only a missing root is an error.
func Detect(rootDir string) (*Metadata, error) {
	info, err := os.Stat(rootDir)
	if err != nil {
		return nil, fmt.Errorf("project root %s: %w", rootDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project root %s is not a directory", rootDir)
	}

	md := &Metadata{
		Root:         rootDir,
		Dependencies: []string{},
		TestFiles:    []string{},
	}

	var (
		files       []metrics.FileMetrics
		languageSet = map[string]bool{}
		depSet      = map[string]bool{}
	)

	err = filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != rootDir && skipDirs[d.Name()] {
				return fs.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(rootDir, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if l := metrics.LanguageForPath(path); l != "" {
			languageSet[l] = true
			if source, readErr := os.ReadFile(path); readErr == nil {
				files = append(files, metrics.ForSource(rel, source))
			}
		}
		if isTestFile(d.Name()) {
			md.TestFiles = append(md.TestFiles, rel)
		}
		if parse, ok := dependencyParsers[d.Name()]; ok {
			if source, readErr := os.ReadFile(path); readErr == nil {
				for _, dep := range parse(source) {
					depSet[dep] = true
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", rootDir, err)
	}

	for l := range languageSet {
		md.Languages = append(md.Languages, l)
	}
	sort.Strings(md.Languages)
	for dep := range depSet {
		md.Dependencies = append(md.Dependencies, dep)
	}
	sort.Strings(md.Dependencies)
	sort.Strings(md.TestFiles)
	sort.Slice(files, func(a, b int) bool { return files[a].Path < files[b].Path })

	md.Framework = detectFramework(rootDir)
	md.Tree = renderTree(rootDir)
	md.Metrics = metrics.Summarize(files)
	return md, nil
}

var testSuffixes = []string{
	"_test.py", ".test.js", ".spec.js", ".test.ts", ".spec.ts",
	"_test.go", "_test.rb", "_spec.rb", "Test.java",
}

func isTestFile(name string) bool {
	if strings.HasPrefix(name, "test_") &&
		(strings.HasSuffix(name, ".py") || strings.HasSuffix(name, ".rb")) {
		return true
	}
	if strings.HasPrefix(name, "Test") && strings.HasSuffix(name, ".java") {
		return true
	}
	for _, suffix := range testSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// renderTree draws the directory structure down to treeMaxDepth, directories
// before files, skip set applied.
func renderTree(rootDir string) string {
	lines := []string{filepath.Base(rootDir) + "/"}
	lines = append(lines, treeLevel(rootDir, "", 0)...)
	return strings.Join(lines, "\n")
}

func treeLevel(dir, prefix string, depth int) []string {
	if depth > treeMaxDepth {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var kept []fs.DirEntry
	for _, e := range entries {
		if e.IsDir() && skipDirs[e.Name()] {
			continue
		}
		kept = append(kept, e)
	}
	sort.Slice(kept, func(a, b int) bool {
		if kept[a].IsDir() != kept[b].IsDir() {
			return kept[a].IsDir()
		}
		return kept[a].Name() < kept[b].Name()
	})

	var lines []string
	for i, e := range kept {
		connector, childPrefix := "├── ", prefix+"│   "
		if i == len(kept)-1 {
			connector, childPrefix = "└── ", prefix+"    "
		}
		lines = append(lines, prefix+connector+e.Name())
		if e.IsDir() && depth < treeMaxDepth {
			lines = append(lines, treeLevel(filepath.Join(dir, e.Name()), childPrefix, depth+1)...)
		}
	}
	return lines
}
