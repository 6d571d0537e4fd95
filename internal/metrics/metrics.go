// Package metrics computes lightweight per-file text statistics: line
// counts and a comment-stripped lexical token count. It is a pure
// computation layer; callers hand it file contents and aggregate the
// results.
package metrics

import (
	"path/filepath"
	"regexp"
	"strings"
)

// FileMetrics is one file's text statistics.
type FileMetrics struct {
	Path      string `json:"path"`
	Language  string `json:"language"`
	SizeBytes int    `json:"size_bytes"`
	Lines     int    `json:"lines"`
	Tokens    int    `json:"tokens"`
}

// Summary aggregates a set of file metrics.
type Summary struct {
	TotalFiles  int            `json:"total_files"`
	TotalLines  int            `json:"total_lines"`
	TotalTokens int            `json:"total_tokens"`
	Languages   map[string]int `json:"languages"`
}

// languageNames maps extensions to display names for the census. Broader
// than the set of analyzable languages on purpose: the census describes the
// whole tree, not just what the call-graph engine can parse.
var languageNames = map[string]string{
	".py":    "Python",
	".js":    "JavaScript",
	".jsx":   "JavaScript",
	".ts":    "TypeScript",
	".tsx":   "TypeScript",
	".go":    "Go",
	".c":     "C",
	".h":     "C",
	".cpp":   "C++",
	".cc":    "C++",
	".cxx":   "C++",
	".hpp":   "C++",
	".hh":    "C++",
	".java":  "Java",
	".cs":    "C#",
	".rs":    "Rust",
	".rb":    "Ruby",
	".php":   "PHP",
	".swift": "Swift",
	".kt":    "Kotlin",
	".scala": "Scala",
}

// LanguageForPath returns the census display name for a file, or "" when
// the extension is not a recognized source language.
func LanguageForPath(path string) string {
	return languageNames[strings.ToLower(filepath.Ext(path))]
}

var (
	tokenPattern      = regexp.MustCompile(`\w+|[{}()\[\];,.]|[=<>!]+|[+\-*/]`)
	lineCommentSlash  = regexp.MustCompile(`(?m)//.*$`)
	lineCommentHash   = regexp.MustCompile(`(?m)#.*$`)
	blockCommentSlash = regexp.MustCompile(`(?s)/\*.*?\*/`)
)

// ForSource computes the metrics for one file. The token count is a lexical
// approximation: comments are stripped by pattern, string contents are not,
// so a comment marker inside a string literal over-strips. Good enough for
// aggregate statistics.
func ForSource(relPath string, source []byte) FileMetrics {
	text := string(source)
	m := FileMetrics{
		Path:      relPath,
		Language:  LanguageForPath(relPath),
		SizeBytes: len(source),
		Lines:     countLines(text),
	}
	m.Tokens = len(tokenPattern.FindAllString(stripComments(relPath, text), -1))
	return m
}

// Summarize rolls a file set up into totals and a per-language file count.
func Summarize(files []FileMetrics) Summary {
	s := Summary{Languages: map[string]int{}}
	for _, f := range files {
		s.TotalFiles++
		s.TotalLines += f.Lines
		s.TotalTokens += f.Tokens
		if f.Language != "" {
			s.Languages[f.Language]++
		}
	}
	return s
}

func countLines(text string) int {
	if text == "" {
		return 0
	}
	n := strings.Count(text, "\n")
	if !strings.HasSuffix(text, "\n") {
		n++
	}
	return n
}

func stripComments(path, text string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".py", ".rb":
		return lineCommentHash.ReplaceAllString(text, "")
	case ".js", ".jsx", ".ts", ".tsx", ".go", ".c", ".h", ".cpp", ".cc",
		".cxx", ".hpp", ".hh", ".java", ".cs", ".rs", ".php", ".swift",
		".kt", ".scala":
		return lineCommentSlash.ReplaceAllString(
			blockCommentSlash.ReplaceAllString(text, ""), "")
	default:
		return text
	}
}
