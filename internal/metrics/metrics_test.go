package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForSource_Python(t *testing.T) {
	t.Parallel()

	src := "# module docs\ndef add(a, b):\n    return a + b\n"
	m := ForSource("calc.py", []byte(src))

	assert.Equal(t, "Python", m.Language)
	assert.Equal(t, 3, m.Lines)
	assert.Equal(t, len(src), m.SizeBytes)
	// def add ( a , b ) : return a + b
	assert.Equal(t, 12, m.Tokens)
}

func TestForSource_StripsBlockComments(t *testing.T) {
	t.Parallel()

	m := ForSource("x.c", []byte("/* one two three */\nint x;\n// four\n"))

	// int x ;
	assert.Equal(t, 3, m.Tokens)
	assert.Equal(t, 3, m.Lines)
}

func TestForSource_EmptyAndUnknown(t *testing.T) {
	t.Parallel()

	m := ForSource("notes.txt", nil)
	assert.Equal(t, "", m.Language)
	assert.Equal(t, 0, m.Lines)
	assert.Equal(t, 0, m.Tokens)
}

func TestCountLines_NoTrailingNewline(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 2, countLines("a\nb"))
	assert.Equal(t, 2, countLines("a\nb\n"))
	assert.Equal(t, 1, countLines("a"))
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	s := Summarize([]FileMetrics{
		{Path: "a.py", Language: "Python", Lines: 10, Tokens: 40},
		{Path: "b.py", Language: "Python", Lines: 5, Tokens: 12},
		{Path: "c.go", Language: "Go", Lines: 7, Tokens: 30},
		{Path: "README.md", Lines: 3, Tokens: 9},
	})

	assert.Equal(t, 4, s.TotalFiles)
	assert.Equal(t, 25, s.TotalLines)
	assert.Equal(t, 91, s.TotalTokens)
	assert.Equal(t, map[string]int{"Python": 2, "Go": 1}, s.Languages)
}
