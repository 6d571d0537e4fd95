package lang

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the adapter registry:
// - Register every available language and report no warnings
// - Map extensions to the owning adapter (case-insensitive)
// - Detect the project language by extension priority
// - Parse user-facing language tags including aliases
// - Build snippet file names from the primary extension

func readFixture(t *testing.T, lang Language, name string) SourceUnit {
	t.Helper()
	path := filepath.Join("..", "..", "testdata", "code", name)
	src, err := os.ReadFile(path)
	require.NoError(t, err)
	return SourceUnit{Path: path, Language: lang, Source: src}
}

func findFunction(t *testing.T, fns []FunctionRecord, id string) FunctionRecord {
	t.Helper()
	for _, fn := range fns {
		if fn.NodeID() == id {
			return fn
		}
	}
	t.Fatalf("function %q not extracted", id)
	return FunctionRecord{}
}

func hasCall(calls []CallSite, caller, callee string) bool {
	for _, c := range calls {
		if c.Caller == caller && c.Callee == callee {
			return true
		}
	}
	return false
}

func TestRegistry_Defaults(t *testing.T) {
	t.Parallel()

	r := NewRegistry()

	assert.Empty(t, r.Warnings())
	assert.Equal(t, DetectionPriority, r.Languages())
	assert.Contains(t, r.KnownExtensions(), ".tsx")

	a, ok := r.ForExtension(".CPP")
	require.True(t, ok)
	assert.Equal(t, LangCPP, a.Language())

	_, ok = r.ForExtension(".rs")
	assert.False(t, ok)
}

func TestRegistry_Detect(t *testing.T) {
	t.Parallel()

	r := NewRegistry()

	// Test: C++ outranks Python regardless of file counts
	lang, ok := r.Detect(map[string]int{".py": 40, ".cpp": 1})
	require.True(t, ok)
	assert.Equal(t, LangCPP, lang)

	// Test: TypeScript outranks JavaScript
	lang, ok = r.Detect(map[string]int{".js": 10, ".ts": 2})
	require.True(t, ok)
	assert.Equal(t, LangTypeScript, lang)

	// Test: nothing recognizable
	_, ok = r.Detect(map[string]int{".md": 3, ".txt": 1})
	assert.False(t, ok)
}

func TestParseLanguageTag(t *testing.T) {
	t.Parallel()

	for tag, want := range map[string]Language{
		"c++":    LangCPP,
		"CPP":    LangCPP,
		"golang": LangGo,
		"py":     LangPython,
		"ts":     LangTypeScript,
		"js":     LangJavaScript,
		"c":      LangC,
	} {
		got, err := ParseLanguageTag(tag)
		require.NoError(t, err, tag)
		assert.Equal(t, want, got, tag)
	}

	_, err := ParseLanguageTag("cobol")
	assert.Error(t, err)
}

func TestSnippetFileName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "snippet.cpp", SnippetFileName(LangCPP))
	assert.Equal(t, "snippet.py", SnippetFileName(LangPython))
	assert.Equal(t, "snippet.ts", SnippetFileName(LangTypeScript))
}
