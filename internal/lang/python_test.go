package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the Python adapter:
// - Extract classes and qualify their methods as Class::name
// - Treat leading-underscore names as private (dunders included)
// - Recognize @staticmethod and @classmethod decorators
// - Detect async def functions
// - Reduce attribute calls (self.x.y()) to the attribute name
// - Filter builtin calls out of the call list
// - Record imports from both import and from-import statements

func TestPythonAdapter_Extract(t *testing.T) {
	t.Parallel()

	a, err := NewPythonAdapter()
	require.NoError(t, err)

	ext, err := a.Extract(readFixture(t, LangPython, "python/service.py"))
	require.NoError(t, err)
	require.NotNil(t, ext)

	// 4 methods on UserService plus normalize and fetch_all
	assert.Len(t, ext.Functions, 6)

	fetch := findFunction(t, ext.Functions, "UserService::fetch")
	assert.Equal(t, "UserService", fetch.OwnerClass)
	assert.Equal(t, 11, fetch.Line)
	assert.False(t, fetch.Modifiers.IsPrivate)

	decorate := findFunction(t, ext.Functions, "UserService::_decorate")
	assert.True(t, decorate.Modifiers.IsPrivate)

	init := findFunction(t, ext.Functions, "UserService::__init__")
	assert.True(t, init.Modifiers.IsPrivate)

	version := findFunction(t, ext.Functions, "UserService::version")
	assert.True(t, version.Modifiers.IsStatic)
	assert.Equal(t, 19, version.Line, "line of the def, not the decorator")

	fetchAll := findFunction(t, ext.Functions, "fetch_all")
	assert.True(t, fetchAll.Modifiers.IsAsync)
	assert.Equal(t, 27, fetchAll.Line)
}

func TestPythonAdapter_Calls(t *testing.T) {
	t.Parallel()

	a, err := NewPythonAdapter()
	require.NoError(t, err)

	ext, err := a.Extract(readFixture(t, LangPython, "python/service.py"))
	require.NoError(t, err)

	assert.True(t, hasCall(ext.Calls, "UserService::fetch", "load"))
	assert.True(t, hasCall(ext.Calls, "UserService::fetch", "_decorate"))
	assert.True(t, hasCall(ext.Calls, "UserService::_decorate", "normalize"))
	assert.True(t, hasCall(ext.Calls, "fetch_all", "fetch"))

	// range() is a builtin and must be filtered
	for _, c := range ext.Calls {
		assert.NotEqual(t, "range", c.Callee)
	}
}

func TestPythonAdapter_ClassesAndImports(t *testing.T) {
	t.Parallel()

	a, err := NewPythonAdapter()
	require.NoError(t, err)

	ext, err := a.Extract(readFixture(t, LangPython, "python/service.py"))
	require.NoError(t, err)

	require.Len(t, ext.Classes, 1)
	assert.Equal(t, "UserService", ext.Classes[0].Name)
	assert.Equal(t, 7, ext.Classes[0].Line)
	assert.Len(t, ext.Classes[0].Methods, 4)

	require.Len(t, ext.Imports, 2)
	assert.Equal(t, "os", ext.Imports[0].Path)
	assert.Equal(t, "typing", ext.Imports[1].Path)
}
