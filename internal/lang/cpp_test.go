package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the C++ adapter:
// - Extract in-class methods with owner class and access level
// - Extract out-of-line method definitions (Class::name declarators)
// - Classes default members to private, structs to public
// - Detect static, template, and namespaced functions
// - Record call sites with member calls reduced to the member name
// - Associate class records with their methods
// - Record includes and distinguish system headers
//
// Test Plan for the C adapter:
// - Extract free functions and static linkage
// - Record calls between functions
// - Never emit classes or namespaces

func TestCPPAdapter_Extract(t *testing.T) {
	t.Parallel()

	a, err := NewCPPAdapter()
	require.NoError(t, err)

	unit := readFixture(t, LangCPP, "cpp/calculator.cpp")
	ext, err := a.Extract(unit)
	require.NoError(t, err)
	require.NotNil(t, ext)

	assert.Len(t, ext.Functions, 7)

	add := findFunction(t, ext.Functions, "Calculator::add")
	assert.Equal(t, "add", add.Name)
	assert.Equal(t, "Calculator", add.OwnerClass)
	assert.Equal(t, "math", add.OwnerNamespace)
	assert.Equal(t, 8, add.Line)
	assert.False(t, add.Modifiers.IsPrivate)

	logCall := findFunction(t, ext.Functions, "Calculator::log_call")
	assert.True(t, logCall.Modifiers.IsPrivate, "members after private: are private")

	bump := findFunction(t, ext.Functions, "Accumulator::bump")
	assert.False(t, bump.Modifiers.IsPrivate, "struct members default to public")

	helper := findFunction(t, ext.Functions, "helper")
	assert.True(t, helper.Modifiers.IsStatic)
	assert.Equal(t, 28, helper.Line)

	multiply := findFunction(t, ext.Functions, "Calculator::multiply")
	assert.Equal(t, "Calculator", multiply.OwnerClass, "out-of-line definition keeps its owner")
	assert.Equal(t, 32, multiply.Line)

	identity := findFunction(t, ext.Functions, "identity")
	assert.True(t, identity.Modifiers.IsTemplate)
	assert.Equal(t, 37, identity.Line)

	mainFn := findFunction(t, ext.Functions, "main")
	assert.Equal(t, 41, mainFn.Line)
	assert.Empty(t, mainFn.OwnerNamespace)
}

func TestCPPAdapter_Calls(t *testing.T) {
	t.Parallel()

	a, err := NewCPPAdapter()
	require.NoError(t, err)

	ext, err := a.Extract(readFixture(t, LangCPP, "cpp/calculator.cpp"))
	require.NoError(t, err)

	assert.True(t, hasCall(ext.Calls, "Calculator::add", "log_call"))
	assert.True(t, hasCall(ext.Calls, "Calculator::multiply", "helper"))
	assert.True(t, hasCall(ext.Calls, "main", "identity"))
	assert.True(t, hasCall(ext.Calls, "main", "add"), "member call reduces to the member name")
}

func TestCPPAdapter_ClassesAndNamespaces(t *testing.T) {
	t.Parallel()

	a, err := NewCPPAdapter()
	require.NoError(t, err)

	ext, err := a.Extract(readFixture(t, LangCPP, "cpp/calculator.cpp"))
	require.NoError(t, err)

	require.Len(t, ext.Classes, 2)

	var calc *ClassRecord
	for i := range ext.Classes {
		if ext.Classes[i].Name == "Calculator" {
			calc = &ext.Classes[i]
		}
	}
	require.NotNil(t, calc)
	assert.Equal(t, 6, calc.Line)
	assert.Len(t, calc.Methods, 3, "add, log_call, and the out-of-line multiply")

	require.Len(t, ext.Namespaces, 1)
	assert.Equal(t, "math", ext.Namespaces[0].Name)
	assert.Equal(t, 0, ext.Namespaces[0].Depth)
}

func TestCPPAdapter_Includes(t *testing.T) {
	t.Parallel()

	a, err := NewCPPAdapter()
	require.NoError(t, err)

	ext, err := a.Extract(readFixture(t, LangCPP, "cpp/calculator.cpp"))
	require.NoError(t, err)

	require.Len(t, ext.Imports, 2)
	assert.Equal(t, "iostream", ext.Imports[0].Path)
	assert.True(t, ext.Imports[0].IsSystem)
	assert.Equal(t, "calculator.hpp", ext.Imports[1].Path)
	assert.False(t, ext.Imports[1].IsSystem)
}

func TestCAdapter_Extract(t *testing.T) {
	t.Parallel()

	a, err := NewCAdapter()
	require.NoError(t, err)

	ext, err := a.Extract(readFixture(t, LangC, "c/ring.c"))
	require.NoError(t, err)

	assert.Len(t, ext.Functions, 3)

	wrap := findFunction(t, ext.Functions, "wrap")
	assert.True(t, wrap.Modifiers.IsStatic)
	assert.Equal(t, 4, wrap.Line)

	push := findFunction(t, ext.Functions, "ring_push")
	assert.Equal(t, 8, push.Line)
	assert.False(t, push.Modifiers.IsStatic)

	assert.True(t, hasCall(ext.Calls, "ring_push", "wrap"))
	assert.True(t, hasCall(ext.Calls, "ring_pop", "wrap"))

	assert.Empty(t, ext.Classes)
	assert.Empty(t, ext.Namespaces)
}
