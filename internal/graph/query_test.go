package graph

// Test Plan:
// 1. Filter "all" returns every node; connected-only drops isolated nodes;
//    public-only drops private nodes and re-derives connectivity.
// 2. Lineage walks callers transitively, excluding the start node.
// 3. Lineage on an unknown id is an error.
// 4. Search matches labels and files case-insensitively and pulls in each
//    match's caller lineage.
// 5. Filter mode parsing accepts known names and rejects the rest.

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tanmay-Kondhekar/Project-Nova/internal/lang"
	"github.com/Tanmay-Kondhekar/Project-Nova/internal/resolver"
)

// queryFixture builds a small project: main -> run -> _helper, with save
// isolated and _helper private.
func queryFixture(t *testing.T) *Query {
	t.Helper()

	helper := declared("_helper", "", "core.py", 9)
	helper.Modifiers.IsPrivate = true

	g := Assemble(Input{
		Extractions: []*lang.Extraction{
			extraction("main.py", declared("main", "", "main.py", 1)),
			extraction("core.py",
				declared("run", "", "core.py", 1),
				helper,
				declared("save", "", "core.py", 20),
			),
		},
		Resolutions: []resolver.Resolution{
			resolved("main", "run", "main.py"),
			resolved("run", "_helper", "core.py"),
		},
	})

	q, err := NewQuery(g)
	require.NoError(t, err)
	return q
}

func TestParseFilterMode(t *testing.T) {
	t.Parallel()

	for input, want := range map[string]FilterMode{
		"":               FilterAll,
		"all":            FilterAll,
		"Connected-Only": FilterConnected,
		"public-only":    FilterPublic,
	} {
		got, err := ParseFilterMode(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, want, got)
	}

	_, err := ParseFilterMode("private-only")
	assert.ErrorContains(t, err, "unknown filter mode")
}

func TestQuery_FilterAll(t *testing.T) {
	t.Parallel()

	out, err := queryFixture(t).Filter(FilterAll)
	require.NoError(t, err)
	assert.Len(t, out.Nodes, 4)
	assert.Len(t, out.Edges, 2)
	assert.Equal(t, 4, out.Stats.TotalFunctions)
}

func TestQuery_FilterConnectedOnly(t *testing.T) {
	t.Parallel()

	out, err := queryFixture(t).Filter(FilterConnected)
	require.NoError(t, err)

	require.Len(t, out.Nodes, 3)
	_, hasSave := out.NodeByID("save")
	assert.False(t, hasSave)
	assert.Len(t, out.Edges, 2)
	assert.Equal(t, 0, out.Stats.IsolatedFunctions)
}

func TestQuery_FilterPublicOnly(t *testing.T) {
	t.Parallel()

	out, err := queryFixture(t).Filter(FilterPublic)
	require.NoError(t, err)

	require.Len(t, out.Nodes, 3)
	_, hasHelper := out.NodeByID("_helper")
	assert.False(t, hasHelper)

	// run lost its only outgoing edge but keeps the one from main.
	require.Len(t, out.Edges, 1)
	run, ok := out.NodeByID("run")
	require.True(t, ok)
	assert.True(t, run.Connected)

	save, ok := out.NodeByID("save")
	require.True(t, ok)
	assert.False(t, save.Connected)
	assert.Equal(t, 2, out.Stats.ConnectedFunctions)
}

func TestQuery_Lineage(t *testing.T) {
	t.Parallel()

	q := queryFixture(t)

	lineage, err := q.Lineage("_helper")
	require.NoError(t, err)
	assert.Equal(t, []string{"main", "run"}, lineage)

	lineage, err = q.Lineage("run")
	require.NoError(t, err)
	assert.Equal(t, []string{"main"}, lineage)

	lineage, err = q.Lineage("main")
	require.NoError(t, err)
	assert.Empty(t, lineage)
}

func TestQuery_LineageUnknownNode(t *testing.T) {
	t.Parallel()

	_, err := queryFixture(t).Lineage("ghost")
	assert.ErrorContains(t, err, "unknown node")
}

func TestQuery_LineageHandlesCycles(t *testing.T) {
	t.Parallel()

	g := Assemble(Input{
		Extractions: []*lang.Extraction{
			extraction("loop.py",
				declared("a", "", "loop.py", 1),
				declared("b", "", "loop.py", 2),
			),
		},
		Resolutions: []resolver.Resolution{
			resolved("a", "b", "loop.py"),
			resolved("b", "a", "loop.py"),
		},
	})
	q, err := NewQuery(g)
	require.NoError(t, err)

	lineage, err := q.Lineage("a")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, lineage)
}

func TestQuery_SearchByLabel(t *testing.T) {
	t.Parallel()

	out, err := queryFixture(t).Search("HELPER")
	require.NoError(t, err)

	// The match plus its full lineage.
	require.Len(t, out.Nodes, 3)
	for _, id := range []string{"_helper", "run", "main"} {
		_, ok := out.NodeByID(id)
		assert.True(t, ok, "expected %s in search result", id)
	}
	assert.Len(t, out.Edges, 2)
}

func TestQuery_SearchByFile(t *testing.T) {
	t.Parallel()

	out, err := queryFixture(t).Search("main.py")
	require.NoError(t, err)

	require.Len(t, out.Nodes, 1)
	assert.Equal(t, "main", out.Nodes[0].ID)
}

func TestQuery_SearchNoMatches(t *testing.T) {
	t.Parallel()

	out, err := queryFixture(t).Search("nonexistent")
	require.NoError(t, err)
	assert.Empty(t, out.Nodes)
	assert.Empty(t, out.Edges)
	assert.Equal(t, 0, out.Stats.TotalFunctions)
}
