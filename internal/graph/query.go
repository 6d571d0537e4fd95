package graph

import (
	"fmt"
	"sort"
	"strings"

	dgraph "github.com/dominikbraun/graph"
)

// FilterMode selects the node subset a Filter call keeps.
type FilterMode string

const (
	FilterAll       FilterMode = "all"
	FilterConnected FilterMode = "connected-only"
	FilterPublic    FilterMode = "public-only"
)

// ParseFilterMode maps a user-facing mode string onto a FilterMode.
func ParseFilterMode(mode string) (FilterMode, error) {
	switch FilterMode(strings.ToLower(strings.TrimSpace(mode))) {
	case FilterAll, "":
		return FilterAll, nil
	case FilterConnected:
		return FilterConnected, nil
	case FilterPublic:
		return FilterPublic, nil
	default:
		return "", fmt.Errorf("unknown filter mode %q", mode)
	}
}

// Query answers read-only questions about a finished graph. It never
// mutates the underlying ProjectGraph; every result is a derived copy.
type Query struct {
	g  *ProjectGraph
	dg dgraph.Graph[string, Node]

	// callers is the reverse adjacency, taken from the directed graph's
	// predecessor map once at construction.
	callers map[string][]string
}

// NewQuery indexes a graph for filtering, lineage, and search.
func NewQuery(g *ProjectGraph) (*Query, error) {
	dg := dgraph.New(func(n Node) string { return n.ID }, dgraph.Directed())

	for _, n := range g.Nodes {
		if err := dg.AddVertex(n); err != nil {
			return nil, fmt.Errorf("indexing node %s: %w", n.ID, err)
		}
	}
	for _, e := range g.Edges {
		// Parallel edges at (from,to) granularity and self-calls are not
		// errors here; first one wins.
		_ = dg.AddEdge(e.From, e.To)
	}

	pred, err := dg.PredecessorMap()
	if err != nil {
		return nil, fmt.Errorf("building predecessor map: %w", err)
	}
	callers := make(map[string][]string, len(pred))
	for id, in := range pred {
		for from := range in {
			callers[id] = append(callers[id], from)
		}
		sort.Strings(callers[id])
	}

	return &Query{g: g, dg: dg, callers: callers}, nil
}

// Filter returns the subgraph whose nodes satisfy the mode predicate, with
// stats re-derived over the subset.
func (q *Query) Filter(mode FilterMode) (*ProjectGraph, error) {
	switch mode {
	case FilterAll, "":
		return q.subset(func(Node) bool { return true }, false), nil
	case FilterConnected:
		return q.subset(func(n Node) bool { return n.Connected }, false), nil
	case FilterPublic:
		// Dropping private endpoints can isolate survivors, so
		// connectivity is re-derived for this mode.
		return q.subset(func(n Node) bool { return !n.IsPrivate }, true), nil
	default:
		return nil, fmt.Errorf("unknown filter mode %q", mode)
	}
}

// Lineage returns the transitive callers of a node, walking edges backward
// only. The result is sorted and excludes the node itself.
func (q *Query) Lineage(nodeID string) ([]string, error) {
	if _, err := q.dg.Vertex(nodeID); err != nil {
		return nil, fmt.Errorf("unknown node %q", nodeID)
	}

	visited := map[string]bool{nodeID: true}
	queue := []string{nodeID}
	var out []string

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, from := range q.callers[current] {
			if visited[from] {
				continue
			}
			visited[from] = true
			out = append(out, from)
			queue = append(queue, from)
		}
	}

	sort.Strings(out)
	return out, nil
}

// Search matches the term against node labels and files, case-insensitively,
// and expands every match with its full caller lineage so the result shows
// how each hit is reached.
func (q *Query) Search(term string) (*ProjectGraph, error) {
	needle := strings.ToLower(term)

	keep := make(map[string]bool)
	for _, n := range q.g.Nodes {
		if strings.Contains(strings.ToLower(n.Label), needle) ||
			strings.Contains(strings.ToLower(n.File), needle) {
			keep[n.ID] = true
			lineage, err := q.Lineage(n.ID)
			if err != nil {
				return nil, err
			}
			for _, id := range lineage {
				keep[id] = true
			}
		}
	}

	return q.subset(func(n Node) bool { return keep[n.ID] }, true), nil
}

// subset copies the nodes satisfying the predicate plus their induced edges.
func (q *Query) subset(pred func(Node) bool, rederiveConnectivity bool) *ProjectGraph {
	out := &ProjectGraph{
		Nodes:       []Node{},
		Edges:       []Edge{},
		Warnings:    q.g.Warnings,
		ParseErrors: q.g.ParseErrors,
	}

	keep := make(map[string]bool)
	for _, n := range q.g.Nodes {
		if pred(n) {
			keep[n.ID] = true
			out.Nodes = append(out.Nodes, n)
		}
	}
	for _, e := range q.g.Edges {
		if keep[e.From] && keep[e.To] {
			out.Edges = append(out.Edges, e)
		}
	}

	if rederiveConnectivity {
		connected := make(map[string]bool)
		for _, e := range out.Edges {
			connected[e.From] = true
			connected[e.To] = true
		}
		for i := range out.Nodes {
			out.Nodes[i].Connected = connected[out.Nodes[i].ID]
		}
	}

	out.Stats = deriveStats(out.Nodes, out.Edges)
	out.Stats.FilesProcessed = q.g.Stats.FilesProcessed
	return out
}
