package graph

import (
	"github.com/Tanmay-Kondhekar/Project-Nova/internal/lang"
	"github.com/Tanmay-Kondhekar/Project-Nova/internal/resolver"
)

// Input carries everything the assembler needs from the earlier stages.
type Input struct {
	Extractions []*lang.Extraction
	Resolutions []resolver.Resolution
	Warnings    []string
	ParseErrors []lang.ParseError
}

// Assemble builds the project graph: one node per distinct function id with
// same-bare-name unqualified definitions merged, one external node per
// unresolved callee name, one edge per resolved call site deduplicated on
// (from, to, file).
func Assemble(in Input) *ProjectGraph {
	g := &ProjectGraph{
		Nodes:    []Node{},
		Edges:    []Edge{},
		Warnings: append([]string{}, in.Warnings...),
	}
	for _, pe := range in.ParseErrors {
		g.ParseErrors = append(g.ParseErrors, ParseFailure{File: pe.File, Reason: pe.Reason})
	}
	if g.ParseErrors == nil {
		g.ParseErrors = []ParseFailure{}
	}

	index := make(map[string]int) // node id -> position in g.Nodes
	files := make(map[string]bool)

	addNode := func(n Node) int {
		index[n.ID] = len(g.Nodes)
		g.Nodes = append(g.Nodes, n)
		return index[n.ID]
	}

	// Declared functions first, in discovery order. A repeated id is a
	// merge: the first definition keeps the display fields, every further
	// definition site lands in DefinedInFiles.
	for _, ext := range in.Extractions {
		files[ext.File] = true
		for _, fn := range ext.Functions {
			id := fn.NodeID()
			if pos, ok := index[id]; ok {
				node := &g.Nodes[pos]
				if !containsString(node.DefinedInFiles, fn.File) {
					node.DefinedInFiles = append(node.DefinedInFiles, fn.File)
				}
				continue
			}
			addNode(Node{
				ID:             id,
				Label:          fn.Name,
				File:           fn.File,
				Line:           fn.Line,
				IsMethod:       fn.OwnerClass != "",
				IsAsync:        fn.Modifiers.IsAsync,
				IsStatic:       fn.Modifiers.IsStatic,
				IsPrivate:      fn.Modifiers.IsPrivate,
				IsTemplate:     fn.Modifiers.IsTemplate,
				OwnerClass:     fn.OwnerClass,
				OwnerNamespace: fn.OwnerNamespace,
				DefinedInFiles: []string{fn.File},
			})
		}
	}

	// A single definition site carries no merge signal; drop the list.
	for i := range g.Nodes {
		if len(g.Nodes[i].DefinedInFiles) <= 1 {
			g.Nodes[i].DefinedInFiles = nil
		}
	}

	// Edges next. Unresolved callees create (or reuse) one external node
	// per name, in first-reference order.
	seenEdges := make(map[Edge]bool)
	for _, r := range in.Resolutions {
		to := r.Callee
		if !r.Resolved() {
			to = r.Unresolved
			if _, ok := index[to]; !ok {
				addNode(Node{
					ID:       to,
					Label:    to,
					External: true,
				})
			}
		}
		if _, ok := index[r.Caller]; !ok {
			// A call attributed to an unknown caller can't produce an
			// edge; skip rather than invent a node.
			continue
		}

		e := Edge{From: r.Caller, To: to, File: r.File}
		if seenEdges[e] {
			continue
		}
		seenEdges[e] = true
		g.Edges = append(g.Edges, e)
	}

	// Connectivity and aggregates over the final sets.
	for _, e := range g.Edges {
		if pos, ok := index[e.From]; ok {
			g.Nodes[pos].Connected = true
		}
		if pos, ok := index[e.To]; ok {
			g.Nodes[pos].Connected = true
		}
	}

	g.Stats = deriveStats(g.Nodes, g.Edges)
	g.Stats.FilesProcessed = len(files)
	return g
}

// deriveStats computes the aggregate counters from a node and edge set. The
// sizer and the query layer reuse it so every derived graph reports stats
// with the same formulas.
func deriveStats(nodes []Node, edges []Edge) Stats {
	var s Stats
	for _, n := range nodes {
		if n.External {
			s.ExternalReferences++
			continue
		}
		s.TotalFunctions++
		if n.Connected {
			s.ConnectedFunctions++
		}
		if n.IsMethod {
			s.ClassMethods++
		}
		if n.IsStatic {
			s.StaticFunctions++
		}
		if n.IsTemplate {
			s.TemplateFunctions++
		}
	}
	s.IsolatedFunctions = s.TotalFunctions - s.ConnectedFunctions
	s.DisplayedFunctions = s.TotalFunctions
	s.TotalCalls = len(edges)
	return s
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
