package graph

import (
	"fmt"
	"sort"
)

// Size trims a graph to at most maxNodes nodes, keeping the highest-degree
// nodes. The input graph is returned untouched when it already fits.
//
// Ties in degree break by discovery order, so repeated runs over unchanged
// input keep the same nodes. Edges with a dropped endpoint are removed and
// connectivity is re-derived on the kept set. Stats keep the pre-trim
// total_functions and files_processed so a consumer can report
// "X of Y displayed".
func Size(g *ProjectGraph, maxNodes int) *ProjectGraph {
	if maxNodes <= 0 || len(g.Nodes) <= maxNodes {
		return g
	}

	degree := make(map[string]int, len(g.Nodes))
	for _, e := range g.Edges {
		degree[e.From]++
		degree[e.To]++
	}

	order := make([]int, len(g.Nodes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		da, db := degree[g.Nodes[order[a]].ID], degree[g.Nodes[order[b]].ID]
		if da != db {
			return da > db
		}
		return order[a] < order[b]
	})

	keep := make(map[string]bool, maxNodes)
	for _, i := range order[:maxNodes] {
		keep[g.Nodes[i].ID] = true
	}

	out := &ProjectGraph{
		Nodes:       make([]Node, 0, maxNodes),
		Edges:       []Edge{},
		Warnings:    append([]string{}, g.Warnings...),
		ParseErrors: g.ParseErrors,
	}
	out.Warnings = append(out.Warnings, fmt.Sprintf(
		"graph trimmed to %d of %d nodes by degree", maxNodes, len(g.Nodes)))

	// Kept nodes stay in discovery order, not degree order.
	for _, n := range g.Nodes {
		if keep[n.ID] {
			n.Connected = false
			out.Nodes = append(out.Nodes, n)
		}
	}
	for _, e := range g.Edges {
		if keep[e.From] && keep[e.To] {
			out.Edges = append(out.Edges, e)
		}
	}

	connected := make(map[string]bool)
	for _, e := range out.Edges {
		connected[e.From] = true
		connected[e.To] = true
	}
	for i := range out.Nodes {
		out.Nodes[i].Connected = connected[out.Nodes[i].ID]
	}

	out.Stats = deriveStats(out.Nodes, out.Edges)
	out.Stats.TotalFunctions = g.Stats.TotalFunctions
	out.Stats.FilesProcessed = g.Stats.FilesProcessed
	out.Stats.IsolatedFunctions = out.Stats.TotalFunctions - out.Stats.ConnectedFunctions
	return out
}
