// Package wmatch maintains a weighted bipartite matching between demand
// nodes and supply nodes whose edges are discovered lazily through a
// caller-supplied Edger.
//
// The graph is never given explicitly. Instead the caller registers nodes,
// each carrying an opaque back value, and tells the Matcher which nodes
// became dirty after a change in its own state. Before the next evaluation
// the Matcher asks the Edger again about every pair touched by a dirty
// node, so edges always reflect the caller's current state.
//
// Evaluation finds a maximum-cardinality matching and, among those, one of
// minimum total edge cost (min-cost max-flow by successive shortest paths,
// Bellman–Ford/SPFA on the residual network). Results are cached until the
// next structural change or dirty notification.
//
// Special mode:
//
//	In special mode a dirty node keeps the edges it already has: each is
//	re-checked for existence only and set aside (or brought back) without
//	asking for its cost again. Nodes may not be created or deleted while
//	special mode is on. This suits searches that only ever restrict an
//	existing graph, where recomputing costs would be wasted work.
//
// Complexity (per evaluation, V = demands + supplies, E = edges):
//
//	Time:   O(F · V · E) for F = size of the matching
//	Memory: O(V + E)
//
// Usage:
//
//	m := wmatch.New[*Job, *Slot](edger)
//	c := m.NewCategory()
//	d := m.MakeDemand(job, c)
//	m.MakeSupply(slot, c)
//	unmatched, cost := m.Eval()
//	slot, edgeCost, ok := m.DemandAssignedTo(d)
package wmatch
