// Package elm assigns the child meets of one layer to offsets within the
// meets of the layer's parent node, by weighted bipartite matching.
//
// The parent node's meets are the supply: each is cut into segments
// (supplies) of contiguous offsets. The child meets are the demand. An
// edge joins a demand to a supply of the same duration when the demand's
// meet could be assigned there, and costs the whole-solution cost of doing
// so. The segmentation is not known in advance; it is grown one demand at
// a time by splitting supplies wherever that lets one more demand match,
// preferring the split that leaves the solution cheapest and most evenly
// spread.
//
// After segmentation, two optional refinements run:
//
//   - node regularity: when the parent node has zones, each child node is
//     restricted to a small set of zones, so that its meets land in the
//     same kinds of places;
//   - irregular monitors: surplus supply is removed, one segment at a time,
//     while that lowers the cost of idle-time, busy-time and cluster
//     monitors of the layer's resources.
//
// Finally each unassigned child meet is assigned to its matched supply.
// LayerAssign runs the whole sequence.
//
// Error model:
//
//	Broken internal invariants panic with an "elm: " message. Failing to
//	assign every meet is not an error: LayerAssign returns false and keeps
//	whatever assignments it made.
//
// An Elm is single-threaded and assumes exclusive use of its solution.
package elm
