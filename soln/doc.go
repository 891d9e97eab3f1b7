// Package soln is an in-memory timetable solution: the host model that
// layer assignment reads and mutates.
//
// An Instance fixes the vocabulary: an ordered list of Times, named
// TimeGroups over them, and Resources. A Soln built on an Instance holds
// the mutable part:
//
//   - Meets: time blocks of a given duration. A meet is either a cycle
//     meet, pinned to a start time, or is assigned to a target meet at an
//     offset, so start times propagate down chains of assignments.
//   - Nodes: sets of meets arranged in a tree. A meet whose node has a
//     parent node may only be assigned to a meet of that parent.
//   - Zones: labels on (meet, offset) pairs of a node, used to keep the
//     children of a node in regular positions.
//   - Layers: a parent node plus the child nodes sharing some resources.
//   - Monitors: cost functions over the current assignment (clashes, time
//     preferences, spread, idle/busy/cluster limits), each individually
//     attachable. The solution cost is the sum of attached monitor costs.
//
// Changes can be rolled back: MarkBegin opens a mark and MarkEnd closes
// it, undoing every assignment, fix and attachment change made since when
// asked to. Marks nest.
//
// Soln is not safe for concurrent use.
package soln
