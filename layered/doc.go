// Package layered assigns a whole solution, one layer at a time.
//
// A Job names a layer and an optional spread constraint. Solver runs
// elm.LayerAssign for each job, parents before children: OrderJobs sorts
// jobs so that a layer whose parent node is a child node of another layer
// comes after it, since only then are its parent meets' times known.
//
// For every layer the solver records:
//
//   - a LayerAsst, holding the child meets' placements before and after,
//     which can be undone and redone;
//   - a row of the stats table, when a stats.Registry is configured;
//   - an OpenTelemetry span "layered.Layer", the parent of the elm spans.
//
// A layer left incomplete is a normal outcome, reported in its
// LayerResult. Errors are reserved for bad input and cancellation: the
// context is checked between layers and, once done, AssignLayers returns
// the results so far along with ctx.Err().
package layered
