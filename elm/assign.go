package elm

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/katalvlaran/khelm/soln"
)

const tracerName = "github.com/katalvlaran/khelm/elm"

// LayerAssign assigns the child meets of layer to offsets of its parent
// node's meets, reporting whether every child meet ended up assigned.
// spread, if non-nil, guides splits towards an even spread over its time
// groups.
//
// Steps:
//  1. Make the session and detach the irregular monitors.
//  2. Split supplies to match as many demands as possible.
//  3. Remove surplus supply where that helps the irregular monitors.
//  4. Restrict child nodes to regular zone sets.
//  5. Assign meets to their best supplies, reattach the irregular
//     monitors and end the session.
func LayerAssign(layer *soln.Layer, spread *soln.SpreadConstraint, opts ...Option) bool {
	o := buildOptions(opts)
	ctx, span := otel.Tracer(tracerName).Start(o.Ctx, "elm.LayerAssign")
	defer span.End()
	span.SetAttributes(
		attribute.String("layer", layer.ID()),
		attribute.Bool("diversify", o.Diversify),
	)
	tracer := otel.Tracer(tracerName)
	stage := func(name string, fn func()) {
		_, s := tracer.Start(ctx, name)
		fn()
		s.End()
	}

	// 1) session
	e := Make(layer, append(append([]Option(nil), opts...), WithContext(ctx))...)
	e.DetachIrregularMonitors()

	// 2-4) refine
	stage("elm.SplitSupplies", func() { e.SplitSupplies(spread) })
	stage("elm.ReduceIrregularMonitors", e.ReduceIrregularMonitors)
	stage("elm.ImproveNodeRegularity", e.ImproveNodeRegularity)

	// 5) commit
	var ok bool
	stage("elm.BestAssignMeets", func() { ok = e.BestAssignMeets() })
	e.AttachIrregularMonitors()
	e.Delete()
	span.SetAttributes(attribute.Bool("complete", ok))
	e.log.Debug("elm: layer assigned", "complete", ok, "cost", layer.Soln().Cost().String())

	return ok
}
