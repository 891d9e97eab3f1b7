package layered

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/katalvlaran/khelm/cost"
	"github.com/katalvlaran/khelm/elm"
	"github.com/katalvlaran/khelm/soln"
	"github.com/katalvlaran/khelm/stats"
)

const tracerName = "github.com/katalvlaran/khelm/layered"

var (
	// ErrNilSoln indicates AssignLayers without a solution.
	ErrNilSoln = errors.New("layered: nil solution")

	// ErrForeignLayer indicates a job whose layer belongs to another
	// solution.
	ErrForeignLayer = errors.New("layered: layer belongs to another solution")
)

// Stats table columns.
const (
	ColMeets    = "Meets"
	ColAssigned = "Assigned"
	ColCost     = "Cost"
	ColTime     = "Time"
)

// Job is one layer to assign, with an optional spread constraint.
type Job struct {
	Layer  *soln.Layer
	Spread *soln.SpreadConstraint
}

// LayerResult reports one layer's outcome.
type LayerResult struct {
	Layer    string
	Complete bool
	Assigned int
	Meets    int
	Cost     cost.Cost
	Asst     *LayerAsst
}

// Result reports a whole run: the layers in the order they ran and the
// final solution cost.
type Result struct {
	Layers []LayerResult
	Cost   cost.Cost
}

// Complete reports whether every layer was fully assigned.
func (r Result) Complete() bool {
	for _, l := range r.Layers {
		if !l.Complete {
			return false
		}
	}

	return true
}

// Solver runs layer assignment over many layers.
type Solver struct {
	opts Options
}

// New returns a Solver.
func New(opts ...Option) *Solver {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	return &Solver{opts: o}
}

// Options returns the solver's options.
func (s *Solver) Options() Options { return s.opts }

// AssignLayers orders jobs parents first and assigns each layer in turn.
//
// Steps:
//  1. Validate the solution and every job's layer.
//  2. Order the jobs (see OrderJobs).
//  3. For each job, stop if ctx is done; otherwise open a span, record a
//     LayerAsst around elm.LayerAssign and report the layer.
func (s *Solver) AssignLayers(ctx context.Context, sol *soln.Soln, jobs []Job) (Result, error) {
	// 1) validate
	if sol == nil {
		return Result{}, ErrNilSoln
	}
	for i, j := range jobs {
		if j.Layer == nil {
			return Result{}, fmt.Errorf("%w: job %d", ErrNilLayer, i)
		}
		if j.Layer.Soln() != sol {
			return Result{}, fmt.Errorf("%w: %q", ErrForeignLayer, j.Layer.ID())
		}
	}

	// 2) order
	ordered, err := OrderJobs(jobs, WithCancelContext(ctx))
	if err != nil {
		return Result{}, err
	}
	var table *stats.Table
	if s.opts.Stats != nil {
		if table, err = s.openTable(); err != nil {
			return Result{}, err
		}
	}

	// 3) assign
	var res Result
	for _, j := range ordered {
		if err = ctx.Err(); err != nil {
			res.Cost = sol.Cost()

			return res, err
		}
		res.Layers = append(res.Layers, s.assignLayer(ctx, j, table))
	}
	res.Cost = sol.Cost()
	s.opts.Logger.Info("layered: done",
		"layers", len(res.Layers), "complete", res.Complete(), "cost", res.Cost.String())

	return res, nil
}

func (s *Solver) openTable() (*stats.Table, error) {
	if t, err := s.opts.Stats.Table(s.opts.StatsTable); err == nil {
		return t, nil
	}

	return s.opts.Stats.Begin(s.opts.StatsTable,
		stats.WithCorner("Layer"), stats.WithAverageRow(), stats.WithTotalRow())
}

func (s *Solver) assignLayer(ctx context.Context, j Job, table *stats.Table) LayerResult {
	ctx, span := s.opts.Tracer.Start(ctx, "layered.Layer")
	defer span.End()
	span.SetAttributes(attribute.String("layer", j.Layer.ID()))

	start := s.opts.Now()
	asst := BeginLayerAsst(j.Layer)
	complete := elm.LayerAssign(j.Layer, j.Spread,
		elm.WithDiversify(s.opts.Diversify),
		elm.WithLogger(s.opts.Logger),
		elm.WithContext(ctx))
	asst.End()
	elapsed := s.opts.Now().Sub(start)

	assigned, meets := asst.Assigned()
	r := LayerResult{
		Layer:    j.Layer.ID(),
		Complete: complete,
		Assigned: assigned,
		Meets:    meets,
		Cost:     j.Layer.Soln().Cost(),
		Asst:     asst,
	}
	span.SetAttributes(attribute.Int("assigned", assigned), attribute.Int("meets", meets))
	if !complete {
		span.SetStatus(codes.Error, "layer incomplete")
	}
	if table != nil {
		table.Set(r.Layer, ColMeets, stats.Int(meets))
		table.Set(r.Layer, ColAssigned, stats.Int(assigned))
		table.Set(r.Layer, ColCost, stats.Cost(r.Cost))
		table.Set(r.Layer, ColTime, stats.Duration(elapsed))
	}
	s.opts.Logger.Info("layered: layer assigned",
		"layer", r.Layer, "assigned", assigned, "meets", meets,
		"complete", complete, "cost", r.Cost.String(), "elapsed", elapsed)

	return r
}
