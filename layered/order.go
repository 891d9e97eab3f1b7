package layered

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/khelm/soln"
)

var (
	// ErrNilLayer indicates a Job without a layer.
	ErrNilLayer = errors.New("layered: job has no layer")

	// ErrCycleDetected indicates layers that are each other's ancestors.
	ErrCycleDetected = errors.New("layered: cycle in layer order")
)

// Visitation states of a job during OrderJobs.
const (
	white = iota // not visited yet
	gray         // on the recursion stack
	black        // job and every job after it placed
)

// OrderOption configures optional behavior for OrderJobs.
type OrderOption func(*orderOptions)

// orderOptions holds settings for OrderJobs, currently only cancellation.
type orderOptions struct {
	ctx context.Context // allows cancellation; defaults to Background
}

// defaultOrderOptions returns the default options (Background context).
func defaultOrderOptions() orderOptions {
	return orderOptions{ctx: context.Background()}
}

// WithCancelContext returns an OrderOption that sets the cancellation
// context. Passing a nil context has no effect.
func WithCancelContext(ctx context.Context) OrderOption {
	return func(o *orderOptions) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// jobSorter holds the state of one OrderJobs traversal.
type jobSorter struct {
	jobs  []Job
	opts  orderOptions
	after map[int][]int // job index -> jobs that must come after it
	state []int         // visitation state per job
	order []int         // recorded post-order sequence
}

// OrderJobs returns jobs reordered parents first: a job comes before
// every job whose layer's parent node is one of its child nodes. Jobs not
// so related keep their relative order.
// If a job has no layer, returns ErrNilLayer.
// If no such order exists, returns ErrCycleDetected.
// You may pass WithCancelContext(ctx) to enable cancellation.
//
// Complexity:
//
//   - Time:   O(J + C) for J jobs with C child nodes in all
//   - Memory: O(J + C)
func OrderJobs(jobs []Job, options ...OrderOption) ([]Job, error) {
	// 1. Validate and index layers by the child nodes they lay out
	byChild := make(map[*soln.Node][]int)
	for i, j := range jobs {
		if j.Layer == nil {
			return nil, fmt.Errorf("%w: job %d", ErrNilLayer, i)
		}
		for _, n := range j.Layer.ChildNodes() {
			byChild[n] = append(byChild[n], i)
		}
	}
	// 2. Apply optional settings
	opts := defaultOrderOptions()
	for _, opt := range options {
		opt(&opts)
	}
	// 3. Initialize sorter state; job i precedes job k when k's parent
	// node is a child node of i
	sorter := &jobSorter{
		jobs:  jobs,
		opts:  opts,
		after: make(map[int][]int),
		state: make([]int, len(jobs)),
		order: make([]int, 0, len(jobs)),
	}
	for k, j := range jobs {
		for _, i := range byChild[j.Layer.ParentNode()] {
			sorter.after[i] = append(sorter.after[i], k)
		}
	}
	// 4. Drive DFS from every unvisited job, last to first, so that the
	// reversed post-order keeps unrelated jobs in input order
	for i := len(jobs) - 1; i >= 0; i-- {
		if sorter.state[i] == white {
			if err := sorter.visit(i); err != nil {
				return nil, err
			}
		}
	}
	// 5. Reverse post-order to produce parents-first order
	out := make([]Job, 0, len(jobs))
	for i := len(sorter.order) - 1; i >= 0; i-- {
		out = append(out, jobs[sorter.order[i]])
	}

	return out, nil
}

// visit performs a DFS from job i, marking states and detecting cycles.
func (t *jobSorter) visit(i int) error {
	// 1. Cancellation check at entry
	select {
	case <-t.opts.ctx.Done():
		return t.opts.ctx.Err()
	default:
	}
	// 2. Cycle detection: if already Gray, we found a back edge
	if t.state[i] == gray {
		return fmt.Errorf("%w: at layer %q", ErrCycleDetected, t.jobs[i].Layer.ID())
	}
	// 3. Already fully processed (Black)? then skip
	if t.state[i] == black {
		return nil
	}
	// 4. Mark as in-progress (Gray)
	t.state[i] = gray
	// 5. Explore successors in reverse, so that they come out in input order
	next := t.after[i]
	for x := len(next) - 1; x >= 0; x-- {
		if err := t.visit(next[x]); err != nil {
			return err
		}
	}
	// 6. Mark as fully explored (Black) and record in post-order
	t.state[i] = black
	t.order = append(t.order, i)

	return nil
}
