package layered

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/khelm/soln"
)

var (
	// ErrAsstNotEnded indicates Undo or Redo before End.
	ErrAsstNotEnded = errors.New("layered: layer assignment not ended")

	// ErrReplay indicates a recorded placement could not be restored.
	ErrReplay = errors.New("layered: cannot replay placement")
)

// placement is where one meet sits: its target (nil when unassigned) and
// offset.
type placement struct {
	target *soln.Meet
	offset int
}

func placementOf(m *soln.Meet) placement {
	if t := m.Asst(); t != nil {
		return placement{target: t, offset: m.AsstOffset()}
	}

	return placement{}
}

// LayerAsst records the placements of a layer's child meets at Begin and
// at End, so that the layer's assignment can be undone and redone later.
type LayerAsst struct {
	layer  *soln.Layer
	meets  []*soln.Meet
	before []placement
	after  []placement
	ended  bool
}

// BeginLayerAsst snapshots the current placements of layer's child meets.
func BeginLayerAsst(layer *soln.Layer) *LayerAsst {
	a := &LayerAsst{layer: layer}
	for _, n := range layer.ChildNodes() {
		for _, m := range n.Meets() {
			a.meets = append(a.meets, m)
			a.before = append(a.before, placementOf(m))
		}
	}

	return a
}

// End snapshots the placements again. Calling it twice moves the end
// snapshot.
func (a *LayerAsst) End() {
	a.after = a.after[:0]
	for _, m := range a.meets {
		a.after = append(a.after, placementOf(m))
	}
	a.ended = true
}

// Layer returns the recorded layer.
func (a *LayerAsst) Layer() *soln.Layer { return a.layer }

// Changed returns the number of meets whose placement differs between
// the two snapshots.
func (a *LayerAsst) Changed() int {
	n := 0
	for i := range a.after {
		if a.after[i] != a.before[i] {
			n++
		}
	}

	return n
}

// Assigned returns how many of the layer's child meets are assigned at
// End, and how many there are.
func (a *LayerAsst) Assigned() (assigned, total int) {
	for _, p := range a.after {
		if p.target != nil {
			assigned++
		}
	}

	return assigned, len(a.meets)
}

// Undo restores the placements seen at Begin.
func (a *LayerAsst) Undo() error { return a.restore(a.after, a.before) }

// Redo restores the placements seen at End.
func (a *LayerAsst) Redo() error { return a.restore(a.before, a.after) }

// restore moves every meet whose placement went from[i] -> to[i] back to
// to[i]. All moved meets are unassigned first, so that the reassignments
// cannot trip over one another. On error nothing is changed.
func (a *LayerAsst) restore(from, to []placement) (err error) {
	if !a.ended {
		return ErrAsstNotEnded
	}
	s := a.layer.Soln()
	mk := s.MarkBegin()
	defer func() { s.MarkEnd(mk, err != nil) }()

	// 1. Unassign
	for i, m := range a.meets {
		if from[i] != to[i] && !m.Unassign() {
			return fmt.Errorf("%w: meet %q is fixed", ErrReplay, m.ID())
		}
	}

	// 2. Reassign
	for i, m := range a.meets {
		if from[i] == to[i] || to[i].target == nil {
			continue
		}
		if !m.Assign(to[i].target, to[i].offset) {
			return fmt.Errorf("%w: meet %q to %s+%d", ErrReplay, m.ID(), to[i].target.ID(), to[i].offset)
		}
	}

	return nil
}
