package soln

import "fmt"

type opKind int

const (
	opAssign opKind = iota
	opFix
	opAttach
)

// op records the state before one change, for rollback.
type op struct {
	kind     opKind
	meet     *Meet
	target   *Meet
	offset   int
	fixed    bool
	monitor  Monitor
	attached bool
}

// Mark identifies an open mark.
type Mark struct {
	depth int
}

// MarkBegin opens a mark. Every change made until the matching MarkEnd
// can be undone.
func (s *Soln) MarkBegin() Mark {
	s.marks = append(s.marks, len(s.log))

	return Mark{depth: len(s.marks)}
}

// MarkEnd closes mk, which must be the innermost open mark. With undo
// set, the solution is restored to its state at MarkBegin.
func (s *Soln) MarkEnd(mk Mark, undo bool) {
	if mk.depth != len(s.marks) || mk.depth == 0 {
		panic(fmt.Sprintf("soln: MarkEnd: mark %d is not innermost (%d open)", mk.depth, len(s.marks)))
	}
	pos := s.marks[len(s.marks)-1]
	s.marks = s.marks[:len(s.marks)-1]
	if undo {
		for i := len(s.log) - 1; i >= pos; i-- {
			s.log[i].revert()
		}
		s.log = s.log[:pos]
		s.invalidate()
	}
	if len(s.marks) == 0 {
		s.log = s.log[:0]
	}
}

// record appends o to the log when a mark is open.
func (s *Soln) record(o op) {
	if len(s.marks) > 0 {
		s.log = append(s.log, o)
	}
}

func (o op) revert() {
	switch o.kind {
	case opAssign:
		o.meet.target, o.meet.offset = o.target, o.offset
	case opFix:
		o.meet.fixed = o.fixed
	case opAttach:
		o.monitor.base().attached = o.attached
	}
}
