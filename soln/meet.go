package soln

import "fmt"

// Meet is a block of consecutive times.
type Meet struct {
	soln      *Soln
	id        string
	index     int
	duration  int
	node      *Node
	domain    *TimeGroup
	resources []*Resource
	cycleTime *Time

	target *Meet
	offset int
	fixed  bool

	// zones[i] is the zone of offset i, nil for none
	zones []*Zone
}

// ID returns the meet's identifier.
func (m *Meet) ID() string { return m.id }

// Index returns the meet's position in its solution.
func (m *Meet) Index() int { return m.index }

// Soln returns the enclosing solution.
func (m *Meet) Soln() *Soln { return m.soln }

// Duration returns the number of times the meet occupies.
func (m *Meet) Duration() int { return m.duration }

// Node returns the meet's node, or nil.
func (m *Meet) Node() *Node { return m.node }

// Domain returns the set of times the meet may start at, or nil for any.
func (m *Meet) Domain() *TimeGroup { return m.domain }

// SetDomain restricts the meet's starting times. nil lifts the restriction.
func (m *Meet) SetDomain(g *TimeGroup) { m.domain = g }

// Resources returns the resources attending the meet.
func (m *Meet) Resources() []*Resource { return m.resources }

// AddResource makes r attend the meet.
func (m *Meet) AddResource(r *Resource) {
	m.resources = append(m.resources, r)
	m.soln.addResourceMeet(r, m)
	m.soln.invalidate()
}

// Demand returns the number of resource-times the meet consumes.
func (m *Meet) Demand() int { return m.duration * len(m.resources) }

// SetCycleTime pins the meet to start at t, making it a cycle meet.
// Cycle meets cannot be assigned.
func (m *Meet) SetCycleTime(t *Time) error {
	if t.inst != m.soln.inst {
		return fmt.Errorf("%w: time %q", ErrForeignEntity, t.id)
	}
	m.cycleTime = t
	m.soln.invalidate()

	return nil
}

// IsCycleMeet reports whether the meet is pinned to a time.
func (m *Meet) IsCycleMeet() bool { return m.cycleTime != nil }

// Asst returns the meet m is assigned to, or nil.
func (m *Meet) Asst() *Meet { return m.target }

// AsstOffset returns the offset of m within Asst. Meaningless when
// unassigned.
func (m *Meet) AsstOffset() int { return m.offset }

// AsstTime returns the time m starts at, following assignments up to a
// cycle meet, or nil when the chain does not reach one.
func (m *Meet) AsstTime() *Time {
	if m.cycleTime != nil {
		return m.cycleTime
	}
	if m.target == nil {
		return nil
	}
	t := m.target.AsstTime()
	if t == nil {
		return nil
	}

	return t.Neighbour(m.offset)
}

// Fixed reports whether the meet's assignment is fixed.
func (m *Meet) Fixed() bool { return m.fixed }

// Fix freezes the meet's current assignment (or non-assignment).
func (m *Meet) Fix() { m.setFixed(true) }

// Unfix releases a fixed assignment.
func (m *Meet) Unfix() { m.setFixed(false) }

func (m *Meet) setFixed(v bool) {
	if m.fixed == v {
		return
	}
	m.soln.record(op{kind: opFix, meet: m, fixed: m.fixed})
	m.fixed = v
}

// AssignCheck reports whether Assign(target, offset) would succeed.
//
// The checks, in order:
//  1. m is not fixed, not a cycle meet and not already assigned;
//  2. target is another meet of the same solution and m fits inside it
//     at offset;
//  3. when m's node has a parent node, target belongs to it;
//  4. target does not lie (directly or indirectly) inside m;
//  5. when the start time would be known, it lies in m's domain.
func (m *Meet) AssignCheck(target *Meet, offset int) bool {
	// 1) state of m
	if m.fixed || m.cycleTime != nil || m.target != nil {
		return false
	}

	// 2) shape
	if target == nil || target == m || target.soln != m.soln {
		return false
	}
	if offset < 0 || offset+m.duration > target.duration {
		return false
	}

	// 3) node rule
	if m.node != nil && m.node.parent != nil && target.node != m.node.parent {
		return false
	}

	// 4) no cycles
	for t := target; t != nil; t = t.target {
		if t == m {
			return false
		}
	}

	// 5) domain
	if m.domain != nil {
		if tt := target.AsstTime(); tt != nil && !m.domain.Contains(tt.Neighbour(offset)) {
			return false
		}
	}

	return true
}

// Assign assigns m to target at offset, reporting success.
func (m *Meet) Assign(target *Meet, offset int) bool {
	if !m.AssignCheck(target, offset) {
		return false
	}
	m.setAsst(target, offset)

	return true
}

// Unassign removes m's assignment. It fails only when m is fixed.
func (m *Meet) Unassign() bool {
	if m.fixed {
		return false
	}
	if m.target != nil {
		m.setAsst(nil, 0)
	}

	return true
}

func (m *Meet) setAsst(target *Meet, offset int) {
	m.soln.record(op{kind: opAssign, meet: m, target: m.target, offset: m.offset})
	m.target, m.offset = target, offset
	m.soln.invalidate()
}

// OffsetZone returns the zone at offset, or nil. Panics when offset is
// outside the meet.
func (m *Meet) OffsetZone(offset int) *Zone {
	if offset < 0 || offset >= m.duration {
		panic(fmt.Sprintf("soln: meet %q has no offset %d", m.id, offset))
	}

	return m.zones[offset]
}

func (m *Meet) String() string { return m.id }
