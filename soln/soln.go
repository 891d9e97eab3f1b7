package soln

import (
	"fmt"

	"github.com/katalvlaran/khelm/cost"
)

// Soln is a mutable timetable over an Instance.
type Soln struct {
	inst *Instance

	meets    []*Meet
	nodes    []*Node
	layers   []*Layer
	monitors []Monitor

	meetByID      map[string]*Meet
	nodeByID      map[string]*Node
	resourceMeets map[*Resource][]*Meet

	diversifier int

	cost      cost.Cost
	costValid bool

	log   []op
	marks []int
}

// New returns an empty solution of inst.
func New(inst *Instance) *Soln {
	return &Soln{
		inst:          inst,
		meetByID:      make(map[string]*Meet),
		nodeByID:      make(map[string]*Node),
		resourceMeets: make(map[*Resource][]*Meet),
	}
}

// Instance returns the instance s is built on.
func (s *Soln) Instance() *Instance { return s.inst }

// AddNode adds a node. parent may be nil.
func (s *Soln) AddNode(id string, parent *Node) (*Node, error) {
	if _, ok := s.nodeByID[id]; ok {
		return nil, fmt.Errorf("%w: node %q", ErrDuplicateID, id)
	}
	if parent != nil && parent.soln != s {
		return nil, fmt.Errorf("%w: node %q", ErrForeignEntity, parent.id)
	}
	n := &Node{soln: s, id: id, index: len(s.nodes), parent: parent}
	if parent != nil {
		parent.children = append(parent.children, n)
	}
	s.nodes = append(s.nodes, n)
	s.nodeByID[id] = n

	return n, nil
}

// AddMeet adds a meet of the given duration to node, which may be nil.
func (s *Soln) AddMeet(id string, duration int, node *Node) (*Meet, error) {
	if _, ok := s.meetByID[id]; ok {
		return nil, fmt.Errorf("%w: meet %q", ErrDuplicateID, id)
	}
	if duration <= 0 {
		return nil, fmt.Errorf("%w: meet %q has duration %d", ErrBadDuration, id, duration)
	}
	if node != nil && node.soln != s {
		return nil, fmt.Errorf("%w: node %q", ErrForeignEntity, node.id)
	}
	m := &Meet{
		soln:     s,
		id:       id,
		index:    len(s.meets),
		duration: duration,
		node:     node,
		zones:    make([]*Zone, duration),
	}
	if node != nil {
		node.meets = append(node.meets, m)
	}
	s.meets = append(s.meets, m)
	s.meetByID[id] = m

	return m, nil
}

// AddLayer adds a layer: a parent node, the child nodes being laid out in
// it, and the resources they share.
func (s *Soln) AddLayer(id string, parent *Node, children []*Node, resources []*Resource) (*Layer, error) {
	if parent == nil || parent.soln != s {
		return nil, fmt.Errorf("%w: layer %q parent", ErrForeignEntity, id)
	}
	for _, c := range children {
		if c.soln != s {
			return nil, fmt.Errorf("%w: layer %q child %q", ErrForeignEntity, id, c.id)
		}
	}
	l := &Layer{
		soln:      s,
		id:        id,
		parent:    parent,
		children:  append([]*Node(nil), children...),
		resources: append([]*Resource(nil), resources...),
	}
	s.layers = append(s.layers, l)

	return l, nil
}

// Meets returns every meet in creation order.
func (s *Soln) Meets() []*Meet { return s.meets }

// Meet looks a meet up by id.
func (s *Soln) Meet(id string) (*Meet, bool) {
	m, ok := s.meetByID[id]

	return m, ok
}

// Nodes returns every node in creation order.
func (s *Soln) Nodes() []*Node { return s.nodes }

// Node looks a node up by id.
func (s *Soln) Node(id string) (*Node, bool) {
	n, ok := s.nodeByID[id]

	return n, ok
}

// Layers returns every layer in creation order.
func (s *Soln) Layers() []*Layer { return s.layers }

// Monitors returns every monitor, attached or not.
func (s *Soln) Monitors() []Monitor { return s.monitors }

// ResourceMonitors returns the monitors of resource r.
func (s *Soln) ResourceMonitors(r *Resource) []Monitor {
	var out []Monitor
	for _, m := range s.monitors {
		if m.Resource() == r {
			out = append(out, m)
		}
	}

	return out
}

// Cost returns the sum of the costs of all attached monitors.
func (s *Soln) Cost() cost.Cost {
	if s.costValid {
		return s.cost
	}
	b := newBusyTimes(s)
	total := cost.Zero
	for _, m := range s.monitors {
		if m.Attached() {
			total = total.Add(m.weight().Scale(int64(m.deviation(b))))
		}
	}
	s.cost = total
	s.costValid = true

	return total
}

// Diversifier returns the solution's diversifier, a small integer that
// lets heuristics explore different choices on different runs.
func (s *Soln) Diversifier() int { return s.diversifier }

// SetDiversifier sets the diversifier.
func (s *Soln) SetDiversifier(d int) { s.diversifier = d }

// DiversifierChoose maps the diversifier onto [0, c), negative
// diversifiers included. Panics if c < 1.
//
// Successive diversifiers walk through the choices in a way that varies
// between low- and high-order digits of a factorial number system, so
// that nested choices do not move in lock step.
func (s *Soln) DiversifierChoose(c int) int {
	if c < 1 {
		panic("soln: DiversifierChoose: c must be positive")
	}
	d := s.diversifier
	c1f := 1
	for i := 1; i < c && c1f <= d; i++ {
		c1f *= i
	}

	r := ((d / c1f) + (d % c1f)) % c
	if r < 0 {
		r += c
	}

	return r
}

func (s *Soln) invalidate() { s.costValid = false }

func (s *Soln) addResourceMeet(r *Resource, m *Meet) {
	s.resourceMeets[r] = append(s.resourceMeets[r], m)
}
