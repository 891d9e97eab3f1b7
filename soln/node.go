package soln

import "fmt"

// Node is a set of meets within the node tree.
type Node struct {
	soln     *Soln
	id       string
	index    int
	parent   *Node
	children []*Node
	meets    []*Meet
	zones    []*Zone
}

// ID returns the node's identifier.
func (n *Node) ID() string { return n.id }

// Index returns the node's position in its solution.
func (n *Node) Index() int { return n.index }

// Parent returns the parent node, or nil.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the child nodes.
func (n *Node) Children() []*Node { return n.children }

// ChildCount returns the number of child nodes.
func (n *Node) ChildCount() int { return len(n.children) }

// Meets returns the node's meets.
func (n *Node) Meets() []*Meet { return n.meets }

// Duration returns the total duration of the node's meets.
func (n *Node) Duration() int {
	d := 0
	for _, m := range n.meets {
		d += m.duration
	}

	return d
}

// Zones returns the node's zones.
func (n *Node) Zones() []*Zone { return n.zones }

// ZoneCount returns the number of zones of the node.
func (n *Node) ZoneCount() int { return len(n.zones) }

// AddZone adds an empty zone to n.
func (n *Node) AddZone(id string) *Zone {
	z := &Zone{id: id, node: n, index: len(n.zones)}
	n.zones = append(n.zones, z)

	return z
}

func (n *Node) String() string { return n.id }

// Zone labels some (meet, offset) pairs of one node.
type Zone struct {
	id      string
	node    *Node
	index   int
	offsets int
}

// ID returns the zone's identifier.
func (z *Zone) ID() string { return z.id }

// Node returns the zone's node.
func (z *Zone) Node() *Node { return z.node }

// Index returns the zone's position within its node.
func (z *Zone) Index() int { return z.index }

// MeetOffsetCount returns the number of (meet, offset) pairs in the zone.
func (z *Zone) MeetOffsetCount() int { return z.offsets }

// AddMeetOffset puts offset of m into z, taking it out of any other zone.
func (z *Zone) AddMeetOffset(m *Meet, offset int) error {
	if m.node != z.node {
		return fmt.Errorf("%w: meet %q is not in node %q", ErrForeignEntity, m.id, z.node.id)
	}
	if offset < 0 || offset >= m.duration {
		return fmt.Errorf("%w: meet %q offset %d", ErrBadOffset, m.id, offset)
	}
	if old := m.zones[offset]; old != nil {
		old.offsets--
	}
	m.zones[offset] = z
	z.offsets++

	return nil
}

func (z *Zone) String() string { return z.id }

// Layer is a parent node together with the child nodes to be laid out in
// its meets and the resources they share.
type Layer struct {
	soln      *Soln
	id        string
	parent    *Node
	children  []*Node
	resources []*Resource
}

// ID returns the layer's identifier.
func (l *Layer) ID() string { return l.id }

// Soln returns the enclosing solution.
func (l *Layer) Soln() *Soln { return l.soln }

// ParentNode returns the node whose meets receive the children.
func (l *Layer) ParentNode() *Node { return l.parent }

// ChildNodes returns the layer's child nodes.
func (l *Layer) ChildNodes() []*Node { return l.children }

// Resources returns the resources the layer's meets share.
func (l *Layer) Resources() []*Resource { return l.resources }

func (l *Layer) String() string { return l.id }
