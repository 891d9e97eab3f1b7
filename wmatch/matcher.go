package wmatch

import (
	"fmt"
	"io"
	"sort"
)

// Matcher is a lazily evaluated weighted bipartite matching.
// It is not safe for concurrent use.
type Matcher[D, S any] struct {
	edger Edger[D, S]
	opts  Options

	demands  []demandNode[D]
	supplies []supplyNode[S]

	dirtyDemands  []DemandID
	dirtySupplies []SupplyID

	// slots of deleted nodes, reused by the next Make
	freeDemands  []DemandID
	freeSupplies []SupplyID

	categories int
	special    bool

	// cached evaluation
	solved    bool
	unmatched int
	cost      int64
	match     []SupplyID
	matchCost []int64
}

// New returns an empty Matcher that asks edger about edges.
func New[D, S any](edger Edger[D, S], opts ...Option) *Matcher[D, S] {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	return &Matcher[D, S]{edger: edger, opts: o}
}

// NewCategory returns a fresh category.
func (m *Matcher[D, S]) NewCategory() Category {
	m.categories++

	return Category(m.categories - 1)
}

// MakeDemand adds a demand node. Panics in special mode.
func (m *Matcher[D, S]) MakeDemand(back D, cat Category) DemandID {
	m.mustNotBeSpecial("MakeDemand")
	m.mustBeCategory(cat)
	node := demandNode[D]{back: back, cat: cat, live: true}
	var id DemandID
	if n := len(m.freeDemands); n > 0 {
		id = m.freeDemands[n-1]
		m.freeDemands = m.freeDemands[:n-1]
		node.dirty = m.demands[id].dirty
		m.demands[id] = node
	} else {
		id = DemandID(len(m.demands))
		m.demands = append(m.demands, node)
	}
	m.DemandDirty(id)

	return id
}

// MakeSupply adds a supply node. Panics in special mode.
func (m *Matcher[D, S]) MakeSupply(back S, cat Category) SupplyID {
	m.mustNotBeSpecial("MakeSupply")
	m.mustBeCategory(cat)
	node := supplyNode[S]{back: back, cat: cat, live: true}
	var id SupplyID
	if n := len(m.freeSupplies); n > 0 {
		id = m.freeSupplies[n-1]
		m.freeSupplies = m.freeSupplies[:n-1]
		node.dirty = m.supplies[id].dirty
		m.supplies[id] = node
	} else {
		id = SupplyID(len(m.supplies))
		m.supplies = append(m.supplies, node)
	}
	m.SupplyDirty(id)

	return id
}

// DeleteDemand removes a demand node. Panics in special mode.
func (m *Matcher[D, S]) DeleteDemand(id DemandID) {
	m.mustNotBeSpecial("DeleteDemand")
	d := m.demand(id)
	d.live = false
	d.edges = nil
	m.freeDemands = append(m.freeDemands, id)
	m.solved = false
}

// DeleteSupply removes a supply node and every edge to it.
// Panics in special mode.
func (m *Matcher[D, S]) DeleteSupply(id SupplyID) {
	m.mustNotBeSpecial("DeleteSupply")
	s := m.supply(id)
	s.live = false
	for i := range m.demands {
		m.demands[i].edges = dropEdge(m.demands[i].edges, id)
	}
	m.freeSupplies = append(m.freeSupplies, id)
	m.solved = false
}

// DemandDirty records that the edges of demand id may have changed.
func (m *Matcher[D, S]) DemandDirty(id DemandID) {
	d := m.demand(id)
	if !d.dirty {
		d.dirty = true
		m.dirtyDemands = append(m.dirtyDemands, id)
	}
	m.solved = false
}

// SupplyDirty records that the edges of supply id may have changed.
func (m *Matcher[D, S]) SupplyDirty(id SupplyID) {
	s := m.supply(id)
	if !s.dirty {
		s.dirty = true
		m.dirtySupplies = append(m.dirtySupplies, id)
	}
	m.solved = false
}

// DemandCount returns the number of live demand nodes.
func (m *Matcher[D, S]) DemandCount() int {
	n := 0
	for i := range m.demands {
		if m.demands[i].live {
			n++
		}
	}

	return n
}

// SupplyCount returns the number of live supply nodes.
func (m *Matcher[D, S]) SupplyCount() int {
	n := 0
	for i := range m.supplies {
		if m.supplies[i].live {
			n++
		}
	}

	return n
}

// Demand returns the back value of demand id.
func (m *Matcher[D, S]) Demand(id DemandID) D {
	return m.demand(id).back
}

// Supply returns the back value of supply id.
func (m *Matcher[D, S]) Supply(id SupplyID) S {
	return m.supply(id).back
}

// Eval returns the number of demands left unmatched by a best matching
// and the total cost of its edges.
func (m *Matcher[D, S]) Eval() (unmatched int, cost int64) {
	m.ensureSolved()

	return m.unmatched, m.cost
}

// DemandAssignedTo returns the supply matched to demand id by the current
// best matching and the cost of that edge. ok is false when id is
// unmatched.
func (m *Matcher[D, S]) DemandAssignedTo(id DemandID) (back S, cost int64, ok bool) {
	m.demand(id)
	m.ensureSolved()
	sid := m.match[id]
	if sid == NoSupply {
		var zero S

		return zero, 0, false
	}

	return m.supplies[sid].back, m.matchCost[id], true
}

// DemandAssignedID is DemandAssignedTo returning the supply's id.
func (m *Matcher[D, S]) DemandAssignedID(id DemandID) SupplyID {
	m.demand(id)
	m.ensureSolved()

	return m.match[id]
}

// SpecialModeBegin brings every edge up to date, then switches to special
// mode. Panics if already in special mode.
func (m *Matcher[D, S]) SpecialModeBegin() {
	if m.special {
		panic("wmatch: SpecialModeBegin: already in special mode")
	}
	m.clean()
	m.special = true
}

// SpecialModeEnd brings every edge up to date under special-mode rules,
// drops the edges set aside, and leaves special mode.
func (m *Matcher[D, S]) SpecialModeEnd() {
	if !m.special {
		panic("wmatch: SpecialModeEnd: not in special mode")
	}
	m.clean()
	for i := range m.demands {
		d := &m.demands[i]
		kept := d.edges[:0]
		for _, e := range d.edges {
			if e.active {
				kept = append(kept, e)
			}
		}
		d.edges = kept
	}
	m.special = false
}

// SpecialMode reports whether special mode is on.
func (m *Matcher[D, S]) SpecialMode() bool {
	return m.special
}

// Debug writes the live nodes grouped by category, each demand followed by
// its active edges and the supply it is matched to.
func (m *Matcher[D, S]) Debug(w io.Writer) {
	unmatched, cost := m.Eval()
	fmt.Fprintf(w, "[ Matcher %d demands, %d supplies, unmatched %d, cost %d\n",
		m.DemandCount(), m.SupplyCount(), unmatched, cost)
	byCat := make(map[Category][]DemandID)
	for i := range m.demands {
		if m.demands[i].live {
			byCat[m.demands[i].cat] = append(byCat[m.demands[i].cat], DemandID(i))
		}
	}
	cats := make([]int, 0, len(byCat))
	for c := range byCat {
		cats = append(cats, int(c))
	}
	sort.Ints(cats)
	for _, c := range cats {
		fmt.Fprintf(w, "  category %d:\n", c)
		for _, id := range byCat[Category(c)] {
			d := &m.demands[id]
			fmt.Fprintf(w, "    %v ->", d.back)
			for _, e := range d.edges {
				if e.active {
					fmt.Fprintf(w, " %v(%d)", m.supplies[e.supply].back, e.cost)
				}
			}
			if sid := m.match[id]; sid != NoSupply {
				fmt.Fprintf(w, " => %v", m.supplies[sid].back)
			}
			fmt.Fprintln(w)
		}
	}
	fmt.Fprintln(w, "]")
}

func (m *Matcher[D, S]) demand(id DemandID) *demandNode[D] {
	if id < 0 || int(id) >= len(m.demands) || !m.demands[id].live {
		panic(fmt.Sprintf("wmatch: no live demand %d", id))
	}

	return &m.demands[id]
}

func (m *Matcher[D, S]) supply(id SupplyID) *supplyNode[S] {
	if id < 0 || int(id) >= len(m.supplies) || !m.supplies[id].live {
		panic(fmt.Sprintf("wmatch: no live supply %d", id))
	}

	return &m.supplies[id]
}

func (m *Matcher[D, S]) mustNotBeSpecial(op string) {
	if m.special {
		panic("wmatch: " + op + " called in special mode")
	}
}

func (m *Matcher[D, S]) mustBeCategory(c Category) {
	if c < 0 || int(c) >= m.categories {
		panic(fmt.Sprintf("wmatch: unknown category %d", c))
	}
}

func dropEdge(edges []edge, s SupplyID) []edge {
	for i, e := range edges {
		if e.supply == s {
			return append(edges[:i], edges[i+1:]...)
		}
	}

	return edges
}
