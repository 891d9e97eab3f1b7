package elm

import (
	"fmt"
	"log/slog"

	"github.com/katalvlaran/khelm/cost"
	"github.com/katalvlaran/khelm/soln"
	"github.com/katalvlaran/khelm/wmatch"
)

// Elm is one layer matching session.
type Elm struct {
	layer *soln.Layer
	soln  *soln.Soln
	opts  Options
	log   *slog.Logger

	irregular    []soln.Monitor
	supplyGroups []*SupplyGroup
	demandGroups []*DemandGroup

	// arenas indexed by handle; nil slots are free
	supplies     []*Supply
	freeSupplies []SupplyID
	demands      []*Demand

	even evenness
	wm   *wmatch.Matcher[DemandID, SupplyID]
}

// irregularTags are the monitor kinds whose cost depends on how a
// resource's busy times are arranged rather than on clashes.
var irregularTags = map[soln.Tag]bool{
	soln.TagLimitIdleTimes:   true,
	soln.TagClusterBusyTimes: true,
	soln.TagLimitBusyTimes:   true,
}

// Make starts a matching session for layer.
//
// Steps:
//  1. Record the attached irregular monitors of the layer's resources.
//  2. Make one supply group per parent meet, holding one supply that
//     spans the whole meet.
//  3. Make one demand group per child node, holding one demand per meet.
//
// With diversification on, groups and demands are taken in rotated orders
// derived from the solution's diversifier.
func Make(layer *soln.Layer, opts ...Option) *Elm {
	o := buildOptions(opts)
	s := layer.Soln()
	e := &Elm{
		layer: layer,
		soln:  s,
		opts:  o,
		log:   o.Logger.With("layer", layer.ID()),
		even:  newEvenness(s.Instance()),
	}
	e.wm = wmatch.New[DemandID, SupplyID](e, wmatch.WithLogger(o.Logger))
	shift := e.shift()

	// 1) irregular monitors
	for _, r := range layer.Resources() {
		for _, m := range s.ResourceMonitors(r) {
			if m.Attached() && irregularTags[m.Tag()] {
				e.irregular = append(e.irregular, m)
			}
		}
	}

	// 2) supply groups
	meets := layer.ParentNode().Meets()
	for j := range meets {
		meet := meets[rotate(j+shift*7, len(meets))]
		g := &SupplyGroup{elm: e, index: j, meet: meet, cat: e.wm.NewCategory()}
		e.supplyGroups = append(e.supplyGroups, g)
		e.newSupply(g, 0, meet.Duration())
	}

	// 3) demand groups
	children := layer.ChildNodes()
	for i := range children {
		node := children[rotate(i+shift*3, len(children))]
		g := &DemandGroup{
			elm:      e,
			index:    i,
			node:     node,
			cat:      e.wm.NewCategory(),
			zoneKeys: make(map[int]bool),
		}
		e.demandGroups = append(e.demandGroups, g)
		nm := node.Meets()
		for j := range nm {
			d := &Demand{id: DemandID(len(e.demands)), group: g, meet: nm[rotate(j+shift*5, len(nm))]}
			e.demands = append(e.demands, d)
			g.demands = append(g.demands, d)
			d.node = e.wm.MakeDemand(d.id, g.cat)
		}
	}
	e.log.Debug("elm: made",
		"supply_groups", len(e.supplyGroups), "demands", len(e.demands), "irregular", len(e.irregular))

	return e
}

// Delete ends the session, releasing its matcher. The Elm must not be
// used afterwards.
func (e *Elm) Delete() {
	if e.wm.SpecialMode() {
		panic("elm: Delete called in special mode")
	}
	for _, s := range e.supplies {
		if s != nil {
			e.wm.DeleteSupply(s.node)
		}
	}
	for _, d := range e.demands {
		e.wm.DeleteDemand(d.node)
	}
	e.supplies, e.demands, e.freeSupplies = nil, nil, nil
	e.supplyGroups, e.demandGroups = nil, nil
	e.wm = nil
}

// rotate maps i onto [0, n), negative i included.
func rotate(i, n int) int {
	return ((i % n) + n) % n
}

func (e *Elm) shift() int {
	if e.opts.Diversify {
		return e.soln.Diversifier()
	}

	return 0
}

// Layer returns the layer being matched.
func (e *Elm) Layer() *soln.Layer { return e.layer }

// Options returns the session's options.
func (e *Elm) Options() Options { return e.opts }

// SupplyGroups returns the supply groups in creation order.
func (e *Elm) SupplyGroups() []*SupplyGroup { return e.supplyGroups }

// DemandGroups returns the demand groups in creation order.
func (e *Elm) DemandGroups() []*DemandGroup { return e.demandGroups }

// IrregularMonitors returns the irregular monitors found by Make.
func (e *Elm) IrregularMonitors() []soln.Monitor { return e.irregular }

// IrregularMonitorsAttached reports whether every irregular monitor is
// attached.
func (e *Elm) IrregularMonitorsAttached() bool {
	for _, m := range e.irregular {
		if !m.Attached() {
			return false
		}
	}

	return true
}

// DetachIrregularMonitors detaches every irregular monitor still attached.
func (e *Elm) DetachIrregularMonitors() {
	for _, m := range e.irregular {
		if m.Attached() {
			m.Detach()
		}
	}
}

// AttachIrregularMonitors attaches every irregular monitor not attached.
func (e *Elm) AttachIrregularMonitors() {
	for _, m := range e.irregular {
		if !m.Attached() {
			m.Attach()
		}
	}
}

// EdgeExists reports whether the demand with handle did may be matched to
// the supply with handle sid.
//
// An edge needs a live, unreserved (or reserved for did) supply of the
// demand's duration. If the demand's meet is already assigned, only the
// supply sitting exactly at that assignment qualifies. Otherwise the
// supply must pass the demand group's zone restriction, and the meet must
// be assignable there.
func (e *Elm) EdgeExists(did DemandID, sid SupplyID) bool {
	d, s := e.demands[did], e.supplies[sid]
	if s.removed || s.duration != d.meet.Duration() {
		return false
	}
	if s.fixed != nil && s.fixed != d {
		return false
	}
	if target := d.meet.Asst(); target != nil {
		return target == s.group.meet && d.meet.AsstOffset() == s.offset
	}
	if !d.group.admits(s) {
		return false
	}

	return d.meet.AssignCheck(s.group.meet, s.offset)
}

// EdgeCost returns the cost of an edge EdgeExists accepted: zero for an
// already assigned meet, otherwise the solution cost with the meet
// assigned there, times ChildlessMultiplier when its node is a leaf.
func (e *Elm) EdgeCost(did DemandID, sid SupplyID) int64 {
	d, s := e.demands[did], e.supplies[sid]
	if d.meet.Asst() != nil {
		return 0
	}
	if !d.meet.Assign(s.group.meet, s.offset) {
		panic(fmt.Sprintf("elm: EdgeCost: cannot assign %s to %s", d, s))
	}
	c := e.soln.Cost()
	if d.group.node.ChildCount() == 0 {
		c = c.Scale(ChildlessMultiplier)
	}
	if !d.meet.Unassign() {
		panic(fmt.Sprintf("elm: EdgeCost: cannot unassign %s", d))
	}

	return int64(c)
}

// BestUnmatched returns the number of demands a best matching leaves
// unmatched.
func (e *Elm) BestUnmatched() int {
	u, _ := e.wm.Eval()

	return u
}

// BestCost returns the total edge cost of a best matching.
func (e *Elm) BestCost() cost.Cost {
	_, c := e.wm.Eval()

	return cost.Cost(c)
}

// DemandBestSupply returns the supply matched to d by a best matching and
// the edge's cost.
func (e *Elm) DemandBestSupply(d *Demand) (*Supply, cost.Cost, bool) {
	sid, c, ok := e.wm.DemandAssignedTo(d.node)
	if !ok {
		return nil, 0, false
	}

	return e.supplies[sid], cost.Cost(c), true
}

// BestAssignMeets assigns every unassigned demand meet to its best
// supply, reporting whether all demand meets ended up assigned.
func (e *Elm) BestAssignMeets() bool {
	all := true
	for _, g := range e.demandGroups {
		for _, d := range g.demands {
			if d.meet.Asst() != nil {
				continue
			}
			if s, _, ok := e.DemandBestSupply(d); ok {
				if !d.meet.Assign(s.group.meet, s.offset) {
					panic(fmt.Sprintf("elm: BestAssignMeets: cannot assign %s to %s", d, s))
				}
			}
			if d.meet.Asst() == nil {
				all = false
			}
		}
	}

	return all
}

// SpecialModeBegin switches the matcher to special mode, in which changes
// only ever remove edges (or restore ones removed) without costing them
// again. Supplies must not be split or merged until SpecialModeEnd.
func (e *Elm) SpecialModeBegin() { e.wm.SpecialModeBegin() }

// SpecialModeEnd leaves special mode.
func (e *Elm) SpecialModeEnd() { e.wm.SpecialModeEnd() }
