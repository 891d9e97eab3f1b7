package elm

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/khelm/cost"
	"github.com/katalvlaran/khelm/soln"
)

// newZoneIrregularity is added to a zone's irregularity when no earlier
// group uses it.
const newZoneIrregularity = 10

// regularityCost scores one zone restriction. Fields compare in order.
type regularityCost struct {
	infeasibility       int
	withoutChildrenCost cost.Cost
	zonesCost           int
	withChildrenCost    cost.Cost
}

func (rc regularityCost) less(o regularityCost) bool {
	switch {
	case rc.infeasibility != o.infeasibility:
		return rc.infeasibility < o.infeasibility
	case rc.withoutChildrenCost != o.withoutChildrenCost:
		return rc.withoutChildrenCost < o.withoutChildrenCost
	case rc.zonesCost != o.zonesCost:
		return rc.zonesCost < o.zonesCost
	}

	return rc.withChildrenCost < o.withChildrenCost
}

// restrictedGroup is a demand group under search for its zone set.
type restrictedGroup struct {
	solver       *nodeSolver
	group        *DemandGroup
	allZones     []*soln.Zone
	bestZones    []*soln.Zone
	irregularity int
}

// nodeSolver runs the zone-set search over every demand group.
type nodeSolver struct {
	elm    *Elm
	groups []*restrictedGroup
}

// baseEdge reports whether d could use s, ignoring zone restrictions and
// removal.
func (e *Elm) baseEdge(d *Demand, s *Supply) bool {
	if s.duration != d.meet.Duration() {
		return false
	}
	if s.fixed != nil && s.fixed != d {
		return false
	}
	if target := d.meet.Asst(); target != nil {
		return target == s.group.meet && d.meet.AsstOffset() == s.offset
	}

	return d.meet.AssignCheck(s.group.meet, s.offset)
}

// newRestrictedGroup collects the zones of every supply some demand of g
// could use.
func (ns *nodeSolver) newRestrictedGroup(g *DemandGroup) *restrictedGroup {
	rg := &restrictedGroup{solver: ns, group: g}
	seen := make(map[int]bool)
	for _, d := range g.demands {
		for _, sg := range ns.elm.supplyGroups {
			for _, s := range sg.supplies {
				if !ns.elm.baseEdge(d, s) {
					continue
				}
				for i, z := range s.zones {
					if k := s.zoneKeys[i]; !seen[k] {
						seen[k] = true
						rg.allZones = append(rg.allZones, z)
					}
				}
			}
		}
	}

	return rg
}

func offsetCount(z *soln.Zone) int {
	if z == nil {
		return 0
	}

	return z.MeetOffsetCount()
}

// zoneIrregularity is the offset count of z, plus a penalty unless a
// group searched before rg already uses z.
func (rg *restrictedGroup) zoneIrregularity(z *soln.Zone) int {
	irr := offsetCount(z)
	for _, other := range rg.solver.groups {
		if other == rg {
			return irr + newZoneIrregularity
		}
		if other.group.ContainsZone(z) {
			return irr
		}
	}

	return irr + newZoneIrregularity
}

func (rg *restrictedGroup) pushZone(z *soln.Zone, irr int) {
	rg.group.AddZone(z)
	rg.irregularity += irr
}

func (rg *restrictedGroup) popZone(z *soln.Zone, irr int) {
	rg.group.DeleteZone(z)
	rg.irregularity -= irr
	if rg.irregularity < 0 {
		panic(fmt.Sprintf("elm: zone irregularity of %s went negative", rg.group.node.ID()))
	}
}

// regularityCost evaluates the current restrictions of all groups, with
// rg's own irregularity as the zones component.
func (rg *restrictedGroup) regularityCost() regularityCost {
	e := rg.solver.elm
	rc := regularityCost{infeasibility: e.BestUnmatched(), zonesCost: rg.irregularity}
	for _, g := range e.demandGroups {
		for _, d := range g.demands {
			if d.meet.Asst() != nil {
				continue
			}
			_, c, ok := e.DemandBestSupply(d)
			if !ok {
				continue
			}
			if g.node.ChildCount() == 0 {
				rc.withoutChildrenCost = rc.withoutChildrenCost.Add(c)
			} else {
				rc.withChildrenCost = rc.withChildrenCost.Add(c)
			}
		}
	}

	return rc
}

// tryCurrent keeps the current restriction of rg if it beats best.
func (rg *restrictedGroup) tryCurrent(best *regularityCost) {
	rc := rg.regularityCost()
	if rc.less(*best) {
		*best = rc
		rg.bestZones = append(rg.bestZones[:0], rg.group.zones...)
	}
}

// trySetsOfSize tries every subset of allZones[index:] of size count,
// on top of the zones already pushed.
func (rg *restrictedGroup) trySetsOfSize(index, count int, best *regularityCost) {
	switch {
	case index+count > len(rg.allZones):
		return
	case count == 0:
		rg.tryCurrent(best)
	default:
		z := rg.allZones[index]
		irr := rg.zoneIrregularity(z)
		rg.pushZone(z, irr)
		rg.trySetsOfSize(index+1, count-1, best)
		rg.popZone(z, irr)
		rg.trySetsOfSize(index+1, count, best)
	}
}

// tryFullSet tries the restriction to every reachable zone.
func (rg *restrictedGroup) tryFullSet(best *regularityCost) {
	irrs := make([]int, len(rg.allZones))
	for i, z := range rg.allZones {
		irrs[i] = rg.zoneIrregularity(z)
		rg.pushZone(z, irrs[i])
	}
	rg.tryCurrent(best)
	for i := len(rg.allZones) - 1; i >= 0; i-- {
		rg.popZone(rg.allZones[i], irrs[i])
	}
}

// diversify sorts allZones by decreasing offset count and rotates each
// run of equal counts by a diversifier-chosen amount.
func (rg *restrictedGroup) diversify() {
	zs := rg.allZones
	sort.SliceStable(zs, func(i, j int) bool { return offsetCount(zs[i]) > offsetCount(zs[j]) })
	s := rg.solver.elm.soln
	for i, j := 0, 0; i < len(zs); i = j {
		for j = i + 1; j < len(zs) && offsetCount(zs[j]) == offsetCount(zs[i]); j++ {
		}
		r := s.DiversifierChoose(j - i)
		run := append([]*soln.Zone(nil), zs[i:j]...)
		for k := range run {
			zs[i+k] = run[(k+r)%len(run)]
		}
	}
}

// ImproveNodeRegularity restricts each demand group to a small set of the
// parent node's zones, chosen to keep as many demands matched as before
// while making child nodes land in the same zones.
//
// Steps:
//  1. Skip unless the parent node has zones.
//  2. In special mode, find each group's reachable zones; skip if some
//     group reaches none.
//  3. Sort groups by decreasing node duration, increasing child count and
//     node index; optionally diversify each group's zone order.
//  4. For each group in turn, try all zone sets of size 1 and 2 and the
//     full set, and keep the one of least regularity cost.
func (e *Elm) ImproveNodeRegularity() {
	// 1) zones needed
	if e.layer.ParentNode().ZoneCount() == 0 {
		return
	}

	// 2) reachable zones
	e.SpecialModeBegin()
	defer e.SpecialModeEnd()
	ns := &nodeSolver{elm: e}
	for _, g := range e.demandGroups {
		rg := ns.newRestrictedGroup(g)
		if len(rg.allZones) == 0 {
			e.log.Debug("elm: node regularity skipped", "node", g.node.ID())

			return
		}
		ns.groups = append(ns.groups, rg)
	}

	// 3) order
	sort.SliceStable(ns.groups, func(i, j int) bool {
		a, b := ns.groups[i].group.node, ns.groups[j].group.node
		if a.Duration() != b.Duration() {
			return a.Duration() > b.Duration()
		}
		if a.ChildCount() != b.ChildCount() {
			return a.ChildCount() < b.ChildCount()
		}

		return a.Index() < b.Index()
	})
	if e.opts.Diversify {
		for _, rg := range ns.groups {
			rg.diversify()
		}
	}

	// 4) search
	for _, rg := range ns.groups {
		if rg.group.ZoneCount() != 0 {
			panic(fmt.Sprintf("elm: %s already has a zone restriction", rg.group.node.ID()))
		}
		best := regularityCost{
			infeasibility:       e.BestUnmatched(),
			withoutChildrenCost: cost.Max,
			zonesCost:           math.MaxInt,
			withChildrenCost:    cost.Max,
		}
		for count := 1; count <= 2; count++ {
			rg.trySetsOfSize(0, count, &best)
		}
		rg.tryFullSet(&best)
		if len(rg.bestZones) == 0 {
			panic(fmt.Sprintf("elm: no zone set found for %s", rg.group.node.ID()))
		}
		for _, z := range rg.bestZones {
			rg.pushZone(z, rg.zoneIrregularity(z))
		}
		e.log.Debug("elm: node regularity",
			"node", rg.group.node.ID(), "zones", len(rg.bestZones),
			"infeasibility", best.infeasibility, "irregularity", best.zonesCost)
	}
}
