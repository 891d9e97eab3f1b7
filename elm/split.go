package elm

import (
	"math"
	"sort"

	"github.com/katalvlaran/khelm/cost"
	"github.com/katalvlaran/khelm/soln"
)

// zoneType says how a candidate split must sit relative to the parent
// meet's zones.
type zoneType int

const (
	// zoneExact: the split range is exactly one run of a single zone.
	zoneExact zoneType = iota
	// zoneInexact: any range that is not zoneExact.
	zoneInexact
	// zoneIgnore: zones are not considered.
	zoneIgnore
)

func (zt zoneType) String() string {
	switch zt {
	case zoneExact:
		return "exact"
	case zoneInexact:
		return "inexact"
	}

	return "ignore"
}

// exactZone reports whether [offset, offset+duration) of meet lies in one
// zone whose run neither continues before offset nor after the range.
func exactZone(meet *soln.Meet, offset, duration int) bool {
	z := meet.OffsetZone(offset)
	for i := offset + 1; i < offset+duration; i++ {
		if meet.OffsetZone(i) != z {
			return false
		}
	}
	if offset > 0 && meet.OffsetZone(offset-1) == z {
		return false
	}
	if end := offset + duration; end < meet.Duration() && meet.OffsetZone(end) == z {
		return false
	}

	return true
}

func (zt zoneType) holds(meet *soln.Meet, offset, duration int) bool {
	switch zt {
	case zoneExact:
		return exactZone(meet, offset, duration)
	case zoneInexact:
		return !exactZone(meet, offset, duration)
	}

	return true
}

// splitCandidate is the best split found so far by repair.
type splitCandidate struct {
	supply     *Supply
	offset     int
	cost       cost.Cost
	unevenness int
}

// trySplit splits s at [offset, offset+duration), records it in best if
// it lowers the unmatched count below pre and beats best on (cost,
// unevenness), and merges s back.
func (e *Elm) trySplit(s *Supply, offset, duration int, inTwo bool, zt zoneType, pre int, best *splitCandidate) {
	count, ok := e.SplitCheck(s, offset, duration)
	if !ok || (count == 2) != inTwo || !zt.holds(s.group.meet, offset, duration) {
		return
	}
	left, right, _ := e.Split(s, offset, duration)
	if e.BestUnmatched() < pre {
		c, u := e.BestCost(), e.Unevenness()
		if c < best.cost || (c == best.cost && u < best.unevenness) {
			*best = splitCandidate{supply: s, offset: offset, cost: c, unevenness: u}
		}
	}
	e.Merge(left, s, right)
}

// repair looks for one split of one supply that lets d (or some other
// demand, by a chain of rematching) be matched, and applies the best one
// found. inTwo selects splits leaving two pieces rather than three.
//
// Supply groups are visited starting from shift. Unit-duration demands
// scan offsets from the back of each supply, others from the front.
func (e *Elm) repair(d *Demand, inTwo bool, zt zoneType, shift int) bool {
	pre := e.BestUnmatched()
	best := splitCandidate{cost: cost.Max, unevenness: math.MaxInt}
	duration := d.meet.Duration()
	n := len(e.supplyGroups)
	for i := 0; i < n; i++ {
		g := e.supplyGroups[rotate(i+shift, n)]
		for _, s := range append([]*Supply(nil), g.supplies...) {
			if duration >= s.duration || s.fixed != nil {
				continue
			}
			if duration == 1 {
				for off := s.offset + s.duration - 1; off >= s.offset; off-- {
					e.trySplit(s, off, 1, inTwo, zt, pre, &best)
				}
			} else {
				for off := s.offset; off+duration <= s.offset+s.duration; off++ {
					e.trySplit(s, off, duration, inTwo, zt, pre, &best)
				}
			}
		}
	}
	if best.supply == nil {
		return false
	}
	e.Split(best.supply, best.offset, duration)
	e.log.Debug("elm: repaired",
		"demand", d.String(), "supply", best.supply.String(), "in_two", inTwo, "zones", zt.String(),
		"cost", best.cost.String(), "unevenness", best.unevenness)

	return true
}

// ensureAssignedSupply reserves for d, whose meet is already assigned, a
// supply covering exactly its assignment, splitting one if needed.
func (e *Elm) ensureAssignedSupply(d *Demand) {
	target, offset, duration := d.meet.Asst(), d.meet.AsstOffset(), d.meet.Duration()
	for _, g := range e.supplyGroups {
		if g.meet != target {
			continue
		}
		for _, s := range append([]*Supply(nil), g.supplies...) {
			if _, _, ok := e.Split(s, offset, duration); ok {
				e.SetFixedDemand(s, d)

				return
			}
		}
	}
	e.log.Debug("elm: no supply covers assigned meet", "demand", d.String())
}

// addDemand brings d into the matching by unfixing its meet, then makes
// room for it if that did not lower the unmatched count.
func (e *Elm) addDemand(d *Demand, shift int) {
	pre := e.BestUnmatched()
	d.meet.Unfix()
	e.DemandHasChanged(d)
	post := e.BestUnmatched()
	switch {
	case d.meet.Asst() != nil:
		e.ensureAssignedSupply(d)
	case post >= pre:
		if e.layer.ParentNode().ZoneCount() > 0 {
			_ = e.repair(d, true, zoneExact, shift) ||
				e.repair(d, true, zoneInexact, shift) ||
				e.repair(d, false, zoneExact, shift) ||
				e.repair(d, false, zoneInexact, shift)
		} else {
			_ = e.repair(d, true, zoneIgnore, shift) ||
				e.repair(d, false, zoneIgnore, shift)
		}
	}
}

func domainCount(m *soln.Meet) int {
	if m.Domain() == nil {
		return 1
	}

	return m.Domain().Count()
}

// demandLess orders demands for SplitSupplies: assigned meets first, then
// by increasing domain size, then by decreasing demand, then by meet
// index. When diversifying, demands within 3 of each other tie and meet
// index breaks the tie in a diversifier-chosen direction.
func (e *Elm) demandLess(a, b *Demand) bool {
	ma, mb := a.meet, b.meet
	if (ma.Asst() != nil) != (mb.Asst() != nil) {
		return ma.Asst() != nil
	}
	if ca, cb := domainCount(ma), domainCount(mb); ca != cb {
		return ca < cb
	}
	da, db := ma.Demand(), mb.Demand()
	if !e.opts.Diversify {
		if da != db {
			return da > db
		}

		return ma.Index() < mb.Index()
	}
	if da-db >= 3 || db-da >= 3 {
		return da > db
	}
	if e.soln.DiversifierChoose(2) == 0 {
		return ma.Index() < mb.Index()
	}

	return ma.Index() > mb.Index()
}

// maxUnassignedDuration returns the longest duration of a demand whose
// meet is unassigned, or 0.
func (e *Elm) maxUnassignedDuration() int {
	m := 0
	for _, d := range e.demands {
		if d.meet.Asst() == nil && d.meet.Duration() > m {
			m = d.meet.Duration()
		}
	}

	return m
}

// splitAllTo splits every unreserved supply longer than duration into
// pieces of that duration, the last piece taking any remainder.
func (e *Elm) splitAllTo(duration int) {
	for _, g := range e.supplyGroups {
		for j := 0; j < len(g.supplies); j++ {
			s := g.supplies[j]
			if s.duration > duration && s.fixed == nil {
				e.Split(s, s.offset, duration)
			}
		}
	}
}

// SplitSupplies grows the segmentation of the parent meets, one demand at
// a time, until every demand that can be matched is.
//
// Steps:
//  1. Track evenness over spread's time groups, if spread is non-nil.
//  2. Sort the demands (see demandLess) and note the longest unassigned
//     duration; if it is 1, cut every supply into unit pieces now.
//  3. Fix every demand meet, which hides all demands from the matching.
//  4. Add the demands back one by one, repairing the segmentation
//     whenever one fails to match.
//  5. Cut supplies still longer than the longest unassigned duration.
func (e *Elm) SplitSupplies(spread *soln.SpreadConstraint) {
	// 1) evenness
	if spread != nil {
		for _, tg := range spread.TimeGroups() {
			e.UnevennessTimeGroupAdd(tg)
		}
	}

	// 2) order and the unit special case
	all := make([]*Demand, 0, len(e.demands))
	for _, g := range e.demandGroups {
		all = append(all, g.demands...)
	}
	sort.SliceStable(all, func(i, j int) bool { return e.demandLess(all[i], all[j]) })
	maxDuration := e.maxUnassignedDuration()
	if maxDuration == 1 {
		e.splitAllTo(1)
	}

	// 3) hide every demand
	for _, d := range all {
		d.meet.Fix()
	}

	// 4) add them back
	shift := e.shift()
	for i, d := range all {
		e.addDemand(d, shift+i)
	}

	// 5) oversize supplies
	if maxDuration > 1 {
		e.splitAllTo(maxDuration)
	}
	e.log.Debug("elm: supplies split",
		"unmatched", e.BestUnmatched(), "cost", e.BestCost().String(), "unevenness", e.Unevenness())
}
