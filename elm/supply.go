package elm

import (
	"fmt"

	"github.com/katalvlaran/khelm/soln"
	"github.com/katalvlaran/khelm/wmatch"
)

// SupplyID is the stable handle of a Supply within its Elm.
type SupplyID int

// SupplyGroup holds the supplies carved out of one parent meet. Its
// supplies always partition the meet's offsets.
type SupplyGroup struct {
	elm      *Elm
	index    int
	meet     *soln.Meet
	supplies []*Supply
	cat      wmatch.Category
}

// Meet returns the parent meet the group's supplies lie in.
func (g *SupplyGroup) Meet() *soln.Meet { return g.meet }

// Supplies returns the group's supplies in creation order.
func (g *SupplyGroup) Supplies() []*Supply { return g.supplies }

// SupplyCount returns the number of supplies in the group.
func (g *SupplyGroup) SupplyCount() int { return len(g.supplies) }

// Supply is a run of offsets [Offset, Offset+Duration) of a parent meet
// that one child meet of the same duration may occupy.
type Supply struct {
	id       SupplyID
	group    *SupplyGroup
	offset   int
	duration int
	removed  bool
	fixed    *Demand
	node     wmatch.SupplyID

	// distinct zones touched, in offset order; nil stands for no zone
	zones    []*soln.Zone
	zoneKeys []int
}

// ID returns the supply's handle.
func (s *Supply) ID() SupplyID { return s.id }

// Group returns the supply's group.
func (s *Supply) Group() *SupplyGroup { return s.group }

// Meet returns the parent meet the supply lies in.
func (s *Supply) Meet() *soln.Meet { return s.group.meet }

// Offset returns the first offset of the supply.
func (s *Supply) Offset() int { return s.offset }

// Duration returns the number of offsets the supply spans.
func (s *Supply) Duration() int { return s.duration }

// Removed reports whether the supply has been taken out of the matching.
func (s *Supply) Removed() bool { return s.removed }

// FixedDemand returns the demand the supply is reserved for, or nil.
func (s *Supply) FixedDemand() *Demand { return s.fixed }

// Zones returns the distinct zones of the supply's offsets, in offset
// order. A nil entry stands for offsets in no zone.
func (s *Supply) Zones() []*soln.Zone { return s.zones }

func (s *Supply) String() string {
	return fmt.Sprintf("%s+%d:%d", s.group.meet.ID(), s.offset, s.duration)
}

// zoneKey maps a zone to a small non-negative integer, 0 for no zone.
func zoneKey(z *soln.Zone) int {
	if z == nil {
		return 0
	}

	return z.Index() + 1
}

// setZones recomputes the zones of s from its meet's offset zones.
func (s *Supply) setZones() {
	s.zones = s.zones[:0]
	s.zoneKeys = s.zoneKeys[:0]
	seen := make(map[int]bool, 2)
	for i := s.offset; i < s.offset+s.duration; i++ {
		z := s.group.meet.OffsetZone(i)
		k := zoneKey(z)
		if !seen[k] {
			seen[k] = true
			s.zones = append(s.zones, z)
			s.zoneKeys = append(s.zoneKeys, k)
		}
	}
}

// newSupply creates a supply in g and registers it everywhere.
func (e *Elm) newSupply(g *SupplyGroup, offset, duration int) *Supply {
	s := &Supply{group: g, offset: offset, duration: duration}
	if n := len(e.freeSupplies); n > 0 {
		s.id = e.freeSupplies[n-1]
		e.freeSupplies = e.freeSupplies[:n-1]
		e.supplies[s.id] = s
	} else {
		s.id = SupplyID(len(e.supplies))
		e.supplies = append(e.supplies, s)
	}
	g.supplies = append(g.supplies, s)
	s.setZones()
	e.even.addSupply(s)
	s.node = e.wm.MakeSupply(s.id, g.cat)

	return s
}

// deleteSupply undoes newSupply.
func (e *Elm) deleteSupply(s *Supply) {
	e.even.deleteSupply(s)
	g := s.group
	for i, x := range g.supplies {
		if x == s {
			g.supplies = append(g.supplies[:i], g.supplies[i+1:]...)

			break
		}
	}
	e.wm.DeleteSupply(s.node)
	e.supplies[s.id] = nil
	e.freeSupplies = append(e.freeSupplies, s.id)
}

// updateSupply moves s to a new offset range.
func (e *Elm) updateSupply(s *Supply, offset, duration int) {
	e.even.deleteSupply(s)
	s.offset, s.duration = offset, duration
	e.even.addSupply(s)
	s.setZones()
	e.wm.SupplyDirty(s.node)
}

// Supply returns the live supply with handle id. Panics on a stale handle.
func (e *Elm) Supply(id SupplyID) *Supply {
	if id < 0 || int(id) >= len(e.supplies) || e.supplies[id] == nil {
		panic(fmt.Sprintf("elm: no live supply %d", id))
	}

	return e.supplies[id]
}

// SplitCheck reports whether s could be split to isolate the range
// [offset, offset+duration), and into how many pieces (1 to 3).
func (e *Elm) SplitCheck(s *Supply, offset, duration int) (count int, ok bool) {
	if s.fixed != nil || offset < s.offset || offset+duration > s.offset+s.duration {
		return 0, false
	}
	count = 1
	if offset > s.offset {
		count++
	}
	if offset+duration < s.offset+s.duration {
		count++
	}

	return count, true
}

// Split cuts s so that it covers exactly [offset, offset+duration). The
// offsets before and after, if any, become the new supplies left and
// right. It fails, changing nothing, when SplitCheck fails.
func (e *Elm) Split(s *Supply, offset, duration int) (left, right *Supply, ok bool) {
	if _, ok = e.SplitCheck(s, offset, duration); !ok {
		return nil, nil, false
	}
	if offset > s.offset {
		left = e.newSupply(s.group, s.offset, offset-s.offset)
		e.updateSupply(s, offset, s.offset+s.duration-offset)
	}
	if end := offset + duration; end < s.offset+s.duration {
		right = e.newSupply(s.group, end, s.offset+s.duration-end)
		e.updateSupply(s, s.offset, duration)
	}

	return left, right, true
}

// Merge is the inverse of Split: it absorbs left and right (either may be
// nil) back into s. Panics unless they are unfixed, in s's group and
// adjacent to s.
func (e *Elm) Merge(left, s, right *Supply) {
	if s.fixed != nil {
		panic(fmt.Sprintf("elm: Merge: %s has a fixed demand", s))
	}
	offset, duration := s.offset, s.duration
	if left != nil {
		if left.fixed != nil || left.group != s.group || left.offset+left.duration != s.offset {
			panic(fmt.Sprintf("elm: Merge: %s does not fit before %s", left, s))
		}
		offset = left.offset
		duration += left.duration
	}
	if right != nil {
		if right.fixed != nil || right.group != s.group || s.offset+s.duration != right.offset {
			panic(fmt.Sprintf("elm: Merge: %s does not fit after %s", right, s))
		}
		duration += right.duration
	}
	if right != nil {
		e.deleteSupply(right)
	}
	if left != nil {
		e.deleteSupply(left)
	}
	e.updateSupply(s, offset, duration)
}

// SetFixedDemand reserves s for d, or releases it when d is nil.
func (e *Elm) SetFixedDemand(s *Supply, d *Demand) {
	old := s.fixed
	s.fixed = d
	if old != nil {
		e.wm.DemandDirty(old.node)
	}
	if d != nil {
		e.wm.DemandDirty(d.node)
	}
	e.wm.SupplyDirty(s.node)
}

// Remove takes s out of the matching. Panics if already removed.
func (e *Elm) Remove(s *Supply) {
	if s.removed {
		panic(fmt.Sprintf("elm: Remove: %s already removed", s))
	}
	s.removed = true
	e.wm.SupplyDirty(s.node)
}

// Unremove puts s back into the matching. Panics if not removed.
func (e *Elm) Unremove(s *Supply) {
	if !s.removed {
		panic(fmt.Sprintf("elm: Unremove: %s not removed", s))
	}
	s.removed = false
	e.wm.SupplyDirty(s.node)
}
