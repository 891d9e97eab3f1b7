package elm

import (
	"fmt"

	"github.com/katalvlaran/khelm/soln"
	"github.com/katalvlaran/khelm/wmatch"
)

// DemandID is the stable handle of a Demand within its Elm.
type DemandID int

// DemandGroup holds the demands of one child node, plus an optional
// restriction to a set of zones.
type DemandGroup struct {
	elm      *Elm
	index    int
	node     *soln.Node
	demands  []*Demand
	cat      wmatch.Category
	zones    []*soln.Zone
	zoneKeys map[int]bool
}

// Node returns the child node.
func (g *DemandGroup) Node() *soln.Node { return g.node }

// Demands returns the group's demands.
func (g *DemandGroup) Demands() []*Demand { return g.demands }

// Zones returns the zones the group is restricted to, empty for none.
func (g *DemandGroup) Zones() []*soln.Zone { return g.zones }

// ZoneCount returns len(Zones()).
func (g *DemandGroup) ZoneCount() int { return len(g.zones) }

// ContainsZone reports whether z (nil for no zone) is in the restriction.
func (g *DemandGroup) ContainsZone(z *soln.Zone) bool {
	return g.zoneKeys[zoneKey(z)]
}

// AddZone adds z to the restriction. Panics if already present.
func (g *DemandGroup) AddZone(z *soln.Zone) {
	k := zoneKey(z)
	if g.zoneKeys[k] {
		panic(fmt.Sprintf("elm: AddZone: %s already restricted to zone %v", g.node.ID(), z))
	}
	g.zoneKeys[k] = true
	g.zones = append(g.zones, z)
	g.changed()
}

// DeleteZone removes z from the restriction. Panics if absent.
func (g *DemandGroup) DeleteZone(z *soln.Zone) {
	k := zoneKey(z)
	if !g.zoneKeys[k] {
		panic(fmt.Sprintf("elm: DeleteZone: %s not restricted to zone %v", g.node.ID(), z))
	}
	delete(g.zoneKeys, k)
	for i, x := range g.zones {
		if zoneKey(x) == k {
			g.zones = append(g.zones[:i], g.zones[i+1:]...)

			break
		}
	}
	g.changed()
}

// admits reports whether the restriction lets s through.
func (g *DemandGroup) admits(s *Supply) bool {
	if len(g.zones) == 0 {
		return true
	}
	for _, k := range s.zoneKeys {
		if !g.zoneKeys[k] {
			return false
		}
	}

	return true
}

func (g *DemandGroup) changed() {
	for _, d := range g.demands {
		g.elm.wm.DemandDirty(d.node)
	}
}

// Demand is one child meet awaiting a place in the parent node.
type Demand struct {
	id    DemandID
	group *DemandGroup
	meet  *soln.Meet
	node  wmatch.DemandID
}

// ID returns the demand's handle.
func (d *Demand) ID() DemandID { return d.id }

// Group returns the demand's group.
func (d *Demand) Group() *DemandGroup { return d.group }

// Meet returns the child meet.
func (d *Demand) Meet() *soln.Meet { return d.meet }

func (d *Demand) String() string { return d.meet.ID() }

// Demand returns the demand with handle id. Panics on a bad handle.
func (e *Elm) Demand(id DemandID) *Demand {
	if id < 0 || int(id) >= len(e.demands) || e.demands[id] == nil {
		panic(fmt.Sprintf("elm: no demand %d", id))
	}

	return e.demands[id]
}

// DemandHasChanged tells the matcher that d's edges must be recomputed.
func (e *Elm) DemandHasChanged(d *Demand) {
	e.wm.DemandDirty(d.node)
}
