package soln

import (
	"fmt"

	"github.com/katalvlaran/khelm/cost"
)

// Tag names the kind of a Monitor.
type Tag int

const (
	TagAvoidClashes Tag = iota
	TagPreferTimes
	TagSpreadEvents
	TagLimitIdleTimes
	TagClusterBusyTimes
	TagLimitBusyTimes
)

var tagNames = [...]string{
	TagAvoidClashes:     "AvoidClashes",
	TagPreferTimes:      "PreferTimes",
	TagSpreadEvents:     "SpreadEvents",
	TagLimitIdleTimes:   "LimitIdleTimes",
	TagClusterBusyTimes: "ClusterBusyTimes",
	TagLimitBusyTimes:   "LimitBusyTimes",
}

func (t Tag) String() string {
	if t < 0 || int(t) >= len(tagNames) {
		return fmt.Sprintf("Tag(%d)", int(t))
	}

	return tagNames[t]
}

// Monitor measures one aspect of a solution. Its cost is its weight times
// its deviation, and counts towards the solution cost only while attached.
type Monitor interface {
	ID() string
	Tag() Tag
	// Resource returns the monitored resource, or nil for event monitors.
	Resource() *Resource
	Attached() bool
	Attach()
	Detach()
	// Deviation returns the current amount of violation.
	Deviation() int
	// Cost returns Deviation scaled by the monitor's weight.
	Cost() cost.Cost

	base() *monitorBase
	weight() cost.Cost
	deviation(b *busyTimes) int
}

type monitorBase struct {
	soln     *Soln
	id       string
	tag      Tag
	resource *Resource
	w        cost.Cost
	attached bool
}

func (b *monitorBase) ID() string          { return b.id }
func (b *monitorBase) Tag() Tag            { return b.tag }
func (b *monitorBase) Resource() *Resource { return b.resource }
func (b *monitorBase) Attached() bool      { return b.attached }
func (b *monitorBase) base() *monitorBase  { return b }
func (b *monitorBase) weight() cost.Cost   { return b.w }

func (b *monitorBase) setAttached(m Monitor, v bool) {
	if b.attached == v {
		return
	}
	b.soln.record(op{kind: opAttach, monitor: m, attached: b.attached})
	b.attached = v
	b.soln.invalidate()
}

func (s *Soln) addMonitor(m Monitor) {
	s.monitors = append(s.monitors, m)
	s.invalidate()
}

func (s *Soln) newBase(id string, tag Tag, r *Resource, w cost.Cost) monitorBase {
	return monitorBase{soln: s, id: id, tag: tag, resource: r, w: w, attached: true}
}

// busyTimes caches, for one cost evaluation, how many meets of each
// resource run at each time.
type busyTimes struct {
	soln   *Soln
	counts map[*Resource][]int
}

func newBusyTimes(s *Soln) *busyTimes {
	return &busyTimes{soln: s, counts: make(map[*Resource][]int)}
}

func (b *busyTimes) of(r *Resource) []int {
	if c, ok := b.counts[r]; ok {
		return c
	}
	c := make([]int, b.soln.inst.TimeCount())
	for _, m := range b.soln.resourceMeets[r] {
		t := m.AsstTime()
		if t == nil {
			continue
		}
		for i := 0; i < m.duration; i++ {
			if ti := t.Neighbour(i); ti != nil {
				c[ti.index]++
			}
		}
	}
	b.counts[r] = c

	return c
}

// outside returns how far v lies outside [lo, hi].
func outside(v, lo, hi int) int {
	switch {
	case v < lo:
		return lo - v
	case v > hi:
		return v - hi
	}

	return 0
}

// AvoidClashesMonitor counts the surplus attendances of a resource: a
// time where it attends k > 1 meets deviates by k-1.
type AvoidClashesMonitor struct {
	monitorBase
}

// AddAvoidClashesMonitor adds an attached clash monitor for r.
func (s *Soln) AddAvoidClashesMonitor(id string, r *Resource, w cost.Cost) *AvoidClashesMonitor {
	m := &AvoidClashesMonitor{monitorBase: s.newBase(id, TagAvoidClashes, r, w)}
	s.addMonitor(m)

	return m
}

func (m *AvoidClashesMonitor) Attach()         { m.setAttached(m, true) }
func (m *AvoidClashesMonitor) Detach()         { m.setAttached(m, false) }
func (m *AvoidClashesMonitor) Deviation() int  { return m.deviation(newBusyTimes(m.soln)) }
func (m *AvoidClashesMonitor) Cost() cost.Cost { return m.w.Scale(int64(m.Deviation())) }

func (m *AvoidClashesMonitor) deviation(b *busyTimes) int {
	dev := 0
	for _, c := range b.of(m.resource) {
		if c > 1 {
			dev += c - 1
		}
	}

	return dev
}

// PreferTimesMonitor counts the times of assigned meets lying outside a
// preferred time group.
type PreferTimesMonitor struct {
	monitorBase
	meets []*Meet
	group *TimeGroup
}

// AddPreferTimesMonitor adds an attached monitor preferring group for meets.
func (s *Soln) AddPreferTimesMonitor(id string, meets []*Meet, group *TimeGroup, w cost.Cost) *PreferTimesMonitor {
	m := &PreferTimesMonitor{
		monitorBase: s.newBase(id, TagPreferTimes, nil, w),
		meets:       append([]*Meet(nil), meets...),
		group:       group,
	}
	s.addMonitor(m)

	return m
}

func (m *PreferTimesMonitor) Attach()         { m.setAttached(m, true) }
func (m *PreferTimesMonitor) Detach()         { m.setAttached(m, false) }
func (m *PreferTimesMonitor) Deviation() int  { return m.deviation(nil) }
func (m *PreferTimesMonitor) Cost() cost.Cost { return m.w.Scale(int64(m.Deviation())) }

func (m *PreferTimesMonitor) deviation(*busyTimes) int {
	dev := 0
	for _, mt := range m.meets {
		t := mt.AsstTime()
		if t == nil {
			continue
		}
		for i := 0; i < mt.duration; i++ {
			if !m.group.Contains(t.Neighbour(i)) {
				dev++
			}
		}
	}

	return dev
}

// SpreadEventsMonitor counts, for each limited time group of a spread
// constraint, how far the number of meets starting in it lies outside
// its limits.
type SpreadEventsMonitor struct {
	monitorBase
	meets      []*Meet
	constraint *SpreadConstraint
}

// AddSpreadEventsMonitor adds an attached monitor applying c to meets.
func (s *Soln) AddSpreadEventsMonitor(id string, c *SpreadConstraint, meets []*Meet, w cost.Cost) *SpreadEventsMonitor {
	m := &SpreadEventsMonitor{
		monitorBase: s.newBase(id, TagSpreadEvents, nil, w),
		meets:       append([]*Meet(nil), meets...),
		constraint:  c,
	}
	s.addMonitor(m)

	return m
}

func (m *SpreadEventsMonitor) Attach()         { m.setAttached(m, true) }
func (m *SpreadEventsMonitor) Detach()         { m.setAttached(m, false) }
func (m *SpreadEventsMonitor) Deviation() int  { return m.deviation(nil) }
func (m *SpreadEventsMonitor) Cost() cost.Cost { return m.w.Scale(int64(m.Deviation())) }

func (m *SpreadEventsMonitor) deviation(*busyTimes) int {
	dev := 0
	for _, lg := range m.constraint.Groups {
		n := 0
		for _, mt := range m.meets {
			if lg.Group.Contains(mt.AsstTime()) {
				n++
			}
		}
		dev += outside(n, lg.Min, lg.Max)
	}

	return dev
}

// LimitIdleTimesMonitor counts idle times of a resource: times of a group
// lying between its first and last busy time there, while the resource is
// free. The deviation is how far the total lies outside [Min, Max].
type LimitIdleTimesMonitor struct {
	monitorBase
	groups   []*TimeGroup
	min, max int
}

// AddLimitIdleTimesMonitor adds an attached idle-times monitor for r.
func (s *Soln) AddLimitIdleTimesMonitor(id string, r *Resource, groups []*TimeGroup, min, max int, w cost.Cost) *LimitIdleTimesMonitor {
	m := &LimitIdleTimesMonitor{
		monitorBase: s.newBase(id, TagLimitIdleTimes, r, w),
		groups:      append([]*TimeGroup(nil), groups...),
		min:         min,
		max:         max,
	}
	s.addMonitor(m)

	return m
}

func (m *LimitIdleTimesMonitor) Attach()         { m.setAttached(m, true) }
func (m *LimitIdleTimesMonitor) Detach()         { m.setAttached(m, false) }
func (m *LimitIdleTimesMonitor) Deviation() int  { return m.deviation(newBusyTimes(m.soln)) }
func (m *LimitIdleTimesMonitor) Cost() cost.Cost { return m.w.Scale(int64(m.Deviation())) }

func (m *LimitIdleTimesMonitor) deviation(b *busyTimes) int {
	busy := b.of(m.resource)
	idle := 0
	for _, g := range m.groups {
		first, last := -1, -1
		for i, t := range g.times {
			if busy[t.index] > 0 {
				if first < 0 {
					first = i
				}
				last = i
			}
		}
		for i := first + 1; first >= 0 && i < last; i++ {
			if busy[g.times[i].index] == 0 {
				idle++
			}
		}
	}

	return outside(idle, m.min, m.max)
}

// ClusterBusyTimesMonitor counts the groups in which a resource is busy at
// least once. The deviation is how far that count lies outside [Min, Max].
type ClusterBusyTimesMonitor struct {
	monitorBase
	groups   []*TimeGroup
	min, max int
}

// AddClusterBusyTimesMonitor adds an attached cluster monitor for r.
func (s *Soln) AddClusterBusyTimesMonitor(id string, r *Resource, groups []*TimeGroup, min, max int, w cost.Cost) *ClusterBusyTimesMonitor {
	m := &ClusterBusyTimesMonitor{
		monitorBase: s.newBase(id, TagClusterBusyTimes, r, w),
		groups:      append([]*TimeGroup(nil), groups...),
		min:         min,
		max:         max,
	}
	s.addMonitor(m)

	return m
}

func (m *ClusterBusyTimesMonitor) Attach()         { m.setAttached(m, true) }
func (m *ClusterBusyTimesMonitor) Detach()         { m.setAttached(m, false) }
func (m *ClusterBusyTimesMonitor) Deviation() int  { return m.deviation(newBusyTimes(m.soln)) }
func (m *ClusterBusyTimesMonitor) Cost() cost.Cost { return m.w.Scale(int64(m.Deviation())) }

func (m *ClusterBusyTimesMonitor) deviation(b *busyTimes) int {
	busy := b.of(m.resource)
	active := 0
	for _, g := range m.groups {
		for _, t := range g.times {
			if busy[t.index] > 0 {
				active++

				break
			}
		}
	}

	return outside(active, m.min, m.max)
}

// LimitBusyTimesMonitor limits the number of busy times of a resource in
// each group it is busy in at all.
type LimitBusyTimesMonitor struct {
	monitorBase
	groups   []*TimeGroup
	min, max int
}

// AddLimitBusyTimesMonitor adds an attached busy-times monitor for r.
func (s *Soln) AddLimitBusyTimesMonitor(id string, r *Resource, groups []*TimeGroup, min, max int, w cost.Cost) *LimitBusyTimesMonitor {
	m := &LimitBusyTimesMonitor{
		monitorBase: s.newBase(id, TagLimitBusyTimes, r, w),
		groups:      append([]*TimeGroup(nil), groups...),
		min:         min,
		max:         max,
	}
	s.addMonitor(m)

	return m
}

func (m *LimitBusyTimesMonitor) Attach()         { m.setAttached(m, true) }
func (m *LimitBusyTimesMonitor) Detach()         { m.setAttached(m, false) }
func (m *LimitBusyTimesMonitor) Deviation() int  { return m.deviation(newBusyTimes(m.soln)) }
func (m *LimitBusyTimesMonitor) Cost() cost.Cost { return m.w.Scale(int64(m.Deviation())) }

func (m *LimitBusyTimesMonitor) deviation(b *busyTimes) int {
	busy := b.of(m.resource)
	dev := 0
	for _, g := range m.groups {
		n := 0
		for _, t := range g.times {
			if busy[t.index] > 0 {
				n++
			}
		}
		if n > 0 {
			dev += outside(n, m.min, m.max)
		}
	}

	return dev
}
