package elm_test

import (
	"bytes"
	"io"
	"log/slog"
	"sort"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/khelm/cost"
	"github.com/katalvlaran/khelm/elm"
	"github.com/katalvlaran/khelm/soln"
)

func segmentation(e *elm.Elm) string {
	var b bytes.Buffer
	e.DebugSegmentation(&b)

	return b.String()
}

func offsets(meets ...*soln.Meet) []int {
	var out []int
	for _, m := range meets {
		out = append(out, m.AsstOffset())
	}
	sort.Ints(out)

	return out
}

// TestLayerAssignSplitsInHalves covers two children of duration 2 in a
// parent of duration 4: the parent splits into 2+2 and each child gets one.
func TestLayerAssignSplitsInHalves(t *testing.T) {
	f := newFixture(t, 1, 4)
	week := f.cycleMeet(t, "week", 0, 4)
	a := f.child(t, "a", 2)
	b := f.child(t, "b", 2)
	l := f.layer(t, []*soln.Node{a, b})

	e := elm.Make(l)
	e.DetachIrregularMonitors()
	e.SplitSupplies(nil)
	assert.Equal(t, "week: 2 2\n", segmentation(e))
	assert.Equal(t, 0, e.BestUnmatched())
	e.Delete()

	require.True(t, elm.LayerAssign(l, nil))
	am, bm := a.Meets()[0], b.Meets()[0]
	assert.Equal(t, week, am.Asst())
	assert.Equal(t, week, bm.Asst())
	assert.Equal(t, []int{0, 2}, offsets(am, bm))
	assert.False(t, am.Fixed(), "meets are left unfixed")
	assert.False(t, bm.Fixed())
}

// TestPreassignedMeetGetsReservedSupply covers a child meet already at
// offset 1: its supply is carved out and reserved, the rest is reused.
func TestPreassignedMeetGetsReservedSupply(t *testing.T) {
	f := newFixture(t, 1, 4)
	week := f.cycleMeet(t, "week", 0, 4)
	c := f.child(t, "c", 1, 2)
	l := f.layer(t, []*soln.Node{c})
	c1, c2 := c.Meets()[0], c.Meets()[1]
	require.True(t, c1.Assign(week, 1))

	e := elm.Make(l)
	e.SplitSupplies(nil)
	got := segmentation(e)
	assert.Equal(t, "week: 1 1* 2\n", got)
	g := goldie.New(t)
	g.Assert(t, "preassigned_segmentation", []byte(got))
	e.Delete()

	require.True(t, elm.LayerAssign(l, nil))
	assert.Equal(t, 1, c1.AsstOffset(), "preassigned meet stays put")
	assert.Equal(t, week, c2.Asst())
	assert.Equal(t, 2, c2.AsstOffset())
}

func TestLayerAssignReportsUnplaceable(t *testing.T) {
	f := newFixture(t, 1, 4)
	f.cycleMeet(t, "week", 0, 4)
	a := f.child(t, "a", 3)
	b := f.child(t, "b", 3)
	l := f.layer(t, []*soln.Node{a, b})

	assert.False(t, elm.LayerAssign(l, nil))
	placed := 0
	for _, n := range []*soln.Node{a, b} {
		if n.Meets()[0].Asst() != nil {
			placed++
		}
	}
	assert.Equal(t, 1, placed, "one of the two fits")
}

func TestDurationOneSplitsToUnits(t *testing.T) {
	f := newFixture(t, 1, 3)
	f.cycleMeet(t, "week", 0, 3)
	a := f.child(t, "a", 1)
	l := f.layer(t, []*soln.Node{a})

	e := elm.Make(l)
	defer e.Delete()
	e.SplitSupplies(nil)
	assert.Equal(t, "week: 1 1 1\n", segmentation(e))
}

func TestSplitSuppliesCutsOversize(t *testing.T) {
	f := newFixture(t, 1, 6)
	f.cycleMeet(t, "week", 0, 6)
	a := f.child(t, "a", 2)
	l := f.layer(t, []*soln.Node{a})

	e := elm.Make(l)
	defer e.Delete()
	e.SplitSupplies(nil)
	assert.Equal(t, "week: 2 2 2\n", segmentation(e))
}

func TestUnevenness(t *testing.T) {
	f := newFixture(t, 1, 4)
	f.cycleMeet(t, "week", 0, 4)
	a := f.child(t, "a", 2)
	l := f.layer(t, []*soln.Node{a})
	front, err := f.inst.AddTimeGroup("front", f.times[0], f.times[1])
	require.NoError(t, err)

	e := elm.Make(l)
	defer e.Delete()
	e.UnevennessTimeGroupAdd(front)
	assert.Equal(t, 1, e.Unevenness(), "the whole-meet supply starts at D1_1")

	s := e.SupplyGroups()[0].Supplies()[0]
	left, _, ok := e.Split(s, 2, 2)
	require.True(t, ok)
	assert.Equal(t, 1, e.Unevenness(), "s now starts at D1_3")

	_, _, ok = e.Split(left, 1, 1)
	require.True(t, ok)
	assert.Equal(t, 3, e.Unevenness(), "two starts in front cost 1+2")
}

func TestSpreadCountsUnitStarts(t *testing.T) {
	f := newFixture(t, 2, 2)
	f.cycleMeet(t, "mon", 0, 2)
	f.cycleMeet(t, "tue", 2, 2)
	a := f.child(t, "a", 1)
	b := f.child(t, "b", 1)
	l := f.layer(t, []*soln.Node{a, b})
	spread := &soln.SpreadConstraint{ID: "days", Groups: []soln.LimitedTimeGroup{
		{Group: f.days[0], Min: 0, Max: 1},
		{Group: f.days[1], Min: 0, Max: 1},
	}}

	e := elm.Make(l)
	defer e.Delete()
	e.SplitSupplies(spread)
	assert.Equal(t, 0, e.BestUnmatched())
	assert.Equal(t, 6, e.Unevenness(), "two unit starts per day cost 1+2 each")
}

// regularityFixture is a parent meet of four offsets in zones z1 {0,1}
// and z2 {2,3}, with two children of one meet of duration 2 each.
func regularityFixture(t *testing.T) (*fixture, *soln.Layer, *soln.Zone, *soln.Zone) {
	f := newFixture(t, 1, 4)
	week := f.cycleMeet(t, "week", 0, 4)
	z1 := f.zone(t, "z1", week, 0, 1)
	z2 := f.zone(t, "z2", week, 2, 3)
	a := f.child(t, "a", 2)
	b := f.child(t, "b", 2)

	return f, f.layer(t, []*soln.Node{a, b}), z1, z2
}

func TestImproveNodeRegularity(t *testing.T) {
	_, l, z1, z2 := regularityFixture(t)
	e := elm.Make(l)
	defer e.Delete()
	e.SplitSupplies(nil)
	require.Equal(t, "week: 2 2\n", segmentation(e))
	require.Equal(t, 0, e.BestUnmatched())

	e.ImproveNodeRegularity()
	assert.Equal(t, 0, e.BestUnmatched(), "restriction keeps every demand matched")
	ga, gb := e.DemandGroups()[0], e.DemandGroups()[1]
	assert.Equal(t, []*soln.Zone{z1}, ga.Zones())
	assert.Equal(t, []*soln.Zone{z2}, gb.Zones())

	da, db := ga.Demands()[0], gb.Demands()[0]
	for _, s := range e.SupplyGroups()[0].Supplies() {
		inZ1 := s.Offset() == 0
		assert.Equal(t, inZ1, e.EdgeExists(da.ID(), s.ID()), "a only reaches z1: %s", s)
		assert.Equal(t, !inZ1, e.EdgeExists(db.ID(), s.ID()), "b only reaches z2: %s", s)
	}
}

func TestImproveNodeRegularitySkipsUnreachable(t *testing.T) {
	f := newFixture(t, 1, 4)
	week := f.cycleMeet(t, "week", 0, 4)
	f.zone(t, "z1", week, 0, 1, 2, 3)
	a := f.child(t, "a", 2)
	big := f.child(t, "big", 5)
	l := f.layer(t, []*soln.Node{a, big})

	e := elm.Make(l)
	defer e.Delete()
	e.SplitSupplies(nil)
	e.ImproveNodeRegularity()
	for _, g := range e.DemandGroups() {
		assert.Zero(t, g.ZoneCount(), "%s stays unrestricted", g.Node())
	}
}

func TestDemandGroupZonesPanicOnMisuse(t *testing.T) {
	_, l, z1, _ := regularityFixture(t)
	e := elm.Make(l)
	defer e.Delete()
	g := e.DemandGroups()[0]
	g.AddZone(z1)
	assert.True(t, g.ContainsZone(z1))
	assert.Panics(t, func() { g.AddZone(z1) })
	g.DeleteZone(z1)
	assert.Panics(t, func() { g.DeleteZone(z1) })
}

// clusterFixture has two days of two times, a cycle meet per day and two
// unit children sharing a resource whose cluster monitor wants one day.
func clusterFixture(t *testing.T) (*soln.Soln, *soln.Layer, *soln.ClusterBusyTimesMonitor, []*soln.Meet) {
	f := newFixture(t, 2, 2)
	f.cycleMeet(t, "mon", 0, 2)
	f.cycleMeet(t, "tue", 2, 2)
	a := f.child(t, "a", 1)
	b := f.child(t, "b", 1)
	meets := []*soln.Meet{a.Meets()[0], b.Meets()[0]}
	r := f.resource(t, "T1", meets...)
	mon := f.s.AddClusterBusyTimesMonitor("cluster", r, f.days, 0, 1, cost.New(0, 1))

	return f.s, f.layer(t, []*soln.Node{a, b}, r), mon, meets
}

func TestReduceIrregularMonitors(t *testing.T) {
	_, l, mon, _ := clusterFixture(t)
	e := elm.Make(l)
	defer e.Delete()
	require.Len(t, e.IrregularMonitors(), 1)

	e.DetachIrregularMonitors()
	e.SplitSupplies(nil)
	require.Equal(t, "mon: 1 1\ntue: 1 1\n", segmentation(e))
	e.ReduceIrregularMonitors()
	assert.False(t, mon.Attached(), "attachment is restored, not forced")
	assert.Equal(t, 0, e.BestUnmatched())
	assert.Contains(t, segmentation(e), "-", "some surplus supply was removed")
	e.AttachIrregularMonitors()
	assert.True(t, mon.Attached())
}

func TestLayerAssignKeepsResourceOnOneDay(t *testing.T) {
	s, l, mon, meets := clusterFixture(t)
	require.True(t, elm.LayerAssign(l, nil))
	assert.True(t, mon.Attached())
	assert.Equal(t, meets[0].Asst(), meets[1].Asst(), "both meets on the same day")
	assert.Equal(t, 0, mon.Deviation())
	assert.Equal(t, cost.Zero, s.Cost())
}

func TestDiversifyStillAssigns(t *testing.T) {
	for d := 0; d < 4; d++ {
		f := newFixture(t, 1, 4)
		week := f.cycleMeet(t, "week", 0, 4)
		a := f.child(t, "a", 2)
		b := f.child(t, "b", 1, 1)
		l := f.layer(t, []*soln.Node{a, b})
		f.s.SetDiversifier(d)

		require.True(t, elm.LayerAssign(l, nil, elm.WithDiversify(true)), "diversifier %d", d)
		for _, m := range append(a.Meets(), b.Meets()...) {
			assert.Equal(t, week, m.Asst())
		}
	}
}

func TestDebugWritesMatching(t *testing.T) {
	f := newFixture(t, 1, 4)
	f.cycleMeet(t, "week", 0, 4)
	a := f.child(t, "a", 2)
	l := f.layer(t, []*soln.Node{a})
	e := elm.Make(l, elm.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	defer e.Delete()

	var before bytes.Buffer
	e.Debug(&before)
	assert.Contains(t, before.String(), "a1 unmatched")

	e.SplitSupplies(nil)
	var after bytes.Buffer
	e.Debug(&after)
	assert.Contains(t, after.String(), "unmatched 0")
	assert.Contains(t, after.String(), "a1 -> week+")
}
