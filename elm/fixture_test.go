package elm_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/khelm/soln"
)

// fixture builds small solutions: days of equal length, a parent node of
// cycle meets, and child nodes under it.
type fixture struct {
	inst   *soln.Instance
	s      *soln.Soln
	times  []*soln.Time
	days   []*soln.TimeGroup
	parent *soln.Node
}

func newFixture(t *testing.T, days, perDay int) *fixture {
	t.Helper()
	f := &fixture{inst: soln.NewInstance("fixture")}
	for d := 0; d < days; d++ {
		var dayTimes []*soln.Time
		for i := 1; i <= perDay; i++ {
			tm, err := f.inst.AddTime(fmt.Sprintf("D%d_%d", d+1, i))
			require.NoError(t, err)
			dayTimes = append(dayTimes, tm)
		}
		g, err := f.inst.AddTimeGroup(fmt.Sprintf("D%d", d+1), dayTimes...)
		require.NoError(t, err)
		f.times = append(f.times, dayTimes...)
		f.days = append(f.days, g)
	}
	f.s = soln.New(f.inst)
	var err error
	f.parent, err = f.s.AddNode("cycle", nil)
	require.NoError(t, err)

	return f
}

// cycleMeet adds a parent meet pinned to start at times[start].
func (f *fixture) cycleMeet(t *testing.T, id string, start, duration int) *soln.Meet {
	t.Helper()
	m, err := f.s.AddMeet(id, duration, f.parent)
	require.NoError(t, err)
	require.NoError(t, m.SetCycleTime(f.times[start]))

	return m
}

// child adds a child node with one meet per duration, named id1, id2, ...
func (f *fixture) child(t *testing.T, id string, durations ...int) *soln.Node {
	t.Helper()
	n, err := f.s.AddNode(id, f.parent)
	require.NoError(t, err)
	for i, d := range durations {
		_, err := f.s.AddMeet(fmt.Sprintf("%s%d", id, i+1), d, n)
		require.NoError(t, err)
	}

	return n
}

func (f *fixture) resource(t *testing.T, id string, meets ...*soln.Meet) *soln.Resource {
	t.Helper()
	r, err := f.inst.AddResource(id)
	require.NoError(t, err)
	for _, m := range meets {
		m.AddResource(r)
	}

	return r
}

func (f *fixture) layer(t *testing.T, children []*soln.Node, resources ...*soln.Resource) *soln.Layer {
	t.Helper()
	l, err := f.s.AddLayer("layer", f.parent, children, resources)
	require.NoError(t, err)

	return l
}

// zone puts the given offsets of meet into a new zone of the parent node.
func (f *fixture) zone(t *testing.T, id string, meet *soln.Meet, offsets ...int) *soln.Zone {
	t.Helper()
	z := f.parent.AddZone(id)
	for _, o := range offsets {
		require.NoError(t, z.AddMeetOffset(meet, o))
	}

	return z
}
