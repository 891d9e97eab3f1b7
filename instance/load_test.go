package instance_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/khelm/instance"
	"github.com/katalvlaran/khelm/soln"
)

func TestLoadFileDemo(t *testing.T) {
	p, err := instance.LoadFile("testdata/demo.yaml")
	require.NoError(t, err)
	s := p.Soln

	assert.Equal(t, 8, s.Instance().TimeCount())
	assert.Len(t, s.Instance().TimeGroups(), 2)
	assert.Len(t, s.Meets(), 7)
	assert.Len(t, s.Nodes(), 4)
	assert.Len(t, s.Monitors(), 4)

	mon, ok := s.Meet("mon")
	require.True(t, ok)
	assert.True(t, mon.IsCycleMeet())

	music, _ := s.Meet("music1")
	tue, _ := s.Meet("tue")
	assert.Equal(t, tue, music.Asst())
	assert.Equal(t, 3, music.AsstOffset())
	assert.True(t, music.Fixed())
	assert.Equal(t, "Tue4", music.AsstTime().ID())

	art1, _ := s.Meet("art1")
	require.NotNil(t, art1.Domain())
	assert.Equal(t, "Mon", art1.Domain().ID())
	assert.Equal(t, 2, art1.Demand())

	cycle, _ := s.Node("cycle")
	require.Equal(t, 2, cycle.ZoneCount())
	assert.Equal(t, "am", mon.OffsetZone(1).ID())
	assert.Equal(t, "pm", tue.OffsetZone(2).ID())
	assert.Equal(t, 4, cycle.Zones()[0].MeetOffsetCount())

	require.Len(t, p.Jobs, 1)
	job := p.Jobs[0]
	assert.Equal(t, "week", job.Layer.ID())
	assert.Len(t, job.Layer.ChildNodes(), 3)
	require.NotNil(t, job.Spread)
	assert.Equal(t, "days", job.Spread.ID)
	assert.Len(t, job.Spread.TimeGroups(), 2)

	var tags []soln.Tag
	for _, m := range s.Monitors() {
		tags = append(tags, m.Tag())
	}
	assert.Contains(t, tags, soln.TagClusterBusyTimes)
	assert.Contains(t, tags, soln.TagSpreadEvents)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := instance.LoadFile("testdata/nope.yaml")
	assert.Error(t, err)
}

const base = `
times: [A1, A2]
time_groups: [{id: A, times: [A1, A2]}]
resources: [R]
nodes:
  - id: top
    meets: [{id: m, duration: 2, cycle_time: A1}]
`

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want error
	}{
		{"unknown field", base + "bogus: 1\n", instance.ErrDecode},
		{"unknown time", "times: [A1]\ntime_groups: [{id: G, times: [B1]}]\n", instance.ErrUnknownTime},
		{"unknown parent", base + "  - {id: kid, parent: nobody}\n", instance.ErrUnknownNode},
		{"unknown resource", base + "  - {id: kid, parent: top, meets: [{id: k, duration: 1, resources: [Q]}]}\n", instance.ErrUnknownResource},
		{"unknown domain", base + "  - {id: kid, parent: top, meets: [{id: k, duration: 1, domain: Z}]}\n", instance.ErrUnknownTimeGroup},
		{"duplicate meet", base + "  - {id: kid, parent: top, meets: [{id: m, duration: 1}]}\n", soln.ErrDuplicateID},
		{"bad duration", base + "  - {id: kid, parent: top, meets: [{id: k, duration: 0}]}\n", soln.ErrBadDuration},
		{"unknown target", base + "  - {id: kid, parent: top, meets: [{id: k, duration: 1, assign: {meet: x}}]}\n", instance.ErrUnknownMeet},
		{"bad assignment", base + "  - {id: kid, parent: top, meets: [{id: k, duration: 1, assign: {meet: m, offset: 2}}]}\n", instance.ErrBadAssignment},
		{"zone offset", base + "zones: [{id: z, node: top, offsets: [{meet: m, offsets: [5]}]}]\n", soln.ErrBadOffset},
		{"unknown kind", base + "monitors: [{id: x, kind: nonsense}]\n", instance.ErrUnknownMonitorKind},
		{"unknown spread", base + "monitors: [{id: x, kind: spread_events, spread: s}]\n", instance.ErrUnknownSpread},
		{"duplicate spread", base + "spreads: [{id: s}, {id: s}]\n", instance.ErrDuplicateSpread},
		{"layer spread", base + "layers: [{id: L, parent: top, spread: s}]\n", instance.ErrUnknownSpread},
		{"layer child", base + "layers: [{id: L, parent: top, children: [none]}]\n", instance.ErrUnknownNode},
		{"negative diversifier", base + "diversifier: -1\n", instance.ErrBadDiversifier},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := instance.Load(strings.NewReader(tc.doc))
			require.Error(t, err)
			assert.Truef(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

func TestLoadMinimal(t *testing.T) {
	p, err := instance.Load(strings.NewReader(base + "layers: [{id: L, parent: top}]\ndiversifier: 3\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, p.Soln.Diversifier())
	require.Len(t, p.Jobs, 1)
	assert.Nil(t, p.Jobs[0].Spread)
}
