package elm_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/khelm/elm"
	"github.com/katalvlaran/khelm/soln"
)

// SupplySuite exercises the supply model on one parent meet of duration 4
// and two child nodes with one meet of duration 2 each.
type SupplySuite struct {
	suite.Suite
	f    *fixture
	week *soln.Meet
	a, b *soln.Node
	e    *elm.Elm
}

func (s *SupplySuite) SetupTest() {
	t := s.T()
	s.f = newFixture(t, 1, 4)
	s.week = s.f.cycleMeet(t, "week", 0, 4)
	s.a = s.f.child(t, "a", 2)
	s.b = s.f.child(t, "b", 2)
	s.e = elm.Make(s.f.layer(t, []*soln.Node{s.a, s.b}))
}

func (s *SupplySuite) TearDownTest() {
	s.e.Delete()
}

func (s *SupplySuite) only() *elm.Supply {
	g := s.e.SupplyGroups()[0]
	s.Require().Equal(1, g.SupplyCount())

	return g.Supplies()[0]
}

func (s *SupplySuite) assertPartition(g *elm.SupplyGroup) {
	covered := make([]int, g.Meet().Duration())
	for _, sp := range g.Supplies() {
		for i := sp.Offset(); i < sp.Offset()+sp.Duration(); i++ {
			covered[i]++
		}
	}
	for i, c := range covered {
		s.Equalf(1, c, "offset %d covered %d times", i, c)
	}
}

func (s *SupplySuite) TestMakeBuildsGroups() {
	s.Len(s.e.SupplyGroups(), 1)
	s.Len(s.e.DemandGroups(), 2)
	sp := s.only()
	s.Equal(0, sp.Offset())
	s.Equal(4, sp.Duration())
	s.Equal(s.week, sp.Meet())
	s.Empty(s.e.IrregularMonitors())
	s.Equal(2, s.e.BestUnmatched(), "no supply of duration 2 yet")
}

func (s *SupplySuite) TestSplitCheck() {
	sp := s.only()
	n, ok := s.e.SplitCheck(sp, 0, 4)
	s.True(ok)
	s.Equal(1, n)
	n, ok = s.e.SplitCheck(sp, 0, 2)
	s.True(ok)
	s.Equal(2, n)
	n, ok = s.e.SplitCheck(sp, 1, 2)
	s.True(ok)
	s.Equal(3, n)
	_, ok = s.e.SplitCheck(sp, 3, 2)
	s.False(ok)
}

func (s *SupplySuite) TestSplitConservesAndMergeInverts() {
	sp := s.only()
	g := sp.Group()
	left, right, ok := s.e.Split(sp, 1, 2)
	s.Require().True(ok)
	s.Require().NotNil(left)
	s.Require().NotNil(right)
	s.Equal(3, g.SupplyCount())
	s.Equal([2]int{0, 1}, [2]int{left.Offset(), left.Duration()})
	s.Equal([2]int{1, 2}, [2]int{sp.Offset(), sp.Duration()})
	s.Equal([2]int{3, 1}, [2]int{right.Offset(), right.Duration()})
	s.assertPartition(g)
	s.Equal(1, s.e.BestUnmatched(), "one supply of duration 2")

	s.e.Merge(left, sp, right)
	s.Equal(1, g.SupplyCount())
	s.Equal(0, sp.Offset())
	s.Equal(4, sp.Duration())
	s.Equal(2, s.e.BestUnmatched())
}

func (s *SupplySuite) TestMergeRejectsStrangers() {
	sp := s.only()
	left, _, _ := s.e.Split(sp, 2, 2)
	other, _, _ := s.e.Split(left, 1, 1)
	// other is [0,1), left is [1,2), sp is [2,4); other is not next to sp
	s.Panics(func() { s.e.Merge(other, sp, nil) })
}

func (s *SupplySuite) TestFixedSupplyCannotSplitOrMerge() {
	sp := s.only()
	_, right, _ := s.e.Split(sp, 0, 2)
	d := s.e.DemandGroups()[0].Demands()[0]
	s.e.SetFixedDemand(sp, d)
	s.Equal(d, sp.FixedDemand())
	_, ok := s.e.SplitCheck(sp, 0, 1)
	s.False(ok)
	s.Panics(func() { s.e.Merge(nil, sp, right) })
}

func (s *SupplySuite) TestEdgeValidity() {
	sp := s.only()
	_, right, _ := s.e.Split(sp, 0, 2)
	da := s.e.DemandGroups()[0].Demands()[0]
	db := s.e.DemandGroups()[1].Demands()[0]
	s.True(s.e.EdgeExists(da.ID(), sp.ID()))
	s.True(s.e.EdgeExists(db.ID(), right.ID()))

	s.e.SetFixedDemand(sp, da)
	s.True(s.e.EdgeExists(da.ID(), sp.ID()))
	s.False(s.e.EdgeExists(db.ID(), sp.ID()), "reserved for another demand")

	s.e.Remove(right)
	s.False(s.e.EdgeExists(db.ID(), right.ID()))
	s.e.Unremove(right)
	s.True(s.e.EdgeExists(db.ID(), right.ID()))

	// an assigned meet only fits the supply at its assignment
	s.Require().True(db.Meet().Assign(s.week, 1))
	s.False(s.e.EdgeExists(db.ID(), right.ID()))
	s.Require().True(db.Meet().Unassign())
}

func (s *SupplySuite) TestEdgeCostLeavesSolutionUnchanged() {
	sp := s.only()
	s.e.Split(sp, 0, 2)
	da := s.e.DemandGroups()[0].Demands()[0]
	s.Equal(int64(0), s.e.EdgeCost(da.ID(), sp.ID()))
	s.Nil(da.Meet().Asst())
}

func (s *SupplySuite) TestRemovalIsReversible() {
	sp := s.only()
	_, right, _ := s.e.Split(sp, 0, 2)
	s.Equal(0, s.e.BestUnmatched())
	s.e.Remove(right)
	s.True(right.Removed())
	s.Equal(1, s.e.BestUnmatched())
	s.Panics(func() { s.e.Remove(right) })
	s.e.Unremove(right)
	s.Equal(0, s.e.BestUnmatched())
	s.Panics(func() { s.e.Unremove(right) })
}

func (s *SupplySuite) TestStaleHandlePanics() {
	sp := s.only()
	left, _, _ := s.e.Split(sp, 2, 2)
	id := left.ID()
	s.e.Merge(left, sp, nil)
	s.Panics(func() { s.e.Supply(id) })
	s.Equal(sp, s.e.Supply(sp.ID()))
}

func (s *SupplySuite) TestBestAssignMeets() {
	sp := s.only()
	s.e.Split(sp, 0, 2)
	s.True(s.e.BestAssignMeets())
	for _, g := range s.e.DemandGroups() {
		s.NotNil(g.Demands()[0].Meet().Asst())
	}
}

func (s *SupplySuite) TestBestAssignMeetsReportsFailure() {
	s.False(s.e.BestAssignMeets())
	s.Nil(s.a.Meets()[0].Asst())
}

func TestSupplySuite(t *testing.T) {
	suite.Run(t, new(SupplySuite))
}
