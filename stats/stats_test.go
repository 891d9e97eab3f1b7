package stats_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/khelm/cost"
	"github.com/katalvlaran/khelm/stats"
)

type RegistrySuite struct {
	suite.Suite
	reg *stats.Registry
}

func (s *RegistrySuite) SetupTest() {
	s.reg = stats.NewRegistry()
}

func (s *RegistrySuite) TestBeginTwiceFails() {
	_, err := s.reg.Begin("t")
	s.Require().NoError(err)
	_, err = s.reg.Begin("t")
	s.ErrorIs(err, stats.ErrTableOpen)
}

func (s *RegistrySuite) TestUnknownTable() {
	_, err := s.reg.Table("nope")
	s.ErrorIs(err, stats.ErrNoSuchTable)
	s.ErrorIs(s.reg.End("nope", nil), stats.ErrNoSuchTable)
}

func (s *RegistrySuite) TestEndCloses() {
	_, _ = s.reg.Begin("a")
	_, _ = s.reg.Begin("b")
	s.Equal([]string{"a", "b"}, s.reg.Names())
	s.Require().NoError(s.reg.End("a", nil))
	s.Equal([]string{"b"}, s.reg.Names())
	_, err := s.reg.Table("a")
	s.ErrorIs(err, stats.ErrNoSuchTable)
	_, err = s.reg.Begin("a")
	s.NoError(err, "a closed name can be reopened")
}

func (s *RegistrySuite) TestSetKeepsFirstUseOrder() {
	t, _ := s.reg.Begin("t")
	t.Set("r2", "c1", stats.Int(1))
	t.Set("r1", "c2", stats.String("x"))
	t.Set("r2", "c2", stats.String("y"))
	t.Set("r2", "c1", stats.Int(5))
	s.Equal([]string{"r2", "r1"}, t.Rows())
	s.Equal([]string{"c1", "c2"}, t.Cols())
	e, ok := t.Get("r2", "c1")
	s.True(ok)
	s.Equal("5", e.Text())
	_, ok = t.Get("r1", "c1")
	s.False(ok)
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

func TestEntryText(t *testing.T) {
	assert.Equal(t, "abc", stats.String("abc").Text())
	assert.Equal(t, "-12", stats.Int(-12).Text())
	assert.Equal(t, "2.00010", stats.Cost(cost.New(2, 10)).Text())
	assert.Equal(t, "1.235s", stats.Duration(1234567*time.Microsecond).Text())
	assert.Equal(t, stats.KindCost, stats.Cost(cost.Zero).Kind())
}

func TestRenderGolden(t *testing.T) {
	reg := stats.NewRegistry()
	tbl, err := reg.Begin("layers", stats.WithCorner("Layer"), stats.WithAverageRow(), stats.WithTotalRow())
	require.NoError(t, err)
	tbl.Set("L1", "Meets", stats.Int(4))
	tbl.Set("L1", "Cost", stats.Cost(cost.New(0, 3)))
	tbl.Set("L1", "Time", stats.Duration(1500*time.Millisecond))
	tbl.Set("L2", "Meets", stats.Int(3))
	tbl.Set("L2", "Cost", stats.Cost(cost.New(1, 0)))
	tbl.Set("L2", "Time", stats.Duration(250*time.Millisecond))

	var buf bytes.Buffer
	require.NoError(t, reg.End("layers", &buf))
	g := goldie.New(t)
	g.Assert(t, "layers", buf.Bytes())
}

func TestRenderMissingAndStrings(t *testing.T) {
	reg := stats.NewRegistry()
	tbl, _ := reg.Begin("mixed", stats.WithTotalRow())
	tbl.Set("a", "Name", stats.String("x"))
	tbl.Set("a", "N", stats.Int(2))
	tbl.Set("b", "Name", stats.String("y"))

	var buf bytes.Buffer
	require.NoError(t, reg.End("mixed", &buf))
	want := "mixed\n" +
		"       Name  N\n" +
		"a      x     2\n" +
		"b      y     -\n" +
		"Total        2\n"
	assert.Equal(t, want, buf.String())
}
