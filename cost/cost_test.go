package cost_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/khelm/cost"
)

func TestNewSplitsComponents(t *testing.T) {
	c := cost.New(3, 42)
	assert.Equal(t, int64(3), c.Hard())
	assert.Equal(t, int64(42), c.Soft())
}

func TestHardDominatesSoft(t *testing.T) {
	require.Less(t, cost.New(0, 1<<31), cost.New(1, 0))
	require.Less(t, cost.New(1, 0), cost.New(1, 1))
}

func TestScaleSaturates(t *testing.T) {
	assert.Equal(t, cost.New(0, 50), cost.New(0, 5).Scale(10))
	assert.Equal(t, cost.Max, cost.Max.Scale(10))
	assert.Equal(t, cost.Zero, cost.Max.Scale(0))
}

func TestAddSaturates(t *testing.T) {
	assert.Equal(t, cost.New(1, 1), cost.New(1, 0).Add(cost.New(0, 1)))
	assert.Equal(t, cost.Max, cost.Max.Add(cost.New(0, 1)))
}

func TestShow(t *testing.T) {
	assert.Equal(t, "2.00017", cost.New(2, 17).String())
	assert.Equal(t, "0.99999", cost.New(0, 1234567).String())
	assert.Equal(t, "max", cost.Max.String())
}

func ExampleCost_Show() {
	c := cost.New(1, 250)
	fmt.Println(c.Show().StringFixed(5))
	// Output: 1.00250
}
