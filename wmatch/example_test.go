package wmatch_test

import (
	"fmt"

	"github.com/katalvlaran/khelm/wmatch"
)

// lengthEdger connects words to slots of the same length, costing the
// distance between their first letters.
type lengthEdger struct{}

func (lengthEdger) EdgeExists(d, s string) bool { return len(d) == len(s) }

func (lengthEdger) EdgeCost(d, s string) int64 {
	c := int64(d[0]) - int64(s[0])
	if c < 0 {
		c = -c
	}

	return c
}

func ExampleMatcher() {
	m := wmatch.New[string, string](lengthEdger{})
	cat := m.NewCategory()
	cat2 := m.NewCategory()
	ab := m.MakeDemand("ab", cat)
	m.MakeDemand("xyz", cat)
	m.MakeSupply("ac", cat2)
	m.MakeSupply("zz", cat2)

	unmatched, cost := m.Eval()
	slot, c, _ := m.DemandAssignedTo(ab)
	fmt.Println(unmatched, cost, slot, c)
	// Output: 1 0 ac 0
}
