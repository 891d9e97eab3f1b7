package stats_test

import (
	"os"

	"github.com/katalvlaran/khelm/stats"
)

func ExampleRegistry() {
	reg := stats.NewRegistry()
	t, _ := reg.Begin("runs", stats.WithCorner("Run"), stats.WithAverageRow())
	t.Set("first", "Unmatched", stats.Int(1))
	t.Set("second", "Unmatched", stats.Int(2))
	_ = reg.End("runs", os.Stdout)
	// Output:
	// runs
	// Run      Unmatched
	// first    1
	// second   2
	// Average  1.50
}
