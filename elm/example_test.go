package elm_test

import (
	"fmt"
	"os"
	"sort"

	"github.com/katalvlaran/khelm/elm"
	"github.com/katalvlaran/khelm/soln"
)

// ExampleLayerAssign lays two double lessons into a four-slot morning.
func ExampleLayerAssign() {
	inst := soln.NewInstance("school")
	var times []*soln.Time
	for _, id := range []string{"Mon1", "Mon2", "Mon3", "Mon4"} {
		t, _ := inst.AddTime(id)
		times = append(times, t)
	}
	s := soln.New(inst)
	morning, _ := s.AddNode("morning", nil)
	block, _ := s.AddMeet("block", 4, morning)
	_ = block.SetCycleTime(times[0])

	maths, _ := s.AddNode("maths", morning)
	m1, _ := s.AddMeet("maths1", 2, maths)
	art, _ := s.AddNode("art", morning)
	a1, _ := s.AddMeet("art1", 2, art)
	layer, _ := s.AddLayer("morning", morning, []*soln.Node{maths, art}, nil)

	ok := elm.LayerAssign(layer, nil)
	starts := []string{m1.AsstTime().ID(), a1.AsstTime().ID()}
	sort.Strings(starts)
	fmt.Println(ok, starts)
	// Output: true [Mon1 Mon3]
}

// ExampleElm_DebugSegmentation shows the supplies left after splitting
// around a meet already placed at the second slot.
func ExampleElm_DebugSegmentation() {
	inst := soln.NewInstance("school")
	var times []*soln.Time
	for _, id := range []string{"Mon1", "Mon2", "Mon3", "Mon4"} {
		t, _ := inst.AddTime(id)
		times = append(times, t)
	}
	s := soln.New(inst)
	morning, _ := s.AddNode("morning", nil)
	block, _ := s.AddMeet("block", 4, morning)
	_ = block.SetCycleTime(times[0])
	maths, _ := s.AddNode("maths", morning)
	single, _ := s.AddMeet("maths1", 1, maths)
	_, _ = s.AddMeet("maths2", 2, maths)
	_ = single.Assign(block, 1)
	layer, _ := s.AddLayer("morning", morning, []*soln.Node{maths}, nil)

	e := elm.Make(layer)
	defer e.Delete()
	e.SplitSupplies(nil)
	e.DebugSegmentation(os.Stdout)
	// Output: block: 1 1* 2
}
