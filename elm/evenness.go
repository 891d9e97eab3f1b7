package elm

import "github.com/katalvlaran/khelm/soln"

// evenTimeGroup counts the supplies starting inside one time group.
type evenTimeGroup struct {
	count int
}

// evenTimeGroupSet holds, for one time, the number of supplies starting
// there and the even time groups containing it.
type evenTimeGroupSet struct {
	count  int
	groups []*evenTimeGroup
}

// evenness tracks how evenly supplies are spread over time groups. Adding
// the k-th supply to a group costs k, so unevenness is lowest when starts
// are spread out.
type evenness struct {
	sets       []evenTimeGroupSet
	unevenness int
}

func newEvenness(inst *soln.Instance) evenness {
	return evenness{sets: make([]evenTimeGroupSet, inst.TimeCount())}
}

func (ev *evenness) addToGroup(g *evenTimeGroup) {
	g.count++
	ev.unevenness += g.count
}

func (ev *evenness) deleteFromGroup(g *evenTimeGroup) {
	ev.unevenness -= g.count
	g.count--
	if g.count < 0 {
		panic("elm: even time group count went negative")
	}
}

// startTime returns the time s starts at, or nil when its meet has none.
func startTime(s *Supply) *soln.Time {
	t := s.group.meet.AsstTime()
	if t == nil {
		return nil
	}

	return t.Neighbour(s.offset)
}

func (ev *evenness) addSupply(s *Supply) {
	if t := startTime(s); t != nil {
		set := &ev.sets[t.Index()]
		set.count++
		for _, g := range set.groups {
			ev.addToGroup(g)
		}
	}
}

func (ev *evenness) deleteSupply(s *Supply) {
	if t := startTime(s); t != nil {
		set := &ev.sets[t.Index()]
		set.count--
		for _, g := range set.groups {
			ev.deleteFromGroup(g)
		}
	}
}

// UnevennessTimeGroupAdd starts tracking how many supplies start in tg.
// Supplies already present are counted straight away.
func (e *Elm) UnevennessTimeGroupAdd(tg *soln.TimeGroup) {
	g := &evenTimeGroup{}
	for _, t := range tg.Times() {
		set := &e.even.sets[t.Index()]
		set.groups = append(set.groups, g)
		for i := 0; i < set.count; i++ {
			e.even.addToGroup(g)
		}
	}
}

// Unevenness returns the current unevenness: over every tracked time
// group holding k supply starts, the sum of 1+2+...+k.
func (e *Elm) Unevenness() int {
	return e.even.unevenness
}
