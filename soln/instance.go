package soln

import "fmt"

// Time is one indivisible time slot of an Instance.
type Time struct {
	id    string
	index int
	inst  *Instance
}

// ID returns the time's identifier.
func (t *Time) ID() string { return t.id }

// Index returns the position of t in the instance's time order.
func (t *Time) Index() int { return t.index }

// Neighbour returns the time offset slots after t, or nil when that runs
// off either end of the instance.
func (t *Time) Neighbour(offset int) *Time {
	i := t.index + offset
	if i < 0 || i >= len(t.inst.times) {
		return nil
	}

	return t.inst.times[i]
}

func (t *Time) String() string { return t.id }

// TimeGroup is a named set of times.
type TimeGroup struct {
	id    string
	times []*Time
	set   map[int]bool
}

// ID returns the group's identifier.
func (g *TimeGroup) ID() string { return g.id }

// Times returns the group's times in the order they were given.
func (g *TimeGroup) Times() []*Time { return g.times }

// Count returns the number of times in the group.
func (g *TimeGroup) Count() int { return len(g.times) }

// Contains reports whether t is in the group. A nil time is in no group.
func (g *TimeGroup) Contains(t *Time) bool {
	return t != nil && g.set[t.index]
}

func (g *TimeGroup) String() string { return g.id }

// Resource is a teacher, room, class or other resource.
type Resource struct {
	id    string
	index int
}

// ID returns the resource's identifier.
func (r *Resource) ID() string { return r.id }

// Index returns the resource's position in its instance.
func (r *Resource) Index() int { return r.index }

func (r *Resource) String() string { return r.id }

// Instance is the fixed vocabulary a Soln is built on.
type Instance struct {
	id         string
	times      []*Time
	timeGroups []*TimeGroup
	resources  []*Resource

	timeByID     map[string]*Time
	groupByID    map[string]*TimeGroup
	resourceByID map[string]*Resource
}

// NewInstance returns an empty instance.
func NewInstance(id string) *Instance {
	return &Instance{
		id:           id,
		timeByID:     make(map[string]*Time),
		groupByID:    make(map[string]*TimeGroup),
		resourceByID: make(map[string]*Resource),
	}
}

// ID returns the instance's identifier.
func (in *Instance) ID() string { return in.id }

// AddTime appends a time to the end of the instance's time order.
func (in *Instance) AddTime(id string) (*Time, error) {
	if _, ok := in.timeByID[id]; ok {
		return nil, fmt.Errorf("%w: time %q", ErrDuplicateID, id)
	}
	t := &Time{id: id, index: len(in.times), inst: in}
	in.times = append(in.times, t)
	in.timeByID[id] = t

	return t, nil
}

// AddTimeGroup adds a named group over existing times.
func (in *Instance) AddTimeGroup(id string, times ...*Time) (*TimeGroup, error) {
	if _, ok := in.groupByID[id]; ok {
		return nil, fmt.Errorf("%w: time group %q", ErrDuplicateID, id)
	}
	g := &TimeGroup{id: id, set: make(map[int]bool, len(times))}
	for _, t := range times {
		if t.inst != in {
			return nil, fmt.Errorf("%w: time %q", ErrForeignEntity, t.id)
		}
		if !g.set[t.index] {
			g.set[t.index] = true
			g.times = append(g.times, t)
		}
	}
	in.timeGroups = append(in.timeGroups, g)
	in.groupByID[id] = g

	return g, nil
}

// AddResource adds a resource.
func (in *Instance) AddResource(id string) (*Resource, error) {
	if _, ok := in.resourceByID[id]; ok {
		return nil, fmt.Errorf("%w: resource %q", ErrDuplicateID, id)
	}
	r := &Resource{id: id, index: len(in.resources)}
	in.resources = append(in.resources, r)
	in.resourceByID[id] = r

	return r, nil
}

// Times returns every time in order.
func (in *Instance) Times() []*Time { return in.times }

// TimeCount returns the number of times.
func (in *Instance) TimeCount() int { return len(in.times) }

// TimeGroups returns every time group.
func (in *Instance) TimeGroups() []*TimeGroup { return in.timeGroups }

// Resources returns every resource.
func (in *Instance) Resources() []*Resource { return in.resources }

// Time looks a time up by id.
func (in *Instance) Time(id string) (*Time, bool) {
	t, ok := in.timeByID[id]

	return t, ok
}

// TimeGroup looks a time group up by id.
func (in *Instance) TimeGroup(id string) (*TimeGroup, bool) {
	g, ok := in.groupByID[id]

	return g, ok
}

// Resource looks a resource up by id.
func (in *Instance) Resource(id string) (*Resource, bool) {
	r, ok := in.resourceByID[id]

	return r, ok
}
