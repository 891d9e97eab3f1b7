package instance

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/khelm/cost"
	"github.com/katalvlaran/khelm/layered"
	"github.com/katalvlaran/khelm/soln"
)

// Sentinel errors. Each is wrapped with the offending id.
var (
	ErrDecode             = errors.New("instance: cannot decode")
	ErrUnknownTime        = errors.New("instance: unknown time")
	ErrUnknownTimeGroup   = errors.New("instance: unknown time group")
	ErrUnknownResource    = errors.New("instance: unknown resource")
	ErrUnknownNode        = errors.New("instance: unknown node")
	ErrUnknownMeet        = errors.New("instance: unknown meet")
	ErrUnknownSpread      = errors.New("instance: unknown spread constraint")
	ErrUnknownMonitorKind = errors.New("instance: unknown monitor kind")
	ErrDuplicateSpread    = errors.New("instance: duplicate spread constraint")
	ErrBadAssignment      = errors.New("instance: bad preassignment")
	ErrBadDiversifier     = errors.New("instance: diversifier must not be negative")
)

// Problem is a loaded document: the solution and its layer jobs.
type Problem struct {
	Soln *soln.Soln
	Jobs []layered.Job
}

// LoadFile reads the document at path.
func LoadFile(path string) (*Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Load(f)
}

// Load reads one YAML document from r. Unknown fields are rejected.
func Load(r io.Reader) (*Problem, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return Build(&doc)
}

// builder resolves ids while a Document is turned into a solution.
type builder struct {
	inst    *soln.Instance
	s       *soln.Soln
	spreads map[string]*soln.SpreadConstraint
}

// Build turns doc into a Problem.
//
// Steps:
//  1. Times, time groups and resources make the instance.
//  2. Nodes and their meets, then cycle times, domains and resources.
//  3. Preassignments, then fixes.
//  4. Zones, spreads, monitors and finally layers.
func Build(doc *Document) (*Problem, error) {
	b := &builder{
		inst:    soln.NewInstance(doc.ID),
		spreads: make(map[string]*soln.SpreadConstraint),
	}

	// 1) instance
	if err := b.instance(doc); err != nil {
		return nil, err
	}
	if doc.Diversifier < 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadDiversifier, doc.Diversifier)
	}
	b.s = soln.New(b.inst)
	b.s.SetDiversifier(doc.Diversifier)

	// 2) nodes and meets
	for _, nd := range doc.Nodes {
		if err := b.node(nd); err != nil {
			return nil, err
		}
	}

	// 3) assignments
	for _, nd := range doc.Nodes {
		for _, md := range nd.Meets {
			if err := b.assign(md); err != nil {
				return nil, err
			}
		}
	}
	for _, nd := range doc.Nodes {
		for _, md := range nd.Meets {
			if md.Fixed {
				m, _ := b.s.Meet(md.ID)
				m.Fix()
			}
		}
	}

	// 4) the rest
	for _, zd := range doc.Zones {
		if err := b.zone(zd); err != nil {
			return nil, err
		}
	}
	for _, sd := range doc.Spreads {
		if err := b.spread(sd); err != nil {
			return nil, err
		}
	}
	for _, md := range doc.Monitors {
		if err := b.monitor(md); err != nil {
			return nil, err
		}
	}
	p := &Problem{Soln: b.s}
	for _, ld := range doc.Layers {
		j, err := b.layer(ld)
		if err != nil {
			return nil, err
		}
		p.Jobs = append(p.Jobs, j)
	}

	return p, nil
}

func (b *builder) instance(doc *Document) error {
	for _, id := range doc.Times {
		if _, err := b.inst.AddTime(id); err != nil {
			return err
		}
	}
	for _, gd := range doc.TimeGroups {
		times := make([]*soln.Time, 0, len(gd.Times))
		for _, id := range gd.Times {
			t, err := b.time(id)
			if err != nil {
				return err
			}
			times = append(times, t)
		}
		if _, err := b.inst.AddTimeGroup(gd.ID, times...); err != nil {
			return err
		}
	}
	for _, id := range doc.Resources {
		if _, err := b.inst.AddResource(id); err != nil {
			return err
		}
	}

	return nil
}

func (b *builder) node(nd NodeDoc) error {
	var parent *soln.Node
	if nd.Parent != "" {
		var err error
		if parent, err = b.nodeByID(nd.Parent); err != nil {
			return err
		}
	}
	n, err := b.s.AddNode(nd.ID, parent)
	if err != nil {
		return err
	}
	for _, md := range nd.Meets {
		m, err := b.s.AddMeet(md.ID, md.Duration, n)
		if err != nil {
			return err
		}
		if md.CycleTime != "" {
			t, err := b.time(md.CycleTime)
			if err != nil {
				return err
			}
			if err = m.SetCycleTime(t); err != nil {
				return err
			}
		}
		if md.Domain != "" {
			g, err := b.timeGroup(md.Domain)
			if err != nil {
				return err
			}
			m.SetDomain(g)
		}
		rs, err := b.resourceList(md.Resources)
		if err != nil {
			return err
		}
		for _, r := range rs {
			m.AddResource(r)
		}
	}

	return nil
}

func (b *builder) assign(md MeetDoc) error {
	if md.Assign == nil {
		return nil
	}
	m, _ := b.s.Meet(md.ID)
	target, err := b.meet(md.Assign.Meet)
	if err != nil {
		return err
	}
	if !m.Assign(target, md.Assign.Offset) {
		return fmt.Errorf("%w: %q to %q at offset %d", ErrBadAssignment, md.ID, md.Assign.Meet, md.Assign.Offset)
	}

	return nil
}

func (b *builder) zone(zd ZoneDoc) error {
	n, err := b.nodeByID(zd.Node)
	if err != nil {
		return err
	}
	z := n.AddZone(zd.ID)
	for _, mo := range zd.Offsets {
		m, err := b.meet(mo.Meet)
		if err != nil {
			return err
		}
		for _, off := range mo.Offsets {
			if err = z.AddMeetOffset(m, off); err != nil {
				return err
			}
		}
	}

	return nil
}

func (b *builder) spread(sd SpreadDoc) error {
	if _, ok := b.spreads[sd.ID]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateSpread, sd.ID)
	}
	c := &soln.SpreadConstraint{ID: sd.ID}
	for _, gd := range sd.Groups {
		g, err := b.timeGroup(gd.Group)
		if err != nil {
			return err
		}
		c.Groups = append(c.Groups, soln.LimitedTimeGroup{Group: g, Min: gd.Min, Max: gd.Max})
	}
	b.spreads[sd.ID] = c

	return nil
}

func (b *builder) monitor(md MonitorDoc) error {
	w := cost.New(md.Weight.Hard, md.Weight.Soft)
	switch md.Kind {
	case "avoid_clashes":
		r, err := b.resource(md.Resource)
		if err != nil {
			return err
		}
		b.s.AddAvoidClashesMonitor(md.ID, r, w)
	case "prefer_times":
		meets, err := b.meetList(md.Meets)
		if err != nil {
			return err
		}
		g, err := b.timeGroup(md.Group)
		if err != nil {
			return err
		}
		b.s.AddPreferTimesMonitor(md.ID, meets, g, w)
	case "spread_events":
		meets, err := b.meetList(md.Meets)
		if err != nil {
			return err
		}
		c, err := b.spreadByID(md.Spread)
		if err != nil {
			return err
		}
		b.s.AddSpreadEventsMonitor(md.ID, c, meets, w)
	case "limit_idle_times", "cluster_busy_times", "limit_busy_times":
		r, err := b.resource(md.Resource)
		if err != nil {
			return err
		}
		groups, err := b.timeGroupList(md.Groups)
		if err != nil {
			return err
		}
		switch md.Kind {
		case "limit_idle_times":
			b.s.AddLimitIdleTimesMonitor(md.ID, r, groups, md.Min, md.Max, w)
		case "cluster_busy_times":
			b.s.AddClusterBusyTimesMonitor(md.ID, r, groups, md.Min, md.Max, w)
		default:
			b.s.AddLimitBusyTimesMonitor(md.ID, r, groups, md.Min, md.Max, w)
		}
	default:
		return fmt.Errorf("%w: %q (monitor %q)", ErrUnknownMonitorKind, md.Kind, md.ID)
	}

	return nil
}

func (b *builder) layer(ld LayerDoc) (layered.Job, error) {
	parent, err := b.nodeByID(ld.Parent)
	if err != nil {
		return layered.Job{}, err
	}
	children := make([]*soln.Node, 0, len(ld.Children))
	for _, id := range ld.Children {
		n, err := b.nodeByID(id)
		if err != nil {
			return layered.Job{}, err
		}
		children = append(children, n)
	}
	rs, err := b.resourceList(ld.Resources)
	if err != nil {
		return layered.Job{}, err
	}
	l, err := b.s.AddLayer(ld.ID, parent, children, rs)
	if err != nil {
		return layered.Job{}, err
	}
	j := layered.Job{Layer: l}
	if ld.Spread != "" {
		if j.Spread, err = b.spreadByID(ld.Spread); err != nil {
			return layered.Job{}, err
		}
	}

	return j, nil
}
