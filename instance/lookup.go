package instance

import (
	"fmt"

	"github.com/katalvlaran/khelm/soln"
)

func (b *builder) time(id string) (*soln.Time, error) {
	if t, ok := b.inst.Time(id); ok {
		return t, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownTime, id)
}

func (b *builder) timeGroup(id string) (*soln.TimeGroup, error) {
	if g, ok := b.inst.TimeGroup(id); ok {
		return g, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownTimeGroup, id)
}

func (b *builder) resource(id string) (*soln.Resource, error) {
	if r, ok := b.inst.Resource(id); ok {
		return r, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownResource, id)
}

func (b *builder) nodeByID(id string) (*soln.Node, error) {
	if n, ok := b.s.Node(id); ok {
		return n, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownNode, id)
}

func (b *builder) meet(id string) (*soln.Meet, error) {
	if m, ok := b.s.Meet(id); ok {
		return m, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownMeet, id)
}

func (b *builder) spreadByID(id string) (*soln.SpreadConstraint, error) {
	if c, ok := b.spreads[id]; ok {
		return c, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownSpread, id)
}

func (b *builder) timeGroupList(ids []string) ([]*soln.TimeGroup, error) {
	out := make([]*soln.TimeGroup, 0, len(ids))
	for _, id := range ids {
		g, err := b.timeGroup(id)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}

	return out, nil
}

func (b *builder) resourceList(ids []string) ([]*soln.Resource, error) {
	out := make([]*soln.Resource, 0, len(ids))
	for _, id := range ids {
		r, err := b.resource(id)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}

	return out, nil
}

func (b *builder) meetList(ids []string) ([]*soln.Meet, error) {
	out := make([]*soln.Meet, 0, len(ids))
	for _, id := range ids {
		m, err := b.meet(id)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}

	return out, nil
}
