package soln

// LimitedTimeGroup is a time group with bounds on how many events of a
// spread constraint should start in it.
type LimitedTimeGroup struct {
	Group    *TimeGroup
	Min, Max int
}

// SpreadConstraint asks for events to be spread over time groups.
type SpreadConstraint struct {
	ID     string
	Groups []LimitedTimeGroup
}

// TimeGroups returns the constraint's time groups in order.
func (c *SpreadConstraint) TimeGroups() []*TimeGroup {
	out := make([]*TimeGroup, len(c.Groups))
	for i, g := range c.Groups {
		out[i] = g.Group
	}

	return out
}
