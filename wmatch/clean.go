package wmatch

// clean brings the edges of every dirty node up to date.
//
// Steps:
//  1. Refresh each dirty demand against every live supply (ordinary mode),
//     or re-check just the edges it already has (special mode).
//  2. For each dirty supply, refresh its pair with every live demand that
//     step 1 did not already cover.
//  3. Reset dirty flags and invalidate the cached matching.
func (m *Matcher[D, S]) clean() {
	if len(m.dirtyDemands) == 0 && len(m.dirtySupplies) == 0 {
		return
	}

	// 1) dirty demands
	for _, id := range m.dirtyDemands {
		d := &m.demands[id]
		if !d.live {
			continue
		}
		if m.special {
			m.recheckDemand(d)
		} else {
			m.rebuildDemand(d)
		}
	}

	// 2) dirty supplies
	for _, sid := range m.dirtySupplies {
		s := &m.supplies[sid]
		if !s.live {
			continue
		}
		for i := range m.demands {
			d := &m.demands[i]
			if !d.live || d.dirty {
				continue
			}
			m.refreshPair(d, sid)
		}
	}

	// 3) reset
	for _, id := range m.dirtyDemands {
		m.demands[id].dirty = false
	}
	for _, sid := range m.dirtySupplies {
		m.supplies[sid].dirty = false
	}
	m.dirtyDemands = m.dirtyDemands[:0]
	m.dirtySupplies = m.dirtySupplies[:0]
	m.solved = false
}

// rebuildDemand recomputes every edge of d from scratch.
func (m *Matcher[D, S]) rebuildDemand(d *demandNode[D]) {
	d.edges = d.edges[:0]
	for j := range m.supplies {
		s := &m.supplies[j]
		if !s.live {
			continue
		}
		if m.edger.EdgeExists(d.back, s.back) {
			d.edges = append(d.edges, edge{
				supply: SupplyID(j),
				cost:   m.edgeCost(d, s),
				active: true,
			})
		}
	}
}

// recheckDemand re-tests the existence of the edges d already has.
func (m *Matcher[D, S]) recheckDemand(d *demandNode[D]) {
	for i := range d.edges {
		e := &d.edges[i]
		e.active = m.edger.EdgeExists(d.back, m.supplies[e.supply].back)
	}
}

// refreshPair brings the single edge d→sid up to date.
func (m *Matcher[D, S]) refreshPair(d *demandNode[D], sid SupplyID) {
	s := &m.supplies[sid]
	idx := -1
	for i := range d.edges {
		if d.edges[i].supply == sid {
			idx = i

			break
		}
	}

	if m.special {
		if idx >= 0 {
			d.edges[idx].active = m.edger.EdgeExists(d.back, s.back)
		}

		return
	}

	if !m.edger.EdgeExists(d.back, s.back) {
		if idx >= 0 {
			d.edges = append(d.edges[:idx], d.edges[idx+1:]...)
		}

		return
	}
	c := m.edgeCost(d, s)
	if idx >= 0 {
		d.edges[idx] = edge{supply: sid, cost: c, active: true}
	} else {
		d.edges = append(d.edges, edge{supply: sid, cost: c, active: true})
	}
}

func (m *Matcher[D, S]) edgeCost(d *demandNode[D], s *supplyNode[S]) int64 {
	c := m.edger.EdgeCost(d.back, s.back)
	if c < 0 {
		panic("wmatch: negative edge cost")
	}

	return c
}
