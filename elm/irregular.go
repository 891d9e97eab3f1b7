package elm

import "github.com/katalvlaran/khelm/cost"

// testBestCost returns the solution cost that assigning every demand to
// its best supply would give, irregular monitors included, leaving the
// solution unchanged.
func (e *Elm) testBestCost() cost.Cost {
	mk := e.soln.MarkBegin()
	e.BestAssignMeets()
	e.AttachIrregularMonitors()
	c := e.soln.Cost()
	e.DetachIrregularMonitors()
	e.soln.MarkEnd(mk, true)

	return c
}

// supplyExcess returns, per duration (index duration-1), the total
// duration of unremoved supplies of that duration minus the total
// duration of demands of that duration, and the overall excess.
func (e *Elm) supplyExcess() (byDuration []int, total int) {
	grow := func(d int) {
		for len(byDuration) < d {
			byDuration = append(byDuration, 0)
		}
	}
	for _, g := range e.supplyGroups {
		for _, s := range g.supplies {
			if !s.removed {
				grow(s.duration)
				byDuration[s.duration-1] += s.duration
				total += s.duration
			}
		}
	}
	for _, d := range e.demands {
		n := d.meet.Duration()
		grow(n)
		byDuration[n-1] -= n
		total -= n
	}

	return byDuration, total
}

// ReduceIrregularMonitors removes surplus supplies, one at a time, while
// doing so lowers the cost of the layer's irregular monitors under a best
// assignment. A supply is only removed while there is excess capacity of
// its duration left, and never when that would leave more demands
// unmatched.
//
// Steps:
//  1. Do nothing without irregular monitors or excess supply.
//  2. Remember each monitor's attachment, detach them all and enter
//     special mode.
//  3. Repeatedly try removing each eligible supply, keep the single
//     removal that lowers testBestCost most, and stop when none does.
//  4. Leave special mode and restore each monitor's attachment.
func (e *Elm) ReduceIrregularMonitors() {
	// 1) anything to do?
	if len(e.irregular) == 0 {
		return
	}
	excess, total := e.supplyExcess()
	if total <= 0 {
		return
	}

	// 2) detach
	attached := make([]bool, len(e.irregular))
	for i, m := range e.irregular {
		attached[i] = m.Attached()
	}
	e.DetachIrregularMonitors()
	e.SpecialModeBegin()

	// 3) greedy removal
	removed := 0
	for total > 0 {
		unmatched := e.BestUnmatched()
		best := e.testBestCost()
		var bestSupply *Supply
		for _, g := range e.supplyGroups {
			for _, s := range g.supplies {
				if s.removed || excess[s.duration-1] <= 0 || total < s.duration {
					continue
				}
				e.Remove(s)
				if e.BestUnmatched() <= unmatched {
					if c := e.testBestCost(); c < best {
						best, bestSupply = c, s
					}
				}
				e.Unremove(s)
			}
		}
		if bestSupply == nil {
			break
		}
		e.Remove(bestSupply)
		excess[bestSupply.duration-1] -= bestSupply.duration
		total -= bestSupply.duration
		removed++
		e.log.Debug("elm: removed supply", "supply", bestSupply.String(), "cost", best.String())
	}

	// 4) restore
	e.SpecialModeEnd()
	for i, m := range e.irregular {
		if attached[i] {
			m.Attach()
		}
	}
	e.log.Debug("elm: irregular monitors reduced", "removed", removed)
}
