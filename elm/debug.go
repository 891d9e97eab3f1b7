package elm

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// DebugSegmentation writes one line per supply group: the parent meet
// followed by its supplies in offset order. A supply prints as its
// duration, with "*" when reserved for a demand and "-" when removed.
//
//	week: 2 2* 1 1 2-
func (e *Elm) DebugSegmentation(w io.Writer) {
	for _, g := range e.supplyGroups {
		ss := append([]*Supply(nil), g.supplies...)
		sort.Slice(ss, func(i, j int) bool { return ss[i].offset < ss[j].offset })
		var b strings.Builder
		b.WriteString(g.meet.ID())
		b.WriteString(":")
		for _, s := range ss {
			fmt.Fprintf(&b, " %d", s.duration)
			if s.fixed != nil {
				b.WriteString("*")
			}
			if s.removed {
				b.WriteString("-")
			}
		}
		fmt.Fprintln(w, b.String())
	}
}

// Debug writes the session's groups, the best matching and its totals.
func (e *Elm) Debug(w io.Writer) {
	fmt.Fprintf(w, "[ Elm %s: %d supply groups, %d demand groups, unmatched %d, cost %s, unevenness %d\n",
		e.layer.ID(), len(e.supplyGroups), len(e.demandGroups),
		e.BestUnmatched(), e.BestCost(), e.Unevenness())
	for _, g := range e.demandGroups {
		fmt.Fprintf(w, "  %s", g.node.ID())
		if len(g.zones) > 0 {
			names := make([]string, len(g.zones))
			for i, z := range g.zones {
				names[i] = "-"
				if z != nil {
					names[i] = z.ID()
				}
			}
			fmt.Fprintf(w, " zones{%s}", strings.Join(names, ","))
		}
		fmt.Fprintln(w, ":")
		for _, d := range g.demands {
			if s, c, ok := e.DemandBestSupply(d); ok {
				fmt.Fprintf(w, "    %s -> %s (%s)\n", d, s, c)
			} else {
				fmt.Fprintf(w, "    %s unmatched\n", d)
			}
		}
	}
	fmt.Fprintln(w, "]")
}
