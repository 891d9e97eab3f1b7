package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/katalvlaran/khelm/layered"
	"github.com/katalvlaran/khelm/soln"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00FF99"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF99"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F"))
)

// renderReport writes each layer's outcome, then every non-cycle meet's
// assignment and the final cost.
func renderReport(w io.Writer, res layered.Result, s *soln.Soln) {
	fmt.Fprintln(w, titleStyle.Render("LAYERS"))
	for _, l := range res.Layers {
		status := okStyle.Render("complete")
		if !l.Complete {
			status = failStyle.Render("incomplete")
		}
		fmt.Fprintf(w, "  %-16s %s (%d/%d meets)\n", l.Layer, status, l.Assigned, l.Meets)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, titleStyle.Render("ASSIGNMENTS"))
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Meet", "Duration", "Target", "Offset", "Start")
	for _, m := range s.Meets() {
		if m.IsCycleMeet() {
			continue
		}
		target, offset, start := "-", "-", "-"
		if a := m.Asst(); a != nil {
			target, offset = a.ID(), strconv.Itoa(m.AsstOffset())
		}
		if st := m.AsstTime(); st != nil {
			start = st.ID()
		}
		t.Row(m.ID(), strconv.Itoa(m.Duration()), target, offset, start)
	}
	fmt.Fprintln(w, t.Render())
	fmt.Fprintf(w, "cost %s\n\n", res.Cost)
}
