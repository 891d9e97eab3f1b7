package stats

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"

	"github.com/katalvlaran/khelm/cost"
)

// missing is shown for cells never set.
const missing = "-"

// Table is a grid of entries keyed by row and column names.
type Table struct {
	name       string
	corner     string
	rows       []string
	cols       []string
	cells      map[[2]string]Entry
	averageRow bool
	totalRow   bool
}

// TableOption configures a Table at Begin.
type TableOption func(*Table)

// WithCorner sets the text of the header row's first cell.
func WithCorner(s string) TableOption {
	return func(t *Table) { t.corner = s }
}

// WithAverageRow adds an "Average" row below the data rows.
func WithAverageRow() TableOption {
	return func(t *Table) { t.averageRow = true }
}

// WithTotalRow adds a "Total" row below the data rows.
func WithTotalRow() TableOption {
	return func(t *Table) { t.totalRow = true }
}

func newTable(name string, opts []TableOption) *Table {
	t := &Table{name: name, cells: make(map[[2]string]Entry)}
	for _, fn := range opts {
		fn(t)
	}

	return t
}

// Name returns the table's name.
func (t *Table) Name() string { return t.name }

// Rows returns the row names in first-use order.
func (t *Table) Rows() []string { return t.rows }

// Cols returns the column names in first-use order.
func (t *Table) Cols() []string { return t.cols }

// Set stores e at (row, col), replacing any earlier entry.
func (t *Table) Set(row, col string, e Entry) {
	if !contains(t.rows, row) {
		t.rows = append(t.rows, row)
	}
	if !contains(t.cols, col) {
		t.cols = append(t.cols, col)
	}
	t.cells[[2]string{row, col}] = e
}

// Get returns the entry at (row, col).
func (t *Table) Get(row, col string) (Entry, bool) {
	e, ok := t.cells[[2]string{row, col}]

	return e, ok
}

func contains(xs []string, x string) bool {
	for _, y := range xs {
		if y == x {
			return true
		}
	}

	return false
}

// column sums the numeric entries of col. kind is KindString when the
// column has no numeric entry or mixes kinds.
type column struct {
	kind  Kind
	n     int64
	ints  int64
	costs cost.Cost
	durs  time.Duration
}

func (t *Table) summarize(col string) column {
	var c column
	for _, row := range t.rows {
		e, ok := t.cells[[2]string{row, col}]
		if !ok || e.kind == KindString {
			continue
		}
		if c.n > 0 && c.kind != e.kind {
			return column{}
		}
		c.kind = e.kind
		c.n++
		c.ints += e.i
		c.costs = c.costs.Add(e.c)
		c.durs += e.d
	}
	if c.n == 0 {
		return column{}
	}

	return c
}

func (c column) total() string {
	switch c.kind {
	case KindInt:
		return Int(int(c.ints)).Text()
	case KindCost:
		return Cost(c.costs).Text()
	case KindDuration:
		return Duration(c.durs).Text()
	}

	return ""
}

func (c column) average() string {
	switch c.kind {
	case KindInt:
		return decimal.NewFromInt(c.ints).Div(decimal.NewFromInt(c.n)).StringFixed(2)
	case KindCost:
		return Cost(cost.New(c.costs.Hard()/c.n, c.costs.Soft()/c.n)).Text()
	case KindDuration:
		return Duration(c.durs / time.Duration(c.n)).Text()
	}

	return ""
}

// Render writes the table: its name, a header row of column names, one
// line per row and the optional average and total rows. Columns are
// separated by at least two spaces.
func (t *Table) Render(w io.Writer) error {
	if _, err := fmt.Fprintln(w, t.name); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	line := func(first string, cell func(col string) string) {
		parts := make([]string, 0, len(t.cols)+1)
		parts = append(parts, first)
		for _, col := range t.cols {
			parts = append(parts, cell(col))
		}
		fmt.Fprintln(tw, strings.Join(parts, "\t"))
	}

	// 1) header and data rows
	line(t.corner, func(col string) string { return col })
	for _, row := range t.rows {
		line(row, func(col string) string {
			if e, ok := t.cells[[2]string{row, col}]; ok {
				return e.Text()
			}

			return missing
		})
	}

	// 2) summary rows
	if t.averageRow {
		line("Average", func(col string) string { return t.summarize(col).average() })
	}
	if t.totalRow {
		line("Total", func(col string) string { return t.summarize(col).total() })
	}

	return tw.Flush()
}
