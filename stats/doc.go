// Package stats collects tables of run statistics and renders them as
// aligned plain text.
//
// A Registry owns named tables. A table is opened with Begin, filled cell
// by cell with Set, and closed with End, which renders it to a writer and
// forgets it. Rows and columns appear in the order they were first used.
//
// Entries are typed: String, Int, Cost or Duration. A table may carry an
// average row and a total row; each is computed per column over the rows
// whose entry in that column is numeric, and left blank for columns
// holding strings.
//
// Example:
//
//	reg := stats.NewRegistry()
//	t, _ := reg.Begin("layers", stats.WithTotalRow())
//	t.Set("L1", "Meets", stats.Int(4))
//	t.Set("L2", "Meets", stats.Int(3))
//	_ = reg.End("layers", os.Stdout)
//
// A Registry is not safe for concurrent use.
package stats
