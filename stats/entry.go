package stats

import (
	"strconv"
	"time"

	"github.com/katalvlaran/khelm/cost"
)

// Kind is the type of an Entry.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindCost
	KindDuration
)

// Entry is one table cell.
type Entry struct {
	kind Kind
	s    string
	i    int64
	c    cost.Cost
	d    time.Duration
}

// String returns a text entry.
func String(s string) Entry { return Entry{kind: KindString, s: s} }

// Int returns an integer entry.
func Int(i int) Entry { return Entry{kind: KindInt, i: int64(i)} }

// Cost returns a cost entry.
func Cost(c cost.Cost) Entry { return Entry{kind: KindCost, c: c} }

// Duration returns a duration entry, shown to the millisecond.
func Duration(d time.Duration) Entry { return Entry{kind: KindDuration, d: d} }

// Kind returns the entry's type.
func (e Entry) Kind() Kind { return e.kind }

// Text renders the entry.
func (e Entry) Text() string {
	switch e.kind {
	case KindInt:
		return strconv.FormatInt(e.i, 10)
	case KindCost:
		return e.c.String()
	case KindDuration:
		return e.d.Round(time.Millisecond).String()
	}

	return e.s
}
