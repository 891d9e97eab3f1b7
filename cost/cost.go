package cost

import (
	"math"

	"github.com/shopspring/decimal"
)

// Cost is a combined hard/soft cost. Zero means no violations.
type Cost int64

// Zero is the cost of a timetable with no violations.
const Zero Cost = 0

// Max is larger than any cost a real timetable can reach.
const Max Cost = math.MaxInt64

// softBits is the width of the soft component.
const softBits = 32

// showSoftLimit caps the soft part shown after the decimal point.
const showSoftLimit = 99999

// New combines a hard and a soft cost.
func New(hard, soft int64) Cost {
	return Cost(hard<<softBits + soft)
}

// Hard returns the hard component of c.
func (c Cost) Hard() int64 {
	return int64(c) >> softBits
}

// Soft returns the soft component of c.
func (c Cost) Soft() int64 {
	return int64(c) & (1<<softBits - 1)
}

// Scale multiplies c by k, saturating at Max.
func (c Cost) Scale(k int64) Cost {
	if c == 0 || k == 0 {
		return 0
	}
	if c > Max/Cost(k) {
		return Max
	}

	return c * Cost(k)
}

// Add returns c+d, saturating at Max.
func (c Cost) Add(d Cost) Cost {
	if c > Max-d {
		return Max
	}

	return c + d
}

// Show returns c as hard.soft, with soft capped at five digits.
func (c Cost) Show() decimal.Decimal {
	if c == Max {
		return decimal.NewFromInt(math.MaxInt32)
	}
	soft := c.Soft()
	if soft > showSoftLimit {
		soft = showSoftLimit
	}

	return decimal.NewFromInt(c.Hard()).Add(decimal.New(soft, -5))
}

// String implements fmt.Stringer.
func (c Cost) String() string {
	if c == Max {
		return "max"
	}

	return c.Show().StringFixed(5)
}
