package wmatch

import (
	"io"
	"log/slog"
)

// DemandID identifies a demand node of a Matcher.
type DemandID int

// SupplyID identifies a supply node of a Matcher.
type SupplyID int

// Category groups nodes for reporting, e.g. all supplies carved out of
// one parent meet.
type Category int

// NoSupply is returned by lookups when a demand is unmatched.
const NoSupply SupplyID = -1

// Edger answers edge queries for a Matcher. EdgeCost is only called for
// pairs where EdgeExists has just returned true, and costs must be
// non-negative.
type Edger[D, S any] interface {
	EdgeExists(d D, s S) bool
	EdgeCost(d D, s S) int64
}

// Options configures a Matcher.
//   - Logger: receives a Debug record per evaluation (default: discard).
type Options struct {
	Logger *slog.Logger
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns Options with a discarding logger.
func DefaultOptions() Options {
	return Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// WithLogger sets the logger used for evaluation records.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// edge is one cached demand→supply edge. Inactive edges are kept aside
// during special mode.
type edge struct {
	supply SupplyID
	cost   int64
	active bool
}

type demandNode[D any] struct {
	back  D
	cat   Category
	live  bool
	dirty bool
	edges []edge
}

type supplyNode[S any] struct {
	back  S
	cat   Category
	live  bool
	dirty bool
}
