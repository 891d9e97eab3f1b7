package layered

import (
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/khelm/stats"
)

// DefaultStatsTable is the stats table name used by WithStats when none
// is given.
const DefaultStatsTable = "layers"

// Options configures a Solver.
//   - Diversify:  passed to elm.LayerAssign.
//   - Logger:     receives one Info record per layer.
//   - Tracer:     starts the per-layer spans (default: the global provider).
//   - Stats:      if non-nil, receives one row per layer in StatsTable.
//   - StatsTable: table name, opened at the first layer.
//   - Now:        clock used to time layers.
type Options struct {
	Diversify  bool
	Logger     *slog.Logger
	Tracer     trace.Tracer
	Stats      *stats.Registry
	StatsTable string
	Now        func() time.Time
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns Options with diversification off, a discarding
// logger, the global tracer and no stats.
func DefaultOptions() Options {
	return Options{
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		Tracer:     otel.Tracer(tracerName),
		StatsTable: DefaultStatsTable,
		Now:        time.Now,
	}
}

// WithDiversify turns diversification on or off.
func WithDiversify(on bool) Option {
	return func(o *Options) { o.Diversify = on }
}

// WithLogger sets the logger. nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithTracer sets the tracer. nil is ignored.
func WithTracer(t trace.Tracer) Option {
	return func(o *Options) {
		if t != nil {
			o.Tracer = t
		}
	}
}

// WithStats records a row per layer into table of reg. An empty table
// means DefaultStatsTable.
func WithStats(reg *stats.Registry, table string) Option {
	return func(o *Options) {
		o.Stats = reg
		if table != "" {
			o.StatsTable = table
		}
	}
}

// WithClock replaces the clock used to time layers. nil is ignored.
func WithClock(now func() time.Time) Option {
	return func(o *Options) {
		if now != nil {
			o.Now = now
		}
	}
}
