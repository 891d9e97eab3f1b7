package elm

import (
	"context"
	"io"
	"log/slog"
)

// ChildlessMultiplier scales the edge cost of demands whose node has no
// children, so that leaf nodes claim the cheap slots first.
const ChildlessMultiplier = 10

// Options configures an Elm.
//   - Diversify: vary orderings by the solution's diversifier.
//   - Logger:    receives Debug records of stages and repairs.
//   - Ctx:       parent context of the trace spans (default Background).
type Options struct {
	Diversify bool
	Logger    *slog.Logger
	Ctx       context.Context
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns non-diversifying Options with a discarding logger.
func DefaultOptions() Options {
	return Options{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Ctx:    context.Background(),
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

// WithContext sets the parent context of trace spans. nil is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

func buildOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	return o
}
