package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/katalvlaran/khelm/instance"
	"github.com/katalvlaran/khelm/layered"
	"github.com/katalvlaran/khelm/stats"
	"github.com/katalvlaran/khelm/telemetry"
)

const tracerName = "github.com/katalvlaran/khelm/cmd/khelm"

var (
	errNoInstance     = errors.New("no instance file given (use -i)")
	errBadDiversifier = errors.New("--diversifier must not be negative")
)

var assignCmd = &cobra.Command{
	Use:   "assign",
	Short: "Assign every layer of an instance file",
	Long: `Load a YAML instance, assign its layers parents first, and print the
per-layer statistics and the resulting meet assignments.

Example:
  khelm assign -i school.yaml --diversify --diversifier 3`,
	RunE: runAssign,
}

func init() {
	f := assignCmd.Flags()
	f.StringP("instance", "i", "", "instance file (YAML)")
	f.Bool("diversify", false, "vary tie-breaking by the diversifier")
	f.Int("diversifier", 0, "override the instance's diversifier")
	f.Bool("trace", false, "write OpenTelemetry spans to stderr")
	bindFlags(f, "instance", "diversify", "diversifier", "trace")
}

// bindFlags makes the named flags of fs viper keys of the same name.
func bindFlags(fs *pflag.FlagSet, names ...string) {
	for _, name := range names {
		_ = viper.BindPFlag(name, fs.Lookup(name))
	}
}

func runAssign(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	// 1. Logging and tracing
	logger, err := newLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if viper.GetBool("trace") {
		shutdown, err := telemetry.Init(ctx, "khelm", CurrentVersion, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer func() { _ = shutdown(ctx) }()
	}

	// 2. Load
	path := viper.GetString("instance")
	if path == "" {
		return errNoInstance
	}
	if viper.IsSet("diversifier") && viper.GetInt("diversifier") < 0 {
		return errBadDiversifier
	}
	p, err := instance.LoadFile(path)
	if err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	if viper.IsSet("diversifier") {
		p.Soln.SetDiversifier(viper.GetInt("diversifier"))
	}

	// 3. Assign
	ctx, span := otel.Tracer(tracerName).Start(ctx, "khelm.assign")
	defer span.End()
	span.SetAttributes(attribute.String("instance", path), attribute.Int("layers", len(p.Jobs)))
	reg := stats.NewRegistry()
	solver := layered.New(
		layered.WithDiversify(viper.GetBool("diversify")),
		layered.WithLogger(logger),
		layered.WithStats(reg, ""),
	)
	res, err := solver.AssignLayers(ctx, p.Soln, p.Jobs)
	if err != nil {
		return err
	}

	// 4. Report
	renderReport(out, res, p.Soln)

	return reg.End(layered.DefaultStatsTable, out)
}
