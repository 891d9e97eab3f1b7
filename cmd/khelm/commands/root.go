package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "khelm",
	Short: "Layer matching for timetables",
	Long: `khelm places the child meets of timetable layers into their parent
meets, one layer at a time, by weighted bipartite matching.

Settings come from flags, from $HOME/.khelm.yaml (or --config) and from
KHELM_* environment variables, in that order of precedence.`,
	Version:       CurrentVersion,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "khelm:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.khelm.yaml)")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level: debug, info, warn or error")
	bindFlags(rootCmd.PersistentFlags(), "log-level")

	rootCmd.AddCommand(assignCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.SetConfigFile(filepath.Join(home, ".khelm.yaml"))
			viper.SetConfigType("yaml")
		}
	}
	viper.SetEnvPrefix("KHELM")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}

// newLogger returns a text logger on w at the configured level.
func newLogger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	name := viper.GetString("log-level")
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return nil, fmt.Errorf("bad log level %q: %w", name, err)
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}
