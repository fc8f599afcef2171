// Package cli implements the hullvolt command line.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/hullvolt/internal/logger"
)

// version is set at build time with -ldflags.
var version = "dev"

var (
	structuresPath string
	configPath     string
	jsonPath       string
	metricsPath    string
	verbose        bool

	hullCutoff      float64
	hullTemperature float64
	chemPots        []float64
	strict          bool
)

var rootCmd = &cobra.Command{
	Use:   "hullvolt",
	Short: "Binary convex hull and voltage analysis",
	Long: `hullvolt builds the convex hull of a binary A-B system from computed
structures and derives hull distances, voltage and volume curves and an
averaged metastable voltage profile.

Structures are read from a TOML file with one [[structures]] table per
record. Settings come from --config, HULLVOLT_* environment variables and
flags, in increasing order of precedence.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&structuresPath, "structures", "s", "", "TOML file of structure records")
	pf.StringVarP(&configPath, "config", "c", "", "TOML configuration file")
	pf.StringVar(&jsonPath, "json", "", "write the JSON report to this file (- for stdout)")
	pf.StringVar(&metricsPath, "metrics", "", "write sampler metrics in Prometheus text format to this file")
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	pf.Float64Var(&hullCutoff, "cutoff", 0, "hull stability cutoff in eV/atom")
	pf.Float64Var(&hullTemperature, "temperature", 0, "hull temperature in K (overrides --cutoff)")
	pf.Float64SliceVar(&chemPots, "chem-pots", nil, "explicit chemical potentials of A and B in eV/atom")
	pf.BoolVar(&strict, "strict", false, "abort on the first invalid structure")
	_ = rootCmd.MarkPersistentFlagRequired("structures")

	rootCmd.Version = version
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
