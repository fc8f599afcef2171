package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/hullvolt/analysis"
	"github.com/katalvlaran/hullvolt/metastable"
	"github.com/katalvlaran/hullvolt/structure"
	"github.com/katalvlaran/hullvolt/telemetry"
)

// stage selects which derived results a subcommand computes.
type stage int

const (
	stageHull stage = iota
	stageVoltage
	stageVolume
	stageMetastable
)

var (
	sampleSeed      int64
	sampleMaxTrials int
	sampleWorkers   int
)

var hullCmd = &cobra.Command{
	Use:   "hull <elements>",
	Short: "Build the convex hull and report hull distances",
	Long: `Builds the binary convex hull of the given elements, e.g. LiP, and
lists the structures within the stability cutoff.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error { return runStage(cmd, args, stageHull) },
}

var voltageCmd = &cobra.Command{
	Use:   "voltage <elements>",
	Short: "Compute the voltage curve of the hull",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return runStage(cmd, args, stageVoltage) },
}

var volumeCmd = &cobra.Command{
	Use:   "volume <elements>",
	Short: "Compute the volume expansion curve of the hull",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return runStage(cmd, args, stageVolume) },
}

var metastableCmd = &cobra.Command{
	Use:   "metastable <elements>",
	Short: "Sample the averaged metastable voltage profile",
	Long: `Samples random discharge paths through the structures within the
stability cutoff until the averaged voltage profile converges or the trial
cap is reached.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error { return runStage(cmd, args, stageMetastable) },
}

func init() {
	f := metastableCmd.Flags()
	f.Int64Var(&sampleSeed, "seed", 0, "random seed (0 uses a fixed default)")
	f.IntVar(&sampleMaxTrials, "max-trials", metastable.DefaultMaxTrials, "maximum number of sampled paths")
	f.IntVar(&sampleWorkers, "workers", 0, "parallel workers (0 uses GOMAXPROCS)")

	rootCmd.AddCommand(hullCmd, voltageCmd, volumeCmd, metastableCmd)
}

// buildConfig merges the config file, the environment and the flags.
func buildConfig(cmd *cobra.Command, elements string, s stage) (analysis.Config, error) {
	cfg, err := analysis.DecodeConfig(configPath)
	if err != nil {
		return analysis.Config{}, err
	}

	pair := structure.SplitElements(elements)
	if len(pair) != 2 {
		return analysis.Config{}, fmt.Errorf("%w: %q is not a binary system", analysis.ErrConfig, elements)
	}
	cfg.Elements = pair

	flags := cmd.Flags()
	if flags.Changed("cutoff") {
		cfg.HullCutoff = hullCutoff
	}
	if flags.Changed("temperature") {
		cfg.HullTemperature = hullTemperature
	}
	if flags.Changed("chem-pots") {
		cfg.ChemPots = chemPots
	}
	if flags.Changed("strict") {
		cfg.Strict = strict
	}

	cfg.Voltage.Enabled = s == stageVoltage
	cfg.Volume.Enabled = s == stageVolume
	cfg.Metastable.Enabled = s == stageMetastable
	if s == stageMetastable {
		if flags.Changed("seed") {
			cfg.Metastable.Seed = sampleSeed
		}
		if flags.Changed("max-trials") {
			cfg.Metastable.MaxTrials = sampleMaxTrials
		}
		if flags.Changed("workers") {
			cfg.Metastable.Workers = sampleWorkers
		}
	}

	return cfg, nil
}

func runStage(cmd *cobra.Command, args []string, s stage) error {
	cfg, err := buildConfig(cmd, args[0], s)
	if err != nil {
		return err
	}
	records, err := structure.LoadRecords(structuresPath)
	if err != nil {
		return err
	}

	var (
		reg *prometheus.Registry
		obs metastable.Observer
	)
	if metricsPath != "" {
		reg = prometheus.NewRegistry()
		m, err := telemetry.NewSamplerMetrics(reg)
		if err != nil {
			return err
		}
		obs = m
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	rep, err := analysis.Run(ctx, cfg, records, obs)
	if err != nil {
		return err
	}

	if err := rep.WriteSummary(cmd.OutOrStdout()); err != nil {
		return err
	}
	if s == stageVoltage && rep.Voltage != nil {
		printVoltage(cmd, rep)
	}
	if jsonPath != "" {
		if err := writeTo(cmd, jsonPath, rep.WriteJSON); err != nil {
			return err
		}
	}
	if reg != nil {
		if err := writeTo(cmd, metricsPath, func(w io.Writer) error { return telemetry.WriteText(w, reg) }); err != nil {
			return err
		}
	}

	return nil
}

func printVoltage(cmd *cobra.Command, rep *analysis.Report) {
	cmd.Println()
	cmd.Println("x (A per B)   Q (mAh/g)   V")
	for k := range rep.Voltage.Voltage {
		cmd.Printf("%-13g %-11.1f %.4f\n", rep.Voltage.NumA[k], rep.Voltage.Capacity[k], rep.Voltage.Voltage[k])
	}
}

// writeTo runs write against the named file, or stdout for "-".
func writeTo(cmd *cobra.Command, path string, write func(io.Writer) error) error {
	if path == "-" {
		return write(cmd.OutOrStdout())
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
