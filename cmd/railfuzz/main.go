// Command railfuzz drives a demo randomized test plan against the local
// shell: an echo step, a file-appending step with check/test phases, and a
// step whose command is expected to fail. Runs are reproducible via --seed.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"railfuzz/internal/config"
	"railfuzz/internal/steps"
	"railfuzz/pkg/randomizer"
	"railfuzz/pkg/runner"
	"railfuzz/pkg/step"
)

var (
	// Global flags
	verbose    bool
	seed       uint64
	configPath string
	workdir    string

	// Logger
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "railfuzz",
	Short: "railfuzz - randomized, reproducible CLI test plans",
	Long: `railfuzz executes an ordered plan of randomized shell commands and judges
each result against the step's own success predicate. Every random choice
comes from one seeded stream, so any run can be replayed exactly by passing
the seed printed in its plan report.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute the demo test plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := buildRunner(cmd)
		if err != nil {
			return err
		}
		return r.Run()
	},
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Print the execution plan without running any command",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := buildRunner(cmd)
		if err != nil {
			return err
		}
		report, err := r.DumpPlan()
		if err != nil {
			return err
		}
		fmt.Println(report)
		return nil
	},
}

func buildRunner(cmd *cobra.Command) (*runner.Runner, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = &seed
	}
	if cmd.Flags().Changed("workdir") {
		cfg.Workdir = workdir
	}

	rz := randomizer.New()
	if cfg.Seed != nil {
		rz = randomizer.WithSeed(*cfg.Seed)
	}

	return runner.New(demoSteps(cfg)...).
		WithRandomizer(rz).
		WithLogger(logger), nil
}

func demoSteps(cfg *config.Config) []step.Step {
	return []step.Step{
		&steps.EchoStep{Spec: cfg.Spec()},
		&steps.FileStep{Location: filepath.Join(cfg.Workdir, "file-step")},
		&steps.BadCommandStep{},
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "seed for the random stream (default: system entropy)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&workdir, "workdir", "", "directory for file-based step artifacts")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(planCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
