// Package main is the resonances command: it reconstructs pointwise cross
// sections and angular distributions from resonance parameter files.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/resonances/config"
)

var (
	// Global flags
	configPath string
	outputDir  string
	verbose    bool

	logger *zap.Logger
	cfg    *config.Config
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "resonances",
	Short: "Reconstruct cross sections from resonance parameters",
	Long: `resonances turns resolved and unresolved resonance parameters into
pointwise cross sections on an adaptively refined energy grid.

Resolved regions use SLBW, MLBW, Reich-Moore or general R-matrix (RML)
formulas; unresolved regions use Hauser-Feshbach averages with width
fluctuation corrections.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if outputDir != "" {
			cfg.Output.Dir = outputDir
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		level, _ := cfg.LogLevel()
		zc := zap.NewProductionConfig()
		zc.Level = zap.NewAtomicLevelAt(level)
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zc.Build()
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

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "resonances.yaml", "Configuration file")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "", "Output directory (overrides output.dir)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		reconstructCmd,
		angularCmd,
		plotCmd,
		initConfigCmd,
	)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}
