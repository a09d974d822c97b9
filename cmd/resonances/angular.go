package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/resonances/reconstruct"
	"github.com/katalvlaran/resonances/resonance"
)

var angularCmd = &cobra.Command{
	Use:   "angular <evaluation.yaml>",
	Short: "Write Legendre moments of the angular distributions as CSV",
	Long: `Reconstructs the Legendre moments of the outgoing reactions of a
single resolved region and writes <reaction>_legendre.csv files with one
column per moment.`,
	Args: cobra.ExactArgs(1),
	RunE: runAngular,
}

func runAngular(cmd *cobra.Command, args []string) error {
	ev, err := resonance.LoadEvaluation(args[0])
	if err != nil {
		return err
	}
	opts := cfg.ReconstructOptions(logger.With(zap.String("evaluation", args[0])))

	return writeAngular(cmd, ev, opts)
}

func writeAngular(cmd *cobra.Command, ev *resonance.Evaluation, opts reconstruct.Options) error {
	ang, err := reconstruct.AngularDistributions(commandContext(cmd), ev, opts)
	if err != nil {
		return fmt.Errorf("angular reconstruction failed: %w", err)
	}
	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, name := range reactionNames(ang.Legendre) {
		order := ang.Legendre.Order(name)
		header := []string{"energy_eV"}
		for l := 0; l < order; l++ {
			header = append(header, "P"+strconv.Itoa(l))
		}
		rows := [][]string{header}
		for i, e := range ang.Energies {
			row := []string{formatFloat(e)}
			for _, c := range ang.Legendre.At(name, i) {
				row = append(row, formatFloat(c))
			}
			rows = append(rows, row)
		}

		path := filepath.Join(cfg.Output.Dir, name+"_legendre.csv")
		if err := writeCSV(path, rows); err != nil {
			return err
		}
		opts.Logger.Info("wrote angular distribution",
			zap.String("reaction", name), zap.Int("order", order), zap.String("path", path))
		fmt.Fprintf(cmd.OutOrStdout(), "%s legendre -> %s\n", name, path)
	}

	return nil
}
