package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/resonances/reconstruct"
	"github.com/katalvlaran/resonances/resonance"
	"github.com/katalvlaran/resonances/xs"
)

var reconstructCmd = &cobra.Command{
	Use:   "reconstruct <evaluation.yaml>",
	Short: "Write pointwise cross sections as CSV",
	Long: `Reconstructs every resonance region of the evaluation and writes one
<reaction>.csv per reaction into the output directory. With
angular.enabled set, the Legendre moments are written as well.`,
	Args: cobra.ExactArgs(1),
	RunE: runReconstruct,
}

func runReconstruct(cmd *cobra.Command, args []string) error {
	ev, err := resonance.LoadEvaluation(args[0])
	if err != nil {
		return err
	}
	log := logger.With(zap.String("evaluation", args[0]))
	opts := cfg.ReconstructOptions(log)

	sigma, err := reconstruct.CrossSections(commandContext(cmd), ev, opts)
	if err != nil {
		return fmt.Errorf("reconstruction failed: %w", err)
	}
	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	for _, name := range reactionNames(sigma) {
		path := filepath.Join(cfg.Output.Dir, name+".csv")
		if err := writeCrossSection(path, sigma[name]); err != nil {
			return err
		}
		log.Info("wrote cross section", zap.String("reaction", name), zap.String("path", path))
		fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", name, path)
	}

	if !cfg.Angular.Enabled {
		return nil
	}

	return writeAngular(cmd, ev, opts)
}

func reactionNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// flatten lists the tabulated points of p. Region boundaries appear twice,
// once for each side.
func flatten(p xs.Piecewise) (energies, values []float64) {
	switch v := p.(type) {
	case xs.Pointwise:
		return v.Energies, v.Values
	case xs.Regions:
		for _, r := range v {
			energies = append(energies, r.Energies...)
			values = append(values, r.Values...)
		}
	}

	return energies, values
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 10, 64)
}

func writeCrossSection(path string, p xs.Piecewise) error {
	energies, values := flatten(p)
	rows := make([][]string, 0, len(energies)+1)
	rows = append(rows, []string{"energy_eV", "cross_section_b"})
	for i, e := range energies {
		rows = append(rows, []string{formatFloat(e), formatFloat(values[i])})
	}

	return writeCSV(path, rows)
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return f.Close()
}
