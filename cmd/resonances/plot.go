package main

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/katalvlaran/resonances/reconstruct"
	"github.com/katalvlaran/resonances/resonance"
	"github.com/katalvlaran/resonances/xs"
)

var plotCmd = &cobra.Command{
	Use:   "plot <evaluation.yaml>",
	Short: "Plot reconstructed cross sections on log-log axes",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlot,
}

var plotColors = []color.Color{
	color.RGBA{R: 200, A: 255},
	color.RGBA{G: 140, A: 255},
	color.RGBA{B: 220, A: 255},
	color.RGBA{R: 255, G: 165, A: 255},
	color.RGBA{R: 128, B: 128, A: 255},
	color.RGBA{G: 128, B: 128, A: 255},
}

func runPlot(cmd *cobra.Command, args []string) error {
	ev, err := resonance.LoadEvaluation(args[0])
	if err != nil {
		return err
	}
	log := logger.With(zap.String("evaluation", args[0]))

	sigma, err := reconstruct.CrossSections(commandContext(cmd), ev, cfg.ReconstructOptions(log))
	if err != nil {
		return fmt.Errorf("reconstruction failed: %w", err)
	}
	p, err := crossSectionPlot(ev.Target.Name, sigma)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(cfg.Output.Dir, "cross_sections.png")
	if err := p.Save(vg.Length(cfg.Output.PlotWidth)*vg.Centimeter, vg.Length(cfg.Output.PlotHeight)*vg.Centimeter, path); err != nil {
		return fmt.Errorf("failed to save plot: %w", err)
	}
	log.Info("wrote plot", zap.String("path", path))
	fmt.Fprintf(cmd.OutOrStdout(), "plot -> %s\n", path)

	return nil
}

// crossSectionPlot draws one line per reaction. Non-positive values are
// left out since both axes are logarithmic.
func crossSectionPlot(target string, sigma map[string]xs.Piecewise) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s reconstructed cross sections", target)
	p.X.Label.Text = "Incident energy (eV)"
	p.Y.Label.Text = "Cross section (b)"
	p.X.Scale = plot.LogScale{}
	p.Y.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Add(plotter.NewGrid())

	plotted := 0
	for i, name := range reactionNames(sigma) {
		energies, values := flatten(sigma[name])
		pts := make(plotter.XYs, 0, len(energies))
		for j, e := range energies {
			if e > 0 && values[j] > 0 {
				pts = append(pts, plotter.XY{X: e, Y: values[j]})
			}
		}
		if len(pts) < 2 {
			continue
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("failed to create line for %s: %w", name, err)
		}
		line.Color = plotColors[i%len(plotColors)]
		line.LineStyle.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(name, line)
		plotted++
	}
	if plotted == 0 {
		return nil, fmt.Errorf("no positive cross sections to plot")
	}
	p.Legend.Top = true

	return p, nil
}
