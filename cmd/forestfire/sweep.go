package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"forest-fire/internal/render"
	"forest-fire/internal/sims/forestfire"
)

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Measure burned fraction and percolation across tree probabilities",
		RunE:  runSweep,
	}
	fs := cmd.Flags()
	fs.Int("width", 0, "grid width in cells")
	fs.Int("height", 0, "grid height in cells")
	fs.Int64("seed", 0, "base random seed")
	fs.Float64("from", 0, "first tree probability")
	fs.Float64("to", 0, "last tree probability")
	fs.Float64("step", 0, "probability increment")
	fs.Int("runs", 0, "independent runs per probability")
	fs.Int("workers", 0, "parallel runs (0 = number of CPUs)")
	fs.Int("max-ticks", 0, "cap each run at this many ticks (0 = no cap)")
	fs.String("chart", "", "write a PNG chart of the results to this path")
	fs.Bool("json", false, "print the results as JSON")
	return cmd
}

func runSweep(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	fs := cmd.Flags()
	sw := cfg.Sweep
	for name, dst := range map[string]*float64{"from": &sw.From, "to": &sw.To, "step": &sw.Step} {
		if fs.Changed(name) {
			*dst, _ = fs.GetFloat64(name)
		}
	}
	for name, dst := range map[string]*int{"runs": &sw.Runs, "workers": &sw.Workers, "max-ticks": &sw.MaxTicks} {
		if fs.Changed(name) {
			*dst, _ = fs.GetInt(name)
		}
	}
	cfg.Sweep = sw
	if err := cfg.ValidateSweep(); err != nil {
		return err
	}
	chartPath, _ := fs.GetString("chart")
	asJSON, _ := fs.GetBool("json")

	probs := forestfire.Probabilities(sw.From, sw.To, sw.Step)
	log.Info().
		Int("points", len(probs)).
		Int("runs", sw.Runs).
		Int("width", cfg.Sim.Width).
		Int("height", cfg.Sim.Height).
		Msg("sweep started")
	start := time.Now()
	points, err := forestfire.Sweep(cmd.Context(), forestfire.SweepConfig{
		Width:         cfg.Sim.Width,
		Height:        cfg.Sim.Height,
		Probabilities: probs,
		Runs:          sw.Runs,
		Seed:          cfg.Sim.Seed,
		Workers:       sw.Workers,
		MaxTicks:      sw.MaxTicks,
	})
	if err != nil {
		return err
	}
	log.Info().Dur("elapsed", time.Since(start)).Msg("sweep finished")

	if chartPath != "" {
		if err := writeSweepChart(chartPath, points); err != nil {
			return err
		}
		log.Info().Str("path", chartPath).Msg("chart written")
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(points)
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "p\tburned %\tticks\tpercolation")
	for _, pt := range points {
		fmt.Fprintf(tw, "%.3f\t%.2f\t%.1f\t%.2f\n", pt.TreeProbability, pt.MeanPercentBurned, pt.MeanTicks, pt.PercolationRate)
	}
	return tw.Flush()
}

func writeSweepChart(path string, points []forestfire.SweepPoint) error {
	xs := make([]float64, len(points))
	burned := make([]float64, len(points))
	percolation := make([]float64, len(points))
	for i, pt := range points {
		xs[i] = pt.TreeProbability
		burned[i] = pt.MeanPercentBurned
		percolation[i] = 100 * pt.PercolationRate
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	err = render.LineChart(f, "Forest fire sweep", "tree probability", "%",
		render.Series{Name: "burned", X: xs, Y: burned},
		render.Series{Name: "percolation", X: xs, Y: percolation},
	)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("chart %s: %w", path, err)
	}
	return nil
}
