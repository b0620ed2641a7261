package forestfire

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	pcore "forest-fire/pkg/core"
)

// SweepConfig describes a percolation experiment: Runs independent fires per
// tree probability on a Width×Height grid.
type SweepConfig struct {
	Width         int
	Height        int
	Probabilities []float64
	Runs          int
	Seed          int64
	Workers       int
	// MaxTicks caps each run; 0 means run until the fire is out.
	MaxTicks int
}

// SweepPoint aggregates the runs of one tree probability.
type SweepPoint struct {
	TreeProbability   float64 `json:"tree_probability"`
	Runs              int     `json:"runs"`
	MeanPercentBurned float64 `json:"mean_percent_burned"`
	MeanTicks         float64 `json:"mean_ticks"`
	PercolationRate   float64 `json:"percolation_rate"`
}

type runResult struct {
	percentBurned float64
	ticks         int
	percolated    bool
}

// Probabilities returns from, from+step, ... up to and including to (within
// rounding).
func Probabilities(from, to, step float64) []float64 {
	if step <= 0 || to < from {
		return []float64{from}
	}
	n := int(math.Floor((to-from)/step+1e-9)) + 1
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Round((from+float64(i)*step)*1e9) / 1e9
	}
	return out
}

// Sweep runs the experiment on a bounded worker pool. Each run is seeded
// from cfg.Seed and its index, so results do not depend on Workers.
func Sweep(ctx context.Context, cfg SweepConfig) ([]SweepPoint, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Runs <= 0 || len(cfg.Probabilities) == 0 {
		return nil, fmt.Errorf("sweep %dx%d with %d runs over %d probabilities: %w",
			cfg.Height, cfg.Width, cfg.Runs, len(cfg.Probabilities), ErrInvalidParameter)
	}
	for _, p := range cfg.Probabilities {
		if !(p >= 0 && p <= 1) {
			return nil, fmt.Errorf("tree probability %v: %w", p, ErrInvalidParameter)
		}
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]runResult, len(cfg.Probabilities)*cfg.Runs)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range results {
		if gctx.Err() != nil {
			break
		}
		p := cfg.Probabilities[i/cfg.Runs]
		g.Go(func() error {
			res, err := sweepRun(gctx, cfg, p, pcore.Derive(cfg.Seed, i))
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// gctx is always cancelled once Wait returns; only the caller's ctx
	// tells whether the sweep was cut short.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	points := make([]SweepPoint, len(cfg.Probabilities))
	for pi, p := range cfg.Probabilities {
		pt := SweepPoint{TreeProbability: p, Runs: cfg.Runs}
		percolated := 0
		for _, r := range results[pi*cfg.Runs : (pi+1)*cfg.Runs] {
			pt.MeanPercentBurned += r.percentBurned
			pt.MeanTicks += float64(r.ticks)
			if r.percolated {
				percolated++
			}
		}
		n := float64(cfg.Runs)
		pt.MeanPercentBurned /= n
		pt.MeanTicks /= n
		pt.PercolationRate = float64(percolated) / n
		points[pi] = pt
	}
	return points, nil
}

func sweepRun(ctx context.Context, cfg SweepConfig, p float64, seed int64) (runResult, error) {
	state, err := Initialize(cfg.Width, cfg.Height, p, pcore.NewRNG(seed))
	if err != nil {
		return runResult{}, err
	}
	for cfg.MaxTicks <= 0 || state.Tick() < cfg.MaxTicks {
		if err := ctx.Err(); err != nil {
			return runResult{}, err
		}
		done, err := Step(state)
		if err != nil {
			return runResult{}, err
		}
		if done {
			break
		}
	}
	return runResult{
		percentBurned: state.PercentBurned(),
		ticks:         state.Tick(),
		percolated:    state.Percolated(),
	}, nil
}
