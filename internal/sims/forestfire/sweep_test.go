package forestfire

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbabilities(t *testing.T) {
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, Probabilities(0, 1, 0.25))
	assert.Equal(t, []float64{0.3}, Probabilities(0.3, 0.1, 0.1))
	assert.Len(t, Probabilities(0.1, 0.9, 0.1), 9)
}

func TestSweepIndependentOfWorkers(t *testing.T) {
	cfg := SweepConfig{
		Width:         20,
		Height:        20,
		Probabilities: []float64{0, 0.4, 0.8, 1},
		Runs:          6,
		Seed:          99,
	}
	cfg.Workers = 1
	serial, err := Sweep(context.Background(), cfg)
	require.NoError(t, err)
	cfg.Workers = 8
	parallel, err := Sweep(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, serial, parallel)

	require.Len(t, serial, 4)
	empty, full := serial[0], serial[3]
	assert.Equal(t, 0.0, empty.MeanPercentBurned)
	assert.Equal(t, 1.0, empty.MeanTicks)
	assert.Equal(t, 0.0, empty.PercolationRate)

	// A full forest burns completely, one column per tick.
	assert.InDelta(t, 100.0, full.MeanPercentBurned, 1e-9)
	assert.Equal(t, 20.0, full.MeanTicks)
	assert.Equal(t, 1.0, full.PercolationRate)
}

func TestSweepReturnsResultsUnderLiveContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	points, err := Sweep(ctx, SweepConfig{
		Width:         8,
		Height:        8,
		Probabilities: Probabilities(0, 1, 0.5),
		Runs:          3,
		Seed:          7,
		Workers:       2,
	})
	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.Equal(t, 3, points[1].Runs)
	assert.NoError(t, ctx.Err(), "sweep must not cancel the caller's context")
}

func TestSweepValidatesAndCancels(t *testing.T) {
	_, err := Sweep(context.Background(), SweepConfig{Width: 4, Height: 4, Runs: 0, Probabilities: []float64{0.5}})
	assert.ErrorIs(t, err, ErrInvalidParameter)
	_, err = Sweep(context.Background(), SweepConfig{Width: 4, Height: 4, Runs: 1, Probabilities: []float64{1.2}})
	assert.ErrorIs(t, err, ErrInvalidParameter)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Sweep(ctx, SweepConfig{Width: 64, Height: 64, Runs: 4, Probabilities: []float64{0.7}})
	assert.ErrorIs(t, err, context.Canceled)
}
