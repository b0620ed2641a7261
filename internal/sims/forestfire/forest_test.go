package forestfire

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forest-fire/internal/core"
)

func TestForestResetDeterministic(t *testing.T) {
	f, err := New(32, 24)
	require.NoError(t, err)

	initial := slices.Clone(f.Cells())
	for i := 0; i < 5; i++ {
		f.Step()
	}
	assert.Equal(t, 5, f.Tick())

	require.NoError(t, f.Reset(f.Config().Seed))
	assert.Equal(t, initial, f.Cells(), "Reset with config seed not deterministic")
	assert.Equal(t, 0, f.Tick())

	require.NoError(t, f.Reset(777))
	seeded := slices.Clone(f.Cells())
	require.NoError(t, f.Reset(777))
	assert.Equal(t, seeded, f.Cells(), "Reset with explicit seed not deterministic")
	assert.NotEqual(t, initial, seeded, "different seeds should produce different forests")

	require.NoError(t, f.Reset(0))
	assert.NotEqual(t, initial, f.Cells(), "seed 0 is a seed of its own, not the config seed")
}

func TestForestDimensionsBounded(t *testing.T) {
	f, err := New(8, 8)
	require.NoError(t, err)

	assert.False(t, f.SetIntParameter("w", MaxDimension+1))
	assert.False(t, f.SetIntParameter("h", 1<<62))
	assert.True(t, f.SetIntParameter("w", MaxDimension))
	assert.Equal(t, MaxDimension, f.Config().Width)

	_, err = New(MaxDimension+1, 4)
	assert.ErrorIs(t, err, ErrInvalidParameter)
	_, err = core.Lookup(Name, map[string]string{"h": "4611686018427387904"})
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestForestDisplayTracksState(t *testing.T) {
	f, err := NewWithConfig(Config{Width: 3, Height: 1, TreeProbability: 1, Seed: 1})
	require.NoError(t, err)
	assert.Equal(t, []uint8{uint8(Burning), uint8(Tree), uint8(Tree)}, f.Cells())
	assert.Len(t, f.Palette(), 4)

	for !f.Step() {
	}
	assert.True(t, f.Done())
	assert.Equal(t, []uint8{uint8(Burned), uint8(Burned), uint8(Burned)}, f.Cells())
	assert.Contains(t, f.Status(), "fire out")
	assert.Equal(t, core.Size{W: 3, H: 1}, f.Size())
}

func TestForestParameters(t *testing.T) {
	f, err := New(8, 8)
	require.NoError(t, err)

	require.True(t, f.SetFloatParameter("tree_probability", 2))
	assert.Equal(t, 1.0, f.Config().TreeProbability)
	assert.False(t, f.SetFloatParameter("rule", 1))

	require.True(t, f.SetIntParameter("w", 4))
	assert.False(t, f.SetIntParameter("h", 0))
	assert.Equal(t, core.Size{W: 8, H: 8}, f.Size(), "size changes apply on reset")

	require.NoError(t, f.Reset(1))
	assert.Equal(t, core.Size{W: 4, H: 8}, f.Size())
	assert.Equal(t, 3*8, f.State().CountCellsWithState(Tree))

	p, ok := f.Parameters().Find("tree_probability")
	require.True(t, ok)
	assert.Equal(t, "1", p.Value)
}

func TestForestRegistered(t *testing.T) {
	sim, err := core.Lookup(Name, map[string]string{"w": "5", "h": "4"})
	require.NoError(t, err)
	assert.Equal(t, core.Size{W: 5, H: 4}, sim.Size())

	_, err = core.Lookup(Name, map[string]string{"w": "-1"})
	assert.ErrorIs(t, err, ErrInvalidParameter)
}
