package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forest-fire/internal/sims/forestfire"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRunLineToCompletion(t *testing.T) {
	out, err := execute(t, "run", "--width", "3", "--height", "1", "-p", "1", "--json", "--log-level", "error")
	require.NoError(t, err)

	var st forestfire.Stats
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	assert.Equal(t, 3, st.Tick)
	assert.Equal(t, 3, st.Burned)
	assert.InDelta(t, 100.0, st.PercentBurned, 1e-9)
	assert.True(t, st.Percolated)
}

func TestRunShowWritesFramesAndFiles(t *testing.T) {
	dir := t.TempDir()
	png := filepath.Join(dir, "final.png")
	avi := filepath.Join(dir, "fire.avi")
	out, err := execute(t, "run", "--width", "3", "--height", "1", "-p", "1", "--show",
		"--png", png, "--video", avi, "--scale", "2", "--log-level", "error")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "*TT\n"), out)
	assert.Contains(t, out, "#*T\n")
	assert.Contains(t, out, "###\n")
	assert.Contains(t, out, "percentage burned = 100.0%")
	for _, path := range []string{png, avi} {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
}

func TestRunRejectsInvalidDensity(t *testing.T) {
	_, err := execute(t, "run", "-p", "1.5")
	assert.ErrorIs(t, err, forestfire.ErrInvalidParameter)
}

func TestRunHonoursConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forestfire.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sim:\n  width: 4\n  height: 2\n  tree_probability: 0\nlog:\n  level: error\n"), 0o644))

	out, err := execute(t, "run", "--config", path, "--json")
	require.NoError(t, err)
	var st forestfire.Stats
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	assert.Equal(t, 1, st.Tick)
	assert.Equal(t, 2, st.Burned)
	assert.Equal(t, 6, st.Empty)
}

func TestRunIgnoresServeAndSweepSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forestfire.yaml")
	body := "sim:\n  width: 3\n  height: 1\n  tree_probability: 1\nserve:\n  tps: 0\nsweep:\n  runs: 0\nlog:\n  level: error\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	out, err := execute(t, "run", "--config", path, "--json")
	require.NoError(t, err)
	var st forestfire.Stats
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	assert.Equal(t, 3, st.Burned)

	_, err = execute(t, "sweep", "--config", path)
	assert.ErrorIs(t, err, forestfire.ErrInvalidParameter)
}

func TestSweepTableAndChart(t *testing.T) {
	chart := filepath.Join(t.TempDir(), "sweep.png")
	out, err := execute(t, "sweep", "--width", "10", "--height", "10", "--from", "0", "--to", "1",
		"--step", "0.5", "--runs", "3", "--chart", chart, "--log-level", "error")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "percolation")
	assert.True(t, strings.HasPrefix(lines[1], "0.000"))
	assert.True(t, strings.HasPrefix(lines[3], "1.000"))
	assert.Contains(t, lines[3], "100.00")

	info, err := os.Stat(chart)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
