package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forest-fire/internal/core"
	"forest-fire/internal/logging"
	"forest-fire/internal/sims/forestfire"
	pcore "forest-fire/pkg/core"
)

func newTestServer(t *testing.T, cfg forestfire.Config) (*Server, *httptest.Server) {
	t.Helper()
	forest, err := forestfire.NewWithConfig(cfg)
	require.NoError(t, err)
	srv := New(forest, logging.NewNop(), prometheus.NewRegistry())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func doJSON(t *testing.T, method, url, body string, out any) int {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func lineConfig() forestfire.Config {
	return forestfire.Config{Width: 3, Height: 1, TreeProbability: 1, Seed: 5}
}

func TestStateAndStep(t *testing.T) {
	_, ts := newTestServer(t, lineConfig())

	var initial StateView
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodGet, ts.URL+"/state", "", &initial))
	assert.Equal(t, []string{"*TT"}, initial.Rows)
	assert.Equal(t, 2, initial.Stats.InitialTrees)

	var stepped StateView
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPost, ts.URL+"/step", "", &stepped))
	assert.Equal(t, 1, stepped.Stats.Tick)
	assert.Nil(t, stepped.Rows)

	// Stepping stops once the fire is out.
	var out StateView
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPost, ts.URL+"/step?n=10", "", &out))
	assert.True(t, out.Done)
	assert.Equal(t, 3, out.Stats.Tick)

	var final StateView
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodGet, ts.URL+"/state", "", &final))
	assert.Equal(t, []string{"###"}, final.Rows)

	assert.Equal(t, http.StatusBadRequest, doJSON(t, http.MethodPost, ts.URL+"/step?n=0", "", nil))
}

func TestResetAndParams(t *testing.T) {
	_, ts := newTestServer(t, lineConfig())

	var p core.Parameter
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPut, ts.URL+"/params/tree_probability", `{"value":"0"}`, &p))
	assert.Equal(t, "0", p.Value)
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPut, ts.URL+"/params/w", `{"value":"5"}`, &p))

	var v StateView
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPost, ts.URL+"/reset?seed=9", "", &v))
	assert.Equal(t, 5, v.Width)
	assert.Equal(t, 0, v.Stats.InitialTrees)
	assert.False(t, v.Done)

	var snap core.ParameterSnapshot
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodGet, ts.URL+"/params", "", &snap))
	w, ok := snap.Find("w")
	require.True(t, ok)
	assert.Equal(t, "5", w.Value)

	assert.Equal(t, http.StatusNotFound, doJSON(t, http.MethodPut, ts.URL+"/params/rule", `{"value":"1"}`, nil))
	assert.Equal(t, http.StatusBadRequest, doJSON(t, http.MethodPut, ts.URL+"/params/h", `{"value":"-2"}`, nil))
	assert.Equal(t, http.StatusBadRequest, doJSON(t, http.MethodPut, ts.URL+"/params/h", `not json`, nil))
	assert.Equal(t, http.StatusBadRequest, doJSON(t, http.MethodPost, ts.URL+"/reset?seed=x", "", nil))
}

func TestFrameAndMetrics(t *testing.T) {
	_, ts := newTestServer(t, lineConfig())

	resp, err := http.Get(ts.URL + "/frame.png?scale=2")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.True(t, strings.HasPrefix(string(body), "\x89PNG"))

	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPost, ts.URL+"/step?n=2", "", nil))

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	text := string(body)
	assert.Contains(t, text, "forestfire_steps_total 2")
	assert.Contains(t, text, `forestfire_cells{state="burning"} 1`)
	assert.Contains(t, text, "forestfire_tick 2")
}

func TestRunStepsUntilCancelled(t *testing.T) {
	srv, _ := newTestServer(t, lineConfig())
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- srv.Run(ctx, 200) }()

	require.Eventually(t, func() bool {
		srv.mu.Lock()
		defer srv.mu.Unlock()
		return srv.forest.Done()
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-errc, context.Canceled)
	srv.mu.Lock()
	assert.Equal(t, 3, srv.forest.Tick(), "loop idles once the fire is out")
	srv.mu.Unlock()
}

func TestOversizedDimensionsRejected(t *testing.T) {
	_, ts := newTestServer(t, lineConfig())

	assert.Equal(t, http.StatusBadRequest,
		doJSON(t, http.MethodPut, ts.URL+"/params/w", `{"value":"4611686018427387904"}`, nil))
	assert.Equal(t, http.StatusBadRequest,
		doJSON(t, http.MethodPut, ts.URL+"/params/h", `{"value":"100000"}`, nil))

	var v StateView
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPost, ts.URL+"/reset", "", &v))
	assert.Equal(t, 3, v.Width)

	// The server keeps answering after the rejected updates.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/state?cells=false", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestResetSeedQuery(t *testing.T) {
	cfg := forestfire.Config{Width: 16, Height: 16, TreeProbability: 0.5, Seed: 5}
	srv, ts := newTestServer(t, cfg)
	initial := slices.Clone(srv.forest.Cells())

	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPost, ts.URL+"/step?n=3", "", nil))
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPost, ts.URL+"/reset", "", nil))
	srv.mu.Lock()
	assert.Equal(t, initial, srv.forest.Cells(), "reset without seed replays the configured seed")
	srv.mu.Unlock()

	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPost, ts.URL+"/reset?seed=0", "", nil))
	want, err := forestfire.Initialize(16, 16, 0.5, pcore.NewRNG(0))
	require.NoError(t, err)
	srv.mu.Lock()
	assert.True(t, want.Equal(srv.forest.State()), "seed=0 is used as given")
	srv.mu.Unlock()
}
