package server

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"forest-fire/internal/core"
	"forest-fire/internal/sims/forestfire"
)

// Server exposes a single forest over HTTP. The forest is single-owner, so
// every handler and the auto-step loop take mu before touching it.
type Server struct {
	mu     sync.Mutex
	forest *forestfire.Forest
	// sim is forest seen through the generic driver contract; the
	// parameter routes only use the core interfaces it implements.
	sim     core.Sim
	log     zerolog.Logger
	metrics *metrics
	reg     *prometheus.Registry
}

// New wraps forest. Metrics are registered on reg.
func New(forest *forestfire.Forest, log zerolog.Logger, reg *prometheus.Registry) *Server {
	s := &Server{
		forest:  forest,
		sim:     forest,
		log:     log,
		metrics: newMetrics(reg),
		reg:     reg,
	}
	s.metrics.observe(forest)
	return s
}

// step advances up to n ticks, stopping once the fire is out. It returns the
// number of ticks taken. Callers hold mu.
func (s *Server) step(n int) int {
	taken := 0
	for taken < n && !s.forest.Done() {
		s.forest.Step()
		taken++
	}
	if taken > 0 {
		s.metrics.steps.Add(float64(taken))
		s.metrics.observe(s.forest)
	}
	return taken
}

// reset re-initializes the forest. On error the current grid is kept.
// Callers hold mu.
func (s *Server) reset(seed int64) error {
	if err := s.sim.Reset(seed); err != nil {
		return err
	}
	s.metrics.resets.Inc()
	s.metrics.observe(s.forest)
	s.log.Info().Int64("seed", seed).Int("initial_trees", s.forest.State().InitialTreeCount()).Msg("forest reset")
	return nil
}

// Run steps the forest tps times per second until ctx is done. It idles
// while the fire is out.
func (s *Server) Run(ctx context.Context, tps int) error {
	if tps <= 0 {
		tps = 10
	}
	ticker := time.NewTicker(time.Second / time.Duration(tps))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.tick()
		}
	}
}

func (s *Server) tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step(1) > 0 && s.forest.Done() {
		st := s.forest.Stats()
		s.log.Info().
			Int("tick", st.Tick).
			Float64("percent_burned", st.PercentBurned).
			Bool("percolated", st.Percolated).
			Msg("fire out")
	}
}
