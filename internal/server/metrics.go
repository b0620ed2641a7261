package server

import (
	"github.com/prometheus/client_golang/prometheus"

	"forest-fire/internal/sims/forestfire"
)

type metrics struct {
	steps         prometheus.Counter
	resets        prometheus.Counter
	cells         *prometheus.GaugeVec
	tick          prometheus.Gauge
	percentBurned prometheus.Gauge
	fireOut       prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		steps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "forestfire_steps_total",
			Help: "Simulation steps executed since start.",
		}),
		resets: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "forestfire_resets_total",
			Help: "Grid re-initializations since start.",
		}),
		cells: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "forestfire_cells",
			Help: "Cells per state in the live grid.",
		}, []string{"state"}),
		tick: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "forestfire_tick",
			Help: "Current tick of the live grid.",
		}),
		percentBurned: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "forestfire_percent_burned",
			Help: "Percentage of the initial trees no longer standing.",
		}),
		fireOut: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "forestfire_fire_out",
			Help: "1 once the last step found no burning cells.",
		}),
	}
	reg.MustRegister(m.steps, m.resets, m.cells, m.tick, m.percentBurned, m.fireOut)
	return m
}

func (m *metrics) observe(f *forestfire.Forest) {
	st := f.Stats()
	m.cells.WithLabelValues(forestfire.Empty.String()).Set(float64(st.Empty))
	m.cells.WithLabelValues(forestfire.Tree.String()).Set(float64(st.Trees))
	m.cells.WithLabelValues(forestfire.Burning.String()).Set(float64(st.Burning))
	m.cells.WithLabelValues(forestfire.Burned.String()).Set(float64(st.Burned))
	m.tick.Set(float64(st.Tick))
	m.percentBurned.Set(st.PercentBurned)
	if f.Done() {
		m.fireOut.Set(1)
	} else {
		m.fireOut.Set(0)
	}
}
