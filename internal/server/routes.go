package server

import (
	"encoding/json"
	"fmt"
	"image/png"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"forest-fire/internal/core"
	"forest-fire/internal/render"
	"forest-fire/internal/sims/forestfire"
)

// StateView is the JSON body of GET /state.
type StateView struct {
	Name   string           `json:"name"`
	Width  int              `json:"width"`
	Height int              `json:"height"`
	Done   bool             `json:"done"`
	Stats  forestfire.Stats `json:"stats"`
	Rows   []string         `json:"rows,omitempty"`
}

type paramUpdate struct {
	Value string `json:"value"`
}

// Handler returns the chi router for the server.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/state", s.handleState)
	r.Get("/frame.png", s.handleFrame)
	r.Post("/step", s.handleStep)
	r.Post("/reset", s.handleReset)
	r.Get("/params", s.handleParams)
	r.Put("/params/{key}", s.handleSetParam)
	r.Handle("/metrics", promhttp.HandlerFor(s.reg, promhttp.HandlerOpts{}))
	return r
}

func (s *Server) view(withRows bool) StateView {
	st := s.forest.State()
	v := StateView{
		Name:   s.forest.Name(),
		Width:  st.Width(),
		Height: st.Height(),
		Done:   s.forest.Done(),
		Stats:  st.Stats(),
	}
	if withRows {
		v.Rows = make([]string, st.Height())
		for r := range v.Rows {
			row := st.Row(r)
			glyphs := make([]rune, len(row))
			for i, c := range row {
				glyphs[i] = c.Rune()
			}
			v.Rows[r] = string(glyphs)
		}
	}
	return v
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	withRows := r.URL.Query().Get("cells") != "false"
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.view(withRows))
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	scale := 1
	if q := r.URL.Query().Get("scale"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 1 || n > 16 {
			writeError(w, http.StatusBadRequest, fmt.Errorf("scale must be 1..16"))
			return
		}
		scale = n
	}
	f := s.capture()

	img := render.Image(f.Cells, f.W, f.H, f.Palette, scale)
	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, img); err != nil {
		s.log.Error().Err(err).Msg("encode frame")
	}
}

func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	n := 1
	if q := r.URL.Query().Get("n"); q != "" {
		parsed, err := strconv.Atoi(q)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, fmt.Errorf("n must be a positive integer"))
			return
		}
		n = parsed
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.step(n)
	writeJSON(w, http.StatusOK, s.view(false))
}

// handleReset re-plants the forest. Without a seed query the configured
// seed is used; an explicit seed, zero included, is used as given.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seed := s.forest.Config().Seed
	if q := r.URL.Query().Get("seed"); q != "" {
		parsed, err := strconv.ParseInt(q, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("seed must be an integer"))
			return
		}
		seed = parsed
	}
	if err := s.reset(seed); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, s.view(false))
}

func (s *Server) capture() render.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return render.Capture(s.sim)
}

func (s *Server) handleParams(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pp, ok := s.sim.(core.ParameterProvider)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("%s has no parameters", s.sim.Name()))
		return
	}
	writeJSON(w, http.StatusOK, pp.Parameters())
}

func (s *Server) handleSetParam(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	var body paramUpdate
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode body: %w", err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	pp, ok := s.sim.(core.ParameterProvider)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("%s has no parameters", s.sim.Name()))
		return
	}
	param, ok := pp.Parameters().Find(key)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("unknown parameter %q", key))
		return
	}
	applied := false
	switch param.Type {
	case core.ParamTypeFloat:
		setter, ok := s.sim.(core.FloatParameterSetter)
		if v, err := strconv.ParseFloat(body.Value, 64); ok && err == nil {
			applied = setter.SetFloatParameter(key, v)
		}
	case core.ParamTypeInt:
		setter, ok := s.sim.(core.IntParameterSetter)
		if v, err := strconv.Atoi(body.Value); ok && err == nil {
			applied = setter.SetIntParameter(key, v)
		}
	}
	if !applied {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid value %q for %s", body.Value, key))
		return
	}
	s.log.Info().Str("key", key).Str("value", body.Value).Msg("parameter updated")
	updated, _ := pp.Parameters().Find(key)
	writeJSON(w, http.StatusOK, updated)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
