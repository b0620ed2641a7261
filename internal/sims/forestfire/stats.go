package forestfire

// Stats summarises a grid for displays and sweeps.
type Stats struct {
	Tick          int     `json:"tick"`
	Empty         int     `json:"empty"`
	Trees         int     `json:"trees"`
	Burning       int     `json:"burning"`
	Burned        int     `json:"burned"`
	InitialTrees  int     `json:"initial_trees"`
	PercentBurned float64 `json:"percent_burned"`
	Percolated    bool    `json:"percolated"`
}

// PercentBurned returns 100 × (1 − trees/initial trees). A grid that started
// without trees reports 0.
func (s *GridState) PercentBurned() float64 {
	if s.initialTrees == 0 {
		return 0
	}
	return 100 * (1 - float64(s.cur.Count(Tree))/float64(s.initialTrees))
}

// Percolated reports whether fire has reached the last column. On a
// one-column grid the ignition front already spans it.
func (s *GridState) Percolated() bool {
	last := s.cur.W - 1
	for row := 0; row < s.cur.H; row++ {
		switch s.cur.At(last, row) {
		case Burning, Burned:
			return true
		}
	}
	return false
}

// Stats computes the current summary in a single pass over the grid.
func (s *GridState) Stats() Stats {
	st := Stats{Tick: s.tick, InitialTrees: s.initialTrees}
	for _, c := range s.cur.Cells() {
		switch c {
		case Empty:
			st.Empty++
		case Tree:
			st.Trees++
		case Burning:
			st.Burning++
		case Burned:
			st.Burned++
		}
	}
	if s.initialTrees > 0 {
		st.PercentBurned = 100 * (1 - float64(st.Trees)/float64(s.initialTrees))
	}
	st.Percolated = s.Percolated()
	return st
}
