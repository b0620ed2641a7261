package forestfire

import (
	"fmt"

	"forest-fire/internal/core"
	pcore "forest-fire/pkg/core"
)

// Name is the registry key of the forest fire sim.
const Name = "forestfire"

// Forest adapts a GridState to core.Sim for the GUI, HTTP and headless
// drivers. It owns the state it wraps.
type Forest struct {
	cfg     Config
	state   *GridState
	display []uint8
	done    bool
}

// New returns a Forest with the provided dimensions using defaults.
func New(w, h int) (*Forest, error) {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig validates cfg and returns a Forest initialized from cfg.Seed.
func NewWithConfig(cfg Config) (*Forest, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	f := &Forest{cfg: cfg}
	if err := f.Reset(cfg.Seed); err != nil {
		return nil, err
	}
	return f, nil
}

// Name returns the simulation identifier.
func (f *Forest) Name() string { return Name }

// Size reports the dimensions of the live grid.
func (f *Forest) Size() core.Size { return core.Size{W: f.state.Width(), H: f.state.Height()} }

// Config returns the active configuration.
func (f *Forest) Config() Config { return f.cfg }

// State exposes the live grid for read access.
func (f *Forest) State() *GridState { return f.state }

// Cells exposes the display buffer; each value is a Cell and palette index.
func (f *Forest) Cells() []uint8 { return f.display }

// Tick returns the current tick.
func (f *Forest) Tick() int { return f.state.Tick() }

// Done reports whether the last Step found the fire out.
func (f *Forest) Done() bool { return f.done }

// Stats summarises the current grid.
func (f *Forest) Stats() Stats { return f.state.Stats() }

// Status renders a one-line summary for HUDs and logs.
func (f *Forest) Status() string {
	status := fmt.Sprintf("t = %d  burned = %.1f%%", f.state.Tick(), f.state.PercentBurned())
	if f.done {
		status += "  (fire out)"
	}
	return status
}

// Reset re-initializes the grid from the current config and seed. Every
// seed, zero included, is used as given. On error the previous grid is kept.
func (f *Forest) Reset(seed int64) error {
	if err := f.cfg.Validate(); err != nil {
		return err
	}
	state, err := Initialize(f.cfg.Width, f.cfg.Height, f.cfg.TreeProbability, pcore.NewRNG(seed))
	if err != nil {
		return err
	}
	f.state = state
	f.done = false
	f.rebuildDisplay()
	return nil
}

// Step advances the fire by one tick and reports whether it is out.
func (f *Forest) Step() bool {
	done, err := Step(f.state)
	if err != nil {
		panic(err)
	}
	f.done = done
	f.rebuildDisplay()
	return done
}

func init() {
	core.Register(Name, func(cfg map[string]string) (core.Sim, error) {
		c, err := FromMap(cfg)
		if err != nil {
			return nil, err
		}
		return NewWithConfig(c)
	})
}
