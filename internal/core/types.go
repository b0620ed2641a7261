package core

import (
	"fmt"
	"image/color"
	"sort"
)

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Sim defines the read/drive contract shared by every front end (GUI, HTTP,
// headless runs). Step reports true once the automaton has nothing left to do.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64) error
	Step() bool
	Tick() int
	Cells() []uint8
	Palette() []color.RGBA
}

// StatusReporter is implemented by sims that can summarise their progress in
// a single line for HUDs and logs.
type StatusReporter interface {
	Status() string
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) (Sim, error)

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Lookup builds the named sim from cfg.
func Lookup(name string, cfg map[string]string) (Sim, error) {
	f, ok := sims[name]
	if !ok {
		return nil, fmt.Errorf("unknown sim %q", name)
	}
	return f(cfg)
}

// Names lists the registered sims in sorted order.
func Names() []string {
	names := make([]string, 0, len(sims))
	for name := range sims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
