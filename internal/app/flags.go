package app

import (
	"strconv"

	"github.com/spf13/pflag"

	"forest-fire/internal/sims/forestfire"
)

// Config represents the command-line parameters of the GUI.
type Config struct {
	Scale int
	TPS   int
	Seed  int64

	Width           int
	Height          int
	TreeProbability float64
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	d := forestfire.DefaultConfig()
	return &Config{
		Scale:           3,
		TPS:             30,
		Seed:            d.Seed,
		Width:           d.Width,
		Height:          d.Height,
		TreeProbability: d.TreeProbability,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *pflag.FlagSet) {
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "simulation ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.IntVar(&c.Width, "width", c.Width, "grid width in cells")
	fs.IntVar(&c.Height, "height", c.Height, "grid height in cells")
	fs.Float64VarP(&c.TreeProbability, "density", "p", c.TreeProbability, "tree probability in [0, 1]")
}

// SimConfig returns the flag-style map consumed by the sim registry.
func (c *Config) SimConfig() map[string]string {
	return map[string]string{
		"w":                strconv.Itoa(c.Width),
		"h":                strconv.Itoa(c.Height),
		"tree_probability": strconv.FormatFloat(c.TreeProbability, 'f', -1, 64),
		"seed":             strconv.FormatInt(c.Seed, 10),
	}
}
