package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"forest-fire/internal/sims/forestfire"
)

// File is the YAML run configuration shared by the forestfire commands.
// Flags given on the command line override values loaded from it.
type File struct {
	Sim   forestfire.Config `yaml:"sim"`
	Log   LogConfig         `yaml:"log"`
	Serve ServeConfig       `yaml:"serve"`
	Sweep SweepConfig       `yaml:"sweep"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type ServeConfig struct {
	Addr string `yaml:"addr"`
	TPS  int    `yaml:"tps"`
	Auto bool   `yaml:"auto"`
}

type SweepConfig struct {
	From     float64 `yaml:"from"`
	To       float64 `yaml:"to"`
	Step     float64 `yaml:"step"`
	Runs     int     `yaml:"runs"`
	Workers  int     `yaml:"workers"`
	MaxTicks int     `yaml:"max_ticks"`
}

// Default returns the built-in configuration.
func Default() File {
	return File{
		Sim:   forestfire.DefaultConfig(),
		Log:   LogConfig{Level: "info"},
		Serve: ServeConfig{Addr: ":8080", TPS: 10, Auto: true},
		Sweep: SweepConfig{From: 0.3, To: 0.8, Step: 0.05, Runs: 20},
	}
}

// Load overlays the YAML file at path onto Default and validates the sim
// section. Commands validate the serve and sweep sections they use with
// ValidateServe and ValidateSweep. An empty path returns the defaults.
func Load(path string) (File, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return File{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	if err := cfg.Sim.Validate(); err != nil {
		return File{}, fmt.Errorf("config invalid (%s): %w", path, err)
	}
	return cfg, nil
}

// ValidateServe checks the serve section.
func (f File) ValidateServe() error {
	if f.Serve.TPS <= 0 {
		return fmt.Errorf("serve.tps must be positive, got %d: %w", f.Serve.TPS, forestfire.ErrInvalidParameter)
	}
	return nil
}

// ValidateSweep checks the sweep section.
func (f File) ValidateSweep() error {
	if f.Sweep.Runs <= 0 || f.Sweep.Step <= 0 || f.Sweep.From < 0 || f.Sweep.To > 1 || f.Sweep.To < f.Sweep.From {
		return fmt.Errorf("sweep range %v..%v step %v runs %d: %w",
			f.Sweep.From, f.Sweep.To, f.Sweep.Step, f.Sweep.Runs, forestfire.ErrInvalidParameter)
	}
	return nil
}
