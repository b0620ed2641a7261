package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"forest-fire/internal/config"
	"forest-fire/internal/logging"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "forestfire",
		Short: "Forest fire cellular automaton",
		Long: `forestfire simulates fire spreading from a burning left column through a
randomly planted forest, one orthogonal neighbor per tick, until it burns out.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().String("config", "", "YAML run configuration")
	root.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(newRunCmd(), newSweepCmd(), newServeCmd())
	return root
}

// addSimFlags registers the grid flags shared by run and serve.
func addSimFlags(fs *pflag.FlagSet) {
	fs.Int("width", 0, "grid width in cells")
	fs.Int("height", 0, "grid height in cells")
	fs.Float64P("density", "p", 0, "tree probability in [0, 1]")
	fs.Int64("seed", 0, "random seed")
}

// loadConfig resolves defaults, the --config file and explicitly set flags,
// in that order, and builds the logger.
func loadConfig(cmd *cobra.Command) (config.File, zerolog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.File{}, zerolog.Nop(), err
	}

	fs := cmd.Flags()
	if fs.Lookup("width") != nil {
		if fs.Changed("width") {
			cfg.Sim.Width, _ = fs.GetInt("width")
		}
		if fs.Changed("height") {
			cfg.Sim.Height, _ = fs.GetInt("height")
		}
		if fs.Changed("density") {
			cfg.Sim.TreeProbability, _ = fs.GetFloat64("density")
		}
		if fs.Changed("seed") {
			cfg.Sim.Seed, _ = fs.GetInt64("seed")
		}
	}
	if fs.Changed("log-level") {
		cfg.Log.Level, _ = fs.GetString("log-level")
	}
	if err := cfg.Sim.Validate(); err != nil {
		return config.File{}, zerolog.Nop(), err
	}

	log, err := logging.New("forestfire", cfg.Log.Level, cmd.ErrOrStderr())
	if err != nil {
		return config.File{}, zerolog.Nop(), fmt.Errorf("log level %q: %w", cfg.Log.Level, err)
	}
	return cfg, log, nil
}
