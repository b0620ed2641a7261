package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"forest-fire/internal/render"
	"forest-fire/internal/sims/forestfire"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Burn one forest to completion and report the result",
		RunE:  runForest,
	}
	addSimFlags(cmd.Flags())
	cmd.Flags().Int("max-ticks", 0, "stop after this many ticks (0 = until the fire is out)")
	cmd.Flags().Bool("show", false, "print every frame as text")
	cmd.Flags().Int("every", 1, "with --show or --video, only emit every n-th tick")
	cmd.Flags().String("video", "", "write an MJPEG AVI of the run to this path")
	cmd.Flags().Int("fps", 10, "video frames per second")
	cmd.Flags().Int("scale", 4, "pixels per cell for --video and --png")
	cmd.Flags().String("png", "", "write the final frame as PNG to this path")
	cmd.Flags().Bool("json", false, "print the final stats as JSON")
	return cmd
}

func runForest(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	fs := cmd.Flags()
	maxTicks, _ := fs.GetInt("max-ticks")
	show, _ := fs.GetBool("show")
	every, _ := fs.GetInt("every")
	videoPath, _ := fs.GetString("video")
	fps, _ := fs.GetInt("fps")
	scale, _ := fs.GetInt("scale")
	pngPath, _ := fs.GetString("png")
	asJSON, _ := fs.GetBool("json")
	if every < 1 {
		every = 1
	}

	forest, err := forestfire.NewWithConfig(cfg.Sim)
	if err != nil {
		return err
	}
	log.Info().
		Int("width", cfg.Sim.Width).
		Int("height", cfg.Sim.Height).
		Float64("tree_probability", cfg.Sim.TreeProbability).
		Int64("seed", cfg.Sim.Seed).
		Int("initial_trees", forest.State().InitialTreeCount()).
		Msg("forest initialized")

	var term *render.Terminal
	if show {
		term = render.NewTerminal(cmd.OutOrStdout(), []rune{
			forestfire.Empty.Rune(), forestfire.Tree.Rune(), forestfire.Burned.Rune(), forestfire.Burning.Rune(),
		})
	}
	var video *render.VideoWriter
	if videoPath != "" {
		video, err = render.NewVideoWriter(videoPath, cfg.Sim.Width, cfg.Sim.Height, scale, fps)
		if err != nil {
			return err
		}
		defer func() {
			if video != nil {
				video.Close()
			}
		}()
	}
	emit := func(force bool) error {
		if !force && forest.Tick()%every != 0 {
			return nil
		}
		frame := render.Capture(forest)
		if term != nil {
			if err := term.Draw(frame, forest.Status()); err != nil {
				return err
			}
		}
		if video != nil {
			return video.Add(frame)
		}
		return nil
	}

	if err := emit(true); err != nil {
		return err
	}
	done := false
	for !done && (maxTicks <= 0 || forest.Tick() < maxTicks) {
		done = forest.Step()
		log.Debug().Int("tick", forest.Tick()).Int("burning", forest.State().CountCellsWithState(forestfire.Burning)).Msg("step")
		if err := emit(done); err != nil {
			return err
		}
	}

	if video != nil {
		if err := video.Close(); err != nil {
			return fmt.Errorf("video %s: %w", videoPath, err)
		}
		video = nil
		log.Info().Str("path", videoPath).Msg("video written")
	}
	if pngPath != "" {
		if err := render.WritePNG(pngPath, render.Capture(forest), scale); err != nil {
			return err
		}
		log.Info().Str("path", pngPath).Msg("final frame written")
	}

	st := forest.Stats()
	log.Info().Int("tick", st.Tick).Bool("fire_out", done).Float64("percent_burned", st.PercentBurned).Msg("run finished")
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "t = %d\npercentage burned = %.1f%%\npercolated = %v\n",
		st.Tick, st.PercentBurned, st.Percolated)
	return err
}
