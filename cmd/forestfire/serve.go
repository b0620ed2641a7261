package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"forest-fire/internal/server"
	"forest-fire/internal/sims/forestfire"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a live forest over HTTP with Prometheus metrics",
		RunE:  runServe,
	}
	addSimFlags(cmd.Flags())
	cmd.Flags().String("addr", "", "listen address")
	cmd.Flags().Int("tps", 0, "auto-step ticks per second")
	cmd.Flags().Bool("auto", true, "step the forest automatically")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	fs := cmd.Flags()
	if fs.Changed("addr") {
		cfg.Serve.Addr, _ = fs.GetString("addr")
	}
	if fs.Changed("tps") {
		cfg.Serve.TPS, _ = fs.GetInt("tps")
	}
	if fs.Changed("auto") {
		cfg.Serve.Auto, _ = fs.GetBool("auto")
	}
	if err := cfg.ValidateServe(); err != nil {
		return err
	}

	forest, err := forestfire.NewWithConfig(cfg.Sim)
	if err != nil {
		return err
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	srv := server.New(forest, log, reg)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpSrv := &http.Server{
		Addr:              cfg.Serve.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.Serve.Addr).Bool("auto", cfg.Serve.Auto).Int("tps", cfg.Serve.TPS).Msg("listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})
	if cfg.Serve.Auto {
		g.Go(func() error {
			if err := srv.Run(ctx, cfg.Serve.TPS); !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}
	err = g.Wait()
	log.Info().Msg("server stopped")
	return err
}
