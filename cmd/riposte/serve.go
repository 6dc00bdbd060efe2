package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/riposte"
	"github.com/aretw0/riposte/internal/logging"
	"github.com/aretw0/riposte/pkg/adapters/fs"
	httpAdapter "github.com/aretw0/riposte/pkg/adapters/http"
	"github.com/aretw0/riposte/pkg/observability"
	"github.com/caarlos0/env/v11"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the engine with its debug HTTP surface",
	Long: `Runs the engine's tick loop continuously and exposes the debug API:
live interactions, script listing, data delivery, and Prometheus metrics.
Scripts are hot-reloaded when the directory changes.`,
	Run: func(cmd *cobra.Command, args []string) {
		dir, _ := cmd.Flags().GetString("scripts")
		tickRate, _ := cmd.Flags().GetDuration("tick")

		if err := runServe(dir, tickRate); err != nil {
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().Duration("tick", 50*time.Millisecond, "World tick interval")
}

func runServe(dir string, tickRate time.Duration) error {
	var cfg httpAdapter.Config
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	logger := logging.New(slog.LevelInfo)

	collector := observability.NewCollector(prometheus.DefaultRegisterer)
	eng, err := riposte.New(fs.New(dir),
		riposte.WithLogger(logger),
		riposte.WithHooks(collector.Hooks()),
	)
	if err != nil {
		return err
	}
	observability.RegisterActiveGauge(prometheus.DefaultRegisterer, eng.Manager().Len)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := eng.Watch(ctx); err != nil {
		return err
	}

	// Tick loop.
	go func() {
		ticker := time.NewTicker(tickRate)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				eng.Tick(ctx, now)
			}
		}
	}()

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: httpAdapter.NewHandler(eng, riposte.Version, logger),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting debug server", "addr", cfg.Addr, "scripts", dir, "tick", tickRate)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return err

	case sig := <-shutdown:
		logger.Info("shutting down", "signal", sig.String())
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown did not complete", "timeout", cfg.ShutdownTimeout, "err", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("could not stop server: %w", err)
			}
		}
		logger.Info("server stopped")
		return nil
	}
}
