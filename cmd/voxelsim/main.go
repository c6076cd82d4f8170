// Command voxelsim runs the voxel world simulation headless: terrain
// streaming around a player driven by physics, with optional autopilot.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/xlab/closer"

	"voxelsim/internal/config"
	"voxelsim/internal/game"
	"voxelsim/internal/metrics"
)

func main() {
	var (
		configPath   = flag.String("config", "", "YAML config file (defaults to $"+config.EnvPath+")")
		frames       = flag.Int("frames", 0, "stop after this many frames, 0 runs until interrupted")
		logLevel     = flag.String("log-level", "info", "debug, info, warn or error")
		walk         = flag.Bool("walk", false, "drive the player with the autopilot")
		fixedStep    = flag.Duration("fixed-step", 0, "feed every frame this delta instead of wall time")
		metricsAddr  = flag.String("metrics-addr", "", "serve Prometheus metrics on this address (overrides config)")
		seed         = flag.Int64("seed", 0, "world seed (overrides config)")
		drawDistance = flag.Int("draw-distance", 0, "chunk streaming radius (overrides config)")
	)
	flag.Parse()

	logger, err := newLogger(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("load config", "err", err)
		os.Exit(1)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.World.Seed = *seed
		case "draw-distance":
			cfg.World.DrawDistance = *drawDistance
		case "metrics-addr":
			cfg.Metrics.Addr = *metricsAddr
		}
	})

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	session, err := game.NewSession(cfg, game.WithLogger(logger), game.WithMetrics(m))
	if err != nil {
		logger.Error("start session", "err", err)
		os.Exit(1)
	}

	opts := []game.AppOption{game.WithAppLogger(logger)}
	if *walk {
		opts = append(opts, game.WithDriver(game.DefaultAutopilot()))
	}
	if *fixedStep > 0 {
		opts = append(opts, game.WithFixedStep(*fixedStep))
	}
	app := game.NewApp(session, cfg.Frame, opts...)

	if cfg.Metrics.Addr != "" {
		srv := serveMetrics(cfg.Metrics.Addr, reg, logger)
		closer.Bind(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				logger.Warn("metrics shutdown", "err", err)
			}
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	closer.Bind(func() {
		cancel()
		<-done
		p := session.Player.Position
		logger.Info("stopped",
			"frames", session.Frames,
			"x", p.X(), "y", p.Y(), "z", p.Z(),
			"resident", len(session.World.ResidentChunks()))
	})

	go func() {
		defer close(done)
		logger.Info("running", "seed", cfg.World.Seed, "draw_distance", cfg.World.DrawDistance, "frames", *frames)
		err := app.Run(ctx, *frames)
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("frame loop", "err", err)
		}
		if ctx.Err() == nil {
			go closer.Close()
		}
	}()

	closer.Hold()
}

func newLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})), nil
}

func serveMetrics(addr string, reg *prometheus.Registry, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		logger.Info("serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "err", err)
		}
	}()
	return srv
}
