package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Carmen-Shannon/oxy-viewer/config"
	"github.com/Carmen-Shannon/oxy-viewer/engine"
	"github.com/Carmen-Shannon/oxy-viewer/engine/backdrop"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer"
	"github.com/Carmen-Shannon/oxy-viewer/engine/selection"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
)

func main() {
	configPath := flag.String("config", "", "Path to viewer.yaml (empty = use defaults)")
	logLevel := flag.String("log-level", "", "Override the configured log level (debug, info, warn, error)")
	profile := flag.Bool("profile", false, "Log frame and rig stats periodically")
	watch := flag.Bool("watch", true, "Reload camera tuning when the config file changes")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := cfg.Log.Logger(os.Stderr, *logLevel)
	if err != nil {
		slog.Error("failed to configure logging", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	if err := run(cfg, *configPath, *profile, *watch, logger); err != nil {
		logger.Error("viewer stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, configPath string, profile, watch bool, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bindings, err := cfg.Bindings.Resolve()
	if err != nil {
		return err
	}

	// ── Window + Renderer ───────────────────────────────────────────────
	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
	)
	if err != nil {
		return err
	}

	r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, win, cfg.Renderer.Options()...)
	if err != nil {
		_ = win.Close()
		return err
	}

	// ── Targets ─────────────────────────────────────────────────────────
	targets := selection.NewManager(
		selection.WithWorkers(cfg.Targets.Workers),
		selection.WithLogger(logger),
	)
	if err := targets.Preload(ctx, cfg.Targets.Specs()); err != nil {
		// Valid targets are still usable
		logger.Warn("some targets failed to load", "error", err)
	}

	// ── Live config ─────────────────────────────────────────────────────
	options := []engine.EngineBuilderOption{
		engine.WithLogger(logger),
		engine.WithWindow(win),
		engine.WithRenderer(r),
		engine.WithTargets(targets),
		engine.WithBackdrop(backdrop.NewBackdrop(append(cfg.Backdrop.Options(), backdrop.WithLogger(logger))...)),
		engine.WithOverlayRegions(cfg.Overlay.Rects()...),
		engine.WithRigOptions(cfg.Camera.RigOptions()...),
		engine.WithCameraOptions(cfg.Camera.CameraOptions()...),
		engine.WithProfiling(profile || cfg.Profiler.Enabled, cfg.Profiler.Interval),
		engine.WithRenderFrameLimit(cfg.Renderer.FrameLimit),
		engine.WithAxisLength(cfg.Renderer.AxisLength),
		engine.WithBindings(bindings),
	}

	if watch && configPath != "" {
		w, err := config.Watch(configPath, logger)
		if err != nil {
			logger.Warn("config hot reload disabled", "error", err)
		} else {
			defer w.Close()
			options = append(options, engine.WithTunings(w.Tunings))
		}
	}

	eng := engine.NewEngine(options...)

	go func() {
		<-ctx.Done()
		eng.Quit()
	}()

	logger.Info("viewer started",
		"targets", len(targets.Targets()),
		"environments", len(eng.Backdrop().Environments()),
	)
	eng.Run()
	return nil
}
