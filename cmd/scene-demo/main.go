// Command scene-demo runs a small orbiting system on the scene runtime,
// rendered in the terminal, in an Ebiten window or headless.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/plus3/scenery/internal/config"
	"github.com/plus3/scenery/internal/logging"
	"github.com/plus3/scenery/scene"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file.")
	renderer := flag.String("renderer", "", "Override the configured renderer (term, ebiten, none).")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *renderer != "" {
		cfg.Renderer = *renderer
		if err := cfg.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	// The terminal renderer owns stderr.
	if cfg.Renderer == "term" && cfg.Log.Output == "stderr" {
		cfg.Log.Output = "scene-demo.log"
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()
	scene.SetLogger(logger)

	manager := scene.NewManager()
	loop := scene.NewLoop(manager,
		scene.WithFixedStep(cfg.FixedStep),
		scene.WithMaxFixedSteps(cfg.MaxFixedSteps),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("starting demo", zap.String("renderer", cfg.Renderer))
	switch cfg.Renderer {
	case "term":
		err = runTerm(ctx, cfg, logger, manager, loop)
	case "ebiten":
		err = runEbiten(cfg, manager, loop)
	default:
		level := manager.CreateScene("system")
		Spawn(level, solarSystem, nil, nil)
		run(ctx, cfg, loop, loop.Render)
	}
	if err != nil {
		logger.Error("demo failed", zap.Error(err))
		os.Exit(1)
	}

	stats := loop.Stats()
	logger.Info("demo finished",
		zap.Int64("frames", stats.Frames),
		zap.Int64("fixed_steps", stats.FixedSteps),
		zap.Float64("dropped", stats.DroppedTime),
	)
}

// run steps the loop at the configured interval and calls render after
// every step until ctx is done.
func run(ctx context.Context, cfg config.Config, loop *scene.Loop, render func()) {
	ticker := time.NewTicker(cfg.FrameInterval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			loop.Step(now.Sub(last).Seconds())
			last = now
			render()
		}
	}
}
