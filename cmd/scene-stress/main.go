package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/plus3/scenery/internal/config"
	"github.com/plus3/scenery/internal/logging"
	"github.com/plus3/scenery/scene"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file.")
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	roots := flag.Int("roots", 1000, "The initial number of entity hierarchies to create.")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "Random seed for hierarchy generation.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()
	scene.SetLogger(logger)

	logger.Info("starting scene stress test")

	manager := scene.NewManager()
	level := manager.CreateScene("stress")
	loop := scene.NewLoop(manager,
		scene.WithFixedStep(cfg.FixedStep),
		scene.WithMaxFixedSteps(cfg.MaxFixedSteps),
	)

	world := NewWorld(*seed)
	logger.Info("populating scene", zap.Int("roots", *roots), zap.Uint64("seed", *seed))
	for range *roots {
		world.SpawnHierarchy(level)
	}
	logger.Info("population complete", zap.Int("entities", level.Len()))

	report := &Report{
		Duration:       *duration,
		Roots:          *roots,
		FixedStep:      loop.FixedStep(),
		GCPauseMetrics: *gcPauseMetrics,
		FrameTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	logger.Info("running simulation", zap.Duration("duration", *duration))
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	var totalFrames int64
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			frameStart := time.Now()
			loop.Tick(deltaTime.Seconds())
			report.FrameTime.Samples = append(report.FrameTime.Samples, time.Since(frameStart))
			totalFrames++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalFrames = totalFrames
	report.Spawned = world.Spawned
	report.LiveEntities = level.Len()
	report.Loop = loop.Stats()
	report.FrameTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	manager.RemoveScene(level.Name())
	logger.Info("simulation finished", zap.Int64("frames", totalFrames))

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		logger.Fatal("failed to generate report", zap.Error(err))
	}
	fmt.Println("--- End of Report ---")
}
