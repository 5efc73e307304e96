package scene

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"
)

// Pass identifies one stage of a frame.
type Pass int

const (
	PassFixedUpdate Pass = iota
	PassUpdate
	PassLateUpdate
	PassRender
	passCount
)

func (p Pass) String() string {
	switch p {
	case PassFixedUpdate:
		return "FixedUpdate"
	case PassUpdate:
		return "Update"
	case PassLateUpdate:
		return "LateUpdate"
	case PassRender:
		return "Render"
	default:
		return "Unknown"
	}
}

// LoopStats provides statistics about loop execution.
type LoopStats struct {
	Frames      int64
	FixedSteps  int64
	DroppedTime float64
	Passes      []PassStats
}

// PassStats provides execution statistics for a single pass.
type PassStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type passStatsInternal struct {
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

const (
	DefaultFixedStep     = 1.0 / 50.0
	DefaultMaxFixedSteps = 5
)

// Loop drives a Manager frame by frame: zero or more fixed steps, then
// update, late update and render. Each pass completes across every scene
// before the next one starts.
type Loop struct {
	manager       *Manager
	fixedStep     float64
	maxFixedSteps int
	accumulator   float64
	fixedSteps    int64
	dropped       float64
	stats         [passCount]passStatsInternal
}

type LoopOption func(*Loop)

// WithFixedStep sets the fixed simulation interval in seconds.
func WithFixedStep(step float64) LoopOption {
	return func(l *Loop) {
		if step > 0 {
			l.fixedStep = step
		}
	}
}

// WithMaxFixedSteps caps the fixed steps run in one frame. Time beyond the
// cap is dropped so a slow frame cannot snowball.
func WithMaxFixedSteps(n int) LoopOption {
	return func(l *Loop) {
		if n > 0 {
			l.maxFixedSteps = n
		}
	}
}

// NewLoop creates a loop for the given manager.
func NewLoop(manager *Manager, opts ...LoopOption) *Loop {
	l := &Loop{
		manager:       manager,
		fixedStep:     DefaultFixedStep,
		maxFixedSteps: DefaultMaxFixedSteps,
	}
	for _, opt := range opts {
		opt(l)
	}
	for i := range l.stats {
		l.stats[i].minDuration = time.Duration(1<<63 - 1)
	}
	manager.time.FixedStep = l.fixedStep
	return l
}

func (l *Loop) FixedStep() float64 {
	return l.fixedStep
}

// Alpha returns how far the simulation is between the last fixed step and
// the next one, in [0, 1).
func (l *Loop) Alpha() float64 {
	return l.accumulator / l.fixedStep
}

// Tick runs one frame with the given delta time in seconds.
func (l *Loop) Tick(dt float64) {
	l.Step(dt)
	l.Render()
}

// Step runs the simulation part of a frame: fixed steps, update and late
// update. Hosts that draw on their own schedule call Step and Render
// separately.
func (l *Loop) Step(dt float64) {
	if dt < 0 {
		dt = 0
	}
	l.manager.time.advance(dt)
	l.accumulator += dt

	steps := 0
	for l.accumulator >= l.fixedStep && steps < l.maxFixedSteps {
		l.timed(PassFixedUpdate, func() { l.manager.FixedUpdate(l.fixedStep) })
		l.accumulator -= l.fixedStep
		steps++
	}
	l.fixedSteps += int64(steps)
	if l.accumulator >= l.fixedStep {
		dropped := math.Floor(l.accumulator/l.fixedStep) * l.fixedStep
		l.accumulator -= dropped
		l.dropped += dropped
		logger.Debug("dropping fixed steps",
			zap.Int64("frame", l.manager.time.Frame),
			zap.Float64("dropped", dropped),
		)
	}

	l.timed(PassUpdate, l.manager.Update)
	l.timed(PassLateUpdate, l.manager.LateUpdate)
}

// Render runs the render pass.
func (l *Loop) Render() {
	l.timed(PassRender, l.manager.Render)
}

func (l *Loop) timed(p Pass, fn func()) {
	start := time.Now()
	fn()
	duration := time.Since(start)

	stats := &l.stats[p]
	stats.executionCount++
	stats.lastDuration = duration
	stats.totalDuration += duration

	if duration < stats.minDuration {
		stats.minDuration = duration
	}
	if duration > stats.maxDuration {
		stats.maxDuration = duration
	}
}

// Run ticks the loop at the given interval until the context is cancelled.
func (l *Loop) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			l.Tick(dt)
		}
	}
}

// Stats returns statistics about loop execution.
func (l *Loop) Stats() *LoopStats {
	stats := &LoopStats{
		Frames:      l.manager.time.Frame,
		FixedSteps:  l.fixedSteps,
		DroppedTime: l.dropped,
		Passes:      make([]PassStats, passCount),
	}

	for i, internal := range l.stats {
		avgDuration := time.Duration(0)
		minDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
			minDuration = internal.minDuration
		}

		stats.Passes[i] = PassStats{
			Name:           Pass(i).String(),
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
	}
	return stats
}
