package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/scenery/scene"
)

// LoopStatsWindow shows frame timing and per-pass durations of a Loop.
type LoopStatsWindow struct {
	loop          *scene.Loop
	time          *scene.FrameTime
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

func NewLoopStatsWindow(loop *scene.Loop, ft *scene.FrameTime, historyFrames int) *LoopStatsWindow {
	if historyFrames <= 0 {
		historyFrames = 1
	}
	return &LoopStatsWindow{
		loop:          loop,
		time:          ft,
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
	}
}

// Record stores the last frame's delta time, in milliseconds, in the history
// ring.
func (ls *LoopStatsWindow) Record() {
	ls.frameHistory[ls.frameIndex] = float32(ls.time.DeltaTime * 1000.0)
	ls.frameIndex = (ls.frameIndex + 1) % ls.historyFrames
}

// AverageFrameTime returns the mean of the history ring in milliseconds.
func (ls *LoopStatsWindow) AverageFrameTime() float32 {
	var sum float32
	for _, ft := range ls.frameHistory {
		sum += ft
	}
	return sum / float32(ls.historyFrames)
}

func (ls *LoopStatsWindow) Render() {
	if !imgui.BeginV("Loop Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ls.Record()
	stats := ls.loop.Stats()

	imgui.Text(fmt.Sprintf("Frames: %d", stats.Frames))
	imgui.Text(fmt.Sprintf("Fixed Steps: %d (step %.4fs)", stats.FixedSteps, ls.loop.FixedStep()))
	imgui.Text(fmt.Sprintf("Dropped Time: %.3fs", stats.DroppedTime))

	avg := ls.AverageFrameTime()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ls.frameHistory[0], int32(len(ls.frameHistory)))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("PassStatsTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Pass")
		imgui.TableSetupColumn("Runs")
		imgui.TableSetupColumn("Last")
		imgui.TableSetupColumn("Avg")
		imgui.TableSetupColumn("Max")
		imgui.TableHeadersRow()

		for _, p := range stats.Passes {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(p.Name)
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", p.ExecutionCount))
			imgui.TableNextColumn()
			imgui.Text(p.LastDuration.String())
			imgui.TableNextColumn()
			imgui.Text(p.AvgDuration.String())
			imgui.TableNextColumn()
			imgui.Text(p.MaxDuration.String())
		}

		imgui.EndTable()
	}

	imgui.End()
}
