// Package debugui provides Dear ImGui windows for inspecting scenes at
// runtime. Windows are ordinary components and draw during the render pass.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/scenery/scene"
)

// Tag is set on entities created by Spawn.
const Tag = "debugui"

// ImguiItem is a component that holds a Dear ImGui draw function.
// Attach this to entities that should draw ImGui widgets each frame.
type ImguiItem struct {
	scene.BaseComponent
	Draw func()
}

// NewImguiItem returns a builder for AddComponent.
func NewImguiItem(draw func()) func(*scene.Entity) *ImguiItem {
	return func(*scene.Entity) *ImguiItem {
		return &ImguiItem{Draw: draw}
	}
}

func (i *ImguiItem) Update()                  {}
func (i *ImguiItem) FixedUpdate(step float64) {}

func (i *ImguiItem) Render() {
	if i.Draw != nil {
		i.Draw()
	}
}

// Panel draws the hierarchy, inspector and loop statistics windows for one
// scene.
type Panel struct {
	scene.BaseComponent
	Hierarchy *HierarchyWindow
	Inspector *InspectorWindow
	Stats     *LoopStatsWindow
}

func (p *Panel) Update()                  {}
func (p *Panel) FixedUpdate(step float64) {}

func (p *Panel) Render() {
	p.Hierarchy.Render()
	p.Inspector.Render(p.Hierarchy.Selected())
	if p.Stats != nil {
		p.Stats.Render()
	}
}

// Spawn adds an entity carrying a Panel for s to s. The loop is optional;
// without it the statistics window is omitted.
func Spawn(s *scene.Scene, loop *scene.Loop) *scene.Entity {
	e := scene.NewEntity()
	e.SetTag(Tag)
	scene.AddComponent(e, func(*scene.Entity) *Panel {
		p := &Panel{
			Hierarchy: NewHierarchyWindow(s),
			Inspector: NewInspectorWindow(),
		}
		if loop != nil {
			p.Stats = NewLoopStatsWindow(loop, s.Time(), 120)
		}
		return p
	})
	s.Add(e)
	return e
}

// InputState reports whether Dear ImGui is consuming mouse or keyboard input.
// Games should ignore the corresponding input while it is set.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// CaptureInput reads the current ImGui input capture state. It requires an
// ImGui context.
func CaptureInput() InputState {
	io := imgui.CurrentIO()
	return InputState{
		WantCaptureMouse:    io.WantCaptureMouse(),
		WantCaptureKeyboard: io.WantCaptureKeyboard(),
	}
}
