package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/scenery/scene"
)

// HierarchyWindow shows a scene's entities as a parent-child tree and keeps
// track of the selected entity.
type HierarchyWindow struct {
	scene      *scene.Scene
	filterText string
	selected   scene.EntityId
}

func NewHierarchyWindow(s *scene.Scene) *HierarchyWindow {
	return &HierarchyWindow{scene: s}
}

// Selected returns the selected entity if it is still in the scene.
func (h *HierarchyWindow) Selected() *scene.Entity {
	return h.scene.FindByID(h.selected)
}

func (h *HierarchyWindow) Select(id scene.EntityId) {
	h.selected = id
}

func (h *HierarchyWindow) Render() {
	if !imgui.BeginV("Hierarchy: "+h.scene.Name(), nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.InputTextWithHint("##search", "Search...", &h.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		h.filterText = ""
	}
	imgui.Separator()

	if h.filterText != "" {
		matches := Filter(h.scene.ObjectsInScene(), h.filterText)
		for _, e := range matches {
			if imgui.SelectableBoolV(EntityLabel(e), e.Id() == h.selected, imgui.SelectableFlagsNone, imgui.NewVec2(0, 0)) {
				h.selected = e.Id()
			}
		}
		imgui.Text(fmt.Sprintf("Matches: %d / %d entities", len(matches), h.scene.Len()))
	} else {
		for _, e := range Roots(h.scene) {
			h.renderNode(e)
		}
		imgui.Text(fmt.Sprintf("Total: %d entities", h.scene.Len()))
	}

	imgui.End()
}

func (h *HierarchyWindow) renderNode(e *scene.Entity) {
	flags := imgui.TreeNodeFlagsOpenOnArrow | imgui.TreeNodeFlagsSpanAvailWidth
	if e.ChildCount() == 0 {
		flags |= imgui.TreeNodeFlagsLeaf
	}
	if e.Id() == h.selected {
		flags |= imgui.TreeNodeFlagsSelected
	}

	open := imgui.TreeNodeExStrV(EntityLabel(e), flags)
	if imgui.IsItemClicked() {
		h.selected = e.Id()
	}
	if open {
		for _, child := range e.Children() {
			h.renderNode(child)
		}
		imgui.TreePop()
	}
}

// Roots returns the entities of s whose parent is not owned by s, in scene
// order.
func Roots(s *scene.Scene) []*scene.Entity {
	var roots []*scene.Entity
	for _, e := range s.ObjectsInScene() {
		if p := e.Parent(); p == nil || p.Scene() != s {
			roots = append(roots, e)
		}
	}
	return roots
}

// EntityLabel formats an entity for display. The id suffix keeps ImGui
// labels unique.
func EntityLabel(e *scene.Entity) string {
	name := e.Tag()
	if name == "" {
		name = "Entity"
	}
	return fmt.Sprintf("%s##%d", name, e.Id())
}

// ComponentNames returns the type names of e's components in registration
// order.
func ComponentNames(e *scene.Entity) []string {
	comps := e.Components()
	names := make([]string, len(comps))
	for i, c := range comps {
		names[i] = strings.TrimPrefix(fmt.Sprintf("%T", c), "*")
	}
	return names
}

// Filter returns the entities whose id, tag or component type names contain
// text, case-insensitively.
func Filter(entities []*scene.Entity, text string) []*scene.Entity {
	needle := strings.ToLower(text)
	var matched []*scene.Entity
	for _, e := range entities {
		if strings.Contains(e.Id().String(), needle) ||
			strings.Contains(strings.ToLower(e.Tag()), needle) ||
			strings.Contains(strings.ToLower(strings.Join(ComponentNames(e), " ")), needle) {
			matched = append(matched, e)
		}
	}
	return matched
}
