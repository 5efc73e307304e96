package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/scenery/scene"
)

// InspectorWindow shows one entity's tag, transform and components, and
// edits exported component fields in place.
type InspectorWindow struct{}

func NewInspectorWindow() *InspectorWindow {
	return &InspectorWindow{}
}

func (iw *InspectorWindow) Render(e *scene.Entity) {
	if !imgui.BeginV("Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if e == nil || e.IsDestroyed() {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entity ID: %d", e.Id()))
	tag := e.Tag()
	imgui.Text("Tag:")
	imgui.SameLine()
	imgui.SetNextItemWidth(200)
	if imgui.InputTextWithHint("##tag", "", &tag, imgui.InputTextFlagsNone, nil) {
		e.SetTag(tag)
	}
	if p := e.Parent(); p != nil {
		imgui.Text(fmt.Sprintf("Parent: %d", p.Id()))
	}
	imgui.Text(fmt.Sprintf("Children: %d", e.ChildCount()))
	imgui.Separator()

	if imgui.TreeNodeStr("Transform") {
		iw.renderTransform(e.Transform())
		imgui.TreePop()
	}

	for i, c := range e.Components() {
		label := fmt.Sprintf("%T##%d", c, i)
		if c.IsMarkedForRemoval() {
			imgui.Text(fmt.Sprintf("%T (removed)", c))
			continue
		}
		if imgui.TreeNodeStr(label) {
			iw.renderComponent(c)
			if imgui.Button(fmt.Sprintf("Remove##%d", i)) {
				c.MarkForRemoval()
			}
			imgui.TreePop()
		}
	}

	imgui.Separator()
	if imgui.Button("Destroy Entity") {
		e.Destroy()
	}

	imgui.End()
}

func (iw *InspectorWindow) renderTransform(t *scene.Transform) {
	local := t.LocalPosition()
	x, y, z := float32(local.X), float32(local.Y), float32(local.Z)
	changed := imgui.InputFloat("Local X", &x)
	changed = imgui.InputFloat("Local Y", &y) || changed
	changed = imgui.InputFloat("Local Z", &z) || changed
	if changed {
		t.SetLocalPosition(scene.Vec3{X: float64(x), Y: float64(y), Z: float64(z)})
	}

	world := t.WorldPosition()
	imgui.Text(fmt.Sprintf("World: (%.2f, %.2f, %.2f)", world.X, world.Y, world.Z))
}

func (iw *InspectorWindow) renderComponent(c scene.Component) {
	val := reflect.ValueOf(c)
	if val.Kind() == reflect.Pointer {
		val = val.Elem()
	}

	for _, field := range componentFields.Fields(val.Type()) {
		iw.renderField(field.Name, val.Field(field.Index), field)
	}
}

func (iw *InspectorWindow) renderField(name string, val reflect.Value, field FieldInfo) {
	if field.IsPointer {
		if val.IsNil() {
			imgui.Text(fmt.Sprintf("%s: nil", name))
			return
		}
		val = val.Elem()
	}

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) {
			SetField(val, int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) && v >= 0 {
			SetField(val, int64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(fmt.Sprintf("##%s", name), &v) {
			SetField(val, float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) {
			SetField(val, v)
		}

	case reflect.String:
		v := val.String()
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(fmt.Sprintf("##%s", name), "", &v, imgui.InputTextFlagsNone, nil) {
			SetField(val, v)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			for _, nf := range componentFields.Fields(val.Type()) {
				iw.renderField(nf.Name, val.Field(nf.Index), nf)
			}
			imgui.TreePop()
		}

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	case reflect.Func, reflect.Chan, reflect.Interface:
		imgui.Text(fmt.Sprintf("%s: %s", name, val.Type()))

	default:
		if val.CanInterface() {
			imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
		}
	}
}

// SetField stores v into field, converting between numeric widths. It
// reports whether the field was written.
func SetField(field reflect.Value, v any) bool {
	if !field.CanSet() {
		return false
	}

	switch x := v.(type) {
	case int64:
		switch field.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			field.SetInt(x)
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if x < 0 {
				return false
			}
			field.SetUint(uint64(x))
		default:
			return false
		}
	case float64:
		if field.Kind() != reflect.Float32 && field.Kind() != reflect.Float64 {
			return false
		}
		field.SetFloat(x)
	case bool:
		if field.Kind() != reflect.Bool {
			return false
		}
		field.SetBool(x)
	case string:
		if field.Kind() != reflect.String {
			return false
		}
		field.SetString(x)
	default:
		return false
	}
	return true
}
