package scene

// Vec3 is a position in world or local space.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Transform holds an entity's local position and a lazily computed world
// position. The world position is recomputed through the parent chain the
// next time it is queried after the entity or any ancestor moved.
type Transform struct {
	owner *Entity
	local Vec3
	world Vec3
	dirty bool
}

func newTransform(owner *Entity) Transform {
	return Transform{owner: owner, dirty: true}
}

// Owner returns the entity the transform belongs to.
func (t *Transform) Owner() *Entity {
	return t.owner
}

// LocalPosition returns the position relative to the parent.
func (t *Transform) LocalPosition() Vec3 {
	return t.local
}

// SetLocalPosition moves the entity relative to its parent.
func (t *Transform) SetLocalPosition(p Vec3) {
	t.local = p
	t.markDirty()
}

// Translate offsets the local position by d.
func (t *Transform) Translate(d Vec3) {
	t.SetLocalPosition(t.local.Add(d))
}

// WorldPosition returns the position in world space.
func (t *Transform) WorldPosition() Vec3 {
	if t.dirty {
		t.world = t.local
		if parent := t.owner.parent; parent != nil {
			t.world = parent.transform.WorldPosition().Add(t.local)
		}
		t.dirty = false
	}
	return t.world
}

// SetWorldPosition moves the entity so that its world position becomes p.
func (t *Transform) SetWorldPosition(p Vec3) {
	if parent := t.owner.parent; parent != nil {
		p = p.Sub(parent.transform.WorldPosition())
	}
	t.SetLocalPosition(p)
}

// markDirty invalidates the cached world position of the entity and its
// descendants. A dirty transform always has dirty descendants.
func (t *Transform) markDirty() {
	if t.dirty {
		return
	}
	t.dirty = true
	for _, child := range t.owner.children {
		child.transform.markDirty()
	}
}
