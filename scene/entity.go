package scene

import (
	"reflect"
	"slices"
	"strconv"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"
)

// EntityId uniquely identifies an entity for the lifetime of the process.
// Zero is never assigned.
type EntityId uint64

func (id EntityId) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

var lastEntityId atomic.Uint64

// Entity owns a set of components and a position in a parent-child hierarchy.
// Entities are not safe for concurrent use.
type Entity struct {
	_         noCopy
	id        EntityId
	transform Transform
	tag       string
	tagHash   uint64
	order     uint64

	components []Component

	parent   *Entity
	children []*Entity
	scene    *Scene

	markedForDestroy bool
	destroyed        bool
}

// NewEntity creates a standalone entity. Add it to a scene to have it updated.
func NewEntity() *Entity {
	e := &Entity{
		id:      EntityId(lastEntityId.Add(1)),
		tagHash: xxhash.Sum64String(""),
	}
	e.transform = newTransform(e)
	return e
}

// Id returns the entity identifier.
func (e *Entity) Id() EntityId {
	return e.id
}

// Transform returns the entity's transform. It is never nil.
func (e *Entity) Transform() *Transform {
	return &e.transform
}

// Scene returns the scene that owns the entity, or nil.
func (e *Entity) Scene() *Scene {
	return e.scene
}

// SetTag replaces the entity's tag. An entity owned by a scene moves to the
// new tag's bucket in the scene's tag index.
func (e *Entity) SetTag(tag string) {
	prev := e.tagHash
	e.tag = tag
	e.tagHash = xxhash.Sum64String(tag)
	if e.scene != nil && prev != e.tagHash {
		e.scene.retag(e, prev)
	}
}

func (e *Entity) Tag() string {
	return e.tag
}

func (e *Entity) HasTag(tag string) bool {
	return e.tag == tag
}

// AddComponent builds a component of type T and attaches it to e.
// If e already owns a component of exactly type T, or e has been destroyed,
// nothing is built and the zero T is returned. The build function receives
// the owner so the component can be bound at construction time.
func AddComponent[T Component](e *Entity, build func(owner *Entity) T) T {
	var zero T
	typ := reflect.TypeFor[T]()
	if typ.Kind() == reflect.Interface {
		panic("scene: AddComponent requires a concrete component type, got " + typ.String())
	}
	if e.destroyed {
		return zero
	}

	for _, c := range e.components {
		if reflect.TypeOf(c) == typ {
			logger.Debug("component already exists",
				zap.Stringer("type", typ),
				zap.Stringer("entity", e.id),
			)
			return zero
		}
	}

	c := build(e)
	if v := reflect.ValueOf(c); v.Kind() == reflect.Pointer && v.IsNil() {
		return zero
	}
	c.base().bind(e)
	e.components = append(e.components, c)
	return c
}

// GetComponent returns the first component assignable to T. T may be a
// concrete component type or any interface the component implements.
func GetComponent[T any](e *Entity) (T, bool) {
	for _, c := range e.components {
		if v, ok := c.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// HasComponent reports whether e owns a component assignable to T.
func HasComponent[T any](e *Entity) bool {
	_, ok := GetComponent[T](e)
	return ok
}

// RemoveComponent marks every component assignable to T for removal and
// returns how many were marked. Marked components stay reachable until the
// next RemoveDeadComponents.
func RemoveComponent[T any](e *Entity) int {
	n := 0
	for _, c := range e.components {
		if _, ok := c.(T); ok {
			c.MarkForRemoval()
			n++
		}
	}
	return n
}

// Components returns a snapshot of the owned components in registration order.
func (e *Entity) Components() []Component {
	return slices.Clone(e.components)
}

// RemoveDeadComponents destroys every component marked for removal.
func (e *Entity) RemoveDeadComponents() {
	dead := 0
	for _, c := range e.components {
		if c.IsMarkedForRemoval() {
			dead++
		}
	}
	if dead == 0 {
		return
	}

	kept := make([]Component, 0, len(e.components)-dead)
	for _, c := range e.components {
		if c.IsMarkedForRemoval() {
			destroyComponent(c)
			continue
		}
		kept = append(kept, c)
	}
	e.components = kept
}

// Update runs Update on every live component, then sweeps dead ones.
func (e *Entity) Update() {
	for _, c := range e.components {
		if e.destroyed {
			return
		}
		if !c.IsMarkedForRemoval() {
			c.Update()
		}
	}
	e.RemoveDeadComponents()
}

// FixedUpdate runs FixedUpdate on every live component, then sweeps dead ones.
func (e *Entity) FixedUpdate(step float64) {
	for _, c := range e.components {
		if e.destroyed {
			return
		}
		if !c.IsMarkedForRemoval() {
			c.FixedUpdate(step)
		}
	}
	e.RemoveDeadComponents()
}

// LateUpdate runs LateUpdate on every live component implementing LateUpdater.
func (e *Entity) LateUpdate() {
	for _, c := range e.components {
		if e.destroyed {
			return
		}
		if l, ok := c.(LateUpdater); ok && !c.IsMarkedForRemoval() {
			l.LateUpdate()
		}
	}
	e.RemoveDeadComponents()
}

// Render runs Render on every live component implementing Renderer.
func (e *Entity) Render() {
	for _, c := range e.components {
		if r, ok := c.(Renderer); ok && !c.IsMarkedForRemoval() {
			r.Render()
		}
	}
}

// Parent returns the parent entity, or nil for a root.
func (e *Entity) Parent() *Entity {
	return e.parent
}

// Children returns a snapshot of the direct children.
func (e *Entity) Children() []*Entity {
	return slices.Clone(e.children)
}

func (e *Entity) ChildCount() int {
	return len(e.children)
}

// SetParent moves e under parent, or makes it a root when parent is nil.
// It reports false without changing anything when parent is e itself, is
// already e's parent, is one of e's descendants, or either entity has been
// destroyed. With keepWorldPosition the local position is adjusted so the
// world position is unchanged; otherwise the local position is kept and is
// reinterpreted relative to the new parent.
func (e *Entity) SetParent(parent *Entity, keepWorldPosition bool) bool {
	if !e.isValidParent(parent) {
		return false
	}

	var world Vec3
	if keepWorldPosition {
		world = e.transform.WorldPosition()
	}

	if e.parent != nil {
		e.parent.removeChild(e)
	}
	e.parent = parent
	if parent != nil {
		parent.children = append(parent.children, e)
	}

	if keepWorldPosition {
		e.transform.SetWorldPosition(world)
	} else {
		e.transform.markDirty()
	}
	return true
}

func (e *Entity) isValidParent(parent *Entity) bool {
	if e.destroyed || parent == e || parent == e.parent {
		return false
	}
	if parent != nil && (parent.destroyed || e.IsChild(parent)) {
		return false
	}
	return true
}

func (e *Entity) removeChild(child *Entity) {
	if i := slices.Index(e.children, child); i >= 0 {
		e.children = slices.Delete(e.children, i, i+1)
	}
}

// IsChild reports whether candidate is a direct or transitive descendant of e.
func (e *Entity) IsChild(candidate *Entity) bool {
	if candidate == nil {
		return false
	}
	for _, child := range e.children {
		if child == candidate || child.IsChild(candidate) {
			return true
		}
	}
	return false
}

// Destroy marks the entity for destruction. An entity owned by a scene is
// removed at the scene's next sweep; a standalone entity is destructed
// immediately.
func (e *Entity) Destroy() {
	if e.markedForDestroy {
		return
	}
	e.markedForDestroy = true
	if e.scene == nil {
		e.destruct()
	}
}

func (e *Entity) IsMarkedForDestroy() bool {
	return e.markedForDestroy
}

// IsDestroyed reports whether the entity has been destructed. A destructed
// entity owns no components and has no hierarchy links.
func (e *Entity) IsDestroyed() bool {
	return e.destroyed
}

// destruct releases the entity. Children are orphaned in place, keeping
// their world position, before the entity leaves its own parent.
func (e *Entity) destruct() {
	if e.destroyed {
		return
	}
	for _, child := range slices.Clone(e.children) {
		child.SetParent(nil, true)
	}
	if e.parent != nil {
		e.parent.removeChild(e)
		e.parent = nil
	}

	e.destroyed = true
	e.markedForDestroy = true
	components := e.components
	e.components = nil
	for _, c := range components {
		destroyComponent(c)
	}
	e.scene = nil
}
