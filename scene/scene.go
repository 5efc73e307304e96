package scene

import (
	"cmp"
	"slices"

	"github.com/cespare/xxhash/v2"
	"github.com/kamstrup/intmap"
)

// Scene owns an ordered collection of entities and drives their per-frame
// passes. Entities are visited in insertion order. Structural changes made
// while a pass is running are deferred until the pass ends.
//
// Scenes are created by Manager.CreateScene and are not safe for concurrent use.
type Scene struct {
	name     string
	entities []*Entity
	index    *intmap.Map[EntityId, *Entity]
	tags     *intmap.Map[uint64, []*Entity]
	commands *Commands
	time     *FrameTime
	depth    int
	attached uint64
}

func newScene(name string, time *FrameTime) *Scene {
	return &Scene{
		name:     name,
		index:    intmap.New[EntityId, *Entity](64),
		tags:     intmap.New[uint64, []*Entity](16),
		commands: newCommands(),
		time:     time,
	}
}

func (s *Scene) Name() string {
	return s.name
}

// Len returns the number of entities the scene owns, excluding adds that are
// still queued.
func (s *Scene) Len() int {
	return len(s.entities)
}

// Time returns the frame timing shared by the scene's manager.
func (s *Scene) Time() *FrameTime {
	return s.time
}

// Commands returns the scene's deferred command buffer.
func (s *Scene) Commands() *Commands {
	return s.commands
}

// Defer queues fn to run after the current or next pass.
func (s *Scene) Defer(fn func()) {
	s.commands.Defer(fn)
}

func (s *Scene) iterating() bool {
	return s.depth > 0
}

// Add gives the scene ownership of e. It reports false if e is nil, destroyed,
// or already owned by a scene. Adds made during a pass take effect when the
// pass ends.
func (s *Scene) Add(e *Entity) bool {
	if e == nil || e.markedForDestroy || e.scene != nil {
		return false
	}
	e.scene = s
	if s.iterating() {
		s.commands.add(e)
		return true
	}
	s.attach(e)
	return true
}

func (s *Scene) attach(e *Entity) {
	s.attached++
	e.order = s.attached
	s.entities = append(s.entities, e)
	s.index.Put(e.id, e)
	s.indexTag(e)
}

// indexTag inserts e into the bucket for its tag hash. Buckets are kept in
// attach order so tag lookups match scene order.
func (s *Scene) indexTag(e *Entity) {
	bucket, _ := s.tags.Get(e.tagHash)
	i, _ := slices.BinarySearchFunc(bucket, e.order, func(x *Entity, order uint64) int {
		return cmp.Compare(x.order, order)
	})
	s.tags.Put(e.tagHash, slices.Insert(bucket, i, e))
}

func (s *Scene) unindexTag(e *Entity, hash uint64) {
	bucket, ok := s.tags.Get(hash)
	if !ok {
		return
	}
	if i := slices.Index(bucket, e); i >= 0 {
		bucket = slices.Delete(bucket, i, i+1)
	}
	if len(bucket) == 0 {
		s.tags.Del(hash)
		return
	}
	s.tags.Put(hash, bucket)
}

// retag moves an attached entity from the bucket of prev to its current one.
// Queued adds are indexed when they are attached.
func (s *Scene) retag(e *Entity, prev uint64) {
	if !s.index.Has(e.id) {
		return
	}
	s.unindexTag(e, prev)
	s.indexTag(e)
}

// Remove releases e from the scene and destructs it. During a pass the entity
// is marked and the removal happens at the end of the pass.
//
// Destruction does not wait for outside holders to drop their pointers. A
// removed entity stays valid memory but is inert: IsDestroyed reports true,
// it owns no components and has no hierarchy links.
func (s *Scene) Remove(e *Entity) bool {
	if e == nil || e.scene != s {
		return false
	}
	e.markedForDestroy = true
	if s.iterating() {
		return true
	}
	if i := slices.Index(s.entities, e); i >= 0 {
		s.entities = slices.Delete(s.entities, i, i+1)
	}
	s.index.Del(e.id)
	s.unindexTag(e, e.tagHash)
	e.destruct()
	return true
}

// RemoveAll destructs every entity in the scene.
func (s *Scene) RemoveAll() {
	for _, e := range s.entities {
		e.markedForDestroy = true
	}
	for _, e := range s.commands.adds {
		e.markedForDestroy = true
	}
	if !s.iterating() {
		s.sweep()
	}
}

// FindByID returns the owned entity with the given id, or nil.
func (s *Scene) FindByID(id EntityId) *Entity {
	e, _ := s.index.Get(id)
	return e
}

// ObjectsInScene returns a snapshot of the owned entities.
func (s *Scene) ObjectsInScene() []*Entity {
	return slices.Clone(s.entities)
}

// ObjectsWithTag returns a snapshot of the owned entities tagged exactly tag,
// in scene order.
func (s *Scene) ObjectsWithTag(tag string) []*Entity {
	bucket, _ := s.tags.Get(xxhash.Sum64String(tag))
	var tagged []*Entity
	for _, e := range bucket {
		if e.tag == tag {
			tagged = append(tagged, e)
		}
	}
	return tagged
}

func (s *Scene) Update() {
	s.pass(func(e *Entity) { e.Update() })
}

func (s *Scene) FixedUpdate(step float64) {
	s.pass(func(e *Entity) { e.FixedUpdate(step) })
}

func (s *Scene) LateUpdate() {
	s.pass(func(e *Entity) { e.LateUpdate() })
}

// Render draws every live entity. Render never sweeps; destruction requested
// while rendering waits for the next update pass.
func (s *Scene) Render() {
	s.visit((*Entity).Render)
}

func (s *Scene) pass(fn func(*Entity)) {
	s.visit(fn)
	if s.depth == 0 {
		s.sweep()
	}
}

func (s *Scene) visit(fn func(*Entity)) {
	s.depth++
	defer func() { s.depth-- }()
	for _, e := range s.entities {
		if !e.markedForDestroy {
			fn(e)
		}
	}
}

// sweep removes and destructs marked entities, then flushes queued commands.
func (s *Scene) sweep() {
	if slices.ContainsFunc(s.entities, (*Entity).IsMarkedForDestroy) {
		kept := make([]*Entity, 0, len(s.entities))
		var dead []*Entity
		for _, e := range s.entities {
			if e.markedForDestroy {
				dead = append(dead, e)
				s.index.Del(e.id)
				s.unindexTag(e, e.tagHash)
				continue
			}
			kept = append(kept, e)
		}
		s.entities = kept
		for _, e := range dead {
			e.destruct()
		}
	}
	if s.commands.Len() > 0 {
		s.commands.flush(s)
	}
}
