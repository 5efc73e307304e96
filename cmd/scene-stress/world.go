package main

import (
	"math/rand/v2"

	"github.com/plus3/scenery/scene"
)

// Drift moves its owner at a constant velocity on every fixed step.
type Drift struct {
	scene.BaseComponent
	Velocity scene.Vec3
}

func (d *Drift) Update() {}

func (d *Drift) FixedUpdate(step float64) {
	d.Owner().Transform().Translate(scene.Vec3{
		X: d.Velocity.X * step,
		Y: d.Velocity.Y * step,
		Z: d.Velocity.Z * step,
	})
}

// Decay destroys its owner and its descendants after a number of frames and spawns a
// replacement hierarchy in the same scene.
type Decay struct {
	scene.BaseComponent
	Frames int
	world  *World
}

func (d *Decay) FixedUpdate(step float64) {}

func (d *Decay) Update() {
	d.Frames--
	if d.Frames > 0 {
		return
	}
	owner := d.Owner()
	s := owner.Scene()
	destroyTree(owner)
	if s != nil {
		d.world.SpawnHierarchy(s)
	}
}

func destroyTree(e *scene.Entity) {
	for _, child := range e.Children() {
		destroyTree(child)
	}
	e.Destroy()
}

// Churn toggles the owner's Drift component, exercising deferred component
// removal.
type Churn struct {
	scene.BaseComponent
	Chance float64
	world  *World
}

func (c *Churn) FixedUpdate(step float64) {}

func (c *Churn) Update() {
	owner := c.Owner()
	if !scene.HasComponent[*Drift](owner) {
		scene.AddComponent(owner, c.world.newDrift)
		return
	}
	if c.world.rng.Float64() < c.Chance {
		scene.RemoveComponent[*Drift](owner)
	}
}

// Sample reads world positions in the late pass, forcing the dirty
// transforms to resolve.
type Sample struct {
	scene.BaseComponent
	Sum float64
}

func (s *Sample) Update()                  {}
func (s *Sample) FixedUpdate(step float64) {}

func (s *Sample) LateUpdate() {
	p := s.Owner().Transform().WorldPosition()
	s.Sum += p.X + p.Y + p.Z
}

// World spawns random entity hierarchies and counts what it created.
type World struct {
	rng         *rand.Rand
	MaxDepth    int
	MaxChildren int
	MaxLifetime int
	ChurnChance float64

	Spawned int64
}

func NewWorld(seed uint64) *World {
	return &World{
		rng:         rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		MaxDepth:    3,
		MaxChildren: 4,
		MaxLifetime: 120,
		ChurnChance: 0.05,
	}
}

func (w *World) newDrift(*scene.Entity) *Drift {
	return &Drift{Velocity: scene.Vec3{
		X: w.rng.Float64()*2 - 1,
		Y: w.rng.Float64()*2 - 1,
	}}
}

// SpawnHierarchy adds a root entity with a random tree of children to s and
// returns the root.
func (w *World) SpawnHierarchy(s *scene.Scene) *scene.Entity {
	root := w.spawn(s, nil)
	scene.AddComponent(root, func(*scene.Entity) *Decay {
		return &Decay{Frames: 1 + w.rng.IntN(w.MaxLifetime), world: w}
	})
	w.spawnChildren(s, root, 1)
	return root
}

func (w *World) spawnChildren(s *scene.Scene, parent *scene.Entity, depth int) {
	if depth > w.MaxDepth {
		return
	}
	for range w.rng.IntN(w.MaxChildren + 1) {
		child := w.spawn(s, parent)
		w.spawnChildren(s, child, depth+1)
	}
}

func (w *World) spawn(s *scene.Scene, parent *scene.Entity) *scene.Entity {
	e := scene.NewEntity()
	e.Transform().SetLocalPosition(scene.Vec3{
		X: w.rng.Float64()*10 - 5,
		Y: w.rng.Float64()*10 - 5,
	})
	if parent != nil {
		e.SetParent(parent, false)
	}

	scene.AddComponent(e, w.newDrift)
	scene.AddComponent(e, func(*scene.Entity) *Sample { return &Sample{} })
	if w.rng.IntN(2) == 0 {
		scene.AddComponent(e, func(*scene.Entity) *Churn {
			return &Churn{Chance: w.ChurnChance, world: w}
		})
	}

	s.Add(e)
	w.Spawned++
	return e
}
