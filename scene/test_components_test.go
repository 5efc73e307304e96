package scene_test

import "github.com/plus3/scenery/scene"

// Common test component types
type Damageable interface {
	TakeDamage(amount int)
}

type Health struct {
	scene.BaseComponent
	HP      int
	Updates int
	Steps   int
}

func (h *Health) Update()                  { h.Updates++ }
func (h *Health) FixedUpdate(step float64) { h.Steps++ }
func (h *Health) TakeDamage(amount int)    { h.HP -= amount }

type Armor struct {
	scene.BaseComponent
	Rating int
}

func (a *Armor) Update()                  {}
func (a *Armor) FixedUpdate(step float64) {}
func (a *Armor) TakeDamage(amount int)    { a.Rating-- }

type Velocity struct {
	scene.BaseComponent
	Delta scene.Vec3
}

func (v *Velocity) Update() {}

func (v *Velocity) FixedUpdate(step float64) {
	v.Owner().Transform().Translate(scene.Vec3{X: v.Delta.X * step, Y: v.Delta.Y * step, Z: v.Delta.Z * step})
}

// Probe records every call it receives into a shared log.
type Probe struct {
	scene.BaseComponent
	Name     string
	Log      *[]string
	OnUpdate func()
	OnRender func()
}

func (p *Probe) record(call string) {
	*p.Log = append(*p.Log, p.Name+":"+call)
}

func (p *Probe) Update() {
	p.record("update")
	if p.OnUpdate != nil {
		p.OnUpdate()
	}
}

func (p *Probe) FixedUpdate(step float64) { p.record("fixed") }
func (p *Probe) LateUpdate()              { p.record("late") }
func (p *Probe) OnDestroy()               { p.record("destroy") }

func (p *Probe) Render() {
	p.record("render")
	if p.OnRender != nil {
		p.OnRender()
	}
}

func newHealth(hp int) func(*scene.Entity) *Health {
	return func(*scene.Entity) *Health {
		return &Health{HP: hp}
	}
}

func newArmor(rating int) func(*scene.Entity) *Armor {
	return func(*scene.Entity) *Armor {
		return &Armor{Rating: rating}
	}
}

func newProbe(name string, log *[]string) func(*scene.Entity) *Probe {
	return func(*scene.Entity) *Probe {
		return &Probe{Name: name, Log: log}
	}
}

// probedEntity creates an entity carrying a Probe named name.
func probedEntity(name string, log *[]string) (*scene.Entity, *Probe) {
	e := scene.NewEntity()
	e.SetTag(name)
	return e, scene.AddComponent(e, newProbe(name, log))
}
