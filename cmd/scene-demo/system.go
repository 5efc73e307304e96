package main

import (
	"math"

	"github.com/plus3/scenery/scene"
)

// Orbit moves its owner around the parent's origin on every fixed step.
type Orbit struct {
	scene.BaseComponent
	Radius float64
	Speed  float64
	Angle  float64
}

func (o *Orbit) Update() {}

func (o *Orbit) FixedUpdate(step float64) {
	o.Angle = math.Mod(o.Angle+o.Speed*step, 2*math.Pi)
	o.Owner().Transform().SetLocalPosition(scene.Vec3{
		X: math.Cos(o.Angle) * o.Radius,
		Y: math.Sin(o.Angle) * o.Radius,
	})
}

// Body describes one entity of the demo system.
type Body struct {
	Name     string
	Glyph    string
	Color    uint32
	Radius   float64
	Speed    float64
	Children []Body
}

var solarSystem = Body{
	Name:  "sun",
	Glyph: "@",
	Color: 0xffd700,
	Children: []Body{
		{Name: "mercury", Glyph: "m", Color: 0xb0b0b0, Radius: 4, Speed: 2.4},
		{Name: "venus", Glyph: "v", Color: 0xe6c27a, Radius: 7, Speed: 1.6},
		{
			Name: "earth", Glyph: "e", Color: 0x4f8fd6, Radius: 11, Speed: 1.0,
			Children: []Body{
				{Name: "moon", Glyph: ".", Color: 0xdddddd, Radius: 2, Speed: 5},
			},
		},
		{
			Name: "mars", Glyph: "r", Color: 0xd0543a, Radius: 16, Speed: 0.7,
			Children: []Body{
				{Name: "phobos", Glyph: ".", Color: 0x999999, Radius: 1.5, Speed: 6},
			},
		},
	},
}

// Decorate attaches renderer components to a spawned body.
type Decorate func(e *scene.Entity, b Body)

// Spawn adds b and its children to s. Every entity is tagged with the body
// name.
func Spawn(s *scene.Scene, b Body, parent *scene.Entity, decorate Decorate) *scene.Entity {
	e := scene.NewEntity()
	e.SetTag(b.Name)
	if parent != nil {
		e.SetParent(parent, false)
	}
	if b.Radius > 0 {
		orbit := scene.AddComponent(e, func(*scene.Entity) *Orbit {
			return &Orbit{Radius: b.Radius, Speed: b.Speed}
		})
		orbit.FixedUpdate(0)
	}
	if decorate != nil {
		decorate(e, b)
	}
	s.Add(e)

	for _, child := range b.Children {
		Spawn(s, child, e, decorate)
	}
	return e
}
