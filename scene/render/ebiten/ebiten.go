// Package ebiten hosts scenes inside an Ebiten game and draws Sprite
// components onto the Ebiten screen.
package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/scenery/scene"
)

// Canvas holds the image that sprites draw onto. The target is only set
// while the game is drawing.
type Canvas struct {
	target *ebiten.Image

	// Origin is the screen position world position (0, 0) maps to.
	OriginX, OriginY float64
	// Scale is the number of pixels per world unit.
	Scale float64
}

func NewCanvas() *Canvas {
	return &Canvas{Scale: 1}
}

// Target returns the image being drawn, or nil outside Draw.
func (c *Canvas) Target() *ebiten.Image {
	return c.target
}

// Sprite draws an image centered on its owner's world position.
type Sprite struct {
	scene.BaseComponent
	canvas *Canvas
	Image  *ebiten.Image
	Hidden bool
}

// NewSprite returns a builder for AddComponent.
func NewSprite(canvas *Canvas, img *ebiten.Image) func(*scene.Entity) *Sprite {
	return func(*scene.Entity) *Sprite {
		return &Sprite{canvas: canvas, Image: img}
	}
}

func (s *Sprite) Update()                  {}
func (s *Sprite) FixedUpdate(step float64) {}

func (s *Sprite) Render() {
	target := s.canvas.target
	if target == nil || s.Image == nil || s.Hidden {
		return
	}

	p := s.Owner().Transform().WorldPosition()
	bounds := s.Image.Bounds()

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Translate(-float64(bounds.Dx())/2, -float64(bounds.Dy())/2)
	opts.GeoM.Translate(p.X*s.canvas.Scale, p.Y*s.canvas.Scale)
	opts.GeoM.Translate(s.canvas.OriginX, s.canvas.OriginY)
	target.DrawImage(s.Image, opts)
}

// Game implements ebiten.Game on top of a scene loop. Update advances the
// simulation by one tick and Draw runs the render pass onto the screen.
type Game struct {
	Loop   *scene.Loop
	Canvas *Canvas
	Width  int
	Height int

	// BeforeUpdate runs ahead of every simulation step. Returning an error,
	// such as ebiten.Termination, stops the game.
	BeforeUpdate func() error
	// AfterDraw runs once the scene has been drawn, for overlays.
	AfterDraw func(screen *ebiten.Image)
}

func NewGame(loop *scene.Loop, canvas *Canvas, width, height int) *Game {
	return &Game{
		Loop:   loop,
		Canvas: canvas,
		Width:  width,
		Height: height,
	}
}

func (g *Game) Update() error {
	if g.BeforeUpdate != nil {
		if err := g.BeforeUpdate(); err != nil {
			return err
		}
	}
	g.Loop.Step(1.0 / float64(ebiten.TPS()))
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.Canvas.target = screen
	g.Loop.Render()
	g.Canvas.target = nil

	if g.AfterDraw != nil {
		g.AfterDraw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.Width, g.Height
}
