// Package term renders scene entities onto a terminal through tcell.
// World units map one-to-one onto terminal cells.
package term

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/plus3/scenery/scene"
)

// Canvas is the drawing surface shared by every Glyph in a scene.
type Canvas struct {
	Screen tcell.Screen

	// Origin is the cell that world position (0, 0) maps to.
	OriginX, OriginY int
}

func NewCanvas(screen tcell.Screen) *Canvas {
	return &Canvas{Screen: screen}
}

// Center moves the origin to the middle of the screen.
func (c *Canvas) Center() {
	w, h := c.Screen.Size()
	c.OriginX, c.OriginY = w/2, h/2
}

// Project maps a world position to a cell. visible is false when the cell
// lies outside the screen.
func (c *Canvas) Project(p scene.Vec3) (x, y int, visible bool) {
	x = c.OriginX + int(math.Round(p.X))
	y = c.OriginY + int(math.Round(p.Y))
	w, h := c.Screen.Size()
	return x, y, x >= 0 && y >= 0 && x < w && y < h
}

// Draw writes text starting at cell (x, y), advancing by each rune's display
// width. It returns the number of cells used.
func (c *Canvas) Draw(x, y int, text string, style tcell.Style) int {
	start := x
	for _, r := range text {
		c.Screen.SetContent(x, y, r, nil, style)
		x += max(runewidth.RuneWidth(r), 1)
	}
	return x - start
}

// Frame clears the screen, runs render and shows the result.
func (c *Canvas) Frame(render func()) {
	c.Screen.Clear()
	render()
	c.Screen.Show()
}

// Glyph draws text at its owner's world position.
type Glyph struct {
	scene.BaseComponent
	canvas *Canvas
	Text   string
	Style  tcell.Style
}

// NewGlyph returns a builder for AddComponent.
func NewGlyph(canvas *Canvas, text string, style tcell.Style) func(*scene.Entity) *Glyph {
	return func(*scene.Entity) *Glyph {
		return &Glyph{canvas: canvas, Text: text, Style: style}
	}
}

func (g *Glyph) Update()                  {}
func (g *Glyph) FixedUpdate(step float64) {}

func (g *Glyph) Render() {
	x, y, ok := g.canvas.Project(g.Owner().Transform().WorldPosition())
	if !ok {
		return
	}
	g.canvas.Draw(x, y, g.Text, g.Style)
}
