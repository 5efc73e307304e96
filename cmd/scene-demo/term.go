package main

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/scenery/internal/config"
	"github.com/plus3/scenery/scene"
	"github.com/plus3/scenery/scene/render/term"
	"go.uber.org/zap"
)

func termDecorator(canvas *term.Canvas) Decorate {
	return func(e *scene.Entity, b Body) {
		style := tcell.StyleDefault.Foreground(tcell.NewHexColor(int32(b.Color)))
		scene.AddComponent(e, term.NewGlyph(canvas, b.Glyph, style))
	}
}

// quitKey reports whether ev asks the demo to exit.
func quitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	}
	return false
}

func runTerm(ctx context.Context, cfg config.Config, logger *zap.Logger, manager *scene.Manager, loop *scene.Loop) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	canvas := term.NewCanvas(screen)
	canvas.Center()

	level := manager.CreateScene("system")
	Spawn(level, solarSystem, nil, termDecorator(canvas))

	hud := scene.NewEntity()
	scene.AddComponent(hud, term.NewGlyph(canvas, "", tcell.StyleDefault.Dim(true)))
	level.Add(hud)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		for {
			switch ev := screen.PollEvent().(type) {
			case nil:
				return
			case *tcell.EventResize:
				screen.Sync()
				canvas.Center()
			case *tcell.EventKey:
				if quitKey(ev) {
					logger.Info("quit requested")
					cancel()
					return
				}
			}
		}
	}()

	run(ctx, cfg, loop, func() {
		hudGlyph, _ := scene.GetComponent[*term.Glyph](hud)
		hudGlyph.Text = fmt.Sprintf("frame %d  entities %d  [q] quit", manager.Time().Frame, level.Len())
		hud.Transform().SetWorldPosition(scene.Vec3{X: float64(-canvas.OriginX), Y: float64(-canvas.OriginY)})
		canvas.Frame(loop.Render)
	})
	return nil
}
