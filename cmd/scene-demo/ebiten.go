package main

import (
	"image/color"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/scenery/internal/config"
	"github.com/plus3/scenery/scene"
	"github.com/plus3/scenery/scene/debugui"
	debugui_ebiten "github.com/plus3/scenery/scene/debugui/ebiten"
	sceneebiten "github.com/plus3/scenery/scene/render/ebiten"
)

func bodyImage(b Body) *ebiten.Image {
	size := 6
	if b.Radius == 0 {
		size = 16
	}
	img := ebiten.NewImage(size, size)
	img.Fill(color.RGBA{
		R: uint8(b.Color >> 16),
		G: uint8(b.Color >> 8),
		B: uint8(b.Color),
		A: 0xff,
	})
	return img
}

func ebitenDecorator(canvas *sceneebiten.Canvas) Decorate {
	return func(e *scene.Entity, b Body) {
		scene.AddComponent(e, sceneebiten.NewSprite(canvas, bodyImage(b)))
	}
}

func runEbiten(cfg config.Config, manager *scene.Manager, loop *scene.Loop) error {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow("scene demo", cfg.Width, cfg.Height)
	imgui.CurrentIO().SetIniFilename("")

	canvas := sceneebiten.NewCanvas()
	canvas.OriginX = float64(cfg.Width) / 2
	canvas.OriginY = float64(cfg.Height) / 2
	canvas.Scale = 15

	level := manager.CreateScene("system")
	Spawn(level, solarSystem, nil, ebitenDecorator(canvas))
	debugui.Spawn(level, loop)

	game := sceneebiten.NewGame(loop, canvas, cfg.Width, cfg.Height)
	overlay := debugui_ebiten.NewOverlay(game, backend)
	game.BeforeUpdate = func() error {
		if !overlay.Input.WantCaptureKeyboard && ebiten.IsKeyPressed(ebiten.KeyEscape) {
			return ebiten.Termination
		}
		return nil
	}

	return ebiten.RunGame(overlay)
}
