// Package ebiten draws the debug UI on top of a scene hosted by Ebiten.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/scenery/scene/debugui"
	sceneebiten "github.com/plus3/scenery/scene/render/ebiten"
)

// Overlay wraps a scene game so that ImGui components rendered by the scene
// are drawn over the game's own output.
type Overlay struct {
	*sceneebiten.Game
	Backend *ebitenbackend.EbitenBackend

	// Input is refreshed after every frame.
	Input debugui.InputState
}

func NewOverlay(game *sceneebiten.Game, backend *ebitenbackend.EbitenBackend) *Overlay {
	return &Overlay{Game: game, Backend: backend}
}

func (o *Overlay) Draw(screen *ebiten.Image) {
	o.Backend.BeginFrame()
	o.Game.Draw(screen)
	o.Backend.EndFrame()
	o.Input = debugui.CaptureInput()

	o.Backend.Draw(screen)
}

func (o *Overlay) Layout(outsideWidth, outsideHeight int) (int, int) {
	o.Backend.Layout(outsideWidth, outsideHeight)
	return o.Game.Layout(outsideWidth, outsideHeight)
}
