package ebiten_test

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/scenery/scene"
	"github.com/plus3/scenery/scene/debugui"
	debugui_ebiten "github.com/plus3/scenery/scene/debugui/ebiten"
	sceneebiten "github.com/plus3/scenery/scene/render/ebiten"
)

func Example() {
	// Create Ebiten window and ImGui backend
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow("Scene Debug UI", 1280, 720)
	imgui.CurrentIO().SetIniFilename("") // Disable imgui.ini

	manager := scene.NewManager()
	level := manager.CreateScene("Level1")
	loop := scene.NewLoop(manager)

	// Hierarchy, inspector and loop stats windows for the level
	debugui.Spawn(level, loop)

	// Custom windows are plain components too
	hello := scene.NewEntity()
	scene.AddComponent(hello, debugui.NewImguiItem(func() {
		imgui.Begin("Debug Window")
		imgui.Text("Hello from the scene!")
		imgui.End()
	}))
	level.Add(hello)

	game := sceneebiten.NewGame(loop, sceneebiten.NewCanvas(), 1280, 720)
	overlay := debugui_ebiten.NewOverlay(game, backend)

	if err := ebiten.RunGame(overlay); err != nil {
		panic(err)
	}
}
