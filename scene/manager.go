package scene

import (
	"slices"

	"go.uber.org/zap"
)

// Manager is the scene registry. It is the only way to construct a Scene and
// fans frame passes out to every scene it owns, in creation order.
type Manager struct {
	scenes []*Scene
	time   FrameTime
}

func NewManager() *Manager {
	return &Manager{}
}

// CreateScene creates and registers a scene. If a scene with the same name
// already exists it is returned instead.
func (m *Manager) CreateScene(name string) *Scene {
	if s := m.Scene(name); s != nil {
		logger.Debug("scene already exists", zap.String("scene", name))
		return s
	}
	s := newScene(name, &m.time)
	m.scenes = append(m.scenes, s)
	logger.Info("scene created", zap.String("scene", name))
	return s
}

// Scene returns the scene with the given name, or nil.
func (m *Manager) Scene(name string) *Scene {
	for _, s := range m.scenes {
		if s.name == name {
			return s
		}
	}
	return nil
}

// Scenes returns a snapshot of the registered scenes.
func (m *Manager) Scenes() []*Scene {
	return slices.Clone(m.scenes)
}

// RemoveScene unregisters the named scene and destroys every entity it owns.
func (m *Manager) RemoveScene(name string) bool {
	i := slices.IndexFunc(m.scenes, func(s *Scene) bool { return s.name == name })
	if i < 0 {
		return false
	}
	s := m.scenes[i]
	m.scenes = slices.Delete(m.scenes, i, i+1)
	n := s.Len()
	s.RemoveAll()
	logger.Info("scene removed", zap.String("scene", name), zap.Int("entities", n))
	return true
}

// Time returns the frame timing shared by all scenes.
func (m *Manager) Time() *FrameTime {
	return &m.time
}

func (m *Manager) FixedUpdate(step float64) {
	for _, s := range m.Scenes() {
		s.FixedUpdate(step)
	}
}

func (m *Manager) Update() {
	for _, s := range m.Scenes() {
		s.Update()
	}
}

func (m *Manager) LateUpdate() {
	for _, s := range m.Scenes() {
		s.LateUpdate()
	}
}

func (m *Manager) Render() {
	for _, s := range m.scenes {
		s.Render()
	}
}
