package scene_test

import (
	"testing"

	"github.com/plus3/scenery/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager(t *testing.T) {
	t.Run("create and look up scenes", func(t *testing.T) {
		m := scene.NewManager()
		level := m.CreateScene("Level1")
		menu := m.CreateScene("Menu")

		assert.Equal(t, "Level1", level.Name())
		assert.Same(t, level, m.CreateScene("Level1"))
		assert.Same(t, menu, m.Scene("Menu"))
		assert.Nil(t, m.Scene("Missing"))
		assert.Equal(t, []*scene.Scene{level, menu}, m.Scenes())
		assert.Same(t, m.Time(), level.Time())
	})

	t.Run("remove scene destroys its entities", func(t *testing.T) {
		m := scene.NewManager()
		s := m.CreateScene("Level1")
		e := scene.NewEntity()
		require.True(t, s.Add(e))

		assert.True(t, m.RemoveScene("Level1"))
		assert.False(t, m.RemoveScene("Level1"))
		assert.Nil(t, m.Scene("Level1"))
		assert.True(t, e.IsDestroyed())
		assert.Equal(t, 0, s.Len())
	})

	t.Run("passes fan out to every scene in order", func(t *testing.T) {
		var log []string
		m := scene.NewManager()
		first := m.CreateScene("first")
		second := m.CreateScene("second")
		a, _ := probedEntity("a", &log)
		b, _ := probedEntity("b", &log)
		second.Add(b)
		first.Add(a)

		m.FixedUpdate(0.1)
		m.Update()
		m.LateUpdate()
		m.Render()

		assert.Equal(t, []string{
			"a:fixed", "b:fixed",
			"a:update", "b:update",
			"a:late", "b:late",
			"a:render", "b:render",
		}, log)
	})
}

func TestSceneComponentScenario(t *testing.T) {
	s := scene.NewManager().CreateScene("Level1")
	a := scene.NewEntity()
	require.True(t, s.Add(a))

	first := scene.AddComponent(a, newHealth(100))
	second := scene.AddComponent(a, newHealth(50))

	assert.NotNil(t, first)
	assert.Nil(t, second)
	n := 0
	for _, c := range a.Components() {
		if _, ok := c.(*Health); ok {
			n++
		}
	}
	assert.Equal(t, 1, n)
}

func TestSceneAdd(t *testing.T) {
	m := scene.NewManager()
	s := m.CreateScene("Level1")
	other := m.CreateScene("Level2")
	e := scene.NewEntity()

	assert.True(t, s.Add(e))
	assert.Same(t, s, e.Scene())
	assert.False(t, s.Add(e), "duplicate")
	assert.False(t, other.Add(e), "owned by another scene")
	assert.False(t, s.Add(nil))
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 0, other.Len())
	assert.Same(t, e, s.FindByID(e.Id()))
	assert.Nil(t, other.FindByID(e.Id()))

	dead := scene.NewEntity()
	dead.Destroy()
	assert.False(t, s.Add(dead))
}

func TestSceneUpdateOrder(t *testing.T) {
	var log []string
	s := scene.NewManager().CreateScene("Level1")
	for _, name := range []string{"a", "b", "c"} {
		e, _ := probedEntity(name, &log)
		s.Add(e)
	}

	s.Update()
	s.FixedUpdate(0.02)
	s.LateUpdate()
	s.Render()

	assert.Equal(t, []string{
		"a:update", "b:update", "c:update",
		"a:fixed", "b:fixed", "c:fixed",
		"a:late", "b:late", "c:late",
		"a:render", "b:render", "c:render",
	}, log)
}

func TestSceneDestroyMidFrame(t *testing.T) {
	t.Run("already visited entity is swept after the pass", func(t *testing.T) {
		var log []string
		s := scene.NewManager().CreateScene("Level1")
		a, _ := probedEntity("a", &log)
		b, probeB := probedEntity("b", &log)
		c, _ := probedEntity("c", &log)
		s.Add(a)
		s.Add(b)
		s.Add(c)

		probeB.OnUpdate = func() {
			a.Destroy()
			assert.False(t, a.IsDestroyed(), "destruction must wait for the sweep")
			assert.Equal(t, 3, s.Len())
		}

		s.Update()
		probeB.OnUpdate = nil

		assert.Equal(t, []*scene.Entity{b, c}, s.ObjectsInScene())
		assert.True(t, a.IsDestroyed())
		assert.Nil(t, a.Scene())
		assert.Nil(t, s.FindByID(a.Id()))

		log = log[:0]
		s.LateUpdate()
		s.Render()
		assert.Equal(t, []string{"b:late", "c:late", "b:render", "c:render"}, log)
	})

	t.Run("entity destroyed before its turn is not updated", func(t *testing.T) {
		var log []string
		s := scene.NewManager().CreateScene("Level1")
		a, probeA := probedEntity("a", &log)
		b, _ := probedEntity("b", &log)
		s.Add(a)
		s.Add(b)
		probeA.OnUpdate = b.Destroy

		s.Update()

		assert.Equal(t, []string{"a:update", "b:destroy"}, log)
		assert.Equal(t, []*scene.Entity{a}, s.ObjectsInScene())
	})

	t.Run("destroying a parent orphans its children", func(t *testing.T) {
		s := scene.NewManager().CreateScene("Level1")
		parent := scene.NewEntity()
		child := scene.NewEntity()
		parent.Transform().SetLocalPosition(scene.Vec3{X: 4})
		child.Transform().SetLocalPosition(scene.Vec3{X: 1})
		require.True(t, child.SetParent(parent, false))
		s.Add(parent)
		s.Add(child)

		parent.Destroy()
		assert.Same(t, parent, child.Parent())

		s.Update()

		assert.Nil(t, child.Parent())
		assert.Empty(t, parent.Children())
		assert.False(t, child.IsMarkedForDestroy())
		assert.Equal(t, []*scene.Entity{child}, s.ObjectsInScene())
		assert.Equal(t, scene.Vec3{X: 5}, child.Transform().WorldPosition())
	})

	t.Run("render never sweeps", func(t *testing.T) {
		var log []string
		s := scene.NewManager().CreateScene("Level1")
		a, probeA := probedEntity("a", &log)
		s.Add(a)
		probeA.OnRender = a.Destroy

		s.Render()
		assert.Equal(t, 1, s.Len())
		assert.False(t, a.IsDestroyed())

		s.Update()
		assert.Equal(t, 0, s.Len())
		assert.True(t, a.IsDestroyed())
		assert.Equal(t, []string{"a:render", "a:destroy"}, log)
	})
}

func TestSceneAddDuringPass(t *testing.T) {
	var log []string
	s := scene.NewManager().CreateScene("Level1")
	spawner, probe := probedEntity("spawner", &log)
	s.Add(spawner)

	spawned, _ := probedEntity("spawned", &log)
	probe.OnUpdate = func() {
		assert.True(t, s.Add(spawned))
		assert.False(t, s.Add(spawned))
		assert.Equal(t, 1, s.Len())
		assert.Equal(t, 1, s.Commands().Len())
	}

	s.Update()
	probe.OnUpdate = nil

	assert.Equal(t, []string{"spawner:update"}, log)
	assert.Equal(t, []*scene.Entity{spawner, spawned}, s.ObjectsInScene())
	assert.Same(t, spawned, s.FindByID(spawned.Id()))

	s.Update()
	assert.Equal(t, []string{"spawner:update", "spawner:update", "spawned:update"}, log)
}

func TestSceneAddThenDestroyDuringPass(t *testing.T) {
	var log []string
	s := scene.NewManager().CreateScene("Level1")
	spawner, probe := probedEntity("spawner", &log)
	s.Add(spawner)

	spawned, _ := probedEntity("spawned", &log)
	probe.OnUpdate = func() {
		s.Add(spawned)
		spawned.Destroy()
	}

	s.Update()

	assert.Equal(t, 1, s.Len())
	assert.True(t, spawned.IsDestroyed())
	assert.Equal(t, []string{"spawner:update", "spawned:destroy"}, log)
}

func TestSceneRemove(t *testing.T) {
	t.Run("outside a pass", func(t *testing.T) {
		var log []string
		s := scene.NewManager().CreateScene("Level1")
		a, _ := probedEntity("a", &log)
		b, _ := probedEntity("b", &log)
		s.Add(a)
		s.Add(b)

		assert.True(t, s.Remove(a))
		assert.False(t, s.Remove(a))
		assert.False(t, s.Remove(nil))

		assert.True(t, a.IsDestroyed())
		assert.Equal(t, []*scene.Entity{b}, s.ObjectsInScene())
		assert.Equal(t, []string{"a:destroy"}, log)
	})

	t.Run("during a pass", func(t *testing.T) {
		var log []string
		s := scene.NewManager().CreateScene("Level1")
		a, probeA := probedEntity("a", &log)
		b, _ := probedEntity("b", &log)
		s.Add(a)
		s.Add(b)
		probeA.OnUpdate = func() {
			assert.True(t, s.Remove(a))
			assert.False(t, a.IsDestroyed())
		}

		s.Update()

		assert.True(t, a.IsDestroyed())
		assert.Equal(t, []*scene.Entity{b}, s.ObjectsInScene())
	})

	t.Run("entity owned elsewhere", func(t *testing.T) {
		m := scene.NewManager()
		s := m.CreateScene("Level1")
		other := m.CreateScene("Level2")
		e := scene.NewEntity()
		other.Add(e)

		assert.False(t, s.Remove(e))
		assert.False(t, e.IsDestroyed())
	})
}

func TestSceneRemoveAll(t *testing.T) {
	s := scene.NewManager().CreateScene("Level1")
	held := scene.NewEntity()
	h := scene.AddComponent(held, newHealth(3))
	s.Add(held)
	s.Add(scene.NewEntity())

	s.RemoveAll()

	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.ObjectsInScene())
	assert.True(t, held.IsDestroyed())
	assert.True(t, h.IsMarkedForRemoval())
	assert.False(t, scene.HasComponent[*Health](held))

	reused := scene.NewEntity()
	assert.True(t, s.Add(reused))
	assert.Equal(t, 1, s.Len())
}

func TestSceneRemoveAllDuringPass(t *testing.T) {
	var log []string
	s := scene.NewManager().CreateScene("Level1")
	a, probeA := probedEntity("a", &log)
	b, _ := probedEntity("b", &log)
	s.Add(a)
	s.Add(b)
	probeA.OnUpdate = s.RemoveAll

	s.Update()

	assert.Equal(t, []string{"a:update", "a:destroy", "b:destroy"}, log)
	assert.Equal(t, 0, s.Len())
}

func TestSceneSnapshots(t *testing.T) {
	s := scene.NewManager().CreateScene("Level1")
	a := scene.NewEntity()
	s.Add(a)

	snapshot := s.ObjectsInScene()
	snapshot[0] = nil
	s.Add(scene.NewEntity())

	assert.Len(t, snapshot, 1)
	assert.Same(t, a, s.ObjectsInScene()[0])
}

func TestSceneObjectsWithTag(t *testing.T) {
	s := scene.NewManager().CreateScene("Level1")
	tags := []string{"", "enemy", "player", "enemy", ""}
	var enemies []*scene.Entity
	for _, tag := range tags {
		e := scene.NewEntity()
		e.SetTag(tag)
		s.Add(e)
		if tag == "enemy" {
			enemies = append(enemies, e)
		}
	}

	assert.Equal(t, enemies, s.ObjectsWithTag("enemy"))
	assert.Len(t, s.ObjectsWithTag("player"), 1)
	assert.Len(t, s.ObjectsWithTag(""), 2)
	assert.Empty(t, s.ObjectsWithTag("boss"))
}

func TestSceneRetag(t *testing.T) {
	t.Run("owned entity moves between tags in scene order", func(t *testing.T) {
		s := scene.NewManager().CreateScene("Level1")
		var all []*scene.Entity
		for range 3 {
			e := scene.NewEntity()
			e.SetTag("enemy")
			s.Add(e)
			all = append(all, e)
		}

		all[0].SetTag("boss")
		assert.Equal(t, []*scene.Entity{all[1], all[2]}, s.ObjectsWithTag("enemy"))
		assert.Equal(t, []*scene.Entity{all[0]}, s.ObjectsWithTag("boss"))

		all[0].SetTag("enemy")
		assert.Equal(t, all, s.ObjectsWithTag("enemy"))
		assert.Empty(t, s.ObjectsWithTag("boss"))
	})

	t.Run("snapshot is unaffected by later retags", func(t *testing.T) {
		s := scene.NewManager().CreateScene("Level1")
		e := scene.NewEntity()
		e.SetTag("enemy")
		s.Add(e)

		snapshot := s.ObjectsWithTag("enemy")
		e.SetTag("ally")

		assert.Equal(t, []*scene.Entity{e}, snapshot)
		assert.Empty(t, s.ObjectsWithTag("enemy"))
	})

	t.Run("queued add is indexed with its latest tag", func(t *testing.T) {
		var log []string
		s := scene.NewManager().CreateScene("Level1")
		spawner, probe := probedEntity("spawner", &log)
		s.Add(spawner)

		spawned := scene.NewEntity()
		spawned.SetTag("pickup")
		probe.OnUpdate = func() {
			s.Add(spawned)
			spawned.SetTag("coin")
			assert.Empty(t, s.ObjectsWithTag("coin"))
		}

		s.Update()

		assert.Empty(t, s.ObjectsWithTag("pickup"))
		assert.Equal(t, []*scene.Entity{spawned}, s.ObjectsWithTag("coin"))
	})

	t.Run("removed and swept entities leave the index", func(t *testing.T) {
		s := scene.NewManager().CreateScene("Level1")
		a := scene.NewEntity()
		b := scene.NewEntity()
		a.SetTag("enemy")
		b.SetTag("enemy")
		s.Add(a)
		s.Add(b)

		s.Remove(a)
		assert.Equal(t, []*scene.Entity{b}, s.ObjectsWithTag("enemy"))

		b.Destroy()
		s.Update()
		assert.Empty(t, s.ObjectsWithTag("enemy"))

		b.SetTag("ghost")
		assert.Empty(t, s.ObjectsWithTag("ghost"))
	})
}

func TestScenePanicDuringPass(t *testing.T) {
	var log []string
	s := scene.NewManager().CreateScene("Level1")
	a, probe := probedEntity("a", &log)
	s.Add(a)
	probe.OnUpdate = func() {
		a.Destroy()
		panic("component failure")
	}

	assert.Panics(t, s.Update)
	probe.OnUpdate = nil

	late := scene.NewEntity()
	assert.True(t, s.Add(late))
	assert.Equal(t, 0, s.Commands().Len(), "adds after a recovered panic are not queued")
	assert.Same(t, late, s.FindByID(late.Id()))

	s.Update()
	assert.True(t, a.IsDestroyed())
	assert.Equal(t, []*scene.Entity{late}, s.ObjectsInScene())
}

func TestSceneDefer(t *testing.T) {
	var log []string
	s := scene.NewManager().CreateScene("Level1")
	a, probe := probedEntity("a", &log)
	s.Add(a)
	probe.OnUpdate = func() {
		s.Defer(func() { log = append(log, "deferred") })
	}

	s.Update()

	assert.Equal(t, []string{"a:update", "deferred"}, log)
	assert.Equal(t, 0, s.Commands().Len())
}
