package scene

// Commands buffers structural changes requested while a scene is iterating
// its entities. The buffer is flushed by the scene's end-of-pass sweep.
type Commands struct {
	adds   []*Entity
	defers []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Defer queues fn to run at the end of the current or next pass.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Len returns the number of queued operations.
func (c *Commands) Len() int {
	return len(c.adds) + len(c.defers)
}

func (c *Commands) add(e *Entity) {
	c.adds = append(c.adds, e)
}

// flush applies queued adds to s, then runs deferred functions. The buffer is
// reset before anything runs so deferred functions may queue new work.
func (c *Commands) flush(s *Scene) {
	adds, defers := c.adds, c.defers
	c.adds, c.defers = nil, nil

	for _, e := range adds {
		if e.markedForDestroy {
			e.destruct()
			continue
		}
		s.attach(e)
	}

	for _, fn := range defers {
		fn()
	}
}
