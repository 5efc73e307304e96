package scene

// Component is a unit of behavior owned by exactly one Entity.
// Implementations embed BaseComponent and provide Update and FixedUpdate.
type Component interface {
	Update()
	FixedUpdate(step float64)

	MarkForRemoval()
	IsMarkedForRemoval() bool
	Owner() *Entity

	base() *BaseComponent
}

// LateUpdater is implemented by components that need a pass after every
// entity has run Update.
type LateUpdater interface {
	LateUpdate()
}

// Renderer is implemented by components that draw something. Render must not
// change scene structure.
type Renderer interface {
	Render()
}

// Destroyer is implemented by components that release resources when they are
// swept or when their owner is destructed.
type Destroyer interface {
	OnDestroy()
}

// noCopy may be embedded into structs which must not be copied after first use.
// See https://golang.org/issues/8005#issuecomment-190753527
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// BaseComponent holds the bookkeeping shared by all components. It is bound
// to its owner when the component is registered with AddComponent and the
// binding never changes afterwards.
type BaseComponent struct {
	_     noCopy
	owner *Entity
	dead  bool
}

func (b *BaseComponent) base() *BaseComponent {
	return b
}

// Owner returns the entity that owns the component.
func (b *BaseComponent) Owner() *Entity {
	return b.owner
}

// MarkForRemoval flags the component for removal at the owner's next sweep.
func (b *BaseComponent) MarkForRemoval() {
	b.dead = true
}

// IsMarkedForRemoval reports whether the component is waiting to be swept.
func (b *BaseComponent) IsMarkedForRemoval() bool {
	return b.dead
}

func (b *BaseComponent) bind(owner *Entity) {
	if b.owner != nil {
		panic("scene: component is already bound to entity " + b.owner.id.String())
	}
	b.owner = owner
}

func destroyComponent(c Component) {
	c.MarkForRemoval()
	if d, ok := c.(Destroyer); ok {
		d.OnDestroy()
	}
}
