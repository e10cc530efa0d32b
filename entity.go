package arbor

// WorldEntity is anything with a spatial root in the scene. The root is used
// for hit-testing and gizmo attachment. Implementations must be comparable
// (pointer types in practice) because registration is by identity.
type WorldEntity interface {
	WorldObject() *Node
}

// Clickable entities receive Click when a pointer press ray hits their root.
// World registers an entity with the Intersector only when it is Clickable.
type Clickable interface {
	WorldEntity
	Click(ev *PointerEvent)
}

// ClickOutHandler entities receive ClickOut when a pointer press misses them.
type ClickOutHandler interface {
	ClickOut(ev *PointerEvent)
}

// HoverEnterHandler entities receive HoverEnter when the pointer ray starts
// hitting their visible root.
type HoverEnterHandler interface {
	HoverEnter(ev *PointerEvent)
}

// HoverOutHandler entities receive HoverOut when the pointer ray stops
// hitting their root.
type HoverOutHandler interface {
	HoverOut(ev *PointerEvent)
}

// Loadable entities load their world object asynchronously. World refuses to
// add them until LoadState reports LoadReady.
type Loadable interface {
	LoadState() LoadState
}

// Named entities report a name for logs and interaction events.
type Named interface {
	Name() string
}

// Updater entities are advanced once per frame by World.Update.
type Updater interface {
	Update(dt float32)
}

// Manipulator is the part of World that entities call back into.
type Manipulator interface {
	ToggleTransformControl(e WorldEntity)
	RemoveTransformControl(e WorldEntity)
	Cursor() *Cursor
}

// PointerEvent carries the context of one raw pointer event.
type PointerEvent struct {
	Type EventType
	// X and Y are viewport pixel coordinates.
	X, Y float64
	// NDC is the normalized device coordinate derived from X, Y and the viewport.
	NDC Vec2

	defaultPrevented bool
}

// PreventDefault marks the event as consumed so the host skips its default action.
func (e *PointerEvent) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *PointerEvent) DefaultPrevented() bool {
	return e.defaultPrevented
}

// interaction is the capability set of an entity, resolved once at registration.
type interaction struct {
	click      func(*PointerEvent)
	clickOut   func(*PointerEvent)
	hoverEnter func(*PointerEvent)
	hoverOut   func(*PointerEvent)
}

func (in interaction) interactive() bool {
	return in.click != nil || in.clickOut != nil || in.hoverEnter != nil || in.hoverOut != nil
}

// classify queries which handler capabilities e implements.
func classify(e WorldEntity) interaction {
	var in interaction
	if c, ok := e.(Clickable); ok {
		in.click = c.Click
	}
	if c, ok := e.(ClickOutHandler); ok {
		in.clickOut = c.ClickOut
	}
	if h, ok := e.(HoverEnterHandler); ok {
		in.hoverEnter = h.HoverEnter
	}
	if h, ok := e.(HoverOutHandler); ok {
		in.hoverOut = h.HoverOut
	}
	return in
}

// IsInteractive reports whether e has the click-handler capability.
func IsInteractive(e WorldEntity) bool {
	_, ok := e.(Clickable)
	return ok
}

// entityName returns a human-readable name for logs.
func entityName(e WorldEntity) string {
	if n, ok := e.(Named); ok {
		return n.Name()
	}
	if root := e.WorldObject(); root != nil {
		return root.Name
	}
	return ""
}

// Static wraps a node as non-interactive scenery.
type Static struct {
	node *Node
}

// NewStatic returns a WorldEntity for node with no interaction capabilities.
func NewStatic(node *Node) *Static {
	return &Static{node: node}
}

// WorldObject returns the wrapped node.
func (s *Static) WorldObject() *Node {
	return s.node
}
