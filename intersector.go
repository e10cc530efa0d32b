package arbor

import (
	"go.uber.org/zap"
)

// EntityStore is the interface for optional ECS integration.
// When set on an Intersector, every dispatched callback is forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries interaction data for the ECS bridge.
type InteractionEvent struct {
	Type   EventType
	Entity WorldEntity
	Name   string
	X, Y   float64
	NDC    Vec2
}

// registration is one registered entity with its capabilities resolved.
type registration struct {
	entity  WorldEntity
	in      interaction
	hovered bool
	live    bool
}

// Intersector routes raw pointer events to the entities whose world objects
// the pointer ray hits. It owns the pointer state, the ordered registration
// list and the hover set. One Intersector exists per World.
type Intersector struct {
	camera        *Camera
	width, height float64
	raycaster     Raycaster
	regs          []*registration
	store         EntityStore
	log           *zap.Logger
}

// NewIntersector creates an Intersector casting rays from cam. A nil logger
// disables logging.
func NewIntersector(cam *Camera, log *zap.Logger) *Intersector {
	if log == nil {
		log = zap.NewNop()
	}
	return &Intersector{camera: cam, log: log}
}

// SetViewport sets the viewport size in pixels used for NDC conversion.
func (i *Intersector) SetViewport(width, height float64) {
	i.width = width
	i.height = height
}

// Viewport returns the viewport size in pixels.
func (i *Intersector) Viewport() (width, height float64) {
	return i.width, i.height
}

// SetEntityStore sets the optional ECS bridge.
func (i *Intersector) SetEntityStore(store EntityStore) {
	i.store = store
}

// Attach registers e for pointer routing. No-op if e is nil, already
// registered, or implements none of the handler capabilities.
func (i *Intersector) Attach(e WorldEntity) {
	if e == nil || i.find(e) >= 0 {
		return
	}
	in := classify(e)
	if !in.interactive() {
		return
	}
	i.regs = append(i.regs, &registration{entity: e, in: in, live: true})
}

// Detach unregisters e. Hover membership is dropped without a callback.
// No-op if e is not registered.
func (i *Intersector) Detach(e WorldEntity) {
	idx := i.find(e)
	if idx < 0 {
		return
	}
	i.regs[idx].live = false
	copy(i.regs[idx:], i.regs[idx+1:])
	i.regs[len(i.regs)-1] = nil
	i.regs = i.regs[:len(i.regs)-1]
}

// IsRegistered reports whether e is registered.
func (i *Intersector) IsRegistered(e WorldEntity) bool {
	return i.find(e) >= 0
}

// IsHovered reports whether e is in the hover set.
func (i *Intersector) IsHovered(e WorldEntity) bool {
	idx := i.find(e)
	return idx >= 0 && i.regs[idx].hovered
}

// Registered returns the registered entities in registration order.
func (i *Intersector) Registered() []WorldEntity {
	out := make([]WorldEntity, len(i.regs))
	for k, r := range i.regs {
		out[k] = r.entity
	}
	return out
}

func (i *Intersector) find(e WorldEntity) int {
	if e == nil {
		return -1
	}
	for k, r := range i.regs {
		if r.entity == e {
			return k
		}
	}
	return -1
}

// --- Event handling ---

// newEvent builds a pointer event and aims the raycaster. aimed is false when
// the viewport is empty, in which case nothing can be hit.
func (i *Intersector) newEvent(t EventType, x, y float64) (ev *PointerEvent, aimed bool) {
	ev = &PointerEvent{Type: t, X: x, Y: y}
	ev.PreventDefault()
	ndc, ok := ScreenToNDC(x, y, i.width, i.height)
	ev.NDC = ndc
	if !ok || i.camera == nil {
		return ev, false
	}
	i.raycaster.SetFromCamera(ndc, i.camera)
	return ev, true
}

// snapshot copies the registration list so handlers may attach or detach
// entities while an event is being dispatched.
func (i *Intersector) snapshot() []*registration {
	regs := make([]*registration, len(i.regs))
	copy(regs, i.regs)
	return regs
}

func (i *Intersector) hits(r *registration, aimed bool) bool {
	if !aimed {
		return false
	}
	return i.raycaster.Intersects(r.entity.WorldObject())
}

// PointerMove processes one raw pointer-move event at viewport pixel (x, y).
// Hover callbacks are edge-triggered: an entity receives HoverEnter when its
// ray test turns positive while its root is visible, and HoverOut when the
// test turns negative. A positive test on a hidden root changes nothing.
func (i *Intersector) PointerMove(x, y float64) *PointerEvent {
	ev, aimed := i.newEvent(EventPointerMove, x, y)
	for _, r := range i.snapshot() {
		if !r.live {
			continue
		}
		hit := i.hits(r, aimed)
		switch {
		case hit && !r.hovered:
			root := r.entity.WorldObject()
			if root == nil || !root.Visible {
				continue
			}
			r.hovered = true
			i.dispatch(EventHoverEnter, r, r.in.hoverEnter, ev)
		case !hit && r.hovered:
			r.hovered = false
			i.dispatch(EventHoverOut, r, r.in.hoverOut, ev)
		}
	}
	return ev
}

// PointerDown processes one raw pointer-down event at viewport pixel (x, y).
// Every registered entity is tested in registration order: a hit fires Click,
// a miss fires ClickOut when implemented. Overlapping entities all receive
// Click; there is no nearest-hit resolution.
func (i *Intersector) PointerDown(x, y float64) *PointerEvent {
	ev, aimed := i.newEvent(EventPointerDown, x, y)
	for _, r := range i.snapshot() {
		if !r.live {
			continue
		}
		hit := i.hits(r, aimed)
		i.log.Debug("pointer down",
			zap.String("entity", entityName(r.entity)),
			zap.Bool("hit", hit))
		if hit {
			i.dispatch(EventClick, r, r.in.click, ev)
		} else {
			i.dispatch(EventClickOut, r, r.in.clickOut, ev)
		}
	}
	return ev
}

// dispatch invokes fn (if present) and forwards the event to the ECS bridge.
func (i *Intersector) dispatch(t EventType, r *registration, fn func(*PointerEvent), ev *PointerEvent) {
	if fn == nil {
		return
	}
	fn(ev)
	if i.store != nil {
		i.store.EmitEvent(InteractionEvent{
			Type:   t,
			Entity: r.entity,
			Name:   entityName(r.entity),
			X:      ev.X,
			Y:      ev.Y,
			NDC:    ev.NDC,
		})
	}
}
