package arbor

import (
	"github.com/google/uuid"
)

// Model is a placeable entity whose world object is resolved from a model
// identifier by an AssetLoader. Until the load completes the model is
// Pending and World.Add rejects it.
//
// By default a click toggles the transform gizmo on the model and a click
// elsewhere releases it. OnClick and OnClickOut replace that behavior.
type Model struct {
	// Disabled short-circuits every handler.
	Disabled bool
	// HoverTint multiplies the model's colors while hovered.
	HoverTint Color

	OnClick    func(m *Model, ev *PointerEvent)
	OnClickOut func(m *Model, ev *PointerEvent)

	id      uuid.UUID
	modelID string
	world   Manipulator

	state  LoadState
	err    error
	object *Node

	position Vec3
	rotation Vec3
	scale    float64
}

// NewModel creates a pending model for modelID. world receives gizmo and
// cursor requests; it may be nil for a model that never joins a World.
func NewModel(world Manipulator, modelID string) *Model {
	return &Model{
		HoverTint: Color{R: 1.2, G: 1.2, B: 1.2, A: 1},
		id:        uuid.New(),
		modelID:   modelID,
		world:     world,
		scale:     1,
	}
}

// InstanceID returns the unique ID of this model instance.
func (m *Model) InstanceID() uuid.UUID { return m.id }

// ModelID returns the asset identifier.
func (m *Model) ModelID() string { return m.modelID }

// Name returns the model identifier and a short instance suffix.
func (m *Model) Name() string {
	if m == nil {
		return "<nil model>"
	}
	return m.modelID + "#" + m.id.String()[:8]
}

// LoadState returns the lifecycle state. A nil model is always pending.
func (m *Model) LoadState() LoadState {
	if m == nil {
		return LoadPending
	}
	return m.state
}

// Err returns the load error of a Failed model.
func (m *Model) Err() error { return m.err }

// WorldObject returns the loaded subtree, or nil while pending or failed.
func (m *Model) WorldObject() *Node {
	if m == nil {
		return nil
	}
	return m.object
}

// SetPosition sets the model position. It is remembered and applied when
// the object loads.
func (m *Model) SetPosition(p Vec3) {
	m.position = p
	if m.object != nil {
		m.object.Position = p
	}
}

// Position returns the model position.
func (m *Model) Position() Vec3 {
	if m.object != nil {
		return m.object.Position
	}
	return m.position
}

// SetScale sets a uniform scale, remembered across loads.
func (m *Model) SetScale(s float64) {
	m.scale = s
	if m.object != nil {
		m.object.SetScale(s)
	}
}

// SetRotation sets the Euler rotation in radians, remembered across loads.
func (m *Model) SetRotation(r Vec3) {
	m.rotation = r
	if m.object != nil {
		m.object.Rotation = r
	}
}

// resolve completes a load. Called on the loop goroutine.
func (m *Model) resolve(obj *Node, err error) {
	if err != nil {
		m.state = LoadFailed
		m.err = err
		return
	}
	obj.Name = m.modelID
	obj.Position = m.position
	obj.Rotation = m.rotation
	obj.SetScale(m.scale)
	m.object = obj
	m.state = LoadReady
	m.err = nil
}

// Clone returns an independent copy with a new instance ID. The world
// object subtree is deep-copied, so the copy shares no geometry or material
// with m. A model without an object clones to a pending model.
func (m *Model) Clone() *Model {
	c := NewModel(m.world, m.modelID)
	c.Disabled = m.Disabled
	c.HoverTint = m.HoverTint
	c.OnClick = m.OnClick
	c.OnClickOut = m.OnClickOut
	c.position = m.Position()
	c.rotation = m.rotation
	c.scale = m.scale
	if m.object != nil {
		c.object = m.object.Clone()
		c.rotation = m.object.Rotation
		c.state = LoadReady
		setTint(c.object, ColorWhite)
	}
	return c
}

// --- Interaction ---

// Click toggles the transform gizmo, or calls OnClick when set.
func (m *Model) Click(ev *PointerEvent) {
	if m.Disabled {
		return
	}
	if m.OnClick != nil {
		m.OnClick(m, ev)
		return
	}
	if m.world != nil {
		m.world.ToggleTransformControl(m)
	}
}

// ClickOut releases the gizmo if this model holds it, or calls OnClickOut.
func (m *Model) ClickOut(ev *PointerEvent) {
	if m.Disabled {
		return
	}
	if m.OnClickOut != nil {
		m.OnClickOut(m, ev)
		return
	}
	if m.world != nil {
		m.world.RemoveTransformControl(m)
	}
}

// HoverEnter highlights the model and shows the pointer cursor.
func (m *Model) HoverEnter(ev *PointerEvent) {
	if m.Disabled || m.object == nil {
		return
	}
	setTint(m.object, m.HoverTint)
	if m.world != nil {
		m.world.Cursor().Set(CursorPointer)
	}
}

// HoverOut clears the highlight and restores the default cursor.
func (m *Model) HoverOut(ev *PointerEvent) {
	if m.Disabled || m.object == nil {
		return
	}
	setTint(m.object, ColorWhite)
	if m.world != nil {
		m.world.Cursor().Set(CursorDefault)
	}
}

func setTint(root *Node, c Color) {
	root.Traverse(func(n *Node) {
		n.Tint = c
	})
}
