package arbor

import (
	"math"
)

// ringSegments is the number of line segments approximating the rotate ring.
const ringSegments = 24

// Axis names one manipulation axis of the gizmo.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// String returns the axis letter.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	default:
		return "?"
	}
}

// HandleSegment is one world-space line of the gizmo, for drawing.
type HandleSegment struct {
	Axis       Axis
	Start, End Vec3
}

type dragListener struct {
	id uint32
	fn func(dragging bool)
}

// ListenerHandle removes a listener registered on the Gizmo.
type ListenerHandle struct {
	id    uint32
	gizmo *Gizmo
}

// Remove unregisters the listener. Safe to call more than once.
func (h ListenerHandle) Remove() {
	if h.gizmo == nil {
		return
	}
	ls := h.gizmo.listeners
	for i, l := range ls {
		if l.id == h.id {
			h.gizmo.listeners = append(ls[:i:i], ls[i+1:]...)
			return
		}
	}
}

// Gizmo is the shared manipulation handle. It is attached to at most one
// node at a time and moves or rotates that node while dragged.
type Gizmo struct {
	// ShowX, ShowY and ShowZ select which axes are active and drawn.
	ShowX, ShowY, ShowZ bool
	// Size is the handle length in world units.
	Size float64

	camera *Camera
	object *Node
	mode   TransformMode

	dragging   bool
	dragAnchor Vec3
	anchorOK   bool
	startPos   Vec3
	startRot   Vec3

	listeners []dragListener
	nextID    uint32
}

// NewGizmo creates a detached gizmo in translate mode bound to cam.
func NewGizmo(cam *Camera) *Gizmo {
	return &Gizmo{
		ShowX:  true,
		ShowY:  true,
		ShowZ:  true,
		Size:   1,
		camera: cam,
	}
}

// Camera returns the camera the gizmo was bound to.
func (g *Gizmo) Camera() *Camera { return g.camera }

// Object returns the attached node, or nil.
func (g *Gizmo) Object() *Node { return g.object }

// Mode returns the current transform mode.
func (g *Gizmo) Mode() TransformMode { return g.mode }

// Dragging reports whether a drag is in progress.
func (g *Gizmo) Dragging() bool { return g.dragging }

// Attach binds the gizmo to n, replacing any previous target.
func (g *Gizmo) Attach(n *Node) {
	g.object = n
}

// Detach unbinds the gizmo. An active drag is ended first.
func (g *Gizmo) Detach() {
	if g.dragging {
		g.EndDrag()
	}
	g.object = nil
}

// SetMode switches between translate and rotate.
func (g *Gizmo) SetMode(m TransformMode) {
	g.mode = m
}

// OnDraggingChanged registers fn to be called whenever a drag starts or ends.
func (g *Gizmo) OnDraggingChanged(fn func(dragging bool)) ListenerHandle {
	g.nextID++
	g.listeners = append(g.listeners, dragListener{id: g.nextID, fn: fn})
	return ListenerHandle{id: g.nextID, gizmo: g}
}

func (g *Gizmo) setDragging(v bool) {
	if g.dragging == v {
		return
	}
	g.dragging = v
	for _, l := range g.listeners {
		l.fn(v)
	}
}

// BeginDrag starts a drag along r. Returns false if no node is attached or a
// drag is already running.
func (g *Gizmo) BeginDrag(r Ray) bool {
	if g.object == nil || g.dragging {
		return false
	}
	g.startPos = g.object.Position
	g.startRot = g.object.Rotation
	g.dragAnchor, g.anchorOK = intersectHorizontalPlane(r, g.object.WorldPosition().Y)
	g.setDragging(true)
	return true
}

// EndDrag finishes the current drag. No-op when not dragging.
func (g *Gizmo) EndDrag() {
	g.setDragging(false)
}

// DragTo updates the attached node for a pointer ray during a drag. In
// translate mode the node follows the ray on the horizontal plane through
// its start point, restricted to the shown axes. In rotate mode the angle
// swept around the node's vertical axis is applied to its Y rotation.
func (g *Gizmo) DragTo(r Ray) {
	if !g.dragging || g.object == nil || !g.anchorOK {
		return
	}
	hit, ok := intersectHorizontalPlane(r, g.dragAnchor.Y)
	if !ok {
		return
	}
	switch g.mode {
	case ModeTranslate:
		inv := g.object.parentWorldMatrix().Inverse()
		delta := inv.MulPosition(hit).Sub(inv.MulPosition(g.dragAnchor))
		pos := g.startPos
		if g.ShowX {
			pos.X += delta.X
		}
		if g.ShowY {
			pos.Y += delta.Y
		}
		if g.ShowZ {
			pos.Z += delta.Z
		}
		g.object.Position = pos
	case ModeRotate:
		if !g.ShowY {
			return
		}
		c := g.object.WorldPosition()
		a0 := math.Atan2(g.dragAnchor.X-c.X, g.dragAnchor.Z-c.Z)
		a1 := math.Atan2(hit.X-c.X, hit.Z-c.Z)
		rot := g.startRot
		rot.Y += a1 - a0
		g.object.Rotation = rot
	}
}

// RotateBy adds angle radians to the Y rotation of the attached node. Only
// effective while dragging in rotate mode with the Y axis shown.
func (g *Gizmo) RotateBy(angle float64) {
	if !g.dragging || g.object == nil || g.mode != ModeRotate || !g.ShowY {
		return
	}
	g.object.Rotation.Y += angle
}

// HitHandle reports whether r hits one of the shown handles.
func (g *Gizmo) HitHandle(r Ray) bool {
	if g.object == nil {
		return false
	}
	c := g.object.WorldPosition()
	t := g.Size * 0.15
	var boxes []Box3
	switch g.mode {
	case ModeTranslate:
		if g.ShowX {
			boxes = append(boxes, Box3{Min: Vec3{X: c.X, Y: c.Y - t, Z: c.Z - t}, Max: Vec3{X: c.X + g.Size, Y: c.Y + t, Z: c.Z + t}})
		}
		if g.ShowY {
			boxes = append(boxes, Box3{Min: Vec3{X: c.X - t, Y: c.Y, Z: c.Z - t}, Max: Vec3{X: c.X + t, Y: c.Y + g.Size, Z: c.Z + t}})
		}
		if g.ShowZ {
			boxes = append(boxes, Box3{Min: Vec3{X: c.X - t, Y: c.Y - t, Z: c.Z}, Max: Vec3{X: c.X + t, Y: c.Y + t, Z: c.Z + g.Size}})
		}
	case ModeRotate:
		if g.ShowY {
			boxes = append(boxes, Box3{Min: Vec3{X: c.X - g.Size, Y: c.Y - t, Z: c.Z - g.Size}, Max: Vec3{X: c.X + g.Size, Y: c.Y + t, Z: c.Z + g.Size}})
		}
	}
	for _, b := range boxes {
		if _, ok := r.IntersectBox(b); ok {
			return true
		}
	}
	return false
}

// Segments returns the world-space lines of the shown handles.
func (g *Gizmo) Segments() []HandleSegment {
	if g.object == nil {
		return nil
	}
	c := g.object.WorldPosition()
	var out []HandleSegment
	switch g.mode {
	case ModeTranslate:
		if g.ShowX {
			out = append(out, HandleSegment{Axis: AxisX, Start: c, End: c.Add(Vec3{X: g.Size})})
		}
		if g.ShowY {
			out = append(out, HandleSegment{Axis: AxisY, Start: c, End: c.Add(Vec3{Y: g.Size})})
		}
		if g.ShowZ {
			out = append(out, HandleSegment{Axis: AxisZ, Start: c, End: c.Add(Vec3{Z: g.Size})})
		}
	case ModeRotate:
		if !g.ShowY {
			return nil
		}
		for i := 0; i < ringSegments; i++ {
			a0 := 2 * math.Pi * float64(i) / ringSegments
			a1 := 2 * math.Pi * float64(i+1) / ringSegments
			out = append(out, HandleSegment{
				Axis:  AxisY,
				Start: c.Add(Vec3{X: g.Size * math.Sin(a0), Z: g.Size * math.Cos(a0)}),
				End:   c.Add(Vec3{X: g.Size * math.Sin(a1), Z: g.Size * math.Cos(a1)}),
			})
		}
	}
	return out
}

// intersectHorizontalPlane returns where r crosses the plane Y = y.
func intersectHorizontalPlane(r Ray, y float64) (Vec3, bool) {
	if math.Abs(r.Dir.Y) < rayEpsilon {
		return Vec3{}, false
	}
	t := (y - r.Origin.Y) / r.Dir.Y
	if t < 0 {
		return Vec3{}, false
	}
	return r.At(t), true
}
