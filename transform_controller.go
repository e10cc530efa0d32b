package arbor

// TransformController owns the single shared Gizmo and decides which entity
// it is attached to and in which mode.
//
// Toggling the same entity cycles translate, rotate, translate. Toggling a
// different entity always starts it in translate mode. At most one entity is
// attached at any time.
type TransformController struct {
	gizmo  *Gizmo
	cursor *Cursor
}

// NewTransformController creates a controller with a gizmo bound to cam.
// cursor is reset to default after every toggle; it may be nil.
func NewTransformController(cam *Camera, cursor *Cursor) *TransformController {
	return &TransformController{gizmo: NewGizmo(cam), cursor: cursor}
}

// Gizmo returns the underlying gizmo for drawing and drag-state listening.
func (tc *TransformController) Gizmo() *Gizmo {
	return tc.gizmo
}

// IsAttachedTo reports whether the gizmo is attached to e's world object.
func (tc *TransformController) IsAttachedTo(e WorldEntity) bool {
	if e == nil {
		return false
	}
	root := e.WorldObject()
	return root != nil && tc.gizmo.Object() == root
}

// Toggle attaches the gizmo to e, advancing the mode when e already owns it.
// The gizmo is always detached and reattached so the new mode applies
// cleanly. No-op when e has no world object or while a drag is running.
func (tc *TransformController) Toggle(e WorldEntity) {
	if e == nil || tc.gizmo.Dragging() {
		return
	}
	root := e.WorldObject()
	if root == nil {
		return
	}
	g := tc.gizmo
	if g.Object() == root && g.Mode() == ModeTranslate {
		g.SetMode(ModeRotate)
		g.ShowX, g.ShowY, g.ShowZ = false, true, false
	} else {
		g.SetMode(ModeTranslate)
		g.ShowX, g.ShowY, g.ShowZ = true, false, true
	}
	g.Detach()
	g.Attach(root)
	if tc.cursor != nil {
		tc.cursor.Set(CursorDefault)
	}
}

// Remove detaches the gizmo if it is attached to e and no drag is running.
// Otherwise it does nothing.
func (tc *TransformController) Remove(e WorldEntity) {
	if !tc.IsAttachedTo(e) || tc.gizmo.Dragging() {
		return
	}
	tc.gizmo.Detach()
}
