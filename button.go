package arbor

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Default button appearance.
var (
	DefaultButtonSize = Vec3{X: 2, Y: 0.1, Z: 1}
	ButtonPrimary     = ColorHex(0x0000ff)
	ButtonHover       = ColorHex(0x4169e1)
)

// Button is a flat clickable slab lying on the ground with a text label.
// Hovering fades between the primary and hover colors.
type Button struct {
	Label    string
	Disabled bool
	// OnClick is the caller-supplied action.
	OnClick func(b *Button, ev *PointerEvent)

	PrimaryColor Color
	HoverColor   Color
	// FadeDuration is the hover color fade time in seconds. Zero switches instantly.
	FadeDuration float32

	world Manipulator
	node  *Node

	fadeFrom, fadeTo Color
	fade             *gween.Tween
}

// NewButton creates a button with the default size and colors.
func NewButton(world Manipulator, label string, onClick func(b *Button, ev *PointerEvent)) *Button {
	mat := NewStandardMaterial(ButtonPrimary)
	node := NewMeshNode("button:"+label, NewBoxMesh(DefaultButtonSize), mat)
	return &Button{
		Label:        label,
		OnClick:      onClick,
		PrimaryColor: ButtonPrimary,
		HoverColor:   ButtonHover,
		FadeDuration: 0.15,
		world:        world,
		node:         node,
	}
}

// WorldObject returns the button slab.
func (b *Button) WorldObject() *Node { return b.node }

// Name returns the button label.
func (b *Button) Name() string { return b.Label }

// SetPosition places the button.
func (b *Button) SetPosition(p Vec3) { b.node.Position = p }

// Color returns the current slab color.
func (b *Button) Color() Color { return b.node.Material.Color }

// Fading reports whether a hover fade is running.
func (b *Button) Fading() bool { return b.fade != nil }

// Click runs OnClick.
func (b *Button) Click(ev *PointerEvent) {
	if b.Disabled || b.OnClick == nil {
		return
	}
	b.OnClick(b, ev)
}

// HoverEnter fades to the hover color and shows the pointer cursor.
func (b *Button) HoverEnter(ev *PointerEvent) {
	if b.Disabled {
		return
	}
	b.fadeToward(b.HoverColor)
	if b.world != nil {
		b.world.Cursor().Set(CursorPointer)
	}
}

// HoverOut fades back to the primary color and restores the default cursor.
func (b *Button) HoverOut(ev *PointerEvent) {
	if b.Disabled {
		return
	}
	b.fadeToward(b.PrimaryColor)
	if b.world != nil {
		b.world.Cursor().Set(CursorDefault)
	}
}

func (b *Button) fadeToward(c Color) {
	if b.FadeDuration <= 0 {
		b.node.Material.Color = c
		b.fade = nil
		return
	}
	b.fadeFrom = b.node.Material.Color
	b.fadeTo = c
	b.fade = gween.New(0, 1, b.FadeDuration, ease.OutQuad)
}

// Update advances the hover fade.
func (b *Button) Update(dt float32) {
	if b.fade == nil {
		return
	}
	t, done := b.fade.Update(dt)
	b.node.Material.Color = b.fadeFrom.Lerp(b.fadeTo, float64(t))
	if done {
		b.node.Material.Color = b.fadeTo
		b.fade = nil
	}
}
