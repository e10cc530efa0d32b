package arbor

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Vec3 is the 3D vector used for positions, directions and scales throughout
// the API. Y is up.
type Vec3 = v3.Vec

// Box3 is an axis-aligned bounding box in 3D.
type Box3 = sdf.Box3

// Vec2 is a 2D vector, used for normalized device coordinates.
type Vec2 struct {
	X, Y float64
}

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// Lerp returns the color linearly interpolated between c and to by t in [0, 1].
func (c Color) Lerp(to Color, t float64) Color {
	return Color{
		R: c.R + (to.R-c.R)*t,
		G: c.G + (to.G-c.G)*t,
		B: c.B + (to.B-c.B)*t,
		A: c.A + (to.A-c.A)*t,
	}
}

// Mul multiplies two colors component-wise.
func (c Color) Mul(o Color) Color {
	return Color{c.R * o.R, c.G * o.G, c.B * o.B, c.A * o.A}
}

// ColorHex builds an opaque color from a 0xRRGGBB value.
func ColorHex(hex uint32) Color {
	return Color{
		R: float64((hex>>16)&0xff) / 255,
		G: float64((hex>>8)&0xff) / 255,
		B: float64(hex&0xff) / 255,
		A: 1,
	}
}

// TransformMode selects how the gizmo manipulates its target.
type TransformMode uint8

const (
	ModeTranslate TransformMode = iota // move on the ground plane (X and Z handles)
	ModeRotate                         // spin around the vertical axis (Y handle)
)

// String returns the mode name.
func (m TransformMode) String() string {
	switch m {
	case ModeTranslate:
		return "translate"
	case ModeRotate:
		return "rotate"
	default:
		return "unknown"
	}
}

// EventType identifies a kind of interaction event.
type EventType uint8

const (
	EventPointerMove  EventType = iota // raw pointer move
	EventPointerDown                   // raw pointer press
	EventHoverEnter                    // pointer ray started hitting a visible entity
	EventHoverOut                      // pointer ray stopped hitting an entity
	EventClick                         // press while the ray hits the entity
	EventClickOut                      // press while the ray misses the entity
)

// String returns the event name.
func (t EventType) String() string {
	switch t {
	case EventPointerMove:
		return "pointer-move"
	case EventPointerDown:
		return "pointer-down"
	case EventHoverEnter:
		return "hover-enter"
	case EventHoverOut:
		return "hover-out"
	case EventClick:
		return "click"
	case EventClickOut:
		return "click-out"
	default:
		return "unknown"
	}
}

// LoadState is the lifecycle of an entity whose visual subtree is loaded
// asynchronously.
type LoadState uint8

const (
	LoadPending LoadState = iota // load not started or in flight
	LoadReady                    // world object available
	LoadFailed                   // load returned an error
)

// String returns the state name.
func (s LoadState) String() string {
	switch s {
	case LoadPending:
		return "pending"
	case LoadReady:
		return "ready"
	case LoadFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Degrees converts degrees to radians.
func Degrees(deg float64) float64 {
	return deg * math.Pi / 180
}
