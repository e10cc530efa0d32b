package arbor

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	minOrbitPolar    = 0.05
	maxOrbitPolar    = math.Pi/2 - 0.02
	minOrbitDistance = 1.0
)

// flyAnim holds active fly-to tweens for the camera target.
type flyAnim struct {
	from, to Vec3
	tween    *gween.Tween
}

// Camera is a perspective camera looking from Position at Target.
type Camera struct {
	Position Vec3
	Target   Vec3
	Up       Vec3
	// FovY is the vertical field of view in degrees.
	FovY float64
	// Aspect is viewport width over height.
	Aspect    float64
	Near, Far float64

	// OrbitEnabled gates Orbit and Zoom. World turns it off while the gizmo drags.
	OrbitEnabled bool

	fly *flyAnim
}

// NewCamera creates a perspective camera with the given vertical field of
// view in degrees, aspect ratio and clip planes, looking at the origin.
func NewCamera(fovY, aspect, near, far float64) *Camera {
	return &Camera{
		Position:     Vec3{X: 0, Y: 0, Z: 10},
		Up:           Vec3{Y: 1},
		FovY:         fovY,
		Aspect:       aspect,
		Near:         near,
		Far:          far,
		OrbitEnabled: true,
	}
}

// basis returns the camera's forward, right and up unit vectors.
func (c *Camera) basis() (forward, right, up Vec3) {
	forward = c.Target.Sub(c.Position).Normalize()
	right = forward.Cross(c.Up).Normalize()
	up = right.Cross(forward)
	return forward, right, up
}

func (c *Camera) tanHalfFov() float64 {
	return math.Tan(Degrees(c.FovY) / 2)
}

// RayFromNDC returns the world-space ray from the camera through the given
// normalized device coordinates ((-1,-1) bottom-left, (1,1) top-right).
func (c *Camera) RayFromNDC(ndc Vec2) Ray {
	forward, right, up := c.basis()
	th := c.tanHalfFov()
	dir := forward.
		Add(right.MulScalar(ndc.X * th * c.Aspect)).
		Add(up.MulScalar(ndc.Y * th))
	return Ray{Origin: c.Position, Dir: dir.Normalize()}
}

// Project converts a world point to normalized device coordinates and
// view depth. ok is false when the point is behind the near plane.
func (c *Camera) Project(p Vec3) (ndc Vec2, depth float64, ok bool) {
	forward, right, up := c.basis()
	d := p.Sub(c.Position)
	depth = d.Dot(forward)
	if depth < c.Near {
		return Vec2{}, depth, false
	}
	th := c.tanHalfFov()
	ndc.X = d.Dot(right) / (depth * th * c.Aspect)
	ndc.Y = d.Dot(up) / (depth * th)
	return ndc, depth, true
}

// ScreenToNDC converts viewport pixel coordinates to normalized device
// coordinates. A zero-sized viewport maps everything to the origin and
// reports false.
func ScreenToNDC(x, y, width, height float64) (Vec2, bool) {
	if width <= 0 || height <= 0 {
		return Vec2{}, false
	}
	return Vec2{X: 2*x/width - 1, Y: -(2*y/height - 1)}, true
}

// NDCToScreen converts normalized device coordinates to viewport pixels.
func NDCToScreen(ndc Vec2, width, height float64) (x, y float64) {
	return (ndc.X + 1) / 2 * width, (1 - ndc.Y) / 2 * height
}

// SetAspect updates the aspect ratio after a viewport resize.
func (c *Camera) SetAspect(width, height float64) {
	if width > 0 && height > 0 {
		c.Aspect = width / height
	}
}

// Orbit rotates the camera around Target by the given azimuth and polar
// deltas in radians. The polar angle is clamped so the camera stays above the
// ground.
func (c *Camera) Orbit(dAzimuth, dPolar float64) {
	if !c.OrbitEnabled {
		return
	}
	off := c.Position.Sub(c.Target)
	r := off.Length()
	if r == 0 {
		return
	}
	azimuth := math.Atan2(off.X, off.Z) + dAzimuth
	polar := math.Acos(clamp(off.Y/r, -1, 1)) - dPolar
	polar = clamp(polar, minOrbitPolar, maxOrbitPolar)
	sinP := math.Sin(polar)
	c.Position = c.Target.Add(Vec3{
		X: r * sinP * math.Sin(azimuth),
		Y: r * math.Cos(polar),
		Z: r * sinP * math.Cos(azimuth),
	})
}

// Zoom scales the distance to Target by factor, never closer than minOrbitDistance.
func (c *Camera) Zoom(factor float64) {
	if !c.OrbitEnabled || factor <= 0 {
		return
	}
	off := c.Position.Sub(c.Target)
	r := off.Length()
	if r == 0 {
		return
	}
	nr := math.Max(r*factor, minOrbitDistance)
	c.Position = c.Target.Add(off.MulScalar(nr / r))
}

// FlyTo animates Target (and Position, keeping the same offset) to target
// over duration seconds.
func (c *Camera) FlyTo(target Vec3, duration float32, easeFn ease.TweenFunc) {
	c.fly = &flyAnim{
		from:  c.Target,
		to:    target,
		tween: gween.New(0, 1, duration, easeFn),
	}
}

// Flying reports whether a FlyTo animation is running.
func (c *Camera) Flying() bool {
	return c.fly != nil
}

// Update advances camera animations. Called from World.Update.
func (c *Camera) Update(dt float32) {
	if c.fly == nil {
		return
	}
	t, done := c.fly.tween.Update(dt)
	next := c.fly.from.Add(c.fly.to.Sub(c.fly.from).MulScalar(float64(t)))
	c.Position = c.Position.Add(next.Sub(c.Target))
	c.Target = next
	if done {
		c.fly = nil
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
