package arbor

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestCameraProjectCenter(t *testing.T) {
	cam := newTestCamera()
	ndc, depth, ok := cam.Project(Vec3{})
	if !ok || !approx(ndc.X, 0) || !approx(ndc.Y, 0) || !approx(depth, 10) {
		t.Errorf("Project(origin) = %v, %v, %v", ndc, depth, ok)
	}
	if _, _, ok := cam.Project(Vec3{Z: 20}); ok {
		t.Error("point behind the camera should not project")
	}
	ndc, _, _ = cam.Project(Vec3{Y: 1})
	if ndc.Y <= 0 {
		t.Errorf("point above center projects to NDC.Y = %v", ndc.Y)
	}
}

func TestScreenNDCRoundTrip(t *testing.T) {
	tests := []struct{ x, y float64 }{{0, 0}, {400, 300}, {800, 600}, {123, 456}}
	for _, tt := range tests {
		ndc, ok := ScreenToNDC(tt.x, tt.y, viewW, viewH)
		if !ok {
			t.Fatal("ScreenToNDC failed")
		}
		x, y := NDCToScreen(ndc, viewW, viewH)
		if !approx(x, tt.x) || !approx(y, tt.y) {
			t.Errorf("round trip (%v, %v) -> (%v, %v)", tt.x, tt.y, x, y)
		}
	}
	if ndc, _ := ScreenToNDC(0, 0, viewW, viewH); ndc != (Vec2{X: -1, Y: 1}) {
		t.Errorf("top-left NDC = %v, want (-1, 1)", ndc)
	}
	if _, ok := ScreenToNDC(1, 1, 0, 0); ok {
		t.Error("zero viewport should fail")
	}
}

func TestCameraRayFromNDCMatchesProject(t *testing.T) {
	cam := newTestCamera()
	cam.Position = Vec3{X: 4, Y: 3, Z: 9}
	p := Vec3{X: 0.5, Y: -0.25, Z: 1}
	ndc, _, ok := cam.Project(p)
	if !ok {
		t.Fatal("point should project")
	}
	r := cam.RayFromNDC(ndc)
	toP := p.Sub(r.Origin).Normalize()
	if !approxVec(toP, r.Dir) {
		t.Errorf("ray dir %v does not pass through %v (want %v)", r.Dir, p, toP)
	}
}

func TestCameraOrbitKeepsDistanceAndClamps(t *testing.T) {
	cam := newTestCamera()
	cam.Position = Vec3{Y: 5, Z: 10}
	r0 := cam.Position.Length()

	cam.Orbit(math.Pi/2, 0)
	if !approx(cam.Position.Length(), r0) {
		t.Errorf("orbit changed distance: %v -> %v", r0, cam.Position.Length())
	}
	if !approx(cam.Position.X, 10) || !approx(cam.Position.Y, 5) {
		t.Errorf("after quarter turn Position = %v", cam.Position)
	}

	cam.Orbit(0, -10)
	if cam.Position.Y < 0 {
		t.Errorf("orbit went below the ground: %v", cam.Position)
	}
	cam.Orbit(0, 10)
	if polar := math.Acos(cam.Position.Y / cam.Position.Length()); polar < minOrbitPolar-1e-9 {
		t.Errorf("polar = %v, want >= %v", polar, minOrbitPolar)
	}

	cam.OrbitEnabled = false
	before := cam.Position
	cam.Orbit(1, 0)
	cam.Zoom(0.5)
	if cam.Position != before {
		t.Error("disabled orbit should not move the camera")
	}
}

func TestCameraZoom(t *testing.T) {
	cam := newTestCamera()
	cam.Zoom(0.5)
	if !approx(cam.Position.Z, 5) {
		t.Errorf("Zoom(0.5) Position = %v", cam.Position)
	}
	cam.Zoom(0.001)
	if !approx(cam.Position.Length(), minOrbitDistance) {
		t.Errorf("Zoom should stop at %v, got %v", minOrbitDistance, cam.Position.Length())
	}
}

func TestCameraFlyTo(t *testing.T) {
	cam := newTestCamera()
	cam.FlyTo(Vec3{X: 2}, 0.5, ease.Linear)
	if !cam.Flying() {
		t.Fatal("FlyTo should start an animation")
	}
	cam.Update(0.25)
	if !approx(cam.Target.X, 1) || !approx(cam.Position.X, 1) {
		t.Errorf("halfway target %v position %v", cam.Target, cam.Position)
	}
	cam.Update(0.5)
	if cam.Flying() || !approxVec(cam.Target, Vec3{X: 2}) || !approxVec(cam.Position, Vec3{X: 2, Z: 10}) {
		t.Errorf("end target %v position %v flying %v", cam.Target, cam.Position, cam.Flying())
	}
}
