package arbor

import "testing"

func TestDirectionalLightDirection(t *testing.T) {
	d := DirectionalLight{Position: Vec3{Y: 4}}
	if d.Direction() != (Vec3{Y: 1}) {
		t.Errorf("Direction = %v", d.Direction())
	}
	if (DirectionalLight{}).Direction() != (Vec3{Y: 1}) {
		t.Error("zero position should light from above")
	}
}

func TestShade(t *testing.T) {
	env := DefaultEnvironment()
	base := ColorHex(0x808080)
	up := env.Shade(Vec3{Y: 1}, base, false)
	downward := env.Shade(Vec3{Y: -1}, base, false)
	if up.R <= downward.R {
		t.Errorf("sunlit face %v should be brighter than shadowed face %v", up, downward)
	}
	want := base.R * env.Ambient.Intensity
	if !approx(downward.R, want) {
		t.Errorf("shadowed face R = %v, want ambient only %v", downward.R, want)
	}
	if ds := env.Shade(Vec3{Y: -1}, base, true); !approx(ds.R, up.R) {
		t.Errorf("double-sided shading = %v, want %v", ds.R, up.R)
	}
	bright := env.Shade(Vec3{Y: 1}, Color{R: 5, G: 5, B: 5, A: 1}, false)
	if bright.R != 1 || bright.A != 1 {
		t.Errorf("shade should clamp: %v", bright)
	}
}
