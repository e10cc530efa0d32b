package arbor

import "math"

// Light is a colored light source with an intensity multiplier.
type Light struct {
	Color     Color
	Intensity float64
}

// DirectionalLight shines from Position toward the origin.
type DirectionalLight struct {
	Light
	Position   Vec3
	CastShadow bool
}

// Direction returns the unit vector pointing from the scene toward the light.
func (d DirectionalLight) Direction() Vec3 {
	if d.Position.Length() == 0 {
		return Vec3{Y: 1}
	}
	return d.Position.Normalize()
}

// Environment is the global lighting applied to every standard material.
type Environment struct {
	Ambient     Light
	Directional DirectionalLight
	// EnvMap names the environment map assigned to standard materials.
	EnvMap          string
	EnvMapIntensity float64
	Background      Color
}

// DefaultEnvironment returns a soft white ambient light with a strong sun
// behind and above the origin.
func DefaultEnvironment() Environment {
	return Environment{
		Ambient: Light{Color: ColorWhite, Intensity: 0.3},
		Directional: DirectionalLight{
			Light:      Light{Color: ColorWhite, Intensity: 3},
			Position:   Vec3{X: 0.25, Y: 15, Z: -10},
			CastShadow: true,
		},
		EnvMap:          "default",
		EnvMapIntensity: 1.5,
		Background:      ColorHex(0x87ceeb),
	}
}

// Shade returns the lit color of a surface with the given world normal.
// The light contribution is normalized so the default sun at full incidence
// does not saturate a mid-tone base color.
func (e Environment) Shade(normal Vec3, base Color, doubleSided bool) Color {
	n := normal
	if l := n.Length(); l > 0 {
		n = n.MulScalar(1 / l)
	}
	lambert := n.Dot(e.Directional.Direction())
	if doubleSided {
		lambert = math.Abs(lambert)
	}
	lambert = math.Max(0, lambert)

	sun := e.Directional.Intensity / math.Max(1, e.Directional.Intensity)
	amb := e.Ambient.Intensity
	out := Color{
		R: base.R * (amb*e.Ambient.Color.R + sun*lambert*e.Directional.Color.R),
		G: base.G * (amb*e.Ambient.Color.G + sun*lambert*e.Directional.Color.G),
		B: base.B * (amb*e.Ambient.Color.B + sun*lambert*e.Directional.Color.B),
		A: base.A,
	}
	out.R = clamp(out.R, 0, 1)
	out.G = clamp(out.G, 0, 1)
	out.B = clamp(out.B, 0, 1)
	return out
}
