package assets

import (
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/phanxgames/arbor"
)

// Kind groups catalog entries.
type Kind string

const (
	KindTree Kind = "tree"
	KindRock Kind = "rock"
)

// Part is one colored solid of a model. Solids are built Z-up, standing on
// the Z = 0 plane; the loader rotates them to arbor's Y-up space.
type Part struct {
	Name  string
	Color arbor.Color
	Solid func() (sdf.SDF3, error)
}

// Recipe describes how to build one model.
type Recipe struct {
	Kind  Kind
	Parts []Part
}

var (
	birchBark = arbor.ColorHex(0xe8e4d8)
	bark      = arbor.ColorHex(0x5d4037)
	leaf      = arbor.ColorHex(0x388e3c)
	birchLeaf = arbor.ColorHex(0x7cb342)
	pine      = arbor.ColorHex(0x1b5e20)
	willow    = arbor.ColorHex(0x689f38)
	stone     = arbor.ColorHex(0x8d8d8d)
)

// DefaultCatalog returns the built-in vegetation and rock models.
func DefaultCatalog() map[string]Recipe {
	return map[string]Recipe{
		"BirchTree_4": {Kind: KindTree, Parts: []Part{
			{Name: "trunk", Color: birchBark, Solid: trunk(2.4, 0.12)},
			{Name: "canopy", Color: birchLeaf, Solid: ball(0.8, 2.6)},
		}},
		"PineTree_1": {Kind: KindTree, Parts: []Part{
			{Name: "trunk", Color: bark, Solid: trunk(1, 0.15)},
			{Name: "canopy", Color: pine, Solid: cone(2.6, 0.9, 0.05, 1)},
		}},
		"CommonTree_1": {Kind: KindTree, Parts: []Part{
			{Name: "trunk", Color: bark, Solid: trunk(1.6, 0.18)},
			{Name: "canopy", Color: leaf, Solid: cluster(0.7, 1.9)},
		}},
		"Willow_1": {Kind: KindTree, Parts: []Part{
			{Name: "trunk", Color: bark, Solid: trunk(1.8, 0.2)},
			{Name: "canopy", Color: willow, Solid: cone(1.8, 0.5, 1.2, 1.2)},
		}},
		"Rock_1": {Kind: KindRock, Parts: []Part{
			{Name: "rock", Color: stone, Solid: ball(0.5, 0.3)},
		}},
		"Rock_2": {Kind: KindRock, Parts: []Part{
			{Name: "rock", Color: stone, Solid: slab(v3.Vec{X: 1.2, Y: 0.8, Z: 0.5}, 0.15)},
		}},
	}
}

// trunk is a vertical cylinder standing on the ground.
func trunk(height, radius float64) func() (sdf.SDF3, error) {
	return func() (sdf.SDF3, error) {
		s, err := sdf.Cylinder3D(height, radius, 0)
		if err != nil {
			return nil, err
		}
		return sdf.Transform3D(s, sdf.Translate3d(v3.Vec{Z: height / 2})), nil
	}
}

// ball is a sphere centered at height z.
func ball(radius, z float64) func() (sdf.SDF3, error) {
	return func() (sdf.SDF3, error) {
		s, err := sdf.Sphere3D(radius)
		if err != nil {
			return nil, err
		}
		return sdf.Transform3D(s, sdf.Translate3d(v3.Vec{Z: z})), nil
	}
}

// cone is a truncated cone with its base at height base.
func cone(height, r0, r1, base float64) func() (sdf.SDF3, error) {
	return func() (sdf.SDF3, error) {
		s, err := sdf.Cone3D(height, r0, r1, 0)
		if err != nil {
			return nil, err
		}
		return sdf.Transform3D(s, sdf.Translate3d(v3.Vec{Z: base + height/2})), nil
	}
}

// cluster is three overlapping spheres around height z.
func cluster(radius, z float64) func() (sdf.SDF3, error) {
	return func() (sdf.SDF3, error) {
		offsets := []v3.Vec{
			{X: -radius * 0.5, Z: z},
			{X: radius * 0.5, Y: radius * 0.3, Z: z + radius*0.2},
			{Y: -radius * 0.4, Z: z + radius*0.6},
		}
		parts := make([]sdf.SDF3, 0, len(offsets))
		for _, o := range offsets {
			s, err := sdf.Sphere3D(radius)
			if err != nil {
				return nil, err
			}
			parts = append(parts, sdf.Transform3D(s, sdf.Translate3d(o)))
		}
		return sdf.Union3D(parts...), nil
	}
}

// slab is a rounded box resting on the ground.
func slab(size v3.Vec, round float64) func() (sdf.SDF3, error) {
	return func() (sdf.SDF3, error) {
		s, err := sdf.Box3D(size, round)
		if err != nil {
			return nil, err
		}
		return sdf.Transform3D(s, sdf.Translate3d(v3.Vec{Z: size.Z / 2})), nil
	}
}
