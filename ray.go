package arbor

import "math"

// rayEpsilon is the tolerance used for parallel and degenerate checks.
const rayEpsilon = 1e-9

// Ray is a half-line from Origin along Dir. Dir need not be normalized.
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Dir.MulScalar(t))
}

// Transform maps the ray through m. Translation applies to the origin only.
func (r Ray) Transform(m Matrix) Ray {
	o := m.MulPosition(r.Origin)
	tip := m.MulPosition(r.Origin.Add(r.Dir))
	return Ray{Origin: o, Dir: tip.Sub(o)}
}

// IntersectBox reports whether the ray hits box, and the entry distance.
// A ray starting inside the box hits at t = 0.
func (r Ray) IntersectBox(box Box3) (t float64, ok bool) {
	tmin, tmax := 0.0, math.Inf(1)
	o := [3]float64{r.Origin.X, r.Origin.Y, r.Origin.Z}
	d := [3]float64{r.Dir.X, r.Dir.Y, r.Dir.Z}
	lo := [3]float64{box.Min.X, box.Min.Y, box.Min.Z}
	hi := [3]float64{box.Max.X, box.Max.Y, box.Max.Z}

	for i := 0; i < 3; i++ {
		if math.Abs(d[i]) < rayEpsilon {
			if o[i] < lo[i] || o[i] > hi[i] {
				return 0, false
			}
			continue
		}
		inv := 1 / d[i]
		t0 := (lo[i] - o[i]) * inv
		t1 := (hi[i] - o[i]) * inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tmin {
			tmin = t0
		}
		if t1 < tmax {
			tmax = t1
		}
		if tmin > tmax {
			return 0, false
		}
	}
	return tmin, true
}

// IntersectTriangle reports whether the ray hits triangle (a, b, c) from
// either side, using the Möller–Trumbore test, and the hit distance.
func (r Ray) IntersectTriangle(a, b, c Vec3) (t float64, ok bool) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := r.Dir.Cross(e2)
	det := e1.Dot(p)
	if math.Abs(det) < rayEpsilon {
		return 0, false
	}
	inv := 1 / det
	s := r.Origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := r.Dir.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t = e2.Dot(q) * inv
	if t < 0 {
		return 0, false
	}
	return t, true
}

// Raycaster tests rays against scene subtrees.
type Raycaster struct {
	Ray Ray
}

// SetFromCamera points the raycaster from cam through the given normalized
// device coordinates.
func (rc *Raycaster) SetFromCamera(ndc Vec2, cam *Camera) {
	rc.Ray = cam.RayFromNDC(ndc)
}

// Intersects reports whether the ray hits any mesh in the subtree rooted at
// root. A nil root, a subtree without meshes, or a degenerate transform
// yields false. Visibility is not considered.
func (rc *Raycaster) Intersects(root *Node) bool {
	if root == nil || root.IsDisposed() {
		return false
	}
	hit := false
	walkWorld(root, root.parentWorldMatrix(), func(n *Node, world Matrix) bool {
		if hit || hasZeroScale(n) {
			return false
		}
		if n.Mesh == nil || n.Mesh.IsEmpty() {
			return true
		}
		local := rc.Ray.Transform(world.Inverse())
		if !finiteVec(local.Origin) || !finiteVec(local.Dir) {
			return true
		}
		if _, ok := local.IntersectBox(n.Mesh.Bounds()); !ok {
			return true
		}
		if intersectMesh(local, n.Mesh) {
			hit = true
			return false
		}
		return true
	})
	return hit
}

// intersectMesh tests every triangle of m against a local-space ray.
func intersectMesh(r Ray, m *Mesh) bool {
	nv := uint32(len(m.Vertices))
	for i := 0; i < m.TriangleCount(); i++ {
		if m.Indices[i*3] >= nv || m.Indices[i*3+1] >= nv || m.Indices[i*3+2] >= nv {
			continue
		}
		a, b, c := m.Triangle(i)
		if _, ok := r.IntersectTriangle(a, b, c); ok {
			return true
		}
	}
	return false
}

func hasZeroScale(n *Node) bool {
	return n.Scale.X == 0 || n.Scale.Y == 0 || n.Scale.Z == 0
}

func finiteVec(v Vec3) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsNaN(v.Z) &&
		!math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0) && !math.IsInf(v.Z, 0)
}
