package arbor

// Mesh is an indexed triangle list in local space. Every three entries of
// Indices form one triangle.
type Mesh struct {
	Vertices    []Vec3
	Indices     []uint32
	DoubleSided bool

	bounds      Box3
	boundsValid bool
}

// Material describes how a mesh is shaded.
type Material struct {
	Color     Color
	Metalness float64
	Roughness float64

	// Standard marks a lit material that receives environment lighting
	// from World.UpdateAllMaterials.
	Standard        bool
	EnvMap          string
	EnvMapIntensity float64
}

// NewStandardMaterial returns a lit material with the given base color.
func NewStandardMaterial(c Color) *Material {
	return &Material{Color: c, Roughness: 1, Standard: true}
}

// IsEmpty reports whether the mesh has no triangles.
func (m *Mesh) IsEmpty() bool {
	return m == nil || len(m.Indices) < 3 || len(m.Vertices) == 0
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the three local-space corners of triangle i.
func (m *Mesh) Triangle(i int) (a, b, c Vec3) {
	return m.Vertices[m.Indices[i*3]], m.Vertices[m.Indices[i*3+1]], m.Vertices[m.Indices[i*3+2]]
}

// Bounds returns the local-space AABB, recomputed after Invalidate.
func (m *Mesh) Bounds() Box3 {
	if !m.boundsValid {
		m.bounds = computeBounds(m.Vertices)
		m.boundsValid = true
	}
	return m.bounds
}

// Invalidate marks cached bounds stale. Call after editing Vertices directly.
func (m *Mesh) Invalidate() {
	m.boundsValid = false
}

func computeBounds(verts []Vec3) Box3 {
	if len(verts) == 0 {
		return Box3{}
	}
	b := Box3{Min: verts[0], Max: verts[0]}
	for _, v := range verts[1:] {
		b.Min = b.Min.Min(v)
		b.Max = b.Max.Max(v)
	}
	return b
}

// NewMeshFromTriangles builds an unindexed mesh from a triangle soup.
func NewMeshFromTriangles(tris [][3]Vec3) *Mesh {
	m := &Mesh{
		Vertices: make([]Vec3, 0, len(tris)*3),
		Indices:  make([]uint32, 0, len(tris)*3),
	}
	for _, t := range tris {
		base := uint32(len(m.Vertices))
		m.Vertices = append(m.Vertices, t[0], t[1], t[2])
		m.Indices = append(m.Indices, base, base+1, base+2)
	}
	return m
}

// NewBoxMesh returns an axis-aligned box of the given size centered on the origin.
func NewBoxMesh(size Vec3) *Mesh {
	hx, hy, hz := size.X/2, size.Y/2, size.Z/2
	verts := []Vec3{
		{X: -hx, Y: -hy, Z: -hz}, {X: hx, Y: -hy, Z: -hz}, {X: hx, Y: hy, Z: -hz}, {X: -hx, Y: hy, Z: -hz},
		{X: -hx, Y: -hy, Z: hz}, {X: hx, Y: -hy, Z: hz}, {X: hx, Y: hy, Z: hz}, {X: -hx, Y: hy, Z: hz},
	}
	indices := []uint32{
		0, 2, 1, 0, 3, 2, // back
		4, 5, 6, 4, 6, 7, // front
		0, 1, 5, 0, 5, 4, // bottom
		3, 7, 6, 3, 6, 2, // top
		0, 4, 7, 0, 7, 3, // left
		1, 2, 6, 1, 6, 5, // right
	}
	return &Mesh{Vertices: verts, Indices: indices}
}

// NewPlaneMesh returns a width x depth quad on the XZ plane, facing +Y.
func NewPlaneMesh(width, depth float64) *Mesh {
	hw, hd := width/2, depth/2
	return &Mesh{
		Vertices: []Vec3{
			{X: -hw, Z: -hd}, {X: hw, Z: -hd}, {X: hw, Z: hd}, {X: -hw, Z: hd},
		},
		Indices:     []uint32{0, 2, 1, 0, 3, 2},
		DoubleSided: true,
	}
}
