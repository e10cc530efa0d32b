package ebitenhost

import (
	"sort"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/arbor"
)

func boxAt(t *testing.T, w *arbor.World, name string, pos arbor.Vec3) *arbor.Node {
	t.Helper()
	n := arbor.NewMeshNode(name, arbor.NewBoxMesh(arbor.Vec3{X: 1, Y: 1, Z: 1}), arbor.NewStandardMaterial(arbor.ColorHex(0x808080)))
	n.Position = pos
	require.NoError(t, w.Add(arbor.NewStatic(n)))
	return n
}

func testWorld() *arbor.World {
	w := arbor.NewWorld()
	w.Camera().Position = arbor.Vec3{Z: 10}
	w.SetViewport(800, 600)
	return w
}

func TestCollectSortsBackToFront(t *testing.T) {
	w := testWorld()
	boxAt(t, w, "near", arbor.Vec3{})
	boxAt(t, w, "far", arbor.Vec3{X: 2, Z: -20})

	var r Renderer
	tris := r.collect(w, 800, 600)
	require.Len(t, tris, 24)
	assert.True(t, sort.SliceIsSorted(tris, func(i, j int) bool { return tris[i].depth > tris[j].depth }))
	assert.Greater(t, tris[0].depth, 25.0)
	assert.Less(t, tris[len(tris)-1].depth, 15.0)

	for _, tri := range tris {
		assert.Equal(t, 1.0, tri.color.A)
		assert.LessOrEqual(t, tri.color.R, 1.0)
	}
}

func TestCollectSkipsHiddenAndBehindCamera(t *testing.T) {
	w := testWorld()
	hidden := boxAt(t, w, "hidden", arbor.Vec3{})
	hidden.Visible = false
	boxAt(t, w, "behind", arbor.Vec3{Z: 30})

	var r Renderer
	assert.Empty(t, r.collect(w, 800, 600))
}

func TestCollectProjectsToViewport(t *testing.T) {
	w := testWorld()
	boxAt(t, w, "center", arbor.Vec3{})

	var r Renderer
	for _, tri := range r.collect(w, 800, 600) {
		for _, p := range tri.pts {
			assert.InDelta(t, 400, p.X, 60)
			assert.InDelta(t, 300, p.Y, 60)
		}
	}
}

func TestOrbitDragDeadZone(t *testing.T) {
	o := orbitDrag{deadZone: 4, speed: 0.01}

	_, _, ok := o.move(10, 10)
	assert.False(t, ok, "not held")

	o.press(100, 100)
	_, _, ok = o.move(102, 101)
	assert.False(t, ok, "inside dead zone")

	dAz, dPolar, ok := o.move(110, 100)
	require.True(t, ok)
	assert.InDelta(t, -0.10, dAz, 1e-9)
	assert.InDelta(t, 0, dPolar, 1e-9)

	// Once active, small moves keep orbiting.
	dAz, dPolar, ok = o.move(111, 98)
	require.True(t, ok)
	assert.InDelta(t, -0.01, dAz, 1e-9)
	assert.InDelta(t, 0.02, dPolar, 1e-9)

	o.release()
	_, _, ok = o.move(200, 200)
	assert.False(t, ok)
}

func TestCursorShape(t *testing.T) {
	assert.Equal(t, ebiten.CursorShapePointer, cursorShape(arbor.CursorPointer))
	assert.Equal(t, ebiten.CursorShapeDefault, cursorShape(arbor.CursorDefault))
}

func TestToRGBA(t *testing.T) {
	c := toRGBA(arbor.Color{R: 1.5, G: 0.5, B: -1, A: 1})
	assert.Equal(t, uint8(0xff), c.R)
	assert.Equal(t, uint8(128), c.G)
	assert.Equal(t, uint8(0), c.B)
	assert.Equal(t, uint8(0xff), c.A)
}

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"after-click", "after-click"},
		{"gizmo rotate/1", "gizmo_rotate_1"},
		{"v1.2", "v1.2"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeLabel(tt.in), "sanitizeLabel(%q)", tt.in)
	}
}

func TestUnpremultiply(t *testing.T) {
	img := unpremultiply([]byte{
		0x80, 0x40, 0x00, 0x80,
		0x10, 0x20, 0x30, 0xff,
	}, 2, 1)
	assert.Equal(t, []byte{0xff, 0x7f, 0x00, 0x80, 0x10, 0x20, 0x30, 0xff}, img.Pix)
}
