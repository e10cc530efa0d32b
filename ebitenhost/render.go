package ebitenhost

import (
	"image"
	"image/color"
	"sort"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/arbor"
)

// maxBatchTris is the maximum number of triangles per DrawTriangles32 call.
const maxBatchTris = 16384

// whiteSubImage is the center pixel of a white 3x3 image, the source texture
// for solid triangles. Created on first draw.
var whiteSubImage *ebiten.Image

func whiteTexture() *ebiten.Image {
	if whiteSubImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// axisColors are the gizmo handle colors by axis.
var axisColors = [...]color.RGBA{
	arbor.AxisX: {R: 0xe5, G: 0x39, B: 0x35, A: 0xff},
	arbor.AxisY: {R: 0x43, G: 0xa0, B: 0x47, A: 0xff},
	arbor.AxisZ: {R: 0x1e, G: 0x88, B: 0xe5, A: 0xff},
}

// projTri is one shaded triangle in screen space.
type projTri struct {
	pts   [3]arbor.Vec2
	depth float64
	color arbor.Color
}

// Stats holds per-frame render metrics.
type Stats struct {
	Triangles int
	DrawCalls int
	Elapsed   time.Duration
}

// Renderer draws a World with flat-shaded, depth-sorted triangles.
type Renderer struct {
	tris  []projTri
	verts []ebiten.Vertex
	inds  []uint32
	stats Stats
}

// Stats returns the metrics of the last Draw.
func (r *Renderer) Stats() Stats { return r.stats }

// collect projects and shades every visible mesh triangle in w, sorted back
// to front.
func (r *Renderer) collect(w *arbor.World, width, height float64) []projTri {
	r.tris = r.tris[:0]
	cam := w.Camera()
	env := w.Environment()
	w.Root().WalkWorld(func(n *arbor.Node, world arbor.Matrix) bool {
		if n.Mesh == nil || n.Mesh.IsEmpty() || n.Material == nil {
			return true
		}
		base := n.Material.Color.Mul(n.Tint)
		nv := uint32(len(n.Mesh.Vertices))
		for i := 0; i < n.Mesh.TriangleCount(); i++ {
			if n.Mesh.Indices[i*3] >= nv || n.Mesh.Indices[i*3+1] >= nv || n.Mesh.Indices[i*3+2] >= nv {
				continue
			}
			la, lb, lc := n.Mesh.Triangle(i)
			corners := [3]arbor.Vec3{world.MulPosition(la), world.MulPosition(lb), world.MulPosition(lc)}

			var t projTri
			visible := true
			for k, p := range corners {
				ndc, depth, ok := cam.Project(p)
				if !ok {
					visible = false
					break
				}
				x, y := arbor.NDCToScreen(ndc, width, height)
				t.pts[k] = arbor.Vec2{X: x, Y: y}
				t.depth += depth / 3
			}
			if !visible {
				continue
			}

			normal := corners[1].Sub(corners[0]).Cross(corners[2].Sub(corners[0]))
			if normal.Length() == 0 {
				continue
			}
			centroid := corners[0].Add(corners[1]).Add(corners[2]).MulScalar(1.0 / 3)
			if normal.Dot(cam.Position.Sub(centroid)) < 0 {
				normal = normal.MulScalar(-1)
			}
			t.color = env.Shade(normal, base, false)
			r.tris = append(r.tris, t)
		}
		return true
	})
	sort.Slice(r.tris, func(i, j int) bool { return r.tris[i].depth > r.tris[j].depth })
	return r.tris
}

// Draw renders w onto screen.
func (r *Renderer) Draw(screen *ebiten.Image, w *arbor.World) {
	start := time.Now()
	b := screen.Bounds()
	width, height := float64(b.Dx()), float64(b.Dy())

	screen.Fill(toRGBA(w.Environment().Background))
	tris := r.collect(w, width, height)

	r.stats = Stats{Triangles: len(tris)}
	for lo := 0; lo < len(tris); lo += maxBatchTris {
		hi := min(lo+maxBatchTris, len(tris))
		r.flush(screen, tris[lo:hi])
	}
	r.drawGizmo(screen, w, width, height)
	r.stats.Elapsed = time.Since(start)
}

func (r *Renderer) flush(screen *ebiten.Image, tris []projTri) {
	r.verts = r.verts[:0]
	r.inds = r.inds[:0]
	for _, t := range tris {
		base := uint32(len(r.verts))
		for _, p := range t.pts {
			r.verts = append(r.verts, ebiten.Vertex{
				DstX:   float32(p.X),
				DstY:   float32(p.Y),
				SrcX:   1,
				SrcY:   1,
				ColorR: float32(t.color.R),
				ColorG: float32(t.color.G),
				ColorB: float32(t.color.B),
				ColorA: float32(t.color.A),
			})
		}
		r.inds = append(r.inds, base, base+1, base+2)
	}
	var triOp ebiten.DrawTrianglesOptions
	triOp.AntiAlias = false
	screen.DrawTriangles32(r.verts, r.inds, whiteTexture(), &triOp)
	r.stats.DrawCalls++
}

func (r *Renderer) drawGizmo(screen *ebiten.Image, w *arbor.World, width, height float64) {
	cam := w.Camera()
	for _, seg := range w.TransformControl().Segments() {
		a, _, okA := cam.Project(seg.Start)
		b, _, okB := cam.Project(seg.End)
		if !okA || !okB {
			continue
		}
		x0, y0 := arbor.NDCToScreen(a, width, height)
		x1, y1 := arbor.NDCToScreen(b, width, height)
		vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 3, axisColors[seg.Axis], true)
	}
}

func toRGBA(c arbor.Color) color.RGBA {
	clamp := func(v float64) uint8 {
		switch {
		case v <= 0:
			return 0
		case v >= 1:
			return 0xff
		default:
			return uint8(v*255 + 0.5)
		}
	}
	return color.RGBA{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B), A: clamp(c.A)}
}
