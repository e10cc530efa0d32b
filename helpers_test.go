package arbor

import "testing"

const (
	viewW = 800.0
	viewH = 600.0
)

// probe records every callback it receives.
type probe struct {
	name   string
	node   *Node
	events *[]string
	// onClick runs after the click is recorded.
	onClick func()
}

func newProbe(name string, pos Vec3, events *[]string) *probe {
	n := NewMeshNode(name, NewBoxMesh(Vec3{X: 1, Y: 1, Z: 1}), NewStandardMaterial(ColorWhite))
	n.Position = pos
	return &probe{name: name, node: n, events: events}
}

func (p *probe) WorldObject() *Node { return p.node }
func (p *probe) Name() string { return p.name }

func (p *probe) Click(ev *PointerEvent) {
	*p.events = append(*p.events, p.name+":click")
	if p.onClick != nil {
		p.onClick()
	}
}

func (p *probe) ClickOut(ev *PointerEvent) {
	*p.events = append(*p.events, p.name+":clickout")
}

func (p *probe) HoverEnter(ev *PointerEvent) {
	*p.events = append(*p.events, p.name+":enter")
}

func (p *probe) HoverOut(ev *PointerEvent) {
	*p.events = append(*p.events, p.name+":out")
}

// newTestCamera looks down -Z at the origin from (0, 0, 10).
func newTestCamera() *Camera {
	return NewCamera(45, viewW/viewH, 1, 500)
}

// screenPoint projects p to viewport pixels.
func screenPoint(t *testing.T, cam *Camera, p Vec3) (float64, float64) {
	t.Helper()
	ndc, _, ok := cam.Project(p)
	if !ok {
		t.Fatalf("Project(%v) behind camera", p)
	}
	return NDCToScreen(ndc, viewW, viewH)
}

func equalEvents(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func approx(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}

func approxVec(a, b Vec3) bool {
	return approx(a.X, b.X) && approx(a.Y, b.Y) && approx(a.Z, b.Z)
}
