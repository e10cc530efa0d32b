package arbor

import "testing"

func TestNewGroupDefaults(t *testing.T) {
	n := NewGroup("g")
	if n.Name != "g" || !n.Visible || n.Tint != ColorWhite {
		t.Errorf("defaults = %+v", n)
	}
	if n.Scale != (Vec3{X: 1, Y: 1, Z: 1}) {
		t.Errorf("Scale = %v, want unit", n.Scale)
	}
	if n.ID == 0 || NewGroup("h").ID == n.ID {
		t.Error("IDs should be unique and non-zero")
	}
}

func TestAddChildReparents(t *testing.T) {
	a, b, c := NewGroup("a"), NewGroup("b"), NewGroup("c")
	a.AddChild(c)
	b.AddChild(c)
	if a.NumChildren() != 0 || !b.HasChild(c) || c.Parent != b {
		t.Errorf("reparent failed: a=%d b=%v parent=%v", a.NumChildren(), b.HasChild(c), c.Parent.Name)
	}

	b.RemoveChild(a)
	if b.NumChildren() != 1 {
		t.Error("RemoveChild of a non-child should be a no-op")
	}
	c.RemoveFromParent()
	c.RemoveFromParent()
	if c.Parent != nil || b.NumChildren() != 0 {
		t.Error("RemoveFromParent failed")
	}
}

func TestAddChildPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"nil", func() { NewGroup("a").AddChild(nil) }},
		{"self", func() {
			a := NewGroup("a")
			a.AddChild(a)
		}},
		{"cycle", func() {
			a, b := NewGroup("a"), NewGroup("b")
			a.AddChild(b)
			b.AddChild(a)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestTraverseOrder(t *testing.T) {
	root := NewGroup("root")
	a, b := NewGroup("a"), NewGroup("b")
	root.AddChild(a)
	root.AddChild(b)
	a.AddChild(NewGroup("a1"))

	var names []string
	root.Traverse(func(n *Node) { names = append(names, n.Name) })
	want := []string{"root", "a", "a1", "b"}
	if !equalEvents(names, want) {
		t.Errorf("Traverse = %v, want %v", names, want)
	}
}

func TestCloneDeepCopies(t *testing.T) {
	root := NewGroup("tree")
	leaf := NewMeshNode("leaf", NewBoxMesh(Vec3{X: 1, Y: 1, Z: 1}), NewStandardMaterial(ColorHex(0x00ff00)))
	leaf.Position = Vec3{Y: 2}
	root.AddChild(leaf)
	parent := NewGroup("parent")
	parent.AddChild(root)

	c := root.Clone()
	if c.Parent != nil {
		t.Error("clone should be parentless")
	}
	if c.ID == root.ID || c.NumChildren() != 1 {
		t.Fatalf("clone id %d children %d", c.ID, c.NumChildren())
	}
	cl := c.Children()[0]
	if cl.Parent != c || cl.Position != leaf.Position {
		t.Error("child not cloned with its transform")
	}
	if cl.Mesh == leaf.Mesh || cl.Material == leaf.Material {
		t.Fatal("mesh and material must not be shared")
	}
	cl.Mesh.Indices[0] = 7
	cl.Material.Color = ColorWhite
	if leaf.Mesh.Indices[0] == 7 || leaf.Material.Color == ColorWhite {
		t.Error("mutating the clone changed the original")
	}
}

func TestDispose(t *testing.T) {
	root := NewGroup("root")
	child := NewMeshNode("child", NewBoxMesh(Vec3{X: 1, Y: 1, Z: 1}), nil)
	root.AddChild(child)
	scene := NewGroup("scene")
	scene.AddChild(root)

	root.Dispose()
	root.Dispose()
	if !root.IsDisposed() || !child.IsDisposed() {
		t.Error("subtree should be disposed")
	}
	if scene.NumChildren() != 0 || child.Parent != nil || child.Mesh != nil {
		t.Error("disposed nodes should be detached and cleared")
	}
}

func TestDeepCopyPanicsOnFailure(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for an unaddressable destination")
		}
	}()
	deepCopy(Mesh{}, &Mesh{})
}
