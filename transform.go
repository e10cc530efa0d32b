package arbor

import (
	"github.com/deadsy/sdfx/sdf"
)

// Matrix is a 4x4 affine transform.
type Matrix = sdf.M44

// identityMatrix is the identity transform.
var identityMatrix = sdf.Identity3d()

// computeLocalMatrix computes the node's local transform.
//
// Composition order:
//
//	Scale -> RotateZ -> RotateY -> RotateX -> Translate(Position)
func computeLocalMatrix(n *Node) Matrix {
	m := sdf.Translate3d(n.Position)
	if n.Rotation.X != 0 {
		m = m.Mul(sdf.RotateX(n.Rotation.X))
	}
	if n.Rotation.Y != 0 {
		m = m.Mul(sdf.RotateY(n.Rotation.Y))
	}
	if n.Rotation.Z != 0 {
		m = m.Mul(sdf.RotateZ(n.Rotation.Z))
	}
	return m.Mul(sdf.Scale3d(n.Scale))
}

// LocalMatrix returns the node's local transform relative to its parent.
func (n *Node) LocalMatrix() Matrix {
	return computeLocalMatrix(n)
}

// WorldMatrix returns the transform from this node's local space to world
// space, walking up the parent chain.
func (n *Node) WorldMatrix() Matrix {
	m := computeLocalMatrix(n)
	for p := n.Parent; p != nil; p = p.Parent {
		m = computeLocalMatrix(p).Mul(m)
	}
	return m
}

// LocalToWorld converts a point in this node's local space to world space.
func (n *Node) LocalToWorld(p Vec3) Vec3 {
	return n.WorldMatrix().MulPosition(p)
}

// WorldToLocal converts a world-space point to this node's local space.
func (n *Node) WorldToLocal(p Vec3) Vec3 {
	return n.WorldMatrix().Inverse().MulPosition(p)
}

// WorldPosition returns the node origin in world space.
func (n *Node) WorldPosition() Vec3 {
	return n.LocalToWorld(Vec3{})
}

// WorldBounds returns the world-space AABB of every mesh in the subtree.
// ok is false when the subtree has no geometry.
func (n *Node) WorldBounds() (box Box3, ok bool) {
	walkWorld(n, n.parentWorldMatrix(), func(node *Node, world Matrix) bool {
		if node.Mesh == nil || node.Mesh.IsEmpty() {
			return true
		}
		b := world.MulBox(node.Mesh.Bounds())
		if !ok {
			box, ok = b, true
			return true
		}
		box = Box3{Min: box.Min.Min(b.Min), Max: box.Max.Max(b.Max)}
		return true
	})
	return box, ok
}

// parentWorldMatrix returns the world matrix of n's parent, or identity.
func (n *Node) parentWorldMatrix() Matrix {
	if n.Parent == nil {
		return identityMatrix
	}
	return n.Parent.WorldMatrix()
}

// walkWorld visits n and its descendants with their world matrices,
// computed top down from parentWorld. fn returns false to skip a subtree.
func walkWorld(n *Node, parentWorld Matrix, fn func(*Node, Matrix) bool) {
	world := parentWorld.Mul(computeLocalMatrix(n))
	if !fn(n, world) {
		return
	}
	for _, child := range n.children {
		walkWorld(child, world, fn)
	}
}

// WalkWorld visits n and its visible descendants with their world matrices.
// fn returns false to skip a node's children. Hidden subtrees are skipped.
func (n *Node) WalkWorld(fn func(node *Node, world Matrix) bool) {
	walkWorld(n, n.parentWorldMatrix(), func(node *Node, world Matrix) bool {
		if !node.Visible {
			return false
		}
		return fn(node, world)
	})
}
