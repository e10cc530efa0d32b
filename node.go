package arbor

import (
	"sync/atomic"

	"github.com/jinzhu/copier"
)

// nodeIDCounter is atomic because asset loaders build subtrees off the loop goroutine.
var nodeIDCounter atomic.Uint32

func nextNodeID() uint32 {
	return nodeIDCounter.Add(1)
}

// Node is the fundamental scene graph element. Groups, meshes and entity roots
// are all Nodes; a node renders only when Mesh is set.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local). Rotation holds Euler angles in radians, applied X, Y, Z.
	Position Vec3
	Rotation Vec3
	Scale    Vec3

	// Visibility
	Visible bool

	// Geometry and appearance. Mesh is nil for pure group nodes.
	Mesh          *Mesh
	Material      *Material
	Tint          Color
	CastShadow    bool
	ReceiveShadow bool

	// Metadata
	UserData any

	disposed bool
}

// NewGroup creates a node with no geometry.
func NewGroup(name string) *Node {
	return &Node{
		ID:      nextNodeID(),
		Name:    name,
		Scale:   Vec3{X: 1, Y: 1, Z: 1},
		Visible: true,
		Tint:    ColorWhite,
	}
}

// NewMeshNode creates a node that renders mesh with material.
func NewMeshNode(name string, mesh *Mesh, material *Material) *Node {
	n := NewGroup(name)
	n.Mesh = mesh
	n.Material = material
	return n
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("arbor: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("arbor: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
}

// RemoveChild detaches child from this node. No-op if child is not a child of n.
func (n *Node) RemoveChild(child *Node) {
	if child == nil || child.Parent != n {
		return
	}
	n.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// HasChild reports whether child is a direct child of n.
func (n *Node) HasChild(child *Node) bool {
	for _, c := range n.children {
		if c == child {
			return true
		}
	}
	return false
}

// Traverse calls fn for n and every descendant, depth first, parents before children.
func (n *Node) Traverse(fn func(*Node)) {
	fn(n)
	for _, child := range n.children {
		child.Traverse(fn)
	}
}

// --- Transform setters ---

// SetPosition sets the node's local position.
func (n *Node) SetPosition(p Vec3) {
	n.Position = p
}

// SetScale sets a uniform local scale.
func (n *Node) SetScale(s float64) {
	n.Scale = Vec3{X: s, Y: s, Z: s}
}

// SetRotation sets the local Euler rotation in radians.
func (n *Node) SetRotation(r Vec3) {
	n.Rotation = r
}

// --- Cloning ---

// Clone returns a deep copy of the subtree rooted at n. The copy has no parent,
// fresh IDs, and its own meshes and materials, so mutating the clone never
// affects the original.
func (n *Node) Clone() *Node {
	c := &Node{
		ID:            nextNodeID(),
		Name:          n.Name,
		Position:      n.Position,
		Rotation:      n.Rotation,
		Scale:         n.Scale,
		Visible:       n.Visible,
		Tint:          n.Tint,
		CastShadow:    n.CastShadow,
		ReceiveShadow: n.ReceiveShadow,
		UserData:      n.UserData,
	}
	if n.Mesh != nil {
		c.Mesh = &Mesh{}
		deepCopy(c.Mesh, n.Mesh)
	}
	if n.Material != nil {
		c.Material = &Material{}
		deepCopy(c.Material, n.Material)
	}
	for _, child := range n.children {
		cc := child.Clone()
		cc.Parent = c
		c.children = append(c.children, cc)
	}
	return c
}

// deepCopy copies src into dst without sharing slices or pointers. A failed
// copy would leave the clone half built, so it panics like other tree misuse.
func deepCopy(dst, src any) {
	if err := copier.CopyWithOption(dst, src, copier.Option{DeepCopy: true}); err != nil {
		panic("arbor: clone: " + err.Error())
	}
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.Mesh = nil
	n.Material = nil
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node (or node itself).
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
