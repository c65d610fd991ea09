package gridlist

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// ClickContext carries click event data.
type ClickContext struct {
	Node    *Node
	GlobalX float64
	GlobalY float64
	LocalX  float64
	LocalY  float64
}

// lastNodeID is bumped for every new node. Nodes are only built on the game
// thread, so it is not atomic.
var lastNodeID uint32

// Node is the scene element the list is built from. Positions are the node's
// center relative to its parent, in a y-up space (see package docs).
type Node struct {
	ID   uint32
	Name string

	Parent   *Node
	children []*Node

	// X and Y place the node's center in its parent's space.
	X, Y float64

	// Size in pixels. Zero-sized nodes are neither drawn nor hit-testable.
	Width, Height float64

	Visible      bool
	Interactable bool

	// Image is stretched to Width x Height; without an Image the node is
	// filled with Color.
	Image *ebiten.Image
	Color Color

	OnClick func(ClickContext)

	disposed bool
}

func newNode(name string) *Node {
	lastNodeID++
	return &Node{ID: lastNodeID, Name: name, Visible: true}
}

// NewContainer creates a node with no visual representation.
func NewContainer(name string) *Node {
	return newNode(name)
}

// NewRect creates a solid-color node of the given size.
func NewRect(name string, w, h float64, c Color) *Node {
	n := newNode(name)
	n.Width, n.Height, n.Color = w, h, c
	return n
}

// NewSprite creates a node that draws img at its native size, untinted.
func NewSprite(name string, img *ebiten.Image) *Node {
	n := newNode(name)
	n.Image, n.Color = img, ColorWhite
	if img != nil {
		size := img.Bounds().Size()
		n.Width, n.Height = float64(size.X), float64(size.Y)
	}
	return n
}

// AddChild makes child the last child of n, detaching it from any previous
// parent. It panics on a nil child or when child is n or one of n's
// ancestors.
func (n *Node) AddChild(child *Node) {
	switch {
	case child == nil:
		panic("gridlist: cannot add nil child")
	case isAncestor(child, n):
		panic("gridlist: adding child would create a cycle")
	}
	child.RemoveFromParent()
	child.Parent = n
	n.children = append(n.children, child)
}

// RemoveChild detaches child. It panics if child belongs to another node.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("gridlist: child's parent is not this node")
	}
	n.detach(child)
}

// RemoveFromParent detaches n from its parent, if it has one.
func (n *Node) RemoveFromParent() {
	if n.Parent != nil {
		n.Parent.detach(n)
	}
}

// Children returns the children in paint order. The returned slice MUST NOT
// be mutated.
func (n *Node) Children() []*Node {
	return n.children
}

// Dispose detaches n and marks it and its whole subtree disposed. Disposed
// nodes drop their image and click handler.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.disposeTree()
}

// IsDisposed reports whether Dispose was called on n or an ancestor.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

func (n *Node) disposeTree() {
	for _, child := range n.children {
		child.Parent = nil
		child.disposeTree()
	}
	*n = Node{Name: n.Name, disposed: true}
}

func (n *Node) detach(child *Node) {
	if i := slices.Index(n.children, child); i >= 0 {
		n.children = slices.Delete(n.children, i, i+1)
	}
	child.Parent = nil
}

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}
