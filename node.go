package slider

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// NodeType distinguishes rendering behavior for a Node.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // group node with no visual output
	NodeTypeSprite                    // renders an image
	NodeTypeText                      // renders a TextBlock
)

// nodeIDCounter is a plain counter (single-threaded, no atomic).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the element of the slide content tree. It plays the role a DOM
// element plays in a web page: it has a class list used for queries, a local
// transform, and an optional clip box that hides descendants drawn outside it.
type Node struct {
	// Identity
	ID    uint32
	Name  string
	Type  NodeType
	Class string // space-separated class list

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local)
	X, Y     float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
	PivotX   float64
	PivotY   float64

	// Box size in local units. Used by Clip and by layout helpers.
	Width, Height float64

	// Clip restricts descendants to the node's box, like overflow: hidden.
	Clip bool

	// Computed during traversal
	worldTransform [6]float64
	worldAlpha     float64
	transformDirty bool

	Alpha   float64
	Visible bool
	Color   Color

	// Sprite fields (NodeTypeSprite)
	Image *ebiten.Image

	// Text fields (NodeTypeText)
	TextBlock *TextBlock

	// OnUpdate is called once per frame from Scene.Update with the frame delta.
	OnUpdate func(dt float64)

	disposed bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Alpha = 1
	n.Color = ColorWhite
	n.Visible = true
	n.transformDirty = true
}

// NewContainer creates a container node with no visual representation.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer}
	nodeDefaults(n)
	return n
}

// NewSprite creates a sprite node that draws img at its natural size.
func NewSprite(name string, img *ebiten.Image) *Node {
	n := &Node{Name: name, Type: NodeTypeSprite, Image: img}
	nodeDefaults(n)
	if img != nil {
		b := img.Bounds()
		n.Width = float64(b.Dx())
		n.Height = float64(b.Dy())
	}
	return n
}

// NewText creates a text node with the given content and font.
func NewText(name string, content string, font Font) *Node {
	n := &Node{
		Name: name,
		Type: NodeTypeText,
		TextBlock: &TextBlock{
			Content: content,
			Font:    font,
			Color:   ColorWhite,
		},
	}
	nodeDefaults(n)
	return n
}

// --- Classes ---

// HasClass reports whether the node's class list contains class.
func (n *Node) HasClass(class string) bool {
	for _, c := range strings.Fields(n.Class) {
		if c == class {
			return true
		}
	}
	return false
}

// AddClass appends class to the class list if it is not already present.
func (n *Node) AddClass(class string) {
	if n.HasClass(class) {
		return
	}
	if n.Class == "" {
		n.Class = class
		return
	}
	n.Class += " " + class
}

// --- Queries ---

// Find returns the first descendant (depth-first, tree order) carrying class,
// or nil. The node itself is not considered.
func (n *Node) Find(class string) *Node {
	for _, c := range n.children {
		if c.HasClass(class) {
			return c
		}
		if found := c.Find(class); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every descendant carrying class in tree order. The result is
// empty, not nil-checked by callers, when nothing matches.
func (n *Node) FindAll(class string) []*Node {
	return n.appendAll(class, nil)
}

func (n *Node) appendAll(class string, out []*Node) []*Node {
	for _, c := range n.children {
		if c.HasClass(class) {
			out = append(out, c)
		}
		out = c.appendAll(class, out)
	}
	return out
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("slider: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("slider: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	markSubtreeDirty(child)
	if globalDebug {
		debugCheckTreeDepth(child)
	}
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("slider: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	for _, child := range n.children {
		child.Parent = nil
		markSubtreeDirty(child)
	}
	n.children = n.children[:0]
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants. Tweens targeting a disposed
// node stop on their next update.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.Image = nil
	n.TextBlock = nil
	n.OnUpdate = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
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

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}

// updateNodes calls OnUpdate on every node of the subtree in tree order.
func updateNodes(n *Node, dt float64) {
	if n.OnUpdate != nil {
		n.OnUpdate(dt)
	}
	for _, c := range n.children {
		updateNodes(c, dt)
	}
}
