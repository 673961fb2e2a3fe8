package slider

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// --- Constructor defaults ---

func TestNewContainerDefaults(t *testing.T) {
	n := NewContainer("test")
	assertNodeDefaults(t, n, "test", NodeTypeContainer)
}

func TestNewSpriteNilImage(t *testing.T) {
	n := NewSprite("spr", nil)
	assertNodeDefaults(t, n, "spr", NodeTypeSprite)
	if n.Width != 0 || n.Height != 0 {
		t.Errorf("size = (%v, %v), want (0, 0)", n.Width, n.Height)
	}
}

func TestNewTextDefaults(t *testing.T) {
	n := NewText("text", "hello", nil)
	assertNodeDefaults(t, n, "text", NodeTypeText)
	if n.TextBlock == nil || n.TextBlock.Content != "hello" {
		t.Fatalf("TextBlock = %+v, want content %q", n.TextBlock, "hello")
	}
}

func assertNodeDefaults(t *testing.T, n *Node, name string, typ NodeType) {
	t.Helper()
	if n.ID == 0 {
		t.Error("ID should be non-zero")
	}
	if n.Name != name {
		t.Errorf("Name = %q, want %q", n.Name, name)
	}
	if n.Type != typ {
		t.Errorf("Type = %d, want %d", n.Type, typ)
	}
	if n.ScaleX != 1 || n.ScaleY != 1 {
		t.Errorf("Scale = (%v, %v), want (1, 1)", n.ScaleX, n.ScaleY)
	}
	if n.Alpha != 1 {
		t.Errorf("Alpha = %v, want 1", n.Alpha)
	}
	if n.Color != (Color{1, 1, 1, 1}) {
		t.Errorf("Color = %v, want white", n.Color)
	}
	if !n.Visible {
		t.Error("Visible should be true")
	}
	if !n.transformDirty {
		t.Error("transformDirty should be true")
	}
}

func TestUniqueIDs(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	c := NewSprite("c", nil)
	if a.ID == b.ID || b.ID == c.ID || a.ID == c.ID {
		t.Errorf("IDs should be unique: %d, %d, %d", a.ID, b.ID, c.ID)
	}
}

// --- Classes ---

func TestClasses(t *testing.T) {
	n := NewContainer("n")
	n.Class = "line  paragraph"
	if !n.HasClass("line") || !n.HasClass("paragraph") {
		t.Errorf("HasClass failed for %q", n.Class)
	}
	if n.HasClass("lin") {
		t.Error("HasClass matched a prefix")
	}

	n.AddClass("title")
	n.AddClass("title")
	if n.Class != "line  paragraph title" {
		t.Errorf("Class = %q after AddClass", n.Class)
	}

	empty := NewContainer("e")
	empty.AddClass("word")
	if empty.Class != "word" {
		t.Errorf("Class = %q, want %q", empty.Class, "word")
	}
}

func TestFindTreeOrder(t *testing.T) {
	root := NewContainer("root")
	a := NewContainer("a")
	a.Class = "x"
	a1 := NewContainer("a1")
	a1.Class = "x"
	b := NewContainer("b")
	b.Class = "x y"
	root.AddChild(a)
	a.AddChild(a1)
	root.AddChild(b)

	var names []string
	for _, n := range root.FindAll("x") {
		names = append(names, n.Name)
	}
	if diff := cmp.Diff([]string{"a", "a1", "b"}, names); diff != "" {
		t.Errorf("FindAll order (-want +got):\n%s", diff)
	}
	if got := root.Find("y"); got != b {
		t.Errorf("Find(y) = %v, want b", got)
	}
	if got := root.Find("missing"); got != nil {
		t.Errorf("Find(missing) = %v, want nil", got)
	}
	if root.Find("x") != a {
		t.Error("Find should return the first match in tree order")
	}
}

func TestFindSkipsSelf(t *testing.T) {
	n := NewContainer("n")
	n.Class = "x"
	if n.Find("x") != nil {
		t.Error("Find should not consider the node itself")
	}
}

// --- AddChild ---

func TestAddChildBasic(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)

	if child.Parent != parent {
		t.Error("child.Parent should be parent")
	}
	if parent.NumChildren() != 1 || parent.ChildAt(0) != child {
		t.Error("parent should have child at index 0")
	}
}

func TestAddChildReparent(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	child := NewContainer("child")
	a.AddChild(child)
	b.AddChild(child)

	if a.NumChildren() != 0 {
		t.Error("old parent should lose the child")
	}
	if child.Parent != b {
		t.Error("child.Parent should be b")
	}
}

func TestAddChildCyclePanic(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	a.AddChild(b)

	defer func() {
		if recover() == nil {
			t.Error("expected panic on cycle")
		}
	}()
	b.AddChild(a)
}

func TestAddChildNilPanic(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on nil child")
		}
	}()
	NewContainer("p").AddChild(nil)
}

func TestRemoveChildWrongParentPanic(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	child := NewContainer("child")
	a.AddChild(child)

	defer func() {
		if recover() == nil {
			t.Error("expected panic removing a child from the wrong parent")
		}
	}()
	b.RemoveChild(child)
}

func TestRemoveFromParentNoOp(t *testing.T) {
	n := NewContainer("orphan")
	n.RemoveFromParent() // should not panic
}

func TestRemoveChildren(t *testing.T) {
	parent := NewContainer("parent")
	kids := []*Node{NewContainer("a"), NewContainer("b")}
	for _, k := range kids {
		parent.AddChild(k)
	}
	parent.RemoveChildren()

	if parent.NumChildren() != 0 {
		t.Errorf("NumChildren = %d, want 0", parent.NumChildren())
	}
	for _, k := range kids {
		if k.Parent != nil || k.IsDisposed() {
			t.Errorf("%s should be detached but not disposed", k.Name)
		}
	}
}

// --- Dispose ---

func TestDispose(t *testing.T) {
	root := NewContainer("root")
	parent := NewContainer("parent")
	child := NewText("child", "x", nil)
	root.AddChild(parent)
	parent.AddChild(child)

	parent.Dispose()

	if !parent.IsDisposed() || !child.IsDisposed() {
		t.Error("subtree should be disposed")
	}
	if parent.ID != 0 || child.ID != 0 {
		t.Error("disposed nodes should have ID = 0")
	}
	if child.TextBlock != nil {
		t.Error("disposed text node should drop its TextBlock")
	}
	if root.NumChildren() != 0 {
		t.Error("root should have 0 children after dispose")
	}
}

func TestDisposeIdempotent(t *testing.T) {
	n := NewContainer("n")
	n.Dispose()
	n.Dispose()
	if !n.IsDisposed() {
		t.Error("should still be disposed")
	}
}

// --- Dirty propagation ---

func TestDirtyPropagationOnAddChild(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	grandchild := NewContainer("grandchild")
	child.AddChild(grandchild)
	child.transformDirty = false
	grandchild.transformDirty = false

	parent.AddChild(child)

	if !child.transformDirty || !grandchild.transformDirty {
		t.Error("subtree should be dirty after AddChild")
	}
}

// --- updateNodes ---

func TestUpdateNodesTreeOrder(t *testing.T) {
	root := NewContainer("root")
	a := NewContainer("a")
	b := NewContainer("b")
	root.AddChild(a)
	a.AddChild(b)

	var order []string
	var gotDT float64
	for _, n := range []*Node{root, a, b} {
		n.OnUpdate = func(dt float64) {
			order = append(order, n.Name)
			gotDT = dt
		}
	}
	updateNodes(root, 0.5)

	if diff := cmp.Diff([]string{"root", "a", "b"}, order); diff != "" {
		t.Errorf("OnUpdate order (-want +got):\n%s", diff)
	}
	assertNear(t, "dt", gotDT, 0.5)
}
