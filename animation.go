package slider

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields simultaneously. Create one via
// the convenience constructors (TweenPosition, TweenY, TweenScale, TweenAlpha,
// TweenValue) and call Update(dt) each frame. The group auto-applies values
// and marks the target node dirty. If the target node is disposed, the group
// stops immediately.
//
// There is no global animation manager; owners call Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Node
	Done   bool
}

// Update advances all tweens by dt seconds, writes values to the target fields,
// and marks the node dirty. If the target node has been disposed, Done is set
// to true and no writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if g.target != nil {
		g.target.MarkDirty()
	}
}

// Stop marks the group done without writing further values.
func (g *TweenGroup) Stop() {
	g.Done = true
}

func (g *TweenGroup) add(field *float64, to float64, duration float32, fn ease.TweenFunc) {
	g.tweens[g.count] = gween.New(float32(*field), float32(to), duration, fn)
	g.fields[g.count] = field
	g.count++
}

// TweenPosition creates a TweenGroup that animates node.X and node.Y to the
// given target coordinates over the specified duration using the easing function.
func TweenPosition(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	g.add(&node.X, toX, duration, fn)
	g.add(&node.Y, toY, duration, fn)
	return g
}

// TweenY creates a TweenGroup that animates node.Y only.
func TweenY(node *Node, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	g.add(&node.Y, toY, duration, fn)
	return g
}

// TweenScale creates a TweenGroup that animates node.ScaleX and node.ScaleY to
// the given target values over the specified duration using the easing function.
func TweenScale(node *Node, toSX, toSY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	g.add(&node.ScaleX, toSX, duration, fn)
	g.add(&node.ScaleY, toSY, duration, fn)
	return g
}

// TweenAlpha creates a TweenGroup that animates node.Alpha to the target value
// over the specified duration using the easing function.
func TweenAlpha(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	g.add(&node.Alpha, to, duration, fn)
	return g
}

// TweenValue creates a TweenGroup that animates an arbitrary float64 from
// from to to. It is not bound to a node; the caller owns the field.
func TweenValue(field *float64, from, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	*field = from
	g := &TweenGroup{}
	g.add(field, to, duration, fn)
	return g
}
