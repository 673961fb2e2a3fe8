package slider

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// DrawTree refreshes world transforms under root and draws the subtree into
// dst in tree order. Clip boxes restrict their descendants to the box's
// screen rectangle.
func DrawTree(dst *ebiten.Image, root *Node) {
	if root == nil || root.disposed {
		return
	}
	updateWorldTransform(root, identityTransform, 1, false)
	drawNode(dst, root)
}

func drawNode(dst *ebiten.Image, n *Node) {
	if !n.Visible || n.worldAlpha <= 0 {
		return
	}

	switch n.Type {
	case NodeTypeSprite:
		drawSprite(dst, n)
	case NodeTypeText:
		drawText(dst, n)
	}

	if len(n.children) == 0 {
		return
	}
	target := dst
	if n.Clip {
		r := clipRect(n.worldBox()).Intersect(dst.Bounds())
		if r.Empty() {
			return
		}
		target = dst.SubImage(r).(*ebiten.Image)
	}
	for _, c := range n.children {
		drawNode(target, c)
	}
}

// clipRect rounds a world box outward to whole pixels.
func clipRect(b Rect) image.Rectangle {
	return image.Rect(
		int(math.Floor(b.X)), int(math.Floor(b.Y)),
		int(math.Ceil(b.X+b.Width)), int(math.Ceil(b.Y+b.Height)),
	)
}

// geoM converts a world transform into an ebiten.GeoM.
func geoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// colorScale returns the premultiplied scale for tint c at the given alpha.
func colorScale(c Color, alpha float64) ebiten.ColorScale {
	a := clamp(c.A*alpha, 0, 1)
	var cs ebiten.ColorScale
	cs.Scale(float32(c.R*a), float32(c.G*a), float32(c.B*a), float32(a))
	return cs
}

func drawSprite(dst *ebiten.Image, n *Node) {
	if n.Image == nil {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM = geoM(n.worldTransform)
	op.ColorScale = colorScale(n.Color, n.worldAlpha)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(n.Image, &op)
}

func drawText(dst *ebiten.Image, n *Node) {
	tb := n.TextBlock
	if tb == nil || tb.Content == "" {
		return
	}
	ff, ok := tb.Font.(faceFont)
	if !ok {
		return
	}
	c := Color{tb.Color.R * n.Color.R, tb.Color.G * n.Color.G, tb.Color.B * n.Color.B, tb.Color.A * n.Color.A}

	var op text.DrawOptions
	op.GeoM = geoM(n.worldTransform)
	op.ColorScale = colorScale(c, n.worldAlpha)
	op.LineSpacing = tb.lineHeight()
	for i, line := range tb.Lines() {
		lineOp := op
		lineOp.GeoM = ebiten.GeoM{}
		lineOp.GeoM.Translate(0, float64(i)*op.LineSpacing)
		lineOp.GeoM.Concat(op.GeoM)
		text.Draw(dst, line, ff.Face(), &lineOp)
	}
}
