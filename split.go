package slider

import (
	"strings"

	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"
)

// Class markers produced and consumed by text decomposition.
const (
	ClassTitle     = "title"     // text node split into characters
	ClassParagraph = "paragraph" // text node split into lines
	ClassWord      = "word"
	ClassChar      = "char"       // clipping box around one grapheme
	ClassCharGlyph = "char-glyph" // animated grapheme inside a char box
	ClassLine      = "line"       // clipping box around one visual line
	ClassLineText  = "line-text"  // animated text inside a line box
)

// SplitChars replaces the text of n with one node per grapheme cluster,
// grouped into word nodes with a literal space word between words. The
// original text is cleared from n so it is drawn only through the children.
//
// Splitting is idempotent: if n already contains char nodes, or has no text,
// nothing changes and false is returned.
func SplitChars(n *Node) bool {
	if n == nil || n.TextBlock == nil || n.TextBlock.Font == nil {
		return false
	}
	if n.Find(ClassChar) != nil {
		return false
	}
	tb := n.TextBlock
	words := strings.Fields(norm.NFC.String(tb.Content))
	if len(words) == 0 {
		return false
	}

	lh := tb.lineHeight()
	var x, y float64
	for i, w := range words {
		word := newWordNode(w, tb, lh)
		if tb.WrapWidth > 0 && x > 0 && x+word.Width > tb.WrapWidth {
			x = 0
			y += lh
		}
		word.SetPosition(x, y)
		n.AddChild(word)
		x += word.Width

		if i < len(words)-1 {
			space := newWordNode(" ", tb, lh)
			space.SetPosition(x, y)
			n.AddChild(space)
			x += space.Width
		}
	}
	n.Width = max(n.Width, x)
	n.Height = y + lh
	tb.Content = ""
	return true
}

// newWordNode builds a word container holding one clipped char box per
// grapheme cluster of s.
func newWordNode(s string, tb *TextBlock, lh float64) *Node {
	word := NewContainer("word")
	word.Class = ClassWord

	var x float64
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		cluster := g.Str()
		w, _ := tb.Font.MeasureString(cluster)

		box := NewContainer("char")
		box.Class = ClassChar
		box.Clip = true
		box.X = x
		box.Width, box.Height = w, lh

		glyph := NewText("char-glyph", cluster, tb.Font)
		glyph.Class = ClassCharGlyph
		glyph.TextBlock.Color = tb.Color
		glyph.TextBlock.LineHeight = tb.LineHeight
		glyph.Width, glyph.Height = w, lh

		box.AddChild(glyph)
		word.AddChild(box)
		x += w
	}
	word.Width, word.Height = x, lh
	return word
}

// SplitLines replaces the text of n with one clipped node per visual line,
// breaking at the block's wrap width.
//
// Splitting is idempotent: if n already contains line nodes, or has no text,
// nothing changes and false is returned.
func SplitLines(n *Node) bool {
	if n == nil || n.TextBlock == nil || n.TextBlock.Font == nil {
		return false
	}
	if n.Find(ClassLine) != nil {
		return false
	}
	tb := n.TextBlock
	lines := wrapLines(norm.NFC.String(tb.Content), tb.Font, tb.WrapWidth)
	if len(lines) == 0 {
		return false
	}

	lh := tb.lineHeight()
	var maxW float64
	for i, l := range lines {
		w, _ := tb.Font.MeasureString(l)
		maxW = max(maxW, w)
		boxW := w
		if tb.WrapWidth > 0 {
			boxW = tb.WrapWidth
		}

		box := NewContainer("line")
		box.Class = ClassLine
		box.Clip = true
		box.Y = float64(i) * lh
		box.Width, box.Height = boxW, lh

		inner := NewText("line-text", l, tb.Font)
		inner.Class = ClassLineText
		inner.TextBlock.Color = tb.Color
		inner.TextBlock.LineHeight = tb.LineHeight
		inner.Width, inner.Height = w, lh

		box.AddChild(inner)
		n.AddChild(box)
	}
	n.Width = max(n.Width, maxW)
	n.Height = float64(len(lines)) * lh
	tb.Content = ""
	return true
}

// Decompose splits every title under root into characters and every
// paragraph under root into lines. Already decomposed nodes are left alone.
func Decompose(root *Node) {
	for _, t := range root.FindAll(ClassTitle) {
		SplitChars(t)
	}
	for _, p := range root.FindAll(ClassParagraph) {
		SplitLines(p)
	}
}

// CharTargets returns the animated grapheme nodes under root in tree order.
func CharTargets(root *Node) []*Node {
	return root.FindAll(ClassCharGlyph)
}

// LineTargets returns the animated line nodes under root in tree order.
func LineTargets(root *Node) []*Node {
	return root.FindAll(ClassLineText)
}
