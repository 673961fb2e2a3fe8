package slider

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/rivo/uniseg"
	"golang.org/x/image/font/gofont/goregular"
)

// Font is the interface for text measurement and layout.
type Font interface {
	MeasureString(text string) (width, height float64)
	LineHeight() float64
}

// faceFont is implemented by fonts that can be drawn through text/v2.
// Fonts without a face (measurement-only fonts) lay out but draw nothing.
type faceFont interface {
	Face() text.Face
}

// --- TextBlock ---

// TextBlock holds text content and formatting for a NodeTypeText node.
type TextBlock struct {
	Content    string
	Font       Font
	Color      Color
	WrapWidth  float64 // 0 disables wrapping
	LineHeight float64 // override; 0 = use Font.LineHeight()
}

// lineHeight returns the effective line height for this text block.
func (tb *TextBlock) lineHeight() float64 {
	if tb.LineHeight > 0 {
		return tb.LineHeight
	}
	if tb.Font != nil {
		return tb.Font.LineHeight()
	}
	return 0
}

// Lines returns the content broken into visual lines at the block's wrap
// width. Without a font or wrap width, only explicit newlines break.
func (tb *TextBlock) Lines() []string {
	return wrapLines(tb.Content, tb.Font, tb.WrapWidth)
}

// Measure returns the laid-out width and height of the block.
func (tb *TextBlock) Measure() (w, h float64) {
	if tb.Font == nil {
		return 0, 0
	}
	lines := tb.Lines()
	for _, l := range lines {
		lw, _ := tb.Font.MeasureString(l)
		w = max(w, lw)
	}
	return w, float64(len(lines)) * tb.lineHeight()
}

// wrapLines breaks s into lines no wider than width, breaking only at Unicode
// line break opportunities. A single unbreakable segment wider than width is
// kept on its own line. Trailing whitespace is dropped from every line.
func wrapLines(s string, f Font, width float64) []string {
	if s == "" {
		return nil
	}
	var (
		lines []string
		cur   strings.Builder
		seg   string
		must  bool
	)
	flush := func() {
		lines = append(lines, strings.TrimRight(cur.String(), " \t\r\n"))
		cur.Reset()
	}
	rest, state := s, -1
	for len(rest) > 0 {
		seg, rest, must, state = uniseg.FirstLineSegmentInString(rest, state)
		if f != nil && width > 0 && cur.Len() > 0 {
			w, _ := f.MeasureString(strings.TrimRight(cur.String()+seg, " \t\r\n"))
			if w > width {
				flush()
			}
		}
		cur.WriteString(seg)
		if must && len(rest) > 0 {
			flush()
		}
	}
	if cur.Len() > 0 {
		flush()
	}
	return lines
}

// --- TTFFont ---

// TTFFont wraps Ebitengine's text/v2 for TrueType font rendering.
type TTFFont struct {
	face *text.GoTextFace
	size float64
	lh   float64 // cached line height
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadTTFFont(ttfData []byte, size float64) (*TTFFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("slider: failed to parse TTF data: %w", err)
	}
	face := &text.GoTextFace{
		Source: source,
		Size:   size,
	}
	m := face.Metrics()
	return &TTFFont{
		face: face,
		size: size,
		lh:   m.HAscent + m.HDescent + m.HLineGap,
	}, nil
}

// LoadDefaultFont loads the bundled Go Regular face at the given size.
func LoadDefaultFont(size float64) (*TTFFont, error) {
	return LoadTTFFont(goregular.TTF, size)
}

// MeasureString returns the width and height of the rendered text.
func (f *TTFFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *TTFFont) LineHeight() float64 {
	return f.lh
}

// Size returns the font size the face was created with.
func (f *TTFFont) Size() float64 {
	return f.size
}

// Face returns the underlying face for direct text/v2 rendering.
func (f *TTFFont) Face() text.Face {
	return f.face
}
