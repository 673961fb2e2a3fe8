package slider

import (
	"fmt"

	css "github.com/mazznoer/csscolorparser"
)

// ParseColor parses a CSS color string ("#1a1a1a", "rgb(255 0 0 / 50%)",
// "tomato", ...) into a Color.
func ParseColor(s string) (Color, error) {
	c, err := css.Parse(s)
	if err != nil {
		return Color{}, fmt.Errorf("slider: parse color %q: %w", s, err)
	}
	return Color{R: c.R, G: c.G, B: c.B, A: c.A}, nil
}

// MustParseColor is like ParseColor but panics on error. Intended for
// package-level defaults and examples.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}
