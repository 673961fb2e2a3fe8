package slider

import (
	"strings"
	"unicode/utf8"
)

// monoFont is a measurement-only font: every rune advances by adv pixels and
// lines are lh pixels tall. It has no face, so it lays out but draws nothing.
type monoFont struct {
	adv, lh float64
}

func (f monoFont) MeasureString(s string) (width, height float64) {
	lines := strings.Split(s, "\n")
	for _, l := range lines {
		width = max(width, float64(utf8.RuneCountInString(l))*f.adv)
	}
	return width, float64(len(lines)) * f.lh
}

func (f monoFont) LineHeight() float64 { return f.lh }

var testFont = monoFont{adv: 10, lh: 20}
