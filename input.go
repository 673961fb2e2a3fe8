package slider

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// advanceKeys are the keys that act like a click.
var advanceKeys = []ebiten.Key{ebiten.KeySpace, ebiten.KeyEnter, ebiten.KeyArrowRight}

// processInput is called from Scene.Update. A press anywhere in the window,
// a new touch, or one of the advance keys is an advance signal. Injected
// events take precedence over real input for the frame they are consumed in.
func (s *Scene) processInput() {
	if s.processInjectedInput() {
		return
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		s.signal()
		return
	}
	if touches := inpututil.AppendJustPressedTouchIDs(nil); len(touches) > 0 {
		s.signal()
		return
	}
	for _, k := range advanceKeys {
		if inpututil.IsKeyJustPressed(k) {
			s.signal()
			return
		}
	}
}

// signal forwards one advance signal to OnAdvance and the controller.
// Signals arriving during a transition are dropped by the controller.
func (s *Scene) signal() {
	if s.OnAdvance != nil {
		s.OnAdvance()
	}
	if s.controller == nil {
		return
	}
	s.controller.Advance()
}
