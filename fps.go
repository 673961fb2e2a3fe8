package slider

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsRefresh is how often the FPS widget redraws, in seconds.
const fpsRefresh = 0.5

// NewFPSWidget creates a sprite that shows the current FPS and TPS along with
// the slide controller's state. It redraws itself about twice a second.
func NewFPSWidget(s *Scene) *Node {
	// 160x48 fits three DebugPrint lines.
	img := ebiten.NewImage(160, 48)
	node := NewSprite("fps_widget", img)
	node.X, node.Y = 8, 8

	var elapsed float64
	node.OnUpdate = func(dt float64) {
		elapsed += dt
		if elapsed < fpsRefresh {
			return
		}
		elapsed = 0

		img.Clear()
		img.Fill(color.RGBA{0, 0, 0, 128})
		msg := fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
		if c := s.Controller(); c != nil {
			st := c.State()
			msg += fmt.Sprintf("\nslide %d/%d p=%.2f", st.Current+1, len(c.slides), st.Progress)
		}
		ebitenutil.DebugPrint(img, msg)
	}
	return node
}
