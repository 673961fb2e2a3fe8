package slider

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title     string
	Width     int
	Height    int
	ShowFPS   bool
	Resizable bool
}

// RunConfigFrom converts a config's window section.
func RunConfigFrom(w WindowConfig) RunConfig {
	rc := RunConfig{Title: w.Title, Width: w.Width, Height: w.Height, ShowFPS: w.ShowFPS}
	if w.Resizable != nil {
		rc.Resizable = *w.Resizable
	}
	return rc
}

// Run opens a window and runs the scene until the window closes or Update
// returns ebiten.Termination. The scene is closed afterwards.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	scene.resizeFunc = ebiten.SetWindowSize
	scene.Resize(cfg.Width, cfg.Height)
	if cfg.ShowFPS {
		scene.AddOverlay(NewFPSWidget(scene))
	}

	err := ebiten.RunGame(scene)
	if errors.Is(err, ebiten.Termination) {
		err = nil
	}
	return errors.Join(err, scene.Close())
}
