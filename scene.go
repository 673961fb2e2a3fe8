package slider

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

// Scene is the top-level object that owns the transition renderer, the slide
// content tree, the controller, and input and automation state. It implements
// ebiten.Game; Run drives it.
type Scene struct {
	root    *Node // slide content stage
	overlay *Node // drawn last (FPS widget)
	debug   bool

	// ClearColor fills the screen before the transition is drawn. It shows
	// through until both textures are assigned.
	ClearColor Color

	// OnAdvance is called for every advance signal (click, touch, key or
	// injected press), whether or not the controller accepts it.
	OnAdvance func()

	uniforms   Uniforms
	renderer   *Renderer
	controller *Controller
	textures   *TextureCache
	width      int
	height     int
	updateFunc func() error

	// Input and automation
	injectQueue []syntheticPointerEvent
	injectDown  bool
	testRunner  *TestRunner
	resizeFunc  func(w, h int)

	// ScreenshotDir is the directory queued screenshots are written to.
	ScreenshotDir   string
	screenshotQueue []string

	closed bool
}

// NewScene creates an empty scene. Call Start to attach slides.
func NewScene() *Scene {
	s := &Scene{
		root:          NewContainer("root"),
		overlay:       NewContainer("overlay"),
		ClearColor:    Color{0, 0, 0, 1},
		ScreenshotDir: "screenshots",
	}
	s.renderer = NewRenderer(&s.uniforms)
	return s
}

// NewSceneFromConfig loads the config's slide images from ImageDir and the
// bundled fonts at the configured sizes, and starts a scene sized to the
// config's window.
func NewSceneFromConfig(cfg *Config) (*Scene, error) {
	colors, err := cfg.Theme.Colors()
	if err != nil {
		return nil, err
	}
	titleFont, err := LoadDefaultFont(cfg.Fonts.TitleSize)
	if err != nil {
		return nil, err
	}
	bodyFont, err := LoadDefaultFont(cfg.Fonts.BodySize)
	if err != nil {
		return nil, err
	}
	cache, err := LoadTextures(os.DirFS(cfg.ImageDir), cfg.Slides)
	if err != nil {
		return nil, err
	}

	s := NewScene()
	s.ClearColor = colors.Background
	s.textures = cache
	s.Resize(cfg.Window.Width, cfg.Window.Height)
	err = s.Start(cfg.Slides, cache.Entries(), ControllerOptions{
		Style: SlideStyle{
			TitleFont: titleFont,
			BodyFont:  bodyFont,
			Text:      colors.Text,
			Muted:     colors.Muted,
		},
		Timing: cfg.Timing,
	})
	if err != nil {
		cache.Close()
		return nil, err
	}
	return s, nil
}

// Start creates the controller for slides and shows the first one. The
// viewport defaults to the scene's current size.
func (s *Scene) Start(slides []Slide, textures []TextureEntry, opts ControllerOptions) error {
	if s.controller != nil {
		return fmt.Errorf("slider: scene already started")
	}
	if opts.Viewport == (Vec2{}) {
		opts.Viewport = Vec2{float64(s.width), float64(s.height)}
	}
	c, err := NewController(slides, textures, &s.uniforms, s.root, opts)
	if err != nil {
		return err
	}
	s.controller = c
	return nil
}

// Root returns the content stage.
func (s *Scene) Root() *Node {
	return s.root
}

// Controller returns the slide controller, or nil before Start.
func (s *Scene) Controller() *Controller {
	return s.controller
}

// Uniforms returns the shader inputs shared by the controller and renderer.
func (s *Scene) Uniforms() *Uniforms {
	return &s.uniforms
}

// Size returns the current viewport size in pixels.
func (s *Scene) Size() (w, h int) {
	return s.width, s.height
}

// SetUpdateFunc sets a callback run at the end of every Update. Returning
// ebiten.Termination ends Run.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// AddOverlay adds a node drawn above the slide content.
func (s *Scene) AddOverlay(n *Node) {
	s.overlay.AddChild(n)
}

// Update processes automation and input, then advances every animation by
// one tick.
func (s *Scene) Update() error {
	if s.closed {
		return ebiten.Termination
	}
	dt := 1.0 / float64(ebiten.TPS())

	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInput()
	if s.controller != nil {
		s.controller.Update(float32(dt))
	}
	updateNodes(s.root, dt)
	updateNodes(s.overlay, dt)

	if s.updateFunc != nil {
		return s.updateFunc()
	}
	return nil
}

// Draw renders the transition quad, then the slide text, then overlays, and
// finally writes any queued screenshots.
func (s *Scene) Draw(screen *ebiten.Image) {
	screen.Fill(s.ClearColor)
	s.renderer.Draw(screen)
	DrawTree(screen, s.root)
	DrawTree(screen, s.overlay)
	s.flushScreenshots(screen)
}

// Layout reports the window size as the logical screen size and resizes the
// scene when it changes.
func (s *Scene) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != s.width || outsideHeight != s.height {
		s.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Resize updates the viewport size uniform and re-places the slide text. A
// transition in flight continues with the new size from the next frame.
func (s *Scene) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	s.width, s.height = w, h
	s.renderer.Resize(w, h)
	if s.controller != nil {
		s.controller.Resize(Vec2{float64(w), float64(h)})
	}
	debugf("resize %dx%d", w, h)
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, deep trees are reported, and transition events are logged
// to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// Close stops the controller and releases the textures the scene loaded.
// Update returns ebiten.Termination afterwards.
func (s *Scene) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	var err error
	if s.controller != nil {
		err = s.controller.Close()
	}
	if s.textures != nil {
		s.textures.Close()
		s.textures = nil
	}
	s.uniforms = Uniforms{}
	return err
}
