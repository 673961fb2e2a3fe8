package slider

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// startedScene returns a 1280x720 scene showing n image-less slides.
func startedScene(t *testing.T, n int) *Scene {
	t.Helper()
	s := NewScene()
	s.Resize(1280, 720)
	opts := testOptions()
	opts.Viewport = Vec2{}
	if err := s.Start(testSlides(n), testTextures(n), opts); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return s
}

func TestNewSceneDefaults(t *testing.T) {
	s := NewScene()
	if s.Root() == nil || s.Controller() != nil {
		t.Error("new scene should have a root and no controller")
	}
	if s.ClearColor != (Color{0, 0, 0, 1}) {
		t.Errorf("ClearColor = %v, want opaque black", s.ClearColor)
	}
	if w, h := s.Size(); w != 0 || h != 0 {
		t.Errorf("Size = %dx%d, want 0x0", w, h)
	}
}

func TestSceneStart(t *testing.T) {
	s := startedScene(t, 3)
	c := s.Controller()
	if c == nil {
		t.Fatal("Start should create the controller")
	}
	if c.opts.Viewport != (Vec2{1280, 720}) {
		t.Errorf("viewport = %v, want the scene size", c.opts.Viewport)
	}
	if s.Root().NumChildren() != 1 {
		t.Errorf("root children = %d, want the slide content", s.Root().NumChildren())
	}
	if err := s.Start(testSlides(3), testTextures(3), testOptions()); err == nil {
		t.Error("second Start should fail")
	}
}

func TestSceneStartError(t *testing.T) {
	s := NewScene()
	err := s.Start(testSlides(2), testTextures(1), testOptions())
	if !errors.Is(err, ErrTextureMismatch) {
		t.Errorf("err = %v, want ErrTextureMismatch", err)
	}
	if s.Controller() != nil {
		t.Error("failed Start should leave no controller")
	}
}

func TestSceneResize(t *testing.T) {
	s := startedScene(t, 2)
	title := s.Controller().Content().Find(ClassSlideTitle)
	y := title.Y

	s.Resize(1280, 1000)
	if got := s.Uniforms().ViewportSize; got != (Vec2{1280, 1000}) {
		t.Errorf("ViewportSize = %v, want (1280, 1000)", got)
	}
	assertNear(t, "title y", title.Y, y+140)

	s.Resize(0, 500)
	if w, h := s.Size(); w != 1280 || h != 1000 {
		t.Errorf("non-positive resize should be ignored, got %dx%d", w, h)
	}
}

func TestSceneLayout(t *testing.T) {
	s := NewScene()
	w, h := s.Layout(640, 480)
	if w != 640 || h != 480 {
		t.Errorf("Layout = %dx%d, want 640x480", w, h)
	}
	if got := s.Uniforms().ViewportSize; got != (Vec2{640, 480}) {
		t.Errorf("ViewportSize = %v after Layout", got)
	}
}

func TestSceneSignalAdvances(t *testing.T) {
	s := startedScene(t, 3)
	var signals int
	s.OnAdvance = func() { signals++ }

	s.signal()
	s.signal()
	if signals != 2 {
		t.Errorf("OnAdvance calls = %d, want 2", signals)
	}
	st := s.Controller().State()
	if !st.Transitioning || st.Next != 1 {
		t.Errorf("state = %+v, want transitioning to 1", st)
	}
}

func TestSceneClose(t *testing.T) {
	s := startedScene(t, 2)
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if s.Root().NumChildren() != 0 {
		t.Error("Close should dispose the slide content")
	}
	if err := s.Update(); !errors.Is(err, ebiten.Termination) {
		t.Errorf("Update after Close = %v, want ebiten.Termination", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close = %v, want nil", err)
	}
}

func TestSceneUpdateFunc(t *testing.T) {
	s := NewScene()
	stop := errors.New("stop")
	s.SetUpdateFunc(func() error { return stop })
	if err := s.Update(); !errors.Is(err, stop) {
		t.Errorf("Update = %v, want the update func error", err)
	}
}
