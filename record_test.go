package slider

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestRecordOptionsDefaults(t *testing.T) {
	var o RecordOptions
	o.fillDefaults()
	if o.Width != 1280 || o.Height != 720 || o.FPS != 60 {
		t.Errorf("defaults = %dx%d@%d", o.Width, o.Height, o.FPS)
	}
	if o.Duration != DefaultTiming().Progress {
		t.Errorf("Duration = %v, want %v", o.Duration, DefaultTiming().Progress)
	}
	if o.Ease == nil {
		t.Error("Ease should default")
	}
}

func TestFrameCount(t *testing.T) {
	tests := []struct {
		fps      int
		duration float32
		want     int
	}{
		{60, 2.5, 151},
		{30, 1, 31},
		{10, 0.25, 4}, // 2.5 rounds to 3
	}
	for _, tt := range tests {
		o := RecordOptions{FPS: tt.fps, Duration: tt.duration}
		if got := o.FrameCount(); got != tt.want {
			t.Errorf("FrameCount(%d fps, %vs) = %d, want %d", tt.fps, tt.duration, got, tt.want)
		}
	}
}

func TestFrameProgressEndpoints(t *testing.T) {
	o := RecordOptions{FPS: 10, Duration: 1, Ease: ease.Linear}
	assertNear(t, "first", o.FrameProgress(0), 0)
	if got := o.FrameProgress(5); got < 0.49 || got > 0.51 {
		t.Errorf("middle = %v, want ~0.5", got)
	}
	assertNear(t, "last", o.FrameProgress(o.FrameCount()-1), 1)
	assertNear(t, "past the end", o.FrameProgress(100), 1)
}

func TestRenderTransitionFrames(t *testing.T) {
	a, b := solid(8, 8, red), solid(8, 8, blue)
	opts := RecordOptions{Width: 16, Height: 9, FPS: 4, Duration: 1}

	var indices []int
	var first, last image.RGBA
	err := RenderTransitionFrames(a, b, opts, func(i int, frame *image.RGBA) error {
		indices = append(indices, i)
		if frame.Bounds().Dx() != 16 || frame.Bounds().Dy() != 9 {
			t.Errorf("frame %d bounds = %v", i, frame.Bounds())
		}
		if i == 0 {
			first = *frame
			first.Pix = append([]byte(nil), frame.Pix...)
		}
		last = *frame
		return nil
	})
	if err != nil {
		t.Fatalf("RenderTransitionFrames: %v", err)
	}
	if len(indices) != 5 {
		t.Fatalf("frames = %d, want 5", len(indices))
	}
	if got := first.RGBAAt(8, 4); got != red {
		t.Errorf("first frame center = %v, want A", got)
	}
	if got := last.RGBAAt(8, 4); got != blue {
		t.Errorf("last frame center = %v, want B", got)
	}
}

func TestRenderTransitionFramesStops(t *testing.T) {
	stop := errors.New("enough")
	var n int
	err := RenderTransitionFrames(solid(2, 2, red), solid(2, 2, blue), RecordOptions{Width: 4, Height: 4, FPS: 10, Duration: 1},
		func(i int, _ *image.RGBA) error {
			n++
			if i == 2 {
				return stop
			}
			return nil
		})
	if !errors.Is(err, stop) {
		t.Errorf("err = %v, want the emit error", err)
	}
	if n != 3 {
		t.Errorf("emit calls = %d, want 3", n)
	}
}

func TestRenderTransitionFramesEmptyImage(t *testing.T) {
	empty := image.NewRGBA(image.Rectangle{})
	err := RenderTransitionFrames(empty, solid(2, 2, blue), RecordOptions{}, func(int, *image.RGBA) error { return nil })
	if !errors.Is(err, errEmptyImage) {
		t.Errorf("err = %v, want errEmptyImage", err)
	}
}

func TestWriteFramePNGs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	paths, err := WriteFramePNGs(solid(4, 4, red), solid(4, 4, blue), RecordOptions{Width: 8, Height: 8, FPS: 2, Duration: 1}, dir)
	if err != nil {
		t.Fatalf("WriteFramePNGs: %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("paths = %v, want 3 frames", paths)
	}
	if filepath.Base(paths[2]) != "frame_0002.png" {
		t.Errorf("last path = %s", paths[2])
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("missing frame: %v", err)
		}
	}
}

func TestRecordTransitionNeedsOutput(t *testing.T) {
	if err := RecordTransition(solid(2, 2, red), solid(2, 2, blue), RecordOptions{}); err == nil {
		t.Error("expected error without an output file")
	}
}
