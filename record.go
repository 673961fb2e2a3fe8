package slider

import (
	"errors"
	"fmt"
	"image"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/tanema/gween/ease"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// RecordOptions configures offline rendering of one transition.
type RecordOptions struct {
	Width, Height int            // output frame size; default 1280x720
	FPS           int            // default 60
	Duration      float32        // seconds; default 2.5
	Ease          ease.TweenFunc // progress curve; default InOutCubic
	Output        string         // video file for RecordTransition
	FFmpegPath    string         // ffmpeg binary; empty uses PATH
}

func (o *RecordOptions) fillDefaults() {
	if o.Width <= 0 {
		o.Width = 1280
	}
	if o.Height <= 0 {
		o.Height = 720
	}
	if o.FPS <= 0 {
		o.FPS = 60
	}
	if o.Duration <= 0 {
		o.Duration = DefaultTiming().Progress
	}
	if o.Ease == nil {
		o.Ease = transitionEase
	}
}

// FrameCount returns the number of frames rendered for o, including the
// first (progress 0) and last (progress 1) frames.
func (o RecordOptions) FrameCount() int {
	o.fillDefaults()
	return int(math.Round(float64(o.Duration)*float64(o.FPS))) + 1
}

// FrameProgress returns the eased progress of frame i.
func (o RecordOptions) FrameProgress(i int) float64 {
	o.fillDefaults()
	t := min(float32(i)/float32(o.FPS), o.Duration)
	return clamp(float64(o.Ease(t, 0, 1, o.Duration)), 0, 1)
}

var errStopFrames = errors.New("stop")

// RenderTransitionFrames renders the transition from a to b on the CPU, one
// frame per emit call. The frame buffer is reused between calls; emit must
// copy it to keep it. Returning an error from emit stops rendering.
func RenderTransitionFrames(a, b image.Image, opts RecordOptions, emit func(i int, frame *image.RGBA) error) error {
	opts.fillDefaults()
	ra, rb := toRGBA(a), toRGBA(b)
	if ra.Bounds().Empty() || rb.Bounds().Empty() {
		return fmt.Errorf("slider: record: %w", errEmptyImage)
	}
	frame := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	n := opts.FrameCount()
	for i := 0; i < n; i++ {
		renderTransitionRGBA(frame, ra, rb, opts.FrameProgress(i))
		if err := emit(i, frame); err != nil {
			return err
		}
	}
	return nil
}

// RecordTransition renders the transition from a to b and encodes it into
// opts.Output with ffmpeg, streaming raw RGBA frames through a pipe.
func RecordTransition(a, b image.Image, opts RecordOptions) error {
	opts.fillDefaults()
	if opts.Output == "" {
		return errors.New("slider: record: no output file")
	}

	pr, pw := io.Pipe()
	cmd := ffmpeg.Input("pipe:", ffmpeg.KwArgs{
		"f":       "rawvideo",
		"pix_fmt": "rgba",
		"s":       fmt.Sprintf("%dx%d", opts.Width, opts.Height),
		"r":       opts.FPS,
	}).Output(opts.Output, ffmpeg.KwArgs{
		"c:v":     "libx264",
		"pix_fmt": "yuv420p",
	}).OverWriteOutput().WithInput(pr)
	if opts.FFmpegPath != "" {
		cmd = cmd.SetFfmpegPath(opts.FFmpegPath)
	}

	errc := make(chan error, 1)
	go func() {
		err := cmd.Run()
		// Unblock the writer if ffmpeg exits early.
		pr.CloseWithError(errors.Join(err, errStopFrames))
		errc <- err
	}()

	renderErr := RenderTransitionFrames(a, b, opts, func(i int, frame *image.RGBA) error {
		if _, err := pw.Write(frame.Pix); err != nil {
			return fmt.Errorf("slider: record: frame %d: %w", i, err)
		}
		return nil
	})
	pw.Close()
	encErr := <-errc
	if encErr != nil {
		return fmt.Errorf("slider: record: ffmpeg: %w", encErr)
	}
	return renderErr
}

// WriteFramePNGs renders the transition from a to b into numbered PNG files
// under dir and returns their paths.
func WriteFramePNGs(a, b image.Image, opts RecordOptions, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("slider: record: %w", err)
	}
	var paths []string
	err := RenderTransitionFrames(a, b, opts, func(i int, frame *image.RGBA) error {
		path := filepath.Join(dir, fmt.Sprintf("frame_%04d.png", i))
		if err := writePNG(path, frame); err != nil {
			return fmt.Errorf("slider: record: %w", err)
		}
		paths = append(paths, path)
		return nil
	})
	return paths, err
}
