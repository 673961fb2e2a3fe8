// Record renders one slide transition offline and encodes it to a video with
// ffmpeg, or writes the frames as PNG files. No window or GPU is needed; the
// frames come from the CPU version of the lens transition.
//
//	go run ./demos/record -from 0 -out docs/transition.mp4
//	go run ./demos/record -from 2 -frames out/frames -fps 30
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/phanxgames/slider"
)

func main() {
	configPath := flag.String("config", "examples/slideshow/slides.yaml", "slide show config (YAML or JSON)")
	from := flag.Int("from", 0, "index of the outgoing slide; the incoming one is the next")
	out := flag.String("out", "transition.mp4", "output video file")
	frames := flag.String("frames", "", "write PNG frames to this directory instead of a video")
	width := flag.Int("width", 1280, "frame width")
	height := flag.Int("height", 720, "frame height")
	fps := flag.Int("fps", 60, "frames per second")
	ffmpegPath := flag.String("ffmpeg", "", "path to the ffmpeg binary")
	flag.Parse()

	cfg, err := slider.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	imgs, err := slider.DecodeSlideImages(os.DirFS(cfg.ImageDir), cfg.Slides)
	if err != nil {
		log.Fatal(err)
	}
	if *from < 0 || *from >= len(imgs) {
		log.Fatalf("-from %d out of range [0, %d)", *from, len(imgs))
	}
	a := imgs[*from]
	b := imgs[(*from+1)%len(imgs)]

	opts := slider.RecordOptions{
		Width:      *width,
		Height:     *height,
		FPS:        *fps,
		Duration:   cfg.Timing.Progress,
		Output:     *out,
		FFmpegPath: *ffmpegPath,
	}

	if *frames != "" {
		paths, err := slider.WriteFramePNGs(a, b, opts, *frames)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("wrote %d frames to %s\n", len(paths), *frames)
		return
	}
	if err := slider.RecordTransition(a, b, opts); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("wrote %s (%d frames)\n", *out, opts.FrameCount())
}
