// Package slider is a full-screen slide show for [Ebitengine] whose slides
// change through a circular lens reveal drawn by a Kage shader, while the
// slide text animates out and back in character by character and line by
// line.
//
// # Quick start
//
// Describe the slides in a YAML (or JSON) file and hand it to [Run]:
//
//	cfg, err := slider.LoadConfig("slides.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	scene, err := slider.NewSceneFromConfig(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	log.Fatal(slider.Run(scene, slider.RunConfigFrom(cfg.Window)))
//
// A click, a touch, or Space/Enter/Right advances to the next slide. Signals
// that arrive while a transition is in flight are dropped, and the sequence
// wraps from the last slide back to the first.
//
// # Pieces
//
// [TextureCache] decodes every slide image once and keeps it on the GPU at a
// shared cell size. [Renderer] draws one full-screen quad with the transition
// shader, reading the [Uniforms] the [Controller] writes: the current and
// next textures, their natural sizes, the viewport size and the progress
// scalar. [SampleTransition] and [RenderTransition] evaluate the same math on
// the CPU; [RecordTransition] uses them to encode a transition to video with
// ffmpeg.
//
// Slide text lives in a small tree of [Node] values. [SplitChars] and
// [SplitLines] decompose titles and paragraphs into clipped boxes whose inner
// nodes are animated by a [Timeline], the same way a web page would wrap each
// character and line in a span with overflow hidden.
//
// # Debugging
//
// [Scene.SetDebugMode] logs transition events to stderr and panics on use of
// disposed nodes. [LoadTestScript] drives a scene with scripted clicks, waits,
// resizes and screenshots.
//
// [Ebitengine]: https://ebitengine.org
package slider
