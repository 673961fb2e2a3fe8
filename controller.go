package slider

import (
	"errors"
	"fmt"

	"github.com/tanema/gween/ease"
)

// State is the controller's transition state.
type State uint8

const (
	StateIdle          State = iota // waiting for an advance signal
	StateTransitioning              // a transition is in flight
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateTransitioning:
		return "transitioning"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// TransitionState is a snapshot of the controller's state.
type TransitionState struct {
	Current       int
	Next          int
	Progress      float64
	Transitioning bool
}

// Easing curves of the slide transition.
var (
	transitionEase = ease.InOutCubic // shader progress and text exit/enter
	introEase      = ease.OutCubic   // first slide entrance
)

// ControllerOptions configures a Controller.
type ControllerOptions struct {
	Style    SlideStyle
	Timing   Timing
	Viewport Vec2

	// OnTransitionStart is called when an advance signal is accepted.
	OnTransitionStart func(from, to int)
	// OnTransitionEnd is called when the new slide's text has settled.
	OnTransitionEnd func(current int)
}

// Controller orchestrates slide transitions: on Advance it rewires the shader
// uniforms to the (current, next) texture pair, drives the progress scalar,
// and in parallel runs the text exit -> swap -> enter sequence. While a
// transition is in flight further advance signals are dropped.
type Controller struct {
	slides   []Slide
	textures []TextureEntry
	uniforms *Uniforms
	stage    *Node
	opts     ControllerOptions

	state   State
	current int
	next    int

	content      *Node
	progress     *TweenGroup
	progressNext int
	intro        *Timeline
	exit         *Timeline
	enter        *Timeline
}

// Errors returned by NewController.
var (
	ErrNoTextures       = errors.New("slider: no slides")
	ErrTextureMismatch  = errors.New("slider: slide and texture counts differ")
	ErrControllerClosed = errors.New("slider: controller closed")
)

// NewController creates a controller showing slide 0. textures must hold one
// entry per slide, in slide order, and be fully loaded. The first slide's text
// is built under stage and its entrance animation starts immediately.
func NewController(slides []Slide, textures []TextureEntry, uniforms *Uniforms, stage *Node, opts ControllerOptions) (*Controller, error) {
	if len(slides) == 0 {
		return nil, ErrNoTextures
	}
	if len(slides) != len(textures) {
		return nil, fmt.Errorf("%w: %d slides, %d textures", ErrTextureMismatch, len(slides), len(textures))
	}
	opts.Timing.fillDefaults()
	c := &Controller{
		slides:   slides,
		textures: textures,
		uniforms: uniforms,
		stage:    stage,
		opts:     opts,
	}
	uniforms.SetTextureA(textures[0])
	uniforms.SetTextureB(textures[1%len(textures)])
	uniforms.SetProgress(0)

	c.content = c.buildContent(0)
	c.content.Alpha = 1
	c.playIntro()
	return c, nil
}

func (c *Controller) buildContent(i int) *Node {
	content := BuildSlideContent(c.slides[i], c.opts.Style, c.opts.Viewport)
	Decompose(content)
	PlaceContent(content, c.opts.Viewport)
	c.stage.AddChild(content)
	return content
}

// playIntro brings the first slide's text in from below.
func (c *Controller) playIntro() {
	t := c.opts.Timing
	chars := CharTargets(c.content)
	lines := LineTargets(c.content)
	below := TweenVars{Prop: PropY, ToFunc: HeightFraction(1)}
	Set(chars, below)
	Set(lines, below)

	c.intro = NewTimeline().
		To(chars, TweenVars{Prop: PropY, To: 0, Duration: t.IntroDuration, Stagger: t.IntroStagger, Ease: introEase}, 0).
		To(lines, TweenVars{Prop: PropY, To: 0, Duration: t.IntroDuration, Stagger: t.IntroStagger, Ease: introEase}, t.IntroLineDelay)
}

// Advance handles an advance signal. It returns false, with no observable
// effect, when a transition is already in flight.
func (c *Controller) Advance() bool {
	if c.stage == nil {
		return false
	}
	if c.state == StateTransitioning {
		debugf("advance ignored: transition %d -> %d in flight", c.current, c.next)
		return false
	}
	c.state = StateTransitioning
	c.next = (c.current + 1) % len(c.slides)
	debugf("transition %d -> %d", c.current, c.next)

	if c.intro != nil {
		c.intro.Kill()
		c.intro = nil
	}

	c.uniforms.SetTextureA(c.textures[c.current])
	c.uniforms.SetTextureB(c.textures[c.next])
	c.startProgress(c.next)
	c.startExit(c.next)

	if c.opts.OnTransitionStart != nil {
		c.opts.OnTransitionStart(c.current, c.next)
	}
	return true
}

// startProgress drives the progress scalar 0 -> 1. On completion progress
// snaps back to 0 and texture A becomes the new slide, so the next transition
// starts from a consistent baseline.
func (c *Controller) startProgress(next int) {
	c.progress = TweenValue(&c.uniforms.Progress, 0, 1, c.opts.Timing.Progress, transitionEase)
	c.progressNext = next
}

// startExit moves the outgoing text up and out of its boxes, then swaps the
// content after the swap delay.
func (c *Controller) startExit(next int) {
	t := c.opts.Timing
	up := TweenVars{Prop: PropY, ToFunc: HeightFraction(-1), Duration: t.ExitDuration, Stagger: t.ExitStagger, Ease: transitionEase}

	exit := NewTimeline()
	exit.To(CharTargets(c.content), up, 0).
		To(LineTargets(c.content), up, t.ExitLineOffset).
		Call(func() { c.swap(exit, next) }, t.SwapDelay)
	c.exit = exit
}

// swap kills the exit timeline, replaces the outgoing content with the next
// slide's, and starts the entrance.
func (c *Controller) swap(exit *Timeline, next int) {
	exit.Kill()
	if c.content != nil {
		c.content.Dispose()
	}
	c.content = c.buildContent(next)

	chars := CharTargets(c.content)
	lines := LineTargets(c.content)
	below := TweenVars{Prop: PropY, ToFunc: HeightFraction(1)}
	Set(chars, below)
	Set(lines, below)
	c.content.SetAlpha(1)

	t := c.opts.Timing
	enter := NewTimeline().
		To(chars, TweenVars{Prop: PropY, To: 0, Duration: t.EnterDuration, Stagger: t.EnterCharStagger, Ease: transitionEase}, 0).
		To(lines, TweenVars{Prop: PropY, To: 0, Duration: t.EnterDuration, Stagger: t.EnterLineStagger, Ease: transitionEase}, t.EnterLineOffset)
	enter.OnComplete = func() { c.finish(next) }
	c.enter = enter
}

// finish commits the new index and returns to idle.
func (c *Controller) finish(next int) {
	c.current = next
	c.state = StateIdle
	debugf("transition settled on %d", c.current)
	if c.opts.OnTransitionEnd != nil {
		c.opts.OnTransitionEnd(c.current)
	}
}

// Update advances every running animation by dt seconds.
func (c *Controller) Update(dt float32) {
	if c.progress != nil {
		c.progress.Update(dt)
		c.uniforms.SetProgress(c.uniforms.Progress)
		if c.progress.Done {
			c.progress = nil
			c.uniforms.SetProgress(0)
			c.uniforms.SetTextureA(c.textures[c.progressNext])
		}
	}
	if c.intro != nil {
		c.intro.Update(dt)
		if c.intro.Done {
			c.intro = nil
		}
	}
	if c.exit != nil {
		c.exit.Update(dt)
		if c.exit.Done {
			c.exit = nil
		}
	}
	if c.enter != nil {
		enter := c.enter
		enter.Update(dt)
		if enter.Done && c.enter == enter {
			c.enter = nil
		}
	}
}

// Resize re-places the current content for a new viewport size.
func (c *Controller) Resize(viewport Vec2) {
	c.opts.Viewport = viewport
	if c.content != nil {
		PlaceContent(c.content, viewport)
	}
}

// State returns a snapshot of the transition state.
func (c *Controller) State() TransitionState {
	return TransitionState{
		Current:       c.current,
		Next:          c.next,
		Progress:      c.uniforms.Progress,
		Transitioning: c.state == StateTransitioning,
	}
}

// Mode returns the state machine state.
func (c *Controller) Mode() State {
	return c.state
}

// Current returns the index of the slide on screen.
func (c *Controller) Current() int {
	return c.current
}

// IsTransitioning reports whether a transition is in flight. It is the only
// source of truth for whether Advance will be accepted.
func (c *Controller) IsTransitioning() bool {
	return c.state == StateTransitioning
}

// Timing returns the transition timing in use.
func (c *Controller) Timing() Timing {
	return c.opts.Timing
}

// Content returns the text subtree currently on stage.
func (c *Controller) Content() *Node {
	return c.content
}

// Close stops every animation and disposes the content subtree. Advance is a
// no-op afterwards.
func (c *Controller) Close() error {
	if c.stage == nil {
		return ErrControllerClosed
	}
	for _, tl := range []*Timeline{c.intro, c.exit, c.enter} {
		if tl != nil {
			tl.Kill()
		}
	}
	c.intro, c.exit, c.enter = nil, nil, nil
	if c.progress != nil {
		c.progress.Stop()
		c.progress = nil
	}
	if c.content != nil {
		c.content.Dispose()
		c.content = nil
	}
	c.stage = nil
	c.state = StateIdle
	return nil
}
