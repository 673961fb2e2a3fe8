package slider

import (
	"slices"

	"github.com/tanema/gween/ease"
)

// Prop selects the node field a timeline step animates.
type Prop uint8

const (
	PropY     Prop = iota // node.Y
	PropX                 // node.X
	PropAlpha             // node.Alpha
	PropScale             // node.ScaleX and node.ScaleY together
)

// AtEnd, used as a position, places a step after everything already added.
const AtEnd float32 = -1

// TweenVars describes one timeline step applied to a set of targets.
type TweenVars struct {
	Prop Prop
	To   float64
	// ToFunc, when set, computes a per-target end value and overrides To.
	ToFunc   func(i int, n *Node) float64
	Duration float32
	// Stagger delays the start of each successive target.
	Stagger float32
	Ease    ease.TweenFunc // nil means linear
}

// target resolves the end value for the i-th target.
func (v *TweenVars) target(i int, n *Node) float64 {
	if v.ToFunc != nil {
		return v.ToFunc(i, n)
	}
	return v.To
}

// HeightFraction returns a ToFunc that resolves to f times each target's
// Height, the equivalent of a percentage translate.
func HeightFraction(f float64) func(int, *Node) float64 {
	return func(_ int, n *Node) float64 { return f * n.Height }
}

type timelineTween struct {
	start  float32
	index  int
	target *Node
	vars   *TweenVars
	group  *TweenGroup // nil until the step starts
}

type timelineCall struct {
	at    float32
	fn    func()
	fired bool
}

// Timeline sequences staggered tweens and callbacks on a shared clock.
// Positions are absolute offsets in seconds from the timeline start; AtEnd
// appends. Start values are read from the targets when each tween starts, so
// earlier steps can feed later ones. Like TweenGroup, a Timeline is advanced
// by its owner through Update.
type Timeline struct {
	tweens  []*timelineTween
	calls   []*timelineCall
	elapsed float32
	end     float32
	killed  bool

	// OnComplete fires once when every step has finished. It never fires for
	// a killed timeline.
	OnComplete func()
	Done       bool
}

// NewTimeline creates an empty timeline.
func NewTimeline() *Timeline {
	return &Timeline{}
}

func (tl *Timeline) resolve(position float32) float32 {
	if position < 0 {
		return tl.end
	}
	return position
}

// To adds a tween of vars.Prop on every target, starting at position and
// staggered by vars.Stagger. An empty target list adds nothing.
func (tl *Timeline) To(targets []*Node, vars TweenVars, position float32) *Timeline {
	start := tl.resolve(position)
	v := vars
	for i, n := range targets {
		s := start + float32(i)*v.Stagger
		tl.tweens = append(tl.tweens, &timelineTween{start: s, index: i, target: n, vars: &v})
		tl.end = max(tl.end, s+v.Duration)
	}
	return tl
}

// Call schedules fn at position.
func (tl *Timeline) Call(fn func(), position float32) *Timeline {
	at := tl.resolve(position)
	tl.calls = append(tl.calls, &timelineCall{at: at, fn: fn})
	slices.SortStableFunc(tl.calls, func(a, b *timelineCall) int {
		switch {
		case a.at < b.at:
			return -1
		case a.at > b.at:
			return 1
		}
		return 0
	})
	tl.end = max(tl.end, at)
	return tl
}

// Duration returns the offset at which the last step ends.
func (tl *Timeline) Duration() float32 {
	return tl.end
}

// Elapsed returns the time the timeline has been advanced by.
func (tl *Timeline) Elapsed() float32 {
	return tl.elapsed
}

// Kill stops the timeline immediately. Running tweens keep the values they
// reached; pending calls and OnComplete never fire.
func (tl *Timeline) Kill() {
	if tl.killed {
		return
	}
	tl.killed = true
	tl.Done = true
	for _, tw := range tl.tweens {
		if tw.group != nil {
			tw.group.Stop()
		}
	}
}

// Killed reports whether Kill was called.
func (tl *Timeline) Killed() bool {
	return tl.killed
}

// Update advances the timeline by dt seconds.
func (tl *Timeline) Update(dt float32) {
	if tl.Done {
		return
	}
	tl.elapsed += dt

	allDone := true
	for _, tw := range tl.tweens {
		switch {
		case tw.group == nil && tl.elapsed >= tw.start:
			tw.group = tw.begin()
			tw.group.Update(tl.elapsed - tw.start)
		case tw.group != nil:
			tw.group.Update(dt)
		}
		if tw.group == nil || !tw.group.Done {
			allDone = false
		}
	}

	for _, c := range tl.calls {
		if c.fired || tl.elapsed < c.at {
			continue
		}
		c.fired = true
		c.fn()
		if tl.killed {
			return
		}
	}

	if allDone && tl.elapsed >= tl.end {
		tl.Done = true
		if tl.OnComplete != nil {
			tl.OnComplete()
		}
	}
}

// begin creates the tween group for a step from the target's current value.
func (tw *timelineTween) begin() *TweenGroup {
	n := tw.target
	to := tw.vars.target(tw.index, n)
	fn := tw.vars.Ease
	if fn == nil {
		fn = ease.Linear
	}
	d := tw.vars.Duration
	switch tw.vars.Prop {
	case PropX:
		g := &TweenGroup{target: n}
		g.add(&n.X, to, d, fn)
		return g
	case PropAlpha:
		return TweenAlpha(n, to, d, fn)
	case PropScale:
		return TweenScale(n, to, to, d, fn)
	default:
		return TweenY(n, to, d, fn)
	}
}

// Set applies vars to every target immediately, without animation.
func Set(targets []*Node, vars TweenVars) {
	for i, n := range targets {
		to := vars.target(i, n)
		switch vars.Prop {
		case PropX:
			n.X = to
		case PropAlpha:
			n.Alpha = to
		case PropScale:
			n.ScaleX, n.ScaleY = to, to
		default:
			n.Y = to
		}
		n.MarkDirty()
	}
}
