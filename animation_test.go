package slider

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTweenPositionReachesTarget(t *testing.T) {
	node := NewContainer("pos")
	node.X = 10
	node.Y = 20

	g := TweenPosition(node, 100, 200, 1.0, ease.Linear)

	// Exact halves avoid float32 accumulation drift.
	g.Update(0.5)
	g.Update(0.5)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if math.Abs(node.X-100) > 0.5 {
		t.Errorf("X = %f, want ~100", node.X)
	}
	if math.Abs(node.Y-200) > 0.5 {
		t.Errorf("Y = %f, want ~200", node.Y)
	}
}

func TestTweenYLeavesX(t *testing.T) {
	node := NewContainer("y")
	node.X = 7
	g := TweenY(node, -20, 0.5, ease.Linear)
	g.Update(0.25)
	g.Update(0.25)

	if node.X != 7 {
		t.Errorf("X = %f, want 7", node.X)
	}
	if math.Abs(node.Y+20) > 0.01 {
		t.Errorf("Y = %f, want ~-20", node.Y)
	}
}

func TestTweenScaleReachesTarget(t *testing.T) {
	node := NewContainer("scale")
	g := TweenScale(node, 2.0, 3.0, 0.5, ease.Linear)
	g.Update(0.25)
	g.Update(0.25)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if math.Abs(node.ScaleX-2.0) > 0.01 || math.Abs(node.ScaleY-3.0) > 0.01 {
		t.Errorf("Scale = (%f, %f), want ~(2, 3)", node.ScaleX, node.ScaleY)
	}
}

func TestTweenAlphaInterpolates(t *testing.T) {
	node := NewContainer("alpha")
	tw := TweenAlpha(node, 0.0, 1.0, ease.Linear)

	tw.Update(0.5)
	if tw.Done {
		t.Fatal("should not be done at halfway")
	}
	if math.Abs(node.Alpha-0.5) > 0.05 {
		t.Errorf("Alpha = %f, want ~0.5 at halfway", node.Alpha)
	}

	tw.Update(0.5)
	if !tw.Done {
		t.Fatal("should be done after full duration")
	}
	if math.Abs(node.Alpha) > 0.01 {
		t.Errorf("Alpha = %f, want ~0.0", node.Alpha)
	}
}

func TestTweenValue(t *testing.T) {
	progress := 0.7
	g := TweenValue(&progress, 0, 1, 2.5, ease.InOutCubic)
	if progress != 0 {
		t.Fatalf("TweenValue should reset the field to from, got %f", progress)
	}

	g.Update(1.25)
	if math.Abs(progress-0.5) > 0.01 {
		t.Errorf("InOutCubic midpoint = %f, want ~0.5", progress)
	}
	g.Update(1.25)
	if !g.Done || math.Abs(progress-1) > 1e-6 {
		t.Errorf("progress = %f (done %v), want 1 and done", progress, g.Done)
	}
}

func TestTweenGroupDoneFlagTransition(t *testing.T) {
	node := NewContainer("done")
	g := TweenPosition(node, 50, 50, 0.5, ease.Linear)

	if g.Done {
		t.Fatal("should not be Done at start")
	}
	g.Update(0.25)
	if g.Done {
		t.Fatal("should not be Done partway through")
	}
	g.Update(0.25)
	if !g.Done {
		t.Fatal("should be Done after full duration")
	}

	// Update after done is a no-op.
	g.Update(0.1)
	if !g.Done {
		t.Fatal("should remain Done")
	}
}

func TestTweenGroupStop(t *testing.T) {
	node := NewContainer("stop")
	g := TweenY(node, 100, 1, ease.Linear)
	g.Update(0.5)
	y := node.Y
	g.Stop()
	g.Update(0.5)
	if node.Y != y {
		t.Errorf("Y moved after Stop: %f -> %f", y, node.Y)
	}
}

func TestTweenGroupMarksDirty(t *testing.T) {
	node := NewContainer("dirty")
	node.transformDirty = false

	g := TweenPosition(node, 100, 100, 1.0, ease.Linear)
	g.Update(0.1)

	if !node.transformDirty {
		t.Fatal("expected node to be marked dirty after TweenGroup update")
	}
}

func TestTweenGroupDisposedMidAnimation(t *testing.T) {
	node := NewContainer("mid-dispose")
	g := TweenPosition(node, 100, 100, 1.0, ease.Linear)

	g.Update(0.1)
	g.Update(0.1)
	if g.Done {
		t.Fatal("should not be Done yet")
	}

	node.Dispose()
	savedX, savedY := node.X, node.Y

	g.Update(0.1)
	if !g.Done {
		t.Fatal("expected Done after node disposed mid-animation")
	}
	if node.X != savedX || node.Y != savedY {
		t.Error("node fields should not change after disposal")
	}
}

func TestTweenEasingFunctionsProduceDifferentCurves(t *testing.T) {
	nodeL := NewContainer("linear")
	nodeC := NewContainer("cubic")
	gL := TweenPosition(nodeL, 100, 0, 1.0, ease.Linear)
	gC := TweenPosition(nodeC, 100, 0, 1.0, ease.OutCubic)

	gL.Update(0.5)
	gC.Update(0.5)

	if math.Abs(nodeL.X-nodeC.X) < 1.0 {
		t.Errorf("easing curves should differ at midpoint: linear=%f cubic=%f", nodeL.X, nodeC.X)
	}
}

func TestTweenGroupUpdateZeroAlloc(t *testing.T) {
	node := NewContainer("alloc")
	g := TweenPosition(node, 100, 100, 1.0, ease.Linear)
	g.Update(0.01)

	result := testing.AllocsPerRun(100, func() {
		g.Update(0.001)
	})
	if result > 0 {
		t.Errorf("TweenGroup.Update allocated %f times per run, want 0", result)
	}
}
