package slider

import "golang.org/x/exp/constraints"

// clamp limits v to [lo, hi].
func clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// smoothstep is the GLSL smoothstep: a Hermite ramp from 0 at edge0 to 1 at
// edge1, clamped outside the range.
func smoothstep(edge0, edge1, x float64) float64 {
	t := clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

// step is the GLSL step: 0 when x < edge, 1 otherwise.
func step(edge, x float64) float64 {
	if x < edge {
		return 0
	}
	return 1
}
