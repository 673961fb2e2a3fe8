package slider

import (
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"
)

// Constants of the lens reveal. The Kage source in shader.go uses the same
// literals; keep them in sync.
const (
	revealRadiusScale = 1.5    // max radius as a multiple of the viewport diagonal
	lensFocusFactor   = 0.25   // focus radius as a fraction of the reveal radius
	lensStrengthScale = 3000.0 // reveal radius / lensStrengthScale = distortion strength
	lensEdgeSoftness  = 0.001  // inner edge width as a fraction of the reveal radius
)

// TransitionParams are the scalar inputs of the transition program.
type TransitionParams struct {
	Progress     float64 // 0 shows texture A, 1 shows texture B
	ViewportSize Vec2    // pixels
	SizeA, SizeB Vec2    // natural pixel size of each texture
}

// CoverUV remaps a unit viewport coordinate to texture coordinates so the
// texture covers the viewport, preserving aspect ratio and cropping overflow
// equally on both sides.
func CoverUV(uv, viewport, size Vec2) Vec2 {
	s := viewport.Div(size)
	scale := math.Max(s.X, s.Y)
	scaled := size.Scale(scale)
	offset := viewport.Sub(scaled).Scale(0.5)
	return uv.Mul(viewport).Sub(offset).Div(scaled)
}

// RevealRadius returns the radius of the revealed circle for progress p.
func RevealRadius(p float64, viewport Vec2) float64 {
	return p * viewport.Len() * revealRadiusScale
}

// OutsideMask is 1 for pixels at or beyond the reveal circle and 0 inside it.
func OutsideMask(pixel, viewport Vec2, progress float64) float64 {
	center := viewport.Scale(0.5)
	return step(RevealRadius(progress, viewport), center.Sub(pixel).Len())
}

// Lens is the result of the magnifier distortion at one pixel.
type Lens struct {
	UV     Vec2    // distorted texture coordinate
	Inside float64 // soft 0..1 membership of the lens
}

// LensDistortion pushes uv radially outward from center. The push is zero up to
// the focus radius (radius * 0.25) and rises with the fifth power of the
// normalized distance towards the outer radius. A zero radius yields no lens.
func LensDistortion(pixel, uv, center Vec2, radius float64) Lens {
	if radius <= 0 {
		return Lens{UV: uv}
	}
	dir := pixel.Sub(center).Normalize()
	focusRadius := radius * lensFocusFactor
	strength := radius / lensStrengthScale

	dist := center.Sub(pixel).Len()
	focusSDF := dist - focusRadius
	sphereSDF := dist - radius

	inside := smoothstep(0, 1, -sphereSDF/(radius*lensEdgeSoftness))
	m := clamp(focusSDF/(radius-focusRadius)*inside, 0, 1)
	m = math.Pow(m, 5)

	dir.Y *= 2
	return Lens{UV: uv.Sub(dir.Scale(m * strength)), Inside: inside}
}

// TransitionSample describes how one output pixel is composed.
type TransitionSample struct {
	UVA  Vec2    // texture A coordinate (undistorted)
	UVB  Vec2    // texture B coordinate (distorted)
	Mask float64 // weight of texture A; 1 - Mask is the weight of texture B
}

// SampleTransition evaluates the transition program at pixel (pixel centers
// are at +0.5).
func SampleTransition(pixel Vec2, p TransitionParams) TransitionSample {
	uv := pixel.Div(p.ViewportSize)
	center := p.ViewportSize.Scale(0.5)
	radius := RevealRadius(p.Progress, p.ViewportSize)

	outside := step(radius, center.Sub(pixel).Len())
	lens := LensDistortion(pixel, CoverUV(uv, p.ViewportSize, p.SizeB), center, radius)
	return TransitionSample{
		UVA:  CoverUV(uv, p.ViewportSize, p.SizeA),
		UVB:  lens.UV,
		Mask: math.Max(outside, 1-lens.Inside),
	}
}

// RenderTransition draws the transition between a and b into dst on the CPU.
// dst's size is the viewport; the natural sizes come from a and b.
func RenderTransition(dst *image.RGBA, a, b image.Image, progress float64) {
	ra, rb := toRGBA(a), toRGBA(b)
	renderTransitionRGBA(dst, ra, rb, progress)
}

func renderTransitionRGBA(dst, a, b *image.RGBA, progress float64) {
	db := dst.Bounds()
	params := TransitionParams{
		Progress:     clamp(progress, 0, 1),
		ViewportSize: Vec2{float64(db.Dx()), float64(db.Dy())},
		SizeA:        Vec2{float64(a.Bounds().Dx()), float64(a.Bounds().Dy())},
		SizeB:        Vec2{float64(b.Bounds().Dx()), float64(b.Bounds().Dy())},
	}
	for y := 0; y < db.Dy(); y++ {
		for x := 0; x < db.Dx(); x++ {
			s := SampleTransition(Vec2{float64(x) + 0.5, float64(y) + 0.5}, params)
			ca := sampleClamped(a, s.UVA)
			var c color.RGBA
			if s.Mask >= 1 {
				c = ca
			} else {
				c = mixRGBA(sampleClamped(b, s.UVB), ca, s.Mask)
			}
			dst.SetRGBA(db.Min.X+x, db.Min.Y+y, c)
		}
	}
}

// toRGBA converts img to an *image.RGBA with its origin at (0, 0).
func toRGBA(img image.Image) *image.RGBA {
	if r, ok := img.(*image.RGBA); ok && r.Bounds().Min == (image.Point{}) {
		return r
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
	return dst
}

// sampleClamped returns the nearest texel to uv, clamping to the edges.
func sampleClamped(img *image.RGBA, uv Vec2) color.RGBA {
	b := img.Bounds()
	x := clamp(int(uv.X*float64(b.Dx())), 0, b.Dx()-1)
	y := clamp(int(uv.Y*float64(b.Dy())), 0, b.Dy()-1)
	return img.RGBAAt(b.Min.X+x, b.Min.Y+y)
}

// mixRGBA is the GLSL mix: x*(1-t) + y*t.
func mixRGBA(x, y color.RGBA, t float64) color.RGBA {
	m := func(a, b uint8) uint8 {
		return uint8(clamp(lerp(float64(a), float64(b), t)+0.5, 0, 255))
	}
	return color.RGBA{m(x.R, y.R), m(x.G, y.G), m(x.B, y.B), m(x.A, y.A)}
}
