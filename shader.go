package slider

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// --- Kage shader source ---
// Uses //kage:unit pixels. Source images 0 and 1 are texture A and B; both
// are allocated at the texture cache's shared cell size and the natural
// picture sizes arrive in SizeA and SizeB. The math mirrors lens.go.

const transitionShaderSrc = `//kage:unit pixels
package main

var Progress float
var ViewportSize vec2
var SizeA vec2
var SizeB vec2

func coverUV(uv vec2, size vec2) vec2 {
	s := ViewportSize / size
	scale := max(s.x, s.y)
	scaled := size * scale
	offset := (ViewportSize - scaled) * 0.5
	return (uv*ViewportSize - offset) / scaled
}

func lens(p vec2, uv vec2, center vec2, radius float) (vec2, float) {
	if radius <= 0.0 {
		return uv, 0.0
	}
	dir := vec2(0.0)
	if length(p-center) > 0.0 {
		dir = normalize(p - center)
	}
	focusRadius := radius * 0.25
	strength := radius / 3000.0

	dist := length(center - p)
	focusSDF := dist - focusRadius
	sphereSDF := dist - radius

	inside := smoothstep(0.0, 1.0, -sphereSDF/(radius*0.001))
	m := clamp(focusSDF/(radius-focusRadius)*inside, 0.0, 1.0)
	m = pow(m, 5.0)

	dir.y *= 2.0
	return uv - dir*(m*strength), inside
}

func sampleA(uv vec2) vec4 {
	p := clamp(uv*SizeA, vec2(0.5), SizeA-vec2(0.5))
	return imageSrc0At(imageSrc0Origin() + p)
}

func sampleB(uv vec2) vec4 {
	p := clamp(uv*SizeB, vec2(0.5), SizeB-vec2(0.5))
	return imageSrc1At(imageSrc1Origin() + p)
}

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	p := dstPos.xy - imageDstOrigin()
	uv := p / ViewportSize
	center := ViewportSize * 0.5
	radius := Progress * length(ViewportSize) * 1.5

	outside := step(radius, length(center-p))
	current := sampleA(coverUV(uv, SizeA))

	duv, inside := lens(p, coverUV(uv, SizeB), center, radius)
	next := sampleB(duv)

	return mix(next, current, max(outside, 1.0-inside))
}
`

// --- Lazy shader compilation (single-threaded, no sync.Once) ---

var transitionShader *ebiten.Shader

func ensureTransitionShader() *ebiten.Shader {
	if transitionShader == nil {
		s, err := ebiten.NewShader([]byte(transitionShaderSrc))
		if err != nil {
			panic("slider: failed to compile transition shader: " + err.Error())
		}
		transitionShader = s
	}
	return transitionShader
}

// --- Uniforms ---

// Uniforms is the state shared between the controller (writer) and the
// renderer (reader). All six inputs must be set for the cover-fit math to be
// correct: both textures, progress, viewport size, and both natural sizes.
type Uniforms struct {
	TextureA, TextureB TextureEntry
	TransitionParams
}

// SetTextureA assigns texture A and its natural size.
func (u *Uniforms) SetTextureA(e TextureEntry) {
	u.TextureA = e
	u.SizeA = e.Size()
}

// SetTextureB assigns texture B and its natural size.
func (u *Uniforms) SetTextureB(e TextureEntry) {
	u.TextureB = e
	u.SizeB = e.Size()
}

// SetProgress assigns progress clamped to [0, 1].
func (u *Uniforms) SetProgress(p float64) {
	u.Progress = clamp(p, 0, 1)
}

// --- Renderer ---

// Renderer draws the transition program over one full-screen quad every frame.
// It only reads Uniforms, except for ViewportSize, which it re-syncs on Resize.
type Renderer struct {
	uniforms *Uniforms

	vertices [4]ebiten.Vertex
	indices  [6]uint16
	shaderOp ebiten.DrawTrianglesShaderOptions
	values   map[string]any
	viewport [2]float32
	sizeA    [2]float32
	sizeB    [2]float32
}

// NewRenderer creates a renderer reading u.
func NewRenderer(u *Uniforms) *Renderer {
	r := &Renderer{
		uniforms: u,
		indices:  [6]uint16{0, 1, 2, 1, 2, 3},
		values:   make(map[string]any, 4),
	}
	if u.ViewportSize.X > 0 && u.ViewportSize.Y > 0 {
		r.Resize(int(u.ViewportSize.X), int(u.ViewportSize.Y))
	}
	return r
}

// Resize re-syncs the viewport size uniform and the quad. It takes effect on
// the next frame, including mid-transition.
func (r *Renderer) Resize(w, h int) {
	r.uniforms.ViewportSize = Vec2{float64(w), float64(h)}
	fw, fh := float32(w), float32(h)
	r.vertices[0] = ebiten.Vertex{DstX: 0, DstY: 0}
	r.vertices[1] = ebiten.Vertex{DstX: fw, DstY: 0}
	r.vertices[2] = ebiten.Vertex{DstX: 0, DstY: fh}
	r.vertices[3] = ebiten.Vertex{DstX: fw, DstY: fh}
}

// quad sets the source coordinates to the texture cell size and the color
// to opaque white.
func (r *Renderer) quad(cellW, cellH float32) {
	src := [4][2]float32{{0, 0}, {cellW, 0}, {0, cellH}, {cellW, cellH}}
	for i := range r.vertices {
		v := &r.vertices[i]
		v.SrcX, v.SrcY = src[i][0], src[i][1]
		v.ColorR, v.ColorG, v.ColorB, v.ColorA = 1, 1, 1, 1
	}
}

// Draw renders the transition into dst. Nothing is drawn until both textures
// and a viewport size are assigned.
func (r *Renderer) Draw(dst *ebiten.Image) {
	u := r.uniforms
	if u.TextureA.Image == nil || u.TextureB.Image == nil || u.ViewportSize.X <= 0 || u.ViewportSize.Y <= 0 {
		return
	}
	b := u.TextureA.Image.Bounds()
	r.quad(float32(b.Dx()), float32(b.Dy()))

	r.viewport = [2]float32{float32(u.ViewportSize.X), float32(u.ViewportSize.Y)}
	r.sizeA = [2]float32{float32(u.SizeA.X), float32(u.SizeA.Y)}
	r.sizeB = [2]float32{float32(u.SizeB.X), float32(u.SizeB.Y)}
	r.values["Progress"] = float32(u.Progress)
	r.values["ViewportSize"] = r.viewport[:]
	r.values["SizeA"] = r.sizeA[:]
	r.values["SizeB"] = r.sizeB[:]

	r.shaderOp.Images[0] = u.TextureA.Image
	r.shaderOp.Images[1] = u.TextureB.Image
	r.shaderOp.Uniforms = r.values
	dst.DrawTrianglesShader(r.vertices[:], r.indices[:], ensureTransitionShader(), &r.shaderOp)
}
