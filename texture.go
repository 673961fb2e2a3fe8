package slider

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"path"

	"github.com/hajimehoshi/ebiten/v2"

	// Image formats accepted for slide images.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

var errEmptyImage = errors.New("empty image")

// TextureEntry is one slide's GPU image and the natural size of the picture
// it holds. The picture occupies the top-left Width x Height pixels of Image.
type TextureEntry struct {
	Image         *ebiten.Image
	Width, Height int
}

// Size returns the natural size of the picture.
func (e TextureEntry) Size() Vec2 {
	return Vec2{float64(e.Width), float64(e.Height)}
}

// TextureCache holds one texture per slide for the lifetime of the program.
// Entries are never evicted or mutated; Close releases them all.
type TextureCache struct {
	entries []TextureEntry
	cellW   int
	cellH   int
}

// DecodeSlideImages decodes the image of every slide, in slide order, from
// fsys. The first failure aborts the load.
func DecodeSlideImages(fsys fs.FS, slides []Slide) ([]image.Image, error) {
	imgs := make([]image.Image, 0, len(slides))
	for i, s := range slides {
		img, err := decodeImage(fsys, s.Image)
		if err != nil {
			return nil, fmt.Errorf("slider: decode slide %d (%s): %w", i, s.Image, err)
		}
		imgs = append(imgs, img)
	}
	return imgs, nil
}

func decodeImage(fsys fs.FS, name string) (image.Image, error) {
	f, err := fsys.Open(path.Clean(name))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, errEmptyImage
	}
	return img, nil
}

// cellSize returns the smallest size that holds every image.
func cellSize(imgs []image.Image) (w, h int) {
	for _, img := range imgs {
		b := img.Bounds()
		w = max(w, b.Dx())
		h = max(h, b.Dy())
	}
	return w, h
}

// NewTextureCache uploads imgs to the GPU. Every texture is allocated at the
// same cell size (the largest width and height in the set) because shader
// source images must match in size; each picture is drawn at the cell's
// top-left and its natural size is recorded in its entry.
func NewTextureCache(imgs []image.Image) *TextureCache {
	c := &TextureCache{entries: make([]TextureEntry, 0, len(imgs))}
	c.cellW, c.cellH = cellSize(imgs)
	for _, img := range imgs {
		b := img.Bounds()
		cell := ebiten.NewImage(c.cellW, c.cellH)
		src := ebiten.NewImageFromImage(img)
		cell.DrawImage(src, nil)
		src.Deallocate()
		c.entries = append(c.entries, TextureEntry{Image: cell, Width: b.Dx(), Height: b.Dy()})
	}
	return c
}

// LoadTextures decodes and uploads every slide image. Callers must not accept
// advance signals until it returns.
func LoadTextures(fsys fs.FS, slides []Slide) (*TextureCache, error) {
	imgs, err := DecodeSlideImages(fsys, slides)
	if err != nil {
		return nil, err
	}
	return NewTextureCache(imgs), nil
}

// Len returns the number of entries.
func (c *TextureCache) Len() int {
	return len(c.entries)
}

// At returns the entry for slide index i.
func (c *TextureCache) At(i int) TextureEntry {
	return c.entries[i]
}

// Entries returns all entries in slide order. The returned slice MUST NOT be
// mutated.
func (c *TextureCache) Entries() []TextureEntry {
	return c.entries
}

// CellSize returns the shared allocation size of every texture.
func (c *TextureCache) CellSize() (w, h int) {
	return c.cellW, c.cellH
}

// Close deallocates every texture. The cache must not be used afterwards.
func (c *TextureCache) Close() {
	for i := range c.entries {
		if c.entries[i].Image != nil {
			c.entries[i].Image.Deallocate()
			c.entries[i].Image = nil
		}
	}
}
