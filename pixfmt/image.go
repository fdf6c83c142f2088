package pixfmt

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
)

// Image is a frame buffer image. Pixels are packed per Geometry and stored
// little endian, BytesPerPixel bytes each.
type Image struct {
	Pix      []byte          // Pixel data
	Stride   int             // Bytes per row
	Rect     image.Rectangle // Image bounds
	Geometry Geometry        // Pixel layout
}

// NewImage allocates an image with bounds r laid out as g.
func NewImage(r image.Rectangle, g Geometry) *Image {
	w, h := r.Dx(), r.Dy()
	if w < 0 || h < 0 {
		return &Image{Rect: r, Geometry: g}
	}
	stride := w * g.BytesPerPixel()
	return &Image{
		Pix:      make([]byte, stride*h),
		Stride:   stride,
		Rect:     r,
		Geometry: g,
	}
}

// NewImageFrom wraps existing frame buffer memory. pix must hold at least
// g.Size() bytes; the image covers (0,0)-(g.Width,g.Height).
func NewImageFrom(pix []byte, g Geometry) (*Image, error) {
	if g.BytesPerPixel() == 0 {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, g.Format)
	}
	if n := g.Size(); len(pix) < n {
		return nil, fmt.Errorf("pixfmt: buffer holds %d bytes, frame needs %d", len(pix), n)
	}
	return &Image{
		Pix:      pix[:g.Size()],
		Stride:   g.Stride(),
		Rect:     image.Rect(0, 0, g.Width, g.Height),
		Geometry: g,
	}, nil
}

// ColorModel returns the color model of the image.
func (p *Image) ColorModel() color.Model {
	return p.Geometry.Model()
}

// Bounds returns the image bounds.
func (p *Image) Bounds() image.Rectangle {
	return p.Rect
}

// At returns the color of the pixel at (x, y).
func (p *Image) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return color.RGBA{}
	}
	return p.Geometry.Decode(p.PixelAt(x, y))
}

// Set sets the color of the pixel at (x, y).
func (p *Image) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	p.SetPixel(x, y, p.Geometry.Encode(c))
}

// PixelAt returns the raw pixel value at (x, y).
func (p *Image) PixelAt(x, y int) uint32 {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return 0
	}
	i := p.PixOffset(x, y)
	if p.Geometry.BitsPerPixel == 16 {
		return uint32(binary.LittleEndian.Uint16(p.Pix[i:]))
	}
	return binary.LittleEndian.Uint32(p.Pix[i:])
}

// SetPixel stores a raw pixel value at (x, y) without color conversion.
func (p *Image) SetPixel(x, y int, v uint32) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	i := p.PixOffset(x, y)
	if p.Geometry.BitsPerPixel == 16 {
		binary.LittleEndian.PutUint16(p.Pix[i:], uint16(v))
		return
	}
	binary.LittleEndian.PutUint32(p.Pix[i:], v)
}

// Fill sets every pixel to c.
func (p *Image) Fill(c color.Color) {
	v := p.Geometry.Encode(c)
	for y := p.Rect.Min.Y; y < p.Rect.Max.Y; y++ {
		for x := p.Rect.Min.X; x < p.Rect.Max.X; x++ {
			p.SetPixel(x, y, v)
		}
	}
}

// PixOffset returns the index of the first byte of the pixel at (x, y).
func (p *Image) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*p.Geometry.BytesPerPixel()
}
