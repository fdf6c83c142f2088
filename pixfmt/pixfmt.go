package pixfmt

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
)

// ErrUnsupportedFormat is returned for a format token the frame reader
// cannot scan out.
var ErrUnsupportedFormat = errors.New("pixfmt: unsupported format")

// Format is a pixel format token. The numeric value is the token used on the
// command line and in settings strings.
type Format uint32

const (
	XRGB8888 Format = 8888 // 32-bit
	RGB1555  Format = 1555 // 15-bit
	RGB565   Format = 565  // 16-bit
)

// ParseFormat parses a format token. Both the channel layout ("8888",
// "1555", "565") and the depth ("32", "15", "16") spellings are accepted.
func ParseFormat(s string) (Format, error) {
	switch strings.TrimSpace(s) {
	case "8888", "32":
		return XRGB8888, nil
	case "1555", "15":
		return RGB1555, nil
	case "565", "16":
		return RGB565, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

func (f Format) String() string {
	switch f {
	case XRGB8888, RGB1555, RGB565:
		return fmt.Sprintf("%d", uint32(f))
	}
	return fmt.Sprintf("Format(%d)", uint32(f))
}

// Bitfield is the position of one color channel inside a pixel.
type Bitfield struct {
	Offset uint32
	Length uint32
}

func (b Bitfield) mask() uint32 {
	return (1 << b.Length) - 1
}

// Geometry is the frame layout scanned out by the frame reader.
type Geometry struct {
	Format       Format
	Width        int
	Height       int
	BitsPerPixel int
	Red          Bitfield
	Green        Bitfield
	Blue         Bitfield
	SwapRB       bool // BGR channel order
}

// Resolve returns the channel layout for f. With swap set, the red and blue
// offsets are exchanged after the lookup; lengths are left untouched.
//
// Width and Height are left zero for the caller to fill in.
func Resolve(f Format, swap bool) (Geometry, error) {
	var g Geometry
	switch f {
	case XRGB8888:
		g = Geometry{
			BitsPerPixel: 32,
			Red:          Bitfield{Offset: 16, Length: 8},
			Green:        Bitfield{Offset: 8, Length: 8},
			Blue:         Bitfield{Offset: 0, Length: 8},
		}
	case RGB1555:
		g = Geometry{
			BitsPerPixel: 16,
			Red:          Bitfield{Offset: 10, Length: 5},
			Green:        Bitfield{Offset: 5, Length: 5},
			Blue:         Bitfield{Offset: 0, Length: 5},
		}
	case RGB565:
		g = Geometry{
			BitsPerPixel: 16,
			Red:          Bitfield{Offset: 11, Length: 5},
			Green:        Bitfield{Offset: 5, Length: 6},
			Blue:         Bitfield{Offset: 0, Length: 5},
		}
	default:
		return Geometry{}, fmt.Errorf("%w: %v", ErrUnsupportedFormat, f)
	}
	g.Format = f
	if swap {
		g.Red.Offset, g.Blue.Offset = g.Blue.Offset, g.Red.Offset
		g.SwapRB = true
	}
	return g, nil
}

// BytesPerPixel returns the size of one pixel in memory.
func (g Geometry) BytesPerPixel() int {
	return g.BitsPerPixel / 8
}

// Stride returns the length of one line in bytes.
func (g Geometry) Stride() int {
	return g.Width * g.BytesPerPixel()
}

// Size returns the number of bytes needed to hold a whole frame.
func (g Geometry) Size() int {
	return g.Stride() * g.Height
}

// Encode packs c into a pixel value.
func (g Geometry) Encode(c color.Color) uint32 {
	r, gr, b, _ := c.RGBA()
	return pack(r, g.Red) | pack(gr, g.Green) | pack(b, g.Blue)
}

// Decode unpacks a pixel value into an opaque color.
func (g Geometry) Decode(v uint32) color.RGBA {
	return color.RGBA{
		R: unpack(v, g.Red),
		G: unpack(v, g.Green),
		B: unpack(v, g.Blue),
		A: 0xFF,
	}
}

// Model returns the color model for this geometry. Converted colors are
// quantized to the channel lengths.
func (g Geometry) Model() color.Model {
	return color.ModelFunc(func(c color.Color) color.Color {
		return g.Decode(g.Encode(c))
	})
}

func (g Geometry) String() string {
	order := "RGB"
	if g.SwapRB {
		order = "BGR"
	}
	return fmt.Sprintf("%dx%d %v %s %dbpp", g.Width, g.Height, g.Format, order, g.BitsPerPixel)
}

// pack scales a 16-bit channel value down to the field length.
func pack(v uint32, f Bitfield) uint32 {
	return (v >> (16 - f.Length)) << f.Offset
}

// unpack extracts a field and expands it to 8 bits by replicating the high
// bits into the low ones, so full scale maps to 0xFF.
func unpack(v uint32, f Bitfield) uint8 {
	x := (v >> f.Offset) & f.mask()
	if f.Length >= 8 {
		return uint8(x >> (f.Length - 8))
	}
	return uint8(x<<(8-f.Length) | x>>(2*f.Length-8))
}
