package pixfmt

import (
	"errors"
	"image/color"
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name             string
		format           Format
		swap             bool
		wantBpp          int
		red, green, blue Bitfield
	}{
		{"8888", XRGB8888, false, 32, Bitfield{16, 8}, Bitfield{8, 8}, Bitfield{0, 8}},
		{"8888 bgr", XRGB8888, true, 32, Bitfield{0, 8}, Bitfield{8, 8}, Bitfield{16, 8}},
		{"1555", RGB1555, false, 16, Bitfield{10, 5}, Bitfield{5, 5}, Bitfield{0, 5}},
		{"1555 bgr", RGB1555, true, 16, Bitfield{0, 5}, Bitfield{5, 5}, Bitfield{10, 5}},
		{"565", RGB565, false, 16, Bitfield{11, 5}, Bitfield{5, 6}, Bitfield{0, 5}},
		{"565 bgr", RGB565, true, 16, Bitfield{0, 5}, Bitfield{5, 6}, Bitfield{11, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Resolve(tt.format, tt.swap)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if g.BitsPerPixel != tt.wantBpp {
				t.Errorf("BitsPerPixel = %d, want %d", g.BitsPerPixel, tt.wantBpp)
			}
			if g.Red != tt.red || g.Green != tt.green || g.Blue != tt.blue {
				t.Errorf("fields = %v %v %v, want %v %v %v", g.Red, g.Green, g.Blue, tt.red, tt.green, tt.blue)
			}
			if g.SwapRB != tt.swap {
				t.Errorf("SwapRB = %v, want %v", g.SwapRB, tt.swap)
			}
			if g.Format != tt.format {
				t.Errorf("Format = %v, want %v", g.Format, tt.format)
			}
		})
	}
}

func TestResolveUnsupported(t *testing.T) {
	for _, f := range []Format{0, 888, 4444, 32} {
		if _, err := Resolve(f, false); !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("Resolve(%d) error = %v, want ErrUnsupportedFormat", f, err)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"8888", XRGB8888, false},
		{"32", XRGB8888, false},
		{"1555", RGB1555, false},
		{"15", RGB1555, false},
		{"565", RGB565, false},
		{" 16 ", RGB565, false},
		{"24", 0, true},
		{"", 0, true},
		{"rgb", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("error = %v, want ErrUnsupportedFormat", err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatString(t *testing.T) {
	if got := RGB565.String(); got != "565" {
		t.Errorf("String() = %q, want \"565\"", got)
	}
	if got := Format(12).String(); got != "Format(12)" {
		t.Errorf("String() = %q, want \"Format(12)\"", got)
	}
}

func TestStrideAndSize(t *testing.T) {
	tests := []struct {
		format     Format
		w, h       int
		wantStride int
		wantSize   int
	}{
		{XRGB8888, 640, 480, 2560, 1228800},
		{RGB565, 320, 240, 640, 153600},
		{RGB1555, 1, 1, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			g, _ := Resolve(tt.format, false)
			g.Width, g.Height = tt.w, tt.h
			if g.Stride() != tt.wantStride {
				t.Errorf("Stride() = %d, want %d", g.Stride(), tt.wantStride)
			}
			if g.Size() != tt.wantSize {
				t.Errorf("Size() = %d, want %d", g.Size(), tt.wantSize)
			}
		})
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		swap   bool
		c      color.Color
		want   uint32
	}{
		{"8888 red", XRGB8888, false, color.RGBA{0xFF, 0, 0, 0xFF}, 0x00FF0000},
		{"8888 red bgr", XRGB8888, true, color.RGBA{0xFF, 0, 0, 0xFF}, 0x000000FF},
		{"8888 white", XRGB8888, false, color.White, 0x00FFFFFF},
		{"565 red", RGB565, false, color.RGBA{0xFF, 0, 0, 0xFF}, 0xF800},
		{"565 green", RGB565, false, color.RGBA{0, 0xFF, 0, 0xFF}, 0x07E0},
		{"565 blue bgr", RGB565, true, color.RGBA{0, 0, 0xFF, 0xFF}, 0xF800},
		{"1555 white", RGB1555, false, color.White, 0x7FFF},
		{"black", RGB1555, false, color.Black, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := Resolve(tt.format, tt.swap)
			if got := g.Encode(tt.c); got != tt.want {
				t.Errorf("Encode(%v) = 0x%X, want 0x%X", tt.c, got, tt.want)
			}
		})
	}
}

func TestDecodeFullScale(t *testing.T) {
	for _, f := range []Format{XRGB8888, RGB1555, RGB565} {
		t.Run(f.String(), func(t *testing.T) {
			g, _ := Resolve(f, false)
			got := g.Decode(g.Encode(color.White))
			if got != (color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}) {
				t.Errorf("Decode(Encode(white)) = %v, want opaque white", got)
			}
			got = g.Decode(g.Encode(color.Black))
			if got != (color.RGBA{0, 0, 0, 0xFF}) {
				t.Errorf("Decode(Encode(black)) = %v, want opaque black", got)
			}
		})
	}
}

func TestModelQuantizes(t *testing.T) {
	g, _ := Resolve(RGB565, false)
	// 0x84 keeps its top 5 bits (0x10) and expands back to 0x84.
	got := g.Model().Convert(color.RGBA{0x87, 0, 0, 0xFF}).(color.RGBA)
	if got.R != 0x84 {
		t.Errorf("Convert().R = 0x%02X, want 0x84", got.R)
	}
}
