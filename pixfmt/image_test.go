package pixfmt

import (
	"image"
	"image/color"
	"image/draw"
	"testing"
)

func TestNewImage(t *testing.T) {
	tests := []struct {
		name       string
		format     Format
		rect       image.Rectangle
		wantStride int
		wantPixLen int
	}{
		{"8888 4x2", XRGB8888, image.Rect(0, 0, 4, 2), 16, 32},
		{"565 4x2", RGB565, image.Rect(0, 0, 4, 2), 8, 16},
		{"offset rect", RGB1555, image.Rect(10, 20, 13, 22), 6, 12},
		{"empty", XRGB8888, image.Rect(0, 0, 0, 0), 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := Resolve(tt.format, false)
			img := NewImage(tt.rect, g)
			if img.Rect != tt.rect {
				t.Errorf("Rect = %v, want %v", img.Rect, tt.rect)
			}
			if img.Stride != tt.wantStride {
				t.Errorf("Stride = %d, want %d", img.Stride, tt.wantStride)
			}
			if len(img.Pix) != tt.wantPixLen {
				t.Errorf("len(Pix) = %d, want %d", len(img.Pix), tt.wantPixLen)
			}
		})
	}
}

func TestNewImageFrom(t *testing.T) {
	g, _ := Resolve(RGB565, false)
	g.Width, g.Height = 4, 2

	if _, err := NewImageFrom(make([]byte, 15), g); err == nil {
		t.Error("NewImageFrom should fail on a short buffer")
	}

	mem := make([]byte, 64)
	img, err := NewImageFrom(mem, g)
	if err != nil {
		t.Fatalf("NewImageFrom() error = %v", err)
	}
	if img.Rect != image.Rect(0, 0, 4, 2) {
		t.Errorf("Rect = %v", img.Rect)
	}
	if len(img.Pix) != 16 {
		t.Errorf("len(Pix) = %d, want 16", len(img.Pix))
	}
	img.SetPixel(0, 0, 0xF800)
	if mem[0] != 0x00 || mem[1] != 0xF8 {
		t.Errorf("memory = % X, want 00 F8", mem[:2])
	}
}

func TestImageLittleEndian(t *testing.T) {
	g, _ := Resolve(XRGB8888, false)
	img := NewImage(image.Rect(0, 0, 2, 1), g)
	img.Set(1, 0, color.RGBA{0x11, 0x22, 0x33, 0xFF})

	want := []byte{0, 0, 0, 0, 0x33, 0x22, 0x11, 0x00}
	for i, b := range want {
		if img.Pix[i] != b {
			t.Errorf("Pix[%d] = 0x%02X, want 0x%02X", i, img.Pix[i], b)
		}
	}
	if got := img.PixelAt(1, 0); got != 0x00112233 {
		t.Errorf("PixelAt(1, 0) = 0x%08X, want 0x00112233", got)
	}
}

func TestImageOutOfBounds(t *testing.T) {
	g, _ := Resolve(RGB565, false)
	img := NewImage(image.Rect(0, 0, 2, 2), g)

	img.Set(5, 5, color.White)
	img.SetPixel(-1, 0, 0xFFFF)
	for i, b := range img.Pix {
		if b != 0 {
			t.Errorf("Pix[%d] = 0x%02X, want 0 after out of bounds writes", i, b)
		}
	}
	if got := img.At(2, 0); got != (color.RGBA{}) {
		t.Errorf("At(2, 0) = %v, want zero color", got)
	}
	if got := img.PixelAt(0, 2); got != 0 {
		t.Errorf("PixelAt(0, 2) = %d, want 0", got)
	}
}

func TestImageDraw(t *testing.T) {
	g, _ := Resolve(RGB565, true)
	img := NewImage(image.Rect(0, 0, 4, 4), g)

	red := image.NewUniform(color.RGBA{0xFF, 0, 0, 0xFF})
	draw.Draw(img, image.Rect(1, 1, 3, 3), red, image.Point{}, draw.Src)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			inside := x >= 1 && x < 3 && y >= 1 && y < 3
			want := uint32(0)
			if inside {
				// BGR: red lives in the low five bits.
				want = 0x001F
			}
			if got := img.PixelAt(x, y); got != want {
				t.Errorf("PixelAt(%d, %d) = 0x%04X, want 0x%04X", x, y, got, want)
			}
		}
	}
}

func TestImageFill(t *testing.T) {
	g, _ := Resolve(RGB1555, false)
	img := NewImage(image.Rect(0, 0, 3, 2), g)
	img.Fill(color.White)
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			if got := img.PixelAt(x, y); got != 0x7FFF {
				t.Errorf("PixelAt(%d, %d) = 0x%04X, want 0x7FFF", x, y, got)
			}
		}
	}
}
