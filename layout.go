package vipfb

import (
	"fmt"
	"image"
)

// fitScale is the fixed point scale used for aspect ratio math.
const fitScale = 10000

// Layout places the source picture on the mixer background canvas.
type Layout struct {
	BgWidth  uint32
	BgHeight uint32
	X        uint32 // Source position on the background
	Y        uint32
}

// Fit computes the mixer layout for a srcW x srcH picture.
//
// A non-zero bgW or bgH takes priority: the background is that size, raised
// to the source size on any axis where it is smaller, and the source is
// centered. Otherwise, with keepAspect, the background is the output size
// outW x outH scaled down by the smaller of the two output/source ratios so
// the scaler stretches both axes equally. Otherwise the background is the
// source itself.
func Fit(srcW, srcH, bgW, bgH, outW, outH uint32, keepAspect bool) (Layout, error) {
	if srcW == 0 || srcH == 0 {
		return Layout{}, fmt.Errorf("%w: %dx%d", ErrInvalidSourceSize, srcW, srcH)
	}
	switch {
	case bgW > 0 || bgH > 0:
		return centered(srcW, srcH, bgW, bgH), nil
	case keepAspect:
		dx := uint64(outW) * fitScale / uint64(srcW)
		dy := uint64(outH) * fitScale / uint64(srcH)
		d := min(dx, dy)
		if d == 0 {
			// No output size to fit to.
			return Layout{BgWidth: srcW, BgHeight: srcH}, nil
		}
		w := uint64(outW) * fitScale / d
		h := uint64(outH) * fitScale / d
		return centered(srcW, srcH, clamp32(w), clamp32(h)), nil
	default:
		return Layout{BgWidth: srcW, BgHeight: srcH}, nil
	}
}

// centered raises the background to at least the source size and centers
// the source on it.
func centered(srcW, srcH, bgW, bgH uint32) Layout {
	l := Layout{BgWidth: max(bgW, srcW), BgHeight: max(bgH, srcH)}
	l.X = (l.BgWidth - srcW) / 2
	l.Y = (l.BgHeight - srcH) / 2
	return l
}

func clamp32(v uint64) uint32 {
	if v > 0xFFFFFFFF {
		return 0xFFFFFFFF
	}
	return uint32(v)
}

// Rect returns the area covered by a srcW x srcH source on the background.
func (l Layout) Rect(srcW, srcH uint32) image.Rectangle {
	return image.Rect(int(l.X), int(l.Y), int(l.X+srcW), int(l.Y+srcH))
}

func (l Layout) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", l.BgWidth, l.BgHeight, l.X, l.Y)
}
