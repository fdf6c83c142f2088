package vipfb

import (
	"errors"

	"periph.io/x/devices/v3/vipfb/pixfmt"
)

var (
	// ErrInvalidIndex is returned when a catalog index is out of bounds.
	ErrInvalidIndex = errors.New("vipfb: invalid mode index")
	// ErrMalformedOverride is returned for a mode specification that is
	// neither one index nor nine timing values.
	ErrMalformedOverride = errors.New("vipfb: malformed mode override")
	// ErrInvalidReference is returned for a zero PLL reference clock.
	ErrInvalidReference = errors.New("vipfb: invalid PLL reference clock")
	// ErrInvalidClock is returned for a zero target pixel clock.
	ErrInvalidClock = errors.New("vipfb: invalid pixel clock")
	// ErrInvalidSourceSize is returned when the source picture has a zero
	// dimension.
	ErrInvalidSourceSize = errors.New("vipfb: invalid source size")
	// ErrUnsupportedFormat is returned for an unknown pixel format token.
	ErrUnsupportedFormat = pixfmt.ErrUnsupportedFormat
	// ErrBufferTooSmall is returned when the frame does not fit the pixel
	// memory.
	ErrBufferTooSmall = errors.New("vipfb: frame buffer too small")
	// ErrHalted is returned by operations on a halted device.
	ErrHalted = errors.New("vipfb: halted")
	// ErrVSyncTimeout is returned when no vertical sync edge arrived in time.
	ErrVSyncTimeout = errors.New("vipfb: vsync timeout")
)
