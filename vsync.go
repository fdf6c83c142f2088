package vipfb

import (
	"fmt"
	"sync/atomic"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// DefaultVSyncTimeout is used by VSync.Wait when no timeout is given. It
// covers more than two frames at 24Hz.
const DefaultVSyncTimeout = 100 * time.Millisecond

// VSync counts vertical sync pulses signaled on a GPIO input.
//
// Wait must be called from a single goroutine; Frame may be called from any.
type VSync struct {
	pin    gpio.PinIn
	frames atomic.Uint64
}

// NewVSync configures pin for rising edge detection.
func NewVSync(pin gpio.PinIn) (*VSync, error) {
	if err := pin.In(gpio.PullNoChange, gpio.RisingEdge); err != nil {
		return nil, fmt.Errorf("vipfb: failed to configure vsync pin %s: %w", pin, err)
	}
	return &VSync{pin: pin}, nil
}

// Wait blocks until the next vertical sync or until timeout elapses, and
// returns the frame counter. A timeout <= 0 uses DefaultVSyncTimeout.
func (v *VSync) Wait(timeout time.Duration) (uint64, error) {
	if timeout <= 0 {
		timeout = DefaultVSyncTimeout
	}
	if !v.pin.WaitForEdge(timeout) {
		return v.frames.Load(), ErrVSyncTimeout
	}
	return v.frames.Add(1), nil
}

// Frame returns the number of vertical syncs seen so far.
func (v *VSync) Frame() uint64 {
	return v.frames.Load()
}

// Halt stops edge detection.
func (v *VSync) Halt() error {
	return v.pin.In(gpio.PullNoChange, gpio.NoEdge)
}

func (v *VSync) String() string {
	return fmt.Sprintf("vipfb.VSync{%s}", v.pin)
}
