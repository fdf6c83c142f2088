package vipfb

import (
	"encoding/binary"
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/mmr"
	"periph.io/x/host/v3/pmem"
)

// Bus writes 32-bit frame reader registers. reg is a register index within
// block, in 32-bit words.
type Bus interface {
	Write32(b Block, reg uint32, v uint32) error
}

// WindowSize is the size of the frame reader register window in bytes.
const WindowSize = 0x1000

// MemBus writes registers through a memory mapped window.
type MemBus struct {
	regs []uint32
	view *pmem.View
}

// NewMemBus returns a bus over regs, where regs[0] is the register at byte
// offset 0.
func NewMemBus(regs []uint32) *MemBus {
	return &MemBus{regs: regs}
}

// MapBus maps the register window at physical address base.
//
// It requires access to /dev/mem.
func MapBus(base uint64) (*MemBus, error) {
	v, err := pmem.Map(base, WindowSize)
	if err != nil {
		return nil, fmt.Errorf("vipfb: failed to map registers at 0x%X: %w", base, err)
	}
	return &MemBus{regs: v.Uint32(), view: v}, nil
}

// Write32 implements Bus.
func (m *MemBus) Write32(b Block, reg uint32, v uint32) error {
	i := (uint32(b) + reg*4) / 4
	if int(i) >= len(m.regs) {
		return fmt.Errorf("vipfb: register 0x%04X outside %d byte window", uint32(b)+reg*4, len(m.regs)*4)
	}
	m.regs[i] = v
	return nil
}

// Close unmaps the window if MapBus created it.
func (m *MemBus) Close() error {
	if m.view == nil {
		return nil
	}
	return m.view.Close()
}

func (m *MemBus) String() string {
	if m.view != nil {
		return fmt.Sprintf("vipfb.MemBus{0x%X}", m.view.PhysAddr())
	}
	return "vipfb.MemBus"
}

// ConnBus writes registers over a half-duplex bridged connection (for
// example I²C to the FPGA), as a 16-bit byte offset followed by a little
// endian 32-bit value.
type ConnBus struct {
	dev mmr.Dev16
}

// NewConnBus returns a bus writing through c. c must be half-duplex; full
// duplex connections such as SPI are rejected.
func NewConnBus(c conn.Conn) (*ConnBus, error) {
	if d := c.Duplex(); d != conn.Half {
		return nil, fmt.Errorf("vipfb: bridge %s must be half-duplex, got %s", c, d)
	}
	return &ConnBus{dev: mmr.Dev16{Conn: c, Order: binary.LittleEndian}}, nil
}

// Write32 implements Bus.
func (c *ConnBus) Write32(b Block, reg uint32, v uint32) error {
	off := uint32(b) + reg*4
	if off > 0xFFFF {
		return fmt.Errorf("vipfb: register 0x%X not addressable", off)
	}
	return c.dev.WriteUint32(uint16(off), v)
}

func (c *ConnBus) String() string {
	return fmt.Sprintf("vipfb.ConnBus{%s}", c.dev.Conn)
}
