package vipfb

import (
	"fmt"
	"math/bits"

	"periph.io/x/conn/v3/physic"
)

const (
	// RefClockKHz is the reference clock feeding the video PLL.
	RefClockKHz = 100000
	// MinVCOKHz is the lowest frequency the PLL oscillator locks at.
	MinVCOKHz = 500000
)

// PLL register indexes, relative to BlockPLL.
const (
	pllMode       = 0
	pllStart      = 2
	pllNCounter   = 3
	pllMCounter   = 4
	pllC0Counter  = 5
	pllMFraction  = 7
	pllBandwidth  = 8
	pllChargePump = 9

	pllNBypass        = 0x10000
	pllBandwidthValue = 7
	pllChargePumpVal  = 2
)

// pllOddDivision marks a divider word whose high phase is one count longer
// than its low phase.
const pllOddDivision = 1 << 17

// PLL is a fractional-N configuration producing
// fout = fref * (M + K/2^32) / C.
type PLL struct {
	M      uint32 // Feedback multiplier, integer part
	C      uint32 // Output (pre-)divider
	K      uint32 // Feedback multiplier, fractional part scaled by 2^32
	VCOKHz uint32 // Oscillator frequency, target * C
}

// Synthesize computes the PLL configuration for targetKHz from a reference
// clock of refKHz.
//
// C is the smallest divider keeping the oscillator at or above MinVCOKHz.
// A zero fractional part is programmed as K=1: the PLL is always driven in
// fractional mode.
func Synthesize(targetKHz, refKHz uint32) (PLL, error) {
	if refKHz == 0 {
		return PLL{}, ErrInvalidReference
	}
	if targetKHz == 0 {
		return PLL{}, ErrInvalidClock
	}
	target := uint64(targetKHz)
	ref := uint64(refKHz)

	c := (MinVCOKHz + target - 1) / target
	if c == 0 {
		c = 1
	}
	fvco := target * c
	m := fvco / ref
	k := ((fvco - m*ref) << 32) / ref
	if k == 0 {
		k = 1
	}
	return PLL{M: uint32(m), C: uint32(c), K: uint32(k), VCOKHz: uint32(fvco)}, nil
}

// Frequency returns the output frequency produced from refKHz.
func (p PLL) Frequency(refKHz uint32) physic.Frequency {
	if p.C == 0 {
		return 0
	}
	// ref * (M<<32 | K) needs 128 bits; the product is shifted back by 32.
	hi, lo := bits.Mul64(uint64(refKHz)*1000, uint64(p.M)<<32|uint64(p.K))
	hz := (hi<<32 | lo>>32) / uint64(p.C)
	return physic.Frequency(hz) * physic.Hertz
}

// Divider encodes a counter value into the PLL divider word: high count in
// bits 8-15, low count in bits 0-7 and bit 17 set when div is odd.
func Divider(div uint32) uint32 {
	if div&1 != 0 {
		return pllOddDivision | (div/2+1)<<8 | div/2
	}
	return (div/2)<<8 | div/2
}

// Commands returns the PLL register writes in programming order.
func (p PLL) Commands() Program {
	return Program{
		{BlockPLL, pllMode, 0},
		{BlockPLL, pllMCounter, Divider(p.M)},
		{BlockPLL, pllNCounter, pllNBypass},
		{BlockPLL, pllC0Counter, Divider(p.C)},
		{BlockPLL, pllChargePump, pllChargePumpVal},
		{BlockPLL, pllBandwidth, pllBandwidthValue},
		{BlockPLL, pllMFraction, p.K},
		{BlockPLL, pllStart, 0},
	}
}

func (p PLL) String() string {
	return fmt.Sprintf("PLL{M: %d, C: %d, K: %d, Fvco: %dkHz}", p.M, p.C, p.K, p.VCOKHz)
}
