package vipfb

import (
	"fmt"
	"strings"

	"periph.io/x/devices/v3/vipfb/pixfmt"
)

// Block is the byte offset of a register block in the frame reader window.
type Block uint32

const (
	BlockFB32    Block = 0x0000 // 32-bit frame source
	BlockFB16    Block = 0x0040 // 16-bit frame source
	BlockFB16Ctl Block = 0x0080 // 16-bit unpacker: buffer base, format
	BlockSwap    Block = 0x0088 // RGB/BGR channel swap
	BlockPLL     Block = 0x0100 // Pixel clock PLL reconfiguration
	BlockMixer   Block = 0x0200 // Background mixer
	BlockScaler  Block = 0x0400 // Scaler
	BlockOutput  Block = 0x0800 // Clocked video output
)

func (b Block) String() string {
	switch b {
	case BlockFB32:
		return "fb32"
	case BlockFB16:
		return "fb16"
	case BlockFB16Ctl:
		return "fb16ctl"
	case BlockSwap:
		return "swap"
	case BlockPLL:
		return "pll"
	case BlockMixer:
		return "mixer"
	case BlockScaler:
		return "scaler"
	case BlockOutput:
		return "output"
	}
	return fmt.Sprintf("Block(0x%04X)", uint32(b))
}

// Frame source registers.
const (
	fbControl    = 0 // Go
	fbResolution = 5
	fbAddress    = 6

	fb16Address = 0 // in BlockFB16Ctl
	fb16Format  = 1 // in BlockFB16Ctl, 1 selects 565

	swapSelect = 0
)

// Clocked video output registers.
const (
	outControl = 0 // Go
	outBank    = 4
	outMode    = 5 // 0 = progressive
	outWidth   = 6
	outHeight  = 7
	outHFP     = 9
	outHSync   = 10
	outHBlank  = 11
	outVFP     = 12
	outVSync   = 13
	outVBlank  = 14
	outValid   = 30
)

// Mixer registers. Layer registers repeat every mixLayerStride registers.
const (
	mixControl     = 0 // Go
	mixBgWidth     = 3
	mixBgHeight    = 4
	mixLayerX      = 8
	mixLayerY      = 9
	mixLayerEnable = 10
	mixLayerStride = 5
)

// Scaler registers.
const (
	scControl = 0 // Go
	scWidth   = 3
	scHeight  = 4
)

// Command is one 32-bit register write.
type Command struct {
	Block Block
	Reg   uint32 // Register index, in 32-bit words
	Value uint32
}

// Offset returns the byte offset of the register in the window.
func (c Command) Offset() uint32 {
	return uint32(c.Block) + c.Reg*4
}

func (c Command) String() string {
	return fmt.Sprintf("0x%04X %s[%d] = 0x%08X", c.Offset(), c.Block, c.Reg, c.Value)
}

// Program is an ordered list of register writes.
type Program []Command

// Apply writes the program to bus in order. It stops at the first failed
// write.
func (p Program) Apply(bus Bus) error {
	for _, c := range p {
		if err := bus.Write32(c.Block, c.Reg, c.Value); err != nil {
			return fmt.Errorf("vipfb: write %v: %w", c, err)
		}
	}
	return nil
}

func (p Program) String() string {
	var b strings.Builder
	for _, c := range p {
		b.WriteString(c.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Config is everything needed to program the output pipeline. All values
// are computed before any register is written.
type Config struct {
	Timing     Timing
	PLL        PLL
	Geometry   pixfmt.Geometry
	Layout     Layout
	BufferAddr uint32 // Physical base address of the pixel buffer
}

func is16(g pixfmt.Geometry) bool {
	return g.BitsPerPixel == 16
}

// resolution packs a frame size into the frame source resolution word.
func resolution(w, h int) uint32 {
	return uint32(h)&0x1FFF | (uint32(w)&0x1FFF)<<13
}

// StopProgram disables both frame sources. Other blocks keep their
// configuration.
func StopProgram() Program {
	return Program{
		{BlockFB16, fbControl, 0},
		{BlockFB32, fbControl, 0},
	}
}

// Build returns the full stop, reprogram and start sequence for c.
//
// Blocks are written in dependency order and each block's go bit is set only
// after its geometry registers.
func Build(c Config) Program {
	g := c.Geometry
	t := c.Timing
	l := c.Layout

	p := StopProgram()
	p = append(p, c.PLL.Commands()...)

	swap := uint32(0)
	if g.SwapRB {
		swap = 1
	}
	p = append(p, Command{BlockSwap, swapSelect, swap})

	src := BlockFB32
	layer := uint32(0)
	if is16(g) {
		src = BlockFB16
		layer = mixLayerStride
		hicolor := uint32(0)
		if g.Format == pixfmt.RGB565 {
			hicolor = 1
		}
		p = append(p,
			Command{BlockFB16Ctl, fb16Format, hicolor},
			Command{BlockFB16Ctl, fb16Address, c.BufferAddr},
			Command{BlockFB16, fbResolution, resolution(g.Width, g.Height)},
			Command{BlockFB16, fbAddress, 0},
		)
	} else {
		p = append(p,
			Command{BlockFB32, fbResolution, resolution(g.Width, g.Height)},
			Command{BlockFB32, fbAddress, c.BufferAddr},
		)
	}
	p = append(p, Command{src, fbControl, 1})

	p = append(p,
		Command{BlockOutput, outBank, 0},
		Command{BlockOutput, outValid, 0},
		Command{BlockOutput, outMode, 0},
		Command{BlockOutput, outWidth, t.Width},
		Command{BlockOutput, outHeight, t.Height},
		Command{BlockOutput, outHFP, t.HFrontPorch},
		Command{BlockOutput, outHSync, t.HSync},
		Command{BlockOutput, outHBlank, t.HBlank()},
		Command{BlockOutput, outVFP, t.VFrontPorch},
		Command{BlockOutput, outVSync, t.VSync},
		Command{BlockOutput, outVBlank, t.VBlank()},
		Command{BlockOutput, outValid, 1},
		Command{BlockOutput, outControl, 1},
	)

	p = append(p,
		Command{BlockMixer, mixBgWidth, l.BgWidth},
		Command{BlockMixer, mixBgHeight, l.BgHeight},
		Command{BlockMixer, mixLayerX + layer, l.X},
		Command{BlockMixer, mixLayerY + layer, l.Y},
		Command{BlockMixer, mixLayerEnable + layer, 1},
		Command{BlockMixer, mixControl, 1},
	)

	return append(p,
		Command{BlockScaler, scWidth, t.Width},
		Command{BlockScaler, scHeight, t.Height},
		Command{BlockScaler, scControl, 1},
	)
}

// State is the output pipeline state.
type State int

const (
	Stopped State = iota
	Configuring
	Running
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Configuring:
		return "Configuring"
	case Running:
		return "Running"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Programmer sequences pipeline programs onto a register bus it owns.
type Programmer struct {
	bus   Bus
	state State
}

// NewProgrammer returns a stopped programmer writing to bus.
func NewProgrammer(bus Bus) *Programmer {
	return &Programmer{bus: bus}
}

// State returns the current pipeline state.
func (p *Programmer) State() State {
	return p.state
}

// Start stops any running output, reprograms every block for c and starts
// streaming.
//
// A failed bus write aborts the sequence and leaves the pipeline Stopped.
func (p *Programmer) Start(c Config) error {
	p.state = Configuring
	if err := Build(c).Apply(p.bus); err != nil {
		p.state = Stopped
		return err
	}
	p.state = Running
	return nil
}

// Stop disables the frame sources. It does nothing unless Running.
func (p *Programmer) Stop() error {
	if p.state != Running {
		return nil
	}
	if err := StopProgram().Apply(p.bus); err != nil {
		return err
	}
	p.state = Stopped
	return nil
}
