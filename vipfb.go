// Package vipfb drives the video output of a VIP frame reader: the pixel
// clock PLL, the clocked video output timing, the background mixer and the
// scaler that put a frame buffer on screen.
//
// See the examples for how to use this package.
package vipfb

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log/slog"

	"periph.io/x/conn/v3/display"
	"periph.io/x/devices/v3/vipfb/pixfmt"
)

// maxFrameSize is the largest width or height the frame source resolution
// word can carry.
const maxFrameSize = 0x1FFF

// Opts is the configuration for the frame reader output.
type Opts struct {
	// Output mode: a catalog index ("0".."11") or nine comma separated
	// timing values. Empty selects mode 0.
	Mode string

	// Frame buffer size in pixels; 0 uses the output mode's active size.
	Width  int
	Height int

	// Mixer background size; 0 means unset.
	BgWidth  int
	BgHeight int

	Format pixfmt.Format // Pixel format (default: XRGB8888)
	BGR    bool          // Swap red and blue channels

	// Stretch fills the output ignoring the frame buffer aspect ratio. By
	// default the picture is letterboxed or pillarboxed.
	Stretch bool

	RefClockKHz uint32       // PLL reference clock (default: RefClockKHz)
	Logger      *slog.Logger // default: slog.Default()
}

// Memory is the pixel buffer scanned out by the frame reader. It must be
// physically contiguous; *pmem.MemAlloc satisfies it.
type Memory interface {
	Bytes() []byte
	PhysAddr() uint64
}

// Dev is the handle for a frame reader output pipeline.
//
// Dev is not safe for concurrent use.
type Dev struct {
	prog    *Programmer
	mem     Memory
	table   *Table
	log     *slog.Logger
	ref     uint32
	stretch bool

	// Requested and resolved settings
	mode     int
	req      Settings
	settings Settings

	cfg    Config
	last   Program
	fb     *pixfmt.Image
	halted bool
}

var _ display.Drawer = (*Dev)(nil)

// New programs the frame reader behind bus to scan out mem and starts the
// output.
//
// opts can be nil to use defaults (mode 0, native size, XRGB8888).
func New(bus Bus, mem Memory, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &Opts{}
	}
	if mem == nil {
		return nil, errors.New("vipfb: pixel memory is required")
	}
	if mem.PhysAddr() > 0xFFFFFFFF {
		return nil, fmt.Errorf("vipfb: pixel memory at 0x%X is not 32-bit addressable", mem.PhysAddr())
	}
	d := &Dev{
		prog:    NewProgrammer(bus),
		mem:     mem,
		table:   NewTable(),
		log:     opts.Logger,
		ref:     opts.RefClockKHz,
		stretch: opts.Stretch,
	}
	if d.log == nil {
		d.log = slog.Default()
	}
	if d.ref == 0 {
		d.ref = RefClockKHz
	}
	format := opts.Format
	if format == 0 {
		format = pixfmt.XRGB8888
	}

	mode, _, err := d.table.Parse(opts.Mode)
	if err != nil {
		return nil, err
	}
	d.mode = mode
	s := Settings{
		Format:   format,
		BGR:      opts.BGR,
		Width:    opts.Width,
		Height:   opts.Height,
		BgWidth:  opts.BgWidth,
		BgHeight: opts.BgHeight,
	}
	if err := d.apply(mode, s); err != nil {
		return nil, err
	}
	return d, nil
}

// Reconfigure stops the output, recomputes the clock, layout and frame
// geometry for s and restarts the output.
//
// An unsupported format falls back to XRGB8888. On error nothing has been
// written and the previous configuration stays active.
func (d *Dev) Reconfigure(s Settings) error {
	if d.halted {
		return ErrHalted
	}
	return d.apply(d.mode, s)
}

// SetMode switches the output mode, see Opts.Mode, and reprograms the
// pipeline with the current settings.
func (d *Dev) SetMode(spec string) error {
	if d.halted {
		return ErrHalted
	}
	// Parse may overwrite slot 0, so work on a copy until the new
	// configuration is known to be valid.
	t := &Table{modes: append([]Timing(nil), d.table.modes...)}
	mode, _, err := t.Parse(spec)
	if err != nil {
		return err
	}
	old := d.table
	d.table = t
	if err := d.apply(mode, d.req); err != nil {
		d.table = old
		return err
	}
	return nil
}

// apply computes the complete configuration before touching any register,
// then runs the full stop/program/start sequence.
func (d *Dev) apply(mode int, req Settings) error {
	t, err := d.table.Select(mode)
	if err != nil {
		return err
	}
	cfg, s, err := d.compute(t, req)
	if err != nil {
		return err
	}
	fb, err := pixfmt.NewImageFrom(d.mem.Bytes(), cfg.Geometry)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBufferTooSmall, err)
	}

	d.log.Info("vipfb: configuring output",
		"mode", mode,
		"timing", t.String(),
		"native", fmt.Sprintf("%dx%d", t.Width, t.Height),
		"used", fmt.Sprintf("%dx%d", s.Width, s.Height),
		"format", s.Format,
		"bgr", s.BGR,
		"layout", cfg.Layout.String())
	d.log.Debug("vipfb: pixel clock",
		"target", t.PixelClock().String(),
		"actual", cfg.PLL.Frequency(d.ref).String(),
		"pll", cfg.PLL.String())

	if err := d.prog.Start(cfg); err != nil {
		d.log.Error("vipfb: programming failed", "error", err)
		return err
	}
	d.mode = mode
	d.req = req
	d.settings = s
	d.cfg = cfg
	d.last = Build(cfg)
	d.fb = fb
	return nil
}

// compute resolves req against timing t. The returned settings have the
// width, height and format actually used.
func (d *Dev) compute(t Timing, req Settings) (Config, Settings, error) {
	s := req
	if s.Width == 0 {
		s.Width = int(t.Width)
	}
	if s.Height == 0 {
		s.Height = int(t.Height)
	}
	if s.Width < 0 || s.Height < 0 || s.Width > maxFrameSize || s.Height > maxFrameSize {
		return Config{}, Settings{}, fmt.Errorf("%w: %dx%d", ErrInvalidSourceSize, s.Width, s.Height)
	}
	if s.BgWidth < 0 || s.BgHeight < 0 {
		return Config{}, Settings{}, fmt.Errorf("vipfb: invalid background size %dx%d", s.BgWidth, s.BgHeight)
	}

	g, err := pixfmt.Resolve(s.Format, s.BGR)
	if errors.Is(err, pixfmt.ErrUnsupportedFormat) {
		d.log.Warn("vipfb: unsupported format, using default", "format", s.Format, "default", pixfmt.XRGB8888)
		s.Format = pixfmt.XRGB8888
		g, err = pixfmt.Resolve(s.Format, s.BGR)
	}
	if err != nil {
		return Config{}, Settings{}, err
	}
	g.Width, g.Height = s.Width, s.Height
	if n, have := g.Size(), len(d.mem.Bytes()); n > have {
		return Config{}, Settings{}, fmt.Errorf("%w: %v needs %d bytes, have %d", ErrBufferTooSmall, g, n, have)
	}

	pll, err := Synthesize(t.PixelClockKHz, d.ref)
	if err != nil {
		return Config{}, Settings{}, err
	}
	l, err := Fit(uint32(s.Width), uint32(s.Height), uint32(s.BgWidth), uint32(s.BgHeight), t.Width, t.Height, !d.stretch)
	if err != nil {
		return Config{}, Settings{}, err
	}
	return Config{
		Timing:     t,
		PLL:        pll,
		Geometry:   g,
		Layout:     l,
		BufferAddr: uint32(d.mem.PhysAddr()),
	}, s, nil
}

// Settings returns the active settings in the same form Reconfigure accepts.
// Width and height are the resolved frame size; the background is reported
// as requested.
func (d *Dev) Settings() Settings {
	return d.settings
}

// Mode returns the active catalog index.
func (d *Dev) Mode() int {
	return d.mode
}

// Timing returns the active output timing.
func (d *Dev) Timing() Timing {
	return d.cfg.Timing
}

// PLL returns the active pixel clock configuration.
func (d *Dev) PLL() PLL {
	return d.cfg.PLL
}

// Layout returns the active mixer layout.
func (d *Dev) Layout() Layout {
	return d.cfg.Layout
}

// Geometry returns the active frame geometry.
func (d *Dev) Geometry() pixfmt.Geometry {
	return d.cfg.Geometry
}

// Program returns the register writes of the last reconfiguration.
func (d *Dev) Program() Program {
	return d.last
}

// State returns the pipeline state.
func (d *Dev) State() State {
	return d.prog.State()
}

// ColorModel returns the color model of the frame buffer.
func (d *Dev) ColorModel() color.Model {
	return d.cfg.Geometry.Model()
}

// Bounds returns the frame buffer bounds.
func (d *Dev) Bounds() image.Rectangle {
	return image.Rect(0, 0, d.settings.Width, d.settings.Height)
}

// Draw draws src onto the frame buffer. The dst rectangle is clipped to the
// frame buffer and src is aligned at sp.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted {
		return ErrHalted
	}
	r := dst.Intersect(d.fb.Rect)
	if r.Empty() {
		return nil
	}
	// Keep src aligned with the clipped corner.
	sp = sp.Add(r.Min.Sub(dst.Min))
	dst = r

	// Fast path: same layout at full size
	if img, ok := src.(*pixfmt.Image); ok {
		if dst == d.fb.Rect && sp == (image.Point{}) && img.Rect == d.fb.Rect && img.Geometry == d.fb.Geometry {
			copy(d.fb.Pix, img.Pix)
			return nil
		}
	}
	draw.Draw(d.fb, dst, src, sp, draw.Src)
	return nil
}

// Write copies a raw frame, laid out per Geometry, to the frame buffer.
func (d *Dev) Write(pixels []byte) (int, error) {
	if d.halted {
		return 0, ErrHalted
	}
	if len(pixels) != len(d.fb.Pix) {
		return 0, errors.New("vipfb: invalid buffer size")
	}
	return copy(d.fb.Pix, pixels), nil
}

// Halt stops streaming from the frame buffer. The device does not accept
// further calls afterwards.
func (d *Dev) Halt() error {
	if d.halted {
		return nil
	}
	d.halted = true
	// Stop only acts when running; always disable the sources on halt.
	if d.prog.State() != Running {
		return StopProgram().Apply(d.prog.bus)
	}
	return d.prog.Stop()
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("vipfb.Dev{%dx%d %v on %v}", d.settings.Width, d.settings.Height, d.settings.Format, d.cfg.Timing)
}
