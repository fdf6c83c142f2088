package vipfb

import (
	"fmt"
	"strconv"
	"strings"

	"periph.io/x/conn/v3/physic"
)

// Timing describes one video output mode. Horizontal values are in pixels,
// vertical values in lines.
type Timing struct {
	Width       uint32
	HFrontPorch uint32
	HSync       uint32
	HBackPorch  uint32

	Height      uint32
	VFrontPorch uint32
	VSync       uint32
	VBackPorch  uint32

	PixelClockKHz uint32
}

// HBlank returns the horizontal blanking interval (front porch + sync + back
// porch).
func (t Timing) HBlank() uint32 {
	return t.HFrontPorch + t.HSync + t.HBackPorch
}

// VBlank returns the vertical blanking interval.
func (t Timing) VBlank() uint32 {
	return t.VFrontPorch + t.VSync + t.VBackPorch
}

// HTotal returns the line length including blanking.
func (t Timing) HTotal() uint32 {
	return t.Width + t.HBlank()
}

// VTotal returns the frame height including blanking.
func (t Timing) VTotal() uint32 {
	return t.Height + t.VBlank()
}

// PixelClock returns the pixel clock.
func (t Timing) PixelClock() physic.Frequency {
	return physic.Frequency(t.PixelClockKHz) * physic.KiloHertz
}

// RefreshRate returns the vertical refresh rate.
func (t Timing) RefreshRate() physic.Frequency {
	total := int64(t.HTotal()) * int64(t.VTotal())
	if total == 0 {
		return 0
	}
	return t.PixelClock() / physic.Frequency(total)
}

// Values returns the timing in mode string order: width, h front porch,
// h sync, h back porch, height, v front porch, v sync, v back porch, pixel
// clock in kHz.
func (t Timing) Values() [9]uint32 {
	return [9]uint32{
		t.Width, t.HFrontPorch, t.HSync, t.HBackPorch,
		t.Height, t.VFrontPorch, t.VSync, t.VBackPorch,
		t.PixelClockKHz,
	}
}

func (t Timing) String() string {
	return fmt.Sprintf("%dx%d@%s", t.Width, t.Height, t.RefreshRate())
}

func timingFromValues(v []uint32) Timing {
	return Timing{
		Width: v[0], HFrontPorch: v[1], HSync: v[2], HBackPorch: v[3],
		Height: v[4], VFrontPorch: v[5], VSync: v[6], VBackPorch: v[7],
		PixelClockKHz: v[8],
	}
}

// presets is the built-in mode catalog. Entry 0 doubles as the override
// slot of every Table.
var presets = [...]Timing{
	{1280, 110, 40, 220, 720, 5, 5, 20, 74250},   // 720p60
	{1024, 24, 136, 160, 768, 3, 6, 29, 65000},   // XGA
	{720, 16, 62, 60, 480, 9, 6, 30, 27000},      // 480p
	{720, 12, 64, 68, 576, 5, 5, 39, 27000},      // 576p
	{1280, 48, 112, 248, 1024, 1, 3, 38, 108000}, // SXGA
	{800, 40, 128, 88, 600, 1, 4, 23, 40000},     // SVGA
	{640, 16, 96, 48, 480, 10, 2, 33, 25175},     // VGA
	{1280, 440, 40, 220, 720, 5, 5, 20, 74250},   // 720p50
	{1920, 88, 44, 148, 1080, 4, 5, 36, 148500},  // 1080p60
	{1920, 528, 44, 148, 1080, 4, 5, 36, 148500}, // 1080p50
	{1366, 70, 143, 213, 768, 3, 3, 24, 85500},   // WXGA
	{1024, 40, 104, 144, 600, 1, 3, 18, 48960},   // WSVGA
}

// Table is a mode catalog. Index 0 is writable through Override; all other
// entries are read-only presets.
//
// The zero value is not usable, use NewTable.
type Table struct {
	modes []Timing
}

// NewTable returns a catalog initialized with the built-in presets.
func NewTable() *Table {
	t := &Table{modes: make([]Timing, len(presets))}
	copy(t.modes, presets[:])
	return t
}

// Len returns the number of entries in the catalog.
func (t *Table) Len() int {
	return len(t.modes)
}

// Select returns the timing at index i.
func (t *Table) Select(i int) (Timing, error) {
	if i < 0 || i >= len(t.modes) {
		return Timing{}, fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidIndex, i, len(t.modes))
	}
	return t.modes[i], nil
}

// Override installs nine values, in Timing.Values order, into slot 0.
func (t *Table) Override(v []uint32) (Timing, error) {
	if len(v) != 9 {
		return Timing{}, fmt.Errorf("%w: got %d values, want 9", ErrMalformedOverride, len(v))
	}
	m := timingFromValues(v)
	if m.Width == 0 || m.Height == 0 {
		return Timing{}, fmt.Errorf("%w: zero active size %dx%d", ErrMalformedOverride, m.Width, m.Height)
	}
	if m.PixelClockKHz == 0 {
		return Timing{}, fmt.Errorf("%w: zero pixel clock", ErrMalformedOverride)
	}
	t.modes[0] = m
	return m, nil
}

// Parse applies a mode specification and returns the selected index and
// timing.
//
// The specification is either a single decimal catalog index or nine
// comma-separated decimal values overriding slot 0 (see Timing.Values). An
// empty specification selects index 0.
func (t *Table) Parse(s string) (int, Timing, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		m, err := t.Select(0)
		return 0, m, err
	}
	tokens := strings.Split(s, ",")
	if len(tokens) != 1 && len(tokens) != 9 {
		return 0, Timing{}, fmt.Errorf("%w: %q has %d values, want 1 or 9", ErrMalformedOverride, s, len(tokens))
	}
	values := make([]uint32, len(tokens))
	for i, tok := range tokens {
		v, err := strconv.ParseUint(strings.TrimSpace(tok), 10, 32)
		if err != nil {
			return 0, Timing{}, fmt.Errorf("%w: %q: %v", ErrMalformedOverride, s, err)
		}
		values[i] = uint32(v)
	}
	if len(values) == 1 {
		m, err := t.Select(int(values[0]))
		if err != nil {
			return 0, Timing{}, err
		}
		return int(values[0]), m, nil
	}
	m, err := t.Override(values)
	if err != nil {
		return 0, Timing{}, err
	}
	return 0, m, nil
}
