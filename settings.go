package vipfb

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
	"periph.io/x/devices/v3/vipfb/pixfmt"
)

// Settings are the runtime frame buffer parameters.
type Settings struct {
	Format   pixfmt.Format
	BGR      bool
	Width    int // 0 = output mode width
	Height   int // 0 = output mode height
	BgWidth  int // 0 = unset
	BgHeight int // 0 = unset
}

// ParseSettings parses "format bgr width height [bgwidth bgheight]", the
// form produced by Settings.String. A format the frame reader does not know
// is kept as is; Reconfigure replaces it with the default.
func ParseSettings(s string) (Settings, error) {
	f := strings.Fields(s)
	if len(f) != 4 && len(f) != 6 {
		return Settings{}, fmt.Errorf("vipfb: settings %q: got %d fields, want 4 or 6", s, len(f))
	}
	var v [6]uint64
	for i, tok := range f {
		n, err := strconv.ParseUint(tok, 10, 32)
		if err != nil {
			return Settings{}, fmt.Errorf("vipfb: settings %q: %w", s, err)
		}
		v[i] = n
	}
	format, err := pixfmt.ParseFormat(f[0])
	if err != nil {
		format = pixfmt.Format(v[0])
	}
	if v[1] > 1 {
		return Settings{}, fmt.Errorf("vipfb: settings %q: bgr must be 0 or 1", s)
	}
	return Settings{
		Format:   format,
		BGR:      v[1] == 1,
		Width:    int(v[2]),
		Height:   int(v[3]),
		BgWidth:  int(v[4]),
		BgHeight: int(v[5]),
	}, nil
}

func (s Settings) String() string {
	bgr := 0
	if s.BGR {
		bgr = 1
	}
	return fmt.Sprintf("%d %d %d %d %d %d", uint32(s.Format), bgr, s.Width, s.Height, s.BgWidth, s.BgHeight)
}

// fileOpts is the YAML form of Opts.
type fileOpts struct {
	Mode        string `yaml:"mode"`        // index or nine values
	Width       int    `yaml:"width"`       // 0 = native
	Height      int    `yaml:"height"`      // 0 = native
	BgWidth     int    `yaml:"bgwidth"`     // 0 = unset
	BgHeight    int    `yaml:"bgheight"`    // 0 = unset
	Format      string `yaml:"format"`      // 8888, 1555, 565 (default: 8888)
	BGR         bool   `yaml:"bgr"`         // swap red and blue
	Aspect      *bool  `yaml:"aspect"`      // keep aspect ratio (default: true)
	RefClockKHz uint32 `yaml:"ref_clock_khz"`
}

// LoadOpts reads options from a YAML file.
//
//	mode: "1280,110,40,220,720,5,5,20,74250"
//	width: 640
//	height: 480
//	format: "565"
//	aspect: true
func LoadOpts(path string) (*Opts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("vipfb: failed to read options: %w", err)
	}
	return ParseOpts(data)
}

// ParseOpts parses YAML options, see LoadOpts.
func ParseOpts(data []byte) (*Opts, error) {
	var f fileOpts
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("vipfb: failed to parse options: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("vipfb: invalid options: %w", err)
	}

	o := &Opts{
		Mode:        f.Mode,
		Width:       f.Width,
		Height:      f.Height,
		BgWidth:     f.BgWidth,
		BgHeight:    f.BgHeight,
		Format:      pixfmt.XRGB8888,
		BGR:         f.BGR,
		Stretch:     f.Aspect != nil && !*f.Aspect,
		RefClockKHz: f.RefClockKHz,
	}
	if f.Format != "" {
		format, err := pixfmt.ParseFormat(f.Format)
		if err != nil {
			return nil, fmt.Errorf("vipfb: invalid options: %w", err)
		}
		o.Format = format
	}
	return o, nil
}

func (f *fileOpts) validate() error {
	if f.Width < 0 || f.Height < 0 || f.Width > maxFrameSize || f.Height > maxFrameSize {
		return fmt.Errorf("size %dx%d out of range", f.Width, f.Height)
	}
	if f.BgWidth < 0 || f.BgHeight < 0 {
		return fmt.Errorf("background %dx%d out of range", f.BgWidth, f.BgHeight)
	}
	if f.Mode != "" {
		if _, _, err := NewTable().Parse(f.Mode); err != nil {
			return err
		}
	}
	return nil
}
