// Package vipfb drives the video output of a VIP frame reader on an FPGA.
//
// The frame reader streams a frame buffer from memory through a background
// mixer and a scaler to a clocked video output. This driver computes and
// programs everything needed to get a picture on screen:
//
// - the pixel clock, synthesized by a fractional-N PLL from a 100MHz reference
// - the output timing (active size, porches, sync widths)
// - the mixer layout, centering the frame buffer on a background canvas
// - the frame buffer pixel format (XRGB8888, RGB1555, RGB565, RGB or BGR)
//
// # Output Modes
//
// Modes are selected from a built-in catalog by index:
//
//	0  1280x720@60    6  640x480@60
//	1  1024x768@60    7  1280x720@50
//	2   720x480@60    8  1920x1080@60
//	3   720x576@50    9  1920x1080@50
//	4  1280x1024@60  10  1366x768@60
//	5   800x600@60   11  1024x600@60
//
// or given as nine comma separated values which replace mode 0:
//
//	width,hfp,hsync,hbp,height,vfp,vsync,vbp,pixel clock in kHz
//	"1280,110,40,220,720,5,5,20,74250"
//
// # Basic Usage
//
//	package main
//
//	import (
//		"image"
//
//		"periph.io/x/devices/v3/vipfb"
//		"periph.io/x/devices/v3/vipfb/pixfmt"
//		"periph.io/x/host/v3"
//		"periph.io/x/host/v3/pmem"
//	)
//
//	func main() {
//		host.Init()
//
//		// Map the frame reader registers
//		bus, _ := vipfb.MapBus(0xFF200000)
//		defer bus.Close()
//
//		// Allocate physically contiguous pixel memory
//		mem, _ := pmem.Alloc(640 * 480 * 4)
//		defer mem.Close()
//
//		dev, _ := vipfb.New(bus, mem, &vipfb.Opts{
//			Mode:   "0",
//			Width:  640,
//			Height: 480,
//			Format: pixfmt.XRGB8888,
//		})
//		defer dev.Halt()
//
//		dev.Draw(dev.Bounds(), myImage, image.Point{})
//	}
//
// # Layout
//
// When the frame buffer is smaller than the output mode, the scaler enlarges
// the mixer background to the output size. By default the background is
// sized so that the frame buffer keeps its aspect ratio:
//
//	640x480 on 1280x720 → background 853x480, frame at (106, 0)
//
// An explicit background size (Opts.BgWidth, Opts.BgHeight) always takes
// priority and centers the frame buffer on it:
//
//	640x480 on 800x600 background → frame at (80, 60)
//
// Opts.Stretch fills the output and ignores the aspect ratio.
//
// # Reconfiguration
//
// Every change reprograms the whole pipeline: the frame sources are stopped,
// PLL, format, frame source, output timing, mixer and scaler are written in
// that order and the output is restarted. Nothing is written when the new
// configuration is invalid.
//
//	dev.Reconfigure(vipfb.Settings{Format: pixfmt.RGB565, BGR: true, Width: 320, Height: 240})
//	dev.SetMode("8")
//
// Settings round trip through their text form "format bgr width height
// bgwidth bgheight":
//
//	s, _ := vipfb.ParseSettings("565 1 320 240 0 0")
//
// # Register Access
//
// Registers are written through a Bus. MapBus maps the register window with
// /dev/mem; NewConnBus writes through a half-duplex periph.io conn.Conn
// bridge. Use
// Build to get the register program without hardware.
//
// # Compatibility with periph.io
//
// Dev implements the display.Drawer interface from periph.io:
// https://pkg.go.dev/periph.io/x/conn/v3/display
package vipfb
