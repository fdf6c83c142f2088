// Package pixfmt describes the pixel formats understood by the VIP frame
// reader and provides a drawable image over frame buffer memory.
//
// Three formats are supported:
//
//	XRGB8888  32 bits per pixel, 8 bits per channel (the default)
//	RGB1555   16 bits per pixel, 5 bits per channel, top bit unused
//	RGB565    16 bits per pixel, 5-6-5 bits per channel
//
// Pixels are stored little endian, one pixel per 2 or 4 bytes. The channel
// order can be flipped to BGR, which exchanges the red and blue bit offsets
// while keeping the channel lengths.
//
// Memory layout example for one RGB565 pixel (red=0x1F, green=0, blue=0):
//
//	Value: 0xF800
//	Bytes: 0x00 0xF8
//
// Example usage:
//
//	g, err := pixfmt.Resolve(pixfmt.RGB565, false)
//	if err != nil {
//		// fall back to pixfmt.XRGB8888
//	}
//	g.Width, g.Height = 320, 240
//	img := pixfmt.NewImage(image.Rect(0, 0, 320, 240), g)
//	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
package pixfmt
