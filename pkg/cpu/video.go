package cpu

import (
	"image"
	"image/png"
	"os"

	"golang.org/x/image/draw"
)

var (
	pixelOn  = [4]byte{0x00, 0x00, 0x00, 0xFF}
	pixelOff = [4]byte{0xFF, 0xFF, 0xFF, 0xFF}
)

// GetFramebufferRGBA decodes the screen memory map into a 512×256 RGBA8888
// byte slice. A set bit is a black pixel.
func (c *CPU) GetFramebufferRGBA() []byte {
	pixels := make([]byte, ScreenWidth*ScreenHeight*4)
	for i := 0; i < ScreenWords; i++ {
		word := c.RAM[ScreenBase+i]
		for bit := 0; bit < 16; bit++ {
			px := pixelOff
			if word&(1<<bit) != 0 {
				px = pixelOn
			}
			copy(pixels[(i*16+bit)*4:], px[:])
		}
	}
	return pixels
}

// GetFramebufferImage returns the screen as an *image.RGBA.
func (c *CPU) GetFramebufferImage() *image.RGBA {
	return &image.RGBA{
		Pix:    c.GetFramebufferRGBA(),
		Stride: ScreenWidth * 4,
		Rect:   image.Rect(0, 0, ScreenWidth, ScreenHeight),
	}
}

// PixelAt reports whether the screen pixel at (x, y) is set.
func (c *CPU) PixelAt(x, y int) bool {
	word := c.RAM[ScreenBase+y*ScreenWidth/16+x/16]
	return word&(1<<(x%16)) != 0
}

// SaveScreenshot writes the screen as a PNG, enlarged by an integer scale.
func (c *CPU) SaveScreenshot(filename string, scale int) error {
	if scale < 1 {
		scale = 1
	}
	src := c.GetFramebufferImage()
	dst := image.NewRGBA(image.Rect(0, 0, ScreenWidth*scale, ScreenHeight*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, dst)
}
