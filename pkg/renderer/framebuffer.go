package renderer

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// FrameBuffer holds linear radiance per pixel in row-major order, origin top-left
type FrameBuffer struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewFrameBuffer creates a black buffer of the given size
func NewFrameBuffer(width, height int) *FrameBuffer {
	return &FrameBuffer{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// At returns the color of pixel (x, y)
func (fb *FrameBuffer) At(x, y int) core.Vec3 {
	return fb.Pixels[y*fb.Width+x]
}

// Set stores the color of pixel (x, y)
func (fb *FrameBuffer) Set(x, y int, c core.Vec3) {
	fb.Pixels[y*fb.Width+x] = c
}

// WritePPM encodes the buffer as a plain-text P3 image with gamma 2 applied
func (fb *FrameBuffer) WritePPM(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P3\n%d %d\n255\n", fb.Width, fb.Height)

	for _, c := range fb.Pixels {
		fmt.Fprintf(bw, "%d %d %d\n", toByte(c.X), toByte(c.Y), toByte(c.Z))
	}

	return bw.Flush()
}

// ToImage converts the buffer to 8-bit RGBA with the same values WritePPM emits
func (fb *FrameBuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			c := fb.At(x, y)
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(toByte(c.X)),
				G: uint8(toByte(c.Y)),
				B: uint8(toByte(c.Z)),
				A: 255,
			})
		}
	}
	return img
}

// toByte applies gamma 2 and maps [0, 1) onto 0..255. Negative and NaN values map to 0.
func toByte(linear float64) int {
	if !(linear > 0) {
		return 0
	}
	return int(256 * math.Min(math.Sqrt(linear), 0.999))
}
