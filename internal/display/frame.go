// Package display holds the 8x8 framebuffer layout and the drivers that push
// frames somewhere visible.
//
// A frame is row-major: frame[0] is the top row and bit 7 of each byte is the
// leftmost column.
package display

// Matrix dimensions in pixels.
const (
	Width  = 8
	Height = 8
)

// Frame is one full matrix image.
type Frame = [Height]uint8

// columnMask returns the bit for column x.
func columnMask(x int) uint8 {
	return 0x80 >> uint(x)
}

func inBounds(x, y int) bool {
	return x >= 0 && x < Width && y >= 0 && y < Height
}

// Pixel reports whether the pixel at (x, y) is lit.
// Coordinates outside the matrix read as off.
func Pixel(fb Frame, x, y int) bool {
	if !inBounds(x, y) {
		return false
	}
	return fb[y]&columnMask(x) != 0
}

// SetPixel lights or clears the pixel at (x, y).
// Coordinates outside the matrix are ignored.
func SetPixel(fb *Frame, x, y int, on bool) {
	if !inBounds(x, y) {
		return
	}
	if on {
		fb[y] |= columnMask(x)
	} else {
		fb[y] &^= columnMask(x)
	}
}

// ClearFrame turns every pixel off.
func ClearFrame(fb *Frame) {
	*fb = Frame{}
}

// Lit counts lit pixels.
func Lit(fb Frame) int {
	n := 0
	for _, row := range fb {
		for ; row != 0; row &= row - 1 {
			n++
		}
	}
	return n
}
