package display

import (
	"fmt"
	"io"
	"strings"
)

// Driver receives finished frames, the way an LED matrix driver would.
type Driver interface {
	Push(fb Frame) error
}

// HexDriver writes each frame as one line of eight hex bytes.
type HexDriver struct {
	w io.Writer
}

// NewHexDriver creates a HexDriver writing to w.
func NewHexDriver(w io.Writer) *HexDriver {
	return &HexDriver{w: w}
}

// Push writes the frame, e.g. "00 00 18 3c 3c 18 00 00".
func (d *HexDriver) Push(fb Frame) error {
	parts := make([]string, len(fb))
	for i, b := range fb {
		parts[i] = fmt.Sprintf("%02x", b)
	}
	if _, err := fmt.Fprintln(d.w, strings.Join(parts, " ")); err != nil {
		return fmt.Errorf("display: hex push: %w", err)
	}
	return nil
}

// MatrixDriver writes each frame as eight rows of '#' and '.' followed by a
// blank separator line.
type MatrixDriver struct {
	w   io.Writer
	on  rune
	off rune
}

// NewMatrixDriver creates a MatrixDriver writing to w.
func NewMatrixDriver(w io.Writer) *MatrixDriver {
	return &MatrixDriver{w: w, on: '#', off: '.'}
}

// Push writes the frame as ASCII art.
func (d *MatrixDriver) Push(fb Frame) error {
	var sb strings.Builder
	sb.Grow((Width + 1) * (Height + 1))

	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if Pixel(fb, x, y) {
				sb.WriteRune(d.on)
			} else {
				sb.WriteRune(d.off)
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteByte('\n')

	if _, err := io.WriteString(d.w, sb.String()); err != nil {
		return fmt.Errorf("display: matrix push: %w", err)
	}
	return nil
}

// NewDriver returns the driver for a format name ("hex" or "matrix").
func NewDriver(format string, w io.Writer) (Driver, error) {
	switch format {
	case "hex":
		return NewHexDriver(w), nil
	case "matrix":
		return NewMatrixDriver(w), nil
	default:
		return nil, fmt.Errorf("display: unknown driver format %q", format)
	}
}
