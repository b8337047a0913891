package layout

import (
	"errors"
	"fmt"
)

// EMU is an English Metric Unit, the native length of the deck format.
type EMU int64

// EMUPerInch converts inches to EMU.
const EMUPerInch EMU = 914400

// Inches converts a length in inches to EMU, rounding to the nearest unit.
func Inches(in float64) EMU {
	return EMU(in*float64(EMUPerInch) + 0.5)
}

// Inches returns e in inches.
func (e EMU) Inches() float64 {
	return float64(e) / float64(EMUPerInch)
}

// Canvas dimensions of every slide.
var (
	CanvasWidth  = Inches(10)
	CanvasHeight = Inches(7.5)
)

var ErrInvalidFrame = errors.New("invalid frame")

// Frame is an axis-aligned box on the canvas.
type Frame struct {
	X, Y, W, H EMU
}

// Rect builds a Frame from inch values.
func Rect(x, y, w, h float64) Frame {
	return Frame{X: Inches(x), Y: Inches(y), W: Inches(w), H: Inches(h)}
}

// Validate rejects negative offsets, empty extents and frames that leave the
// canvas.
func (f Frame) Validate() error {
	switch {
	case f.X < 0 || f.Y < 0:
		return fmt.Errorf("%w: negative offset (%d, %d)", ErrInvalidFrame, f.X, f.Y)
	case f.W <= 0 || f.H <= 0:
		return fmt.Errorf("%w: non-positive extent %dx%d", ErrInvalidFrame, f.W, f.H)
	case f.X+f.W > CanvasWidth || f.Y+f.H > CanvasHeight:
		return fmt.Errorf("%w: extends past canvas (%d, %d, %d, %d)", ErrInvalidFrame, f.X, f.Y, f.W, f.H)
	}
	return nil
}
