package sundisk

import(
	"fmt"

	"github.com/abworrall/sundisk/pkg/emath"
)

// Margins are rounded to this many decimal places when interpolated; they
// only become whole pixels when a mask is drawn.
const MarginPrecision = 4

// A MarginQuartet is the number of pixels between each edge of the image
// and the edge of the solar disk.
type MarginQuartet struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// Truncated drops the fractional part of each margin (towards zero).
func (q MarginQuartet)Truncated() (top, right, bottom, left int) {
	return int(q.Top), int(q.Right), int(q.Bottom), int(q.Left)
}

func (q MarginQuartet)String() string {
	return fmt.Sprintf("[t:%.4f r:%.4f b:%.4f l:%.4f]", q.Top, q.Right, q.Bottom, q.Left)
}

// An Anchor says that at this distance (AU), each margin is Offset pixels
// bigger than the base margin measured on the calibration image.
type Anchor struct {
	Distance float64
	Offset   float64
}

// CalibrationAnchors pin down the linear relation between distance and
// margin size for an instrument. The further away the sun, the smaller the
// disk, so the bigger the margins.
type CalibrationAnchors struct {
	Near Anchor
	Far  Anchor
}

// DefaultAnchors are the values measured for SOHO EIT 195A, 1024x1024.
func DefaultAnchors() CalibrationAnchors {
	return CalibrationAnchors{
		Near: Anchor{Distance: 0.9831, Offset: 0},
		Far:  Anchor{Distance: 1.0168, Offset: 14},
	}
}

func (a CalibrationAnchors)Validate() error {
	if a.Near.Distance <= 0 || a.Far.Distance <= 0 {
		return fmt.Errorf("anchors %s: distances must be positive", a)
	}
	if a.Near.Distance == a.Far.Distance {
		return fmt.Errorf("anchors %s: distances must differ", a)
	}
	return nil
}

func (a CalibrationAnchors)String() string {
	return fmt.Sprintf("{%.4fAU:+%.1fpx, %.4fAU:+%.1fpx}", a.Near.Distance, a.Near.Offset, a.Far.Distance, a.Far.Offset)
}

// Interpolate maps a distance to margins, for each edge independently. It
// extrapolates linearly for distances beyond the anchors.
func Interpolate(distance float64, base MarginQuartet, a CalibrationAnchors) (MarginQuartet, error) {
	if err := a.Validate(); err != nil {
		return MarginQuartet{}, err
	}

	edge := func(b float64) float64 {
		l, _ := emath.LineThrough(a.Near.Distance, b + a.Near.Offset, a.Far.Distance, b + a.Far.Offset)
		return emath.RoundTo(l.At(distance), MarginPrecision)
	}

	return MarginQuartet{
		Top:    edge(base.Top),
		Right:  edge(base.Right),
		Bottom: edge(base.Bottom),
		Left:   edge(base.Left),
	}, nil
}
