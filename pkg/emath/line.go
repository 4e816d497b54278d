package emath

import(
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// A Line is y = Alpha + Beta*x. It is never clamped; evaluating it outside the
// points it was fitted on extrapolates.
type Line struct {
	Alpha float64
	Beta  float64
}

// LineThrough fits the line passing through (x0,y0) and (x1,y1). The
// x values must differ.
func LineThrough(x0, y0, x1, y1 float64) (Line, error) {
	if x0 == x1 {
		return Line{}, fmt.Errorf("LineThrough: x values coincide at %f", x0)
	}
	alpha, beta := stat.LinearRegression([]float64{x0, x1}, []float64{y0, y1}, nil, false)
	return Line{Alpha: alpha, Beta: beta}, nil
}

func (l Line)At(x float64) float64 { return l.Alpha + l.Beta*x }

func (l Line)String() string { return fmt.Sprintf("y = %.6f + %.6f*x", l.Alpha, l.Beta) }
