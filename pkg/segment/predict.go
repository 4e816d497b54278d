package segment

import(
	"image"

	"golang.org/x/image/draw"

	"github.com/abworrall/sundisk/pkg/emath"
)

// InputSize is the width and height the segmentation model was trained on.
const InputSize = 256

// A Predictor takes a normalized (0.0 - 1.0) grayscale grid and returns a
// probability, per cell, that it is part of the event.
type Predictor interface {
	Predict(input emath.FloatGrid) (emath.FloatGrid, error)
}

// Prepare scales img down to size x size grayscale, and normalizes it.
func Prepare(img image.Image, size int) emath.FloatGrid {
	gray := image.NewGray(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(gray, gray.Bounds(), img, img.Bounds(), draw.Src, nil)

	fg := emath.NewFloatGrid(size, size)
	for x:=0; x<size; x++ {
		for y:=0; y<size; y++ {
			fg.Set(x, y, float64(gray.GrayAt(x, y).Y) / 255.0)
		}
	}
	return fg
}

// ThresholdPredictor is a stand-in for the real network. Coronal holes are
// the dark patches on the (masked) disk; active regions are the bright ones.
type ThresholdPredictor struct {
	Event
	Dark   float64 // CH: on-disk pixels below this
	Bright float64 // AR: pixels above this
}

func NewThresholdPredictor(e Event) ThresholdPredictor {
	return ThresholdPredictor{Event: e, Dark: 0.25, Bright: 0.75}
}

func (tp ThresholdPredictor)Predict(in emath.FloatGrid) (emath.FloatGrid, error) {
	out := in.NewFromThis()
	for x:=0; x<in.Dx(); x++ {
		for y:=0; y<in.Dy(); y++ {
			v := in.Get(x, y)
			hit := false
			switch tp.Event {
			case CoronalHoles:  hit = v < tp.Dark
			case ActiveRegions: hit = v > tp.Bright
			}
			if hit {
				out.Set(x, y, 1.0)
			}
		}
	}
	return out, nil
}
