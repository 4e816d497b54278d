package segment

import(
	"fmt"
	"image"

	"github.com/fogleman/gg"

	"github.com/abworrall/sundisk/pkg/emath"
	"github.com/abworrall/sundisk/pkg/sundisk"
)

const(
	DiskThreshold       = 0.95  // input cells darker than this are on the disk (the masker paints the rest white)
	PredictionThreshold = 0.1   // probability above which a cell counts as part of the event

	// 171A images aren't masked, so we can't count disk pixels; use the
	// average disk size at InputSize instead.
	averageDiskCells = 28326
)

// AreaCoverage is the percentage of the solar disk covered by the event,
// rounded to 2 places.
func AreaCoverage(event Event, input, prob emath.FloatGrid) float64 {
	predicted := prob.Count(func(v float64) bool { return v > PredictionThreshold })

	disk := averageDiskCells
	if event == CoronalHoles {
		disk = input.Count(func(v float64) bool { return v < DiskThreshold })
	}
	if disk == 0 {
		return 0
	}

	return emath.RoundTo(float64(predicted) / float64(disk) * 100.0, 2)
}

// A Segmentation is what we hand back to the display layer.
type Segmentation struct {
	Event
	Path        string
	Coverage    float64     // percent of the disk
	Probability emath.FloatGrid
	Overlay     image.Image // the source image with the event outlined
}

func (s Segmentation)String() string {
	return fmt.Sprintf("%s on %s cover %.2f%% of the solar disk", s.Event, s.Path, s.Coverage)
}

// Segment runs the predictor over the image at path.
func Segment(p Predictor, event Event, path string) (Segmentation, error) {
	img, err := sundisk.LoadImage(path)
	if err != nil {
		return Segmentation{}, err
	}

	input := Prepare(img, InputSize)
	prob, err := p.Predict(input)
	if err != nil {
		return Segmentation{}, fmt.Errorf("predict %s: %v", path, err)
	}

	return Segmentation{
		Event:       event,
		Path:        path,
		Coverage:    AreaCoverage(event, input, prob),
		Probability: prob,
		Overlay:     Overlay(img, prob, PredictionThreshold),
	}, nil
}

// Overlay outlines, in red, the regions of prob above thresh, scaled up to
// the size of img.
func Overlay(img image.Image, prob emath.FloatGrid, thresh float64) image.Image {
	b := img.Bounds()
	grid := prob.UpSampleTo(b.Dx(), b.Dy())
	in := func(x, y int) bool {
		if x < 0 || y < 0 || x >= grid.Dx() || y >= grid.Dy() {
			return false
		}
		return grid.Get(x, y) > thresh
	}

	dc := gg.NewContextForImage(img)
	dc.SetRGB(1, 0, 0)
	for x:=0; x<grid.Dx(); x++ {
		for y:=0; y<grid.Dy(); y++ {
			if in(x, y) && !(in(x-1, y) && in(x+1, y) && in(x, y-1) && in(x, y+1)) {
				dc.DrawRectangle(float64(x), float64(y), 1, 1)
			}
		}
	}
	dc.Fill()

	return dc.Image()
}
