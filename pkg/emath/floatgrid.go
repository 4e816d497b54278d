package emath

import(
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg" // Move to https://pkg.go.dev/golang.org/x/image/font#Drawer sometime
)

// A FloatGrid is a grid of floats. We use it for normalized grayscale
// images, and for the per-pixel probability maps a segmenter returns.
type FloatGrid struct {
	stride int
	values []float64
}

func NewFloatGrid(w, h int) FloatGrid {
	return FloatGrid{
		stride: w,
		values: make([]float64, w*h),
	}
}

func (g1 *FloatGrid)NewFromThis() FloatGrid  { return NewFloatGrid(g1.Dx(), g1.Dy()) }
func (fg *FloatGrid)Set(x, y int, v float64) { fg.values[fg.stride*y + x] = v }
func (fg *FloatGrid)Get(x, y int) float64    { return fg.values[fg.stride*y + x] }
func (fg *FloatGrid)Dx() int                 { return fg.stride }
func (fg *FloatGrid)Len() int                { return len(fg.values) }

func (fg *FloatGrid)Dy() int {
	if fg.stride == 0 {
		return 0
	}
	return len(fg.values) / fg.stride
}

func (g1 *FloatGrid)Copy() *FloatGrid {
	g2 := FloatGrid{stride: g1.stride, values:make([]float64, len(g1.values))}
	copy(g2.values, g1.values)
	return &g2
}

// Count returns how many cells satisfy the predicate.
func (fg *FloatGrid)Count(pred func(float64) bool) int {
	n := 0
	for _, v := range fg.values {
		if pred(v) {
			n++
		}
	}
	return n
}

// UpSampleTo returns a w x h grid, nearest-neighbour sampled from this one.
func (A *FloatGrid)UpSampleTo(w, h int) FloatGrid {
	B := NewFloatGrid(w, h)
	if A.Len() == 0 {
		return B
	}
	for y:=0; y<h; y++ {
		for x:=0; x<w; x++ {
			ax := x * A.Dx() / w
			ay := y * A.Dy() / h
			B.Set(x, y, A.Get(ax, ay))
		}
	}
	return B
}

func (fg *FloatGrid)Stats() string {
	min := math.MaxFloat64
	max := -1.0  * min

	for i:=0 ; i<len(fg.values) ; i++ {
		if fg.values[i] > max { max = fg.values[i] }
		if fg.values[i] < min { min = fg.values[i] }
	}
	return fmt.Sprintf("fg[%dx%d, vals{%f,%f}]", fg.Dx(), fg.Dy(), min, max)
}

// ToImg saves a simple grayscale, based on the range of values in the grid, and gamma scaling the
// gray to look normal for human vision
func (fg *FloatGrid)ToImg(title, filename string) error {
	min, max := math.MaxFloat64, -math.MaxFloat64
	for i:=0; i<len(fg.values); i++ {
		if fg.values[i] > max { max = fg.values[i] }
		if fg.values[i] < min { min = fg.values[i] }
	}
	span := max - min
	if span == 0 {
		span = 1
	}

	img := image.NewRGBA64(image.Rectangle{Max:image.Point{fg.Dx(), fg.Dy()}})
	for x:=0; x<fg.Dx(); x++ {
		for y:=0; y<fg.Dy(); y++ {
			gray := GammaExpand_F64((fg.Get(x,y) - min) / span)
			col := color.RGBA64{uint16(gray * 65535.0), uint16(gray * 65535.0), uint16(gray * 65535.0), 0xFFFF}
			img.Set(x, y, col)
		}
	}

	dc := gg.NewContextForImage(img)
	dc.SetRGB(1,0,0)
	dc.DrawString(title, 10, 20)
	return dc.SavePNG(filename)
}
