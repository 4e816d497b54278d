package sundisk

import(
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/pkg/errors"
	"golang.org/x/image/draw" // replace by "image/draw" at some point
)

// DiskBounds returns the box the solar disk is inscribed in, i.e. the image
// bounds shrunk by the (truncated) margins. Width and height are treated
// separately, so non-square images work.
func DiskBounds(bounds image.Rectangle, m MarginQuartet) (image.Rectangle, error) {
	top, right, bottom, left := m.Truncated()
	w, h := bounds.Dx(), bounds.Dy()

	if top < 0 || right < 0 || bottom < 0 || left < 0 {
		return image.Rectangle{}, errors.Wrapf(ErrInvalidMaskGeometry, "negative margin in %s", m)
	}
	if left + right >= w {
		return image.Rectangle{}, errors.Wrapf(ErrInvalidMaskGeometry, "left %d + right %d >= width %d", left, right, w)
	}
	if top + bottom >= h {
		return image.Rectangle{}, errors.Wrapf(ErrInvalidMaskGeometry, "top %d + bottom %d >= height %d", top, bottom, h)
	}

	return image.Rect(left, top, w - right, h - bottom), nil
}

// NewDiskMask returns a single channel mask the size of bounds; zero
// everywhere except for a filled ellipse inscribed in the disk bounds.
// Every pixel is either 0 or 0xff, so each output pixel comes from exactly
// one of the source or the background. The mask is anchored at (0,0).
func NewDiskMask(bounds image.Rectangle, m MarginQuartet) (*image.Alpha, error) {
	disk, err := DiskBounds(bounds, m)
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(bounds.Dx(), bounds.Dy())
	dc.SetRGB(1, 1, 1)
	dc.DrawEllipse(
		float64(disk.Min.X + disk.Max.X) / 2.0,
		float64(disk.Min.Y + disk.Max.Y) / 2.0,
		float64(disk.Dx()) / 2.0,
		float64(disk.Dy()) / 2.0)
	dc.Fill()

	// gg antialiases the edge; snap it back to a hard selector
	mask := dc.AsMask()
	for i, a := range mask.Pix {
		if a >= 0x80 {
			mask.Pix[i] = 0xff
		} else {
			mask.Pix[i] = 0
		}
	}
	return mask, nil
}

// Composite paints bg everywhere, then src through the mask. Where the
// mask is opaque we get src, where it's transparent we get bg. The output
// is anchored at (0,0).
func Composite(src image.Image, mask image.Image, bg color.Color) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))

	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	draw.DrawMask(dst, dst.Bounds(), src, b.Min, mask, mask.Bounds().Min, draw.Over)

	return dst
}

// MaskDisk keeps the solar disk of src, and replaces everything outside it
// with bg.
func MaskDisk(src image.Image, m MarginQuartet, bg color.Color) (*image.RGBA, error) {
	mask, err := NewDiskMask(src.Bounds(), m)
	if err != nil {
		return nil, err
	}
	return Composite(src, mask, bg), nil
}

// MaskFile loads an image, masks it, and writes the result out as a PNG. It
// returns the bounds of the input image.
func MaskFile(inPath, outPath string, m MarginQuartet, bg color.Color) (image.Rectangle, error) {
	src, err := LoadImage(inPath)
	if err != nil {
		return image.Rectangle{}, err
	}

	out, err := MaskDisk(src, m, bg)
	if err != nil {
		return src.Bounds(), errors.Wrapf(err, "'%s'", inPath)
	}

	return src.Bounds(), WritePNGAtomic(out, outPath)
}
