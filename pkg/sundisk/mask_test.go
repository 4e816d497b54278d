package sundisk

import(
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rgba(c color.Color) color.RGBA {
	return color.RGBAModel.Convert(c).(color.RGBA)
}

func TestDiskBounds(t *testing.T) {
	b := image.Rect(0, 0, 200, 100)

	tests := []struct {
		name    string
		m       MarginQuartet
		want    image.Rectangle
		wantErr bool
	}{
		{"zero margins", MarginQuartet{}, image.Rect(0, 0, 200, 100), false},
		{"asymmetric", MarginQuartet{10, 20, 30, 40}, image.Rect(40, 10, 180, 70), false},
		{"fractions truncate", MarginQuartet{10.9, 20.9, 30.9, 40.9}, image.Rect(40, 10, 180, 70), false},
		{"left+right == width", MarginQuartet{0, 100, 0, 100}, image.Rectangle{}, true},
		{"left+right > width", MarginQuartet{0, 150, 0, 100}, image.Rectangle{}, true},
		{"top+bottom == height", MarginQuartet{50, 0, 50, 0}, image.Rectangle{}, true},
		{"wide enough but not tall enough", MarginQuartet{60, 10, 60, 10}, image.Rectangle{}, true},
		{"negative", MarginQuartet{-1, 0, 0, 0}, image.Rectangle{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DiskBounds(b, tt.m)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidMaskGeometry), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewDiskMask(t *testing.T) {
	t.Run("square", func(t *testing.T) {
		mask, err := NewDiskMask(image.Rect(0, 0, 1024, 1024), MarginQuartet{100, 100, 100, 100})
		require.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, 1024, 1024), mask.Bounds())

		assert.Equal(t, uint8(0xff), mask.AlphaAt(512, 512).A)
		assert.Equal(t, uint8(0xff), mask.AlphaAt(110, 512).A)   // just inside left edge
		assert.Equal(t, uint8(0), mask.AlphaAt(90, 512).A)       // just outside
		assert.Equal(t, uint8(0), mask.AlphaAt(0, 0).A)
		assert.Equal(t, uint8(0), mask.AlphaAt(160, 160).A)      // in the bbox corner, outside the circle

		for i, a := range mask.Pix {
			if a != 0 && a != 0xff {
				t.Fatalf("mask pixel %d has partial alpha %d", i, a)
			}
		}
	})

	t.Run("non-square uses both dimensions", func(t *testing.T) {
		mask, err := NewDiskMask(image.Rect(0, 0, 400, 200), MarginQuartet{10, 10, 10, 10})
		require.NoError(t, err)
		assert.Equal(t, uint8(0xff), mask.AlphaAt(20, 100).A)  // the ellipse reaches out horizontally
		assert.Equal(t, uint8(0xff), mask.AlphaAt(380, 100).A)
		assert.Equal(t, uint8(0xff), mask.AlphaAt(200, 15).A)
		assert.Equal(t, uint8(0), mask.AlphaAt(200, 5).A)
		assert.Equal(t, uint8(0), mask.AlphaAt(200, 195).A)
	})

	t.Run("bad geometry", func(t *testing.T) {
		_, err := NewDiskMask(image.Rect(0, 0, 100, 100), MarginQuartet{0, 60, 0, 60})
		assert.True(t, errors.Is(err, ErrInvalidMaskGeometry))
	})
}

func TestMaskDisk(t *testing.T) {
	white := color.RGBA{0xff, 0xff, 0xff, 0xff}

	t.Run("white source is unchanged", func(t *testing.T) {
		src := image.NewRGBA(image.Rect(0, 0, 64, 48))
		for i := range src.Pix {
			src.Pix[i] = 0xff
		}
		out, err := MaskDisk(src, MarginQuartet{4, 5, 6, 7}, white)
		require.NoError(t, err)
		assert.Equal(t, src.Pix, out.Pix)
	})

	t.Run("fully opaque mask is the identity", func(t *testing.T) {
		src := fakeSun(32, 32)
		full := image.NewAlpha(src.Bounds())
		for i := range full.Pix {
			full.Pix[i] = 0xff
		}
		out := Composite(src, full, white)
		assert.Equal(t, src.Pix, out.Pix)
	})

	t.Run("disk kept, outside painted", func(t *testing.T) {
		src := fakeSun(1024, 1024)
		out, err := MaskDisk(src, MarginQuartet{100, 100, 100, 100}, white)
		require.NoError(t, err)

		assert.Equal(t, rgba(src.At(512, 512)), out.RGBAAt(512, 512))
		assert.Equal(t, rgba(src.At(512, 150)), out.RGBAAt(512, 150))
		assert.Equal(t, white, out.RGBAAt(0, 0))
		assert.Equal(t, white, out.RGBAAt(512, 50))
		assert.Equal(t, white, out.RGBAAt(1023, 1023))

		// source not touched
		assert.Equal(t, color.RGBA{0x10, 0x10, 0x10, 0xff}, src.RGBAAt(0, 0))
	})

	t.Run("other background colors", func(t *testing.T) {
		black := color.RGBA{0, 0, 0, 0xff}
		out, err := MaskDisk(fakeSun(40, 40), MarginQuartet{2, 2, 2, 2}, black)
		require.NoError(t, err)
		assert.Equal(t, black, out.RGBAAt(0, 0))
	})

	t.Run("offset source bounds", func(t *testing.T) {
		src := fakeSun(40, 40).SubImage(image.Rect(10, 10, 30, 30))
		out, err := MaskDisk(src, MarginQuartet{1, 1, 1, 1}, white)
		require.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, 20, 20), out.Bounds())
		assert.Equal(t, rgba(src.At(20, 20)), out.RGBAAt(10, 10))
	})
}

func TestMaskFile(t *testing.T) {
	white := color.RGBA{0xff, 0xff, 0xff, 0xff}

	t.Run("writes png, nothing else", func(t *testing.T) {
		in := writeImage(t, t.TempDir(), "20020115_0113_eit195.png", fakeSun(100, 80))
		outDir := t.TempDir()
		out := filepath.Join(outDir, "20020115_0113_eit195.png")

		b, err := MaskFile(in, out, MarginQuartet{5, 5, 5, 5}, white)
		require.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, 100, 80), b)
		assert.Equal(t, []string{"20020115_0113_eit195.png"}, listDir(t, outDir))

		img, err := LoadImage(out)
		require.NoError(t, err)
		assert.Equal(t, b, img.Bounds())
		assert.Equal(t, white, rgba(img.At(0, 0)))
	})

	t.Run("read error", func(t *testing.T) {
		dir := t.TempDir()
		_, err := MaskFile(filepath.Join(dir, "missing.jpg"), filepath.Join(dir, "out.png"), MarginQuartet{}, white)
		assert.True(t, errors.Is(err, ErrImageRead))

		bad := writeFile(t, dir, "20020115_bad.jpg", "this is not a jpeg")
		_, err = MaskFile(bad, filepath.Join(dir, "out.png"), MarginQuartet{}, white)
		assert.True(t, errors.Is(err, ErrImageRead))
	})

	t.Run("write error", func(t *testing.T) {
		in := writeImage(t, t.TempDir(), "20020115_a.png", fakeSun(20, 20))
		_, err := MaskFile(in, filepath.Join(t.TempDir(), "no", "such", "dir", "a.png"), MarginQuartet{}, white)
		assert.True(t, errors.Is(err, ErrImageWrite))
	})

	t.Run("geometry error writes nothing", func(t *testing.T) {
		in := writeImage(t, t.TempDir(), "20020115_a.png", fakeSun(20, 20))
		outDir := t.TempDir()
		_, err := MaskFile(in, filepath.Join(outDir, "a.png"), MarginQuartet{0, 10, 0, 10}, white)
		assert.True(t, errors.Is(err, ErrInvalidMaskGeometry))
		assert.Empty(t, listDir(t, outDir))
	})
}
