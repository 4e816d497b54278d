package sundisk

import(
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeSun returns a dark image with a bright disk roughly in the middle.
func fakeSun(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	c := image.Point{w/2, h/2}
	r := w
	if h < r { r = h }
	r = r*2/5

	for x:=0; x<w; x++ {
		for y:=0; y<h; y++ {
			dx, dy := x-c.X, y-c.Y
			if dx*dx + dy*dy < r*r {
				img.Set(x, y, color.RGBA{0xc0, 0x90, 0x30, 0xff})
			} else {
				img.Set(x, y, color.RGBA{0x10, 0x10, 0x10, 0xff})
			}
		}
	}
	return img
}

func writeImage(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		require.NoError(t, jpeg.Encode(f, img, nil))
	default:
		require.NoError(t, png.Encode(f, img))
	}
	return path
}

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func mustDate(t *testing.T, s string) CalendarDate {
	t.Helper()
	d, err := ParseCalendarDate(s)
	require.NoError(t, err)
	return d
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := []string{}
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
