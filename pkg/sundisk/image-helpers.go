package sundisk

// A few helper routines for golang's image libraries

import(
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	_ "image/gif"
	_ "image/jpeg"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/pkg/errors"
)

// LoadImage decodes any of the formats we register (png, jpeg, gif, tiff, bmp).
func LoadImage(filename string) (image.Image, error) {
	reader, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(ErrImageRead, "open+r '%s': %v", filename, err)
	}
	defer reader.Close()

	img, _, err := image.Decode(reader)
	if err != nil {
		return nil, errors.Wrapf(ErrImageRead, "decode '%s': %v", filename, err)
	}
	return img, nil
}

func WritePNG(img image.Image, filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		return png.Encode(writer, img)
	}
}

// WritePNGAtomic encodes into a temp file next to filename, then renames it
// into place, so a reader never sees a half-written PNG.
func WritePNGAtomic(img image.Image, filename string) error {
	tmp, err := os.CreateTemp(filepath.Dir(filename), ".partial-*.png")
	if err != nil {
		return errors.Wrapf(ErrImageWrite, "open+w temp for '%s': %v", filename, err)
	}
	tmpName := tmp.Name()

	if err := png.Encode(tmp, img); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrapf(ErrImageWrite, "encode '%s': %v", filename, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(ErrImageWrite, "close '%s': %v", filename, err)
	}
	if err := os.Rename(tmpName, filename); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(ErrImageWrite, "rename into '%s': %v", filename, err)
	}

	return nil
}
