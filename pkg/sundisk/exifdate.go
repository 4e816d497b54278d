package sundisk

import(
	"os"

	"github.com/rwcarlsen/goexif/exif"
)

// ExifDate returns the capture date recorded in the file's EXIF block, if
// there is one. Most archive JPEGs have none, which is fine.
func ExifDate(filename string) (CalendarDate, bool) {
	reader, err := os.Open(filename)
	if err != nil {
		return CalendarDate{}, false
	}
	defer reader.Close()

	ex, err := exif.Decode(reader)
	if err != nil {
		return CalendarDate{}, false
	}
	t, err := ex.DateTime()
	if err != nil {
		return CalendarDate{}, false
	}
	return NewCalendarDate(t), true
}

// ExifDateMismatch reports whether the file has an EXIF capture date that
// disagrees with the date in its name.
func ExifDateMismatch(r ImageRecord) (CalendarDate, bool) {
	d, ok := ExifDate(r.Path)
	if !ok || d == r.Date {
		return d, false
	}
	return d, true
}
