package sundisk

import(
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".tif": true, ".tiff": true, ".bmp": true,
}

// An ImageRecord is one image in the archive.
type ImageRecord struct {
	Path string
	Date CalendarDate
}

func (r ImageRecord)Filename() string { return filepath.Base(r.Path) }

// OutputName is the filename with the extension swapped for .png
func (r ImageRecord)OutputName() string {
	name := r.Filename()
	return strings.TrimSuffix(name, filepath.Ext(name)) + ".png"
}

func (r ImageRecord)String() string { return fmt.Sprintf("%s (%s)", r.Filename(), r.Date) }

func IsImageFile(name string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

// ScanArchive finds all the images under the args (files or dirs, dirs are
// recursed into), and dates each one from its filename. Files that aren't
// images are ignored. The first image whose name doesn't carry a date stops
// the scan. Records come back in (date, filename) order.
func ScanArchive(args ...string) ([]ImageRecord, error) {
	recs := []ImageRecord{}
	if err := scan(&recs, args...); err != nil {
		return nil, err
	}

	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Date != recs[j].Date {
			return recs[i].Date.Before(recs[j].Date)
		}
		return recs[i].Filename() < recs[j].Filename()
	})

	return recs, nil
}

func scan(recs *[]ImageRecord, args ...string) error {
	for _, arg := range args {
		item, err := os.Stat(arg)

		switch {

		case err != nil:
			return fmt.Errorf("scan %s: %v", arg, err)

		case item.IsDir():
			contents, err := os.ReadDir(arg)
			if err != nil {
				return fmt.Errorf("readdir %s: %v", arg, err)
			}
			for _, content := range contents {
				if strings.HasPrefix(content.Name(), ".") {
					continue
				}
				if err := scan(recs, filepath.Join(arg, content.Name())); err != nil {
					return err
				}
			}

		case IsImageFile(arg):
			date, err := DateFromFilename(arg)
			if err != nil {
				return err
			}
			*recs = append(*recs, ImageRecord{Path: arg, Date: date})
		}
	}

	return nil
}

// DateIndex returns the date of every record, in chronological order. A day
// with several images appears several times.
func DateIndex(recs []ImageRecord) []CalendarDate {
	dates := make([]CalendarDate, 0, len(recs))
	for _, r := range recs {
		dates = append(dates, r.Date)
	}
	sort.SliceStable(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}
