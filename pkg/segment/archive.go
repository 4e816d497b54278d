package segment

import(
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/abworrall/sundisk/pkg/sundisk"
)

var ErrImageNotFound = errors.New("no image for date")

// An Event is the kind of feature we segment.
type Event string

const(
	CoronalHoles  Event = "CH" // seen best in EIT 195A
	ActiveRegions Event = "AR" // seen best in EIT 171A
)

func ParseEvent(s string) (Event, error) {
	switch e := Event(strings.ToUpper(s)); e {
	case CoronalHoles, ActiveRegions:
		return e, nil
	}
	return "", fmt.Errorf("event %q: want %s or %s", s, CoronalHoles, ActiveRegions)
}

// Archive says where the various image sets live.
type Archive struct {
	EIT195        string // raw 195A images, .jpg
	EIT195Masked  string // output of the disk masker, .png
	EIT171        string // 171A images, .png
}

// Find returns the image for a date and event. Masked images only exist for
// coronal holes; for active regions `masked` is ignored. If a day has
// several images, the last one (in filename order) wins.
func (a Archive)Find(date sundisk.CalendarDate, event Event, masked bool) (string, error) {
	dir, ext := a.EIT171, ".png"
	if event == CoronalHoles {
		dir, ext = a.EIT195, ".jpg"
		if masked {
			dir, ext = a.EIT195Masked, ".png"
		}
	}

	matches, err := filepath.Glob(filepath.Join(dir, date.Token() + "_*" + ext))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", errors.Wrapf(ErrImageNotFound, "%s %s in %s", event, date, dir)
	}

	sort.Strings(matches)
	return matches[len(matches)-1], nil
}
