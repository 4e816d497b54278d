package sundisk

import(
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const(
	tokenLayout     = "20060102"   // as found in archive filenames
	canonicalLayout = "2006/01/02" // how we print dates
)

// A CalendarDate is a day, with no time or zone. It is comparable, so can
// be used as a map key.
type CalendarDate struct {
	Year  int
	Month time.Month
	Day   int
}

func NewCalendarDate(t time.Time) CalendarDate {
	return CalendarDate{t.Year(), t.Month(), t.Day()}
}

// ParseDateToken parses the YYYYMMDD form.
func ParseDateToken(s string) (CalendarDate, error) {
	t, err := time.Parse(tokenLayout, s)
	if err != nil {
		return CalendarDate{}, err
	}
	return NewCalendarDate(t), nil
}

// ParseCalendarDate parses the canonical YYYY/MM/DD form.
func ParseCalendarDate(s string) (CalendarDate, error) {
	t, err := time.Parse(canonicalLayout, s)
	if err != nil {
		return CalendarDate{}, err
	}
	return NewCalendarDate(t), nil
}

// DateFromFilename pulls the date out of an archive filename, which looks
// like `20020115_0113_eit195_512.jpg`; the date is everything before the
// first underscore.
func DateFromFilename(path string) (CalendarDate, error) {
	base := filepath.Base(path)
	token := strings.SplitN(base, "_", 2)[0]

	d, err := ParseDateToken(token)
	if err != nil {
		return d, errors.Wrapf(ErrUnparseableFilename, "'%s': token %q is not YYYYMMDD", base, token)
	}
	return d, nil
}

func (d CalendarDate)Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d CalendarDate)Before(o CalendarDate) bool { return d.Time().Before(o.Time()) }
func (d CalendarDate)IsZero() bool                { return d == CalendarDate{} }
func (d CalendarDate)Token() string               { return d.Time().Format(tokenLayout) }

func (d CalendarDate)String() string {
	return fmt.Sprintf("%04d/%02d/%02d", d.Year, int(d.Month), d.Day)
}
