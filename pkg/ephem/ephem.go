// Package ephem computes the distance between the Sun and the observer for
// a calendar date. We observe from SOHO at L1, which sits ~1% closer to the
// Sun than the Earth; the calibration anchors absorb that, so the Earth-Sun
// distance is what we compute.
package ephem

import(
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/solar"
)

var ErrInvalidDate = errors.New("date outside ephemeris range")

const(
	MinYear = 1000
	MaxYear = 2999
)

// A DistanceProvider returns the Sun-observer distance, in AU, for a day.
type DistanceProvider interface {
	Distance(date time.Time) (float64, error)
}

// Sun uses the low-accuracy solar coordinates from Meeus ch. 25; plenty for
// a quantity that only moves a mask edge by ~14 pixels across the year.
type Sun struct{}

// Distance evaluates the ephemeris at midnight UTC of the given day, so the
// answer doesn't depend on the time-of-day or zone of the input.
func (Sun)Distance(date time.Time) (float64, error) {
	if y := date.Year(); y < MinYear || y > MaxYear {
		return 0, errors.Wrapf(ErrInvalidDate, "year %d not in [%d,%d]", y, MinYear, MaxYear)
	}

	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	T := base.J2000Century(julian.TimeToJD(midnight))

	return solar.Radius(T), nil
}

// Fixed returns preset distances, keyed by YYYYMMDD. Days that are not in
// the map are ErrInvalidDate.
type Fixed map[string]float64

func (f Fixed)Distance(date time.Time) (float64, error) {
	key := date.Format("20060102")
	d, exists := f[key]
	if !exists {
		return 0, errors.Wrapf(ErrInvalidDate, "no fixed distance for %s", key)
	}
	return d, nil
}

// Counting wraps a provider and counts the calls made through it.
type Counting struct {
	DistanceProvider

	mu    sync.Mutex
	calls int
}

func NewCounting(p DistanceProvider) *Counting {
	return &Counting{DistanceProvider: p}
}

func (c *Counting)Distance(date time.Time) (float64, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	return c.DistanceProvider.Distance(date)
}

func (c *Counting)Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}
