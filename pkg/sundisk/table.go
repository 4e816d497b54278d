package sundisk

import(
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/pkg/errors"

	"github.com/abworrall/sundisk/pkg/ephem"
)

// A TableEntry is what we know about one day in the archive.
type TableEntry struct {
	Date     CalendarDate
	Distance float64       // Sun-observer, in AU
	Margins  MarginQuartet
}

func (e TableEntry)String() string {
	return fmt.Sprintf("%s %.6fAU %s", e.Date, e.Distance, e.Margins)
}

// A MarginTable maps each day in the archive to its disk margins. Once built
// it is only read, so it can be shared by the masking workers without locks.
type MarginTable struct {
	Base               MarginQuartet
	Anchors            CalibrationAnchors
	ZeroMarginFallback bool

	provider           ephem.DistanceProvider
	entries            map[CalendarDate]TableEntry
	dates              []CalendarDate // sorted
}

func NewMarginTable(base MarginQuartet, anchors CalibrationAnchors, p ephem.DistanceProvider) (*MarginTable, error) {
	if err := anchors.Validate(); err != nil {
		return nil, err
	}
	return &MarginTable{
		Base:     base,
		Anchors:  anchors,
		provider: p,
		entries:  map[CalendarDate]TableEntry{},
	}, nil
}

// BuildTable computes an entry for each distinct date; repeated dates cost
// nothing extra.
func BuildTable(dates []CalendarDate, base MarginQuartet, anchors CalibrationAnchors, p ephem.DistanceProvider) (*MarginTable, error) {
	t, err := NewMarginTable(base, anchors, p)
	if err != nil {
		return nil, err
	}
	if err := t.Extend(dates); err != nil {
		return nil, err
	}
	return t, nil
}

// Extend adds entries for any dates not already present. Either all of the
// new dates are added, or (on error) none of them are.
func (t *MarginTable)Extend(dates []CalendarDate) error {
	fresh := map[CalendarDate]TableEntry{}

	for _, d := range dates {
		if _, exists := t.entries[d]; exists {
			continue
		} else if _, exists := fresh[d]; exists {
			continue
		}

		dist, err := t.provider.Distance(d.Time())
		if err != nil {
			return errors.Wrapf(err, "distance for %s", d)
		}
		m, err := Interpolate(dist, t.Base, t.Anchors)
		if err != nil {
			return errors.Wrapf(err, "margins for %s", d)
		}
		fresh[d] = TableEntry{Date: d, Distance: dist, Margins: m}
	}

	for d, e := range fresh {
		t.entries[d] = e
		t.dates = append(t.dates, d)
	}
	sort.Slice(t.dates, func(i, j int) bool { return t.dates[i].Before(t.dates[j]) })

	return nil
}

// Lookup returns the margins for a date. Missing dates are ErrDateNotFound,
// unless ZeroMarginFallback is set, in which case they get zero margins.
func (t *MarginTable)Lookup(d CalendarDate) (MarginQuartet, error) {
	if e, exists := t.entries[d]; exists {
		return e.Margins, nil
	} else if t.ZeroMarginFallback {
		return MarginQuartet{}, nil
	}
	return MarginQuartet{}, errors.Wrapf(ErrDateNotFound, "%s", d)
}

func (t *MarginTable)Entry(d CalendarDate) (TableEntry, bool) {
	e, exists := t.entries[d]
	return e, exists
}

func (t *MarginTable)Len() int { return len(t.entries) }

// Entries returns the entries in date order.
func (t *MarginTable)Entries() []TableEntry {
	ret := make([]TableEntry, 0, len(t.dates))
	for _, d := range t.dates {
		ret = append(ret, t.entries[d])
	}
	return ret
}

// WriteCSV dumps the table, one row per date.
func (t *MarginTable)WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	cw.Write([]string{"date", "distance", "top", "right", "bottom", "left"})

	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	for _, e := range t.Entries() {
		m := e.Margins
		cw.Write([]string{e.Date.String(), f(e.Distance), f(m.Top), f(m.Right), f(m.Bottom), f(m.Left)})
	}

	cw.Flush()
	return cw.Error()
}
