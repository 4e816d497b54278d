package sundisk

import(
	"fmt"
	"sort"
	"time"

	"github.com/codahale/hdrhistogram"
	"github.com/skypies/util/histogram"
)

type Failure struct {
	Filename string
	Date     CalendarDate
	Err      error
}

// A Summary accumulates the Results of a batch.
type Summary struct {
	Succeeded int
	Skipped   int
	Failed    int
	Failures  []Failure

	Latency   *hdrhistogram.Histogram // microseconds per masked image
	Margins   histogram.Histogram     // truncated top margin of each masked image
}

func NewSummary() Summary {
	return Summary{
		Failures: []Failure{},
		Latency:  hdrhistogram.New(1, int64(10 * time.Minute / time.Microsecond), 3),
		Margins:  histogram.Histogram{NumBuckets:64, ValMin:0, ValMax:512},
	}
}

func (s *Summary)Add(r Result) {
	switch {
	case r.Err != nil:
		s.Failed++
		s.Failures = append(s.Failures, Failure{r.Filename(), r.Date, r.Err})
		sort.Slice(s.Failures, func(i, j int) bool { return s.Failures[i].Filename < s.Failures[j].Filename })

	case r.Skipped:
		s.Skipped++

	default:
		s.Succeeded++
		s.Latency.RecordValue(r.Duration.Microseconds())
		top, _, _, _ := r.Margins.Truncated()
		s.Margins.Add(histogram.ScalarVal(top))
	}
}

func (s Summary)Total() int { return s.Succeeded + s.Skipped + s.Failed }
func (s Summary)OK() bool   { return s.Failed == 0 }

func (s Summary)String() string {
	str := fmt.Sprintf("Summary: %d images, %d masked, %d skipped, %d failed\n",
		s.Total(), s.Succeeded, s.Skipped, s.Failed)

	if s.Succeeded > 0 {
		us := func(v int64) time.Duration { return time.Duration(v) * time.Microsecond }
		str += fmt.Sprintf("  time per image: p50 %s, p99 %s, max %s\n",
			us(s.Latency.ValueAtQuantile(50)), us(s.Latency.ValueAtQuantile(99)), us(s.Latency.Max()))
		str += fmt.Sprintf("  top margins: %v\n", &s.Margins)
	}

	for _, f := range s.Failures {
		str += fmt.Sprintf("  FAILED %s (%s): %v\n", f.Filename, f.Date, f.Err)
	}

	return str
}
