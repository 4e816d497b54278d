package sundisk

import(
	"context"
	"fmt"
	"image"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/abworrall/sundisk/pkg/ephem"
)

// A Result is the outcome of masking one image.
type Result struct {
	ImageRecord
	OutputPath string
	Bounds     image.Rectangle
	Margins    MarginQuartet
	Duration   time.Duration
	Skipped    bool   // Output already existed, and we were told to skip those
	Err        error
}

func (r Result)String() string {
	switch {
	case r.Err != nil: return fmt.Sprintf("%s: FAILED %v", r.ImageRecord, r.Err)
	case r.Skipped:    return fmt.Sprintf("%s: skipped, %s exists", r.ImageRecord, r.OutputPath)
	default:
		return fmt.Sprintf("%s: %dx%d %s -> %s (%s)", r.ImageRecord, r.Bounds.Dx(), r.Bounds.Dy(),
			r.Margins, r.OutputPath, r.Duration.Round(time.Millisecond))
	}
}

// A Batch masks a whole archive of images.
type Batch struct {
	Config
	Provider ephem.DistanceProvider
}

func NewBatch(cfg Config) *Batch {
	return &Batch{
		Config:   cfg,
		Provider: ephem.Sun{},
	}
}

// Prepare scans the archive and builds the margin table for it. Any error
// here is fatal to the batch; we don't start masking with a partial table.
func (b *Batch)Prepare(archive ...string) ([]ImageRecord, *MarginTable, error) {
	if err := b.Config.Validate(); err != nil {
		return nil, nil, err
	}

	recs, err := ScanArchive(archive...)
	if err != nil {
		return nil, nil, err
	}
	log.Printf("Found %d images in %v", len(recs), archive)

	table, err := BuildTable(DateIndex(recs), b.BaseMargins, b.Anchors, b.Provider)
	if err != nil {
		return nil, nil, err
	}
	table.ZeroMarginFallback = b.ZeroMarginFallback
	log.Printf("Margin table built for %d distinct dates", table.Len())

	if b.Verbosity > 1 {
		for _, e := range table.Entries() {
			log.Printf(" -- %s\n", e)
		}
	}

	return recs, table, nil
}

// Run masks every image found in the archive, writing PNGs into outDir.
// Per-image failures are collected in the Summary, and don't stop the run;
// the error return is for failures that stop the whole batch (scan, table,
// output dir, cancellation).
func (b *Batch)Run(ctx context.Context, archive, outDir string) (Summary, error) {
	summary := NewSummary()

	recs, table, err := b.Prepare(archive)
	if err != nil {
		return summary, err
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return summary, fmt.Errorf("mkdir %s: %v", outDir, err)
	}
	if b.DumpTable {
		if err := b.writeTable(table, filepath.Join(outDir, "margins.csv")); err != nil {
			return summary, err
		}
	}

	for result := range b.Stream(ctx, recs, table, outDir) {
		if result.Err != nil {
			log.Printf("%s\n", result)
		} else if b.Verbosity > 0 {
			log.Printf("%s\n", result)
		}
		summary.Add(result)
	}

	return summary, ctx.Err()
}

func (b *Batch)writeTable(t *MarginTable, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	}
	defer f.Close()
	return t.WriteCSV(f)
}

type maskJob struct {
	rec     ImageRecord
	outPath string
}

// Stream masks the records using a pool of workers, and sends one Result per
// image down the returned channel. Results arrive in completion order. If
// ctx is cancelled, no new images are started, but the ones in flight are
// finished. The channel is closed when all the work is done; the caller must
// drain it.
//
// Two records whose outputs would share a name (e.g. foo.jpg and foo.png)
// can't both be written; the later one fails with ErrDuplicateOutput. If the
// background color is bad, every record fails with that error.
func (b *Batch)Stream(ctx context.Context, recs []ImageRecord, table *MarginTable, outDir string) <-chan Result {
	var wg sync.WaitGroup
	jobsChan    := make(chan maskJob)
	resultsChan := make(chan Result, len(recs))

	jobs := []maskJob{}
	claimed := map[string]string{}
	for _, rec := range recs {
		job := maskJob{rec, filepath.Join(outDir, rec.OutputName())}
		if first, exists := claimed[job.outPath]; exists {
			err := errors.Wrapf(ErrDuplicateOutput, "%s is already written from %s", job.outPath, first)
			resultsChan<- Result{ImageRecord: rec, OutputPath: job.outPath, Err: err}
			continue
		}
		claimed[job.outPath] = rec.Filename()
		jobs = append(jobs, job)
	}

	bg, err := b.BackgroundColor()
	if err != nil {
		log.Printf("Batch can't mask anything: %v", err)
		for _, job := range jobs {
			resultsChan<- Result{ImageRecord: job.rec, OutputPath: job.outPath, Err: err}
		}
		close(resultsChan)
		return resultsChan
	}

	nWorkers := b.Workers
	if nWorkers < 1 {
		nWorkers = 1
	}
	for i:=0; i<nWorkers; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()
			for job := range jobsChan {
				resultsChan<- b.maskOne(job, table, bg)
			}
		}()
	}

	// Feed in jobs, stopping early if we get cancelled
	go func() {
		defer close(jobsChan)
		for _, job := range jobs {
			if ctx.Err() != nil {
				log.Printf("Batch cancelled: %v", ctx.Err())
				return
			}
			select {
			case <-ctx.Done():
				log.Printf("Batch cancelled: %v", ctx.Err())
				return
			case jobsChan<- job:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	return resultsChan
}

func (b *Batch)maskOne(job maskJob, table *MarginTable, bg color.Color) Result {
	start := time.Now()
	r := Result{ImageRecord: job.rec, OutputPath: job.outPath}

	if b.SkipExisting {
		if _, err := os.Stat(job.outPath); err == nil {
			r.Skipped = true
			return r
		}
	}

	if b.CheckExifDate {
		if d, mismatch := ExifDateMismatch(job.rec); mismatch {
			log.Printf("WARNING %s: EXIF capture date %s disagrees with filename", job.rec, d)
		}
	}

	r.Margins, r.Err = table.Lookup(job.rec.Date)
	if r.Err == nil {
		r.Bounds, r.Err = MaskFile(job.rec.Path, job.outPath, r.Margins, bg)
	}

	r.Duration = time.Since(start)
	return r
}
