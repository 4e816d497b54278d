package main

import(
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/abworrall/sundisk/pkg/segment"
	"github.com/abworrall/sundisk/pkg/sundisk"
)

var(
	fVerbosity int
	fEvent string
	fOverlay string

	fDate string
	fArchive195 string
	fArchive195Masked string
	fArchive171 string
	fUnmasked bool
)

func init() {
	flag.IntVar(&fVerbosity, "v", 0, "how verbose to get")
	flag.StringVar(&fEvent, "event", "CH", "what to segment: CH (coronal holes) or AR (active regions)")
	flag.StringVar(&fOverlay, "o", "overlay.png", "where to write the outlined image (empty for nowhere)")

	flag.StringVar(&fDate, "date", "", "find the image for this date (YYYY/MM/DD) in the archive, instead of naming it")
	flag.StringVar(&fArchive195, "archive-195", "eit195", "dir of raw 195A images")
	flag.StringVar(&fArchive195Masked, "archive-195-masked", "eit195_masked", "dir of disk-masked 195A images")
	flag.StringVar(&fArchive171, "archive-171", "eit171", "dir of 171A images")
	flag.BoolVar(&fUnmasked, "unmasked", false, "for CH, use the raw 195A image rather than the masked one")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <image>\n       %s [flags] -date YYYY/MM/DD\n", os.Args[0], os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
}

func findImage(event segment.Event) (string, error) {
	if fDate == "" {
		if flag.NArg() != 1 {
			flag.Usage()
			os.Exit(2)
		}
		return flag.Arg(0), nil
	}

	date, err := sundisk.ParseCalendarDate(fDate)
	if err != nil {
		return "", err
	}
	a := segment.Archive{
		EIT195:       fArchive195,
		EIT195Masked: fArchive195Masked,
		EIT171:       fArchive171,
	}
	return a.Find(date, event, !fUnmasked)
}

func main() {
	event, err := segment.ParseEvent(fEvent)
	if err != nil {
		log.Fatal(err)
	}

	path, err := findImage(event)
	if err != nil {
		log.Fatal(err)
	}
	if fVerbosity > 0 {
		log.Printf("segmenting %s for %s\n", path, event)
	}

	seg, err := segment.Segment(segment.NewThresholdPredictor(event), event, path)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%s\n", seg)

	if fVerbosity > 1 {
		log.Printf("probability: %s\n", seg.Probability.Stats())
		if err := seg.Probability.ToImg(fmt.Sprintf("%s probability", event), "probability.png"); err != nil {
			log.Fatal(err)
		}
	}

	if fOverlay != "" {
		if err := sundisk.WritePNG(seg.Overlay, fOverlay); err != nil {
			log.Fatal(err)
		}
		if fVerbosity > 0 {
			log.Printf("overlay written to %s\n", fOverlay)
		}
	}
}
