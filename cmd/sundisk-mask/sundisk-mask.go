package main

import(
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/abworrall/sundisk/pkg/sundisk"
)

var(
	fVerbosity int
	fConfigFile string

	fTop, fRight, fBottom, fLeft float64

	fWorkers int
	fBackground string
	fStrict bool
	fSkipExisting bool
	fCheckExif bool
	fDumpTable bool
)

func init() {
	flag.IntVar(&fVerbosity, "v", 0, "how verbose to get")
	flag.StringVar(&fConfigFile, "config", "", "yaml config file; flags given on the commandline override it")

	flag.Float64Var(&fTop, "top", 0, "base top margin, in pixels")
	flag.Float64Var(&fRight, "right", 0, "base right margin, in pixels")
	flag.Float64Var(&fBottom, "bottom", 0, "base bottom margin, in pixels")
	flag.Float64Var(&fLeft, "left", 0, "base left margin, in pixels")

	flag.IntVar(&fWorkers, "workers", 0, "how many images to mask in parallel (0 means one per CPU)")
	flag.StringVar(&fBackground, "background", "#ffffff", "hex color to paint outside the solar disk")
	flag.BoolVar(&fStrict, "strict", true, "fail images whose date is missing from the margin table (else use zero margins)")
	flag.BoolVar(&fSkipExisting, "skip-existing", false, "don't redo images that already have output")
	flag.BoolVar(&fCheckExif, "exif", false, "warn when the EXIF capture date disagrees with the filename")
	flag.BoolVar(&fDumpTable, "dumptable", false, "write the margin table to margins.csv in the output dir")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <archive-dir> <output-dir>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	log.Printf("sundisk-mask starting\n")
}

// overrideConfig applies just the flags that were set explicitly.
func overrideConfig(cfg *sundisk.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "v":             cfg.Verbosity = fVerbosity
		case "top":           cfg.BaseMargins.Top = fTop
		case "right":         cfg.BaseMargins.Right = fRight
		case "bottom":        cfg.BaseMargins.Bottom = fBottom
		case "left":          cfg.BaseMargins.Left = fLeft
		case "workers":       cfg.Workers = fWorkers
		case "background":    cfg.Background = fBackground
		case "strict":        cfg.ZeroMarginFallback = !fStrict
		case "skip-existing": cfg.SkipExisting = fSkipExisting
		case "exif":          cfg.CheckExifDate = fCheckExif
		case "dumptable":     cfg.DumpTable = fDumpTable
		}
	})
}

func main() {
	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}
	archive, outDir := flag.Arg(0), flag.Arg(1)

	cfg := sundisk.NewConfig()
	if fConfigFile != "" {
		var err error
		if cfg, err = sundisk.LoadConfig(fConfigFile); err != nil {
			log.Fatal(err)
		}
	}
	overrideConfig(&cfg)
	if cfg.Workers <= 0 {
		cfg.Workers = sundisk.NewConfig().Workers
	}

	if cfg.Verbosity > 0 {
		log.Printf("Final configuration:-\n\n%s\n", cfg.AsYaml())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := sundisk.NewBatch(cfg).Run(ctx, archive, outDir)
	fmt.Printf("%s\n", summary)
	if err != nil {
		log.Fatal(err)
	}
	if !summary.OK() {
		os.Exit(1)
	}
}
