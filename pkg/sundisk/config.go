package sundisk

import(
	"fmt"
	"image/color"
	"io/ioutil"
	"log"
	"runtime"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v2"
)

/* Example config file ...

verbosity: 1
basemargins:
  top: 97
  right: 101
  bottom: 103
  left: 99
anchors:
  near: {distance: 0.9831, offset: 0}
  far:  {distance: 1.0168, offset: 14}
background: "#ffffff"
workers: 8
skipexisting: true

*/

type Config struct {
	Verbosity          int

	BaseMargins        MarginQuartet      // Measured on one known-good image for the year/instrument
	Anchors            CalibrationAnchors

	Background         string             // Hex color painted outside the disk
	Workers            int                // How many images to mask in parallel

	ZeroMarginFallback bool               // Dates missing from the table get zero margins, rather than an error
	SkipExisting       bool               // Don't redo images whose output already exists
	CheckExifDate      bool               // Warn if EXIF capture date disagrees with the filename
	DumpTable          bool               // Write the margin table as CSV into the output dir
}

func NewConfig() Config {
	return Config{
		Anchors:    DefaultAnchors(),
		Background: "#ffffff",
		Workers:    runtime.NumCPU(),
	}
}

func newConfigFromYaml(b []byte) (Config, error) {
	c := NewConfig()
	err := yaml.Unmarshal(b, &c)
	return c, err
}

func LoadConfig(filename string) (Config, error) {
	contents, err := ioutil.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("config read %s: %v", filename, err)
	}

	c, err := newConfigFromYaml(contents)
	if err != nil {
		return c, fmt.Errorf("config parse %s: %v", filename, err)
	}
	return c, c.Validate()
}

func (c Config)AsYaml() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		log.Fatalf("Can't marshal config yaml: %v\n", err)
	}
	return string(b)
}

func (c Config)Validate() error {
	if err := c.Anchors.Validate(); err != nil {
		return err
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be >= 1, got %d", c.Workers)
	}
	q := c.BaseMargins
	if q.Top < 0 || q.Right < 0 || q.Bottom < 0 || q.Left < 0 {
		return fmt.Errorf("base margins must be non-negative, got %s", q)
	}
	if _, err := c.BackgroundColor(); err != nil {
		return err
	}
	return nil
}

// BackgroundColor parses the Background hex string into an opaque color.
func (c Config)BackgroundColor() (color.Color, error) {
	col, err := colorful.Hex(c.Background)
	if err != nil {
		return nil, fmt.Errorf("background %q: %v", c.Background, err)
	}
	r, g, b := col.RGB255()
	return color.RGBA{r, g, b, 0xff}, nil
}
