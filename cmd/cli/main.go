// Command speed-profile turns a track, a point file or a segment list into a speed
// profile.
//
// With -track, -points or -segments it runs the file pipeline and writes its artifacts
// into -out. Otherwise it reads an Input JSON from a file argument (or stdin) and writes
// the Output JSON to stdout.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/cxd309/speed-profile/internal/config"
	"github.com/cxd309/speed-profile/internal/pipeline"
	"github.com/cxd309/speed-profile/internal/trackio"
)

func main() {
	var (
		configPath   = flag.String("config", "", "Path to a JSON config file")
		trackPath    = flag.String("track", "", "Track JSON (line and arc primitives)")
		pointsPath   = flag.String("points", "", "Tab-separated X/Y point file")
		segmentsPath = flag.String("segments", "", "Segment list JSON")
		outDir       = flag.String("out", "out", "Output directory for the file pipeline")
		format       = flag.String("format", trackio.FormatCSV, "Trace format: csv|json|parquet")
		plots        = flag.Bool("plot", false, "Write profile.png and path.png")
		html         = flag.Bool("html", false, "Write profile.html")
		quiet        = flag.Bool("quiet", false, "Suppress progress logging")

		timeStep = flag.Float64("dt", 0, "Time step override in seconds")
		maxSpeed = flag.Float64("vmax", 0, "Max speed override")
		maxAcc   = flag.Float64("acc", 0, "Max acceleration override")
		metric   = flag.String("metric", "", "Curvature metric override: deflection|slope")
		inset    = flag.Float64("inset", 0, "Inset distance override")
		workers  = flag.Int("workers", 0, "Worker goroutines override")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s (-track t.json | -points p.tsv | -segments s.json) [-out dir] [-format csv|json|parquet] [-plot] [-html]\n", filepath.Base(os.Args[0]))
		fmt.Fprintf(flag.CommandLine.Output(), "       %s [input.json]   (JSON in, JSON out)\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if *trackPath == "" && *pointsPath == "" && *segmentsPath == "" {
		runJSON(flag.Args())
		return
	}

	cfg := &config.Config{}
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dt":
			cfg.TimeStep = config.Float64(*timeStep)
		case "vmax":
			cfg.MaxSpeed = config.Float64(*maxSpeed)
		case "acc":
			cfg.MaxAcceleration = config.Float64(*maxAcc)
		case "metric":
			cfg.CurvatureMetric = config.String(*metric)
		case "inset":
			cfg.InsetDistance = config.Float64(*inset)
		case "workers":
			cfg.Workers = config.Int(*workers)
		}
	})

	input := pipeline.Input{Config: cfg}
	var err error
	switch {
	case *trackPath != "":
		input.Track, err = readWith(*trackPath, trackio.ReadTrackJSON)
	case *pointsPath != "":
		input.Points, err = readWith(*pointsPath, trackio.ReadPointsTSV)
	default:
		input.Segments, err = readWith(*segmentsPath, trackio.ReadSegmentsJSON)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading input: %v\n", err)
		os.Exit(1)
	}

	var opts pipeline.Options
	if !*quiet {
		opts.Logger = log.New(os.Stderr, "speed-profile: ", log.LstdFlags)
	}
	out, err := pipeline.Run(input, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "profile error: %v\n", err)
		os.Exit(1)
	}
	a, err := pipeline.WriteArtifacts(out, pipeline.ArtifactOptions{Dir: *outDir, Format: *format, Plots: *plots, HTML: *html})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error writing output: %v\n", err)
		os.Exit(1)
	}

	s := out.Summary
	fmt.Printf("speed-profile complete (run %s, source %s)\n", out.Meta.RunID, out.Source)
	fmt.Printf("segments:       %d\n", s.Segments)
	fmt.Printf("samples:        %d\n", s.Samples)
	fmt.Printf("duration:       %.3fs (analytic %.3fs)\n", s.Duration, s.Analytic)
	fmt.Printf("peak speed:     %.3f\n", s.PeakSpeed)
	fmt.Printf("segments.json:  %s\n", a.SegmentsPath)
	if a.PointsPath != "" {
		fmt.Printf("points.tsv:     %s\n", a.PointsPath)
	}
	fmt.Printf("trace:          %s\n", a.TracePath)
	for _, p := range []string{a.ProfilePNG, a.PathPNG, a.ProfileHTML} {
		if p != "" {
			fmt.Printf("chart:          %s\n", p)
		}
	}
}

// runJSON reads an Input JSON from the first argument (or stdin) and prints the Output.
func runJSON(args []string) {
	var (
		data []byte
		err  error
	)
	if len(args) > 0 {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading input: %v\n", err)
		os.Exit(1)
	}

	result, err := pipeline.RunJSON(string(data))
	if err != nil {
		fmt.Fprintf(os.Stderr, "profile error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(result)
}

func readWith[T any](path string, read func(io.Reader) (T, error)) (T, error) {
	f, err := os.Open(path)
	if err != nil {
		var zero T
		return zero, err
	}
	defer f.Close()
	return read(f)
}
