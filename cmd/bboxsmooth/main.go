package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"

	"github.com/LdDl/fuzzy-bbox-go/smoothing"
)

func main() {
	var inPath string
	var outPath string
	var configPath string
	var resetGap int
	var compare bool
	flag.StringVar(&inPath, "in", "", "Path to detections CSV (frame;x1;y1;x2;y2;confidence). Stdin if empty.")
	flag.StringVar(&outPath, "out", "", "Path to smoothed CSV. Stdout if empty.")
	flag.StringVar(&configPath, "config", "", "Path to JSON smoother config. Built-in defaults if empty.")
	flag.IntVar(&resetGap, "reset-gap", 0, "Reset smoother when frame number jumps by more than this value. 0 disables.")
	flag.BoolVar(&compare, "compare", false, "Print jitter statistics of raw, fuzzy and Kalman outputs to stderr.")
	flag.Parse()

	cfg := smoothing.DefaultConfig()
	if configPath != "" {
		var err error
		cfg, err = smoothing.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("load config %q: %v", configPath, err)
		}
	}
	smoother, err := smoothing.NewFuzzySmoother(cfg)
	if err != nil {
		log.Fatalf("create smoother: %v", err)
	}

	var in io.Reader = os.Stdin
	if inPath != "" {
		file, err := os.Open(inPath)
		if err != nil {
			log.Fatalf("open %q: %v", inPath, err)
		}
		defer file.Close()
		in = file
	}
	samples, err := smoothing.ReadSamples(in)
	if err != nil {
		log.Fatal(err)
	}

	var out io.Writer = os.Stdout
	if outPath != "" {
		file, err := os.Create(outPath)
		if err != nil {
			log.Fatalf("create %q: %v", outPath, err)
		}
		defer file.Close()
		out = file
	}
	if err := smoothing.WriteSmoothed(out, smoothing.ReplayFuzzy(samples, smoother, resetGap)); err != nil {
		log.Fatal(err)
	}

	if !compare {
		return
	}
	fuzzyCompared, err := smoothing.NewFuzzySmoother(cfg)
	if err != nil {
		log.Fatalf("create smoother: %v", err)
	}
	stats := smoothing.CompareSmoothers(samples, map[string]smoothing.BBoxSmoother{
		"raw":    smoothing.PassthroughSmoother{},
		"fuzzy":  fuzzyCompared,
		"kalman": smoothing.NewKalmanSmootherDefault(),
	}, resetGap)
	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		s := stats[name]
		fmt.Fprintf(os.Stderr, "%-6s frames=%d mean_step=%.3f max_step=%.3f mean_iou=%.4f\n", name, s.Frames, s.MeanStep, s.MaxStep, s.MeanIoU)
	}
}
