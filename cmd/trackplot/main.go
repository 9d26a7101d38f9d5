// Package main renders track maps from cone observation files. It reads a
// JSON array of cone records, optionally applies a style-override config,
// and writes a PNG and/or an interactive HTML plot.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gridline-data/trackmap/internal/config"
	"github.com/gridline-data/trackmap/internal/monitoring"
	"github.com/gridline-data/trackmap/internal/render"
	"github.com/gridline-data/trackmap/internal/render/echarts"
	"github.com/gridline-data/trackmap/internal/render/gonumplot"
	"github.com/gridline-data/trackmap/internal/track"
)

// Config holds the parsed command line.
type Config struct {
	ConesFile  string
	StylesFile string
	PNGOut     string
	HTMLOut    string
	Title      string
	Detailed   bool
}

func parseFlags() Config {
	var cfg Config
	flag.StringVar(&cfg.ConesFile, "cones", "", "path to JSON cone records (required)")
	flag.StringVar(&cfg.StylesFile, "styles", "", "optional JSON style override config")
	flag.StringVar(&cfg.PNGOut, "png", "", "write a PNG plot to this path")
	flag.StringVar(&cfg.HTMLOut, "html", "", "write an interactive HTML plot to this path")
	flag.StringVar(&cfg.Title, "title", "Track Map", "plot title")
	flag.BoolVar(&cfg.Detailed, "detailed", false, "draw layered cone markers (slower)")
	flag.Parse()
	return cfg
}

func main() {
	if err := run(parseFlags()); err != nil {
		fmt.Fprintf(os.Stderr, "trackplot: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg Config) error {
	logf := monitoring.Scoped("trackplot")

	if cfg.ConesFile == "" {
		return fmt.Errorf("-cones is required")
	}
	if cfg.PNGOut == "" && cfg.HTMLOut == "" {
		return fmt.Errorf("nothing to do: pass -png and/or -html")
	}

	f, err := os.Open(cfg.ConesFile)
	if err != nil {
		return fmt.Errorf("open cone records: %w", err)
	}
	defer f.Close()

	cones, err := track.ParseConeRecords(f)
	if err != nil {
		return err
	}
	logf("loaded %d cones from %s", cones.Len(), cfg.ConesFile)

	styles := map[track.Category]render.Style{}
	if cfg.StylesFile != "" {
		sc, err := config.LoadStyleConfig(cfg.StylesFile)
		if err != nil {
			return err
		}
		styles = sc.Styles()
		logf("loaded style overrides for %d categories", len(styles))
	}

	if cfg.PNGOut != "" {
		surface := gonumplot.New(cfg.Title)
		plotCones(cones, surface, styles, cfg.Detailed)
		if err := surface.Save(cfg.PNGOut); err != nil {
			return err
		}
		logf("wrote %s", cfg.PNGOut)
	}

	if cfg.HTMLOut != "" {
		surface := echarts.New(cfg.Title)
		plotCones(cones, surface, styles, cfg.Detailed)
		out, err := os.Create(cfg.HTMLOut)
		if err != nil {
			return fmt.Errorf("create HTML output: %w", err)
		}
		defer out.Close()
		if err := surface.Render(out); err != nil {
			return err
		}
		logf("wrote %s", cfg.HTMLOut)
	}

	return nil
}

func plotCones(cones *track.ConeArray, s render.Surface, styles map[track.Category]render.Style, detailed bool) {
	if !detailed {
		cones.Plot(s, styles)
		return
	}
	for cat := range cones.Categories() {
		s.Legend(string(cat), cat.DefaultStyle().Merge(styles[cat]))
	}
	for _, c := range cones.All() {
		c.PlotDetailed(s, styles[c.Category])
	}
}
