package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"pointcloud-renderer/internal/config"
	"pointcloud-renderer/internal/pointcloud"
	"pointcloud-renderer/internal/texture"
	"pointcloud-renderer/internal/viewer"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json or config.yaml")
	width := flag.Int("width", 0, "Window width (default: 640)")
	height := flag.Int("height", 0, "Window height (default: 360)")
	points := flag.Int("points", 0, "Number of points (default: 100000)")
	palette := flag.String("palette", "", "Image (png/jpg/tga/webp) to colour points from")
	verbose := flag.Bool("v", false, "Log view and regeneration events")

	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{
		Width:   *width,
		Height:  *height,
		Points:  *points,
		Palette: *palette,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var pal pointcloud.Palette
	if cfg.Palette != "" {
		p, err := texture.LoadPalette(cfg.Palette)
		if err != nil {
			slog.Warn("palette not loaded, using position colours", "err", err)
		} else {
			pal = p
		}
	}

	slog.Info("opening viewer", "width", cfg.Width, "height", cfg.Height, "points", cfg.Points)

	err := viewer.Run(viewer.Options{
		Title:           "pointcloud",
		Width:           cfg.Width,
		Height:          cfg.Height,
		PointSize:       cfg.PointSize,
		Spin:            cfg.SpinDegrees(),
		SpinAxis:        cfg.SpinAxis,
		RegenerateEvery: cfg.RegenerateEvery,
		TPS:             cfg.FPS,
		ViewRot:         cfg.ViewRot,
		Near:            cfg.Near,
		Far:             cfg.Far,
	}, pointcloud.NewCache(cfg.Points, cfg.CloudScale, cfg.Seed, pal))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
