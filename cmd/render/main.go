package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pointcloud-renderer/internal/batch"
	"pointcloud-renderer/internal/config"
	"pointcloud-renderer/internal/pointcloud"
	"pointcloud-renderer/internal/texture"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json or config.yaml")
	outputDir := flag.String("output", "", "Output directory (default: renders)")
	width := flag.Int("width", 0, "Frame width in pixels (default: 640)")
	height := flag.Int("height", 0, "Frame height in pixels (default: 360)")
	points := flag.Int("points", 0, "Number of points (default: 100000)")
	frames := flag.Int("frames", 0, "Number of frames to render (default: 120)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	palette := flag.String("palette", "", "Image (png/jpg/tga/webp) to colour points from")
	seed := flag.Uint64("seed", 0, "Random seed for point generation (default: 1)")
	quiet := flag.Bool("quiet", false, "Disable the progress bar")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		OutputDir: *outputDir,
		Width:     *width,
		Height:    *height,
		Points:    *points,
		Frames:    *frames,
		Workers:   *workers,
		Palette:   *palette,
		Seed:      *seed,
	})

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Palette is optional: fall back to position colouring
	var pal pointcloud.Palette
	if cfg.Palette != "" {
		p, err := texture.LoadPalette(cfg.Palette)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: palette: %v\n", err)
		} else {
			pal = p
		}
	}

	fmt.Println("Point cloud renderer → WebP")
	fmt.Printf("Frames: %d @ %dx%d (x%d supersample), Points: %d, Workers: %d\n",
		cfg.Frames, cfg.Width, cfg.Height, cfg.Supersample, cfg.Points, cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	// Run batch
	batchCfg := batch.Config{
		Width:           cfg.Width,
		Height:          cfg.Height,
		Supersample:     cfg.Supersample,
		Near:            cfg.Near,
		Far:             cfg.Far,
		PointSize:       cfg.PointSize,
		RegenerateEvery: cfg.RegenerateEvery,
		Frames:          cfg.Frames,
		Spin:            cfg.SpinDegrees(),
		SpinAxis:        cfg.SpinAxis,
		ViewRot:         cfg.ViewRot,
		Orbit:           cfg.Orbit,
		HUD:             cfg.HUD,
		Workers:         cfg.Workers,
		Points:          pointcloud.NewCache(cfg.Points, cfg.CloudScale, cfg.Seed, pal),
	}
	if !*quiet {
		batchCfg.Progress = os.Stderr
	}

	results, err := batch.Run(batchCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs (%.1f frames/sec)\n", elapsed.Seconds(), float64(len(results))/elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []batch.Frame
	for _, r := range results {
		if r.Err == nil {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Rendered: %d/%d\n", success, len(results))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := 20
		if len(errors) < limit {
			limit = len(errors)
		}
		for _, e := range errors[:limit] {
			fmt.Printf("  frame %d: %v\n", e.Index, e.Err)
		}
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if cfg.WriteFrames {
		for _, r := range results {
			if r.Err != nil {
				continue
			}
			if err := batch.WriteFrame(filepath.Join(cfg.OutputDir, batch.FrameName(r.Index)), r.Image); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: frame %d: %v\n", r.Index, err)
			}
		}
	}

	aniPath := filepath.Join(cfg.OutputDir, "pointcloud.webp")
	if err := batch.WriteAnimation(aniPath, results, cfg.FrameDurationMS()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: animation: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Animation: %s\n", aniPath)

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, results, cfg.WriteFrames); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
