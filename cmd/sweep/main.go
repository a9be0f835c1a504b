// Command sweep renders a camera path against the configured plane into
// numbered WebP frames plus a manifest.
package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"offaxis-renderer/internal/backdrop"
	"offaxis-renderer/internal/batch"
	"offaxis-renderer/internal/campath"
	"offaxis-renderer/internal/config"
	"offaxis-renderer/internal/debugview"
	"offaxis-renderer/internal/mathutil"
	"offaxis-renderer/internal/surface"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	frames := flag.Int("frames", 0, "Number of frames (default: from config)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	outputDir := flag.String("output", "", "Output directory (default: frames)")
	quality := flag.Int("quality", 0, "WebP quality 1-100 (default: 90)")
	backdropPath := flag.String("backdrop", "", "Plane texture (PNG/JPEG/TGA)")

	flag.Parse()

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
		OutputDir: *outputDir,
		Backdrop:  *backdropPath,
		Quality:   *quality,
		Workers:   *workers,
	})
	if *frames > 0 {
		cfg.Frames = *frames
	}

	geom := surface.Compute(cfg.PlaneTransform(), cfg.PlaneWidth, cfg.PlaneHeight, cfg.MinSize)

	poses, err := campath.Generate(campath.Spec{
		Kind:   cfg.PathKind,
		Frames: cfg.Frames,
		Start:  mathutil.Vec3(cfg.PathStart),
		End:    mathutil.Vec3(cfg.PathEnd),
		Radius: cfg.OrbitRadius,
		Height: cfg.OrbitHeight,
		ArcDeg: cfg.OrbitArcDeg,
	}, geom)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var tex *image.NRGBA
	if cfg.Backdrop != "" {
		tex, err = backdrop.Load(cfg.Backdrop)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	fmt.Printf("Off-axis projection sweep (%s path)\n", cfg.PathKind)
	fmt.Printf("Frames: %d, Workers: %d\n", len(poses), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	results := batch.Run(batch.Config{
		OutputDir:        cfg.OutputDir,
		Backdrop:         tex,
		Mode:             debugview.Mode(cfg.ViewMode),
		RenderSize:       cfg.RenderSize,
		Supersample:      cfg.Supersample,
		WebPQuality:      cfg.WebPQuality,
		Workers:          cfg.Workers,
		Near:             cfg.NearClip,
		Far:              cfg.FarClip,
		NearFromDistance: cfg.NearFromDistance,
	}, geom, poses)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	success, failed, rejected := 0, 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
		if !r.Accepted {
			rejected++
		}
	}

	fmt.Printf("Rendered: %d/%d", success, len(poses))
	if rejected > 0 {
		fmt.Printf(" (%d poses behind the plane, reverted)", rejected)
	}
	fmt.Println()

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := 20
		if len(errors) < limit {
			limit = len(errors)
		}
		for _, e := range errors[:limit] {
			fmt.Printf("  frame %d: %s\n", e.Frame, e.Error)
		}
	}

	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, poses, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
