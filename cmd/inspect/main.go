// Command inspect prints the derived world-space geometry of a plane: the
// four corners, the basis vectors and the basis matrix.
package main

import (
	"flag"
	"fmt"
	"os"

	"offaxis-renderer/internal/config"
	"offaxis-renderer/internal/surface"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	width := flag.Float64("width", 0, "Plane width (default: from config)")
	height := flag.Float64("height", 0, "Plane height (default: from config)")

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
	cfg.Resolve(config.Flags{})
	if *width > 0 {
		cfg.PlaneWidth = *width
	}
	if *height > 0 {
		cfg.PlaneHeight = *height
	}

	geom := surface.Compute(cfg.PlaneTransform(), cfg.PlaneWidth, cfg.PlaneHeight, cfg.MinSize)

	fmt.Printf("Plane %gx%g at (%g, %g, %g)\n", cfg.PlaneWidth, cfg.PlaneHeight,
		cfg.PlanePosition[0], cfg.PlanePosition[1], cfg.PlanePosition[2])
	fmt.Printf("  TL: (%9.4f, %9.4f, %9.4f)\n", geom.Corners.TL[0], geom.Corners.TL[1], geom.Corners.TL[2])
	fmt.Printf("  TR: (%9.4f, %9.4f, %9.4f)\n", geom.Corners.TR[0], geom.Corners.TR[1], geom.Corners.TR[2])
	fmt.Printf("  BL: (%9.4f, %9.4f, %9.4f)\n", geom.Corners.BL[0], geom.Corners.BL[1], geom.Corners.BL[2])
	fmt.Printf("  BR: (%9.4f, %9.4f, %9.4f)\n", geom.Corners.BR[0], geom.Corners.BR[1], geom.Corners.BR[2])
	fmt.Printf("  right:  (%9.6f, %9.6f, %9.6f)\n", geom.Right[0], geom.Right[1], geom.Right[2])
	fmt.Printf("  up:     (%9.6f, %9.6f, %9.6f)\n", geom.Up[0], geom.Up[1], geom.Up[2])
	fmt.Printf("  normal: (%9.6f, %9.6f, %9.6f)\n", geom.Normal[0], geom.Normal[1], geom.Normal[2])
	fmt.Println("  basis:")
	for r := 0; r < 4; r++ {
		fmt.Printf("    [%9.6f %9.6f %9.6f %9.6f]\n",
			geom.Basis[r*4], geom.Basis[r*4+1], geom.Basis[r*4+2], geom.Basis[r*4+3])
	}
}
