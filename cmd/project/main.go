// Command project computes the off-axis view/projection pair for a single
// camera pose against a configured plane, prints the numbers and optionally
// writes a debug render.
package main

import (
	"flag"
	"fmt"
	"image"
	"os"

	"offaxis-renderer/internal/backdrop"
	"offaxis-renderer/internal/config"
	"offaxis-renderer/internal/debugview"
	"offaxis-renderer/internal/mathutil"
	"offaxis-renderer/internal/projector"
	"offaxis-renderer/internal/surface"

	"github.com/HugoSmits86/nativewebp"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	camX := flag.Float64("x", 0, "Camera world X")
	camY := flag.Float64("y", 0, "Camera world Y")
	camZ := flag.Float64("z", 5, "Camera world Z")
	near := flag.Float64("near", 0, "Near clip (default: from config)")
	far := flag.Float64("far", 0, "Far clip (default: from config)")
	nearFromDist := flag.Bool("near-from-distance", false, "Use plane distance as near clip")
	debugOut := flag.String("debug", "", "Write a debug render to this WebP file")
	mode := flag.String("mode", "scene", "Debug render mode: scene or camera")
	backdropPath := flag.String("backdrop", "", "Plane texture for the debug render (PNG/JPEG/TGA)")

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
	cfg.Resolve(config.Flags{Backdrop: *backdropPath})
	if *near > 0 {
		cfg.NearClip = *near
	}
	if *far > 0 {
		cfg.FarClip = *far
	}
	if *nearFromDist {
		cfg.NearFromDistance = true
	}

	geom := surface.Compute(cfg.PlaneTransform(), cfg.PlaneWidth, cfg.PlaneHeight, cfg.MinSize)

	var proj projector.Projector
	res := proj.Update(geom, projector.Input{
		CameraPosition:   mathutil.Vec3{*camX, *camY, *camZ},
		CameraRotation:   geom.Orientation,
		Near:             cfg.NearClip,
		Far:              cfg.FarClip,
		NearFromDistance: cfg.NearFromDistance,
	})

	if !res.Accepted {
		fmt.Fprintf(os.Stderr, "Camera is behind the plane (distance %.4f); no matrices computed.\n", res.Distance)
		os.Exit(1)
	}

	fmt.Printf("Distance: %.6f  Near: %.6f  Far: %.6f\n", res.Distance, res.Near, cfg.FarClip)
	fmt.Printf("Extents:  l=%.6f r=%.6f b=%.6f t=%.6f\n",
		res.Extents.Left, res.Extents.Right, res.Extents.Bottom, res.Extents.Top)
	printMat("View", res.View)
	printMat("Projection", res.Projection)

	if *debugOut != "" {
		var tex *image.NRGBA
		if cfg.Backdrop != "" {
			var err error
			tex, err = backdrop.Load(cfg.Backdrop)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			}
		}
		rend := debugview.New(debugview.Options{
			Size:        cfg.RenderSize,
			Supersample: cfg.Supersample,
			Mode:        debugview.Mode(*mode),
			Backdrop:    tex,
		})
		img := rend.Render(geom, res)

		f, err := os.Create(*debugOut)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := nativewebp.Encode(f, img, nil); err != nil {
			fmt.Fprintf(os.Stderr, "Error: WebP encode: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Debug render: %s\n", *debugOut)
	}
}

func printMat(name string, m mathutil.Mat4) {
	fmt.Printf("%s:\n", name)
	for r := 0; r < 4; r++ {
		fmt.Printf("  [%12.6f %12.6f %12.6f %12.6f]\n", m[r*4], m[r*4+1], m[r*4+2], m[r*4+3])
	}
}
