// Package batch renders a camera path into numbered WebP frames using a
// worker pool. The projector pass runs sequentially first, preserving the
// validity-guard semantics across frames; only rasterization and encoding
// fan out to workers.
package batch

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"offaxis-renderer/internal/campath"
	"offaxis-renderer/internal/debugview"
	"offaxis-renderer/internal/projector"
	"offaxis-renderer/internal/surface"

	"github.com/HugoSmits86/nativewebp"
)

// Config holds all shared resources for a batch run.
type Config struct {
	OutputDir   string
	Backdrop    *image.NRGBA
	Mode        debugview.Mode
	RenderSize  int
	Supersample int
	WebPQuality int
	Workers     int

	Near             float64
	Far              float64
	NearFromDistance bool
}

// Result holds the outcome of one frame.
type Result struct {
	Frame    int
	Accepted bool
	Distance float64
	Success  bool
	Error    string
}

// Run projects every pose against the plane, then renders and encodes the
// frames in parallel.
func Run(cfg Config, geom surface.Geometry, poses []campath.Pose) []Result {
	total := len(poses)
	results := make([]Result, total)

	// Sequential projector pass: the guard's last-valid state is ordered.
	var proj projector.Projector
	frames := make([]projector.Result, total)
	for i, pose := range poses {
		frames[i] = proj.Update(geom, projector.Input{
			CameraPosition:   pose.Position,
			CameraRotation:   pose.Rotation,
			Near:             cfg.Near,
			Far:              cfg.Far,
			NearFromDistance: cfg.NearFromDistance,
		})
		results[i] = Result{
			Frame:    i,
			Accepted: frames[i].Accepted,
			Distance: frames[i].Distance,
		}
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		for i := range results {
			results[i].Error = err.Error()
		}
		return results
	}

	var processed atomic.Int64
	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.1f frames/sec\n", p, total, rate)
				}
			}
		}
	}()

	// Worker pool
	frameChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rend := debugview.New(debugview.Options{
				Size:        cfg.RenderSize,
				Supersample: cfg.Supersample,
				Mode:        cfg.Mode,
				Backdrop:    cfg.Backdrop,
			})
			for idx := range frameChan {
				if err := renderFrame(cfg, rend, geom, frames[idx], idx); err != nil {
					results[idx].Error = err.Error()
				} else {
					results[idx].Success = true
				}
				processed.Add(1)
			}
		}()
	}

	for i := range frames {
		frameChan <- i
	}
	close(frameChan)

	wg.Wait()
	close(done)

	return results
}

func renderFrame(cfg Config, rend *debugview.Renderer, geom surface.Geometry, res projector.Result, idx int) error {
	img := rend.Render(geom, res)

	outPath := filepath.Join(cfg.OutputDir, fmt.Sprintf("frame-%04d.webp", idx))
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		return fmt.Errorf("webp encode frame %d: %w", idx, err)
	}
	return nil
}
