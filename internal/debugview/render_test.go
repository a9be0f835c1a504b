package debugview

import (
	"image"
	"image/color"
	"math"
	"testing"

	"offaxis-renderer/internal/mathutil"
	"offaxis-renderer/internal/projector"
	"offaxis-renderer/internal/surface"
)

func centeredFrame(t *testing.T) (surface.Geometry, projector.Result) {
	t.Helper()
	geom := surface.Compute(mathutil.TransformIdentity(), 2, 1, 0)
	var p projector.Projector
	res := p.Update(geom, projector.Input{
		CameraPosition: mathutil.Vec3{0, 0, 5},
		CameraRotation: geom.Orientation,
		Near:           0.1,
		Far:            100,
	})
	if !res.Accepted {
		t.Fatal("setup update rejected")
	}
	return geom, res
}

func TestCameraModePlaneFillsFrame(t *testing.T) {
	geom, res := centeredFrame(t)
	r := New(Options{Size: 64, Supersample: 1, Mode: ModeCamera})
	img := r.Render(geom, res)

	if img.Bounds() != image.Rect(0, 0, 64, 64) {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	// Through the off-axis pair the plane exactly fills the frame: the
	// center pixel carries the quad fill, not the background.
	bg := color.NRGBA{24, 24, 28, 255}
	if got := img.NRGBAAt(32, 40); got == bg {
		t.Errorf("center pixel is background %v; plane quad missing", got)
	}
}

func TestSceneModeShowsRig(t *testing.T) {
	geom, res := centeredFrame(t)
	r := New(Options{Size: 64, Supersample: 1, Mode: ModeScene})
	img := r.Render(geom, res)

	bg := color.NRGBA{24, 24, 28, 255}
	painted := 0
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if img.NRGBAAt(x, y) != bg {
				painted++
			}
		}
	}
	if painted == 0 {
		t.Error("scene render is empty")
	}
}

func TestProjectMapsNDCToPixels(t *testing.T) {
	geom, res := centeredFrame(t)
	vp := mathutil.Mat4Mul(res.Projection, res.View)

	// Plane center sits on the view axis: dead center of the frame.
	x, y, _, ok := project(vp, geom.Center, 100)
	if !ok {
		t.Fatal("center not visible")
	}
	if math.Abs(x-50) > 1e-6 || math.Abs(y-50) > 1e-6 {
		t.Errorf("center projects to (%v, %v), want (50, 50)", x, y)
	}

	// A point behind the camera is reported not visible.
	if _, _, _, ok := project(vp, mathutil.Vec3{0, 0, 10}, 100); ok {
		t.Error("point behind the camera reported visible")
	}
}

func TestAverageViewDirCenteredCamera(t *testing.T) {
	geom, res := centeredFrame(t)
	dir := AverageViewDir(geom, res.Position)
	// Lateral components cancel for a centered camera.
	if math.Abs(dir[0]) > 1e-9 || math.Abs(dir[1]) > 1e-9 || dir[2] >= 0 {
		t.Errorf("average view dir = %v, want straight into the plane", dir)
	}
}

func TestRecordFrame(t *testing.T) {
	geom, res := centeredFrame(t)
	r := New(Options{Size: 32, Supersample: 1})

	if r.Frame() != nil {
		t.Error("frame before any record")
	}
	r.Record(geom, res)
	if r.Frame() == nil {
		t.Error("no frame after record")
	}
}
