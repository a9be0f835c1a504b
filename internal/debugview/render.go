// Package debugview renders diagnostic images of a projection rig: the
// target plane (optionally textured with a backdrop), its basis arrows, the
// camera position and the frustum lines to the four corners. It consumes the
// core's result structs and never feeds anything back.
package debugview

import (
	"image"
	"image/color"
	"math"

	"offaxis-renderer/internal/mathutil"
	"offaxis-renderer/internal/postprocess"
	"offaxis-renderer/internal/projector"
	"offaxis-renderer/internal/surface"
)

// Mode selects the observer for a debug frame.
type Mode string

const (
	// ModeCamera renders through the computed off-axis view/projection pair.
	// A correct result shows the plane exactly filling the frame.
	ModeCamera Mode = "camera"
	// ModeScene renders the whole rig from a third-person observer.
	ModeScene Mode = "scene"
)

// Options configure a Renderer. Zero values fall back to a 512px frame,
// 2× supersampling and scene mode.
type Options struct {
	Size        int
	Supersample int
	Mode        Mode
	Backdrop    *image.NRGBA  // plane texture; nil draws a flat fill
	Observer    mathutil.Vec3 // scene-mode viewpoint; zero picks one from the rig
}

// Renderer draws debug frames. It implements projector.Sink so a host can
// attach it to a Projector and pull the latest frame after each update.
type Renderer struct {
	opts Options

	haveFrame bool
	geom      surface.Geometry
	res       projector.Result
}

func New(opts Options) *Renderer {
	if opts.Size <= 0 {
		opts.Size = 512
	}
	if opts.Supersample <= 0 {
		opts.Supersample = 2
	}
	if opts.Mode == "" {
		opts.Mode = ModeScene
	}
	return &Renderer{opts: opts}
}

// Record stores the latest accepted update. Part of projector.Sink.
func (r *Renderer) Record(geom surface.Geometry, res projector.Result) {
	r.geom = geom
	r.res = res
	r.haveFrame = true
}

// Frame renders the most recent recorded update, or nil before any update.
func (r *Renderer) Frame() *image.NRGBA {
	if !r.haveFrame {
		return nil
	}
	return r.Render(r.geom, r.res)
}

// Render draws one debug frame for the given geometry and projector result.
func (r *Renderer) Render(geom surface.Geometry, res projector.Result) *image.NRGBA {
	size := r.opts.Size * r.opts.Supersample
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	fill(img, color.NRGBA{24, 24, 28, 255})

	vp := r.viewProjection(geom, res)

	// Plane quad first, wireframe and labels on top.
	drawPlane(img, vp, geom, r.opts.Backdrop)
	drawRig(img, vp, geom, res, r.opts.Mode)

	if r.opts.Supersample > 1 {
		img = postprocess.Downsample(img, r.opts.Size, r.opts.Size)
	}
	// Labels go on after the downsample so the 7x13 face stays crisp.
	drawLabels(img, vp, geom, res)
	return img
}

// viewProjection composes the observer's combined matrix. Frames are square,
// so the matrix is resolution-independent; rasterization scales from NDC.
func (r *Renderer) viewProjection(geom surface.Geometry, res projector.Result) mathutil.Mat4 {
	if r.opts.Mode == ModeCamera {
		return mathutil.Mat4Mul(res.Projection, res.View)
	}

	obs := r.opts.Observer
	if obs == (mathutil.Vec3{}) {
		// Back off from the camera along its offset from the plane, raised
		// along the plane's up, so both the plane and the frustum stay in view.
		away := res.Position.Sub(geom.Center)
		obs = geom.Center.Add(away.Scale(2.2)).Add(geom.Up.Scale(away.Len() * 0.8))
	}
	view := lookAt(obs, geom.Center, geom.Up)
	proj := symmetricPerspective(mathutil.Deg2Rad(50), 0.05, 1000)
	return mathutil.Mat4Mul(proj, view)
}

// lookAt builds a world→eye matrix in the same +Z-forward convention the
// plane basis uses, so one projection formula serves both modes.
func lookAt(eye, target, up mathutil.Vec3) mathutil.Mat4 {
	fwd := target.Sub(eye).Normalize()
	right := fwd.Cross(up).Normalize()
	if right.Len() < 1e-9 {
		right = mathutil.Vec3{1, 0, 0}
	}
	u := right.Cross(fwd).Normalize()
	rot := mathutil.Mat4{
		right[0], right[1], right[2], 0,
		u[0], u[1], u[2], 0,
		fwd[0], fwd[1], fwd[2], 0,
		0, 0, 0, 1,
	}
	return mathutil.Mat4Mul(rot, mathutil.Mat4Translate(eye.Neg()))
}

func symmetricPerspective(fovY, near, far float64) mathutil.Mat4 {
	h := near * math.Tan(fovY/2)
	return mathutil.Mat4Frustum(-h, h, -h, h, near, far)
}
