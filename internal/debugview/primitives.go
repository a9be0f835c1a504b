package debugview

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"offaxis-renderer/internal/mathutil"
	"offaxis-renderer/internal/projector"
	"offaxis-renderer/internal/surface"
)

var (
	colOutline = color.NRGBA{230, 230, 230, 255}
	colRight   = color.NRGBA{220, 70, 70, 255}
	colUp      = color.NRGBA{80, 200, 80, 255}
	colNormal  = color.NRGBA{90, 120, 240, 255}
	colFrustum = color.NRGBA{235, 200, 80, 255}
	colViewDir = color.NRGBA{255, 255, 255, 255}
	colText    = color.NRGBA{235, 235, 235, 255}
)

// AverageViewDir returns the normalized mean of the four camera-to-corner
// directions, the aggregate viewing direction the debug overlay draws.
func AverageViewDir(geom surface.Geometry, eye mathutil.Vec3) mathutil.Vec3 {
	sum := geom.Corners.TL.Sub(eye).Normalize().
		Add(geom.Corners.TR.Sub(eye).Normalize()).
		Add(geom.Corners.BL.Sub(eye).Normalize()).
		Add(geom.Corners.BR.Sub(eye).Normalize())
	return sum.Normalize()
}

// drawRig draws the wireframe overlay: plane outline, basis arrows, the
// camera marker, frustum edges and the averaged view direction.
func drawRig(img *image.NRGBA, vp mathutil.Mat4, geom surface.Geometry, res projector.Result, mode Mode) {
	c := geom.Corners
	drawLine3(img, vp, c.TL, c.TR, colOutline)
	drawLine3(img, vp, c.TR, c.BR, colOutline)
	drawLine3(img, vp, c.BR, c.BL, colOutline)
	drawLine3(img, vp, c.BL, c.TL, colOutline)

	if mode == ModeCamera {
		// Through the off-axis camera the arrows would be edge-on and the
		// frustum edges degenerate; the outline alone shows the fit.
		return
	}

	arrow := c.TR.Sub(c.BL).Len() * 0.25
	drawLine3(img, vp, geom.Center, geom.Center.Add(geom.Right.Scale(arrow)), colRight)
	drawLine3(img, vp, geom.Center, geom.Center.Add(geom.Up.Scale(arrow)), colUp)
	drawLine3(img, vp, geom.Center, geom.Center.Add(geom.Normal.Scale(arrow)), colNormal)

	eye := res.Position
	drawLine3(img, vp, eye, c.TL, colFrustum)
	drawLine3(img, vp, eye, c.TR, colFrustum)
	drawLine3(img, vp, eye, c.BL, colFrustum)
	drawLine3(img, vp, eye, c.BR, colFrustum)
	drawMarker(img, vp, eye, colFrustum)

	drawLine3(img, vp, eye, eye.Add(AverageViewDir(geom, eye).Scale(arrow)), colViewDir)
}

// drawLine3 projects both endpoints and draws a DDA line between them.
// Segments with an endpoint at or behind the observer are skipped.
func drawLine3(img *image.NRGBA, vp mathutil.Mat4, a, b mathutil.Vec3, col color.NRGBA) {
	size := img.Rect.Dx()
	x0, y0, _, ok0 := project(vp, a, size)
	x1, y1, _, ok1 := project(vp, b, size)
	if !ok0 || !ok1 {
		return
	}
	drawLine(img, x0, y0, x1, y1, col)
}

func drawLine(img *image.NRGBA, x0, y0, x1, y1 float64, col color.NRGBA) {
	steps := int(math.Max(math.Abs(x1-x0), math.Abs(y1-y0))) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		setPixel(img, int(x0+(x1-x0)*t), int(y0+(y1-y0)*t), col)
	}
}

func drawMarker(img *image.NRGBA, vp mathutil.Mat4, p mathutil.Vec3, col color.NRGBA) {
	size := img.Rect.Dx()
	x, y, _, ok := project(vp, p, size)
	if !ok {
		return
	}
	r := size / 128
	if r < 2 {
		r = 2
	}
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				setPixel(img, int(x)+dx, int(y)+dy, col)
			}
		}
	}
}

func setPixel(img *image.NRGBA, x, y int, col color.NRGBA) {
	if x < 0 || y < 0 || x >= img.Rect.Dx() || y >= img.Rect.Dy() {
		return
	}
	i := img.PixOffset(x, y)
	img.Pix[i] = col.R
	img.Pix[i+1] = col.G
	img.Pix[i+2] = col.B
	img.Pix[i+3] = col.A
}

// drawLabels annotates the final-resolution frame: corner names plus a
// one-line readout of distance and frustum extents.
func drawLabels(img *image.NRGBA, vp mathutil.Mat4, geom surface.Geometry, res projector.Result) {
	size := img.Rect.Dx()
	corners := []struct {
		name string
		p    mathutil.Vec3
	}{
		{"TL", geom.Corners.TL},
		{"TR", geom.Corners.TR},
		{"BL", geom.Corners.BL},
		{"BR", geom.Corners.BR},
	}
	for _, c := range corners {
		x, y, _, ok := project(vp, c.p, size)
		if !ok {
			continue
		}
		drawText(img, int(x)+4, int(y)-4, c.name)
	}

	e := res.Extents
	drawText(img, 6, 16, fmt.Sprintf("d=%.3f n=%.3f l=%.4f r=%.4f b=%.4f t=%.4f",
		res.Distance, res.Near, e.Left, e.Right, e.Bottom, e.Top))
}

func drawText(img *image.NRGBA, x, y int, s string) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(colText),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
