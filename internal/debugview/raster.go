package debugview

import (
	"image"
	"image/color"
	"math"

	"offaxis-renderer/internal/mathutil"
	"offaxis-renderer/internal/surface"
)

// vertex is a projected screen-space point carrying perspective-correct
// texture attributes (u/w, v/w, 1/w).
type vertex struct {
	x, y           float64
	invW           float64
	uOverW, vOverW float64
}

// project maps a world point through the combined view-projection matrix to
// pixel coordinates. ok is false for points at or behind the eye.
func project(vp mathutil.Mat4, p mathutil.Vec3, size int) (x, y, invW float64, ok bool) {
	clip, w := vp.MulPointW(p)
	if w < 1e-9 {
		return 0, 0, 0, false
	}
	inv := 1 / w
	half := float64(size) / 2
	x = (clip[0]*inv + 1) * half
	y = (1 - clip[1]*inv) * half
	return x, y, inv, true
}

func fill(img *image.NRGBA, c color.NRGBA) {
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
}

// drawPlane rasterizes the target rectangle as two textured triangles with
// UVs anchored at the corners (TL=0,0 … BR=1,1). With no backdrop the quad
// gets a flat fill so the projected footprint is still visible.
func drawPlane(img *image.NRGBA, vp mathutil.Mat4, geom surface.Geometry, tex *image.NRGBA) {
	size := img.Rect.Dx()
	corners := [4]mathutil.Vec3{geom.Corners.TL, geom.Corners.TR, geom.Corners.BL, geom.Corners.BR}
	uvs := [4][2]float64{{0, 0}, {1, 0}, {0, 1}, {1, 1}}

	var verts [4]vertex
	for i, c := range corners {
		x, y, invW, ok := project(vp, c, size)
		if !ok {
			return
		}
		verts[i] = vertex{
			x: x, y: y, invW: invW,
			uOverW: uvs[i][0] * invW,
			vOverW: uvs[i][1] * invW,
		}
	}

	// TL-TR-BL and TR-BR-BL
	texturedTriangle(img, verts[0], verts[1], verts[2], tex)
	texturedTriangle(img, verts[1], verts[3], verts[2], tex)
}

// texturedTriangle is the hot path: barycentric rasterization with
// perspective-correct bilinear texture sampling, no allocation in the loop.
func texturedTriangle(img *image.NRGBA, v0, v1, v2 vertex, tex *image.NRGBA) {
	w, h := img.Rect.Dx(), img.Rect.Dy()

	minX := int(math.Min(math.Min(v0.x, v1.x), v2.x))
	maxX := int(math.Max(math.Max(v0.x, v1.x), v2.x)) + 1
	minY := int(math.Min(math.Min(v0.y, v1.y), v2.y))
	maxY := int(math.Max(math.Max(v0.y, v1.y), v2.y)) + 1
	if minX < 0 {
		minX = 0
	}
	if maxX > w-1 {
		maxX = w - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY > h-1 {
		maxY = h - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	det := (v1.y-v2.y)*(v0.x-v2.x) + (v2.x-v1.x)*(v0.y-v2.y)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1 / det
	dy12 := v1.y - v2.y
	dx21 := v2.x - v1.x
	dy20 := v2.y - v0.y
	dx02 := v0.x - v2.x

	for py := minY; py <= maxY; py++ {
		fy := float64(py) + 0.5
		for px := minX; px <= maxX; px++ {
			fx := float64(px) + 0.5
			b0 := (dy12*(fx-v2.x) + dx21*(fy-v2.y)) * invDet
			b1 := (dy20*(fx-v2.x) + dx02*(fy-v2.y)) * invDet
			b2 := 1 - b0 - b1
			if b0 < 0 || b1 < 0 || b2 < 0 {
				continue
			}

			var r, g, b, a uint8 = 70, 90, 140, 255
			if tex != nil {
				invW := b0*v0.invW + b1*v1.invW + b2*v2.invW
				if invW < 1e-12 {
					continue
				}
				u := (b0*v0.uOverW + b1*v1.uOverW + b2*v2.uOverW) / invW
				v := (b0*v0.vOverW + b1*v1.vOverW + b2*v2.vOverW) / invW
				r, g, b, a = sampleBilinear(tex, u, v)
			}
			i := img.PixOffset(px, py)
			img.Pix[i] = r
			img.Pix[i+1] = g
			img.Pix[i+2] = b
			img.Pix[i+3] = a
		}
	}
}

// sampleBilinear performs bilinear filtering with UV clamping.
// Accesses tex.Pix directly for performance.
func sampleBilinear(tex *image.NRGBA, u, v float64) (r, g, b, a uint8) {
	w := tex.Rect.Dx()
	h := tex.Rect.Dy()
	if w == 0 || h == 0 {
		return 0, 0, 0, 0
	}

	if u < 0 {
		u = 0
	} else if u > 1 {
		u = 1
	}
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}

	fx := u * float64(w-1)
	fy := v * float64(h-1)
	x0 := int(fx)
	y0 := int(fy)
	x1 := x0 + 1
	if x1 > w-1 {
		x1 = w - 1
	}
	y1 := y0 + 1
	if y1 > h-1 {
		y1 = h - 1
	}
	dx := fx - float64(x0)
	dy := fy - float64(y0)

	stride := tex.Stride
	pix := tex.Pix

	i00 := y0*stride + x0*4
	i10 := y0*stride + x1*4
	i01 := y1*stride + x0*4
	i11 := y1*stride + x1*4

	w00 := (1 - dx) * (1 - dy)
	w10 := dx * (1 - dy)
	w01 := (1 - dx) * dy
	w11 := dx * dy

	fr := float64(pix[i00])*w00 + float64(pix[i10])*w10 + float64(pix[i01])*w01 + float64(pix[i11])*w11
	fg := float64(pix[i00+1])*w00 + float64(pix[i10+1])*w10 + float64(pix[i01+1])*w01 + float64(pix[i11+1])*w11
	fb := float64(pix[i00+2])*w00 + float64(pix[i10+2])*w10 + float64(pix[i01+2])*w01 + float64(pix[i11+2])*w11
	fa := float64(pix[i00+3])*w00 + float64(pix[i10+3])*w10 + float64(pix[i01+3])*w01 + float64(pix[i11+3])*w11

	return uint8(fr + 0.5), uint8(fg + 0.5), uint8(fb + 0.5), uint8(fa + 0.5)
}
