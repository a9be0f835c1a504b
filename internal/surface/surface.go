// Package surface derives the world-space geometry of a rectangular planar
// target: its four corners and the orthonormal (right, up, normal) frame the
// projector builds its frustum from.
package surface

import (
	"offaxis-renderer/internal/mathutil"
)

// DefaultMinSize is the floor applied to each size axis. Configured minimums
// below this are raised to it, so a degenerate zero-area plane cannot occur.
const DefaultMinSize = 0.01

// Corners holds the rectangle's world-space corner points.
type Corners struct {
	TL, TR, BL, BR mathutil.Vec3
}

// Geometry is the immutable result of a plane recompute. The basis vectors
// are unit length and mutually orthogonal; Normal points away from the
// intended camera side, along the viewing direction into the plane.
type Geometry struct {
	Corners     Corners
	Right       mathutil.Vec3
	Up          mathutil.Vec3
	Normal      mathutil.Vec3
	Basis       mathutil.Mat4 // rows: right, up, normal; world→plane-local rotation
	Center      mathutil.Vec3
	Orientation mathutil.Quat
}

// Compute derives the plane geometry from a transform and a 2D size. Pure:
// identical inputs yield bit-identical results. Size axes are clamped
// independently to max(minSize, DefaultMinSize); there are no error cases.
func Compute(tr mathutil.Transform, width, height, minSize float64) Geometry {
	if minSize < DefaultMinSize {
		minSize = DefaultMinSize
	}
	if width < minSize {
		width = minSize
	}
	if height < minSize {
		height = minSize
	}

	hw, hh := width/2, height/2
	c := Corners{
		TL: tr.Apply(mathutil.Vec3{-hw, hh, 0}),
		TR: tr.Apply(mathutil.Vec3{hw, hh, 0}),
		BL: tr.Apply(mathutil.Vec3{-hw, -hh, 0}),
		BR: tr.Apply(mathutil.Vec3{hw, -hh, 0}),
	}

	up := c.TL.Sub(c.BL).Normalize()
	right := c.BR.Sub(c.BL).Normalize()
	normal := right.Cross(up).Normalize().Neg()

	return Geometry{
		Corners: c,
		Right:   right,
		Up:      up,
		Normal:  normal,
		Basis: mathutil.Mat4{
			right[0], right[1], right[2], 0,
			up[0], up[1], up[2], 0,
			normal[0], normal[1], normal[2], 0,
			0, 0, 0, 1,
		},
		Center:      tr.Position,
		Orientation: tr.Rotation,
	}
}

// Plane caches the last computed Geometry behind an explicit generation
// counter supplied by the transform's owner. The cache never polls host
// state: the owner bumps the generation when transform or size change.
type Plane struct {
	MinSize float64

	gen   uint64
	valid bool
	geom  Geometry
}

// Update recomputes the geometry when gen differs from the cached one and
// returns it. Calls with an unchanged gen return the cached result.
func (p *Plane) Update(gen uint64, tr mathutil.Transform, width, height float64) Geometry {
	if p.valid && gen == p.gen {
		return p.geom
	}
	p.geom = Compute(tr, width, height, p.MinSize)
	p.gen = gen
	p.valid = true
	return p.geom
}
