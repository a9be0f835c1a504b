// Package projector computes the asymmetric view/projection pair that makes
// a camera's image exactly fill a planar target (Kooima-style generalized
// perspective projection).
package projector

import (
	"offaxis-renderer/internal/mathutil"
	"offaxis-renderer/internal/surface"
)

// minDistance is the floor applied to the camera-to-plane distance before it
// is used as a divisor. A camera exactly on the plane would otherwise blow up
// the frustum extents.
const minDistance = 1e-6

// Input is one camera pose plus clip configuration, supplied per update.
type Input struct {
	CameraPosition mathutil.Vec3
	CameraRotation mathutil.Quat
	Near           float64
	Far            float64

	// NearFromDistance replaces Near with the derived plane distance, so the
	// near plane coincides with the target surface.
	NearFromDistance bool
}

// Extents are the four signed frustum bounds measured at the near plane.
type Extents struct {
	Left, Right, Bottom, Top float64
}

// Result is the immutable outcome of one update. On a rejected update
// (camera behind the plane) View, Projection, Near and Extents repeat the
// last accepted values, Position reverts to the last accepted camera
// position, and Accepted is false.
type Result struct {
	View       mathutil.Mat4
	Projection mathutil.Mat4
	Position   mathutil.Vec3
	Distance   float64
	Near       float64
	Extents    Extents
	Accepted   bool
}

// Sink receives every accepted update for debug drawing. Implementations
// must treat the values as read-only; nothing flows back into the projector.
type Sink interface {
	Record(geom surface.Geometry, res Result)
}

// Projector holds the only persistent state of the computation: the last
// accepted camera position and the result it produced, used to answer
// rejected updates. The zero value is ready to use.
type Projector struct {
	Sink Sink

	lastPos mathutil.Vec3
	last    Result
}

// Update derives the view and projection matrices for one camera pose
// against the given plane geometry.
//
// The signed distance is the camera's displacement along the plane normal,
// negated: positive on the intended viewing side. A negative distance means
// the camera crossed behind the plane; the update is rejected as a policy,
// not an error, and the previous accepted state is returned unchanged.
func (p *Projector) Update(geom surface.Geometry, in Input) Result {
	d := -in.CameraPosition.Sub(geom.Center).Dot(geom.Normal)
	if d < 0 {
		res := p.last
		res.Position = p.lastPos
		res.Distance = d
		res.Accepted = false
		return res
	}
	if d < minDistance {
		d = minDistance
	}
	p.lastPos = in.CameraPosition

	near := in.Near
	if in.NearFromDistance {
		near = d
	}

	// Frustum extents at the near plane by similar triangles: the rectangle's
	// reach along right/up, seen from the camera, scaled from the plane
	// distance down to the near distance.
	eye := in.CameraPosition
	vBL := geom.Corners.BL.Sub(eye)
	vBR := geom.Corners.BR.Sub(eye)
	vTL := geom.Corners.TL.Sub(eye)
	nd := near / d
	ext := Extents{
		Left:   geom.Right.Dot(vBL) * nd,
		Right:  geom.Right.Dot(vBR) * nd,
		Bottom: geom.Up.Dot(vBL) * nd,
		Top:    geom.Up.Dot(vTL) * nd,
	}

	// The relative rotation cancels the camera's own orientation against the
	// plane's: the produced image always looks perpendicularly into the
	// plane, and only the camera position shapes the frustum.
	rel := mathutil.QuatMul(in.CameraRotation.Inverse(), geom.Orientation)
	view := mathutil.Mat4Mul(
		mathutil.Mat4Mul(geom.Basis, mathutil.Mat4FromMat3(mathutil.QuatToMat3(rel))),
		mathutil.Mat4Translate(eye.Neg()),
	)

	res := Result{
		View:       view,
		Projection: mathutil.Mat4Frustum(ext.Left, ext.Right, ext.Bottom, ext.Top, near, in.Far),
		Position:   eye,
		Distance:   d,
		Near:       near,
		Extents:    ext,
		Accepted:   true,
	}
	p.last = res

	if p.Sink != nil {
		p.Sink.Record(geom, res)
	}
	return res
}

// LastValidPosition returns the camera position of the most recent accepted
// update (zero before any update is accepted).
func (p *Projector) LastValidPosition() mathutil.Vec3 {
	return p.lastPos
}
