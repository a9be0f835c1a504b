package projector

import (
	"math"
	"testing"

	"offaxis-renderer/internal/mathutil"
	"offaxis-renderer/internal/surface"
)

const eps = 1e-9

func vecNear(a, b mathutil.Vec3) bool {
	return math.Abs(a[0]-b[0]) < eps && math.Abs(a[1]-b[1]) < eps && math.Abs(a[2]-b[2]) < eps
}

func mat4Near(a, b mathutil.Mat4) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

func centeredRig() (surface.Geometry, Input) {
	geom := surface.Compute(mathutil.TransformIdentity(), 2, 1, 0)
	return geom, Input{
		CameraPosition: mathutil.Vec3{0, 0, 5},
		CameraRotation: geom.Orientation,
		Near:           0.1,
		Far:            100,
	}
}

func TestCenteredCameraSymmetricFrustum(t *testing.T) {
	geom, in := centeredRig()
	var p Projector
	res := p.Update(geom, in)

	if !res.Accepted {
		t.Fatal("centered camera rejected")
	}
	if math.Abs(res.Distance-5) > eps {
		t.Errorf("distance = %v, want 5", res.Distance)
	}
	for _, tt := range []struct {
		name string
		got  float64
		want float64
	}{
		{"left", res.Extents.Left, -0.02},
		{"right", res.Extents.Right, 0.02},
		{"bottom", res.Extents.Bottom, -0.01},
		{"top", res.Extents.Top, 0.01},
	} {
		if math.Abs(tt.got-tt.want) > eps {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}

	// Camera oriented like the plane: view collapses to basis × translation.
	wantView := mathutil.Mat4Mul(geom.Basis, mathutil.Mat4Translate(in.CameraPosition.Neg()))
	if !mat4Near(res.View, wantView) {
		t.Errorf("view = %v, want %v", res.View, wantView)
	}
	// The view looks straight into the plane: its normal maps to the
	// forward (+Z) eye axis.
	if got := res.View.MulDir(geom.Normal); !vecNear(got, mathutil.Vec3{0, 0, 1}) {
		t.Errorf("view direction = %v, want (0,0,1)", got)
	}

	// Symmetric frustum: no center shift, expected focal terms.
	proj := res.Projection
	if math.Abs(proj[0]-5) > eps || math.Abs(proj[5]-10) > eps {
		t.Errorf("projection focal terms = %v, %v, want 5, 10", proj[0], proj[5])
	}
	if math.Abs(proj[2]) > eps || math.Abs(proj[6]) > eps {
		t.Errorf("projection center shift = %v, %v, want 0, 0", proj[2], proj[6])
	}
}

func TestPlaneCornersHitClipEdges(t *testing.T) {
	geom, in := centeredRig()
	var p Projector
	res := p.Update(geom, in)

	vp := mathutil.Mat4Mul(res.Projection, res.View)
	for _, tt := range []struct {
		name   string
		corner mathutil.Vec3
		x, y   float64
	}{
		{"TL", geom.Corners.TL, -1, 1},
		{"TR", geom.Corners.TR, 1, 1},
		{"BL", geom.Corners.BL, -1, -1},
		{"BR", geom.Corners.BR, 1, -1},
	} {
		clip, w := vp.MulPointW(tt.corner)
		if w < eps {
			t.Fatalf("%s: w = %v, want positive", tt.name, w)
		}
		if x := clip[0] / w; math.Abs(x-tt.x) > eps {
			t.Errorf("%s: ndc x = %v, want %v", tt.name, x, tt.x)
		}
		if y := clip[1] / w; math.Abs(y-tt.y) > eps {
			t.Errorf("%s: ndc y = %v, want %v", tt.name, y, tt.y)
		}
	}
}

func TestOffCenterAsymmetry(t *testing.T) {
	geom, in := centeredRig()
	var p Projector
	centered := p.Update(geom, in)

	in.CameraPosition = mathutil.Vec3{0.5, 0, 5}
	shifted := p.Update(geom, in)

	if math.Abs(shifted.Extents.Left - -0.03) > eps {
		t.Errorf("left = %v, want -0.03", shifted.Extents.Left)
	}
	if math.Abs(shifted.Extents.Right-0.01) > eps {
		t.Errorf("right = %v, want 0.01", shifted.Extents.Right)
	}

	// Horizontal shift leaves the vertical extents alone, and the frustum
	// width is preserved (pure shear, not zoom).
	if shifted.Extents.Bottom != centered.Extents.Bottom || shifted.Extents.Top != centered.Extents.Top {
		t.Errorf("vertical extents changed: %+v vs %+v", shifted.Extents, centered.Extents)
	}
	w0 := centered.Extents.Right - centered.Extents.Left
	w1 := shifted.Extents.Right - shifted.Extents.Left
	if math.Abs(w0-w1) > eps {
		t.Errorf("frustum width changed: %v vs %v", w0, w1)
	}
}

func TestValidityGuardRevertsPosition(t *testing.T) {
	geom, in := centeredRig()
	var p Projector
	accepted := p.Update(geom, in)

	in.CameraPosition = mathutil.Vec3{0, 0, -5} // behind the plane
	rejected := p.Update(geom, in)

	if rejected.Accepted {
		t.Fatal("camera behind plane was accepted")
	}
	if rejected.Position != accepted.Position {
		t.Errorf("position = %v, want reverted %v", rejected.Position, accepted.Position)
	}
	if rejected.View != accepted.View || rejected.Projection != accepted.Projection {
		t.Error("rejected update altered matrices")
	}
	if rejected.Near != accepted.Near {
		t.Errorf("rejected update altered near: %v vs %v", rejected.Near, accepted.Near)
	}
	if math.Abs(rejected.Distance - -5) > eps {
		t.Errorf("reported distance = %v, want -5", rejected.Distance)
	}
	if p.LastValidPosition() != accepted.Position {
		t.Errorf("last valid position = %v, want %v", p.LastValidPosition(), accepted.Position)
	}

	// A later valid pose recovers normally.
	in.CameraPosition = mathutil.Vec3{1, 1, 3}
	if res := p.Update(geom, in); !res.Accepted || res.Position != in.CameraPosition {
		t.Errorf("recovery update = %+v", res)
	}
}

func TestDeterministicUpdates(t *testing.T) {
	geom, in := centeredRig()
	var p Projector
	r1 := p.Update(geom, in)
	r2 := p.Update(geom, in)
	if r1 != r2 {
		t.Error("identical inputs produced different results")
	}
}

func TestOrientationCancellation(t *testing.T) {
	tr := mathutil.Transform{
		Position: mathutil.Vec3{1, -2, 4},
		Rotation: mathutil.EulerToQuat(0.2, 0.9, -0.4),
		Scale:    mathutil.Vec3{1, 1, 1},
	}
	geom := surface.Compute(tr, 2, 1, 0)
	eye := tr.Position.Sub(geom.Normal.Scale(3)).Add(geom.Right.Scale(0.7))

	orientations := []mathutil.Quat{
		mathutil.QuatIdentity(),
		geom.Orientation,
		mathutil.EulerToQuat(0.3, 0.2, 0.1),
		mathutil.EulerToQuat(-1, 0.5, 2),
	}

	var first Result
	for i, camOri := range orientations {
		var p Projector
		res := p.Update(geom, Input{
			CameraPosition: eye,
			CameraRotation: camOri,
			Near:           0.1,
			Far:            100,
		})
		if !res.Accepted {
			t.Fatalf("orientation %d rejected, distance %v", i, res.Distance)
		}

		// The camera's own rotation is cancelled against the plane's:
		// undoing the relative rotation always recovers the pure basis.
		undo := mathutil.Mat4FromMat3(mathutil.QuatToMat3(
			mathutil.QuatMul(geom.Orientation.Inverse(), camOri)))
		got := mathutil.Mat4Mul(mathutil.Mat4Mul(res.View, mathutil.Mat4Translate(eye)), undo)
		if !mat4Near(got, geom.Basis) {
			t.Errorf("orientation %d: view does not reduce to plane basis", i)
		}

		// Frustum shape depends on position only.
		if i == 0 {
			first = res
		} else if res.Extents != first.Extents || res.Projection != first.Projection {
			t.Errorf("orientation %d changed the frustum", i)
		}
	}
}

func TestNearFromDistance(t *testing.T) {
	geom, in := centeredRig()
	in.NearFromDistance = true
	var p Projector
	res := p.Update(geom, in)

	if math.Abs(res.Near-5) > eps {
		t.Errorf("near = %v, want plane distance 5", res.Near)
	}
	// With near on the plane, the extents are the half-rectangle itself.
	want := Extents{Left: -1, Right: 1, Bottom: -0.5, Top: 0.5}
	for _, tt := range []struct {
		name      string
		got, want float64
	}{
		{"left", res.Extents.Left, want.Left},
		{"right", res.Extents.Right, want.Right},
		{"bottom", res.Extents.Bottom, want.Bottom},
		{"top", res.Extents.Top, want.Top},
	} {
		if math.Abs(tt.got-tt.want) > eps {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestDistanceClampedNearPlane(t *testing.T) {
	geom, in := centeredRig()
	in.CameraPosition = mathutil.Vec3{0, 0, 0} // exactly on the plane
	var p Projector
	res := p.Update(geom, in)

	if !res.Accepted {
		t.Fatal("on-plane camera rejected; expected clamp")
	}
	if res.Distance != minDistance {
		t.Errorf("distance = %v, want clamp %v", res.Distance, minDistance)
	}
	for i, v := range res.Projection {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("projection[%d] = %v", i, v)
		}
	}
}

type recordingSink struct {
	calls int
	last  Result
}

func (s *recordingSink) Record(_ surface.Geometry, res Result) {
	s.calls++
	s.last = res
}

func TestSinkSeesAcceptedUpdatesOnly(t *testing.T) {
	geom, in := centeredRig()
	sink := &recordingSink{}
	p := Projector{Sink: sink}

	res := p.Update(geom, in)
	if sink.calls != 1 || sink.last != res {
		t.Errorf("sink calls = %d, last == result %v", sink.calls, sink.last == res)
	}

	in.CameraPosition = mathutil.Vec3{0, 0, -5}
	p.Update(geom, in)
	if sink.calls != 1 {
		t.Errorf("rejected update reached the sink (calls = %d)", sink.calls)
	}
}
