package mathutil

// Mat4 is a 4×4 matrix stored row-major. Used for view and projection
// transforms, multiplied against column vectors.
type Mat4 [16]float64

func Mat4Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mat4Mul returns a × b.
func Mat4Mul(a, b Mat4) Mat4 {
	var m Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			m[r*4+c] = a[r*4+0]*b[0*4+c] + a[r*4+1]*b[1*4+c] +
				a[r*4+2]*b[2*4+c] + a[r*4+3]*b[3*4+c]
		}
	}
	return m
}

// MulPoint transforms a 3D point (w=1) by the 4×4 matrix, dropping w.
func (m Mat4) MulPoint(v Vec3) Vec3 {
	return Vec3{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2] + m[3],
		m[4]*v[0] + m[5]*v[1] + m[6]*v[2] + m[7],
		m[8]*v[0] + m[9]*v[1] + m[10]*v[2] + m[11],
	}
}

// MulPointW transforms a 3D point (w=1) and returns the full homogeneous
// result. Callers divide by w to reach NDC.
func (m Mat4) MulPointW(v Vec3) (Vec3, float64) {
	p := m.MulPoint(v)
	w := m[12]*v[0] + m[13]*v[1] + m[14]*v[2] + m[15]
	return p, w
}

// MulDir transforms a direction (w=0), ignoring translation.
func (m Mat4) MulDir(v Vec3) Vec3 {
	return Vec3{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2],
		m[4]*v[0] + m[5]*v[1] + m[6]*v[2],
		m[8]*v[0] + m[9]*v[1] + m[10]*v[2],
	}
}

// FromMat3Translation builds a 4×4 affine matrix from a 3×3 rotation and translation.
func FromMat3Translation(r Mat3, t Vec3) Mat4 {
	return Mat4{
		r[0], r[1], r[2], t[0],
		r[3], r[4], r[5], t[1],
		r[6], r[7], r[8], t[2],
		0, 0, 0, 1,
	}
}

// Mat4FromMat3 embeds a 3×3 rotation with identity translation.
func Mat4FromMat3(r Mat3) Mat4 {
	return FromMat3Translation(r, Vec3{})
}

// Mat4Translate returns the affine translation by t.
func Mat4Translate(t Vec3) Mat4 {
	return FromMat3Translation(Mat3Identity(), t)
}

// Mat4Frustum builds an off-center perspective projection from the four
// signed frustum extents at the near plane. Eye space is +Z-forward (the
// plane-basis convention: the basis matrix maps the plane normal to +Z),
// depth maps to [-1, 1].
func Mat4Frustum(left, right, bottom, top, near, far float64) Mat4 {
	rl := right - left
	tb := top - bottom
	fn := far - near
	return Mat4{
		2 * near / rl, 0, -(right + left) / rl, 0,
		0, 2 * near / tb, -(top + bottom) / tb, 0,
		0, 0, (far + near) / fn, -2 * far * near / fn,
		0, 0, 1, 0,
	}
}
