package mathutil

// Transform is a world-space pose: translate(Position) ∘ rotate(Rotation) ∘
// scale(Scale), applied right to left. Owned by the host; read-only here.
type Transform struct {
	Position Vec3
	Rotation Quat
	Scale    Vec3
}

func TransformIdentity() Transform {
	return Transform{
		Rotation: QuatIdentity(),
		Scale:    Vec3{1, 1, 1},
	}
}

// Apply maps a local-space point to world space.
func (t Transform) Apply(p Vec3) Vec3 {
	scaled := Vec3{p[0] * t.Scale[0], p[1] * t.Scale[1], p[2] * t.Scale[2]}
	return QuatToMat3(t.Rotation).MulVec3(scaled).Add(t.Position)
}

// Mat4 returns the full affine matrix of the transform.
func (t Transform) Mat4() Mat4 {
	r := QuatToMat3(t.Rotation)
	return Mat4{
		r[0] * t.Scale[0], r[1] * t.Scale[1], r[2] * t.Scale[2], t.Position[0],
		r[3] * t.Scale[0], r[4] * t.Scale[1], r[5] * t.Scale[2], t.Position[1],
		r[6] * t.Scale[0], r[7] * t.Scale[1], r[8] * t.Scale[2], t.Position[2],
		0, 0, 0, 1,
	}
}
