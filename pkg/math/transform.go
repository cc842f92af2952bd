package math

// MakeTransform builds the matrix that scales, then rotates, then translates.
// This is the local-to-parent transform of a scene node.
func MakeTransform(position, scale Vec3, orientation Quat) Mat4 {
	return Translate(position.X, position.Y, position.Z).
		Mul(orientation.ToMat4()).
		Mul(Scale(scale.X, scale.Y, scale.Z))
}

// MakeInverseTransform builds the exact inverse of MakeTransform without a
// general 4x4 inversion. Zero scale components map to zero.
func MakeInverseTransform(position, scale Vec3, orientation Quat) Mat4 {
	inv := func(s float32) float32 {
		if s == 0 {
			return 0
		}
		return 1 / s
	}
	return Scale(inv(scale.X), inv(scale.Y), inv(scale.Z)).
		Mul(orientation.Normalize().Conjugate().ToMat4()).
		Mul(Translate(-position.X, -position.Y, -position.Z))
}
