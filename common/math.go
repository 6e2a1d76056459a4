package common

import (
	"math"
	"unsafe"
)

// QuatIdentity is the identity rotation (x, y, z, w) = (0, 0, 0, 1).
// Normalization routines fall back to this value for degenerate input.
var QuatIdentity = [4]float32{0, 0, 0, 1}

// Identity resets a 4x4 matrix (flat slice) to the identity matrix.
// The matrix is stored in column-major order.
//
// Parameters:
//   - m: destination slice (must be at least 16 elements)
func Identity(m []float32) {
	for i := range m {
		m[i] = 0
	}
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// Mul4 multiplies two 4x4 matrices and stores the result in out.
// All matrices are stored in column-major order (OpenGL/WebGPU convention).
// Result: out = a * b
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - a: left-hand matrix (16 elements)
//   - b: right-hand matrix (16 elements)
func Mul4(out, a, b []float32) {
	var buf [16]float32
	for i := 0; i < 4; i++ { // column of B
		for j := 0; j < 4; j++ { // row of A
			sum := float32(0)
			for k := 0; k < 4; k++ {
				sum += a[k*4+j] * b[i*4+k]
			}
			buf[i*4+j] = sum
		}
	}
	copy(out, buf[:])
}

// Perspective creates a perspective projection matrix.
// Uses clip space depth range [0, 1] per the WebGPU convention.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
func Perspective(out []float32, fovY, aspect, near, far float32) {
	f := 1.0 / float32(math.Tan(float64(fovY)/2.0))
	Identity(out)

	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	out[15] = 0.0
}

// Invert4 computes the inverse of a 4x4 column-major matrix using the Laplace
// expansion (cofactor) method. If the matrix is singular (determinant ≈ 0) the
// output is left unchanged and the function returns false.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - m: source matrix (16 elements, column-major)
//
// Returns:
//   - bool: true if the matrix was successfully inverted, false if singular
func Invert4(out, m []float32) bool {
	// 2x2 sub-determinants of the upper-left and lower-right quadrants.
	s0 := m[0]*m[5] - m[4]*m[1]
	s1 := m[0]*m[6] - m[4]*m[2]
	s2 := m[0]*m[7] - m[4]*m[3]
	s3 := m[1]*m[6] - m[5]*m[2]
	s4 := m[1]*m[7] - m[5]*m[3]
	s5 := m[2]*m[7] - m[6]*m[3]

	c5 := m[10]*m[15] - m[14]*m[11]
	c4 := m[9]*m[15] - m[13]*m[11]
	c3 := m[9]*m[14] - m[13]*m[10]
	c2 := m[8]*m[15] - m[12]*m[11]
	c1 := m[8]*m[14] - m[12]*m[10]
	c0 := m[8]*m[13] - m[12]*m[9]

	det := s0*c5 - s1*c4 + s2*c3 + s3*c2 - s4*c1 + s5*c0
	if det == 0 {
		return false
	}

	invDet := 1.0 / det

	out[0] = (m[5]*c5 - m[6]*c4 + m[7]*c3) * invDet
	out[1] = (-m[1]*c5 + m[2]*c4 - m[3]*c3) * invDet
	out[2] = (m[13]*s5 - m[14]*s4 + m[15]*s3) * invDet
	out[3] = (-m[9]*s5 + m[10]*s4 - m[11]*s3) * invDet

	out[4] = (-m[4]*c5 + m[6]*c2 - m[7]*c1) * invDet
	out[5] = (m[0]*c5 - m[2]*c2 + m[3]*c1) * invDet
	out[6] = (-m[12]*s5 + m[14]*s2 - m[15]*s1) * invDet
	out[7] = (m[8]*s5 - m[10]*s2 + m[11]*s1) * invDet

	out[8] = (m[4]*c4 - m[5]*c2 + m[7]*c0) * invDet
	out[9] = (-m[0]*c4 + m[1]*c2 - m[3]*c0) * invDet
	out[10] = (m[12]*s4 - m[13]*s2 + m[15]*s0) * invDet
	out[11] = (-m[8]*s4 + m[9]*s2 - m[11]*s0) * invDet

	out[12] = (-m[4]*c3 + m[5]*c1 - m[6]*c0) * invDet
	out[13] = (m[0]*c3 - m[1]*c1 + m[2]*c0) * invDet
	out[14] = (-m[12]*s3 + m[13]*s1 - m[14]*s0) * invDet
	out[15] = (m[8]*s3 - m[9]*s1 + m[10]*s0) * invDet

	return true
}

// LookAt creates a view matrix that positions and orients the camera.
// The resulting matrix transforms world coordinates to view/camera space.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - eyeX, eyeY, eyeZ: camera position in world space
//   - centerX, centerY, centerZ: target point the camera looks at
//   - upX, upY, upZ: up vector defining camera orientation (typically 0,1,0)
func LookAt(out []float32, eyeX, eyeY, eyeZ, centerX, centerY, centerZ, upX, upY, upZ float32) {
	z0 := eyeX - centerX
	z1 := eyeY - centerY
	z2 := eyeZ - centerZ
	val := float64(z0*z0 + z1*z1 + z2*z2)
	if val == 0 {
		val = 1
	}
	invLen := 1.0 / float32(math.Sqrt(val))
	z0 *= invLen
	z1 *= invLen
	z2 *= invLen

	x0 := upY*z2 - upZ*z1
	x1 := upZ*z0 - upX*z2
	x2 := upX*z1 - upY*z0
	val = float64(x0*x0 + x1*x1 + x2*x2)
	if val == 0 {
		val = 1
	}
	invLen = 1.0 / float32(math.Sqrt(val))
	x0 *= invLen
	x1 *= invLen
	x2 *= invLen

	y0 := z1*x2 - z2*x1
	y1 := z2*x0 - z0*x2
	y2 := z0*x1 - z1*x0

	out[0], out[4], out[8], out[12] = x0, x1, x2, -(x0*eyeX + x1*eyeY + x2*eyeZ)
	out[1], out[5], out[9], out[13] = y0, y1, y2, -(y0*eyeX + y1*eyeY + y2*eyeZ)
	out[2], out[6], out[10], out[14] = z0, z1, z2, -(z0*eyeX + z1*eyeY + z2*eyeZ)
	out[3], out[7], out[11], out[15] = 0, 0, 0, 1
}

// QuatToMat4 writes the rotation matrix for a unit quaternion into a 4x4
// column-major matrix. The translation part is reset to zero and out[15] to 1.
// The quaternion is laid out (x, y, z, w) and must be normalized by the caller.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - q: source quaternion (4 elements, x y z w)
func QuatToMat4(out, q []float32) {
	x, y, z, w := q[0], q[1], q[2], q[3]

	x2 := x + x
	y2 := y + y
	z2 := z + z
	xx := x * x2
	xy := x * y2
	xz := x * z2
	yy := y * y2
	yz := y * z2
	zz := z * z2
	wx := w * x2
	wy := w * y2
	wz := w * z2

	out[0] = 1 - (yy + zz)
	out[1] = xy + wz
	out[2] = xz - wy
	out[3] = 0

	out[4] = xy - wz
	out[5] = 1 - (xx + zz)
	out[6] = yz + wx
	out[7] = 0

	out[8] = xz + wy
	out[9] = yz - wx
	out[10] = 1 - (xx + yy)
	out[11] = 0

	out[12] = 0
	out[13] = 0
	out[14] = 0
	out[15] = 1
}

// FrameToQuat converts an orthonormal camera frame to a quaternion (x, y, z, w).
// The frame vectors are the rows of the view rotation matrix: right, up, and
// the axis pointing from the look-at target toward the eye. Uses the standard
// rotation-matrix-to-quaternion conversion with trace branching for stability.
// The result is not normalized; callers should run it through NormalizeQuat.
//
// Parameters:
//   - out: destination slice (must be at least 4 elements)
//   - rx, ry, rz: right vector
//   - ux, uy, uz: up vector
//   - fx, fy, fz: view axis (eye minus target, normalized)
func FrameToQuat(out []float32, rx, ry, rz, ux, uy, uz, fx, fy, fz float32) {
	trace := rx + uy + fz
	switch {
	case trace > 0:
		s := float32(math.Sqrt(float64(trace+1))) * 2
		out[0] = (fy - uz) / s
		out[1] = (rz - fx) / s
		out[2] = (ux - ry) / s
		out[3] = s / 4
	case rx > uy && rx > fz:
		s := float32(math.Sqrt(float64(1+rx-uy-fz))) * 2
		out[0] = s / 4
		out[1] = (ry + ux) / s
		out[2] = (rz + fx) / s
		out[3] = (fy - uz) / s
	case uy > fz:
		s := float32(math.Sqrt(float64(1+uy-rx-fz))) * 2
		out[0] = (ry + ux) / s
		out[1] = s / 4
		out[2] = (uz + fy) / s
		out[3] = (rz - fx) / s
	default:
		s := float32(math.Sqrt(float64(1+fz-rx-uy))) * 2
		out[0] = (rz + fx) / s
		out[1] = (uz + fy) / s
		out[2] = s / 4
		out[3] = (ux - ry) / s
	}
}

// QuatMul composes two quaternions using the Hamilton product and stores the
// result in out. All quaternions are laid out (x, y, z, w). out may alias a.
// Result: out = a * b, i.e. rotation b applied in a's local frame.
//
// Parameters:
//   - out: destination slice (must be at least 4 elements)
//   - a: left-hand quaternion (4 elements)
//   - b: right-hand quaternion (4 elements)
func QuatMul(out, a, b []float32) {
	ax, ay, az, aw := a[0], a[1], a[2], a[3]
	bx, by, bz, bw := b[0], b[1], b[2], b[3]

	out[0] = aw*bx + ax*bw + ay*bz - az*by
	out[1] = aw*by + ay*bw + az*bx - ax*bz
	out[2] = aw*bz + az*bw + ax*by - ay*bx
	out[3] = aw*bw - ax*bx - ay*by - az*bz
}

// NormalizeQuat normalizes a quaternion in place using the 4-component
// Euclidean norm. If the magnitude is below 1e-6 the quaternion is replaced
// with the identity rotation instead of dividing by a near-zero value.
//
// Parameters:
//   - q: quaternion to normalize in place (4 elements, x y z w)
func NormalizeQuat(q []float32) {
	mag := float32(math.Sqrt(float64(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3])))
	if mag < 1e-6 {
		q[0], q[1], q[2], q[3] = QuatIdentity[0], QuatIdentity[1], QuatIdentity[2], QuatIdentity[3]
		return
	}
	inv := 1.0 / mag
	q[0] *= inv
	q[1] *= inv
	q[2] *= inv
	q[3] *= inv
}

// Cross3 computes the cross product of two 3-vectors.
//
// Parameters:
//   - ax, ay, az: left-hand vector
//   - bx, by, bz: right-hand vector
//
// Returns:
//   - x, y, z: components of a x b
func Cross3(ax, ay, az, bx, by, bz float32) (x, y, z float32) {
	return ay*bz - az*by, az*bx - ax*bz, ax*by - ay*bx
}

// Dot3 computes the dot product of two 3-vectors.
//
// Parameters:
//   - ax, ay, az: left-hand vector
//   - bx, by, bz: right-hand vector
//
// Returns:
//   - float32: the dot product
func Dot3(ax, ay, az, bx, by, bz float32) float32 {
	return ax*bx + ay*by + az*bz
}

// Len3 computes the Euclidean length of a 3-vector.
//
// Parameters:
//   - x, y, z: vector components
//
// Returns:
//   - float32: the vector length
func Len3(x, y, z float32) float32 {
	return float32(math.Sqrt(float64(x*x + y*y + z*z)))
}

// Normalize3 scales a 3-vector to unit length. Vectors with magnitude below
// 1e-6 are returned unchanged to avoid division by a near-zero value.
//
// Parameters:
//   - x, y, z: vector components
//
// Returns:
//   - nx, ny, nz: the normalized vector (or the input if degenerate)
func Normalize3(x, y, z float32) (nx, ny, nz float32) {
	mag := Len3(x, y, z)
	if mag < 1e-6 {
		return x, y, z
	}
	inv := 1.0 / mag
	return x * inv, y * inv, z * inv
}
