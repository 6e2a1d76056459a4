package camera

import (
	"log/slog"
	"math"
	"sync"

	"github.com/vantage3d/vantage/common"
	"github.com/vantage3d/vantage/engine/filter"
)

// minLookAtDistance floors the eye-to-center distance in LookAt so the
// log-space radius track never receives -Inf.
const minLookAtDistance = 1e-6

// orbitCameraControllerImpl is the single implementation of
// OrbitCameraController. The pose lives in three independently filtered
// tracks; everything else is derived by recompute and cached until the next
// resample. The derived view matrix follows the OpenGL column-major
// convention: the rotation rows are the camera's right/up/view basis and
// m[12..14] is the eye-space translation.
type orbitCameraControllerImpl struct {
	mu *sync.Mutex

	center   filter.Vector // orbit center, dim 3
	radius   filter.Vector // log of orbit distance, dim 1
	rotation filter.Vector // orientation quaternion, dim 4

	computedRotation [4]float32
	computedCenter   [3]float32
	computedRadius   [1]float32
	computedEye      [3]float32
	computedUp       [3]float32
	computedMatrix   [16]float32

	lastT float32
	dirty bool

	// logger receives gesture diagnostics when set (nil disables them).
	logger *slog.Logger

	// Initial pose staging, consumed once by the builder.
	initCenter   [3]float32
	initRotation [4]float32
	initRadius   float32
	initUp       [3]float32
	initEye      []float32
}

var _ OrbitCameraController = &orbitCameraControllerImpl{}

func (c *orbitCameraControllerImpl) Tick(t float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.advance(t)
	c.dirty = true
	c.recompute(c.lastT)
}

func (c *orbitCameraControllerImpl) Dirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dirty
}

func (c *orbitCameraControllerImpl) Matrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dirty = false
	return c.computedMatrix
}

func (c *orbitCameraControllerImpl) Pan(t, dx, dy float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.recompute(t)
	m := &c.computedMatrix

	// Screen-space drag maps to a world-space move against the camera's
	// right and up basis rows, keeping the view direction unchanged.
	c.center.Push(t,
		c.computedCenter[0]-dx*m[0]-dy*m[1],
		c.computedCenter[1]-dx*m[4]-dy*m[5],
		c.computedCenter[2]-dx*m[8]-dy*m[9],
	)

	c.advance(t)
	c.dirty = true
	c.recompute(c.lastT)
}

func (c *orbitCameraControllerImpl) Zoom(t, dr float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Degenerate scroll events (zero or negative multiplier) are dropped,
	// not treated as errors.
	if !(dr > 0) {
		return
	}

	c.radius.Move(t, float32(math.Log(float64(dr))))

	c.advance(t)
	c.dirty = true
	c.recompute(c.lastT)
}

func (c *orbitCameraControllerImpl) Rotate(t, dx, dy float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.recompute(t)
	m := &c.computedMatrix

	// World-space drag direction from the screen delta.
	qx := dx*m[0] + dy*m[1]
	qy := dx*m[4] + dy*m[5]
	qz := dx*m[8] + dy*m[9]

	// Small-angle quaternion around the axis perpendicular to the view
	// direction and the drag; the real part assumes |b| stays within the
	// unit range.
	bx, by, bz := common.Cross3(m[2], m[6], m[10], qx, qy, qz)
	bw := float32(math.Sqrt(math.Max(0, float64(1-(bx*bx+by*by+bz*bz)))))
	inc := [4]float32{bx, by, bz, bw}
	common.NormalizeQuat(inc[:])

	next := c.computedRotation
	common.QuatMul(next[:], next[:], inc[:])
	common.NormalizeQuat(next[:])
	c.rotation.Push(t, next[0], next[1], next[2], next[3])

	c.advance(t)
	c.dirty = true
	c.recompute(c.lastT)
}

func (c *orbitCameraControllerImpl) LookAt(t float32, eye, center, up []float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.recompute(t)
	if eye == nil {
		eye = c.computedEye[:]
	}
	if center == nil {
		center = c.computedCenter[:]
	}
	if up == nil {
		up = c.computedUp[:]
	}

	q, logRadius := deriveLookAtPose(eye, center, up)

	// Absolute repositioning: Set discards queued transitions on all three
	// tracks so the pose lands exactly on the requested frame.
	c.rotation.Set(t, q[0], q[1], q[2], q[3])
	c.radius.Set(t, logRadius)
	c.center.Set(t, center[0], center[1], center[2])

	if c.logger != nil {
		c.logger.Debug("look-at applied",
			"t", t,
			"center", [3]float32{center[0], center[1], center[2]},
			"radius", float32(math.Exp(float64(logRadius))),
		)
	}

	c.advance(t)
	c.dirty = true
	c.recompute(c.lastT)
}

func (c *orbitCameraControllerImpl) SetMatrix(t float32, m []float32) error {
	return ErrSetMatrixUnsupported
}

func (c *orbitCameraControllerImpl) Idle(t float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.center.Idle(t)
	c.radius.Idle(t)
	c.rotation.Idle(t)
}

func (c *orbitCameraControllerImpl) Flush(t float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.center.Flush(t)
	c.radius.Flush(t)
	c.rotation.Flush(t)
}

func (c *orbitCameraControllerImpl) Eye() (x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.computedEye[0], c.computedEye[1], c.computedEye[2]
}

func (c *orbitCameraControllerImpl) Up() (x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.computedUp[0], c.computedUp[1], c.computedUp[2]
}

func (c *orbitCameraControllerImpl) Center() (x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.computedCenter[0], c.computedCenter[1], c.computedCenter[2]
}

func (c *orbitCameraControllerImpl) Radius() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return float32(math.Exp(float64(c.computedRadius[0])))
}

func (c *orbitCameraControllerImpl) Rotation() [4]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.computedRotation
}

func (c *orbitCameraControllerImpl) LastT() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastT
}

// --- internal helpers ---

// advance records t as the last-seen time. Out-of-order timestamps are
// clamped rather than rewinding the controller. Caller must hold the mutex.
func (c *orbitCameraControllerImpl) advance(t float32) {
	if t > c.lastT {
		c.lastT = t
	}
}

// recompute samples all three tracks at time t and rebuilds the derived
// state: normalized quaternion, rotation matrix, eye and up vectors, and the
// translation part of the view matrix. Caller must hold the mutex.
func (c *orbitCameraControllerImpl) recompute(t float32) {
	c.rotation.Curve(t, c.computedRotation[:])
	c.center.Curve(t, c.computedCenter[:])
	c.radius.Curve(t, c.computedRadius[:])

	common.NormalizeQuat(c.computedRotation[:])
	common.QuatToMat4(c.computedMatrix[:], c.computedRotation[:])

	m := &c.computedMatrix
	radius := float32(math.Exp(float64(c.computedRadius[0])))

	// Row 2 of the rotation is the axis from the center toward the eye.
	c.computedEye[0] = c.computedCenter[0] + radius*m[2]
	c.computedEye[1] = c.computedCenter[1] + radius*m[6]
	c.computedEye[2] = c.computedCenter[2] + radius*m[10]

	c.computedUp[0] = m[1]
	c.computedUp[1] = m[5]
	c.computedUp[2] = m[9]

	// Translation: the eye position expressed in camera space, negated.
	for i := 0; i < 3; i++ {
		rr := float32(0)
		for j := 0; j < 3; j++ {
			rr += m[i+4*j] * c.computedEye[j]
		}
		m[12+i] = -rr
	}
}

// deriveLookAtPose converts an (eye, center, up) triple into an orientation
// quaternion and a log-space radius. The standard look-at construction
// provides the orthonormal frame; an up vector parallel to the view axis is
// replaced with a world axis before the frame is built, and the eye-to-center
// distance is floored at minLookAtDistance.
func deriveLookAtPose(eye, center, up []float32) (q [4]float32, logRadius float32) {
	fx := eye[0] - center[0]
	fy := eye[1] - center[1]
	fz := eye[2] - center[2]
	dist := common.Len3(fx, fy, fz)
	if dist < minLookAtDistance {
		dist = minLookAtDistance
	}
	logRadius = float32(math.Log(float64(dist)))

	nfx, nfy, nfz := common.Normalize3(fx, fy, fz)

	// Guard the caller-contract violation of an up vector parallel to the
	// view axis: swap in the world axis least aligned with it.
	ux, uy, uz := up[0], up[1], up[2]
	proj := common.Dot3(ux, uy, uz, nfx, nfy, nfz)
	px := ux - proj*nfx
	py := uy - proj*nfy
	pz := uz - proj*nfz
	if common.Len3(px, py, pz) < 1e-6 {
		if nfy > -0.9 && nfy < 0.9 {
			ux, uy, uz = 0, 1, 0
		} else {
			ux, uy, uz = 1, 0, 0
		}
	}

	var view [16]float32
	common.LookAt(view[:], eye[0], eye[1], eye[2], center[0], center[1], center[2], ux, uy, uz)
	common.FrameToQuat(q[:],
		view[0], view[4], view[8],
		view[1], view[5], view[9],
		view[2], view[6], view[10],
	)
	common.NormalizeQuat(q[:])
	return q, logRadius
}
