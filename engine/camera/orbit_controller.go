package camera

import "errors"

// ErrSetMatrixUnsupported is returned by SetMatrix. Writing a view matrix
// directly into the controller is a reserved extension point; the call never
// alters controller state.
var ErrSetMatrixUnsupported = errors.New("camera: direct view matrix writes are not supported")

// OrbitCameraController defines the interface for the time-filtered orbit
// camera. The controller keeps its pose in three independent filter tracks
// (orbit center, log-space orbit radius, and orientation quaternion) and
// derives a column-major view matrix plus eye/up vectors from the sampled
// pose. Gesture methods write new waypoints into the tracks and resample, so
// the cached matrix reflects each gesture immediately.
//
// Timestamps passed to the methods are expected to be non-decreasing across
// calls; the host render loop drives Tick once per frame and reads Matrix
// afterwards.
type OrbitCameraController interface {
	// Tick advances the controller to time t and resamples the pose.
	// This is the per-frame heartbeat: tracks that are still easing toward
	// a waypoint keep animating across Ticks with no gesture input.
	//
	// Parameters:
	//   - t: current frame time
	Tick(t float32)

	// Dirty reports whether the pose changed since the last Matrix call.
	//
	// Returns:
	//   - bool: true after construction and after any Tick/gesture, false after Matrix
	Dirty() bool

	// Matrix returns the cached view matrix (column-major) and clears the
	// dirty flag. It does not resample; the matrix reflects the state as of
	// the last recompute.
	//
	// Returns:
	//   - [16]float32: the view matrix
	Matrix() [16]float32

	// Pan translates the orbit center within the current view plane. The
	// screen-space drag (dx, dy) maps to a world-space move along the
	// negative right and up basis vectors of the camera.
	//
	// Parameters:
	//   - t: gesture time
	//   - dx: horizontal drag amount
	//   - dy: vertical drag amount
	Pan(t, dx, dy float32)

	// Zoom requests a relative multiplicative change of the orbit radius by
	// factor dr. Non-positive factors are ignored; the radius channel keeps
	// the radius strictly positive by storing it in log space.
	//
	// Parameters:
	//   - t: gesture time
	//   - dr: radius multiplier (must be > 0 to take effect)
	Zoom(t, dr float32)

	// Rotate applies an arcball-style incremental rotation from a screen
	// drag. The drag maps to a small-angle quaternion built around the
	// cross product of the view axis with the drag direction, composed onto
	// the current orientation.
	//
	// Parameters:
	//   - t: gesture time
	//   - dx: horizontal drag amount
	//   - dy: vertical drag amount
	Rotate(t, dx, dy float32)

	// LookAt repositions the camera absolutely from an (eye, center, up)
	// triple. Any nil argument defaults to the controller's current derived
	// value. An up vector parallel to the view axis falls back to an
	// arbitrary orthogonal axis instead of producing a degenerate frame.
	//
	// Parameters:
	//   - t: gesture time
	//   - eye: camera position (3 components, nil for current)
	//   - center: look-at target (3 components, nil for current)
	//   - up: up direction (3 components, nil for current)
	LookAt(t float32, eye, center, up []float32)

	// SetMatrix is a reserved extension point. It performs no state change
	// and always returns ErrSetMatrixUnsupported.
	//
	// Parameters:
	//   - t: gesture time
	//   - m: proposed view matrix (16 elements)
	//
	// Returns:
	//   - error: always ErrSetMatrixUnsupported
	SetMatrix(t float32, m []float32) error

	// Idle marks all three tracks as settled up to time t.
	//
	// Parameters:
	//   - t: settle time
	Idle(t float32)

	// Flush discards track history strictly before time t on all three
	// tracks, bounding memory growth. Derived state is unaffected.
	//
	// Parameters:
	//   - t: history cutoff time
	Flush(t float32)

	// Eye returns the derived camera position in world space.
	//
	// Returns:
	//   - x, y, z: world-space eye position
	Eye() (x, y, z float32)

	// Up returns the derived camera up vector.
	//
	// Returns:
	//   - x, y, z: up vector components
	Up() (x, y, z float32)

	// Center returns the sampled orbit center.
	//
	// Returns:
	//   - x, y, z: world-space orbit center
	Center() (x, y, z float32)

	// Radius returns the effective orbit radius (always strictly positive).
	//
	// Returns:
	//   - float32: exp of the sampled log-radius
	Radius() float32

	// Rotation returns the sampled orientation as a unit quaternion.
	//
	// Returns:
	//   - [4]float32: the quaternion (x, y, z, w)
	Rotation() [4]float32

	// LastT returns the last time the controller advanced to.
	//
	// Returns:
	//   - float32: the last-seen time
	LastT() float32
}
