package camera

import (
	"log/slog"
	"math"
	"sync"

	"github.com/vantage3d/vantage/common"
	"github.com/vantage3d/vantage/engine/filter"
)

// OrbitCameraControllerOption is a functional option for configuring an
// OrbitCameraController.
type OrbitCameraControllerOption func(*orbitCameraControllerImpl)

// NewOrbitCameraController creates a new time-filtered orbit camera
// controller. Each pose track starts with one waypoint at time 0; the
// controller is dirty until the first Matrix call.
//
// Defaults: center (0, 0, 0), identity rotation, radius 50.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - OrbitCameraController: the newly created controller
func NewOrbitCameraController(options ...OrbitCameraControllerOption) OrbitCameraController {
	c := &orbitCameraControllerImpl{
		mu:           &sync.Mutex{},
		dirty:        true,
		initRotation: common.QuatIdentity,
		initRadius:   50.0,
		initUp:       [3]float32{0, 1, 0},
	}
	for _, option := range options {
		option(c)
	}

	if c.initRadius <= 0 {
		c.initRadius = 50.0
	}
	common.NormalizeQuat(c.initRotation[:])

	rotation := c.initRotation
	logRadius := float32(math.Log(float64(c.initRadius)))
	if c.initEye != nil {
		// An explicit eye position overrides rotation and radius: the
		// initial pose is derived from (eye, center, up) the same way a
		// LookAt gesture would derive it.
		rotation, logRadius = deriveLookAtPose(c.initEye, c.initCenter[:], c.initUp[:])
	}

	c.center = filter.NewVector(3, filter.WithInitial(c.initCenter[:]...))
	c.radius = filter.NewVector(1, filter.WithInitial(logRadius))
	c.rotation = filter.NewVector(4, filter.WithInitial(rotation[:]...))
	c.initEye = nil

	c.recompute(0)
	return c
}

// WithCenter sets the initial orbit center.
//
// Parameters:
//   - x, y, z: world-space center coordinates
//
// Returns:
//   - OrbitCameraControllerOption: functional option to set the center
func WithCenter(x, y, z float32) OrbitCameraControllerOption {
	return func(c *orbitCameraControllerImpl) {
		c.initCenter = [3]float32{x, y, z}
	}
}

// WithRotation sets the initial orientation quaternion. The value is
// renormalized before use; near-zero input falls back to the identity
// rotation.
//
// Parameters:
//   - x, y, z, w: quaternion components
//
// Returns:
//   - OrbitCameraControllerOption: functional option to set the rotation
func WithRotation(x, y, z, w float32) OrbitCameraControllerOption {
	return func(c *orbitCameraControllerImpl) {
		c.initRotation = [4]float32{x, y, z, w}
	}
}

// WithRadius sets the initial orbit radius (distance from the center).
// Non-positive values are replaced with the default of 50.
//
// Parameters:
//   - radius: distance from the orbit center
//
// Returns:
//   - OrbitCameraControllerOption: functional option to set the radius
func WithRadius(radius float32) OrbitCameraControllerOption {
	return func(c *orbitCameraControllerImpl) {
		c.initRadius = radius
	}
}

// WithEye sets the initial camera position. When supplied, the initial
// rotation and radius are derived from eye, center, and the world-up hint
// via the look-at construction, overriding WithRotation and WithRadius.
//
// Parameters:
//   - x, y, z: world-space eye coordinates
//
// Returns:
//   - OrbitCameraControllerOption: functional option to set the eye position
func WithEye(x, y, z float32) OrbitCameraControllerOption {
	return func(c *orbitCameraControllerImpl) {
		c.initEye = []float32{x, y, z}
	}
}

// WithWorldUp sets the up hint used when deriving the initial pose from an
// eye position. Ignored unless WithEye is also supplied.
//
// Parameters:
//   - x, y, z: up vector components
//
// Returns:
//   - OrbitCameraControllerOption: functional option to set the up hint
func WithWorldUp(x, y, z float32) OrbitCameraControllerOption {
	return func(c *orbitCameraControllerImpl) {
		c.initUp = [3]float32{x, y, z}
	}
}

// WithLogger attaches a structured logger for gesture diagnostics.
// Without one the controller stays silent.
//
// Parameters:
//   - logger: the slog logger to receive diagnostics
//
// Returns:
//   - OrbitCameraControllerOption: functional option to set the logger
func WithLogger(logger *slog.Logger) OrbitCameraControllerOption {
	return func(c *orbitCameraControllerImpl) {
		c.logger = logger
	}
}
