package filter

import (
	"fmt"
	"sync"
)

// VectorOption is a functional option for configuring a Vector.
type VectorOption func(*filteredVectorImpl)

// NewVector creates a new time-filtered track of the given dimension with one
// initial waypoint at time 0. Dimensions 1 through 4 cover scalar, 3-vector,
// and quaternion tracks.
//
// Parameters:
//   - dimension: number of components per waypoint (must be 1 to 4)
//   - options: functional options to configure the track
//
// Returns:
//   - Vector: the newly created track
func NewVector(dimension int, options ...VectorOption) Vector {
	if dimension < 1 || dimension > 4 {
		panic(fmt.Sprintf("filter: unsupported vector dimension %d", dimension))
	}
	fv := &filteredVectorImpl{
		mu:        &sync.Mutex{},
		dimension: dimension,
		waypoints: []waypoint{{t: 0, value: make([]float32, dimension)}},
	}
	for _, option := range options {
		option(fv)
	}
	return fv
}

// WithInitial sets the value of the initial waypoint at time 0.
//
// Parameters:
//   - values: initial components (truncated/padded to the track dimension)
//
// Returns:
//   - VectorOption: functional option to set the initial waypoint
func WithInitial(values ...float32) VectorOption {
	return func(fv *filteredVectorImpl) {
		fv.waypoints[0].value = fv.fit(values)
	}
}
