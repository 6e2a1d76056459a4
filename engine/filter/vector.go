// Package filter provides time-filtered value tracks. A Vector stores an
// ordered series of (time, value) waypoints for a fixed-dimension vector and
// smoothly interpolates between them, so that discrete input events (camera
// gestures, scripted moves) turn into continuous animation over time.
package filter

import (
	"sort"
	"sync"
)

// waypoint is a single (time, value) sample in a Vector's history.
type waypoint struct {
	t     float32
	value []float32
}

// Vector defines the interface for a time-filtered vector track.
// A track always holds at least one waypoint, so sampling never fails and
// always yields exactly Dimension components. Writes are expected with
// non-decreasing timestamps; an out-of-order write is clamped onto the
// track's latest time rather than rejected.
type Vector interface {
	// Dimension returns the number of components per waypoint (1 to 4).
	//
	// Returns:
	//   - int: the track's fixed dimension
	Dimension() int

	// Curve samples the track at time t with smooth interpolation between
	// waypoints. Samples before the first waypoint or after the latest one
	// clamp to the boundary value. Repeated calls at the same t are
	// idempotent absent new writes.
	//
	// Parameters:
	//   - t: sample time
	//   - out: destination slice (allocated when nil; must hold Dimension elements otherwise)
	//
	// Returns:
	//   - []float32: the sampled value (out when supplied)
	Curve(t float32, out []float32) []float32

	// Push inserts an absolute waypoint at time t with overwrites-forward
	// semantics: the track's value from t onward reflects this waypoint
	// until superseded. A push at the track's latest time replaces that
	// waypoint in place.
	//
	// Parameters:
	//   - t: waypoint time
	//   - values: waypoint components (truncated/padded to Dimension)
	Push(t float32, values ...float32)

	// Set writes an authoritative absolute waypoint at time t, discarding
	// any waypoints at or after t first. Used for hard resets where no
	// previously queued transition should survive.
	//
	// Parameters:
	//   - t: waypoint time
	//   - values: waypoint components (truncated/padded to Dimension)
	Set(t float32, values ...float32)

	// Move applies a relative step at time t: the track's value sampled at
	// t plus the given deltas is pushed as a new absolute waypoint.
	//
	// Parameters:
	//   - t: waypoint time
	//   - deltas: per-component offsets (truncated/padded to Dimension)
	Move(t float32, deltas ...float32)

	// Idle marks the track as settled up to time t by freezing the latest
	// value at t. Later pushes then transition from t instead of easing
	// across the whole idle period. No-op when t is not past the latest
	// waypoint.
	//
	// Parameters:
	//   - t: settle time
	Idle(t float32)

	// Flush discards waypoint history strictly before time t, bounding
	// memory growth. The latest waypoint at or before t is kept as the
	// interpolation base so sampling behavior at times >= t is unchanged.
	//
	// Parameters:
	//   - t: history cutoff time
	Flush(t float32)

	// LastT returns the time of the most recent waypoint.
	//
	// Returns:
	//   - float32: the latest waypoint time
	LastT() float32
}

// filteredVectorImpl is the single implementation of Vector.
type filteredVectorImpl struct {
	mu *sync.Mutex

	dimension int
	waypoints []waypoint
}

var _ Vector = &filteredVectorImpl{}

func (fv *filteredVectorImpl) Dimension() int {
	return fv.dimension
}

func (fv *filteredVectorImpl) Curve(t float32, out []float32) []float32 {
	fv.mu.Lock()
	defer fv.mu.Unlock()

	if out == nil {
		out = make([]float32, fv.dimension)
	}
	fv.sample(t, out)
	return out
}

func (fv *filteredVectorImpl) Push(t float32, values ...float32) {
	fv.mu.Lock()
	defer fv.mu.Unlock()
	fv.push(t, values)
}

func (fv *filteredVectorImpl) Set(t float32, values ...float32) {
	fv.mu.Lock()
	defer fv.mu.Unlock()

	// Drop everything at or after t so no queued transition survives the reset.
	cut := sort.Search(len(fv.waypoints), func(i int) bool {
		return fv.waypoints[i].t >= t
	})
	fv.waypoints = fv.waypoints[:cut]
	fv.waypoints = append(fv.waypoints, waypoint{t: t, value: fv.fit(values)})
}

func (fv *filteredVectorImpl) Move(t float32, deltas ...float32) {
	fv.mu.Lock()
	defer fv.mu.Unlock()

	stepped := make([]float32, fv.dimension)
	fv.sample(t, stepped)
	d := fv.fit(deltas)
	for i := range stepped {
		stepped[i] += d[i]
	}
	fv.push(t, stepped)
}

func (fv *filteredVectorImpl) Idle(t float32) {
	fv.mu.Lock()
	defer fv.mu.Unlock()

	last := fv.waypoints[len(fv.waypoints)-1]
	if t <= last.t {
		return
	}
	frozen := make([]float32, fv.dimension)
	copy(frozen, last.value)
	fv.waypoints = append(fv.waypoints, waypoint{t: t, value: frozen})
}

func (fv *filteredVectorImpl) Flush(t float32) {
	fv.mu.Lock()
	defer fv.mu.Unlock()

	// Keep the latest waypoint at or before t as the interpolation base.
	cut := sort.Search(len(fv.waypoints), func(i int) bool {
		return fv.waypoints[i].t > t
	})
	if cut == 0 {
		return
	}
	fv.waypoints = fv.waypoints[cut-1:]
}

func (fv *filteredVectorImpl) LastT() float32 {
	fv.mu.Lock()
	defer fv.mu.Unlock()
	return fv.waypoints[len(fv.waypoints)-1].t
}

// push appends a waypoint, clamping out-of-order times onto the latest
// waypoint. Caller must hold the mutex.
func (fv *filteredVectorImpl) push(t float32, values []float32) {
	v := fv.fit(values)
	last := &fv.waypoints[len(fv.waypoints)-1]
	if t <= last.t {
		last.value = v
		return
	}
	fv.waypoints = append(fv.waypoints, waypoint{t: t, value: v})
}

// sample evaluates the track at time t into out.
// Caller must hold the mutex and supply an out slice of Dimension length.
func (fv *filteredVectorImpl) sample(t float32, out []float32) {
	last := fv.waypoints[len(fv.waypoints)-1]
	if t >= last.t {
		copy(out, last.value)
		return
	}
	first := fv.waypoints[0]
	if t <= first.t {
		copy(out, first.value)
		return
	}

	// Index of the first waypoint with time > t; its predecessor brackets t
	// from below. Both exist because of the boundary checks above.
	hi := sort.Search(len(fv.waypoints), func(i int) bool {
		return fv.waypoints[i].t > t
	})
	w0 := fv.waypoints[hi-1]
	w1 := fv.waypoints[hi]

	// Cubic smoothstep easing between the bracketing waypoints.
	u := (t - w0.t) / (w1.t - w0.t)
	s := u * u * (3 - 2*u)
	for i := 0; i < fv.dimension; i++ {
		out[i] = w0.value[i] + (w1.value[i]-w0.value[i])*s
	}
}

// fit copies values into a fresh slice of exactly Dimension length,
// truncating extra components and zero-padding missing ones.
func (fv *filteredVectorImpl) fit(values []float32) []float32 {
	v := make([]float32, fv.dimension)
	copy(v, values)
	return v
}
