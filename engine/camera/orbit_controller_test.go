package camera

import (
	"math"
	"testing"
)

func within(a, b, tol float32) bool {
	return math.Abs(float64(a-b)) <= float64(tol)
}

func quatNorm(q [4]float32) float32 {
	return float32(math.Sqrt(float64(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3])))
}

func TestDefaults(t *testing.T) {
	c := NewOrbitCameraController()

	if x, y, z := c.Center(); x != 0 || y != 0 || z != 0 {
		t.Errorf("Center() = (%v, %v, %v), want origin", x, y, z)
	}
	if got := c.Radius(); !within(got, 50, 1e-3) {
		t.Errorf("Radius() = %v, want 50", got)
	}
	q := c.Rotation()
	if !within(q[0], 0, 1e-6) || !within(q[1], 0, 1e-6) || !within(q[2], 0, 1e-6) || !within(q[3], 1, 1e-6) {
		t.Errorf("Rotation() = %v, want identity", q)
	}

	// Identity orientation at radius 50: the view matrix is identity rotation
	// with the eye pushed back along +z.
	m := c.Matrix()
	if !within(m[0], 1, 1e-5) || !within(m[5], 1, 1e-5) || !within(m[10], 1, 1e-5) {
		t.Errorf("rotation diagonal = (%v, %v, %v), want identity", m[0], m[5], m[10])
	}
	if !within(m[12], 0, 1e-4) || !within(m[13], 0, 1e-4) || !within(m[14], -50, 1e-3) {
		t.Errorf("translation = (%v, %v, %v), want (0, 0, -50)", m[12], m[13], m[14])
	}
	if x, y, z := c.Eye(); !within(x, 0, 1e-4) || !within(y, 0, 1e-4) || !within(z, 50, 1e-3) {
		t.Errorf("Eye() = (%v, %v, %v), want (0, 0, 50)", x, y, z)
	}
	if x, y, z := c.Up(); !within(x, 0, 1e-5) || !within(y, 1, 1e-5) || !within(z, 0, 1e-5) {
		t.Errorf("Up() = (%v, %v, %v), want (0, 1, 0)", x, y, z)
	}
}

func TestDirtyLifecycle(t *testing.T) {
	c := NewOrbitCameraController()

	if !c.Dirty() {
		t.Error("Dirty() = false after construction, want true")
	}
	c.Matrix()
	if c.Dirty() {
		t.Error("Dirty() = true after Matrix(), want false")
	}
	c.Tick(1)
	if !c.Dirty() {
		t.Error("Dirty() = false after Tick, want true")
	}
	c.Matrix()

	c.Zoom(2, 2.0)
	if !c.Dirty() {
		t.Error("Dirty() = false after Zoom, want true")
	}
	c.Matrix()

	c.Pan(3, 1, 1)
	if !c.Dirty() {
		t.Error("Dirty() = false after Pan, want true")
	}
	c.Matrix()

	c.Rotate(4, 0.1, 0.1)
	if !c.Dirty() {
		t.Error("Dirty() = false after Rotate, want true")
	}
	c.Matrix()

	c.LookAt(5, []float32{0, 0, 10}, nil, nil)
	if !c.Dirty() {
		t.Error("Dirty() = false after LookAt, want true")
	}
}

func TestTickClampsOutOfOrderTime(t *testing.T) {
	c := NewOrbitCameraController()
	c.Tick(5)
	c.Tick(3)
	if got := c.LastT(); got != 5 {
		t.Errorf("LastT() = %v, want 5", got)
	}
}

func TestZoomScalesRadiusMultiplicatively(t *testing.T) {
	c := NewOrbitCameraController()
	c.Tick(1)

	c.Zoom(1, 2.0)
	if got := c.Radius(); !within(got, 100, 0.01) {
		t.Errorf("Radius() after Zoom(2.0) = %v, want 100", got)
	}

	c.Zoom(1, 0.5)
	if got := c.Radius(); !within(got, 50, 0.01) {
		t.Errorf("Radius() after Zoom(0.5) = %v, want 50", got)
	}
}

func TestZoomIgnoresDegenerateFactors(t *testing.T) {
	c := NewOrbitCameraController()
	c.Matrix()

	before := c.Radius()
	c.Zoom(1, 0)
	c.Zoom(1, -3)
	if got := c.Radius(); got != before {
		t.Errorf("Radius() after degenerate Zoom = %v, want %v", got, before)
	}
	if c.Dirty() {
		t.Error("Dirty() = true after degenerate Zoom, want false")
	}
}

func TestRadiusStaysPositive(t *testing.T) {
	c := NewOrbitCameraController()
	for i := 0; i < 30; i++ {
		c.Zoom(float32(i), 0.1)
	}
	if got := c.Radius(); got <= 0 {
		t.Errorf("Radius() = %v, want > 0", got)
	}
}

func TestPanMovesCenterAlongViewBasis(t *testing.T) {
	c := NewOrbitCameraController()
	c.Pan(1, 2, 3)

	// Identity orientation: right is +x, up is +y.
	if x, y, z := c.Center(); !within(x, -2, 1e-4) || !within(y, -3, 1e-4) || !within(z, 0, 1e-4) {
		t.Errorf("Center() = (%v, %v, %v), want (-2, -3, 0)", x, y, z)
	}
	if x, y, z := c.Eye(); !within(x, -2, 1e-4) || !within(y, -3, 1e-4) || !within(z, 50, 1e-3) {
		t.Errorf("Eye() = (%v, %v, %v), want (-2, -3, 50)", x, y, z)
	}
}

func TestPanZeroDeltaKeepsMatrix(t *testing.T) {
	c := NewOrbitCameraController()
	c.Rotate(1, 0.3, 0.2)
	before := c.Matrix()

	c.Pan(2, 0, 0)
	after := c.Matrix()
	for i := range before {
		if !within(before[i], after[i], 1e-5) {
			t.Errorf("matrix[%d] = %v after zero pan, want %v", i, after[i], before[i])
		}
	}
}

func TestRotateKeepsQuaternionNormalized(t *testing.T) {
	c := NewOrbitCameraController()
	for i := 1; i <= 20; i++ {
		c.Rotate(float32(i), 0.37, -0.21)
		if norm := quatNorm(c.Rotation()); !within(norm, 1, 1e-4) {
			t.Errorf("quaternion norm after rotate %d = %v, want 1", i, norm)
		}
	}
}

func TestRotateZeroDeltaKeepsOrientation(t *testing.T) {
	c := NewOrbitCameraController()
	before := c.Rotation()
	c.Rotate(1, 0, 0)
	after := c.Rotation()
	for i := range before {
		if !within(before[i], after[i], 1e-5) {
			t.Errorf("Rotation()[%d] = %v after zero rotate, want %v", i, after[i], before[i])
		}
	}
}

func TestRotateOrderMatters(t *testing.T) {
	a := NewOrbitCameraController()
	a.Rotate(1, 0.8, 0)
	a.Rotate(2, 0, 0.8)

	b := NewOrbitCameraController()
	b.Rotate(1, 0, 0.8)
	b.Rotate(2, 0.8, 0)

	qa, qb := a.Rotation(), b.Rotation()
	same := true
	for i := range qa {
		if !within(qa[i], qb[i], 1e-3) {
			same = false
		}
	}
	if same {
		t.Errorf("rotations commuted: %v == %v", qa, qb)
	}
}

func TestRotateComposesNonlinearly(t *testing.T) {
	a := NewOrbitCameraController()
	a.Rotate(1, 0.8, 0)
	a.Rotate(2, 0.8, 0)

	b := NewOrbitCameraController()
	b.Rotate(1, 1.6, 0)

	// Two half-drags do not equal one double drag, but both stay unit.
	qa, qb := a.Rotation(), b.Rotation()
	same := true
	for i := range qa {
		if !within(qa[i], qb[i], 1e-3) {
			same = false
		}
	}
	if same {
		t.Errorf("split drag matched single drag: %v == %v", qa, qb)
	}
	if norm := quatNorm(qa); !within(norm, 1, 1e-4) {
		t.Errorf("split drag quaternion norm = %v, want 1", norm)
	}
	if norm := quatNorm(qb); !within(norm, 1, 1e-4) {
		t.Errorf("single drag quaternion norm = %v, want 1", norm)
	}
}

func TestRotateMovesEyeOnSphere(t *testing.T) {
	c := NewOrbitCameraController()
	c.Rotate(1, 0.5, 0.3)

	// The orbit distance is unchanged by rotation.
	x, y, z := c.Eye()
	dist := float32(math.Sqrt(float64(x*x + y*y + z*z)))
	if !within(dist, 50, 0.01) {
		t.Errorf("eye distance after rotate = %v, want 50", dist)
	}
}

func TestLookAtRoundTrip(t *testing.T) {
	c := NewOrbitCameraController()
	c.LookAt(1, []float32{0, 0, 10}, []float32{0, 0, 0}, []float32{0, 1, 0})

	if got := c.Radius(); !within(got, 10, 1e-3) {
		t.Errorf("Radius() = %v, want 10", got)
	}
	q := c.Rotation()
	if !within(q[0], 0, 1e-4) || !within(q[1], 0, 1e-4) || !within(q[2], 0, 1e-4) || !within(float32(math.Abs(float64(q[3]))), 1, 1e-4) {
		t.Errorf("Rotation() = %v, want identity", q)
	}
	if x, y, z := c.Eye(); !within(x, 0, 1e-3) || !within(y, 0, 1e-3) || !within(z, 10, 1e-3) {
		t.Errorf("Eye() = (%v, %v, %v), want (0, 0, 10)", x, y, z)
	}
	m := c.Matrix()
	if !within(m[14], -10, 1e-3) {
		t.Errorf("m[14] = %v, want -10", m[14])
	}
}

func TestLookAtArbitraryPose(t *testing.T) {
	c := NewOrbitCameraController()
	eye := []float32{3, 4, 5}
	center := []float32{1, 1, 1}
	c.LookAt(1, eye, center, []float32{0, 1, 0})

	wantRadius := float32(math.Sqrt(4 + 9 + 16))
	if got := c.Radius(); !within(got, wantRadius, 1e-2) {
		t.Errorf("Radius() = %v, want %v", got, wantRadius)
	}
	if x, y, z := c.Center(); !within(x, 1, 1e-4) || !within(y, 1, 1e-4) || !within(z, 1, 1e-4) {
		t.Errorf("Center() = (%v, %v, %v), want (1, 1, 1)", x, y, z)
	}
	if x, y, z := c.Eye(); !within(x, 3, 1e-2) || !within(y, 4, 1e-2) || !within(z, 5, 1e-2) {
		t.Errorf("Eye() = (%v, %v, %v), want (3, 4, 5)", x, y, z)
	}
}

func TestLookAtDegenerateUp(t *testing.T) {
	c := NewOrbitCameraController()
	// Up parallel to the view axis; the controller substitutes a world axis.
	c.LookAt(1, []float32{0, 10, 0}, []float32{0, 0, 0}, []float32{0, 1, 0})

	if got := c.Radius(); !within(got, 10, 1e-2) {
		t.Errorf("Radius() = %v, want 10", got)
	}
	m := c.Matrix()
	for i, v := range m {
		if math.IsNaN(float64(v)) {
			t.Fatalf("m[%d] is NaN", i)
		}
	}
	if norm := quatNorm(c.Rotation()); !within(norm, 1, 1e-4) {
		t.Errorf("quaternion norm = %v, want 1", norm)
	}
}

func TestLookAtNilArgsKeepPose(t *testing.T) {
	c := NewOrbitCameraController()
	c.Rotate(1, 0.4, 0.2)
	c.Pan(2, 1, 1)
	before := c.Matrix()

	c.LookAt(3, nil, nil, nil)
	after := c.Matrix()
	for i := range before {
		if !within(before[i], after[i], 1e-3) {
			t.Errorf("matrix[%d] = %v after nil LookAt, want %v", i, after[i], before[i])
		}
	}
}

func TestLookAtDiscardsQueuedTransitions(t *testing.T) {
	c := NewOrbitCameraController()
	c.Tick(1)
	c.Zoom(2, 4.0)

	c.LookAt(1.5, []float32{0, 0, 10}, []float32{0, 0, 0}, []float32{0, 1, 0})
	c.Tick(3)
	if got := c.Radius(); !within(got, 10, 1e-2) {
		t.Errorf("Radius() = %v after LookAt reset, want 10", got)
	}
}

func TestSetMatrixUnsupported(t *testing.T) {
	c := NewOrbitCameraController()
	c.Matrix()

	identity := make([]float32, 16)
	identity[0], identity[5], identity[10], identity[15] = 1, 1, 1, 1
	if err := c.SetMatrix(1, identity); err != ErrSetMatrixUnsupported {
		t.Errorf("SetMatrix() error = %v, want ErrSetMatrixUnsupported", err)
	}
	if c.Dirty() {
		t.Error("Dirty() = true after rejected SetMatrix, want false")
	}
}

func TestFlushKeepsCurrentPose(t *testing.T) {
	c := NewOrbitCameraController()
	c.Rotate(1, 0.3, 0.1)
	c.Zoom(2, 0.5)
	c.Tick(3)
	before := c.Matrix()

	c.Flush(2.5)
	c.Tick(3)
	after := c.Matrix()
	for i := range before {
		if !within(before[i], after[i], 1e-5) {
			t.Errorf("matrix[%d] = %v after Flush, want %v", i, after[i], before[i])
		}
	}
}

func TestIdleAnchorsTransitions(t *testing.T) {
	c := NewOrbitCameraController()
	c.Matrix()
	c.Idle(5)

	// A gesture after an idle period transitions from the idle anchor, not
	// from t=0, so the pose at the anchor time is unchanged.
	c.Zoom(6, 2.0)
	if got := c.Radius(); !within(got, 100, 0.01) {
		t.Errorf("Radius() = %v, want 100", got)
	}
}

func TestBuilderWithEye(t *testing.T) {
	c := NewOrbitCameraController(WithEye(0, 0, 10))

	if got := c.Radius(); !within(got, 10, 1e-3) {
		t.Errorf("Radius() = %v, want 10", got)
	}
	if x, y, z := c.Eye(); !within(x, 0, 1e-3) || !within(y, 0, 1e-3) || !within(z, 10, 1e-3) {
		t.Errorf("Eye() = (%v, %v, %v), want (0, 0, 10)", x, y, z)
	}
}

func TestBuilderNormalizesRotation(t *testing.T) {
	c := NewOrbitCameraController(WithRotation(0, 0, 0, 2))
	q := c.Rotation()
	if !within(quatNorm(q), 1, 1e-5) {
		t.Errorf("quaternion norm = %v, want 1", quatNorm(q))
	}
}

func TestBuilderRejectsNonPositiveRadius(t *testing.T) {
	c := NewOrbitCameraController(WithRadius(-5))
	if got := c.Radius(); !within(got, 50, 1e-3) {
		t.Errorf("Radius() = %v, want default 50", got)
	}
}

func TestBuilderWithCenter(t *testing.T) {
	c := NewOrbitCameraController(WithCenter(1, 2, 3), WithRadius(10))
	if x, y, z := c.Center(); x != 1 || y != 2 || z != 3 {
		t.Errorf("Center() = (%v, %v, %v), want (1, 2, 3)", x, y, z)
	}
	if x, y, z := c.Eye(); !within(x, 1, 1e-3) || !within(y, 2, 1e-3) || !within(z, 13, 1e-3) {
		t.Errorf("Eye() = (%v, %v, %v), want (1, 2, 13)", x, y, z)
	}
}
