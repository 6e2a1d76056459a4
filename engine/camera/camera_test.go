package camera

import (
	"math"
	"testing"

	"github.com/vantage3d/vantage/common"
)

func TestNewCameraDefaults(t *testing.T) {
	cam := NewCamera()

	if got := cam.Fov(); !within(got, float32(45.0*math.Pi/180.0), 1e-5) {
		t.Errorf("Fov() = %v, want 45 degrees in radians", got)
	}
	if got := cam.Aspect(); got != 1.0 {
		t.Errorf("Aspect() = %v, want 1.0", got)
	}
	if got := cam.Near(); got != 0.1 {
		t.Errorf("Near() = %v, want 0.1", got)
	}
	if got := cam.Far(); got != 100.0 {
		t.Errorf("Far() = %v, want 100.0", got)
	}
	if got := cam.Controller(); got != nil {
		t.Error("Controller() != nil without an attached controller")
	}
}

func TestUpdateWithoutControllerIsNoOp(t *testing.T) {
	cam := NewCamera()
	before := cam.ViewMatrix()
	cam.Update(1)
	after := cam.ViewMatrix()
	if before != after {
		t.Error("Update without controller changed the view matrix")
	}
}

func TestUpdatePullsControllerView(t *testing.T) {
	ctrl := NewOrbitCameraController(WithRadius(10))
	cam := NewCamera(WithController(ctrl))

	cam.Update(1)
	view := cam.ViewMatrix()
	if !within(view[14], -10, 1e-3) {
		t.Errorf("view[14] = %v, want -10", view[14])
	}
	if got := ctrl.LastT(); got != 1 {
		t.Errorf("controller LastT() = %v, want 1", got)
	}

	// Gestures flow through on the next update.
	ctrl.Zoom(2, 2.0)
	cam.Update(2)
	view = cam.ViewMatrix()
	if !within(view[14], -20, 1e-2) {
		t.Errorf("view[14] after zoom = %v, want -20", view[14])
	}
}

func TestViewProjectionComposition(t *testing.T) {
	ctrl := NewOrbitCameraController(WithRadius(10))
	cam := NewCamera(WithController(ctrl))
	cam.Update(1)

	view := cam.ViewMatrix()
	proj := cam.ProjectionMatrix()
	var want [16]float32
	common.Mul4(want[:], proj[:], view[:])

	got := cam.ViewProjectionMatrix()
	for i := range got {
		if !within(got[i], want[i], 1e-5) {
			t.Errorf("viewProjection[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestInverseProjection(t *testing.T) {
	ctrl := NewOrbitCameraController()
	cam := NewCamera(WithController(ctrl), WithAspect(16.0/9.0))

	proj := cam.ProjectionMatrix()
	inv := cam.InverseProjectionMatrix()

	var product [16]float32
	common.Mul4(product[:], proj[:], inv[:])
	for i := 0; i < 16; i++ {
		want := float32(0)
		if i%5 == 0 {
			want = 1
		}
		if !within(product[i], want, 1e-4) {
			t.Errorf("(P * P^-1)[%d] = %v, want %v", i, product[i], want)
		}
	}
}

func TestBuilderOptionOrderIrrelevant(t *testing.T) {
	fov := float32(60.0 * math.Pi / 180.0)

	a := NewCamera(WithController(NewOrbitCameraController(WithRadius(10))), WithFov(fov), WithAspect(2.0))
	b := NewCamera(WithFov(fov), WithAspect(2.0), WithController(NewOrbitCameraController(WithRadius(10))))

	pa, pb := a.ProjectionMatrix(), b.ProjectionMatrix()
	for i := range pa {
		if !within(pa[i], pb[i], 1e-6) {
			t.Errorf("projection[%d] = %v vs %v, want option order not to matter", i, pa[i], pb[i])
		}
	}
	if a.Fov() != fov {
		t.Errorf("Fov() = %v, want %v", a.Fov(), fov)
	}
}

func TestBuilderReadsControllerOnce(t *testing.T) {
	ctrl := NewOrbitCameraController()
	cam := NewCamera(WithController(ctrl), WithFov(1.0), WithNear(0.5), WithFar(200))

	// The single recompute at the end of construction consumes the
	// controller's initial dirty state; nothing re-dirties it afterwards.
	if ctrl.Dirty() {
		t.Error("controller Dirty() = true after NewCamera, want false")
	}
	view := cam.ViewMatrix()
	if !within(view[14], -50, 1e-3) {
		t.Errorf("view[14] = %v, want -50", view[14])
	}
}

func TestSettersRecomputeProjection(t *testing.T) {
	ctrl := NewOrbitCameraController()
	cam := NewCamera(WithController(ctrl))

	before := cam.ProjectionMatrix()
	cam.SetAspect(2.0)
	after := cam.ProjectionMatrix()
	if before == after {
		t.Error("SetAspect did not change the projection matrix")
	}
	if !within(after[0], before[0]/2, 1e-5) {
		t.Errorf("proj[0] = %v, want %v", after[0], before[0]/2)
	}
}

func TestFrustumCullsAroundOrbitCenter(t *testing.T) {
	ctrl := NewOrbitCameraController(WithRadius(10))
	cam := NewCamera(WithController(ctrl))
	cam.Update(1)

	f := cam.Frustum()
	if !f.ContainsSphere(0, 0, 0, 1.0) {
		t.Error("orbit center culled, want visible")
	}
	if f.ContainsSphere(0, 0, 500, 1.0) {
		t.Error("sphere far behind camera visible, want culled")
	}
}
