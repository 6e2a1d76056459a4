package common

import "testing"

// viewerFrustum builds a frustum for a camera at (0, 0, 10) looking at the
// origin with a 45 degree vertical field of view.
func viewerFrustum() Frustum {
	var view, proj, viewProj [16]float32
	LookAt(view[:], 0, 0, 10, 0, 0, 0, 0, 1, 0)
	Perspective(proj[:], 45.0*3.14159265/180.0, 1.0, 0.1, 100.0)
	Mul4(viewProj[:], proj[:], view[:])
	return ExtractFrustumFromMatrix(viewProj[:])
}

func TestContainsSphereInside(t *testing.T) {
	f := viewerFrustum()
	if !f.ContainsSphere(0, 0, 0, 1.0) {
		t.Error("ContainsSphere(origin) = false, want true")
	}
}

func TestContainsSphereBehindCamera(t *testing.T) {
	f := viewerFrustum()
	if f.ContainsSphere(0, 0, 50, 1.0) {
		t.Error("ContainsSphere(behind camera) = true, want false")
	}
}

func TestContainsSphereBeyondFarPlane(t *testing.T) {
	f := viewerFrustum()
	if f.ContainsSphere(0, 0, -200, 1.0) {
		t.Error("ContainsSphere(beyond far plane) = true, want false")
	}
}

func TestContainsSphereOffToSide(t *testing.T) {
	f := viewerFrustum()
	// Far outside the left plane at this distance.
	if f.ContainsSphere(-100, 0, 0, 1.0) {
		t.Error("ContainsSphere(off to side) = true, want false")
	}
}

func TestContainsSphereStraddlingPlane(t *testing.T) {
	f := viewerFrustum()
	// Center outside the frustum but the radius reaches back in.
	if !f.ContainsSphere(0, 0, -105, 10.0) {
		t.Error("ContainsSphere(straddling far plane) = false, want true")
	}
}

func TestFrustumPlanesNormalized(t *testing.T) {
	f := viewerFrustum()
	for i, p := range f.Planes {
		length := Len3(p.Normal[0], p.Normal[1], p.Normal[2])
		if length < 0.999 || length > 1.001 {
			t.Errorf("plane %d normal length = %v, want 1", i, length)
		}
	}
}
