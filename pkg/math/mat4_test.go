package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	eye := Vec3{100, 0, 50}
	view := LookAt(eye, Vec3{}, Vec3{0, 1, 0})

	p := view.MulVec4(Vec4{eye.X, eye.Y, eye.Z, 1})
	for i := 0; i < 3; i++ {
		if math.Abs(float64(p[i])) > 1e-3 {
			t.Errorf("eye should map to view origin, component %d = %v", i, p[i])
		}
	}

	// Target lies on the -Z axis in view space
	c := view.MulVec4(Vec4{0, 0, 0, 1})
	if c[2] >= 0 {
		t.Errorf("target should be in front of the camera (z<0), got %v", c[2])
	}
}

func TestInverseRoundTrip(t *testing.T) {
	proj := Perspective(float32(math.Pi/3), 4.0/3.0, 0.1, 1000)
	view := LookAt(Vec3{10, 20, 30}, Vec3{}, Vec3{0, 1, 0})
	vp := proj.Mul(view)

	id := vp.Mul(vp.Inverse())
	want := Identity()
	for i := 0; i < 16; i++ {
		if math.Abs(float64(id[i]-want[i])) > 1e-3 {
			t.Errorf("M * M^-1 element %d = %v, want %v", i, id[i], want[i])
		}
	}
}

func TestUnproject(t *testing.T) {
	// The center of the near plane unprojects onto the view axis
	eye := Vec3{0, 0, 10}
	proj := Perspective(float32(math.Pi/2), 1, 1, 100)
	view := LookAt(eye, Vec3{}, Vec3{0, 1, 0})
	inv := proj.Mul(view).Inverse()

	near := inv.Unproject(Vec3{0, 0, -1})
	if math.Abs(float64(near.X)) > 1e-3 || math.Abs(float64(near.Y)) > 1e-3 {
		t.Errorf("near center should be on the z axis, got %v", near)
	}
	if math.Abs(float64(near.Z-9)) > 1e-2 {
		t.Errorf("near center z = %v, want 9", near.Z)
	}
}
