package picking

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/pcdview/internal/engine/pointcloud"
	"github.com/Faultbox/pcdview/pkg/math"
)

func approx(a, b, tol float32) bool {
	return gomath.Abs(float64(a-b)) < float64(tol)
}

func TestScreenToRayCenter(t *testing.T) {
	eye := math.Vec3{X: 0, Y: 0, Z: 10}
	view := math.LookAt(eye, math.Vec3{}, math.Vec3{Y: 1})
	proj := math.Perspective(gomath.Pi/2, 1, 0.1, 100)
	inv := proj.Mul(view).Inverse()

	ray, ok := ScreenToRay(50, 50, 100, 100, inv)
	if !ok {
		t.Fatal("expected a ray")
	}
	if !approx(ray.Direction.Z, -1, 1e-4) {
		t.Errorf("direction = %+v, want -Z", ray.Direction)
	}
	if !approx(ray.Origin.X, 0, 1e-4) || !approx(ray.Origin.Y, 0, 1e-4) {
		t.Errorf("origin = %+v, want on the Z axis", ray.Origin)
	}
}

func TestScreenToRayEmptyViewport(t *testing.T) {
	if _, ok := ScreenToRay(0, 0, 0, 100, math.Identity()); ok {
		t.Error("zero width viewport should not produce a ray")
	}
}

func TestRayDistanceToPoint(t *testing.T) {
	r := Ray{Direction: math.Vec3{Z: 1}}

	if d := r.DistanceToPoint(math.Vec3{X: 3, Z: 5}); !approx(d, 3, 1e-6) {
		t.Errorf("distance = %v, want 3", d)
	}
	// Behind the origin the distance is measured to the origin.
	if d := r.DistanceToPoint(math.Vec3{Z: -4}); !approx(d, 4, 1e-6) {
		t.Errorf("distance = %v, want 4", d)
	}
}

func TestNearestPointPrefersCameraSide(t *testing.T) {
	cloud := &pointcloud.Cloud{Positions: []math.Vec3{
		{Z: -20},
		{Z: -5},
		{X: 50, Z: -5},
		{Z: 5}, // behind the ray origin
	}}
	ray := Ray{Direction: math.Vec3{Z: -1}}

	hit, ok := NearestPoint(ray, cloud, math.Vec3{}, 0.01)
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit.Index != 1 {
		t.Errorf("index = %d, want 1", hit.Index)
	}
	if !approx(hit.Distance, 5, 1e-6) {
		t.Errorf("distance = %v, want 5", hit.Distance)
	}
	if hit.Cloud != cloud {
		t.Error("hit should reference the picked cloud")
	}
}

func TestNearestPointMiss(t *testing.T) {
	cloud := &pointcloud.Cloud{Positions: []math.Vec3{{X: 10, Z: -1}}}
	ray := Ray{Direction: math.Vec3{Z: -1}}

	if _, ok := NearestPoint(ray, cloud, math.Vec3{}, 0.01); ok {
		t.Error("point far off the ray should not be picked")
	}
	if _, ok := NearestPoint(ray, nil, math.Vec3{}, 0.01); ok {
		t.Error("nil cloud should not be picked")
	}
}

func TestPickAcrossClouds(t *testing.T) {
	far := &pointcloud.Cloud{Positions: []math.Vec3{{Z: -30}}}
	near := &pointcloud.Cloud{Positions: []math.Vec3{{Z: -10}}}
	ray := Ray{Direction: math.Vec3{Z: -1}}

	hit, ok := Pick(ray, math.Vec3{}, 0.01, far, near)
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit.Cloud != near {
		t.Error("closest cloud should win")
	}
}
