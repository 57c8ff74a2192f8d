package pointcloud

import (
	"testing"

	"github.com/Faultbox/pcdview/pkg/math"
)

func TestCubeBounds(t *testing.T) {
	c := Cube(5, 10)

	if c.Len() != 125 {
		t.Fatalf("expected 125 points, got %d", c.Len())
	}
	if len(c.Colors) != c.Len() {
		t.Errorf("expected one color per point, got %d", len(c.Colors))
	}

	min, max, ok := c.Bounds()
	if !ok {
		t.Fatal("expected bounds for non-empty cloud")
	}
	if min != (math.Vec3{X: -5, Y: -5, Z: -5}) {
		t.Errorf("min = %v, want (-5,-5,-5)", min)
	}
	if max != (math.Vec3{X: 5, Y: 5, Z: 5}) {
		t.Errorf("max = %v, want (5,5,5)", max)
	}
	if c.Center() != (math.Vec3{}) {
		t.Errorf("center = %v, want origin", c.Center())
	}
}

func TestCubeSliceOutOfRange(t *testing.T) {
	if p, _ := CubeSlice(4, 4, 1); p != nil {
		t.Errorf("expected no points for z out of range, got %d", len(p))
	}
	if p, _ := CubeSlice(0, 0, 1); p != nil {
		t.Errorf("expected no points for n=0, got %d", len(p))
	}
}

func TestSinglePointCube(t *testing.T) {
	c := Cube(1, 2)
	if c.Len() != 1 {
		t.Fatalf("expected 1 point, got %d", c.Len())
	}
	if c.Positions[0] != (math.Vec3{X: -1, Y: -1, Z: -1}) {
		t.Errorf("unexpected position %v", c.Positions[0])
	}
}

func TestEmptyBounds(t *testing.T) {
	var c Cloud
	if _, _, ok := c.Bounds(); ok {
		t.Error("empty cloud should have no bounds")
	}
	if c.Center() != (math.Vec3{}) {
		t.Error("empty cloud center should be the origin")
	}
}

func TestInterleaved(t *testing.T) {
	c := &Cloud{
		Positions: []math.Vec3{{X: 1, Y: 2, Z: 3}, {X: 4, Y: 5, Z: 6}},
		Colors:    []Color{{R: 1, G: 0, B: 0}},
	}
	got := c.Interleaved(Color{R: 0, G: 1, B: 0})
	want := []float32{1, 2, 3, 1, 0, 0, 4, 5, 6, 0, 1, 0}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("element %d = %v, want %v", i, got[i], want[i])
		}
	}
}
