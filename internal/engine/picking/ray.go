// Package picking provides ray casting and point picking utilities.
package picking

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/pcdview/internal/engine/pointcloud"
	"github.com/Faultbox/pcdview/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// ScreenToRay converts screen coordinates to a world-space ray.
// screenX, screenY are pixel coordinates, viewportW/H are viewport dimensions.
// invViewProj is the inverse of the view-projection matrix.
// ok is false for an empty viewport.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj math.Mat4) (Ray, bool) {
	if viewportW <= 0 || viewportH <= 0 {
		return Ray{}, false
	}

	// Convert screen coords to normalized device coords (-1 to 1)
	ndcX := 2.0*screenX/viewportW - 1.0
	ndcY := 1.0 - 2.0*screenY/viewportH // Flip Y

	near := invViewProj.Unproject(math.Vec3{X: ndcX, Y: ndcY, Z: -1})
	far := invViewProj.Unproject(math.Vec3{X: ndcX, Y: ndcY, Z: 1})

	dir := far.Sub(near)
	if dir.LengthSq() == 0 {
		return Ray{}, false
	}
	return Ray{Origin: near, Direction: dir.Normalize()}, true
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// ClosestT returns the ray parameter of the point on the ray closest to p,
// clamped so it never lies behind the origin.
func (r Ray) ClosestT(p math.Vec3) float32 {
	t := p.Sub(r.Origin).Dot(r.Direction)
	if t < 0 {
		return 0
	}
	return t
}

// DistanceToPoint returns the distance between p and the ray.
func (r Ray) DistanceToPoint(p math.Vec3) float32 {
	return r.At(r.ClosestT(p)).Distance(p)
}

// Hit describes a picked point.
type Hit struct {
	Cloud    *pointcloud.Cloud
	Index    int
	Position math.Vec3
	Distance float32 // from the camera
}

// NearestPoint returns the point of cloud lying within threshold radians of
// the ray that is closest to camPos. Points behind the ray origin are ignored.
func NearestPoint(ray Ray, cloud *pointcloud.Cloud, camPos math.Vec3, threshold float32) (Hit, bool) {
	best := Hit{Index: -1, Distance: math32.Inf(1)}
	if cloud == nil {
		return best, false
	}
	cosLimit := math32.Cos(threshold)

	for i, p := range cloud.Positions {
		toPoint := p.Sub(ray.Origin)
		d := toPoint.Length()
		if d == 0 {
			continue
		}
		if toPoint.Dot(ray.Direction)/d < cosLimit {
			continue
		}
		dist := camPos.Distance(p)
		if dist < best.Distance {
			best = Hit{Cloud: cloud, Index: i, Position: p, Distance: dist}
		}
	}
	return best, best.Index >= 0
}

// Pick runs NearestPoint over every cloud and keeps the hit closest to the camera.
func Pick(ray Ray, camPos math.Vec3, threshold float32, clouds ...*pointcloud.Cloud) (Hit, bool) {
	best := Hit{Index: -1, Distance: math32.Inf(1)}
	for _, c := range clouds {
		h, ok := NearestPoint(ray, c, camPos, threshold)
		if ok && h.Distance < best.Distance {
			best = h
		}
	}
	return best, best.Index >= 0
}
