// Package pointcloud holds point cloud geometry.
package pointcloud

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/pcdview/pkg/math"
)

// Color is an RGB color with components in [0,1].
type Color struct {
	R, G, B float32
}

// Cloud is a set of colored points in world space.
type Cloud struct {
	Name      string
	Positions []math.Vec3
	Colors    []Color // Same length as Positions, or empty for a uniform color
}

// Len returns the number of points.
func (c *Cloud) Len() int {
	return len(c.Positions)
}

// Bounds returns the axis-aligned bounding box of the cloud.
// ok is false for an empty cloud.
func (c *Cloud) Bounds() (min, max math.Vec3, ok bool) {
	if len(c.Positions) == 0 {
		return min, max, false
	}
	min = c.Positions[0]
	max = c.Positions[0]
	for _, p := range c.Positions[1:] {
		min.X = math32.Min(min.X, p.X)
		min.Y = math32.Min(min.Y, p.Y)
		min.Z = math32.Min(min.Z, p.Z)
		max.X = math32.Max(max.X, p.X)
		max.Y = math32.Max(max.Y, p.Y)
		max.Z = math32.Max(max.Z, p.Z)
	}
	return min, max, true
}

// Center returns the center of the bounding box.
func (c *Cloud) Center() math.Vec3 {
	min, max, ok := c.Bounds()
	if !ok {
		return math.Vec3{}
	}
	return min.Add(max).Scale(0.5)
}

// Interleaved returns position and color as x,y,z,r,g,b per point for upload
// to a vertex buffer. Points without a color use fallback.
func (c *Cloud) Interleaved(fallback Color) []float32 {
	out := make([]float32, 0, len(c.Positions)*6)
	for i, p := range c.Positions {
		col := fallback
		if i < len(c.Colors) {
			col = c.Colors[i]
		}
		out = append(out, p.X, p.Y, p.Z, col.R, col.G, col.B)
	}
	return out
}
