package pointcloud

import "github.com/Faultbox/pcdview/pkg/math"

// CubeSlice generates layer z of an n*n*n lattice cube of the given edge size
// centered on the origin. Colors run from black to white along the diagonal.
func CubeSlice(n, z int, size float32) ([]math.Vec3, []Color) {
	if n < 1 || z < 0 || z >= n {
		return nil, nil
	}
	positions := make([]math.Vec3, 0, n*n)
	colors := make([]Color, 0, n*n)

	step := float32(0)
	if n > 1 {
		step = 1 / float32(n-1)
	}
	fz := float32(z) * step
	for y := 0; y < n; y++ {
		fy := float32(y) * step
		for x := 0; x < n; x++ {
			fx := float32(x) * step
			positions = append(positions, math.Vec3{
				X: (fx - 0.5) * size,
				Y: (fy - 0.5) * size,
				Z: (fz - 0.5) * size,
			})
			colors = append(colors, Color{R: fx, G: fy, B: fz})
		}
	}
	return positions, colors
}

// Cube generates a complete n*n*n lattice cube.
func Cube(n int, size float32) *Cloud {
	c := &Cloud{Name: "cube"}
	for z := 0; z < n; z++ {
		p, col := CubeSlice(n, z, size)
		c.Positions = append(c.Positions, p...)
		c.Colors = append(c.Colors, col...)
	}
	return c
}
