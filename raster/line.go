package raster

import (
	"github.com/NSDeathman/softx/depthbuf"
	"github.com/NSDeathman/softx/shader"
	"github.com/NSDeathman/softx/target"
)

// depthTestAndWrite applies the standard closer-wins depth test at pixel
// (x, y) and writes color if it passes.
func depthTestAndWrite(x, y int, z float32, color [4]float32, tgt target.ColorTarget, depth *depthbuf.Buffer) {
	if x < 0 || x >= tgt.Width() || y < 0 || y >= tgt.Height() {
		return
	}
	idx := depth.Index(x, y)
	if z >= depth.At(idx) {
		return
	}
	tgt.SetPixel(x, y, color)
	depth.Set(idx, z)
}

// DrawPoint rasterizes a single screen-space vertex as one pixel, depth
// tested against depth. Grounded on DrawPoint in DeviceRasterization.cpp.
func DrawPoint(v shader.VertexOutput, color [4]float32, tgt target.ColorTarget, depth *depthbuf.Buffer) {
	x := int(v.Position[0])
	y := int(v.Position[1])
	depthTestAndWrite(x, y, v.Position[2], color, tgt, depth)
}

// DrawLine rasterizes the segment v0-v1 with an integer Bresenham walk,
// interpolating depth linearly along the step count and depth testing each
// plotted pixel. The final step always plots the v1 endpoint exactly.
// Grounded on DrawLine in DeviceRasterization.cpp.
func DrawLine(v0, v1 shader.VertexOutput, color [4]float32, tgt target.ColorTarget, depth *depthbuf.Buffer) {
	x0 := int(v0.Position[0])
	y0 := int(v0.Position[1])
	x1 := int(v1.Position[0])
	y1 := int(v1.Position[1])

	dx := x1 - x0
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y0
	if dy < 0 {
		dy = -dy
	}
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy

	steps := dx
	if dy > steps {
		steps = dy
	}
	if steps == 0 {
		depthTestAndWrite(x0, y0, v0.Position[2], color, tgt, depth)
		return
	}

	x, y := x0, y0
	for step := 0; ; step++ {
		t := float32(step) / float32(steps)
		z := v0.Position[2] + t*(v1.Position[2]-v0.Position[2])
		depthTestAndWrite(x, y, z, color, tgt, depth)

		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}
