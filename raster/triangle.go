package raster

import (
	"math"

	"github.com/NSDeathman/softx/depthbuf"
	"github.com/NSDeathman/softx/shader"
	"github.com/NSDeathman/softx/target"
)

// boundingBox returns the integer pixel bounding box covering the triangle
// (x0,y0)-(x1,y1)-(x2,y2), clamped into clip.
func boundingBox(x0, y0, x1, y1, x2, y2 float32, clip Rect) Rect {
	minXf := math.Floor(float64(min(x0, min(x1, x2))))
	minYf := math.Floor(float64(min(y0, min(y1, y2))))
	maxXf := math.Ceil(float64(max(x0, max(x1, x2))))
	maxYf := math.Ceil(float64(max(y0, max(y1, y2))))

	bb := Rect{
		MinX: int(minXf),
		MinY: int(minYf),
		MaxX: int(maxXf),
		MaxY: int(maxYf),
	}
	return bb.Intersect(clip)
}

// BoundingBox returns the integer pixel bounding box of the screen-space
// triangle v0-v1-v2, clamped to clip. Exported for the binning stage, which
// needs the same bounding box Rasterize computes internally to assign a
// triangle to every tile it overlaps.
func BoundingBox(v0, v1, v2 shader.VertexOutput, clip Rect) Rect {
	return boundingBox(v0.Position[0], v0.Position[1], v1.Position[0], v1.Position[1], v2.Position[0], v2.Position[1], clip)
}

// Rasterize fills the triangle v0-v1-v2 (already mapped to screen space by
// Viewport.ClipToScreen) into tgt and depth, restricted to bounds. bounds
// may be the whole target or a single tile's rectangle. The device's draw
// paths call RasterizeQuad, which applies the same per-pixel math; this
// scalar kernel is the reference it is tested against. Attribute
// interpolation is affine, not perspective-correct (package doc).
//
// Grounded on the edge-function inner loop of RasterizeTriangle in
// DeviceRasterization.cpp and the Rasterize in hal/software/raster/triangle.go,
// adapted to drop perspective division and the top-left fill-rule bias.
func Rasterize(v0, v1, v2 shader.VertexOutput, bounds Rect, tgt target.ColorTarget, depth *depthbuf.Buffer, ps shader.PixelShaderFunc, cb shader.ConstantBuffer, cull CullMode) {
	x0, y0 := v0.Position[0], v0.Position[1]
	x1, y1 := v1.Position[0], v1.Position[1]
	x2, y2 := v2.Position[0], v2.Position[1]

	area := edgeFunction(x0, y0, x1, y1, x2, y2)
	if shouldCull(area, cull) {
		return
	}
	invArea := 1 / area

	bb := boundingBox(x0, y0, x1, y1, x2, y2, bounds)
	if bb.Empty() {
		return
	}

	for y := bb.MinY; y < bb.MaxY; y++ {
		py := float32(y) + 0.5
		for x := bb.MinX; x < bb.MaxX; x++ {
			px := float32(x) + 0.5

			w0 := edgeFunction(x1, y1, x2, y2, px, py) * invArea
			w1 := edgeFunction(x2, y2, x0, y0, px, py) * invArea
			w2 := edgeFunction(x0, y0, x1, y1, px, py) * invArea
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			z := interpolateFloat32(w0, w1, w2, v0.Position[2], v1.Position[2], v2.Position[2])
			idx := depth.Index(x, y)
			if z >= depth.At(idx) {
				continue
			}

			color := interpolateVec4(w0, w1, w2, v0.Color, v1.Color, v2.Color)
			uv := interpolateVec2(w0, w1, w2, v0.UV, v1.UV, v2.UV)

			frag := shader.VertexOutput{
				Position: [4]float32{px, py, z, 1},
				Color:    color,
				UV:       uv,
			}
			out := ps(frag, cb)

			tgt.SetPixel(x, y, out)
			depth.Set(idx, z)
		}
	}
}
