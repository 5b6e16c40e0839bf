package raster

import (
	"github.com/NSDeathman/softx/depthbuf"
	"github.com/NSDeathman/softx/shader"
	"github.com/NSDeathman/softx/target"
)

// quadWidth is the number of pixels processed per inner-loop iteration.
const quadWidth = 4

// RasterizeQuad is the 4-pixel-wide variant of Rasterize: each row is
// walked in quadWidth-pixel blocks instead of one pixel at a time, with a
// scalar fringe for the last partial block. Every lane evaluates the exact
// same edge-function, depth-test, and interpolation formulas as Rasterize,
// so output is bit-identical to the scalar path for identical inputs —
// this is not a performance optimization in this pure-Go form, but a
// structural stand-in for the four-wide SSE lanes of
// RasterizeTriangleSSE in DeviceRasterization.cpp, which real hardware
// SIMD cannot be expressed as without assembly.
func RasterizeQuad(v0, v1, v2 shader.VertexOutput, bounds Rect, tgt target.ColorTarget, depth *depthbuf.Buffer, ps shader.PixelShaderFunc, cb shader.ConstantBuffer, cull CullMode) {
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
		for xBlock := bb.MinX; xBlock < bb.MaxX; xBlock += quadWidth {
			lanes := quadWidth
			if xBlock+lanes > bb.MaxX {
				lanes = bb.MaxX - xBlock
			}
			for lane := 0; lane < lanes; lane++ {
				x := xBlock + lane
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
}
