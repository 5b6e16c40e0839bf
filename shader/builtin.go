package shader

import "github.com/go-gl/mathgl/mgl32"

// MVPUniforms is a ready-made constant buffer carrying a single
// model-view-projection matrix plus a uniform tint, built on mgl32.Mat4,
// the module's vector/matrix math dependency.
type MVPUniforms struct {
	MVP   mgl32.Mat4
	Color [4]float32
}

// MVPVertexShader transforms VertexInput.Position by uniforms.MVP and
// passes the vertex color through unchanged. Useful as a default vertex
// shader for callers that only need a single transform.
func MVPVertexShader(v VertexInput, cb ConstantBuffer) VertexOutput {
	u, ok := cb.(*MVPUniforms)
	if !ok {
		return PassthroughVertexShader(v, cb)
	}
	p := u.MVP.Mul4x1(mgl32.Vec4{v.Position[0], v.Position[1], v.Position[2], 1})
	return VertexOutput{
		Position: [4]float32{p[0], p[1], p[2], p[3]},
		Color:    v.Color,
		UV:       v.UV,
	}
}

// SolidColorPixelShader ignores the interpolated vertex color and returns
// uniforms.Color for every fragment.
func SolidColorPixelShader(_ VertexOutput, cb ConstantBuffer) [4]float32 {
	if u, ok := cb.(*MVPUniforms); ok {
		return u.Color
	}
	return [4]float32{1, 1, 1, 1}
}

// PassthroughVertexShader copies position straight into clip space with
// w = 1 and leaves color/uv untouched. Useful for rendering already
// screen-space or NDC geometry without a real transform.
func PassthroughVertexShader(v VertexInput, _ ConstantBuffer) VertexOutput {
	return VertexOutput{
		Position: [4]float32{v.Position[0], v.Position[1], v.Position[2], 1},
		Color:    v.Color,
		UV:       v.UV,
	}
}

// VertexColorPixelShader returns the interpolated per-vertex color
// unchanged. This is the shader used by the raster package's tests and the
// device's end-to-end tests.
func VertexColorPixelShader(in VertexOutput, _ ConstantBuffer) [4]float32 {
	return in.Color
}

// WhitePixelShader returns opaque white for every fragment, the same color
// the device's wireframe fill mode draws its lines in.
func WhitePixelShader(_ VertexOutput, _ ConstantBuffer) [4]float32 {
	return [4]float32{1, 1, 1, 1}
}

// UVPixelShader visualizes texture coordinates as a color, (u, v, 0, 1).
// Useful for debugging full-screen-quad passes.
func UVPixelShader(in VertexOutput, _ ConstantBuffer) [4]float32 {
	return [4]float32{in.UV[0], in.UV[1], 0, 1}
}
