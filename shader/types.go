package shader

// VertexInput is the caller-supplied per-vertex data stored in the vertex
// buffer: an object-space position, an RGBA color, and a texture coordinate.
type VertexInput struct {
	Position [3]float32
	Color    [4]float32
	UV       [2]float32
}

// VertexOutput is produced by the vertex shader and, after the device's
// clip-to-screen mapping, also used as the pixel-shader input. Position is
// in clip space (x, y, z, w) coming out of the vertex shader, and in pixel
// space (x, y, z, 1) once the device has mapped it.
type VertexOutput struct {
	Position [4]float32
	Color    [4]float32
	UV       [2]float32
}

// ConstantBuffer is an opaque, caller-owned value passed by reference to
// every shader invocation in a draw. The device never interprets its
// contents; the caller must ensure its lifetime exceeds the draw call and
// that both shaders agree on how to read it.
type ConstantBuffer any

// VertexShaderFunc transforms a vertex from object space to clip space.
// Implementations must be pure functions of v and cb and must not capture
// mutable state. The device runs the vertex stage on the goroutine that
// issued the draw call.
type VertexShaderFunc func(v VertexInput, cb ConstantBuffer) VertexOutput

// PixelShaderFunc computes the final RGBA color for one fragment.
// Implementations must be pure functions of in and cb: the device invokes
// them concurrently from its worker goroutines.
type PixelShaderFunc func(in VertexOutput, cb ConstantBuffer) [4]float32
