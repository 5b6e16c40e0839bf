// Package shader defines the vertex and pixel data types and the callable
// shader signatures consumed by the rasterizer.
//
// There is no shader compiler here: shaders are caller-supplied Go functions.
// A vertex shader transforms a VertexInput into clip-space VertexOutput; a
// pixel shader reduces an interpolated VertexOutput (plus the constant
// buffer) to an RGBA color. Both must be pure with respect to their inputs
// and the constant buffer snapshot so they can be invoked from any worker
// goroutine without synchronization.
package shader
