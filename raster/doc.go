// Package raster implements the triangle rasterization kernel: clip-to-screen
// mapping, the edge-function coverage test, affine attribute interpolation,
// depth testing, and pixel-shader invocation. It provides a scalar
// per-pixel rasterizer and a 4-pixel-quad variant with identical output for
// in-range inputs.
//
// Interpolation is affine in screen space, not perspective-correct: this is
// a deliberate limitation, not an oversight. Near-plane clipping is likewise
// out of scope — callers must ensure every vertex reaching the rasterizer
// has a positive w at the vertex-shader stage.
package raster
