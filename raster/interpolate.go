package raster

// Affine (non-perspective-correct) barycentric interpolation. Weights
// w0, w1, w2 are assumed to already sum to 1 — the rasterizer computes them
// from normalized edge-function ratios. Adapted from
// InterpolateFloat32Linear/InterpolateVec2Linear/InterpolateVec4Linear,
// which is also the only mode this core offers: perspective-correct
// interpolation (dividing through by interpolated 1/w) is out of scope.

func interpolateFloat32(w0, w1, w2, a, b, c float32) float32 {
	return w0*a + w1*b + w2*c
}

func interpolateVec2(w0, w1, w2 float32, a, b, c [2]float32) [2]float32 {
	return [2]float32{
		w0*a[0] + w1*b[0] + w2*c[0],
		w0*a[1] + w1*b[1] + w2*c[1],
	}
}

func interpolateVec4(w0, w1, w2 float32, a, b, c [4]float32) [4]float32 {
	return [4]float32{
		w0*a[0] + w1*b[0] + w2*c[0],
		w0*a[1] + w1*b[1] + w2*c[1],
		w0*a[2] + w1*b[2] + w2*c[2],
		w0*a[3] + w1*b[3] + w2*c[3],
	}
}
