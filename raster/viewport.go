package raster

// Viewport maps normalized device coordinates (the clip-space result of the
// vertex shader, divided by w) onto a pixel rectangle of the color target
// and a depth range. Grounded on the original's ClipToScreen viewport
// transform (DeviceRasterization.cpp).
type Viewport struct {
	OriginX, OriginY float32
	Width, Height    float32
	MinZ, MaxZ       float32
}

// ClipToScreen maps a clip-space position (x, y, z, w) to screen space:
// x/y land on the viewport's pixel rectangle with y flipped (NDC +y is up,
// screen +y is down), z lands in [MinZ, MaxZ], and w is discarded — the
// returned position always carries w=1, since this core does not perform
// perspective-correct interpolation.
func (vp Viewport) ClipToScreen(clip [4]float32) [4]float32 {
	invW := float32(1)
	if clip[3] != 0 {
		invW = 1 / clip[3]
	}
	ndcX := clip[0] * invW
	ndcY := clip[1] * invW
	ndcZ := clip[2] * invW

	x := vp.OriginX + (ndcX*0.5+0.5)*vp.Width
	y := vp.OriginY + (1-(ndcY*0.5+0.5))*vp.Height
	z := vp.MinZ + ndcZ*(vp.MaxZ-vp.MinZ)

	return [4]float32{x, y, z, 1}
}
