package raster

// Rect is a pixel-space rectangle, [MinX, MaxX) x [MinY, MaxY) (max
// exclusive). It bounds both a rasterizer's scissor region (the whole
// target, for non-tiled draws) and a single tile's coverage.
type Rect struct {
	MinX, MinY, MaxX, MaxY int
}

// Empty reports whether r covers no pixels.
func (r Rect) Empty() bool {
	return r.MaxX <= r.MinX || r.MaxY <= r.MinY
}

// Intersect returns the overlap of r and o. The result may be Empty.
func (r Rect) Intersect(o Rect) Rect {
	out := Rect{
		MinX: max(r.MinX, o.MinX),
		MinY: max(r.MinY, o.MinY),
		MaxX: min(r.MaxX, o.MaxX),
		MaxY: min(r.MaxY, o.MaxY),
	}
	return out
}
