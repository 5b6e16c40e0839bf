package tilepool

import "github.com/NSDeathman/softx/raster"

// Tile is one cell of a TileGrid: its pixel rectangle, plus the indices
// (into the caller's triangle list) of every triangle whose bounding box
// overlaps it. Grounded on the original's Tile struct (a rectangle plus a
// per-tile triangle index list) and hal/software/raster/tile.go.
type Tile struct {
	Bounds     raster.Rect
	Triangles  []int
}

// TileGrid partitions a width x height target into tileSize x tileSize
// tiles (the last row/column may be narrower or shorter than tileSize).
type TileGrid struct {
	tileSize int
	cols     int
	rows     int
	tiles    []Tile
}

// NewTileGrid builds an empty grid (no bound triangles yet) covering
// width x height pixels in tileSize x tileSize cells. cols = ceil(width /
// tileSize), rows = ceil(height / tileSize).
func NewTileGrid(width, height, tileSize int) *TileGrid {
	cols := (width + tileSize - 1) / tileSize
	rows := (height + tileSize - 1) / tileSize

	g := &TileGrid{
		tileSize: tileSize,
		cols:     cols,
		rows:     rows,
		tiles:    make([]Tile, cols*rows),
	}
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			minX := col * tileSize
			minY := row * tileSize
			maxX := minX + tileSize
			if maxX > width {
				maxX = width
			}
			maxY := minY + tileSize
			if maxY > height {
				maxY = height
			}
			g.tiles[row*cols+col] = Tile{Bounds: raster.Rect{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}}
		}
	}
	return g
}

// Cols returns the number of tile columns.
func (g *TileGrid) Cols() int { return g.cols }

// Rows returns the number of tile rows.
func (g *TileGrid) Rows() int { return g.rows }

// TileSize returns the nominal (pre-clamp) tile edge length.
func (g *TileGrid) TileSize() int { return g.tileSize }

// Tiles returns every tile, including empty ones, in row-major order.
func (g *TileGrid) Tiles() []Tile {
	return g.tiles
}

// TileAt returns the tile at grid column/row (col, row).
func (g *TileGrid) TileAt(col, row int) *Tile {
	return &g.tiles[row*g.cols+col]
}

// Bin assigns triangle index i, whose screen-space bounding box is bbox,
// to every tile bbox overlaps. Single-threaded: called once per triangle
// from the draw call's main goroutine before worker dispatch, matching the
// original's single-threaded binning pass ahead of the parallel rasterize
// pass. An empty bbox (a triangle clipped entirely outside the target)
// overlaps no tile and is a no-op.
func (g *TileGrid) Bin(i int, bbox raster.Rect) {
	if bbox.Empty() {
		return
	}

	firstCol := bbox.MinX / g.tileSize
	lastCol := (bbox.MaxX - 1) / g.tileSize
	firstRow := bbox.MinY / g.tileSize
	lastRow := (bbox.MaxY - 1) / g.tileSize

	firstCol = clampInt(firstCol, 0, g.cols-1)
	lastCol = clampInt(lastCol, 0, g.cols-1)
	firstRow = clampInt(firstRow, 0, g.rows-1)
	lastRow = clampInt(lastRow, 0, g.rows-1)

	for row := firstRow; row <= lastRow; row++ {
		for col := firstCol; col <= lastCol; col++ {
			t := g.TileAt(col, row)
			t.Triangles = append(t.Triangles, i)
		}
	}
}

// Reset clears every tile's triangle list in place without reallocating
// the grid, for reuse across draw calls.
func (g *TileGrid) Reset() {
	for i := range g.tiles {
		g.tiles[i].Triangles = g.tiles[i].Triangles[:0]
	}
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
