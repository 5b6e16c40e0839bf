package softx

import (
	"fmt"
	"runtime"

	"github.com/NSDeathman/softx/depthbuf"
	"github.com/NSDeathman/softx/raster"
	"github.com/NSDeathman/softx/shader"
	"github.com/NSDeathman/softx/target"
	"github.com/NSDeathman/softx/tilepool"
)

// Device owns the resources a sequence of draw calls shares: a default
// back buffer and depth buffer, a worker pool for tiled rasterization, and
// the current DeviceContext that each Draw call validates and consumes.
// Grounded on the original's Device, which likewise bundles the default
// render targets and thread pool behind the same object that accepts draw
// calls (Device.cpp).
type Device struct {
	ctx DeviceContext

	backBuffer  *target.Window
	depthBuffer *depthbuf.Buffer
	pool        *tilepool.WorkerPool
	grid        *tilepool.TileGrid

	transformed []shader.VertexOutput
	processed   []bool
}

// NewDevice creates a device with a width x height back buffer and depth
// buffer, and a worker pool sized to runtime.NumCPU(). It returns
// ErrZeroDimension if width or height is not positive.
func NewDevice(width, height int) (*Device, error) {
	return NewDeviceWithWorkers(width, height, runtime.NumCPU())
}

// NewDeviceWithWorkers is NewDevice with an explicit worker pool size,
// overriding the runtime.NumCPU() default. Grounded on ParallelConfig,
// which likewise lets a caller override the default worker count. It
// returns ErrZeroDimension if width or height is not positive.
func NewDeviceWithWorkers(width, height, workers int) (*Device, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrZeroDimension
	}

	bb := target.NewWindow(width, height)
	db := depthbuf.New(width, height)

	ctx := NewDeviceContext()
	ctx.RenderTarget = bb
	ctx.Viewport = raster.Viewport{
		OriginX: 0, OriginY: 0,
		Width: float32(width), Height: float32(height),
		MinZ: 0, MaxZ: 1,
	}

	return &Device{
		ctx:         ctx,
		backBuffer:  bb,
		depthBuffer: db,
		pool:        tilepool.NewWorkerPool(workers),
	}, nil
}

// Close stops the device's worker pool, joining every worker goroutine.
// The device must not be used after Close.
func (d *Device) Close() {
	d.pool.Close()
}

// Context returns a copy of the device's current pipeline state.
func (d *Device) Context() DeviceContext { return d.ctx }

// BackBuffer returns the device's default window-backed render target.
func (d *Device) BackBuffer() *target.Window { return d.backBuffer }

// DepthBuffer returns the device's default depth buffer.
func (d *Device) DepthBuffer() *depthbuf.Buffer { return d.depthBuffer }

func (d *Device) SetVertexShader(vs shader.VertexShaderFunc) { d.ctx.VertexShader = vs }
func (d *Device) SetPixelShader(ps shader.PixelShaderFunc)   { d.ctx.PixelShader = ps }
func (d *Device) SetVertexBuffer(vb []shader.VertexInput)    { d.ctx.VertexBuffer = vb }
func (d *Device) SetIndexBuffer(ib []uint32)                 { d.ctx.IndexBuffer = ib }
func (d *Device) SetConstantBuffer(cb shader.ConstantBuffer) { d.ctx.ConstantBuffer = cb }
func (d *Device) SetCullMode(m raster.CullMode)              { d.ctx.CullMode = m }
func (d *Device) SetFillMode(m FillMode)                     { d.ctx.FillMode = m }
func (d *Device) SetViewport(vp raster.Viewport)             { d.ctx.Viewport = vp }
func (d *Device) SetTiledRendering(enabled bool)             { d.ctx.TiledRendering = enabled }

// SetTileSize sets the tile edge length in pixels used by tiled rendering.
// It returns ErrInvalidTileSize and leaves the current tile size unchanged
// if n is not positive.
func (d *Device) SetTileSize(n int) error {
	if n <= 0 {
		return ErrInvalidTileSize
	}
	d.ctx.TileSize = n
	return nil
}

// SetRenderTarget binds rt as the render target draw calls write into. A
// nil rt is accepted here: Clear, DrawPoint, DrawLine and DrawFullScreenQuad
// then fall back to the device's default back buffer, while Draw and
// DrawIndexed fail validation until a render target is bound again.
func (d *Device) SetRenderTarget(rt target.ColorTarget) { d.ctx.RenderTarget = rt }

func (d *Device) renderTarget() target.ColorTarget {
	if d.ctx.RenderTarget != nil {
		return d.ctx.RenderTarget
	}
	return d.backBuffer
}

// Clear fills the current render target with color, falling back to the
// default back buffer when no render target is bound.
func (d *Device) Clear(color [4]float32) {
	d.renderTarget().Clear(color)
}

// ClearDepth resets every depth value to value (typically 1.0, the far
// plane).
func (d *Device) ClearDepth(value float32) {
	d.depthBuffer.Clear(value)
}

// DrawPoint runs the current vertex shader on v and plots the resulting
// screen-space pixel with color, depth tested against the device's depth
// buffer. Grounded on DrawPoint in DeviceRasterization.cpp.
func (d *Device) DrawPoint(v shader.VertexInput, color [4]float32) {
	out := d.ctx.VertexShader(v, d.ctx.ConstantBuffer)
	out.Position = d.ctx.Viewport.ClipToScreen(out.Position)
	raster.DrawPoint(out, color, d.renderTarget(), d.depthBuffer)
}

// DrawLine runs the current vertex shader on v0 and v1 and rasterizes the
// segment between their screen-space positions. Grounded on DrawLine in
// DeviceRasterization.cpp.
func (d *Device) DrawLine(v0, v1 shader.VertexInput, color [4]float32) {
	out0 := d.ctx.VertexShader(v0, d.ctx.ConstantBuffer)
	out0.Position = d.ctx.Viewport.ClipToScreen(out0.Position)
	out1 := d.ctx.VertexShader(v1, d.ctx.ConstantBuffer)
	out1.Position = d.ctx.Viewport.ClipToScreen(out1.Position)
	raster.DrawLine(out0, out1, color, d.renderTarget(), d.depthBuffer)
}

// DrawFullScreenQuad invokes ps once per pixel of the current render
// target, with Position at the pixel center and UV set to
// (x/(width-1), y/(height-1)) so that the corner pixels get UV 0 and 1,
// dispatched across the worker pool one task per tile. Useful for post-process or debug
// passes that need no vertex stage. Grounded on Device.cpp's
// DrawFullScreenQuad / renderTileQuad.
func (d *Device) DrawFullScreenQuad(ps shader.PixelShaderFunc) {
	rt := d.renderTarget()
	w, h := rt.Width(), rt.Height()

	tileSize := d.ctx.TileSize
	if tileSize <= 0 {
		tileSize = defaultTileSize
	}
	grid := tilepool.NewTileGrid(w, h, tileSize)

	maxX, maxY := float32(w-1), float32(h-1)
	if maxX <= 0 {
		maxX = 1
	}
	if maxY <= 0 {
		maxY = 1
	}

	for _, tile := range grid.Tiles() {
		bounds := tile.Bounds
		d.pool.Enqueue(func() {
			for y := bounds.MinY; y < bounds.MaxY; y++ {
				v := float32(y) / maxY
				for x := bounds.MinX; x < bounds.MaxX; x++ {
					u := float32(x) / maxX
					frag := shader.VertexOutput{
						Position: [4]float32{float32(x) + 0.5, float32(y) + 0.5, 0, 1},
						UV:       [2]float32{u, v},
					}
					rt.SetPixel(x, y, ps(frag, d.ctx.ConstantBuffer))
				}
			}
		})
	}
	d.pool.Wait()
}

// Draw rasterizes the device's entire bound index buffer, equivalent to
// DrawIndexed(len(IndexBuffer), 0).
func (d *Device) Draw() error {
	return d.DrawIndexed(uint32(len(d.ctx.IndexBuffer)), 0)
}

// DrawIndexed validates the current context and, if valid, runs the vertex
// shader once per unique vertex index in [startIndex, startIndex+indexCount),
// assembles triangles in groups of three (a trailing partial triple is
// dropped, as is any triple holding an index past the end of the vertex
// buffer), and rasterizes them according to the context's FillMode.
// Grounded step-by-step on the original's draw orchestration in Device.cpp.
func (d *Device) DrawIndexed(indexCount, startIndex uint32) error {
	if verr := d.ctx.Validate(); verr != nil {
		Logger().Warn("draw call skipped: invalid device context", "error", verr)
		return verr
	}

	ib := d.ctx.IndexBuffer
	end := uint64(startIndex) + uint64(indexCount)
	if end > uint64(len(ib)) {
		return fmt.Errorf("softx: index range [%d,%d) exceeds index buffer length %d", startIndex, end, len(ib))
	}

	vb := d.ctx.VertexBuffer
	if len(d.transformed) < len(vb) {
		d.transformed = make([]shader.VertexOutput, len(vb))
		d.processed = make([]bool, len(vb))
	} else {
		for i := range d.processed[:len(vb)] {
			d.processed[i] = false
		}
	}

	shaded := 0
	for i := startIndex; uint64(i) < end; i++ {
		vi := ib[i]
		if int(vi) >= len(vb) {
			continue
		}
		if d.processed[vi] {
			continue
		}
		out := d.ctx.VertexShader(vb[vi], d.ctx.ConstantBuffer)
		out.Position = d.ctx.Viewport.ClipToScreen(out.Position)
		d.transformed[vi] = out
		d.processed[vi] = true
		shaded++
	}

	var triangles [][3]uint32
	for i := startIndex; uint64(i)+3 <= end; i += 3 {
		if int(ib[i]) >= len(vb) || int(ib[i+1]) >= len(vb) || int(ib[i+2]) >= len(vb) {
			continue
		}
		triangles = append(triangles, [3]uint32{ib[i], ib[i+1], ib[i+2]})
	}

	rt := d.renderTarget()

	switch d.ctx.FillMode {
	case FillWireframe:
		white := [4]float32{1, 1, 1, 1}
		for _, tri := range triangles {
			v0, v1, v2 := d.transformed[tri[0]], d.transformed[tri[1]], d.transformed[tri[2]]
			raster.DrawLine(v0, v1, white, rt, d.depthBuffer)
			raster.DrawLine(v1, v2, white, rt, d.depthBuffer)
			raster.DrawLine(v2, v0, white, rt, d.depthBuffer)
		}
	case FillPoint:
		seen := make([]bool, len(vb))
		for i := startIndex; uint64(i) < end; i++ {
			vi := ib[i]
			if int(vi) >= len(vb) || seen[vi] {
				continue
			}
			seen[vi] = true
			v := d.transformed[vi]
			raster.DrawPoint(v, v.Color, rt, d.depthBuffer)
		}
	default: // FillSolid
		bounds := raster.Rect{MinX: 0, MinY: 0, MaxX: rt.Width(), MaxY: rt.Height()}
		if d.ctx.TiledRendering {
			d.drawTiled(triangles, bounds, rt)
		} else {
			for _, tri := range triangles {
				v0, v1, v2 := d.transformed[tri[0]], d.transformed[tri[1]], d.transformed[tri[2]]
				raster.RasterizeQuad(v0, v1, v2, bounds, rt, d.depthBuffer, d.ctx.PixelShader, d.ctx.ConstantBuffer, d.ctx.CullMode)
			}
		}
	}

	Logger().Debug("draw indexed", "vertices_shaded", shaded, "triangles", len(triangles))
	return nil
}

// drawTiled bins triangles into the device's tile grid and dispatches one
// rasterization task per non-empty tile across the worker pool, blocking
// until every tile finishes.
func (d *Device) drawTiled(triangles [][3]uint32, bounds raster.Rect, rt target.ColorTarget) {
	tileSize := d.ctx.TileSize
	if tileSize <= 0 {
		tileSize = defaultTileSize
	}
	wantCols := (bounds.MaxX + tileSize - 1) / tileSize
	if d.grid == nil || d.grid.TileSize() != tileSize || d.grid.Cols() != wantCols {
		d.grid = tilepool.NewTileGrid(bounds.MaxX, bounds.MaxY, tileSize)
	} else {
		d.grid.Reset()
	}

	for idx, tri := range triangles {
		v0, v1, v2 := d.transformed[tri[0]], d.transformed[tri[1]], d.transformed[tri[2]]
		bbox := raster.BoundingBox(v0, v1, v2, bounds)
		d.grid.Bin(idx, bbox)
	}

	for _, tile := range d.grid.Tiles() {
		if len(tile.Triangles) == 0 {
			continue
		}
		tileBounds := tile.Bounds
		tileTriangles := tile.Triangles
		d.pool.Enqueue(func() {
			for _, ti := range tileTriangles {
				tri := triangles[ti]
				v0, v1, v2 := d.transformed[tri[0]], d.transformed[tri[1]], d.transformed[tri[2]]
				raster.RasterizeQuad(v0, v1, v2, tileBounds, rt, d.depthBuffer, d.ctx.PixelShader, d.ctx.ConstantBuffer, d.ctx.CullMode)
			}
		})
	}
	d.pool.Wait()
}
