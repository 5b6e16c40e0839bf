package softx

import (
	"github.com/NSDeathman/softx/raster"
	"github.com/NSDeathman/softx/shader"
	"github.com/NSDeathman/softx/target"
)

// FillMode selects how a draw call's triangles are rasterized.
type FillMode int

const (
	// FillSolid rasterizes filled triangles (the only mode that can run
	// tiled and in parallel).
	FillSolid FillMode = iota
	// FillWireframe draws each triangle as three lines.
	FillWireframe
	// FillPoint draws one point per unique vertex.
	FillPoint
)

const defaultTileSize = 64

// DeviceContext is an immutable-per-draw snapshot of pipeline state: the
// shader pair, buffer bindings, render target, and rasterizer state a
// DrawIndexed call reads. It is a plain value type, copied into a Device's
// current context by the Set* calls below and validated fresh before every
// draw — grounded on the original's DeviceContext, which likewise holds
// this state as a flat value struct rather than behind an interface.
type DeviceContext struct {
	VertexShader   shader.VertexShaderFunc
	PixelShader    shader.PixelShaderFunc
	VertexBuffer   []shader.VertexInput
	IndexBuffer    []uint32
	ConstantBuffer shader.ConstantBuffer
	RenderTarget   target.ColorTarget

	CullMode raster.CullMode
	FillMode FillMode
	Viewport raster.Viewport

	TiledRendering bool
	TileSize       int
}

// NewDeviceContext returns a context with the original source's defaults:
// back-face culling, solid fill, tiled rendering on with a 64-pixel tile.
func NewDeviceContext() DeviceContext {
	return DeviceContext{
		CullMode:       raster.CullBack,
		FillMode:       FillSolid,
		TiledRendering: true,
		TileSize:       defaultTileSize,
	}
}

// Validate checks every precondition a draw call depends on, accumulating
// every failure rather than returning on the first one. It returns nil
// when the context is ready to draw.
func (c *DeviceContext) Validate() *ValidationError {
	var err *ValidationError
	err = err.add(c.VertexShader == nil, "vertex shader is not set")
	err = err.add(c.PixelShader == nil, "pixel shader is not set")
	err = err.add(c.RenderTarget == nil, "render target is not set")
	err = err.add(len(c.VertexBuffer) == 0, "vertex buffer is empty")
	err = err.add(len(c.IndexBuffer) == 0, "index buffer is empty")
	err = err.add(c.RenderTarget != nil && (c.RenderTarget.Width() <= 0 || c.RenderTarget.Height() <= 0), "render target has zero or negative dimensions")
	err = err.add(c.Viewport.Width <= 0 || c.Viewport.Height <= 0, "viewport has zero or negative dimensions")
	err = err.add(c.TileSize <= 0, "tile size must be positive")
	return err
}
