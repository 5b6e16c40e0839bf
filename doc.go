// Package softx provides a single-threaded-API, internally-parallel CPU
// software rasterizer: a Device accepts shader callbacks, vertex/index
// buffers, and a render target, validates its pipeline state, and draws
// indexed triangle lists through a tiled, worker-pool-dispatched
// rasterization pipeline.
//
// # Quick Start
//
//	dev, err := softx.NewDevice(800, 600)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer dev.Close()
//	dev.SetVertexShader(shader.PassthroughVertexShader)
//	dev.SetPixelShader(shader.VertexColorPixelShader)
//	dev.SetVertexBuffer(vertices)
//	dev.SetIndexBuffer(indices)
//	dev.Clear([4]float32{0, 0, 0, 1})
//	dev.ClearDepth(1)
//	if err := dev.Draw(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Resource Lifecycle
//
// A Device owns a worker pool; call Close when done with it to join its
// goroutines. Render targets (target.Window, target.Texture) are plain
// values with no lifecycle of their own.
//
// # Scope
//
// This package rasterizes triangles, lines, and points into a color and
// depth buffer. It does not open a window, present to a display, decode
// texture files, or compile shaders: callers supply Go functions as
// shaders and hand the resulting pixels to whatever presenter they choose.
package softx
