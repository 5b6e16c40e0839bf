package softx

import (
	"sync/atomic"
	"testing"

	"github.com/NSDeathman/softx/raster"
	"github.com/NSDeathman/softx/shader"
	"github.com/NSDeathman/softx/target"
)

func TestNewDeviceRejectsNonPositiveDimensions(t *testing.T) {
	cases := [][2]int{{0, 8}, {8, 0}, {-1, 8}, {8, -1}}
	for _, c := range cases {
		if _, err := NewDevice(c[0], c[1]); err != ErrZeroDimension {
			t.Errorf("NewDevice(%d, %d) error = %v, want ErrZeroDimension", c[0], c[1], err)
		}
	}
}

func TestDrawFullScreenQuadWritesEveryPixelOnce(t *testing.T) {
	dev, err := NewDevice(17, 13)
	if err != nil {
		t.Fatalf("NewDevice failed: %v", err)
	}
	defer dev.Close()

	var writes int32
	counting := func(in shader.VertexOutput, _ shader.ConstantBuffer) [4]float32 {
		atomic.AddInt32(&writes, 1)
		return [4]float32{in.UV[0], in.UV[1], 0, 1}
	}

	dev.Clear([4]float32{0, 0, 0, 1})
	dev.DrawFullScreenQuad(counting)

	if int(writes) != 17*13 {
		t.Errorf("full-screen quad invoked pixel shader %d times, want %d (every pixel exactly once)", writes, 17*13)
	}

	for y := 0; y < 13; y++ {
		for x := 0; x < 17; x++ {
			if dev.BackBuffer().GetPixel(x, y) == 0 {
				t.Fatalf("pixel (%d,%d) not written by full-screen quad", x, y)
			}
		}
	}

	corner := dev.BackBuffer().GetPixel(16, 12)
	want := target.PackBGRA([4]float32{1, 1, 0, 1})
	if corner != want {
		t.Errorf("bottom-right corner uv = 0x%08x, want (1,1)->0x%08x", corner, want)
	}
}

func TestNewDeviceWithWorkersOverridesPoolSize(t *testing.T) {
	dev, err := NewDeviceWithWorkers(4, 4, 2)
	if err != nil {
		t.Fatalf("NewDeviceWithWorkers failed: %v", err)
	}
	defer dev.Close()

	dev.SetVertexShader(shader.PassthroughVertexShader)
	dev.SetPixelShader(shader.VertexColorPixelShader)
	dev.SetVertexBuffer([]shader.VertexInput{{}, {}, {}})
	dev.SetIndexBuffer([]uint32{0, 1, 2})
	dev.Clear([4]float32{0, 0, 0, 1})
	dev.ClearDepth(1)
	if err := dev.Draw(); err != nil {
		t.Fatalf("Draw with a 2-worker pool failed: %v", err)
	}
}

func TestClearOnlyScenario(t *testing.T) {
	dev := newTestDevice(t, 4, 4)
	defer dev.Close()

	dev.Clear([4]float32{0.25, 0.5, 0.75, 1})

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got := dev.BackBuffer().GetPixel(x, y); got != 0xFF4080BF {
				t.Errorf("pixel (%d,%d) = 0x%08x, want 0xFF4080BF", x, y, got)
			}
		}
	}
}

func ndcFullScreenTriangle() ([]shader.VertexInput, []uint32) {
	verts := []shader.VertexInput{
		{Position: [3]float32{-1, -1, 0.5}, Color: [4]float32{1, 0, 0, 1}},
		{Position: [3]float32{3, -1, 0.5}, Color: [4]float32{0, 1, 0, 1}},
		{Position: [3]float32{-1, 3, 0.5}, Color: [4]float32{0, 0, 1, 1}},
	}
	return verts, []uint32{0, 1, 2}
}

// offscreenTriangle lies entirely to the left of the viewport; its
// screen-space bounding box is empty after clamping and must not be binned
// into any tile.
func offscreenTriangle() ([]shader.VertexInput, []uint32) {
	verts := []shader.VertexInput{
		{Position: [3]float32{-3, -1, 0.5}, Color: [4]float32{1, 0, 0, 1}},
		{Position: [3]float32{-2, -1, 0.5}, Color: [4]float32{1, 0, 0, 1}},
		{Position: [3]float32{-3, 1, 0.5}, Color: [4]float32{1, 0, 0, 1}},
	}
	return verts, []uint32{0, 1, 2}
}

func newTestDevice(t *testing.T, w, h int) *Device {
	t.Helper()
	dev, err := NewDevice(w, h)
	if err != nil {
		t.Fatalf("NewDevice(%d, %d) failed: %v", w, h, err)
	}
	dev.SetVertexShader(shader.PassthroughVertexShader)
	dev.SetPixelShader(shader.VertexColorPixelShader)
	dev.SetCullMode(raster.CullNone)
	return dev
}

func TestSingleTriangleCoversWholeTarget(t *testing.T) {
	dev := newTestDevice(t, 8, 8)
	defer dev.Close()
	verts, idx := ndcFullScreenTriangle()
	dev.SetVertexBuffer(verts)
	dev.SetIndexBuffer(idx)

	dev.Clear([4]float32{0, 0, 0, 1})
	dev.ClearDepth(1)
	if err := dev.Draw(); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if dev.BackBuffer().GetPixel(x, y) == 0 {
				t.Fatalf("pixel (%d,%d) not covered by full-screen triangle", x, y)
			}
		}
	}
}

func TestOffscreenTriangleTiledDrawWritesNothing(t *testing.T) {
	dev := newTestDevice(t, 16, 16)
	defer dev.Close()
	dev.SetTiledRendering(true)

	verts, idx := offscreenTriangle()
	dev.SetVertexBuffer(verts)
	dev.SetIndexBuffer(idx)
	dev.Clear([4]float32{0, 0, 0, 1})
	dev.ClearDepth(1)
	if err := dev.Draw(); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}

	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			if dev.BackBuffer().GetPixel(x, y) != 0 {
				t.Fatalf("pixel (%d,%d) written by a triangle with an empty on-screen bounding box", x, y)
			}
		}
	}
}

func TestDepthOcclusionTwoTriangles(t *testing.T) {
	dev := newTestDevice(t, 8, 8)
	defer dev.Close()

	verts := []shader.VertexInput{
		{Position: [3]float32{-1, -1, 0.9}, Color: [4]float32{0, 0, 1, 1}},
		{Position: [3]float32{3, -1, 0.9}, Color: [4]float32{0, 0, 1, 1}},
		{Position: [3]float32{-1, 3, 0.9}, Color: [4]float32{0, 0, 1, 1}},
		{Position: [3]float32{-1, -1, 0.1}, Color: [4]float32{1, 0, 0, 1}},
		{Position: [3]float32{3, -1, 0.1}, Color: [4]float32{1, 0, 0, 1}},
		{Position: [3]float32{-1, 3, 0.1}, Color: [4]float32{1, 0, 0, 1}},
	}
	// Far (blue) triangle drawn first, near (red) triangle second; red must win.
	dev.SetVertexBuffer(verts)
	dev.SetIndexBuffer([]uint32{0, 1, 2, 3, 4, 5})

	dev.Clear([4]float32{0, 0, 0, 1})
	dev.ClearDepth(1)
	if err := dev.Draw(); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}

	want := target.PackBGRA([4]float32{1, 0, 0, 1})
	if got := dev.BackBuffer().GetPixel(2, 2); got != want {
		t.Errorf("pixel (2,2) = 0x%08x, want red (nearer triangle) 0x%08x", got, want)
	}
}

func TestCullBackFaceScenario(t *testing.T) {
	dev := newTestDevice(t, 8, 8)
	defer dev.Close()
	dev.SetCullMode(raster.CullBack)

	verts, idx := ndcFullScreenTriangle()
	dev.SetVertexBuffer(verts)
	dev.SetIndexBuffer(idx)
	dev.Clear([4]float32{0, 0, 0, 1})
	dev.ClearDepth(1)
	dev.Draw()
	forwardCovered := dev.BackBuffer().GetPixel(4, 4) != 0

	dev2 := newTestDevice(t, 8, 8)
	defer dev2.Close()
	dev2.SetCullMode(raster.CullBack)
	reversed := []uint32{idx[0], idx[2], idx[1]}
	dev2.SetVertexBuffer(verts)
	dev2.SetIndexBuffer(reversed)
	dev2.Clear([4]float32{0, 0, 0, 1})
	dev2.ClearDepth(1)
	dev2.Draw()
	reverseCovered := dev2.BackBuffer().GetPixel(4, 4) != 0

	if forwardCovered == reverseCovered {
		t.Fatalf("cull-back-face must discard exactly one winding: forward=%v reverse=%v", forwardCovered, reverseCovered)
	}
}

func TestTiledVsNonTiledEquivalence(t *testing.T) {
	for _, tileSize := range []int{16, 64, 256} {
		verts, idx := ndcFullScreenTriangle()

		tiled := newTestDevice(t, 100, 80)
		tiled.SetTiledRendering(true)
		if err := tiled.SetTileSize(tileSize); err != nil {
			t.Fatalf("SetTileSize(%d) failed: %v", tileSize, err)
		}
		tiled.SetVertexBuffer(verts)
		tiled.SetIndexBuffer(idx)
		tiled.Clear([4]float32{0, 0, 0, 1})
		tiled.ClearDepth(1)
		if err := tiled.Draw(); err != nil {
			t.Fatalf("tileSize=%d: tiled draw failed: %v", tileSize, err)
		}

		flat := newTestDevice(t, 100, 80)
		flat.SetTiledRendering(false)
		flat.SetVertexBuffer(verts)
		flat.SetIndexBuffer(idx)
		flat.Clear([4]float32{0, 0, 0, 1})
		flat.ClearDepth(1)
		if err := flat.Draw(); err != nil {
			t.Fatalf("tileSize=%d: non-tiled draw failed: %v", tileSize, err)
		}

		for y := 0; y < 80; y++ {
			for x := 0; x < 100; x++ {
				tp := tiled.BackBuffer().GetPixel(x, y)
				fp := flat.BackBuffer().GetPixel(x, y)
				if tp != fp {
					t.Fatalf("tileSize=%d: pixel (%d,%d) tiled=0x%08x flat=0x%08x", tileSize, x, y, tp, fp)
				}
			}
		}

		tiled.Close()
		flat.Close()
	}
}

func TestSetTileSizeRejectsNonPositive(t *testing.T) {
	dev := newTestDevice(t, 4, 4)
	defer dev.Close()

	for _, n := range []int{0, -1, -64} {
		if err := dev.SetTileSize(n); err != ErrInvalidTileSize {
			t.Errorf("SetTileSize(%d) error = %v, want ErrInvalidTileSize", n, err)
		}
	}
}

func TestVertexShaderInvocationCount(t *testing.T) {
	var invocations int
	countingVS := func(v shader.VertexInput, cb shader.ConstantBuffer) shader.VertexOutput {
		invocations++
		return shader.PassthroughVertexShader(v, cb)
	}

	dev, err := NewDevice(16, 16)
	if err != nil {
		t.Fatalf("NewDevice failed: %v", err)
	}
	defer dev.Close()
	dev.SetVertexShader(countingVS)
	dev.SetPixelShader(shader.VertexColorPixelShader)
	dev.SetCullMode(raster.CullNone)

	verts := []shader.VertexInput{
		{Position: [3]float32{-0.5, -0.5, 0.5}},
		{Position: [3]float32{0.5, -0.5, 0.5}},
		{Position: [3]float32{-0.5, 0.5, 0.5}},
		{Position: [3]float32{0.5, 0.5, 0.5}},
	}
	dev.SetVertexBuffer(verts)
	dev.SetIndexBuffer([]uint32{0, 1, 2, 2, 1, 3, 0, 2, 3})
	dev.Clear([4]float32{0, 0, 0, 1})
	dev.ClearDepth(1)

	if err := dev.Draw(); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}

	if invocations != 4 {
		t.Errorf("vertex shader invoked %d times, want exactly 4 (once per unique index)", invocations)
	}
}

func TestDrawIndexedValidationAccumulatesFailures(t *testing.T) {
	dev, err := NewDevice(4, 4)
	if err != nil {
		t.Fatalf("NewDevice failed: %v", err)
	}
	defer dev.Close()

	drawErr := dev.Draw()
	if drawErr == nil {
		t.Fatal("expected validation error for an unconfigured context")
	}
	verr, ok := drawErr.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", drawErr)
	}
	if len(verr.Reasons) < 2 {
		t.Errorf("expected multiple accumulated validation reasons, got %v", verr.Reasons)
	}
}

func TestDrawIndexedValidationRejectsNonTiledZeroTileSize(t *testing.T) {
	dev := newTestDevice(t, 4, 4)
	defer dev.Close()
	dev.SetTiledRendering(false)
	dev.ctx.TileSize = 0

	verts, idx := ndcFullScreenTriangle()
	dev.SetVertexBuffer(verts)
	dev.SetIndexBuffer(idx)
	dev.ClearDepth(1)

	err := dev.Draw()
	if err == nil {
		t.Fatal("expected validation error for a zero tile size even with tiled rendering disabled")
	}
}

func TestWireframeFillModeDrawSucceeds(t *testing.T) {
	dev := newTestDevice(t, 16, 16)
	defer dev.Close()
	dev.SetFillMode(FillWireframe)

	verts, idx := ndcFullScreenTriangle()
	dev.SetVertexBuffer(verts)
	dev.SetIndexBuffer(idx)
	dev.Clear([4]float32{0, 0, 0, 1})
	dev.ClearDepth(1)

	if err := dev.Draw(); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
}

func TestPointFillModeDrawSucceeds(t *testing.T) {
	dev := newTestDevice(t, 16, 16)
	defer dev.Close()
	dev.SetFillMode(FillPoint)

	verts := []shader.VertexInput{
		{Position: [3]float32{0, 0, 0.5}, Color: [4]float32{1, 1, 1, 1}},
		{Position: [3]float32{0.5, 0.5, 0.5}, Color: [4]float32{1, 1, 1, 1}},
		{Position: [3]float32{-0.5, 0.5, 0.5}, Color: [4]float32{1, 1, 1, 1}},
	}
	dev.SetVertexBuffer(verts)
	dev.SetIndexBuffer([]uint32{0, 1, 2})
	dev.Clear([4]float32{0, 0, 0, 1})
	dev.ClearDepth(1)

	if err := dev.Draw(); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
}
