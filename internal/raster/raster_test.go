package raster

import (
	"math"
	"testing"

	"pointcloud-renderer/internal/mathutil"
	"pointcloud-renderer/internal/pointcloud"
)

func testMVP() mathutil.Mat4 {
	proj := mathutil.Mat4Frustum(-1, 1, -0.75, 0.75, 5, 200)
	return mathutil.Mat4Mul(proj, mathutil.Mat4Translation(0, 0, -100))
}

func pixel(fb *FrameBuffer, x, y int) [4]uint8 {
	i := (y*fb.Width + x) * 4
	return [4]uint8{fb.Color[i], fb.Color[i+1], fb.Color[i+2], fb.Color[i+3]}
}

func TestNewFrameBufferCleared(t *testing.T) {
	fb := NewFrameBuffer(4, 3)
	if len(fb.Color) != 4*3*4 || len(fb.Depth) != 12 {
		t.Fatalf("buffer sizes %d %d", len(fb.Color), len(fb.Depth))
	}
	for _, d := range fb.Depth {
		if !math.IsInf(float64(d), 1) {
			t.Fatalf("depth not cleared: %v", d)
		}
	}
	fb.Clear(1, 2, 3, 4)
	if p := pixel(fb, 3, 2); p != [4]uint8{1, 2, 3, 4} {
		t.Fatalf("clear color = %v", p)
	}
}

func TestDrawPointCenter(t *testing.T) {
	fb := NewFrameBuffer(64, 48)
	verts := []pointcloud.Vertex{{0, 0, 0, 1, 0, 0}}
	if n := DrawPoints(fb, verts, testMVP(), 4); n != 1 {
		t.Fatalf("drawn = %d", n)
	}
	// 4×4 sprite centered on (32, 24) covers pixels 30..33.
	for y := 22; y <= 25; y++ {
		for x := 30; x <= 33; x++ {
			if p := pixel(fb, x, y); p != [4]uint8{255, 0, 0, 255} {
				t.Fatalf("pixel (%d,%d) = %v", x, y, p)
			}
		}
	}
	if p := pixel(fb, 29, 24); p[3] != 0 {
		t.Fatalf("pixel outside sprite was written: %v", p)
	}
	if p := pixel(fb, 34, 24); p[3] != 0 {
		t.Fatalf("pixel outside sprite was written: %v", p)
	}
}

func TestDrawPointsDepthTest(t *testing.T) {
	far := pointcloud.Vertex{0, 0, 0, 1, 0, 0}
	near := pointcloud.Vertex{0, 0, 10, 0, 1, 0}
	for _, order := range [][]pointcloud.Vertex{{far, near}, {near, far}} {
		fb := NewFrameBuffer(64, 48)
		DrawPoints(fb, order, testMVP(), 2)
		if p := pixel(fb, 32, 24); p != [4]uint8{0, 255, 0, 255} {
			t.Fatalf("nearer point lost the depth test: %v", p)
		}
	}
}

func TestDrawPointsUpIsUp(t *testing.T) {
	fb := NewFrameBuffer(64, 48)
	DrawPoints(fb, []pointcloud.Vertex{{0, 10, 0, 1, 1, 1}}, testMVP(), 1)
	top := false
	for y := 0; y < 24; y++ {
		if pixel(fb, 32, y)[3] != 0 {
			top = true
		}
	}
	if !top {
		t.Fatal("point above the axis was not drawn in the upper half")
	}
}

func TestDrawPointsClipped(t *testing.T) {
	fb := NewFrameBuffer(64, 48)
	verts := []pointcloud.Vertex{
		{0, 0, 200, 1, 1, 1},  // behind the camera
		{0, 0, -500, 1, 1, 1}, // beyond the far plane
		{500, 0, 0, 1, 1, 1},  // off to the side
		{0, 0, 97, 1, 1, 1},   // in front of the near plane
	}
	if n := DrawPoints(fb, verts, testMVP(), 4); n != 0 {
		t.Fatalf("drawn = %d, want 0", n)
	}
	for i := 3; i < len(fb.Color); i += 4 {
		if fb.Color[i] != 0 {
			t.Fatal("clipped point wrote a pixel")
		}
	}
}

func TestDrawPointsEdgeSprite(t *testing.T) {
	fb := NewFrameBuffer(64, 48)
	// Right at the edge of the frustum: the sprite is cut by the buffer bounds.
	x := float32(19.9) // clip x = 5x, just inside w = 100
	if n := DrawPoints(fb, []pointcloud.Vertex{{x, 0, 0, 1, 1, 1}}, testMVP(), 6); n != 1 {
		t.Fatalf("drawn = %d", n)
	}
}

func TestRenderFrameSupersample(t *testing.T) {
	verts := []pointcloud.Vertex{{0, 0, 0, 0.5, 0.5, 0.5}}
	img, n := RenderFrame(verts, testMVP(), 32, 24, 2, 3)
	if n != 1 {
		t.Fatalf("drawn = %d", n)
	}
	if b := img.Bounds(); b.Dx() != 96 || b.Dy() != 72 {
		t.Fatalf("bounds = %v", b)
	}
	if c := img.NRGBAAt(48, 36); c.R != 128 || c.A != 255 {
		t.Fatalf("center = %v", c)
	}
}
