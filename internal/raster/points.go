package raster

import (
	"math"

	"golang.org/x/image/math/f32"

	"pointcloud-renderer/internal/mathutil"
	"pointcloud-renderer/internal/pointcloud"
)

// DrawPoints rasterizes each vertex as a size×size square sprite, the way
// GL draws GL_POINTS with a fixed gl_PointSize. Points are clipped on their
// center against the clip volume; survivors go through the perspective
// divide and viewport transform and are depth tested with GL_LESS.
//
// Returns the number of points that passed clipping.
//
// This is the HOT PATH — no allocation in the loop.
func DrawPoints(fb *FrameBuffer, verts []pointcloud.Vertex, mvp mathutil.Mat4, size int) int {
	if size < 1 {
		size = 1
	}
	w := float32(fb.Width)
	h := float32(fb.Height)
	half := float32(size) / 2
	drawn := 0

	for i := range verts {
		v := &verts[i]
		clip := mvp.MulPoint(f32.Vec3{v[0], v[1], v[2]})
		cw := clip[3]
		if cw <= 0 {
			continue
		}
		if clip[0] < -cw || clip[0] > cw || clip[1] < -cw || clip[1] > cw || clip[2] < -cw || clip[2] > cw {
			continue
		}
		drawn++

		inv := 1 / cw
		sx := (clip[0]*inv + 1) * 0.5 * w
		sy := (1 - clip[1]*inv) * 0.5 * h
		z := (clip[2]*inv + 1) * 0.5

		// Pixel centers inside the sprite square.
		x0 := int(math.Floor(float64(sx - half + 0.5)))
		y0 := int(math.Floor(float64(sy - half + 0.5)))
		x1 := x0 + size
		y1 := y0 + size
		if x0 < 0 {
			x0 = 0
		}
		if y0 < 0 {
			y0 = 0
		}
		if x1 > fb.Width {
			x1 = fb.Width
		}
		if y1 > fb.Height {
			y1 = fb.Height
		}

		r := clamp255(v[3] * 255)
		g := clamp255(v[4] * 255)
		b := clamp255(v[5] * 255)

		for py := y0; py < y1; py++ {
			row := py * fb.Width
			for px := x0; px < x1; px++ {
				idx := row + px
				if z >= fb.Depth[idx] {
					continue
				}
				fb.Depth[idx] = z
				c := idx * 4
				fb.Color[c] = r
				fb.Color[c+1] = g
				fb.Color[c+2] = b
				fb.Color[c+3] = 255
			}
		}
	}
	return drawn
}

func clamp255(v float32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
