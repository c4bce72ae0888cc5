package raster

import (
	"image"

	"pointcloud-renderer/internal/mathutil"
	"pointcloud-renderer/internal/pointcloud"
)

// RenderFrame draws verts with mvp into a fresh w×h buffer scaled by
// supersample, and returns the image with the number of points drawn.
// Point size scales with supersample so it is unchanged after downsampling.
func RenderFrame(verts []pointcloud.Vertex, mvp mathutil.Mat4, w, h, pointSize, supersample int) (*image.NRGBA, int) {
	if supersample < 1 {
		supersample = 1
	}
	fb := NewFrameBuffer(w*supersample, h*supersample)
	drawn := DrawPoints(fb, verts, mvp, pointSize*supersample)
	return fb.Image(), drawn
}
