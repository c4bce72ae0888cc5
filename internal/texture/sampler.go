package texture

import "image"

// SampleTexture returns the bilinearly filtered texel at (u, v). Coordinates
// wrap, so any real u and v are valid; tex must have its origin at (0, 0).
func SampleTexture(tex *image.NRGBA, u, v float64) (r, g, b, a uint8) {
	w := tex.Rect.Dx()
	h := tex.Rect.Dy()

	fx := wrap(u) * float64(w-1)
	fy := wrap(v) * float64(h-1)
	x0, y0 := int(fx), int(fy)
	x1, y1 := (x0+1)%w, (y0+1)%h
	dx, dy := fx-float64(x0), fy-float64(y0)

	i00 := tex.PixOffset(x0, y0)
	i10 := tex.PixOffset(x1, y0)
	i01 := tex.PixOffset(x0, y1)
	i11 := tex.PixOffset(x1, y1)

	var out [4]uint8
	for ch := 0; ch < 4; ch++ {
		top := float64(tex.Pix[i00+ch])*(1-dx) + float64(tex.Pix[i10+ch])*dx
		bot := float64(tex.Pix[i01+ch])*(1-dx) + float64(tex.Pix[i11+ch])*dx
		out[ch] = uint8(top*(1-dy) + bot*dy + 0.5)
	}
	return out[0], out[1], out[2], out[3]
}

// wrap maps t into [0, 1).
func wrap(t float64) float64 {
	t -= float64(int(t))
	if t < 0 {
		t++
	}
	return t
}
