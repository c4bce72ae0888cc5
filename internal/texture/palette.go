package texture

import "image"

// Palette colours points by bilinearly sampling an image. It satisfies
// pointcloud.Palette.
type Palette struct {
	img *image.NRGBA
}

// NewPalette wraps an already decoded image.
func NewPalette(img *image.NRGBA) *Palette {
	return &Palette{img: img}
}

// LoadPalette reads an image file for use as a palette.
func LoadPalette(path string) (*Palette, error) {
	img, err := LoadTexture(path)
	if err != nil {
		return nil, err
	}
	return NewPalette(img), nil
}

// Color returns the RGB at (u, v) in [0,1]. Alpha is ignored.
func (p *Palette) Color(u, v float64) (r, g, b float32) {
	cr, cg, cb, _ := SampleTexture(p.img, u, v)
	return float32(cr) / 255, float32(cg) / 255, float32(cb) / 255
}
