package postprocess

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// hudColor is a dim green that stays legible over the point colours.
var hudColor = color.NRGBA{0x9f, 0xff, 0x9f, 0xff}

// DrawHUD writes lines of text into the top-left corner of img, in place.
func DrawHUD(img *image.NRGBA, lines []string) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(hudColor),
		Face: face,
	}
	lineHeight := face.Metrics().Height
	y := fixed.I(4) + face.Metrics().Ascent
	for _, line := range lines {
		d.Dot = fixed.Point26_6{X: fixed.I(4), Y: y}
		d.DrawString(line)
		y += lineHeight
	}
}
