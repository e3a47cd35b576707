package imaging

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// StrokeRect draws a one-pixel outline of r onto img, clamped to the canvas.
func StrokeRect(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		img.SetNRGBA(x, r.Min.Y, c)
		img.SetNRGBA(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.SetNRGBA(r.Min.X, y, c)
		img.SetNRGBA(r.Max.X-1, y, c)
	}
}

// DrawLabel renders label onto img with its top-left corner at pt.
func DrawLabel(img *image.NRGBA, pt image.Point, label string, c color.NRGBA) {
	face := basicfont.Face7x13
	drawer := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(pt.X),
			Y: fixed.I(pt.Y + face.Ascent),
		},
	}
	drawer.DrawString(label)
}
