package imaging

import (
	"image/color"
	stdpalette "image/color/palette"
)

// palette returns the quantization palette with a transparent slot at index
// zero, so animated output keeps transparency instead of dithering it away.
func palette() color.Palette {
	p := make(color.Palette, 0, 256)
	p = append(p, color.NRGBA{})
	p = append(p, stdpalette.Plan9[:255]...)
	return p
}
