// Package imaging adapts the pipeline to the raster codec surface it needs:
// decoding textures, cropping sheet regions, scaling composited frames,
// annotating overlay images, and preparing frames for paletted formats.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"path"
	"strings"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

// RecognizedExtension reports whether name carries an image extension the
// decoder understands.
func RecognizedExtension(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".png", ".webp":
		return true
	default:
		return false
	}
}

// Decode decodes texture bytes by extension. PNG and WEBP are supported;
// anything else is an error so callers can fall back to raw passthrough.
func Decode(name string, data []byte) (image.Image, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".png":
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decode png %s: %w", name, err)
		}
		return img, nil
	case ".webp":
		img, err := webp.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decode webp %s: %w", name, err)
		}
		return img, nil
	default:
		return nil, fmt.Errorf("decode %s: unrecognized image extension", name)
	}
}

// Crop copies the given rectangle out of img into an independent image, so
// the result does not pin the source sheet in memory.
func Crop(img image.Image, r image.Rectangle) image.Image {
	r = r.Intersect(img.Bounds())
	out := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(out, out.Bounds(), img, r.Min, draw.Src)
	return out
}

// Scale resamples img to the given pixel dimensions.
func Scale(img image.Image, width, height int) image.Image {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	out := image.NewNRGBA(image.Rect(0, 0, width, height))
	xdraw.ApproxBiLinear.Scale(out, out.Bounds(), img, img.Bounds(), xdraw.Over, nil)
	return out
}

// Fill returns a solid-color canvas of the given size.
func Fill(width, height int, c color.Color) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(out, out.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return out
}

// Palettize converts a frame to a paletted image as the GIF encoder
// requires, using Plan9 palette quantization.
func Palettize(img image.Image) *image.Paletted {
	if p, ok := img.(*image.Paletted); ok {
		return p
	}
	bounds := img.Bounds()
	out := image.NewPaletted(bounds, palette())
	draw.FloydSteinberg.Draw(out, bounds, img, bounds.Min)
	return out
}
