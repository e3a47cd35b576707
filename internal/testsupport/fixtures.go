// Package testsupport provides fixture builders shared by pipeline tests.
package testsupport

import (
	"image"
	"image/color"

	"afptool/internal/afp"
)

// Code is a bytecode stub whose decompilation is its own text.
type Code string

// Decompile implements afp.Bytecode.
func (c Code) Decompile() string { return string(c) }

// Labels builds an insertion-ordered label table from name/frame pairs.
func Labels(pairs ...any) *afp.Labels {
	labels := afp.NewLabels()
	for i := 0; i+1 < len(pairs); i += 2 {
		labels.Set(pairs[i].(string), pairs[i+1].(int))
	}
	return labels
}

// Clip builds a movie clip with the given name, a default location box, and
// the supplied tags.
func Clip(name string, frames int, labels *afp.Labels, tags ...afp.Tag) *afp.MovieClip {
	clip := &afp.MovieClip{
		Name:     name,
		Labels:   labels,
		Tags:     tags,
		Location: afp.Rect{Right: 100, Bottom: 100},
	}
	for i := 0; i < frames; i++ {
		clip.Frames = append(clip.Frames, afp.Frame{})
	}
	return clip
}

// Solid returns a uniform-color image of the given size.
func Solid(width, height int, c color.NRGBA) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// Checker returns a two-color checkerboard, handy for verifying crops.
func Checker(width, height, cell int, a, b color.NRGBA) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if ((x/cell)+(y/cell))%2 == 0 {
				img.SetNRGBA(x, y, a)
			} else {
				img.SetNRGBA(x, y, b)
			}
		}
	}
	return img
}
