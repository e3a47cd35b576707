// Package transform plans the affine view matrix for a render request under
// scale and aspect-ratio constraints.
package transform

import (
	"fmt"
	"image/color"
	"math"

	"afptool/internal/pipeline"
)

// ratioTolerance is how far the natural ratio may drift from a forced ratio
// before any stretching happens.
const ratioTolerance = 1e-4

// Matrix is a 2x2 linear scale plus translation. Plans produced here carry no
// shear, rotation, or translation (B, C, TX, TY stay zero).
type Matrix struct {
	A, B, C, D float64
	TX, TY     float64
}

// Identity returns the no-op transform.
func Identity() Matrix {
	return Matrix{A: 1, D: 1}
}

// Size is a natural width/height pair in logical pixels.
type Size struct {
	Width  float64
	Height float64
}

// Ratio is a forced aspect ratio such as 16:9.
type Ratio struct {
	X float64
	Y float64
}

// Request carries the user-facing render constraints for one path.
type Request struct {
	Path        string
	ScaleWidth  float64
	ScaleHeight float64
	Aspect      *Ratio
	OnlyDepths  []int
	Background  *color.NRGBA
}

// Plan computes the final output dimensions for the given natural size and
// returns the matrix mapping natural space onto them.
//
// A forced aspect ratio always stretches, never shrinks, the one axis needed
// to reach the target ratio: the two candidate dimensions preserve the
// natural area, so exactly one of them exceeds its natural counterpart.
func Plan(natural Size, req Request) (Matrix, error) {
	if natural.Width <= 0 || natural.Height <= 0 {
		return Matrix{}, pipeline.Wrap(pipeline.ErrConfiguration, "transform", "plan",
			fmt.Sprintf("natural size %gx%g is not renderable", natural.Width, natural.Height), nil)
	}

	width := natural.Width
	height := natural.Height

	if req.Aspect != nil {
		rx, ry := req.Aspect.X, req.Aspect.Y
		if rx <= 0 || ry <= 0 {
			return Matrix{}, pipeline.Wrap(pipeline.ErrConfiguration, "transform", "plan",
				"aspect ratio terms must be positive", nil)
		}

		actualRatio := rx / ry
		naturalRatio := width / height

		if math.Abs(naturalRatio-actualRatio) > ratioTolerance {
			candidateW := actualRatio * height
			candidateH := width / actualRatio

			// candidateW*candidateH == width*height, so exactly one
			// candidate exceeds its natural axis. These two branches are
			// therefore unreachable; they guard the invariant, not input.
			if candidateW < width && candidateH < height {
				return Matrix{}, pipeline.Wrap(pipeline.ErrConfiguration, "transform", "plan",
					"impossible aspect ratio", nil)
			}
			if candidateW > width && candidateH > height {
				return Matrix{}, pipeline.Wrap(pipeline.ErrConfiguration, "transform", "plan",
					"impossible aspect ratio", nil)
			}

			if candidateW > width {
				width = candidateW
			} else {
				height = candidateH
			}
		}
	}

	scaleW := req.ScaleWidth
	if scaleW == 0 {
		scaleW = 1
	}
	scaleH := req.ScaleHeight
	if scaleH == 0 {
		scaleH = 1
	}
	width *= scaleW
	height *= scaleH

	return Matrix{
		A: width / natural.Width,
		D: height / natural.Height,
	}, nil
}
