package render

import (
	"context"
	"image"
	"math"
	"sort"

	xdraw "golang.org/x/image/draw"

	"afptool/internal/afp"
	"afptool/internal/imaging"
	"afptool/internal/library"
	"afptool/internal/transform"
)

// FlatCompositor is a software compositor covering the common case: a clip
// whose placements reference textures registered in the namespace. It fills
// the requested background, then draws each placed texture in depth order
// under the planned transform. Clips that need the full display-list
// interpreter are handled by an external Compositor instead.
type FlatCompositor struct {
	ns *library.Namespace
}

// NewFlatCompositor builds a compositor over ns.
func NewFlatCompositor(ns *library.Namespace) *FlatCompositor {
	return &FlatCompositor{ns: ns}
}

// Composite implements Compositor.
func (c *FlatCompositor) Composite(_ context.Context, clip *afp.MovieClip, _ int, req transform.Request, m transform.Matrix) (image.Image, error) {
	width := int(math.Round(clip.Location.Width() * m.A))
	height := int(math.Round(clip.Location.Height() * m.D))
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	var canvas *image.NRGBA
	if req.Background != nil {
		canvas = imaging.Fill(width, height, *req.Background)
	} else {
		canvas = image.NewNRGBA(image.Rect(0, 0, width, height))
	}

	for _, placement := range c.placements(clip, req.OnlyDepths) {
		tex, ok := c.ns.Texture(placement.Source)
		if !ok {
			continue
		}
		bounds := tex.Bounds()
		dst := image.Rect(0, 0,
			int(math.Round(float64(bounds.Dx())*m.A)),
			int(math.Round(float64(bounds.Dy())*m.D)),
		)
		xdraw.ApproxBiLinear.Scale(canvas, dst, tex, bounds, xdraw.Over, nil)
	}

	if len(clip.Tags) == 0 {
		// Clips with no display list still render their base texture when
		// one is registered under the clip's own name.
		if tex, ok := c.ns.Texture(clip.Name); ok {
			xdraw.ApproxBiLinear.Scale(canvas, canvas.Bounds(), tex, tex.Bounds(), xdraw.Over, nil)
		}
	}

	return canvas, nil
}

// placements collects the clip's PlaceObject tags, filtered by depth and
// ordered back to front.
func (c *FlatCompositor) placements(clip *afp.MovieClip, onlyDepths []int) []afp.PlaceObjectTag {
	var allowed map[int]bool
	if len(onlyDepths) > 0 {
		allowed = make(map[int]bool, len(onlyDepths))
		for _, depth := range onlyDepths {
			allowed[depth] = true
		}
	}

	var out []afp.PlaceObjectTag
	for _, tag := range clip.Tags {
		place, ok := tag.(afp.PlaceObjectTag)
		if !ok || place.Source == "" {
			continue
		}
		if allowed != nil && !allowed[place.Depth] {
			continue
		}
		out = append(out, place)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Depth < out[j].Depth })
	return out
}
