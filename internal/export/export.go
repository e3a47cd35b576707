// Package export decides how a rendered frame sequence is laid out on disk
// and executes the resulting plan with the codec adapter.
package export

import (
	"fmt"
	"image"
	"math"
	"path/filepath"
	"strings"

	"afptool/internal/pipeline"
)

// Format is an output format family inferred from the target extension.
type Format int

const (
	// GIF writes one animated file holding every frame.
	GIF Format = iota
	// WEBP writes one animated file holding every frame.
	WEBP
	// PNG writes one file per frame.
	PNG
)

// String returns the canonical format name.
func (f Format) String() string {
	switch f {
	case GIF:
		return "GIF"
	case WEBP:
		return "WEBP"
	case PNG:
		return "PNG"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// MultiFrame reports whether one artifact can hold the whole animation.
func (f Format) MultiFrame() bool {
	return f == GIF || f == WEBP
}

// FormatFromTarget infers the output format from the target's extension.
func FormatFromTarget(target string) (Format, error) {
	switch strings.ToLower(filepath.Ext(target)) {
	case ".gif":
		return GIF, nil
	case ".webp":
		return WEBP, nil
	case ".png":
		return PNG, nil
	default:
		return 0, pipeline.Wrap(pipeline.ErrConfiguration, "export", "format",
			fmt.Sprintf("unrecognized file extension for output %q", target), nil)
	}
}

// Artifact is one file the plan will produce, holding one or more frames in
// timeline order.
type Artifact struct {
	Target string
	Frames []image.Image
}

// Plan is the decided output layout for a rendered frame sequence.
type Plan struct {
	Format   Format
	Duration int // milliseconds per frame
	Items    []Artifact
}

// NewPlan lays out frames for the given format and target path. Multi-frame
// formats produce a single artifact; single-frame formats produce one
// artifact per frame, the base name suffixed with the frame's zero-padded
// sequential index.
func NewPlan(frames []image.Image, duration int, format Format, target string) (Plan, error) {
	if len(frames) == 0 {
		return Plan{}, pipeline.Wrap(pipeline.ErrEmptyResult, "export", "plan",
			"did not render any frames", nil)
	}

	plan := Plan{Format: format, Duration: duration}
	if format.MultiFrame() {
		plan.Items = []Artifact{{Target: target, Frames: frames}}
		return plan, nil
	}

	ext := filepath.Ext(target)
	base := strings.TrimSuffix(target, ext)
	digits := int(math.Log10(float64(len(frames)))) + 1

	plan.Items = make([]Artifact, 0, len(frames))
	for i, frame := range frames {
		name := fmt.Sprintf("%s-%0*d%s", base, digits, i, ext)
		plan.Items = append(plan.Items, Artifact{Target: name, Frames: []image.Image{frame}})
	}
	return plan, nil
}
