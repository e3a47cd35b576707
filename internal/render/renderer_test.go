package render_test

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"testing"

	"afptool/internal/afp"
	"afptool/internal/library"
	"afptool/internal/pipeline"
	"afptool/internal/render"
	"afptool/internal/testsupport"
	"afptool/internal/transform"
)

// indexCompositor stamps the frame index into the frame's first pixel so
// tests can verify ordering.
type indexCompositor struct{}

func (indexCompositor) Composite(_ context.Context, _ *afp.MovieClip, frame int, _ transform.Request, _ transform.Matrix) (image.Image, error) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: uint8(frame), A: 255})
	return img, nil
}

type failingCompositor struct {
	failAt int
}

func (c failingCompositor) Composite(_ context.Context, _ *afp.MovieClip, frame int, _ transform.Request, _ transform.Matrix) (image.Image, error) {
	if frame == c.failAt {
		return nil, fmt.Errorf("composite frame %d: boom", frame)
	}
	return image.NewNRGBA(image.Rect(0, 0, 1, 1)), nil
}

func namespaceWithClip(frames int) *library.Namespace {
	ns := library.NewNamespace()
	ns.AddClip("movie", testsupport.Clip("movie", frames, nil))
	return ns
}

func frameIndex(img image.Image) int {
	r, _, _, _ := img.At(img.Bounds().Min.X, img.Bounds().Min.Y).RGBA()
	return int(r >> 8)
}

func TestRenderPathUnknownClip(t *testing.T) {
	renderer := render.NewRenderer(library.NewNamespace(), indexCompositor{}, 1, nil)
	_, _, err := renderer.RenderPath(context.Background(), transform.Request{Path: "missing"})
	if !errors.Is(err, pipeline.ErrLookup) {
		t.Fatalf("expected lookup error, got %v", err)
	}
}

func TestRenderPathZeroFrames(t *testing.T) {
	renderer := render.NewRenderer(namespaceWithClip(0), indexCompositor{}, 1, nil)
	_, _, err := renderer.RenderPath(context.Background(), transform.Request{Path: "movie"})
	if !errors.Is(err, pipeline.ErrEmptyResult) {
		t.Fatalf("expected empty result error, got %v", err)
	}
}

func TestRenderPathSingleThreadedOrder(t *testing.T) {
	renderer := render.NewRenderer(namespaceWithClip(16), indexCompositor{}, 1, nil)
	frames, duration, err := renderer.RenderPath(context.Background(), transform.Request{Path: "movie"})
	if err != nil {
		t.Fatalf("RenderPath returned error: %v", err)
	}
	if duration <= 0 {
		t.Fatalf("expected positive duration, got %d", duration)
	}
	for i, frame := range frames {
		if frameIndex(frame) != i {
			t.Fatalf("frame %d out of order: stamped %d", i, frameIndex(frame))
		}
	}
}

func TestRenderPathParallelPreservesTimelineOrder(t *testing.T) {
	renderer := render.NewRenderer(namespaceWithClip(64), indexCompositor{}, 8, nil)
	frames, _, err := renderer.RenderPath(context.Background(), transform.Request{Path: "movie"})
	if err != nil {
		t.Fatalf("RenderPath returned error: %v", err)
	}
	if len(frames) != 64 {
		t.Fatalf("expected 64 frames, got %d", len(frames))
	}
	for i, frame := range frames {
		if frame == nil {
			t.Fatalf("frame %d missing", i)
		}
		if frameIndex(frame) != i {
			t.Fatalf("frame %d out of order: stamped %d", i, frameIndex(frame))
		}
	}
}

func TestRenderPathParallelPropagatesFirstError(t *testing.T) {
	renderer := render.NewRenderer(namespaceWithClip(32), failingCompositor{failAt: 13}, 4, nil)
	_, _, err := renderer.RenderPath(context.Background(), transform.Request{Path: "movie"})
	if err == nil {
		t.Fatal("expected compositor error to propagate")
	}
}

func TestRenderPathUsesClipDuration(t *testing.T) {
	ns := library.NewNamespace()
	clip := testsupport.Clip("movie", 2, nil)
	clip.FrameDuration = 100
	ns.AddClip("movie", clip)

	renderer := render.NewRenderer(ns, indexCompositor{}, 1, nil)
	_, duration, err := renderer.RenderPath(context.Background(), transform.Request{Path: "movie"})
	if err != nil {
		t.Fatalf("RenderPath returned error: %v", err)
	}
	if duration != 100 {
		t.Fatalf("expected clip duration 100, got %d", duration)
	}
}

func TestFlatCompositorBackgroundAndPlacement(t *testing.T) {
	ns := library.NewNamespace()
	ns.AddTexture("sprite", testsupport.Solid(10, 10, color.NRGBA{G: 255, A: 255}))
	clip := testsupport.Clip("movie", 1, nil,
		afp.PlaceObjectTag{Depth: 1, Source: "sprite"},
	)
	ns.AddClip("movie", clip)

	background := color.NRGBA{R: 255, A: 255}
	compositor := render.NewFlatCompositor(ns)
	frame, err := compositor.Composite(context.Background(), clip, 0,
		transform.Request{Path: "movie", Background: &background}, transform.Matrix{A: 1, D: 1})
	if err != nil {
		t.Fatalf("Composite returned error: %v", err)
	}

	bounds := frame.Bounds()
	if bounds.Dx() != 100 || bounds.Dy() != 100 {
		t.Fatalf("expected 100x100 canvas from the clip location, got %dx%d", bounds.Dx(), bounds.Dy())
	}
	// Sprite covers the top-left 10x10; background shows elsewhere.
	_, g, _, _ := frame.At(2, 2).RGBA()
	if g>>8 != 255 {
		t.Fatalf("expected sprite pixel at (2,2), got green %d", g>>8)
	}
	r, _, _, _ := frame.At(50, 50).RGBA()
	if r>>8 != 255 {
		t.Fatalf("expected background pixel at (50,50), got red %d", r>>8)
	}
}

func TestFlatCompositorDepthFilter(t *testing.T) {
	ns := library.NewNamespace()
	ns.AddTexture("near", testsupport.Solid(10, 10, color.NRGBA{B: 255, A: 255}))
	ns.AddTexture("far", testsupport.Solid(10, 10, color.NRGBA{G: 255, A: 255}))
	clip := testsupport.Clip("movie", 1, nil,
		afp.PlaceObjectTag{Depth: 1, Source: "far"},
		afp.PlaceObjectTag{Depth: 5, Source: "near"},
	)
	ns.AddClip("movie", clip)

	compositor := render.NewFlatCompositor(ns)
	frame, err := compositor.Composite(context.Background(), clip, 0,
		transform.Request{Path: "movie", OnlyDepths: []int{1}}, transform.Matrix{A: 1, D: 1})
	if err != nil {
		t.Fatalf("Composite returned error: %v", err)
	}
	_, g, b, _ := frame.At(2, 2).RGBA()
	if g>>8 != 255 || b>>8 != 0 {
		t.Fatalf("depth filter should keep only depth 1, got g=%d b=%d", g>>8, b>>8)
	}
}
