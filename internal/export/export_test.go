package export_test

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"testing"

	"afptool/internal/export"
	"afptool/internal/pipeline"
	"afptool/internal/testsupport"
)

func frames(n int) []image.Image {
	out := make([]image.Image, n)
	for i := range out {
		out[i] = testsupport.Solid(4, 4, color.NRGBA{R: uint8(i), A: 255})
	}
	return out
}

func TestFormatFromTarget(t *testing.T) {
	cases := []struct {
		target string
		want   export.Format
	}{
		{"out.gif", export.GIF},
		{"OUT.GIF", export.GIF},
		{"anim.webp", export.WEBP},
		{"frame.png", export.PNG},
	}
	for _, tc := range cases {
		got, err := export.FormatFromTarget(tc.target)
		if err != nil {
			t.Fatalf("FormatFromTarget(%q) returned error: %v", tc.target, err)
		}
		if got != tc.want {
			t.Fatalf("FormatFromTarget(%q): got %v want %v", tc.target, got, tc.want)
		}
	}

	if _, err := export.FormatFromTarget("movie.avi"); !errors.Is(err, pipeline.ErrConfiguration) {
		t.Fatalf("expected configuration error for unknown extension, got %v", err)
	}
}

func TestNewPlanEmptyFramesFails(t *testing.T) {
	_, err := export.NewPlan(nil, 41, export.GIF, "out.gif")
	if !errors.Is(err, pipeline.ErrEmptyResult) {
		t.Fatalf("expected empty result error, got %v", err)
	}
}

func TestNewPlanMultiFrameSingleArtifact(t *testing.T) {
	plan, err := export.NewPlan(frames(12), 50, export.GIF, "out.gif")
	if err != nil {
		t.Fatalf("NewPlan returned error: %v", err)
	}
	if len(plan.Items) != 1 {
		t.Fatalf("expected one artifact, got %d", len(plan.Items))
	}
	if plan.Items[0].Target != "out.gif" {
		t.Fatalf("unexpected target %q", plan.Items[0].Target)
	}
	if len(plan.Items[0].Frames) != 12 {
		t.Fatalf("expected all 12 frames in one artifact, got %d", len(plan.Items[0].Frames))
	}
	if plan.Duration != 50 {
		t.Fatalf("expected duration 50, got %d", plan.Duration)
	}
}

func TestNewPlanPerFramePadding(t *testing.T) {
	cases := []struct {
		frames int
		first  string
		last   string
	}{
		{12, "out-00.png", "out-11.png"},
		{5, "out-0.png", "out-4.png"},
		{10, "out-00.png", "out-09.png"},
		{100, "out-000.png", "out-099.png"},
		{1, "out-0.png", "out-0.png"},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%d frames", tc.frames), func(t *testing.T) {
			plan, err := export.NewPlan(frames(tc.frames), 41, export.PNG, "out.png")
			if err != nil {
				t.Fatalf("NewPlan returned error: %v", err)
			}
			if len(plan.Items) != tc.frames {
				t.Fatalf("expected %d artifacts, got %d", tc.frames, len(plan.Items))
			}
			if plan.Items[0].Target != tc.first {
				t.Fatalf("first artifact: got %q want %q", plan.Items[0].Target, tc.first)
			}
			if plan.Items[len(plan.Items)-1].Target != tc.last {
				t.Fatalf("last artifact: got %q want %q", plan.Items[len(plan.Items)-1].Target, tc.last)
			}
		})
	}
}

func TestWriterWritesGIFAndPNG(t *testing.T) {
	dir := t.TempDir()

	gifPlan, err := export.NewPlan(frames(3), 41, export.GIF, filepath.Join(dir, "anim.gif"))
	if err != nil {
		t.Fatalf("NewPlan returned error: %v", err)
	}
	if err := export.NewWriter(nil, nil).Write(gifPlan); err != nil {
		t.Fatalf("Write gif returned error: %v", err)
	}
	if info, err := os.Stat(filepath.Join(dir, "anim.gif")); err != nil || info.Size() == 0 {
		t.Fatalf("expected non-empty gif: %v", err)
	}

	pngPlan, err := export.NewPlan(frames(3), 41, export.PNG, filepath.Join(dir, "frame.png"))
	if err != nil {
		t.Fatalf("NewPlan returned error: %v", err)
	}
	if err := export.NewWriter(nil, nil).Write(pngPlan); err != nil {
		t.Fatalf("Write png returned error: %v", err)
	}
	for _, name := range []string{"frame-0.png", "frame-1.png", "frame-2.png"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("expected %s: %v", name, err)
		}
	}
}

func TestWriterEnsureFormat(t *testing.T) {
	bare := export.NewWriter(nil, nil)
	if err := bare.EnsureFormat(export.GIF); err != nil {
		t.Fatalf("GIF should always be writable: %v", err)
	}
	if err := bare.EnsureFormat(export.PNG); err != nil {
		t.Fatalf("PNG should always be writable: %v", err)
	}
	if err := bare.EnsureFormat(export.WEBP); !errors.Is(err, pipeline.ErrUnsupportedAsset) {
		t.Fatalf("expected unsupported asset error without encoder, got %v", err)
	}

	encoding := export.NewWriter(func(w io.Writer, frames []image.Image, duration int) error {
		return nil
	}, nil)
	if err := encoding.EnsureFormat(export.WEBP); err != nil {
		t.Fatalf("WEBP should be writable with an encoder: %v", err)
	}
}

func TestWriterWEBPNeedsEncoder(t *testing.T) {
	plan, err := export.NewPlan(frames(2), 41, export.WEBP, filepath.Join(t.TempDir(), "anim.webp"))
	if err != nil {
		t.Fatalf("NewPlan returned error: %v", err)
	}
	err = export.NewWriter(nil, nil).Write(plan)
	if !errors.Is(err, pipeline.ErrUnsupportedAsset) {
		t.Fatalf("expected unsupported asset error without encoder, got %v", err)
	}
}
