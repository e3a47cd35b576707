package export

import (
	"fmt"
	"image"
	"image/gif"
	"image/png"
	"io"
	"log/slog"
	"os"

	"afptool/internal/imaging"
	"afptool/internal/logging"
	"afptool/internal/pipeline"
)

// WebPEncoder writes frames as an animated WEBP stream. No pure-Go encoder
// exists, so callers supply one; without it WEBP plans fail cleanly.
type WebPEncoder func(w io.Writer, frames []image.Image, duration int) error

// Writer executes export plans.
type Writer struct {
	webp WebPEncoder
	log  *slog.Logger
}

// NewWriter builds a writer. encoder may be nil when WEBP output is not
// needed; logger nil falls back to a no-op logger.
func NewWriter(encoder WebPEncoder, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Writer{webp: encoder, log: logger.With(logging.FieldComponent, "export")}
}

// EnsureFormat reports whether this writer can produce the given format, so
// callers can fail before rendering a single frame.
func (w *Writer) EnsureFormat(f Format) error {
	if f == WEBP && w.webp == nil {
		return pipeline.Wrap(pipeline.ErrUnsupportedAsset, "export", "write",
			"no WEBP encoder is registered", nil)
	}
	return nil
}

// Write produces every artifact of plan, preserving frame order.
func (w *Writer) Write(plan Plan) error {
	for _, item := range plan.Items {
		if err := w.writeArtifact(plan, item); err != nil {
			return err
		}
		if plan.Format.MultiFrame() {
			w.log.Info("wrote animation", "target", item.Target, "frames", len(item.Frames))
		} else {
			w.log.Info("wrote animation frame", "target", item.Target)
		}
	}
	return nil
}

func (w *Writer) writeArtifact(plan Plan, item Artifact) error {
	out, err := os.Create(item.Target)
	if err != nil {
		return fmt.Errorf("create %s: %w", item.Target, err)
	}
	defer out.Close()

	switch plan.Format {
	case GIF:
		if err := encodeGIF(out, item.Frames, plan.Duration); err != nil {
			return fmt.Errorf("encode %s: %w", item.Target, err)
		}
	case WEBP:
		if err := w.EnsureFormat(WEBP); err != nil {
			return err
		}
		if err := w.webp(out, item.Frames, plan.Duration); err != nil {
			return fmt.Errorf("encode %s: %w", item.Target, err)
		}
	case PNG:
		if err := png.Encode(out, item.Frames[0]); err != nil {
			return fmt.Errorf("encode %s: %w", item.Target, err)
		}
	default:
		return pipeline.Wrap(pipeline.ErrConfiguration, "export", "write",
			fmt.Sprintf("unsupported format %s", plan.Format), nil)
	}
	return out.Close()
}

func encodeGIF(w io.Writer, frames []image.Image, duration int) error {
	anim := &gif.GIF{}
	// GIF delays are in hundredths of a second.
	delay := duration / 10
	for _, frame := range frames {
		anim.Image = append(anim.Image, imaging.Palettize(frame))
		anim.Delay = append(anim.Delay, delay)
	}
	return gif.EncodeAll(w, anim)
}
