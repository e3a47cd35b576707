package render

import (
	"context"
	"image"
	"log/slog"
	"sync"

	"afptool/internal/afp"
	"afptool/internal/library"
	"afptool/internal/logging"
	"afptool/internal/pipeline"
	"afptool/internal/transform"
)

// defaultFrameDuration is used when a clip does not declare its own timing,
// roughly 24 frames per second.
const defaultFrameDuration = 41

// Compositor produces one finished frame of a clip. Implementations must be
// safe for concurrent use; the renderer calls Composite from multiple
// workers.
type Compositor interface {
	Composite(ctx context.Context, clip *afp.MovieClip, frame int, req transform.Request, m transform.Matrix) (image.Image, error)
}

// Renderer drives frame production for paths in a namespace.
type Renderer struct {
	ns         *library.Namespace
	compositor Compositor
	workers    int
	log        *slog.Logger
}

// NewRenderer builds a renderer. workers <= 1 selects single-threaded mode.
func NewRenderer(ns *library.Namespace, compositor Compositor, workers int, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Renderer{
		ns:         ns,
		compositor: compositor,
		workers:    workers,
		log:        logger.With(logging.FieldComponent, "render"),
	}
}

// RenderPath composites every timeline frame of the clip registered under
// req.Path, in strict timeline order, and returns the frames plus the
// per-frame duration in milliseconds.
func (r *Renderer) RenderPath(ctx context.Context, req transform.Request) ([]image.Image, int, error) {
	clip, ok := r.ns.Clip(req.Path)
	if !ok {
		return nil, 0, pipeline.Wrap(pipeline.ErrLookup, "render", "path",
			"no movie clip registered under "+req.Path, nil)
	}

	natural := transform.Size{Width: clip.Location.Width(), Height: clip.Location.Height()}
	matrix, err := transform.Plan(natural, req)
	if err != nil {
		return nil, 0, err
	}

	total := clip.FrameCount()
	if total == 0 {
		return nil, 0, pipeline.Wrap(pipeline.ErrEmptyResult, "render", "path",
			"clip "+req.Path+" has no frames", nil)
	}

	log := logging.WithContext(ctx, r.log)
	log.Info("rendering", "path", req.Path, "frames", total, "workers", r.workers)

	frames := make([]image.Image, total)
	if r.workers <= 1 {
		for i := 0; i < total; i++ {
			frame, err := r.compositor.Composite(ctx, clip, i, req, matrix)
			if err != nil {
				return nil, 0, err
			}
			frames[i] = frame
		}
	} else if err := r.renderParallel(ctx, clip, req, matrix, frames); err != nil {
		return nil, 0, err
	}

	duration := clip.FrameDuration
	if duration <= 0 {
		duration = defaultFrameDuration
	}
	return frames, duration, nil
}

// renderParallel distributes frame indexes across workers. Each worker
// writes into its frame's slot, so reassembly needs no sorting step.
func (r *Renderer) renderParallel(ctx context.Context, clip *afp.MovieClip, req transform.Request, m transform.Matrix, frames []image.Image) error {
	jobs := make(chan int)
	var wg sync.WaitGroup
	var once sync.Once
	var firstErr error

	for w := 0; w < r.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				frame, err := r.compositor.Composite(ctx, clip, i, req, m)
				if err != nil {
					once.Do(func() { firstErr = err })
					continue
				}
				frames[i] = frame
			}
		}()
	}

	for i := range frames {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return firstErr
}
