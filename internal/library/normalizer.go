package library

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"path"
	"strings"

	"afptool/internal/afp"
	"afptool/internal/imaging"
	"afptool/internal/logging"
	"afptool/internal/pipeline"
)

// Dirs names the directory prefixes of the flat-namespace container family.
// Paths always use forward slashes.
type Dirs struct {
	Geometry   string
	Texture    string
	Movie      string
	Descramble string
}

// DefaultDirs matches the layout the flat archives ship with.
func DefaultDirs() Dirs {
	return Dirs{
		Geometry:   "geo",
		Texture:    "tex",
		Movie:      "afp",
		Descramble: "afp/bsi",
	}
}

// ClipParser assembles a movie clip from a movie-data file and its matching
// descramble file. The byte-level parsing lives outside this pipeline.
type ClipParser func(name string, data, descramble []byte) (*afp.MovieClip, error)

// Normalizer ingests parsed containers of either family and populates a
// namespace.
type Normalizer struct {
	dirs  Dirs
	clips ClipParser
	log   *slog.Logger
}

// NewNormalizer builds a normalizer. parser may be nil when the caller never
// feeds flat-family containers; logger nil falls back to a no-op logger.
func NewNormalizer(dirs Dirs, parser ClipParser, logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Normalizer{dirs: dirs, clips: parser, log: logger.With(logging.FieldComponent, "normalizer")}
}

// BuildNamespace normalizes the given containers into a fresh namespace,
// strictly sequentially and in argument order: later registrations must be
// able to overwrite earlier ones.
func BuildNamespace(ctx context.Context, normalizer *Normalizer, containers ...afp.Container) (*Namespace, error) {
	ns := NewNamespace()
	for _, container := range containers {
		if err := normalizer.Normalize(ctx, container, ns); err != nil {
			return nil, err
		}
	}
	return ns, nil
}

// Normalize registers every asset of container into ns, best-effort per
// family. Structural faults (out-of-bounds indexes) abort this container;
// per-asset codec gaps are logged and skipped. A container matching neither
// family is skipped with a warning.
func (n *Normalizer) Normalize(ctx context.Context, container afp.Container, ns *Namespace) error {
	log := logging.WithContext(ctx, n.log).With("container", container.Source())
	switch c := container.(type) {
	case *afp.IndexedContainer:
		return n.normalizeIndexed(log, c, ns)
	case *afp.FileContainer:
		return n.normalizeFlat(log, c, ns)
	default:
		log.Warn("container matches no recognized family, skipping")
		return nil
	}
}

func (n *Normalizer) normalizeIndexed(log *slog.Logger, c *afp.IndexedContainer, ns *Namespace) error {
	for i, name := range c.ShapeNames {
		if i >= len(c.Shapes) {
			return pipeline.Wrap(pipeline.ErrLookup, "normalizer", "shapes",
				fmt.Sprintf("out of bounds shape %d in %s", i, c.Name), nil)
		}
		ns.AddShape(name, c.Shapes[i])
		log.Debug("registered shape", "name", name)
	}

	announced := make(map[string]bool)
	for i, name := range c.RegionNames {
		if i >= len(c.Regions) {
			return pipeline.Wrap(pipeline.ErrLookup, "normalizer", "regions",
				fmt.Sprintf("out of bounds region %d in %s", i, c.Name), nil)
		}
		region := c.Regions[i]
		if region.TextureIndex < 0 || region.TextureIndex >= len(c.TextureNames) {
			return pipeline.Wrap(pipeline.ErrLookup, "normalizer", "regions",
				fmt.Sprintf("region %s references texture %d of %d", name, region.TextureIndex, len(c.TextureNames)), nil)
		}
		sheetName := c.TextureNames[region.TextureIndex]
		sheet, ok := c.TextureByName(sheetName)
		if !ok {
			return pipeline.Wrap(pipeline.ErrLookup, "normalizer", "regions",
				fmt.Sprintf("region %s references missing texture %s", name, sheetName), nil)
		}
		if sheet.Image == nil {
			if !announced[sheetName] {
				log.Warn("cannot split texture, pixel format unsupported", "texture", sheetName)
				announced[sheetName] = true
			}
			continue
		}
		// Region coordinates are expressed at twice the sheet's logical
		// resolution.
		sprite := imaging.Crop(sheet.Image, image.Rect(
			region.Left/2, region.Top/2, region.Right/2, region.Bottom/2,
		))
		ns.AddTexture(name, sprite)
		log.Debug("registered texture region", "name", name, "texture", sheetName)
	}

	for i, name := range c.ClipNames {
		if i >= len(c.Clips) {
			return pipeline.Wrap(pipeline.ErrLookup, "normalizer", "clips",
				fmt.Sprintf("out of bounds movie clip %d in %s", i, c.Name), nil)
		}
		ns.AddClip(name, c.Clips[i])
		log.Debug("registered movie clip", "name", name)
	}
	return nil
}

func (n *Normalizer) normalizeFlat(log *slog.Logger, c *afp.FileContainer, ns *Namespace) error {
	geoPrefix := n.dirs.Geometry + "/"
	texPrefix := n.dirs.Texture + "/"
	moviePrefix := n.dirs.Movie + "/"
	descramblePrefix := n.dirs.Descramble + "/"

	for _, fname := range c.Paths() {
		switch {
		case strings.HasPrefix(fname, geoPrefix):
			data, err := c.ReadFile(fname)
			if err != nil {
				return pipeline.Wrap(pipeline.ErrLookup, "normalizer", "geometry", fname, err)
			}
			name := strings.TrimPrefix(fname, geoPrefix)
			ns.AddShape(name, afp.Shape{Name: name, Raw: data})
			log.Debug("registered shape", "name", name)

		case strings.HasPrefix(fname, texPrefix) && imaging.RecognizedExtension(fname):
			data, err := c.ReadFile(fname)
			if err != nil {
				return pipeline.Wrap(pipeline.ErrLookup, "normalizer", "textures", fname, err)
			}
			name := strings.TrimPrefix(fname, texPrefix)
			name = strings.TrimSuffix(name, path.Ext(name))
			img, err := imaging.Decode(fname, data)
			if err != nil {
				log.Warn("cannot decode texture, skipping", "name", name, "error", err)
				continue
			}
			ns.AddTexture(name, img)
			log.Debug("registered texture", "name", name)

		case strings.HasPrefix(fname, moviePrefix) && !strings.HasPrefix(fname, descramblePrefix):
			name := strings.TrimPrefix(fname, moviePrefix)
			descramblePath := descramblePrefix + name
			if !c.Has(descramblePath) {
				continue
			}
			if n.clips == nil {
				log.Warn("no movie-clip parser registered, skipping", "name", name)
				continue
			}
			data, err := c.ReadFile(fname)
			if err != nil {
				return pipeline.Wrap(pipeline.ErrLookup, "normalizer", "movies", fname, err)
			}
			descramble, err := c.ReadFile(descramblePath)
			if err != nil {
				return pipeline.Wrap(pipeline.ErrLookup, "normalizer", "movies", descramblePath, err)
			}
			clip, err := n.clips(name, data, descramble)
			if err != nil {
				return pipeline.Wrap(pipeline.ErrLookup, "normalizer", "movies",
					fmt.Sprintf("parse movie clip %s", name), err)
			}
			ns.AddClip(name, clip)
			log.Debug("registered movie clip", "name", name)
		}
	}
	return nil
}
