// Package extract writes the contents of an indexed container out to a
// directory: decoded textures, raw sheets with metadata sidecars, per-region
// sprite crops, region mapping info, and flattened bytecode programs.
package extract

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"

	"afptool/internal/afp"
	"afptool/internal/flatten"
	"afptool/internal/imaging"
	"afptool/internal/logging"
	"afptool/internal/pipeline"
)

// Options selects which extraction outputs are produced.
type Options struct {
	// Pretend logs what would be written without writing anything.
	Pretend bool
	// WriteRaw always writes raw sheet bytes alongside decoded textures.
	WriteRaw bool
	// WriteMappings writes a YAML info sidecar per region.
	WriteMappings bool
	// SplitTextures writes each region crop as its own PNG.
	SplitTextures bool
	// WriteBytecode writes each movie clip's flattened program.
	WriteBytecode bool
	// WriteBinaries writes the undecoded movie, descramble, and shape bytes.
	WriteBinaries bool
	// GenerateOverlays writes a transparent PNG per sheet with each region
	// outlined and named.
	GenerateOverlays bool
}

// Extractor writes container contents to disk.
type Extractor struct {
	log *slog.Logger
}

// NewExtractor builds an extractor; logger nil falls back to a no-op logger.
func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Extractor{log: logger.With(logging.FieldComponent, "extract")}
}

// Extract writes the selected outputs of c under dir. The directory is
// created if needed and guarded with a file lock so concurrent extracts
// cannot interleave writes.
func (e *Extractor) Extract(ctx context.Context, c *afp.IndexedContainer, dir string, opts Options) error {
	if opts.SplitTextures && opts.WriteRaw {
		return pipeline.Wrap(pipeline.ErrConfiguration, "extract", "options",
			"cannot write raw textures when splitting sprites", nil)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure output directory: %w", err)
	}

	lock := flock.New(filepath.Join(dir, ".extract.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("lock output directory: %w", err)
	}
	if !locked {
		return fmt.Errorf("output directory %s is locked by another extract", dir)
	}
	defer lock.Unlock()

	log := logging.WithContext(ctx, e.log).With("container", c.Name)

	if !opts.SplitTextures {
		if err := e.writeTextures(log, c, dir, opts); err != nil {
			return err
		}
	} else if err := e.splitTextures(log, c, dir, opts); err != nil {
		return err
	}

	// Mapping info describes whole sheets; split output replaces those
	// sheets, so the two are mutually exclusive.
	if opts.WriteMappings && !opts.SplitTextures {
		if err := e.writeMappings(log, c, dir, opts); err != nil {
			return err
		}
	}

	if opts.GenerateOverlays {
		if err := e.writeOverlays(log, c, dir, opts); err != nil {
			return err
		}
	}

	if opts.WriteBinaries {
		if err := e.writeBinaries(log, c, dir, opts); err != nil {
			return err
		}
	}

	if opts.WriteBytecode {
		if err := e.writeBytecode(log, c, dir, opts); err != nil {
			return err
		}
	}
	return nil
}

func (e *Extractor) writeTextures(log *slog.Logger, c *afp.IndexedContainer, dir string, opts Options) error {
	for i := range c.Textures {
		tex := &c.Textures[i]
		base := filepath.Join(dir, tex.Name)

		if tex.Image != nil {
			if err := e.writePNG(log, base+".png", tex.Image, opts.Pretend); err != nil {
				return err
			}
		}
		if tex.Image == nil || opts.WriteRaw {
			if err := e.writeFile(log, base+".raw", tex.Raw, opts.Pretend); err != nil {
				return err
			}
			info := textureInfo{
				Width:  tex.Width,
				Height: tex.Height,
				Format: fmt.Sprintf("%#x", tex.Format),
				Raw:    tex.Name + ".raw",
			}
			data, err := yaml.Marshal(info)
			if err != nil {
				return fmt.Errorf("marshal texture info %s: %w", tex.Name, err)
			}
			if err := e.writeFile(log, base+".yaml", data, opts.Pretend); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Extractor) splitTextures(log *slog.Logger, c *afp.IndexedContainer, dir string, opts Options) error {
	announced := make(map[string]bool)
	for i, name := range c.RegionNames {
		if i >= len(c.Regions) {
			return pipeline.Wrap(pipeline.ErrLookup, "extract", "split",
				fmt.Sprintf("out of bounds region %d in %s", i, c.Name), nil)
		}
		region := c.Regions[i]
		if region.TextureIndex < 0 || region.TextureIndex >= len(c.TextureNames) {
			return pipeline.Wrap(pipeline.ErrLookup, "extract", "split",
				fmt.Sprintf("region %s references texture %d of %d", name, region.TextureIndex, len(c.TextureNames)), nil)
		}
		sheetName := c.TextureNames[region.TextureIndex]
		sheet, ok := c.TextureByName(sheetName)
		if !ok {
			return pipeline.Wrap(pipeline.ErrLookup, "extract", "split",
				fmt.Sprintf("region %s references missing texture %s", name, sheetName), nil)
		}
		if sheet.Image == nil {
			if !announced[sheetName] {
				log.Warn("cannot extract sprites, pixel format unsupported", "texture", sheetName)
				announced[sheetName] = true
			}
			continue
		}
		sprite := imaging.Crop(sheet.Image, image.Rect(
			region.Left/2, region.Top/2, region.Right/2, region.Bottom/2,
		))
		target := filepath.Join(dir, fmt.Sprintf("%s_%s.png", sheetName, name))
		if err := e.writePNG(log, target, sprite, opts.Pretend); err != nil {
			return err
		}
	}
	return nil
}

func (e *Extractor) writeMappings(log *slog.Logger, c *afp.IndexedContainer, dir string, opts Options) error {
	for i, name := range c.RegionNames {
		if i >= len(c.Regions) {
			return pipeline.Wrap(pipeline.ErrLookup, "extract", "mappings",
				fmt.Sprintf("out of bounds region %d in %s", i, c.Name), nil)
		}
		region := c.Regions[i]
		if region.TextureIndex < 0 || region.TextureIndex >= len(c.TextureNames) {
			return pipeline.Wrap(pipeline.ErrLookup, "extract", "mappings",
				fmt.Sprintf("region %s references texture %d of %d", name, region.TextureIndex, len(c.TextureNames)), nil)
		}
		info := regionInfo{
			Left:    region.Left,
			Top:     region.Top,
			Right:   region.Right,
			Bottom:  region.Bottom,
			Texture: c.TextureNames[region.TextureIndex],
		}
		data, err := yaml.Marshal(info)
		if err != nil {
			return fmt.Errorf("marshal region info %s: %w", name, err)
		}
		if err := e.writeFile(log, filepath.Join(dir, name+".yaml"), data, opts.Pretend); err != nil {
			return err
		}
	}
	return nil
}

func (e *Extractor) writeOverlays(log *slog.Logger, c *afp.IndexedContainer, dir string, opts Options) error {
	overlays := make(map[string]*image.NRGBA)
	for i, name := range c.RegionNames {
		if i >= len(c.Regions) {
			return pipeline.Wrap(pipeline.ErrLookup, "extract", "overlays",
				fmt.Sprintf("out of bounds region %d in %s", i, c.Name), nil)
		}
		region := c.Regions[i]
		if region.TextureIndex < 0 || region.TextureIndex >= len(c.TextureNames) {
			return pipeline.Wrap(pipeline.ErrLookup, "extract", "overlays",
				fmt.Sprintf("region %s references texture %d of %d", name, region.TextureIndex, len(c.TextureNames)), nil)
		}
		sheetName := c.TextureNames[region.TextureIndex]
		canvas, ok := overlays[sheetName]
		if !ok {
			sheet, found := c.TextureByName(sheetName)
			if !found {
				return pipeline.Wrap(pipeline.ErrLookup, "extract", "overlays",
					fmt.Sprintf("region %s references missing texture %s", name, sheetName), nil)
			}
			canvas = image.NewNRGBA(image.Rect(0, 0, sheet.Width, sheet.Height))
			overlays[sheetName] = canvas
		}
		outline := image.Rect(region.Left/2, region.Top/2, region.Right/2, region.Bottom/2)
		imaging.StrokeRect(canvas, outline, color.NRGBA{R: 255, A: 255})
		imaging.DrawLabel(canvas, outline.Min, name, color.NRGBA{R: 255, B: 255, A: 255})
	}

	for _, sheetName := range c.TextureNames {
		canvas, ok := overlays[sheetName]
		if !ok {
			continue
		}
		target := filepath.Join(dir, sheetName+"_overlay.png")
		if err := e.writePNG(log, target, canvas, opts.Pretend); err != nil {
			return err
		}
	}
	return nil
}

func (e *Extractor) writeBinaries(log *slog.Logger, c *afp.IndexedContainer, dir string, opts Options) error {
	for i, name := range c.ClipNames {
		if i >= len(c.Clips) {
			return pipeline.Wrap(pipeline.ErrLookup, "extract", "binaries",
				fmt.Sprintf("out of bounds movie clip %d in %s", i, c.Name), nil)
		}
		clip := c.Clips[i]
		base := filepath.Join(dir, name)
		if err := e.writeFile(log, base+".afp", clip.Raw, opts.Pretend); err != nil {
			return err
		}
		if err := e.writeFile(log, base+".bsi", clip.Descramble, opts.Pretend); err != nil {
			return err
		}
	}

	for i, name := range c.ShapeNames {
		if i >= len(c.Shapes) {
			return pipeline.Wrap(pipeline.ErrLookup, "extract", "binaries",
				fmt.Sprintf("out of bounds shape %d in %s", i, c.Name), nil)
		}
		target := filepath.Join(dir, name+".geo")
		if err := e.writeFile(log, target, c.Shapes[i].Raw, opts.Pretend); err != nil {
			return err
		}
	}
	return nil
}

func (e *Extractor) writeBytecode(log *slog.Logger, c *afp.IndexedContainer, dir string, opts Options) error {
	for i, name := range c.ClipNames {
		if i >= len(c.Clips) {
			return pipeline.Wrap(pipeline.ErrLookup, "extract", "bytecode",
				fmt.Sprintf("out of bounds movie clip %d in %s", i, c.Name), nil)
		}
		program, err := flatten.Flatten(c.Clips[i])
		if err != nil {
			return err
		}
		target := filepath.Join(dir, name+".code")
		if err := e.writeFile(log, target, []byte(program.Text()), opts.Pretend); err != nil {
			return err
		}
	}
	return nil
}

func (e *Extractor) writeFile(log *slog.Logger, target string, data []byte, pretend bool) error {
	if pretend {
		log.Info("would write", "target", target)
		return nil
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}
	log.Info("wrote", "target", target)
	return nil
}

func (e *Extractor) writePNG(log *slog.Logger, target string, img image.Image, pretend bool) error {
	if pretend {
		log.Info("would write", "target", target)
		return nil
	}
	out, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("create %s: %w", target, err)
	}
	defer out.Close()
	if err := png.Encode(out, img); err != nil {
		return fmt.Errorf("encode %s: %w", target, err)
	}
	log.Info("wrote", "target", target)
	return out.Close()
}

type textureInfo struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Format string `yaml:"format"`
	Raw    string `yaml:"raw"`
}

type regionInfo struct {
	Left    int    `yaml:"left"`
	Top     int    `yaml:"top"`
	Right   int    `yaml:"right"`
	Bottom  int    `yaml:"bottom"`
	Texture string `yaml:"texture"`
}
