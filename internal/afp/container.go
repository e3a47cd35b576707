package afp

import (
	"fmt"
	"sort"
)

// Container is a parsed archive of either supported family. The normalizer
// distinguishes families by concrete type.
type Container interface {
	// Source names where the container came from, for diagnostics.
	Source() string
}

// IndexedContainer is the indexed-archive family: parallel name/value tables
// for shapes, textures, regions, and movie clips. Name slice i corresponds to
// value slice i; the tables can disagree in length when the archive is
// malformed, which the normalizer treats as a fatal lookup failure.
type IndexedContainer struct {
	Name string

	ShapeNames []string
	Shapes     []Shape

	TextureNames []string
	Textures     []Texture

	RegionNames []string
	Regions     []Region

	ClipNames []string
	Clips     []*MovieClip
}

// Source implements Container.
func (c *IndexedContainer) Source() string { return c.Name }

// TextureByName finds a sheet by name.
func (c *IndexedContainer) TextureByName(name string) (*Texture, bool) {
	for i := range c.Textures {
		if c.Textures[i].Name == name {
			return &c.Textures[i], true
		}
	}
	return nil, false
}

// FileContainer is the flat-namespace family: a path-addressed file listing.
// Path separators are always forward slashes regardless of host platform.
type FileContainer struct {
	Name  string
	files map[string][]byte
}

// NewFileContainer builds a flat container over the given path→bytes listing.
func NewFileContainer(name string, files map[string][]byte) *FileContainer {
	return &FileContainer{Name: name, files: files}
}

// Source implements Container.
func (c *FileContainer) Source() string { return c.Name }

// Paths returns every file path in the listing, sorted for deterministic
// iteration.
func (c *FileContainer) Paths() []string {
	out := make([]string, 0, len(c.files))
	for path := range c.files {
		out = append(out, path)
	}
	sort.Strings(out)
	return out
}

// Has reports whether the listing contains path.
func (c *FileContainer) Has(path string) bool {
	_, ok := c.files[path]
	return ok
}

// ReadFile returns the bytes stored at path.
func (c *FileContainer) ReadFile(path string) ([]byte, error) {
	data, ok := c.files[path]
	if !ok {
		return nil, fmt.Errorf("container %s: no file %q", c.Name, path)
	}
	return data, nil
}
