package library

import (
	"image"
	"sort"

	"afptool/internal/afp"
)

// Namespace is the flat registry mapping logical names to shapes, textures,
// and movie clips. Registration always overwrites an existing entry of the
// same name.
type Namespace struct {
	shapes   map[string]afp.Shape
	textures map[string]image.Image
	clips    map[string]*afp.MovieClip
}

// NewNamespace returns an empty namespace.
func NewNamespace() *Namespace {
	return &Namespace{
		shapes:   make(map[string]afp.Shape),
		textures: make(map[string]image.Image),
		clips:    make(map[string]*afp.MovieClip),
	}
}

// AddShape registers a shape, overwriting any prior entry for name.
func (n *Namespace) AddShape(name string, shape afp.Shape) {
	n.shapes[name] = shape
}

// AddTexture registers a decoded texture, overwriting any prior entry for
// name.
func (n *Namespace) AddTexture(name string, img image.Image) {
	n.textures[name] = img
}

// AddClip registers a movie clip, overwriting any prior entry for name.
func (n *Namespace) AddClip(name string, clip *afp.MovieClip) {
	n.clips[name] = clip
}

// Shape looks up a shape by name.
func (n *Namespace) Shape(name string) (afp.Shape, bool) {
	shape, ok := n.shapes[name]
	return shape, ok
}

// Texture looks up a decoded texture by name.
func (n *Namespace) Texture(name string) (image.Image, bool) {
	img, ok := n.textures[name]
	return img, ok
}

// Clip looks up a movie clip by name.
func (n *Namespace) Clip(name string) (*afp.MovieClip, bool) {
	clip, ok := n.clips[name]
	return clip, ok
}

// Paths returns the renderable clip names, sorted.
func (n *Namespace) Paths() []string {
	return sortedKeys(n.clips)
}

// ShapeNames returns the registered shape names, sorted.
func (n *Namespace) ShapeNames() []string {
	return sortedKeys(n.shapes)
}

// TextureNames returns the registered texture names, sorted.
func (n *Namespace) TextureNames() []string {
	return sortedKeys(n.textures)
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for name := range m {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
