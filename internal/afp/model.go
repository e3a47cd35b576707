package afp

import "image"

// Bytecode is an opaque action-script blob. The instruction-level decompiler
// lives with the format parser; the pipeline only orders and concatenates its
// output.
type Bytecode interface {
	Decompile() string
}

// Tag is one entry in a movie clip's display-list program. Concrete tag types
// form a closed variant set; anything the flattener does not recognize is an
// UnknownTag and is skipped.
type Tag interface {
	isTag()
}

// DoActionTag carries frame-scoped bytecode.
type DoActionTag struct {
	Code Bytecode
}

// PlaceObjectTag places an object at a depth and may attach event-triggered
// bytecode. Source is the logical asset name the parser resolved the placed
// object ID to; empty when the object is not a registered texture.
type PlaceObjectTag struct {
	ObjectID int
	Depth    int
	Source   string
	Triggers *Triggers
}

// DefineSpriteTag nests a whole movie clip inside a parent tag list. The
// nested clip is owned exclusively by this tag.
type DefineSpriteTag struct {
	TagID  int
	Sprite *MovieClip
}

// UnknownTag stands in for tag kinds the pipeline has no use for.
type UnknownTag struct {
	Kind int
}

func (DoActionTag) isTag()     {}
func (PlaceObjectTag) isTag()  {}
func (DefineSpriteTag) isTag() {}
func (UnknownTag) isTag()      {}

// ImportedTag references a tag imported into a frame. InitBytecode, when
// present, runs once when the import is first instantiated.
type ImportedTag struct {
	TagID        int
	InitBytecode Bytecode
}

// Frame is one timeline step of a movie clip.
type Frame struct {
	Imported []ImportedTag
}

// MovieClip is an animation unit: ordered frames, an ordered tag tree, and a
// frame-label table. Location is the natural bounding box the renderer
// reports for the clip, in logical pixels. Raw and Descramble hold the
// undecoded movie and descramble bytes, mirroring Shape.Raw, so extraction
// can write them back out unchanged.
type MovieClip struct {
	Name          string
	Frames        []Frame
	Tags          []Tag
	Labels        *Labels
	Location      Rect
	FrameDuration int // milliseconds per frame
	Raw           []byte
	Descramble    []byte
}

// FrameCount returns the timeline length.
func (c *MovieClip) FrameCount() int {
	return len(c.Frames)
}

// Rect is an axis-aligned box in logical pixel coordinates.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Region is a named sub-rectangle of a texture sheet. Coordinates are
// expressed at twice the sheet's logical pixel grid, so consumers halve them
// before cropping.
type Region struct {
	Left, Top, Right, Bottom int
	TextureIndex             int
}

// Texture is one sheet from an indexed container. Image is nil when the
// sheet's pixel format is not supported by the codec library; Raw always
// holds the undecoded bytes.
type Texture struct {
	Name   string
	Width  int
	Height int
	Format int
	Image  image.Image
	Raw    []byte
}

// Shape is an opaque geometry blob consumed by the renderer.
type Shape struct {
	Name string
	Raw  []byte
}
