// Package flatten linearizes a movie clip's nested tag/frame tree into one
// ordered, label-annotated bytecode program.
package flatten

import (
	"fmt"
	"strconv"
	"strings"

	"afptool/internal/afp"
	"afptool/internal/pipeline"
)

// maxSpriteDepth bounds recursion into nested sprites. The parser never
// produces cycles, but a malformed container with a self-referential sprite
// tree would otherwise recurse forever.
const maxSpriteDepth = 64

// Program is the flattened output: decompiled text blocks in traversal order
// plus the merged frame-label table.
type Program struct {
	Blocks []string
	Labels *afp.Labels
}

// Text joins the program blocks, each separated by exactly one blank line.
func (p Program) Text() string {
	return strings.Join(p.Blocks, "\n\n")
}

// Flatten walks clip depth-first in pre-order and produces its decompiled
// program. Labels from nested sprites merge destructively into one global
// table, so a nested clip's label shadows an ancestor's label of the same
// name. A clip with no labels and no bytecode-bearing tags yields an empty
// program.
func Flatten(clip *afp.MovieClip) (Program, error) {
	out := Program{Labels: afp.NewLabels()}
	if clip == nil {
		return out, nil
	}

	if err := walk(clip, &out, 0); err != nil {
		return Program{}, err
	}

	if out.Labels.Len() > 0 {
		out.Blocks = append([]string{labelBlock(out.Labels)}, out.Blocks...)
	}
	return out, nil
}

func walk(clip *afp.MovieClip, out *Program, depth int) error {
	if depth >= maxSpriteDepth {
		return pipeline.Wrap(pipeline.ErrLookup, "flatten", "walk",
			fmt.Sprintf("sprite nesting exceeds %d levels in %s", maxSpriteDepth, clip.Name), nil)
	}

	out.Labels.Merge(clip.Labels)

	for _, frame := range clip.Frames {
		for _, imported := range frame.Imported {
			if imported.InitBytecode != nil {
				out.Blocks = append(out.Blocks, imported.InitBytecode.Decompile())
			}
		}
	}

	for _, tag := range clip.Tags {
		switch t := tag.(type) {
		case afp.DoActionTag:
			if t.Code != nil {
				out.Blocks = append(out.Blocks, t.Code.Decompile())
			}
		case afp.PlaceObjectTag:
			for _, event := range t.Triggers.Events() {
				for _, code := range t.Triggers.Code(event) {
					out.Blocks = append(out.Blocks, code.Decompile())
				}
			}
		case afp.DefineSpriteTag:
			if t.Sprite != nil {
				if err := walk(t.Sprite, out, depth+1); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// labelBlock renders the merged label table as one global declaration block,
// enumerated in insertion order.
func labelBlock(labels *afp.Labels) string {
	var b strings.Builder
	b.WriteString("// Defined frame labels from the movie clip, as used for frame lookups.\n")
	b.WriteString("FRAME_LUT = {\n")
	for _, name := range labels.Names() {
		frame, _ := labels.Get(name)
		fmt.Fprintf(&b, "    %s: %s,\n", strconv.Quote(name), strconv.Itoa(frame))
	}
	b.WriteString("};")
	return b.String()
}
