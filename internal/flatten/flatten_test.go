package flatten_test

import (
	"errors"
	"strings"
	"testing"

	"afptool/internal/afp"
	"afptool/internal/flatten"
	"afptool/internal/pipeline"
	"afptool/internal/testsupport"
)

func TestFlattenEmptyClip(t *testing.T) {
	program, err := flatten.Flatten(testsupport.Clip("empty", 0, nil))
	if err != nil {
		t.Fatalf("Flatten returned error: %v", err)
	}
	if program.Text() != "" {
		t.Fatalf("expected empty program, got %q", program.Text())
	}
	if program.Labels.Len() != 0 {
		t.Fatalf("expected empty label table, got %d entries", program.Labels.Len())
	}
}

func TestFlattenPreservesLabelOrderWithoutSprites(t *testing.T) {
	labels := testsupport.Labels("intro", 0, "loop", 4, "outro", 9)
	program, err := flatten.Flatten(testsupport.Clip("movie", 10, labels))
	if err != nil {
		t.Fatalf("Flatten returned error: %v", err)
	}

	got := program.Labels.Names()
	want := []string{"intro", "loop", "outro"}
	if len(got) != len(want) {
		t.Fatalf("unexpected label count: got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("label order mismatch at %d: got %v want %v", i, got, want)
		}
	}
	for _, name := range want {
		gotFrame, _ := program.Labels.Get(name)
		wantFrame, _ := labels.Get(name)
		if gotFrame != wantFrame {
			t.Fatalf("label %s: got frame %d want %d", name, gotFrame, wantFrame)
		}
	}
}

func TestFlattenNestedSpriteLabelShadowsParent(t *testing.T) {
	nested := testsupport.Clip("inner", 3, testsupport.Labels("loop", 2))
	clip := testsupport.Clip("outer", 5,
		testsupport.Labels("loop", 1),
		afp.DefineSpriteTag{TagID: 7, Sprite: nested},
	)

	program, err := flatten.Flatten(clip)
	if err != nil {
		t.Fatalf("Flatten returned error: %v", err)
	}
	frame, ok := program.Labels.Get("loop")
	if !ok {
		t.Fatal("expected loop label to survive the merge")
	}
	if frame != 2 {
		t.Fatalf("expected nested clip's frame index 2 to win, got %d", frame)
	}
	if names := program.Labels.Names(); len(names) != 1 || names[0] != "loop" {
		t.Fatalf("unexpected label table: %v", names)
	}
}

func TestFlattenOrdering(t *testing.T) {
	triggers := afp.NewTriggers()
	triggers.Add("press", testsupport.Code("on_press_a"), testsupport.Code("on_press_b"))
	triggers.Add("release", testsupport.Code("on_release"))

	nested := testsupport.Clip("inner", 0, nil, afp.DoActionTag{Code: testsupport.Code("nested_action")})

	clip := testsupport.Clip("outer", 0, nil,
		afp.DoActionTag{Code: testsupport.Code("first_action")},
		afp.PlaceObjectTag{Depth: 1, Triggers: triggers},
		afp.DefineSpriteTag{Sprite: nested},
		afp.DoActionTag{Code: testsupport.Code("last_action")},
		afp.UnknownTag{Kind: 99},
	)
	clip.Frames = []afp.Frame{
		{Imported: []afp.ImportedTag{{TagID: 1, InitBytecode: testsupport.Code("init_one")}, {TagID: 2}}},
		{Imported: []afp.ImportedTag{{TagID: 3, InitBytecode: testsupport.Code("init_two")}}},
	}

	program, err := flatten.Flatten(clip)
	if err != nil {
		t.Fatalf("Flatten returned error: %v", err)
	}
	want := []string{
		"init_one",
		"init_two",
		"first_action",
		"on_press_a",
		"on_press_b",
		"on_release",
		"nested_action",
		"last_action",
	}
	if len(program.Blocks) != len(want) {
		t.Fatalf("unexpected block count: got %d want %d (%v)", len(program.Blocks), len(want), program.Blocks)
	}
	for i := range want {
		if program.Blocks[i] != want[i] {
			t.Fatalf("block %d: got %q want %q", i, program.Blocks[i], want[i])
		}
	}
	if strings.Count(program.Text(), "\n\n") != len(want)-1 {
		t.Fatalf("blocks should be separated by exactly one blank line: %q", program.Text())
	}
}

func TestFlattenLabelBlockLeadsProgram(t *testing.T) {
	clip := testsupport.Clip("movie", 2,
		testsupport.Labels("start", 0),
		afp.DoActionTag{Code: testsupport.Code("body")},
	)
	program, err := flatten.Flatten(clip)
	if err != nil {
		t.Fatalf("Flatten returned error: %v", err)
	}
	if len(program.Blocks) != 2 {
		t.Fatalf("expected declaration block plus body, got %d blocks", len(program.Blocks))
	}
	if !strings.HasPrefix(program.Blocks[0], "// Defined frame labels") {
		t.Fatalf("expected leading label declaration, got %q", program.Blocks[0])
	}
	if !strings.Contains(program.Blocks[0], `"start": 0,`) {
		t.Fatalf("label declaration missing entry: %q", program.Blocks[0])
	}
	if program.Blocks[1] != "body" {
		t.Fatalf("expected body block last, got %q", program.Blocks[1])
	}
}

func TestFlattenRejectsRunawayNesting(t *testing.T) {
	// A self-referential sprite tree is malformed input; the walk must stop
	// instead of recursing forever.
	clip := testsupport.Clip("cycle", 0, nil)
	clip.Tags = []afp.Tag{afp.DefineSpriteTag{Sprite: clip}}

	_, err := flatten.Flatten(clip)
	if err == nil {
		t.Fatal("expected error for self-referential sprite tree")
	}
	if !errors.Is(err, pipeline.ErrLookup) {
		t.Fatalf("expected lookup classification, got %v", err)
	}
}
