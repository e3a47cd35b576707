package main

import (
	"errors"
	"path/filepath"
	"testing"

	"afptool/internal/pipeline"
)

func TestRenderCommandRejectsWEBPBeforeAnyWork(t *testing.T) {
	configFlag := ""
	cmd := newRenderCommand(newCommandContext(&configFlag))
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	// The container path does not exist: if the missing encoder were only
	// detected at write time, this would fail on the stat instead.
	cmd.SetArgs([]string{
		filepath.Join(t.TempDir(), "absent.bin"),
		"--path", "movie",
		"--output", filepath.Join(t.TempDir(), "anim.webp"),
	})
	err := cmd.Execute()
	if !errors.Is(err, pipeline.ErrUnsupportedAsset) {
		t.Fatalf("expected the missing WEBP encoder to fail first, got %v", err)
	}
}
