package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"afptool/internal/logging"
)

func TestConsolePromotesComponent(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.With(logging.FieldComponent, "render").Info("frame done", "frame", 3)

	line := buf.String()
	if !strings.Contains(line, " INFO render: frame done") {
		t.Fatalf("component was not promoted into the prefix: %q", line)
	}
	if strings.Contains(line, "component=") {
		t.Fatalf("component attribute repeated as a pair: %q", line)
	}
	if !strings.Contains(line, "frame=3") {
		t.Fatalf("attribute missing: %q", line)
	}
}

func TestConsoleQuotesValues(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("wrote", "target", "out dir/frame.png", "error", errors.New("no space"))

	line := buf.String()
	if !strings.Contains(line, `target="out dir/frame.png"`) {
		t.Fatalf("value with spaces was not quoted: %q", line)
	}
	if !strings.Contains(line, `error="no space"`) {
		t.Fatalf("error value not rendered: %q", line)
	}
}

func TestConsoleLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "warn", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("quiet")
	logger.Warn("loud")

	line := buf.String()
	if strings.Contains(line, "quiet") {
		t.Fatalf("info record leaked past warn level: %q", line)
	}
	if !strings.Contains(line, "WARN loud") {
		t.Fatalf("warn record missing: %q", line)
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("namespace built", "containers", 2)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if record["msg"] != "namespace built" {
		t.Fatalf("msg = %v", record["msg"])
	}
	if record["level"] != "info" {
		t.Fatalf("level = %v, want lowercase info", record["level"])
	}
	if _, ok := record["ts"]; !ok {
		t.Fatal("timestamp key not renamed to ts")
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestWithContext(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := logging.WithRunID(context.Background(), "run-1234")
	ctx = logging.WithPath(ctx, "sprites/badge")
	logging.WithContext(ctx, logger).Info("rendering")

	line := buf.String()
	if !strings.Contains(line, "run_id=run-1234") {
		t.Fatalf("run id missing: %q", line)
	}
	if !strings.Contains(line, "path=sprites/badge") {
		t.Fatalf("path missing: %q", line)
	}

	if got := logging.WithContext(context.Background(), logger); got != logger {
		t.Fatal("empty context should return the logger unchanged")
	}
}
