package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"cuesync/internal/logging"
)

func TestNewConsoleFormatsAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("aligned cue", logging.Int(logging.FieldFrame, 120), logging.String(logging.FieldCue, "cover art"))

	line := buf.String()
	if !strings.Contains(line, "INFO") {
		t.Fatalf("expected level label in output, got %q", line)
	}
	if !strings.Contains(line, "frame=120") {
		t.Fatalf("expected frame attr in output, got %q", line)
	}
	if !strings.Contains(line, `cue="cover art"`) {
		t.Fatalf("expected quoted cue attr in output, got %q", line)
	}
}

func TestNewJSONEmitsStructuredRecord(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("converted", logging.Int(logging.FieldCount, 3))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if record["msg"] != "converted" {
		t.Fatalf("unexpected msg: %v", record["msg"])
	}
	if record[logging.FieldCount] != float64(3) {
		t.Fatalf("unexpected count: %v", record[logging.FieldCount])
	}
}

func TestNewRejectsUnknownLevelAndFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Level: "loud"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("suppressed")
	logger.Warn("kept")

	if strings.Contains(buf.String(), "suppressed") {
		t.Fatalf("info record should be filtered at warn level: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "kept") {
		t.Fatalf("warn record missing: %q", buf.String())
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	logger.Error("dropped")
	logger = logging.NewComponentLogger(nil, "align")
	logger.Info("also dropped")
}
