package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"seasonfix/internal/logging"
)

func TestConsoleHandlerLine(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger = logger.With(logging.FieldComponent, "repair")
	logger.Warn("skipping season", "path", "/tv/show/Season 1", "reason", "not-found")

	line := buf.String()
	if !strings.Contains(line, "WARN repair: skipping season") {
		t.Fatalf("unexpected line %q", line)
	}
	if !strings.Contains(line, `path="/tv/show/Season 1"`) {
		t.Fatalf("expected quoted path attr, got %q", line)
	}
	if !strings.Contains(line, "reason=not-found") {
		t.Fatalf("expected reason attr, got %q", line)
	}
}

func TestConsoleHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("hidden")
	logger.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info message leaked at warn level: %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Fatalf("warn message missing: %q", out)
	}
}

func TestJSONHandlerEmitsParsableRecords(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("renamed season", "from", "Season 1", "to", "Winter Is Coming")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if record["msg"] != "renamed season" || record["to"] != "Winter Is Coming" {
		t.Fatalf("unexpected record: %v", record)
	}
	if record["level"] != "info" {
		t.Fatalf("expected lowercase level, got %v", record["level"])
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
