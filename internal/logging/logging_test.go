package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"didauth/internal/logging"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := logging.New(logging.Config{Level: "warn"}, &buf)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	log.Info().Msg("hidden")
	log.Warn().Str("k", "v").Msg("shown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("want 1 line, got %q", buf.String())
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &m); err != nil {
		t.Fatalf("not json: %v", err)
	}
	if m["message"] != "shown" || m["k"] != "v" || m["level"] != "warn" {
		t.Fatalf("unexpected entry %v", m)
	}
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	log, err := logging.New(logging.Config{Format: "console"}, &buf)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	log.Info().Msg("hello")
	if !strings.Contains(buf.String(), "hello") || strings.HasPrefix(buf.String(), "{") {
		t.Fatalf("unexpected console output %q", buf.String())
	}
}

func TestNew_Rejects(t *testing.T) {
	if _, err := logging.New(logging.Config{Level: "loud"}, nil); err == nil {
		t.Fatal("expected level error")
	}
	if _, err := logging.New(logging.Config{Format: "xml"}, nil); err == nil {
		t.Fatal("expected format error")
	}
}
