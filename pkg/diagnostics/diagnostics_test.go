package diagnostics

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWrite_LiteralContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diagnostics")

	if err := Write(path, true); err != nil {
		t.Fatalf("Write(true) error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read diagnostics: %v", err)
	}
	// The dashboard parses the raw content; no newline allowed.
	if string(data) != "true" {
		t.Errorf("content = %q, want %q", data, "true")
	}

	if err := Write(path, false); err != nil {
		t.Fatalf("Write(false) error = %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "false" {
		t.Errorf("content = %q, want %q", data, "false")
	}
}

func TestWrite_UnwritableDestination(t *testing.T) {
	err := Write(filepath.Join(t.TempDir(), "missing", "diagnostics"), true)
	if err == nil {
		t.Error("Write() expected error for missing directory, got nil")
	}
}
