package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpenWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "sahayak.log")

	logger, err := Open(path, false)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	logger.Info("hello from test")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "hello from test") {
		t.Errorf("log file missing entry, got %q", data)
	}
}

func TestOpenDebugLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sahayak.log")

	logger, err := Open(path, true)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	logger.Debug("verbose detail")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "verbose detail") {
		t.Errorf("debug entry not written, got %q", data)
	}

	quiet, err := Open(filepath.Join(t.TempDir(), "quiet.log"), false)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if quiet.Core().Enabled(-1) {
		t.Error("debug level enabled without the debug flag")
	}
}
