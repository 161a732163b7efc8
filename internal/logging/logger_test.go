package logging_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dreamcodec/internal/logging"
)

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewToFileWritesJSONRecords(t *testing.T) {
	dir := t.TempDir()
	logger, err := logging.NewToFile("info", "json", dir, "dreamcodec.log")
	if err != nil {
		t.Fatalf("NewToFile: %v", err)
	}

	logger.Info("conversion queued", logging.String(logging.FieldJobID, "abc"))

	data, err := os.ReadFile(filepath.Join(dir, "dreamcodec.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, `"msg":"conversion queued"`) {
		t.Fatalf("expected message in log output, got %q", text)
	}
	if !strings.Contains(text, `"job_id":"abc"`) {
		t.Fatalf("expected job_id attr in log output, got %q", text)
	}
}

func TestNewComponentLoggerToleratesNilBase(t *testing.T) {
	logger := logging.NewComponentLogger(nil, "engine")
	logger.Info("should not panic")
}

func TestDebugFilteredAtInfoLevel(t *testing.T) {
	dir := t.TempDir()
	logger, err := logging.NewToFile("info", "json", dir, "out.log")
	if err != nil {
		t.Fatalf("NewToFile: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("visible")

	data, err := os.ReadFile(filepath.Join(dir, "out.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if strings.Contains(string(data), "hidden") {
		t.Fatal("debug record should have been filtered")
	}
	if !strings.Contains(string(data), "visible") {
		t.Fatal("info record missing")
	}
}
