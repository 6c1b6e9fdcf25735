package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/filedemand/filedemand/internal/config"
)

func TestNewDefaultsToStderr(t *testing.T) {
	logger, err := New(config.LogConfig{Level: "info"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if logger.Out != os.Stderr {
		t.Fatal("logger without a file should write to stderr")
	}
	if logger.GetLevel() != logrus.InfoLevel {
		t.Fatalf("level = %v, want info", logger.GetLevel())
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	if _, err := New(config.LogConfig{Level: "chatty"}); err == nil {
		t.Fatal("expected an error for an unknown level")
	}
}

func TestNewRejectsBadFormat(t *testing.T) {
	if _, err := New(config.LogConfig{Level: "info", Format: "xml"}); err == nil {
		t.Fatal("expected an error for an unknown format")
	}
}

func TestNewJSONFormatter(t *testing.T) {
	logger, err := New(config.LogConfig{Level: "warn", Format: "json"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := logger.Formatter.(*logrus.JSONFormatter); !ok {
		t.Fatalf("formatter = %T, want JSON", logger.Formatter)
	}
}

func TestNewCreatesRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "fdemand.log")

	logger, err := New(config.LogConfig{Level: "debug", File: path, MaxSize: 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("test")

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected log file: %v", err)
	}
}

func TestCloseReleasesLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fdemand.log")

	logger, err := New(config.LogConfig{Level: "info", File: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("before close")

	if err := Close(logger); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := Close(logger); err != nil {
		t.Fatalf("second Close: %v", err)
	}

	stderrLogger, err := New(config.LogConfig{Level: "info"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := Close(stderrLogger); err != nil {
		t.Fatalf("Close on stderr logger: %v", err)
	}
}
