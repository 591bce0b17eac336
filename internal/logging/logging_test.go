package logging

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func strPtr(s string) *string {
	return &s
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    *string
		expected zapcore.Level
	}{
		{"absent defaults to error", nil, zapcore.ErrorLevel},
		{"debug", strPtr("debug"), zapcore.DebugLevel},
		{"info", strPtr("info"), zapcore.InfoLevel},
		{"error", strPtr("error"), zapcore.ErrorLevel},
		{"empty", strPtr(""), zapcore.InfoLevel},
		{"unknown", strPtr("warn"), zapcore.InfoLevel},
		{"case sensitive", strPtr("DEBUG"), zapcore.InfoLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.expected {
			t.Errorf("%s: ParseLevel = %v, want %v", tt.name, got, tt.expected)
		}
	}
}

func TestConfigFromConsole(t *testing.T) {
	cfg, err := ConfigFrom(Settings{Count: "not-a-number", Size: "x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Destination.IsConsole() {
		t.Fatalf("expected console destination, got %+v", cfg.Destination)
	}
	if cfg.SuppressConsole {
		t.Fatalf("console destination must not suppress the console")
	}
	if cfg.Level != zapcore.ErrorLevel {
		t.Fatalf("expected default error level, got %v", cfg.Level)
	}
}

func TestConfigFromFile(t *testing.T) {
	cfg, err := ConfigFrom(Settings{Level: strPtr("debug"), File: "app.log", Count: "3", Size: " 1000 "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := Destination{File: "app.log", MaxBytes: 1000, MaxBackups: 3}
	if cfg.Destination != want {
		t.Fatalf("expected %+v, got %+v", want, cfg.Destination)
	}
	if !cfg.SuppressConsole {
		t.Fatalf("file destination must suppress the console")
	}
	if cfg.Level != zapcore.DebugLevel {
		t.Fatalf("expected debug level, got %v", cfg.Level)
	}
}

func TestConfigFromRejectsBadNumbers(t *testing.T) {
	t.Run("size", func(t *testing.T) {
		_, err := ConfigFrom(Settings{File: "app.log", Count: "3", Size: "1kb"})
		if !errors.Is(err, ErrInvalidNumber) {
			t.Fatalf("expected ErrInvalidNumber, got %v", err)
		}
	})

	t.Run("count", func(t *testing.T) {
		_, err := ConfigFrom(Settings{File: "app.log", Count: "three", Size: "1000"})
		if !errors.Is(err, ErrInvalidNumber) {
			t.Fatalf("expected ErrInvalidNumber, got %v", err)
		}
	})
}

func TestNewConsoleFormatAndThreshold(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{
		Level:   zapcore.ErrorLevel,
		Console: zapcore.AddSync(&buf),
		Name:    "basetool",
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	t.Cleanup(func() {
		_ = logger.Close()
	})

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Error("boom")

	line := regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2},\d{3} - ERROR : boom\n$`)
	if !line.MatchString(buf.String()) {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestAtomicLevelChangesThreshold(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: zapcore.ErrorLevel, Console: zapcore.AddSync(&buf)})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.AtomicLevel().SetLevel(zapcore.DebugLevel)
	logger.Debug("now visible")

	if !strings.Contains(buf.String(), "DEBUG : now visible") {
		t.Fatalf("expected debug line, got %q", buf.String())
	}
}

func TestNewFileSuppressesConsole(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	stdout, stderr := os.Stdout, os.Stderr

	logger, err := New(Config{
		Level:           zapcore.DebugLevel,
		Destination:     Destination{File: path, MaxBytes: 1 << 20, MaxBackups: 2},
		SuppressConsole: true,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if os.Stdout.Name() != os.DevNull || os.Stderr.Name() != os.DevNull {
		_ = logger.Close()
		t.Fatalf("expected standard streams to point at %s", os.DevNull)
	}

	logger.Debug("to file")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	if os.Stdout != stdout || os.Stderr != stderr {
		t.Fatalf("expected Close to restore the standard streams")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), " - DEBUG : to file") {
		t.Fatalf("unexpected log file contents %q", data)
	}
}

func TestNewFileOpenFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "app.log")
	stdout := os.Stdout

	_, err := New(Config{
		Destination:     Destination{File: path, MaxBytes: 10, MaxBackups: 1},
		SuppressConsole: true,
	})
	if err == nil {
		t.Fatalf("expected error for unwritable log path")
	}
	if os.Stdout != stdout {
		t.Fatalf("streams must stay untouched when the log file cannot be opened")
	}
}
