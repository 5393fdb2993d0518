package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type logRecord struct {
	Level  string `json:"level"`
	Msg    string `json:"msg"`
	Source string `json:"source"`
}

func swapLogger(t *testing.T) {
	t.Helper()
	original := Logger
	t.Cleanup(func() { Logger = original })
}

func TestLogger(t *testing.T) {
	swapLogger(t)
	var buf bytes.Buffer
	Setup(&buf, "debug", "json")

	tests := []struct {
		name  string
		fn    func(msg string, args ...any)
		level string
		msg   string
	}{
		{"Info", Info, "INFO", "info message"},
		{"Error", Error, "ERROR", "error message"},
		{"Warn", Warn, "WARN", "warn message"},
		{"Debug", Debug, "DEBUG", "debug message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.fn(tt.msg, KeySource, "demo")

			var rec logRecord
			if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
				t.Fatalf("failed to unmarshal log output: %v", err)
			}

			if rec.Msg != tt.msg {
				t.Errorf("expected msg %q, got %q", tt.msg, rec.Msg)
			}
			if rec.Level != tt.level {
				t.Errorf("expected level %q, got %q", tt.level, rec.Level)
			}
			if rec.Source != "demo" {
				t.Errorf("expected source %q, got %q", "demo", rec.Source)
			}
		})
	}
}

func TestSetup_LevelFilters(t *testing.T) {
	swapLogger(t)
	var buf bytes.Buffer
	Setup(&buf, "warn", "text")

	Info("hidden")
	Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info line should be filtered at warn level")
	}
	if !strings.Contains(out, "msg=shown") {
		t.Errorf("expected text-format warn line, got %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSetupFile(t *testing.T) {
	swapLogger(t)
	path := filepath.Join(t.TempDir(), "zuba.log")

	closer, err := SetupFile(path, "info", "text")
	if err != nil {
		t.Fatalf("SetupFile() error = %v", err)
	}
	With(KeySeq, 7).Info("fetched")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "seq=7") {
		t.Errorf("log file missing attribute, got %q", string(data))
	}
}

func TestDefaultLogger(t *testing.T) {
	if Logger == nil {
		t.Error("Logger should be initialized")
	}
}
