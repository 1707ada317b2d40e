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

func TestNewWritesJSONFile(t *testing.T) {
	dir := t.TempDir()
	var console bytes.Buffer
	l, closer, err := New(Options{Dir: dir, Name: "run", Level: "debug", Console: &console})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.With("lib", "henhouse").Debug("tick", "n", 3)
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "run.log"))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	var rec map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(data), &rec); err != nil {
		t.Fatalf("log line is not JSON: %v (%s)", err, data)
	}
	if rec["msg"] != "tick" || rec["lib"] != "henhouse" || rec["n"] != float64(3) {
		t.Errorf("record = %v", rec)
	}
	src, _ := rec["source"].(map[string]any)
	if file, _ := src["file"].(string); strings.Count(file, "/") != 1 {
		t.Errorf("source file %q should be shortened", file)
	}

	if got := console.String(); got != "[D] tick lib=henhouse n=3\n" {
		t.Errorf("console = %q", got)
	}
}

func TestLevelFilters(t *testing.T) {
	dir := t.TempDir()
	l, closer, err := New(Options{Dir: dir, Level: "warn"})
	if err != nil {
		t.Fatal(err)
	}
	l.Info("hidden")
	l.Warn("shown")
	closer.Close()

	data, _ := os.ReadFile(filepath.Join(dir, "henhouse.log"))
	if strings.Contains(string(data), "hidden") || !strings.Contains(string(data), "shown") {
		t.Errorf("log = %s", data)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"DEBUG", slog.LevelDebug},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v", tt.in, got, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestShortFileName(t *testing.T) {
	if got := ShortFileName("/a/b/c/scene.go"); got != "c/scene.go" {
		t.Errorf("got %q", got)
	}
	if got := ShortFileName("scene.go"); got != "scene.go" {
		t.Errorf("got %q", got)
	}
}

func TestGroupKeepsConsole(t *testing.T) {
	var file, console bytes.Buffer
	l := slog.New(NewTeeHandler(&file, nil, &console))
	l.WithGroup("g").Info("hello", "k", 1)
	if !strings.HasPrefix(console.String(), "[I] hello") {
		t.Errorf("console = %q", console.String())
	}
	if !strings.Contains(file.String(), `"g":{"k":1}`) {
		t.Errorf("file = %s", file.String())
	}
}
