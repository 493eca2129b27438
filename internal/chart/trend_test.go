package chart

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRenderWritesPNG(t *testing.T) {
	dir := t.TempDir()
	renderer, err := NewTrendRenderer(dir, "")
	if err != nil {
		t.Fatalf("renderer setup failed: %v", err)
	}

	points := []Point{
		{Label: "2026-08-28", Value: 7},
		{Label: "2026-08-29", Value: 3},
		{Label: "2026-08-30", Value: 5},
	}
	path, err := renderer.Render(points)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	if filepath.Dir(path) != dir {
		t.Fatalf("chart written outside %q: %q", dir, path)
	}
	if !strings.HasSuffix(path, ".png") {
		t.Fatalf("expected a PNG artifact, got %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("chart file missing: %v", err)
	}
	if len(data) < 8 || string(data[1:4]) != "PNG" {
		t.Fatal("file does not look like a PNG")
	}
}

func TestRenderSinglePoint(t *testing.T) {
	renderer, err := NewTrendRenderer(t.TempDir(), "")
	if err != nil {
		t.Fatalf("renderer setup failed: %v", err)
	}
	if _, err := renderer.Render([]Point{{Label: "2026-08-30", Value: 9}}); err != nil {
		t.Fatalf("render failed: %v", err)
	}
}

func TestRenderNoPoints(t *testing.T) {
	renderer, err := NewTrendRenderer(t.TempDir(), "")
	if err != nil {
		t.Fatalf("renderer setup failed: %v", err)
	}
	if _, err := renderer.Render(nil); err == nil {
		t.Fatal("expected an error for an empty point set")
	}
}

func TestRenderClampsOutOfRangeValues(t *testing.T) {
	renderer, err := NewTrendRenderer(t.TempDir(), "")
	if err != nil {
		t.Fatalf("renderer setup failed: %v", err)
	}
	points := []Point{{Value: -3}, {Value: 42}}
	if _, err := renderer.Render(points); err != nil {
		t.Fatalf("render failed: %v", err)
	}
}

func TestNewTrendRendererBadFont(t *testing.T) {
	if _, err := NewTrendRenderer(t.TempDir(), "/nonexistent/font.ttf"); err == nil {
		t.Fatal("expected an error for a missing font file")
	}
}
