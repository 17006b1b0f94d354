package main

import (
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"nodeflow/flow"
)

func TestExportPNG(t *testing.T) {
	g := demoGraph()
	g.Camera.Zoom = 2
	path := filepath.Join(t.TempDir(), "graph.png")

	if err := exportPNG(g, path, 20); err != nil {
		t.Fatalf("exportPNG: %v", err)
	}
	if g.Camera.Zoom != 2 {
		t.Errorf("camera zoom = %v, want it restored to 2", g.Camera.Zoom)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	// The scene runs from the first node at x=40 past the note at x=720.
	if cfg.Width < 720 {
		t.Errorf("width = %d, want the whole scene", cfg.Width)
	}
}

func TestExportPNG_Empty(t *testing.T) {
	g := flow.NewGraph(flow.SubsystemConfig{})
	err := exportPNG(g, filepath.Join(t.TempDir(), "empty.png"), 20)
	if !errors.Is(err, errEmptyGraph) {
		t.Errorf("err = %v, want %v", err, errEmptyGraph)
	}
}
