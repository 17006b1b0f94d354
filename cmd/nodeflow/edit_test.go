package main

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"nodeflow/config"
)

func newTestModel(t *testing.T) *model {
	t.Helper()
	m, err := newModel(config.Default(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("newModel: %v", err)
	}
	return m
}

func sized(t *testing.T) *model {
	t.Helper()
	m := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	if m.canvas == nil {
		t.Fatalf("no canvas: %s", m.errorMessage)
	}
	return m
}

func TestModel_QuitNeedsConfirmation(t *testing.T) {
	m := newTestModel(t)

	if _, cmd := m.Update(runes("q")); cmd != nil {
		t.Fatal("first q quit without confirmation")
	}
	if m.mode != ModeConfirmQuit {
		t.Errorf("mode = %v, want %v", m.mode, ModeConfirmQuit)
	}
	if _, cmd := m.Update(runes("q")); cmd == nil {
		t.Error("second q did not quit")
	}
}

func TestModel_AnyOtherKeyCancelsQuit(t *testing.T) {
	m := newTestModel(t)
	m.Update(runes("q"))
	if _, cmd := m.Update(runes("n")); cmd != nil {
		t.Error("n after q quit")
	}
	if m.mode == ModeConfirmQuit {
		t.Error("still confirming")
	}
}

func TestModel_PanKeys(t *testing.T) {
	tests := []struct {
		key    string
		dx, dy float64
	}{
		{"h", 32, 0},
		{"l", -32, 0},
		{"k", 0, 32},
		{"j", 0, -32},
		{"L", -128, 0},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m := newTestModel(t)
			m.Update(runes(tt.key))
			got := m.graph.Camera.Position
			if got.X != tt.dx || got.Y != tt.dy {
				t.Errorf("camera = %+v, want (%v, %v)", got, tt.dx, tt.dy)
			}
		})
	}
}

func TestModel_ZoomAndReset(t *testing.T) {
	m := newTestModel(t)
	m.Update(runes("+"))
	if m.graph.Camera.Zoom <= 1 {
		t.Fatalf("zoom = %v after +", m.graph.Camera.Zoom)
	}
	m.Update(runes("0"))
	if m.graph.Camera.Zoom != 1 {
		t.Errorf("zoom = %v after reset", m.graph.Camera.Zoom)
	}
}

func TestModel_RightClickOpensMenu(t *testing.T) {
	m := sized(t)
	m.Update(tea.MouseMsg{X: 70, Y: 20, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	if m.graph.ContextMenu() == nil {
		t.Fatal("no context menu")
	}
	if m.mode != ModeMenu {
		t.Errorf("mode = %v, want %v", m.mode, ModeMenu)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.graph.ContextMenu() != nil {
		t.Error("esc left the menu open")
	}
	if m.mode != ModeNormal {
		t.Errorf("mode = %v, want %v", m.mode, ModeNormal)
	}
}

func TestModel_BackgroundDragPans(t *testing.T) {
	m := sized(t)
	m.Update(tea.MouseMsg{X: 5, Y: 22, Action: tea.MouseActionMotion})
	m.Update(tea.MouseMsg{X: 5, Y: 22, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m.Update(tea.MouseMsg{X: 7, Y: 22, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m.Update(tea.MouseMsg{X: 7, Y: 22, Action: tea.MouseActionRelease})

	if got := m.graph.Camera.Position.X; got != 16 {
		t.Errorf("camera x = %v, want 16", got)
	}
}

func TestModel_View(t *testing.T) {
	m := newTestModel(t)
	if got := m.View(); got != "loading..." {
		t.Errorf("view before size = %q", got)
	}

	m = sized(t)
	view := m.View()
	if !strings.Contains(view, halfBlock) {
		t.Error("view has no canvas")
	}
	if !strings.Contains(view, "NORMAL") {
		t.Error("view has no status bar")
	}
}
