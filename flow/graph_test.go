package flow

import (
	"testing"

	"nodeflow/geom"
	"nodeflow/surface"
)

type graphFixture struct {
	s *surface.Recorder
	g *Graph
}

func newGraphFixture() *graphFixture {
	return &graphFixture{s: surface.NewRecorder(1000, 800), g: NewGraph(SubsystemConfig{})}
}

func (f *graphFixture) frame(x, y float64) geom.Vector2 {
	p := geom.Vector2{X: x, Y: y}
	f.s.Reset()
	f.g.Frame(f.s, &p)
	return p
}

func TestGraph_BackgroundDragPans(t *testing.T) {
	f := newGraphFixture()
	f.g.AddNode(source(0, 0))

	p := f.frame(600, 600)
	if f.g.ClickStart(p, false) {
		t.Fatal("background click was claimed")
	}
	if f.g.Cursor() != CursorGrabbing {
		t.Errorf("cursor = %v", f.g.Cursor())
	}
	f.g.MouseDrag(geom.Vector2{X: 10, Y: 5})
	f.g.ClickEnd()

	if got := f.g.Camera.Position; got != (geom.Vector2{X: 10, Y: 5}) {
		t.Errorf("camera = %+v", got)
	}
	f.g.MouseDrag(geom.Vector2{X: 10})
	if f.g.Camera.Position.X != 10 {
		t.Error("drag after release panned")
	}
}

func TestGraph_NodesBeforeNotes(t *testing.T) {
	f := newGraphFixture()
	node := source(0, 0)
	note := NewNote(NoteConfig{Text: "under"})
	f.g.AddNote(note)
	f.g.AddNode(node)

	p := f.frame(75, 10)
	if !f.g.ClickStart(p, false) {
		t.Fatal("click on node not claimed")
	}
	f.g.MouseDrag(geom.Vector2{X: 10})
	f.g.ClickEnd()

	if node.Position().X != 10 || note.Position().X != 0 {
		t.Errorf("node x = %v note x = %v", node.Position().X, note.Position().X)
	}
	if f.g.Camera.Position != (geom.Vector2{}) {
		t.Error("camera moved")
	}
}

func TestGraph_NoteDragWhenNoNode(t *testing.T) {
	f := newGraphFixture()
	note := NewNote(NoteConfig{Text: "alone"})
	f.g.AddNote(note)

	p := f.frame(250, 5)
	if !f.g.ClickStart(p, false) {
		t.Fatal("note click not claimed")
	}
	f.g.MouseDrag(geom.Vector2{Y: 20})
	f.g.ClickEnd()
	if note.Position().Y != 20 {
		t.Errorf("note y = %v", note.Position().Y)
	}
}

func TestGraph_ScrollClamps(t *testing.T) {
	f := newGraphFixture()
	f.g.Scroll(100, geom.Vector2{})
	if f.g.Camera.Zoom != 2 {
		t.Fatalf("zoom = %v, want 2", f.g.Camera.Zoom)
	}
	for i := 0; i < 20; i++ {
		f.g.Scroll(100, geom.Vector2{X: 50, Y: 50})
	}
	if f.g.Camera.Zoom != 10 {
		t.Errorf("zoom = %v, want 10", f.g.Camera.Zoom)
	}
}

func TestGraph_ContextMenuRunsItem(t *testing.T) {
	f := newGraphFixture()
	f.frame(600, 600)
	f.g.OpenContextMenu(geom.Vector2{X: 600, Y: 600})

	var at geom.Vector2
	found := false
	for y := 600.0; y < 760 && !found; y += 2 {
		at = f.frame(650, y)
		if e := f.g.ContextMenu().Hovered(); e != nil && e.Name == "New Note" {
			found = true
		}
	}
	if !found {
		t.Fatal("New Note row not found")
	}
	if f.g.Cursor() != CursorPointer {
		t.Errorf("cursor over menu = %v", f.g.Cursor())
	}
	if !f.g.ClickStart(at, false) {
		t.Fatal("menu click not claimed")
	}
	f.g.ClickEnd()

	if len(f.g.Notes().Notes()) != 1 {
		t.Errorf("notes = %d", len(f.g.Notes().Notes()))
	}
	if f.g.ContextMenu() != nil {
		t.Error("menu still open after running an item")
	}
}

func TestGraph_ClickOutsideClosesMenu(t *testing.T) {
	f := newGraphFixture()
	f.g.OpenContextMenu(geom.Vector2{X: 600, Y: 600})
	p := f.frame(10, 10)
	if f.g.ClickStart(p, false) {
		t.Error("background click claimed")
	}
	if f.g.ContextMenu() != nil {
		t.Error("menu not closed")
	}
}

func TestGraph_QuickMenuPasteAndExecute(t *testing.T) {
	f := newGraphFixture()
	if f.g.Paste("x") || f.g.Key("a") {
		t.Fatal("input consumed without a quick menu")
	}

	f.g.OpenQuickMenu(geom.Vector2{X: 100, Y: 100})
	f.frame(0, 0)
	if !f.g.Paste("new note\nsecond line") {
		t.Fatal("paste not consumed")
	}
	if q := f.g.QuickMenu().Query(); q != "new note" {
		t.Errorf("query = %q", q)
	}
	if !f.g.Key("enter") {
		t.Fatal("enter not consumed")
	}

	notes := f.g.Notes().Notes()
	if len(notes) != 1 || notes[0].Position() != (geom.Vector2{X: 100, Y: 100}) {
		t.Errorf("notes = %+v", notes)
	}
	if f.g.QuickMenu() != nil {
		t.Error("quick menu still open")
	}
}

func TestGraph_EscClosesMenus(t *testing.T) {
	f := newGraphFixture()
	f.g.OpenQuickMenu(geom.Vector2{})
	if !f.g.Key("esc") || f.g.QuickMenu() != nil {
		t.Error("esc did not close the quick menu")
	}
	f.g.OpenContextMenu(geom.Vector2{})
	if !f.g.Key("esc") || f.g.ContextMenu() != nil {
		t.Error("esc did not close the context menu")
	}
}

func TestGraph_Extent(t *testing.T) {
	f := newGraphFixture()
	if _, ok := f.g.Extent(f.s); ok {
		t.Fatal("empty graph has an extent")
	}

	f.g.AddNode(sink(100, 50))
	f.g.AddNode(sink(-20, 300))
	got, ok := f.g.Extent(f.s)
	if !ok {
		t.Fatal("no extent")
	}
	want := geom.Box{Position: geom.Vector2{X: -20, Y: 50}, Size: geom.Vector2{X: 270, Y: 332}}
	if got != want {
		t.Errorf("extent = %+v, want %+v", got, want)
	}
}

func TestGraph_QuickMenuClickRunsItem(t *testing.T) {
	f := newGraphFixture()
	f.g.OpenQuickMenu(geom.Vector2{X: 100, Y: 100})
	f.frame(0, 0)

	var row *geom.Vector2
	for _, op := range f.s.Ops {
		if op.Kind == surface.OpText && op.Text == "New Note" {
			p := op.Points[0].Sub(geom.Vector2{Y: 1})
			row = &p
		}
	}
	if row == nil {
		t.Fatalf("New Note not listed: %q", f.s.Texts())
	}

	p := f.frame(row.X, row.Y)
	if !f.g.ClickStart(p, false) {
		t.Fatal("click on the quick menu not claimed")
	}
	f.g.ClickEnd()

	if notes := f.g.Notes().Notes(); len(notes) != 1 {
		t.Errorf("notes = %d, want 1", len(notes))
	}
	if f.g.QuickMenu() != nil {
		t.Error("quick menu still open after running an item")
	}
}
