package flow

import (
	"errors"
	"testing"

	"nodeflow/camera"
	"nodeflow/geom"
	"nodeflow/surface"
)

type noteFixture struct {
	s    *surface.Recorder
	cam  *camera.Camera
	sub  *NoteSubsystem
	note *Note
}

func newNoteFixture(popup Popup) *noteFixture {
	f := &noteFixture{
		s:   surface.NewRecorder(1000, 800),
		cam: camera.New(),
		sub: NewNoteSubsystem(SubsystemConfig{Popup: popup}),
	}
	f.note = NewNote(NoteConfig{Text: "# Title\n\nsome body text"})
	f.sub.AddNote(f.note)
	f.frame(nil)
	return f
}

func (f *noteFixture) frame(p *geom.Vector2) bool {
	f.s.Reset()
	return f.sub.Render(f.s, f.cam, p)
}

func (f *noteFixture) press(p geom.Vector2) bool {
	f.frame(&p)
	return f.sub.ClickStart(p, false)
}

func (f *noteFixture) leftHandle() geom.Vector2 {
	b := f.note.Bounds()
	return geom.Vector2{X: b.Position.X, Y: b.Position.Y + b.Size.Y/2}
}

func (f *noteFixture) rightHandle() geom.Vector2 {
	b := f.note.Bounds()
	return geom.Vector2{X: b.Right(), Y: b.Position.Y + b.Size.Y/2}
}

func TestNote_DefaultWidthAndBounds(t *testing.T) {
	f := newNoteFixture(nil)
	if f.note.Width() != 500 {
		t.Errorf("width = %v", f.note.Width())
	}
	b := f.note.Bounds()
	if b.Size.X != 500 || b.Size.Y <= 0 {
		t.Errorf("bounds = %+v", b)
	}
	if len(f.note.Entries()) != 2 {
		t.Errorf("entries = %d, want 2", len(f.note.Entries()))
	}
}

func TestNote_ResizeRight(t *testing.T) {
	f := newNoteFixture(nil)
	if !f.press(f.rightHandle()) {
		t.Fatal("right handle not hit")
	}
	if f.sub.Cursor() != CursorResize {
		t.Errorf("cursor = %v", f.sub.Cursor())
	}
	f.sub.MouseDragEvent(geom.Vector2{X: 50}, 1)
	f.sub.ClickEnd()

	if f.note.Width() != 550 || f.note.Position().X != 0 {
		t.Errorf("width = %v x = %v", f.note.Width(), f.note.Position().X)
	}
}

func TestNote_ResizeLeftKeepsRightEdge(t *testing.T) {
	f := newNoteFixture(nil)
	f.press(f.leftHandle())
	f.sub.MouseDragEvent(geom.Vector2{X: 50}, 1)

	if f.note.Width() != 450 || f.note.Position().X != 50 {
		t.Fatalf("width = %v x = %v", f.note.Width(), f.note.Position().X)
	}

	f.sub.MouseDragEvent(geom.Vector2{X: 1000}, 1)
	if f.note.Width() != 100 || f.note.Position().X != 400 {
		t.Errorf("clamped width = %v x = %v, want 100 at 400", f.note.Width(), f.note.Position().X)
	}
}

func TestNote_ResizeDividesByScale(t *testing.T) {
	f := newNoteFixture(nil)
	f.cam.Zoom = 2
	f.frame(nil)
	f.press(f.rightHandle())
	f.sub.MouseDragEvent(geom.Vector2{X: 50}, f.cam.Zoom)
	if f.note.Width() != 525 {
		t.Errorf("width = %v, want 525", f.note.Width())
	}
}

func TestNote_BodyDragMoves(t *testing.T) {
	f := newNoteFixture(nil)
	if !f.press(geom.Vector2{X: 250, Y: 10}) {
		t.Fatal("body not hit")
	}
	if f.sub.Cursor() != CursorGrabbing {
		t.Errorf("cursor = %v", f.sub.Cursor())
	}
	f.sub.MouseDragEvent(geom.Vector2{X: 5, Y: 7}, 1)
	if got := f.note.Position(); got != (geom.Vector2{X: 5, Y: 7}) {
		t.Errorf("position = %+v", got)
	}
	if f.note.Width() != 500 {
		t.Errorf("body drag resized to %v", f.note.Width())
	}
}

func TestNote_HoverPersists(t *testing.T) {
	f := newNoteFixture(nil)
	p := geom.Vector2{X: 250, Y: 10}
	if !f.frame(&p) {
		t.Fatal("note not hovered")
	}
	away := geom.Vector2{X: 900, Y: 700}
	if f.frame(&away) {
		t.Error("pointer away still reports over")
	}
	if f.sub.HoveredNote() != f.note {
		t.Error("hover was cleared before another note was hovered")
	}
	if f.sub.ClickStart(away, false) {
		t.Error("click away from the note was claimed")
	}
}

func TestNote_ContextMenu(t *testing.T) {
	popup := &recordingPopup{}
	f := newNoteFixture(popup)

	p := geom.Vector2{X: 250, Y: 10}
	f.frame(&p)
	cfg := f.sub.OpenContextMenu(f.cam, p)
	findItem(cfg, "Edit Note").Callback()
	if popup.str == nil || popup.str.initial != f.note.Text() {
		t.Fatalf("prompt = %+v", popup.str)
	}
	popup.str.apply("* one\n* two")
	if len(f.note.Entries()) != 1 {
		t.Errorf("entries after edit = %d", len(f.note.Entries()))
	}

	findItem(cfg, "Delete Note").Callback()
	if len(f.sub.Notes()) != 0 {
		t.Error("note not deleted")
	}
	if err := f.sub.RemoveNote(f.note); !errors.Is(err, ErrNoteNotFound) {
		t.Errorf("err = %v", err)
	}

	away := geom.Vector2{X: 900, Y: 700}
	f.frame(&away)
	cfg = f.sub.OpenContextMenu(f.cam, away)
	if findItem(cfg, "Edit Note") != nil {
		t.Error("background menu offers note editing")
	}
	findItem(cfg, "New Note").Callback()
	if len(f.sub.Notes()) != 1 || f.sub.Notes()[0].Position() != away {
		t.Errorf("new note = %+v", f.sub.Notes())
	}
}

func TestNote_LayoutFollowsZoom(t *testing.T) {
	text := "the quick brown fox jumps over the lazy dog while the cat watches from the warm windowsill"
	render := func(zoom float64) (box geom.Box, rows int, textRight float64) {
		s := surface.NewRecorder(2000, 2000)
		cam := camera.New()
		cam.Zoom = zoom
		sub := NewNoteSubsystem(SubsystemConfig{})
		note := NewNote(NoteConfig{Width: 200, Text: text})
		sub.AddNote(note)
		sub.Render(s, cam, nil)

		baselines := map[float64]bool{}
		for _, op := range s.Ops {
			if op.Kind != surface.OpText {
				continue
			}
			baselines[op.Points[0].Y] = true
			textRight = max(textRight, op.Points[0].X+s.MeasureText(op.Text, op.Font).Width)
		}
		return note.Bounds(), len(baselines), textRight
	}

	base, baseRows, _ := render(1)
	if baseRows < 2 {
		t.Fatalf("rows at zoom 1 = %d, want the paragraph wrapped", baseRows)
	}
	for _, zoom := range []float64{0.5, 1, 2} {
		box, rows, right := render(zoom)
		if rows != baseRows {
			t.Errorf("zoom %v: rows = %d, want %d", zoom, rows, baseRows)
		}
		if want := base.Size.Scale(zoom); box.Size != want {
			t.Errorf("zoom %v: size = %+v, want %+v", zoom, box.Size, want)
		}
		if right > box.Right() {
			t.Errorf("zoom %v: text reaches %v past the note edge %v", zoom, right, box.Right())
		}
	}
}
