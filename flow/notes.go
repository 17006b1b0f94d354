package flow

import (
	"log/slog"
	"slices"

	"nodeflow/camera"
	"nodeflow/geom"
	"nodeflow/menu"
	"nodeflow/surface"
	"nodeflow/theme"
)

type notePart int

const (
	partNone notePart = iota
	partBody
	partLeftHandle
	partRightHandle
)

// NoteSubsystem owns the markdown notes. A click on a handle resizes the
// note, a click on the body moves it.
type NoteSubsystem struct {
	notes []*Note

	// hovered is the last note under the pointer and stays set until
	// another note is hovered. over tracks whether the pointer is on it
	// in the current frame.
	hovered     int
	hoveredPart notePart
	over        bool

	active     int
	activePart notePart

	theme  *theme.Theme
	popup  Popup
	logger *slog.Logger
}

func NewNoteSubsystem(cfg SubsystemConfig) *NoteSubsystem {
	cfg = cfg.withDefaults()
	return &NoteSubsystem{
		hovered: -1,
		active:  -1,
		theme:   cfg.Theme,
		popup:   cfg.Popup,
		logger:  cfg.Logger,
	}
}

func (n *NoteSubsystem) Notes() []*Note {
	return n.notes
}

func (n *NoteSubsystem) AddNote(note *Note) {
	note.setTheme(n.theme)
	n.notes = append(n.notes, note)
}

func (n *NoteSubsystem) RemoveNote(note *Note) error {
	i := slices.Index(n.notes, note)
	if i < 0 {
		n.logger.Warn("remove note skipped", "error", ErrNoteNotFound)
		return ErrNoteNotFound
	}
	n.notes = slices.Delete(n.notes, i, i+1)
	n.hovered, n.hoveredPart, n.over = -1, partNone, false
	n.active, n.activePart = -1, partNone
	return nil
}

// HoveredNote returns the last note the pointer was over, or nil.
func (n *NoteSubsystem) HoveredNote() *Note {
	if n.hovered < 0 || n.hovered >= len(n.notes) {
		return nil
	}
	return n.notes[n.hovered]
}

// Render draws every note and updates hover. It reports whether the
// pointer is over a note in this frame.
func (n *NoteSubsystem) Render(s surface.Surface, cam *camera.Camera, pointer *geom.Vector2) bool {
	for i, note := range n.notes {
		note.Render(s, cam, i == n.hovered)
	}

	n.over = false
	if pointer == nil {
		return false
	}
	for i, note := range n.notes {
		if part := note.hit(*pointer); part != partNone {
			n.hovered, n.hoveredPart, n.over = i, part, true
		}
	}
	return n.over
}

func (n *NoteSubsystem) Cursor() Cursor {
	part := n.activePart
	if n.active < 0 {
		if !n.over {
			return CursorDefault
		}
		part = n.hoveredPart
	}
	switch part {
	case partLeftHandle, partRightHandle:
		return CursorResize
	case partBody:
		if n.active >= 0 {
			return CursorGrabbing
		}
		return CursorGrab
	}
	return CursorDefault
}

func (n *NoteSubsystem) ClickStart(point geom.Vector2, ctrl bool) bool {
	if !n.over || n.hovered < 0 {
		return false
	}
	n.active, n.activePart = n.hovered, n.hoveredPart
	return true
}

func (n *NoteSubsystem) MouseDragEvent(delta geom.Vector2, scale float64) bool {
	if n.active < 0 || n.active >= len(n.notes) {
		return false
	}
	note := n.notes[n.active]
	dx := delta.X / scale
	switch n.activePart {
	case partRightHandle:
		note.SetWidth(note.width + dx)
	case partLeftHandle:
		right := note.position.X + note.width
		note.SetWidth(note.width - dx)
		note.position.X = right - note.width
	case partBody:
		note.Translate(delta.Scale(1 / scale))
	}
	return true
}

func (n *NoteSubsystem) ClickEnd() {
	n.active, n.activePart = -1, partNone
}

// OpenContextMenu offers a new note at point and, when a note is under the
// pointer, editing and deleting it.
func (n *NoteSubsystem) OpenContextMenu(cam *camera.Camera, point geom.Vector2) menu.Config {
	at := cam.ScreenSpaceToGraphSpace(point)
	cfg := menu.Config{Items: []menu.Item{{
		Name:  "New Note",
		Group: "note",
		Callback: func() {
			n.AddNote(NewNote(NoteConfig{Position: at, Text: "# Note"}))
		},
	}}}

	if !n.over {
		return cfg
	}
	note := n.HoveredNote()
	cfg.Items = append(cfg.Items,
		menu.Item{Name: "Edit Note", Group: "note", Callback: func() {
			n.popup.SetString("Edit Note", note.Text(), note.SetText)
		}},
		menu.Item{Name: "Delete Note", Group: "note", Callback: func() { n.RemoveNote(note) }},
	)
	return cfg
}
