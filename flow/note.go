package flow

import (
	"nodeflow/camera"
	"nodeflow/geom"
	"nodeflow/markdown"
	"nodeflow/surface"
	"nodeflow/theme"
)

type NoteConfig struct {
	Position geom.Vector2
	Width    float64
	Text     string
}

// Note is a markdown annotation placed on the canvas.
type Note struct {
	position geom.Vector2
	width    float64
	text     string
	entries  []markdown.Entry
	parsed   bool
	theme    *theme.Theme

	bounds      geom.Box
	leftHandle  geom.Box
	rightHandle geom.Box
}

func NewNote(cfg NoteConfig) *Note {
	th := theme.Default()
	n := &Note{position: cfg.Position, width: cfg.Width, text: cfg.Text, theme: &th}
	if n.width <= 0 {
		n.width = th.Note.DefaultWidth
	}
	return n
}

func (n *Note) Text() string {
	return n.text
}

func (n *Note) SetText(text string) {
	n.text = text
	n.parsed = false
}

func (n *Note) Width() float64 {
	return n.width
}

// SetWidth sets the width in graph units, no narrower than the theme's
// minimum.
func (n *Note) SetWidth(w float64) {
	n.width = max(w, n.theme.Note.MinWidth)
}

func (n *Note) Position() geom.Vector2 {
	return n.position
}

func (n *Note) SetPosition(p geom.Vector2) {
	n.position = p
}

func (n *Note) Translate(delta geom.Vector2) {
	n.position = n.position.Add(delta)
}

func (n *Note) Entries() []markdown.Entry {
	if !n.parsed {
		n.entries = markdown.Parse(n.text, n.theme.Markdown)
		n.parsed = true
	}
	return n.entries
}

func (n *Note) setTheme(th *theme.Theme) {
	n.theme = th
	n.parsed = false
}

// Render draws the note and records its bounds and resize handles. The
// handles are drawn only while the note is hovered but are always
// hit-testable.
func (n *Note) Render(s surface.Surface, cam *camera.Camera, hovered bool) geom.Box {
	th := n.theme.Note
	scale := cam.Zoom
	pos := cam.GraphSpaceToScreenSpace(n.position)
	pad := th.Padding * scale

	height := markdown.RenderAll(s, n.Entries(), n.theme.Markdown,
		geom.Vector2{X: pos.X + pad, Y: pos.Y + pad}, scale, n.width-th.Padding*2)

	n.bounds = geom.Box{Position: pos, Size: geom.Vector2{X: n.width * scale, Y: height + pad*2}}
	mid := n.bounds.Position.Y + n.bounds.Size.Y/2
	half := th.HandleSize / 2
	n.leftHandle = geom.SquareAround(geom.Vector2{X: n.bounds.Position.X, Y: mid}, half)
	n.rightHandle = geom.SquareAround(geom.Vector2{X: n.bounds.Right(), Y: mid}, half)

	if hovered {
		s.FillRect(n.leftHandle, th.HandleColor)
		s.FillRect(n.rightHandle, th.HandleColor)
	}
	return n.bounds
}

// Bounds returns the screen-space box recorded by the last Render.
func (n *Note) Bounds() geom.Box {
	return n.bounds
}

func (n *Note) hit(p geom.Vector2) notePart {
	switch {
	case geom.InBox(n.leftHandle, p):
		return partLeftHandle
	case geom.InBox(n.rightHandle, p):
		return partRightHandle
	case geom.InBox(n.bounds, p):
		return partBody
	}
	return partNone
}
