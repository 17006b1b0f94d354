package surface

import (
	"image"
	"image/color"
	"unicode/utf8"

	"nodeflow/geom"
)

type OpKind int

const (
	OpClear OpKind = iota
	OpFillRect
	OpFillRoundedRect
	OpStrokeRoundedRect
	OpFillCircle
	OpStrokeCircle
	OpLine
	OpBezier
	OpText
	OpImage
)

// Op is one recorded draw call.
type Op struct {
	Kind   OpKind
	Box    geom.Box
	Points []geom.Vector2
	Radius float64
	Text   string
	Font   Font
	Align  Align
	Color  color.Color
}

// Recorder is a headless Surface. It records every draw call and measures
// text with a fixed advance per rune, which makes layouts reproducible
// without a font rasterizer.
type Recorder struct {
	Width  float64
	Height float64

	// Advance is the width of one rune as a fraction of the font size.
	Advance float64

	Ops []Op
}

func NewRecorder(width, height float64) *Recorder {
	return &Recorder{Width: width, Height: height, Advance: 0.5}
}

// Reset drops all recorded ops.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}

// Texts returns the strings drawn so far, in order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == OpText {
			out = append(out, op.Text)
		}
	}
	return out
}

// Count returns the number of recorded ops of the given kind.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

func (r *Recorder) Size() geom.Vector2 {
	return geom.Vector2{X: r.Width, Y: r.Height}
}

func (r *Recorder) record(op Op) {
	r.Ops = append(r.Ops, op)
}

func (r *Recorder) Clear(c color.Color) {
	r.record(Op{Kind: OpClear, Color: c})
}

func (r *Recorder) FillRect(b geom.Box, c color.Color) {
	r.record(Op{Kind: OpFillRect, Box: b, Color: c})
}

func (r *Recorder) FillRoundedRect(b geom.Box, radius float64, c color.Color) {
	r.record(Op{Kind: OpFillRoundedRect, Box: b, Radius: radius, Color: c})
}

func (r *Recorder) StrokeRoundedRect(b geom.Box, radius, width float64, c color.Color) {
	r.record(Op{Kind: OpStrokeRoundedRect, Box: b, Radius: radius, Color: c})
}

func (r *Recorder) FillCircle(center geom.Vector2, radius float64, c color.Color) {
	r.record(Op{Kind: OpFillCircle, Points: []geom.Vector2{center}, Radius: radius, Color: c})
}

func (r *Recorder) StrokeCircle(center geom.Vector2, radius, width float64, c color.Color) {
	r.record(Op{Kind: OpStrokeCircle, Points: []geom.Vector2{center}, Radius: radius, Color: c})
}

func (r *Recorder) StrokeLine(from, to geom.Vector2, width float64, c color.Color) {
	r.record(Op{Kind: OpLine, Points: []geom.Vector2{from, to}, Color: c})
}

func (r *Recorder) StrokeBezier(start, c1, c2, end geom.Vector2, width float64, c color.Color) {
	r.record(Op{Kind: OpBezier, Points: []geom.Vector2{start, c1, c2, end}, Color: c})
}

func (r *Recorder) FillText(text string, pos geom.Vector2, f Font, align Align, c color.Color) {
	r.record(Op{Kind: OpText, Points: []geom.Vector2{pos}, Text: text, Font: f, Align: align, Color: c})
}

func (r *Recorder) MeasureText(text string, f Font) TextMetrics {
	advance := r.Advance
	if advance <= 0 {
		advance = 0.5
	}
	return TextMetrics{
		Width:   float64(utf8.RuneCountInString(text)) * f.Size * advance,
		Ascent:  f.Size * 0.8,
		Descent: f.Size * 0.2,
	}
}

func (r *Recorder) DrawImage(img image.Image, b geom.Box) {
	r.record(Op{Kind: OpImage, Box: b})
}
