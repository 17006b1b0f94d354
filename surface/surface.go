// Package surface defines the immediate-mode drawing context the canvas
// renders into, along with a gg-backed implementation and a headless
// recorder.
package surface

import (
	"image"
	"image/color"

	"nodeflow/geom"
)

type Weight int

const (
	WeightNormal Weight = iota
	WeightBold
)

type Style int

const (
	StyleNormal Style = iota
	StyleItalic
)

type Family int

const (
	FamilySans Family = iota
	FamilyMono
)

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Font selects a face. Size is in surface pixels.
type Font struct {
	Size   float64
	Weight Weight
	Style  Style
	Family Family
}

// Scaled returns f with its size multiplied by s.
func (f Font) Scaled(s float64) Font {
	f.Size *= s
	return f
}

type TextMetrics struct {
	Width   float64
	Ascent  float64
	Descent float64
}

// Height is the distance from the top of the ascent to the bottom of the
// descent.
func (m TextMetrics) Height() float64 {
	return m.Ascent + m.Descent
}

// Surface is a 2D drawing context in screen space. Text positions are
// baselines.
type Surface interface {
	Size() geom.Vector2
	Clear(c color.Color)
	FillRect(b geom.Box, c color.Color)
	FillRoundedRect(b geom.Box, radius float64, c color.Color)
	StrokeRoundedRect(b geom.Box, radius, width float64, c color.Color)
	FillCircle(center geom.Vector2, radius float64, c color.Color)
	StrokeCircle(center geom.Vector2, radius, width float64, c color.Color)
	StrokeLine(from, to geom.Vector2, width float64, c color.Color)
	StrokeBezier(start, c1, c2, end geom.Vector2, width float64, c color.Color)
	FillText(text string, pos geom.Vector2, f Font, align Align, c color.Color)
	MeasureText(text string, f Font) TextMetrics
	DrawImage(img image.Image, b geom.Box)
}
