package flow

import (
	"image"
	"image/color"
	"math"
	"strconv"
	"strings"

	"nodeflow/geom"
	"nodeflow/surface"
	"nodeflow/theme"
)

func rowSize(th theme.WidgetTheme) geom.Vector2 {
	return geom.Vector2{X: th.Width, Y: th.Height}
}

func fill(th theme.WidgetTheme, hovered bool) color.RGBA {
	if hovered {
		return th.Hover
	}
	return th.Background
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}

// Button runs OnClick when a click that started on it is released.
type Button struct {
	Text    string
	OnClick func()
	pressed bool
}

func NewButton(text string, onClick func()) *Button {
	return &Button{Text: text, OnClick: onClick}
}

func (b *Button) Size(th theme.WidgetTheme) geom.Vector2 { return rowSize(th) }

func (b *Button) Draw(s surface.Surface, pos geom.Vector2, scale float64, th theme.WidgetTheme, hovered bool) {
	r := box(pos, b.Size(th), scale)
	c := fill(th, hovered)
	if b.pressed {
		c = th.Accent
	}
	s.FillRoundedRect(r, th.Radius*scale, c)
	drawLabel(s, r, b.Text, widgetFont(th, scale), surface.AlignCenter, 0, th.Foreground)
}

func (b *Button) ClickStart() {
	b.pressed = true
}

func (b *Button) ClickEnd() {
	if !b.pressed {
		return
	}
	b.pressed = false
	if b.OnClick != nil {
		b.OnClick()
	}
}

// NumberField shows a number. Dragging changes it by Step per graph unit,
// a plain click opens an edit prompt.
type NumberField struct {
	binding
	Label    string
	Step     float64
	OnChange func(float64)
	value    float64
	dragged  bool
}

func NewNumberField(label, property string, value float64) *NumberField {
	return &NumberField{binding: binding{property: property}, Label: label, Step: 0.1, value: value}
}

func (w *NumberField) Value() float64 {
	if v, ok := w.load(); ok {
		if f, ok := v.AsNumber(); ok {
			return f
		}
	}
	return w.value
}

func (w *NumberField) SetValue(f float64) {
	w.value = f
	w.store(Number(f))
	if w.OnChange != nil {
		w.OnChange(f)
	}
}

func (w *NumberField) Size(th theme.WidgetTheme) geom.Vector2 { return rowSize(th) }

func (w *NumberField) Draw(s surface.Surface, pos geom.Vector2, scale float64, th theme.WidgetTheme, hovered bool) {
	r := box(pos, w.Size(th), scale)
	f := widgetFont(th, scale)
	s.FillRoundedRect(r, th.Radius*scale, fill(th, hovered))
	drawLabel(s, r, w.Label, f, surface.AlignLeft, th.Radius*scale, th.Foreground)
	drawLabel(s, r, formatNumber(w.Value()), f, surface.AlignRight, th.Radius*scale, th.Foreground)
}

func (w *NumberField) ClickStart() {
	w.dragged = false
}

func (w *NumberField) Drag(dx float64) {
	if dx == 0 {
		return
	}
	w.dragged = true
	w.SetValue(w.Value() + dx*w.Step)
}

func (w *NumberField) ClickEnd() {
	if w.dragged {
		w.dragged = false
		return
	}
	w.prompt().SetString(w.Label, formatNumber(w.Value()), func(s string) {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return
		}
		w.SetValue(f)
	})
}

// TextField shows a string and edits it through a prompt.
type TextField struct {
	binding
	Label    string
	OnChange func(string)
	value    string
}

func NewTextField(label, property, value string) *TextField {
	return &TextField{binding: binding{property: property}, Label: label, value: value}
}

func (w *TextField) Value() string {
	if v, ok := w.load(); ok {
		if s, ok := v.AsString(); ok {
			return s
		}
	}
	return w.value
}

func (w *TextField) SetValue(s string) {
	w.value = s
	w.store(String(s))
	if w.OnChange != nil {
		w.OnChange(s)
	}
}

func (w *TextField) Size(th theme.WidgetTheme) geom.Vector2 { return rowSize(th) }

func (w *TextField) Draw(s surface.Surface, pos geom.Vector2, scale float64, th theme.WidgetTheme, hovered bool) {
	r := box(pos, w.Size(th), scale)
	f := widgetFont(th, scale)
	s.FillRoundedRect(r, th.Radius*scale, fill(th, hovered))
	drawLabel(s, r, w.Label, f, surface.AlignLeft, th.Radius*scale, th.Foreground)
	drawLabel(s, r, w.Value(), f, surface.AlignRight, th.Radius*scale, th.Foreground)
}

func (w *TextField) ClickStart() {}

func (w *TextField) ClickEnd() {
	w.prompt().SetString(w.Label, w.Value(), w.SetValue)
}

// Toggle flips a boolean on click.
type Toggle struct {
	binding
	Label    string
	OnChange func(bool)
	value    bool
}

func NewToggle(label, property string, value bool) *Toggle {
	return &Toggle{binding: binding{property: property}, Label: label, value: value}
}

func (w *Toggle) Value() bool {
	if v, ok := w.load(); ok {
		if b, ok := v.AsBool(); ok {
			return b
		}
	}
	return w.value
}

func (w *Toggle) SetValue(b bool) {
	w.value = b
	w.store(Bool(b))
	if w.OnChange != nil {
		w.OnChange(b)
	}
}

func (w *Toggle) Size(th theme.WidgetTheme) geom.Vector2 { return rowSize(th) }

func (w *Toggle) Draw(s surface.Surface, pos geom.Vector2, scale float64, th theme.WidgetTheme, hovered bool) {
	r := box(pos, w.Size(th), scale)
	s.FillRoundedRect(r, th.Radius*scale, fill(th, hovered))
	drawLabel(s, r, w.Label, widgetFont(th, scale), surface.AlignLeft, th.Radius*scale, th.Foreground)

	radius := r.Size.Y / 4
	center := geom.Vector2{X: r.Right() - th.Radius*scale - radius, Y: r.Position.Y + r.Size.Y/2}
	if w.Value() {
		s.FillCircle(center, radius, th.Accent)
		return
	}
	s.StrokeCircle(center, radius, scale, th.Foreground)
}

func (w *Toggle) ClickStart() {}

func (w *Toggle) ClickEnd() {
	w.SetValue(!w.Value())
}

// Slider maps horizontal drags across its track onto [Min, Max].
type Slider struct {
	binding
	Label    string
	Min      float64
	Max      float64
	OnChange func(float64)
	value    float64
	width    float64
}

func NewSlider(label, property string, lo, hi, value float64) *Slider {
	return &Slider{binding: binding{property: property}, Label: label, Min: lo, Max: hi, value: value}
}

func (w *Slider) Value() float64 {
	if v, ok := w.load(); ok {
		if f, ok := v.AsNumber(); ok {
			return f
		}
	}
	return w.value
}

// SetValue stores f clamped to the slider's range.
func (w *Slider) SetValue(f float64) {
	f = math.Max(w.Min, math.Min(w.Max, f))
	w.value = f
	w.store(Number(f))
	if w.OnChange != nil {
		w.OnChange(f)
	}
}

func (w *Slider) Size(th theme.WidgetTheme) geom.Vector2 {
	w.width = th.Width
	return rowSize(th)
}

func (w *Slider) fraction() float64 {
	if w.Max <= w.Min {
		return 0
	}
	return (w.Value() - w.Min) / (w.Max - w.Min)
}

func (w *Slider) Draw(s surface.Surface, pos geom.Vector2, scale float64, th theme.WidgetTheme, hovered bool) {
	r := box(pos, w.Size(th), scale)
	s.FillRoundedRect(r, th.Radius*scale, fill(th, hovered))
	if frac := w.fraction(); frac > 0 {
		filled := r
		filled.Size.X *= frac
		s.FillRoundedRect(filled, th.Radius*scale, th.Accent)
	}
	f := widgetFont(th, scale)
	drawLabel(s, r, w.Label, f, surface.AlignLeft, th.Radius*scale, th.Foreground)
	drawLabel(s, r, formatNumber(w.Value()), f, surface.AlignRight, th.Radius*scale, th.Foreground)
}

func (w *Slider) ClickStart() {}

func (w *Slider) Drag(dx float64) {
	if w.width <= 0 {
		return
	}
	w.SetValue(w.Value() + dx/w.width*(w.Max-w.Min))
}

func (w *Slider) ClickEnd() {}

// ColorPicker shows a swatch and edits it as a hex string.
type ColorPicker struct {
	binding
	Label    string
	OnChange func(color.RGBA)
	value    color.RGBA
}

func NewColorPicker(label, property string, value color.RGBA) *ColorPicker {
	return &ColorPicker{binding: binding{property: property}, Label: label, value: value}
}

func (w *ColorPicker) Value() color.RGBA {
	if v, ok := w.load(); ok {
		if c, ok := v.AsColor(); ok {
			return c
		}
	}
	return w.value
}

func (w *ColorPicker) SetValue(c color.RGBA) {
	w.value = c
	w.store(Color(c))
	if w.OnChange != nil {
		w.OnChange(c)
	}
}

func (w *ColorPicker) Size(th theme.WidgetTheme) geom.Vector2 { return rowSize(th) }

func (w *ColorPicker) Draw(s surface.Surface, pos geom.Vector2, scale float64, th theme.WidgetTheme, hovered bool) {
	r := box(pos, w.Size(th), scale)
	s.FillRoundedRect(r, th.Radius*scale, fill(th, hovered))
	drawLabel(s, r, w.Label, widgetFont(th, scale), surface.AlignLeft, th.Radius*scale, th.Foreground)

	inset := 3 * scale
	swatch := geom.Box{
		Position: geom.Vector2{X: r.Position.X + r.Size.X/2, Y: r.Position.Y + inset},
		Size:     geom.Vector2{X: r.Size.X/2 - inset, Y: r.Size.Y - inset*2},
	}
	s.FillRoundedRect(swatch, th.Radius*scale, w.Value())
}

func (w *ColorPicker) ClickStart() {}

func (w *ColorPicker) ClickEnd() {
	w.prompt().SetString(w.Label, theme.Hex(w.Value()), func(s string) {
		c, err := theme.ParseHex(strings.TrimSpace(s))
		if err != nil {
			return
		}
		w.SetValue(c)
	})
}

// Label displays read-only text, taken from its property when bound.
type Label struct {
	binding
	Text string
}

func NewLabel(text, property string) *Label {
	return &Label{binding: binding{property: property}, Text: text}
}

func (w *Label) Value() string {
	if v, ok := w.load(); ok {
		return v.String()
	}
	return w.Text
}

func (w *Label) Size(th theme.WidgetTheme) geom.Vector2 { return rowSize(th) }

func (w *Label) Draw(s surface.Surface, pos geom.Vector2, scale float64, th theme.WidgetTheme, hovered bool) {
	r := box(pos, w.Size(th), scale)
	drawLabel(s, r, w.Value(), widgetFont(th, scale), surface.AlignCenter, 0, th.Foreground)
}

func (w *Label) ClickStart() {}
func (w *Label) ClickEnd() {}

// Image draws a picture at its natural aspect ratio, Width graph units wide.
type Image struct {
	Image image.Image
	Width float64
}

func NewImage(img image.Image) *Image {
	return &Image{Image: img}
}

func (w *Image) Size(th theme.WidgetTheme) geom.Vector2 {
	width := w.Width
	if width <= 0 {
		width = th.Width
	}
	if w.Image == nil {
		return geom.Vector2{X: width, Y: th.Height}
	}
	b := w.Image.Bounds()
	if b.Dx() == 0 {
		return geom.Vector2{X: width, Y: th.Height}
	}
	return geom.Vector2{X: width, Y: width * float64(b.Dy()) / float64(b.Dx())}
}

func (w *Image) Draw(s surface.Surface, pos geom.Vector2, scale float64, th theme.WidgetTheme, hovered bool) {
	r := box(pos, w.Size(th), scale)
	if w.Image == nil {
		s.StrokeRoundedRect(r, th.Radius*scale, scale, th.Foreground)
		return
	}
	s.DrawImage(w.Image, r)
}

func (w *Image) ClickStart() {}
func (w *Image) ClickEnd() {}
