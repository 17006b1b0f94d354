package flow

import (
	"image/color"

	"nodeflow/geom"
	"nodeflow/surface"
	"nodeflow/theme"
)

// Widget is an interactive element stacked inside a node. Sizes are in
// graph units; the node scales them by the camera zoom.
type Widget interface {
	Size(th theme.WidgetTheme) geom.Vector2
	Draw(s surface.Surface, pos geom.Vector2, scale float64, th theme.WidgetTheme, hovered bool)
	ClickStart()
	ClickEnd()
}

// Dragger is implemented by widgets that track horizontal drags while
// clicked. dx is in graph units.
type Dragger interface {
	Drag(dx float64)
}

type nodeBinder interface {
	bind(n *FlowNode)
}

type popupAware interface {
	setPopup(p Popup)
}

// binding ties a widget's value to one node property. An empty property
// name leaves the widget unbound and it keeps its own value.
type binding struct {
	property string
	node     *FlowNode
	popup    Popup
}

func (b *binding) bind(n *FlowNode) {
	b.node = n
}

func (b *binding) setPopup(p Popup) {
	b.popup = p
}

func (b *binding) prompt() Popup {
	if b.popup == nil {
		return NopPopup{}
	}
	return b.popup
}

func (b *binding) load() (Value, bool) {
	if b.node == nil || b.property == "" {
		return Value{}, false
	}
	return b.node.GetProperty(b.property)
}

func (b *binding) store(v Value) {
	if b.node == nil || b.property == "" {
		return
	}
	b.node.SetProperty(b.property, v)
}

// box is the widget's screen-space rectangle for a draw call.
func box(pos, size geom.Vector2, scale float64) geom.Box {
	return geom.Box{Position: pos, Size: size.Scale(scale)}
}

func widgetFont(th theme.WidgetTheme, scale float64) surface.Font {
	return surface.Font{Size: th.FontSize}.Scaled(scale)
}

// drawLabel writes text vertically centered in b, aligned by a.
func drawLabel(s surface.Surface, b geom.Box, text string, f surface.Font, a surface.Align, pad float64, c color.Color) {
	m := s.MeasureText(text, f)
	y := b.Position.Y + b.Size.Y/2 + (m.Ascent-m.Descent)/2
	x := b.Position.X + pad
	switch a {
	case surface.AlignCenter:
		x = b.Position.X + b.Size.X/2
	case surface.AlignRight:
		x = b.Right() - pad
	}
	s.FillText(text, geom.Vector2{X: x, Y: y}, f, a, c)
}
