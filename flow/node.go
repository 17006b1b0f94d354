package flow

import (
	"fmt"
	"log/slog"

	"nodeflow/camera"
	"nodeflow/geom"
	"nodeflow/menu"
	"nodeflow/surface"
	"nodeflow/theme"
)

type NodeState int

const (
	NodeIdle NodeState = iota
	NodeMouseOver
	NodeGrabbed
)

// NodeConfig declares a node. Zero values are valid.
type NodeConfig struct {
	Title      string
	Position   geom.Vector2
	Inputs     []PortConfig
	Outputs    []PortConfig
	Widgets    []Widget
	Locked     bool
	Editable   bool
	Menu       menu.Config
	Properties map[string]Value
	Theme      *theme.Theme
}

// FlowNode is a titled box with input ports on its left edge, output ports
// on its right edge and widgets stacked beneath them.
type FlowNode struct {
	position geom.Vector2
	title    string
	inputs   []*Port
	outputs  []*Port
	widgets  []Widget
	locked   bool
	selected bool
	editable bool
	menu     menu.Config
	props    *Properties
	theme    *theme.Theme
	popup    Popup

	onSelect   observers[func()]
	onUnselect observers[func()]

	// Screen-space hit boxes from the last Render, parallel to the port
	// and widget slices.
	inputBoxes  []geom.Box
	outputBoxes []geom.Box
	widgetBoxes []geom.Box
}

func NewNode(cfg NodeConfig) *FlowNode {
	th := cfg.Theme
	if th == nil {
		def := theme.Default()
		th = &def
	}
	n := &FlowNode{
		position: cfg.Position,
		title:    cfg.Title,
		locked:   cfg.Locked,
		editable: cfg.Editable,
		menu:     cfg.Menu,
		props:    NewProperties(),
		theme:    th,
	}
	for name, v := range cfg.Properties {
		n.props.Set(name, v)
	}
	for _, p := range cfg.Inputs {
		n.AddInput(p.Name, p.Type)
	}
	for _, p := range cfg.Outputs {
		n.AddOutput(p.Name, p.Type)
	}
	for _, w := range cfg.Widgets {
		n.AddWidget(w)
	}
	return n
}

func (n *FlowNode) Title() string {
	return n.title
}

func (n *FlowNode) SetTitle(title string) {
	n.title = title
}

func (n *FlowNode) Position() geom.Vector2 {
	return n.position
}

func (n *FlowNode) SetPosition(p geom.Vector2) {
	n.position = p
}

// Translate moves the node by a graph-space delta.
func (n *FlowNode) Translate(delta geom.Vector2) {
	n.position = n.position.Add(delta)
}

func (n *FlowNode) AddInput(name, typ string) *Port {
	p := &Port{name: name, typ: typ, direction: Input, node: n}
	n.inputs = append(n.inputs, p)
	return p
}

func (n *FlowNode) AddOutput(name, typ string) *Port {
	p := &Port{name: name, typ: typ, direction: Output, node: n}
	n.outputs = append(n.outputs, p)
	return p
}

func (n *FlowNode) Inputs() []*Port { return n.inputs }
func (n *FlowNode) Outputs() []*Port { return n.outputs }
func (n *FlowNode) Widgets() []Widget { return n.widgets }

// Input returns the input port at index, or nil.
func (n *FlowNode) Input(index int) *Port {
	if index < 0 || index >= len(n.inputs) {
		return nil
	}
	return n.inputs[index]
}

// Output returns the output port at index, or nil.
func (n *FlowNode) Output(index int) *Port {
	if index < 0 || index >= len(n.outputs) {
		return nil
	}
	return n.outputs[index]
}

// AddWidget appends w and binds it to the node's properties and popup.
func (n *FlowNode) AddWidget(w Widget) {
	n.widgets = append(n.widgets, w)
	if b, ok := w.(nodeBinder); ok {
		b.bind(n)
	}
	if n.popup != nil {
		if pa, ok := w.(popupAware); ok {
			pa.setPopup(n.popup)
		}
	}
}

// attachPopup hands the node and its widgets the popup provider of the
// subsystem that owns it.
func (n *FlowNode) attachPopup(p Popup) {
	n.popup = p
	for _, w := range n.widgets {
		if pa, ok := w.(popupAware); ok {
			pa.setPopup(p)
		}
	}
}

func (n *FlowNode) Locked() bool { return n.locked }
func (n *FlowNode) Lock() { n.locked = true }
func (n *FlowNode) Unlock() { n.locked = false }
func (n *FlowNode) Editable() bool { return n.editable }

func (n *FlowNode) Selected() bool {
	return n.selected
}

// Select marks the node selected, notifying listeners only on the
// transition.
func (n *FlowNode) Select() {
	if n.selected {
		return
	}
	n.selected = true
	n.onSelect.each(func(fn func()) { fn() })
}

func (n *FlowNode) Unselect() {
	if !n.selected {
		return
	}
	n.selected = false
	n.onUnselect.each(func(fn func()) { fn() })
}

func (n *FlowNode) OnSelect(fn func()) Subscription {
	return n.onSelect.add(fn)
}

func (n *FlowNode) OnUnselect(fn func()) Subscription {
	return n.onUnselect.add(fn)
}

func (n *FlowNode) Properties() *Properties {
	return n.props
}

func (n *FlowNode) SetProperty(name string, v Value) {
	n.props.Set(name, v)
}

func (n *FlowNode) GetProperty(name string) (Value, bool) {
	return n.props.Get(name)
}

// nodeLayout is the geometry of one node for a fixed camera. Positions are
// screen space.
type nodeLayout struct {
	bounds      geom.Box
	scale       float64
	titleHeight float64
	inputs      []geom.Vector2
	outputs     []geom.Vector2
	widgets     []geom.Vector2
}

func (n *FlowNode) titleFont() surface.Font {
	return surface.Font{Size: n.theme.Node.TitleSize, Weight: surface.WeightBold}
}

func (n *FlowNode) labelFont() surface.Font {
	return surface.Font{Size: n.theme.Port.LabelSize}
}

// layout computes the node's geometry without mutating it.
func (n *FlowNode) layout(s surface.Surface, cam *camera.Camera) nodeLayout {
	th := n.theme.Node
	pad, gap := th.Padding, th.Spacing
	rowH := n.theme.Port.RowHeight

	title := s.MeasureText(n.title, n.titleFont())
	width := max(th.MinWidth, title.Width+pad*2)
	label := n.labelFont()
	for _, p := range n.inputs {
		width = max(width, s.MeasureText(p.name, label).Width+pad*2)
	}
	for _, p := range n.outputs {
		width = max(width, s.MeasureText(p.name, label).Width+pad*2)
	}
	for _, w := range n.widgets {
		width = max(width, w.Size(n.theme.Widget).X+pad*2)
	}

	scale := cam.Zoom
	origin := cam.GraphSpaceToScreenSpace(n.position)
	l := nodeLayout{
		scale:       scale,
		titleHeight: title.Height(),
		inputs:      make([]geom.Vector2, 0, len(n.inputs)),
		outputs:     make([]geom.Vector2, 0, len(n.outputs)),
		widgets:     make([]geom.Vector2, 0, len(n.widgets)),
	}

	y := title.Height() + pad*2
	for range n.inputs {
		l.inputs = append(l.inputs, geom.Vector2{X: origin.X, Y: origin.Y + (y+rowH/2)*scale})
		y += rowH + gap
	}
	for range n.outputs {
		l.outputs = append(l.outputs, geom.Vector2{X: origin.X + width*scale, Y: origin.Y + (y+rowH/2)*scale})
		y += rowH + gap
	}
	for _, w := range n.widgets {
		size := w.Size(n.theme.Widget)
		l.widgets = append(l.widgets, geom.Vector2{
			X: origin.X + (width-size.X)/2*scale,
			Y: origin.Y + y*scale,
		})
		y += size.Y + gap
	}
	y += gap

	l.bounds = geom.Box{
		Position: origin,
		Size:     geom.Vector2{X: width * scale, Y: y * scale},
	}
	return l
}

// CalculateBounds returns the node's screen-space box for cam.
func (n *FlowNode) CalculateBounds(s surface.Surface, cam *camera.Camera) geom.Box {
	return n.layout(s, cam).bounds
}

// PortPosition returns the screen-space center of a port.
func (n *FlowNode) PortPosition(s surface.Surface, cam *camera.Camera, dir PortDirection, index int) (geom.Vector2, bool) {
	l := n.layout(s, cam)
	positions := l.inputs
	if dir == Output {
		positions = l.outputs
	}
	if index < 0 || index >= len(positions) {
		return geom.Vector2{}, false
	}
	return positions[index], true
}

// InputBoxes returns the input port hit boxes recorded by the last Render.
func (n *FlowNode) InputBoxes() []geom.Box { return n.inputBoxes }

// OutputBoxes returns the output port hit boxes recorded by the last Render.
func (n *FlowNode) OutputBoxes() []geom.Box { return n.outputBoxes }

// WidgetBoxes returns the widget hit boxes recorded by the last Render.
func (n *FlowNode) WidgetBoxes() []geom.Box { return n.widgetBoxes }

func (n *FlowNode) style(state NodeState) theme.BoxStyle {
	th := n.theme.Node
	switch state {
	case NodeMouseOver:
		return th.MouseOver
	case NodeGrabbed:
		return th.Grabbed
	}
	style := th.Idle
	if n.selected {
		style.Border = th.Selected.Border
		style.BorderWidth = th.Selected.BorderWidth
	}
	return style
}

// Render draws the node and records the hit boxes of its ports and widgets
// for the following hit tests. hoveredWidget is -1 when none is hovered.
func (n *FlowNode) Render(s surface.Surface, cam *camera.Camera, state NodeState, hoveredWidget int) geom.Box {
	th := n.theme
	l := n.layout(s, cam)
	scale := l.scale
	b := l.bounds
	radius := th.Node.BorderRadius * scale
	style := n.style(state)

	s.FillRoundedRect(b, radius, style.Fill)

	bezel := geom.Box{
		Position: b.Position,
		Size:     geom.Vector2{X: b.Size.X, Y: (l.titleHeight + th.Node.Padding*2) * scale},
	}
	s.FillRoundedRect(bezel, radius, th.Node.TitleBezel)
	if bezel.Size.Y > radius {
		s.FillRect(geom.Box{
			Position: geom.Vector2{X: bezel.Position.X, Y: bezel.Bottom() - radius},
			Size:     geom.Vector2{X: bezel.Size.X, Y: radius},
		}, th.Node.TitleBezel)
	}
	s.StrokeRoundedRect(b, radius, style.BorderWidth*scale, style.Border)

	titleFont := n.titleFont().Scaled(scale)
	ascent := s.MeasureText(n.title, titleFont).Ascent
	titleX := b.Position.X + th.Node.Padding*scale
	switch th.Node.TitleAlign {
	case surface.AlignCenter:
		titleX = b.Position.X + b.Size.X/2
	case surface.AlignRight:
		titleX = b.Right() - th.Node.Padding*scale
	}
	s.FillText(n.title, geom.Vector2{X: titleX, Y: b.Position.Y + th.Node.Padding*scale + ascent}, titleFont, th.Node.TitleAlign, th.Node.TitleColor)

	label := n.labelFont().Scaled(scale)
	m := s.MeasureText("M", label)
	labelOffset := (m.Ascent - m.Descent) / 2

	n.inputBoxes = n.inputBoxes[:0]
	for i, p := range n.inputs {
		center := l.inputs[i]
		n.inputBoxes = append(n.inputBoxes, p.Render(s, center, scale, th.Port))
		s.FillText(p.name, geom.Vector2{X: center.X + th.Node.Padding*scale, Y: center.Y + labelOffset}, label, surface.AlignLeft, th.Port.LabelColor)
	}

	n.outputBoxes = n.outputBoxes[:0]
	for i, p := range n.outputs {
		center := l.outputs[i]
		n.outputBoxes = append(n.outputBoxes, p.Render(s, center, scale, th.Port))
		s.FillText(p.name, geom.Vector2{X: center.X - th.Node.Padding*scale, Y: center.Y + labelOffset}, label, surface.AlignRight, th.Port.LabelColor)
	}

	n.widgetBoxes = n.widgetBoxes[:0]
	for i, w := range n.widgets {
		pos := l.widgets[i]
		w.Draw(s, pos, scale, th.Widget, i == hoveredWidget)
		n.widgetBoxes = append(n.widgetBoxes, geom.Box{Position: pos, Size: w.Size(th.Widget).Scale(scale)})
	}
	return b
}

// NodeIntersection describes what part of a node a point falls on.
type NodeIntersection struct {
	Node        bool
	Port        *Port
	PortIndex   int
	Widget      Widget
	WidgetIndex int
}

// Hit reports whether anything was hit.
func (i NodeIntersection) Hit() bool {
	return i.Node || i.Port != nil || i.Widget != nil
}

// InBounds tests p against the node's bounds and the port and widget boxes
// recorded by the last Render. Ports and widgets are checked after the node
// body, so an element drawn inside the node reports as that element.
func (n *FlowNode) InBounds(s surface.Surface, cam *camera.Camera, p geom.Vector2) NodeIntersection {
	res := NodeIntersection{PortIndex: -1, WidgetIndex: -1}
	if geom.InBox(n.CalculateBounds(s, cam), p) {
		res.Node = true
	}
	for i, b := range n.inputBoxes {
		if i < len(n.inputs) && geom.InBox(b, p) {
			res.Port, res.PortIndex = n.inputs[i], i
		}
	}
	for i, b := range n.outputBoxes {
		if i < len(n.outputs) && geom.InBox(b, p) {
			res.Port, res.PortIndex = n.outputs[i], i
		}
	}
	for i, b := range n.widgetBoxes {
		if i < len(n.widgets) && geom.InBox(b, p) {
			res.Widget, res.WidgetIndex = n.widgets[i], i
		}
	}
	return res
}

// ContextMenu builds the node's own menu: editing options when the node is
// editable, a lock toggle, then any custom menu from its config.
func (n *FlowNode) ContextMenu(popup Popup, registry *Registry) menu.Config {
	if popup == nil {
		popup = NopPopup{}
	}
	cfg := menu.Config{}

	if n.editable {
		edit := menu.Config{
			Name: "Edit",
			Items: []menu.Item{
				{Name: "Rename", Callback: func() {
					popup.SetString("Rename Node", n.title, n.SetTitle)
				}},
				{Name: "Add Input", Callback: func() {
					popup.SetForm("Add Input", portFields(), func(v []string) { n.AddInput(v[0], v[1]) })
				}},
				{Name: "Add Output", Callback: func() {
					popup.SetForm("Add Output", portFields(), func(v []string) { n.AddOutput(v[0], v[1]) })
				}},
			},
		}
		if registry != nil {
			widgets := menu.Config{Name: "Add Widget"}
			for _, typ := range registry.WidgetTypes() {
				typ := typ
				widgets.Items = append(widgets.Items, menu.Item{Name: typ, Callback: func() {
					w, err := registry.CreateWidget(typ, n)
					if err != nil {
						slog.Default().Error("failed to create widget", "type", typ, "error", err)
						return
					}
					n.AddWidget(w)
				}})
			}
			edit.SubMenus = append(edit.SubMenus, widgets)
		}
		cfg.SubMenus = append(cfg.SubMenus, edit)
	}

	if n.locked {
		cfg.Items = append(cfg.Items, menu.Item{Name: "Unlock Node", Callback: n.Unlock})
	} else {
		cfg.Items = append(cfg.Items, menu.Item{Name: "Lock Node", Callback: n.Lock})
	}

	return cfg.Merge(n.menu)
}

func portFields() []Field {
	return []Field{{Label: "Name", Value: "value"}, {Label: "Type", Value: "number"}}
}

func (n *FlowNode) String() string {
	return fmt.Sprintf("FlowNode(%q)", n.title)
}
