package flow

import (
	"fmt"
	"log/slog"
	"slices"

	"nodeflow/camera"
	"nodeflow/geom"
	"nodeflow/menu"
	"nodeflow/surface"
	"nodeflow/theme"
)

type hoverKind int

const (
	hoverNone hoverKind = iota
	hoverNode
	hoverPort
	hoverWidget
)

// hover is the single element under the pointer after the last render.
type hover struct {
	kind        hoverKind
	node        int
	port        *Port
	widget      Widget
	widgetIndex int
}

var noHover = hover{node: -1, widgetIndex: -1}

// SubsystemConfig carries the collaborators shared by the subsystems.
// Zero values fall back to defaults.
type SubsystemConfig struct {
	Theme    *theme.Theme
	Registry *Registry
	Popup    Popup
	Renderer ConnectionRenderer
	Logger   *slog.Logger
}

func (c SubsystemConfig) withDefaults() SubsystemConfig {
	if c.Theme == nil {
		th := theme.Default()
		c.Theme = &th
	}
	if c.Registry == nil {
		c.Registry = NewRegistry()
	}
	if c.Popup == nil {
		c.Popup = NopPopup{}
	}
	if c.Renderer == nil {
		c.Renderer = BezierRenderer(c.Theme.Connection)
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// NodeSubsystem owns the nodes and connections of a graph and turns
// pointer events into graph mutations. Only one of a grabbed node, a
// connection being formed and a clicked widget is active per gesture.
type NodeSubsystem struct {
	nodes       []*FlowNode
	connections []*Connection

	grabbed      int
	selectedConn *Connection
	clicking     Widget
	hover        hover
	pointer      *geom.Vector2

	theme    *theme.Theme
	registry *Registry
	popup    Popup
	renderer ConnectionRenderer
	logger   *slog.Logger
	pool     geom.Pool
}

func NewNodeSubsystem(cfg SubsystemConfig) *NodeSubsystem {
	cfg = cfg.withDefaults()
	return &NodeSubsystem{
		grabbed:  -1,
		hover:    noHover,
		theme:    cfg.Theme,
		registry: cfg.Registry,
		popup:    cfg.Popup,
		renderer: cfg.Renderer,
		logger:   cfg.Logger,
	}
}

// Nodes returns the node list in draw order. Callers must not modify it.
func (n *NodeSubsystem) Nodes() []*FlowNode {
	return n.nodes
}

// Connections returns the connection list. Callers must not modify it.
func (n *NodeSubsystem) Connections() []*Connection {
	return n.connections
}

func (n *NodeSubsystem) Registry() *Registry {
	return n.registry
}

// SetRenderer replaces the connection renderer. nil restores the default.
func (n *NodeSubsystem) SetRenderer(r ConnectionRenderer) {
	if r == nil {
		r = BezierRenderer(n.theme.Connection)
	}
	n.renderer = r
}

// AddNode appends node on top of the draw order.
func (n *NodeSubsystem) AddNode(node *FlowNode) {
	node.theme = n.theme
	node.attachPopup(n.popup)
	n.nodes = append(n.nodes, node)
}

func (n *NodeSubsystem) indexOf(node *FlowNode) int {
	return slices.Index(n.nodes, node)
}

// RemoveNode removes node and every connection referencing it.
func (n *NodeSubsystem) RemoveNode(node *FlowNode) error {
	i := n.indexOf(node)
	if i < 0 {
		n.logger.Warn("remove node skipped", "node", node.Title(), "error", ErrNodeNotFound)
		return fmt.Errorf("remove %s: %w", node, ErrNodeNotFound)
	}
	return n.RemoveNodeAt(i)
}

func (n *NodeSubsystem) RemoveNodeAt(i int) error {
	if i < 0 || i >= len(n.nodes) {
		n.logger.Warn("remove node skipped", "index", i, "count", len(n.nodes), "error", ErrNodeIndex)
		return fmt.Errorf("remove node %d: %w", i, ErrNodeIndex)
	}
	node := n.nodes[i]
	n.ClearNodeConnections(node)
	n.nodes = slices.Delete(n.nodes, i, i+1)

	n.grabbed = -1
	n.hover = noHover
	if n.clicking != nil && slices.Contains(node.widgets, n.clicking) {
		n.clicking = nil
	}
	return nil
}

// ClearNodeConnections removes every connection attached to node.
func (n *NodeSubsystem) ClearNodeConnections(node *FlowNode) {
	for _, c := range slices.Clone(n.connections) {
		if c.ReferencesNode(node) {
			n.removeConnection(c)
		}
	}
}

// RemoveConnection detaches c from both its ports and drops it.
func (n *NodeSubsystem) RemoveConnection(c *Connection) error {
	if !n.removeConnection(c) {
		n.logger.Warn("remove connection skipped", "error", ErrConnectionNotFound)
		return ErrConnectionNotFound
	}
	return nil
}

func (n *NodeSubsystem) removeConnection(c *Connection) bool {
	i := slices.Index(n.connections, c)
	if i < 0 {
		return false
	}
	c.detach()
	n.connections = slices.Delete(n.connections, i, i+1)
	if n.selectedConn == c {
		n.selectedConn = nil
	}
	return true
}

// Connect links an output port to an input port, evicting any connection
// already on the input.
func (n *NodeSubsystem) Connect(out *FlowNode, outIndex int, in *FlowNode, inIndex int) (*Connection, error) {
	src, dst := out.Output(outIndex), in.Input(inIndex)
	if src == nil {
		return nil, fmt.Errorf("output %d of %s: %w", outIndex, out, ErrPortIndex)
	}
	if dst == nil {
		return nil, fmt.Errorf("input %d of %s: %w", inIndex, in, ErrPortIndex)
	}
	if src.Type() != dst.Type() {
		return nil, fmt.Errorf("%s -> %s: %w", src.Type(), dst.Type(), ErrTypeMismatch)
	}
	for _, old := range slices.Clone(dst.Connections()) {
		n.removeConnection(old)
	}
	c := newConnection()
	c.setOutput(out, outIndex)
	c.setInput(in, inIndex)
	n.connections = append(n.connections, c)
	return c, nil
}

func (n *NodeSubsystem) nodeState(i int) NodeState {
	switch {
	case i == n.grabbed:
		return NodeGrabbed
	case n.hover.kind == hoverNode && n.hover.node == i:
		return NodeMouseOver
	}
	return NodeIdle
}

// Render draws connections then nodes, and resolves what the pointer is
// over for the next event. It reports whether anything is hovered.
func (n *NodeSubsystem) Render(s surface.Surface, cam *camera.Camera, pointer *geom.Vector2) bool {
	n.pointer = pointer
	for _, c := range n.connections {
		c.Render(s, cam, &n.pool, pointer, n.renderer, c == n.selectedConn)
	}

	for i, node := range n.nodes {
		widget := -1
		if n.hover.kind == hoverWidget && n.hover.node == i {
			widget = n.hover.widgetIndex
		}
		node.Render(s, cam, n.nodeState(i), widget)
	}

	n.hover = noHover
	if pointer == nil {
		return false
	}
	for i, node := range n.nodes {
		hit := node.InBounds(s, cam, *pointer)
		switch {
		case hit.Port != nil:
			n.hover = hover{kind: hoverPort, node: i, port: hit.Port, widgetIndex: -1}
		case hit.Widget != nil:
			n.hover = hover{kind: hoverWidget, node: i, widget: hit.Widget, widgetIndex: hit.WidgetIndex}
		case hit.Node:
			n.hover = hover{kind: hoverNode, node: i, widgetIndex: -1}
		}
	}
	return n.hover.kind != hoverNone
}

// Hovering reports whether the last render found an element under the
// pointer.
func (n *NodeSubsystem) Hovering() bool {
	return n.hover.kind != hoverNone
}

// HoveredNode returns the node under the pointer, including nodes whose
// port or widget is hovered.
func (n *NodeSubsystem) HoveredNode() *FlowNode {
	if n.hover.node < 0 || n.hover.node >= len(n.nodes) {
		return nil
	}
	return n.nodes[n.hover.node]
}

// HoveredPort returns the port under the pointer, or nil.
func (n *NodeSubsystem) HoveredPort() *Port {
	return n.hover.port
}

// Cursor reports the pointer style for the current state.
func (n *NodeSubsystem) Cursor() Cursor {
	switch {
	case n.grabbed >= 0:
		return CursorGrabbing
	case n.hover.kind == hoverNode:
		return CursorGrab
	case n.hover.kind == hoverWidget:
		return CursorPointer
	}
	return CursorDefault
}

// ClickStart begins a gesture on whatever the last render found under the
// pointer. ctrl adds to the selection instead of replacing it. It reports
// whether anything was hit.
func (n *NodeSubsystem) ClickStart(point geom.Vector2, ctrl bool) bool {
	n.pointer = &point
	switch n.hover.kind {
	case hoverNode:
		n.grabbed = n.hover.node
		target := n.nodes[n.grabbed]
		target.Select()
		if !ctrl {
			for _, other := range n.nodes {
				if other != target {
					other.Unselect()
				}
			}
		}
		return true

	case hoverWidget:
		n.clicking = n.hover.widget
		n.clicking.ClickStart()
		return true

	case hoverPort:
		p := n.hover.port
		if p.Direction() == Input && p.HasConnections() {
			c := p.Connections()[0]
			c.clearInput()
			n.selectedConn = c
			return true
		}
		c := newConnection()
		if p.Direction() == Input {
			c.setInput(p.Node(), p.Index())
		} else {
			c.setOutput(p.Node(), p.Index())
		}
		n.connections = append(n.connections, c)
		n.selectedConn = c
		return true
	}
	return false
}

// MouseDragEvent applies a screen-space pointer delta. It reports false
// when nothing claimed the drag, in which case the caller pans instead.
func (n *NodeSubsystem) MouseDragEvent(delta geom.Vector2, scale float64) bool {
	if n.grabbed >= 0 && n.grabbed < len(n.nodes) && !n.nodes[n.grabbed].Locked() {
		n.nodes[n.grabbed].Translate(delta.Scale(1 / scale))
		return true
	}
	if n.clicking != nil {
		if d, ok := n.clicking.(Dragger); ok {
			d.Drag(delta.X / scale)
		}
		return true
	}
	return n.selectedConn != nil
}

// ClickEnd finishes the gesture: it releases the grabbed node, completes
// the widget click and either binds or discards the connection being
// formed.
func (n *NodeSubsystem) ClickEnd() {
	n.grabbed = -1

	if n.clicking != nil {
		w := n.clicking
		n.clicking = nil
		w.ClickEnd()
	}

	if c := n.selectedConn; c != nil {
		n.selectedConn = nil
		n.finishConnection(c)
	}
}

func (n *NodeSubsystem) finishConnection(c *Connection) {
	var target *Port
	if n.hover.kind == hoverPort {
		target = n.hover.port
	}
	bound := c.bound()

	reason := ""
	switch {
	case target == nil:
		reason = "released over empty space"
	case bound == nil:
		reason = "no bound endpoint"
	case c.References(target):
		reason = "released over own endpoint"
	case target.Direction() == bound.Direction():
		reason = ErrDirectionMismatch.Error()
	case target.Type() != bound.Type():
		reason = ErrTypeMismatch.Error()
	}
	if reason != "" {
		n.logger.Debug("connection discarded", "reason", reason)
		n.removeConnection(c)
		return
	}

	if target.Direction() == Input {
		for _, old := range slices.Clone(target.Connections()) {
			if old != c {
				n.removeConnection(old)
			}
		}
		c.setInput(target.Node(), target.Index())
		return
	}
	c.setOutput(target.Node(), target.Index())
}

// OpenContextMenu builds the graph menu for a right click at point. The
// node actions are bound to the node hovered when the menu is built.
func (n *NodeSubsystem) OpenContextMenu(cam *camera.Camera, point geom.Vector2) menu.Config {
	at := cam.ScreenSpaceToGraphSpace(point)
	cfg := menu.Config{
		SubMenus: []menu.Config{n.registry.NewNodeMenu(func(node *FlowNode) {
			node.SetPosition(at)
			n.AddNode(node)
		})},
	}

	node := n.HoveredNode()
	if node == nil {
		return cfg
	}
	cfg.Items = append(cfg.Items,
		menu.Item{Name: "Delete Node", Group: "node", Callback: func() { n.RemoveNode(node) }},
		menu.Item{Name: "Clear Connections", Group: "node", Callback: func() { n.ClearNodeConnections(node) }},
	)
	return cfg.Merge(node.ContextMenu(n.popup, n.registry))
}
