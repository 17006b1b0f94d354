package flow

import (
	"nodeflow/camera"
	"nodeflow/geom"
	"nodeflow/surface"
	"nodeflow/theme"
)

// ConnectionRenderer draws a link from start (the output side) to end (the
// input side).
type ConnectionRenderer func(s surface.Surface, start, end geom.Vector2, scale float64, hovered bool)

// BezierRenderer returns the default renderer: a cubic curve whose control
// points sit at the horizontal midpoint, level with each endpoint.
func BezierRenderer(th theme.ConnectionTheme) ConnectionRenderer {
	return func(s surface.Surface, start, end geom.Vector2, scale float64, hovered bool) {
		c := th.Color
		if hovered {
			c = th.HoverColor
		}
		midX := (start.X + end.X) / 2
		s.StrokeBezier(
			start,
			geom.Vector2{X: midX, Y: start.Y},
			geom.Vector2{X: midX, Y: end.Y},
			end,
			th.Width*scale, c)
	}
}

// Connection links an output port to an input port. Either side may be
// unbound while the user is dragging; the free end follows the pointer.
type Connection struct {
	inNode  *FlowNode
	inPort  int
	outNode *FlowNode
	outPort int
}

func newConnection() *Connection {
	return &Connection{inPort: -1, outPort: -1}
}

func (c *Connection) InNode() *FlowNode { return c.inNode }
func (c *Connection) OutNode() *FlowNode { return c.outNode }
func (c *Connection) InPortIndex() int { return c.inPort }
func (c *Connection) OutPortIndex() int { return c.outPort }

// InPort returns the bound input port, or nil while dangling.
func (c *Connection) InPort() *Port {
	if c.inNode == nil {
		return nil
	}
	return c.inNode.Input(c.inPort)
}

// OutPort returns the bound output port, or nil while dangling.
func (c *Connection) OutPort() *Port {
	if c.outNode == nil {
		return nil
	}
	return c.outNode.Output(c.outPort)
}

// Dangling reports whether at least one end is unbound.
func (c *Connection) Dangling() bool {
	return c.inNode == nil || c.outNode == nil
}

func (c *Connection) setInput(n *FlowNode, index int) {
	c.clearInput()
	c.inNode, c.inPort = n, index
	if p := c.InPort(); p != nil {
		p.addConnection(c)
	}
}

func (c *Connection) setOutput(n *FlowNode, index int) {
	c.clearOutput()
	c.outNode, c.outPort = n, index
	if p := c.OutPort(); p != nil {
		p.addConnection(c)
	}
}

func (c *Connection) clearInput() {
	if p := c.InPort(); p != nil {
		p.removeConnection(c)
	}
	c.inNode, c.inPort = nil, -1
}

func (c *Connection) clearOutput() {
	if p := c.OutPort(); p != nil {
		p.removeConnection(c)
	}
	c.outNode, c.outPort = nil, -1
}

// detach unbinds both ends so no port keeps a reference to c.
func (c *Connection) detach() {
	c.clearInput()
	c.clearOutput()
}

// References reports whether p is one of c's bound endpoints.
func (c *Connection) References(p *Port) bool {
	return p != nil && (c.InPort() == p || c.OutPort() == p)
}

// ReferencesNode reports whether either end is bound to n.
func (c *Connection) ReferencesNode(n *FlowNode) bool {
	return n != nil && (c.inNode == n || c.outNode == n)
}

// bound returns the port on the side that is attached, preferring the
// input. It is nil only for a fully dangling connection.
func (c *Connection) bound() *Port {
	if p := c.InPort(); p != nil {
		return p
	}
	return c.OutPort()
}

// Render draws the connection using each bound port's current position and
// the pointer for a dangling end. It draws nothing when an end is dangling
// and the pointer is unknown.
func (c *Connection) Render(s surface.Surface, cam *camera.Camera, pool *geom.Pool, pointer *geom.Vector2, draw ConnectionRenderer, hovered bool) {
	pool.Push()
	defer pool.Pop()

	start, end := pool.Get(), pool.Get()
	if !c.endpoint(s, cam, pointer, Output, start) || !c.endpoint(s, cam, pointer, Input, end) {
		return
	}
	draw(s, *start, *end, cam.Zoom, hovered)
}

func (c *Connection) endpoint(s surface.Surface, cam *camera.Camera, pointer *geom.Vector2, dir PortDirection, out *geom.Vector2) bool {
	node, index := c.inNode, c.inPort
	if dir == Output {
		node, index = c.outNode, c.outPort
	}
	if node == nil {
		if pointer == nil {
			return false
		}
		geom.CopyVector2(out, *pointer)
		return true
	}
	pos, ok := node.PortPosition(s, cam, dir, index)
	if !ok {
		return false
	}
	geom.CopyVector2(out, pos)
	return true
}
