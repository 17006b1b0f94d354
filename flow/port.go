package flow

import (
	"nodeflow/geom"
	"nodeflow/surface"
	"nodeflow/theme"
)

type PortDirection int

const (
	Input PortDirection = iota
	Output
)

func (d PortDirection) String() string {
	if d == Input {
		return "input"
	}
	return "output"
}

// Port is a typed connection endpoint owned by one node.
type Port struct {
	name        string
	typ         string
	direction   PortDirection
	node        *FlowNode
	connections []*Connection
}

// PortConfig declares a port when building a node.
type PortConfig struct {
	Name string
	Type string
}

func (p *Port) Name() string {
	return p.name
}

func (p *Port) SetName(name string) {
	p.name = name
}

// Type is the tag compared for connection compatibility.
func (p *Port) Type() string {
	return p.typ
}

func (p *Port) Direction() PortDirection {
	return p.direction
}

func (p *Port) Node() *FlowNode {
	return p.node
}

// Index returns the port's position within its node's inputs or outputs.
func (p *Port) Index() int {
	if p.node == nil {
		return -1
	}
	ports := p.node.inputs
	if p.direction == Output {
		ports = p.node.outputs
	}
	for i, q := range ports {
		if q == p {
			return i
		}
	}
	return -1
}

func (p *Port) Connections() []*Connection {
	return p.connections
}

func (p *Port) HasConnections() bool {
	return len(p.connections) > 0
}

func (p *Port) addConnection(c *Connection) {
	for _, existing := range p.connections {
		if existing == c {
			return
		}
	}
	p.connections = append(p.connections, c)
}

func (p *Port) removeConnection(c *Connection) {
	for i, existing := range p.connections {
		if existing == c {
			p.connections = append(p.connections[:i:i], p.connections[i+1:]...)
			return
		}
	}
}

// Render draws the port indicator centered at pos and returns its hit box,
// the square bounding the indicator circle.
func (p *Port) Render(s surface.Surface, pos geom.Vector2, scale float64, th theme.PortTheme) geom.Box {
	radius := th.Radius * scale
	fill := th.EmptyFill
	if p.HasConnections() {
		fill = th.FilledFill
	}
	s.FillCircle(pos, radius, fill)
	s.StrokeCircle(pos, radius, th.BorderWidth*scale, th.Border)
	return geom.SquareAround(pos, radius)
}
