// Package camera converts between graph space and screen space.
package camera

import "nodeflow/geom"

const (
	DefaultMinZoom = 0.1
	DefaultMaxZoom = 10.0
)

type Camera struct {
	Zoom     float64
	Position geom.Vector2

	// MinZoom and MaxZoom bound the zoom accumulated from scrolling. Zero
	// values fall back to the defaults.
	MinZoom float64
	MaxZoom float64
}

func New() *Camera {
	return &Camera{Zoom: 1, MinZoom: DefaultMinZoom, MaxZoom: DefaultMaxZoom}
}

func (c *Camera) ScreenSpaceToGraphSpace(p geom.Vector2) geom.Vector2 {
	return geom.Vector2{
		X: (p.X - c.Position.X) / c.Zoom,
		Y: (p.Y - c.Position.Y) / c.Zoom,
	}
}

func (c *Camera) GraphSpaceToScreenSpace(p geom.Vector2) geom.Vector2 {
	return geom.Vector2{
		X: c.Position.X + p.X*c.Zoom,
		Y: c.Position.Y + p.Y*c.Zoom,
	}
}

func (c *Camera) Reset() {
	c.Zoom = 1
	c.Position = geom.Vector2{}
}

// Pan moves the camera by a screen-space delta.
func (c *Camera) Pan(delta geom.Vector2) {
	c.Position = c.Position.Add(delta)
}

// Scroll applies a wheel delta as exponential zoom, clamped to the camera's
// bounds.
func (c *Camera) Scroll(deltaY float64) {
	c.Zoom = c.clamp(c.Zoom + (deltaY/100)*c.Zoom)
}

// ScrollAt zooms like Scroll while keeping the graph point under anchor
// fixed on screen.
func (c *Camera) ScrollAt(deltaY float64, anchor geom.Vector2) {
	before := c.ScreenSpaceToGraphSpace(anchor)
	c.Scroll(deltaY)
	after := c.GraphSpaceToScreenSpace(before)
	c.Position = c.Position.Add(anchor.Sub(after))
}

func (c *Camera) clamp(z float64) float64 {
	lo, hi := c.MinZoom, c.MaxZoom
	if lo <= 0 {
		lo = DefaultMinZoom
	}
	if hi < lo {
		hi = DefaultMaxZoom
		if hi < lo {
			hi = lo
		}
	}
	if z < lo {
		return lo
	}
	if z > hi {
		return hi
	}
	return z
}
