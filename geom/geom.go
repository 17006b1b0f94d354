// Package geom holds the 2D primitives shared by the canvas: points, boxes
// and a scratch pool for short-lived vectors inside the render loop.
package geom

import "math"

type Vector2 struct {
	X float64
	Y float64
}

type Box struct {
	Position Vector2
	Size     Vector2
}

func Zero() Vector2 {
	return Vector2{}
}

func CopyVector2(out *Vector2, in Vector2) {
	out.X = in.X
	out.Y = in.Y
}

func AddVector2(out *Vector2, a, b Vector2) {
	out.X = a.X + b.X
	out.Y = a.Y + b.Y
}

func SubVector2(out *Vector2, a, b Vector2) {
	out.X = a.X - b.X
	out.Y = a.Y - b.Y
}

func ScaleVector2(out *Vector2, v Vector2, s float64) {
	out.X = v.X * s
	out.Y = v.Y * s
}

func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vector2) Scale(s float64) Vector2 {
	return Vector2{X: v.X * s, Y: v.Y * s}
}

func (v Vector2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// InBox reports whether p lies inside b, edges included.
func InBox(b Box, p Vector2) bool {
	return p.X >= b.Position.X && p.X <= b.Position.X+b.Size.X &&
		p.Y >= b.Position.Y && p.Y <= b.Position.Y+b.Size.Y
}

// BoxIntersection reports whether two boxes overlap. Boxes with negative
// sizes are normalized first.
func BoxIntersection(a, b Box) bool {
	aMinX, aMaxX := span(a.Position.X, a.Size.X)
	aMinY, aMaxY := span(a.Position.Y, a.Size.Y)
	bMinX, bMaxX := span(b.Position.X, b.Size.X)
	bMinY, bMaxY := span(b.Position.Y, b.Size.Y)

	if aMaxX < bMinX || bMaxX < aMinX {
		return false
	}
	if aMaxY < bMinY || bMaxY < aMinY {
		return false
	}
	return true
}

func span(pos, size float64) (float64, float64) {
	if size < 0 {
		return pos + size, pos
	}
	return pos, pos + size
}

// Center returns the midpoint of the box.
func (b Box) Center() Vector2 {
	return Vector2{X: b.Position.X + b.Size.X/2, Y: b.Position.Y + b.Size.Y/2}
}

// Right returns the x coordinate of the right edge.
func (b Box) Right() float64 {
	return b.Position.X + b.Size.X
}

// Bottom returns the y coordinate of the bottom edge.
func (b Box) Bottom() float64 {
	return b.Position.Y + b.Size.Y
}

// SquareAround returns the box bounding a circle of radius r centered at c.
func SquareAround(c Vector2, r float64) Box {
	return Box{
		Position: Vector2{X: c.X - r, Y: c.Y - r},
		Size:     Vector2{X: r * 2, Y: r * 2},
	}
}

// Union returns the smallest box containing a and b.
func Union(a, b Box) Box {
	x0, y0 := math.Min(a.Position.X, b.Position.X), math.Min(a.Position.Y, b.Position.Y)
	x1, y1 := math.Max(a.Right(), b.Right()), math.Max(a.Bottom(), b.Bottom())
	return Box{
		Position: Vector2{X: x0, Y: y0},
		Size:     Vector2{X: x1 - x0, Y: y1 - y0},
	}
}
