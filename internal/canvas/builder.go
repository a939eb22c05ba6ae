// Package canvas exposes the chainable drawing surface that untrusted
// code populates a scene through. A Builder is single-use: the harness
// creates a fresh one per execution attempt and never shares it.
package canvas

import "github.com/ashureev/sketch-labs/internal/scene"

// Builder owns one scene and a monotonically increasing layer counter.
// Every drawing call appends one primitive tagged with the current layer
// and returns the builder itself so calls compose fluently.
type Builder struct {
	scene *scene.Scene
	layer int
}

// New returns a builder bound to a square canvas of the given edge
// length; a non-positive size falls back to scene.DefaultCanvasSize.
func New(size int) *Builder {
	return &Builder{scene: scene.New(size)}
}

// Scene returns the scene accumulated so far.
func (b *Builder) Scene() *scene.Scene {
	return b.scene
}

// Layer returns the current layer counter.
func (b *Builder) Layer() int {
	return b.layer
}

// AdvanceLayer increments the layer counter. It never decreases and has
// no other side effect.
func (b *Builder) AdvanceLayer() *Builder {
	b.layer++
	return b
}

// Rectangle appends an axis-aligned box at (x, y) with the given width
// and height. Style.CornerRadius rounds the corners; 0 keeps them square.
func (b *Builder) Rectangle(x, y, width, height float64, style scene.Style) *Builder {
	b.append(scene.Primitive{
		Kind:   scene.KindRectangle,
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
		Style:  style,
	})
	return b
}

// Circle appends a circle centered at (x, y). A non-positive radius is a
// silent no-op: nothing is appended and no error is raised.
func (b *Builder) Circle(x, y, radius float64, style scene.Style) *Builder {
	if radius <= 0 {
		return b
	}
	b.append(scene.Primitive{
		Kind:   scene.KindCircle,
		X:      x,
		Y:      y,
		Radius: radius,
		Style:  style,
	})
	return b
}

// Triangle appends a triangle through three explicit vertices. Degenerate
// vertex sets are accepted and render as a clipped or invisible shape.
func (b *Builder) Triangle(x1, y1, x2, y2, x3, y3 float64, style scene.Style) *Builder {
	b.append(scene.Primitive{
		Kind:   scene.KindTriangle,
		Points: []scene.Point{{X: x1, Y: y1}, {X: x2, Y: y2}, {X: x3, Y: y3}},
		Style:  style,
	})
	return b
}

// Line appends a stroked segment from (x1, y1) to (x2, y2). Lines have no
// fill concept; the style's stroke color and width determine visibility.
func (b *Builder) Line(x1, y1, x2, y2 float64, style scene.Style) *Builder {
	b.append(scene.Primitive{
		Kind:   scene.KindLine,
		Points: []scene.Point{{X: x1, Y: y1}, {X: x2, Y: y2}},
		Style:  style,
	})
	return b
}

// Path appends a polyline through the points in order. An empty point
// list is a silent no-op. Style.Closed joins the last point back to the
// first.
func (b *Builder) Path(points []scene.Point, style scene.Style) *Builder {
	if len(points) == 0 {
		return b
	}
	pts := make([]scene.Point, len(points))
	copy(pts, points)
	b.append(scene.Primitive{
		Kind:   scene.KindPath,
		Points: pts,
		Style:  style,
	})
	return b
}

// Arc appends a pie wedge centered at (x, y): the shape runs from the
// center to the arc between the two angles and back. Angles are in
// degrees, 0 pointing right (+x) and increasing clockwise since y grows
// downward. A non-positive radius is a silent no-op.
func (b *Builder) Arc(x, y, radius, startAngleDeg, endAngleDeg float64, style scene.Style) *Builder {
	if radius <= 0 {
		return b
	}
	b.append(scene.Primitive{
		Kind:       scene.KindArc,
		X:          x,
		Y:          y,
		Radius:     radius,
		StartAngle: startAngleDeg,
		EndAngle:   endAngleDeg,
		Style:      style,
	})
	return b
}

// Text appends a text run whose rendered bounds are centered on (x, y),
// horizontally and vertically. Empty content is a silent no-op.
func (b *Builder) Text(content string, x, y float64, style scene.Style) *Builder {
	if content == "" {
		return b
	}
	b.append(scene.Primitive{
		Kind:    scene.KindText,
		X:       x,
		Y:       y,
		Content: content,
		Style:   style,
	})
	return b
}

func (b *Builder) append(p scene.Primitive) {
	p.Layer = b.layer
	b.scene.Append(p)
}
