// Package scene defines the layered vector scene model: drawable
// primitives with styles, grouped on an ordered canvas. The scene is pure
// data; rasterization lives in internal/render.
package scene

import "sort"

// DefaultCanvasSize is the canvas edge length used when a caller does not
// supply one.
const DefaultCanvasSize = 512

// Kind identifies a primitive shape variant.
type Kind string

const (
	KindRectangle Kind = "rectangle"
	KindCircle    Kind = "circle"
	KindTriangle  Kind = "triangle"
	KindLine      Kind = "line"
	KindPath      Kind = "path"
	KindArc       Kind = "arc"
	KindText      Kind = "text"
)

// Point is a coordinate in canvas pixel space (origin top-left, y down).
type Point struct {
	X float64
	Y float64
}

// Style carries the visual attributes of a primitive. Color fields hold
// CSS-style color strings ("#rrggbb", "#rgb", "#rrggbbaa" or a named
// color); empty, "none" and "transparent" mean no paint. Opacity is nil
// when the caller did not set one, meaning fully opaque.
type Style struct {
	Fill         string
	Stroke       string
	StrokeWidth  float64
	Opacity      *float64
	CornerRadius float64
	FontFamily   string
	FontSize     float64
	FontWeight   int
	Closed       bool
}

// Alpha returns the effective opacity in [0, 1].
func (s Style) Alpha() float64 {
	if s.Opacity == nil {
		return 1
	}
	a := *s.Opacity
	if a < 0 {
		return 0
	}
	if a > 1 {
		return 1
	}
	return a
}

// Font returns the effective font family, size and weight, substituting
// the documented defaults for unset fields.
func (s Style) Font() (family string, size float64, weight int) {
	family, size, weight = s.FontFamily, s.FontSize, s.FontWeight
	if family == "" {
		family = "sans-serif"
	}
	if size <= 0 {
		size = 16
	}
	if weight <= 0 {
		weight = 400
	}
	return family, size, weight
}

// Primitive is one drawable shape instance. Only the fields relevant to
// its Kind are populated; Layer is assigned by the builder at creation
// time and never changes afterwards.
type Primitive struct {
	Kind Kind

	// Rectangle: X, Y, Width, Height and Style.CornerRadius.
	X      float64
	Y      float64
	Width  float64
	Height float64

	// Circle and arc: X, Y center plus Radius; arc adds the angle pair.
	Radius     float64
	StartAngle float64
	EndAngle   float64

	// Triangle, line and path vertices, in order.
	Points []Point

	// Text content, centered on (X, Y).
	Content string

	Style Style
	Layer int
}

// Scene is an ordered collection of primitives on a square canvas.
type Scene struct {
	Size       int
	Primitives []Primitive
}

// New returns an empty scene with the given canvas edge length; a
// non-positive size falls back to DefaultCanvasSize.
func New(size int) *Scene {
	if size <= 0 {
		size = DefaultCanvasSize
	}
	return &Scene{Size: size}
}

// Append adds a primitive to the scene, preserving insertion order.
func (s *Scene) Append(p Primitive) {
	s.Primitives = append(s.Primitives, p)
}

// Ordered returns the primitives in render order: layer ascending, ties
// broken by insertion order. The stable sort is what makes rendering
// reproducible for identical input code.
func (s *Scene) Ordered() []Primitive {
	out := make([]Primitive, len(s.Primitives))
	copy(out, s.Primitives)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Layer < out[j].Layer
	})
	return out
}
