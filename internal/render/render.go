// Package render compiles a scene into a raster image. Shapes are
// rasterized with the rasterx scanline engine in layer order onto an
// initially transparent RGBA canvas; text is drawn with the bundled Go
// fonts. Identical scenes always render to byte-identical images.
package render

import (
	"fmt"
	"image"
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/fixed"

	"github.com/ashureev/sketch-labs/internal/scene"
)

// Renderer rasterizes scenes. The zero value is not usable; construct
// with New. A Renderer holds no per-scene state and is safe to share
// across sequential renders.
type Renderer struct{}

// New returns a renderer.
func New() *Renderer {
	return &Renderer{}
}

// Error reports a failed render. It is fatal for the attempt but leaves
// the scene and any previously recorded attempts untouched.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("render %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Render rasterizes the scene at its own canvas size.
func (r *Renderer) Render(sc *scene.Scene) (*Image, error) {
	if sc == nil {
		return nil, &Error{Op: "scene", Err: fmt.Errorf("nil scene")}
	}
	return r.RenderSized(sc, sc.Size)
}

// RenderSized rasterizes the scene at its canvas size and then, if
// outSize differs, uniformly resamples the result with Catmull-Rom
// interpolation.
func (r *Renderer) RenderSized(sc *scene.Scene, outSize int) (*Image, error) {
	if sc == nil {
		return nil, &Error{Op: "scene", Err: fmt.Errorf("nil scene")}
	}
	size := sc.Size
	if size <= 0 {
		size = scene.DefaultCanvasSize
	}
	if outSize <= 0 {
		return nil, &Error{Op: "resample", Err: fmt.Errorf("output size must be positive, got %d", outSize)}
	}

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	filler := rasterx.NewFiller(size, size, scanner)
	dasher := rasterx.NewDasher(size, size, scanner)

	for _, p := range sc.Ordered() {
		if p.Kind == scene.KindText {
			if err := drawText(img, p); err != nil {
				return nil, &Error{Op: "text", Err: err}
			}
			continue
		}
		drawShape(filler, dasher, p)
	}

	if outSize != size {
		scaled := image.NewRGBA(image.Rect(0, 0, outSize, outSize))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)
		img = scaled
	}
	return &Image{rgba: img}, nil
}

// drawShape paints one non-text primitive: fill first, then stroke, the
// usual vector paint order.
func drawShape(filler *rasterx.Filler, dasher *rasterx.Dasher, p scene.Primitive) {
	alpha := p.Style.Alpha()
	if alpha <= 0 {
		return
	}

	// Lines have no fill concept.
	if p.Kind != scene.KindLine {
		if fill, ok := parseColor(p.Style.Fill); ok {
			filler.Clear()
			addShape(filler, p)
			filler.Scanner.SetColor(rasterx.ApplyOpacity(fill, alpha))
			filler.Draw()
			filler.Clear()
		}
	}

	if stroke, ok := parseColor(p.Style.Stroke); ok && p.Style.StrokeWidth > 0 {
		dasher.Clear()
		dasher.SetStroke(
			toFixed(p.Style.StrokeWidth), toFixed(4),
			rasterx.ButtCap, rasterx.ButtCap, rasterx.FlatGap, rasterx.Miter,
			nil, 0,
		)
		addShape(dasher, p)
		dasher.Scanner.SetColor(rasterx.ApplyOpacity(stroke, alpha))
		dasher.Draw()
		dasher.Clear()
	}
}

// addShape traces the primitive's outline into the adder.
func addShape(a rasterx.Adder, p scene.Primitive) {
	switch p.Kind {
	case scene.KindRectangle:
		addRect(a, p)
	case scene.KindCircle:
		addEllipticalArc(a, p.X, p.Y, p.Radius, 0, 360, true)
		a.Stop(true)
	case scene.KindArc:
		addWedge(a, p)
	case scene.KindTriangle:
		addPoly(a, p.Points, true)
	case scene.KindLine:
		addPoly(a, p.Points, false)
	case scene.KindPath:
		addPoly(a, p.Points, p.Style.Closed)
	}
}

func addPoly(a rasterx.Adder, pts []scene.Point, closed bool) {
	if len(pts) == 0 {
		return
	}
	a.Start(toFixedP(pts[0].X, pts[0].Y))
	for _, pt := range pts[1:] {
		a.Line(toFixedP(pt.X, pt.Y))
	}
	a.Stop(closed)
}

func addRect(a rasterx.Adder, p scene.Primitive) {
	x, y, w, h := p.X, p.Y, p.Width, p.Height
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}
	if w == 0 || h == 0 {
		return
	}

	r := p.Style.CornerRadius
	if r > w/2 {
		r = w / 2
	}
	if r > h/2 {
		r = h / 2
	}
	if r <= 0 {
		addPoly(a, []scene.Point{
			{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h},
		}, true)
		return
	}

	// Rounded corners: straight edges joined by quarter-circle beziers.
	k := bezierCircleK * r
	a.Start(toFixedP(x+r, y))
	a.Line(toFixedP(x+w-r, y))
	a.CubeBezier(toFixedP(x+w-r+k, y), toFixedP(x+w, y+r-k), toFixedP(x+w, y+r))
	a.Line(toFixedP(x+w, y+h-r))
	a.CubeBezier(toFixedP(x+w, y+h-r+k), toFixedP(x+w-r+k, y+h), toFixedP(x+w-r, y+h))
	a.Line(toFixedP(x+r, y+h))
	a.CubeBezier(toFixedP(x+r-k, y+h), toFixedP(x, y+h-r+k), toFixedP(x, y+h-r))
	a.Line(toFixedP(x, y+r))
	a.CubeBezier(toFixedP(x, y+r-k), toFixedP(x+r-k, y), toFixedP(x+r, y))
	a.Stop(true)
}

// addWedge traces a pie slice: center, out to the arc start, along the
// arc, and back. Angles are degrees, 0 = +x, increasing clockwise in the
// y-down coordinate space.
func addWedge(a rasterx.Adder, p scene.Primitive) {
	span := p.EndAngle - p.StartAngle
	if span > 360 {
		span = 360
	}
	if span < -360 {
		span = -360
	}
	start := p.StartAngle * math.Pi / 180
	a.Start(toFixedP(p.X, p.Y))
	a.Line(toFixedP(p.X+p.Radius*math.Cos(start), p.Y+p.Radius*math.Sin(start)))
	addEllipticalArc(a, p.X, p.Y, p.Radius, p.StartAngle, p.StartAngle+span, false)
	a.Stop(true)
}

// bezierCircleK is the cubic control-point distance that best
// approximates a quarter circle of unit radius.
const bezierCircleK = 0.5522847498307936

// addEllipticalArc traces a circular arc between two angles (degrees) as
// cubic bezier segments of at most a quarter turn each. When start is
// true the path is started at the arc's first point; otherwise the arc
// continues the current path with a line to its first point omitted
// (the caller has already positioned the pen there).
func addEllipticalArc(a rasterx.Adder, cx, cy, r, fromDeg, toDeg float64, start bool) {
	span := toDeg - fromDeg
	segs := int(math.Ceil(math.Abs(span) / 90))
	if segs < 1 {
		segs = 1
	}
	step := span / float64(segs) * math.Pi / 180
	t := fromDeg * math.Pi / 180
	if start {
		a.Start(toFixedP(cx+r*math.Cos(t), cy+r*math.Sin(t)))
	}
	k := 4.0 / 3.0 * math.Tan(step/4) * r
	for i := 0; i < segs; i++ {
		t1 := t + step
		// Tangent direction at angle t is (-sin t, cos t).
		c1x := cx + r*math.Cos(t) - k*math.Sin(t)
		c1y := cy + r*math.Sin(t) + k*math.Cos(t)
		c2x := cx + r*math.Cos(t1) + k*math.Sin(t1)
		c2y := cy + r*math.Sin(t1) - k*math.Cos(t1)
		a.CubeBezier(toFixedP(c1x, c1y), toFixedP(c2x, c2y), toFixedP(cx+r*math.Cos(t1), cy+r*math.Sin(t1)))
		t = t1
	}
}

// maxCoord bounds coordinates before fixed-point conversion; scripts can
// hand us NaN or infinities and those must not poison the rasterizer.
const maxCoord = 1 << 20

func toFixed(v float64) fixed.Int26_6 {
	switch {
	case math.IsNaN(v):
		v = 0
	case v > maxCoord:
		v = maxCoord
	case v < -maxCoord:
		v = -maxCoord
	}
	return fixed.Int26_6(math.Round(v * 64))
}

func toFixedP(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{X: toFixed(x), Y: toFixed(y)}
}
