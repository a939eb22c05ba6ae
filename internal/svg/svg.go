// Package svg serializes a scene to SVG markup for display surfaces
// that embed vector output directly. Output follows the same layer
// ordering as the rasterizer, so the two views of a scene agree.
package svg

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ashureev/sketch-labs/internal/scene"
)

// Encode renders the scene as a standalone SVG document.
func Encode(sc *scene.Scene) []byte {
	size := sc.Size
	if size <= 0 {
		size = scene.DefaultCanvasSize
	}
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`, size, size, size, size)
	b.WriteByte('\n')
	for _, p := range sc.Ordered() {
		writePrimitive(&b, p)
	}
	b.WriteString("</svg>\n")
	return []byte(b.String())
}

func writePrimitive(b *strings.Builder, p scene.Primitive) {
	switch p.Kind {
	case scene.KindRectangle:
		fmt.Fprintf(b, `<rect x="%s" y="%s" width="%s" height="%s"`,
			num(p.X), num(p.Y), num(p.Width), num(p.Height))
		if p.Style.CornerRadius > 0 {
			fmt.Fprintf(b, ` rx="%s"`, num(p.Style.CornerRadius))
		}
	case scene.KindCircle:
		fmt.Fprintf(b, `<circle cx="%s" cy="%s" r="%s"`, num(p.X), num(p.Y), num(p.Radius))
	case scene.KindTriangle:
		fmt.Fprintf(b, `<polygon points="%s"`, points(p.Points))
	case scene.KindLine:
		if len(p.Points) < 2 {
			return
		}
		fmt.Fprintf(b, `<line x1="%s" y1="%s" x2="%s" y2="%s"`,
			num(p.Points[0].X), num(p.Points[0].Y), num(p.Points[1].X), num(p.Points[1].Y))
	case scene.KindPath:
		if p.Style.Closed {
			fmt.Fprintf(b, `<polygon points="%s"`, points(p.Points))
		} else {
			fmt.Fprintf(b, `<polyline points="%s"`, points(p.Points))
		}
	case scene.KindArc:
		fmt.Fprintf(b, `<path d="%s"`, wedgePath(p))
	case scene.KindText:
		family, size, weight := p.Style.Font()
		fmt.Fprintf(b, `<text x="%s" y="%s" text-anchor="middle" dominant-baseline="central" font-family="%s" font-size="%s" font-weight="%d"`,
			num(p.X), num(p.Y), escape(family), num(size), weight)
		writeStyle(b, p)
		fmt.Fprintf(b, ">%s</text>\n", escape(p.Content))
		return
	default:
		return
	}
	writeStyle(b, p)
	b.WriteString("/>\n")
}

func writeStyle(b *strings.Builder, p scene.Primitive) {
	fill := p.Style.Fill
	if fill == "" || p.Kind == scene.KindLine {
		fill = "none"
	}
	fmt.Fprintf(b, ` fill="%s"`, escape(fill))
	if p.Style.Stroke != "" && p.Style.StrokeWidth > 0 {
		fmt.Fprintf(b, ` stroke="%s" stroke-width="%s"`, escape(p.Style.Stroke), num(p.Style.StrokeWidth))
	}
	if a := p.Style.Alpha(); a != 1 {
		fmt.Fprintf(b, ` opacity="%s"`, num(a))
	}
}

// wedgePath emits the pie-slice path: move to center, line to the arc
// start, arc to the end, close. The large-arc flag is set when the span
// exceeds a half turn, the sweep flag when the end angle is greater than
// the start (clockwise in y-down space).
func wedgePath(p scene.Primitive) string {
	span := p.EndAngle - p.StartAngle
	start := p.StartAngle * math.Pi / 180
	end := p.EndAngle * math.Pi / 180
	sx := p.X + p.Radius*math.Cos(start)
	sy := p.Y + p.Radius*math.Sin(start)
	ex := p.X + p.Radius*math.Cos(end)
	ey := p.Y + p.Radius*math.Sin(end)
	largeArc := 0
	if math.Abs(span) > 180 {
		largeArc = 1
	}
	sweep := 0
	if span > 0 {
		sweep = 1
	}
	return fmt.Sprintf("M %s %s L %s %s A %s %s 0 %d %d %s %s Z",
		num(p.X), num(p.Y), num(sx), num(sy),
		num(p.Radius), num(p.Radius), largeArc, sweep, num(ex), num(ey))
}

func points(pts []scene.Point) string {
	parts := make([]string, len(pts))
	for i, pt := range pts {
		parts[i] = num(pt.X) + "," + num(pt.Y)
	}
	return strings.Join(parts, " ")
}

// num formats a coordinate without trailing zero noise.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// escape neutralizes markup-significant characters in attribute values
// and text content. Submitted code controls these strings, so they are
// never emitted raw.
func escape(s string) string {
	return escaper.Replace(s)
}
