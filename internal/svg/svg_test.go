package svg

import (
	"strings"
	"testing"

	"github.com/ashureev/sketch-labs/internal/canvas"
	"github.com/ashureev/sketch-labs/internal/scene"
)

func TestEncodeEscapesTextContent(t *testing.T) {
	b := canvas.New(512)
	b.Text(`<script>alert("x")</script> & 'more'`, 100, 100, scene.Style{Fill: "black"})

	out := string(Encode(b.Scene()))
	if strings.Contains(out, "<script>") {
		t.Errorf("markup leaked into output:\n%s", out)
	}
	for _, want := range []string{"&lt;script&gt;", "&amp;", "&quot;", "&#39;"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing escaped form %s", want)
		}
	}
}

func TestEncodeEscapesStyleStrings(t *testing.T) {
	b := canvas.New(512)
	b.Rectangle(0, 0, 10, 10, scene.Style{Fill: `"><script>`})

	out := string(Encode(b.Scene()))
	if strings.Contains(out, `"><script>`) {
		t.Errorf("attribute injection leaked into output:\n%s", out)
	}
}

func TestEncodeEmitsLayerOrder(t *testing.T) {
	sc := scene.New(64)
	sc.Append(scene.Primitive{Kind: scene.KindCircle, X: 1, Y: 1, Radius: 1, Layer: 1})
	sc.Append(scene.Primitive{Kind: scene.KindRectangle, Width: 2, Height: 2, Layer: 0})

	out := string(Encode(sc))
	rect := strings.Index(out, "<rect")
	circle := strings.Index(out, "<circle")
	if rect < 0 || circle < 0 || rect > circle {
		t.Errorf("layer 0 rect must precede layer 1 circle:\n%s", out)
	}
}

func TestEncodePrimitiveElements(t *testing.T) {
	half := 0.5
	tests := []struct {
		name string
		prim scene.Primitive
		want []string
	}{
		{
			name: "rounded rectangle",
			prim: scene.Primitive{Kind: scene.KindRectangle, X: 1, Y: 2, Width: 3, Height: 4,
				Style: scene.Style{Fill: "red", CornerRadius: 2}},
			want: []string{`<rect x="1" y="2" width="3" height="4" rx="2"`, `fill="red"`},
		},
		{
			name: "circle with stroke",
			prim: scene.Primitive{Kind: scene.KindCircle, X: 5, Y: 6, Radius: 7,
				Style: scene.Style{Stroke: "blue", StrokeWidth: 2}},
			want: []string{`<circle cx="5" cy="6" r="7"`, `stroke="blue" stroke-width="2"`},
		},
		{
			name: "line has no fill",
			prim: scene.Primitive{Kind: scene.KindLine,
				Points: []scene.Point{{X: 0, Y: 0}, {X: 9, Y: 9}},
				Style:  scene.Style{Fill: "red", Stroke: "black", StrokeWidth: 1}},
			want: []string{`<line x1="0" y1="0" x2="9" y2="9"`, `fill="none"`},
		},
		{
			name: "closed path becomes polygon",
			prim: scene.Primitive{Kind: scene.KindPath,
				Points: []scene.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 2, Y: 3}},
				Style:  scene.Style{Closed: true, Fill: "green"}},
			want: []string{`<polygon points="0,0 4,0 2,3"`},
		},
		{
			name: "open path becomes polyline",
			prim: scene.Primitive{Kind: scene.KindPath,
				Points: []scene.Point{{X: 0, Y: 0}, {X: 4, Y: 4}},
				Style:  scene.Style{Stroke: "black", StrokeWidth: 1}},
			want: []string{`<polyline points="0,0 4,4"`},
		},
		{
			name: "opacity attribute",
			prim: scene.Primitive{Kind: scene.KindCircle, X: 1, Y: 1, Radius: 1,
				Style: scene.Style{Fill: "red", Opacity: &half}},
			want: []string{`opacity="0.5"`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := scene.New(64)
			sc.Append(tt.prim)
			out := string(Encode(sc))
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestWedgeFlags(t *testing.T) {
	tests := []struct {
		name       string
		start, end float64
		largeArc   string
		sweep      string
	}{
		{name: "quarter clockwise", start: 0, end: 90, largeArc: "0", sweep: "1"},
		{name: "three quarters clockwise", start: 0, end: 270, largeArc: "1", sweep: "1"},
		{name: "quarter counterclockwise", start: 90, end: 0, largeArc: "0", sweep: "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := scene.New(512)
			sc.Append(scene.Primitive{Kind: scene.KindArc, X: 256, Y: 256, Radius: 100,
				StartAngle: tt.start, EndAngle: tt.end, Style: scene.Style{Fill: "red"}})
			out := string(Encode(sc))
			want := " 0 " + tt.largeArc + " " + tt.sweep + " "
			if !strings.Contains(out, want) {
				t.Errorf("arc flags: output missing %q:\n%s", want, out)
			}
		})
	}
}
