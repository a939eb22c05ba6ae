package canvas

import (
	"strings"
	"testing"

	"github.com/ashureev/sketch-labs/internal/scene"
)

func TestChainedCallsMatchSeparateStatements(t *testing.T) {
	chained := New(512)
	chained.Rectangle(0, 0, 10, 10, scene.Style{}).
		Circle(5, 5, 3, scene.Style{}).
		AdvanceLayer().
		Text("hi", 5, 5, scene.Style{})

	separate := New(512)
	separate.Rectangle(0, 0, 10, 10, scene.Style{})
	separate.Circle(5, 5, 3, scene.Style{})
	separate.AdvanceLayer()
	separate.Text("hi", 5, 5, scene.Style{})

	a, b := chained.Scene().Primitives, separate.Scene().Primitives
	if len(a) != len(b) {
		t.Fatalf("chained produced %d primitives, separate produced %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Kind != b[i].Kind || a[i].Layer != b[i].Layer {
			t.Errorf("primitive %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestLayerAssignedAtCreation(t *testing.T) {
	b := New(512)
	b.Rectangle(0, 0, 1, 1, scene.Style{})
	b.AdvanceLayer()
	b.Circle(0, 0, 1, scene.Style{})
	b.AdvanceLayer()
	b.AdvanceLayer()
	b.Triangle(0, 0, 1, 0, 0, 1, scene.Style{})

	prims := b.Scene().Primitives
	wantLayers := []int{0, 1, 3}
	for i, want := range wantLayers {
		if prims[i].Layer != want {
			t.Errorf("primitive %d on layer %d, want %d", i, prims[i].Layer, want)
		}
	}
	if b.Layer() != 3 {
		t.Errorf("Layer() = %d, want 3", b.Layer())
	}
}

func TestDegenerateInputsAppendNothing(t *testing.T) {
	tests := []struct {
		name string
		draw func(*Builder)
	}{
		{name: "zero radius circle", draw: func(b *Builder) { b.Circle(10, 10, 0, scene.Style{}) }},
		{name: "negative radius circle", draw: func(b *Builder) { b.Circle(10, 10, -5, scene.Style{}) }},
		{name: "empty path", draw: func(b *Builder) { b.Path(nil, scene.Style{}) }},
		{name: "zero radius arc", draw: func(b *Builder) { b.Arc(10, 10, 0, 0, 90, scene.Style{}) }},
		{name: "empty text", draw: func(b *Builder) { b.Text("", 10, 10, scene.Style{}) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(512)
			tt.draw(b)
			if n := len(b.Scene().Primitives); n != 0 {
				t.Errorf("appended %d primitives, want 0", n)
			}
		})
	}
}

func TestOffCanvasCoordinatesAccepted(t *testing.T) {
	b := New(512)
	b.Rectangle(-100, -100, 50, 50, scene.Style{})
	b.Circle(10000, 10000, 5, scene.Style{})
	if n := len(b.Scene().Primitives); n != 2 {
		t.Errorf("appended %d primitives, want 2", n)
	}
}

func TestPathCopiesPoints(t *testing.T) {
	pts := []scene.Point{{X: 1, Y: 2}, {X: 3, Y: 4}}
	b := New(512)
	b.Path(pts, scene.Style{})
	pts[0].X = 99
	if got := b.Scene().Primitives[0].Points[0].X; got != 1 {
		t.Errorf("path points aliased caller slice: got %v, want 1", got)
	}
}

func TestAPIReferenceCoversAllOperations(t *testing.T) {
	ops := []string{
		"canvas.rectangle", "canvas.circle", "canvas.triangle", "canvas.line",
		"canvas.path", "canvas.arc", "canvas.text", "canvas.advanceLayer",
	}
	for _, op := range ops {
		if !strings.Contains(APIReference, op) {
			t.Errorf("APIReference missing %s", op)
		}
	}
}
