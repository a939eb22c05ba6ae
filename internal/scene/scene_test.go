package scene

import "testing"

func TestNewFallsBackToDefaultSize(t *testing.T) {
	tests := []struct {
		name string
		size int
		want int
	}{
		{name: "explicit size", size: 256, want: 256},
		{name: "zero size", size: 0, want: DefaultCanvasSize},
		{name: "negative size", size: -10, want: DefaultCanvasSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := New(tt.size).Size; got != tt.want {
				t.Errorf("New(%d).Size = %d, want %d", tt.size, got, tt.want)
			}
		})
	}
}

func TestOrderedSortsByLayerStable(t *testing.T) {
	s := New(512)
	s.Append(Primitive{Kind: KindCircle, Layer: 2, Radius: 1})
	s.Append(Primitive{Kind: KindRectangle, Layer: 0, Width: 1})
	s.Append(Primitive{Kind: KindTriangle, Layer: 2, Radius: 2})
	s.Append(Primitive{Kind: KindPath, Layer: 0, Width: 2})

	got := s.Ordered()
	wantKinds := []Kind{KindRectangle, KindPath, KindCircle, KindTriangle}
	for i, k := range wantKinds {
		if got[i].Kind != k {
			t.Errorf("Ordered()[%d].Kind = %s, want %s", i, got[i].Kind, k)
		}
	}

	// Ordered must not disturb insertion order in the scene itself.
	if s.Primitives[0].Kind != KindCircle {
		t.Errorf("Ordered mutated the scene's primitive order")
	}
}

func TestStyleAlpha(t *testing.T) {
	ptr := func(v float64) *float64 { return &v }
	tests := []struct {
		name    string
		opacity *float64
		want    float64
	}{
		{name: "unset means opaque", opacity: nil, want: 1},
		{name: "explicit zero", opacity: ptr(0), want: 0},
		{name: "half", opacity: ptr(0.5), want: 0.5},
		{name: "clamped high", opacity: ptr(3), want: 1},
		{name: "clamped low", opacity: ptr(-1), want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := Style{Opacity: tt.opacity}
			if got := st.Alpha(); got != tt.want {
				t.Errorf("Alpha() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStyleFontDefaults(t *testing.T) {
	family, size, weight := Style{}.Font()
	if family != "sans-serif" || size != 16 || weight != 400 {
		t.Errorf("Font() defaults = %q, %v, %d; want sans-serif, 16, 400", family, size, weight)
	}

	family, size, weight = Style{FontFamily: "serif", FontSize: 32, FontWeight: 700}.Font()
	if family != "serif" || size != 32 || weight != 700 {
		t.Errorf("Font() = %q, %v, %d; want serif, 32, 700", family, size, weight)
	}
}
