package sandbox

import (
	"fmt"

	"github.com/dop251/goja"

	"github.com/ashureev/sketch-labs/internal/canvas"
	"github.com/ashureev/sketch-labs/internal/scene"
)

// binding adapts one builder into the "canvas" object a script sees.
// Every method returns the same object so scripts can chain calls.
type binding struct {
	vm       *goja.Runtime
	builder  *canvas.Builder
	self     *goja.Object
	steps    int
	maxSteps int
}

// bindCanvas installs the drawing surface as the script's sole global.
func bindCanvas(vm *goja.Runtime, builder *canvas.Builder, maxSteps int) *binding {
	b := &binding{
		vm:       vm,
		builder:  builder,
		self:     vm.NewObject(),
		maxSteps: maxSteps,
	}
	methods := map[string]func(goja.FunctionCall) goja.Value{
		"rectangle":    b.rectangle,
		"circle":       b.circle,
		"triangle":     b.triangle,
		"line":         b.line,
		"path":         b.path,
		"arc":          b.arc,
		"text":         b.text,
		"advanceLayer": b.advanceLayer,
	}
	for name, fn := range methods {
		_ = b.self.Set(name, fn)
	}
	_ = vm.Set("canvas", b.self)
	return b
}

// step enforces the per-execution drawing budget.
func (b *binding) step() {
	b.steps++
	if b.maxSteps > 0 && b.steps > b.maxSteps {
		panic(b.vm.NewGoError(fmt.Errorf("drawing step budget of %d exceeded", b.maxSteps)))
	}
}

func (b *binding) rectangle(call goja.FunctionCall) goja.Value {
	b.step()
	b.builder.Rectangle(
		call.Argument(0).ToFloat(),
		call.Argument(1).ToFloat(),
		call.Argument(2).ToFloat(),
		call.Argument(3).ToFloat(),
		exportStyle(call.Argument(4)),
	)
	return b.self
}

func (b *binding) circle(call goja.FunctionCall) goja.Value {
	b.step()
	b.builder.Circle(
		call.Argument(0).ToFloat(),
		call.Argument(1).ToFloat(),
		call.Argument(2).ToFloat(),
		exportStyle(call.Argument(3)),
	)
	return b.self
}

func (b *binding) triangle(call goja.FunctionCall) goja.Value {
	b.step()
	b.builder.Triangle(
		call.Argument(0).ToFloat(),
		call.Argument(1).ToFloat(),
		call.Argument(2).ToFloat(),
		call.Argument(3).ToFloat(),
		call.Argument(4).ToFloat(),
		call.Argument(5).ToFloat(),
		exportStyle(call.Argument(6)),
	)
	return b.self
}

func (b *binding) line(call goja.FunctionCall) goja.Value {
	b.step()
	b.builder.Line(
		call.Argument(0).ToFloat(),
		call.Argument(1).ToFloat(),
		call.Argument(2).ToFloat(),
		call.Argument(3).ToFloat(),
		exportStyle(call.Argument(4)),
	)
	return b.self
}

func (b *binding) path(call goja.FunctionCall) goja.Value {
	b.step()
	b.builder.Path(exportPoints(call.Argument(0)), exportStyle(call.Argument(1)))
	return b.self
}

func (b *binding) arc(call goja.FunctionCall) goja.Value {
	b.step()
	b.builder.Arc(
		call.Argument(0).ToFloat(),
		call.Argument(1).ToFloat(),
		call.Argument(2).ToFloat(),
		call.Argument(3).ToFloat(),
		call.Argument(4).ToFloat(),
		exportStyle(call.Argument(5)),
	)
	return b.self
}

func (b *binding) text(call goja.FunctionCall) goja.Value {
	b.step()
	b.builder.Text(
		call.Argument(0).String(),
		call.Argument(1).ToFloat(),
		call.Argument(2).ToFloat(),
		exportStyle(call.Argument(3)),
	)
	return b.self
}

func (b *binding) advanceLayer(call goja.FunctionCall) goja.Value {
	b.step()
	b.builder.AdvanceLayer()
	return b.self
}

// exportStyle converts a script style object into a scene.Style. Absent
// or malformed values keep their documented defaults.
func exportStyle(v goja.Value) scene.Style {
	var st scene.Style
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return st
	}
	m, ok := v.Export().(map[string]interface{})
	if !ok {
		return st
	}
	st.Fill = asString(m["fill"])
	st.Stroke = asString(m["stroke"])
	st.StrokeWidth = asFloat(m["strokeWidth"])
	st.CornerRadius = asFloat(m["cornerRadius"])
	st.FontFamily = asString(m["fontFamily"])
	st.FontSize = asFloat(m["fontSize"])
	st.FontWeight = int(asFloat(m["fontWeight"]))
	if raw, present := m["opacity"]; present {
		o := asFloat(raw)
		st.Opacity = &o
	}
	if closed, ok := m["closed"].(bool); ok {
		st.Closed = closed
	}
	return st
}

// exportPoints accepts both [x, y] pairs and {x, y} objects; anything
// else in the list is skipped.
func exportPoints(v goja.Value) []scene.Point {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}
	raw, ok := v.Export().([]interface{})
	if !ok {
		return nil
	}
	pts := make([]scene.Point, 0, len(raw))
	for _, item := range raw {
		switch e := item.(type) {
		case []interface{}:
			if len(e) >= 2 {
				pts = append(pts, scene.Point{X: asFloat(e[0]), Y: asFloat(e[1])})
			}
		case map[string]interface{}:
			pts = append(pts, scene.Point{X: asFloat(e["x"]), Y: asFloat(e["y"])})
		}
	}
	return pts
}

func asFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	}
	return 0
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}
