package canvas

// APIReference documents the drawing surface exposed to submitted code.
// It is plain text meant to be injected verbatim into a model's
// instruction context, and must be kept in sync with the Builder and the
// sandbox bindings.
const APIReference = `You draw by calling methods on the global "canvas" object.
Every call returns the canvas, so calls chain. Coordinates are pixels on a
square canvas, origin at the top-left, x growing right and y growing down.

canvas.rectangle(x, y, width, height, style?)
    Axis-aligned box. style.cornerRadius >= 0 rounds the corners.

canvas.circle(x, y, radius, style?)
    Circle centered on (x, y). radius <= 0 draws nothing.

canvas.triangle(x1, y1, x2, y2, x3, y3, style?)
    Triangle through three explicit vertices.

canvas.line(x1, y1, x2, y2, style)
    Straight segment. Give style.stroke and style.strokeWidth or the line
    is invisible; lines have no fill.

canvas.path(points, style?)
    Polyline through points, an array of [x, y] pairs (or {x, y} objects).
    An empty array draws nothing. style.closed joins the last point back
    to the first.

canvas.arc(x, y, radius, startAngleDeg, endAngleDeg, style?)
    Pie wedge from the center through the arc and back. Angles are in
    degrees: 0 points right, 90 points down (clockwise).

canvas.text(content, x, y, style?)
    Text centered on (x, y), both horizontally and vertically.

canvas.advanceLayer()
    Moves to the next layer. Later layers draw on top of earlier ones;
    within a layer, later calls draw on top.

style is an optional object: { fill, stroke, strokeWidth, opacity,
cornerRadius, fontFamily, fontSize, fontWeight, closed }. Colors are hex
strings like "#ff0000" or common names like "red"; "none" and
"transparent" mean no paint. Defaults: fill transparent, stroke none,
strokeWidth 0, opacity 1, fontFamily sans-serif, fontSize 16,
fontWeight 400.

Shapes may extend past the canvas edge; they are clipped, not rejected.`
