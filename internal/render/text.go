package render

import (
	"fmt"
	"image"
	"sync"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/ashureev/sketch-labs/internal/scene"
)

// The bundled Go fonts stand in for every requested family: one regular
// and one bold cut, picked by weight. Parsed once, read-only afterwards.
var (
	fontOnce    sync.Once
	fontRegular *sfnt.Font
	fontBold    *sfnt.Font
	fontErr     error
)

func loadFonts() {
	fontRegular, fontErr = opentype.Parse(goregular.TTF)
	if fontErr != nil {
		fontErr = fmt.Errorf("parse regular font: %w", fontErr)
		return
	}
	fontBold, fontErr = opentype.Parse(gobold.TTF)
	if fontErr != nil {
		fontErr = fmt.Errorf("parse bold font: %w", fontErr)
	}
}

// drawText rasterizes one text primitive, centered on (X, Y) both
// horizontally and vertically.
func drawText(dst *image.RGBA, p scene.Primitive) error {
	alpha := p.Style.Alpha()
	col, ok := parseColor(p.Style.Fill)
	if !ok || alpha <= 0 {
		return nil
	}

	fontOnce.Do(loadFonts)
	if fontErr != nil {
		return fontErr
	}

	_, size, weight := p.Style.Font()
	src := fontRegular
	if weight >= 600 {
		src = fontBold
	}
	face, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return fmt.Errorf("create font face: %w", err)
	}
	defer face.Close()

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(rasterx.ApplyOpacity(col, alpha)),
		Face: face,
	}
	width := d.MeasureString(p.Content)
	metrics := face.Metrics()
	d.Dot = fixed.Point26_6{
		X: toFixed(p.X) - width/2,
		Y: toFixed(p.Y) + (metrics.Ascent-metrics.Descent)/2,
	}
	d.DrawString(p.Content)
	return nil
}
