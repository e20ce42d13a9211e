package shape

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/vector"

	"github.com/TheStuch123/obsidian-ink-cp1/internal/raster"
)

// RasterStyle controls guideline rasterization.
type RasterStyle struct {
	// Scale maps canvas units to pixels.
	Scale float64
	// Background fills the page first. Nil leaves it transparent.
	Background color.Color
	// Line is the guideline color.
	Line color.Color
	// LineWidth is the guideline thickness in pixels.
	LineWidth float64
}

// DefaultRasterStyle renders grey guidelines on a transparent page at a
// tenth of canvas resolution, which matches the embed's on-screen width.
func DefaultRasterStyle() RasterStyle {
	return RasterStyle{
		Scale:     0.1,
		Line:      color.RGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xff},
		LineWidth: 2,
	}
}

// Rasterize draws the guidelines of s into a new pixmap.
func (w WritingLines) Rasterize(s Shape, style RasterStyle) *raster.Pixmap {
	if style.Scale <= 0 {
		style.Scale = 1
	}
	if style.Line == nil {
		style.Line = color.Black
	}
	pw := int(math.Ceil(s.Props.W * style.Scale))
	ph := int(math.Ceil(s.Props.H * style.Scale))
	pm := raster.NewPixmap(pw, ph)
	if pw == 0 || ph == 0 {
		return pm
	}
	if style.Background != nil {
		pm.Clear(style.Background)
	}

	z := vector.NewRasterizer(pw, ph)
	half := style.LineWidth / 2
	for _, l := range w.Guidelines(s) {
		x1, x2 := float32(l.X1*style.Scale), float32(l.X2*style.Scale)
		top, bottom := float32(l.Y1*style.Scale-half), float32(l.Y1*style.Scale+half)
		z.MoveTo(x1, top)
		z.LineTo(x2, top)
		z.LineTo(x2, bottom)
		z.LineTo(x1, bottom)
		z.ClosePath()
	}
	z.Draw(pm.Image(), pm.Bounds(), image.NewUniform(style.Line), image.Point{})
	return pm
}

// RenderPNG rasterizes the guidelines of s and returns them as a PNG data
// URI, ready to serve as the preview of a page nothing has been written on.
func (w WritingLines) RenderPNG(s Shape, style RasterStyle) (string, error) {
	return w.Rasterize(s, style).DataURI()
}
