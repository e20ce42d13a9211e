// Package raster holds the pixel buffer guideline and placeholder previews
// are rasterized into.
package raster

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
)

// Pixmap is a rectangular premultiplied RGBA pixel buffer.
type Pixmap struct {
	width  int
	height int
	data   []uint8 // premultiplied RGBA, 4 bytes per pixel
}

// NewPixmap creates a transparent pixmap. Non-positive dimensions produce
// an empty pixmap.
func NewPixmap(width, height int) *Pixmap {
	width, height = max(width, 0), max(height, 0)
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int { return p.width }

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int { return p.height }

// Data returns the raw premultiplied pixel data.
func (p *Pixmap) Data() []uint8 { return p.data }

// SetPixel sets the color of a single pixel. Out-of-bounds writes are ignored.
func (p *Pixmap) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i+0] = c.R
	p.data[i+1] = c.G
	p.data[i+2] = c.B
	p.data[i+3] = c.A
}

// GetPixel returns the color of a single pixel, transparent when out of bounds.
func (p *Pixmap) GetPixel(x, y int) color.RGBA {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return color.RGBA{}
	}
	i := (y*p.width + x) * 4
	return color.RGBA{R: p.data[i+0], G: p.data[i+1], B: p.data[i+2], A: p.data[i+3]}
}

// Clear fills the entire pixmap with a color.
func (p *Pixmap) Clear(c color.Color) {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	for i := 0; i < len(p.data); i += 4 {
		p.data[i+0] = rgba.R
		p.data[i+1] = rgba.G
		p.data[i+2] = rgba.B
		p.data[i+3] = rgba.A
	}
}

// Image returns an *image.RGBA sharing the pixmap's buffer, so draw and
// rasterizer fast paths write straight into the pixmap.
func (p *Pixmap) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    p.data,
		Stride: p.width * 4,
		Rect:   image.Rect(0, 0, p.width, p.height),
	}
}

// EncodePNG writes the pixmap as PNG.
func (p *Pixmap) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, p.Image()); err != nil {
		return fmt.Errorf("raster: encode PNG: %w", err)
	}
	return nil
}

// DataURI returns the pixmap as a base64 PNG data URI.
func (p *Pixmap) DataURI() (string, error) {
	if p.width == 0 || p.height == 0 {
		return "", fmt.Errorf("raster: empty pixmap %dx%d", p.width, p.height)
	}
	var buf bytes.Buffer
	if err := p.EncodePNG(&buf); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color { return p.GetPixel(x, y) }

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle { return image.Rect(0, 0, p.width, p.height) }

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model { return color.RGBAModel }

// Set implements draw.Image.
func (p *Pixmap) Set(x, y int, c color.Color) {
	p.SetPixel(x, y, color.RGBAModel.Convert(c).(color.RGBA))
}
