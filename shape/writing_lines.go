package shape

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	ink "github.com/TheStuch123/obsidian-ink-cp1"
)

// WritingLinesType is the shape type of the writing surface.
const WritingLinesType = "writing-lines"

const (
	indicatorRadius = 20.0
	marginRatio     = 0.05
)

func init() {
	Register(WritingLines{})
}

// WritingLines is the ruled page behind a writing embed: a column pinned to
// the page width whose height the writer may extend. It cannot be moved,
// rotated, bound to, or selected by clicking its interior.
type WritingLines struct{}

var _ Behavior = WritingLines{}

// Type implements Behavior.
func (WritingLines) Type() string { return WritingLinesType }

// DefaultProps implements Behavior.
func (WritingLines) DefaultProps() Props {
	return Props{
		X: 0,
		Y: 0,
		W: ink.WritingPageWidth,
		H: ink.WritingMinPageHeight,
	}
}

// Geometry implements Behavior. The interior is not hit-testable so strokes
// drawn over the page are not taken as clicks on it.
func (WritingLines) Geometry(s Shape) Geometry {
	return Geometry{
		Bounds: Rect{W: s.Props.W, H: s.Props.H},
		Filled: false,
	}
}

// CanBind implements Behavior. Arrows and lines never attach to the page.
func (WritingLines) CanBind(BindOpts) bool { return false }

// CanRotate implements Behavior.
func (WritingLines) CanRotate(Shape) bool { return false }

// CanResize implements Behavior.
func (WritingLines) CanResize(Shape) bool { return true }

// OnTranslate implements Behavior. The page never moves.
func (WritingLines) OnTranslate(initial, _ Shape) Shape { return initial }

// OnResize implements Behavior. Width stays at the page width and height is
// clamped to [WritingMinPageHeight, WritingMaxPageHeight]. The page keeps its
// position whichever handle is dragged.
func (WritingLines) OnResize(s Shape, info ResizeInfo) Shape {
	out := ResizeBox(s, info, ResizeLimits{
		MinWidth:  ink.WritingPageWidth,
		MaxWidth:  ink.WritingPageWidth,
		MinHeight: ink.WritingMinPageHeight,
		MaxHeight: ink.WritingMaxPageHeight,
	})
	out.Props.X, out.Props.Y = s.Props.X, s.Props.Y
	return out
}

// Line is a guideline segment in shape-local coordinates.
type Line struct {
	X1, Y1, X2, Y2 float64
}

// GuidelineCount returns the number of ruled lines a page of height h holds.
func GuidelineCount(h float64) int {
	if h <= 0 || math.IsNaN(h) {
		return 0
	}
	return int(math.Floor(h / ink.WritingLineHeight))
}

// Guidelines returns the ruled lines for s. They are derived from the
// current height on every call and never stored.
func (WritingLines) Guidelines(s Shape) []Line {
	n := GuidelineCount(s.Props.H)
	margin := marginRatio * s.Props.W
	lines := make([]Line, n)
	for i := range lines {
		y := float64(i+1) * ink.WritingLineHeight
		lines[i] = Line{X1: margin, Y1: y, X2: s.Props.W - margin, Y2: y}
	}
	return lines
}

// Indicator is the selection outline drawn around a shape.
type Indicator struct {
	Bounds Rect
	Radius float64
}

// Indicator returns the rounded selection outline of s.
func (WritingLines) Indicator(s Shape) Indicator {
	return Indicator{Bounds: Rect{W: s.Props.W, H: s.Props.H}, Radius: indicatorRadius}
}

// SVG renders the guidelines of s as standalone SVG markup. Stroke styling is
// left to the host stylesheet through the writing-lines class.
func (w WritingLines) SVG(s Shape) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" class="%s" width="%s" height="%s" viewBox="0 0 %s %s">`,
		WritingLinesType, num(s.Props.W), num(s.Props.H), num(s.Props.W), num(s.Props.H))
	for _, l := range w.Guidelines(s) {
		fmt.Fprintf(&b, `<line x1="%s" y1="%s" x2="%s" y2="%s"/>`, num(l.X1), num(l.Y1), num(l.X2), num(l.Y2))
	}
	b.WriteString(`</svg>`)
	return b.String()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
