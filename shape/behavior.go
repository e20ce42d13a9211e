package shape

import (
	"math"

	"github.com/google/uuid"
)

// Props are the stored properties of a rectangular shape.
type Props struct {
	X, Y float64
	W, H float64
}

// Shape is a canvas entity. Its Type selects the Behavior that constrains it.
type Shape struct {
	ID    string
	Type  string
	Props Props
}

// Bounds returns the shape's page-space rectangle.
func (s Shape) Bounds() Rect {
	return Rect{X: s.Props.X, Y: s.Props.Y, W: s.Props.W, H: s.Props.H}
}

// New creates a shape of the behavior's type with its default props.
func New(b Behavior) Shape {
	return Shape{
		ID:    "shape:" + uuid.NewString(),
		Type:  b.Type(),
		Props: b.DefaultProps(),
	}
}

// Handle identifies the resize handle being dragged.
type Handle int

const (
	HandleBottomRight Handle = iota
	HandleBottom
	HandleRight
	HandleTop
	HandleLeft
	HandleTopLeft
	HandleTopRight
	HandleBottomLeft
)

func (h Handle) movesLeftEdge() bool {
	return h == HandleLeft || h == HandleTopLeft || h == HandleBottomLeft
}

func (h Handle) movesTopEdge() bool {
	return h == HandleTop || h == HandleTopLeft || h == HandleTopRight
}

// ResizeInfo describes an in-progress resize gesture.
type ResizeInfo struct {
	Handle Handle
	// ScaleX and ScaleY are relative to Initial.
	ScaleX, ScaleY float64
	// Initial is the shape as it was when the gesture started. A zero
	// Initial means the shape passed alongside the info.
	Initial Shape
}

// BindOpts describes a connector asking to attach to a shape.
type BindOpts struct {
	FromShapeType string
	BindingType   string
}

// Behavior is the set of constraint callbacks a shape type supplies to the
// canvas host.
type Behavior interface {
	// Type is the shape type name the behavior is registered under.
	Type() string
	// DefaultProps are the props of a newly created shape.
	DefaultProps() Props
	// Geometry is the shape's hit-testing outline.
	Geometry(s Shape) Geometry
	// CanBind reports whether a connector may attach to the shape.
	CanBind(opts BindOpts) bool
	// CanRotate reports whether the rotate handle is shown.
	CanRotate(s Shape) bool
	// CanResize reports whether resize handles are shown.
	CanResize(s Shape) bool
	// OnTranslate returns the shape to commit when a move is attempted.
	OnTranslate(initial, attempted Shape) Shape
	// OnResize returns the shape to commit for a resize gesture.
	OnResize(s Shape, info ResizeInfo) Shape
}

// ResizeLimits bounds the dimensions ResizeBox may produce.
// Zero maxima mean unbounded.
type ResizeLimits struct {
	MinWidth, MaxWidth   float64
	MinHeight, MaxHeight float64
}

// ResizeBox applies a resize gesture to a rectangular shape, clamping the
// result to limits. Dragging a left or top handle keeps the opposite edge
// in place.
func ResizeBox(s Shape, info ResizeInfo, limits ResizeLimits) Shape {
	initial := info.Initial
	if initial.Type == "" {
		initial = s
	}
	w := clampDimension(initial.Props.W*math.Abs(info.ScaleX), limits.MinWidth, limits.MaxWidth)
	h := clampDimension(initial.Props.H*math.Abs(info.ScaleY), limits.MinHeight, limits.MaxHeight)

	out := s
	out.Props.W, out.Props.H = w, h
	out.Props.X, out.Props.Y = initial.Props.X, initial.Props.Y
	if info.Handle.movesLeftEdge() {
		out.Props.X = initial.Props.X + initial.Props.W - w
	}
	if info.Handle.movesTopEdge() {
		out.Props.Y = initial.Props.Y + initial.Props.H - h
	}
	return out
}

func clampDimension(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		v = lo
	}
	if v < lo {
		v = lo
	}
	if hi > 0 && v > hi {
		v = hi
	}
	return v
}
