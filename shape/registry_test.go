package shape

import (
	"testing"

	ink "github.com/TheStuch123/obsidian-ink-cp1"
)

// boxBehavior is a freely movable, unconstrained shape for testing dispatch.
type boxBehavior struct{ name string }

func (b boxBehavior) Type() string { return b.name }

func (boxBehavior) DefaultProps() Props { return Props{W: 10, H: 10} }

func (boxBehavior) Geometry(s Shape) Geometry { return Geometry{Bounds: Rect{W: s.Props.W, H: s.Props.H}, Filled: true} }

func (boxBehavior) CanBind(BindOpts) bool { return true }

func (boxBehavior) CanRotate(Shape) bool { return true }

func (boxBehavior) CanResize(Shape) bool { return false }

func (boxBehavior) OnTranslate(_, attempted Shape) Shape { return attempted }

func (boxBehavior) OnResize(s Shape, info ResizeInfo) Shape { return ResizeBox(s, info, ResizeLimits{}) }

func TestWritingLinesRegistered(t *testing.T) {
	if !IsRegistered(WritingLinesType) {
		t.Fatal("writing-lines not registered by init")
	}
	b, err := Lookup(WritingLinesType)
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if _, ok := b.(WritingLines); !ok {
		t.Errorf("Lookup() = %T, want WritingLines", b)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Register() of a duplicate type did not panic")
		}
	}()
	Register(WritingLines{})
}

func TestRegisterNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Register(nil) did not panic")
		}
	}()
	Register(nil)
}

func TestLookupUnknown(t *testing.T) {
	if _, err := Lookup("nope"); err == nil {
		t.Error("Lookup(unknown) error = nil")
	}
	if _, err := Resize(Shape{Type: "nope"}, ResizeInfo{}); err == nil {
		t.Error("Resize(unknown) error = nil")
	}
}

func TestDispatch(t *testing.T) {
	Register(boxBehavior{name: "test-box"})
	t.Cleanup(func() { Unregister("test-box") })

	types := Types()
	if len(types) < 2 || types[0] > types[1] {
		t.Errorf("Types() = %v, want sorted with both types", types)
	}

	page := New(WritingLines{})
	moved := page
	moved.Props.X = 999
	got, err := Translate(page, moved)
	if err != nil || got.Props.X != 0 {
		t.Errorf("Translate(page) = %+v, %v; want position unchanged", got.Props, err)
	}

	box := New(boxBehavior{name: "test-box"})
	movedBox := box
	movedBox.Props.X = 5
	if got, _ := Translate(box, movedBox); got.Props.X != 5 {
		t.Errorf("Translate(box) X = %v, want 5", got.Props.X)
	}
	if got, _ := Resize(box, ResizeInfo{ScaleX: 3, ScaleY: 3}); got.Props.W != 10 {
		t.Errorf("Resize() of non-resizable shape W = %v, want 10", got.Props.W)
	}

	resized, err := Resize(page, ResizeInfo{Handle: HandleBottom, ScaleX: 2, ScaleY: 2})
	if err != nil || resized.Props.W != ink.WritingPageWidth || resized.Props.H != 2*ink.WritingMinPageHeight {
		t.Errorf("Resize(page) = %+v, %v", resized.Props, err)
	}

	if ok, _ := CanBind(page, BindOpts{FromShapeType: "arrow"}); ok {
		t.Error("CanBind(page) = true")
	}
	if ok, _ := CanBind(box, BindOpts{FromShapeType: "arrow"}); !ok {
		t.Error("CanBind(box) = false")
	}

	page.Props.X, page.Props.Y = 100, 100
	if hit, _ := HitTest(page, Pt(1000, 200), 5); hit {
		t.Error("HitTest(page interior) = true")
	}
	if hit, _ := HitTest(page, Pt(101, 200), 5); !hit {
		t.Error("HitTest(page border) = false")
	}
}

func TestResizeBoxLeftHandleAnchorsRightEdge(t *testing.T) {
	s := Shape{Type: "x", Props: Props{X: 10, Y: 10, W: 100, H: 50}}
	got := ResizeBox(s, ResizeInfo{Handle: HandleTopLeft, ScaleX: 0.5, ScaleY: 2}, ResizeLimits{MinWidth: 60})
	if got.Props.W != 60 || got.Props.H != 100 {
		t.Errorf("size = %vx%v, want 60x100", got.Props.W, got.Props.H)
	}
	if got.Props.X != 50 || got.Props.Y != -40 {
		t.Errorf("origin = (%v, %v), want (50, -40)", got.Props.X, got.Props.Y)
	}
}
