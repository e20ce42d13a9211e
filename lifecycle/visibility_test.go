package lifecycle

import "testing"

func TestViewportDeliversCurrentVisibility(t *testing.T) {
	vp := NewViewport()
	el := NewElement(10)

	var entries []Entry
	sub := vp.Observe(el, func(e Entry) { entries = append(entries, e) })
	if len(entries) != 1 || entries[0].Intersecting {
		t.Fatalf("initial entries = %v, want one non-intersecting entry", entries)
	}

	vp.SetIntersecting(el, true)
	vp.SetIntersecting(el, true)
	vp.SetIntersecting(el, false)
	if len(entries) != 3 {
		t.Errorf("entries = %d, want 3 (repeated state is not reported)", len(entries))
	}

	sub.Dispose()
	sub.Dispose()
	vp.SetIntersecting(el, true)
	if len(entries) != 3 {
		t.Errorf("entry delivered after Dispose")
	}
	if n := vp.Observations(); n != 0 {
		t.Errorf("Observations() = %d, want 0", n)
	}
}

func TestViewportTargetsAreSeparate(t *testing.T) {
	vp := NewViewport()
	a, b := NewElement(1), NewElement(2)

	var gotA, gotB int
	vp.Observe(a, func(Entry) { gotA++ })
	vp.Observe(b, func(Entry) { gotB++ })
	vp.SetIntersecting(a, true)

	if gotA != 2 || gotB != 1 {
		t.Errorf("deliveries a=%d b=%d, want 2 and 1", gotA, gotB)
	}
}

func TestMeasurementDisposedBeforeAttach(t *testing.T) {
	vp := NewViewport()
	el := NewElement(5)
	vp.SetIntersecting(el, true)

	m := &measurement{}
	sub := vp.Observe(el, func(Entry) {
		if m.fire() {
			m.dispose()
		}
	})
	m.attach(sub)

	if n := vp.Observations(); n != 0 {
		t.Errorf("Observations() = %d, want 0 once the measurement fired during Observe", n)
	}
	if m.fire() {
		t.Error("measurement fired twice")
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		s    State
		want string
	}{
		{Unloaded, "unloaded"},
		{Preview, "preview"},
		{Active, "active"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", int(tt.s), got, tt.want)
		}
	}
}
