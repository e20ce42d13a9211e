package lifecycle

import "sync"

// Container is the element a preview renders into. Implementations used as
// Viewport targets must be comparable, typically pointers.
type Container interface {
	// Height is the container's current rendered height.
	Height() float64
}

// Entry is a visibility change reported by an Observer.
type Entry struct {
	Target       Container
	Intersecting bool
}

// Subscription is a live observation. Dispose stops it; calling Dispose more
// than once is safe.
type Subscription interface {
	Dispose()
}

// Observer reports when containers enter or leave the viewport.
type Observer interface {
	Observe(target Container, fn func(Entry)) Subscription
}

// Viewport is an in-process Observer driven by the host's scroll handling.
// New observations receive the target's current visibility right away.
type Viewport struct {
	mu      sync.Mutex
	nextID  int
	subs    map[int]*viewportSub
	visible map[Container]bool
}

type viewportSub struct {
	v      *Viewport
	id     int
	target Container
	fn     func(Entry)
}

// NewViewport returns a viewport in which nothing is visible yet.
func NewViewport() *Viewport {
	return &Viewport{
		subs:    make(map[int]*viewportSub),
		visible: make(map[Container]bool),
	}
}

// Observe implements Observer.
func (v *Viewport) Observe(target Container, fn func(Entry)) Subscription {
	v.mu.Lock()
	v.nextID++
	s := &viewportSub{v: v, id: v.nextID, target: target, fn: fn}
	v.subs[s.id] = s
	visible := v.visible[target]
	v.mu.Unlock()

	fn(Entry{Target: target, Intersecting: visible})
	return s
}

// SetIntersecting records whether target is in view and notifies its
// observers when that changed.
func (v *Viewport) SetIntersecting(target Container, on bool) {
	v.mu.Lock()
	if v.visible[target] == on {
		v.mu.Unlock()
		return
	}
	if on {
		v.visible[target] = true
	} else {
		delete(v.visible, target)
	}
	var fns []func(Entry)
	for _, s := range v.subs {
		if s.target == target {
			fns = append(fns, s.fn)
		}
	}
	v.mu.Unlock()

	for _, fn := range fns {
		fn(Entry{Target: target, Intersecting: on})
	}
}

// Observations returns the number of live subscriptions.
func (v *Viewport) Observations() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.subs)
}

// Dispose implements Subscription.
func (s *viewportSub) Dispose() {
	s.v.mu.Lock()
	delete(s.v.subs, s.id)
	s.v.mu.Unlock()
}

// Element is a Container with a settable height.
type Element struct {
	mu     sync.Mutex
	height float64
}

// NewElement returns an element of the given height.
func NewElement(height float64) *Element {
	return &Element{height: height}
}

// Height implements Container.
func (e *Element) Height() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.height
}

// SetHeight changes the element's height, as a reflow would.
func (e *Element) SetHeight(h float64) {
	e.mu.Lock()
	e.height = h
	e.mu.Unlock()
}

// measurement is a one-shot height observation. It is disposed on its first
// intersecting entry or when the owning instance unmounts, whichever comes
// first.
type measurement struct {
	mu       sync.Mutex
	sub      Subscription
	fired    bool
	disposed bool
}

// attach stores the subscription, disposing it at once if the measurement
// already finished while Observe was still running.
func (m *measurement) attach(sub Subscription) {
	m.mu.Lock()
	if m.disposed {
		m.mu.Unlock()
		sub.Dispose()
		return
	}
	m.sub = sub
	m.mu.Unlock()
}

// fire reports whether this is the first qualifying entry.
func (m *measurement) fire() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fired || m.disposed {
		return false
	}
	m.fired = true
	return true
}

func (m *measurement) dispose() {
	m.mu.Lock()
	if m.disposed {
		m.mu.Unlock()
		return
	}
	m.disposed = true
	sub := m.sub
	m.sub = nil
	m.mu.Unlock()

	if sub != nil {
		sub.Dispose()
	}
}
