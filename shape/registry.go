package shape

import (
	"fmt"
	"sort"
	"sync"
)

// Registry state - protected by mutex for thread-safe access.
var (
	registryMu sync.RWMutex
	behaviors  = make(map[string]Behavior)
)

// Register makes a shape behavior available to the canvas host under its
// Type. It is typically called from init(), following the database/sql
// driver pattern.
//
// Register panics if b is nil or a behavior with the same type is already
// registered.
func Register(b Behavior) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if b == nil {
		panic("shape: Register behavior is nil")
	}
	name := b.Type()
	if _, dup := behaviors[name]; dup {
		panic("shape: Register called twice for " + name)
	}
	behaviors[name] = b
}

// Unregister removes a behavior from the registry.
// This is primarily useful for testing. Unknown types are a no-op.
func Unregister(shapeType string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(behaviors, shapeType)
}

// Lookup returns the behavior registered for shapeType.
func Lookup(shapeType string) (Behavior, error) {
	registryMu.RLock()
	b, ok := behaviors[shapeType]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("shape: unknown shape type %q (forgotten import?)", shapeType)
	}
	return b, nil
}

// Types returns the registered shape types, sorted.
func Types() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(behaviors))
	for name := range behaviors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if a behavior is registered for shapeType.
func IsRegistered(shapeType string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := behaviors[shapeType]
	return ok
}

// Resize dispatches a resize gesture to the shape's behavior.
func Resize(s Shape, info ResizeInfo) (Shape, error) {
	b, err := Lookup(s.Type)
	if err != nil {
		return s, err
	}
	if !b.CanResize(s) {
		return s, nil
	}
	return b.OnResize(s, info), nil
}

// Translate dispatches a move to the shape's behavior.
func Translate(initial, attempted Shape) (Shape, error) {
	b, err := Lookup(initial.Type)
	if err != nil {
		return initial, err
	}
	return b.OnTranslate(initial, attempted), nil
}

// HitTest reports whether the page-space point p selects s.
func HitTest(s Shape, p Point, margin float64) (bool, error) {
	b, err := Lookup(s.Type)
	if err != nil {
		return false, err
	}
	local := p.Sub(Point{X: s.Props.X, Y: s.Props.Y})
	return b.Geometry(s).HitTest(local, margin), nil
}

// CanBind reports whether a connector may attach to s.
func CanBind(s Shape, opts BindOpts) (bool, error) {
	b, err := Lookup(s.Type)
	if err != nil {
		return false, err
	}
	return b.CanBind(opts), nil
}
