// Package lifecycle decides, per embed instance, whether a static preview or
// the interactive canvas is shown.
//
// Every mounted embed moves forward through three states:
//
//	Unloaded --(preview fetched and loaded, short delay)--> Preview --(Activate)--> Active
//
// There is no way back: returning to the preview requires unmounting and
// mounting again, which starts a fresh Unloaded instance. Fetching, the
// transition delay and visibility measurement all complete asynchronously;
// results that arrive after the instance unmounted are dropped.
package lifecycle

import "errors"

// State is the rendering state of a mounted embed.
type State int

const (
	// Unloaded is the state of a freshly mounted embed.
	Unloaded State = iota
	// Preview shows the static preview asset.
	Preview
	// Active shows the interactive canvas.
	Active
)

func (s State) String() string {
	switch s {
	case Unloaded:
		return "unloaded"
	case Preview:
		return "preview"
	case Active:
		return "active"
	default:
		return "invalid"
	}
}

var (
	// ErrNotReady is returned by Activate before a preview has loaded.
	ErrNotReady = errors.New("lifecycle: embed preview not loaded")
	// ErrNotMounted is returned by Activate on an unmounted embed.
	ErrNotMounted = errors.New("lifecycle: embed not mounted")
)
