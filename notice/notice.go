// Package notice shows a one-time "what changed" banner after the plugin is
// updated.
//
// The banner appears when the running version is newer than the last
// version whose notes the user dismissed. The dismissed version is kept
// under onboardingTips.lastVersionTipRead in the plugin settings.
package notice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/coreos/go-semver/semver"

	ink "github.com/TheStuch123/obsidian-ink-cp1"
)

// ErrNoRelease is returned when no release notes exist for a version.
var ErrNoRelease = errors.New("notice: no release notes for version")

// Release holds the notes shown for one version.
type Release struct {
	Version  string
	Changes  []string
	VideoURL string
}

// Title is the banner heading.
func (r Release) Title() string {
	return "Changes in Ink v" + r.Version
}

var releases = map[string]Release{
	"0.3.1": {
		Version: "0.3.1",
		Changes: []string{
			"Resize drawing embeds (Lock them to save the size).",
			"Toggle the grid on and off from the dropdown.",
			"Insert commands now have icons.",
		},
		VideoURL: "https://www.youtube.com/live/gLserf5LLD0?si=mS95cP0fK0d0bryo",
	},
}

// Changes returns the release notes for version.
func Changes(version string) (Release, bool) {
	r, ok := releases[version]
	return r, ok
}

func parse(v string) (*semver.Version, error) {
	return semver.NewVersion(strings.TrimPrefix(strings.TrimSpace(v), "v"))
}

// ShouldShow reports whether the notes for current should be shown to a
// user who last dismissed the notes of lastRead. An empty or invalid
// lastRead always shows; an invalid current never does.
func ShouldShow(current, lastRead string) bool {
	cur, err := parse(current)
	if err != nil {
		return false
	}
	last, err := parse(lastRead)
	if err != nil {
		return true
	}
	return last.LessThan(*cur)
}

// Presenter displays a banner. It calls dismiss when the user closes it;
// dismiss may be called from any goroutine and at most once takes effect.
type Presenter interface {
	Present(ctx context.Context, r Release, dismiss func()) error
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(ctx context.Context, r Release, dismiss func()) error

// Present implements Presenter.
func (f PresenterFunc) Present(ctx context.Context, r Release, dismiss func()) error {
	return f(ctx, r, dismiss)
}

// Store persists the last dismissed version.
type Store interface {
	LastVersionTipRead(ctx context.Context) (string, error)
	SetLastVersionTipRead(ctx context.Context, version string) error
}

// Controller shows the notice at most once per process.
type Controller struct {
	version   string
	presenter Presenter
	store     Store

	mu    sync.Mutex
	shown bool
}

// NewController returns a controller for the running version. An empty
// version means ink.Version.
func NewController(version string, p Presenter, s Store) *Controller {
	if version == "" {
		version = ink.Version
	}
	return &Controller{version: version, presenter: p, store: s}
}

// Show presents the release notes if the user has not dismissed them yet.
// It reports whether the banner was presented. Once the settings have been
// read, later calls on the same controller do nothing.
func (c *Controller) Show(ctx context.Context) (bool, error) {
	c.mu.Lock()
	shown := c.shown
	c.mu.Unlock()
	if shown {
		return false, nil
	}

	lastRead, err := c.store.LastVersionTipRead(ctx)
	if err != nil {
		return false, fmt.Errorf("notice: read settings: %w", err)
	}

	c.mu.Lock()
	if c.shown {
		c.mu.Unlock()
		return false, nil
	}
	c.shown = true
	c.mu.Unlock()
	if !ShouldShow(c.version, lastRead) {
		ink.Logger().Debug("version notice already read", "version", c.version, "lastRead", lastRead)
		return false, nil
	}
	r, ok := Changes(c.version)
	if !ok {
		return false, fmt.Errorf("%w %s", ErrNoRelease, c.version)
	}

	var once sync.Once
	dismiss := func() {
		once.Do(func() {
			if err := c.store.SetLastVersionTipRead(context.WithoutCancel(ctx), c.version); err != nil {
				ink.Logger().Warn("saving dismissed version notice failed", "version", c.version, "error", err)
			}
		})
	}
	if err := c.presenter.Present(ctx, r, dismiss); err != nil {
		return false, fmt.Errorf("notice: present: %w", err)
	}
	return true, nil
}
