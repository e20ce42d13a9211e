package lifecycle

import (
	"context"
	"log/slog"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"

	ink "github.com/TheStuch123/obsidian-ink-cp1"
	"github.com/TheStuch123/obsidian-ink-cp1/preview"
)

// Surface is the interactive canvas an activated embed reveals. Reveal is
// called once per mount and must keep the canvas's editing history.
type Surface interface {
	Reveal()
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock sets the clock driving the preview transition delay.
func WithClock(c clock.Clock) Option {
	return func(ctl *Controller) {
		ctl.clock = c
	}
}

// WithObserver sets the visibility observer used for height measurement.
// Without one, heights are never measured.
func WithObserver(o Observer) Option {
	return func(ctl *Controller) {
		ctl.observer = o
	}
}

// WithSettings sets the shared read-only settings.
func WithSettings(s *ink.Settings) Option {
	return func(ctl *Controller) {
		if s != nil {
			ctl.settings = s
		}
	}
}

// WithSurface sets the canvas revealed on activation.
func WithSurface(s Surface) Option {
	return func(ctl *Controller) {
		ctl.surface = s
	}
}

// WithStateListener is called after every state transition, in order.
func WithStateListener(fn func(from, to State)) Option {
	return func(ctl *Controller) {
		ctl.onState = fn
	}
}

// WithAssetListener is called with the preview asset once it has loaded.
func WithAssetListener(fn func(preview.Asset)) Option {
	return func(ctl *Controller) {
		ctl.onAsset = fn
	}
}

// WithResizeListener is called with the container's rendered height the
// first time it becomes visible.
func WithResizeListener(fn func(height float64)) Option {
	return func(ctl *Controller) {
		ctl.onResize = fn
	}
}

// WithActivateOnMount lets embeds that are already in view when they mount
// skip the preview: if the observer reports the container intersecting
// before the preview has loaded, the instance goes straight through Preview
// to Active without waiting for the transition delay or a click. Embeds
// mounted off screen, or without an observer, take the usual path.
func WithActivateOnMount(on bool) Option {
	return func(ctl *Controller) {
		ctl.activateOnMount = on
	}
}

// Controller tracks the rendering lifecycle of one embed instance.
// Instances share nothing mutable with each other; a Controller is safe for
// use by the host's event handlers and its own async callbacks at once.
type Controller struct {
	id       string
	ref      string
	provider preview.Provider

	settings        *ink.Settings
	clock           clock.Clock
	observer        Observer
	surface         Surface
	activateOnMount bool
	onState         func(from, to State)
	onAsset         func(preview.Asset)
	onResize        func(float64)

	mu        sync.Mutex
	gen       uint64
	mounted   bool
	state     State
	asset     preview.Asset
	hasAsset  bool
	loaded    bool
	revealed  bool
	container Container
	cancel    context.CancelFunc
	timer     *clock.Timer
	measure   *measurement
	// initial watches for the container being visible at mount.
	initial        *measurement
	visibleAtMount bool

	// pending holds listener calls, fired in order outside mu.
	pending  []func()
	draining bool

	fetches sync.WaitGroup
}

// New creates a controller for the embed addressed by ref.
func New(ref string, provider preview.Provider, opts ...Option) *Controller {
	c := &Controller{
		id:       uuid.NewString(),
		ref:      ref,
		provider: provider,
		settings: ink.DefaultSettings(),
		clock:    clock.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ID identifies the instance in logs.
func (c *Controller) ID() string { return c.id }

// Ref returns the embed's file reference.
func (c *Controller) Ref() string { return c.ref }

// State returns the current state. Unmounted instances report Unloaded.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Asset returns the loaded preview asset, if any.
func (c *Controller) Asset() (preview.Asset, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.asset, c.hasAsset && c.loaded
}

// Mounted reports whether the instance is mounted.
func (c *Controller) Mounted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mounted
}

// PreviewClasses returns the presentation classes of the preview element,
// derived from the shared settings.
func (c *Controller) PreviewClasses() []string {
	classes := []string{"ink-writing-embed-preview"}
	if c.settings.WritingLinesWhenLocked() {
		classes = append(classes, "ink-visible-lines")
	}
	if c.settings.WritingBackgroundWhenLocked() {
		classes = append(classes, "ink-visible-background")
	}
	return classes
}

func (c *Controller) logger() *slog.Logger {
	return ink.Logger().With("embed", c.id, "filepath", c.ref)
}

// Mount starts a fresh instance in Unloaded and begins fetching its preview.
// container is where the preview renders; it is measured once it first
// becomes visible. Mounting a mounted instance does nothing.
func (c *Controller) Mount(ctx context.Context, container Container) {
	c.mu.Lock()
	if c.mounted {
		c.mu.Unlock()
		return
	}
	c.gen++
	gen := c.gen
	c.mounted = true
	c.state = Unloaded
	c.asset, c.hasAsset, c.loaded, c.revealed = preview.Asset{}, false, false, false
	c.visibleAtMount = false
	c.container = container
	fctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.fetches.Add(1)
	watch := c.activateOnMount && c.observer != nil && container != nil
	c.mu.Unlock()

	if watch {
		c.watchInitialVisibility(gen, container)
	}

	c.logger().Debug("embed mounted", "generation", gen)
	go c.fetch(fctx, gen)
}

// watchInitialVisibility records whether container is seen intersecting
// before the preview finishes loading.
func (c *Controller) watchInitialVisibility(gen uint64, container Container) {
	m := &measurement{}
	c.mu.Lock()
	if !c.current(gen) {
		c.mu.Unlock()
		return
	}
	c.initial = m
	observer := c.observer
	c.mu.Unlock()

	sub := observer.Observe(container, func(e Entry) {
		if e.Target != container || !e.Intersecting || !m.fire() {
			return
		}
		m.dispose()
		c.mu.Lock()
		if c.current(gen) && !c.loaded {
			c.visibleAtMount = true
		}
		c.mu.Unlock()
	})
	m.attach(sub)
}

func (c *Controller) fetch(ctx context.Context, gen uint64) {
	defer c.fetches.Done()
	asset := FetchPreviewAsset(ctx, c.provider, c.ref)
	c.deliverAsset(gen, asset)
}

// FetchPreviewAsset resolves the preview for ref. It never fails: a missing
// provider, a fetch error, or a file without a preview all yield the
// placeholder asset.
func FetchPreviewAsset(ctx context.Context, provider preview.Provider, ref string) preview.Asset {
	if provider == nil {
		return preview.Placeholder()
	}
	fd, err := provider.InkFileData(ctx, ref)
	if err != nil {
		if ctx.Err() != nil {
			ink.Logger().Debug("preview fetch abandoned", "filepath", ref, "error", err)
			return preview.Placeholder()
		}
		ink.Logger().Warn("preview fetch failed, using placeholder", "filepath", ref, "error", err)
		return preview.Placeholder()
	}
	if fd.PreviewURI == "" {
		return preview.Placeholder()
	}
	return preview.NewAsset(fd.Kind, fd.PreviewURI)
}

// deliverAsset applies a fetch result if gen is still current, decoding it
// before announcing the load.
func (c *Controller) deliverAsset(gen uint64, asset preview.Asset) {
	if _, err := preview.Decode(asset); err != nil {
		c.logger().Warn("preview asset failed to decode, using placeholder", "error", err)
		asset = preview.Placeholder()
	}

	c.mu.Lock()
	if !c.current(gen) {
		c.mu.Unlock()
		c.logger().Debug("discarding stale preview", "generation", gen)
		return
	}
	c.asset, c.hasAsset = asset, true
	c.mu.Unlock()

	c.AssetLoaded()
}

// AssetLoaded signals that the preview asset finished loading. It starts
// the one-shot height measurement and arms the transition to Preview. Only
// the first call per mount has any effect, and calls before the asset
// arrived are ignored.
func (c *Controller) AssetLoaded() {
	c.mu.Lock()
	if !c.mounted || !c.hasAsset || c.loaded {
		c.mu.Unlock()
		return
	}
	c.loaded = true
	gen := c.gen
	container := c.container
	asset := c.asset
	if c.onAsset != nil {
		fn := c.onAsset
		c.pending = append(c.pending, func() { fn(asset) })
	}

	initial := c.initial
	c.initial = nil
	if c.activateOnMount && c.visibleAtMount {
		c.advance(Preview)
		c.advance(Active)
		c.reveal()
	} else {
		c.timer = c.clock.AfterFunc(c.settings.TransitionDelay(), func() {
			c.enterPreview(gen)
		})
	}
	c.mu.Unlock()

	if initial != nil {
		initial.dispose()
	}
	c.flush()
	if container != nil {
		c.RecalculateRenderedHeight(container)
	}
}

func (c *Controller) enterPreview(gen uint64) {
	c.mu.Lock()
	if !c.current(gen) {
		c.mu.Unlock()
		c.logger().Debug("discarding stale preview transition", "generation", gen)
		return
	}
	c.timer = nil
	c.advance(Preview)
	c.mu.Unlock()

	c.flush()
}

// Activate reveals the interactive canvas. It is a no-op when already
// Active. An instance whose preview loaded but whose transition delay is
// still running passes through Preview first; one with no loaded preview
// returns ErrNotReady.
func (c *Controller) Activate() error {
	c.mu.Lock()
	if !c.mounted {
		c.mu.Unlock()
		return ErrNotMounted
	}
	switch c.state {
	case Active:
		c.mu.Unlock()
		return nil
	case Unloaded:
		if !c.loaded {
			c.mu.Unlock()
			return ErrNotReady
		}
		c.stopTimer()
		c.advance(Preview)
	}
	c.advance(Active)
	c.reveal()
	c.mu.Unlock()

	c.flush()
	return nil
}

// RecalculateRenderedHeight measures container the first time it is seen
// intersecting the viewport, reports the height to the resize listener and
// stops observing. A new call replaces any measurement still waiting.
func (c *Controller) RecalculateRenderedHeight(container Container) {
	c.mu.Lock()
	if !c.mounted || container == nil || c.observer == nil {
		c.mu.Unlock()
		return
	}
	gen := c.gen
	previous := c.measure
	m := &measurement{}
	c.measure = m
	observer := c.observer
	c.mu.Unlock()

	if previous != nil {
		previous.dispose()
	}
	sub := observer.Observe(container, func(e Entry) {
		c.visibilityChanged(gen, m, container, e)
	})
	m.attach(sub)
}

func (c *Controller) visibilityChanged(gen uint64, m *measurement, container Container, e Entry) {
	if e.Target != container || !e.Intersecting {
		return
	}
	c.mu.Lock()
	stale := !c.current(gen) || c.measure != m
	c.mu.Unlock()
	if stale || !m.fire() {
		m.dispose()
		return
	}

	h := container.Height()
	m.dispose()

	c.mu.Lock()
	if c.current(gen) && c.onResize != nil {
		fn := c.onResize
		c.pending = append(c.pending, func() { fn(h) })
	}
	c.mu.Unlock()
	c.flush()
}

// Unmount tears the instance down: pending timers stop, observations are
// disposed and the state is discarded. Listener calls not yet delivered are
// dropped, and async work still in flight is ignored when it completes.
func (c *Controller) Unmount() {
	c.mu.Lock()
	if !c.mounted {
		c.mu.Unlock()
		return
	}
	c.mounted = false
	c.gen++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.stopTimer()
	m, initial := c.measure, c.initial
	c.measure, c.initial = nil, nil
	c.state = Unloaded
	c.asset, c.hasAsset, c.loaded = preview.Asset{}, false, false
	c.container = nil
	c.pending = nil
	c.mu.Unlock()

	if m != nil {
		m.dispose()
	}
	if initial != nil {
		initial.dispose()
	}
	c.logger().Debug("embed unmounted")
}

// current reports whether gen belongs to the live mount. Callers hold mu.
func (c *Controller) current(gen uint64) bool {
	return c.mounted && c.gen == gen
}

// advance moves forward to `to`, queueing the state listener. Backward or
// repeated transitions are ignored. Callers hold mu.
func (c *Controller) advance(to State) {
	from := c.state
	if to <= from {
		return
	}
	c.state = to
	c.logger().Debug("embed state changed", "from", from, "to", to)
	if c.onState != nil {
		fn := c.onState
		c.pending = append(c.pending, func() { fn(from, to) })
	}
}

// reveal queues the surface reveal once per mount. Callers hold mu.
func (c *Controller) reveal() {
	if c.revealed || c.surface == nil {
		return
	}
	c.revealed = true
	s := c.surface
	c.pending = append(c.pending, s.Reveal)
}

// stopTimer cancels a pending transition. Callers hold mu.
func (c *Controller) stopTimer() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// flush runs queued listener calls in order. Only one goroutine drains at a
// time; calls queued meanwhile, including from listeners themselves, are
// picked up by the draining goroutine.
func (c *Controller) flush() {
	for {
		c.mu.Lock()
		if c.draining || len(c.pending) == 0 {
			c.mu.Unlock()
			return
		}
		c.draining = true
		fn := c.pending[0]
		c.pending = c.pending[1:]
		c.mu.Unlock()

		fn()

		c.mu.Lock()
		c.draining = false
		c.mu.Unlock()
	}
}
