package carousel

import (
	"math"
	"sync"
	"time"
)

const (
	DefaultCooldown  = 300 * time.Millisecond
	DefaultThreshold = 15.0

	activeScale     = 1.0
	activeOpacity   = 1.0
	inactiveScale   = 0.95
	inactiveOpacity = 0.5
)

// WheelEvent is a wheel or trackpad gesture over the carousel, in pixels.
type WheelEvent struct {
	DeltaX float64
	DeltaY float64
}

// Direction of an accepted gesture.
type Direction int

const (
	None Direction = iota
	Forward
	Backward
)

// WheelResult tells the caller what happened to a gesture. PreventDefault
// is always set: wheel input over the carousel never scrolls the page.
type WheelResult struct {
	PreventDefault bool
	Moved          Direction
}

// Style is how a slide is drawn given the active index.
type Style struct {
	Scale   float64
	Opacity float64
	Active  bool
}

type Option func(*Controller)

func WithCooldown(d time.Duration) Option {
	return func(c *Controller) { c.cooldown = d }
}

func WithThreshold(px float64) Option {
	return func(c *Controller) { c.threshold = px }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// Controller keeps the active index in step with the engine and turns
// wheel gestures into next/previous moves.
type Controller struct {
	engine    Engine
	cooldown  time.Duration
	threshold float64
	now       func() time.Time

	mu        sync.Mutex
	active    int
	lastWheel time.Time
	cancel    func()
}

// NewController subscribes to engine's select notifications until Close.
func NewController(engine Engine, opts ...Option) *Controller {
	c := &Controller{
		engine:    engine,
		cooldown:  DefaultCooldown,
		threshold: DefaultThreshold,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.active = engine.SelectedIndex()
	c.cancel = engine.OnSelect(func(i int) {
		c.mu.Lock()
		c.active = i
		c.mu.Unlock()
	})
	return c
}

// Active returns the index of the selected slide.
func (c *Controller) Active() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Len reports the slide count when the engine exposes one, else 0.
func (c *Controller) Len() int {
	if l, ok := c.engine.(interface{ Len() int }); ok {
		return l.Len()
	}
	return 0
}

func (c *Controller) Next()     { c.engine.Next() }
func (c *Controller) Previous() { c.engine.Previous() }

// Wheel handles one gesture. Gestures inside the cooldown window of the last
// accepted one, or too small on both axes, are swallowed without moving.
func (c *Controller) Wheel(ev WheelEvent) WheelResult {
	res := WheelResult{PreventDefault: true}

	c.mu.Lock()
	now := c.now()
	if !c.lastWheel.IsZero() && now.Sub(c.lastWheel) < c.cooldown {
		c.mu.Unlock()
		return res
	}
	if math.Abs(ev.DeltaX) <= c.threshold && math.Abs(ev.DeltaY) <= c.threshold {
		c.mu.Unlock()
		return res
	}
	c.lastWheel = now
	c.mu.Unlock()

	switch {
	case ev.DeltaX > 0 || ev.DeltaY > 0:
		c.engine.Next()
		res.Moved = Forward
	case ev.DeltaX < 0 || ev.DeltaY < 0:
		c.engine.Previous()
		res.Moved = Backward
	}
	return res
}

// SlideStyle is a pure function of the active index.
func (c *Controller) SlideStyle(i int) Style {
	if i == c.Active() {
		return Style{Scale: activeScale, Opacity: activeOpacity, Active: true}
	}
	return Style{Scale: inactiveScale, Opacity: inactiveOpacity}
}

// Close detaches from the engine.
func (c *Controller) Close() {
	c.mu.Lock()
	cancel := c.cancel
	c.cancel = nil
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}
