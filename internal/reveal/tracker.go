// Package reveal tracks when page sections scroll into view.
//
// A Tracker plays the role of an intersection observer: elements are
// registered with a Config and receive a Signal that flips to visible once
// enough of the element lies within the (margin-adjusted) viewport. Each
// call to Observe re-evaluates every active registration against a new
// viewport. Signals are scoped: Close cancels the observation.
package reveal

import (
	"errors"
	"fmt"
	"sync"
)

var (
	ErrAlreadyObserved = errors.New("reveal: element already observed")
	ErrInvalidConfig   = errors.New("reveal: invalid config")
)

const (
	DefaultThreshold  = 0.1
	DefaultRootMargin = "0px 0px -100px 0px"
)

// Element is anything with a stable id and a position in the document.
type Element interface {
	ID() string
	Bounds() Rect
}

// Config controls when an element counts as visible.
type Config struct {
	// Threshold is the fraction of the element (0-1) that must be inside
	// the root.
	Threshold float64
	// RootMargin adjusts the viewport edges, CSS shorthand.
	RootMargin string
	// TriggerOnce stops observing after the first reveal.
	TriggerOnce bool
}

// DefaultConfig reveals once, when 10% of the element is inside a viewport
// whose bottom edge is pulled in by 100px.
func DefaultConfig() Config {
	return Config{
		Threshold:   DefaultThreshold,
		RootMargin:  DefaultRootMargin,
		TriggerOnce: true,
	}
}

type registration struct {
	el     Element
	margin Margin
	cfg    Config
	signal *Signal
}

// Tracker owns the set of active observations.
type Tracker struct {
	mu       sync.Mutex
	entries  map[string]*registration
	viewport *Viewport
}

func NewTracker() *Tracker {
	return &Tracker{entries: make(map[string]*registration)}
}

// Register starts observing el. If a viewport has already been observed the
// element is evaluated against it immediately.
func (t *Tracker) Register(el Element, cfg Config) (*Signal, error) {
	if cfg.Threshold < 0 || cfg.Threshold > 1 {
		return nil, fmt.Errorf("%w: threshold %v outside [0,1]", ErrInvalidConfig, cfg.Threshold)
	}
	margin, err := ParseMargin(cfg.RootMargin)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	t.mu.Lock()
	id := el.ID()
	if _, ok := t.entries[id]; ok {
		t.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrAlreadyObserved, id)
	}
	sig := &Signal{tracker: t, id: id, observing: true}
	reg := &registration{el: el, margin: margin, cfg: cfg, signal: sig}
	t.entries[id] = reg

	var fire func()
	if t.viewport != nil {
		fire = t.evaluateLocked(reg, *t.viewport)
	}
	t.mu.Unlock()

	if fire != nil {
		fire()
	}
	return sig, nil
}

// Observe evaluates every active registration against v.
func (t *Tracker) Observe(v Viewport) {
	t.mu.Lock()
	t.viewport = &v
	var fired []func()
	for _, reg := range t.entries {
		if f := t.evaluateLocked(reg, v); f != nil {
			fired = append(fired, f)
		}
	}
	t.mu.Unlock()

	for _, f := range fired {
		f()
	}
}

// Len reports the number of active observations.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// evaluateLocked updates reg's signal and returns the change notification
// to run once the tracker lock is released, or nil.
func (t *Tracker) evaluateLocked(reg *registration, v Viewport) func() {
	root := reg.margin.Apply(v.Root())
	ratio := IntersectionRatio(reg.el.Bounds(), root)
	inView := ratio > 0 && ratio >= reg.cfg.Threshold

	sig := reg.signal
	if inView && reg.cfg.TriggerOnce {
		delete(t.entries, sig.id)
		return sig.set(true, false)
	}
	if !inView && reg.cfg.TriggerOnce {
		return nil
	}
	return sig.set(inView, true)
}

func (t *Tracker) unregister(id string, sig *Signal) {
	t.mu.Lock()
	if reg, ok := t.entries[id]; ok && reg.signal == sig {
		delete(t.entries, id)
	}
	t.mu.Unlock()
}

// Signal is the visibility flag for one registered element.
type Signal struct {
	tracker *Tracker

	mu        sync.Mutex
	id        string
	visible   bool
	observing bool
	nextSub   int
	order     []int
	subs      map[int]func(bool) // fired outside the tracker lock, in order
}

// Visible reports whether the element is currently revealed.
func (s *Signal) Visible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

// Observing reports whether the tracker still evaluates this element.
func (s *Signal) Observing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.observing
}

// OnChange calls fn every time the flag changes value. Callbacks run in
// registration order.
func (s *Signal) OnChange(fn func(visible bool)) (cancel func()) {
	s.mu.Lock()
	if s.subs == nil {
		s.subs = make(map[int]func(bool))
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.order = append(s.order, id)
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subs[id]; !ok {
			return
		}
		delete(s.subs, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}

// Close stops observing the element. The last visibility value is kept.
func (s *Signal) Close() {
	s.mu.Lock()
	if !s.observing {
		s.mu.Unlock()
		return
	}
	s.observing = false
	s.mu.Unlock()
	s.tracker.unregister(s.id, s)
}

func (s *Signal) set(visible, keepObserving bool) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !keepObserving {
		s.observing = false
	}
	if s.visible == visible {
		return nil
	}
	s.visible = visible

	subs := make([]func(bool), 0, len(s.order))
	for _, id := range s.order {
		subs = append(subs, s.subs[id])
	}
	return func() {
		for _, fn := range subs {
			fn(visible)
		}
	}
}
