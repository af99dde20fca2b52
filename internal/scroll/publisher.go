// Package scroll publishes the page's vertical scroll offset and derives
// parallax and fade values from it.
package scroll

import (
	"math"
	"sync"
)

// DefaultFadeDistance is the scroll distance over which Opacity goes from 0
// to 1.
const DefaultFadeDistance = 300

// State is a snapshot of the scroll position. All derivations are pure
// arithmetic so they can be recomputed on every tick.
type State struct {
	ScrollY        int
	ViewportHeight int
}

// VerticalParallax is (scrollY - offset) * speed.
func (s State) VerticalParallax(speed, offset float64) float64 {
	return (float64(s.ScrollY) - offset) * speed
}

// HorizontalParallax is (scrollY - elementTop + viewportHeight) * speed.
func (s State) HorizontalParallax(speed, elementTop float64) float64 {
	return s.relative(elementTop) * speed
}

// Opacity fades an element in as it scrolls up into view, clamped to [0,1].
// A non-positive fadeDistance makes the fade a step at the viewport bottom.
func (s State) Opacity(elementTop, fadeDistance float64) float64 {
	rel := s.relative(elementTop)
	if fadeDistance <= 0 {
		if rel >= 0 {
			return 1
		}
		return 0
	}
	return math.Min(1, math.Max(0, rel/fadeDistance))
}

// Relative is how far the viewport bottom has travelled past elementTop,
// floored at zero.
func (s State) Relative(elementTop float64) float64 {
	return math.Max(0, s.relative(elementTop))
}

func (s State) relative(elementTop float64) float64 {
	return float64(s.ScrollY) - elementTop + float64(s.ViewportHeight)
}

// Publisher holds the single shared scroll state. Consumers only read it;
// updates are pushed synchronously to every subscriber.
type Publisher struct {
	mu     sync.RWMutex
	state  State
	nextID int
	order  []int
	subs   map[int]func(State)
}

// NewPublisher creates a publisher seeded with the position at mount time.
func NewPublisher(initial State) *Publisher {
	return &Publisher{
		state: initial,
		subs:  make(map[int]func(State)),
	}
}

// State returns the current snapshot.
func (p *Publisher) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// Update records a new scroll offset and notifies subscribers.
func (p *Publisher) Update(scrollY int) {
	p.mu.Lock()
	p.state.ScrollY = scrollY
	p.mu.Unlock()
	p.publish()
}

// Resize records a new viewport height and notifies subscribers.
func (p *Publisher) Resize(viewportHeight int) {
	p.mu.Lock()
	p.state.ViewportHeight = viewportHeight
	p.mu.Unlock()
	p.publish()
}

// Subscribe registers fn for every subsequent update, in subscription order.
func (p *Publisher) Subscribe(fn func(State)) (unsubscribe func()) {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.subs[id] = fn
	p.order = append(p.order, id)
	p.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			delete(p.subs, id)
			for i, v := range p.order {
				if v == id {
					p.order = append(p.order[:i], p.order[i+1:]...)
					break
				}
			}
		})
	}
}

// Subscribers reports how many callbacks are registered.
func (p *Publisher) Subscribers() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.subs)
}

func (p *Publisher) publish() {
	p.mu.RLock()
	st := p.state
	fns := make([]func(State), 0, len(p.order))
	for _, id := range p.order {
		fns = append(fns, p.subs[id])
	}
	p.mu.RUnlock()

	for _, fn := range fns {
		fn(st)
	}
}
