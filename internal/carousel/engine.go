// Package carousel drives the projects slider: a circular slide-snap engine
// plus a controller that adds debounced wheel navigation and active-slide
// tracking on top of it.
package carousel

import (
	"errors"
	"fmt"
	"sync"
)

var ErrNoSlides = errors.New("carousel: at least one slide is required")

// Engine is the slide-snap primitive the controller drives.
type Engine interface {
	SelectedIndex() int
	Next()
	Previous()
	// OnSelect registers fn for every change of the selected snap.
	OnSelect(fn func(index int)) (cancel func())
}

// LoopEngine is an in-memory Engine over n slides with wrap-around in both
// directions.
type LoopEngine struct {
	mu       sync.Mutex
	n        int
	selected int
	nextID   int
	order    []int
	subs     map[int]func(int)
}

// NewLoopEngine creates an engine with start normalised into [0, n).
func NewLoopEngine(n, start int) (*LoopEngine, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w (got %d)", ErrNoSlides, n)
	}
	return &LoopEngine{
		n:        n,
		selected: mod(start, n),
		subs:     make(map[int]func(int)),
	}, nil
}

func (e *LoopEngine) Len() int { return e.n }

func (e *LoopEngine) SelectedIndex() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selected
}

func (e *LoopEngine) Next()     { e.move(1) }
func (e *LoopEngine) Previous() { e.move(-1) }

// Snap selects slide i directly, as a drag release would.
func (e *LoopEngine) Snap(i int) {
	e.mu.Lock()
	target := mod(i, e.n)
	e.mu.Unlock()
	e.selectIndex(target)
}

func (e *LoopEngine) OnSelect(fn func(int)) func() {
	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.subs[id] = fn
	e.order = append(e.order, id)
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if _, ok := e.subs[id]; !ok {
			return
		}
		delete(e.subs, id)
		for i, v := range e.order {
			if v == id {
				e.order = append(e.order[:i], e.order[i+1:]...)
				break
			}
		}
	}
}

// Subscribers reports how many select listeners are attached.
func (e *LoopEngine) Subscribers() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.subs)
}

func (e *LoopEngine) move(step int) {
	e.mu.Lock()
	target := mod(e.selected+step, e.n)
	e.mu.Unlock()
	e.selectIndex(target)
}

func (e *LoopEngine) selectIndex(target int) {
	e.mu.Lock()
	if e.n == 1 || target == e.selected {
		e.mu.Unlock()
		return
	}
	e.selected = target
	fns := make([]func(int), 0, len(e.order))
	for _, id := range e.order {
		fns = append(fns, e.subs[id])
	}
	e.mu.Unlock()

	for _, fn := range fns {
		fn(target)
	}
}

func mod(i, n int) int {
	return ((i % n) + n) % n
}
