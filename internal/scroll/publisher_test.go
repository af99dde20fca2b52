package scroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerticalParallax(t *testing.T) {
	tests := []struct {
		name   string
		state  State
		speed  float64
		offset float64
		want   float64
	}{
		{name: "half speed", state: State{ScrollY: 200}, speed: 0.5, want: 100},
		{name: "offset", state: State{ScrollY: 200}, speed: 0.5, offset: 100, want: 50},
		{name: "negative speed", state: State{ScrollY: 100}, speed: -0.15, want: -15},
		{name: "above offset", state: State{ScrollY: 0}, speed: 1, offset: 40, want: -40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.state.VerticalParallax(tt.speed, tt.offset), 1e-9)
		})
	}
}

func TestVerticalParallaxZeroSpeed(t *testing.T) {
	for _, y := range []int{0, 1, 250, 10_000, -30} {
		for _, offset := range []float64{0, 100, -5000} {
			assert.Zero(t, State{ScrollY: y}.VerticalParallax(0, offset))
		}
	}
}

func TestHorizontalParallax(t *testing.T) {
	s := State{ScrollY: 500, ViewportHeight: 800}
	assert.InDelta(t, 80.0, s.HorizontalParallax(0.1, 500), 1e-9)
	assert.InDelta(t, -40.0, s.HorizontalParallax(-0.05, 500), 1e-9)
}

func TestOpacity(t *testing.T) {
	tests := []struct {
		name  string
		state State
		top   float64
		fade  float64
		want  float64
	}{
		{name: "below viewport", state: State{ScrollY: 0, ViewportHeight: 800}, top: 2000, fade: 300, want: 0},
		{name: "half faded", state: State{ScrollY: 1350, ViewportHeight: 800}, top: 2000, fade: 300, want: 0.5},
		{name: "fully shown", state: State{ScrollY: 3000, ViewportHeight: 800}, top: 2000, fade: 300, want: 1},
		{name: "zero fade shown", state: State{ScrollY: 1200, ViewportHeight: 800}, top: 2000, fade: 0, want: 1},
		{name: "zero fade hidden", state: State{ScrollY: 0, ViewportHeight: 800}, top: 2000, fade: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.state.Opacity(tt.top, tt.fade), 1e-9)
		})
	}
}

func TestRelativeFloorsAtZero(t *testing.T) {
	s := State{ScrollY: 0, ViewportHeight: 800}
	assert.Zero(t, s.Relative(5000))
	assert.InDelta(t, 300.0, s.Relative(500), 1e-9)
}

func TestPublisherSynchronousUpdates(t *testing.T) {
	p := NewPublisher(State{ScrollY: 12, ViewportHeight: 900})
	assert.Equal(t, State{ScrollY: 12, ViewportHeight: 900}, p.State())

	var order []string
	var seen []State
	p.Subscribe(func(s State) { order = append(order, "first"); seen = append(seen, s) })
	unsub := p.Subscribe(func(State) { order = append(order, "second") })

	p.Update(100)
	assert.Equal(t, []string{"first", "second"}, order)
	assert.Equal(t, State{ScrollY: 100, ViewportHeight: 900}, seen[0])

	unsub()
	unsub()
	assert.Equal(t, 1, p.Subscribers())

	p.Resize(700)
	assert.Equal(t, []string{"first", "second", "first"}, order)
	assert.Equal(t, State{ScrollY: 100, ViewportHeight: 700}, p.State())
}
