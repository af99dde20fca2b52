package reveal

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type box struct {
	id     string
	bounds Rect
}

func (b *box) ID() string   { return b.id }
func (b *box) Bounds() Rect { return b.bounds }

// section at document y=1000, 400px tall, full width.
func section(id string) *box {
	return &box{id: id, bounds: Rect{X: 0, Y: 1000, Width: 1200, Height: 400}}
}

func viewportAt(y float64) Viewport {
	return Viewport{ScrollY: y, Width: 1200, Height: 800}
}

func TestParseMargin(t *testing.T) {
	tests := []struct {
		in      string
		want    Margin
		wantErr bool
	}{
		{in: "", want: Margin{}},
		{in: "10px", want: Margin{Length{Value: 10}, Length{Value: 10}, Length{Value: 10}, Length{Value: 10}}},
		{in: "0px 0px -100px 0px", want: Margin{Bottom: Length{Value: -100}}},
		{in: "5 10", want: Margin{Length{Value: 5}, Length{Value: 10}, Length{Value: 5}, Length{Value: 10}}},
		{in: "1px 2px 3px", want: Margin{Length{Value: 1}, Length{Value: 2}, Length{Value: 3}, Length{Value: 2}}},
		{in: "10%", want: Margin{Length{10, true}, Length{10, true}, Length{10, true}, Length{10, true}}},
		{in: "abc", wantErr: true},
		{in: "1px 2px 3px 4px 5px", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMargin(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMarginApply(t *testing.T) {
	m, err := ParseMargin(DefaultRootMargin)
	require.NoError(t, err)

	root := m.Apply(Rect{X: 0, Y: 500, Width: 1000, Height: 800})
	assert.Equal(t, Rect{X: 0, Y: 500, Width: 1000, Height: 700}, root)

	pct, err := ParseMargin("10%")
	require.NoError(t, err)
	grown := pct.Apply(Rect{Width: 100, Height: 200})
	assert.Equal(t, Rect{X: -10, Y: -20, Width: 120, Height: 240}, grown)
}

func TestIntersectionRatio(t *testing.T) {
	root := Rect{Y: 0, Width: 100, Height: 100}

	assert.Equal(t, 1.0, IntersectionRatio(Rect{Y: 10, Width: 100, Height: 50}, root))
	assert.Equal(t, 0.5, IntersectionRatio(Rect{Y: 50, Width: 100, Height: 100}, root))
	assert.Equal(t, 0.0, IntersectionRatio(Rect{Y: 100, Width: 100, Height: 100}, root))
	assert.Equal(t, 0.0, IntersectionRatio(Rect{Y: 300, Width: 100, Height: 10}, root))
	assert.Equal(t, 1.0, IntersectionRatio(Rect{Y: 40, Width: 0, Height: 0}, root))
	assert.Equal(t, 0.0, IntersectionRatio(Rect{Y: 400, Width: 0, Height: 0}, root))
}

func TestRegisterOneShot(t *testing.T) {
	tr := NewTracker()
	sig, err := tr.Register(section("about"), DefaultConfig())
	require.NoError(t, err)

	// Before any viewport is known nothing is visible.
	assert.False(t, sig.Visible())
	assert.True(t, sig.Observing())

	// Root is [0, 700) after the -100px margin: no overlap.
	tr.Observe(viewportAt(0))
	assert.False(t, sig.Visible())

	// Root [400, 1100): 100/400 = 25% visible.
	tr.Observe(viewportAt(400))
	assert.True(t, sig.Visible())
	assert.False(t, sig.Observing())
	assert.Equal(t, 0, tr.Len())

	// Scrolling back up never reverts a one-shot signal.
	tr.Observe(viewportAt(0))
	assert.True(t, sig.Visible())
}

func TestRegisterToggle(t *testing.T) {
	tr := NewTracker()
	cfg := DefaultConfig()
	cfg.TriggerOnce = false
	sig, err := tr.Register(section("skills"), cfg)
	require.NoError(t, err)

	var changes []bool
	sig.OnChange(func(v bool) { changes = append(changes, v) })

	tr.Observe(viewportAt(400))
	assert.True(t, sig.Visible())
	tr.Observe(viewportAt(0))
	assert.False(t, sig.Visible())
	tr.Observe(viewportAt(900))
	assert.True(t, sig.Visible())
	tr.Observe(viewportAt(5000))
	assert.False(t, sig.Visible())

	assert.Equal(t, []bool{true, false, true, false}, changes)
	assert.True(t, sig.Observing())
	assert.Equal(t, 1, tr.Len())
}

func TestBelowThresholdNeverReveals(t *testing.T) {
	for _, threshold := range []float64{0.05, 0.1, 0.25, 0.5, 0.9} {
		t.Run(fmt.Sprint(threshold), func(t *testing.T) {
			tr := NewTracker()
			cfg := Config{Threshold: threshold, TriggerOnce: true}
			sig, err := tr.Register(section("s"), cfg)
			require.NoError(t, err)

			// Keep the visible slice just under the threshold: the element's
			// top sits inside the bottom of the viewport by (t*400 - 1)px.
			visiblePx := threshold*400 - 1
			for i := 0; i < 10; i++ {
				y := 1000 + visiblePx - 800
				tr.Observe(viewportAt(y))
			}
			assert.False(t, sig.Visible())
		})
	}
}

func TestRegisterEvaluatesImmediately(t *testing.T) {
	tr := NewTracker()
	tr.Observe(viewportAt(600))

	sig, err := tr.Register(section("tools"), DefaultConfig())
	require.NoError(t, err)
	assert.True(t, sig.Visible())
}

func TestRegisterErrors(t *testing.T) {
	tr := NewTracker()
	_, err := tr.Register(section("a"), DefaultConfig())
	require.NoError(t, err)

	_, err = tr.Register(section("a"), DefaultConfig())
	assert.ErrorIs(t, err, ErrAlreadyObserved)

	_, err = tr.Register(section("b"), Config{Threshold: 1.5})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = tr.Register(section("c"), Config{RootMargin: "nope"})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestCloseCancelsObservation(t *testing.T) {
	tests := []struct {
		name        string
		triggerOnce bool
	}{
		{name: "one-shot", triggerOnce: true},
		{name: "toggle", triggerOnce: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker()
			cfg := DefaultConfig()
			cfg.TriggerOnce = tt.triggerOnce
			sig, err := tr.Register(section("contact"), cfg)
			require.NoError(t, err)

			sig.Close()
			sig.Close()
			assert.Equal(t, 0, tr.Len())
			assert.False(t, sig.Observing())

			tr.Observe(viewportAt(600))
			assert.False(t, sig.Visible())

			// The id is free again after teardown.
			_, err = tr.Register(section("contact"), cfg)
			assert.NoError(t, err)
		})
	}
}

func TestOnChangeCancel(t *testing.T) {
	tr := NewTracker()
	cfg := DefaultConfig()
	cfg.TriggerOnce = false
	sig, err := tr.Register(section("x"), cfg)
	require.NoError(t, err)

	calls := 0
	cancel := sig.OnChange(func(bool) { calls++ })
	tr.Observe(viewportAt(600))
	cancel()
	tr.Observe(viewportAt(0))
	assert.Equal(t, 1, calls)
}

func TestOnChangeRunsInRegistrationOrder(t *testing.T) {
	for run := 0; run < 20; run++ {
		tr := NewTracker()
		cfg := DefaultConfig()
		cfg.TriggerOnce = false
		sig, err := tr.Register(section("x"), cfg)
		require.NoError(t, err)

		var got []int
		cancels := make([]func(), 5)
		for i := range cancels {
			cancels[i] = sig.OnChange(func(bool) { got = append(got, i) })
		}
		cancels[2]()
		cancels[2]()

		tr.Observe(viewportAt(600))
		assert.Equal(t, []int{0, 1, 3, 4}, got)
	}
}
