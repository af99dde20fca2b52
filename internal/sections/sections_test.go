package sections

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhinavshiv7/portfolio/internal/carousel"
	"github.com/abhinavshiv7/portfolio/internal/scroll"
)

func newTestPage(t *testing.T, opts Options) *Page {
	t.Helper()
	p, err := NewPage(DefaultLayout(), opts)
	require.NoError(t, err)
	t.Cleanup(p.Close)
	return p
}

func TestHeroParallax(t *testing.T) {
	v := heroRenderer{}.Render(Frame{Scroll: scroll.State{ScrollY: 100, ViewportHeight: 800}, Visible: true}).(HeroView)

	assert.InDelta(t, 30, v.TextOffset, 1e-9)
	assert.InDelta(t, -15, v.ImageOffset, 1e-9)
	assert.InDelta(t, 2.0/3.0, v.NavOpacity, 1e-9)
	assert.InDelta(t, 0.5, v.IndicatorOpacity, 1e-9)
	require.Len(t, v.Nav, 7)
	assert.Equal(t, "Certifications", v.Nav[4].Label)
	assert.Equal(t, Experience, v.Nav[4].ID)
	assert.Equal(t, "0.4s", v.Nav[4].Delay.String())

	far := heroRenderer{}.Render(Frame{Scroll: scroll.State{ScrollY: 600}}).(HeroView)
	assert.Zero(t, far.NavOpacity)
	assert.Zero(t, far.IndicatorOpacity)
}

func TestAboutOffsets(t *testing.T) {
	hidden := aboutRenderer{}.Render(Frame{Scroll: scroll.State{ViewportHeight: 800}, Top: 900}).(AboutView)
	assert.Equal(t, -50.0, hidden.LeftOffset)
	assert.Equal(t, 50.0, hidden.RightOffset)

	// relative = 300 - 900 + 800 = 200, offset = -50 + 16
	shown := aboutRenderer{}.Render(Frame{Scroll: scroll.State{ScrollY: 300, ViewportHeight: 800}, Visible: true, Top: 900}).(AboutView)
	assert.InDelta(t, -34, shown.LeftOffset, 1e-9)
	assert.InDelta(t, 34, shown.RightOffset, 1e-9)

	// Offsets never overshoot past zero.
	deep := aboutRenderer{}.Render(Frame{Scroll: scroll.State{ScrollY: 5000, ViewportHeight: 800}, Visible: true, Top: 900}).(AboutView)
	assert.Zero(t, deep.LeftOffset)
	assert.Len(t, deep.Highlights, 3)
	assert.Equal(t, "0.3s", deep.Highlights[2].Delay.String())
}

func TestSkillsRevealAndStagger(t *testing.T) {
	hidden := skillsRenderer{}.Render(Frame{Scroll: scroll.State{ViewportHeight: 800}, Top: 2400}).(SkillsView)
	assert.Equal(t, 30.0, hidden.HeaderOffset)
	for _, c := range hidden.Categories {
		assert.Equal(t, Delay(0), c.Delay)
		for _, s := range c.Skills {
			assert.Zero(t, s.Progress)
		}
	}

	// relative = 1900 - 2400 + 800 = 300, offset = -30 + 15
	shown := skillsRenderer{}.Render(Frame{Scroll: scroll.State{ScrollY: 1900, ViewportHeight: 800}, Visible: true, Top: 2400}).(SkillsView)
	assert.InDelta(t, -15, shown.HeaderOffset, 1e-9)
	require.Len(t, shown.Categories, 5)

	cloud := shown.Categories[1]
	assert.Equal(t, "Cloud & DevOps", cloud.Name)
	assert.Equal(t, "0.1s", cloud.Delay.String())
	assert.Equal(t, "0.2s", cloud.Skills[2].Delay.String())
	assert.Equal(t, cloud.Skills[2].Level, cloud.Skills[2].Progress)
}

func TestStaticSections(t *testing.T) {
	tools := toolsRenderer{}.Render(Frame{}).(ToolsView)
	require.Len(t, tools.Groups, 6)
	assert.Equal(t, "0.25s", tools.Groups[5].Delay.String())

	exp := experienceRenderer{}.Render(Frame{Visible: true}).(ExperienceView)
	require.Len(t, exp.Groups, 2)
	assert.True(t, exp.Visible)
	assert.Equal(t, "0.1s", exp.Groups[1].Delay.String())

	edu := educationRenderer{}.Render(Frame{}).(EducationView)
	assert.Len(t, edu.Coursework, 8)

	c := contactRenderer{}.Render(Frame{}).(ContactView)
	require.Len(t, c.Cards, 3)
	assert.Equal(t, "mailto:abhinav.shiv7@gmail.com", c.Cards[0].Href)
	assert.Contains(t, c.Cards[1].Href, "phone=919341494320")
	assert.Contains(t, c.Cards[1].Href, "text=Hi+Abhinav%21")
	assert.Empty(t, c.Cards[2].Href)
}

func TestPageInitialViewport(t *testing.T) {
	p := newTestPage(t, Options{})

	assert.True(t, p.Visible(Hero))
	assert.False(t, p.Visible(About))
	assert.False(t, p.Visible(Contact))

	// The initial evaluation already covers sections in the first screen.
	deep := newTestPage(t, Options{ScrollY: 300})
	assert.True(t, deep.Visible(About))
	assert.False(t, deep.Visible(Projects))
}

func TestPageRevealOnce(t *testing.T) {
	p := newTestPage(t, Options{})

	p.ScrollTo(300)
	assert.True(t, p.Visible(About))

	p.ScrollTo(0)
	assert.True(t, p.Visible(About), "one-shot reveal must not revert")
	assert.False(t, p.Visible(Skills))
}

func TestPageReplay(t *testing.T) {
	p := newTestPage(t, Options{Replay: true})

	p.ScrollTo(300)
	assert.True(t, p.Visible(About))

	p.ScrollTo(0)
	assert.False(t, p.Visible(About))

	p.ScrollTo(1000)
	assert.True(t, p.Visible(About))
}

func TestPageResizeReevaluates(t *testing.T) {
	p := newTestPage(t, Options{ViewportHeight: 800})
	assert.False(t, p.Visible(About))

	// Root becomes [0, 1100], about starts at 900.
	p.Resize(1200)
	assert.True(t, p.Visible(About))
	assert.Equal(t, 1200, p.Scroll().ViewportHeight)
}

func TestPageViewUsesCurrentState(t *testing.T) {
	p := newTestPage(t, Options{})
	p.ScrollTo(300)

	data, err := p.View(About)
	require.NoError(t, err)
	about := data.(AboutView)
	assert.True(t, about.Visible)
	assert.InDelta(t, -34, about.LeftOffset, 1e-9)

	_, err = p.View("blog")
	assert.ErrorIs(t, err, ErrUnknownSection)
}

func TestPageViewsInLayoutOrder(t *testing.T) {
	p := newTestPage(t, Options{})

	var ids []string
	for _, v := range p.Views() {
		ids = append(ids, v.ID)
		assert.NotNil(t, v.Data)
	}
	assert.Equal(t, []string{Hero, About, Projects, Skills, Tools, Experience, Education, Contact}, ids)
}

func TestPageCarousel(t *testing.T) {
	p := newTestPage(t, Options{Slide: 1})
	c := p.Carousel()
	assert.Equal(t, ProjectCount, c.Len())

	for i := 0; i < 7; i++ {
		c.Next()
	}
	assert.Equal(t, (1+7)%ProjectCount, c.Active())

	data, err := p.View(Projects)
	require.NoError(t, err)
	v := data.(ProjectsView)
	assert.Equal(t, 3, v.Active)
	assert.Equal(t, 2, v.Prev)
	assert.Equal(t, 4, v.Next)
	assert.True(t, v.Slides[3].Style.Active)
	assert.Equal(t, carousel.Style{Scale: 0.95, Opacity: 0.5}, v.Slides[0].Style)

	p.SelectSlide(-1)
	assert.Equal(t, ProjectCount-1, c.Active())
}

func TestPageCarouselWheelCooldown(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	p := newTestPage(t, Options{Clock: func() time.Time { return now }})
	c := p.Carousel()

	c.Wheel(carousel.WheelEvent{DeltaY: 40})
	now = now.Add(100 * time.Millisecond)
	c.Wheel(carousel.WheelEvent{DeltaY: 40})
	assert.Equal(t, 1, c.Active())

	now = now.Add(300 * time.Millisecond)
	c.Wheel(carousel.WheelEvent{DeltaX: -40})
	assert.Equal(t, 0, c.Active())
}

func TestPageCloseReleasesEverything(t *testing.T) {
	p, err := NewPage(DefaultLayout(), Options{})
	require.NoError(t, err)
	p.ScrollTo(300)

	assert.Positive(t, p.tracker.Len())
	assert.Equal(t, 1, p.scroll.Subscribers())
	assert.Equal(t, 1, p.engine.Subscribers())

	p.Close()
	p.Close()

	assert.Zero(t, p.tracker.Len())
	assert.Zero(t, p.scroll.Subscribers())
	assert.Zero(t, p.engine.Subscribers())
	assert.True(t, p.Visible(About))

	// Scrolling after teardown must not revive observations.
	p.ScrollTo(5000)
	assert.False(t, p.Visible(Contact))
}

func TestInvalidLayout(t *testing.T) {
	tests := []struct {
		name   string
		layout Layout
		want   error
	}{
		{name: "unknown", layout: Layout{Width: 100, Sections: []Placement{{ID: "blog"}}}, want: ErrUnknownSection},
		{name: "duplicate", layout: Layout{Width: 100, Sections: []Placement{{ID: About}, {ID: About}}}, want: ErrInvalidLayout},
		{name: "no width", layout: Layout{Sections: []Placement{{ID: About}}}, want: ErrInvalidLayout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPage(tt.layout, Options{})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPartialLayoutWithoutHero(t *testing.T) {
	p, err := NewPage(Layout{Width: 800, Sections: []Placement{{ID: Contact, Top: 0, Height: 500}}}, Options{})
	require.NoError(t, err)
	defer p.Close()

	assert.False(t, p.Visible(Hero))
	assert.True(t, p.Visible(Contact))
	_, err = p.View(About)
	assert.ErrorIs(t, err, ErrUnknownSection)
}

func revealOf(t *testing.T, data any) Reveal {
	t.Helper()
	switch v := data.(type) {
	case AboutView:
		return v.Reveal
	case ProjectsView:
		return v.Reveal
	case SkillsView:
		return v.Reveal
	case ToolsView:
		return v.Reveal
	case ExperienceView:
		return v.Reveal
	case EducationView:
		return v.Reveal
	case ContactView:
		return v.Reveal
	}
	t.Fatalf("no reveal state on %T", data)
	return Reveal{}
}

// A concealed section fetched at its own top must come back revealed, or
// it would stay hidden in the browser.
func TestSectionRevealsAtOwnTop(t *testing.T) {
	initial := newTestPage(t, Options{})
	for _, pl := range DefaultLayout().Sections {
		if pl.ID == Hero {
			continue
		}
		t.Run(pl.ID, func(t *testing.T) {
			data, err := initial.View(pl.ID)
			require.NoError(t, err)
			r := revealOf(t, data)
			assert.Equal(t, pl.ID, r.Section)
			assert.Equal(t, pl.Top, r.Top)
			assert.False(t, r.Visible)

			p := newTestPage(t, Options{ScrollY: r.Top})
			data, err = p.View(pl.ID)
			require.NoError(t, err)
			assert.True(t, revealOf(t, data).Visible)
		})
	}
}
