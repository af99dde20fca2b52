// Package sections renders the portfolio's page sections.
//
// Each section owns a static content table and turns a Frame (the current
// scroll state, its reveal flag and its document offset) into a view model
// for the templates. Page wires every section to one scroll publisher, one
// reveal tracker and the projects carousel.
package sections

import (
	"errors"
	"fmt"
	"time"

	"github.com/abhinavshiv7/portfolio/internal/carousel"
	"github.com/abhinavshiv7/portfolio/internal/reveal"
	"github.com/abhinavshiv7/portfolio/internal/scroll"
)

// Section ids, in page order.
const (
	Hero       = "hero"
	About      = "about"
	Projects   = "projects"
	Skills     = "skills"
	Tools      = "tools"
	Experience = "experience"
	Education  = "education"
	Contact    = "contact"
)

var (
	ErrUnknownSection = errors.New("sections: unknown section")
	ErrInvalidLayout  = errors.New("sections: invalid layout")
)

// Frame is everything a renderer needs to compute one view.
type Frame struct {
	Scroll  scroll.State
	Visible bool
	Top     int
}

func (f Frame) relative() float64 {
	return f.Scroll.Relative(float64(f.Top))
}

// Renderer turns a Frame into a template view model.
type Renderer interface {
	ID() string
	Render(f Frame) any
}

// Placement is a section's box in document coordinates.
type Placement struct {
	ID     string
	Top    int
	Height int
}

// Layout is the ordered list of section placements plus the page width.
type Layout struct {
	Width    int
	Sections []Placement
}

// DefaultLayout approximates the rendered page on a 1280px wide desktop.
func DefaultLayout() Layout {
	return Layout{
		Width: 1280,
		Sections: []Placement{
			{ID: Hero, Top: 0, Height: 900},
			{ID: About, Top: 900, Height: 700},
			{ID: Projects, Top: 1600, Height: 800},
			{ID: Skills, Top: 2400, Height: 900},
			{ID: Tools, Top: 3300, Height: 700},
			{ID: Experience, Top: 4000, Height: 700},
			{ID: Education, Top: 4700, Height: 600},
			{ID: Contact, Top: 5300, Height: 1000},
		},
	}
}

func (l Layout) placement(id string) (Placement, bool) {
	for _, p := range l.Sections {
		if p.ID == id {
			return p, true
		}
	}
	return Placement{}, false
}

func (l Layout) validate() error {
	if l.Width <= 0 {
		return fmt.Errorf("%w: width %d", ErrInvalidLayout, l.Width)
	}
	seen := make(map[string]bool, len(l.Sections))
	for _, p := range l.Sections {
		if _, ok := renderers[p.ID]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownSection, p.ID)
		}
		if seen[p.ID] {
			return fmt.Errorf("%w: duplicate section %q", ErrInvalidLayout, p.ID)
		}
		if p.Height < 0 {
			return fmt.Errorf("%w: negative height for %q", ErrInvalidLayout, p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}

// renderers without per-page state. Projects is built per page around
// its carousel controller.
var renderers = map[string]Renderer{
	Hero:       heroRenderer{},
	About:      aboutRenderer{},
	Projects:   nil,
	Skills:     skillsRenderer{},
	Tools:      toolsRenderer{},
	Experience: experienceRenderer{},
	Education:  educationRenderer{},
	Contact:    contactRenderer{},
}

// Options tune a Page.
type Options struct {
	// Replay re-hides sections that scroll out of view instead of revealing
	// them once.
	Replay bool
	// ScrollY and ViewportHeight give the initial scroll state. The
	// viewport height defaults to 800.
	ScrollY        int
	ViewportHeight int
	// Slide is the initially selected project.
	Slide int
	// Clock drives the carousel wheel cooldown. Defaults to time.Now.
	Clock func() time.Time
}

// SectionView pairs a section id with its rendered view model.
type SectionView struct {
	ID   string
	Data any
}

type element struct {
	id   string
	rect reveal.Rect
}

func (e element) ID() string          { return e.id }
func (e element) Bounds() reveal.Rect { return e.rect }

// Page is one mounted instance of the site. It is safe for concurrent use
// but is normally built per request.
type Page struct {
	layout    Layout
	scroll    *scroll.Publisher
	tracker   *reveal.Tracker
	signals   map[string]*reveal.Signal
	engine    *carousel.LoopEngine
	carousel  *carousel.Controller
	renderers map[string]Renderer
	unsub     func()
}

// NewPage mounts every section in layout and evaluates the initial viewport.
func NewPage(layout Layout, opts Options) (*Page, error) {
	if err := layout.validate(); err != nil {
		return nil, err
	}
	if opts.ViewportHeight <= 0 {
		opts.ViewportHeight = 800
	}
	if opts.ScrollY < 0 {
		opts.ScrollY = 0
	}

	engine, err := carousel.NewLoopEngine(len(projects), opts.Slide)
	if err != nil {
		return nil, err
	}
	var copts []carousel.Option
	if opts.Clock != nil {
		copts = append(copts, carousel.WithClock(opts.Clock))
	}
	ctrl := carousel.NewController(engine, copts...)

	p := &Page{
		layout:    layout,
		scroll:    scroll.NewPublisher(scroll.State{ScrollY: opts.ScrollY, ViewportHeight: opts.ViewportHeight}),
		tracker:   reveal.NewTracker(),
		signals:   make(map[string]*reveal.Signal),
		engine:    engine,
		carousel:  ctrl,
		renderers: make(map[string]Renderer, len(renderers)),
	}
	for id, r := range renderers {
		p.renderers[id] = r
	}
	p.renderers[Projects] = projectsRenderer{ctrl: ctrl}

	cfg := reveal.DefaultConfig()
	cfg.TriggerOnce = !opts.Replay
	for _, pl := range layout.Sections {
		if pl.ID == Hero {
			continue
		}
		el := element{id: pl.ID, rect: reveal.Rect{
			Y:      float64(pl.Top),
			Width:  float64(layout.Width),
			Height: float64(pl.Height),
		}}
		sig, err := p.tracker.Register(el, cfg)
		if err != nil {
			p.Close()
			return nil, err
		}
		p.signals[pl.ID] = sig
	}

	p.unsub = p.scroll.Subscribe(func(s scroll.State) {
		p.tracker.Observe(p.viewport(s))
	})
	p.tracker.Observe(p.viewport(p.scroll.State()))
	return p, nil
}

func (p *Page) viewport(s scroll.State) reveal.Viewport {
	return reveal.Viewport{
		ScrollY: float64(s.ScrollY),
		Width:   float64(p.layout.Width),
		Height:  float64(s.ViewportHeight),
	}
}

// ScrollTo publishes a new scroll offset. Negative offsets clamp to 0.
func (p *Page) ScrollTo(y int) {
	if y < 0 {
		y = 0
	}
	p.scroll.Update(y)
}

func (p *Page) Resize(viewportHeight int) {
	p.scroll.Resize(viewportHeight)
}

func (p *Page) Scroll() scroll.State { return p.scroll.State() }

// Visible reports a section's reveal flag. Hero is always visible.
func (p *Page) Visible(id string) bool {
	if id == Hero {
		_, ok := p.layout.placement(Hero)
		return ok
	}
	sig, ok := p.signals[id]
	return ok && sig.Visible()
}

// View renders a single section.
func (p *Page) View(id string) (any, error) {
	pl, ok := p.layout.placement(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSection, id)
	}
	return p.renderers[id].Render(Frame{Scroll: p.scroll.State(), Visible: p.Visible(id), Top: pl.Top}), nil
}

// Views renders every section in layout order.
func (p *Page) Views() []SectionView {
	out := make([]SectionView, 0, len(p.layout.Sections))
	for _, pl := range p.layout.Sections {
		data, _ := p.View(pl.ID)
		out = append(out, SectionView{ID: pl.ID, Data: data})
	}
	return out
}

func (p *Page) Carousel() *carousel.Controller { return p.carousel }

// SelectSlide snaps the carousel directly to slide i (wrapped).
func (p *Page) SelectSlide(i int) { p.engine.Snap(i) }

// Close unregisters every observation and subscription. Reveal flags keep
// their last value. Idempotent.
func (p *Page) Close() {
	if p.unsub != nil {
		p.unsub()
		p.unsub = nil
	}
	for _, sig := range p.signals {
		sig.Close()
	}
	p.carousel.Close()
}
