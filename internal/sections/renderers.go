package sections

import (
	"math"
	"net/url"
	"strconv"
	"time"

	"github.com/abhinavshiv7/portfolio/internal/carousel"
)

// Delay is a CSS transition or animation delay.
type Delay time.Duration

// String formats d as CSS seconds, e.g. "0.15s".
func (d Delay) String() string {
	return strconv.FormatFloat(time.Duration(d).Seconds(), 'f', -1, 64) + "s"
}

func stagger(i int, step time.Duration) Delay {
	return Delay(time.Duration(i) * step)
}

// Reveal is the reveal state a concealed section needs to fetch its
// revealed form once it scrolls into view: the section's own fragment
// evaluated at its layout top.
type Reveal struct {
	Section string
	Visible bool
	Top     int
}

func (f Frame) reveal(id string) Reveal {
	return Reveal{Section: id, Visible: f.Visible, Top: f.Top}
}

// Hero is parallax only; it has no reveal signal.
type heroRenderer struct{}

type HeroView struct {
	Name             string
	Title            string
	Summary          string
	Nav              []NavView
	TextOffset       float64 // translateY px
	ImageOffset      float64 // translateY px
	NavOpacity       float64
	IndicatorOpacity float64
}

type NavView struct {
	NavItem
	Delay Delay
}

func (heroRenderer) ID() string { return Hero }

func (heroRenderer) Render(f Frame) any {
	y := float64(f.Scroll.ScrollY)
	nav := make([]NavView, len(navItems))
	for i, item := range navItems {
		nav[i] = NavView{NavItem: item, Delay: stagger(i, 100*time.Millisecond)}
	}
	return HeroView{
		Name:             ownerName,
		Title:            ownerTitle,
		Summary:          heroSummary,
		Nav:              nav,
		TextOffset:       f.Scroll.VerticalParallax(0.3, 0),
		ImageOffset:      -f.Scroll.VerticalParallax(0.15, 0),
		NavOpacity:       math.Max(0, 1-y/300),
		IndicatorOpacity: math.Max(0, 1-y/200),
	}
}

type aboutRenderer struct{}

type AboutView struct {
	Reveal
	Paragraphs  []string
	Highlights  []HighlightView
	LeftOffset  float64 // translateX px
	RightOffset float64 // translateX px
}

type HighlightView struct {
	Highlight
	Delay Delay
}

func (aboutRenderer) ID() string { return About }

func (aboutRenderer) Render(f Frame) any {
	v := AboutView{Reveal: f.reveal(About), Paragraphs: aboutParagraphs, LeftOffset: -50, RightOffset: 50}
	if f.Visible {
		p := math.Min(0, -50+f.relative()*0.08)
		v.LeftOffset, v.RightOffset = p, -p
	}
	for i, h := range highlights {
		v.Highlights = append(v.Highlights, HighlightView{Highlight: h, Delay: stagger(i, 150*time.Millisecond)})
	}
	return v
}

type projectsRenderer struct {
	ctrl *carousel.Controller
}

type ProjectsView struct {
	Reveal
	Slides []SlideView
	Active int
	Prev   int
	Next   int
}

type SlideView struct {
	Project
	Index int
	Style carousel.Style
}

func (projectsRenderer) ID() string { return Projects }

func (r projectsRenderer) Render(f Frame) any {
	n := len(projects)
	active := r.ctrl.Active()
	v := ProjectsView{
		Reveal: f.reveal(Projects),
		Active: active,
		Prev:   (active - 1 + n) % n,
		Next:   (active + 1) % n,
	}
	for i, p := range projects {
		v.Slides = append(v.Slides, SlideView{Project: p, Index: i, Style: r.ctrl.SlideStyle(i)})
	}
	return v
}

type skillsRenderer struct{}

type SkillsView struct {
	Reveal
	HeaderOffset float64 // translateY px
	Categories   []SkillCategoryView
}

type SkillCategoryView struct {
	Name   string
	Delay  Delay
	Skills []SkillView
}

type SkillView struct {
	Skill
	Progress int
	Delay    Delay
}

func (skillsRenderer) ID() string { return Skills }

func (skillsRenderer) Render(f Frame) any {
	v := SkillsView{Reveal: f.reveal(Skills), HeaderOffset: 30}
	if f.Visible {
		v.HeaderOffset = math.Min(0, -30+f.relative()*0.05)
	}
	for i, c := range skillCategories {
		cv := SkillCategoryView{Name: c.Name}
		if f.Visible {
			cv.Delay = stagger(i, 100*time.Millisecond)
		}
		for j, s := range c.Skills {
			sv := SkillView{Skill: s, Delay: stagger(i, 100*time.Millisecond) + stagger(j, 50*time.Millisecond)}
			if f.Visible {
				sv.Progress = s.Level
			}
			cv.Skills = append(cv.Skills, sv)
		}
		v.Categories = append(v.Categories, cv)
	}
	return v
}

type toolsRenderer struct{}

type ToolsView struct {
	Reveal
	Groups []ToolGroupView
}

type ToolGroupView struct {
	ToolGroup
	Delay Delay
}

func (toolsRenderer) ID() string { return Tools }

func (toolsRenderer) Render(f Frame) any {
	v := ToolsView{Reveal: f.reveal(Tools)}
	for i, g := range toolGroups {
		v.Groups = append(v.Groups, ToolGroupView{ToolGroup: g, Delay: stagger(i, 50*time.Millisecond)})
	}
	return v
}

type experienceRenderer struct{}

type ExperienceView struct {
	Reveal
	Groups []AchievementGroupView
}

type AchievementGroupView struct {
	AchievementGroup
	Delay Delay
}

func (experienceRenderer) ID() string { return Experience }

func (experienceRenderer) Render(f Frame) any {
	v := ExperienceView{Reveal: f.reveal(Experience)}
	for i, g := range achievementGroups {
		v.Groups = append(v.Groups, AchievementGroupView{AchievementGroup: g, Delay: stagger(i, 100*time.Millisecond)})
	}
	return v
}

type educationRenderer struct{}

type EducationView struct {
	Reveal
	Degree
}

func (educationRenderer) ID() string { return Education }

func (educationRenderer) Render(f Frame) any {
	return EducationView{Reveal: f.reveal(Education), Degree: degree}
}

type contactRenderer struct{}

type ContactView struct {
	Reveal
	Cards    []InfoCard
	CTATitle string
	CTA      string
}

type InfoCard struct {
	Icon  string
	Title string
	Text  string
	Href  string
}

func (contactRenderer) ID() string { return Contact }

func (contactRenderer) Render(f Frame) any {
	return ContactView{
		Reveal: f.reveal(Contact),
		Cards: []InfoCard{
			{Icon: "mail", Title: "Email", Text: contactEmail, Href: "mailto:" + contactEmail},
			{Icon: "phone", Title: "WhatsApp", Text: "Click to message on WhatsApp", Href: WhatsAppLink()},
			{Icon: "map-pin", Title: "Location", Text: contactLocation},
		},
		CTATitle: contactCTATitle,
		CTA:      contactCTA,
	}
}

// WhatsAppLink opens a chat with the owner with a greeting pre-filled.
func WhatsAppLink() string {
	q := url.Values{"phone": {whatsAppPhone}, "text": {whatsAppGreet}}
	return "https://web.whatsapp.com/send?" + q.Encode()
}
