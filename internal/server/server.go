// Package server is the site's HTTP surface: the rendered page, HTMX
// section and form fragments, the JSON contact endpoint and the admin
// area.
package server

import (
	"context"
	"crypto/rand"
	"embed"
	"encoding/hex"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/abhinavshiv7/portfolio/internal/carousel"
	"github.com/abhinavshiv7/portfolio/internal/contact"
	"github.com/abhinavshiv7/portfolio/internal/sections"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	maxBodyBytes = 64 << 10

	msgSaved         = "Contact saved and confirmation email sent"
	msgInvalid       = "Invalid form data"
	msgInternalError = "Failed to process your request. Please try again later."
)

// ContactService runs the server-side contact pipeline.
type ContactService interface {
	Submit(ctx context.Context, sub contact.Submission) (*contact.Record, error)
}

// ContactReader lists stored contacts for the admin area.
type ContactReader interface {
	ListContacts(ctx context.Context, limit int) ([]contact.Record, error)
	CountContacts(ctx context.Context) (int64, error)
}

type Options struct {
	Contacts ContactService
	// Reader backs the admin area. Admin routes are not mounted when it is
	// nil or AdminPassword is empty.
	Reader         ContactReader
	Log            zerolog.Logger
	Layout         sections.Layout
	ContactTimeout time.Duration
	AdminUsername  string
	AdminPassword  string
	// SecureCookies marks the admin session cookie Secure. Set it whenever
	// the site is served over HTTPS.
	SecureCookies bool
}

type Server struct {
	opts   Options
	log    zerolog.Logger
	engine *gin.Engine
	salt   string
	admin  *adminAuth
}

// New builds the gin engine and mounts every route. A zero Layout selects
// sections.DefaultLayout.
func New(opts Options) (*Server, error) {
	if opts.Contacts == nil {
		return nil, errors.New("server: contact service is required")
	}
	if len(opts.Layout.Sections) == 0 {
		opts.Layout = sections.DefaultLayout()
	}
	if opts.ContactTimeout <= 0 {
		opts.ContactTimeout = contact.DefaultTimeout
	}

	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("static assets: %w", err)
	}
	salt, err := randomHex(16)
	if err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}

	s := &Server{
		opts: opts,
		log:  opts.Log.With().Str("component", "server").Logger(),
		salt: salt,
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(recovery(s.log), requestID(), accessLog(s.log, salt), securityHeaders())
	r.StaticFS("/static", http.FS(static))

	r.GET("/", s.index)
	r.GET("/sections/:id", s.section)
	r.GET("/contact-form", s.contactForm)
	r.POST("/contact", s.postContactForm)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group(contact.Path, cors())
	api.OPTIONS("", func(c *gin.Context) {})
	api.POST("", s.submitContact)

	if opts.Reader != nil && opts.AdminPassword != "" {
		auth, err := newAdminAuth(opts.AdminUsername, opts.AdminPassword)
		if err != nil {
			return nil, err
		}
		s.admin = auth
		s.mountAdmin(r)
	}

	s.engine = r
	return s, nil
}

func (s *Server) Handler() http.Handler { return s.engine }

type indexData struct {
	Title    string
	Owner    string
	Year     int
	Scroll   struct{ ScrollY, ViewportHeight int }
	Sections []sections.SectionView
}

func (s *Server) index(c *gin.Context) {
	page, ok := s.page(c)
	if !ok {
		return
	}
	defer page.Close()

	name, title := sections.Owner()
	data := indexData{
		Title:    name + " | " + title,
		Owner:    name,
		Year:     time.Now().Year(),
		Sections: page.Views(),
	}
	st := page.Scroll()
	data.Scroll.ScrollY = st.ScrollY
	data.Scroll.ViewportHeight = st.ViewportHeight
	c.HTML(http.StatusOK, "index.html", data)
}

// section renders one section fragment. The projects section also takes a
// carousel action applied to the slide given in ?slide=.
func (s *Server) section(c *gin.Context) {
	page, ok := s.page(c)
	if !ok {
		return
	}
	defer page.Close()

	id := c.Param("id")
	if id == sections.Projects {
		if err := applyCarouselAction(c, page); err != nil {
			c.String(http.StatusBadRequest, err.Error())
			return
		}
	}

	data, err := page.View(id)
	if err != nil {
		if errors.Is(err, sections.ErrUnknownSection) {
			c.String(http.StatusNotFound, "section not found")
			return
		}
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, msgInternalError)
		return
	}
	c.HTML(http.StatusOK, "section", sections.SectionView{ID: id, Data: data})
}

// page mounts a Page at the scroll state described by the query string.
func (s *Server) page(c *gin.Context) (*sections.Page, bool) {
	scrollY, err1 := queryInt(c, "scrollY", 0)
	viewport, err2 := queryInt(c, "viewport", 0)
	slide, err3 := queryInt(c, "slide", 0)
	if err := errors.Join(err1, err2, err3); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return nil, false
	}

	page, err := sections.NewPage(s.opts.Layout, sections.Options{
		ScrollY:        scrollY,
		ViewportHeight: viewport,
		Slide:          slide,
		Replay:         c.Query("replay") == "1",
	})
	if err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, msgInternalError)
		return nil, false
	}
	return page, true
}

func applyCarouselAction(c *gin.Context, page *sections.Page) error {
	ctrl := page.Carousel()
	switch action := c.Query("action"); action {
	case "":
	case "next":
		ctrl.Next()
	case "prev":
		ctrl.Previous()
	case "select":
		if c.Query("to") == "" {
			return errors.New("select requires ?to=")
		}
		to, err := queryInt(c, "to", 0)
		if err != nil {
			return err
		}
		page.SelectSlide(to)
	case "wheel":
		dx, err1 := queryFloat(c, "dx")
		dy, err2 := queryFloat(c, "dy")
		if err := errors.Join(err1, err2); err != nil {
			return err
		}
		ctrl.Wheel(carousel.WheelEvent{DeltaX: dx, DeltaY: dy})
	default:
		return fmt.Errorf("unknown carousel action %q", action)
	}
	return nil
}

type contactFormData struct {
	Draft  contact.Submission
	Errors map[string]string
	Notice *contact.Notice
}

func (s *Server) contactForm(c *gin.Context) {
	c.HTML(http.StatusOK, "contact-form", contactFormData{})
}

// postContactForm is the HTMX path. It always answers 200 with the form
// fragment so the swap happens; the notice carries the outcome.
func (s *Server) postContactForm(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)

	var draft contact.Submission
	if err := c.ShouldBind(&draft); err != nil {
		s.log.Info().Err(err).Msg("unreadable contact form")
		c.HTML(http.StatusOK, "contact-form", contactFormData{
			Notice: &contact.Notice{Title: "Error sending message", Description: msgInvalid, Destructive: true},
		})
		return
	}

	form := contact.NewForm(contact.SubmitterFunc(func(ctx context.Context, sub contact.Submission) error {
		_, err := s.opts.Contacts.Submit(ctx, sub)
		return err
	}))
	form.SetDraft(draft)

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.opts.ContactTimeout)
	defer cancel()
	out, err := form.Submit(ctx)
	if err != nil {
		out = contact.Outcome{Status: contact.OutcomeFailed, Err: err}
		out.Notice = contact.Notice{Title: "Error sending message", Description: "Please try again later.", Destructive: true}
	}
	if out.Err != nil {
		_ = c.Error(out.Err)
	}

	data := contactFormData{Draft: form.Draft(), Notice: &out.Notice}
	if out.Invalid != nil {
		data.Errors = make(map[string]string, len(out.Invalid.Fields))
		for _, f := range out.Invalid.Fields {
			if _, seen := data.Errors[f.Field]; !seen {
				data.Errors[f.Field] = f.Message
			}
		}
	}
	c.HTML(http.StatusOK, "contact-form", data)
}

// submitContact is the JSON endpoint. Failure details stay in the log.
func (s *Server) submitContact(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)

	var sub contact.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		s.log.Info().Err(err).Str("request_id", c.GetString(requestIDKey)).Msg("malformed contact payload")
		c.JSON(http.StatusBadRequest, contact.Response{Error: msgInvalid})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.opts.ContactTimeout)
	defer cancel()

	if _, err := s.opts.Contacts.Submit(ctx, sub); err != nil {
		if errors.Is(err, contact.ErrInvalidSubmission) {
			c.JSON(http.StatusBadRequest, contact.Response{Error: msgInvalid})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, contact.Response{Error: msgInternalError})
		return
	}
	c.JSON(http.StatusOK, contact.Response{Success: true, Message: msgSaved})
}

func queryInt(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return v, nil
}

func queryFloat(c *gin.Context, key string) (float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return v, nil
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
