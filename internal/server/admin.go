package server

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhinavshiv7/portfolio/internal/contact"
)

const (
	adminCookie    = "admin_token"
	adminCookieAge = 3600 * 24

	// statsWindow bounds how many records the dashboard scans for the
	// today / this-week counters.
	statsWindow  = 500
	recentLimit  = 50
	exportLimit  = 10000
	adminTimeout = 10 * time.Second
)

// AdminStats is the dashboard summary. Counters for today and this week
// only consider the newest statsWindow records.
type AdminStats struct {
	TotalContacts    int64            `json:"total_contacts"`
	ContactsToday    int64            `json:"contacts_today"`
	ContactsThisWeek int64            `json:"contacts_this_week"`
	RecentContacts   []contact.Record `json:"recent_contacts"`
}

type adminAuth struct {
	username string
	password string
	token    string
}

func newAdminAuth(username, password string) (*adminAuth, error) {
	token, err := randomHex(32)
	if err != nil {
		return nil, fmt.Errorf("generate admin token: %w", err)
	}
	if username == "" {
		username = "admin"
	}
	return &adminAuth{username: username, password: password, token: token}, nil
}

func (a *adminAuth) credentialsMatch(username, password string) bool {
	u := subtle.ConstantTimeCompare([]byte(username), []byte(a.username))
	p := subtle.ConstantTimeCompare([]byte(password), []byte(a.password))
	return u&p == 1
}

// middleware sends anyone without the session cookie to the login page.
func (a *adminAuth) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (s *Server) mountAdmin(r *gin.Engine) {
	s.log.Info().Msg("admin access available at /admin/login")

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login", gin.H{})
	})
	r.POST("/admin/login", s.adminLogin)
	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", s.opts.SecureCookies, true)
		s.log.Info().Str("client", hashIP(c.ClientIP(), s.salt)).Msg("admin logout")
		c.Redirect(http.StatusFound, "/admin/login")
	})

	g := r.Group("/admin", s.admin.middleware())
	g.GET("/dashboard", func(c *gin.Context) {
		stats, err := s.adminStats(c.Request.Context(), time.Now())
		if err != nil {
			_ = c.Error(err)
			c.HTML(http.StatusInternalServerError, "admin-error", gin.H{"Error": "Failed to load statistics"})
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard", gin.H{"Stats": stats})
	})
	g.GET("/api/stats", func(c *gin.Context) {
		stats, err := s.adminStats(c.Request.Context(), time.Now())
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load statistics"})
			return
		}
		c.JSON(http.StatusOK, stats)
	})
	g.GET("/export/contacts", s.exportContacts)
}

func (s *Server) adminLogin(c *gin.Context) {
	client := hashIP(c.ClientIP(), s.salt)
	if !s.admin.credentialsMatch(c.PostForm("username"), c.PostForm("password")) {
		s.log.Warn().Str("client", client).Msg("failed admin login attempt")
		c.HTML(http.StatusUnauthorized, "admin-login", gin.H{"Error": "Invalid credentials"})
		return
	}
	c.SetCookie(adminCookie, s.admin.token, adminCookieAge, "/admin", "", s.opts.SecureCookies, true)
	s.log.Info().Str("client", client).Msg("admin login successful")
	c.Redirect(http.StatusFound, "/admin/dashboard")
}

func (s *Server) adminStats(ctx context.Context, now time.Time) (*AdminStats, error) {
	ctx, cancel := context.WithTimeout(ctx, adminTimeout)
	defer cancel()

	total, err := s.opts.Reader.CountContacts(ctx)
	if err != nil {
		return nil, fmt.Errorf("count contacts: %w", err)
	}
	records, err := s.opts.Reader.ListContacts(ctx, statsWindow)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}

	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	weekAgo := now.Add(-7 * 24 * time.Hour)

	stats := &AdminStats{TotalContacts: total}
	for _, r := range records {
		at := r.CreatedAt.UTC()
		if !at.Before(today) {
			stats.ContactsToday++
		}
		if !at.Before(weekAgo) {
			stats.ContactsThisWeek++
		}
	}
	if len(records) > recentLimit {
		records = records[:recentLimit]
	}
	stats.RecentContacts = records
	return stats, nil
}

func (s *Server) exportContacts(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), adminTimeout)
	defer cancel()

	records, err := s.opts.Reader.ListContacts(ctx, exportLimit)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export contacts"})
		return
	}
	if records == nil {
		records = []contact.Record{}
	}

	c.Header("Content-Disposition", "attachment; filename=contacts.json")
	s.log.Info().
		Int("count", len(records)).
		Str("client", hashIP(c.ClientIP(), s.salt)).
		Msg("contacts exported")
	c.JSON(http.StatusOK, records)
}
