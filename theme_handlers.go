package main

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Zachkp/portfolio/internal/theme"
)

const (
	visitorCookie = "visitor_id"
	cookieMaxAge  = 3600 * 24 * 365

	ctxVisitor = "visitor"
	ctxTheme   = "theme"
)

// pageTheme is the preference of the current request and the styling root it renders.
type pageTheme struct {
	ctrl *theme.Controller
	doc  *theme.Document
}

// RootClass is the class attribute of <html>.
func (p *pageTheme) RootClass() string { return p.doc.Root.String() }

// BodyClass is the class attribute of <body>.
func (p *pageTheme) BodyClass() string { return p.doc.Body.String() }

// Mode is the active mode.
func (p *pageTheme) Mode() string { return p.ctrl.Current().String() }

// IsDark reports whether dark mode is active.
func (p *pageTheme) IsDark() bool { return p.ctrl.State().IsDark }

// ToggleLabel names the mode the toggle switches to.
func (p *pageTheme) ToggleLabel() string { return p.ctrl.ToggleLabel() }

// visitorMiddleware assigns a random visitor id cookie, used to scope server-side preferences.
func (s *Server) visitorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(visitorCookie)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(visitorCookie, id, cookieMaxAge, "/", "", false, true)
		}
		c.Set(ctxVisitor, id)
		c.Next()
	}
}

// themeMiddleware resolves the visitor's preference once per request.
func (s *Server) themeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc := &theme.Document{Root: theme.NewClassList("scroll-smooth"), Body: theme.NewClassList("antialiased")}
		ctrl := theme.New(s.themeStore(c), doc, theme.WithLogger(s.cfg.Logger))
		ctrl.Initialize()
		c.Set(ctxTheme, &pageTheme{ctrl: ctrl, doc: doc})
		c.Next()
	}
}

func (s *Server) themeStore(c *gin.Context) theme.Store {
	if s.cfg.Prefs != nil {
		return s.cfg.Prefs.Scope(c.GetString(ctxVisitor))
	}
	return &cookieStore{c: c}
}

func currentTheme(c *gin.Context) *pageTheme {
	return c.MustGet(ctxTheme).(*pageTheme)
}

// POST /theme/toggle
func (s *Server) handleThemeToggle(c *gin.Context) {
	pt := currentTheme(c)
	pt.ctrl.Toggle()
	s.respondTheme(c, pt)
}

// POST /theme/:mode
func (s *Server) handleThemeSet(c *gin.Context) {
	pt := currentTheme(c)
	if err := pt.ctrl.Set(theme.Mode(c.Param("mode"))); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.respondTheme(c, pt)
}

// GET /api/theme
func (s *Server) handleThemeState(c *gin.Context) {
	c.JSON(http.StatusOK, themeResponse(currentTheme(c)))
}

func themeResponse(pt *pageTheme) gin.H {
	st := pt.ctrl.State()
	return gin.H{
		"mode":         st.Mode(),
		"is_dark":      st.IsDark,
		"initialized":  st.Initialized,
		"label":        pt.ctrl.CurrentLabel(),
		"toggle_label": pt.ctrl.ToggleLabel(),
	}
}

// respondTheme answers JSON clients directly and sends browsers back where they came from.
func (s *Server) respondTheme(c *gin.Context, pt *pageTheme) {
	if c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON {
		c.JSON(http.StatusOK, themeResponse(pt))
		return
	}
	if c.GetHeader("HX-Request") == "true" {
		c.Header("HX-Refresh", "true")
		c.Status(http.StatusNoContent)
		return
	}
	c.Redirect(http.StatusSeeOther, localRedirect(c.Request.Referer()))
}

// localRedirect keeps only the path and query of ref, so the redirect never leaves the site.
func localRedirect(ref string) string {
	u, err := url.Parse(ref)
	if err != nil || !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(u.Path, "//") || strings.HasPrefix(u.Path, "/\\") {
		return "/"
	}
	if u.RawQuery != "" {
		return u.Path + "?" + u.RawQuery
	}
	return u.Path
}

// cookieStore keeps the preference in a cookie of the current request.
type cookieStore struct {
	c       *gin.Context
	written map[string]string
}

func (s *cookieStore) Get(key string) (string, error) {
	if v, ok := s.written[key]; ok {
		return v, nil
	}
	v, err := s.c.Cookie(key)
	if errors.Is(err, http.ErrNoCookie) {
		return "", theme.ErrNotFound
	}
	return v, err
}

func (s *cookieStore) Set(key, value string) error {
	if s.written == nil {
		s.written = map[string]string{}
	}
	s.written[key] = value
	s.c.SetSameSite(http.SameSiteLaxMode)
	// readable by the page script so the first paint matches the preference
	s.c.SetCookie(key, value, cookieMaxAge, "/", "", false, false)
	return nil
}
