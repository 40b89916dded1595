package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/go-pkgz/lgr"

	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/theme"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

type serverConfig struct {
	Address string
	Sender  contact.Sender
	Prefs   *theme.SQLiteStore // nil keeps preferences in cookies
	Logger  log.L
}

// Server is the portfolio web server.
type Server struct {
	cfg    serverConfig
	engine *gin.Engine
}

func newServer(cfg serverConfig) (*Server, error) {
	if cfg.Sender == nil {
		return nil, errors.New("contact sender is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}

	tmpl, err := template.New("").Funcs(template.FuncMap{
		"fieldError": func(errs contact.Errors, f string) string { return errs[contact.Field(f)] },
	}).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("static files: %w", err)
	}

	s := &Server{cfg: cfg, engine: gin.Default()}
	s.engine.SetHTMLTemplate(tmpl)
	s.engine.StaticFS("/static", http.FS(static))
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	r := s.engine
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	site := r.Group("/")
	site.Use(s.visitorMiddleware(), s.themeMiddleware())

	// Pages
	site.GET("/", s.handleAbout)
	site.GET("/about", s.handleAbout)
	site.GET("/portfolio", s.handlePortfolio)
	site.GET("/resume", s.handleResume)
	site.GET("/contact", s.handleContact)

	// Theme toggle
	site.POST("/theme/toggle", s.handleThemeToggle)
	site.POST("/theme/:mode", s.handleThemeSet)
	site.GET("/api/theme", s.handleThemeState)

	// HTMX contact form endpoints, fragments only
	site.GET("/contact-form", s.handleContactForm)
	site.POST("/contact", s.handleContactSubmit)
	site.GET("/contact/validate", s.handleContactValidate)
	site.POST("/api/contact", s.handleContactAPI)

	r.NoRoute(s.visitorMiddleware(), s.themeMiddleware(), s.handleNotFound)
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			s.cfg.Logger.Logf("[WARN] shutdown: %v", err)
		}
	}()

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.cfg.Logger.Logf("[INFO] server stopped")
	return nil
}
