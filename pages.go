package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/contact"
)

type navItem struct {
	Name string
	Path string
}

var navItems = []navItem{
	{Name: "About", Path: "/about"},
	{Name: "Portfolio", Path: "/portfolio"},
	{Name: "Resume", Path: "/resume"},
	{Name: "Contact", Path: "/contact"},
}

// page builds the data every page template shares, extra keys are merged in.
func page(c *gin.Context, title, active string, extra gin.H) gin.H {
	data := gin.H{
		"title":  title,
		"active": active,
		"nav":    navItems,
		"social": SocialLinks,
		"theme":  currentTheme(c),
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}

// GET / and /about
func (s *Server) handleAbout(c *gin.Context) {
	c.HTML(http.StatusOK, "about.html", page(c, "About", "/about", gin.H{
		"aboutMeContent": AboutMe,
		"skills":         Skills,
	}))
}

// GET /portfolio
func (s *Server) handlePortfolio(c *gin.Context) {
	c.HTML(http.StatusOK, "portfolio.html", page(c, "Portfolio", "/portfolio", gin.H{
		"projects": Projects,
	}))
}

// GET /resume
func (s *Server) handleResume(c *gin.Context) {
	c.HTML(http.StatusOK, "resume.html", page(c, "Resume", "/resume", gin.H{
		"jobs":      WorkExperience,
		"education": Education,
	}))
}

// GET /contact
func (s *Server) handleContact(c *gin.Context) {
	c.HTML(http.StatusOK, "contact.html", page(c, "Contact", "/contact", gin.H{
		"form":     emptyForm(),
		"autoHide": int(contact.DefaultAutoHide.Seconds()),
	}))
}

func (s *Server) handleNotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "404.html", page(c, "Page Not Found", "", gin.H{
		"path": c.Request.URL.Path,
	}))
}
