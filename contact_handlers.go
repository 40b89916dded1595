package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/contact"
)

func emptyForm() contact.Snapshot {
	return contact.Snapshot{
		Errors:     contact.Errors{},
		Submission: contact.Submission{Status: contact.StatusIdle},
		CanSubmit:  true,
	}
}

// GET /contact-form returns just the form html
func (s *Server) handleContactForm(c *gin.Context) {
	c.HTML(http.StatusOK, "contact-form.html", gin.H{
		"form":     emptyForm(),
		"autoHide": int(contact.DefaultAutoHide.Seconds()),
	})
}

// POST /contact handles the HTMX form post and returns the form fragment with the outcome.
func (s *Server) handleContactSubmit(c *gin.Context) {
	var v contact.Values
	if err := c.ShouldBind(&v); err != nil {
		c.HTML(http.StatusBadRequest, "contact-form.html", gin.H{"form": emptyForm()})
		return
	}
	snap, err := s.submitContact(c, v)
	status := contactStatus(err)
	if c.GetHeader("HX-Request") == "true" {
		status = http.StatusOK // htmx swaps only 2xx responses, the fragment carries the outcome
	}
	c.HTML(status, "contact-form.html", gin.H{
		"form":     snap,
		"autoHide": int(contact.DefaultAutoHide.Seconds()),
	})
}

// POST /api/contact is the json flavor of POST /contact.
func (s *Server) handleContactAPI(c *gin.Context) {
	var v contact.Values
	if err := c.ShouldBindJSON(&v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	snap, err := s.submitContact(c, v)
	c.JSON(contactStatus(err), snap)
}

// GET /contact/validate?field=email&value=... checks a single field while the visitor types.
func (s *Server) handleContactValidate(c *gin.Context) {
	field, ok := contact.ParseField(c.Query("field"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown field"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"field": field,
		"error": contact.ValidateField(field, c.Query("value")),
	})
}

func (s *Server) submitContact(c *gin.Context, v contact.Values) (contact.Snapshot, error) {
	form := contact.New(s.cfg.Sender, contact.WithValues(v), contact.WithLogger(s.cfg.Logger))
	err := form.Submit(c.Request.Context())
	if err != nil && !errors.Is(err, contact.ErrInvalid) {
		s.cfg.Logger.Logf("[WARN] contact form from %s not delivered: %v", c.ClientIP(), err)
	}
	return form.Snapshot(), err
}

func contactStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, contact.ErrInvalid):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}
