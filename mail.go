package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/smtp"
	"strings"

	log "github.com/go-pkgz/lgr"

	"github.com/Zachkp/portfolio/internal/contact"
)

// MailerConfig holds smtp settings, usually from SMTP_* environment variables.
type MailerConfig struct {
	Host string // e.g. "smtp.gmail.com"
	Port string // e.g. "587"
	User string
	Pass string // app password
	To   string
}

// Mailer delivers contact messages by email. It implements contact.Sender.
type Mailer struct {
	cfg      MailerConfig
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewMailer makes a Mailer sending through net/smtp.
func NewMailer(cfg MailerConfig) *Mailer {
	return &Mailer{cfg: cfg, sendMail: smtp.SendMail}
}

// Send emails the form to the configured recipient with Reply-To set to the visitor.
func (m *Mailer) Send(ctx context.Context, v contact.Values) (string, error) {
	if m.cfg.User == "" || m.cfg.Pass == "" {
		return "", errors.New("SMTP credentials not configured")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	err := m.sendMail(m.cfg.Host+":"+m.cfg.Port, auth, m.cfg.User, []string{m.cfg.To}, m.compose(v))
	if err != nil {
		return "", fmt.Errorf("send contact email: %w", err)
	}

	log.Printf("[INFO] contact email sent from %s (%s)", v.Name, v.Email)
	return "", nil
}

func (m *Mailer) compose(v contact.Values) []byte {
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Subject: %s
Message:
%s

---
Sent from your portfolio contact form
`, v.Name, v.Email, v.Subject, v.Message)

	return []byte("To: " + m.cfg.To + "\r\n" +
		"Subject: Portfolio Contact: " + headerSafe(v.Subject) + "\r\n" +
		"From: " + m.cfg.User + "\r\n" +
		"Reply-To: " + headerSafe(v.Email) + "\r\n" +
		"\r\n" +
		body + "\r\n")
}

// headerSafe strips line breaks so visitor input can't inject headers.
func headerSafe(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}

// unconfiguredSender fails every submission when neither a relay nor smtp is set up.
type unconfiguredSender struct{}

func (unconfiguredSender) Send(context.Context, contact.Values) (string, error) {
	return "", &contact.RelayError{
		StatusCode: http.StatusServiceUnavailable,
		Message:    "The contact form is not available right now. Please reach out directly via email.",
	}
}
