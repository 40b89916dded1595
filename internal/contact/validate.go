// Package contact validates the contact form and drives its submission lifecycle.
package contact

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Field is a contact form input name.
type Field string

// enum of form fields
const (
	Name    Field = "name"
	Email   Field = "email"
	Subject Field = "subject"
	Message Field = "message"
)

// Fields lists all fields in display order.
var Fields = []Field{Name, Email, Subject, Message}

// ParseField accepts one of the four field names.
func ParseField(s string) (Field, bool) {
	for _, f := range Fields {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

// Values is the payload of a contact form.
type Values struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Subject string `json:"subject" form:"subject"`
	Message string `json:"message" form:"message"`
}

// Get returns the value of field f.
func (v Values) Get(f Field) string {
	switch f {
	case Name:
		return v.Name
	case Email:
		return v.Email
	case Subject:
		return v.Subject
	case Message:
		return v.Message
	default:
		return ""
	}
}

// Set updates the value of field f, unknown fields are ignored.
func (v *Values) Set(f Field, value string) {
	switch f {
	case Name:
		v.Name = value
	case Email:
		v.Email = value
	case Subject:
		v.Subject = value
	case Message:
		v.Message = value
	}
}

// Errors maps a field to its validation message. Valid fields are absent.
type Errors map[Field]string

// OK reports whether no field failed.
func (e Errors) OK() bool { return len(e) == 0 }

func (e Errors) clone() Errors {
	res := make(Errors, len(e))
	for k, v := range e {
		res[k] = v
	}
	return res
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type rule struct {
	label  string
	minLen int
}

var rules = map[Field]rule{
	Name:    {label: "Name", minLen: 2},
	Email:   {label: "Email"},
	Subject: {label: "Subject", minLen: 3},
	Message: {label: "Message", minLen: 10},
}

// ValidateField returns an empty string if value is valid for f, otherwise the message to show.
func ValidateField(f Field, value string) string {
	r, ok := rules[f]
	if !ok {
		return ""
	}
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return r.label + " is required"
	}
	if f == Email && !emailRe.MatchString(value) {
		return "Please enter a valid email address"
	}
	if r.minLen > 0 && utf8.RuneCountInString(trimmed) < r.minLen {
		return fmt.Sprintf("%s must be at least %d characters", r.label, r.minLen)
	}
	return ""
}

// Validate runs every field rule and returns the failures.
func Validate(v Values) Errors {
	errs := Errors{}
	for _, f := range Fields {
		if msg := ValidateField(f, v.Get(f)); msg != "" {
			errs[f] = msg
		}
	}
	return errs
}
