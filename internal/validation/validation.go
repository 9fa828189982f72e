// Package validation holds the pure input validators. Each validator takes a
// raw input struct and returns a field-to-message map; an empty map means the
// input is valid. Validators never touch the database, so callers must still
// expect uniqueness failures from the persistence layer.
package validation

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"devlink/internal/models"
)

// RegisterInput is the raw registration payload.
type RegisterInput struct {
	Username string `json:"username"`
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Gender   string `json:"gender"`
}

// LoginInput is the raw login payload. Username also accepts an email address.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ProfileInput is the raw profile create-or-update payload. Skills arrive as a
// single comma-delimited string.
type ProfileInput struct {
	Handle    string `json:"handle"`
	Status    string `json:"status"`
	Skills    string `json:"skills"`
	Company   string `json:"company"`
	Location  string `json:"location"`
	Bio       string `json:"bio"`
	Twitter   string `json:"twitter"`
	Linkedin  string `json:"linkedin"`
	Github    string `json:"github"`
	Portfolio string `json:"portfolio"`
}

// ExperienceInput is the raw experience entry payload.
type ExperienceInput struct {
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location"`
	From        *time.Time `json:"from"`
	To          *time.Time `json:"to"`
	Current     *bool      `json:"current"`
	Description string     `json:"description"`
}

// EducationInput is the raw education entry payload.
type EducationInput struct {
	School      string     `json:"school"`
	Degree      string     `json:"degree"`
	Field       string     `json:"field"`
	Location    string     `json:"location"`
	From        *time.Time `json:"from"`
	To          *time.Time `json:"to"`
	Current     *bool      `json:"current"`
	Description string     `json:"description"`
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func lengthBetween(s string, min, max int) bool {
	n := len([]rune(s))
	return n >= min && n <= max
}

// hasBlankSegment reports whether splitting s on delim yields an empty or
// whitespace-only segment. Leading and trailing delimiters count.
func hasBlankSegment(s, delim string) bool {
	for _, part := range strings.Split(s, delim) {
		if strings.TrimSpace(part) == "" {
			return true
		}
	}
	return false
}

func isValidEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

// isValidURL accepts absolute http(s) URLs and bare host forms like
// "example.com/me".
func isValidURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	if u.Scheme == "" {
		u, err = url.Parse("https://" + s)
		if err != nil {
			return false
		}
	} else if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != "" && strings.Contains(u.Host, ".")
}

// Register validates a registration payload.
func Register(in RegisterInput) models.FieldErrors {
	errs := models.FieldErrors{}

	if !lengthBetween(in.Username, 3, 30) {
		errs["username"] = "Username must be between 3 and 30 characters long"
	}
	if !lengthBetween(in.Fullname, 3, 100) {
		errs["fullname"] = "Fullname must be between 3 and 100 characters long"
	}
	if !lengthBetween(in.Email, 6, 100) {
		errs["email"] = "Email must be between 6 and 100 characters long"
	}
	if !lengthBetween(in.Password, 8, 100) {
		errs["password"] = "Password must be more than 8 characters long"
	}

	if isBlank(in.Username) {
		errs["username"] = "Username should not be empty"
	}
	if isBlank(in.Fullname) {
		errs["fullname"] = "Fullname should not be empty"
	}
	if !isValidEmail(in.Email) {
		errs["email"] = "Email is invalid"
	}
	if isBlank(in.Email) {
		errs["email"] = "Email should not be empty"
	}
	if isBlank(in.Password) {
		errs["password"] = "Password should not be empty"
	}
	if isBlank(in.Gender) {
		errs["gender"] = "Gender should not be empty"
	}

	return errs
}

// Login validates a login payload.
func Login(in LoginInput) models.FieldErrors {
	errs := models.FieldErrors{}

	if isBlank(in.Username) {
		errs["username"] = "Username should not be empty"
	}
	if isBlank(in.Password) {
		errs["password"] = "Password should not be empty"
	}

	return errs
}

// PostText validates post body text. Comment text uses CommentText, which has
// its own bounds.
func PostText(text string) models.FieldErrors {
	return bodyText(text, "Post", 20, 5000)
}

// CommentText validates comment body text.
func CommentText(text string) models.FieldErrors {
	return bodyText(text, "Comment", 6, 500)
}

func bodyText(text, tag string, min, max int) models.FieldErrors {
	errs := models.FieldErrors{}

	if !lengthBetween(text, min, max) {
		errs["text"] = fmt.Sprintf("%s text must be between %d and %d characters long", tag, min, max)
	}
	if isBlank(text) {
		errs["text"] = fmt.Sprintf("%s text should not be empty", tag)
	}

	return errs
}

// Profile validates a profile create-or-update payload.
func Profile(in ProfileInput) models.FieldErrors {
	errs := models.FieldErrors{}

	if !lengthBetween(in.Handle, 3, 30) {
		errs["handle"] = "Handle must be between 3 and 30 characters long"
	}
	if isBlank(in.Handle) {
		errs["handle"] = "Handle should not be empty"
	}

	if !lengthBetween(in.Status, 2, 100) {
		errs["status"] = "Status must be between 2 and 100 characters long"
	}
	if isBlank(in.Status) {
		errs["status"] = "Status should not be empty"
	}

	if hasBlankSegment(in.Skills, ",") {
		errs["skills"] = "One or more skill is empty. Also check for any leading or trailing commas."
	}
	if isBlank(in.Skills) {
		errs["skills"] = "Skills should not be empty"
	}

	links := map[string]string{
		"twitter":   in.Twitter,
		"linkedin":  in.Linkedin,
		"github":    in.Github,
		"portfolio": in.Portfolio,
	}
	for site, raw := range links {
		if !isBlank(raw) && !isValidURL(raw) {
			errs[site] = fmt.Sprintf("URL for '%s' is not valid", site)
		}
	}

	return errs
}

// Experience validates a work history entry payload.
func Experience(in ExperienceInput) models.FieldErrors {
	errs := models.FieldErrors{}

	if !lengthBetween(in.Title, 0, 100) {
		errs["title"] = "Job title must be less than 100 characters long"
	}
	if !lengthBetween(in.Company, 0, 100) {
		errs["company"] = "Company must be less than 100 characters long"
	}
	if in.Location != "" && !lengthBetween(in.Location, 0, 100) {
		errs["location"] = "Location must be less than 100 characters long"
	}
	if in.Description != "" && !lengthBetween(in.Description, 0, 1000) {
		errs["description"] = "Description must be less than 1000 characters long"
	}

	if isBlank(in.Title) {
		errs["title"] = "Title should not be empty"
	}
	if isBlank(in.Company) {
		errs["company"] = "Company should not be empty"
	}
	if in.From == nil || in.From.IsZero() {
		errs["from"] = "From Date should not be empty"
	}

	return errs
}

// Education validates an education entry payload.
func Education(in EducationInput) models.FieldErrors {
	errs := models.FieldErrors{}

	if !lengthBetween(in.School, 0, 100) {
		errs["school"] = "School must be less than 100 characters long"
	}
	if !lengthBetween(in.Degree, 0, 100) {
		errs["degree"] = "Degree must be less than 100 characters long"
	}
	if !lengthBetween(in.Field, 0, 100) {
		errs["field"] = "Field of study must be less than 100 characters long"
	}
	if in.Location != "" && !lengthBetween(in.Location, 0, 100) {
		errs["location"] = "Location must be less than 100 characters long"
	}
	if in.Description != "" && !lengthBetween(in.Description, 0, 1000) {
		errs["description"] = "Description must be less than 1000 characters long"
	}

	if isBlank(in.School) {
		errs["school"] = "School should not be empty"
	}
	if isBlank(in.Degree) {
		errs["degree"] = "Degree should not be empty"
	}
	if isBlank(in.Field) {
		errs["field"] = "Field should not be empty"
	}
	if in.From == nil || in.From.IsZero() {
		errs["from"] = "From Date should not be empty"
	}

	return errs
}
