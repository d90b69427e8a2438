package validation

import (
	"net/mail"
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

var usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]{3,20}$`)

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func MaxLen(field, value string, maxLen int, v Violations) {
	if len(value) > maxLen {
		v[field] = "too_long"
	}
}

// Username accepts 3-20 characters: letters, digits, underscores.
func Username(field, value string, v Violations) {
	if !usernameRe.MatchString(value) {
		v[field] = "invalid_username"
	}
}

// Email performs syntactic validation only.
func Email(field, value string, v Violations) {
	if _, err := mail.ParseAddress(value); err != nil {
		v[field] = "invalid_email"
	}
}

// Password requires at least 8 characters with one letter and one digit.
func Password(field, value string, v Violations) {
	if len(value) < 8 || !containsLetter(value) || !containsDigit(value) {
		v[field] = "weak_password"
	}
}

// AbsoluteURL requires a well-formed URL with scheme and host.
func AbsoluteURL(field, value string, v Violations) {
	u, err := url.Parse(value)
	if err != nil || u.Scheme == "" || u.Host == "" {
		v[field] = "invalid_url"
	}
}

func containsLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
