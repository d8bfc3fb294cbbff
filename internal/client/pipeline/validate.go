package pipeline

import (
	"net/mail"
	"strings"
)

const (
	msgAllFieldsRequired = "All fields required"
	msgInvalidEmail      = "Please enter a valid email address"
	msgLoginRequired     = "Email and password are required"
	msgFillAllFields     = "Please fill in all fields."
)

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// checkEmail accepts a bare address (no display name). A non-empty domain
// restricts the part after '@', compared case-insensitively.
func checkEmail(email, domain string) *Rejection {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return invalid(msgInvalidEmail)
	}
	if domain == "" {
		return nil
	}
	_, got, _ := strings.Cut(email, "@")
	if !strings.EqualFold(got, strings.TrimPrefix(domain, "@")) {
		return invalid("Email must be a @" + strings.TrimPrefix(domain, "@") + " address")
	}
	return nil
}
