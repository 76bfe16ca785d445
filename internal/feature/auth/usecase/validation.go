package usecase

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// minPasswordLength はパスワードの最低文字数を定義します。
const minPasswordLength = 6

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

// emailPattern is the basic shape every stored email must match.
var emailPattern = regexp.MustCompile(`^\w+([\.-]?\w+)*@\w+([\.-]?\w+)*(\.\w{2,3})+$`)

// validateRegistration checks the registration input in field order and
// returns the first problem found.
func validateRegistration(name, email, password string) error {
	if strings.TrimSpace(name) == "" {
		return newValidationError("name", "Please add a name")
	}
	if email == "" {
		return newValidationError("email", "Please add an email")
	}
	if !emailPattern.MatchString(email) {
		return newValidationError("email", "Please add a valid email")
	}
	if password == "" {
		return newValidationError("password", "Please add a password")
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return newValidationError("password", fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
	}
	if len(password) > maxPasswordBytes {
		return newValidationError("password", fmt.Sprintf("Password must be at most %d bytes", maxPasswordBytes))
	}
	return nil
}

// validateLogin only requires both fields to be present.
// Shape checks are skipped so a malformed email fails like an unknown one.
func validateLogin(email, password string) error {
	if email == "" || password == "" {
		return newValidationError("credentials", "Please provide email and password")
	}
	return nil
}
