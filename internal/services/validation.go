package services

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"postlike/internal/models"
)

// Boundary patterns. Clients depend on these exact shapes.
var (
	namePattern     = regexp.MustCompile(`^[A-Za-zА-Яа-я0-9\s'` + "`" + `\.]{1,100}$`)
	emailPattern    = regexp.MustCompile(`^[A-Za-z0-9]{1,50}@[A-Za-z0-9\.]{1,50}$`)
	passwordPattern = regexp.MustCompile(`^[^\s]{1,100}$`)
)

const maxContentLength = 500

func ValidateName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w: name: string does not match expected pattern", models.ErrValidation)
	}
	return nil
}

// ValidateTitle uses the same character set as user names.
func ValidateTitle(title string) error {
	if !namePattern.MatchString(title) {
		return fmt.Errorf("%w: title: string does not match expected pattern", models.ErrValidation)
	}
	return nil
}

func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("%w: email: string does not match expected pattern", models.ErrValidation)
	}
	return nil
}

func ValidatePassword(password string) error {
	if !passwordPattern.MatchString(password) {
		return fmt.Errorf("%w: password: string does not match expected pattern", models.ErrValidation)
	}
	return nil
}

func ValidateContent(content string) error {
	n := utf8.RuneCountInString(content)
	if n == 0 {
		return fmt.Errorf("%w: content: field may not be empty", models.ErrValidation)
	}
	if n > maxContentLength {
		return fmt.Errorf("%w: content: longer than %d characters", models.ErrValidation, maxContentLength)
	}
	return nil
}
