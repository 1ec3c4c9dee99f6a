package auth

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	MaxUsernameLength = 150
	MinPasswordLength = 8
)

var commonPasswords = []string{
	"12345678",
	"123456789",
	"1234567890",
	"abc12345",
	"admin123",
	"baseball",
	"football",
	"iloveyou",
	"letmein1",
	"password",
	"password1",
	"password123",
	"qwerty123",
	"qwertyui",
	"sunshine",
	"superman",
	"trustno1",
	"welcome1",
}

// ValidateUsername returns a message for every rule which the name violates.
// Allowed are letters, digits and @ . + - _
func ValidateUsername(name string) []string {
	var msgs []string
	if name == "" {
		return append(msgs, "This field is required.")
	}
	if utf8.RuneCountInString(name) > MaxUsernameLength {
		msgs = append(msgs, "Ensure this value has at most 150 characters.")
	}
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune("@.+-_", r) {
			continue
		}
		msgs = append(msgs, "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters.")
		break
	}
	return msgs
}

// ValidatePassword returns a message for every rule which the password violates.
func ValidatePassword(password, username string) []string {
	var msgs []string
	if utf8.RuneCountInString(password) < MinPasswordLength {
		msgs = append(msgs, "This password is too short. It must contain at least 8 characters.")
	}
	if isCommon(password) {
		msgs = append(msgs, "This password is too common.")
	}
	if isNumeric(password) {
		msgs = append(msgs, "This password is entirely numeric.")
	}
	if username != "" && strings.Contains(strings.ToLower(password), strings.ToLower(username)) {
		msgs = append(msgs, "The password is too similar to the username.")
	}
	return msgs
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func isCommon(password string) bool {
	password = strings.ToLower(password)
	for _, common := range commonPasswords {
		if password == common {
			return true
		}
	}
	return false
}
