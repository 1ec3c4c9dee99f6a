package util

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
)

// CutMoreStr separates the teaser of a post from the rest.
const CutMoreStr = "<!-- more -->"

// CutMore returns the part of s before CutMoreStr and whether s has been cut.
func CutMore(s string) (string, bool) {
	if i := strings.Index(s, CutMoreStr); i >= 0 {
		return s[:i], true
	}
	return s, false
}

// RemoveMore removes the first CutMoreStr from s.
func RemoveMore(s string) string {
	return strings.Replace(s, CutMoreStr, "", 1)
}

// RandomString32 returns a 32 bytes long string with 24 bytes (192 bits) of entropy.
func RandomString32() (string, error) {

	b := make([]byte, 24)

	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}

	result := base64.URLEncoding.EncodeToString(b)

	if len(result) != 32 {
		return "", errors.New("RandomString32 has wrong length")
	}

	return result, nil
}

// Trunc truncates the input string to a maximum number of runes and appends an ellipsis if it has been truncated.
// It is UTF8-safe, but does not care for HTML.
func Trunc(s string, maxRunes int) string {
	s = strings.TrimSpace(s)
	var runes = 0
	for i := range s {
		if runes == maxRunes {
			return strings.TrimSpace(s[:i]) + "…" // trim spaces again
		}
		runes++
	}
	return s
}
