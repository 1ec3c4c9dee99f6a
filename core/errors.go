package core

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrNotFound         = errors.New("not found") // missing or unpublished
	ErrPermissionDenied = errors.New("permission denied")
	ErrUnauthenticated  = errors.New("not logged in")
	ErrUsernameTaken    = errors.New("a user with that username already exists")
)

// ValidationErrors maps form field names to messages. It implements error.
type ValidationErrors map[string][]string

func (v ValidationErrors) Add(field, msg string) {
	v[field] = append(v[field], msg)
}

// Get is used in templates.
func (v ValidationErrors) Get(field string) []string {
	return v[field]
}

func (v ValidationErrors) Error() string {
	var fields = make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var parts = make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+strings.Join(v[field], " "))
	}
	return strings.Join(parts, "; ")
}
