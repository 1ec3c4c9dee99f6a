package core

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/wansing/blog/auth"
)

const MaxTitleLength = 200

// PostForm contains the fields of a post which can be submitted. There is deliberately no author field.
type PostForm struct {
	Title     string
	Content   string
	Published bool
	Errors    ValidationErrors
}

// NewPostForm reads the form fields. Unknown fields like "author" are ignored.
func NewPostForm(values url.Values) *PostForm {
	return &PostForm{
		Title:     strings.TrimSpace(values.Get("title")),
		Content:   strings.TrimSpace(values.Get("content")),
		Published: checked(values.Get("published")),
		Errors:    ValidationErrors{},
	}
}

// PostFormOf fills a form with the values of an existing post.
func PostFormOf(p *Post) *PostForm {
	return &PostForm{
		Title:     p.Title,
		Content:   p.Content,
		Published: p.Published,
		Errors:    ValidationErrors{},
	}
}

func (f *PostForm) Validate() bool {
	if f.Errors == nil {
		f.Errors = ValidationErrors{}
	}
	if f.Title == "" {
		f.Errors.Add("title", "This field is required.")
	} else if utf8.RuneCountInString(f.Title) > MaxTitleLength {
		f.Errors.Add("title", "Ensure this value has at most 200 characters.")
	}
	if f.Content == "" {
		f.Errors.Add("content", "This field is required.")
	}
	return len(f.Errors) == 0
}

type CommentForm struct {
	Content string
	Errors  ValidationErrors
}

func NewCommentForm(values url.Values) *CommentForm {
	return &CommentForm{
		Content: strings.TrimSpace(values.Get("content")),
		Errors:  ValidationErrors{},
	}
}

func (f *CommentForm) Validate() bool {
	if f.Errors == nil {
		f.Errors = ValidationErrors{}
	}
	if f.Content == "" {
		f.Errors.Add("content", "This field is required.")
	}
	return len(f.Errors) == 0
}

// RegisterForm is not trimmed, except for the username.
type RegisterForm struct {
	Username  string
	Password1 string
	Password2 string
	Errors    ValidationErrors
}

func NewRegisterForm(values url.Values) *RegisterForm {
	return &RegisterForm{
		Username:  strings.TrimSpace(values.Get("username")),
		Password1: values.Get("password1"),
		Password2: values.Get("password2"),
		Errors:    ValidationErrors{},
	}
}

// Validate does not check whether the username is taken.
func (f *RegisterForm) Validate() bool {
	if f.Errors == nil {
		f.Errors = ValidationErrors{}
	}
	for _, msg := range auth.ValidateUsername(f.Username) {
		f.Errors.Add("username", msg)
	}
	if f.Password1 == "" {
		f.Errors.Add("password1", "This field is required.")
	}
	if f.Password2 == "" {
		f.Errors.Add("password2", "This field is required.")
	}
	if f.Password1 != "" && f.Password2 != "" {
		if f.Password1 != f.Password2 {
			f.Errors.Add("password2", "The two password fields didn’t match.")
		} else {
			for _, msg := range auth.ValidatePassword(f.Password1, f.Username) {
				f.Errors.Add("password2", msg)
			}
		}
	}
	return len(f.Errors) == 0
}

func checked(value string) bool {
	switch strings.ToLower(value) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}
