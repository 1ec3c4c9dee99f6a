package core

import (
	"errors"
	"html/template"
	"math"
	"strconv"
	"strings"

	"github.com/wansing/blog/util"
)

// PostsPerPage is the page size of the post list.
const PostsPerPage = 5

// A Pagination describes one page of a list.
type Pagination struct {
	Number   int // starting with 1
	NumPages int // at least 1, even if the list is empty
	Count    int // total number of items
	PerPage  int
}

// Paginate clamps the requested page to the valid range instead of failing.
func Paginate(count, perPage, requested int) Pagination {
	if perPage < 1 {
		perPage = 1
	}
	var numPages = (count + perPage - 1) / perPage
	if numPages < 1 {
		numPages = 1
	}
	if requested < 1 {
		requested = 1
	}
	if requested > numPages {
		requested = numPages
	}
	return Pagination{
		Number:   requested,
		NumPages: numPages,
		Count:    count,
		PerPage:  perPage,
	}
}

// ParsePage returns 1 if s is not a number. Numbers which overflow int are saturated, so Paginate clamps them like other out-of-range pages.
func ParsePage(s string) int {
	s = strings.TrimSpace(s)
	page, err := strconv.Atoi(s)
	switch {
	case errors.Is(err, strconv.ErrRange):
		if strings.HasPrefix(s, "-") {
			return 1
		}
		return math.MaxInt
	case err != nil:
		return 1
	}
	return page
}

func (p Pagination) Offset() int {
	return (p.Number - 1) * p.PerPage
}

func (p Pagination) HasPrevious() bool {
	return p.Number > 1
}

func (p Pagination) HasNext() bool {
	return p.Number < p.NumPages
}

// Links returns nothing if there is only one page.
func (p Pagination) Links(href func(page int) string) []template.HTML {
	if p.NumPages < 2 {
		return nil
	}
	return util.PageLinks(
		p.Number,
		p.NumPages,
		func(page int, name string) string {
			return `<a class="page-link" href="` + template.HTMLEscapeString(href(page)) + `">` + name + `</a>`
		},
		func(page int, name string) string {
			return `<span class="page-link current">` + name + `</span>`
		},
	)
}
