package util

import (
	"html/template"
	"sort"
	"strconv"
)

// Pages returns a sorted selection of page numbers from 1 to numPages:
// the first, the last, the current one and neighbours in exponentially growing distance.
func Pages(currentPage int, numPages int) []int {

	var seen = map[int]struct{}{}
	var add = func(page int) {
		if page >= 1 && page <= numPages {
			seen[page] = struct{}{}
		}
	}

	add(1)
	add(currentPage)
	add(numPages)

	for delta := 1; currentPage-delta > 1 || currentPage+delta < numPages; delta *= 2 {
		add(currentPage - delta)
		add(currentPage + delta)
	}

	var pages = make([]int, 0, len(seen))
	for page := range seen {
		pages = append(pages, page)
	}
	sort.Ints(pages)
	return pages
}

// PageLinks calls Pages and wraps links around its result. It adds links to the previous and the next page.
func PageLinks(currentPage int, numPages int, htm func(page int, name string) string, currentPageHtm func(page int, name string) string) []template.HTML {

	var links = []template.HTML{}

	if currentPage < 1 || numPages < 1 {
		return links
	}

	if currentPage > 1 {
		links = append(links, template.HTML(htm(currentPage-1, `&laquo;`)))
	}

	for _, page := range Pages(currentPage, numPages) {
		if page == currentPage {
			links = append(links, template.HTML(currentPageHtm(page, strconv.Itoa(page))))
		} else {
			links = append(links, template.HTML(htm(page, strconv.Itoa(page))))
		}
	}

	if currentPage < numPages {
		links = append(links, template.HTML(htm(currentPage+1, `&raquo;`)))
	}

	return links
}
