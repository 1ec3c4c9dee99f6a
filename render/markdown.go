// Package render turns the markdown content of posts into HTML.
package render

import (
	"html/template"
	"strings"

	"github.com/wansing/blog/util"
	"gitlab.com/golang-commonmark/markdown"
)

// Raw HTML is not passed through, so authors can't inject scripts.
var markdownParser = markdown.New(markdown.HTML(false), markdown.Linkify(true), markdown.Typographer(true), markdown.MaxNesting(10))

// Markdown renders the whole content. The teaser separator is removed.
func Markdown(content string) template.HTML {
	return template.HTML(renderMarkdown(util.RemoveMore(content)))
}

// Teaser renders the content up to the teaser separator. It returns whether the content has been cut.
func Teaser(content string) (template.HTML, bool) {
	teaser, cut := util.CutMore(content)
	return template.HTML(renderMarkdown(teaser)), cut
}

// Excerpt returns the beginning of the rendered content as plain text.
func Excerpt(content string, maxRunes int) string {
	var rendered = renderMarkdown(util.RemoveMore(content))
	return util.Trunc(util.TextContent(strings.NewReader(rendered)), maxRunes)
}

func renderMarkdown(content string) string {

	// remove all tabs from the beginning of each line, lines may be arbitrarily long

	var unindentedContent strings.Builder
	unindentedContent.Grow(len(content) + 1)

	for _, line := range strings.Split(content, "\n") {
		unindentedContent.WriteString(strings.TrimLeft(strings.TrimSuffix(line, "\r"), "\t"))
		unindentedContent.WriteString("\n")
	}

	return markdownParser.RenderToString([]byte(unindentedContent.String()))
}
