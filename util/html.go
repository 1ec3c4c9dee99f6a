package util

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// TextContent returns the text of an HTML fragment, with whitespace collapsed.
func TextContent(input io.Reader) string {

	tokenizer := html.NewTokenizerFragment(input, "body")

	var words []string

	for {
		tt := tokenizer.Next()
		if tt == html.ErrorToken {
			break // assuming tokenizer.Err() == io.EOF
		}
		if tt == html.TextToken {
			words = append(words, strings.Fields(string(tokenizer.Text()))...)
		}
	}

	return strings.Join(words, " ")
}
