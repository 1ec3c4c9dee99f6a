package render

import (
	"strings"
	"testing"
)

func TestMarkdown(t *testing.T) {
	got := string(Markdown("# Hello\n\nSome *text*.\n<!-- more -->\nRest."))
	for _, want := range []string{"<h1>Hello</h1>", "<em>text</em>", "Rest."} {
		if !strings.Contains(got, want) {
			t.Errorf("%q does not contain %q", got, want)
		}
	}
	if strings.Contains(got, "more --") {
		t.Errorf("separator has not been removed: %q", got)
	}
}

func TestMarkdownEscapesHTML(t *testing.T) {
	got := string(Markdown("<script>alert(1)</script>"))
	if strings.Contains(got, "<script>") {
		t.Errorf("raw html passed through: %q", got)
	}
}

func TestTeaser(t *testing.T) {
	got, cut := Teaser("Intro.\n\n<!-- more -->\n\nRest.")
	if !cut || !strings.Contains(string(got), "Intro.") || strings.Contains(string(got), "Rest.") {
		t.Errorf("got (%q, %v)", got, cut)
	}
	_, cut = Teaser("No separator.")
	if cut {
		t.Error("cut without separator")
	}
}

func TestExcerpt(t *testing.T) {
	if got := Excerpt("## Heading\n\nA **bold** word.", 100); got != "Heading A bold word." {
		t.Errorf("got %q", got)
	}
}

func TestLongLine(t *testing.T) {
	var content = "First paragraph.\n\n" + strings.Repeat("a", 70000) + "\n\nLast paragraph."

	got := string(Markdown(content))
	if !strings.Contains(got, "Last paragraph.") || !strings.Contains(got, strings.Repeat("a", 70000)) {
		t.Errorf("content after the long line is missing, rendered %d bytes", len(got))
	}

	teaser, cut := Teaser(content)
	if cut || !strings.Contains(string(teaser), "Last paragraph.") {
		t.Errorf("teaser: rendered %d bytes, cut %v", len(teaser), cut)
	}
}

func TestUnindent(t *testing.T) {
	got := string(Markdown("\t\tIndented text.\r\n\r\n\tSecond."))
	if strings.Contains(got, "<code>") || !strings.Contains(got, "Indented text.") || !strings.Contains(got, "Second.") {
		t.Errorf("got %q", got)
	}
}
