package util

import (
	"strings"
	"testing"
)

func TestCutMore(t *testing.T) {
	teaser, cut := CutMore("intro\n<!-- more -->\nrest")
	if !cut || teaser != "intro\n" {
		t.Errorf("got (%q, %v)", teaser, cut)
	}
	teaser, cut = CutMore("no marker")
	if cut || teaser != "no marker" {
		t.Errorf("got (%q, %v)", teaser, cut)
	}
	if got := RemoveMore("a<!-- more -->b"); got != "ab" {
		t.Errorf("RemoveMore: got %q", got)
	}
}

func TestRandomString32(t *testing.T) {
	a, err := RandomString32()
	if err != nil {
		t.Fatal(err)
	}
	b, _ := RandomString32()
	if len(a) != 32 || a == b {
		t.Errorf("got %q and %q", a, b)
	}
}

func TestTrunc(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"  short  ", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"Grüße aus Köln", 5, "Grüße…"},
		{"word and more", 5, "word…"},
	}
	for _, tt := range tests {
		if got := Trunc(tt.in, tt.max); got != tt.want {
			t.Errorf("Trunc(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestTextContent(t *testing.T) {
	got := TextContent(strings.NewReader("<h1>Title</h1>\n<p>Some <em>emphasized</em>\n   text &amp; more.</p>"))
	if want := "Title Some emphasized text & more."; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
