package util

import (
	"reflect"
	"strings"
	"testing"
)

func TestPages(t *testing.T) {
	tests := []struct {
		current, num int
		want         []int
	}{
		{1, 1, []int{1}},
		{1, 3, []int{1, 2, 3}},
		{5, 20, []int{1, 3, 4, 5, 6, 7, 9, 13, 20}},
		{20, 20, []int{1, 4, 12, 16, 18, 19, 20}},
	}
	for _, tt := range tests {
		if got := Pages(tt.current, tt.num); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Pages(%d, %d) = %v, want %v", tt.current, tt.num, got, tt.want)
		}
	}
}

func TestPageLinks(t *testing.T) {
	var link = func(page int, name string) string { return "[" + name + "]" }
	var current = func(page int, name string) string { return "(" + name + ")" }

	var got []string
	for _, l := range PageLinks(2, 3, link, current) {
		got = append(got, string(l))
	}
	if want := "[&laquo;] [1] (2) [3] [&raquo;]"; strings.Join(got, " ") != want {
		t.Errorf("got %q, want %q", strings.Join(got, " "), want)
	}

	if links := PageLinks(0, 3, link, current); len(links) != 0 {
		t.Errorf("got %d links for page zero", len(links))
	}
}
