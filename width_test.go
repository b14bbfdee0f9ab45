package tui

import "testing"

func TestWidth(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want int
	}{
		{"empty", "", 0},
		{"ascii", "hello", 5},
		{"wide", "你好", 4},
		{"mixed", "a你b", 4},
		{"emoji", "👍", 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := width(c.in); got != c.want {
				t.Errorf("width(%q) = %d, want %d", c.in, got, c.want)
			}
		})
	}
}

func TestClustersRoundTrip(t *testing.T) {
	s := "a你b"
	var rebuilt string
	for _, c := range clusters(s) {
		rebuilt += c.text
	}
	if rebuilt != s {
		t.Errorf("clusters did not round-trip: got %q, want %q", rebuilt, s)
	}
}
