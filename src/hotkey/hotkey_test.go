package hotkey

import "testing"

func TestParseKey(t *testing.T) {
	cases := []struct {
		in   string
		want rune
		ok   bool
	}{
		{"p", 'p', true},
		{"P", 'p', true},
		{" o ", 'o', true},
		{"", 0, false},
		{"pq", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseKey(c.in)
		if got != c.want || ok != c.ok {
			t.Errorf("ParseKey(%q) = (%q, %v), want (%q, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}
