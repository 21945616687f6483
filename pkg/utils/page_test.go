package utils

import "testing"

func TestParsePage(t *testing.T) {
	cases := []struct {
		raw  string
		want int64
	}{
		{"1", 1},
		{"7", 7},
		{"0", 1},
		{"-3", 1},
		{"abc", 1},
		{"", 1},
		{"2.5", 1},
	}
	for _, tc := range cases {
		if got := ParsePage(tc.raw); got != tc.want {
			t.Errorf("ParsePage(%q) = %d, want %d", tc.raw, got, tc.want)
		}
	}
}

func TestPageOffset(t *testing.T) {
	if got := PageOffset(1, 21); got != 0 {
		t.Errorf("PageOffset(1, 21) = %d, want 0", got)
	}
	if got := PageOffset(3, 21); got != 42 {
		t.Errorf("PageOffset(3, 21) = %d, want 42", got)
	}
	if got := PageOffset(0, 21); got != 0 {
		t.Errorf("PageOffset(0, 21) = %d, want 0", got)
	}
}
