package telegram

import "testing"

func TestValidChannel(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"@news", true},
		{"-1001234567890", true},
		{"", false},
		{"@a,@b", false},
		{"@news,", false},
		{",-100", false},
	}
	for _, tc := range cases {
		if got := validChannel(tc.in); got != tc.ok {
			t.Errorf("validChannel(%q) = %v, want %v", tc.in, got, tc.ok)
		}
	}
}
