package domain

import (
	"reflect"
	"testing"
)

func TestParseHHMM(t *testing.T) {
	cases := []struct {
		in     string
		hour   int
		minute int
		ok     bool
	}{
		{"09:00", 9, 0, true},
		{"9:05", 9, 5, true},
		{"23:59", 23, 59, true},
		{"0:00", 0, 0, true},
		{" 14:30 ", 14, 30, true},
		{"24:00", 0, 0, false},
		{"12:60", 0, 0, false},
		{"12", 0, 0, false},
		{"12:00:00", 0, 0, false},
		{"ab:cd", 0, 0, false},
		{"", 0, 0, false},
	}
	for _, c := range cases {
		h, m, err := ParseHHMM(c.in)
		if c.ok && err != nil {
			t.Errorf("ParseHHMM(%q): unexpected error %v", c.in, err)
			continue
		}
		if !c.ok {
			if err == nil {
				t.Errorf("ParseHHMM(%q): want error, got %d:%d", c.in, h, m)
			}
			continue
		}
		if h != c.hour || m != c.minute {
			t.Errorf("ParseHHMM(%q) = %d:%d, want %d:%d", c.in, h, m, c.hour, c.minute)
		}
	}
}

func TestSplitList(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		// blanks dropped, order kept, duplicates kept
		{"@a, , @b,@a", []string{"@a", "@b", "@a"}},
		{"USD,EUR", []string{"USD", "EUR"}},
		{" USD ", []string{"USD"}},
		{"", nil},
		{",,,", nil},
	}
	for _, c := range cases {
		got := SplitList(c.in)
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("SplitList(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestSplitJoinRoundTrip(t *testing.T) {
	in := []string{"@a", "@b", "@a"}
	if got := SplitList(JoinList(in)); !reflect.DeepEqual(got, in) {
		t.Fatalf("round trip = %v, want %v", got, in)
	}
}
