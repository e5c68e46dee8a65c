package format

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AkhmedovBotir/truckbot/internal/domain"
)

func mustDec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("decimal %q: %v", s, err)
	}
	return d
}

func TestFlag(t *testing.T) {
	if Flag("USD") != "🇺🇸" {
		t.Errorf("USD flag = %q", Flag("USD"))
	}
	if Flag("XXX") != "🌐" {
		t.Errorf("unknown code flag = %q, want globe", Flag("XXX"))
	}
}

func TestOneTrendGlyphs(t *testing.T) {
	cases := []struct {
		diff string
		want string
	}{
		{"12.50", "📈"},
		{"-8.10", "📉"},
		{"0", "➡️"},
	}
	for _, c := range cases {
		r := domain.Rate{Code: "USD", Name: "US Dollar", Value: mustDec(t, "12650.42"), Diff: mustDec(t, c.diff)}
		got := One(r)
		if !strings.Contains(got, c.want) {
			t.Errorf("One with diff %s missing %q:\n%s", c.diff, c.want, got)
		}
	}
}

func TestBroadcast(t *testing.T) {
	rs := []domain.Rate{
		{Code: "USD", Name: "US Dollar", Value: mustDec(t, "12650.42"), Diff: mustDec(t, "12.50")},
		{Code: "EUR", Name: "Euro", Value: mustDec(t, "13720.00"), Diff: mustDec(t, "-8.10")},
	}
	asOf := time.Date(2025, time.June, 2, 9, 0, 0, 0, time.UTC)
	got := Broadcast(rs, asOf)

	for _, want := range []string{
		"Valyuta kurslari yangilanishi",
		"🇺🇸 *USD*",
		"🇪🇺 *EUR*",
		"02.06.2025",
		"Markaziy Banki",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("broadcast missing %q:\n%s", want, got)
		}
	}
	if n := strings.Count(got, "━"); n == 0 {
		t.Error("broadcast missing banner lines")
	}
}
