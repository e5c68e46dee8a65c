// Package format renders rate records into the Telegram Markdown
// broadcast message.
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/AkhmedovBotir/truckbot/internal/domain"
)

const (
	headerTitle = "📊 *Valyuta kurslari yangilanishi*"
	banner      = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"
	footerBank  = "📊 *O'zbekiston Respublikasi Markaziy Banki*"
)

// flags maps currency codes to country flag glyphs. Unknown codes get
// a generic globe.
var flags = map[string]string{
	"USD": "🇺🇸",
	"EUR": "🇪🇺",
	"GBP": "🇬🇧",
	"JPY": "🇯🇵",
	"CHF": "🇨🇭",
	"RUB": "🇷🇺",
	"CNY": "🇨🇳",
	"KZT": "🇰🇿",
	"KGS": "🇰🇬",
	"TRY": "🇹🇷",
	"AED": "🇦🇪",
	"KRW": "🇰🇷",
	"INR": "🇮🇳",
	"PLN": "🇵🇱",
	"CAD": "🇨🇦",
	"AUD": "🇦🇺",
	"SGD": "🇸🇬",
	"MYR": "🇲🇾",
	"UAH": "🇺🇦",
	"TJS": "🇹🇯",
	"TMT": "🇹🇲",
	"AZN": "🇦🇿",
	"SAR": "🇸🇦",
	"ILS": "🇮🇱",
	"CZK": "🇨🇿",
	"SEK": "🇸🇪",
	"NOK": "🇳🇴",
	"DKK": "🇩🇰",
}

// Flag returns the country glyph for a currency code.
func Flag(code string) string {
	if f, ok := flags[code]; ok {
		return f
	}
	return "🌐"
}

func trendGlyph(d domain.TrendDirection) string {
	switch d {
	case domain.TrendUp:
		return "📈"
	case domain.TrendDown:
		return "📉"
	default:
		return "➡️"
	}
}

// One renders a single rate as one block of the broadcast message.
func One(r domain.Rate) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s *%s* — %s\n", Flag(r.Code), r.Code, r.Name)
	fmt.Fprintf(&b, "💰 Kurs: %s so'm %s (%s)\n", r.Value.String(), trendGlyph(domain.Trend(r.Diff)), r.Diff.String())
	return b.String()
}

// Broadcast renders the full daily message. Callers must not pass an
// empty rates slice; the broadcast engine short-circuits before this.
func Broadcast(rs []domain.Rate, asOf time.Time) string {
	var b strings.Builder
	b.WriteString(headerTitle + "\n")
	b.WriteString(banner + "\n\n")
	for _, r := range rs {
		b.WriteString(One(r))
		b.WriteString("\n")
	}
	b.WriteString(banner + "\n")
	fmt.Fprintf(&b, "📅 *Sana:* %s\n", asOf.Format("02.01.2006"))
	b.WriteString(footerBank)
	return b.String()
}
