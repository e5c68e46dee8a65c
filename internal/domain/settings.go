package domain

// Defaults applied when the settings row has empty fields.
const (
	DefaultCurrency = "USD"
	DefaultSendTime = "09:00"
)

// Settings is the bot's singleton configuration record.
type Settings struct {
	SelectedCurrencies []string // currency codes broadcast daily, e.g. ["USD","EUR"]
	SendTime           string   // "HH:MM", 24-hour, local time
	Channels           []string // channel ids: "@handle" or numeric-like strings
	Template           string   // legacy single-currency template, kept for compatibility
}

// SettingsPatch is a partial update: nil fields are left untouched.
// Only these four fields exist, so an update can never write an
// unrecognized key.
type SettingsPatch struct {
	SelectedCurrencies *[]string
	SendTime           *string
	Channels           *[]string
	Template           *string
}

// IsEmpty reports whether the patch would change nothing.
func (p SettingsPatch) IsEmpty() bool {
	return p.SelectedCurrencies == nil && p.SendTime == nil && p.Channels == nil && p.Template == nil
}

// ActiveChannels returns the non-blank channel ids.
func (s Settings) ActiveChannels() []string {
	var out []string
	for _, ch := range s.Channels {
		if ch != "" {
			out = append(out, ch)
		}
	}
	return out
}

// HasCurrency reports whether code is already selected.
func (s Settings) HasCurrency(code string) bool {
	for _, c := range s.SelectedCurrencies {
		if c == code {
			return true
		}
	}
	return false
}

// HasChannel reports whether id is already configured.
func (s Settings) HasChannel(id string) bool {
	for _, ch := range s.Channels {
		if ch == id {
			return true
		}
	}
	return false
}
