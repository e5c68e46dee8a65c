package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/AkhmedovBotir/truckbot/internal/domain"
)

// Settings reads the singleton settings row (id=1). List fields are
// stored comma-joined; parsing trims and drops blanks but does not
// dedup. An emptied currency selection reads back empty so the daily
// broadcast becomes a no-op; only send_time falls back to a default.
func (s *SQLiteStore) Settings(ctx context.Context) (domain.Settings, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT selected_currencies, send_time, channels, template
		FROM settings
		WHERE id = 1`)

	var currencies, sendTime, channels, template string
	if err := row.Scan(&currencies, &sendTime, &channels, &template); err != nil {
		return domain.Settings{}, fmt.Errorf("read settings: %w", err)
	}

	out := domain.Settings{
		SelectedCurrencies: domain.SplitList(currencies),
		SendTime:           strings.TrimSpace(sendTime),
		Channels:           domain.SplitList(channels),
		Template:           template,
	}
	if out.SendTime == "" {
		out.SendTime = domain.DefaultSendTime
	}
	return out, nil
}

// UpdateSettings writes only the non-nil fields of the patch.
func (s *SQLiteStore) UpdateSettings(ctx context.Context, patch domain.SettingsPatch) error {
	if patch.IsEmpty() {
		return nil
	}

	var (
		sets []string
		args []any
	)
	if patch.SelectedCurrencies != nil {
		sets = append(sets, "selected_currencies = ?")
		args = append(args, domain.JoinList(*patch.SelectedCurrencies))
	}
	if patch.SendTime != nil {
		sets = append(sets, "send_time = ?")
		args = append(args, *patch.SendTime)
	}
	if patch.Channels != nil {
		sets = append(sets, "channels = ?")
		args = append(args, domain.JoinList(*patch.Channels))
	}
	if patch.Template != nil {
		sets = append(sets, "template = ?")
		args = append(args, *patch.Template)
	}

	query := "UPDATE settings SET " + strings.Join(sets, ", ") + " WHERE id = 1"
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	return nil
}
