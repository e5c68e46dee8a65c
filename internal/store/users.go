package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/AkhmedovBotir/truckbot/internal/domain"
)

// UpsertUser inserts a user or, if the user_id already exists, replaces
// name, phone and registration date. Re-registration is an overwrite,
// not a rejection.
func (s *SQLiteStore) UpsertUser(ctx context.Context, u *domain.User) error {
	if u == nil {
		return errors.New("nil user")
	}

	reg := u.RegisteredAt
	if reg.IsZero() {
		reg = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (user_id, fullname, phone, reg_date, is_active)
		VALUES (?, ?, ?, ?, 1)
		ON CONFLICT(user_id) DO UPDATE SET
			fullname = excluded.fullname,
			phone    = excluded.phone,
			reg_date = excluded.reg_date`,
		u.UserID, u.FullName, u.Phone, reg.Unix(),
	)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

// UserByID returns the user with the given id or ErrNotFound.
func (s *SQLiteStore) UserByID(ctx context.Context, userID int64) (*domain.User, error) {
	return s.oneUser(ctx, `
		SELECT user_id, fullname, phone, track_code, reg_date, is_active
		FROM users
		WHERE user_id = ?`, userID)
}

// UserByPhone returns the user with the given phone or ErrNotFound.
// Phone is a secondary key used by admin flows.
func (s *SQLiteStore) UserByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return s.oneUser(ctx, `
		SELECT user_id, fullname, phone, track_code, reg_date, is_active
		FROM users
		WHERE phone = ?`, phone)
}

func (s *SQLiteStore) oneUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read user: %w", err)
	}
	return u, nil
}

// SetTrackCode assigns a track code to the user with the given phone.
// A phone that matches no row is reported as success; callers that care
// look the user up first.
func (s *SQLiteStore) SetTrackCode(ctx context.Context, phone, code string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET track_code = ?
		WHERE phone = ?`,
		code, phone,
	)
	if err != nil {
		return fmt.Errorf("set track code: %w", err)
	}
	return nil
}

// ListUsers returns every registered user, most recently registered first.
func (s *SQLiteStore) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, fullname, phone, track_code, reg_date, is_active
		FROM users
		ORDER BY reg_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var res []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}
		res = append(res, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return res, nil
}

// UserStats returns directory totals for the admin statistics screen.
func (s *SQLiteStore) UserStats(ctx context.Context) (UserStats, error) {
	var st UserStats
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&st.Total); err != nil {
		return st, fmt.Errorf("user stats: %w", err)
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -30).Unix()
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE reg_date >= ?`, cutoff).Scan(&st.Recent)
	if err != nil {
		return st, fmt.Errorf("user stats: %w", err)
	}
	return st, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(r rowScanner) (*domain.User, error) {
	var (
		u      domain.User
		track  sql.NullString
		reg    int64
		active int
	)
	if err := r.Scan(&u.UserID, &u.FullName, &u.Phone, &track, &reg, &active); err != nil {
		return nil, err
	}
	u.TrackCode = track.String
	u.RegisteredAt = time.Unix(reg, 0).UTC()
	u.IsActive = active != 0
	return &u, nil
}
