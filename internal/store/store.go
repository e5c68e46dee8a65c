package store

import (
	"context"
	"errors"

	"github.com/AkhmedovBotir/truckbot/internal/domain"
)

// ErrNotFound is returned by lookups when no matching row exists.
var ErrNotFound = errors.New("not found")

// UserStats summarizes the recipient directory for the admin screen.
type UserStats struct {
	Total  int // all registered users
	Recent int // registered within the last 30 days
}

// SettingsStore holds the singleton bot configuration.
type SettingsStore interface {
	Settings(ctx context.Context) (domain.Settings, error)
	UpdateSettings(ctx context.Context, patch domain.SettingsPatch) error
}

// UserDirectory is the registry of broadcast recipients.
type UserDirectory interface {
	UpsertUser(ctx context.Context, u *domain.User) error
	UserByID(ctx context.Context, userID int64) (*domain.User, error)
	UserByPhone(ctx context.Context, phone string) (*domain.User, error)
	SetTrackCode(ctx context.Context, phone, code string) error
	ListUsers(ctx context.Context) ([]domain.User, error)
	UserStats(ctx context.Context) (UserStats, error)
}

// Store is the full persistence surface of the bot.
type Store interface {
	SettingsStore
	UserDirectory
	Close() error
}
