package domain

import "time"

// User is a registered broadcast recipient.
type User struct {
	UserID       int64  // Telegram user id, immutable identity key
	FullName     string
	Phone        string // secondary lookup key for admin flows
	TrackCode    string // empty until an admin assigns one
	RegisteredAt time.Time
	IsActive     bool
}
