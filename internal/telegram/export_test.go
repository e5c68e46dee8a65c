package telegram

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/AkhmedovBotir/truckbot/internal/domain"
)

func TestUsersCSV(t *testing.T) {
	users := []domain.User{
		{
			UserID:       1,
			FullName:     "Ann, Jr.", // comma must survive quoting
			Phone:        "+998901234567",
			TrackCode:    "TRK-42",
			RegisteredAt: time.Date(2025, time.June, 2, 9, 30, 0, 0, time.UTC),
		},
		{
			UserID:   2,
			FullName: "Bob",
			Phone:    "+998907654321",
		},
	}

	data, err := usersCSV(users)
	if err != nil {
		t.Fatalf("usersCSV: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if len(records) != 3 { // header + 2 rows
		t.Fatalf("records = %d, want 3", len(records))
	}
	if records[1][0] != "Ann, Jr." || records[1][2] != "TRK-42" {
		t.Errorf("first row = %v", records[1])
	}
	if records[2][2] != "" {
		t.Errorf("missing track code should export empty, got %q", records[2][2])
	}
	if records[1][3] != "2025-06-02 09:30:00" {
		t.Errorf("date = %q", records[1][3])
	}
}
