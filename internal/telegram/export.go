package telegram

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/AkhmedovBotir/truckbot/internal/domain"
)

// usersCSV renders the user directory as a CSV document.
func usersCSV(users []domain.User) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"To'liq ism", "Telefon", "Trek kod", "Ro'yxatdan o'tgan sana"}); err != nil {
		return nil, err
	}
	for _, u := range users {
		rec := []string{u.FullName, u.Phone, u.TrackCode, u.RegisteredAt.Format("2006-01-02 15:04:05")}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// handleExportUsers sends the directory as a CSV file.
func (r *Router) handleExportUsers(ctx context.Context, chatID int64) {
	users, err := r.store.ListUsers(ctx)
	if err != nil {
		r.log.Error("export: user list failed", zap.Error(err))
		r.sendText(chatID, textSettingsFailed)
		return
	}
	if len(users) == 0 {
		r.sendText(chatID, textNoUsers)
		return
	}

	data, err := usersCSV(users)
	if err != nil {
		r.log.Error("export: csv build failed", zap.Error(err))
		r.sendText(chatID, textSettingsFailed)
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  fmt.Sprintf("foydalanuvchilar_eksport_%s.csv", time.Now().Format("20060102_150405")),
		Bytes: data,
	})
	doc.Caption = fmt.Sprintf("📤 Foydalanuvchilar eksporti - %d ta foydalanuvchi", len(users))
	if _, err := r.bot.Send(doc); err != nil {
		r.log.Warn("export: send failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
