package telegram

import (
	"context"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/AkhmedovBotir/truckbot/internal/broadcast"
)

// Sender adapts the Bot API to the broadcast delivery contract.
// Messages go out in Markdown mode.
type Sender struct {
	bot *tgbotapi.BotAPI
}

// NewSender wraps a bot as a broadcast transport.
func NewSender(bot *tgbotapi.BotAPI) *Sender {
	return &Sender{bot: bot}
}

// Send delivers text to a user or a channel. Channel ids in numeric
// form ("-100123...") are addressed as chat ids, "@handle" forms by
// username. The Bot API client has no context support; ctx is honored
// only as an early-out before the call.
func (s *Sender) Send(ctx context.Context, to broadcast.Recipient, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var msg tgbotapi.MessageConfig
	switch {
	case !to.IsChannel():
		msg = tgbotapi.NewMessage(to.UserID, text)
	default:
		if id, err := strconv.ParseInt(to.Channel, 10, 64); err == nil {
			msg = tgbotapi.NewMessage(id, text)
		} else {
			msg = tgbotapi.NewMessageToChannel(to.Channel, text)
		}
	}
	msg.ParseMode = tgbotapi.ModeMarkdown

	_, err := s.bot.Send(msg)
	return err
}
