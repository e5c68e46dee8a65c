package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/AkhmedovBotir/truckbot/internal/domain"
	"github.com/AkhmedovBotir/truckbot/internal/store"
)

func (r *Router) handleConverterMenu(chatID int64) {
	r.reply(chatID, "💱 Valyuta konverteri sozlamalari:", converterMenuKeyboard())
}

// handleUsersList prints the first 20 registered users.
func (r *Router) handleUsersList(ctx context.Context, chatID int64) {
	users, err := r.store.ListUsers(ctx)
	if err != nil {
		r.log.Error("users list failed", zap.Error(err))
		r.sendText(chatID, textSettingsFailed)
		return
	}
	if len(users) == 0 {
		r.sendText(chatID, textNoUsers)
		return
	}

	var b strings.Builder
	b.WriteString("👥 *Ro'yxatdan o'tgan foydalanuvchilar:*\n\n")
	for i, u := range users {
		if i == 20 {
			fmt.Fprintf(&b, "\n... va yana %d ta foydalanuvchi", len(users)-20)
			break
		}
		fmt.Fprintf(&b, "%d. %s - %s\n", i+1, u.FullName, u.Phone)
	}
	r.replyMarkdown(chatID, b.String())
}

// handleStatistics shows directory and schedule totals.
func (r *Router) handleStatistics(ctx context.Context, chatID int64) {
	stats, err := r.store.UserStats(ctx)
	if err != nil {
		r.log.Error("statistics failed", zap.Error(err))
		r.sendText(chatID, textSettingsFailed)
		return
	}
	cfg, err := r.store.Settings(ctx)
	if err != nil {
		r.log.Error("statistics: settings read failed", zap.Error(err))
		r.sendText(chatID, textSettingsFailed)
		return
	}

	next := "—"
	if t, ok := r.sched.NextFire(); ok {
		next = t.Format("02.01.2006 15:04")
	}
	body := fmt.Sprintf(
		"📊 *Bot statistikasi*\n\n"+
			"👥 Jami foydalanuvchilar: %d\n"+
			"🟢 Faol foydalanuvchilar (30 kun): %d\n"+
			"📢 Ulangan kanallar: %d\n"+
			"💱 Tanlangan valyutalar: %s\n"+
			"⏰ Yuborish vaqti: %s\n"+
			"🔜 Keyingi yuborish: %s",
		stats.Total, stats.Recent, len(cfg.ActiveChannels()),
		strings.Join(cfg.SelectedCurrencies, ", "), cfg.SendTime, next,
	)
	r.replyMarkdown(chatID, body)
}

// --- track code assignment flow ---

func (r *Router) handleTrackAssignStart(chatID int64) {
	r.beginTrackAssign(chatID)
	r.reply(chatID, textAskTrackPhone, cancelKeyboard())
}

func (r *Router) handleTrackAssignStep(ctx context.Context, chatID int64, text string, f *trackFlow) {
	switch f.state {
	case trackAwaitingPhone:
		u, err := r.store.UserByPhone(ctx, text)
		if errors.Is(err, store.ErrNotFound) {
			r.endTrackAssign(chatID)
			r.reply(chatID, textTrackUserGone, adminMenuKeyboard())
			return
		}
		if err != nil {
			r.log.Error("track assign: phone lookup failed", zap.Error(err))
			r.endTrackAssign(chatID)
			r.reply(chatID, textTrackFailed, adminMenuKeyboard())
			return
		}
		f.phone = text
		f.state = trackAwaitingCode
		r.reply(chatID, fmt.Sprintf(textAskTrackCode, u.FullName, u.Phone), cancelKeyboard())

	case trackAwaitingCode:
		r.endTrackAssign(chatID)
		if err := r.store.SetTrackCode(ctx, f.phone, text); err != nil {
			r.log.Error("track assign failed", zap.String("phone", f.phone), zap.Error(err))
			r.reply(chatID, textTrackFailed, adminMenuKeyboard())
			return
		}
		msg := tgbotapi.NewMessage(chatID, fmt.Sprintf(textTrackAssigned, text, f.phone))
		msg.ParseMode = tgbotapi.ModeMarkdown
		msg.ReplyMarkup = adminMenuKeyboard()
		if _, err := r.bot.Send(msg); err != nil {
			r.log.Warn("send failed", zap.Int64("chat_id", chatID), zap.Error(err))
		}
	}
}

// --- channels management ---

func (r *Router) handleChannelsMenu(ctx context.Context, chatID int64) {
	cfg, err := r.store.Settings(ctx)
	if err != nil {
		r.log.Error("channels menu: settings read failed", zap.Error(err))
		r.sendText(chatID, textSettingsFailed)
		return
	}
	title := "📢 Ulangan kanallar:"
	if len(cfg.Channels) == 0 {
		title = "📢 Hozircha kanallar ulanmagan."
	}
	r.reply(chatID, title, channelsKeyboard(cfg.Channels))
}

func (r *Router) handleAddChannelStart(chatID int64) {
	r.beginPrompt(chatID, promptChannel)
	r.reply(chatID, textAskChannel, cancelKeyboard())
}

// validChannel reports whether an admin-entered channel id can be
// stored. The list is kept comma-joined, so a comma in the id would
// split into bogus entries on the next read.
func validChannel(channel string) bool {
	return channel != "" && !strings.Contains(channel, ",")
}

func (r *Router) handleChannelInput(ctx context.Context, chatID int64, text string) {
	channel := strings.TrimSpace(text)
	if channel == "" {
		// Keep the prompt open until real input or cancel.
		r.reply(chatID, textAskChannel, cancelKeyboard())
		return
	}
	if !validChannel(channel) {
		r.reply(chatID, textBadChannel, cancelKeyboard())
		return
	}
	r.endPrompt(chatID)

	cfg, err := r.store.Settings(ctx)
	if err != nil {
		r.log.Error("channel add: settings read failed", zap.Error(err))
		r.reply(chatID, textSettingsFailed, adminMenuKeyboard())
		return
	}
	// The stored list is not deduplicated on read; the add flow is the
	// one place that checks.
	if cfg.HasChannel(channel) {
		r.reply(chatID, textChannelExists, adminMenuKeyboard())
		return
	}

	channels := append(cfg.Channels, channel)
	if err := r.store.UpdateSettings(ctx, domain.SettingsPatch{Channels: &channels}); err != nil {
		r.log.Error("channel add failed", zap.String("channel", channel), zap.Error(err))
		r.reply(chatID, textSettingsFailed, adminMenuKeyboard())
		return
	}
	r.reply(chatID, fmt.Sprintf(textChannelAdded, channel), adminMenuKeyboard())
}

func (r *Router) handleRemoveChannel(ctx context.Context, chatID int64, channel string) {
	cfg, err := r.store.Settings(ctx)
	if err != nil {
		r.log.Error("channel remove: settings read failed", zap.Error(err))
		r.sendText(chatID, textSettingsFailed)
		return
	}

	var channels []string
	for _, ch := range cfg.Channels {
		if ch != channel {
			channels = append(channels, ch)
		}
	}
	if err := r.store.UpdateSettings(ctx, domain.SettingsPatch{Channels: &channels}); err != nil {
		r.log.Error("channel remove failed", zap.String("channel", channel), zap.Error(err))
		r.sendText(chatID, textSettingsFailed)
		return
	}
	r.sendText(chatID, fmt.Sprintf(textChannelRemoved, channel))
}

// --- send time ---

func (r *Router) handleSendTimeStart(chatID int64) {
	r.beginPrompt(chatID, promptSendTime)
	r.reply(chatID, textAskSendTime, cancelKeyboard())
}

func (r *Router) handleSendTimeInput(ctx context.Context, chatID int64, text string) {
	hour, minute, err := domain.ParseHHMM(text)
	if err != nil {
		// Keep the prompt open until a valid time or cancel.
		r.reply(chatID, textBadSendTime, cancelKeyboard())
		return
	}
	r.endPrompt(chatID)

	sendTime := fmt.Sprintf("%02d:%02d", hour, minute)
	if err := r.store.UpdateSettings(ctx, domain.SettingsPatch{SendTime: &sendTime}); err != nil {
		r.log.Error("send time update failed", zap.Error(err))
		r.reply(chatID, textSettingsFailed, adminMenuKeyboard())
		return
	}
	if err := r.sched.UpdateSchedule(ctx); err != nil {
		r.log.Error("reschedule after send time change failed", zap.Error(err))
		r.reply(chatID, textSettingsFailed, adminMenuKeyboard())
		return
	}
	r.reply(chatID, fmt.Sprintf(textSendTimeSet, sendTime), adminMenuKeyboard())
}

// --- currency selection ---

func (r *Router) handleCurrencyChooser(ctx context.Context, chatID int64) {
	available := r.rates.FetchAll(ctx, time.Now())
	if len(available) == 0 {
		r.sendText(chatID, textRatesUnavail)
		return
	}
	cfg, err := r.store.Settings(ctx)
	if err != nil {
		r.log.Error("currency chooser: settings read failed", zap.Error(err))
		r.sendText(chatID, textSettingsFailed)
		return
	}
	r.reply(chatID, "💰 Kunlik postlar uchun valyutalarni tanlang:", currencyChooserKeyboard(available, cfg))
}

// handleToggleCurrency adds or removes one code from the selection.
func (r *Router) handleToggleCurrency(ctx context.Context, chatID int64, code string) {
	cfg, err := r.store.Settings(ctx)
	if err != nil {
		r.log.Error("currency toggle: settings read failed", zap.Error(err))
		r.sendText(chatID, textSettingsFailed)
		return
	}

	var selected []string
	if cfg.HasCurrency(code) {
		for _, c := range cfg.SelectedCurrencies {
			if c != code {
				selected = append(selected, c)
			}
		}
	} else {
		selected = append(cfg.SelectedCurrencies, code)
	}

	if err := r.store.UpdateSettings(ctx, domain.SettingsPatch{SelectedCurrencies: &selected}); err != nil {
		r.log.Error("currency toggle failed", zap.String("code", code), zap.Error(err))
		r.sendText(chatID, textSettingsFailed)
		return
	}
	label := strings.Join(selected, ", ")
	if label == "" {
		label = "—"
	}
	r.sendText(chatID, fmt.Sprintf(textCurrencyToggled, label))
}

// --- test send ---

// handleTestSend runs a real broadcast cycle, the same code path the
// scheduler fires. The admin only sees a generic acknowledgment; partial
// per-recipient failures stay in the logs.
func (r *Router) handleTestSend(ctx context.Context, chatID int64) {
	if err := r.engine.RunCycle(ctx); err != nil {
		r.sendText(chatID, textTestSendFailed)
		return
	}
	r.sendText(chatID, textTestSendOK)
}
