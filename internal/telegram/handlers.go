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
	"github.com/AkhmedovBotir/truckbot/internal/format"
	"github.com/AkhmedovBotir/truckbot/internal/store"
)

// handleStart greets a registered user or begins the registration flow.
func (r *Router) handleStart(ctx context.Context, chatID, userID int64) {
	r.cancelFlows(chatID)

	u, err := r.store.UserByID(ctx, userID)
	switch {
	case err == nil:
		if r.isAdmin(userID) {
			r.reply(chatID, textWelcomeAdmin, adminMenuKeyboard())
			return
		}
		r.reply(chatID, fmt.Sprintf(textWelcomeBack, u.FullName), mainMenuKeyboard())
	case errors.Is(err, store.ErrNotFound):
		r.beginRegistration(chatID)
		r.reply(chatID, textAskName, tgbotapi.NewRemoveKeyboard(false))
	default:
		r.log.Error("start: user lookup failed", zap.Int64("user_id", userID), zap.Error(err))
		r.sendText(chatID, textRegFailed)
	}
}

// handleRegistrationStep advances the registration state machine.
func (r *Router) handleRegistrationStep(ctx context.Context, chatID int64, msg *tgbotapi.Message, f *regFlow) {
	switch f.state {
	case regAwaitingName:
		name := strings.TrimSpace(msg.Text)
		if name == "" {
			r.sendText(chatID, textAskName)
			return
		}
		f.fullName = name
		f.state = regAwaitingPhone
		r.reply(chatID, textAskPhone, phoneRequestKeyboard())

	case regAwaitingPhone:
		var phone string
		if msg.Contact != nil {
			phone = msg.Contact.PhoneNumber
		} else {
			phone = strings.TrimSpace(msg.Text)
		}
		if phone == "" {
			r.reply(chatID, textAskPhone, phoneRequestKeyboard())
			return
		}

		u := &domain.User{
			UserID:       msg.From.ID,
			FullName:     f.fullName,
			Phone:        phone,
			RegisteredAt: time.Now().UTC(),
		}
		r.endRegistration(chatID)
		if err := r.store.UpsertUser(ctx, u); err != nil {
			r.log.Error("registration: upsert failed", zap.Int64("user_id", u.UserID), zap.Error(err))
			r.reply(chatID, textRegFailed, tgbotapi.NewRemoveKeyboard(false))
			return
		}
		if r.isAdmin(msg.From.ID) {
			r.reply(chatID, textRegDoneAdmin, adminMenuKeyboard())
			return
		}
		r.reply(chatID, textRegDone, mainMenuKeyboard())
	}
}

// handleCheckTrack shows the caller's own track code.
func (r *Router) handleCheckTrack(ctx context.Context, chatID, userID int64) {
	u, err := r.store.UserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		r.sendText(chatID, textNotRegistered)
		return
	}
	if err != nil {
		r.log.Error("track check: user lookup failed", zap.Int64("user_id", userID), zap.Error(err))
		r.sendText(chatID, textNoTrackCode)
		return
	}

	// Track codes are keyed by phone; look up the record the admin
	// actually updated.
	byPhone, err := r.store.UserByPhone(ctx, u.Phone)
	if err != nil || byPhone.TrackCode == "" {
		r.sendText(chatID, textNoTrackCode)
		return
	}
	r.replyMarkdown(chatID, fmt.Sprintf(textMyTrackCode, byPhone.TrackCode))
}

// handleProfile shows the caller's own record.
func (r *Router) handleProfile(ctx context.Context, chatID, userID int64) {
	u, err := r.store.UserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		r.sendText(chatID, textNotRegistered)
		return
	}
	if err != nil {
		r.log.Error("profile: user lookup failed", zap.Int64("user_id", userID), zap.Error(err))
		return
	}

	track := u.TrackCode
	if track == "" {
		track = "Tayinlanmagan"
	}
	body := fmt.Sprintf(
		"👤 *Mening profilim*\n\n📝 To'liq ism: %s\n📱 Telefon: %s\n📦 Trek kod: %s\n📅 Ro'yxatdan o'tgan sana: %s",
		u.FullName, u.Phone, track, u.RegisteredAt.Format("02.01.2006"),
	)
	r.replyMarkdown(chatID, body)
}

// handleRatesMenu offers the list of currencies published today.
func (r *Router) handleRatesMenu(ctx context.Context, chatID int64) {
	available := r.rates.FetchAll(ctx, time.Now())
	if len(available) == 0 {
		r.sendText(chatID, textRatesUnavail)
		return
	}
	r.reply(chatID, textChooseCurrency, rateListKeyboard(available))
}

// handleShowRate renders a single currency block on demand.
func (r *Router) handleShowRate(ctx context.Context, chatID int64, code string) {
	rt, ok := r.rates.FetchByCode(ctx, code, time.Now())
	if !ok {
		r.sendText(chatID, textRatesUnavail)
		return
	}
	r.replyMarkdown(chatID, format.One(rt))
}
