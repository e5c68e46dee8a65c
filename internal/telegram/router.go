package telegram

import (
	"context"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/AkhmedovBotir/truckbot/internal/broadcast"
	"github.com/AkhmedovBotir/truckbot/internal/config"
	"github.com/AkhmedovBotir/truckbot/internal/rates"
	"github.com/AkhmedovBotir/truckbot/internal/scheduler"
	"github.com/AkhmedovBotir/truckbot/internal/store"
)

// Router wires Telegram updates to handlers and holds the per-chat
// conversation state machines.
type Router struct {
	bot    *tgbotapi.BotAPI
	log    *zap.Logger
	cfg    config.Config
	store  store.Store
	rates  *rates.Client
	engine *broadcast.Engine
	sched  *scheduler.Scheduler

	mu     sync.Mutex
	reg    map[int64]*regFlow
	track  map[int64]*trackFlow
	prompt map[int64]promptState
}

// NewRouter creates a Telegram router.
func NewRouter(bot *tgbotapi.BotAPI, log *zap.Logger, cfg config.Config, st store.Store, rc *rates.Client, engine *broadcast.Engine, sched *scheduler.Scheduler) *Router {
	return &Router{
		bot:    bot,
		log:    log,
		cfg:    cfg,
		store:  st,
		rates:  rc,
		engine: engine,
		sched:  sched,
		reg:    make(map[int64]*regFlow),
		track:  make(map[int64]*trackFlow),
		prompt: make(map[int64]promptState),
	}
}

func (r *Router) isAdmin(userID int64) bool { return r.cfg.IsAdmin(userID) }

// HandleUpdate routes a single update to the appropriate handler.
func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.Message != nil {
		r.handleMessage(ctx, upd.Message)
		return
	}
	if upd.CallbackQuery != nil {
		r.handleCallback(ctx, upd.CallbackQuery)
		return
	}
}

func (r *Router) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)

	if strings.HasPrefix(text, "/start") {
		r.handleStart(ctx, chatID, msg.From.ID)
		return
	}

	if text == btnCancel {
		r.cancelFlows(chatID)
		r.replyWithMenu(chatID, textCancelled, msg.From.ID)
		return
	}

	// Pending conversation flows take priority over menu buttons.
	if f := r.regFlowFor(chatID); f != nil {
		r.handleRegistrationStep(ctx, chatID, msg, f)
		return
	}
	if f := r.trackFlowFor(chatID); f != nil {
		r.handleTrackAssignStep(ctx, chatID, text, f)
		return
	}
	if p, ok := r.promptFor(chatID); ok {
		switch p {
		case promptChannel:
			r.handleChannelInput(ctx, chatID, text)
		case promptSendTime:
			r.handleSendTimeInput(ctx, chatID, text)
		}
		return
	}

	switch text {
	case btnCheckTrack:
		r.handleCheckTrack(ctx, chatID, msg.From.ID)
	case btnRates:
		r.handleRatesMenu(ctx, chatID)
	case btnProfile:
		r.handleProfile(ctx, chatID, msg.From.ID)

	case btnConverter:
		r.adminOnly(msg.From.ID, chatID, func() { r.handleConverterMenu(chatID) })
	case btnUsers:
		r.adminOnly(msg.From.ID, chatID, func() { r.handleUsersList(ctx, chatID) })
	case btnTrack:
		r.adminOnly(msg.From.ID, chatID, func() { r.handleTrackAssignStart(chatID) })
	case btnChannels:
		r.adminOnly(msg.From.ID, chatID, func() { r.handleChannelsMenu(ctx, chatID) })
	case btnStats:
		r.adminOnly(msg.From.ID, chatID, func() { r.handleStatistics(ctx, chatID) })
	case btnExport:
		r.adminOnly(msg.From.ID, chatID, func() { r.handleExportUsers(ctx, chatID) })

	default:
		// Unknown text outside any flow: show the menu again.
		r.replyWithMenu(chatID, textUnknown, msg.From.ID)
	}
}

func (r *Router) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		return
	}
	chatID := cb.Message.Chat.ID
	data := cb.Data
	_, _ = r.bot.Request(tgbotapi.NewCallback(cb.ID, ""))

	switch {
	case strings.HasPrefix(data, cbShowRate):
		r.handleShowRate(ctx, chatID, strings.TrimPrefix(data, cbShowRate))
		return
	}

	if !r.isAdmin(cb.From.ID) {
		return
	}
	switch {
	case data == cbChooseCurrencies:
		r.handleCurrencyChooser(ctx, chatID)
	case strings.HasPrefix(data, cbToggleCurrency):
		r.handleToggleCurrency(ctx, chatID, strings.TrimPrefix(data, cbToggleCurrency))
	case data == cbSetSendTime:
		r.handleSendTimeStart(chatID)
	case data == cbTestSend:
		r.handleTestSend(ctx, chatID)
	case data == cbAddChannel:
		r.handleAddChannelStart(chatID)
	case strings.HasPrefix(data, cbRemoveChannel):
		r.handleRemoveChannel(ctx, chatID, strings.TrimPrefix(data, cbRemoveChannel))
	case data == cbBackAdmin:
		r.reply(chatID, textAdminMenu, adminMenuKeyboard())
	}
}

func (r *Router) adminOnly(userID, chatID int64, fn func()) {
	if !r.isAdmin(userID) {
		r.sendText(chatID, textNotAllowed)
		return
	}
	fn()
}

// --- send helpers ---

func (r *Router) sendText(chatID int64, text string) {
	if _, err := r.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		r.log.Warn("send failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (r *Router) reply(chatID int64, text string, kb any) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	if _, err := r.bot.Send(msg); err != nil {
		r.log.Warn("send failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (r *Router) replyMarkdown(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := r.bot.Send(msg); err != nil {
		r.log.Warn("send failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// replyWithMenu shows the role-appropriate main menu.
func (r *Router) replyWithMenu(chatID int64, text string, userID int64) {
	if r.isAdmin(userID) {
		r.reply(chatID, text, adminMenuKeyboard())
		return
	}
	r.reply(chatID, text, mainMenuKeyboard())
}
