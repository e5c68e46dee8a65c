package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/AkhmedovBotir/truckbot/internal/domain"
	"github.com/AkhmedovBotir/truckbot/internal/format"
)

// Menu buttons (reply keyboard).
const (
	btnCheckTrack = "🔍 Trek kodini tekshirish"
	btnRates      = "💱 Valyuta kursi"
	btnProfile    = "👤 Mening profilim"

	btnConverter = "💱 Valyuta konverteri"
	btnUsers     = "👥 Foydalanuvchilar"
	btnTrack     = "📦 Trek kod"
	btnChannels  = "📢 Kanallar"
	btnStats     = "📊 Statistika"
	btnExport    = "📤 Eksport"

	btnCancel     = "❌ Bekor qilish"
	btnSharePhone = "📱 Telefon raqamini ulashish"
)

// Callback data prefixes.
const (
	cbShowRate         = "show_rate_"
	cbChooseCurrencies = "choose_currencies"
	cbToggleCurrency   = "toggle_currency_"
	cbSetSendTime      = "set_send_time"
	cbTestSend         = "test_send"
	cbAddChannel       = "add_channel"
	cbRemoveChannel    = "remove_channel_"
	cbBackAdmin        = "back_admin"
)

// UI texts.
const (
	textAskName      = "👋 Xush kelibsiz! Iltimos, to'liq ismingizni kiriting:"
	textAskPhone     = "📱 Iltimos, telefon raqamingizni ulashing:"
	textRegDone      = "✅ Ro'yxatdan o'tish yakunlandi! Botga xush kelibsiz!"
	textRegDoneAdmin = "✅ Ro'yxatdan o'tish yakunlandi! Xush kelibsiz, Admin!"
	textRegFailed    = "❌ Ro'yxatdan o'tishda xatolik. Iltimos, qayta urinib ko'ring."
	textWelcomeBack  = "👋 Xush kelibsiz, %s!"
	textWelcomeAdmin = "👋 Xush kelibsiz, Admin!"

	textAdminMenu  = "⚙️ Admin menyusi:"
	textNotAllowed = "❌ Ruxsat berilmagan."
	textCancelled  = "❌ Operatsiya bekor qilindi."
	textUnknown    = "Menyudan birini tanlang:"

	textAskTrackPhone  = "📦 Trek kod tayinlash uchun telefon raqamini kiriting:"
	textTrackUserGone  = "❌ Bu telefon raqami bilan foydalanuvchi topilmadi."
	textAskTrackCode   = "📦 %s (%s) uchun trek kodini kiriting:"
	textTrackAssigned  = "✅ Trek kod `%s` %s raqamiga tayinlandi"
	textTrackFailed    = "❌ Trek kod tayinlashda xatolik."
	textMyTrackCode    = "📦 Sizning trek kodingiz: `%s`"
	textNoTrackCode    = "❌ Sizning raqamingiz uchun trek kod topilmadi."
	textNotRegistered  = "❌ Iltimos, avval /start orqali ro'yxatdan o'ting"
	textRatesUnavail   = "❌ Valyuta ma'lumotlarini olishda xatolik. Iltimos, keyinroq urinib ko'ring."
	textChooseCurrency = "💱 Valyutani tanlang:"

	textAskChannel      = "📢 Kanal manzilini kiriting (@kanal yoki raqamli ID):"
	textChannelExists   = "⚠️ Bu kanal allaqachon qo'shilgan."
	textBadChannel      = "❌ Kanal manzilida vergul bo'lishi mumkin emas. Qaytadan kiriting:"
	textChannelAdded    = "✅ Kanal qo'shildi: %s"
	textChannelRemoved  = "✅ Kanal o'chirildi: %s"
	textAskSendTime     = "⏰ Yuborish vaqtini kiriting (HH:MM, 24 soat):"
	textBadSendTime     = "❌ Noto'g'ri vaqt formati. Masalan: 09:00"
	textSendTimeSet     = "✅ Yuborish vaqti %s ga o'rnatildi"
	textSettingsFailed  = "❌ Sozlamalarni saqlashda xatolik."
	textTestSendOK      = "🧪 Test yuborish bajarildi."
	textTestSendFailed  = "❌ Test yuborish amalga oshmadi."
	textCurrencyToggled = "✅ Tanlangan valyutalar: %s"
	textNoUsers         = "👥 Foydalanuvchilar topilmadi."
)

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnCheckTrack),
			tgbotapi.NewKeyboardButton(btnRates),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnProfile),
		),
	)
}

func adminMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnConverter),
			tgbotapi.NewKeyboardButton(btnUsers),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnTrack),
			tgbotapi.NewKeyboardButton(btnChannels),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnStats),
			tgbotapi.NewKeyboardButton(btnExport),
		),
	)
}

func phoneRequestKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButtonContact(btnSharePhone),
		),
	)
	kb.OneTimeKeyboard = true
	return kb
}

func cancelKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnCancel),
		),
	)
}

func converterMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💰 Valyuta tanlash", cbChooseCurrencies),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏰ Yuborish vaqtini belgilash", cbSetSendTime),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🧪 Test yuborish", cbTestSend),
		),
	)
}

// currencyChooserKeyboard lists available currencies two per row, with
// a check mark on already selected codes.
func currencyChooserKeyboard(available []domain.Rate, cfg domain.Settings) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, rt := range available {
		label := format.Flag(rt.Code) + " " + rt.Code
		if cfg.HasCurrency(rt.Code) {
			label = "✅ " + label
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, cbToggleCurrency+rt.Code))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔙 Orqaga", cbBackAdmin),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// rateListKeyboard lets a user pick one currency to view.
func rateListKeyboard(available []domain.Rate) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, rt := range available {
		label := format.Flag(rt.Code) + " " + rt.Code
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, cbShowRate+rt.Code))
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// channelsKeyboard lists configured channels with remove buttons.
func channelsKeyboard(channels []string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, ch := range channels {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 "+ch, cbRemoveChannel+ch),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("➕ Kanal qo'shish", cbAddChannel),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
