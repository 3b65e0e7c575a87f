package menu

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// Подписи кнопок — по ним же диспетчер распознаёт нажатия.
const (
	BtnScoreboard  = "🏆 Командный зачёт"
	BtnLeaderboard = "🥇 Личный зачёт"
	BtnDaily       = "📈 По дням"
	BtnStatus      = "ℹ️ Статус"
	BtnSync        = "🔄 Синхронизация"
	BtnExport      = "📤 Экспорт"
)

// GetMenu возвращает меню: админам — с синхронизацией и экспортом.
func GetMenu(isAdmin bool) tgbotapi.ReplyKeyboardMarkup {
	if isAdmin {
		return adminMenu()
	}
	return memberMenu()
}

func memberMenu() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(BtnScoreboard),
			tgbotapi.NewKeyboardButton(BtnLeaderboard),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(BtnDaily),
			tgbotapi.NewKeyboardButton(BtnStatus),
		),
	)
}

func adminMenu() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(BtnScoreboard),
			tgbotapi.NewKeyboardButton(BtnLeaderboard),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(BtnDaily),
			tgbotapi.NewKeyboardButton(BtnStatus),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(BtnSync),
			tgbotapi.NewKeyboardButton(BtnExport),
		),
	)
}
