package handlers

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/telegram-challenge-bot/internal/bot/menu"
	"github.com/Spok95/telegram-challenge-bot/internal/config"
	"github.com/Spok95/telegram-challenge-bot/internal/tg"
)

func HandleStart(bot *tgbotapi.BotAPI, cfg *config.Config, msg *tgbotapi.Message) {
	out := tgbotapi.NewMessage(msg.Chat.ID, "Привет! Это бот командного челленджа 🏃\nВыбирай действие в меню ниже.")
	out.ReplyMarkup = menu.GetMenu(cfg.IsAdmin(msg.Chat.ID))
	_, _ = tg.Send(bot, out)
}
