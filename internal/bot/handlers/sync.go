package handlers

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/telegram-challenge-bot/internal/config"
	"github.com/Spok95/telegram-challenge-bot/internal/syncer"
)

func HandleSync(bot *tgbotapi.BotAPI, svc *syncer.Service, cfg *config.Config, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	if !requireAdmin(bot, cfg, chatID) {
		return
	}

	sendText(bot, chatID, "⌛ Забираю активности из Strava…")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	res, err := svc.Sync(ctx)
	if err != nil {
		sendText(bot, chatID, fmt.Sprintf("❌ Синхронизация не удалась: %v", err))
		return
	}
	sendText(bot, chatID, fmt.Sprintf(
		"✅ Готово. Всего активностей: %d\nНовых: %d, вытеснено дублей: %d",
		res.Total, res.New, res.Evicted))
}
