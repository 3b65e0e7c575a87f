package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/telegram-challenge-bot/internal/config"
	"github.com/Spok95/telegram-challenge-bot/internal/db"
	"github.com/Spok95/telegram-challenge-bot/internal/models"
)

// HandleSetDate — ручная коррекция даты активности: /setdate <id> <YYYY-MM-DD>.
// Коррекция переживает пересинхронизации и имеет высший приоритет над датой источника.
func HandleSetDate(bot *tgbotapi.BotAPI, database *sql.DB, cfg *config.Config, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	if !requireAdmin(bot, cfg, chatID) {
		return
	}

	args := strings.Fields(msg.CommandArguments())
	if len(args) != 2 {
		sendText(bot, chatID, "Формат: /setdate <id активности> <ГГГГ-ММ-ДД>")
		return
	}
	id, date := args[0], args[1]
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		sendText(bot, chatID, fmt.Sprintf("❌ Неверная дата %q, нужен формат ГГГГ-ММ-ДД", date))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := db.SetDateOverrides(ctx, database, map[string]string{id: date}); err != nil {
		sendText(bot, chatID, fmt.Sprintf("❌ Не удалось сохранить коррекцию: %v", err))
		return
	}
	sendText(bot, chatID, fmt.Sprintf("✅ Дата активности %s теперь %s.\nПрименится при следующем пересчёте.", id, date))
}
