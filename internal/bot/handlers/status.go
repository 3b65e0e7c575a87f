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
)

func HandleStatus(bot *tgbotapi.BotAPI, database *sql.DB, cfg *config.Config, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	acts, err := db.Activities(ctx, database)
	if err != nil {
		sendText(bot, chatID, "❌ Не удалось получить статус.")
		return
	}
	overrides, err := db.DateOverrides(ctx, database)
	if err != nil {
		sendText(bot, chatID, "❌ Не удалось получить статус.")
		return
	}
	last, ok, err := db.LastSync(ctx, database)
	if err != nil {
		sendText(bot, chatID, "❌ Не удалось получить статус.")
		return
	}

	unknown := 0
	for _, a := range acts {
		if !a.HasDate() {
			unknown++
		}
	}

	var b strings.Builder
	b.WriteString("ℹ️ Статус челленджа\n")
	fmt.Fprintf(&b, "Месяц зачёта: %s\n", cfg.ChallengeMonth)
	fmt.Fprintf(&b, "Активностей в базе: %d (без даты: %d)\n", len(acts), unknown)
	fmt.Fprintf(&b, "Коррекций дат: %d\n", len(overrides))
	if ok {
		fmt.Fprintf(&b, "Последняя синхронизация: %s", last.In(cfg.Location).Format("02.01.2006 15:04"))
	} else {
		b.WriteString("Синхронизаций ещё не было")
	}
	sendText(bot, chatID, b.String())
}
