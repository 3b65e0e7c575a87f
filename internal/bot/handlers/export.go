package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/telegram-challenge-bot/internal/aggregate"
	"github.com/Spok95/telegram-challenge-bot/internal/config"
	"github.com/Spok95/telegram-challenge-bot/internal/db"
	"github.com/Spok95/telegram-challenge-bot/internal/export"
	"github.com/Spok95/telegram-challenge-bot/internal/tg"
)

func HandleExport(bot *tgbotapi.BotAPI, database *sql.DB, cfg *config.Config, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	if !requireAdmin(bot, cfg, chatID) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	acts, roster, w, err := loadBoard(ctx, database, cfg)
	if err != nil {
		sendText(bot, chatID, fmt.Sprintf("❌ Не удалось собрать данные: %v", err))
		return
	}
	seed, err := db.DailySeed(ctx, database)
	if err != nil {
		sendText(bot, chatID, fmt.Sprintf("❌ Не удалось собрать данные: %v", err))
		return
	}

	rows, totals := aggregate.Scoreboard(acts, roster, w)
	report := export.Report{
		PeriodTitle: w.String(),
		Teams:       roster.Teams,
		Rows:        rows,
		Totals:      totals,
		Individuals: aggregate.Individuals(acts, roster, w),
		Activities:  aggregate.Processed(acts, roster, w),
		Daily:       aggregate.DailySeries(acts, roster, w, seed),
	}

	wb, err := export.NewChallengeWorkbook(report)
	if err != nil {
		sendText(bot, chatID, fmt.Sprintf("❌ Не удалось построить отчёт: %v", err))
		return
	}
	path, err := wb.SaveTemp(w.String())
	if err != nil {
		sendText(bot, chatID, fmt.Sprintf("❌ Не удалось сохранить отчёт: %v", err))
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(path))
	doc.Caption = "📤 Выгрузка челленджа — " + w.String()
	if _, err := tg.Send(bot, doc); err != nil {
		sendText(bot, chatID, "❌ Не удалось отправить файл.")
	}
}
