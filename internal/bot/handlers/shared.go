package handlers

import (
	"context"
	"database/sql"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/telegram-challenge-bot/internal/aggregate"
	"github.com/Spok95/telegram-challenge-bot/internal/config"
	"github.com/Spok95/telegram-challenge-bot/internal/db"
	"github.com/Spok95/telegram-challenge-bot/internal/models"
	"github.com/Spok95/telegram-challenge-bot/internal/tg"
)

func sendText(bot *tgbotapi.BotAPI, chatID int64, text string) {
	_, _ = tg.Send(bot, tgbotapi.NewMessage(chatID, text))
}

// requireAdmin отвечает отказом и возвращает false, если chatID не админ.
func requireAdmin(bot *tgbotapi.BotAPI, cfg *config.Config, chatID int64) bool {
	if cfg.IsAdmin(chatID) {
		return true
	}
	sendText(bot, chatID, "🚫 Только для администратора")
	return false
}

// loadBoard грузит из базы всё, что нужно для зачёта: активности, состав и окно месяца.
func loadBoard(ctx context.Context, database *sql.DB, cfg *config.Config) ([]models.StoredActivity, models.Roster, aggregate.Window, error) {
	w, err := aggregate.MonthWindow(cfg.ChallengeMonth)
	if err != nil {
		return nil, models.Roster{}, aggregate.Window{}, err
	}
	acts, err := db.Activities(ctx, database)
	if err != nil {
		return nil, models.Roster{}, aggregate.Window{}, err
	}
	roster, _, err := db.TeamRoster(ctx, database)
	if err != nil {
		return nil, models.Roster{}, aggregate.Window{}, err
	}
	return acts, roster, w, nil
}
