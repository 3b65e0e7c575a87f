package db

import (
	"context"
	"database/sql"

	"github.com/Spok95/telegram-challenge-bot/internal/models"
)

// SeedRoster — записывает состав команд, если его ещё нет в хранилище.
// Дальше состав правится напрямую в коллекции team_roster.
func SeedRoster(ctx context.Context, database *sql.DB, teams []string) (models.Roster, error) {
	roster, ok, err := TeamRoster(ctx, database)
	if err != nil {
		return models.Roster{}, err
	}
	if ok {
		return roster, nil
	}

	roster = models.Roster{
		Teams:   teams,
		Members: map[string]string{},
	}
	if err := SaveTeamRoster(ctx, database, roster); err != nil {
		return models.Roster{}, err
	}
	return roster, nil
}
