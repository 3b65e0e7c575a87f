package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/telegram-challenge-bot/internal/aggregate"
	"github.com/Spok95/telegram-challenge-bot/internal/config"
	"github.com/Spok95/telegram-challenge-bot/internal/db"
	"github.com/Spok95/telegram-challenge-bot/internal/scoring"
)

func HandleScoreboard(bot *tgbotapi.BotAPI, database *sql.DB, cfg *config.Config, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	acts, roster, w, err := loadBoard(ctx, database, cfg)
	if err != nil {
		sendText(bot, chatID, "❌ Не удалось загрузить данные зачёта.")
		return
	}

	rows, totals := aggregate.Scoreboard(acts, roster, w)
	if len(rows) == 0 {
		sendText(bot, chatID, "Пока пусто — ни одной зачётной активности 🤷")
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🏆 Командный зачёт — %s\n", w.String())
	for _, row := range rows {
		fmt.Fprintf(&b, "\n%s:\n", row.Category)
		for _, c := range row.Cells {
			fmt.Fprintf(&b, "  %s — %s → %d б.\n", c.Team, rawLabel(row.Category, c.Raw), c.Points)
		}
	}
	b.WriteString("\nИтого:\n")
	for _, t := range totals {
		fmt.Fprintf(&b, "  %s — %d б.\n", t.Team, t.Points)
	}
	sendText(bot, chatID, b.String())
}

func HandleLeaderboard(bot *tgbotapi.BotAPI, database *sql.DB, cfg *config.Config, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	acts, roster, w, err := loadBoard(ctx, database, cfg)
	if err != nil {
		sendText(bot, chatID, "❌ Не удалось загрузить данные зачёта.")
		return
	}

	stats := aggregate.Individuals(acts, roster, w)
	if len(stats) == 0 {
		sendText(bot, chatID, "Пока пусто — ни одной зачётной активности 🤷")
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🥇 Личный зачёт — %s\n\n", w.String())
	for i, s := range stats {
		fmt.Fprintf(&b, "%d. %s (%s) — %d б., %s км, %s м набора\n",
			i+1, s.Name, s.Team, s.Points,
			strconv.FormatFloat(s.DistanceKm, 'f', -1, 64),
			strconv.FormatFloat(s.ElevationGain, 'f', -1, 64))
	}
	sendText(bot, chatID, b.String())
}

func HandleDaily(bot *tgbotapi.BotAPI, database *sql.DB, cfg *config.Config, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	acts, roster, w, err := loadBoard(ctx, database, cfg)
	if err != nil {
		sendText(bot, chatID, "❌ Не удалось загрузить данные зачёта.")
		return
	}
	seed, err := db.DailySeed(ctx, database)
	if err != nil {
		sendText(bot, chatID, "❌ Не удалось загрузить данные зачёта.")
		return
	}

	series := aggregate.DailySeries(acts, roster, w, seed)
	if len(series) == 0 {
		sendText(bot, chatID, "Пока пусто — ни одного дня с активностями 🤷")
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📈 По дням — %s\n\n", w.String())
	for _, p := range series {
		b.WriteString(p.Date)
		for _, tp := range p.Teams {
			fmt.Fprintf(&b, " | %s +%d (=%d)", tp.Team, tp.Delta, tp.Cumulative)
		}
		b.WriteString("\n")
	}
	sendText(bot, chatID, b.String())
}

// rawLabel подписывает сырые единицы по категории: км, штуки или метры набора.
func rawLabel(category string, raw float64) string {
	v := strconv.FormatFloat(raw, 'f', -1, 64)
	switch category {
	case "Elevation":
		return v + " м"
	case scoring.CategoryWorkout.String():
		return v + " шт."
	default:
		return v + " км"
	}
}
