package app

import (
	"database/sql"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/telegram-challenge-bot/internal/bot/handlers"
	"github.com/Spok95/telegram-challenge-bot/internal/bot/menu"
	"github.com/Spok95/telegram-challenge-bot/internal/config"
	"github.com/Spok95/telegram-challenge-bot/internal/syncer"
	"github.com/Spok95/telegram-challenge-bot/internal/tg"
)

// Dispatcher маршрутизирует сообщения по командам и кнопкам меню.
type Dispatcher struct {
	bot      *tgbotapi.BotAPI
	database *sql.DB
	cfg      *config.Config
	svc      *syncer.Service
	limiter  *ChatLimiter
}

func NewDispatcher(bot *tgbotapi.BotAPI, database *sql.DB, cfg *config.Config, svc *syncer.Service) *Dispatcher {
	return &Dispatcher{
		bot:      bot,
		database: database,
		cfg:      cfg,
		svc:      svc,
		limiter:  NewChatLimiter(),
	}
}

func (d *Dispatcher) HandleUpdate(update tgbotapi.Update) {
	if update.Message == nil {
		return
	}
	msg := update.Message

	unlock := d.limiter.lock(msg.Chat.ID)
	defer unlock()

	if msg.IsCommand() {
		d.handleCommand(msg)
		return
	}
	d.handleButton(msg)
}

func (d *Dispatcher) handleCommand(msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		handlers.HandleStart(d.bot, d.cfg, msg)
	case "scoreboard":
		handlers.HandleScoreboard(d.bot, d.database, d.cfg, msg)
	case "leaderboard":
		handlers.HandleLeaderboard(d.bot, d.database, d.cfg, msg)
	case "daily":
		handlers.HandleDaily(d.bot, d.database, d.cfg, msg)
	case "status":
		handlers.HandleStatus(d.bot, d.database, d.cfg, msg)
	case "sync":
		handlers.HandleSync(d.bot, d.svc, d.cfg, msg)
	case "setdate":
		handlers.HandleSetDate(d.bot, d.database, d.cfg, msg)
	case "export":
		handlers.HandleExport(d.bot, d.database, d.cfg, msg)
	default:
		_, _ = tg.Send(d.bot, tgbotapi.NewMessage(msg.Chat.ID, "⚠️ Неизвестная команда. Нажмите /start для меню."))
	}
}

func (d *Dispatcher) handleButton(msg *tgbotapi.Message) {
	switch msg.Text {
	case menu.BtnScoreboard:
		handlers.HandleScoreboard(d.bot, d.database, d.cfg, msg)
	case menu.BtnLeaderboard:
		handlers.HandleLeaderboard(d.bot, d.database, d.cfg, msg)
	case menu.BtnDaily:
		handlers.HandleDaily(d.bot, d.database, d.cfg, msg)
	case menu.BtnStatus:
		handlers.HandleStatus(d.bot, d.database, d.cfg, msg)
	case menu.BtnSync:
		handlers.HandleSync(d.bot, d.svc, d.cfg, msg)
	case menu.BtnExport:
		handlers.HandleExport(d.bot, d.database, d.cfg, msg)
	}
}
