package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"

	"github.com/Spok95/telegram-challenge-bot/internal/app"
	"github.com/Spok95/telegram-challenge-bot/internal/config"
	"github.com/Spok95/telegram-challenge-bot/internal/db"
	"github.com/Spok95/telegram-challenge-bot/internal/jobs"
	"github.com/Spok95/telegram-challenge-bot/internal/logging"
	"github.com/Spok95/telegram-challenge-bot/internal/observability"
	"github.com/Spok95/telegram-challenge-bot/internal/strava"
	"github.com/Spok95/telegram-challenge-bot/internal/syncer"
	"github.com/Spok95/telegram-challenge-bot/internal/tg"
)

func main() {
	// Загрузка переменных окружения
	if err := godotenv.Load(); err != nil {
		log.Println("Не удалось загрузить .env файл, используем переменные окружения")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Конфигурация: %v", err)
	}

	lg, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("Логгер: %v", err)
	}
	defer lg.Closer()
	sugar := lg.Sugar

	flush, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, "challenge-bot")
	if err != nil {
		sugar.Warnw("Sentry не инициализирован", "err", err)
	}
	defer flush()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		sugar.Fatalw("Подключение к БД не удалось", "err", err)
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		sugar.Fatalw("Миграция не удалась", "err", err)
	}
	if _, err := db.SeedRoster(ctx, database, cfg.TeamNames); err != nil {
		sugar.Fatalw("Не удалось подготовить состав команд", "err", err)
	}

	// Strava и сервис синхронизации
	tokens := strava.NewTokenProvider(cfg.StravaClientID, cfg.StravaClientSecret, cfg.StravaRefreshToken)
	source := strava.NewClient(cfg.StravaClubID, tokens)
	svc := syncer.New(source, &db.Store{DB: database}, sugar)

	// Инициализация Telegram бота
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		sugar.Fatalw("Ошибка запуска бота", "err", err)
	}
	sugar.Infow("Бот запущен", "username", bot.Self.UserName)

	if _, err := tg.Request(bot, tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "start", Description: "Меню"},
		tgbotapi.BotCommand{Command: "scoreboard", Description: "Командный зачёт"},
		tgbotapi.BotCommand{Command: "leaderboard", Description: "Личный зачёт"},
		tgbotapi.BotCommand{Command: "daily", Description: "Очки по дням"},
		tgbotapi.BotCommand{Command: "status", Description: "Статус синхронизации"},
	)); err != nil {
		sugar.Warnw("Не удалось зарегистрировать команды", "err", err)
	}

	// Фоновая синхронизация
	runner := jobs.New(ctx, sugar)
	runner.Every(cfg.SyncInterval, "strava_sync", func(ctx context.Context) error {
		_, err := svc.Sync(ctx)
		return err
	})

	_ = app.StartHTTP(ctx, cfg, database)
	sugar.Infow("HTTP сервер поднят", "addr", cfg.HTTPAddr)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := bot.GetUpdatesChan(u)

	dispatcher := app.NewDispatcher(bot, database, cfg, svc)
	for {
		select {
		case <-ctx.Done():
			sugar.Info("Остановка по сигналу")
			bot.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			dispatcher.HandleUpdate(update)
		}
	}
}
