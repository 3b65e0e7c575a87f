package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	BotToken    string
	DatabaseURL string
	AdminIDs    []int64
	Location    *time.Location
	HTTPAddr    string
	LogLevel    string
	Env         string // dev|prod
	SentryDSN   string

	StravaClientID     string
	StravaClientSecret string
	StravaRefreshToken string
	StravaClubID       string

	ChallengeMonth string        // YYYY-MM — окно зачёта
	SyncInterval   time.Duration // период фоновой синхронизации
	TeamNames      []string      // порядок команд фиксирует порядок колонок
}

func Load() (*Config, error) {
	tz := getenv("TZ", "Europe/Moscow")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.Local
	}

	adminIDs, err := parseIDs(os.Getenv("ADMIN_IDS"))
	if err != nil {
		return nil, fmt.Errorf("ADMIN_IDS: %w", err)
	}

	syncMin, err := strconv.Atoi(getenv("SYNC_INTERVAL_MIN", "15"))
	if err != nil || syncMin <= 0 {
		return nil, fmt.Errorf("SYNC_INTERVAL_MIN: ожидали положительное число минут, получили %q", os.Getenv("SYNC_INTERVAL_MIN"))
	}

	month := getenv("CHALLENGE_MONTH", time.Now().In(loc).Format("2006-01"))
	if _, err := time.Parse("2006-01", month); err != nil {
		return nil, fmt.Errorf("CHALLENGE_MONTH: %w", err)
	}

	cfg := &Config{
		BotToken:    mustEnv("BOT_TOKEN"),
		DatabaseURL: mustEnv("DATABASE_URL"),
		AdminIDs:    adminIDs,
		Location:    loc,
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		Env:         getenv("ENV", "dev"),
		SentryDSN:   os.Getenv("SENTRY_DSN"),

		StravaClientID:     mustEnv("STRAVA_CLIENT_ID"),
		StravaClientSecret: mustEnv("STRAVA_CLIENT_SECRET"),
		StravaRefreshToken: mustEnv("STRAVA_REFRESH_TOKEN"),
		StravaClubID:       mustEnv("STRAVA_CLUB_ID"),

		ChallengeMonth: month,
		SyncInterval:   time.Duration(syncMin) * time.Minute,
		TeamNames:      parseTeams(getenv("TEAM_NAMES", "Tempo Tantrums,Points & Pints")),
	}
	return cfg, nil
}

// IsAdmin — этот chatID есть в ADMIN_IDS?
func (c *Config) IsAdmin(chatID int64) bool {
	for _, id := range c.AdminIDs {
		if id == chatID {
			return true
		}
	}
	return false
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("required env " + k + " is empty")
	}
	return v
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func parseIDs(s string) ([]int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad id %q: %w", p, err)
		}
		out = append(out, n)
	}
	return out, nil
}

func parseTeams(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
