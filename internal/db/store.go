package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Spok95/telegram-challenge-bot/internal/ctxutil"
	"github.com/Spok95/telegram-challenge-bot/internal/models"
)

// Хранилище — непрозрачный key-value: целые коллекции под фиксированными
// ключами. Никаких построчных запросов — вся фильтрация выполняется
// в памяти при агрегации.
const (
	keyActivities    = "activities"
	keyDateOverrides = "date_overrides"
	keyTeamRoster    = "team_roster"
	keyDailySeed     = "daily_seed"
	keyLastSync      = "last_sync"
)

// getCollection — чтение коллекции. false — ключа ещё нет.
func getCollection(ctx context.Context, database *sql.DB, key string, dst any) (bool, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	var raw []byte
	err := database.QueryRowContext(ctx, `SELECT value FROM kv_collections WHERE key = $1`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%sчтение %q: %w", opPrefix(ctx), key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("%sразбор %q: %w", opPrefix(ctx), key, err)
	}
	return true, nil
}

// setCollection — атомарная замена коллекции целиком: один UPSERT, читатели
// видят либо старую, либо новую версию, частично записанной не бывает.
func setCollection(ctx context.Context, database *sql.DB, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("сериализация %q: %w", key, err)
	}

	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	_, err = database.ExecContext(ctx, `
INSERT INTO kv_collections (key, value, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = now()`, key, raw)
	if err != nil {
		return fmt.Errorf("%sзапись %q: %w", opPrefix(ctx), key, err)
	}
	return nil
}

// opPrefix — имя операции из контекста для сообщений об ошибках.
func opPrefix(ctx context.Context) string {
	if op, ok := ctxutil.Op(ctx); ok {
		return op + ": "
	}
	return ""
}

func Activities(ctx context.Context, database *sql.DB) ([]models.StoredActivity, error) {
	var acts []models.StoredActivity
	if _, err := getCollection(ctx, database, keyActivities, &acts); err != nil {
		return nil, err
	}
	return acts, nil
}

func SaveActivities(ctx context.Context, database *sql.DB, acts []models.StoredActivity) error {
	return setCollection(ctx, database, keyActivities, acts)
}

func DateOverrides(ctx context.Context, database *sql.DB) (map[string]string, error) {
	overrides := map[string]string{}
	if _, err := getCollection(ctx, database, keyDateOverrides, &overrides); err != nil {
		return nil, err
	}
	return overrides, nil
}

// SetDateOverrides — добавляет/обновляет ручные даты. Пишется целиком:
// читаем текущую карту, подмешиваем, кладём обратно (last-value-wins).
// Свежая запись видна уже следующему проходу синхронизации.
func SetDateOverrides(ctx context.Context, database *sql.DB, updates map[string]string) error {
	if len(updates) == 0 {
		return nil
	}
	overrides, err := DateOverrides(ctx, database)
	if err != nil {
		return err
	}
	for id, date := range updates {
		if _, err := time.Parse(models.DateLayout, date); err != nil {
			return fmt.Errorf("дата %q для активности %s: %w", date, id, err)
		}
		overrides[id] = date
	}
	return setCollection(ctx, database, keyDateOverrides, overrides)
}

func TeamRoster(ctx context.Context, database *sql.DB) (models.Roster, bool, error) {
	var roster models.Roster
	ok, err := getCollection(ctx, database, keyTeamRoster, &roster)
	if err != nil {
		return models.Roster{}, false, err
	}
	return roster, ok, nil
}

func SaveTeamRoster(ctx context.Context, database *sql.DB, roster models.Roster) error {
	return setCollection(ctx, database, keyTeamRoster, roster)
}

// DailySeed — внешние, вручную выверенные исторические точки дневной серии.
func DailySeed(ctx context.Context, database *sql.DB) ([]models.DailyPoint, error) {
	var seed []models.DailyPoint
	if _, err := getCollection(ctx, database, keyDailySeed, &seed); err != nil {
		return nil, err
	}
	return seed, nil
}

func LastSync(ctx context.Context, database *sql.DB) (time.Time, bool, error) {
	var ts time.Time
	ok, err := getCollection(ctx, database, keyLastSync, &ts)
	if err != nil {
		return time.Time{}, false, err
	}
	return ts, ok, nil
}

func SetLastSync(ctx context.Context, database *sql.DB, ts time.Time) error {
	return setCollection(ctx, database, keyLastSync, ts)
}

// Store — адаптер пакета под интерфейс syncer.Store.
type Store struct {
	DB *sql.DB
}

func (s *Store) Activities(ctx context.Context) ([]models.StoredActivity, error) {
	return Activities(ctx, s.DB)
}

func (s *Store) SaveActivities(ctx context.Context, acts []models.StoredActivity) error {
	return SaveActivities(ctx, s.DB, acts)
}

func (s *Store) DateOverrides(ctx context.Context) (map[string]string, error) {
	return DateOverrides(ctx, s.DB)
}

func (s *Store) SetLastSync(ctx context.Context, ts time.Time) error {
	return SetLastSync(ctx, s.DB, ts)
}
