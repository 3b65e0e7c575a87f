package syncer

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/Spok95/telegram-challenge-bot/internal/metrics"
	"github.com/Spok95/telegram-challenge-bot/internal/models"
	"github.com/Spok95/telegram-challenge-bot/internal/scoring"
	"go.uber.org/zap"
)

// Source — внешний источник активностей (клубная лента Strava).
type Source interface {
	FetchClubActivities(ctx context.Context) ([]models.RawActivity, error)
}

// Store — то, что сервису нужно от хранилища.
type Store interface {
	Activities(ctx context.Context) ([]models.StoredActivity, error)
	SaveActivities(ctx context.Context, acts []models.StoredActivity) error
	DateOverrides(ctx context.Context) (map[string]string, error)
	SetLastSync(ctx context.Context, ts time.Time) error
}

// Service — синхронизация: выборка, разрешение идентичностей, слияние
// с хранилищем и вычистка устаревших дублей. Рассчитан на один проход
// одновременно (планировщик запускает по одному).
type Service struct {
	source Source
	store  Store
	log    *zap.SugaredLogger
	now    func() time.Time
}

func New(source Source, store Store, log *zap.SugaredLogger) *Service {
	return &Service{source: source, store: store, log: log, now: time.Now}
}

// Sync — один проход синхронизации. Ошибка выборки или записи оставляет
// хранилище нетронутым: запись — одна атомарная замена всей коллекции.
func (s *Service) Sync(ctx context.Context) (*models.SyncResult, error) {
	raw, err := s.source.FetchClubActivities(ctx)
	if err != nil {
		metrics.SyncErrors.Inc()
		return nil, fmt.Errorf("выборка активностей: %w", err)
	}

	stored, err := s.store.Activities(ctx)
	if err != nil {
		metrics.SyncErrors.Inc()
		return nil, fmt.Errorf("чтение хранилища: %w", err)
	}
	overrides, err := s.store.DateOverrides(ctx)
	if err != nil {
		metrics.SyncErrors.Inc()
		return nil, fmt.Errorf("чтение ручных дат: %w", err)
	}

	now := s.now()
	merged, newCount, evicted := merge(raw, stored, overrides, now)

	if err := s.store.SaveActivities(ctx, merged); err != nil {
		metrics.SyncErrors.Inc()
		return nil, fmt.Errorf("запись хранилища: %w", err)
	}
	if err := s.store.SetLastSync(ctx, now); err != nil {
		// сами активности уже записаны; метка времени не критична
		s.log.Warnw("не удалось записать метку синхронизации", "err", err)
	}

	metrics.SyncRuns.Inc()
	metrics.ActivitiesFetched.Add(float64(len(raw)))
	metrics.ActivitiesStored.Set(float64(len(merged)))
	metrics.DuplicatesEvicted.Add(float64(evicted))

	s.log.Infow("синхронизация завершена",
		"fetched", len(raw), "stored", len(merged), "new", newCount, "evicted", evicted)

	return &models.SyncResult{
		Total:    len(merged),
		New:      newCount,
		Evicted:  evicted,
		SyncedAt: now,
	}, nil
}

// merge — чистое слияние свежей пачки с хранилищем.
//
// Приоритет даты для идентичности, по убыванию: ручное исправление →
// ранее сохранённая дата (Unknown датой не считается) → дата источника →
// сентинел Unknown. StoredAt переносится со старой записи: это момент
// первого появления идентичности, повторный прогон той же пачки даёт
// байт-в-байт то же хранилище.
func merge(raw []models.RawActivity, stored []models.StoredActivity, overrides map[string]string, now time.Time) (out []models.StoredActivity, newCount, evicted int) {
	prev := make(map[string]models.StoredActivity, len(stored))
	for _, a := range stored {
		prev[a.ID] = a
	}

	seen := make(map[string]int)
	fresh := make([]models.StoredActivity, 0, len(raw))
	for _, r := range raw {
		id := scoring.ResolveID(r.AthleteName(), r.Name, r.Distance, r.RawType(), seen)

		date := models.DateUnknown
		switch {
		case overrides[id] != "":
			date = overrides[id]
		case prev[id].HasDate():
			date = prev[id].Date
		case r.StartDateLocal != "":
			date = localDate(r.StartDateLocal)
		}

		storedAt := now
		if old, ok := prev[id]; ok {
			storedAt = old.StoredAt
		} else {
			newCount++
		}

		fresh = append(fresh, models.StoredActivity{
			ID:            id,
			FirstName:     r.Athlete.FirstName,
			LastName:      r.Athlete.LastName,
			Title:         r.Name,
			Type:          r.RawType(),
			Distance:      r.Distance,
			ElevationGain: r.TotalElevationGain,
			Date:          date,
			StoredAt:      storedAt,
		})
	}

	// Поиск устаревших дублей: источник поменял производные атрибуты,
	// хэш уехал, а (имя, дистанция до метра, дата) остались прежними.
	newByKey := make(map[string]string, len(fresh))
	for _, f := range fresh {
		newByKey[dupKey(f)] = f.ID
	}
	evict := make(map[string]bool)
	for _, old := range stored {
		if !old.HasDate() {
			continue
		}
		if nid, ok := newByKey[dupKey(old)]; ok && nid != old.ID {
			evict[old.ID] = true
		}
	}
	evicted = len(evict)

	freshIDs := make(map[string]bool, len(fresh))
	for _, f := range fresh {
		freshIDs[f.ID] = true
	}

	// Старые записи (минус дубли и перезаписанные) в исходном порядке,
	// затем свежая пачка. Ручные даты применяются и здесь: лента — скользящее
	// окно, и запись, выпавшая из неё, иначе никогда не получила бы коррекцию.
	out = make([]models.StoredActivity, 0, len(stored)+len(fresh))
	for _, old := range stored {
		if evict[old.ID] || freshIDs[old.ID] {
			continue
		}
		if ov := overrides[old.ID]; ov != "" {
			old.Date = ov
		}
		out = append(out, old)
	}
	out = append(out, fresh...)
	return out, newCount, evicted
}

// dupKey — ключ поиска дублей: имя + дистанция, округлённая до целого метра, + дата.
func dupKey(a models.StoredActivity) string {
	return a.AthleteName() + "|" + strconv.FormatInt(int64(math.Round(a.Distance)), 10) + "|" + a.Date
}

// localDate — YYYY-MM-DD из таймстемпа источника ("2006-01-02T15:04:05Z").
func localDate(startDateLocal string) string {
	if len(startDateLocal) >= len(models.DateLayout) {
		if _, err := time.Parse(models.DateLayout, startDateLocal[:len(models.DateLayout)]); err == nil {
			return startDateLocal[:len(models.DateLayout)]
		}
	}
	return models.DateUnknown
}
