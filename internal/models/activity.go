package models

import (
	"strings"
	"time"
)

// DateUnknown — сентинел для активности, у которой не удалось определить дату.
// Клубная лента Strava дат не отдаёт, поэтому это штатная ситуация.
const DateUnknown = "Unknown"

// DateLayout — формат дат активностей (и ручных исправлений).
const DateLayout = "2006-01-02"

// RawAthlete — спортсмен, как его отдаёт клубная лента (фамилия обрезана до инициала).
type RawAthlete struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
}

// RawActivity — активность из внешнего источника, без собственного идентификатора.
type RawActivity struct {
	Athlete            RawAthlete `json:"athlete"`
	Name               string     `json:"name"`
	Type               string     `json:"type"`
	SportType          string     `json:"sport_type"`
	Distance           float64    `json:"distance"`             // метры
	TotalElevationGain float64    `json:"total_elevation_gain"` // метры
	// Клубная лента этого поля не присылает; персональные источники — да.
	StartDateLocal string `json:"start_date_local,omitempty"`
}

// AthleteName — отображаемое имя, по которому матчим состав команд.
func (a RawActivity) AthleteName() string {
	return strings.TrimSpace(a.Athlete.FirstName + " " + a.Athlete.LastName)
}

// RawType — тип для нормализации: sport_type новее и точнее, type — фоллбэк.
func (a RawActivity) RawType() string {
	if a.SportType != "" {
		return a.SportType
	}
	return a.Type
}

// StoredActivity — запись в хранилище. ID выводится из атрибутов (см. scoring.ResolveID),
// Date — либо валидная YYYY-MM-DD, либо ровно DateUnknown.
type StoredActivity struct {
	ID            string    `json:"id"`
	FirstName     string    `json:"firstname"`
	LastName      string    `json:"lastname"`
	Title         string    `json:"title"`
	Type          string    `json:"type"`
	Distance      float64   `json:"distance"`       // метры
	ElevationGain float64   `json:"elevation_gain"` // метры
	Date          string    `json:"date"`
	StoredAt      time.Time `json:"stored_at"`
}

func (s StoredActivity) AthleteName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// HasDate — известна ли дата (для окна зачёта и поиска дублей).
func (s StoredActivity) HasDate() bool {
	return s.Date != "" && s.Date != DateUnknown
}

// SyncResult — итог одного прохода синхронизации.
type SyncResult struct {
	Total    int       `json:"total"`     // размер хранилища после слияния
	New      int       `json:"new"`       // впервые увиденные идентичности
	Evicted  int       `json:"evicted"`   // вычищенные устаревшие дубли
	SyncedAt time.Time `json:"synced_at"`
}
