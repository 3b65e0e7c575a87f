package models

// ProcessedActivity — проекция StoredActivity после нормализации и скоринга.
// Пересчитывается на каждый запрос, никуда не сохраняется.
// Баллы здесь построчные (floor по одной активности) — для отображения;
// командные и личные итоги считаются иначе, по накопленным суммам.
type ProcessedActivity struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Team            string  `json:"team,omitempty"`
	Title           string  `json:"title"`
	Category        string  `json:"category"`
	Date            string  `json:"date"`
	DistanceKm      float64 `json:"distance_km"`
	ElevationGain   float64 `json:"elevation_gain"`
	ActivityPoints  int     `json:"activity_points"`
	ElevationPoints int     `json:"elevation_points"`
	TotalPoints     int     `json:"total_points"`
}

// TeamCategoryCell — значение одной команды в строке зачёта.
// Raw — сырые единицы категории: километры, количество тренировок или метры набора.
type TeamCategoryCell struct {
	Team   string  `json:"team"`
	Raw    float64 `json:"raw"`
	Points int     `json:"points"`
}

// TeamScoreRow — строка командного зачёта по одной категории.
// Порядок ячеек совпадает с порядком команд в Roster.Teams.
type TeamScoreRow struct {
	Category string             `json:"category"`
	Cells    []TeamCategoryCell `json:"cells"`
}

// TeamTotal — суммарные очки команды по всем строкам зачёта.
type TeamTotal struct {
	Team   string `json:"team"`
	Points int    `json:"points"`
}

// IndividualStats — строка личного зачёта.
type IndividualStats struct {
	Name          string  `json:"name"`
	Team          string  `json:"team"`
	Activities    int     `json:"activities"`
	DistanceKm    float64 `json:"distance_km"`
	ElevationGain float64 `json:"elevation_gain"`
	Points        int     `json:"points"`
}

// DailyTeamPoint — очки команды на конкретную дату.
// Delta — прирост за день, Cumulative — накопленный итог на конец дня.
type DailyTeamPoint struct {
	Team       string `json:"team"`
	Delta      int    `json:"delta"`
	Cumulative int    `json:"cumulative"`
}

// DailyPoint — точка хронологической серии. Даты без активностей не эмитятся.
type DailyPoint struct {
	Date  string           `json:"date"`
	Teams []DailyTeamPoint `json:"teams"`
}
