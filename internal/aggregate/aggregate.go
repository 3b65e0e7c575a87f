package aggregate

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/Spok95/telegram-challenge-bot/internal/models"
	"github.com/Spok95/telegram-challenge-bot/internal/scoring"
)

// Window — окно зачёта: один именованный календарный месяц, даты включительно.
type Window struct {
	Start time.Time
	End   time.Time
}

// MonthWindow — окно из строки "YYYY-MM".
func MonthWindow(month string) (Window, error) {
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return Window{}, fmt.Errorf("месяц зачёта %q: %w", month, err)
	}
	return Window{
		Start: start,
		End:   start.AddDate(0, 1, 0).Add(-time.Second),
	}, nil
}

// Contains — попадает ли дата активности в окно. Unknown не попадает никогда.
func (w Window) Contains(date string) bool {
	d, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return false
	}
	return !d.Before(w.Start) && !d.After(w.End)
}

func (w Window) String() string {
	return w.Start.Format("January 2006")
}

// accum — накопленные сырые величины одной команды или одного спортсмена.
// Очки из него считаются одним floor от суммы — см. scoring.Cumulative*.
type accum struct {
	meters    map[scoring.Category]float64
	counts    map[scoring.Category]int
	elevation float64
}

func newAccum() *accum {
	return &accum{
		meters: make(map[scoring.Category]float64),
		counts: make(map[scoring.Category]int),
	}
}

func (a *accum) add(cat scoring.Category, distance, elevation float64) {
	a.meters[cat] += distance
	a.counts[cat]++
	if scoring.ElevationEligible(cat) {
		a.elevation += elevation
	}
}

func (a *accum) categoryPoints(cat scoring.Category) int {
	return scoring.CumulativeActivityPoints(cat, a.meters[cat], a.counts[cat])
}

func (a *accum) elevationPoints() int {
	return scoring.CumulativeElevationPoints(a.elevation)
}

func (a *accum) total() int {
	sum := 0
	for _, cat := range scoring.Categories() {
		sum += a.categoryPoints(cat)
	}
	return sum + a.elevationPoints()
}

// raw — сырая величина категории для показа: километры либо количество.
func (a *accum) raw(cat scoring.Category) float64 {
	if scoring.CountBased(cat) {
		return float64(a.counts[cat])
	}
	return roundKm(a.meters[cat] / 1000)
}

// countable — активность идёт в зачёт: команда известна, дата в окне, категория не Other.
func countable(act models.StoredActivity, roster models.Roster, w Window) (scoring.Category, string, bool) {
	team, ok := roster.TeamOf(act.AthleteName())
	if !ok {
		return 0, "", false
	}
	known := false
	for _, t := range roster.Teams {
		if t == team {
			known = true
			break
		}
	}
	if !known {
		return 0, "", false
	}
	if !act.HasDate() || !w.Contains(act.Date) {
		return 0, "", false
	}
	cat := scoring.Normalize(act.Type)
	if cat == scoring.CategoryOther {
		return 0, "", false
	}
	return cat, team, true
}

// Scoreboard — командный зачёт: по каждой категории сырые суммы на команду
// и floor один раз на команду на категорию; отдельной строкой — бонус за набор
// высоты. Строка категории эмитится, только если хоть у одной команды не ноль.
func Scoreboard(acts []models.StoredActivity, roster models.Roster, w Window) ([]models.TeamScoreRow, []models.TeamTotal) {
	byTeam := make(map[string]*accum, len(roster.Teams))
	for _, team := range roster.Teams {
		byTeam[team] = newAccum()
	}

	for _, act := range acts {
		cat, team, ok := countable(act, roster, w)
		if !ok {
			continue
		}
		byTeam[team].add(cat, act.Distance, act.ElevationGain)
	}

	var rows []models.TeamScoreRow
	for _, cat := range scoring.Categories() {
		row := models.TeamScoreRow{Category: cat.String()}
		nonzero := false
		for _, team := range roster.Teams {
			acc := byTeam[team]
			cell := models.TeamCategoryCell{
				Team:   team,
				Raw:    acc.raw(cat),
				Points: acc.categoryPoints(cat),
			}
			if cell.Raw != 0 || cell.Points != 0 {
				nonzero = true
			}
			row.Cells = append(row.Cells, cell)
		}
		if nonzero {
			rows = append(rows, row)
		}
	}

	// бонус за набор высоты: метры копятся по всем подходящим категориям
	elevRow := models.TeamScoreRow{Category: "Elevation"}
	elevNonzero := false
	for _, team := range roster.Teams {
		acc := byTeam[team]
		elevRow.Cells = append(elevRow.Cells, models.TeamCategoryCell{
			Team:   team,
			Raw:    math.Round(acc.elevation),
			Points: acc.elevationPoints(),
		})
		if acc.elevation > 0 {
			elevNonzero = true
		}
	}
	if elevNonzero {
		rows = append(rows, elevRow)
	}

	totals := make([]models.TeamTotal, 0, len(roster.Teams))
	for _, team := range roster.Teams {
		totals = append(totals, models.TeamTotal{Team: team, Points: byTeam[team].total()})
	}
	return rows, totals
}

// Individuals — личный зачёт с той же дисциплиной «floor от накопленного».
// Сортировка по убыванию очков; при равенстве сохраняется порядок первого
// появления спортсмена в хранилище (stable sort).
func Individuals(acts []models.StoredActivity, roster models.Roster, w Window) []models.IndividualStats {
	type athleteAccum struct {
		accum      *accum
		team       string
		activities int
		distance   float64
		elevation  float64
	}
	byName := make(map[string]*athleteAccum)
	var order []string

	for _, act := range acts {
		cat, team, ok := countable(act, roster, w)
		if !ok {
			continue
		}
		name := act.AthleteName()
		aa, exists := byName[name]
		if !exists {
			aa = &athleteAccum{accum: newAccum(), team: team}
			byName[name] = aa
			order = append(order, name)
		}
		aa.accum.add(cat, act.Distance, act.ElevationGain)
		aa.activities++
		aa.distance += act.Distance
		aa.elevation += act.ElevationGain
	}

	out := make([]models.IndividualStats, 0, len(order))
	for _, name := range order {
		aa := byName[name]
		out = append(out, models.IndividualStats{
			Name:          name,
			Team:          aa.team,
			Activities:    aa.activities,
			DistanceKm:    roundKm(aa.distance / 1000),
			ElevationGain: math.Round(aa.elevation),
			Points:        aa.accum.total(),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Points > out[j].Points })
	return out
}

// DailySeries — хронологическая серия дневных приростов. Фолд по возрастающим
// датам с переносом сырых аккумуляторов: на каждую дату командный итог
// пересчитывается от накопленного состояния, дневной прирост — разность
// с итогом предыдущей даты. Складывать построчные очки дня нельзя — floor
// не дистрибутивен, и серия разъехалась бы с командным зачётом.
//
// seed — внешние, вручную выверенные точки истории: эмитятся как есть перед
// вычисленной серией, их накопленные значения становятся базой для Cumulative.
func DailySeries(acts []models.StoredActivity, roster models.Roster, w Window, seed []models.DailyPoint) []models.DailyPoint {
	byDate := make(map[string][]models.StoredActivity)
	var dates []string
	for _, act := range acts {
		if _, _, ok := countable(act, roster, w); !ok {
			continue
		}
		if _, seen := byDate[act.Date]; !seen {
			dates = append(dates, act.Date)
		}
		byDate[act.Date] = append(byDate[act.Date], act)
	}
	sort.Strings(dates) // YYYY-MM-DD сортируется лексикографически

	out := make([]models.DailyPoint, 0, len(seed)+len(dates))
	base := make(map[string]int, len(roster.Teams))
	for _, p := range seed {
		out = append(out, p)
		for _, tp := range p.Teams {
			base[tp.Team] = tp.Cumulative
		}
	}

	running := make(map[string]*accum, len(roster.Teams))
	prevTotal := make(map[string]int, len(roster.Teams))
	for _, team := range roster.Teams {
		running[team] = newAccum()
	}

	for _, date := range dates {
		for _, act := range byDate[date] {
			cat, team, _ := countable(act, roster, w)
			running[team].add(cat, act.Distance, act.ElevationGain)
		}
		point := models.DailyPoint{Date: date}
		for _, team := range roster.Teams {
			total := running[team].total()
			point.Teams = append(point.Teams, models.DailyTeamPoint{
				Team:       team,
				Delta:      total - prevTotal[team],
				Cumulative: base[team] + total,
			})
			prevTotal[team] = total
		}
		out = append(out, point)
	}
	return out
}

// Processed — сырой список всех сохранённых активностей после скоринга,
// отсортированный по дате по убыванию (Unknown в конце). Активности вне окна
// или без команды остаются в списке, но с нулевыми очками.
func Processed(acts []models.StoredActivity, roster models.Roster, w Window) []models.ProcessedActivity {
	out := make([]models.ProcessedActivity, 0, len(acts))
	for _, act := range acts {
		name := act.AthleteName()
		team, hasTeam := roster.TeamOf(name)

		p := scoring.ScoreActivity(act.Type, act.Distance, act.ElevationGain)
		pa := models.ProcessedActivity{
			ID:            act.ID,
			Name:          name,
			Team:          team,
			Title:         act.Title,
			Category:      p.Category.String(),
			Date:          act.Date,
			DistanceKm:    roundKm(act.Distance / 1000),
			ElevationGain: math.Round(act.ElevationGain),
		}
		if hasTeam && act.HasDate() && w.Contains(act.Date) {
			pa.ActivityPoints = p.Activity
			pa.ElevationPoints = p.Elevation
			pa.TotalPoints = p.Total
		}
		out = append(out, pa)
	}
	sort.SliceStable(out, func(i, j int) bool {
		di, dj := out[i].Date, out[j].Date
		if di == models.DateUnknown {
			return false
		}
		if dj == models.DateUnknown {
			return true
		}
		return di > dj
	})
	return out
}

// roundKm — два знака для показа километров.
func roundKm(km float64) float64 {
	return math.Round(km*100) / 100
}
