package aggregate

import (
	"testing"

	"github.com/Spok95/telegram-challenge-bot/internal/models"
)

func testRoster() models.Roster {
	return models.Roster{
		Teams: []string{"Tempo Tantrums", "Points & Pints"},
		Members: map[string]string{
			"Ivan P.": "Tempo Tantrums",
			"Oleg V.": "Tempo Tantrums",
			"Anna K.": "Points & Pints",
			"Dina S.": "Points & Pints",
		},
	}
}

func testWindow(t *testing.T) Window {
	t.Helper()
	w, err := MonthWindow("2025-11")
	if err != nil {
		t.Fatal(err)
	}
	return w
}

func act(first, last, typ string, dist, elev float64, date string) models.StoredActivity {
	return models.StoredActivity{
		FirstName:     first,
		LastName:      last,
		Type:          typ,
		Distance:      dist,
		ElevationGain: elev,
		Date:          date,
	}
}

func teamTotal(t *testing.T, totals []models.TeamTotal, team string) int {
	t.Helper()
	for _, tt := range totals {
		if tt.Team == team {
			return tt.Points
		}
	}
	t.Fatalf("нет команды %q в итогах %+v", team, totals)
	return 0
}

func TestMonthWindow(t *testing.T) {
	w := testWindow(t)
	if !w.Contains("2025-11-01") || !w.Contains("2025-11-30") {
		t.Fatal("границы месяца должны входить в окно")
	}
	if w.Contains("2025-10-31") || w.Contains("2025-12-01") {
		t.Fatal("соседние месяцы в окно не входят")
	}
	if w.Contains(models.DateUnknown) || w.Contains("мусор") {
		t.Fatal("невалидная дата не может попасть в окно")
	}
	if _, err := MonthWindow("november"); err == nil {
		t.Fatal("ожидали ошибку разбора месяца")
	}
}

func TestScoreboard_CumulativeFloor(t *testing.T) {
	// 5.2 + 4.9 км бега одной команды: floor(10.1) = 10, а не 5+4=9
	acts := []models.StoredActivity{
		act("Ivan", "P.", "Run", 5200, 0, "2025-11-03"),
		act("Ivan", "P.", "Run", 4900, 0, "2025-11-04"),
	}
	rows, totals := Scoreboard(acts, testRoster(), testWindow(t))

	if len(rows) != 1 || rows[0].Category != "Road Run" {
		t.Fatalf("ожидали одну строку Road Run: %+v", rows)
	}
	if got := teamTotal(t, totals, "Tempo Tantrums"); got != 10 {
		t.Fatalf("floor от суммы: ожидали 10, получили %d", got)
	}
	if got := teamTotal(t, totals, "Points & Pints"); got != 0 {
		t.Fatalf("вторая команда без активностей: %d", got)
	}
}

func TestScoreboard_ElevationAccumulatesAcrossActivities(t *testing.T) {
	// 1455 м + 600 м = 2055 м → floor(2.055)*6 = 12, а не 6+0
	acts := []models.StoredActivity{
		act("Ivan", "P.", "TrailRun", 10000, 1455, "2025-11-03"),
		act("Oleg", "V.", "TrailRun", 8000, 600, "2025-11-05"),
	}
	rows, totals := Scoreboard(acts, testRoster(), testWindow(t))

	var elev *models.TeamScoreRow
	for i := range rows {
		if rows[i].Category == "Elevation" {
			elev = &rows[i]
		}
	}
	if elev == nil {
		t.Fatalf("нет строки Elevation: %+v", rows)
	}
	if elev.Cells[0].Points != 12 {
		t.Fatalf("накопленный набор 2055 м: ожидали 12, получили %d", elev.Cells[0].Points)
	}
	// 18 км трейла (очки 18) + 12 бонуса
	if got := teamTotal(t, totals, "Tempo Tantrums"); got != 30 {
		t.Fatalf("итог команды: ожидали 30, получили %d", got)
	}
}

func TestScoreboard_ExcludesOutOfWindowAndUnknownTeam(t *testing.T) {
	acts := []models.StoredActivity{
		act("Ivan", "P.", "Run", 5000, 0, "2025-10-20"),          // вне окна
		act("Ivan", "P.", "Run", 5000, 0, models.DateUnknown),    // без даты
		act("Noname", "X.", "Run", 50000, 0, "2025-11-10"),       // не в составе
		act("Anna", "K.", "EBikeRide", 90000, 500, "2025-11-10"), // Other
	}
	rows, totals := Scoreboard(acts, testRoster(), testWindow(t))
	if len(rows) != 0 {
		t.Fatalf("ничего не должно попасть в зачёт: %+v", rows)
	}
	for _, tt := range totals {
		if tt.Points != 0 {
			t.Fatalf("итоги должны быть нулевыми: %+v", totals)
		}
	}
}

func TestScoreboard_SkipsAllZeroRow(t *testing.T) {
	// зачётная активность с нулевой дистанцией: и сырые, и очки нулевые
	// у обеих команд — строка категории не эмитится
	acts := []models.StoredActivity{
		act("Ivan", "P.", "Run", 0, 0, "2025-11-03"),
	}
	rows, _ := Scoreboard(acts, testRoster(), testWindow(t))
	if len(rows) != 0 {
		t.Fatalf("нулевая строка не должна эмититься: %+v", rows)
	}

	// у тренировок сырая величина — количество, поэтому строка остаётся
	acts = append(acts, act("Anna", "K.", "Workout", 0, 0, "2025-11-04"))
	rows, _ = Scoreboard(acts, testRoster(), testWindow(t))
	if len(rows) != 1 || rows[0].Category != "Workout" {
		t.Fatalf("ожидали одну строку Workout: %+v", rows)
	}
}

func TestIndividuals_SortedAndCumulative(t *testing.T) {
	acts := []models.StoredActivity{
		act("Ivan", "P.", "Run", 5200, 0, "2025-11-03"),
		act("Anna", "K.", "Run", 12000, 0, "2025-11-03"),
		act("Ivan", "P.", "Run", 4900, 0, "2025-11-04"),
	}
	ind := Individuals(acts, testRoster(), testWindow(t))
	if len(ind) != 2 {
		t.Fatalf("ожидали двух участников: %+v", ind)
	}
	if ind[0].Name != "Anna K." || ind[0].Points != 12 {
		t.Fatalf("первое место: %+v", ind[0])
	}
	if ind[1].Name != "Ivan P." || ind[1].Points != 10 {
		t.Fatalf("второе место (floor от 10.1): %+v", ind[1])
	}
	if ind[1].Activities != 2 {
		t.Fatalf("количество активностей: %+v", ind[1])
	}
}

func TestIndividuals_TiesKeepFirstAppearanceOrder(t *testing.T) {
	acts := []models.StoredActivity{
		act("Oleg", "V.", "Run", 3000, 0, "2025-11-05"),
		act("Dina", "S.", "Run", 3000, 0, "2025-11-03"),
	}
	ind := Individuals(acts, testRoster(), testWindow(t))
	if ind[0].Name != "Oleg V." || ind[1].Name != "Dina S." {
		t.Fatalf("при равенстве очков порядок первого появления: %+v", ind)
	}
}

// Оракул: серия, собранная фолдом, обязана совпадать с полным пересчётом
// зачёта по префиксу дат.
func TestDailySeries_MatchesFullRecomputation(t *testing.T) {
	roster := testRoster()
	w := testWindow(t)
	acts := []models.StoredActivity{
		act("Ivan", "P.", "Run", 5200, 0, "2025-11-03"),
		act("Anna", "K.", "Ride", 21000, 350, "2025-11-03"),
		act("Ivan", "P.", "Run", 4900, 0, "2025-11-04"),
		act("Oleg", "V.", "TrailRun", 12000, 1455, "2025-11-06"),
		act("Dina", "S.", "WeightTraining", 0, 0, "2025-11-06"),
		act("Anna", "K.", "Ride", 19500, 700, "2025-11-08"),
		act("Oleg", "V.", "TrailRun", 7000, 600, "2025-11-09"),
		act("Ivan", "P.", "Walk", 4300, 0, models.DateUnknown), // вне серии
	}

	series := DailySeries(acts, roster, w, nil)
	wantDates := []string{"2025-11-03", "2025-11-04", "2025-11-06", "2025-11-08", "2025-11-09"}
	if len(series) != len(wantDates) {
		t.Fatalf("даты серии: %+v", series)
	}
	for i, p := range series {
		if p.Date != wantDates[i] {
			t.Fatalf("порядок дат: ожидали %v, получили %+v", wantDates, series)
		}
	}

	// полный пересчёт по префиксу активностей до каждой даты включительно
	for i, p := range series {
		var prefix []models.StoredActivity
		for _, a := range acts {
			if a.HasDate() && a.Date <= p.Date {
				prefix = append(prefix, a)
			}
		}
		_, totals := Scoreboard(prefix, roster, w)
		for _, tp := range p.Teams {
			if want := teamTotal(t, totals, tp.Team); tp.Cumulative != want {
				t.Fatalf("дата %s, команда %s: фолд дал %d, полный пересчёт %d",
					p.Date, tp.Team, tp.Cumulative, want)
			}
		}
		// прирост — разность соседних накопленных итогов
		if i > 0 {
			for j, tp := range p.Teams {
				if diff := tp.Cumulative - series[i-1].Teams[j].Cumulative; tp.Delta != diff {
					t.Fatalf("дата %s: Delta %d не равна разности %d", p.Date, tp.Delta, diff)
				}
			}
		}
	}

	// накопленный итог последней даты равен командному зачёту
	_, finalTotals := Scoreboard(acts, roster, w)
	last := series[len(series)-1]
	for _, tp := range last.Teams {
		if want := teamTotal(t, finalTotals, tp.Team); tp.Cumulative != want {
			t.Fatalf("последняя дата: %d != итога зачёта %d (%s)", tp.Cumulative, want, tp.Team)
		}
	}
}

func TestDailySeries_SeedPrepended(t *testing.T) {
	roster := testRoster()
	w := testWindow(t)
	seed := []models.DailyPoint{{
		Date: "2025-10-31",
		Teams: []models.DailyTeamPoint{
			{Team: "Tempo Tantrums", Delta: 7, Cumulative: 7},
			{Team: "Points & Pints", Delta: 4, Cumulative: 4},
		},
	}}
	acts := []models.StoredActivity{
		act("Ivan", "P.", "Run", 10000, 0, "2025-11-03"),
	}
	series := DailySeries(acts, roster, w, seed)
	if len(series) != 2 {
		t.Fatalf("seed + одна дата: %+v", series)
	}
	if series[0].Date != "2025-10-31" || series[0].Teams[0].Cumulative != 7 {
		t.Fatalf("seed эмитится как есть: %+v", series[0])
	}
	// вычисленная часть продолжает от seed-базы
	if series[1].Teams[0].Cumulative != 17 || series[1].Teams[0].Delta != 10 {
		t.Fatalf("накопленное от базы seed: %+v", series[1])
	}
}

func TestProcessed_SortedDescUnknownLast(t *testing.T) {
	acts := []models.StoredActivity{
		act("Ivan", "P.", "Run", 5200, 0, models.DateUnknown),
		act("Anna", "K.", "Run", 12000, 0, "2025-11-03"),
		act("Oleg", "V.", "Run", 3000, 0, "2025-11-08"),
		act("Noname", "X.", "Run", 8000, 0, "2025-11-05"),
	}
	out := Processed(acts, testRoster(), testWindow(t))
	if len(out) != 4 {
		t.Fatalf("в сыром списке остаются все: %+v", out)
	}
	if out[0].Date != "2025-11-08" || out[1].Date != "2025-11-05" || out[2].Date != "2025-11-03" {
		t.Fatalf("сортировка по дате по убыванию: %+v", out)
	}
	if out[3].Date != models.DateUnknown {
		t.Fatalf("Unknown в конце: %+v", out)
	}

	// не в составе — строка есть, очков нет
	if out[1].Team != "" || out[1].TotalPoints != 0 {
		t.Fatalf("активность вне состава без очков: %+v", out[1])
	}
	// без даты — очков нет
	if out[3].TotalPoints != 0 {
		t.Fatalf("активность без даты без очков: %+v", out[3])
	}
	// построчное приближение: floor(12.0) = 12
	if out[2].TotalPoints != 12 || out[2].Category != "Road Run" {
		t.Fatalf("построчные очки: %+v", out[2])
	}
}
