package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Spok95/telegram-challenge-bot/internal/models"
)

func testReport() Report {
	return Report{
		PeriodTitle: "November 2025",
		Teams:       []string{"Tempo Tantrums", "Points & Pints"},
		Rows: []models.TeamScoreRow{
			{Category: "Road Run", Cells: []models.TeamCategoryCell{
				{Team: "Tempo Tantrums", Raw: 42.5, Points: 42},
				{Team: "Points & Pints", Raw: 10, Points: 10},
			}},
			{Category: "Elevation", Cells: []models.TeamCategoryCell{
				{Team: "Tempo Tantrums", Raw: 2100, Points: 12},
				{Team: "Points & Pints", Raw: 0, Points: 0},
			}},
		},
		Totals: []models.TeamTotal{
			{Team: "Tempo Tantrums", Points: 54},
			{Team: "Points & Pints", Points: 10},
		},
		Individuals: []models.IndividualStats{
			{Name: "Ivan P.", Team: "Tempo Tantrums", Activities: 3, DistanceKm: 42.5, ElevationGain: 2100, Points: 54},
		},
		Activities: []models.ProcessedActivity{
			{ID: "123", Name: "Ivan P.", Team: "Tempo Tantrums", Title: "Morning Run", Category: "Road Run",
				Date: "2025-11-05", DistanceKm: 10.2, TotalPoints: 10},
		},
		Daily: []models.DailyPoint{
			{Date: "2025-11-05", Teams: []models.DailyTeamPoint{
				{Team: "Tempo Tantrums", Delta: 10, Cumulative: 10},
				{Team: "Points & Pints", Delta: 0, Cumulative: 0},
			}},
		},
	}
}

func TestChallengeWorkbookSheets(t *testing.T) {
	wb, err := NewChallengeWorkbook(testReport())
	if err != nil {
		t.Fatal(err)
	}
	f := wb.File

	for _, name := range []string{"Командный зачёт", "Личный зачёт", "Активности", "По дням"} {
		if idx, err := f.GetSheetIndex(name); err != nil || idx < 0 {
			t.Fatalf("нет листа %q", name)
		}
	}

	// Командный зачёт: категория, сырые и баллы по командам, строка итога.
	rows, err := f.GetRows("Командный зачёт")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 4 {
		t.Fatalf("ожидали 4 строки (шапка, 2 категории, итого), получили %d", len(rows))
	}
	if rows[1][0] != "Road Run" || rows[1][1] != "42.5" || rows[1][2] != "42" {
		t.Fatalf("строка Road Run собрана неверно: %v", rows[1])
	}
	last := rows[len(rows)-1]
	if last[0] != "Итого" || last[2] != "54" {
		t.Fatalf("строка итога собрана неверно: %v", last)
	}

	rows, err = f.GetRows("Личный зачёт")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 || rows[1][0] != "Ivan P." || rows[1][5] != "54" {
		t.Fatalf("личный зачёт собран неверно: %v", rows)
	}
}

func TestSaveTempUsesChallengeFilename(t *testing.T) {
	wb, err := NewChallengeWorkbook(testReport())
	if err != nil {
		t.Fatal(err)
	}
	path, err := wb.SaveTemp("November 2025")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Remove(path) }()

	if filepath.Base(path) != BuildChallengeFilename("November 2025") {
		t.Fatalf("имя файла выгрузки: %q", path)
	}
}

func TestBuildChallengeFilename(t *testing.T) {
	got := BuildChallengeFilename(`Nov/2025: "draft"`)
	for _, bad := range []rune{'/', ':', '"'} {
		for _, r := range got {
			if r == bad {
				t.Fatalf("в имени файла остался запрещённый символ %q: %s", bad, got)
			}
		}
	}
}
