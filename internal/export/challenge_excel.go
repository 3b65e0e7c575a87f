package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/Spok95/telegram-challenge-bot/internal/models"
)

// Report — всё нужное для выгрузки челленджа в один файл.
type Report struct {
	PeriodTitle string
	Teams       []string
	Rows        []models.TeamScoreRow
	Totals      []models.TeamTotal
	Individuals []models.IndividualStats
	Activities  []models.ProcessedActivity
	Daily       []models.DailyPoint
}

// ChallengeWorkbook собирает книгу из четырёх листов:
// командный зачёт, личный зачёт, активности и серия по дням.
type ChallengeWorkbook struct {
	File *excelize.File
}

func NewChallengeWorkbook(r Report) (*ChallengeWorkbook, error) {
	f := excelize.NewFile()

	sheets := []struct {
		name string
		rows [][]string
	}{
		{"Командный зачёт", teamSheet(r)},
		{"Личный зачёт", individualSheet(r.Individuals)},
		{"Активности", activitySheet(r.Activities)},
		{"По дням", dailySheet(r)},
	}

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(s.name); err != nil {
				return nil, fmt.Errorf("new sheet: %w", err)
			}
		}
		for rIdx, row := range s.rows {
			for cIdx, val := range row {
				cell := fmt.Sprintf("%s%d", colName(cIdx+1), rIdx+1)
				if err := f.SetCellStr(s.name, cell, val); err != nil {
					return nil, fmt.Errorf("set cell %s: %w", cell, err)
				}
			}
		}
		if err := ApplyDefaultExcelFormatting(f, s.name); err != nil {
			return nil, fmt.Errorf("format sheet %s: %w", s.name, err)
		}
	}
	return &ChallengeWorkbook{File: f}, nil
}

// SaveTemp пишет книгу во временный файл и возвращает путь к нему.
func (w *ChallengeWorkbook) SaveTemp(periodTitle string) (string, error) {
	path := filepath.Join(os.TempDir(), BuildChallengeFilename(periodTitle))
	return path, w.File.SaveAs(path)
}

func teamSheet(r Report) [][]string {
	header := []string{"Категория"}
	for _, t := range r.Teams {
		header = append(header, t+" (сырые)", t+" (баллы)")
	}
	rows := [][]string{header}
	for _, row := range r.Rows {
		line := []string{row.Category}
		for _, c := range row.Cells {
			line = append(line, formatRaw(c.Raw), strconv.Itoa(c.Points))
		}
		rows = append(rows, line)
	}
	totals := []string{"Итого"}
	for _, t := range r.Totals {
		totals = append(totals, "", strconv.Itoa(t.Points))
	}
	rows = append(rows, totals)
	return rows
}

func individualSheet(stats []models.IndividualStats) [][]string {
	rows := [][]string{{"Участник", "Команда", "Активности", "Км", "Набор, м", "Баллы"}}
	for _, s := range stats {
		rows = append(rows, []string{
			s.Name,
			s.Team,
			strconv.Itoa(s.Activities),
			formatRaw(s.DistanceKm),
			formatRaw(s.ElevationGain),
			strconv.Itoa(s.Points),
		})
	}
	return rows
}

func activitySheet(acts []models.ProcessedActivity) [][]string {
	rows := [][]string{{"ID", "Участник", "Команда", "Название", "Категория", "Дата", "Км", "Набор, м", "Баллы"}}
	for _, a := range acts {
		rows = append(rows, []string{
			a.ID,
			a.Name,
			a.Team,
			a.Title,
			a.Category,
			a.Date,
			formatRaw(a.DistanceKm),
			formatRaw(a.ElevationGain),
			strconv.Itoa(a.TotalPoints),
		})
	}
	return rows
}

func dailySheet(r Report) [][]string {
	header := []string{"Дата"}
	for _, t := range r.Teams {
		header = append(header, t+" (за день)", t+" (итог)")
	}
	rows := [][]string{header}
	for _, p := range r.Daily {
		line := []string{p.Date}
		for _, tp := range p.Teams {
			line = append(line, strconv.Itoa(tp.Delta), strconv.Itoa(tp.Cumulative))
		}
		rows = append(rows, line)
	}
	return rows
}

func formatRaw(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
