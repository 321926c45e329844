package rankingservice

import (
	"context"
	"fmt"

	rankingdomain "github.com/Black-And-White-Club/impiccato-bot/app/modules/ranking/domain"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the exported workbook.
const (
	DailySheet      = "Daily"
	HistoricalSheet = "Historical"
)

var exportHeader = []any{"Position", "User ID", "Name", "Points"}

// ExportWorkbook writes both tables into an XLSX workbook, one sheet per window.
func (s *RankingService) ExportWorkbook(ctx context.Context) ([]byte, error) {
	doc := s.Snapshot()
	data, err := BuildWorkbook(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to export ranking workbook: %w", err)
	}
	return data, nil
}

// BuildWorkbook renders doc as XLSX bytes.
func BuildWorkbook(doc *rankingdomain.Document) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	first := f.GetSheetName(0)
	if err := f.SetSheetName(first, DailySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(HistoricalSheet); err != nil {
		return nil, err
	}

	sheets := []struct {
		name  string
		table rankingdomain.Table
	}{
		{DailySheet, doc.Daily},
		{HistoricalSheet, doc.Historical},
	}
	for _, sh := range sheets {
		if err := writeStandings(f, sh.name, rankingdomain.Top(sh.table, -1)); err != nil {
			return nil, fmt.Errorf("sheet %s: %w", sh.name, err)
		}
	}
	if err := f.SetCellValue(DailySheet, "F1", "Last reset"); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(DailySheet, "G1", doc.LastReset); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeStandings(f *excelize.File, sheet string, standings []rankingdomain.Standing) error {
	if err := f.SetSheetRow(sheet, "A1", &exportHeader); err != nil {
		return err
	}
	for i, st := range standings {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{st.Position, st.UserID, st.Name, st.Points}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
